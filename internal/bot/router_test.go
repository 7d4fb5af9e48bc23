package bot

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"financebot/internal/assistant"
	"financebot/internal/model"
)

type fakeStore struct {
	purchases []model.Purchase
	listErr   error
	addErr    error
	added     []model.Purchase
}

func (f *fakeStore) Add(_ context.Context, p *model.Purchase) error {
	if f.addErr != nil {
		return f.addErr
	}
	p.ID = int64(len(f.added) + 1)
	f.added = append(f.added, *p)
	return nil
}

func (f *fakeStore) ListByUser(_ context.Context, _ int64, _ bool) ([]model.Purchase, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.purchases, nil
}

type fakeDeals struct {
	listings []model.Deal
	err      error
}

func (f *fakeDeals) Top(context.Context) ([]model.Deal, error) {
	return f.listings, f.err
}

type fakeSearch struct {
	result model.SearchResult
	err    error
	terms  []string
}

func (f *fakeSearch) Search(_ context.Context, term string) (model.SearchResult, error) {
	f.terms = append(f.terms, term)
	return f.result, f.err
}

type fakeAI struct {
	enabled   bool
	answer    string
	err       error
	questions []string
}

func (f *fakeAI) Available() bool { return f.enabled }

func (f *fakeAI) Ask(_ context.Context, _ int64, question string) (string, error) {
	f.questions = append(f.questions, question)
	if f.err != nil {
		return "", f.err
	}
	return f.answer, nil
}

func newTestRouter() (*Router, *fakeStore, *fakeDeals, *fakeSearch, *fakeAI) {
	store := &fakeStore{}
	deals := &fakeDeals{}
	search := &fakeSearch{}
	ai := &fakeAI{}
	return NewRouter(store, deals, search, ai), store, deals, search, ai
}

func TestStartCarriesMenu(t *testing.T) {
	r, _, _, _, _ := newTestRouter()
	reply := r.Start()
	if reply.Text != msgWelcome {
		t.Fatalf("welcome text = %q", reply.Text)
	}
	if reply.Markup == nil || len(reply.Markup.InlineKeyboard) != 6 {
		t.Fatal("expected a six-row inline menu")
	}
}

func TestSelectDeals(t *testing.T) {
	ctx := context.Background()
	r, _, deals, _, _ := newTestRouter()

	deals.err = errors.New("boom")
	if reply := r.Select(ctx, 1, SelDeals); reply.Text != msgDealsError {
		t.Fatalf("error reply = %q", reply.Text)
	}

	deals.err = nil
	if reply := r.Select(ctx, 1, SelDeals); reply.Text != msgNoDeals {
		t.Fatalf("empty reply = %q", reply.Text)
	}

	deals.listings = []model.Deal{{Title: "SSD 1TB", Price: "59.99", DiscountPct: 40, Provider: "Amazon", URL: "https://example.com/ssd"}}
	reply := r.Select(ctx, 1, SelDeals)
	if !strings.Contains(reply.Text, "SSD 1TB") || !strings.Contains(reply.Text, "40.0%") {
		t.Fatalf("deals reply missing listing data: %q", reply.Text)
	}
	if !reply.NoPreview {
		t.Fatal("deals reply should disable link previews")
	}
}

func TestSearchFlowConsumesState(t *testing.T) {
	ctx := context.Background()
	r, _, _, search, _ := newTestRouter()
	search.result = model.SearchResult{
		Term:  "fone bluetooth",
		Links: []string{"https://shopee.com.br/product/1/2"},
	}

	if reply := r.Select(ctx, 7, SelSearch); reply.Text != msgSearchPrompt {
		t.Fatalf("prompt = %q", reply.Text)
	}

	reply := r.Text(ctx, 7, "fone bluetooth", nil)
	if len(search.terms) != 1 || search.terms[0] != "fone bluetooth" {
		t.Fatalf("searched terms = %v", search.terms)
	}
	if !strings.Contains(reply.Text, "Resultados da Shopee") {
		t.Fatalf("reply = %q", reply.Text)
	}

	// The state was consumed: a second message is no longer a search term.
	reply = r.Text(ctx, 7, "outra coisa", nil)
	if len(search.terms) != 1 {
		t.Fatalf("second message triggered another search: %v", search.terms)
	}
	if reply.Text != msgUnknownCommand {
		t.Fatalf("post-flow reply = %q", reply.Text)
	}
}

func TestSearchFallbackRendersURLTwice(t *testing.T) {
	ctx := context.Background()
	r, _, _, search, _ := newTestRouter()
	search.result = model.SearchResult{
		Term:      "cadeira gamer",
		SearchURL: "https://shopee.com.br/search?keyword=cadeira%20gamer",
	}

	r.Select(ctx, 7, SelSearch)
	reply := r.Text(ctx, 7, "cadeira gamer", nil)
	if !strings.Contains(reply.Text, "O scraping da Shopee falhou") {
		t.Fatalf("expected fallback notice, got %q", reply.Text)
	}
	if n := strings.Count(reply.Text, search.result.SearchURL); n != 2 {
		t.Fatalf("search URL appears %d times, expected 2", n)
	}
}

func TestSearchErrorReply(t *testing.T) {
	ctx := context.Background()
	r, _, _, search, _ := newTestRouter()
	search.err = errors.New("connection refused")

	r.Select(ctx, 7, SelSearch)
	if reply := r.Text(ctx, 7, "tv 50", nil); reply.Text != msgSearchError {
		t.Fatalf("reply = %q", reply.Text)
	}
}

func TestPurchaseFlowPersists(t *testing.T) {
	ctx := context.Background()
	r, store, _, _, _ := newTestRouter()

	if reply := r.Select(ctx, 3, SelAddPurchase); reply.Text != msgPurchasePrompt {
		t.Fatalf("prompt = %q", reply.Text)
	}

	reply := r.Text(ctx, 3, "iPhone 15 - 5000 - Eletrônicos", nil)
	if len(store.added) != 1 {
		t.Fatalf("added %d purchases", len(store.added))
	}
	saved := store.added[0]
	if saved.UserID != 3 || saved.Product != "iPhone 15" || saved.Value != 5000 || saved.Category != "Eletrônicos" {
		t.Fatalf("saved purchase = %+v", saved)
	}
	if saved.Date.IsZero() {
		t.Fatal("saved purchase has zero date")
	}
	want := formatPurchaseSaved("iPhone 15", 5000, "Eletrônicos")
	if reply.Text != want {
		t.Fatalf("reply = %q, expected %q", reply.Text, want)
	}
}

func TestPurchaseFlowRejectsBadInput(t *testing.T) {
	ctx := context.Background()
	r, store, _, _, _ := newTestRouter()

	r.Select(ctx, 3, SelAddPurchase)
	if reply := r.Text(ctx, 3, "só texto sem formato", nil); reply.Text != msgPurchaseFormatError {
		t.Fatalf("format error reply = %q", reply.Text)
	}

	r.Select(ctx, 3, SelAddPurchase)
	if reply := r.Text(ctx, 3, "iPhone - caro demais - Eletrônicos", nil); reply.Text != msgPurchaseValueError {
		t.Fatalf("value error reply = %q", reply.Text)
	}

	if len(store.added) != 0 {
		t.Fatalf("rejected input was persisted: %+v", store.added)
	}
}

func TestPurchaseSaveFailure(t *testing.T) {
	ctx := context.Background()
	r, store, _, _, _ := newTestRouter()
	store.addErr = errors.New("db down")

	r.Select(ctx, 3, SelAddPurchase)
	if reply := r.Text(ctx, 3, "Livro - 45 - Educação", nil); reply.Text != msgPurchaseSaveError {
		t.Fatalf("reply = %q", reply.Text)
	}
}

func TestExpensesEmpty(t *testing.T) {
	r, _, _, _, _ := newTestRouter()
	reply := r.Select(context.Background(), 5, SelMyExpenses)
	if reply.Text != msgNoPurchases {
		t.Fatalf("reply = %q", reply.Text)
	}
}

func TestExpensesSummary(t *testing.T) {
	r, store, _, _, _ := newTestRouter()
	date := time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC)
	store.purchases = []model.Purchase{
		{Product: "Notebook", Value: 3500, Category: "Eletrônicos", Date: date},
		{Product: "Mercado", Value: 412.9, Category: "Alimentação", Date: date},
	}

	reply := r.Select(context.Background(), 5, SelMyExpenses)
	if !strings.Contains(reply.Text, "R$ 3912.90") {
		t.Fatalf("missing total: %q", reply.Text)
	}
	if !strings.Contains(reply.Text, "Número de Compras: **2**") {
		t.Fatalf("missing count: %q", reply.Text)
	}
	if !strings.Contains(reply.Text, "Notebook (R$ 3500.00) - Eletrônicos (15/03)") {
		t.Fatalf("missing purchase line: %q", reply.Text)
	}
}

func TestExpensesShowsAtMostFive(t *testing.T) {
	r, store, _, _, _ := newTestRouter()
	for i := 0; i < 8; i++ {
		store.purchases = append(store.purchases, model.Purchase{
			Product: "Item", Value: 10, Category: "Outros", Date: time.Now(),
		})
	}

	reply := r.Select(context.Background(), 5, SelMyExpenses)
	if n := strings.Count(reply.Text, " - Item ("); n != 5 {
		t.Fatalf("listed %d purchases, expected 5", n)
	}
	if !strings.Contains(reply.Text, "Número de Compras: **8**") {
		t.Fatalf("count should reflect all purchases: %q", reply.Text)
	}
}

func TestAskAIDisabledNeverEntersFlow(t *testing.T) {
	ctx := context.Background()
	r, _, _, _, ai := newTestRouter()
	ai.enabled = false

	if reply := r.Select(ctx, 9, SelAskAI); reply.Text != msgAIDisabled {
		t.Fatalf("reply = %q", reply.Text)
	}
	// No pending question: the next message falls through to unknown command.
	if reply := r.Text(ctx, 9, "quanto gastei?", nil); reply.Text != msgUnknownCommand {
		t.Fatalf("follow-up reply = %q", reply.Text)
	}
	if len(ai.questions) != 0 {
		t.Fatalf("disabled assistant was asked: %v", ai.questions)
	}
}

func TestAskAIFlow(t *testing.T) {
	ctx := context.Background()
	r, _, _, _, ai := newTestRouter()
	ai.enabled = true
	ai.answer = "Você gastou mais em Eletrônicos."

	if reply := r.Select(ctx, 9, SelAskAI); reply.Text != msgAIPrompt {
		t.Fatalf("prompt = %q", reply.Text)
	}

	var notified []string
	notify := func(text string) { notified = append(notified, text) }

	reply := r.Text(ctx, 9, "em que categoria gastei mais?", notify)
	if reply.Text != ai.answer {
		t.Fatalf("reply = %q", reply.Text)
	}
	if len(notified) != 1 || notified[0] != msgAIThinking {
		t.Fatalf("notifications = %v", notified)
	}
	if len(ai.questions) != 1 || ai.questions[0] != "em que categoria gastei mais?" {
		t.Fatalf("questions = %v", ai.questions)
	}
}

func TestAskAIErrors(t *testing.T) {
	ctx := context.Background()
	r, _, _, _, ai := newTestRouter()
	ai.enabled = true

	ai.err = assistant.ErrUnavailable
	r.Select(ctx, 9, SelAskAI)
	if reply := r.Text(ctx, 9, "pergunta", nil); reply.Text != msgAIDisabled {
		t.Fatalf("unavailable reply = %q", reply.Text)
	}

	ai.err = errors.New("rate limited")
	r.Select(ctx, 9, SelAskAI)
	if reply := r.Text(ctx, 9, "pergunta", nil); reply.Text != msgAIError {
		t.Fatalf("error reply = %q", reply.Text)
	}
}

func TestIdleTextFallsBackToAI(t *testing.T) {
	ctx := context.Background()
	r, _, _, _, ai := newTestRouter()
	ai.enabled = true
	ai.answer = "Posso ajudar com finanças."

	reply := r.Text(ctx, 11, "me dá uma dica de economia", nil)
	if reply.Text != ai.answer {
		t.Fatalf("reply = %q", reply.Text)
	}
	if len(ai.questions) != 1 {
		t.Fatalf("questions = %v", ai.questions)
	}
}

func TestUnknownSelection(t *testing.T) {
	r, _, _, _, _ := newTestRouter()
	reply := r.Select(context.Background(), 1, "nope")
	if reply.Text != msgUnknownCommand {
		t.Fatalf("reply = %q", reply.Text)
	}
}
