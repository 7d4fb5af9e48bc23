// Package bot implements the conversation router: it maps commands, button
// selections, and free-text messages onto the purchase store and the three
// external clients, tracking one pending state per user.
package bot

import (
	"context"
	"errors"
	"time"

	tele "gopkg.in/telebot.v4"

	"financebot/internal/assistant"
	"financebot/internal/bot/state"
	"financebot/internal/logger"
	"financebot/internal/model"

	"log/slog"
)

// Selection keys carried by the inline menu buttons.
const (
	SelDeals       = "deals"
	SelSearch      = "shopee_search"
	SelAddPurchase = "add_purchase"
	SelMyExpenses  = "my_expenses"
	SelAskAI       = "ask_ai"
	SelHelp        = "help"
)

// PurchaseStore persists and lists purchase records.
type PurchaseStore interface {
	Add(ctx context.Context, p *model.Purchase) error
	ListByUser(ctx context.Context, userID int64, recentFirst bool) ([]model.Purchase, error)
}

// DealsFetcher returns current promotional listings.
type DealsFetcher interface {
	Top(ctx context.Context) ([]model.Deal, error)
}

// Searcher extracts product links for a free-text term.
type Searcher interface {
	Search(ctx context.Context, term string) (model.SearchResult, error)
}

// Assistant answers spending questions when configured.
type Assistant interface {
	Available() bool
	Ask(ctx context.Context, userID int64, question string) (string, error)
}

// Reply is one outbound message produced by the router. The transport layer
// decides whether Text edits the originating message or starts a new one.
type Reply struct {
	Text      string
	Markup    *tele.ReplyMarkup
	NoPreview bool
}

// Notify delivers a progress message to the user before a slow external
// call. A nil Notify is valid and drops the message.
type Notify func(text string)

// Router dispatches inbound events for a user and produces replies.
type Router struct {
	states *state.Manager
	store  PurchaseStore
	deals  DealsFetcher
	search Searcher
	ai     Assistant
}

// NewRouter wires the router with its collaborators.
func NewRouter(store PurchaseStore, deals DealsFetcher, search Searcher, ai Assistant) *Router {
	return &Router{
		states: state.NewManager(),
		store:  store,
		deals:  deals,
		search: search,
		ai:     ai,
	}
}

// Start returns the welcome message with the main menu. State-independent.
func (r *Router) Start() Reply {
	return Reply{Text: msgWelcome, Markup: mainMenu()}
}

// Help returns the usage guide. State-independent.
func (r *Router) Help() Reply {
	return Reply{Text: msgHelp}
}

// Select handles an inline menu selection for the given user.
func (r *Router) Select(ctx context.Context, userID int64, key string) Reply {
	switch key {
	case SelDeals:
		return r.topDeals(ctx)

	case SelSearch:
		r.states.Set(userID, state.AwaitingSearchTerm)
		return Reply{Text: msgSearchPrompt}

	case SelAddPurchase:
		r.states.Set(userID, state.AwaitingPurchase)
		return Reply{Text: msgPurchasePrompt}

	case SelAskAI:
		if !r.ai.Available() {
			// State stays Idle: the flow never starts without a credential.
			return Reply{Text: msgAIDisabled}
		}
		r.states.Set(userID, state.AwaitingAIQuestion)
		return Reply{Text: msgAIPrompt}

	case SelMyExpenses:
		return r.expenses(ctx, userID)

	case SelHelp:
		return r.Help()
	}

	logger.Warn(ctx, "bot", "selection.unknown", slog.String("cb_key", key))
	return Reply{Text: msgUnknownCommand}
}

// Text handles a free-text message. The pending state is consumed before any
// external call runs: a second message after an unanswered prompt is a fresh
// event, never a retry of the same flow.
func (r *Router) Text(ctx context.Context, userID int64, text string, notify Notify) Reply {
	switch r.states.Consume(userID) {
	case state.AwaitingSearchTerm:
		return r.searchTerm(ctx, text)

	case state.AwaitingPurchase:
		return r.registerPurchase(ctx, userID, text)

	case state.AwaitingAIQuestion:
		return r.askAI(ctx, userID, text, notify)

	default:
		if r.ai.Available() {
			return r.askAI(ctx, userID, text, notify)
		}
		return Reply{Text: msgUnknownCommand}
	}
}

func (r *Router) topDeals(ctx context.Context) Reply {
	listings, err := r.deals.Top(ctx)
	if err != nil {
		return Reply{Text: msgDealsError}
	}
	if len(listings) == 0 {
		return Reply{Text: msgNoDeals}
	}
	return Reply{Text: formatDeals(listings), NoPreview: true}
}

func (r *Router) searchTerm(ctx context.Context, term string) Reply {
	result, err := r.search.Search(ctx, term)
	if err != nil {
		return Reply{Text: msgSearchError}
	}
	return Reply{Text: formatSearchResults(result), NoPreview: true}
}

func (r *Router) registerPurchase(ctx context.Context, userID int64, text string) Reply {
	product, value, category, err := parsePurchase(text)
	switch {
	case errors.Is(err, errFieldCount):
		return Reply{Text: msgPurchaseFormatError}
	case errors.Is(err, errValue):
		return Reply{Text: msgPurchaseValueError}
	}

	purchase := &model.Purchase{
		UserID:   userID,
		Product:  product,
		Value:    value,
		Category: category,
		Date:     time.Now(),
	}
	if err := r.store.Add(ctx, purchase); err != nil {
		logger.Error(ctx, "bot", "purchase.save.fail",
			slog.Int64("user_id", userID),
			slog.String("err", err.Error()),
		)
		return Reply{Text: msgPurchaseSaveError}
	}

	logger.Info(ctx, "bot", "purchase.saved",
		slog.Int64("user_id", userID),
		slog.Int64("purchase_id", purchase.ID),
		slog.String("category", logger.SanitizeLimit(category, 64)),
	)
	return Reply{Text: formatPurchaseSaved(product, value, category)}
}

func (r *Router) expenses(ctx context.Context, userID int64) Reply {
	purchases, err := r.store.ListByUser(ctx, userID, true)
	if err != nil {
		return Reply{Text: msgExpensesError}
	}
	if len(purchases) == 0 {
		return Reply{Text: msgNoPurchases}
	}
	return Reply{Text: formatExpenses(purchases)}
}

func (r *Router) askAI(ctx context.Context, userID int64, question string, notify Notify) Reply {
	if notify != nil {
		notify(msgAIThinking)
	}
	answer, err := r.ai.Ask(ctx, userID, question)
	if errors.Is(err, assistant.ErrUnavailable) {
		return Reply{Text: msgAIDisabled}
	}
	if err != nil {
		return Reply{Text: msgAIError}
	}
	return Reply{Text: answer}
}
