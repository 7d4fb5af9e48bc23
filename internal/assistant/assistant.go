// Package assistant answers spending questions through the completion API.
package assistant

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sashabaranov/go-openai"

	"financebot/internal/config"
	"financebot/internal/logger"
	"financebot/internal/model"

	"log/slog"
)

// ErrUnavailable is returned when no completion API credential is configured.
var ErrUnavailable = errors.New("assistant: completion API key not configured")

const systemPrompt = "Você é o FinanceBot, um assistente financeiro e de compras amigável. " +
	"Sua função é analisar o histórico de gastos do usuário e responder a perguntas de forma útil e inteligente, " +
	"focando estritamente em gestão financeira, economia e análise de gastos. " +
	"Use os dados fornecidos para dar conselhos financeiros, identificar padrões de gastos ou responder a perguntas sobre orçamento. " +
	"Recuse-se educadamente a responder perguntas que não sejam sobre finanças ou o uso do bot. " +
	"Mantenha a resposta concisa e em português."

// PurchaseLister provides the purchase history used to build the context
// summary for each question.
type PurchaseLister interface {
	ListByUser(ctx context.Context, userID int64, recentFirst bool) ([]model.Purchase, error)
}

// Client sends single-turn questions, enriched with the user's spending
// summary, to the completion API.
type Client struct {
	api   *openai.Client
	model string
	store PurchaseLister
}

// New builds an assistant client. With an empty API key the client is
// constructed in disabled state and never attempts a network call.
func New(cfg config.OpenAIConfig, store PurchaseLister) *Client {
	c := &Client{model: cfg.Model, store: store}
	if strings.TrimSpace(cfg.APIKey) != "" {
		c.api = openai.NewClient(cfg.APIKey)
	}
	return c
}

// Available reports whether the completion API credential is configured.
func (c *Client) Available() bool {
	return c != nil && c.api != nil
}

// Ask answers a free-text question about the user's spending. It loads the
// purchase history, builds a context summary, and sends one completion
// request with a fixed system instruction.
func (c *Client) Ask(ctx context.Context, userID int64, question string) (string, error) {
	if !c.Available() {
		return "", ErrUnavailable
	}

	purchases, err := c.store.ListByUser(ctx, userID, false)
	if err != nil {
		return "", fmt.Errorf("load purchase history: %w", err)
	}

	userPrompt := fmt.Sprintf(
		"Contexto de gastos do usuário:\n%s\n\nPergunta do usuário: %s",
		spendingContext(purchases), question,
	)

	start := time.Now()
	resp, err := c.api.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: c.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: systemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: userPrompt},
		},
	})
	if err != nil {
		logger.Error(ctx, "ai", "completion.fail",
			slog.Int64("user_id", userID),
			slog.String("err", err.Error()),
			slog.Duration("duration", logger.RoundMS(time.Since(start))),
		)
		return "", fmt.Errorf("create chat completion: %w", err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("no completion choices returned")
	}

	logger.Info(ctx, "ai", "completion.ok",
		slog.Int64("user_id", userID),
		slog.Int("purchases", len(purchases)),
		slog.Duration("duration", logger.RoundMS(time.Since(start))),
	)
	return resp.Choices[0].Message.Content, nil
}

// spendingContext renders the purchase history the way the assistant expects
// it: total to 2 decimals, purchase count, and one line per purchase.
func spendingContext(purchases []model.Purchase) string {
	if len(purchases) == 0 {
		return "O usuário ainda não registrou nenhuma compra."
	}

	var total float64
	lines := make([]string, 0, len(purchases))
	for _, p := range purchases {
		total += p.Value
		lines = append(lines, fmt.Sprintf("- %s (R$ %.2f) na categoria %s em %s",
			p.Product, p.Value, p.Category, p.Date.Format("02/01/2006")))
	}

	return fmt.Sprintf(
		"O usuário já gastou um total de R$ %.2f em %d compras. Aqui está o histórico detalhado:\n%s",
		total, len(purchases), strings.Join(lines, "\n"),
	)
}
