// Package deals fetches promotional listings from the discount API.
package deals

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"financebot/internal/config"
	"financebot/internal/logger"
	"financebot/internal/model"

	"log/slog"
)

const requestTimeout = 10 * time.Second

// Defaults substituted for absent optional fields in the wire response.
const (
	defaultTitle    = "Sem Título"
	defaultPrice    = "N/A"
	defaultProvider = "Loja Desconhecida"
	defaultURL      = "#"
)

// Client queries the deals API for current promotional listings.
type Client struct {
	http    *http.Client
	baseURL string
	apiKey  string
	limit   int
}

// New builds a deals client from configuration.
func New(cfg config.DealsConfig) *Client {
	return &Client{
		http:    &http.Client{Timeout: requestTimeout},
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		limit:   cfg.Limit,
	}
}

// Wire format: a list of entries each wrapping one deal object. Optional
// fields are pointers so absence can be told apart from zero values.
type dealsResponse struct {
	Deals []dealEntry `json:"deals"`
}

type dealEntry struct {
	Deal dealPayload `json:"deal"`
}

type dealPayload struct {
	Title              *string      `json:"title"`
	Price              *json.Number `json:"price"`
	DiscountPercentage *float64     `json:"discount_percentage"`
	Provider           *string      `json:"provider"`
	URL                *string      `json:"url"`
}

// Top returns up to the configured number of current deals. An empty slice
// with nil error means the API reported no deals; any transport failure or
// non-success status is an error.
func (c *Client) Top(ctx context.Context) ([]model.Deal, error) {
	endpoint := fmt.Sprintf("%s/deals?%s", c.baseURL, url.Values{
		"api_key": {c.apiKey},
		"limit":   {strconv.Itoa(c.limit)},
	}.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("build deals request: %w", err)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		logger.Error(ctx, "deals", "fetch.fail",
			slog.String("err", err.Error()),
			slog.Duration("duration", logger.RoundMS(time.Since(start))),
		)
		return nil, fmt.Errorf("fetch deals: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		logger.Error(ctx, "deals", "fetch.fail",
			slog.Int("http_code", resp.StatusCode),
		)
		return nil, fmt.Errorf("deals API status: %s", resp.Status)
	}

	var payload dealsResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("decode deals response: %w", err)
	}

	listings := make([]model.Deal, 0, len(payload.Deals))
	for _, entry := range payload.Deals {
		listings = append(listings, entry.Deal.toModel())
	}
	logger.Info(ctx, "deals", "fetch.ok",
		slog.Int("count", len(listings)),
		slog.Duration("duration", logger.RoundMS(time.Since(start))),
	)
	return listings, nil
}

func (p dealPayload) toModel() model.Deal {
	d := model.Deal{
		Title:    defaultTitle,
		Price:    defaultPrice,
		Provider: defaultProvider,
		URL:      defaultURL,
	}
	if p.Title != nil {
		d.Title = *p.Title
	}
	if p.Price != nil {
		d.Price = p.Price.String()
	}
	if p.DiscountPercentage != nil {
		d.DiscountPct = *p.DiscountPercentage
	}
	if p.Provider != nil {
		d.Provider = *p.Provider
	}
	if p.URL != nil {
		d.URL = *p.URL
	}
	return d
}
