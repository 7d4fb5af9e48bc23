package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"financebot/internal/logger"
	"financebot/internal/model"

	"log/slog"
)

// PurchaseRepository persists purchase records in Postgres. Each call runs
// as its own short-lived operation on the pooled connection.
type PurchaseRepository struct {
	db *sqlx.DB
}

// NewPurchaseRepository wraps the provided database handle.
func NewPurchaseRepository(db *sqlx.DB) *PurchaseRepository {
	return &PurchaseRepository{db: db}
}

// Add inserts the purchase and fills in the assigned id and timestamp.
func (r *PurchaseRepository) Add(ctx context.Context, p *model.Purchase) error {
	start := time.Now()
	row := r.db.QueryRowxContext(ctx,
		`INSERT INTO purchases (user_id, product, value, category)
		 VALUES ($1, $2, $3, $4)
		 RETURNING id, date`,
		p.UserID, p.Product, p.Value, p.Category,
	)
	if err := row.Scan(&p.ID, &p.Date); err != nil {
		logger.DB.Error("purchase insert failed",
			slog.String("event", "db.purchase.add"),
			slog.Int64("user_id", p.UserID),
			slog.String("err", err.Error()),
		)
		return fmt.Errorf("insert purchase: %w", err)
	}
	logger.DB.Debug("purchase inserted",
		slog.String("event", "db.purchase.add"),
		slog.Int64("user_id", p.UserID),
		slog.Int64("purchase_id", p.ID),
		slog.Duration("duration", logger.RoundMS(time.Since(start))),
	)
	return nil
}

// ListByUser returns all purchases of a user. With recentFirst the newest
// purchase comes first. A user without purchases yields an empty slice.
func (r *PurchaseRepository) ListByUser(ctx context.Context, userID int64, recentFirst bool) ([]model.Purchase, error) {
	order := "ASC"
	if recentFirst {
		order = "DESC"
	}
	query := fmt.Sprintf(
		`SELECT id, user_id, product, value, category, date
		 FROM purchases WHERE user_id = $1 ORDER BY date %s, id %s`, order, order)

	purchases := []model.Purchase{}
	if err := r.db.SelectContext(ctx, &purchases, query, userID); err != nil {
		logger.DB.Error("purchase list failed",
			slog.String("event", "db.purchase.list"),
			slog.Int64("user_id", userID),
			slog.String("err", err.Error()),
		)
		return nil, fmt.Errorf("list purchases: %w", err)
	}
	return purchases, nil
}
