package storage

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/zambashope/moz-checkout/internal/core/domain"
	"github.com/zambashope/moz-checkout/internal/core/port"
	"github.com/zambashope/moz-checkout/pkg/retry"
)

var _ port.CheckoutsStorage = (*CheckoutsRepository)(nil)

type theme struct {
	PrimaryColor    string `json:"primary_color,omitempty"`
	ButtonColor     string `json:"button_color,omitempty"`
	BackgroundColor string `json:"background_color,omitempty"`
	TextColor       string `json:"text_color,omitempty"`
	BorderRadiusPx  *int   `json:"border_radius_px,omitempty"`
	FontFamily      string `json:"font_family,omitempty"`
}

type CheckoutsRepository struct {
	sqldb    sqldb
	retryCfg retry.RetryConfig
}

func NewCheckoutsRepository(sqldb sqldb) CheckoutsRepository {
	return CheckoutsRepository{
		sqldb: sqldb,
		retryCfg: retry.RetryConfig{
			MaxAttempts: 3,
			Backoff:     retry.ExponentialBackoff(20 * time.Millisecond),
			ShouldRetry: isRetryable,
		},
	}
}

// StoreCheckout writes the checkout and its offers in one transaction.
// Transactions aborted by concurrent writers are retried.
func (r CheckoutsRepository) StoreCheckout(
	ctx context.Context, cfg domain.CheckoutConfiguration,
) error {
	const op = "CheckoutsRepository.StoreCheckout"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	themeB, err := json.Marshal(toTheme(cfg.Theme))
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	err = retry.Do(ctx, r.retryCfg, func() error {
		return r.storeTx(ctx, cfg, themeB)
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (r CheckoutsRepository) storeTx(
	ctx context.Context, cfg domain.CheckoutConfiguration, themeB []byte,
) (storeErr error) {
	const op = "CheckoutsRepository.storeTx"
	log := slog.With("op", op)

	tx, err := r.sqldb.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin tx: %w", err)
	}

	defer func() {
		if storeErr == nil {
			if err := tx.Commit(); err != nil {
				storeErr = fmt.Errorf("failed to commit: %w", err)
			}
			return
		}

		if err := tx.Rollback(); err != nil {
			log.Error("failed to rollback tx", "err", err)
		}
	}()

	query := `
		INSERT INTO checkouts (
			checkout_id, owner_id, selected_product_id,
			title, description, custom_message,
			collect_phone, collect_email, theme
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		ON CONFLICT (checkout_id) DO UPDATE SET
			owner_id = EXCLUDED.owner_id,
			selected_product_id = EXCLUDED.selected_product_id,
			title = EXCLUDED.title,
			description = EXCLUDED.description,
			custom_message = EXCLUDED.custom_message,
			collect_phone = EXCLUDED.collect_phone,
			collect_email = EXCLUDED.collect_email,
			theme = EXCLUDED.theme,
			updated_at = now();`

	_, err = tx.ExecContext(ctx, query,
		cfg.CheckoutID, cfg.OwnerID, cfg.SelectedProductID,
		cfg.Title, cfg.Description, cfg.CustomMessage,
		cfg.CollectPhone, cfg.CollectEmail, string(themeB),
	)
	if err != nil {
		return fmt.Errorf("failed to upsert checkout: %w", err)
	}

	_, err = tx.ExecContext(ctx,
		`DELETE FROM checkout_offers WHERE checkout_id = $1;`, cfg.CheckoutID)
	if err != nil {
		return fmt.Errorf("failed to clear offers: %w", err)
	}

	stmt, err := tx.PrepareContext(ctx, `
		INSERT INTO checkout_offers (checkout_id, kind, position, product_id, price)
		VALUES ($1, $2, $3, $4, $5);`)
	if err != nil {
		return fmt.Errorf("failed to prepare stmt: %w", err)
	}
	defer func() {
		if err := stmt.Close(); err != nil {
			log.Error("failed to close prepared stmt", "err", err)
		}
	}()

	insertOffers := func(kind domain.OfferKind, ps []domain.Product) error {
		for i, p := range ps {
			_, err := stmt.ExecContext(ctx,
				cfg.CheckoutID, string(kind), i, p.ProductID, p.Price)
			if err != nil {
				return fmt.Errorf("failed to insert %s: %w", kind, err)
			}
		}
		return nil
	}

	if err := insertOffers(domain.Upsell, cfg.Upsells); err != nil {
		return err
	}
	return insertOffers(domain.Downsell, cfg.Downsells)
}

func toTheme(t domain.Theme) theme {
	return theme{
		PrimaryColor:    t.PrimaryColor,
		ButtonColor:     t.ButtonColor,
		BackgroundColor: t.BackgroundColor,
		TextColor:       t.TextColor,
		BorderRadiusPx:  t.BorderRadiusPx,
		FontFamily:      t.FontFamily,
	}
}
