package memory

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/zambashope/moz-checkout/internal/core/domain"
	"github.com/zambashope/moz-checkout/internal/core/port"
)

var _ port.CatalogProvider = (*Catalog)(nil)
var _ port.CheckoutsStorage = (*CheckoutsStorage)(nil)

// A Catalog serves a fixed product list.
type Catalog struct {
	products []domain.Product
}

func NewCatalog(ps []domain.Product) Catalog {
	products := make([]domain.Product, len(ps))
	copy(products, ps)
	return Catalog{products}
}

func (c Catalog) ListProducts(ctx context.Context) ([]domain.Product, error) {
	const op = "Catalog.ListProducts"

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	out := make([]domain.Product, len(c.products))
	copy(out, c.products)
	return out, nil
}

func (c Catalog) ReadProduct(
	ctx context.Context, productID string,
) (domain.Product, error) {
	const op = "Catalog.ReadProduct"

	if err := ctx.Err(); err != nil {
		return domain.Product{}, fmt.Errorf("%s: %w", op, err)
	}

	p, ok := domain.FindProduct(c.products, productID)
	if !ok {
		return domain.Product{}, fmt.Errorf(
			"%s: %q: %w", op, productID, domain.ErrProductNotFound,
		)
	}
	return p, nil
}

// A CheckoutsStorage keeps saved checkouts in process memory.
type CheckoutsStorage struct {
	mu        *sync.RWMutex
	checkouts map[string]domain.CheckoutConfiguration
}

func NewCheckoutsStorage() CheckoutsStorage {
	return CheckoutsStorage{
		mu:        new(sync.RWMutex),
		checkouts: make(map[string]domain.CheckoutConfiguration),
	}
}

func (s CheckoutsStorage) StoreCheckout(
	ctx context.Context, cfg domain.CheckoutConfiguration,
) error {
	const op = "CheckoutsStorage.StoreCheckout"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	s.mu.Lock()
	s.checkouts[cfg.CheckoutID] = cfg.Clone()
	s.mu.Unlock()

	slog.Debug("checkout stored", "op", op, "checkoutID", cfg.CheckoutID)
	return nil
}

func (s CheckoutsStorage) ReadCheckout(
	ctx context.Context, checkoutID string,
) (domain.CheckoutConfiguration, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	cfg, ok := s.checkouts[checkoutID]
	if !ok {
		return domain.CheckoutConfiguration{}, false
	}
	return cfg.Clone(), true
}
