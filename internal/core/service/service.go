package service

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/zambashope/moz-checkout/internal/core/domain"
	"github.com/zambashope/moz-checkout/internal/core/port"
)

var _ port.CheckoutBuilder = (*Service)(nil)
var _ port.CatalogLister = (*Service)(nil)

// A session is one editing session. Its lock keeps a single writer per
// ConfigStore. A closed session is saved or discarded and rejects every
// further call, including ones already waiting on the lock.
type session struct {
	mu     sync.Mutex
	store  *domain.ConfigStore
	closed bool
}

type sessions struct {
	mu sync.Mutex
	m  map[string]*session
}

func (ss *sessions) add(id string, s *session) {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	ss.m[id] = s
}

func (ss *sessions) get(id string) (*session, bool) {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	s, ok := ss.m[id]
	return s, ok
}

func (ss *sessions) remove(id string) bool {
	ss.mu.Lock()
	defer ss.mu.Unlock()
	_, ok := ss.m[id]
	delete(ss.m, id)
	return ok
}

type Service struct {
	catalog        port.CatalogProvider
	storage        port.CheckoutsStorage
	eventsProducer port.CheckoutEventsProducer
	previews       domain.PreviewBuilder
	sessions       *sessions
}

// New creates the builder service. eventsProducer may be nil.
func New(
	catalog port.CatalogProvider,
	storage port.CheckoutsStorage,
	eventsProducer port.CheckoutEventsProducer,
	formatter domain.PriceFormatter,
) Service {
	return Service{
		catalog:        catalog,
		storage:        storage,
		eventsProducer: eventsProducer,
		previews:       domain.NewPreviewBuilder(formatter),
		sessions:       &sessions{m: make(map[string]*session)},
	}
}

func (s Service) ListProducts(ctx context.Context) ([]domain.Product, error) {
	const op = "Service.ListProducts"

	if err := ctx.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	ps, err := s.catalog.ListProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return ps, nil
}

func (s Service) StartSession(ctx context.Context, ownerID string) (string, error) {
	const op = "Service.StartSession"

	if err := ctx.Err(); err != nil {
		return "", fmt.Errorf("%s: %w", op, err)
	}

	id := uuid.NewString()
	s.sessions.add(id, &session{store: domain.NewConfigStore(id, ownerID)})

	slog.Debug("session started", "op", op, "sessionID", id, "ownerID", ownerID)
	return id, nil
}

func (s Service) DiscardSession(ctx context.Context, sessionID string) error {
	const op = "Service.DiscardSession"

	if err := ctx.Err(); err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	sess, ok := s.sessions.get(sessionID)
	if !ok {
		return fmt.Errorf("%s: %w", op, domain.ErrSessionNotFound)
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	if sess.closed {
		return fmt.Errorf("%s: %w", op, domain.ErrSessionNotFound)
	}
	sess.closed = true
	s.sessions.remove(sessionID)
	return nil
}

// Snapshot returns the session configuration and whether it is save-ready.
func (s Service) Snapshot(
	ctx context.Context, sessionID string,
) (cfg domain.CheckoutConfiguration, ready bool, err error) {
	const op = "Service.Snapshot"

	err = s.withSession(ctx, sessionID, func(store *domain.ConfigStore) error {
		cfg = store.Snapshot()
		ready = store.IsSaveReady()
		return nil
	})
	if err != nil {
		return domain.CheckoutConfiguration{}, false, fmt.Errorf("%s: %w", op, err)
	}
	return cfg, ready, nil
}

// SelectProduct returns the offers dropped because they no longer fit
// the new base price.
func (s Service) SelectProduct(
	ctx context.Context, sessionID, productID string,
) (dropped []domain.Product, err error) {
	const op = "Service.SelectProduct"
	log := slog.With("op", op)

	product, err := s.findProduct(ctx, productID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	err = s.withSession(ctx, sessionID, func(store *domain.ConfigStore) error {
		dropped = store.SelectProduct(product)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	if len(dropped) != 0 {
		log.Info("offers dropped on reselection",
			"sessionID", sessionID, "productID", productID, "nDropped", len(dropped))
	}
	return dropped, nil
}

func (s Service) ClearSelection(ctx context.Context, sessionID string) error {
	const op = "Service.ClearSelection"

	err := s.withSession(ctx, sessionID, func(store *domain.ConfigStore) error {
		store.ClearSelection()
		return nil
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s Service) SetField(
	ctx context.Context, sessionID string, name domain.Field, value any,
) error {
	const op = "Service.SetField"

	err := s.withSession(ctx, sessionID, func(store *domain.ConfigStore) error {
		return store.SetField(name, value)
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s Service) SetThemeField(
	ctx context.Context, sessionID string, name domain.ThemeField, value any,
) error {
	const op = "Service.SetThemeField"

	err := s.withSession(ctx, sessionID, func(store *domain.ConfigStore) error {
		return store.SetThemeField(name, value)
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s Service) ApplyPreset(ctx context.Context, sessionID, preset string) error {
	const op = "Service.ApplyPreset"

	err := s.withSession(ctx, sessionID, func(store *domain.ConfigStore) error {
		return store.ApplyPreset(preset)
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s Service) EligibleOffers(
	ctx context.Context, sessionID string,
) (upsells, downsells []domain.Product, err error) {
	const op = "Service.EligibleOffers"

	catalog, err := s.catalog.ListProducts(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}

	err = s.withSession(ctx, sessionID, func(store *domain.ConfigStore) error {
		upsells, downsells = store.EligibleOffers(catalog)
		return nil
	})
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", op, err)
	}
	return upsells, downsells, nil
}

func (s Service) AddOffer(
	ctx context.Context, sessionID string, kind domain.OfferKind, productID string,
) error {
	const op = "Service.AddOffer"

	product, err := s.findProduct(ctx, productID)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	err = s.withSession(ctx, sessionID, func(store *domain.ConfigStore) error {
		if kind == domain.Downsell {
			return store.AddDownsell(product)
		}
		return store.AddUpsell(product)
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

func (s Service) RemoveOffer(
	ctx context.Context, sessionID string, kind domain.OfferKind, productID string,
) error {
	const op = "Service.RemoveOffer"

	err := s.withSession(ctx, sessionID, func(store *domain.ConfigStore) error {
		if kind == domain.Downsell {
			store.RemoveDownsell(productID)
		} else {
			store.RemoveUpsell(productID)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}

// Preview returns false when there is nothing to preview.
func (s Service) Preview(
	ctx context.Context, sessionID string,
) (domain.PreviewModel, bool, error) {
	const op = "Service.Preview"

	catalog, err := s.catalog.ListProducts(ctx)
	if err != nil {
		return domain.PreviewModel{}, false, fmt.Errorf("%s: %w", op, err)
	}

	cfg, _, err := s.Snapshot(ctx, sessionID)
	if err != nil {
		return domain.PreviewModel{}, false, fmt.Errorf("%s: %w", op, err)
	}

	m, ok := s.previews.Build(cfg, catalog)
	return m, ok, nil
}

func (s Service) Style(
	ctx context.Context, sessionID string,
) (domain.EffectiveStyle, error) {
	const op = "Service.Style"

	cfg, _, err := s.Snapshot(ctx, sessionID)
	if err != nil {
		return domain.EffectiveStyle{}, fmt.Errorf("%s: %w", op, err)
	}
	return domain.ResolveStyle(cfg.Theme), nil
}

// Save hands the session snapshot to storage and closes the session.
//
// On a storage failure the session stays open and unchanged. Calls that
// wait on the session during a successful save fail with ErrSessionNotFound.
func (s Service) Save(
	ctx context.Context, sessionID string,
) (domain.CheckoutConfiguration, error) {
	const op = "Service.Save"
	log := slog.With("op", op)

	var snapshot domain.CheckoutConfiguration
	err := s.withSession(ctx, sessionID, func(store *domain.ConfigStore) error {
		if !store.IsSaveReady() {
			return domain.ErrNotSaveReady
		}
		snapshot = store.Snapshot()
		return s.storage.StoreCheckout(ctx, snapshot)
	}, closeOnSuccess)
	if err != nil {
		return domain.CheckoutConfiguration{}, fmt.Errorf("%s: %w", op, err)
	}

	s.sessions.remove(sessionID)

	if s.eventsProducer != nil {
		err := s.eventsProducer.ProduceCheckoutSaved(ctx, snapshot)
		if err != nil {
			log.Error("failed to produce checkout saved event",
				"checkoutID", snapshot.CheckoutID, "err", err)
		}
	}

	log.Info("checkout saved", "checkoutID", snapshot.CheckoutID,
		"ownerID", snapshot.OwnerID)
	return snapshot, nil
}

type sessionOpt int

const closeOnSuccess sessionOpt = 1

// withSession runs fn under the session lock. With closeOnSuccess the
// session is closed before the lock is released if fn succeeds.
func (s Service) withSession(
	ctx context.Context,
	sessionID string,
	fn func(*domain.ConfigStore) error,
	opts ...sessionOpt,
) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	sess, ok := s.sessions.get(sessionID)
	if !ok {
		return domain.ErrSessionNotFound
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	if sess.closed {
		return domain.ErrSessionNotFound
	}

	if err := fn(sess.store); err != nil {
		return err
	}
	if len(opts) != 0 && opts[0] == closeOnSuccess {
		sess.closed = true
	}
	return nil
}

func (s Service) findProduct(
	ctx context.Context, productID string,
) (domain.Product, error) {
	if err := ctx.Err(); err != nil {
		return domain.Product{}, err
	}
	return s.catalog.ReadProduct(ctx, productID)
}
