package port

import (
	"context"

	"github.com/zambashope/moz-checkout/internal/core/domain"
)

// Outbound.

// ReadProduct reports a missing product with domain.ErrProductNotFound.
type CatalogProvider interface {
	ListProducts(context.Context) ([]domain.Product, error)
	ReadProduct(ctx context.Context, productID string) (domain.Product, error)
}

type CheckoutsStorage interface {
	StoreCheckout(context.Context, domain.CheckoutConfiguration) error
}

type CheckoutEventsProducer interface {
	ProduceCheckoutSaved(context.Context, domain.CheckoutConfiguration) error
}

// Inbound.

type CatalogLister interface {
	ListProducts(context.Context) ([]domain.Product, error)
}

type CheckoutBuilder interface {
	StartSession(ctx context.Context, ownerID string) (string, error)
	DiscardSession(ctx context.Context, sessionID string) error
	Snapshot(ctx context.Context, sessionID string) (domain.CheckoutConfiguration, bool, error)

	SelectProduct(ctx context.Context, sessionID, productID string) ([]domain.Product, error)
	ClearSelection(ctx context.Context, sessionID string) error
	SetField(ctx context.Context, sessionID string, name domain.Field, value any) error
	SetThemeField(ctx context.Context, sessionID string, name domain.ThemeField, value any) error
	ApplyPreset(ctx context.Context, sessionID, preset string) error

	EligibleOffers(ctx context.Context, sessionID string) (upsells, downsells []domain.Product, err error)
	AddOffer(ctx context.Context, sessionID string, kind domain.OfferKind, productID string) error
	RemoveOffer(ctx context.Context, sessionID string, kind domain.OfferKind, productID string) error

	Preview(ctx context.Context, sessionID string) (domain.PreviewModel, bool, error)
	Style(ctx context.Context, sessionID string) (domain.EffectiveStyle, error)
	Save(ctx context.Context, sessionID string) (domain.CheckoutConfiguration, error)
}
