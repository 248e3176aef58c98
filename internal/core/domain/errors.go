package domain

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidOffer      = errors.New("invalid offer")
	ErrUnknownField      = errors.New("unknown field")
	ErrInvalidFieldValue = errors.New("invalid field value")
	ErrUnknownPreset     = errors.New("unknown color preset")
	ErrSessionNotFound   = errors.New("session not found")
	ErrProductNotFound   = errors.New("product not found")
	ErrNotSaveReady      = errors.New("checkout is not ready to be saved")
)

type OfferKind string

const (
	Upsell   OfferKind = "upsell"
	Downsell OfferKind = "downsell"
)

// An InvalidOfferError is returned when attaching an offer would break the
// configuration invariants. The configuration is left unchanged.
type InvalidOfferError struct {
	Kind      OfferKind
	ProductID string
	Reason    string
}

func (e *InvalidOfferError) Error() string {
	return fmt.Sprintf("%s: %s %q: %s", ErrInvalidOffer, e.Kind, e.ProductID, e.Reason)
}

func (e *InvalidOfferError) Unwrap() error {
	return ErrInvalidOffer
}

func invalidOffer(kind OfferKind, productID, reason string) error {
	return &InvalidOfferError{Kind: kind, ProductID: productID, Reason: reason}
}
