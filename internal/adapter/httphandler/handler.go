package httphandler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/zambashope/moz-checkout/internal/core/domain"
	"github.com/zambashope/moz-checkout/internal/core/port"
)

type ProductsHandler struct {
	catalog   port.CatalogLister
	formatter domain.PriceFormatter
}

func RegisterProducts(
	mux *http.ServeMux, catalog port.CatalogLister, formatter domain.PriceFormatter,
) {
	h := ProductsHandler{catalog, formatter}
	mux.HandleFunc("GET /v1/products", h.GetProducts)
	mux.HandleFunc("GET /v1/theme/options", h.GetThemeOptions)
}

func (h ProductsHandler) GetProducts(w http.ResponseWriter, r *http.Request) {
	const op = "ProductsHandler.GetProducts"
	log := slog.With("op", op)

	ps, err := h.catalog.ListProducts(r.Context())
	if err != nil {
		writeError(w, log, err)
		return
	}
	writeJSON(w, log, http.StatusOK, toProductsDTO(ps, h.formatter))
}

func (h ProductsHandler) GetThemeOptions(w http.ResponseWriter, r *http.Request) {
	const op = "ProductsHandler.GetThemeOptions"
	log := slog.With("op", op)

	opts := ThemeOptions{
		Presets: make([]ColorPreset, 0, len(domain.ColorPresets)),
		Fonts:   make([]FontOption, 0, len(domain.FontOptions)),
	}
	for _, p := range domain.ColorPresets {
		opts.Presets = append(opts.Presets, ColorPreset(p))
	}
	for _, f := range domain.FontOptions {
		opts.Fonts = append(opts.Fonts, FontOption(f))
	}
	writeJSON(w, log, http.StatusOK, opts)
}

type CheckoutsHandler struct {
	builder   port.CheckoutBuilder
	formatter domain.PriceFormatter
}

func RegisterCheckouts(
	mux *http.ServeMux, builder port.CheckoutBuilder, formatter domain.PriceFormatter,
) {
	h := CheckoutsHandler{builder, formatter}
	mux.HandleFunc("POST /v1/checkouts", h.PostCheckout)
	mux.HandleFunc("GET /v1/checkouts/{id}", h.GetCheckout)
	mux.HandleFunc("DELETE /v1/checkouts/{id}", h.DeleteCheckout)

	mux.HandleFunc("PUT /v1/checkouts/{id}/product", h.PutProduct)
	mux.HandleFunc("DELETE /v1/checkouts/{id}/product", h.DeleteProduct)
	mux.HandleFunc("PATCH /v1/checkouts/{id}/fields", h.PatchField)
	mux.HandleFunc("PATCH /v1/checkouts/{id}/theme", h.PatchTheme)
	mux.HandleFunc("PUT /v1/checkouts/{id}/theme/preset", h.PutPreset)

	mux.HandleFunc("GET /v1/checkouts/{id}/offers", h.GetOffers)
	mux.HandleFunc("POST /v1/checkouts/{id}/upsells", h.postOffer(domain.Upsell))
	mux.HandleFunc("POST /v1/checkouts/{id}/downsells", h.postOffer(domain.Downsell))
	mux.HandleFunc(
		"DELETE /v1/checkouts/{id}/upsells/{productID}", h.deleteOffer(domain.Upsell),
	)
	mux.HandleFunc(
		"DELETE /v1/checkouts/{id}/downsells/{productID}", h.deleteOffer(domain.Downsell),
	)

	mux.HandleFunc("GET /v1/checkouts/{id}/preview", h.GetPreview)
	mux.HandleFunc("GET /v1/checkouts/{id}/style", h.GetStyle)
	mux.HandleFunc("POST /v1/checkouts/{id}/save", h.PostSave)
}

func (h CheckoutsHandler) PostCheckout(w http.ResponseWriter, r *http.Request) {
	const op = "CheckoutsHandler.PostCheckout"
	log := slog.With("op", op)

	var req StartCheckoutRequest
	if !decodeJSON(w, r, log, &req) {
		return
	}

	id, err := h.builder.StartSession(r.Context(), req.MerchantID)
	if err != nil {
		writeError(w, log, err)
		return
	}
	writeJSON(w, log, http.StatusCreated, StartCheckoutResponse{CheckoutID: id})
}

func (h CheckoutsHandler) GetCheckout(w http.ResponseWriter, r *http.Request) {
	const op = "CheckoutsHandler.GetCheckout"
	log := slog.With("op", op)

	cfg, ready, err := h.builder.Snapshot(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, log, err)
		return
	}
	writeJSON(w, log, http.StatusOK, toCheckoutDTO(cfg, ready, h.formatter))
}

func (h CheckoutsHandler) DeleteCheckout(w http.ResponseWriter, r *http.Request) {
	const op = "CheckoutsHandler.DeleteCheckout"
	log := slog.With("op", op)

	if err := h.builder.DiscardSession(r.Context(), r.PathValue("id")); err != nil {
		writeError(w, log, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h CheckoutsHandler) PutProduct(w http.ResponseWriter, r *http.Request) {
	const op = "CheckoutsHandler.PutProduct"
	log := slog.With("op", op)

	var req ProductRequest
	if !decodeJSON(w, r, log, &req) {
		return
	}

	id := r.PathValue("id")
	dropped, err := h.builder.SelectProduct(r.Context(), id, req.ProductID)
	if err != nil {
		writeError(w, log, err)
		return
	}
	if len(dropped) != 0 {
		log.Debug("offers dropped", "checkoutID", id, "nDropped", len(dropped))
	}
	h.writeCheckout(w, r, log, id)
}

func (h CheckoutsHandler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	const op = "CheckoutsHandler.DeleteProduct"
	log := slog.With("op", op)

	id := r.PathValue("id")
	if err := h.builder.ClearSelection(r.Context(), id); err != nil {
		writeError(w, log, err)
		return
	}
	h.writeCheckout(w, r, log, id)
}

func (h CheckoutsHandler) PatchField(w http.ResponseWriter, r *http.Request) {
	const op = "CheckoutsHandler.PatchField"
	log := slog.With("op", op)

	var req FieldRequest
	if !decodeJSON(w, r, log, &req) {
		return
	}

	id := r.PathValue("id")
	err := h.builder.SetField(r.Context(), id, domain.Field(req.Name), req.Value)
	if err != nil {
		writeError(w, log, err)
		return
	}
	h.writeCheckout(w, r, log, id)
}

func (h CheckoutsHandler) PatchTheme(w http.ResponseWriter, r *http.Request) {
	const op = "CheckoutsHandler.PatchTheme"
	log := slog.With("op", op)

	var req FieldRequest
	if !decodeJSON(w, r, log, &req) {
		return
	}

	id := r.PathValue("id")
	err := h.builder.SetThemeField(
		r.Context(), id, domain.ThemeField(req.Name), req.Value,
	)
	if err != nil {
		writeError(w, log, err)
		return
	}
	h.writeCheckout(w, r, log, id)
}

func (h CheckoutsHandler) PutPreset(w http.ResponseWriter, r *http.Request) {
	const op = "CheckoutsHandler.PutPreset"
	log := slog.With("op", op)

	var req PresetRequest
	if !decodeJSON(w, r, log, &req) {
		return
	}

	id := r.PathValue("id")
	if err := h.builder.ApplyPreset(r.Context(), id, req.Name); err != nil {
		writeError(w, log, err)
		return
	}
	h.writeCheckout(w, r, log, id)
}

func (h CheckoutsHandler) GetOffers(w http.ResponseWriter, r *http.Request) {
	const op = "CheckoutsHandler.GetOffers"
	log := slog.With("op", op)

	ups, downs, err := h.builder.EligibleOffers(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, log, err)
		return
	}
	writeJSON(w, log, http.StatusOK, Offers{
		Upsells:   toProductsDTO(ups, h.formatter),
		Downsells: toProductsDTO(downs, h.formatter),
	})
}

func (h CheckoutsHandler) postOffer(kind domain.OfferKind) http.HandlerFunc {
	const op = "CheckoutsHandler.postOffer"
	log := slog.With("op", op, "kind", kind)

	return func(w http.ResponseWriter, r *http.Request) {
		var req ProductRequest
		if !decodeJSON(w, r, log, &req) {
			return
		}

		id := r.PathValue("id")
		err := h.builder.AddOffer(r.Context(), id, kind, req.ProductID)
		if err != nil {
			writeError(w, log, err)
			return
		}
		h.writeCheckout(w, r, log, id)
	}
}

func (h CheckoutsHandler) deleteOffer(kind domain.OfferKind) http.HandlerFunc {
	const op = "CheckoutsHandler.deleteOffer"
	log := slog.With("op", op, "kind", kind)

	return func(w http.ResponseWriter, r *http.Request) {
		id := r.PathValue("id")
		err := h.builder.RemoveOffer(r.Context(), id, kind, r.PathValue("productID"))
		if err != nil {
			writeError(w, log, err)
			return
		}
		h.writeCheckout(w, r, log, id)
	}
}

func (h CheckoutsHandler) GetPreview(w http.ResponseWriter, r *http.Request) {
	const op = "CheckoutsHandler.GetPreview"
	log := slog.With("op", op)

	m, ok, err := h.builder.Preview(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, log, err)
		return
	}
	if !ok {
		w.WriteHeader(http.StatusNoContent)
		return
	}
	writeJSON(w, log, http.StatusOK, toPreviewDTO(m, h.formatter))
}

func (h CheckoutsHandler) GetStyle(w http.ResponseWriter, r *http.Request) {
	const op = "CheckoutsHandler.GetStyle"
	log := slog.With("op", op)

	s, err := h.builder.Style(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, log, err)
		return
	}
	writeJSON(w, log, http.StatusOK, toStyleDTO(s))
}

func (h CheckoutsHandler) PostSave(w http.ResponseWriter, r *http.Request) {
	const op = "CheckoutsHandler.PostSave"
	log := slog.With("op", op)

	cfg, err := h.builder.Save(r.Context(), r.PathValue("id"))
	if err != nil {
		writeError(w, log, err)
		return
	}
	writeJSON(w, log, http.StatusCreated, toCheckoutDTO(cfg, true, h.formatter))
}

func (h CheckoutsHandler) writeCheckout(
	w http.ResponseWriter, r *http.Request, log *slog.Logger, id string,
) {
	cfg, ready, err := h.builder.Snapshot(r.Context(), id)
	if err != nil {
		writeError(w, log, err)
		return
	}
	writeJSON(w, log, http.StatusOK, toCheckoutDTO(cfg, ready, h.formatter))
}

func decodeJSON(
	w http.ResponseWriter, r *http.Request, log *slog.Logger, v any,
) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		writeJSON(w, log, http.StatusBadRequest, ErrorResponse{Error: "invalid JSON data"})
		log.Warn("failed to parse JSON", "err", err)
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, log *slog.Logger, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		log.Error("failed to write response body", "err", err)
	}
}

func writeError(w http.ResponseWriter, log *slog.Logger, err error) {
	status, resp := errorStatus(err)
	if status >= http.StatusInternalServerError {
		log.Error("request failed", "err", err)
	} else {
		log.Debug("request rejected", "err", err)
	}
	writeJSON(w, log, status, resp)
}

func errorStatus(err error) (int, ErrorResponse) {
	var offerErr *domain.InvalidOfferError
	switch {
	case errors.As(err, &offerErr):
		return http.StatusUnprocessableEntity, ErrorResponse{
			Error:  domain.ErrInvalidOffer.Error(),
			Reason: offerErr.Reason,
		}
	case errors.Is(err, domain.ErrSessionNotFound):
		return http.StatusNotFound, ErrorResponse{Error: domain.ErrSessionNotFound.Error()}
	case errors.Is(err, domain.ErrProductNotFound):
		return http.StatusNotFound, ErrorResponse{Error: domain.ErrProductNotFound.Error()}
	case errors.Is(err, domain.ErrUnknownField),
		errors.Is(err, domain.ErrInvalidFieldValue),
		errors.Is(err, domain.ErrUnknownPreset),
		errors.Is(err, domain.ErrNotSaveReady):
		return http.StatusUnprocessableEntity, ErrorResponse{Error: err.Error()}
	default:
		return http.StatusServiceUnavailable, ErrorResponse{Error: "service unavailable"}
	}
}
