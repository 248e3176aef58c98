package httphandler_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zambashope/moz-checkout/internal/adapter/httphandler"
	"github.com/zambashope/moz-checkout/internal/adapter/memory"
	"github.com/zambashope/moz-checkout/internal/core/domain"
	"github.com/zambashope/moz-checkout/internal/core/service"
)

type testServer struct {
	t       *testing.T
	handler http.Handler
	storage memory.CheckoutsStorage
}

func newTestServer(t *testing.T) testServer {
	t.Helper()
	catalog := memory.NewCatalog([]domain.Product{
		{ProductID: "base", Title: "Curso", Description: "Curso completo",
			Price: decimal.RequireFromString("150"), CoverImage: "curso.png"},
		{ProductID: "up", Title: "Mentoria", Price: decimal.RequireFromString("300")},
		{ProductID: "down", Title: "Ebook", Price: decimal.RequireFromString("90")},
	})
	storage := memory.NewCheckoutsStorage()
	f := domain.DefaultPriceFormatter()
	s := service.New(catalog, storage, nil, f)

	mux := http.NewServeMux()
	httphandler.RegisterProducts(mux, s, f)
	httphandler.RegisterCheckouts(mux, s, f)
	return testServer{t, httphandler.AllowJSON(mux), storage}
}

func (ts testServer) do(method, path string, body any) *httptest.ResponseRecorder {
	ts.t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(ts.t, json.NewEncoder(&buf).Encode(body))
	}
	r := httptest.NewRequest(method, path, &buf)
	if body != nil {
		r.Header.Set("Content-Type", "application/json")
	}
	w := httptest.NewRecorder()
	ts.handler.ServeHTTP(w, r)
	return w
}

func (ts testServer) start() string {
	ts.t.Helper()
	w := ts.do(http.MethodPost, "/v1/checkouts",
		httphandler.StartCheckoutRequest{MerchantID: "merchant-1"})
	require.Equal(ts.t, http.StatusCreated, w.Code)

	var resp httphandler.StartCheckoutResponse
	require.NoError(ts.t, json.NewDecoder(w.Body).Decode(&resp))
	require.NotEmpty(ts.t, resp.CheckoutID)
	return resp.CheckoutID
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.NewDecoder(w.Body).Decode(&v))
	return v
}

func TestGetProducts(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(http.MethodGet, "/v1/products", nil)
	require.Equal(t, http.StatusOK, w.Code)

	ps := decode[[]httphandler.Product](t, w)
	require.Len(t, ps, 3)
	assert.Equal(t, "base", ps[0].ProductID)
	assert.Equal(t, "150.00", ps[0].Price)
	assert.Contains(t, ps[0].FormattedPrice, "150,00")
}

func TestGetThemeOptions(t *testing.T) {
	ts := newTestServer(t)

	w := ts.do(http.MethodGet, "/v1/theme/options", nil)
	require.Equal(t, http.StatusOK, w.Code)

	opts := decode[httphandler.ThemeOptions](t, w)
	assert.Len(t, opts.Presets, len(domain.ColorPresets))
	assert.Len(t, opts.Fonts, len(domain.FontOptions))
}

func TestCheckoutFlow(t *testing.T) {
	ts := newTestServer(t)
	id := ts.start()
	base := "/v1/checkouts/" + id

	w := ts.do(http.MethodGet, base, nil)
	require.Equal(t, http.StatusOK, w.Code)
	c := decode[httphandler.Checkout](t, w)
	assert.False(t, c.SaveReady)
	assert.True(t, c.CollectPhone)
	assert.Equal(t, "merchant-1", c.OwnerID)

	w = ts.do(http.MethodGet, base+"/preview", nil)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = ts.do(http.MethodPut, base+"/product", httphandler.ProductRequest{ProductID: "base"})
	require.Equal(t, http.StatusOK, w.Code)

	w = ts.do(http.MethodGet, base+"/offers", nil)
	require.Equal(t, http.StatusOK, w.Code)
	offers := decode[httphandler.Offers](t, w)
	require.Len(t, offers.Upsells, 1)
	require.Len(t, offers.Downsells, 1)
	assert.Equal(t, "up", offers.Upsells[0].ProductID)
	assert.Equal(t, "down", offers.Downsells[0].ProductID)

	w = ts.do(http.MethodPost, base+"/upsells", httphandler.ProductRequest{ProductID: "up"})
	require.Equal(t, http.StatusOK, w.Code)
	w = ts.do(http.MethodPost, base+"/downsells", httphandler.ProductRequest{ProductID: "down"})
	require.Equal(t, http.StatusOK, w.Code)
	c = decode[httphandler.Checkout](t, w)
	assert.Len(t, c.Upsells, 1)
	assert.Len(t, c.Downsells, 1)

	w = ts.do(http.MethodPatch, base+"/fields",
		httphandler.FieldRequest{Name: "title", Value: "Oferta"})
	require.Equal(t, http.StatusOK, w.Code)
	c = decode[httphandler.Checkout](t, w)
	assert.True(t, c.SaveReady)

	w = ts.do(http.MethodPatch, base+"/theme",
		httphandler.FieldRequest{Name: "borderRadiusPx", Value: 42})
	require.Equal(t, http.StatusOK, w.Code)
	w = ts.do(http.MethodPut, base+"/theme/preset", httphandler.PresetRequest{Name: "azul"})
	require.Equal(t, http.StatusOK, w.Code)

	w = ts.do(http.MethodGet, base+"/style", nil)
	require.Equal(t, http.StatusOK, w.Code)
	style := decode[httphandler.Style](t, w)
	assert.Equal(t, 20, style.BorderRadiusPx)
	assert.Equal(t, "#2563eb", style.PrimaryColor)
	assert.Equal(t, domain.DefaultBackgroundColor, style.BackgroundColor)
	assert.True(t, style.KnownFont)

	w = ts.do(http.MethodPatch, base+"/theme",
		httphandler.FieldRequest{Name: "fontFamily", Value: "Comic Sans MS"})
	require.Equal(t, http.StatusOK, w.Code)
	w = ts.do(http.MethodGet, base+"/style", nil)
	require.Equal(t, http.StatusOK, w.Code)
	style = decode[httphandler.Style](t, w)
	assert.Equal(t, "Comic Sans MS", style.FontFamily)
	assert.False(t, style.KnownFont)

	w = ts.do(http.MethodGet, base+"/preview", nil)
	require.Equal(t, http.StatusOK, w.Code)
	p := decode[httphandler.Preview](t, w)
	assert.Equal(t, "Oferta", p.Title)
	assert.Equal(t, "Curso completo", p.Description)
	assert.Equal(t, "150.00", p.Total)
	assert.True(t, p.HasCoverImage)
	assert.Len(t, p.Upsells, 1)

	w = ts.do(http.MethodDelete, base+"/upsells/up", nil)
	require.Equal(t, http.StatusOK, w.Code)
	c = decode[httphandler.Checkout](t, w)
	assert.Empty(t, c.Upsells)

	w = ts.do(http.MethodPost, base+"/save", nil)
	require.Equal(t, http.StatusCreated, w.Code)

	saved, ok := ts.storage.ReadCheckout(t.Context(), id)
	require.True(t, ok)
	assert.Equal(t, "Oferta", saved.Title)
	assert.Equal(t, "base", saved.SelectedProductID)

	w = ts.do(http.MethodGet, base, nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestCheckoutErrors(t *testing.T) {
	ts := newTestServer(t)
	id := ts.start()
	base := "/v1/checkouts/" + id

	tests := []struct {
		name   string
		method string
		path   string
		body   any
		status int
	}{
		{"UnknownSession", http.MethodGet, "/v1/checkouts/nope", nil,
			http.StatusNotFound},
		{"UnknownProduct", http.MethodPut, base + "/product",
			httphandler.ProductRequest{ProductID: "nope"}, http.StatusNotFound},
		{"OfferWithoutSelection", http.MethodPost, base + "/upsells",
			httphandler.ProductRequest{ProductID: "up"}, http.StatusUnprocessableEntity},
		{"UnknownField", http.MethodPatch, base + "/fields",
			httphandler.FieldRequest{Name: "color", Value: "x"},
			http.StatusUnprocessableEntity},
		{"InvalidFieldValue", http.MethodPatch, base + "/fields",
			httphandler.FieldRequest{Name: "collectEmail", Value: "maybe"},
			http.StatusUnprocessableEntity},
		{"UnknownPreset", http.MethodPut, base + "/theme/preset",
			httphandler.PresetRequest{Name: "Rosa"}, http.StatusUnprocessableEntity},
		{"NotSaveReady", http.MethodPost, base + "/save", nil,
			http.StatusUnprocessableEntity},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := ts.do(tt.method, tt.path, tt.body)
			assert.Equal(t, tt.status, w.Code)
		})
	}

	t.Run("InvalidOfferReason", func(t *testing.T) {
		w := ts.do(http.MethodPut, base+"/product", httphandler.ProductRequest{ProductID: "base"})
		require.Equal(t, http.StatusOK, w.Code)

		w = ts.do(http.MethodPost, base+"/upsells", httphandler.ProductRequest{ProductID: "down"})
		require.Equal(t, http.StatusUnprocessableEntity, w.Code)
		resp := decode[httphandler.ErrorResponse](t, w)
		assert.Equal(t, domain.ErrInvalidOffer.Error(), resp.Error)
		assert.NotEmpty(t, resp.Reason)
	})

	t.Run("BadJSON", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPut, base+"/product",
			bytes.NewBufferString("{"))
		r.Header.Set("Content-Type", "application/json")
		w := httptest.NewRecorder()
		ts.handler.ServeHTTP(w, r)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("WrongMediaType", func(t *testing.T) {
		r := httptest.NewRequest(http.MethodPut, base+"/product",
			bytes.NewBufferString(`{"product_id":"base"}`))
		r.Header.Set("Content-Type", "text/plain")
		w := httptest.NewRecorder()
		ts.handler.ServeHTTP(w, r)
		assert.Equal(t, http.StatusUnsupportedMediaType, w.Code)
	})

	t.Run("Discard", func(t *testing.T) {
		w := ts.do(http.MethodDelete, base, nil)
		assert.Equal(t, http.StatusNoContent, w.Code)
		w = ts.do(http.MethodDelete, base, nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}
