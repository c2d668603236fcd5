package handler

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"storefront-gateway/internal/core/storage"
	"storefront-gateway/internal/features/cart/adapters"
	"storefront-gateway/internal/features/cart/domain"
	"storefront-gateway/internal/features/cart/service"

	"github.com/alicebob/miniredis/v2"
	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	mr := miniredis.RunT(t)
	store, err := storage.NewRedisAdapter("redis://" + mr.Addr())
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	svc := service.NewCartService(adapters.NewStorageRepository(store))
	h := NewCartHandler(svc)

	app := fiber.New()
	app.Get("/cart", h.Get)
	app.Post("/cart/items", h.AddItem)
	app.Put("/cart/items/:id", h.UpdateQuantity)
	app.Delete("/cart/items/:id", h.RemoveItem)
	app.Delete("/cart", h.Clear)
	return app
}

func decodeCart(t *testing.T, resp *http.Response) domain.Cart {
	t.Helper()
	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var cart domain.Cart
	require.NoError(t, json.Unmarshal(body, &cart))
	return cart
}

func addMilk(t *testing.T, app *fiber.App, quantity int) {
	t.Helper()

	body := `{
		"user_id": "user-1",
		"item": {"product_id": "p1", "name": "Fresh Milk 1L", "price": 25000, "quantity": ` + strconv.Itoa(quantity) + `}
	}`
	req := httptest.NewRequest(http.MethodPost, "/cart/items", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestCartHandler_GetEmpty(t *testing.T) {
	app := newTestApp(t)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/cart?user_id=user-1", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cart := decodeCart(t, resp)
	assert.Empty(t, cart.Items)
	assert.Zero(t, cart.TotalPrice)
}

func TestCartHandler_Get_MissingUser(t *testing.T) {
	app := newTestApp(t)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/cart", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCartHandler_AddItem(t *testing.T) {
	app := newTestApp(t)

	addMilk(t, app, 2)
	addMilk(t, app, 3)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/cart?user_id=user-1", nil))
	require.NoError(t, err)

	cart := decodeCart(t, resp)
	require.Len(t, cart.Items, 1)
	assert.Equal(t, 5, cart.Items[0].Quantity)
	assert.Equal(t, float64(125000), cart.TotalPrice)
}

func TestCartHandler_AddItem_Invalid(t *testing.T) {
	app := newTestApp(t)

	body := `{"user_id": "user-1", "item": {"product_id": "", "quantity": 1}}`
	req := httptest.NewRequest(http.MethodPost, "/cart/items", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCartHandler_UpdateQuantity(t *testing.T) {
	app := newTestApp(t)
	addMilk(t, app, 2)

	body := `{"user_id": "user-1", "quantity": 7}`
	req := httptest.NewRequest(http.MethodPut, "/cart/items/p1", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cart := decodeCart(t, resp)
	assert.Equal(t, 7, cart.TotalQuantity)
}

func TestCartHandler_UpdateQuantity_MissingItem(t *testing.T) {
	app := newTestApp(t)

	body := `{"user_id": "user-1", "quantity": 2}`
	req := httptest.NewRequest(http.MethodPut, "/cart/items/ghost", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestCartHandler_RemoveItem(t *testing.T) {
	app := newTestApp(t)
	addMilk(t, app, 2)

	resp, err := app.Test(httptest.NewRequest(http.MethodDelete, "/cart/items/p1?user_id=user-1", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	cart := decodeCart(t, resp)
	assert.Empty(t, cart.Items)
}

func TestCartHandler_Clear(t *testing.T) {
	app := newTestApp(t)
	addMilk(t, app, 2)

	resp, err := app.Test(httptest.NewRequest(http.MethodDelete, "/cart?user_id=user-1", nil))
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, err = app.Test(httptest.NewRequest(http.MethodGet, "/cart?user_id=user-1", nil))
	require.NoError(t, err)
	cart := decodeCart(t, resp)
	assert.Empty(t, cart.Items)
}
