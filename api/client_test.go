package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AminovSarvarbek/telegramshopfront/helper"
	"github.com/AminovSarvarbek/telegramshopfront/models"
	"github.com/AminovSarvarbek/telegramshopfront/pkg/logger"
	"github.com/AminovSarvarbek/telegramshopfront/storage"
)

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Level: logger.LevelError, Format: "text", Output: "stderr"})
}

func newTestClient(t *testing.T, handler http.Handler) (*Client, *storage.MemoryStore) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	cache := storage.NewMemoryStore()
	client := NewClient(Options{BaseURL: server.URL, Cache: cache, Logger: testLogger()})
	return client, cache
}

func TestGetMenu(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/menu", r.URL.Path)
		assert.NotEmpty(t, r.Header.Get("X-Request-ID"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id":1,"name":"Burger","description":"Classic","price":5.5,"image":"burger.png"}]`))
	}))

	menu, err := client.GetMenu(context.Background())
	require.NoError(t, err)
	require.Len(t, menu, 1)
	assert.Equal(t, int64(1), menu[0].ID)
	assert.Equal(t, helper.Cents(550), menu[0].Price)
}

func TestIdentityHeaderAttachedFromCache(t *testing.T) {
	var gotHeader string
	client, cache := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotHeader = r.Header.Get("user")
		w.Write([]byte(`[]`))
	}))

	ctx := context.Background()

	// Without a cached identity the header stays unset.
	_, err := client.GetMenu(ctx)
	require.NoError(t, err)
	assert.Empty(t, gotHeader)

	// With one, the JSON travels verbatim.
	identity := `{"id":777,"first_name":"Alisher","hash":"abc"}`
	require.NoError(t, cache.Set(ctx, storage.KeyIdentity, identity))
	_, err = client.GetMenu(ctx)
	require.NoError(t, err)
	assert.Equal(t, identity, gotHeader)
}

func TestCreateOrder(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/orders", r.URL.Path)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))

		var body map[string]json.RawMessage
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		assert.JSONEq(t, `10`, string(body["total"]))
		assert.JSONEq(t, `[{"id":1,"name":"Burger","price":5,"quantity":2}]`, string(body["items"]))
		assert.JSONEq(t, `null`, string(body["user"]))

		w.Write([]byte(`{"success":true,"orderId":"ord-1"}`))
	}))

	resp, err := client.CreateOrder(context.Background(), models.OrderRequest{
		Items: []models.CartLine{{ID: 1, Name: "Burger", Price: 500, Quantity: 2}},
		Total: 1000,
	})
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.Equal(t, "ord-1", resp.OrderID)
}

func TestBusinessFailureIsNotATransportError(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"success":false,"message":"kitchen closed"}`))
	}))

	resp, err := client.CreateOrder(context.Background(), models.OrderRequest{})
	require.NoError(t, err)
	assert.False(t, resp.Success)
	assert.Equal(t, "kitchen closed", resp.Message)
}

func TestServerErrorCarriesMessage(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		w.Write([]byte(`{"success":false,"message":"not an admin"}`))
	}))

	_, err := client.VerifyAdmin(context.Background(), &models.Identity{ID: 1})
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusForbidden, apiErr.StatusCode)
	assert.Equal(t, "not an admin", apiErr.Message)
	assert.Equal(t, "not an admin", apiErr.Error())
}

func TestServerErrorWithoutMessageFallsBack(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))

	_, err := client.GetMenu(context.Background())
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, "request failed", apiErr.Error())
}

func TestUnreachableServerIsNoResponse(t *testing.T) {
	client := NewClient(Options{BaseURL: "http://127.0.0.1:1", Logger: testLogger()})

	_, err := client.GetMenu(context.Background())
	assert.ErrorIs(t, err, ErrNoResponse)
}

func TestVerifyAdmin(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/admin/verify", r.URL.Path)
		var identity models.Identity
		require.NoError(t, json.NewDecoder(r.Body).Decode(&identity))
		assert.Equal(t, int64(777), identity.ID)
		w.Write([]byte(`{"success":true,"isAdmin":true}`))
	}))

	resp, err := client.VerifyAdmin(context.Background(), &models.Identity{ID: 777, FirstName: "Alisher"})
	require.NoError(t, err)
	assert.True(t, resp.Success)
	assert.True(t, resp.IsAdmin)
}

func TestAddProductMultipart(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/admin/products", r.URL.Path)

		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "Cheeseburger", r.FormValue("name"))
		assert.Equal(t, "Extra cheese", r.FormValue("description"))
		assert.Equal(t, "6.5", r.FormValue("price"))

		file, header, err := r.FormFile("image")
		require.NoError(t, err)
		defer file.Close()
		assert.Equal(t, "cheese.png", header.Filename)

		w.Write([]byte(`{"success":true}`))
	}))

	resp, err := client.AddProduct(context.Background(), models.ProductInput{
		Name:        "Cheeseburger",
		Description: "Extra cheese",
		Price:       650,
		ImageName:   "cheese.png",
		ImageData:   []byte("png-bytes"),
	})
	require.NoError(t, err)
	assert.True(t, resp.Success)
}

func TestUpdateProductKeepsExistingImageURL(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "/admin/products/9", r.URL.Path)

		require.NoError(t, r.ParseMultipartForm(1<<20))
		assert.Equal(t, "https://cdn.example.com/burger.png", r.FormValue("imageUrl"))
		_, _, err := r.FormFile("image")
		assert.Error(t, err, "no image part expected")

		w.Write([]byte(`{"success":true}`))
	}))

	_, err := client.UpdateProduct(context.Background(), 9, models.ProductInput{
		Name:     "Burger",
		Price:    500,
		ImageURL: "https://cdn.example.com/burger.png",
	})
	require.NoError(t, err)
}

func TestDeleteProduct(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Equal(t, "/admin/products/4", r.URL.Path)
		w.Write([]byte(`{"success":true}`))
	}))

	resp, err := client.DeleteProduct(context.Background(), 4)
	require.NoError(t, err)
	assert.True(t, resp.Success)
}

func TestGetOrdersAndUpdateStatus(t *testing.T) {
	client, _ := newTestClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodGet && r.URL.Path == "/admin/orders":
			w.Write([]byte(`[{"id":"ord-1","items":[{"id":1,"name":"Burger","price":5,"quantity":1}],"total":5,"status":"new","createdAt":"2025-04-01T10:00:00Z"}]`))
		case r.Method == http.MethodPut && r.URL.Path == "/admin/orders/ord-1/status":
			var body map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "processing", body["status"])
			w.Write([]byte(`{"success":true}`))
		default:
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
	}))

	ctx := context.Background()
	orders, err := client.GetOrders(ctx)
	require.NoError(t, err)
	require.Len(t, orders, 1)
	assert.Equal(t, models.StatusNew, orders[0].Status)
	assert.Equal(t, helper.Cents(500), orders[0].Total)

	resp, err := client.UpdateOrderStatus(ctx, "ord-1", models.StatusProcessing)
	require.NoError(t, err)
	assert.True(t, resp.Success)
}
