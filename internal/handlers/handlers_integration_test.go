package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"fakestore/internal/handlers"
	"fakestore/internal/repositories"
	"fakestore/internal/services"
	"fakestore/internal/validation"
)

type testEnv struct {
	app      *fiber.App
	users    *repositories.MockUserRepository
	products *repositories.MockProductRepository
	carts    *repositories.MockCartRepository
}

func setupApp() *testEnv {
	userRepo := repositories.NewMockUserRepository()
	productRepo := repositories.NewMockProductRepository()
	cartRepo := repositories.NewMockCartRepository()

	authService := services.NewAuthService(userRepo, "test-secret")
	userService := services.NewUserService(userRepo, nil)
	productService := services.NewProductService(productRepo, nil)
	cartService := services.NewCartService(cartRepo, nil)

	validate := validation.New()
	app := fiber.New()
	handlers.NewAuthHandler(authService, validate).RegisterRoutes(app)
	handlers.NewUserHandler(userService, validate).RegisterRoutes(app)
	handlers.NewProductHandler(productService, validate).RegisterRoutes(app)
	handlers.NewCartHandler(cartService, validate).RegisterRoutes(app)
	handlers.RegisterDocsRoutes(app)

	return &testEnv{
		app:      app,
		users:    userRepo,
		products: productRepo,
		carts:    cartRepo,
	}
}

func doRequest(t *testing.T, app *fiber.App, method, path string, body interface{}, headers map[string]string) (int, []byte) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(payload)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	return resp.StatusCode, raw
}

func decodeMap(t *testing.T, raw []byte) map[string]interface{} {
	t.Helper()
	var m map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &m))
	return m
}

func timeUnixZero() time.Time { return time.Unix(0, 0) }

func timeFarFuture() time.Time { return time.Now().Add(24 * time.Hour) }

func decodeList(t *testing.T, raw []byte) []map[string]interface{} {
	t.Helper()
	var l []map[string]interface{}
	require.NoError(t, json.Unmarshal(raw, &l))
	return l
}

func johnPayload() map[string]interface{} {
	return map[string]interface{}{
		"email":     "john@gmail.com",
		"username":  "johnd",
		"password":  "m38rmF$aj",
		"firstname": "john",
		"lastname":  "doe",
		"address": map[string]interface{}{
			"city":    "kilcoole",
			"street":  "7835 new road",
			"number":  3,
			"zipcode": "12926-3874",
			"geolocation": map[string]interface{}{
				"lat":  "-37.3159",
				"long": "81.1496",
			},
		},
		"phone": "12345678901",
	}
}

func TestUserLifecycle(t *testing.T) {
	env := setupApp()

	status, raw := doRequest(t, env.app, http.MethodPost, "/users", johnPayload(), nil)
	require.Equal(t, http.StatusCreated, status, string(raw))

	created := decodeMap(t, raw)
	assert.NotContains(t, created, "password")
	assert.NotContains(t, created, "_id")
	assert.NotContains(t, created, "id")
	assert.Equal(t, "john@gmail.com", created["email"])

	stored, err := env.users.GetByUsername(context.Background(), "johnd")
	require.NoError(t, err)
	id := stored.ID.Hex()

	status, raw = doRequest(t, env.app, http.MethodGet, "/users/"+id, nil, nil)
	require.Equal(t, http.StatusOK, status)
	fetched := decodeMap(t, raw)
	assert.NotContains(t, fetched, "password")
	assert.Equal(t, "johnd", fetched["username"])
	name, ok := fetched["name"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "john", name["firstname"])

	status, raw = doRequest(t, env.app, http.MethodGet, "/users", nil, nil)
	require.Equal(t, http.StatusOK, status)
	list := decodeList(t, raw)
	require.Len(t, list, 1)
	assert.NotContains(t, list[0], "password")

	status, raw = doRequest(t, env.app, http.MethodDelete, "/users/"+id, nil, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "User deleted successfully.", decodeMap(t, raw)["message"])

	status, raw = doRequest(t, env.app, http.MethodDelete, "/users/"+id, nil, nil)
	require.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "User not found.", decodeMap(t, raw)["message"])
}

func TestMalformedIDIsBadRequestNotNotFound(t *testing.T) {
	env := setupApp()

	status, raw := doRequest(t, env.app, http.MethodGet, "/users/not-an-id", nil, nil)
	require.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Invalid user ID format.", decodeMap(t, raw)["message"])

	// A well-formed but absent id is a 404 instead.
	absent := primitive.NewObjectID().Hex()
	status, raw = doRequest(t, env.app, http.MethodGet, "/users/"+absent, nil, nil)
	require.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "User not found.", decodeMap(t, raw)["message"])

	status, raw = doRequest(t, env.app, http.MethodGet, "/products/zzz", nil, nil)
	require.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Invalid product ID format.", decodeMap(t, raw)["message"])

	status, raw = doRequest(t, env.app, http.MethodGet, "/carts/user/zzz", nil, nil)
	require.Equal(t, http.StatusBadRequest, status)
	assert.Equal(t, "Invalid userId format.", decodeMap(t, raw)["message"])
}

func TestCreateUserValidationFailure(t *testing.T) {
	env := setupApp()

	status, raw := doRequest(t, env.app, http.MethodPost, "/users", map[string]interface{}{
		"email": "not-an-email",
	}, nil)
	require.Equal(t, http.StatusBadRequest, status)

	body := decodeMap(t, raw)
	assert.Equal(t, "Validation failed", body["message"])
	details, ok := body["details"].([]interface{})
	require.True(t, ok)
	assert.Contains(t, details, `"email" must be a valid email`)
	assert.Contains(t, details, `"username" is required`)
	assert.Contains(t, details, `"password" is required`)
	assert.Contains(t, details, `"phone" is required`)
}

func TestCreateUserDropsUnknownFields(t *testing.T) {
	env := setupApp()

	payload := johnPayload()
	payload["role"] = "admin"
	payload["isAdmin"] = true

	status, raw := doRequest(t, env.app, http.MethodPost, "/users", payload, nil)
	require.Equal(t, http.StatusCreated, status, string(raw))
	created := decodeMap(t, raw)
	assert.NotContains(t, created, "role")
	assert.NotContains(t, created, "isAdmin")
}

func TestUpdateUserIsIdempotent(t *testing.T) {
	env := setupApp()

	status, _ := doRequest(t, env.app, http.MethodPost, "/users", johnPayload(), nil)
	require.Equal(t, http.StatusCreated, status)
	stored, err := env.users.GetByUsername(context.Background(), "johnd")
	require.NoError(t, err)
	id := stored.ID.Hex()

	patch := map[string]interface{}{"firstname": "jane", "phone": "99999999999"}

	status, first := doRequest(t, env.app, http.MethodPut, "/users/"+id, patch, nil)
	require.Equal(t, http.StatusOK, status)
	body := decodeMap(t, first)
	assert.Equal(t, "success", body["status"])
	assert.Equal(t, "User updated successfully.", body["message"])
	data, ok := body["data"].(map[string]interface{})
	require.True(t, ok)
	name, ok := data["name"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "jane", name["firstname"])
	assert.Equal(t, "doe", name["lastname"])

	status, second := doRequest(t, env.app, http.MethodPatch, "/users/"+id, patch, nil)
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, string(first), string(second))
}

func TestLoginAndMe(t *testing.T) {
	env := setupApp()

	status, _ := doRequest(t, env.app, http.MethodPost, "/users", johnPayload(), nil)
	require.Equal(t, http.StatusCreated, status)

	status, raw := doRequest(t, env.app, http.MethodPost, "/auth/login", map[string]interface{}{
		"username": "johnd",
		"password": "m38rmF$aj",
	}, nil)
	require.Equal(t, http.StatusOK, status, string(raw))
	body := decodeMap(t, raw)
	assert.Equal(t, "success", body["status"])
	assert.Equal(t, "Login successful.", body["message"])
	token, ok := body["token"].(string)
	require.True(t, ok)
	require.NotEmpty(t, token)

	status, raw = doRequest(t, env.app, http.MethodGet, "/auth/me", nil, map[string]string{
		"Authorization": "Bearer " + token,
	})
	require.Equal(t, http.StatusOK, status)
	me := decodeMap(t, raw)
	data, ok := me["data"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, "johnd", data["username"])

	stored, err := env.users.GetByUsername(context.Background(), "johnd")
	require.NoError(t, err)
	assert.Equal(t, stored.ID.Hex(), data["id"])

	status, _ = doRequest(t, env.app, http.MethodGet, "/auth/me", nil, nil)
	assert.Equal(t, http.StatusUnauthorized, status)

	status, _ = doRequest(t, env.app, http.MethodGet, "/auth/me", nil, map[string]string{
		"Authorization": "Bearer not.a.token",
	})
	assert.Equal(t, http.StatusUnauthorized, status)
}

func TestLoginRejectionsAreIdentical(t *testing.T) {
	env := setupApp()

	status, _ := doRequest(t, env.app, http.MethodPost, "/users", johnPayload(), nil)
	require.Equal(t, http.StatusCreated, status)

	status, wrongPassword := doRequest(t, env.app, http.MethodPost, "/auth/login", map[string]interface{}{
		"username": "johnd",
		"password": "not-the-password",
	}, nil)
	require.Equal(t, http.StatusUnauthorized, status)

	status, unknownUser := doRequest(t, env.app, http.MethodPost, "/auth/login", map[string]interface{}{
		"username": "ghost",
		"password": "m38rmF$aj",
	}, nil)
	require.Equal(t, http.StatusUnauthorized, status)

	// Nothing in the body may leak which check failed.
	assert.Equal(t, wrongPassword, unknownUser)
	assert.Equal(t, "Invalid username or password.", decodeMap(t, wrongPassword)["message"])
}

func TestProductLifecycle(t *testing.T) {
	env := setupApp()

	status, raw := doRequest(t, env.app, http.MethodPost, "/products", map[string]interface{}{
		"title":       "Fjallraven backpack",
		"price":       109.95,
		"description": "Fits 15 inch laptops",
		"image":       "https://i.pravatar.cc/640",
		"category":    "men's clothing",
	}, nil)
	require.Equal(t, http.StatusCreated, status, string(raw))
	created := decodeMap(t, raw)
	assert.Equal(t, 109.95, created["price"])
	id, ok := created["id"].(string)
	require.True(t, ok)
	assert.True(t, validation.IsObjectID(id))

	status, raw = doRequest(t, env.app, http.MethodPatch, "/products/"+id, map[string]interface{}{
		"price": 99.5,
	}, nil)
	require.Equal(t, http.StatusOK, status)
	updated := decodeMap(t, raw)
	assert.Equal(t, 99.5, updated["price"])
	assert.Equal(t, "Fjallraven backpack", updated["title"])

	status, raw = doRequest(t, env.app, http.MethodDelete, "/products/"+id, nil, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Equal(t, "Product deleted successfully.", decodeMap(t, raw)["message"])

	status, raw = doRequest(t, env.app, http.MethodGet, "/products/"+id, nil, nil)
	require.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "Product not found.", decodeMap(t, raw)["message"])
}

func TestProductListingAndCategories(t *testing.T) {
	env := setupApp()

	seed := []map[string]interface{}{
		{"title": "backpack", "price": 109.95, "category": "men's clothing"},
		{"title": "ring", "price": 168.0, "category": "jewelery"},
		{"title": "monitor", "price": 999.99, "category": "electronics"},
	}
	for _, p := range seed {
		status, raw := doRequest(t, env.app, http.MethodPost, "/products", p, nil)
		require.Equal(t, http.StatusCreated, status, string(raw))
	}

	status, raw := doRequest(t, env.app, http.MethodGet, "/products?limit=2&sort=desc", nil, nil)
	require.Equal(t, http.StatusOK, status)
	list := decodeList(t, raw)
	require.Len(t, list, 2)
	assert.Equal(t, "monitor", list[0]["title"])
	assert.Equal(t, "ring", list[1]["title"])

	status, raw = doRequest(t, env.app, http.MethodGet, "/products/categories", nil, nil)
	require.Equal(t, http.StatusOK, status)
	var categories []string
	require.NoError(t, json.Unmarshal(raw, &categories))
	assert.Equal(t, []string{"men's clothing", "jewelery", "electronics"}, categories)

	status, raw = doRequest(t, env.app, http.MethodGet, "/products/category/jewelery", nil, nil)
	require.Equal(t, http.StatusOK, status)
	list = decodeList(t, raw)
	require.Len(t, list, 1)
	assert.Equal(t, "ring", list[0]["title"])

	// An unknown category is an empty 200, not an error.
	status, raw = doRequest(t, env.app, http.MethodGet, "/products/category/none", nil, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, decodeList(t, raw), 0)
}

func TestCartDateRangeFiltering(t *testing.T) {
	env := setupApp()
	userID := primitive.NewObjectID().Hex()
	productID := primitive.NewObjectID().Hex()

	for _, date := range []string{"2023-01-31", "2023-02-01"} {
		status, raw := doRequest(t, env.app, http.MethodPost, "/carts", map[string]interface{}{
			"userId": userID,
			"date":   date,
			"products": []map[string]interface{}{
				{"productId": productID, "quantity": 1},
			},
		}, nil)
		require.Equal(t, http.StatusCreated, status, string(raw))
	}

	// The end of the range is exclusive: the cart dated exactly on
	// enddate stays out.
	status, raw := doRequest(t, env.app, http.MethodGet, "/carts?startdate=2023-01-01&enddate=2023-02-01", nil, nil)
	require.Equal(t, http.StatusOK, status)
	list := decodeList(t, raw)
	require.Len(t, list, 1)
	assert.Equal(t, "2023-01-31T00:00:00Z", list[0]["date"])
	assert.NotContains(t, list[0], "id")
	assert.NotContains(t, list[0], "_id")

	// The start is inclusive.
	status, raw = doRequest(t, env.app, http.MethodGet, "/carts?startdate=2023-01-31&enddate=2023-02-02", nil, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, decodeList(t, raw), 2)

	// No range defaults to everything up to now.
	status, raw = doRequest(t, env.app, http.MethodGet, "/carts", nil, nil)
	require.Equal(t, http.StatusOK, status)
	assert.Len(t, decodeList(t, raw), 2)
}

func TestCartsByUser(t *testing.T) {
	env := setupApp()
	userID := primitive.NewObjectID().Hex()
	productID := primitive.NewObjectID().Hex()

	status, raw := doRequest(t, env.app, http.MethodPost, "/carts", map[string]interface{}{
		"userId": userID,
		"date":   "2023-01-31",
		"products": []map[string]interface{}{
			{"productId": productID, "quantity": 2},
		},
	}, nil)
	require.Equal(t, http.StatusCreated, status, string(raw))

	status, raw = doRequest(t, env.app, http.MethodGet, "/carts/user/"+userID, nil, nil)
	require.Equal(t, http.StatusOK, status)
	list := decodeList(t, raw)
	require.Len(t, list, 1)
	assert.Equal(t, userID, list[0]["userId"])

	// A well-formed user id with no carts is a 404, unlike /carts.
	status, raw = doRequest(t, env.app, http.MethodGet, "/carts/user/"+primitive.NewObjectID().Hex(), nil, nil)
	require.Equal(t, http.StatusNotFound, status)
	assert.Equal(t, "No carts found for the user", decodeMap(t, raw)["message"])
}

func TestCreateCartValidation(t *testing.T) {
	env := setupApp()

	status, raw := doRequest(t, env.app, http.MethodPost, "/carts", map[string]interface{}{
		"userId": "not-hex",
		"products": []map[string]interface{}{
			{"productId": "also-not-hex", "quantity": 1},
		},
	}, nil)
	require.Equal(t, http.StatusBadRequest, status)

	body := decodeMap(t, raw)
	assert.Equal(t, "Validation failed", body["message"])
	details, ok := body["details"].([]interface{})
	require.True(t, ok)
	assert.Contains(t, details, `"userId" must be a valid identifier`)
	assert.Contains(t, details, `"products[0].productId" must be a valid identifier`)
}

func TestUpdateCartReplacesProducts(t *testing.T) {
	env := setupApp()
	userID := primitive.NewObjectID().Hex()

	status, raw := doRequest(t, env.app, http.MethodPost, "/carts", map[string]interface{}{
		"userId": userID,
		"products": []map[string]interface{}{
			{"productId": primitive.NewObjectID().Hex(), "quantity": 1},
			{"productId": primitive.NewObjectID().Hex(), "quantity": 3},
		},
	}, nil)
	require.Equal(t, http.StatusCreated, status, string(raw))

	carts, err := env.carts.GetAll(context.Background(), repositories.CartFilter{
		Start: timeUnixZero(), End: timeFarFuture(),
	}, repositories.ListOptions{})
	require.NoError(t, err)
	require.Len(t, carts, 1)
	id := carts[0].ID.Hex()

	replacement := primitive.NewObjectID().Hex()
	status, raw = doRequest(t, env.app, http.MethodPut, "/carts/"+id, map[string]interface{}{
		"products": []map[string]interface{}{
			{"productId": replacement, "quantity": 7},
		},
	}, nil)
	require.Equal(t, http.StatusOK, status)

	updated := decodeMap(t, raw)
	products, ok := updated["products"].([]interface{})
	require.True(t, ok)
	require.Len(t, products, 1)
	item := products[0].(map[string]interface{})
	assert.Equal(t, replacement, item["productId"])
	assert.Equal(t, float64(7), item["quantity"])
	assert.Equal(t, userID, updated["userId"])
}

func TestDocsEndpoints(t *testing.T) {
	env := setupApp()

	status, raw := doRequest(t, env.app, http.MethodGet, "/docs/openapi.json", nil, nil)
	require.Equal(t, http.StatusOK, status)
	doc := decodeMap(t, raw)
	assert.Equal(t, "3.0.3", doc["openapi"])

	req := httptest.NewRequest(http.MethodGet, "/docs", nil)
	resp, err := env.app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()
	assert.Equal(t, http.StatusFound, resp.StatusCode)
	assert.Equal(t, "/docs/index.html", resp.Header.Get("Location"))
}
