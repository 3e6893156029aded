package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fleetrent/fleetrent/internal/cache/memory"
	"github.com/fleetrent/fleetrent/internal/metrics"
	"github.com/fleetrent/fleetrent/internal/repository/sqlite"
	"github.com/fleetrent/fleetrent/internal/service"
	"github.com/fleetrent/fleetrent/internal/storage"
)

// newTestAPI wires the full stack over an in-memory database and a
// temporary image directory.
func newTestAPI(t *testing.T) http.Handler {
	t.Helper()

	ctx := context.Background()
	db, err := sqlite.NewDB(ctx, sqlite.DefaultConfig(":memory:"), zerolog.Nop())
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })
	require.NoError(t, db.Migrate(ctx))

	repos := sqlite.NewRepositories(db)

	tokenCache := memory.NewCache()
	t.Cleanup(tokenCache.Stop)

	images, err := storage.NewFSStore(t.TempDir())
	require.NoError(t, err)

	logger := zerolog.Nop()
	userService := service.NewUserService(repos.User, logger)
	tokenService := service.NewTokenService(repos.Token, repos.User, userService, tokenCache, logger)
	vehicleService := service.NewVehicleService(repos.Vehicle, repos.Agreement, images, logger)
	customerService := service.NewCustomerService(repos.Customer, repos.Agreement, logger)
	agreementService := service.NewAgreementService(repos.Agreement, repos.Customer, repos.Vehicle, logger)

	return NewRouter(RouterConfig{
		UserHandler:      NewUserHandler(userService, tokenService, logger),
		VehicleHandler:   NewVehicleHandler(vehicleService, logger),
		CustomerHandler:  NewCustomerHandler(customerService, logger),
		AgreementHandler: NewAgreementHandler(agreementService, logger),
		TokenValidator:   tokenService,
		Database:         db,
		Metrics:          metrics.New(),
		Logger:           logger,
	})
}

// do performs one request against the API and records the response.
func do(t *testing.T, api http.Handler, method, path, token string, body any) *httptest.ResponseRecorder {
	t.Helper()

	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Token "+token)
	}

	rec := httptest.NewRecorder()
	api.ServeHTTP(rec, req)
	return rec
}

// decode unmarshals a JSON response body into a generic map.
func decode(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()

	var out map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), "body: %s", rec.Body.String())
	return out
}

// decodeList unmarshals a JSON array response body.
func decodeList(t *testing.T, rec *httptest.ResponseRecorder) []map[string]any {
	t.Helper()

	var out []map[string]any
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out), "body: %s", rec.Body.String())
	return out
}

// registerAndLogin creates an account and returns its bearer token.
func registerAndLogin(t *testing.T, api http.Handler, email string) string {
	t.Helper()

	rec := do(t, api, http.MethodPost, "/api/users", "", map[string]string{
		"email":    email,
		"name":     "Test User",
		"password": "secret",
	})
	require.Equal(t, http.StatusCreated, rec.Code, "body: %s", rec.Body.String())

	rec = do(t, api, http.MethodPost, "/api/users/token", "", map[string]string{
		"email":    email,
		"password": "secret",
	})
	require.Equal(t, http.StatusOK, rec.Code, "body: %s", rec.Body.String())

	token, ok := decode(t, rec)["token"].(string)
	require.True(t, ok)
	require.Len(t, token, 40)
	return token
}

func vehicleBody() map[string]any {
	return map[string]any{
		"vehicle_type":     "sedan",
		"vehicle_name":     "Corolla",
		"registration_no":  "ABC-123",
		"daily_min_rate":   "25.000",
		"daily_max_rate":   "40.000",
		"monthly_min_rate": "500.000",
		"monthly_max_rate": "700.000",
		"status":           "available",
	}
}

func customerBody() map[string]any {
	return map[string]any{
		"customer_type":   "individual",
		"customer_name":   "Jordan Smith",
		"cr_id_no":        "CR-1001",
		"customer_email":  "jordan@example.com",
		"customer_mobile": "+1-555-0100",
	}
}

func agreementBody(customerID, vehicleID any) map[string]any {
	return map[string]any{
		"rent_type":    "daily",
		"agreement_no": "AG-2026-001",
		"deposit_type": "cash",
		"checkin_date": "2026-08-01",
		"customer":     customerID,
		"vehicle":      vehicleID,
	}
}

func createVehicle(t *testing.T, api http.Handler, token string) float64 {
	t.Helper()

	rec := do(t, api, http.MethodPost, "/api/rent/vehicles", token, vehicleBody())
	require.Equal(t, http.StatusCreated, rec.Code, "body: %s", rec.Body.String())
	return decode(t, rec)["id"].(float64)
}

func TestHealth(t *testing.T) {
	api := newTestAPI(t)

	rec := do(t, api, http.MethodGet, "/health", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "healthy", decode(t, rec)["status"])

	rec = do(t, api, http.MethodGet, "/metrics", "", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthentication(t *testing.T) {
	api := newTestAPI(t)

	t.Run("no token", func(t *testing.T) {
		rec := do(t, api, http.MethodGet, "/api/rent/vehicles", "", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
		assert.Contains(t, decode(t, rec), "detail")
	})

	t.Run("bogus token", func(t *testing.T) {
		rec := do(t, api, http.MethodGet, "/api/rent/vehicles", "ffffffffffffffffffffffffffffffffffffffff", nil)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("bearer scheme accepted", func(t *testing.T) {
		token := registerAndLogin(t, api, "bearer@example.com")

		req := httptest.NewRequest(http.MethodGet, "/api/rent/vehicles", nil)
		req.Header.Set("Authorization", "Bearer "+token)
		rec := httptest.NewRecorder()
		api.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("repeated login returns same token", func(t *testing.T) {
		token := registerAndLogin(t, api, "stable@example.com")

		rec := do(t, api, http.MethodPost, "/api/users/token", "", map[string]string{
			"email":    "stable@example.com",
			"password": "secret",
		})
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, token, decode(t, rec)["token"])
	})

	t.Run("bad credentials", func(t *testing.T) {
		registerAndLogin(t, api, "creds@example.com")

		rec := do(t, api, http.MethodPost, "/api/users/token", "", map[string]string{
			"email":    "creds@example.com",
			"password": "wrong",
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, decode(t, rec), "non_field_errors")
	})
}

func TestUserRegistration(t *testing.T) {
	api := newTestAPI(t)

	t.Run("success", func(t *testing.T) {
		rec := do(t, api, http.MethodPost, "/api/users", "", map[string]string{
			"email":    "New@Example.COM",
			"name":     "New User",
			"password": "secret",
		})
		require.Equal(t, http.StatusCreated, rec.Code)

		body := decode(t, rec)
		assert.Equal(t, "New@example.com", body["email"])
		assert.Equal(t, "New User", body["name"])
		assert.NotContains(t, body, "password")
		assert.NotContains(t, body, "password_hash")
		assert.NotContains(t, body, "is_superuser")
	})

	t.Run("duplicate email", func(t *testing.T) {
		rec := do(t, api, http.MethodPost, "/api/users", "", map[string]string{
			"email":    "new@EXAMPLE.com",
			"password": "secret",
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, decode(t, rec), "email")
	})

	t.Run("missing email", func(t *testing.T) {
		rec := do(t, api, http.MethodPost, "/api/users", "", map[string]string{"password": "secret"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, decode(t, rec), "email")
	})

	t.Run("short password", func(t *testing.T) {
		rec := do(t, api, http.MethodPost, "/api/users", "", map[string]string{
			"email":    "short@example.com",
			"password": "1234",
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, decode(t, rec), "password")
	})
}

func TestUserProfile(t *testing.T) {
	api := newTestAPI(t)
	token := registerAndLogin(t, api, "me@example.com")

	t.Run("get", func(t *testing.T) {
		rec := do(t, api, http.MethodGet, "/api/users/me", token, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "me@example.com", decode(t, rec)["email"])
	})

	t.Run("put requires all fields", func(t *testing.T) {
		rec := do(t, api, http.MethodPut, "/api/users/me", token, map[string]string{"name": "Renamed"})
		assert.Equal(t, http.StatusBadRequest, rec.Code)

		body := decode(t, rec)
		assert.Contains(t, body, "password")
		assert.NotContains(t, body, "name")
	})

	t.Run("patch name only", func(t *testing.T) {
		rec := do(t, api, http.MethodPatch, "/api/users/me", token, map[string]string{"name": "Renamed"})
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "Renamed", decode(t, rec)["name"])
	})

	t.Run("patched password works for login", func(t *testing.T) {
		rec := do(t, api, http.MethodPatch, "/api/users/me", token, map[string]string{"password": "changed"})
		require.Equal(t, http.StatusOK, rec.Code)

		rec = do(t, api, http.MethodPost, "/api/users/token", "", map[string]string{
			"email":    "me@example.com",
			"password": "changed",
		})
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestVehicleEndpoints(t *testing.T) {
	api := newTestAPI(t)
	token := registerAndLogin(t, api, "fleet@example.com")

	t.Run("empty list is an array", func(t *testing.T) {
		rec := do(t, api, http.MethodGet, "/api/rent/vehicles", token, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "[]", rec.Body.String()[:2])
	})

	t.Run("create returns detail shape", func(t *testing.T) {
		rec := do(t, api, http.MethodPost, "/api/rent/vehicles", token, vehicleBody())
		require.Equal(t, http.StatusCreated, rec.Code)

		body := decode(t, rec)
		assert.Equal(t, "Corolla", body["vehicle_name"])
		assert.Contains(t, body, "daily_max_rate")
		assert.Contains(t, body, "monthly_max_rate")
		assert.NotContains(t, body, "user_id")
	})

	t.Run("create with missing fields", func(t *testing.T) {
		rec := do(t, api, http.MethodPost, "/api/rent/vehicles", token, map[string]any{
			"vehicle_name": "Incomplete",
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)

		body := decode(t, rec)
		assert.NotContains(t, body, "vehicle_name")
		required, ok := body["status"].([]any)
		require.True(t, ok)
		assert.Equal(t, "This field is required.", required[0])
	})

	t.Run("list uses reduced shape", func(t *testing.T) {
		rec := do(t, api, http.MethodGet, "/api/rent/vehicles", token, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		list := decodeList(t, rec)
		require.Len(t, list, 1)
		assert.Contains(t, list[0], "daily_min_rate")
		assert.NotContains(t, list[0], "daily_max_rate")
		assert.NotContains(t, list[0], "monthly_max_rate")
	})

	t.Run("get uses detail shape", func(t *testing.T) {
		id := createVehicle(t, api, token)

		rec := do(t, api, http.MethodGet, fmt.Sprintf("/api/rent/vehicles/%.0f", id), token, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Contains(t, decode(t, rec), "daily_max_rate")
	})

	t.Run("put requires all fields", func(t *testing.T) {
		id := createVehicle(t, api, token)

		rec := do(t, api, http.MethodPut, fmt.Sprintf("/api/rent/vehicles/%.0f", id), token, map[string]any{
			"status": "in-service",
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, decode(t, rec), "vehicle_name")
	})

	t.Run("patch updates a subset", func(t *testing.T) {
		id := createVehicle(t, api, token)

		rec := do(t, api, http.MethodPatch, fmt.Sprintf("/api/rent/vehicles/%.0f", id), token, map[string]any{
			"status": "in-service",
		})
		require.Equal(t, http.StatusOK, rec.Code)

		body := decode(t, rec)
		assert.Equal(t, "in-service", body["status"])
		assert.Equal(t, "Corolla", body["vehicle_name"])
	})

	t.Run("owner in payload is ignored", func(t *testing.T) {
		id := createVehicle(t, api, token)

		payload := map[string]any{"status": "parked", "user": 999, "id": 12345}
		rec := do(t, api, http.MethodPatch, fmt.Sprintf("/api/rent/vehicles/%.0f", id), token, payload)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, id, decode(t, rec)["id"].(float64))

		// Still readable under the original owner.
		rec = do(t, api, http.MethodGet, fmt.Sprintf("/api/rent/vehicles/%.0f", id), token, nil)
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("delete", func(t *testing.T) {
		id := createVehicle(t, api, token)

		rec := do(t, api, http.MethodDelete, fmt.Sprintf("/api/rent/vehicles/%.0f", id), token, nil)
		assert.Equal(t, http.StatusNoContent, rec.Code)

		rec = do(t, api, http.MethodGet, fmt.Sprintf("/api/rent/vehicles/%.0f", id), token, nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "Not found.", decode(t, rec)["detail"])
	})

	t.Run("trailing slash tolerated", func(t *testing.T) {
		rec := do(t, api, http.MethodGet, "/api/rent/vehicles/", token, nil)
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestOwnerIsolation(t *testing.T) {
	api := newTestAPI(t)
	alice := registerAndLogin(t, api, "alice@example.com")
	bob := registerAndLogin(t, api, "bob@example.com")

	id := createVehicle(t, api, alice)
	path := fmt.Sprintf("/api/rent/vehicles/%.0f", id)

	t.Run("list is scoped", func(t *testing.T) {
		rec := do(t, api, http.MethodGet, "/api/rent/vehicles", bob, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Len(t, decodeList(t, rec), 0)
	})

	t.Run("get is scoped", func(t *testing.T) {
		rec := do(t, api, http.MethodGet, path, bob, nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)
		assert.Equal(t, "Not found.", decode(t, rec)["detail"])
	})

	t.Run("update is scoped", func(t *testing.T) {
		rec := do(t, api, http.MethodPatch, path, bob, map[string]any{"status": "stolen"})
		assert.Equal(t, http.StatusNotFound, rec.Code)

		// The record is unchanged for its owner.
		rec = do(t, api, http.MethodGet, path, alice, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "available", decode(t, rec)["status"])
	})

	t.Run("delete is scoped", func(t *testing.T) {
		rec := do(t, api, http.MethodDelete, path, bob, nil)
		assert.Equal(t, http.StatusNotFound, rec.Code)

		rec = do(t, api, http.MethodGet, path, alice, nil)
		assert.Equal(t, http.StatusOK, rec.Code)
	})
}

func TestCustomerEndpoints(t *testing.T) {
	api := newTestAPI(t)
	token := registerAndLogin(t, api, "fleet@example.com")

	rec := do(t, api, http.MethodPost, "/api/rent/customers", token, customerBody())
	require.Equal(t, http.StatusCreated, rec.Code)

	body := decode(t, rec)
	id := body["id"].(float64)
	assert.Contains(t, body, "is_blocked")
	assert.Contains(t, body, "customer_address")

	t.Run("list uses reduced shape", func(t *testing.T) {
		rec := do(t, api, http.MethodGet, "/api/rent/customers", token, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		list := decodeList(t, rec)
		require.Len(t, list, 1)
		assert.Contains(t, list[0], "customer_mobile")
		assert.NotContains(t, list[0], "is_blocked")
		assert.NotContains(t, list[0], "customer_address")
	})

	t.Run("patch blocks customer", func(t *testing.T) {
		rec := do(t, api, http.MethodPatch, fmt.Sprintf("/api/rent/customers/%.0f", id), token, map[string]any{
			"is_blocked": true,
		})
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, true, decode(t, rec)["is_blocked"])
	})

	t.Run("put without optional fields succeeds", func(t *testing.T) {
		rec := do(t, api, http.MethodPut, fmt.Sprintf("/api/rent/customers/%.0f", id), token, customerBody())
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("delete", func(t *testing.T) {
		rec := do(t, api, http.MethodDelete, fmt.Sprintf("/api/rent/customers/%.0f", id), token, nil)
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})
}

func TestAgreementEndpoints(t *testing.T) {
	api := newTestAPI(t)
	token := registerAndLogin(t, api, "fleet@example.com")

	rec := do(t, api, http.MethodPost, "/api/rent/customers", token, customerBody())
	require.Equal(t, http.StatusCreated, rec.Code)
	customerID := decode(t, rec)["id"].(float64)

	vehicleID := createVehicle(t, api, token)

	t.Run("create", func(t *testing.T) {
		rec := do(t, api, http.MethodPost, "/api/rent/agreement", token, agreementBody(customerID, vehicleID))
		require.Equal(t, http.StatusCreated, rec.Code)

		body := decode(t, rec)
		assert.Equal(t, "2026-08-01", body["checkin_date"])
		assert.Nil(t, body["checkout_date"])
		assert.Equal(t, customerID, body["customer"])
		assert.Equal(t, vehicleID, body["vehicle"])
	})

	t.Run("unknown customer reference", func(t *testing.T) {
		rec := do(t, api, http.MethodPost, "/api/rent/agreement", token, agreementBody(999, vehicleID))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, decode(t, rec), "customer")
	})

	t.Run("unknown vehicle reference", func(t *testing.T) {
		rec := do(t, api, http.MethodPost, "/api/rent/agreement", token, agreementBody(customerID, 999))
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, decode(t, rec), "vehicle")
	})

	t.Run("missing fields", func(t *testing.T) {
		rec := do(t, api, http.MethodPost, "/api/rent/agreement", token, map[string]any{
			"rent_type": "daily",
		})
		assert.Equal(t, http.StatusBadRequest, rec.Code)

		body := decode(t, rec)
		assert.Contains(t, body, "agreement_no")
		assert.Contains(t, body, "checkin_date")
		assert.Contains(t, body, "customer")
		assert.Contains(t, body, "vehicle")
	})

	t.Run("list uses reduced shape", func(t *testing.T) {
		rec := do(t, api, http.MethodGet, "/api/rent/agreement", token, nil)
		require.Equal(t, http.StatusOK, rec.Code)

		list := decodeList(t, rec)
		require.NotEmpty(t, list)
		assert.Contains(t, list[0], "checkin_date")
		assert.NotContains(t, list[0], "checkout_date")
		assert.NotContains(t, list[0], "external_customer_name")
	})

	t.Run("patch sets checkout date", func(t *testing.T) {
		rec := do(t, api, http.MethodGet, "/api/rent/agreement", token, nil)
		require.Equal(t, http.StatusOK, rec.Code)
		id := decodeList(t, rec)[0]["id"].(float64)

		rec = do(t, api, http.MethodPatch, fmt.Sprintf("/api/rent/agreement/%.0f", id), token, map[string]any{
			"checkout_date": "2026-08-15",
		})
		require.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "2026-08-15", decode(t, rec)["checkout_date"])
	})
}

func TestProtectedDeletes(t *testing.T) {
	api := newTestAPI(t)
	token := registerAndLogin(t, api, "fleet@example.com")

	rec := do(t, api, http.MethodPost, "/api/rent/customers", token, customerBody())
	require.Equal(t, http.StatusCreated, rec.Code)
	customerID := decode(t, rec)["id"].(float64)

	vehicleID := createVehicle(t, api, token)

	rec = do(t, api, http.MethodPost, "/api/rent/agreement", token, agreementBody(customerID, vehicleID))
	require.Equal(t, http.StatusCreated, rec.Code)
	agreementID := decode(t, rec)["id"].(float64)

	t.Run("vehicle is protected", func(t *testing.T) {
		rec := do(t, api, http.MethodDelete, fmt.Sprintf("/api/rent/vehicles/%.0f", vehicleID), token, nil)
		assert.Equal(t, http.StatusConflict, rec.Code)
		assert.Contains(t, decode(t, rec), "detail")
	})

	t.Run("customer is protected", func(t *testing.T) {
		rec := do(t, api, http.MethodDelete, fmt.Sprintf("/api/rent/customers/%.0f", customerID), token, nil)
		assert.Equal(t, http.StatusConflict, rec.Code)
	})

	t.Run("agreement delete lifts protection", func(t *testing.T) {
		rec := do(t, api, http.MethodDelete, fmt.Sprintf("/api/rent/agreement/%.0f", agreementID), token, nil)
		require.Equal(t, http.StatusNoContent, rec.Code)

		rec = do(t, api, http.MethodDelete, fmt.Sprintf("/api/rent/vehicles/%.0f", vehicleID), token, nil)
		assert.Equal(t, http.StatusNoContent, rec.Code)

		rec = do(t, api, http.MethodDelete, fmt.Sprintf("/api/rent/customers/%.0f", customerID), token, nil)
		assert.Equal(t, http.StatusNoContent, rec.Code)
	})
}

func TestVehicleImageUpload(t *testing.T) {
	api := newTestAPI(t)
	token := registerAndLogin(t, api, "fleet@example.com")
	id := createVehicle(t, api, token)
	path := fmt.Sprintf("/api/rent/vehicles/%.0f/upload-image", id)

	multipartRequest := func(t *testing.T, path, field, filename string) *httptest.ResponseRecorder {
		t.Helper()

		var buf bytes.Buffer
		writer := multipart.NewWriter(&buf)
		if field != "" {
			part, err := writer.CreateFormFile(field, filename)
			require.NoError(t, err)
			_, err = part.Write([]byte("jpeg-bytes"))
			require.NoError(t, err)
		}
		require.NoError(t, writer.Close())

		req := httptest.NewRequest(http.MethodPost, path, &buf)
		req.Header.Set("Content-Type", writer.FormDataContentType())
		req.Header.Set("Authorization", "Token "+token)

		rec := httptest.NewRecorder()
		api.ServeHTTP(rec, req)
		return rec
	}

	t.Run("success", func(t *testing.T) {
		rec := multipartRequest(t, path, "image", "car.jpg")
		require.Equal(t, http.StatusOK, rec.Code, "body: %s", rec.Body.String())

		body := decode(t, rec)
		assert.Equal(t, id, body["id"].(float64))
		image, ok := body["image"].(string)
		require.True(t, ok)
		assert.Contains(t, image, "uploads/vehicle/")
		assert.Contains(t, image, ".jpg")
		assert.NotContains(t, image, "car")
		assert.NotContains(t, body, "vehicle_name")
	})

	t.Run("missing file", func(t *testing.T) {
		rec := multipartRequest(t, path, "", "")
		assert.Equal(t, http.StatusBadRequest, rec.Code)

		body := decode(t, rec)
		msgs, ok := body["image"].([]any)
		require.True(t, ok)
		assert.Equal(t, "No file was submitted.", msgs[0])
	})

	t.Run("wrong field name", func(t *testing.T) {
		rec := multipartRequest(t, path, "photo", "car.jpg")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("unknown vehicle", func(t *testing.T) {
		rec := multipartRequest(t, "/api/rent/vehicles/999/upload-image", "image", "car.jpg")
		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
