package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"os"
	"strings"
	"testing"
	"time"

	"procurehub/internal/adapters/http/middleware"
	"procurehub/internal/adapters/storage"
	"procurehub/internal/config"
	"procurehub/internal/core/services"
	"procurehub/internal/pkg/password"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestMain(m *testing.M) {
	password.Cost = bcrypt.MinCost
	os.Exit(m.Run())
}

type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
	Error   string          `json:"error"`
}

func newTestApp(t *testing.T) *fiber.App {
	t.Helper()

	cfg := &config.Config{
		AppMode: "test",
		JWT:     config.JWTConfig{Secret: "test-secret", AccessTokenMins: 60},
		Mock:    config.MockConfig{AcceptAnyPassword: true, SeedMode: config.SeedStatic, Seed: 42},
	}

	adapters := storage.NewAdapters(storage.NewStore(storage.NewMemoryBackend()))
	seeder := config.NewSeeder(adapters, nil)
	require.NoError(t, seeder.Seed(context.Background(), config.StaticDataset(time.Now())))

	svc := services.New(services.NewStorageRepositories(adapters), cfg, services.NewEnv(0))

	app := fiber.New(fiber.Config{
		ErrorHandler: middleware.CustomErrorHandler,
		BodyLimit:    services.MaxUploadSize + 2*1024*1024,
	})
	Setup(app, Dependencies{Config: cfg, Services: svc, Adapters: adapters, Seeder: seeder})
	return app
}

func do(t *testing.T, app *fiber.App, req *http.Request) (int, envelope, *http.Response) {
	t.Helper()

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var env envelope
	_ = json.Unmarshal(body, &env)
	return resp.StatusCode, env, resp
}

func jsonRequest(method, target, token string, body any) *http.Request {
	var r io.Reader
	if body != nil {
		raw, _ := json.Marshal(body)
		r = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, target, r)
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}
	return req
}

func login(t *testing.T, app *fiber.App, email string) string {
	t.Helper()

	status, env, _ := do(t, app, jsonRequest(http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email":    email,
		"password": "anything",
	}))
	require.Equal(t, http.StatusOK, status, env.Error)

	var result struct {
		AccessToken string `json:"accessToken"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &result))
	require.NotEmpty(t, result.AccessToken)
	return result.AccessToken
}

func uploadRequest(t *testing.T, target, token, name, mimeType string, content []byte) *http.Request {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="file"; filename="`+name+`"`)
	h.Set("Content-Type", mimeType)
	part, err := w.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.WriteField("category", "drawings"))
	require.NoError(t, w.Close())

	req := httptest.NewRequest(http.MethodPost, target, &buf)
	req.Header.Set(fiber.HeaderContentType, w.FormDataContentType())
	req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	return req
}

func TestPublicRoutes(t *testing.T) {
	app := newTestApp(t)

	status, env, _ := do(t, app, httptest.NewRequest(http.MethodGet, "/health", nil))
	assert.Equal(t, http.StatusOK, status)
	assert.True(t, env.Success)

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/metrics", nil), -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	app := newTestApp(t)

	status, _, _ := do(t, app, jsonRequest(http.MethodGet, "/api/v1/projects", "", nil))
	assert.Equal(t, http.StatusUnauthorized, status)

	status, env, _ := do(t, app, jsonRequest(http.MethodGet, "/api/v1/dashboard", "not-a-jwt", nil))
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "Invalid access token", env.Error)
}

func TestLoginAndDashboard(t *testing.T) {
	app := newTestApp(t)
	token := login(t, app, "sarah.mitchell@summitbuilders.com")

	status, env, _ := do(t, app, jsonRequest(http.MethodGet, "/api/v1/auth/me", token, nil))
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(env.Data), `"id":"gc-1"`)

	status, env, _ = do(t, app, jsonRequest(http.MethodGet, "/api/v1/dashboard", token, nil))
	require.Equal(t, http.StatusOK, status)
	assert.True(t, env.Success)

	status, env, _ = do(t, app, jsonRequest(http.MethodGet, "/api/v1/notifications/unread-count", token, nil))
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"count":1}`, string(env.Data))
}

func TestLoginUnknownEmail(t *testing.T) {
	app := newTestApp(t)

	status, _, _ := do(t, app, jsonRequest(http.MethodPost, "/api/v1/auth/login", "", map[string]string{
		"email":    "nobody@example.com",
		"password": "x",
	}))
	assert.Equal(t, http.StatusNotFound, status)
}

func TestProjectRoutes(t *testing.T) {
	app := newTestApp(t)
	gc := login(t, app, "sarah.mitchell@summitbuilders.com")
	sub := login(t, app, "mike.johnson@precisionelectric.com")

	t.Run("unknown project", func(t *testing.T) {
		status, _, _ := do(t, app, jsonRequest(http.MethodGet, "/api/v1/projects/proj-missing", gc, nil))
		assert.Equal(t, http.StatusNotFound, status)
	})

	t.Run("subcontractor cannot create", func(t *testing.T) {
		status, _, _ := do(t, app, jsonRequest(http.MethodPost, "/api/v1/projects", sub, map[string]any{
			"name": "Not allowed",
		}))
		assert.Equal(t, http.StatusForbidden, status)
	})

	t.Run("review sorted by amount", func(t *testing.T) {
		status, env, _ := do(t, app, jsonRequest(http.MethodGet, "/api/v1/projects/proj-1/bids/review?sort=amount", gc, nil))
		require.Equal(t, http.StatusOK, status)

		var review struct {
			Bids []struct {
				ID string `json:"id"`
			} `json:"bids"`
		}
		require.NoError(t, json.Unmarshal(env.Data, &review))
		require.Len(t, review.Bids, 3)
		assert.Equal(t, "bid-2", review.Bids[0].ID)
	})
}

func TestUploadFile(t *testing.T) {
	app := newTestApp(t)
	gc := login(t, app, "sarah.mitchell@summitbuilders.com")
	target := "/api/v1/projects/proj-1/files"

	t.Run("accepted", func(t *testing.T) {
		status, env, _ := do(t, app, uploadRequest(t, target, gc, "site-plan.pdf", "application/pdf", []byte("%PDF-1.7")))
		assert.Equal(t, http.StatusCreated, status, env.Error)
		assert.Contains(t, string(env.Data), `"category":"drawings"`)
	})

	t.Run("unsupported type", func(t *testing.T) {
		status, _, _ := do(t, app, uploadRequest(t, target, gc, "notes.txt", "text/plain", []byte("hello")))
		assert.Equal(t, http.StatusUnsupportedMediaType, status)
	})

	t.Run("too large", func(t *testing.T) {
		big := bytes.Repeat([]byte("a"), services.MaxUploadSize+1)
		status, _, _ := do(t, app, uploadRequest(t, target, gc, "huge.pdf", "application/pdf", big))
		assert.Equal(t, http.StatusRequestEntityTooLarge, status)
	})

	t.Run("missing file", func(t *testing.T) {
		status, _, _ := do(t, app, jsonRequest(http.MethodPost, target, gc, map[string]string{}))
		assert.Equal(t, http.StatusBadRequest, status)
	})
}

func TestAwardConflict(t *testing.T) {
	app := newTestApp(t)
	gc := login(t, app, "sarah.mitchell@summitbuilders.com")

	status, env, _ := do(t, app, jsonRequest(http.MethodPost, "/api/v1/bids/bid-1/award", gc, nil))
	require.Equal(t, http.StatusOK, status, env.Error)
	assert.Contains(t, string(env.Data), `"status":"awarded"`)

	status, _, _ = do(t, app, jsonRequest(http.MethodPost, "/api/v1/bids/bid-2/award", gc, nil))
	assert.Equal(t, http.StatusConflict, status)

	status, _, _ = do(t, app, jsonRequest(http.MethodPost, "/api/v1/bids/bid-1/award", gc, nil))
	assert.Equal(t, http.StatusConflict, status)
}

func TestBidDecisionsRequireOwner(t *testing.T) {
	app := newTestApp(t)
	otherGC := login(t, app, "david.chen@ironclad.com")

	status, _, _ := do(t, app, jsonRequest(http.MethodPost, "/api/v1/bids/bid-1/award", otherGC, nil))
	assert.Equal(t, http.StatusForbidden, status)

	status, _, _ = do(t, app, jsonRequest(http.MethodGet, "/api/v1/projects/proj-1/bids/review", otherGC, nil))
	assert.Equal(t, http.StatusForbidden, status)

	admin := login(t, app, "admin@procurehub.io")
	status, _, _ = do(t, app, jsonRequest(http.MethodGet, "/api/v1/projects/proj-1/bids/review", admin, nil))
	assert.Equal(t, http.StatusOK, status)
}

func TestSettings(t *testing.T) {
	app := newTestApp(t)
	token := login(t, app, "orders@buildmart.com")

	status, env, _ := do(t, app, jsonRequest(http.MethodGet, "/api/v1/settings", token, nil))
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"theme":"light","sidebarOpen":true}`, string(env.Data))

	status, env, _ = do(t, app, jsonRequest(http.MethodPut, "/api/v1/settings", token, map[string]any{
		"theme":       "dark",
		"sidebarOpen": false,
	}))
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `{"theme":"dark","sidebarOpen":false}`, string(env.Data))

	status, _, _ = do(t, app, jsonRequest(http.MethodPut, "/api/v1/settings", token, map[string]any{"theme": "neon"}))
	assert.Equal(t, http.StatusUnprocessableEntity, status)
}

func TestAdminDataRoutes(t *testing.T) {
	app := newTestApp(t)

	t.Run("forbidden for non admins", func(t *testing.T) {
		bank := login(t, app, "lending@firstbuilders.com")
		status, _, _ := do(t, app, jsonRequest(http.MethodGet, "/api/v1/admin/data/export", bank, nil))
		assert.Equal(t, http.StatusForbidden, status)
	})

	t.Run("export clear import", func(t *testing.T) {
		admin := login(t, app, "admin@procurehub.io")

		resp, err := app.Test(jsonRequest(http.MethodGet, "/api/v1/admin/data/export", admin, nil), -1)
		require.NoError(t, err)
		require.Equal(t, http.StatusOK, resp.StatusCode)
		assert.True(t, strings.HasPrefix(resp.Header.Get(fiber.HeaderContentDisposition), "attachment"))
		snapshot, err := io.ReadAll(resp.Body)
		require.NoError(t, err)
		resp.Body.Close()

		status, _, _ := do(t, app, jsonRequest(http.MethodDelete, "/api/v1/admin/data", admin, nil))
		require.Equal(t, http.StatusOK, status)

		status, env, _ := do(t, app, jsonRequest(http.MethodGet, "/api/v1/projects", admin, nil))
		require.Equal(t, http.StatusOK, status)
		assert.Contains(t, string(env.Data), `"total":0`)

		req := httptest.NewRequest(http.MethodPost, "/api/v1/admin/data/import", bytes.NewReader(snapshot))
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+admin)
		status, env, _ = do(t, app, req)
		require.Equal(t, http.StatusOK, status, env.Error)

		status, env, _ = do(t, app, jsonRequest(http.MethodGet, "/api/v1/projects", admin, nil))
		require.Equal(t, http.StatusOK, status)
		assert.Contains(t, string(env.Data), `"total":4`)
	})
}

func TestAdminSeedRejectsUnknownMode(t *testing.T) {
	app := newTestApp(t)
	admin := login(t, app, "admin@procurehub.io")

	status, _, _ := do(t, app, jsonRequest(http.MethodPost, "/api/v1/admin/data/seed?mode=random", admin, nil))
	assert.Equal(t, http.StatusBadRequest, status)

	status, env, _ := do(t, app, jsonRequest(http.MethodPost, "/api/v1/admin/data/seed?mode=generated&seed=7", admin, nil))
	require.Equal(t, http.StatusOK, status, env.Error)
	assert.Contains(t, string(env.Data), `"mode":"generated"`)
}

func TestSupplyRoutes(t *testing.T) {
	app := newTestApp(t)
	supplier := login(t, app, "orders@buildmart.com")
	gc := login(t, app, "sarah.mitchell@summitbuilders.com")

	status, _, _ := do(t, app, jsonRequest(http.MethodPut, "/api/v1/inventory/item-1/stock", gc, map[string]int{"delta": 5}))
	assert.Equal(t, http.StatusForbidden, status)

	status, env, _ := do(t, app, jsonRequest(http.MethodGet, "/api/v1/inventory", supplier, nil))
	require.Equal(t, http.StatusOK, status)
	assert.True(t, env.Success)

	// buyers may only cancel
	status, _, _ = do(t, app, jsonRequest(http.MethodPut, "/api/v1/orders/order-2/status", login(t, app, "lisa.patel@granitecw.com"), map[string]string{"status": "confirmed"}))
	assert.Equal(t, http.StatusForbidden, status)

	status, env, _ = do(t, app, jsonRequest(http.MethodPut, "/api/v1/orders/order-2/status", supplier, map[string]string{"status": "confirmed"}))
	require.Equal(t, http.StatusOK, status, env.Error)
	assert.Contains(t, string(env.Data), `"status":"confirmed"`)
}

func TestAdminSeedHistory(t *testing.T) {
	app := newTestApp(t)
	admin := login(t, app, "admin@procurehub.io")

	status, env, _ := do(t, app, jsonRequest(http.MethodGet, "/api/v1/admin/data/history", admin, nil))
	require.Equal(t, http.StatusOK, status)
	assert.JSONEq(t, `[]`, string(env.Data))
}
