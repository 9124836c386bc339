package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/terraincognita07/femora/internal/db"
	"github.com/terraincognita07/femora/internal/logger"
	"github.com/terraincognita07/femora/internal/services"
)

const testSecretKey = "test-secret-key-0123456789abcdef"

type stubChat struct {
	mu       sync.Mutex
	reply    string
	received []string
}

func (stub *stubChat) Reply(_ context.Context, message string) string {
	stub.mu.Lock()
	defer stub.mu.Unlock()
	stub.received = append(stub.received, message)
	return stub.reply
}

type testApp struct {
	app     *fiber.App
	handler *Handler
	chat    *stubChat
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	return newTestAppWith(t, nil)
}

func newTestAppWith(t *testing.T, customize func(*Dependencies)) *testApp {
	t.Helper()

	database, err := db.OpenSQLite(filepath.Join(t.TempDir(), "femora-api-test.db"), nil)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := database.DB()
	if err != nil {
		t.Fatalf("open sql db: %v", err)
	}
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	repos := db.NewRepositories(database)
	chat := &stubChat{reply: "stub reply"}
	deps := Dependencies{
		Auth: services.NewAuthService(repos.Users, func(err error) bool {
			return errors.Is(err, db.ErrNotFound)
		}),
		Cycles:         services.NewCycleService(repos.Cycles),
		Discharges:     services.NewDischargeService(repos.Discharges),
		Insights:       services.NewInsightService(repos.Cycles, repos.Discharges, services.NewInsightEngine(services.DefaultInsightConfig())),
		Chat:           chat,
		Logger:         logger.NewNop(),
		SecretKey:      testSecretKey,
		Location:       time.UTC,
		RequestTimeout: 5 * time.Second,
	}
	if customize != nil {
		customize(&deps)
	}

	handler, err := NewHandler(deps)
	if err != nil {
		t.Fatalf("init handler: %v", err)
	}
	return &testApp{app: NewApp(handler, logger.NewNop()), handler: handler, chat: chat}
}

func (ta *testApp) do(t *testing.T, method string, path string, token string, body interface{}) (int, []byte) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			t.Fatalf("encode request body: %v", err)
		}
		reader = bytes.NewReader(encoded)
	}

	request := httptest.NewRequest(method, path, reader)
	if body != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		request.Header.Set("Authorization", "Bearer "+token)
	}

	response, err := ta.app.Test(request, -1)
	if err != nil {
		t.Fatalf("%s %s failed: %v", method, path, err)
	}
	defer response.Body.Close()

	payload, err := io.ReadAll(response.Body)
	if err != nil {
		t.Fatalf("read response body: %v", err)
	}
	return response.StatusCode, payload
}

func (ta *testApp) register(t *testing.T, email string, password string) authResponse {
	t.Helper()

	status, payload := ta.do(t, http.MethodPost, "/api/users/register", "", map[string]string{
		"name":     "Test User",
		"email":    email,
		"password": password,
	})
	if status != http.StatusCreated {
		t.Fatalf("register %s: expected 201, got %d: %s", email, status, payload)
	}
	var response authResponse
	decodeJSON(t, payload, &response)
	return response
}

func decodeJSON(t *testing.T, payload []byte, target interface{}) {
	t.Helper()
	if err := json.Unmarshal(payload, target); err != nil {
		t.Fatalf("decode response %s: %v", payload, err)
	}
}

func readMessage(t *testing.T, payload []byte) (string, string) {
	t.Helper()
	var body struct {
		Message string `json:"message"`
		Field   string `json:"field"`
	}
	decodeJSON(t, payload, &body)
	return body.Message, body.Field
}
