package http_test

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/factory-api/internal/application/assembly"
	"github.com/jhoicas/factory-api/internal/application/auth"
	"github.com/jhoicas/factory-api/internal/application/dto"
	"github.com/jhoicas/factory-api/internal/application/report"
	"github.com/jhoicas/factory-api/internal/application/usecase"
	"github.com/jhoicas/factory-api/internal/infrastructure/memory"
	"github.com/jhoicas/factory-api/internal/infrastructure/pdf"
	apphttp "github.com/jhoicas/factory-api/internal/interfaces/http"
	"github.com/jhoicas/factory-api/pkg/metrics"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const testPassword = "correct-horse"

var testJWT = auth.JWTConfig{Secret: "test-secret-key-for-unit-tests", ExpMinutes: 30, Issuer: "factory-api-test"}

// countingLimiter permite max intentos por clave.
type countingLimiter struct {
	mu    sync.Mutex
	max   int
	count map[string]int
}

func (l *countingLimiter) Allow(_ context.Context, key string) (bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.count[key]++
	return l.count[key] <= l.max, nil
}

type testServer struct {
	app   *fiber.App
	store *memory.Store
}

// newTestServer arma la API completa sobre el store en memoria.
func newTestServer(t *testing.T) *testServer {
	t.Helper()
	store := memory.NewStore()
	reg := prometheus.NewRegistry()
	m := metrics.New(reg)
	limiter := &countingLimiter{max: 5, count: map[string]int{}}

	app := apphttp.NewApp(apphttp.AppConfig{Name: "factory-api-test"}, nil, m)
	apphttp.Router(app, apphttp.RouterDeps{
		AuthUC:      auth.NewAuthUseCase(store.Users(), testJWT, limiter, m, nil),
		UserUC:      usecase.NewUserUseCase(store.Users(), 30*24*time.Hour),
		ComponentUC: usecase.NewComponentUseCase(store.Components(), m, nil),
		DeviceUC:    usecase.NewDeviceUseCase(store.Devices(), false),
		AssembleUC:  assembly.NewAssembleUseCase(store, false, m, nil),
		ReportUC:    report.NewReportUseCase(store.Devices(), pdf.NewMarotoReportGenerator("Assembly report")),
		Gatherer:    reg,
		ServiceName: "factory-api-test",
	})
	return &testServer{app: app, store: store}
}

// do lanza una petición con cuerpo JSON opcional y token opcional.
func (s *testServer) do(t *testing.T, method, path, token string, body any) *http.Response {
	t.Helper()
	var r io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		require.NoError(t, err)
		r = bytes.NewReader(b)
	}
	req := httptest.NewRequest(method, path, r)
	if body != nil {
		req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	}
	if token != "" {
		req.Header.Set(fiber.HeaderAuthorization, "Bearer "+token)
	}
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// login envía el formulario username/password.
func (s *testServer) login(t *testing.T, email, password string) *http.Response {
	t.Helper()
	form := url.Values{"username": {email}, "password": {password}}
	req := httptest.NewRequest(http.MethodPost, "/auth/login", strings.NewReader(form.Encode()))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationForm)
	resp, err := s.app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

// userToken registra un usuario con el rol indicado y devuelve su access token.
func (s *testServer) userToken(t *testing.T, email, role string) string {
	t.Helper()
	resp := s.do(t, http.MethodPost, "/users/register", "", dto.RegisterRequest{
		Email: email, Name: role + " user", Role: role, Password: testPassword,
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	resp.Body.Close()

	resp = s.login(t, email, testPassword)
	defer resp.Body.Close()
	require.Equal(t, http.StatusOK, resp.StatusCode)
	var tok dto.TokenResponse
	decode(t, resp, &tok)
	require.Equal(t, "bearer", tok.TokenType)
	return tok.AccessToken
}

func decode(t *testing.T, resp *http.Response, dest any) {
	t.Helper()
	require.NoError(t, json.NewDecoder(resp.Body).Decode(dest))
}

func errorBody(t *testing.T, resp *http.Response) dto.ErrorResponse {
	t.Helper()
	defer resp.Body.Close()
	var e dto.ErrorResponse
	decode(t, resp, &e)
	return e
}

func ptr[T any](v T) *T { return &v }

func newJSONRequest(method, path string, body io.Reader) *http.Request {
	req := httptest.NewRequest(method, path, body)
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return req
}
