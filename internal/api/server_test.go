package api

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/souhardya/vervoer-core/internal/alerts"
	"github.com/souhardya/vervoer-core/internal/backend"
	"github.com/souhardya/vervoer-core/internal/infrastructure/config"
	"github.com/souhardya/vervoer-core/internal/infrastructure/logging"
	"github.com/souhardya/vervoer-core/internal/nav"
	"github.com/souhardya/vervoer-core/internal/session"
)

// memTokens is an in-memory TokenStorage for API tests.
type memTokens struct {
	token    string
	hasToken bool
}

func (m *memTokens) Load(_ context.Context) (string, error) {
	if !m.hasToken {
		return "", session.ErrNoStoredToken
	}
	return m.token, nil
}

func (m *memTokens) Save(_ context.Context, token string) error {
	m.token = token
	m.hasToken = true
	return nil
}

func (m *memTokens) Clear(_ context.Context) error {
	m.token = ""
	m.hasToken = false
	return nil
}

// testServer wires a Server against a fake remote backend.
func testServer(t *testing.T, remote http.HandlerFunc) (*Server, *memTokens) {
	t.Helper()

	ts := httptest.NewServer(remote)
	t.Cleanup(ts.Close)

	log := logging.New(config.LoggingConfig{Level: "error", Format: "text", Output: "stdout"}, "test")

	tokens := &memTokens{}
	var store *session.Store
	client := backend.New(config.BackendConfig{BaseURL: ts.URL, Timeout: 5},
		func() string { return store.TokenString() })
	store = session.NewStore(tokens, client, nil)

	alertLog := alerts.NewLog(0)
	evaluator := alerts.NewEvaluator(alerts.DefaultThresholds(), alertLog, nil, nil)

	hub := NewHub(config.WebSocketConfig{MaxMessageSize: 8192, PingInterval: 30, PongTimeout: 10}, log)
	guard := nav.NewGuard(store, nav.SinkFunc(func(r nav.Redirect) {
		hub.Broadcast(ChannelNavRedirect, r)
	}), nil)

	srv, err := New(Deps{
		Config: config.APIConfig{
			Host: "127.0.0.1",
			Port: 0,
			Timeouts: config.APITimeoutConfig{
				Read:  5,
				Write: 5,
				Idle:  5,
			},
		},
		WS:        config.WebSocketConfig{MaxMessageSize: 8192, PingInterval: 30, PongTimeout: 10},
		Logger:    log,
		Sessions:  store,
		Tokens:    tokens,
		Backend:   client,
		Guard:     guard,
		Evaluator: evaluator,
		AlertLog:  alertLog,
		DeviceID:  "vervoer-001",
		Hub:       hub,
		Version:   "test",
	})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	return srv, tokens
}

// doRequest runs a request through the router and returns the recorder.
func doRequest(t *testing.T, srv *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	rec := httptest.NewRecorder()
	srv.buildRouter().ServeHTTP(rec, req)
	return rec
}

func TestHandleHealth(t *testing.T) {
	srv, _ := testServer(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	})

	rec := doRequest(t, srv, http.MethodGet, "/api/v1/health", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var body map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if body["status"] != "ok" || body["device"] != "vervoer-001" {
		t.Errorf("body = %v", body)
	}
}

func TestHandleLogin_EstablishesSession(t *testing.T) {
	srv, tokens := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/auth/login" {
			http.NotFound(w, r)
			return
		}
		//nolint:errcheck // test fixture
		json.NewEncoder(w).Encode(backend.Envelope{
			Success: true,
			Message: "Login successful",
			Token:   "tok-remote",
			User:    &backend.User{ID: "u1", Name: "Test", Email: "t@example.com"},
		})
	})

	rec := doRequest(t, srv, http.MethodPost, "/api/v1/auth/login",
		`{"email":"t@example.com","password":"secret123"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, body %s", rec.Code, rec.Body.String())
	}

	if !tokens.hasToken || tokens.token != "tok-remote" {
		t.Errorf("token not persisted: %+v", tokens)
	}
	if got := srv.sessions.TokenString(); got != "tok-remote" {
		t.Errorf("session token = %q, want tok-remote", got)
	}
}

func TestHandleLogin_ProfileRefetchOutlivesRequest(t *testing.T) {
	srv, _ := testServer(t, func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/login":
			//nolint:errcheck // test fixture
			json.NewEncoder(w).Encode(backend.Envelope{Success: true, Token: "tok-remote"})
		case "/auth/profile":
			// Arrives only after the login handler has already returned
			// and its request context has been canceled.
			time.Sleep(50 * time.Millisecond)
			//nolint:errcheck // test fixture
			json.NewEncoder(w).Encode(backend.Envelope{
				Success: true,
				User:    &backend.User{ID: "u1", Name: "Test"},
			})
		default:
			http.NotFound(w, r)
		}
	})

	// A real front-end server, not a recorder: ServeHTTP on a recorder keeps
	// a background request context alive and would hide the cancellation.
	front := httptest.NewServer(srv.buildRouter())
	t.Cleanup(front.Close)

	resp, err := http.Post(front.URL+"/api/v1/auth/login", "application/json",
		strings.NewReader(`{"email":"t@example.com","password":"secret123"}`))
	if err != nil {
		t.Fatalf("login request: %v", err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status = %d, want 200", resp.StatusCode)
	}

	deadline := time.Now().Add(2 * time.Second)
	for time.Now().Before(deadline) {
		if snap := srv.sessions.Snapshot(); snap.Profile != nil {
			if snap.Profile.ID != "u1" {
				t.Fatalf("Profile.ID = %q, want u1", snap.Profile.ID)
			}
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("profile never arrived after login; snapshot: %+v", srv.sessions.Snapshot())
}

func TestHandleLogin_ValidationStopsBeforeBackend(t *testing.T) {
	backendCalled := false
	srv, _ := testServer(t, func(w http.ResponseWriter, _ *http.Request) {
		backendCalled = true
		w.WriteHeader(http.StatusOK)
	})

	rec := doRequest(t, srv, http.MethodPost, "/api/v1/auth/login",
		`{"email":"not-an-email","password":""}`)
	if rec.Code != http.StatusUnprocessableEntity {
		t.Fatalf("status = %d, want 422", rec.Code)
	}
	if backendCalled {
		t.Error("invalid form must not reach the backend")
	}

	var apiErr Error
	if err := json.Unmarshal(rec.Body.Bytes(), &apiErr); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if apiErr.Fields["email"] == "" || apiErr.Fields["password"] == "" {
		t.Errorf("Fields = %v, want email and password messages", apiErr.Fields)
	}
}

func TestHandleLogin_AuthFailurePassedThrough(t *testing.T) {
	srv, tokens := testServer(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		//nolint:errcheck // test fixture
		json.NewEncoder(w).Encode(backend.Envelope{Error: true, Message: "Invalid credentials"})
	})

	rec := doRequest(t, srv, http.MethodPost, "/api/v1/auth/login",
		`{"email":"t@example.com","password":"wrongpass"}`)
	if rec.Code != http.StatusUnauthorized {
		t.Fatalf("status = %d, want 401", rec.Code)
	}

	var apiErr Error
	if err := json.Unmarshal(rec.Body.Bytes(), &apiErr); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if apiErr.Message != "Invalid credentials" {
		t.Errorf("Message = %q, want backend's verbatim message", apiErr.Message)
	}
	if tokens.hasToken {
		t.Error("failed login must not persist a token")
	}
}

func TestHandleGetSession_HidesToken(t *testing.T) {
	srv, tokens := testServer(t, func(w http.ResponseWriter, _ *http.Request) {
		//nolint:errcheck // test fixture
		json.NewEncoder(w).Encode(backend.Envelope{Success: true})
	})

	if err := tokens.Save(context.Background(), "tok-secret"); err != nil {
		t.Fatal(err)
	}
	srv.sessions.Refresh(context.Background())

	rec := doRequest(t, srv, http.MethodGet, "/api/v1/session", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "tok-secret") {
		t.Error("session view leaked the raw token")
	}

	var view SessionView
	if err := json.Unmarshal(rec.Body.Bytes(), &view); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if !view.Authenticated || view.State != session.StateAuthenticated {
		t.Errorf("view = %+v, want authenticated", view)
	}
}

func TestHandleSetLocation(t *testing.T) {
	srv, _ := testServer(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	srv.sessions.Refresh(context.Background())

	// Logged out + protected surface: the guard redirects, so the recorded
	// location settles on the auth surface.
	rec := doRequest(t, srv, http.MethodPut, "/api/v1/location", `{"location":"main"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	var report struct {
		Location string `json:"location"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &report); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if report.Location != string(nav.LocationAuth) {
		t.Errorf("location = %q, want %q after guard redirect", report.Location, nav.LocationAuth)
	}
}

func TestAlertEndpoints(t *testing.T) {
	srv, _ := testServer(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	// Push heart rate past its ceiling via the simulation endpoint.
	rec := doRequest(t, srv, http.MethodPost, "/api/v1/vitals/heart_rate/nudge", `{"delta":20}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("nudge status = %d, body %s", rec.Code, rec.Body.String())
	}

	rec = doRequest(t, srv, http.MethodGet, "/api/v1/alerts/", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("list status = %d", rec.Code)
	}
	var listing struct {
		Alerts []alerts.Entry `json:"alerts"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &listing); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if len(listing.Alerts) != 1 || listing.Alerts[0].Kind != alerts.KindWarning {
		t.Fatalf("alerts = %+v, want one warning", listing.Alerts)
	}

	rec = doRequest(t, srv, http.MethodDelete, "/api/v1/alerts/", "")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("clear status = %d, want 204", rec.Code)
	}
	if srv.alertLog.Len() != 0 {
		t.Errorf("alert log not cleared, %d entries remain", srv.alertLog.Len())
	}
}

func TestNudgeWhileOffline(t *testing.T) {
	srv, _ := testServer(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	rec := doRequest(t, srv, http.MethodPut, "/api/v1/connection", `{"connected":false}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("connection status = %d", rec.Code)
	}

	rec = doRequest(t, srv, http.MethodPost, "/api/v1/vitals/heart_rate/nudge", `{"delta":20}`)
	if rec.Code != http.StatusConflict {
		t.Fatalf("nudge status = %d, want 409", rec.Code)
	}

	var apiErr Error
	if err := json.Unmarshal(rec.Body.Bytes(), &apiErr); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if apiErr.Code != ErrCodeDeviceOffline {
		t.Errorf("Code = %q, want %q", apiErr.Code, ErrCodeDeviceOffline)
	}
	if apiErr.Message != "Connect to device to receive updates." {
		t.Errorf("Message = %q", apiErr.Message)
	}
}

func TestHandleGetVitals(t *testing.T) {
	srv, _ := testServer(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	rec := doRequest(t, srv, http.MethodGet, "/api/v1/vitals/", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d", rec.Code)
	}

	var body struct {
		Connected bool               `json:"connected"`
		Vitals    map[string]float64 `json:"vitals"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decoding body: %v", err)
	}
	if !body.Connected {
		t.Error("fresh evaluator should report connected")
	}
	if body.Vitals["heart_rate"] != 86 || body.Vitals["temperature"] != 36.6 {
		t.Errorf("vitals = %v, want seeded baseline", body.Vitals)
	}
}
