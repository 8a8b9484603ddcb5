package wire

import (
	"bytes"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"filmorate/internal/data/memory"
	"filmorate/pkg/utils"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

type envelope struct {
	Status  bool              `json:"status"`
	Message string            `json:"message"`
	Data    json.RawMessage   `json:"data"`
	Errors  map[string]string `json:"errors"`
}

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()

	cfg := &utils.Config{
		HTTP:   utils.HTTPConfig{CORSAllowedOrigins: []string{"*"}, RateLimitRequests: 1000, RateLimitWindow: time.Minute},
		Domain: utils.DomainConfig{FriendshipPolicy: "confirmation", TopFilmsDefault: 10},
	}
	app, err := Wiring(memory.NewStore(zap.NewNop()).Repository(), cfg, zap.NewNop())
	if err != nil {
		t.Fatalf("Wiring: %v", err)
	}

	srv := httptest.NewServer(app.Router)
	t.Cleanup(srv.Close)
	return srv
}

func do(t *testing.T, srv *httptest.Server, method, path, body string) (int, envelope) {
	t.Helper()

	req, err := http.NewRequest(method, srv.URL+path, bytes.NewBufferString(body))
	if err != nil {
		t.Fatal(err)
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := srv.Client().Do(req)
	if err != nil {
		t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	var env envelope
	if resp.Header.Get("Content-Type") == "application/json" {
		if err := json.NewDecoder(resp.Body).Decode(&env); err != nil {
			t.Fatalf("decode %s %s: %v", method, path, err)
		}
	}
	return resp.StatusCode, env
}

func TestRouter_FilmLifecycle(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)

	status, env := do(t, srv, http.MethodPost, "/films",
		`{"name":"Matrix","description":"Neo","releaseDate":"1999-03-31","duration":136,"mpa":{"id":4},"genres":[{"id":3},{"id":1}]}`)
	if status != http.StatusCreated || !env.Status {
		t.Fatalf("create film: %d %+v", status, env)
	}
	var film struct {
		ID     int64 `json:"id"`
		Genres []struct {
			ID int `json:"id"`
		} `json:"genres"`
	}
	if err := json.Unmarshal(env.Data, &film); err != nil {
		t.Fatal(err)
	}
	if film.ID != 1 || len(film.Genres) != 2 || film.Genres[0].ID != 1 {
		t.Fatalf("film = %+v", film)
	}

	status, _ = do(t, srv, http.MethodPost, "/users", `{"email":"neo@example.com","login":"neo","birthday":"1971-09-13"}`)
	if status != http.StatusCreated {
		t.Fatalf("create user: %d", status)
	}

	tests := []struct {
		method, path, body string
		want               int
	}{
		{http.MethodPut, "/films/1/like/1", "", http.StatusOK},
		{http.MethodPut, "/films/1/like/1", "", http.StatusOK},
		{http.MethodGet, "/films/popular?count=1", "", http.StatusOK},
		{http.MethodGet, "/films/popular", "", http.StatusOK},
		{http.MethodGet, "/films/popular?count=0", "", http.StatusBadRequest},
		{http.MethodGet, "/films/popular?count=abc", "", http.StatusBadRequest},
		{http.MethodDelete, "/films/1/like/1", "", http.StatusOK},
		{http.MethodDelete, "/films/1/like/1", "", http.StatusNotFound},
		{http.MethodGet, "/films/9", "", http.StatusNotFound},
		{http.MethodGet, "/films/abc", "", http.StatusBadRequest},
		{http.MethodPut, "/films", `{"id":9,"name":"x","releaseDate":"2000-01-01","duration":1,"mpa":{"id":1}}`, http.StatusNotFound},
		{http.MethodPut, "/films", `{"id":1,"name":"x","releaseDate":"1800-01-01","duration":1,"mpa":{"id":1}}`, http.StatusBadRequest},
		{http.MethodPost, "/films", `{not json`, http.StatusBadRequest},
		{http.MethodGet, "/genres", "", http.StatusOK},
		{http.MethodGet, "/genres/7", "", http.StatusNotFound},
		{http.MethodGet, "/mpa/5", "", http.StatusOK},
		{http.MethodGet, "/mpa/x", "", http.StatusBadRequest},
	}

	// Sequential: each row depends on the state left by the previous ones.
	for _, tt := range tests {
		status, env := do(t, srv, tt.method, tt.path, tt.body)
		if status != tt.want {
			t.Errorf("%s %s = %d (%s), want %d", tt.method, tt.path, status, env.Message, tt.want)
		}
	}
}

func TestRouter_ValidationErrorsCarryFields(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)

	status, env := do(t, srv, http.MethodPost, "/users", `{"email":"bad","login":"has space","birthday":"1990-01-01"}`)
	if status != http.StatusBadRequest {
		t.Fatalf("status = %d", status)
	}
	if _, ok := env.Errors["email"]; !ok {
		t.Errorf("errors = %v, want email", env.Errors)
	}
	if _, ok := env.Errors["login"]; !ok {
		t.Errorf("errors = %v, want login", env.Errors)
	}
}

func TestRouter_Friends(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)

	for _, login := range []string{"a", "b", "c"} {
		if status, _ := do(t, srv, http.MethodPost, "/users", `{"email":"`+login+`@example.com","login":"`+login+`","birthday":"1990-01-01"}`); status != http.StatusCreated {
			t.Fatalf("create %s: %d", login, status)
		}
	}

	for _, path := range []string{"/users/1/friends/3", "/users/2/friends/3"} {
		if status, _ := do(t, srv, http.MethodPut, path, ""); status != http.StatusOK {
			t.Fatalf("PUT %s: %d", path, status)
		}
	}

	status, env := do(t, srv, http.MethodGet, "/users/1/friends/common/2", "")
	if status != http.StatusOK || !strings.Contains(string(env.Data), `"id":3`) {
		t.Fatalf("common friends: %d %s", status, env.Data)
	}

	if status, _ := do(t, srv, http.MethodPut, "/users/1/friends/1", ""); status != http.StatusBadRequest {
		t.Errorf("self friend = %d", status)
	}
	if status, _ := do(t, srv, http.MethodPut, "/users/1/friends/42", ""); status != http.StatusNotFound {
		t.Errorf("unknown friend = %d", status)
	}
	if status, _ := do(t, srv, http.MethodDelete, "/users/1/friends/3", ""); status != http.StatusOK {
		t.Errorf("remove friend = %d", status)
	}

	status, env = do(t, srv, http.MethodGet, "/users/1/friends", "")
	if status != http.StatusOK || string(env.Data) != "[]" {
		t.Fatalf("friends after remove: %d %s", status, env.Data)
	}
}

func TestRouter_OpsEndpoints(t *testing.T) {
	t.Parallel()
	srv := newTestServer(t)

	resp, err := srv.Client().Get(srv.URL + "/health")
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusOK || resp.Header.Get("X-Request-ID") == "" {
		t.Fatalf("health: %d, request id %q", resp.StatusCode, resp.Header.Get("X-Request-ID"))
	}

	do(t, srv, http.MethodGet, "/films", "")
	resp, err = srv.Client().Get(srv.URL + "/metrics")
	if err != nil {
		t.Fatal(err)
	}
	defer resp.Body.Close()
	var buf bytes.Buffer
	buf.ReadFrom(resp.Body)
	if !strings.Contains(buf.String(), `filmorate_http_requests_total{method="GET",route="/films`) {
		t.Errorf("metrics output missing film route series")
	}
}
