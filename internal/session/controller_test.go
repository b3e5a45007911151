package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/babysteps/babysteps/internal/models"
)

func testToken(t *testing.T, id, username string) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user": map[string]any{
			"id":        id,
			"username":  username,
			"firstName": "Sam",
			"lastName":  "Iker",
		},
	})
	signed, err := tok.SignedString([]byte("secret"))
	if err != nil {
		t.Fatalf("failed to sign test token: %v", err)
	}
	return signed
}

func TestController_StartWithValidCredential(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id":"h1","name":"Stretch","goal":1,"period":"day","progress":0}]`))
	}))
	defer server.Close()

	st := newTestState(t)
	client, creds := newTestClient(t, server.URL, testToken(t, "u1", "sam"), st)
	cache := NewCache(client, st)

	ctrl := NewController(Config{
		Credentials: creds,
		API:         client,
		Cache:       cache,
		State:       st,
	})

	ctrl.Start(context.Background())
	defer ctrl.Close()

	identity := ctrl.Identity()
	if identity == nil || identity.ID != "u1" {
		t.Fatalf("identity = %+v", identity)
	}
	if cache.Len() != 1 {
		t.Errorf("cache length = %d, want 1", cache.Len())
	}
}

func TestController_StartWithMalformedCredential(t *testing.T) {
	var requests atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		w.Write([]byte(`[]`))
	}))
	defer server.Close()

	st := newTestState(t)
	client, creds := newTestClient(t, server.URL, "not-a-real-token", st)
	cache := NewCache(client, st)

	ctrl := NewController(Config{
		Credentials: creds,
		API:         client,
		Cache:       cache,
		State:       st,
	})

	ctrl.Start(context.Background())
	defer ctrl.Close()

	// Undecodable credential resolves to logged-out: token cleared, no
	// habit request issued, cache empty.
	if identity := ctrl.Identity(); identity != nil {
		t.Errorf("identity = %+v, want nil", identity)
	}
	if _, ok := creds.Token(); ok {
		t.Error("malformed credential was not cleared")
	}
	if requests.Load() != 0 {
		t.Errorf("%d requests issued, want 0", requests.Load())
	}
	if cache.Len() != 0 {
		t.Errorf("cache length = %d, want 0", cache.Len())
	}
}

func TestController_StartWithoutCredential(t *testing.T) {
	st := newTestState(t)
	client, creds := newTestClient(t, "http://127.0.0.1:0", "", st)
	cache := NewCache(client, st)

	ctrl := NewController(Config{
		Credentials: creds,
		API:         client,
		Cache:       cache,
		State:       st,
	})

	ctrl.Start(context.Background())
	defer ctrl.Close()

	if identity := ctrl.Identity(); identity != nil {
		t.Errorf("identity = %+v, want nil", identity)
	}
}

func TestController_IdentityTransitions(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`[{"id":"h1","name":"Stretch","goal":1,"period":"day","progress":0}]`))
	}))
	defer server.Close()

	st := newTestState(t)
	client, creds := newTestClient(t, server.URL, "", st)
	cache := NewCache(client, st)

	ctrl := NewController(Config{
		Credentials: creds,
		API:         client,
		Cache:       cache,
		State:       st,
	})
	ctx := context.Background()
	ctrl.Start(ctx)
	defer ctrl.Close()

	// null -> user: refresh runs
	ctrl.SetIdentity(ctx, &models.Identity{ID: "u1", Username: "sam"})
	if cache.Len() != 1 {
		t.Errorf("cache after login = %d habits, want 1", cache.Len())
	}

	// user -> null: cache empties without a request
	ctrl.SetIdentity(ctx, nil)
	if cache.Len() != 0 {
		t.Errorf("cache after logout = %d habits, want 0", cache.Len())
	}
}

func TestController_UnauthorizedForcesLogout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	st := newTestState(t)
	client, creds := newTestClient(t, server.URL, testToken(t, "u1", "sam"), st)
	cache := NewCache(client, st)

	var notices []string
	noticed := make(chan struct{}, 1)
	ctrl := NewController(Config{
		Credentials: creds,
		API:         client,
		Cache:       cache,
		State:       st,
		ReloadDelay: 10 * time.Millisecond,
		Notices: func(text string) {
			notices = append(notices, text)
			noticed <- struct{}{}
		},
	})

	// Start decodes the identity fine, then the refresh gets rejected by
	// the server: the gateway clears the credential and the controller
	// notices, waits, and restarts into a logged-out session.
	ctrl.Start(context.Background())
	defer ctrl.Close()

	select {
	case <-noticed:
	case <-time.After(2 * time.Second):
		t.Fatal("no session-expired notice")
	}
	if len(notices) == 0 || notices[0] != "Session expired. Please log in again." {
		t.Errorf("notices = %v", notices)
	}

	if _, ok := creds.Token(); ok {
		t.Error("credential survived unauthorized response")
	}

	// After the reload delay the session restarts as logged out
	deadline := time.After(2 * time.Second)
	for ctrl.Identity() != nil {
		select {
		case <-deadline:
			t.Fatal("session did not restart as logged out")
		case <-time.After(5 * time.Millisecond):
		}
	}
	if cache.Len() != 0 {
		t.Errorf("cache after forced logout = %d habits, want 0", cache.Len())
	}
}
