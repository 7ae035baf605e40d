package api_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/jrsteele09/go-storefront-client/api"
	"github.com/jrsteele09/go-storefront-client/internal/config"
	interr "github.com/jrsteele09/go-storefront-client/internal/errors"
	"github.com/jrsteele09/go-storefront-client/internal/utils"
	"github.com/jrsteele09/go-storefront-client/session"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *api.Client {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)

	client, err := api.NewClient(server.URL, config.New())
	require.NoError(t, err)
	return client
}

func TestNewClientValidation(t *testing.T) {
	_, err := api.NewClient("", config.New())
	require.Error(t, err)

	_, err = api.NewClient("http://localhost:8000", nil)
	require.Error(t, err)
}

func TestRequestHeaders(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "Bearer tok-123", r.Header.Get("Authorization"))
		require.Equal(t, "application/json", r.Header.Get("Content-Type"))
		require.NotEmpty(t, r.Header.Get("X-Request-ID"))
		require.Equal(t, api.RouteCart, r.URL.Path)
		_ = json.NewEncoder(w).Encode(map[string]any{"items": []any{}, "total_items": 0, "total_price": "0.00"})
	})

	snapshot, err := client.Cart(context.Background(), "tok-123")
	require.NoError(t, err)
	require.Equal(t, "0.00", snapshot.TotalPrice)
}

func TestPublicEndpointsSendNoAuthorization(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Empty(t, r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`[]`))
	})

	catalog, err := client.Products(context.Background())
	require.NoError(t, err)
	require.Empty(t, catalog)
}

func TestUnauthorizedMapsToSentinel(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"detail": "token expired"}`))
	})

	_, err := client.Cart(context.Background(), "stale")
	require.ErrorIs(t, err, interr.ErrUnauthorized)
}

func TestMalformedSuccessBody(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`<html>definitely not json</html>`))
	})

	_, err := client.Cart(context.Background(), "tok")
	require.ErrorIs(t, err, interr.ErrServerResponse)
}

func TestTransportFailureMapsToNetwork(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	server.Close() // nothing listening any more

	client, err := api.NewClient(server.URL, config.New())
	require.NoError(t, err)

	_, err = client.Cart(context.Background(), "tok")
	require.ErrorIs(t, err, interr.ErrNetwork)
}

func TestLogin(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, api.RouteLogin, r.URL.Path)

		body := map[string]string{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, "alice", body["username"])

		_, _ = w.Write([]byte(`{"access": "tok-123"}`))
	})

	token, err := client.Login(context.Background(), "alice", "password123")
	require.NoError(t, err)
	require.Equal(t, "tok-123", token)
}

func TestLoginFailureCarriesServerDetail(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
		_, _ = w.Write([]byte(`{"detail": "No active account found with the given credentials"}`))
	})

	_, err := client.Login(context.Background(), "alice", "wrong")
	require.EqualError(t, err, "No active account found with the given credentials")

	statusErr := &interr.StatusError{}
	require.ErrorAs(t, err, &statusErr)
	require.Equal(t, http.StatusUnauthorized, statusErr.Status)
	require.NotErrorIs(t, err, interr.ErrUnauthorized, "a login rejection is not a session invalidation")
}

func TestLoginMissingAccessToken(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{}`))
	})

	_, err := client.Login(context.Background(), "alice", "password123")
	require.ErrorIs(t, err, interr.ErrServerResponse)
}

func TestRegisterFieldErrors(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"username": ["A user with that username already exists."], "email": ["Enter a valid email address."]}`))
	})

	err := client.Register(context.Background(), session.Registration{Username: "alice"})

	fields := session.FieldErrors{}
	require.ErrorAs(t, err, &fields)
	require.Equal(t, []string{"A user with that username already exists."}, fields["username"])
	require.Contains(t, fields, "email")
}

func TestProfileEnvelope(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, api.RouteProfile, r.URL.Path)
		_, _ = w.Write([]byte(`{"user": {"id": 1, "username": "alice", "email": "alice@example.com"}}`))
	})

	user, err := client.Profile(context.Background(), "tok")
	require.NoError(t, err)
	require.Equal(t, "alice", user.Username)
}

func TestAddItemEnvelope(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, api.RouteCartAdd, r.URL.Path)

		body := map[string]any{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.EqualValues(t, 1, body["product_id"])
		require.EqualValues(t, 2, body["quantity"])

		_, _ = w.Write([]byte(`{"cart": {"items": [], "total_items": 2, "total_price": "39.98"}}`))
	})

	snapshot, err := client.AddItem(context.Background(), "tok", 1, 2)
	require.NoError(t, err)
	require.Equal(t, 2, snapshot.TotalItems)
}

func TestAddItemMissingSnapshot(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"message": "ok"}`))
	})

	_, err := client.AddItem(context.Background(), "tok", 1, 2)
	require.ErrorIs(t, err, interr.ErrServerResponse)
}

func TestErrorMessageShapes(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{name: "detail", body: `{"detail": "Not enough stock"}`, want: "Not enough stock"},
		{name: "error", body: `{"error": "Cart is empty"}`, want: "Cart is empty"},
		{name: "non field errors", body: `{"non_field_errors": ["Something went wrong"]}`, want: "Something went wrong"},
		{name: "empty body falls back to status text", body: `{}`, want: http.StatusText(http.StatusBadRequest)},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
				w.WriteHeader(http.StatusBadRequest)
				_, _ = w.Write([]byte(tc.body))
			})

			_, err := client.Cart(context.Background(), "tok")

			statusErr := &interr.StatusError{}
			require.ErrorAs(t, err, &statusErr)
			require.Equal(t, tc.want, statusErr.Message)
		})
	}
}

func TestUpdateAndRemoveUseExpectedRoutes(t *testing.T) {
	var gotMethod, gotPath string
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		gotMethod, gotPath = r.Method, r.URL.Path
		w.WriteHeader(http.StatusNoContent)
	})

	require.NoError(t, client.UpdateItem(context.Background(), "tok", 42, 3))
	require.Equal(t, http.MethodPut, gotMethod)
	require.Equal(t, "/api/cart/update/42/", gotPath)

	require.NoError(t, client.RemoveItem(context.Background(), "tok", 42))
	require.Equal(t, http.MethodDelete, gotMethod)
	require.Equal(t, "/api/cart/remove/42/", gotPath)

	require.NoError(t, client.Clear(context.Background(), "tok"))
	require.Equal(t, http.MethodDelete, gotMethod)
	require.Equal(t, api.RouteCartClear, gotPath)
}

// unreachableTransport fails every request at the dial layer and counts the
// attempts, standing in for a dead server.
type unreachableTransport struct {
	calls int32
}

func (tr *unreachableTransport) RoundTrip(*http.Request) (*http.Response, error) {
	atomic.AddInt32(&tr.calls, 1)
	return nil, errors.New("dial tcp: connection refused")
}

func TestBreakerOpensAfterConsecutiveFailures(t *testing.T) {
	transport := &unreachableTransport{}
	client, err := api.NewClient("http://storefront.invalid", config.New(),
		api.WithHTTPClient(&http.Client{Transport: transport}))
	require.NoError(t, err)

	failures := int(config.New().GetBreakerConsecutiveFailures())
	for i := 0; i < failures; i++ {
		_, err := client.Cart(context.Background(), "tok")
		require.ErrorIs(t, err, interr.ErrNetwork)
	}
	require.EqualValues(t, failures, atomic.LoadInt32(&transport.calls))

	// Breaker is now open: the failure still reads as a transport error but
	// no request is attempted
	_, err = client.Cart(context.Background(), "tok")
	require.ErrorIs(t, err, interr.ErrNetwork)
	require.EqualValues(t, failures, atomic.LoadInt32(&transport.calls))
}

func TestAdminUsers(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, api.RouteUsers, r.URL.Path)
		require.Equal(t, "Bearer admin-tok", r.Header.Get("Authorization"))
		_, _ = w.Write([]byte(`[
			{"id": 1, "username": "alice", "email": "alice@example.com", "role": "admin", "is_active": true},
			{"id": 2, "username": "bob", "email": "bob@example.com", "role": "user", "is_active": false}
		]`))
	})

	users, err := client.Users(context.Background(), "admin-tok")
	require.NoError(t, err)
	require.Len(t, users, 2)
	require.Equal(t, session.RoleAdmin, users[0].Role)
	require.False(t, users[1].IsActive)
}

func TestAdminUsersForbiddenForNonAdmins(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusForbidden)
		_, _ = w.Write([]byte(`{"detail": "You do not have permission to perform this action."}`))
	})

	_, err := client.Users(context.Background(), "user-tok")

	statusErr := &interr.StatusError{}
	require.ErrorAs(t, err, &statusErr)
	require.Equal(t, http.StatusForbidden, statusErr.Status)
}

func TestAdminUpdateUser(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPatch, r.Method)
		require.Equal(t, "/api/accounts/users/2/", r.URL.Path)

		body := map[string]any{}
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, "admin", body["role"])
		require.Equal(t, false, body["is_active"])

		_, _ = w.Write([]byte(`{"id": 2, "username": "bob", "email": "bob@example.com", "role": "admin", "is_active": false}`))
	})

	user, err := client.UpdateUser(context.Background(), "admin-tok", 2, session.AdminUserUpdate{
		Role:     utils.Ptr(session.RoleAdmin),
		IsActive: utils.Ptr(false),
	})
	require.NoError(t, err)
	require.Equal(t, session.RoleAdmin, user.Role)
}

func TestAdminUpdateUserFieldErrors(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"email": ["Enter a valid email address."]}`))
	})

	_, err := client.UpdateUser(context.Background(), "admin-tok", 2, session.AdminUserUpdate{
		Email: utils.Ptr("not-an-email"),
	})

	fields := session.FieldErrors{}
	require.ErrorAs(t, err, &fields)
	require.Contains(t, fields, "email")
}

func TestToggleUserStatus(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/accounts/users/2/toggle-status/", r.URL.Path)
		w.WriteHeader(http.StatusOK)
	})

	require.NoError(t, client.ToggleUserStatus(context.Background(), "admin-tok", 2))
}

func TestCheckoutSession(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, api.RouteCartCheckoutSession, r.URL.Path)
		_, _ = w.Write([]byte(`{"session_id": "cs_test_1", "session_url": "https://checkout.example.com/cs_test_1"}`))
	})

	checkoutSession, err := client.CreateCartCheckoutSession(context.Background(), "tok")
	require.NoError(t, err)
	require.Equal(t, "cs_test_1", checkoutSession.SessionID)
	require.NotEmpty(t, checkoutSession.SessionURL)
}
