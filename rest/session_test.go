package rest

import (
	"context"
	"encoding/json"
	"errors"
	"github.com/go-chi/chi/v5"
	"github.com/lukasz-zimnoch/dexly/dealing"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

const (
	testAPIKey        = "api-key"
	testClientToken   = "client-token"
	testSecurityToken = "security-token"
)

type fakePlatform struct {
	server      *httptest.Server
	signInBody  map[string]interface{}
	lastQueries []string
	signedOut   bool
}

func newFakePlatform(t *testing.T) *fakePlatform {
	platform := &fakePlatform{}

	router := chi.NewRouter()

	router.Post("/session", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get(headerAPIKey) != testAPIKey {
			writeJSON(w, http.StatusForbidden, map[string]interface{}{
				"errorCode": "error.security.api-key-invalid",
			})
			return
		}

		if err := json.NewDecoder(r.Body).Decode(&platform.signInBody); err != nil {
			t.Error(err)
		}

		assert.Equal(t, "2", r.Header.Get(headerVersion))

		w.Header().Set(headerClientToken, testClientToken)
		w.Header().Set(headerSecurityToken, testSecurityToken)
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"currentAccountId": "ABC123",
		})
	})

	router.Group(func(r chi.Router) {
		r.Use(requireTokens)

		r.Delete("/session", func(w http.ResponseWriter, r *http.Request) {
			platform.signedOut = true
			w.WriteHeader(http.StatusNoContent)
		})

		r.Get("/history/activity", func(w http.ResponseWriter, r *http.Request) {
			platform.lastQueries = append(platform.lastQueries, r.URL.RawQuery)
			assert.Equal(t, "3", r.Header.Get(headerVersion))

			writeJSON(w, http.StatusOK, map[string]interface{}{
				"activities": []interface{}{
					map[string]interface{}{
						"channel": "WEB",
						"date":    "2021-06-11T15:00:00",
						"dealId":  "DEAL1",
						"epic":    "CS.D.EURUSD.CFD.IP",
						"period":  "DFB",
						"status":  "ACCEPTED",
						"type":    "POSITION",
					},
				},
			})
		})

		r.Get("/confirms/{reference}", func(w http.ResponseWriter, r *http.Request) {
			writeJSON(w, http.StatusNotFound, map[string]interface{}{
				"errorCode": "error.confirms.deal-not-found",
			})
		})

		r.Get("/broken", func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadGateway)
			_, _ = w.Write([]byte("<html>bad gateway</html>"))
		})
	})

	platform.server = httptest.NewServer(router)
	t.Cleanup(platform.server.Close)

	return platform
}

func requireTokens(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get(headerClientToken) != testClientToken ||
			r.Header.Get(headerSecurityToken) != testSecurityToken {
			writeJSON(w, http.StatusUnauthorized, map[string]interface{}{
				"errorCode": "error.security.client-token-missing",
			})
			return
		}

		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", contentType)
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func signedInSession(t *testing.T, platform *fakePlatform) *Session {
	session := newSession(platform.server.URL, testAPIKey)

	err := session.SignIn(context.Background(), "user", "secret")
	require.NoError(t, err)

	return session
}

func TestSession_SignIn(t *testing.T) {
	platform := newFakePlatform(t)

	session := signedInSession(t, platform)

	assert.True(t, session.IsSignedIn())
	assert.Equal(
		t,
		map[string]interface{}{
			"identifier":        "user",
			"password":          "secret",
			"encryptedPassword": false,
		},
		platform.signInBody,
	)
}

func TestSession_SignInWithInvalidKey(t *testing.T) {
	platform := newFakePlatform(t)

	session := newSession(platform.server.URL, "wrong")

	err := session.SignIn(context.Background(), "user", "secret")

	var transportErr *dealing.TransportError
	require.True(t, errors.As(err, &transportErr))
	assert.Equal(t, http.StatusForbidden, transportErr.StatusCode)
	assert.Equal(t, "error.security.api-key-invalid", transportErr.Code)
	assert.False(t, session.IsSignedIn())
}

func TestSession_RequiresSignIn(t *testing.T) {
	platform := newFakePlatform(t)

	session := newSession(platform.server.URL, testAPIKey)

	_, err := session.Get(context.Background(), "history/activity", nil, 3)

	var transportErr *dealing.TransportError
	require.True(t, errors.As(err, &transportErr))
	assert.Equal(t, "error.security.client-token-missing", transportErr.Code)
}

func TestSession_ThroughClient(t *testing.T) {
	platform := newFakePlatform(t)
	session := signedInSession(t, platform)

	client := dealing.NewClient(nil, session)

	activities, err := client.Account().Activities(
		context.Background(),
		dealing.ActivityFilter{
			From: time.Date(2021, time.June, 10, 0, 0, 0, 0, time.UTC),
			To:   time.Date(2021, time.June, 12, 0, 0, 0, 0, time.UTC),
		},
	)
	require.NoError(t, err)
	require.Len(t, activities, 1)

	assert.Equal(t, "DEAL1", activities[0].DealID())
	assert.False(t, activities[0].Has("period"))
	assert.Equal(
		t,
		[]string{
			"detailed=true&from=2021-06-10T00%3A00%3A00&pageSize=500&to=2021-06-12T00%3A00%3A00",
		},
		platform.lastQueries,
	)

	_, err = client.DealConfirmation(context.Background(), "reference")
	assert.True(t, errors.Is(err, dealing.ErrDealNotFound))
}

func TestSession_UnexpectedErrorResponse(t *testing.T) {
	platform := newFakePlatform(t)
	session := signedInSession(t, platform)

	_, err := session.Get(context.Background(), "broken", nil, 1)

	var transportErr *dealing.TransportError
	require.True(t, errors.As(err, &transportErr))
	assert.Equal(t, http.StatusBadGateway, transportErr.StatusCode)
	assert.Empty(t, transportErr.Code)
}

func TestSession_SignOut(t *testing.T) {
	platform := newFakePlatform(t)
	session := signedInSession(t, platform)

	require.NoError(t, session.SignOut(context.Background()))

	assert.True(t, platform.signedOut)
	assert.False(t, session.IsSignedIn())
}

func TestNewSession_SelectsPlatform(t *testing.T) {
	assert.Equal(t, liveURL, NewSession(dealing.PlatformLive, "key").baseURL)
	assert.Equal(t, demoURL, NewSession(dealing.PlatformDemo, "key").baseURL)
}
