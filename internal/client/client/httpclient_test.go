package client

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/fittrack/internal/client/models"
	"github.com/dmitrijs2005/fittrack/internal/logging"
)

type staticTokens struct {
	token string
	err   error
}

func (s staticTokens) Token(context.Context) (string, error) { return s.token, s.err }

// recorded is what the fake backend saw for the last request.
type recorded struct {
	method      string
	path        string
	contentType string
	auth        string
	requestID   string
	body        []byte
}

func newBackend(t *testing.T, status int, respBody string) (*httptest.Server, *recorded) {
	t.Helper()
	rec := &recorded{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		rec.method = r.Method
		rec.path = r.URL.Path
		rec.contentType = r.Header.Get("Content-Type")
		rec.auth = r.Header.Get("Authorization")
		rec.requestID = r.Header.Get("X-Request-ID")
		rec.body, _ = io.ReadAll(r.Body)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = io.WriteString(w, respBody)
	}))
	t.Cleanup(srv.Close)
	return srv, rec
}

func newTestClient(t *testing.T, baseURL string, tokens TokenSource) *HTTPClient {
	t.Helper()
	c, err := NewHTTPClient(baseURL, tokens, 5*time.Second, logging.Discard())
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestSignUp_SendsNestedJSON(t *testing.T) {
	srv, rec := newBackend(t, http.StatusOK, `{"access_token":"tok-1","token_type":"bearer"}`)
	c := newTestClient(t, srv.URL, staticTokens{token: "stale"})

	payload, err := models.NewSignUpPayload(models.SignUpForm{
		Email: "a@b.com", Password: "p", ConfirmPassword: "p",
		FirstName: "A", LastName: "B", BirthDate: "2000-01-01", Gender: "male",
		Height: "180.5", Weight: "75.2", Experience: "beginner", Goal: "cut", Frequency: "3",
	})
	require.NoError(t, err)

	resp, err := c.SignUp(context.Background(), payload)
	require.NoError(t, err)
	assert.Equal(t, "tok-1", resp.AccessToken)

	assert.Equal(t, http.MethodPost, rec.method)
	assert.Equal(t, "/auth/sign-up", rec.path)
	assert.Equal(t, "application/json", rec.contentType)
	assert.Empty(t, rec.auth, "sign-up must not carry a bearer token")
	assert.NotEmpty(t, rec.requestID)

	var sent map[string]map[string]any
	require.NoError(t, json.Unmarshal(rec.body, &sent))
	assert.Equal(t, 180.5, sent["profile"]["height_cm"])
	assert.Equal(t, 75.2, sent["profile"]["weight_kg"])
	assert.Equal(t, float64(3), sent["profile"]["frequency"])
	assert.Equal(t, []any{}, sent["profile"]["equipment_ids"])
	assert.Equal(t, []any{}, sent["profile"]["injury_ids"])
	assert.Equal(t, "a@b.com", sent["user"]["email"])
}

func TestSignIn_SendsFormEncodedCredentials(t *testing.T) {
	srv, rec := newBackend(t, http.StatusOK, `{"access_token":"tok-2","token_type":"bearer"}`)
	c := newTestClient(t, srv.URL, nil)

	resp, err := c.SignIn(context.Background(), "a@b.com", "s3cr&t")
	require.NoError(t, err)
	assert.Equal(t, "tok-2", resp.AccessToken)

	assert.Equal(t, "/auth/sign-in", rec.path)
	assert.Equal(t, "application/x-www-form-urlencoded", rec.contentType)

	form, err := url.ParseQuery(string(rec.body))
	require.NoError(t, err)
	assert.Equal(t, "a@b.com", form.Get("username"))
	assert.Equal(t, "s3cr&t", form.Get("password"))
	assert.Len(t, form, 2)
}

func TestMe_SendsBearerToken(t *testing.T) {
	srv, rec := newBackend(t, http.StatusOK, `{"id":1,"email":"a@b.com"}`)
	c := newTestClient(t, srv.URL, staticTokens{token: "tok-3"})

	u, err := c.Me(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "a@b.com", u.Email)
	assert.Equal(t, http.MethodGet, rec.method)
	assert.Equal(t, "/auth/me", rec.path)
	assert.Equal(t, "Bearer tok-3", rec.auth)
}

func TestMe_EmptyUserIsError(t *testing.T) {
	for _, body := range []string{`null`, `{}`} {
		t.Run(body, func(t *testing.T) {
			srv, _ := newBackend(t, http.StatusOK, body)
			c := newTestClient(t, srv.URL, staticTokens{token: "tok"})

			u, err := c.Me(context.Background())
			require.Error(t, err)
			assert.Nil(t, u)
			assert.NotErrorIs(t, err, ErrUnavailable)
			assert.NotErrorIs(t, err, ErrUnauthorized)
		})
	}
}

func TestMe_NoTokenSendsNoHeader(t *testing.T) {
	srv, rec := newBackend(t, http.StatusUnauthorized, `{"detail":"Not authenticated"}`)
	c := newTestClient(t, srv.URL, staticTokens{})

	_, err := c.Me(context.Background())
	require.ErrorIs(t, err, ErrUnauthorized)
	assert.Empty(t, rec.auth)
}

func TestMe_TokenSourceErrorIsNotUnavailable(t *testing.T) {
	srv, _ := newBackend(t, http.StatusOK, `{}`)
	c := newTestClient(t, srv.URL, staticTokens{err: errors.New("db closed")})

	_, err := c.Me(context.Background())
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrUnavailable)
	assert.ErrorContains(t, err, "db closed")
}

func TestRequestErrors(t *testing.T) {
	tests := []struct {
		name         string
		status       int
		body         string
		wantDetail   string
		unauthorized bool
		unavailable  bool
	}{
		{name: "duplicate account", status: 400, body: `{"detail":"Email already exists"}`, wantDetail: "Email already exists"},
		{name: "detail kept verbatim", status: 400, body: `{"detail":"  Email already exists  "}`, wantDetail: "  Email already exists  "},
		{name: "no detail", status: 400, body: `{"error":"nope"}`},
		{name: "validation list", status: 422, body: `{"detail":[{"msg":"height too small"},{"msg":"frequency too high"}]}`, wantDetail: "height too small; frequency too high"},
		{name: "not json", status: 500, body: `Internal Server Error`},
		{name: "unauthorized", status: 401, body: `{"detail":"Could not validate credentials"}`, wantDetail: "Could not validate credentials", unauthorized: true},
		{name: "forbidden", status: 403, body: `{}`, unauthorized: true},
		{name: "gateway", status: 503, body: ``, unavailable: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv, rec := newBackend(t, tt.status, tt.body)
			c := newTestClient(t, srv.URL, nil)

			_, err := c.SignIn(context.Background(), "a@b.com", "p")

			var re *RequestError
			require.ErrorAs(t, err, &re)
			assert.Equal(t, tt.status, re.Status)
			assert.Equal(t, tt.wantDetail, re.Detail)
			assert.Equal(t, tt.wantDetail, DetailOf(err))
			assert.Equal(t, rec.requestID, re.RequestID)
			assert.Equal(t, tt.unauthorized, errors.Is(err, ErrUnauthorized))
			assert.Equal(t, tt.unavailable, errors.Is(err, ErrUnavailable))
		})
	}
}

func TestCatalog(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/auth/equipment":
			_, _ = io.WriteString(w, `[{"id":1,"name":"Barbell"},{"id":2,"name":"Bench"}]`)
		case "/auth/injuries":
			_, _ = io.WriteString(w, `[{"id":5,"name":"Knee"}]`)
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	c := newTestClient(t, srv.URL, nil)

	eq, err := c.ListEquipment(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []models.CatalogItem{{ID: 1, Name: "Barbell"}, {ID: 2, Name: "Bench"}}, eq)

	inj, err := c.ListInjuries(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []models.CatalogItem{{ID: 5, Name: "Knee"}}, inj)
}

func TestBaseURLWithPathPrefix(t *testing.T) {
	srv, rec := newBackend(t, http.StatusOK, `{"id":1,"email":"a@b.com"}`)
	c := newTestClient(t, srv.URL+"/api/", staticTokens{token: "t"})

	_, err := c.Me(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "/api/auth/me", rec.path)
}

func TestMalformedResponseBody(t *testing.T) {
	srv, _ := newBackend(t, http.StatusOK, `{"access_token":`)
	c := newTestClient(t, srv.URL, nil)

	_, err := c.SignIn(context.Background(), "a@b.com", "p")
	require.ErrorContains(t, err, "error decoding response")
}

func TestUnreachableServer(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	addr := srv.URL
	srv.Close()

	c := newTestClient(t, addr, nil)

	_, err := c.SignIn(context.Background(), "a@b.com", "p")
	require.ErrorIs(t, err, ErrUnavailable)
	require.ErrorIs(t, c.Ping(context.Background()), ErrUnavailable)
}

func TestPing_AnyStatusIsReachable(t *testing.T) {
	srv, _ := newBackend(t, http.StatusNotFound, `{"detail":"Not Found"}`)
	c := newTestClient(t, srv.URL, nil)

	require.NoError(t, c.Ping(context.Background()))
}

func TestCanceledContextIsNotUnavailable(t *testing.T) {
	srv, _ := newBackend(t, http.StatusOK, `{}`)
	c := newTestClient(t, srv.URL, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := c.Me(ctx)
	require.ErrorIs(t, err, context.Canceled)
	assert.NotErrorIs(t, err, ErrUnavailable)
}

func TestNewHTTPClient_RejectsBadURL(t *testing.T) {
	_, err := NewHTTPClient("ftp://example.com", nil, time.Second, logging.Discard())
	require.Error(t, err)

	_, err = NewHTTPClient("://nope", nil, time.Second, logging.Discard())
	require.Error(t, err)
}
