package session

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/fittrack/internal/client/client"
	"github.com/dmitrijs2005/fittrack/internal/client/models"
	"github.com/dmitrijs2005/fittrack/internal/logging"
)

// journal records the order of store and api calls across both fakes.
type journal struct {
	mu    sync.Mutex
	calls []string
}

func (j *journal) add(s string) {
	j.mu.Lock()
	defer j.mu.Unlock()
	j.calls = append(j.calls, s)
}

func (j *journal) list() []string {
	j.mu.Lock()
	defer j.mu.Unlock()
	return append([]string(nil), j.calls...)
}

type fakeFetcher struct {
	j    *journal
	User *models.User
	Err  error

	Calls     int
	LastToken string
	store     *fakeStore
}

func (f *fakeFetcher) Me(ctx context.Context) (*models.User, error) {
	f.Calls++
	f.j.add("me")
	if f.store != nil {
		f.LastToken = f.store.token
	}
	if f.Err != nil {
		return nil, f.Err
	}
	return f.User, nil
}

type fakeStore struct {
	j     *journal
	token string

	ReadErr  error
	SetErr   error
	ClearErr error
}

func (s *fakeStore) Token(ctx context.Context) (string, error) {
	s.j.add("token")
	return s.token, s.ReadErr
}

func (s *fakeStore) SetToken(ctx context.Context, token string) error {
	s.j.add("set")
	if s.SetErr != nil {
		return s.SetErr
	}
	s.token = token
	return nil
}

func (s *fakeStore) ClearToken(ctx context.Context) error {
	s.j.add("clear")
	if s.ClearErr != nil {
		return s.ClearErr
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	s.token = ""
	return nil
}

func newFixture(token string) (*Session, *fakeFetcher, *fakeStore, *journal) {
	j := &journal{}
	store := &fakeStore{j: j, token: token}
	api := &fakeFetcher{j: j, store: store, User: &models.User{ID: 7, Email: "a@b.com"}}
	return New(api, store, logging.Discard()), api, store, j
}

func signedToken(t *testing.T, sub string) string {
	t.Helper()
	tok, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{Subject: sub}).
		SignedString([]byte("test-key"))
	require.NoError(t, err)
	return tok
}

func TestNew_StartsLoading(t *testing.T) {
	s, api, _, _ := newFixture("")

	assert.True(t, s.Loading())
	assert.Equal(t, StatusLoading, s.Status())
	assert.Nil(t, s.User())
	assert.Zero(t, api.Calls)
}

func TestInit_ResolvedTokenIsKept(t *testing.T) {
	s, api, store, _ := newFixture("tok")

	require.NoError(t, s.Init(context.Background()))

	assert.False(t, s.Loading())
	assert.Equal(t, StatusAuthenticated, s.Status())
	require.NotNil(t, s.User())
	assert.Equal(t, "a@b.com", s.User().Email)
	assert.Equal(t, "tok", store.token)
	assert.Equal(t, 1, api.Calls)
}

func TestInit_RejectedTokenIsCleared(t *testing.T) {
	s, api, store, _ := newFixture("stale")
	api.Err = &client.RequestError{Status: 401, Detail: "Could not validate credentials"}

	require.NoError(t, s.Init(context.Background()))

	assert.False(t, s.Loading())
	assert.Nil(t, s.User())
	assert.Equal(t, StatusAnonymous, s.Status())
	assert.Empty(t, store.token)
}

func TestInit_UnreachableBackendAlsoClears(t *testing.T) {
	s, api, store, _ := newFixture("tok")
	api.Err = client.ErrUnavailable

	require.NoError(t, s.Init(context.Background()))

	assert.False(t, s.Loading())
	assert.Nil(t, s.User())
	assert.Empty(t, store.token)
}

func TestInit_NoTokenMakesNoRequest(t *testing.T) {
	s, api, _, j := newFixture("")

	require.NoError(t, s.Init(context.Background()))

	assert.False(t, s.Loading())
	assert.Nil(t, s.User())
	assert.Zero(t, api.Calls)
	assert.Equal(t, []string{"token"}, j.list())
}

func TestInit_StoreReadError(t *testing.T) {
	s, api, store, _ := newFixture("tok")
	store.ReadErr = errors.New("disk gone")

	err := s.Init(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, store.ReadErr)
	assert.False(t, s.Loading())
	assert.Zero(t, api.Calls)
}

func TestInit_ClearErrorIsReturned(t *testing.T) {
	s, api, store, _ := newFixture("tok")
	api.Err = client.ErrUnauthorized
	store.ClearErr = errors.New("locked")

	err := s.Init(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, store.ClearErr)
	assert.False(t, s.Loading())
	assert.Nil(t, s.User())
}

func TestInit_OnlyOnce(t *testing.T) {
	s, api, _, _ := newFixture("tok")
	ctx := context.Background()

	require.NoError(t, s.Init(ctx))
	require.ErrorIs(t, s.Init(ctx), ErrAlreadyInitialized)
	assert.Equal(t, 1, api.Calls)
}

func TestLogin_PersistsBeforeFetching(t *testing.T) {
	tok := signedToken(t, "7")
	s, api, store, j := newFixture("")
	ctx := context.Background()
	require.NoError(t, s.Init(ctx))

	require.NoError(t, s.Login(ctx, tok))

	assert.Equal(t, []string{"token", "set", "me"}, j.list())
	assert.Equal(t, tok, api.LastToken)
	assert.Equal(t, tok, store.token)
	assert.Equal(t, StatusAuthenticated, s.Status())
	assert.Equal(t, int64(7), s.User().ID)
}

func TestLogin_ProfileFailureClearsToken(t *testing.T) {
	s, api, store, j := newFixture("")
	ctx := context.Background()
	require.NoError(t, s.Init(ctx))
	api.Err = client.ErrUnavailable

	err := s.Login(ctx, "fresh")

	require.Error(t, err)
	assert.ErrorIs(t, err, ErrProfileUnavailable)
	assert.ErrorIs(t, err, client.ErrUnavailable)
	assert.Empty(t, store.token)
	assert.Nil(t, s.User())
	assert.Equal(t, StatusAnonymous, s.Status())
	assert.Equal(t, []string{"token", "set", "me", "clear"}, j.list())
}

func TestLogin_PersistFailureSkipsFetch(t *testing.T) {
	s, api, store, _ := newFixture("")
	store.SetErr = errors.New("read-only")

	err := s.Login(context.Background(), "fresh")

	require.ErrorIs(t, err, store.SetErr)
	assert.NotErrorIs(t, err, ErrProfileUnavailable)
	assert.Zero(t, api.Calls)
}

func TestLogin_EmptyToken(t *testing.T) {
	s, api, _, j := newFixture("")

	require.ErrorIs(t, s.Login(context.Background(), ""), ErrEmptyToken)
	assert.Zero(t, api.Calls)
	assert.Empty(t, j.list())
}

func TestLogout_ClearsTokenAndUserWithoutNetwork(t *testing.T) {
	s, api, store, _ := newFixture("tok")
	ctx := context.Background()
	require.NoError(t, s.Init(ctx))
	require.NotNil(t, s.User())
	calls := api.Calls

	require.NoError(t, s.Logout(ctx))

	assert.Nil(t, s.User())
	assert.Empty(t, store.token)
	assert.Equal(t, calls, api.Calls)
	assert.Equal(t, StatusAnonymous, s.Status())
}

func TestLogout_StoreErrorStillDropsUser(t *testing.T) {
	s, _, store, _ := newFixture("tok")
	ctx := context.Background()
	require.NoError(t, s.Init(ctx))
	store.ClearErr = errors.New("locked")

	require.ErrorIs(t, s.Logout(ctx), store.ClearErr)
	assert.Nil(t, s.User())
}

func TestClose_KeepsTokenAndRejectsFurtherUse(t *testing.T) {
	s, _, store, _ := newFixture("tok")
	ctx := context.Background()
	require.NoError(t, s.Init(ctx))

	require.NoError(t, s.Close(ctx))
	require.NoError(t, s.Close(ctx))

	assert.Equal(t, "tok", store.token)
	assert.Nil(t, s.User())
	assert.ErrorIs(t, s.Login(ctx, "other"), ErrClosed)

	fresh, _, _, _ := newFixture("")
	require.NoError(t, fresh.Close(ctx))
	assert.ErrorIs(t, fresh.Init(ctx), ErrClosed)
}

func TestSubject(t *testing.T) {
	ctx := context.Background()

	s, _, _, _ := newFixture(signedToken(t, "user-42"))
	sub, err := s.Subject(ctx)
	require.NoError(t, err)
	assert.Equal(t, "user-42", sub)

	s, _, _, _ = newFixture("opaque-value")
	sub, err = s.Subject(ctx)
	require.NoError(t, err)
	assert.Empty(t, sub)

	s, _, store, _ := newFixture("")
	store.ReadErr = errors.New("boom")
	_, err = s.Subject(ctx)
	assert.Error(t, err)
}

func TestSubjectOf(t *testing.T) {
	tests := []struct {
		name  string
		token string
		want  string
		ok    bool
	}{
		{"jwt with subject", signedToken(t, "abc"), "abc", true},
		{"jwt without subject", signedToken(t, ""), "", false},
		{"opaque", "not-a-jwt", "", false},
		{"empty", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := SubjectOf(tt.token)
			assert.Equal(t, tt.want, got)
			assert.Equal(t, tt.ok, ok)
		})
	}
}

func TestSession_ConcurrentReaders(t *testing.T) {
	s, _, _, _ := newFixture("tok")
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.Status()
			_ = s.User()
			_ = s.Loading()
		}()
	}
	require.NoError(t, s.Init(ctx))
	wg.Wait()

	assert.Equal(t, StatusAuthenticated, s.Status())
}

func TestInit_CancelledFetchStillClearsToken(t *testing.T) {
	s, api, store, _ := newFixture("stale")
	api.Err = context.Canceled
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	require.NoError(t, s.Init(ctx))

	assert.Empty(t, store.token)
	assert.Nil(t, s.User())
}

func TestLogin_CancelledFetchStillClearsToken(t *testing.T) {
	s, api, store, _ := newFixture("")
	api.Err = context.Canceled
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := s.Login(ctx, "tok")

	require.ErrorIs(t, err, ErrProfileUnavailable)
	assert.Empty(t, store.token)
	assert.Nil(t, s.User())
}
