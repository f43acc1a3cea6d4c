package session_test

import (
	"context"
	"regexp"
	"sync"
	"testing"

	"coursehub/internal/api"
	"coursehub/internal/errs"
	"coursehub/internal/models"
	"coursehub/internal/session"
	"coursehub/internal/status"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockBackend is a mock implementation of session.Backend
type MockBackend struct {
	mock.Mock
}

func (m *MockBackend) Me(ctx context.Context) (*models.Me, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Me), args.Error(1)
}

func (m *MockBackend) UpdateProfile(ctx context.Context, u api.ProfileUpdate) (*models.Me, error) {
	args := m.Called(ctx, u)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Me), args.Error(1)
}

type recorder struct {
	mu      sync.Mutex
	screens []session.Screen
}

func (r *recorder) Navigate(s session.Screen) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.screens = append(r.screens, s)
}

func (r *recorder) visited() []session.Screen {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]session.Screen(nil), r.screens...)
}

func strPtr(s string) *string { return &s }

func TestSuggestNickname(t *testing.T) {
	id := func(v int64) *int64 { return &v }
	never := func(int) int { t.Fatal("random source used"); return 0 }

	assert.Equal(t, "bob7_000007", session.SuggestNickname("bob7", id(7), never))
	assert.Equal(t, "annxio_000042", session.SuggestNickname("ann@x.io", id(42), never))
	assert.Equal(t, "user_123456", session.SuggestNickname("@@", id(1_123_456), never))
	assert.Equal(t, "abcdefghijklm_000001", session.SuggestNickname("abcdefghijklmnopq", id(1), never))
	assert.Equal(t, "user_000000", session.SuggestNickname("张三", id(0), never))
	assert.Equal(t, "bob_000321", session.SuggestNickname("bob", nil, func(n int) int {
		assert.Equal(t, 1_000_000, n)
		return 321
	}))

	pattern := regexp.MustCompile(`^[A-Za-z0-9]+_[0-9]{6}$`)
	for _, name := range []string{"", "x", "a.b-c", "ÄÖÜ", "very_long_name_with_many_parts"} {
		got := session.SuggestNickname(name, id(99), never)
		assert.Regexp(t, pattern, got)
		assert.Equal(t, got, session.SuggestNickname(name, id(99), never))
	}
}

func TestBeginWithNickname(t *testing.T) {
	backend := new(MockBackend)
	nav := &recorder{}
	m := session.New(backend, nav)

	backend.On("Me", mock.Anything).Return(&models.Me{ID: 1, Username: "ann", Nickname: strPtr("Ann")}, nil).Once()

	require.NoError(t, m.Begin(context.Background()))
	assert.Equal(t, session.Ready, m.State())
	assert.Equal(t, []session.Screen{session.ScreenDashboard}, nav.visited())
	backend.AssertExpectations(t)
}

func TestMissingNicknameNeverAutoNavigates(t *testing.T) {
	backend := new(MockBackend)
	nav := &recorder{}
	m := session.New(backend, nav)

	backend.On("Me", mock.Anything).Return(&models.Me{ID: 7, Username: "bob7", Nickname: strPtr("  ")}, nil).Once()

	require.NoError(t, m.StartLogin())
	assert.Equal(t, session.Authenticating, m.State())
	require.NoError(t, m.Authenticated(context.Background()))

	snap := m.Snapshot()
	assert.Equal(t, session.NicknameMissing, snap.State)
	assert.Equal(t, "bob7_000007", snap.Suggested)
	assert.Equal(t, status.ToneInfo, snap.Status.Tone)
	assert.Equal(t, []session.Screen{session.ScreenNicknameSetup}, nav.visited())
	backend.AssertNotCalled(t, "UpdateProfile", mock.Anything, mock.Anything)
}

func TestSaveNicknameRejectsBlank(t *testing.T) {
	backend := new(MockBackend)
	nav := &recorder{}
	m := session.New(backend, nav)
	backend.On("Me", mock.Anything).Return(&models.Me{ID: 7, Username: "bob7"}, nil).Once()
	require.NoError(t, m.Begin(context.Background()))

	err := m.SaveNickname(context.Background(), session.NicknameForm{Nickname: "   "})
	assert.True(t, errs.IsValidation(err))
	assert.Equal(t, session.NicknameMissing, m.State())
	assert.Equal(t, status.ToneError, m.Snapshot().Status.Tone)
	backend.AssertNotCalled(t, "UpdateProfile", mock.Anything, mock.Anything)
}

func TestSaveNicknameSuccess(t *testing.T) {
	backend := new(MockBackend)
	nav := &recorder{}
	m := session.New(backend, nav)
	backend.On("Me", mock.Anything).Return(&models.Me{ID: 7, Username: "bob7", Bio: strPtr("hi")}, nil).Once()
	require.NoError(t, m.Begin(context.Background()))
	assert.Equal(t, "hi", m.Snapshot().Bio)

	backend.On("UpdateProfile", mock.Anything, mock.MatchedBy(func(u api.ProfileUpdate) bool {
		return *u.Nickname == "bobby" && *u.Bio == "hello" && u.Avatar == nil
	})).Return(&models.Me{ID: 7, Username: "bob7", Nickname: strPtr("bobby")}, nil).Once()

	require.NoError(t, m.SaveNickname(context.Background(), session.NicknameForm{Nickname: " bobby ", Bio: "hello"}))
	assert.Equal(t, session.Ready, m.State())
	assert.Equal(t, []session.Screen{session.ScreenNicknameSetup, session.ScreenDashboard}, nav.visited())
	backend.AssertExpectations(t)
}

func TestSaveNicknameFailureStaysMissing(t *testing.T) {
	backend := new(MockBackend)
	nav := &recorder{}
	m := session.New(backend, nav)
	backend.On("Me", mock.Anything).Return(&models.Me{ID: 7, Username: "bob7"}, nil).Once()
	require.NoError(t, m.Begin(context.Background()))

	backend.On("UpdateProfile", mock.Anything, mock.Anything).
		Return(nil, &errs.NetworkError{Op: "update profile", Status: 500}).Once()

	err := m.SaveNickname(context.Background(), session.NicknameForm{Nickname: "bobby"})
	require.Error(t, err)
	snap := m.Snapshot()
	assert.Equal(t, session.NicknameMissing, snap.State)
	assert.Equal(t, status.ToneError, snap.Status.Tone)
	assert.Equal(t, []session.Screen{session.ScreenNicknameSetup}, nav.visited())
}

func TestSaveNicknameOutsideOnboarding(t *testing.T) {
	m := session.New(new(MockBackend), &recorder{})
	assert.ErrorIs(t, m.SaveNickname(context.Background(), session.NicknameForm{Nickname: "x"}), session.ErrNotPending)
}

func TestBeginUnauthenticated(t *testing.T) {
	backend := new(MockBackend)
	nav := &recorder{}
	m := session.New(backend, nav)
	backend.On("Me", mock.Anything).Return(nil, &errs.AuthError{Message: "not authenticated"}).Once()

	err := m.Begin(context.Background())
	assert.True(t, errs.IsAuth(err))
	assert.Equal(t, session.LoggedOut, m.State())
	assert.Equal(t, []session.Screen{session.ScreenLogin}, nav.visited())
}

func TestBeginReevaluatesEveryLoad(t *testing.T) {
	backend := new(MockBackend)
	nav := &recorder{}
	m := session.New(backend, nav)
	backend.On("Me", mock.Anything).Return(&models.Me{ID: 2, Username: "eve", Nickname: strPtr("Eve")}, nil).Once()
	backend.On("Me", mock.Anything).Return(&models.Me{ID: 2, Username: "eve"}, nil).Once()

	require.NoError(t, m.Begin(context.Background()))
	assert.Equal(t, session.Ready, m.State())
	require.NoError(t, m.Begin(context.Background()))
	assert.Equal(t, session.NicknameMissing, m.State())
	backend.AssertNumberOfCalls(t, "Me", 2)
}

func TestAuthenticatedRequiresLogin(t *testing.T) {
	m := session.New(new(MockBackend), &recorder{})
	assert.ErrorIs(t, m.Authenticated(context.Background()), session.ErrNotAuthenticating)
}

func TestLogout(t *testing.T) {
	backend := new(MockBackend)
	nav := &recorder{}
	m := session.New(backend, nav)
	backend.On("Me", mock.Anything).Return(&models.Me{ID: 1, Username: "a", Nickname: strPtr("A")}, nil).Once()
	require.NoError(t, m.Begin(context.Background()))

	m.Logout()
	snap := m.Snapshot()
	assert.Equal(t, session.LoggedOut, snap.State)
	assert.Nil(t, snap.Me)
	assert.Equal(t, session.ScreenLogin, nav.visited()[1])
}
