package auth_test

import (
	"context"
	"testing"

	"coursehub/internal/api"
	"coursehub/internal/auth"
	"coursehub/internal/errs"
	"coursehub/internal/i18n"
	"coursehub/internal/models"
	"coursehub/internal/session"
	"coursehub/internal/status"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockBackend is a mock implementation of auth.Backend and session.Backend
type MockBackend struct {
	mock.Mock
}

func (m *MockBackend) Login(ctx context.Context, body models.LoginRequest) (*models.AuthResponse, error) {
	args := m.Called(ctx, body)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AuthResponse), args.Error(1)
}

func (m *MockBackend) Register(ctx context.Context, body models.RegisterRequest) (*models.AuthResponse, error) {
	args := m.Called(ctx, body)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.AuthResponse), args.Error(1)
}

func (m *MockBackend) Logout(ctx context.Context) error {
	return m.Called(ctx).Error(0)
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

func strPtr(s string) *string { return &s }

type screens []session.Screen

func (s *screens) Navigate(screen session.Screen) { *s = append(*s, screen) }

func setup() (*MockBackend, *session.Machine, *screens, *auth.Controller) {
	backend := new(MockBackend)
	nav := &screens{}
	machine := session.New(backend, nav)
	return backend, machine, nav, auth.NewController(backend, machine, "en", nil)
}

func validRegistration() auth.Registration {
	return auth.Registration{
		Name:             "Ann",
		Email:            "ann@x.com",
		Password:         "secret",
		ConfirmPassword:  "secret",
		SecurityQuestion: "pet",
		SecurityAnswer:   "cat",
	}
}

func TestLoginBlankCredentialsSendsNothing(t *testing.T) {
	backend, machine, _, c := setup()

	err := c.Login(context.Background(), auth.Credentials{Email: "  ", Password: "x"})
	assert.True(t, errs.IsValidation(err))
	assert.Equal(t, i18n.MsgCredentialsMissing, c.Snapshot().Status.Text)
	assert.Equal(t, session.LoggedOut, machine.State())
	backend.AssertNotCalled(t, "Login", mock.Anything, mock.Anything)
}

func TestLoginRunsNicknameCheck(t *testing.T) {
	backend, machine, nav, c := setup()
	backend.On("Login", mock.Anything, models.LoginRequest{Username: "bob7@x.io", Password: "pw"}).
		Return(&models.AuthResponse{}, nil).Once()
	backend.On("Me", mock.Anything).Return(&models.Me{ID: 7, Username: "bob7"}, nil).Once()

	require.NoError(t, c.Login(context.Background(), auth.Credentials{Email: " bob7@x.io ", Password: "pw"}))

	snap := c.Snapshot()
	assert.False(t, snap.Loading)
	assert.Equal(t, status.ToneInfo, snap.Status.Tone)
	assert.Equal(t, i18n.MsgNicknameRequired, snap.Status.Text)
	assert.Equal(t, machine.Snapshot().Status, snap.Status)
	assert.Equal(t, session.NicknameMissing, machine.State())
	assert.Equal(t, "bob7_000007", machine.Snapshot().Suggested)
	assert.Equal(t, screens{session.ScreenNicknameSetup}, *nav)
	backend.AssertExpectations(t)
}

func TestLoginWithNicknameTakesWelcomeStatus(t *testing.T) {
	backend, _, _, c := setup()
	backend.On("Login", mock.Anything, mock.Anything).Return(&models.AuthResponse{}, nil).Once()
	backend.On("Me", mock.Anything).Return(&models.Me{ID: 7, Username: "bob7", Nickname: strPtr("Bob")}, nil).Once()

	require.NoError(t, c.Login(context.Background(), auth.Credentials{Email: "bob7@x.io", Password: "pw"}))
	snap := c.Snapshot()
	assert.Equal(t, status.ToneSuccess, snap.Status.Tone)
	assert.Equal(t, i18n.Sprintf("en", i18n.MsgWelcomeBack, "Bob"), snap.Status.Text)
}

func TestLoginWhileGateBusy(t *testing.T) {
	backend, machine, _, c := setup()
	require.NoError(t, machine.StartLogin())

	err := c.Login(context.Background(), auth.Credentials{Email: "a@b.c", Password: "x"})
	assert.ErrorIs(t, err, errs.ErrBusy)
	snap := c.Snapshot()
	assert.False(t, snap.Loading)
	assert.Equal(t, status.ToneError, snap.Status.Tone)
	assert.Equal(t, i18n.MsgBusy, snap.Status.Text)
	backend.AssertNotCalled(t, "Login", mock.Anything, mock.Anything)
}

func TestLoginFailureUsesServerMessage(t *testing.T) {
	backend, machine, _, c := setup()
	backend.On("Login", mock.Anything, mock.Anything).
		Return(nil, &errs.NetworkError{Op: "login", Status: 400, Message: "invalid credentials"}).Once()

	err := c.Login(context.Background(), auth.Credentials{Email: "a@b.c", Password: "x"})
	require.Error(t, err)
	assert.Equal(t, "invalid credentials", c.Snapshot().Status.Text)
	assert.Equal(t, status.ToneError, c.Snapshot().Status.Tone)
	assert.Equal(t, session.LoggedOut, machine.State())
	backend.AssertNotCalled(t, "Me", mock.Anything)
}

func TestLoginFailureFallbacks(t *testing.T) {
	backend, _, _, c := setup()
	backend.On("Login", mock.Anything, mock.Anything).Return(nil, &errs.AuthError{}).Once()
	backend.On("Login", mock.Anything, mock.Anything).Return(nil, &errs.NetworkError{Op: "login"}).Once()

	_ = c.Login(context.Background(), auth.Credentials{Email: "a@b.c", Password: "x"})
	assert.Equal(t, i18n.MsgSignInFailed, c.Snapshot().Status.Text)

	_ = c.Login(context.Background(), auth.Credentials{Email: "a@b.c", Password: "x"})
	assert.Equal(t, i18n.MsgNetworkError, c.Snapshot().Status.Text)
}

func TestRegisterValidation(t *testing.T) {
	cases := []struct {
		name   string
		modify func(*auth.Registration)
		want   string
	}{
		{"mismatch", func(r *auth.Registration) { r.ConfirmPassword = "other1" }, i18n.MsgPasswordMismatch},
		{"no question", func(r *auth.Registration) { r.SecurityQuestion = "  " }, i18n.MsgSecurityMissing},
		{"no answer", func(r *auth.Registration) { r.SecurityAnswer = "" }, i18n.MsgSecurityMissing},
		{"bad email", func(r *auth.Registration) { r.Email = "nope" }, i18n.MsgInvalidEmail},
		{"short password", func(r *auth.Registration) { r.Password, r.ConfirmPassword = "abc", "abc" }, i18n.MsgPasswordTooShort},
		{"no name", func(r *auth.Registration) { r.Name = " " }, i18n.MsgFieldsMissing},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			backend, _, _, c := setup()
			reg := validRegistration()
			tc.modify(&reg)

			err := c.Register(context.Background(), reg)
			assert.True(t, errs.IsValidation(err))
			assert.Equal(t, tc.want, c.Snapshot().Status.Text)
			backend.AssertNotCalled(t, "Register", mock.Anything, mock.Anything)
		})
	}
}

func TestRegisterReturnsToLoginWithoutSession(t *testing.T) {
	backend, machine, nav, c := setup()
	c.SetTab(auth.TabSignup)
	backend.On("Register", mock.Anything, models.RegisterRequest{
		Username:         "ann@x.com",
		Email:            "ann@x.com",
		Password:         "secret",
		Nickname:         "Ann",
		SecurityQuestion: "pet",
		SecurityAnswer:   "cat",
	}).Return(&models.AuthResponse{Message: "ok"}, nil).Once()

	require.NoError(t, c.Register(context.Background(), validRegistration()))

	snap := c.Snapshot()
	assert.Equal(t, auth.TabLogin, snap.Tab)
	assert.Equal(t, i18n.MsgRegistered, snap.Status.Text)
	assert.Equal(t, session.LoggedOut, machine.State())
	assert.Empty(t, *nav)
	backend.AssertNotCalled(t, "Login", mock.Anything, mock.Anything)
	backend.AssertNotCalled(t, "Me", mock.Anything)
}

func TestRegisterConflict(t *testing.T) {
	backend, _, _, c := setup()
	c.SetTab(auth.TabSignup)
	backend.On("Register", mock.Anything, mock.Anything).
		Return(nil, &errs.ConflictError{Message: "email already registered"}).Once()

	err := c.Register(context.Background(), validRegistration())
	assert.True(t, errs.IsConflict(err))
	snap := c.Snapshot()
	assert.Equal(t, auth.TabSignup, snap.Tab)
	assert.Equal(t, "email already registered", snap.Status.Text)
}

func TestLogoutClearsSession(t *testing.T) {
	backend, machine, nav, c := setup()
	backend.On("Logout", mock.Anything).Return(&errs.NetworkError{Op: "logout"}).Once()

	err := c.Logout(context.Background())
	assert.Error(t, err)
	assert.Equal(t, session.LoggedOut, machine.State())
	assert.Equal(t, screens{session.ScreenLogin}, *nav)
}
