package profile_test

import (
	"context"
	"strings"
	"testing"

	"coursehub/internal/api"
	"coursehub/internal/errs"
	"coursehub/internal/models"
	"coursehub/internal/profile"
	"coursehub/internal/session"
	"coursehub/internal/status"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// MockBackend is a mock implementation of profile.Backend
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

func (m *MockBackend) ListUsers(ctx context.Context) (*models.UserList, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.UserList), args.Error(1)
}

func (m *MockBackend) UpdateProfile(ctx context.Context, u api.ProfileUpdate) (*models.Me, error) {
	args := m.Called(ctx, u)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Me), args.Error(1)
}

type screens []session.Screen

func (s *screens) Navigate(screen session.Screen) { *s = append(*s, screen) }

type completer struct{ got *models.Me }

func (c *completer) Complete(me *models.Me) { c.got = me }

func strPtr(s string) *string { return &s }

func TestFetchFallsBackToUserList(t *testing.T) {
	backend := new(MockBackend)
	e := profile.NewEditor(backend, &screens{}, nil, "en", nil)
	backend.On("Me", mock.Anything).Return(nil, &errs.AuthError{}).Once()
	backend.On("ListUsers", mock.Anything).Return(&models.UserList{Results: []models.Me{
		{ID: 3, Username: "first", Bio: strPtr("hi")},
		{ID: 4, Username: "second"},
	}}, nil).Once()

	require.NoError(t, e.Fetch(context.Background()))
	snap := e.Snapshot()
	assert.Equal(t, int64(3), snap.Profile.ID)
	assert.Equal(t, "hi", snap.Form.Bio)
}

func TestFetchTotalFailureLeavesProfileNil(t *testing.T) {
	backend := new(MockBackend)
	e := profile.NewEditor(backend, &screens{}, nil, "en", nil)
	backend.On("Me", mock.Anything).Return(nil, &errs.NetworkError{Op: "fetch profile"}).Once()
	backend.On("ListUsers", mock.Anything).Return(&models.UserList{}, nil).Once()

	assert.Error(t, e.Fetch(context.Background()))
	snap := e.Snapshot()
	assert.Nil(t, snap.Profile)
	assert.Equal(t, status.ToneInfo, snap.Status.Tone)
	backend.AssertNumberOfCalls(t, "Me", 1)
}

func TestUpdateFirstNicknameNavigatesToDashboard(t *testing.T) {
	backend := new(MockBackend)
	nav := &screens{}
	done := &completer{}
	e := profile.NewEditor(backend, nav, done, "en", nil)
	backend.On("Me", mock.Anything).Return(&models.Me{ID: 1, Username: "u"}, nil).Once()
	require.NoError(t, e.Fetch(context.Background()))

	e.Edit()
	avatar := &api.Upload{Filename: "a.png", Reader: strings.NewReader("img")}
	backend.On("UpdateProfile", mock.Anything, mock.MatchedBy(func(u api.ProfileUpdate) bool {
		return *u.Nickname == "Neo" && *u.Bio == "" && u.Avatar == avatar
	})).Return(&models.Me{ID: 1, Username: "u", Nickname: strPtr("Neo")}, nil).Once()

	require.NoError(t, e.Update(context.Background(), "Neo", "", avatar))
	snap := e.Snapshot()
	assert.False(t, snap.Editing)
	assert.Equal(t, "Neo", snap.Profile.NicknameValue())
	assert.Equal(t, screens{session.ScreenDashboard}, *nav)
	require.NotNil(t, done.got)
	assert.Equal(t, "Neo", done.got.NicknameValue())
}

func TestUpdateRenameDoesNotNavigate(t *testing.T) {
	backend := new(MockBackend)
	nav := &screens{}
	e := profile.NewEditor(backend, nav, nil, "en", nil)
	backend.On("Me", mock.Anything).Return(&models.Me{ID: 1, Nickname: strPtr("Old")}, nil).Once()
	require.NoError(t, e.Fetch(context.Background()))

	backend.On("UpdateProfile", mock.Anything, mock.Anything).
		Return(&models.Me{ID: 1, Nickname: strPtr("New")}, nil).Once()
	require.NoError(t, e.Update(context.Background(), "New", "bio", nil))
	assert.Empty(t, *nav)
}

func TestUpdateFailureKeepsFormOpen(t *testing.T) {
	backend := new(MockBackend)
	e := profile.NewEditor(backend, &screens{}, nil, "en", nil)
	backend.On("Me", mock.Anything).Return(&models.Me{ID: 1, Nickname: strPtr("Old")}, nil).Once()
	require.NoError(t, e.Fetch(context.Background()))
	e.Edit()

	backend.On("UpdateProfile", mock.Anything, mock.Anything).
		Return(nil, &errs.NetworkError{Op: "update profile", Status: 413, Message: "avatar too large"}).Once()

	require.Error(t, e.Update(context.Background(), "New", "bio", nil))
	snap := e.Snapshot()
	assert.True(t, snap.Editing)
	assert.False(t, snap.Submitting)
	assert.Equal(t, "Old", snap.Profile.NicknameValue())
	assert.Equal(t, "New", snap.Form.Nickname)
	assert.Equal(t, "Update failed: update profile: status 413: avatar too large", snap.Status.Text)
}

func TestCancelResetsForm(t *testing.T) {
	backend := new(MockBackend)
	e := profile.NewEditor(backend, &screens{}, nil, "en", nil)
	backend.On("Me", mock.Anything).Return(&models.Me{ID: 1, Nickname: strPtr("Old"), Bio: strPtr("b")}, nil).Once()
	require.NoError(t, e.Fetch(context.Background()))

	backend.On("UpdateProfile", mock.Anything, mock.Anything).Return(nil, &errs.NetworkError{Op: "x"}).Once()
	_ = e.Update(context.Background(), "Other", "c", nil)
	e.Cancel()

	snap := e.Snapshot()
	assert.False(t, snap.Editing)
	assert.Equal(t, profile.Form{Nickname: "Old", Bio: "b"}, snap.Form)
}
