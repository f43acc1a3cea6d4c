// Package profile is the profile card: show, edit and save the session user's profile.
package profile

import (
	"context"
	"strings"
	"sync"

	"coursehub/internal/api"
	"coursehub/internal/errs"
	"coursehub/internal/i18n"
	"coursehub/internal/models"
	"coursehub/internal/session"
	"coursehub/internal/status"

	"go.uber.org/zap"
)

// Backend is the part of the API client used by the profile card.
type Backend interface {
	Me(ctx context.Context) (*models.Me, error)
	ListUsers(ctx context.Context) (*models.UserList, error)
	UpdateProfile(ctx context.Context, u api.ProfileUpdate) (*models.Me, error)
}

// Completer is told when a first nickname was saved from the profile card.
type Completer interface {
	Complete(me *models.Me)
}

// Form holds the editable fields.
type Form struct {
	Nickname string
	Bio      string
}

// Snapshot is a copy of the profile view state.
type Snapshot struct {
	Profile    *models.Me
	Editing    bool
	Submitting bool
	Form       Form
	Status     *status.Message
}

// Editor owns the profile view state.
type Editor struct {
	backend   Backend
	nav       session.Navigator
	completer Completer
	lang      string
	log       *zap.Logger

	mu         sync.Mutex
	profile    *models.Me
	editing    bool
	submitting bool
	form       Form
	status     *status.Message
}

// NewEditor creates an editor. completer may be nil.
func NewEditor(backend Backend, nav session.Navigator, completer Completer, lang string, log *zap.Logger) *Editor {
	if log == nil {
		log = zap.NewNop()
	}
	return &Editor{backend: backend, nav: nav, completer: completer, lang: lang, log: log}
}

// Snapshot returns a copy of the view state.
func (e *Editor) Snapshot() Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()
	return Snapshot{Profile: e.profile, Editing: e.editing, Submitting: e.submitting, Form: e.form, Status: e.status}
}

// Fetch loads the session profile, falling back to the first public user.
// When both fail the profile stays nil and a loading placeholder is shown.
func (e *Editor) Fetch(ctx context.Context) error {
	me, err := e.backend.Me(ctx)
	if err != nil {
		e.log.Debug("profile fetch failed, trying user list", zap.Error(err))
		list, listErr := e.backend.ListUsers(ctx)
		switch {
		case listErr != nil:
			err = listErr
		case len(list.Results) == 0:
			err = &errs.NetworkError{Op: "list users", Message: "no users"}
		default:
			me, err = &list.Results[0], nil
		}
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	if err != nil {
		e.profile = nil
		e.status = status.Info(i18n.Sprintf(e.lang, i18n.MsgLoading))
		return err
	}
	e.profile = me
	e.form = Form{Nickname: me.NicknameValue(), Bio: me.BioValue()}
	e.status = nil
	return nil
}

// Edit opens the edit form.
func (e *Editor) Edit() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.editing = true
}

// Cancel closes the form and resets it to the profile values.
func (e *Editor) Cancel() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.editing = false
	e.form = Form{Nickname: e.profile.NicknameValue(), Bio: e.profile.BioValue()}
}

// Update submits nickname, bio and an optional avatar. A failure leaves the
// form open with the raw error text.
func (e *Editor) Update(ctx context.Context, nickname, bio string, avatar *api.Upload) error {
	e.mu.Lock()
	if e.submitting {
		e.mu.Unlock()
		return errs.ErrBusy
	}
	e.submitting = true
	e.editing = true
	e.form = Form{Nickname: nickname, Bio: bio}
	hadNickname := e.profile.HasNickname()
	e.mu.Unlock()

	updated, err := e.backend.UpdateProfile(ctx, api.ProfileUpdate{Nickname: &nickname, Bio: &bio, Avatar: avatar})

	e.mu.Lock()
	e.submitting = false
	if err != nil {
		e.status = status.Error(i18n.Sprintf(e.lang, i18n.MsgUpdateFailed, strings.TrimSpace(err.Error())))
		e.mu.Unlock()
		e.log.Warn("profile update failed", zap.Error(err))
		return err
	}
	e.profile = updated
	e.form = Form{Nickname: updated.NicknameValue(), Bio: updated.BioValue()}
	e.editing = false
	e.status = status.Success(i18n.Sprintf(e.lang, i18n.MsgProfileUpdated))
	onboarded := !hadNickname && updated.HasNickname()
	e.mu.Unlock()

	if onboarded {
		if e.completer != nil {
			e.completer.Complete(updated)
		}
		e.nav.Navigate(session.ScreenDashboard)
	}
	return nil
}
