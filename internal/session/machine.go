// Package session gates the main application behind a completed nickname.
package session

import (
	"context"
	"errors"
	"math/rand"
	"strings"
	"sync"
	"time"

	"coursehub/internal/api"
	"coursehub/internal/errs"
	"coursehub/internal/i18n"
	"coursehub/internal/models"
	"coursehub/internal/status"

	"go.uber.org/zap"
)

// State is a node of the onboarding machine.
type State int

const (
	LoggedOut State = iota
	Authenticating
	NicknameCheck
	NicknameMissing
	NicknameSaving
	Ready
)

func (s State) String() string {
	switch s {
	case LoggedOut:
		return "logged-out"
	case Authenticating:
		return "authenticating"
	case NicknameCheck:
		return "nickname-check"
	case NicknameMissing:
		return "nickname-missing"
	case NicknameSaving:
		return "nickname-saving"
	case Ready:
		return "ready"
	}
	return "unknown"
}

// Screen is a navigation target.
type Screen string

const (
	ScreenLogin         Screen = "login"
	ScreenNicknameSetup Screen = "nickname-setup"
	ScreenDashboard     Screen = "dashboard"
)

// Navigator switches the visible screen.
type Navigator interface {
	Navigate(screen Screen)
}

// NavigatorFunc adapts a function to Navigator.
type NavigatorFunc func(screen Screen)

// Navigate calls f(screen).
func (f NavigatorFunc) Navigate(screen Screen) { f(screen) }

// Backend is the part of the API client the machine needs.
type Backend interface {
	Me(ctx context.Context) (*models.Me, error)
	UpdateProfile(ctx context.Context, u api.ProfileUpdate) (*models.Me, error)
}

// NicknameForm is the onboarding form.
type NicknameForm struct {
	Nickname string
	Bio      string
	Avatar   *api.Upload
}

var (
	// ErrNotPending is returned by SaveNickname when no nickname setup is pending.
	ErrNotPending = errors.New("session: nickname setup is not pending")
	// ErrNotAuthenticating is returned by Authenticated outside a login attempt.
	ErrNotAuthenticating = errors.New("session: no login in progress")
)

// Snapshot is a copy of the machine's view state.
type Snapshot struct {
	State     State
	Me        *models.Me
	Suggested string
	Bio       string
	Status    *status.Message
}

// Machine is the onboarding state machine. It is safe for concurrent use.
type Machine struct {
	backend Backend
	nav     Navigator
	lang    string
	log     *zap.Logger
	rnd     func(n int) int

	mu        sync.Mutex
	state     State
	me        *models.Me
	suggested string
	bio       string
	status    *status.Message
}

// Option configures a Machine.
type Option func(*Machine)

// WithLang sets the language of status messages.
func WithLang(lang string) Option { return func(m *Machine) { m.lang = lang } }

// WithLogger sets the logger.
func WithLogger(log *zap.Logger) Option { return func(m *Machine) { m.log = log } }

// WithRandom replaces the random source of nickname suffixes.
func WithRandom(rnd func(n int) int) Option { return func(m *Machine) { m.rnd = rnd } }

// New creates a machine in LoggedOut.
func New(backend Backend, nav Navigator, opts ...Option) *Machine {
	m := &Machine{
		backend: backend,
		nav:     nav,
		log:     zap.NewNop(),
		rnd:     rand.New(rand.NewSource(time.Now().UnixNano())).Intn,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

func (m *Machine) text(key string, a ...interface{}) string {
	return i18n.Sprintf(m.lang, key, a...)
}

// State returns the current state.
func (m *Machine) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.state
}

// Snapshot returns a copy of the view state.
func (m *Machine) Snapshot() Snapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return Snapshot{State: m.state, Me: m.me, Suggested: m.suggested, Bio: m.bio, Status: m.status}
}

// Status returns the machine's current status message.
func (m *Machine) Status() *status.Message {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.status
}

func busy(s State) bool {
	return s == Authenticating || s == NicknameCheck || s == NicknameSaving
}

// StartLogin moves LoggedOut to Authenticating before credentials are sent.
func (m *Machine) StartLogin() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if busy(m.state) {
		return errs.ErrBusy
	}
	m.state = Authenticating
	m.me = nil
	m.suggested = ""
	return nil
}

// LoginFailed returns an Authenticating machine to LoggedOut.
func (m *Machine) LoginFailed() {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.state == Authenticating {
		m.state = LoggedOut
	}
}

// Authenticated runs the nickname check after a successful login.
func (m *Machine) Authenticated(ctx context.Context) error {
	m.mu.Lock()
	if m.state != Authenticating {
		m.mu.Unlock()
		return ErrNotAuthenticating
	}
	m.state = NicknameCheck
	m.mu.Unlock()
	return m.check(ctx)
}

// Begin re-evaluates the session on a fresh load. Nothing is carried over from
// an earlier evaluation.
func (m *Machine) Begin(ctx context.Context) error {
	m.mu.Lock()
	if busy(m.state) {
		m.mu.Unlock()
		return errs.ErrBusy
	}
	m.state = NicknameCheck
	m.me = nil
	m.suggested = ""
	m.mu.Unlock()
	return m.check(ctx)
}

func (m *Machine) check(ctx context.Context) error {
	me, err := m.backend.Me(ctx)

	m.mu.Lock()
	if err != nil {
		m.state = LoggedOut
		if errs.IsAuth(err) {
			m.status = status.Info(m.text(i18n.MsgSignInFirst))
		} else {
			m.status = status.Error(m.text(i18n.MsgNetworkError))
		}
		m.mu.Unlock()
		m.log.Debug("session check failed", zap.Error(err))
		m.nav.Navigate(ScreenLogin)
		return err
	}

	m.me = me
	m.bio = me.BioValue()
	if me.HasNickname() {
		m.state = Ready
		m.suggested = ""
		m.status = status.Success(m.text(i18n.MsgWelcomeBack, me.DisplayName()))
		m.mu.Unlock()
		m.nav.Navigate(ScreenDashboard)
		return nil
	}

	var id *int64
	if me.ID != 0 {
		id = &me.ID
	}
	m.state = NicknameMissing
	m.suggested = SuggestNickname(me.Username, id, m.rnd)
	m.status = status.Info(m.text(i18n.MsgNicknameRequired))
	m.mu.Unlock()
	m.log.Info("nickname missing", zap.Int64("user_id", me.ID))
	m.nav.Navigate(ScreenNicknameSetup)
	return nil
}

// SaveNickname submits the onboarding form. The suggested nickname is only
// used when the caller passes it explicitly.
func (m *Machine) SaveNickname(ctx context.Context, form NicknameForm) error {
	nickname := strings.TrimSpace(form.Nickname)

	m.mu.Lock()
	switch m.state {
	case NicknameSaving:
		m.mu.Unlock()
		return errs.ErrBusy
	case NicknameMissing:
	default:
		m.mu.Unlock()
		return ErrNotPending
	}
	if nickname == "" {
		m.status = status.Error(m.text(i18n.MsgNicknameBlank))
		m.mu.Unlock()
		return &errs.ValidationError{Field: "nickname", Reason: "is required"}
	}
	m.state = NicknameSaving
	m.status = status.Info(m.text(i18n.MsgNicknameSaving))
	m.mu.Unlock()

	bio := form.Bio
	updated, err := m.backend.UpdateProfile(ctx, api.ProfileUpdate{Nickname: &nickname, Bio: &bio, Avatar: form.Avatar})

	m.mu.Lock()
	if err == nil && !updated.HasNickname() {
		err = &errs.NetworkError{Op: "update profile", Message: "nickname missing from reply"}
	}
	if err != nil {
		m.state = NicknameMissing
		m.status = status.Error(m.text(i18n.MsgNicknameFailed))
		m.mu.Unlock()
		m.log.Warn("failed to save nickname", zap.Error(err))
		return err
	}
	m.state = Ready
	m.me = updated
	m.bio = updated.BioValue()
	m.suggested = ""
	m.status = status.Success(m.text(i18n.MsgNicknameSaved))
	m.mu.Unlock()
	m.nav.Navigate(ScreenDashboard)
	return nil
}

// Complete marks onboarding finished from outside the machine, e.g. after the
// profile editor saved a first nickname.
func (m *Machine) Complete(me *models.Me) {
	if !me.HasNickname() {
		return
	}
	m.mu.Lock()
	m.state = Ready
	m.me = me
	m.suggested = ""
	m.mu.Unlock()
}

// Logout drops the session user and returns to the login screen.
func (m *Machine) Logout() {
	m.mu.Lock()
	m.state = LoggedOut
	m.me = nil
	m.suggested = ""
	m.bio = ""
	m.status = status.Info(m.text(i18n.MsgSignedOut))
	m.mu.Unlock()
	m.nav.Navigate(ScreenLogin)
}
