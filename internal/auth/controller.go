// Package auth drives the login and registration forms against the backend.
package auth

import (
	"context"
	"errors"
	"strings"
	"sync"

	"coursehub/internal/errs"
	"coursehub/internal/i18n"
	"coursehub/internal/models"
	"coursehub/internal/status"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// Tab is the visible auth form.
type Tab string

const (
	TabLogin  Tab = "login"
	TabSignup Tab = "signup"
)

// Backend is the part of the API client used by the forms.
type Backend interface {
	Login(ctx context.Context, body models.LoginRequest) (*models.AuthResponse, error)
	Register(ctx context.Context, body models.RegisterRequest) (*models.AuthResponse, error)
	Logout(ctx context.Context) error
}

// Gate is the onboarding machine as seen by the login form.
type Gate interface {
	StartLogin() error
	LoginFailed()
	Authenticated(ctx context.Context) error
	Logout()
	Status() *status.Message
}

// Credentials is the login form.
type Credentials struct {
	Email    string `validate:"required"`
	Password string `validate:"required"`
}

// Registration is the sign up form.
type Registration struct {
	Name             string `validate:"required"`
	Email            string `validate:"required,email"`
	Password         string `validate:"required,min=6"`
	ConfirmPassword  string `validate:"required,eqfield=Password"`
	SecurityQuestion string `validate:"required"`
	SecurityAnswer   string `validate:"required"`
}

// Snapshot is a copy of the form view state.
type Snapshot struct {
	Tab     Tab
	Loading bool
	Status  *status.Message
}

// Controller owns the auth forms. It is safe for concurrent use.
type Controller struct {
	backend  Backend
	gate     Gate
	validate *validator.Validate
	lang     string
	log      *zap.Logger

	mu      sync.Mutex
	tab     Tab
	loading bool
	status  *status.Message
}

// NewController creates a controller showing the login tab.
func NewController(backend Backend, gate Gate, lang string, log *zap.Logger) *Controller {
	if log == nil {
		log = zap.NewNop()
	}
	return &Controller{
		backend:  backend,
		gate:     gate,
		validate: validator.New(),
		lang:     lang,
		log:      log,
		tab:      TabLogin,
	}
}

func (c *Controller) text(key string, a ...interface{}) string {
	return i18n.Sprintf(c.lang, key, a...)
}

// Snapshot returns a copy of the view state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Snapshot{Tab: c.tab, Loading: c.loading, Status: c.status}
}

// SetTab switches between the login and sign up forms.
func (c *Controller) SetTab(tab Tab) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.tab = tab
	c.status = nil
}

func (c *Controller) setStatus(m *status.Message) {
	c.mu.Lock()
	c.status = m
	c.mu.Unlock()
}

// begin claims the single in-flight slot of the forms.
func (c *Controller) begin(m *status.Message) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.loading {
		return errs.ErrBusy
	}
	c.loading = true
	c.status = m
	return nil
}

func (c *Controller) done() {
	c.mu.Lock()
	c.loading = false
	c.mu.Unlock()
}

// failureText picks the server supplied message, else the fallback.
func (c *Controller) failureText(err error, fallback string) string {
	if msg := errs.ServerMessage(err); msg != "" {
		return msg
	}
	var netErr *errs.NetworkError
	if errors.As(err, &netErr) && netErr.Status == 0 {
		return c.text(i18n.MsgNetworkError)
	}
	return c.text(fallback)
}

// Login submits the credentials and, on success, runs the nickname check
// before returning.
func (c *Controller) Login(ctx context.Context, cred Credentials) error {
	cred.Email = strings.TrimSpace(cred.Email)
	if err := c.validate.Struct(cred); err != nil {
		c.setStatus(status.Error(c.text(i18n.MsgCredentialsMissing)))
		return toValidationError(err)
	}
	if err := c.begin(status.Info(c.text(i18n.MsgSigningIn))); err != nil {
		return err
	}
	defer c.done()
	if err := c.gate.StartLogin(); err != nil {
		c.setStatus(status.Error(c.text(i18n.MsgBusy)))
		return err
	}

	_, err := c.backend.Login(ctx, models.LoginRequest{Username: cred.Email, Password: cred.Password})
	if err != nil {
		c.gate.LoginFailed()
		c.setStatus(status.Error(c.failureText(err, i18n.MsgSignInFailed)))
		c.log.Info("login rejected", zap.String("email", cred.Email), zap.Error(err))
		return err
	}
	c.setStatus(status.Success(c.text(i18n.MsgSignedIn)))
	c.log.Info("login accepted", zap.String("email", cred.Email))
	err = c.gate.Authenticated(ctx)
	if m := c.gate.Status(); m != nil {
		c.setStatus(m)
	}
	return err
}

// Register creates an account and returns to the login tab. No session is
// established.
func (c *Controller) Register(ctx context.Context, reg Registration) error {
	reg.Name = strings.TrimSpace(reg.Name)
	reg.Email = strings.TrimSpace(reg.Email)
	reg.SecurityQuestion = strings.TrimSpace(reg.SecurityQuestion)
	reg.SecurityAnswer = strings.TrimSpace(reg.SecurityAnswer)
	if err := c.validate.Struct(reg); err != nil {
		c.setStatus(status.Error(c.text(registrationMessage(err))))
		return toValidationError(err)
	}
	if err := c.begin(status.Info(c.text(i18n.MsgRegistering))); err != nil {
		return err
	}
	defer c.done()

	_, err := c.backend.Register(ctx, models.RegisterRequest{
		Username:         reg.Email,
		Email:            reg.Email,
		Password:         reg.Password,
		Nickname:         reg.Name,
		SecurityQuestion: reg.SecurityQuestion,
		SecurityAnswer:   reg.SecurityAnswer,
	})
	if err != nil {
		c.setStatus(status.Error(c.failureText(err, i18n.MsgRegisterFailed)))
		c.log.Info("registration rejected", zap.String("email", reg.Email), zap.Error(err))
		return err
	}

	c.mu.Lock()
	c.tab = TabLogin
	c.status = status.Success(c.text(i18n.MsgRegistered))
	c.mu.Unlock()
	return nil
}

// Logout ends the backend session. Local state is cleared even when the
// backend call fails.
func (c *Controller) Logout(ctx context.Context) error {
	err := c.backend.Logout(ctx)
	c.gate.Logout()
	c.mu.Lock()
	c.tab = TabLogin
	c.status = status.Info(c.text(i18n.MsgSignedOut))
	c.mu.Unlock()
	return err
}

func registrationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return i18n.MsgFieldsMissing
	}
	fe := verrs[0]
	switch {
	case fe.Field() == "ConfirmPassword" && fe.Tag() == "eqfield":
		return i18n.MsgPasswordMismatch
	case fe.Field() == "SecurityQuestion" || fe.Field() == "SecurityAnswer":
		return i18n.MsgSecurityMissing
	case fe.Tag() == "email":
		return i18n.MsgInvalidEmail
	case fe.Tag() == "min":
		return i18n.MsgPasswordTooShort
	}
	return i18n.MsgFieldsMissing
}

func toValidationError(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		return &errs.ValidationError{Field: verrs[0].Field(), Reason: "failed " + verrs[0].Tag()}
	}
	return &errs.ValidationError{Reason: err.Error()}
}
