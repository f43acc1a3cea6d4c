package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"coursehub/internal/errs"
	"coursehub/internal/i18n"
	"coursehub/internal/metrics"
	"coursehub/internal/models"
	"coursehub/internal/repositories"

	"github.com/dgrijalva/jwt-go"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"
)

// EventPublisher receives auth events. pkg/rabbitmq.Client implements it.
type EventPublisher interface {
	PublishAuthEvent(ctx context.Context, event models.AuthEvent) error
}

// AuthService implements the mock auth store's register and login.
type AuthService struct {
	userRepo      repositories.UserRepository
	jwtSecret     []byte
	tokenDurat    time.Duration
	hashPasswords bool
	events        EventPublisher
	metrics       *metrics.Metrics
	validate      *validator.Validate
	log           *zap.Logger
}

// Option configures an AuthService.
type Option func(*AuthService)

// WithPasswordHashing stores bcrypt hashes instead of plaintext passwords.
func WithPasswordHashing(enabled bool) Option {
	return func(s *AuthService) { s.hashPasswords = enabled }
}

// WithEvents publishes an event after each register and login attempt.
func WithEvents(p EventPublisher) Option {
	return func(s *AuthService) { s.events = p }
}

// WithMetrics counts attempts and store latency.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *AuthService) { s.metrics = m }
}

// WithLogger sets the logger.
func WithLogger(log *zap.Logger) Option {
	return func(s *AuthService) { s.log = log }
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repositories.UserRepository, jwtSecret string, opts ...Option) *AuthService {
	s := &AuthService{
		userRepo:   userRepo,
		jwtSecret:  []byte(jwtSecret),
		tokenDurat: 24 * time.Hour,
		validate:   validator.New(),
		log:        zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

type credentials struct {
	Name     string `validate:"required"`
	Email    string `validate:"required"`
	Password string `validate:"required"`
}

func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (s *AuthService) check(c credentials) error {
	if err := s.validate.Struct(c); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) && len(verrs) > 0 {
			return &errs.ValidationError{Field: strings.ToLower(verrs[0].Field()), Reason: "is required"}
		}
		return &errs.ValidationError{Reason: err.Error()}
	}
	return nil
}

func (s *AuthService) publish(ctx context.Context, kind, email, name string) {
	if s.events == nil {
		return
	}
	event := models.AuthEvent{Type: kind, Email: email, Name: name, At: time.Now().UTC()}
	if err := s.events.PublishAuthEvent(ctx, event); err != nil {
		s.log.Warn("failed to publish auth event", zap.String("type", kind), zap.Error(err))
	}
}

// Register appends a user. Blank fields yield a ValidationError and an email
// already present (trimmed, case-insensitive) a ConflictError.
func (s *AuthService) Register(ctx context.Context, name, email, password string) error {
	c := credentials{Name: strings.TrimSpace(name), Email: normalizeEmail(email), Password: password}
	if strings.TrimSpace(password) == "" {
		c.Password = ""
	}
	if err := s.check(c); err != nil {
		s.metrics.Attempt("register", metrics.ResultInvalid)
		return err
	}

	stored := c.Password
	if s.hashPasswords {
		hashed, err := bcrypt.GenerateFromPassword([]byte(c.Password), bcrypt.DefaultCost)
		if err != nil {
			s.metrics.Attempt("register", metrics.ResultError)
			return fmt.Errorf("failed to hash password: %w", err)
		}
		stored = string(hashed)
	}

	start := time.Now()
	err := s.userRepo.Create(&models.User{Name: c.Name, Email: c.Email, Password: stored})
	s.metrics.ObserveStore("create", time.Since(start).Seconds())
	if err != nil {
		if errors.Is(err, repositories.ErrEmailTaken) {
			s.metrics.Attempt("register", metrics.ResultConflict)
			return &errs.ConflictError{Message: i18n.MsgEmailTaken}
		}
		s.metrics.Attempt("register", metrics.ResultError)
		return fmt.Errorf("failed to register user: %w", err)
	}

	s.metrics.Attempt("register", metrics.ResultOK)
	s.log.Info("user registered", zap.String("email", c.Email))
	s.publish(ctx, models.EventRegistered, c.Email, c.Name)
	return nil
}

// Login checks the password of the record with the given email and returns
// its display name with a signed token.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, string, error) {
	c := credentials{Name: "-", Email: normalizeEmail(email), Password: password}
	if err := s.check(c); err != nil {
		s.metrics.Attempt("login", metrics.ResultInvalid)
		return "", "", err
	}

	start := time.Now()
	user, err := s.userRepo.GetByEmail(c.Email)
	s.metrics.ObserveStore("get_by_email", time.Since(start).Seconds())
	if err != nil && !errors.Is(err, repositories.ErrUserNotFound) {
		s.metrics.Attempt("login", metrics.ResultError)
		return "", "", fmt.Errorf("failed to load user: %w", err)
	}
	if user == nil || !passwordMatches(user.Password, password) {
		s.metrics.Attempt("login", metrics.ResultDenied)
		s.publish(ctx, models.EventLoginFailed, c.Email, "")
		return "", "", &errs.AuthError{Message: i18n.MsgBadCredentials}
	}

	token, err := s.issueToken(user)
	if err != nil {
		s.metrics.Attempt("login", metrics.ResultError)
		return "", "", err
	}
	s.metrics.Attempt("login", metrics.ResultOK)
	s.publish(ctx, models.EventLoggedIn, user.Email, user.Name)
	return user.Name, token, nil
}

// passwordMatches compares exactly, or with bcrypt when the stored value is a hash.
func passwordMatches(stored, given string) bool {
	if strings.HasPrefix(stored, "$2a$") || strings.HasPrefix(stored, "$2b$") || strings.HasPrefix(stored, "$2y$") {
		return bcrypt.CompareHashAndPassword([]byte(stored), []byte(given)) == nil
	}
	return stored == given
}

func (s *AuthService) issueToken(user *models.User) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"email": user.Email,
		"name":  user.Name,
		"exp":   now.Add(s.tokenDurat).Unix(),
		"iat":   now.Unix(),
	})
	tokenString, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to generate token: %w", err)
	}
	return tokenString, nil
}

// ValidateToken parses and validates a JWT token, returning the claims if valid.
func (s *AuthService) ValidateToken(tokenString string) (jwt.MapClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		s.log.Debug("token validation failed", zap.Error(err))
		return nil, fmt.Errorf("invalid token: %w", err)
	}

	if claims, ok := token.Claims.(jwt.MapClaims); ok && token.Valid {
		return claims, nil
	}
	return nil, fmt.Errorf("invalid token")
}

// Users lists the stored users without their passwords.
func (s *AuthService) Users() ([]models.User, error) {
	users, err := s.userRepo.List()
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	for i := range users {
		users[i].Password = ""
	}
	return users, nil
}
