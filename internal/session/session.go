package session

import (
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/preston-bernstein/matchday-service/internal/domain/users"
	"github.com/preston-bernstein/matchday-service/internal/logging"
)

const minPasswordLength = 6

// Validation errors. Messages are shown to end users as-is.
var (
	ErrMissingFields    = errors.New("please fill in all fields")
	ErrInvalidEmail     = errors.New("please enter a valid email")
	ErrPasswordTooShort = errors.New("password must be at least 6 characters")
	ErrPasswordMismatch = errors.New("passwords do not match")
	ErrNotLoggedIn      = errors.New("not logged in")
)

// UserSink receives the signed-in user, or nil on logout.
type UserSink interface {
	SetUser(u *users.User)
}

// Manager holds the single local session. Nothing is verified against a
// server: credentials are only checked for shape.
type Manager struct {
	mu      sync.RWMutex
	current *users.User
	sink    UserSink
	logger  *zerolog.Logger
	now     func() time.Time
	newID   func() string
}

// NewManager builds a signed-out manager. sink may be nil.
func NewManager(sink UserSink, logger *zerolog.Logger) *Manager {
	return &Manager{
		sink:   sink,
		logger: logger,
		now:    time.Now,
		newID:  uuid.NewString,
	}
}

// Login signs in with the email's local part as display name.
func (m *Manager) Login(email, password string) (users.User, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return users.User{}, ErrMissingFields
	}
	if err := validateCredentials(email, password); err != nil {
		return users.User{}, err
	}
	name, _, _ := strings.Cut(email, "@")
	return m.start(name, email), nil
}

// Register validates the sign-up form and signs the new user in.
func (m *Manager) Register(name, email, password, confirm string) (users.User, error) {
	name = strings.TrimSpace(name)
	email = strings.TrimSpace(email)
	if name == "" || email == "" || password == "" || confirm == "" {
		return users.User{}, ErrMissingFields
	}
	if err := validateCredentials(email, password); err != nil {
		return users.User{}, err
	}
	if password != confirm {
		return users.User{}, ErrPasswordMismatch
	}
	return m.start(name, email), nil
}

// Logout clears the session. It is a no-op when signed out.
func (m *Manager) Logout() {
	m.mu.Lock()
	had := m.current != nil
	m.current = nil
	m.mu.Unlock()

	if had {
		logging.Info(m.logger, "session ended")
	}
	if m.sink != nil {
		m.sink.SetUser(nil)
	}
}

// Current returns the signed-in user.
func (m *Manager) Current() (users.User, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.current == nil {
		return users.User{}, ErrNotLoggedIn
	}
	return *m.current, nil
}

// IsValidation reports whether err is one of the form validation errors.
func IsValidation(err error) bool {
	return errors.Is(err, ErrMissingFields) ||
		errors.Is(err, ErrInvalidEmail) ||
		errors.Is(err, ErrPasswordTooShort) ||
		errors.Is(err, ErrPasswordMismatch)
}

func (m *Manager) start(name, email string) users.User {
	u := users.User{
		ID:        m.newID(),
		Name:      name,
		Email:     email,
		CreatedAt: m.now().UTC(),
	}

	m.mu.Lock()
	m.current = &u
	m.mu.Unlock()

	logging.Info(m.logger, "session started", "user_id", u.ID)
	if m.sink != nil {
		m.sink.SetUser(&u)
	}
	return u
}

func validateCredentials(email, password string) error {
	if !strings.Contains(email, "@") {
		return ErrInvalidEmail
	}
	if len(password) < minPasswordLength {
		return ErrPasswordTooShort
	}
	return nil
}
