// Package session owns the single logged-in user of the workstation and
// answers authorization questions for every other package.
package session

import (
	"context"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/diewo77/computer-store/auth"
	"github.com/diewo77/computer-store/gate"
	"github.com/diewo77/computer-store/internal/models"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

var (
	ErrAuthRequired       = errors.New("auth_required")
	ErrInvalidCredentials = errors.New("invalid_credentials")
)

// Resource types guarded by the gate.
const (
	ResourceSupplier       = "supplier"
	ResourceCategory       = "category"
	ResourceProduct        = "product"
	ResourceIncomeInvoice  = "income_invoice"
	ResourceOutcomeInvoice = "outcome_invoice"
	ResourceReport         = "report"
	ResourceBackup         = "backup"
	ResourceHelp           = "help"
)

var resources = []string{
	ResourceSupplier, ResourceCategory, ResourceProduct,
	ResourceIncomeInvoice, ResourceOutcomeInvoice,
	ResourceReport, ResourceBackup, ResourceHelp,
}

// Session is the logged-in state.
type Session struct {
	ID        uuid.UUID   `json:"id"`
	User      models.User `json:"user"`
	StartedAt time.Time   `json:"started_at"`
}

// Manager holds at most one Session.
type Manager struct {
	db   *gorm.DB
	gate *gate.Gate[*models.User]
	now  func() time.Time

	mu      sync.RWMutex
	current *Session
}

// NewManager registers a policy for every resource. Any logged-in user may
// do anything; the shop has a single role.
func NewManager(db *gorm.DB) *Manager {
	g := gate.NewGate[*models.User]()
	for _, r := range resources {
		g.Register(r, gate.AllowAuthenticated[*models.User]())
	}
	return &Manager{db: db, gate: g, now: time.Now}
}

// Login checks the credentials and replaces any current session.
func (m *Manager) Login(ctx context.Context, username, password string) (*Session, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, ErrInvalidCredentials
	}
	var u models.User
	err := m.db.WithContext(ctx).Where("username = ?", username).First(&u).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		logrus.WithField("username", username).Warn("login: unknown user")
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}
	ok, legacy := auth.CheckPassword(u.Password, password)
	if !ok {
		logrus.WithField("username", username).Warn("login: bad password")
		return nil, ErrInvalidCredentials
	}
	if legacy {
		m.upgradePassword(ctx, &u, password)
	}

	s := &Session{ID: uuid.New(), User: u, StartedAt: m.now()}
	m.mu.Lock()
	m.current = s
	m.mu.Unlock()
	logrus.WithFields(logrus.Fields{"username": u.Username, "session": s.ID}).Info("login")
	return s, nil
}

// upgradePassword replaces a plaintext password restored from an old backup.
// Failure is logged only; the login itself already succeeded.
func (m *Manager) upgradePassword(ctx context.Context, u *models.User, password string) {
	hash, err := auth.HashPassword(password)
	if err != nil {
		logrus.WithError(err).Error("login: hash legacy password")
		return
	}
	if err := m.db.WithContext(ctx).Model(&models.User{}).Where("id = ?", u.ID).Update("password", hash).Error; err != nil {
		logrus.WithError(err).Error("login: store rehashed password")
		return
	}
	u.Password = hash
	logrus.WithField("username", u.Username).Info("login: legacy password re-hashed")
}

// Logout ends the current session, if any.
func (m *Manager) Logout() {
	m.mu.Lock()
	s := m.current
	m.current = nil
	m.mu.Unlock()
	if s != nil {
		logrus.WithFields(logrus.Fields{"username": s.User.Username, "session": s.ID}).Info("logout")
	}
}

// Current returns a copy of the live session.
func (m *Manager) Current() (Session, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	if m.current == nil {
		return Session{}, false
	}
	return *m.current, true
}

// IsCurrent reports whether id names the live session. It matches
// auth.SessionVerifier.
func (m *Manager) IsCurrent(_ context.Context, id string) bool {
	s, ok := m.Current()
	return ok && s.ID.String() == id
}

// Authorize fails with ErrAuthRequired while logged out.
func (m *Manager) Authorize(ctx context.Context, action gate.Action, resource string) error {
	s, ok := m.Current()
	if !ok {
		return ErrAuthRequired
	}
	err := m.gate.Authorize(ctx, &s.User, action, resource, nil)
	if errors.Is(err, gate.ErrUnauthorized) {
		return ErrAuthRequired
	}
	return err
}

// Resources lists the guarded resource types.
func (m *Manager) Resources() []string { return m.gate.Resources() }
