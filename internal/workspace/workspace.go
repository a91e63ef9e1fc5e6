// Package workspace keeps the per-user state created at sign-in: the meeting wizard, the
// agenda view, the meeting dashboard and the admin directory, all seeded from fixtures.
package workspace

import (
	"sync"
	"time"

	"github.com/patrickmn/go-cache"
	"go.uber.org/zap"

	"github.com/boardflow/backend/internal/admin"
	"github.com/boardflow/backend/internal/agendas"
	"github.com/boardflow/backend/internal/fixtures"
	"github.com/boardflow/backend/internal/meetings"
	"github.com/boardflow/backend/internal/models"
	"github.com/boardflow/backend/internal/wizard"
	"github.com/boardflow/backend/pkg/apperr"
)

// DefaultTTL is how long an idle workspace is kept.
const DefaultTTL = 2 * time.Hour

// ErrExpired is returned for users without a live workspace.
var ErrExpired = apperr.Unauthorized("session expired, sign in again")

// Hooks receive workspace events. They run while the workspace is locked and must not
// block; nil hooks are skipped.
type Hooks struct {
	MeetingCompleted func(userID string, draft models.MeetingDraft, meeting models.Meeting)
	MeetingSaved     func(userID string, meeting models.Meeting)
	AgendaSaved      func(userID string, agenda models.Agenda)
	DirectoryChanged func(userID string, change admin.Change)
}

// Workspace is one signed-in user's state. Fields are only touched with mu held.
type Workspace struct {
	mu sync.Mutex

	User      models.User
	Tab       string
	CreatedAt time.Time
	Wizard    *wizard.Session
	Agendas   *agendas.View
	Meetings  *meetings.Dashboard
	Directory *admin.Directory
}

func newWorkspace(user models.User, tab string, hooks Hooks, logger *zap.Logger) *Workspace {
	logger = logger.With(zap.String("user_id", user.ID))
	ws := &Workspace{User: user, Tab: tab, CreatedAt: time.Now()}

	ws.Meetings = meetings.NewDashboard(fixtures.Meetings(), user.Name, func(m models.Meeting) {
		if hooks.MeetingSaved != nil {
			hooks.MeetingSaved(user.ID, m)
		}
	}, logger)

	ws.Wizard = wizard.NewSession(func() *wizard.Controller {
		return wizard.NewController(func(d models.MeetingDraft) {
			m := ws.Meetings.AddFromDraft(d)
			if hooks.MeetingCompleted != nil {
				hooks.MeetingCompleted(user.ID, d, m)
			}
		}, logger)
	})

	ws.Agendas = agendas.NewView(fixtures.Agendas(), agendas.Author{ID: user.ID, Name: user.Name}, func(a models.Agenda) {
		if hooks.AgendaSaved != nil {
			hooks.AgendaSaved(user.ID, a)
		}
	}, logger)

	ws.Directory = admin.NewDirectory(fixtures.Roles(), fixtures.Users(), func(ch admin.Change) {
		if hooks.DirectoryChanged != nil {
			hooks.DirectoryChanged(user.ID, ch)
		}
	}, logger)
	return ws
}

// Store holds workspaces keyed by user id and drops those idle longer than the TTL.
type Store struct {
	mu     sync.Mutex
	cache  *cache.Cache
	hooks  Hooks
	logger *zap.Logger
}

// NewStore creates a store whose workspaces expire after ttl without use.
func NewStore(ttl time.Duration, hooks Hooks, logger *zap.Logger) *Store {
	if logger == nil {
		logger = zap.NewNop()
	}
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	c := cache.New(ttl, ttl/2)
	c.OnEvicted(func(userID string, _ interface{}) {
		logger.Info("workspace evicted", zap.String("user_id", userID))
	})
	return &Store{cache: c, hooks: hooks, logger: logger}
}

// Create gives user a fresh workspace, replacing any previous one.
func (s *Store) Create(user models.User, tab string) *Workspace {
	ws := newWorkspace(user, tab, s.hooks, s.logger)
	s.mu.Lock()
	s.cache.Set(user.ID, ws, cache.DefaultExpiration)
	s.mu.Unlock()
	s.logger.Info("workspace created", zap.String("user_id", user.ID), zap.String("tab", tab))
	return ws
}

// Get returns the user's workspace and restarts its idle timer.
func (s *Store) Get(userID string) (*Workspace, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.cache.Get(userID)
	if !ok {
		return nil, ErrExpired
	}
	ws := v.(*Workspace)
	s.cache.Set(userID, ws, cache.DefaultExpiration)
	return ws, nil
}

// Delete drops the user's workspace.
func (s *Store) Delete(userID string) {
	s.cache.Delete(userID)
}

// Count returns the number of live workspaces.
func (s *Store) Count() int {
	return s.cache.ItemCount()
}

// Lock returns the user's workspace with its mutex held; release unlocks it.
func (s *Store) Lock(userID string) (*Workspace, func(), error) {
	ws, err := s.Get(userID)
	if err != nil {
		return nil, nil, err
	}
	ws.mu.Lock()
	return ws, ws.mu.Unlock, nil
}

// Wizard locks the user's workspace and returns its wizard session.
func (s *Store) Wizard(userID string) (*wizard.Session, func(), error) {
	ws, release, err := s.Lock(userID)
	if err != nil {
		return nil, nil, err
	}
	return ws.Wizard, release, nil
}

// Agendas locks the user's workspace and returns its agenda view.
func (s *Store) Agendas(userID string) (*agendas.View, func(), error) {
	ws, release, err := s.Lock(userID)
	if err != nil {
		return nil, nil, err
	}
	return ws.Agendas, release, nil
}

// Meetings locks the user's workspace and returns its dashboard.
func (s *Store) Meetings(userID string) (*meetings.Dashboard, func(), error) {
	ws, release, err := s.Lock(userID)
	if err != nil {
		return nil, nil, err
	}
	return ws.Meetings, release, nil
}

// Directory locks the user's workspace and returns its admin directory.
func (s *Store) Directory(userID string) (*admin.Directory, func(), error) {
	ws, release, err := s.Lock(userID)
	if err != nil {
		return nil, nil, err
	}
	return ws.Directory, release, nil
}
