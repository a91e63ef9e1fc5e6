package wizard

import "github.com/boardflow/backend/pkg/apperr"

// ErrNoWizard is returned when a wizard operation runs with no wizard open.
var ErrNoWizard = apperr.Conflict("no meeting wizard in progress")

// Session holds the wizard a user currently has open, if any.
type Session struct {
	ctrl  *Controller
	newFn func() *Controller
}

// NewSession creates an empty session that builds controllers with newFn.
func NewSession(newFn func() *Controller) *Session {
	return &Session{newFn: newFn}
}

// Open starts a fresh wizard, discarding any open one.
func (s *Session) Open() *Controller {
	s.ctrl = s.newFn()
	return s.ctrl
}

// Active returns the open wizard.
func (s *Session) Active() (*Controller, error) {
	if s.ctrl == nil {
		return nil, ErrNoWizard
	}
	return s.ctrl, nil
}

// Close discards the open wizard.
func (s *Session) Close() { s.ctrl = nil }
