package auth

import (
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"

	"github.com/boardflow/backend/pkg/apperr"
)

// MFA settings.
const (
	MFACode           = "123456"
	MFACodeLength     = 6
	DefaultCodeWindow = 30 * time.Second
	challengeLifetime = 10 * time.Minute
)

// Verification methods a challenge can be delivered by.
const (
	MethodApp   = "app"
	MethodSMS   = "sms"
	MethodEmail = "email"
)

// Challenge is a pending second factor for a login that already passed the password check.
type Challenge struct {
	ID        string    `json:"challenge_id"`
	Method    string    `json:"method"`
	ExpiresAt time.Time `json:"expires_at"`
	ExpiresIn int       `json:"expires_in"`
}

type pending struct {
	challenge Challenge
	identity  Identity
}

// MFA keeps pending challenges in an expiring in-process cache.
type MFA struct {
	mu     sync.Mutex
	cache  *cache.Cache
	window time.Duration
	now    func() time.Time
}

// NewMFA creates a challenge store whose codes are valid for window.
func NewMFA(window time.Duration) *MFA {
	if window <= 0 {
		window = DefaultCodeWindow
	}
	return &MFA{
		cache:  cache.New(challengeLifetime, 2*challengeLifetime),
		window: window,
		now:    time.Now,
	}
}

func validMethod(m string) bool {
	return m == MethodApp || m == MethodSMS || m == MethodEmail
}

// Issue opens a challenge for id.
func (m *MFA) Issue(id Identity, method string) Challenge {
	if !validMethod(method) {
		method = MethodApp
	}
	p := &pending{identity: id, challenge: Challenge{ID: uuid.NewString(), Method: method}}
	m.mu.Lock()
	defer m.mu.Unlock()
	m.restart(p)
	m.cache.Set(p.challenge.ID, p, cache.DefaultExpiration)
	return p.challenge
}

func (m *MFA) restart(p *pending) {
	p.challenge.ExpiresAt = m.now().Add(m.window)
	p.challenge.ExpiresIn = int(m.window / time.Second)
}

func (m *MFA) lookup(challengeID string) (*pending, error) {
	v, ok := m.cache.Get(challengeID)
	if !ok {
		return nil, apperr.NotFound("verification challenge not found")
	}
	return v.(*pending), nil
}

// Verify accepts exactly MFACode while the code window is open and consumes the challenge.
func (m *MFA) Verify(challengeID, code string) (Identity, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, err := m.lookup(challengeID)
	if err != nil {
		return Identity{}, err
	}
	if len(code) != MFACodeLength {
		return Identity{}, apperr.Validation("Enter the 6-digit code")
	}
	if m.now().After(p.challenge.ExpiresAt) {
		return Identity{}, apperr.Unauthorized("Verification code expired")
	}
	if code != MFACode {
		return Identity{}, apperr.Unauthorized("Invalid verification code")
	}
	m.cache.Delete(challengeID)
	return p.identity, nil
}

// Resend restarts the code window once the previous one has run out.
func (m *MFA) Resend(challengeID string) (Challenge, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	p, err := m.lookup(challengeID)
	if err != nil {
		return Challenge{}, err
	}
	if left := p.challenge.ExpiresAt.Sub(m.now()); left > 0 {
		return Challenge{}, apperr.Conflict("Resend code in " + left.Round(time.Second).String())
	}
	m.restart(p)
	m.cache.Set(challengeID, p, cache.DefaultExpiration)
	return p.challenge, nil
}
