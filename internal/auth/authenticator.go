package auth

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/boardflow/backend/internal/fixtures"
	"github.com/boardflow/backend/internal/models"
	"github.com/boardflow/backend/pkg/apperr"
	"github.com/boardflow/backend/pkg/utils"
)

// DefaultLoginDelay is how long a login attempt takes to resolve.
const DefaultLoginDelay = time.Second

// ErrInvalidCredentials is returned for any unknown email or wrong password.
var ErrInvalidCredentials = apperr.Unauthorized("Invalid email or password")

// Identity is a signed-in user and the dashboard tab it lands on.
type Identity struct {
	User models.User `json:"user"`
	Tab  string      `json:"tab"`
}

// Result is delivered to LoginAsync callbacks. Exactly one of Identity and Err is meaningful.
type Result struct {
	Identity Identity
	Err      error
}

type account struct {
	hash     string
	identity Identity
}

// Authenticator checks logins against a fixed credential table. Emails must match exactly.
type Authenticator struct {
	accounts map[string]account
	delay    time.Duration
	logger   *zap.Logger
}

// NewAuthenticator hashes every credential with bcrypt at the given cost. Credentials
// referencing an unknown user are rejected.
func NewAuthenticator(creds []fixtures.Credential, users []models.User, delay time.Duration, bcryptCost int, logger *zap.Logger) (*Authenticator, error) {
	if logger == nil {
		logger = zap.NewNop()
	}
	byID := make(map[string]models.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}
	accounts := make(map[string]account, len(creds))
	for _, c := range creds {
		u, ok := byID[c.UserID]
		if !ok {
			return nil, fmt.Errorf("credential %s: unknown user %s", c.Email, c.UserID)
		}
		hash, err := utils.HashPassword(c.Password, bcryptCost)
		if err != nil {
			return nil, fmt.Errorf("hash credential %s: %w", c.Email, err)
		}
		accounts[c.Email] = account{hash: hash, identity: Identity{User: u, Tab: c.Tab}}
	}
	return &Authenticator{accounts: accounts, delay: delay, logger: logger}, nil
}

// Login waits for the configured delay and then resolves the attempt. Cancelling ctx
// during the wait abandons the attempt with ctx's error.
func (a *Authenticator) Login(ctx context.Context, email, password string) (Identity, error) {
	if a.delay > 0 {
		timer := time.NewTimer(a.delay)
		defer timer.Stop()
		select {
		case <-ctx.Done():
			return Identity{}, ctx.Err()
		case <-timer.C:
		}
	}

	acc, ok := a.accounts[email]
	if !ok || !utils.CheckPassword(password, acc.hash) {
		a.logger.Info("login rejected", zap.String("email", email))
		return Identity{}, ErrInvalidCredentials
	}
	a.logger.Info("login accepted", zap.String("user_id", acc.identity.User.ID), zap.String("tab", acc.identity.Tab))
	return acc.identity, nil
}

// LoginAsync runs Login in the background and calls done exactly once with its outcome.
func (a *Authenticator) LoginAsync(ctx context.Context, email, password string, done func(Result)) {
	go func() {
		id, err := a.Login(ctx, email, password)
		done(Result{Identity: id, Err: err})
	}()
}
