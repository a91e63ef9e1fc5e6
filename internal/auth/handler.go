package auth

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/boardflow/backend/internal/models"
	"github.com/boardflow/backend/pkg/response"
)

// LoginRequest is the body for POST /auth/login. Fields are not validated: any pair
// outside the credential table is rejected as invalid credentials.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	MFA      bool   `json:"mfa"`
	Method   string `json:"method"` // app, sms or email
}

// VerifyRequest is the body for POST /auth/mfa/verify.
type VerifyRequest struct {
	ChallengeID string `json:"challenge_id" binding:"required"`
	Code        string `json:"code" binding:"required"`
}

// ResendRequest is the body for POST /auth/mfa/resend.
type ResendRequest struct {
	ChallengeID string `json:"challenge_id" binding:"required"`
}

// TokenResponse is the auth response with JWT.
type TokenResponse struct {
	Token string      `json:"token"`
	Tab   string      `json:"tab"`
	User  models.User `json:"user"`
}

// ChallengeResponse is returned when a second factor is still needed.
type ChallengeResponse struct {
	MFARequired bool      `json:"mfa_required"`
	Challenge   Challenge `json:"challenge"`
}

// LoginFunc is called for every completed sign-in before the token is returned.
type LoginFunc func(Identity)

// Handler handles auth HTTP endpoints.
type Handler struct {
	auth       *Authenticator
	mfa        *MFA
	jwt        *JWTService
	requireMFA bool
	onLogin    LoginFunc
	logger     *zap.Logger
}

// NewHandler creates an auth handler. When requireMFA is set every login goes through a challenge.
func NewHandler(a *Authenticator, mfa *MFA, jwt *JWTService, requireMFA bool, onLogin LoginFunc, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	if onLogin == nil {
		onLogin = func(Identity) {}
	}
	return &Handler{auth: a, mfa: mfa, jwt: jwt, requireMFA: requireMFA, onLogin: onLogin, logger: logger}
}

// Login handles POST /auth/login.
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}

	id, err := h.auth.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		response.Error(c, err)
		return
	}

	if h.requireMFA || req.MFA {
		ch := h.mfa.Issue(id, req.Method)
		h.logger.Info("mfa challenge issued", zap.String("user_id", id.User.ID), zap.String("method", ch.Method))
		response.OK(c, ChallengeResponse{MFARequired: true, Challenge: ch})
		return
	}
	h.complete(c, id)
}

// VerifyMFA handles POST /auth/mfa/verify.
func (h *Handler) VerifyMFA(c *gin.Context) {
	var req VerifyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	id, err := h.mfa.Verify(req.ChallengeID, req.Code)
	if err != nil {
		response.Error(c, err)
		return
	}
	h.complete(c, id)
}

// ResendMFA handles POST /auth/mfa/resend.
func (h *Handler) ResendMFA(c *gin.Context) {
	var req ResendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "invalid request: "+err.Error())
		return
	}
	ch, err := h.mfa.Resend(req.ChallengeID)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.OK(c, ChallengeResponse{MFARequired: true, Challenge: ch})
}

func (h *Handler) complete(c *gin.Context, id Identity) {
	token, err := h.jwt.Generate(id)
	if err != nil {
		h.logger.Error("generate token", zap.Error(err))
		response.Internal(c, "failed to generate token")
		return
	}
	h.onLogin(id)
	response.OK(c, TokenResponse{Token: token, Tab: id.Tab, User: id.User})
}
