package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Yash39459/ai-mock-interview-webapp/internal/repository"
	"github.com/Yash39459/ai-mock-interview-webapp/pkg"
	"github.com/Yash39459/ai-mock-interview-webapp/pkg/model"
	"github.com/Yash39459/ai-mock-interview-webapp/pkg/response"
)

// SignUp creates a new user account
func (h *Handler) SignUp(c *gin.Context) {
	var req model.SignUpReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	pwHash, err := pkg.HashPassword(req.Password)
	if err != nil {
		h.Logger.Error("failed to hash password", zap.Error(err))
		response.InternalError(c, "")
		return
	}

	user := &model.User{
		Name:         req.Name,
		Email:        req.Email,
		PasswordHash: pwHash,
	}

	if err := h.Users.CreateUser(c.Request.Context(), user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEmail) {
			response.BadRequest(c, "email already registered")
			return
		}
		h.Logger.Error("user create failed", zap.String("email", req.Email), zap.Error(err))
		response.InternalError(c, "could not create user")
		return
	}

	response.Created(c, model.UserRes{UserID: user.UserID, Name: user.Name, Email: user.Email})
}

// Login verifies credentials and returns access and refresh tokens
func (h *Handler) Login(c *gin.Context) {
	var req model.LoginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	ctx := c.Request.Context()
	user, err := h.Users.GetUserByEmail(ctx, req.Email)
	if err != nil {
		h.Logger.Warn("login user not found", zap.String("email", req.Email), zap.Error(err))
		response.Unauthorized(c, "invalid credentials")
		return
	}
	if err := pkg.ComparePassword(user.PasswordHash, req.Password); err != nil {
		response.Unauthorized(c, "invalid credentials")
		return
	}

	refreshToken, refreshClaims, err := h.TokenMaker.GenerateToken(user.UserID, user.Email, h.RefreshTTL, "")
	if err != nil {
		h.Logger.Error("error creating refresh token", zap.Error(err))
		response.InternalError(c, "could not generate token")
		return
	}

	accessToken, accessClaims, err := h.TokenMaker.GenerateToken(user.UserID, user.Email, h.AccessTTL, refreshClaims.SessionID)
	if err != nil {
		h.Logger.Error("error creating access token", zap.Error(err))
		response.InternalError(c, "could not generate token")
		return
	}

	session, err := h.Sessions.CreateUserSession(ctx, &model.UserToken{
		UserTokenID:  refreshClaims.RegisteredClaims.ID,
		UserID:       user.UserID,
		RefreshToken: refreshToken,
		ExpiresAt:    refreshClaims.RegisteredClaims.ExpiresAt.Time,
		IsRevoked:    false,
	})
	if err != nil {
		h.Logger.Error("error creating session", zap.Error(err))
		response.InternalError(c, "could not create session")
		return
	}

	response.OK(c, model.LoginUserRes{
		SessionID:             session.UserTokenID,
		AccessToken:           accessToken,
		RefreshToken:          refreshToken,
		AccessTokenExpiresAt:  accessClaims.RegisteredClaims.ExpiresAt.Time,
		RefreshTokenExpiresAt: refreshClaims.RegisteredClaims.ExpiresAt.Time,
		User:                  model.UserRes{UserID: user.UserID, Name: user.Name, Email: user.Email},
	})
}

// Me returns the current user profile
func (h *Handler) Me(c *gin.Context) {
	claims := h.GetClaimsFromContext(c)
	if claims == nil {
		response.Unauthorized(c, "")
		return
	}

	user, err := h.Users.GetUserByID(c.Request.Context(), claims.UserID)
	if err != nil {
		response.Unauthorized(c, "")
		return
	}

	response.OK(c, model.UserRes{UserID: user.UserID, Name: user.Name, Email: user.Email})
}

func (h *Handler) Logout(c *gin.Context) {
	claims := h.GetClaimsFromContext(c)
	if claims == nil {
		response.Unauthorized(c, "")
		return
	}

	if err := h.Sessions.DeleteUserSession(c.Request.Context(), claims.SessionID); err != nil {
		response.InternalError(c, "could not end session")
		return
	}
	response.Message(c, "user logged out successfully")
}

func (h *Handler) RenewAccessToken(c *gin.Context) {
	var req model.RenewAccessTokenReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	refreshClaims, err := h.TokenMaker.VerifyToken(req.RefreshToken)
	if err != nil {
		response.Unauthorized(c, err.Error())
		return
	}

	session, err := h.Sessions.GetUserSession(c.Request.Context(), refreshClaims.RegisteredClaims.ID)
	if err != nil {
		response.Unauthorized(c, "session not found")
		return
	}

	if session.IsRevoked {
		response.Unauthorized(c, "session revoked")
		return
	}
	if session.UserID != refreshClaims.UserID {
		response.Unauthorized(c, "incorrect session user")
		return
	}

	accessToken, accessClaims, err := h.TokenMaker.GenerateToken(refreshClaims.UserID, refreshClaims.Email, h.AccessTTL, refreshClaims.SessionID)
	if err != nil {
		response.InternalError(c, "could not generate access token")
		return
	}

	response.OK(c, model.RenewAccessTokenRes{
		AccessToken:          accessToken,
		AccessTokenExpiresAt: accessClaims.RegisteredClaims.ExpiresAt.Time,
	})
}

func (h *Handler) RevokeSession(c *gin.Context) {
	claims := h.GetClaimsFromContext(c)
	if claims == nil {
		response.Unauthorized(c, "")
		return
	}

	if err := h.Sessions.RevokeUserSession(c.Request.Context(), claims.SessionID); err != nil {
		response.InternalError(c, "could not revoke session")
		return
	}
	response.Message(c, "session revoked successfully")
}
