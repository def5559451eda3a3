package handler

import (
	"context"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Yash39459/ai-mock-interview-webapp/internal/auth"
	"github.com/Yash39459/ai-mock-interview-webapp/internal/fetcher"
	"github.com/Yash39459/ai-mock-interview-webapp/pkg/model"
)

type UserStore interface {
	CreateUser(ctx context.Context, u *model.User) error
	GetUserByEmail(ctx context.Context, email string) (*model.User, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (*model.User, error)
}

type SessionStore interface {
	CreateUserSession(ctx context.Context, s *model.UserToken) (*model.UserToken, error)
	GetUserSession(ctx context.Context, tokenID string) (*model.UserToken, error)
	DeleteUserSession(ctx context.Context, tokenID string) error
	RevokeUserSession(ctx context.Context, tokenID string) error
}

type InterviewStore interface {
	CreateInterview(ctx context.Context, in *model.Interview) error
	UpdateInterview(ctx context.Context, id, userID uuid.UUID, in *model.Interview) error
	GetInterviewByID(ctx context.Context, id uuid.UUID) (*model.Interview, error)
	ListInterviewsByUser(ctx context.Context, userID uuid.UUID, limit, offset int) ([]model.Interview, int, error)
	DeleteInterview(ctx context.Context, id, userID uuid.UUID) error
}

// QuestionGenerator produces the question/answer pairs for a job profile.
type QuestionGenerator interface {
	GenerateQuestions(ctx context.Context, position, description string, experience int, techStack string) ([]model.QA, error)
}

type PostingFetcher interface {
	FetchPosting(ctx context.Context, rawURL, userAgent string) (*fetcher.Posting, error)
}

type Handler struct {
	Logger     *zap.Logger
	Users      UserStore
	Sessions   SessionStore
	Interviews InterviewStore
	Generator  QuestionGenerator
	Importer   PostingFetcher
	TokenMaker *auth.JWTMaker
	AccessTTL  time.Duration
	RefreshTTL time.Duration
	GenTimeout time.Duration
}

// GetClaimsFromContext retrieves the verified token claims set by the auth middleware
func (h *Handler) GetClaimsFromContext(c *gin.Context) *auth.UserClaims {
	v, exists := c.Get("claims")
	if !exists {
		return nil
	}
	claims, ok := v.(*auth.UserClaims)
	if !ok {
		return nil
	}
	return claims
}
