package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/Yash39459/ai-mock-interview-webapp/internal/auth"
	"github.com/Yash39459/ai-mock-interview-webapp/internal/repository"
	"github.com/Yash39459/ai-mock-interview-webapp/pkg"
	"github.com/Yash39459/ai-mock-interview-webapp/pkg/model"
)

type fakeUserStore struct {
	byEmail map[string]*model.User
}

func (f *fakeUserStore) CreateUser(_ context.Context, u *model.User) error {
	if _, ok := f.byEmail[u.Email]; ok {
		return repository.ErrDuplicateEmail
	}
	u.UserID = uuid.New()
	f.byEmail[u.Email] = u
	return nil
}

func (f *fakeUserStore) GetUserByEmail(_ context.Context, email string) (*model.User, error) {
	u, ok := f.byEmail[email]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return u, nil
}

func (f *fakeUserStore) GetUserByID(_ context.Context, id uuid.UUID) (*model.User, error) {
	for _, u := range f.byEmail {
		if u.UserID == id {
			return u, nil
		}
	}
	return nil, repository.ErrNotFound
}

type fakeSessionStore struct {
	sessions map[string]*model.UserToken
}

func (f *fakeSessionStore) CreateUserSession(_ context.Context, s *model.UserToken) (*model.UserToken, error) {
	s.CreatedAt = time.Now()
	f.sessions[s.UserTokenID] = s
	return s, nil
}

func (f *fakeSessionStore) GetUserSession(_ context.Context, tokenID string) (*model.UserToken, error) {
	s, ok := f.sessions[tokenID]
	if !ok {
		return nil, repository.ErrNotFound
	}
	return s, nil
}

func (f *fakeSessionStore) DeleteUserSession(_ context.Context, tokenID string) error {
	delete(f.sessions, tokenID)
	return nil
}

func (f *fakeSessionStore) RevokeUserSession(_ context.Context, tokenID string) error {
	s, ok := f.sessions[tokenID]
	if !ok {
		return repository.ErrNotFound
	}
	s.IsRevoked = true
	return nil
}

func newUserTestHandler(t *testing.T) (*Handler, *fakeUserStore, *fakeSessionStore) {
	t.Helper()
	maker, err := auth.NewJWTMaker("0123456789abcdef0123456789abcdef")
	require.NoError(t, err)

	users := &fakeUserStore{byEmail: map[string]*model.User{}}
	sessions := &fakeSessionStore{sessions: map[string]*model.UserToken{}}
	h := &Handler{
		Logger:     zap.NewNop(),
		Users:      users,
		Sessions:   sessions,
		TokenMaker: maker,
		AccessTTL:  15 * time.Minute,
		RefreshTTL: 7 * 24 * time.Hour,
	}
	return h, users, sessions
}

func newUserTestRouter(h *Handler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.POST("/signup", h.SignUp)
	r.POST("/login", h.Login)
	r.POST("/tokens/renew", h.RenewAccessToken)
	return r
}

func TestSignUpAndLogin(t *testing.T) {
	h, users, sessions := newUserTestHandler(t)
	r := newUserTestRouter(h)

	w := doJSON(t, r, http.MethodPost, "/signup", model.SignUpReq{
		Name:     "Test User",
		Email:    "user@example.com",
		Password: "secret-pw",
	})
	require.Equal(t, http.StatusCreated, w.Code)
	require.Contains(t, users.byEmail, "user@example.com")
	require.NoError(t, pkg.ComparePassword(users.byEmail["user@example.com"].PasswordHash, "secret-pw"))

	w = doJSON(t, r, http.MethodPost, "/login", model.LoginReq{
		Email:    "user@example.com",
		Password: "secret-pw",
	})
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, sessions.sessions, 1)
}

func TestSignUp_duplicateEmail(t *testing.T) {
	h, _, _ := newUserTestHandler(t)
	r := newUserTestRouter(h)

	req := model.SignUpReq{Name: "Test User", Email: "user@example.com", Password: "secret-pw"}
	w := doJSON(t, r, http.MethodPost, "/signup", req)
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, r, http.MethodPost, "/signup", req)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestLogin_wrongPassword(t *testing.T) {
	h, _, _ := newUserTestHandler(t)
	r := newUserTestRouter(h)

	w := doJSON(t, r, http.MethodPost, "/signup", model.SignUpReq{
		Name:     "Test User",
		Email:    "user@example.com",
		Password: "secret-pw",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, r, http.MethodPost, "/login", model.LoginReq{
		Email:    "user@example.com",
		Password: "wrong-pw",
	})
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRenewAccessToken(t *testing.T) {
	h, _, sessions := newUserTestHandler(t)
	r := newUserTestRouter(h)

	w := doJSON(t, r, http.MethodPost, "/signup", model.SignUpReq{
		Name:     "Test User",
		Email:    "user@example.com",
		Password: "secret-pw",
	})
	require.Equal(t, http.StatusCreated, w.Code)

	w = doJSON(t, r, http.MethodPost, "/login", model.LoginReq{
		Email:    "user@example.com",
		Password: "secret-pw",
	})
	require.Equal(t, http.StatusOK, w.Code)

	var env struct {
		Data model.LoginUserRes `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	require.NotEmpty(t, env.Data.RefreshToken)

	w = doJSON(t, r, http.MethodPost, "/tokens/renew", model.RenewAccessTokenReq{
		RefreshToken: env.Data.RefreshToken,
	})
	require.Equal(t, http.StatusOK, w.Code)

	// a revoked session can no longer be renewed
	for _, s := range sessions.sessions {
		s.IsRevoked = true
	}
	w = doJSON(t, r, http.MethodPost, "/tokens/renew", model.RenewAccessTokenReq{
		RefreshToken: env.Data.RefreshToken,
	})
	require.Equal(t, http.StatusUnauthorized, w.Code)
}
