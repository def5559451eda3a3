package handler

import (
	"context"
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Yash39459/ai-mock-interview-webapp/internal/repository"
	"github.com/Yash39459/ai-mock-interview-webapp/pkg/model"
	"github.com/Yash39459/ai-mock-interview-webapp/pkg/response"
)

// maxPageSize caps list page sizes; the limit feeds a slice pre-allocation.
const maxPageSize = 100

// CreateInterview validates the job profile, generates its question set and
// inserts a new interview owned by the current user.
func (h *Handler) CreateInterview(c *gin.Context) {
	var req model.CreateInterviewReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	claims := h.GetClaimsFromContext(c)
	if claims == nil {
		response.Unauthorized(c, "")
		return
	}

	questions, err := h.generate(c, req.Position, req.Description, *req.Experience, req.TechStack)
	if err != nil {
		h.Logger.Error("question generation failed", zap.Error(err))
		response.BadGateway(c, "could not generate interview questions")
		return
	}

	interview := &model.Interview{
		ID:          uuid.New(),
		UserID:      claims.UserID,
		Position:    req.Position,
		Description: req.Description,
		Experience:  *req.Experience,
		TechStack:   req.TechStack,
		Questions:   questions,
	}

	if err := h.Interviews.CreateInterview(c.Request.Context(), interview); err != nil {
		h.Logger.Error("failed to create interview", zap.String("user_id", claims.UserID.String()), zap.Error(err))
		response.InternalError(c, "failed to create interview")
		return
	}

	response.Created(c, interview)
}

// UpdateInterview merges new field values and a regenerated question set into
// an existing interview; the record keeps its id, owner and creation time.
func (h *Handler) UpdateInterview(c *gin.Context) {
	id, ok := parseInterviewID(c)
	if !ok {
		return
	}

	var req model.UpdateInterviewReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	claims := h.GetClaimsFromContext(c)
	if claims == nil {
		response.Unauthorized(c, "")
		return
	}

	existing, err := h.Interviews.GetInterviewByID(c.Request.Context(), id)
	if err != nil || existing.UserID != claims.UserID {
		response.NotFound(c, "interview not found")
		return
	}

	questions, err := h.generate(c, req.Position, req.Description, *req.Experience, req.TechStack)
	if err != nil {
		h.Logger.Error("question generation failed", zap.String("interview_id", id.String()), zap.Error(err))
		response.BadGateway(c, "could not generate interview questions")
		return
	}

	updated := &model.Interview{
		Position:    req.Position,
		Description: req.Description,
		Experience:  *req.Experience,
		TechStack:   req.TechStack,
		Questions:   questions,
	}

	if err := h.Interviews.UpdateInterview(c.Request.Context(), id, claims.UserID, updated); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.NotFound(c, "interview not found")
			return
		}
		h.Logger.Error("failed to update interview", zap.String("interview_id", id.String()), zap.Error(err))
		response.InternalError(c, "failed to update interview")
		return
	}

	response.Message(c, "interview updated successfully")
}

func (h *Handler) GetInterview(c *gin.Context) {
	id, ok := parseInterviewID(c)
	if !ok {
		return
	}

	claims := h.GetClaimsFromContext(c)
	if claims == nil {
		response.Unauthorized(c, "")
		return
	}

	interview, err := h.Interviews.GetInterviewByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.NotFound(c, "interview not found")
			return
		}
		h.Logger.Error("failed to get interview", zap.String("interview_id", id.String()), zap.Error(err))
		response.InternalError(c, "")
		return
	}
	if interview.UserID != claims.UserID {
		response.NotFound(c, "interview not found")
		return
	}

	response.OK(c, interview)
}

func (h *Handler) ListInterviews(c *gin.Context) {
	var q model.ListInterviewsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		response.BadRequest(c, "invalid query parameters")
		return
	}

	claims := h.GetClaimsFromContext(c)
	if claims == nil {
		response.Unauthorized(c, "")
		return
	}

	limit := q.PageSize
	if limit <= 0 {
		limit = 20
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}
	offset := (q.Page - 1) * limit
	if offset < 0 {
		offset = 0
	}

	interviews, total, err := h.Interviews.ListInterviewsByUser(c.Request.Context(), claims.UserID, limit, offset)
	if err != nil {
		h.Logger.Error("failed to list interviews", zap.String("user_id", claims.UserID.String()), zap.Error(err))
		response.InternalError(c, "")
		return
	}

	response.OKWithMeta(c, interviews, &response.Meta{
		Page:     q.Page,
		PageSize: limit,
		Total:    total,
		HasNext:  offset+len(interviews) < total,
	})
}

func (h *Handler) DeleteInterview(c *gin.Context) {
	id, ok := parseInterviewID(c)
	if !ok {
		return
	}

	claims := h.GetClaimsFromContext(c)
	if claims == nil {
		response.Unauthorized(c, "")
		return
	}

	if err := h.Interviews.DeleteInterview(c.Request.Context(), id, claims.UserID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			response.NotFound(c, "interview not found")
			return
		}
		h.Logger.Error("failed to delete interview", zap.String("interview_id", id.String()), zap.Error(err))
		response.InternalError(c, "failed to delete interview")
		return
	}

	response.Message(c, "interview deleted successfully")
}

// ImportPosting fetches a job-posting URL and returns prefill values for the
// interview form; nothing is persisted.
func (h *Handler) ImportPosting(c *gin.Context) {
	var req model.ImportPostingReq
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, err.Error())
		return
	}

	claims := h.GetClaimsFromContext(c)
	if claims == nil {
		response.Unauthorized(c, "")
		return
	}

	posting, err := h.Importer.FetchPosting(c.Request.Context(), req.URL, c.Request.UserAgent())
	if err != nil {
		h.Logger.Warn("posting import failed", zap.String("url", req.URL), zap.Error(err))
		response.BadRequest(c, "could not import posting from url")
		return
	}

	response.OK(c, model.ImportPostingRes{
		SourceURL:   posting.URL,
		Position:    posting.Title,
		Description: posting.Content,
	})
}

func (h *Handler) generate(c *gin.Context, position, description string, experience int, techStack string) ([]model.QA, error) {
	ctx := c.Request.Context()
	if h.GenTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.GenTimeout)
		defer cancel()
	}
	return h.Generator.GenerateQuestions(ctx, position, description, experience, techStack)
}

func parseInterviewID(c *gin.Context) (uuid.UUID, bool) {
	idStr := c.Param("id")
	if idStr == "" {
		response.BadRequest(c, "missing id")
		return uuid.Nil, false
	}
	id, err := uuid.Parse(idStr)
	if err != nil {
		response.BadRequest(c, "invalid id format")
		return uuid.Nil, false
	}
	return id, true
}
