package model

import (
	"time"

	"github.com/google/uuid"
)

// QA is a single generated question/answer pair.
type QA struct {
	Question string `json:"question"`
	Answer   string `json:"answer"`
}

// Interview is a persisted job profile plus its generated questions.
// Questions are only populated after a successful generation call.
type Interview struct {
	ID          uuid.UUID `json:"id" db:"id"`
	UserID      uuid.UUID `json:"user_id" db:"user_id"`
	Position    string    `json:"position" db:"position"`
	Description string    `json:"description" db:"description"`
	Experience  int       `json:"experience" db:"experience"`
	TechStack   string    `json:"tech_stack" db:"tech_stack"`
	Questions   []QA      `json:"questions" db:"questions"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"`
}

// CreateInterviewReq carries the job profile fields; Experience is a pointer
// so that 0 still binds while a missing value is rejected.
type CreateInterviewReq struct {
	Position    string `json:"position" binding:"required,min=1,max=100"`
	Description string `json:"description" binding:"required,min=10"`
	Experience  *int   `json:"experience" binding:"required,gte=0"`
	TechStack   string `json:"tech_stack" binding:"required,min=1"`
}

type UpdateInterviewReq struct {
	Position    string `json:"position" binding:"required,min=1,max=100"`
	Description string `json:"description" binding:"required,min=10"`
	Experience  *int   `json:"experience" binding:"required,gte=0"`
	TechStack   string `json:"tech_stack" binding:"required,min=1"`
}

type ListInterviewsQuery struct {
	Page     int `form:"page,default=1"`
	PageSize int `form:"page_size,default=20"`
}

type ImportPostingReq struct {
	URL string `json:"url" binding:"required,url"`
}

// ImportPostingRes prefills the interview form from a fetched job posting.
type ImportPostingRes struct {
	SourceURL   string `json:"source_url"`
	Position    string `json:"position"`
	Description string `json:"description"`
}
