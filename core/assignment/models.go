package assignment

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/trezcool/darasa/core"
)

type Assignment struct {
	ID          int       `json:"id" db:"id"`
	Title       string    `json:"title" db:"title"`
	Description string    `json:"description" db:"description"`
	DueDate     string    `json:"due_date" db:"due_date"` // YYYY-MM-DD
	Files       []string  `json:"files" db:"files"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"` // UTC
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"` // UTC
}

type Comment struct {
	ID           int       `json:"id" db:"id"`
	AssignmentID int       `json:"assignment_id" db:"assignment_id"`
	Author       string    `json:"author" db:"author"`
	Text         string    `json:"text" db:"text"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"` // UTC
}

// NewAssignment contains information needed to create a new Assignment.
type NewAssignment struct {
	Title       string   `json:"title" validate:"required"`
	Description string   `json:"description" validate:"required"`
	DueDate     string   `json:"due_date" validate:"required,dateonly"`
	Files       []string `json:"files"`
}

func (na *NewAssignment) Validate(validate *validator.Validate) error {
	na.Title = core.SanitizeString(na.Title)
	na.Description = core.SanitizeString(na.Description)
	na.DueDate = core.CleanString(na.DueDate)
	na.Files = core.SanitizeStrings(na.Files)
	return validate.Struct(na)
}

// UpdateAssignment defines a partial update: only supplied fields are
// modified.
type UpdateAssignment struct {
	Title       *string   `json:"title"`
	Description *string   `json:"description" `
	DueDate     *string   `json:"due_date" validate:"omitempty,dateonly"`
	Files       *[]string `json:"files"`
}

func (ua *UpdateAssignment) Validate(validate *validator.Validate) error {
	if ua.Title != nil {
		clean := core.SanitizeString(*ua.Title)
		ua.Title = &clean
	}
	if ua.Description != nil {
		clean := core.SanitizeString(*ua.Description)
		ua.Description = &clean
	}
	if ua.DueDate != nil {
		clean := core.CleanString(*ua.DueDate)
		ua.DueDate = &clean
	}
	if ua.Files != nil {
		clean := core.SanitizeStrings(*ua.Files)
		ua.Files = &clean
	}
	if err := validate.Struct(ua); err != nil {
		return err
	}
	if ua.IsEmpty() {
		return core.NewValidationError(errors.New("no fields to update"))
	}
	return nil
}

func (ua *UpdateAssignment) IsEmpty() bool {
	return ua.Title == nil && ua.Description == nil && ua.DueDate == nil && ua.Files == nil
}

// NewComment contains information needed to post a Comment on an Assignment.
type NewComment struct {
	AssignmentID int    `json:"assignment_id" validate:"required"`
	Author       string `json:"author" validate:"required"`
	Text         string `json:"text" validate:"required"`
}

func (nc *NewComment) Validate(validate *validator.Validate) error {
	nc.Author = core.SanitizeString(nc.Author)
	nc.Text = core.SanitizeString(nc.Text)
	return validate.Struct(nc)
}

// Sort field allow-list: unknown fields and orders silently fall back to the
// defaults (due date, ascending) instead of erroring.
var sortColumns = map[string]string{
	"title":      "title",
	"date":       "due_date",
	"due_date":   "due_date",
	"createdAt":  "created_at",
	"created_at": "created_at",
}

const defaultSortColumn = "due_date"

type QueryFilter struct {
	Search string `query:"search"`
	Sort   string `query:"sort"`
	Order  string `query:"order"`
}

func (qf *QueryFilter) Clean() {
	qf.Search = core.CleanString(qf.Search)
	qf.Sort = core.CleanString(qf.Sort)
	qf.Order = core.CleanString(qf.Order, true /* lower */)
}

// Ordering resolves the requested sort to a known column, never interpolating
// unvalidated input.
func (qf *QueryFilter) Ordering() core.DBOrdering {
	col, ok := sortColumns[qf.Sort]
	if !ok {
		col = defaultSortColumn
	}
	return core.DBOrdering{Field: col, Ascending: !strings.EqualFold(qf.Order, "desc")}
}
