package week

import (
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"github.com/trezcool/darasa/core"
)

// ErrInvalidWeekID flags a malformed external identifier; it is rejected
// before any storage access.
var ErrInvalidWeekID = errors.New("invalid week_id, expected \"week_<N>\"")

const weekIDPrefix = "week_"

// FormatWeekID renders the external identifier for a week number, e.g.
// FormatWeekID(3) == "week_3". ParseWeekID(FormatWeekID(n)) round-trips
// exactly for every positive n.
func FormatWeekID(weekNumber int) string {
	return weekIDPrefix + strconv.Itoa(weekNumber)
}

// ParseWeekID extracts the positive week number from a "week_<N>" identifier.
func ParseWeekID(weekID string) (int, error) {
	if !strings.HasPrefix(weekID, weekIDPrefix) {
		return 0, ErrInvalidWeekID
	}
	n, err := strconv.Atoi(strings.TrimPrefix(weekID, weekIDPrefix))
	if err != nil || n <= 0 || FormatWeekID(n) != weekID {
		return 0, ErrInvalidWeekID
	}
	return n, nil
}

type Week struct {
	ID          int       `json:"-" db:"id"`
	WeekNumber  int       `json:"week_number" db:"week_number"`
	Title       string    `json:"title" db:"title"`
	StartDate   string    `json:"start_date" db:"start_date"` // YYYY-MM-DD
	Description string    `json:"description" db:"description"`
	Links       []string  `json:"links" db:"links"`
	CreatedAt   time.Time `json:"created_at" db:"created_at"` // UTC
	UpdatedAt   time.Time `json:"updated_at" db:"updated_at"` // UTC
}

// WeekID is the external identifier, always derivable from the week number.
func (w *Week) WeekID() string { return FormatWeekID(w.WeekNumber) }

type Comment struct {
	ID         int       `json:"id" db:"id"`
	WeekNumber int       `json:"-" db:"week_number"`
	Author     string    `json:"author" db:"author"`
	Text       string    `json:"text" db:"text"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"` // UTC
}

// NewWeek contains information needed to create a new Week.
type NewWeek struct {
	WeekID      string   `json:"week_id" validate:"required"`
	Title       string   `json:"title" validate:"required"`
	StartDate   string   `json:"start_date" validate:"required,dateonly"`
	Description string   `json:"description" validate:"required"`
	Links       []string `json:"links"`
}

func (nw *NewWeek) Validate(validate *validator.Validate) error {
	nw.WeekID = core.CleanString(nw.WeekID, true /* lower */)
	nw.Title = core.SanitizeString(nw.Title)
	nw.StartDate = core.CleanString(nw.StartDate)
	nw.Description = core.SanitizeString(nw.Description)
	nw.Links = core.SanitizeStrings(nw.Links)

	if err := validate.Struct(nw); err != nil {
		return err
	}
	_, err := ParseWeekID(nw.WeekID)
	return err
}

// UpdateWeek defines a partial update: only supplied fields are modified.
// The week number itself is immutable.
type UpdateWeek struct {
	Title       *string   `json:"title"`
	StartDate   *string   `json:"start_date" validate:"omitempty,dateonly"`
	Description *string   `json:"description"`
	Links       *[]string `json:"links"`
}

func (uw *UpdateWeek) Validate(validate *validator.Validate) error {
	if uw.Title != nil {
		clean := core.SanitizeString(*uw.Title)
		uw.Title = &clean
	}
	if uw.StartDate != nil {
		clean := core.CleanString(*uw.StartDate)
		uw.StartDate = &clean
	}
	if uw.Description != nil {
		clean := core.SanitizeString(*uw.Description)
		uw.Description = &clean
	}
	if uw.Links != nil {
		clean := core.SanitizeStrings(*uw.Links)
		uw.Links = &clean
	}
	if err := validate.Struct(uw); err != nil {
		return err
	}
	if uw.IsEmpty() {
		return core.NewValidationError(errors.New("no fields to update"))
	}
	return nil
}

func (uw *UpdateWeek) IsEmpty() bool {
	return uw.Title == nil && uw.StartDate == nil && uw.Description == nil && uw.Links == nil
}

// NewComment contains information needed to post a Comment on a Week.
type NewComment struct {
	WeekID string `json:"week_id" validate:"required"`
	Author string `json:"author" validate:"required"`
	Text   string `json:"text" validate:"required"`
}

func (nc *NewComment) Validate(validate *validator.Validate) error {
	nc.WeekID = core.CleanString(nc.WeekID, true /* lower */)
	nc.Author = core.SanitizeString(nc.Author)
	nc.Text = core.SanitizeString(nc.Text)

	if err := validate.Struct(nc); err != nil {
		return err
	}
	_, err := ParseWeekID(nc.WeekID)
	return err
}

// Sort field allow-list: unknown fields and orders silently fall back to the
// defaults (start date, ascending) instead of erroring.
var sortColumns = map[string]string{
	"title":       "title",
	"date":        "start_date",
	"start_date":  "start_date",
	"week_number": "week_number",
	"createdAt":   "created_at",
	"created_at":  "created_at",
}

const defaultSortColumn = "start_date"

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

func (qf *QueryFilter) Ordering() core.DBOrdering {
	col, ok := sortColumns[qf.Sort]
	if !ok {
		col = defaultSortColumn
	}
	return core.DBOrdering{Field: col, Ascending: qf.Order != "desc"}
}
