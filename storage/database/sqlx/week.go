package sqlxrepos

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pkg/errors"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/week"
)

const weekColumns = `id, week_number, title, to_char(start_date, 'YYYY-MM-DD') AS start_date, description, links, created_at, updated_at`

type weekRow struct {
	ID          int            `db:"id"`
	WeekNumber  int            `db:"week_number"`
	Title       string         `db:"title"`
	StartDate   string         `db:"start_date"`
	Description string         `db:"description"`
	Links       pq.StringArray `db:"links"`
	CreatedAt   time.Time      `db:"created_at"`
	UpdatedAt   time.Time      `db:"updated_at"`
}

func (row weekRow) toDomain() week.Week {
	return week.Week{
		ID:          row.ID,
		WeekNumber:  row.WeekNumber,
		Title:       row.Title,
		StartDate:   row.StartDate,
		Description: row.Description,
		Links:       []string(row.Links),
		CreatedAt:   row.CreatedAt.UTC(),
		UpdatedAt:   row.UpdatedAt.UTC(),
	}
}

type weekRepository struct {
	db *sqlx.DB
}

var _ week.Repository = (*weekRepository)(nil)

func NewWeekRepository(db *sqlx.DB) *weekRepository {
	return &weekRepository{db: db}
}

func (repo *weekRepository) CreateWeek(ctx context.Context, w week.Week) (week.Week, error) {
	const q = `
INSERT INTO weeks (week_number, title, start_date, description, links, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6, $7)
RETURNING id`
	err := repo.db.QueryRowContext(
		ctx, q, w.WeekNumber, w.Title, w.StartDate, w.Description, pq.Array(w.Links), w.CreatedAt, w.UpdatedAt,
	).Scan(&w.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return week.Week{}, week.ErrWeekExists
		}
		return week.Week{}, errors.Wrap(err, "creating week")
	}
	return w, nil
}

func (repo *weekRepository) GetWeekByNumber(ctx context.Context, weekNumber int) (week.Week, error) {
	var row weekRow
	if err := repo.db.GetContext(ctx, &row, `SELECT `+weekColumns+` FROM weeks WHERE week_number = $1`, weekNumber); err != nil {
		return week.Week{}, trapNoRowsErr(err, week.ErrNotFound, "getting week by number")
	}
	return row.toDomain(), nil
}

func (repo *weekRepository) FilterWeeks(ctx context.Context, search string, ordering core.DBOrdering) ([]week.Week, error) {
	q := `SELECT ` + weekColumns + ` FROM weeks`
	args := make([]interface{}, 0, 1)
	if search != "" {
		q += ` WHERE (title ILIKE $1 OR description ILIKE $1)`
		args = append(args, "%"+search+"%")
	}
	q += ` ORDER BY ` + ordering.String() + `, week_number`

	var rows []weekRow
	if err := repo.db.SelectContext(ctx, &rows, q, args...); err != nil {
		return nil, errors.Wrap(err, "filtering weeks")
	}

	weeks := make([]week.Week, len(rows))
	for i, row := range rows {
		weeks[i] = row.toDomain()
	}
	return weeks, nil
}

func (repo *weekRepository) UpdateWeek(ctx context.Context, w week.Week) (week.Week, error) {
	const q = `
UPDATE weeks
SET title = $1, start_date = $2, description = $3, links = $4, updated_at = $5
WHERE week_number = $6`
	res, err := repo.db.ExecContext(ctx, q, w.Title, w.StartDate, w.Description, pq.Array(w.Links), w.UpdatedAt, w.WeekNumber)
	if err != nil {
		return week.Week{}, errors.Wrap(err, "updating week")
	}
	if n, err := res.RowsAffected(); err != nil {
		return week.Week{}, errors.Wrap(err, "updating week")
	} else if n == 0 {
		return week.Week{}, week.ErrNotFound
	}
	return w, nil
}

func (repo *weekRepository) DeleteWeek(ctx context.Context, weekNumber int) error {
	tx, err := repo.db.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "starting transaction")
	}
	defer func() { _ = tx.Rollback() }()

	if _, err = tx.ExecContext(ctx, `DELETE FROM week_comments WHERE week_number = $1`, weekNumber); err != nil {
		return errors.Wrap(err, "deleting week comments")
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM weeks WHERE week_number = $1`, weekNumber)
	if err != nil {
		return errors.Wrap(err, "deleting week")
	}
	if n, err := res.RowsAffected(); err != nil {
		return errors.Wrap(err, "deleting week")
	} else if n == 0 {
		return week.ErrNotFound
	}
	return errors.Wrap(tx.Commit(), "committing transaction")
}

func (repo *weekRepository) QueryComments(ctx context.Context, weekNumber int) ([]week.Comment, error) {
	const q = `
SELECT id, week_number, author, text, created_at
FROM week_comments
WHERE week_number = $1
ORDER BY created_at, id`
	comments := make([]week.Comment, 0)
	if err := repo.db.SelectContext(ctx, &comments, q, weekNumber); err != nil {
		return nil, errors.Wrap(err, "querying week comments")
	}
	return comments, nil
}

func (repo *weekRepository) CreateComment(ctx context.Context, c week.Comment) (week.Comment, error) {
	const q = `
INSERT INTO week_comments (week_number, author, text, created_at)
VALUES ($1, $2, $3, $4)
RETURNING id`
	err := repo.db.QueryRowContext(ctx, q, c.WeekNumber, c.Author, c.Text, c.CreatedAt).Scan(&c.ID)
	if err != nil {
		return week.Comment{}, errors.Wrap(err, "creating week comment")
	}
	return c, nil
}

func (repo *weekRepository) DeleteComment(ctx context.Context, id int) error {
	res, err := repo.db.ExecContext(ctx, `DELETE FROM week_comments WHERE id = $1`, id)
	if err != nil {
		return errors.Wrap(err, "deleting week comment")
	}
	if n, err := res.RowsAffected(); err != nil {
		return errors.Wrap(err, "deleting week comment")
	} else if n == 0 {
		return week.ErrCommentNotFound
	}
	return nil
}
