package sqlxrepos

import (
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/pkg/errors"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/assignment"
)

// DATE columns are rendered to YYYY-MM-DD server-side so the domain sees the
// exact string it stored, independent of driver time handling.
const assignmentColumns = `id, title, description, to_char(due_date, 'YYYY-MM-DD') AS due_date, files, created_at, updated_at`

// assignmentRow mirrors assignment.Assignment with driver types for TEXT[].
type assignmentRow struct {
	ID          int            `db:"id"`
	Title       string         `db:"title"`
	Description string         `db:"description"`
	DueDate     string         `db:"due_date"`
	Files       pq.StringArray `db:"files"`
	CreatedAt   time.Time      `db:"created_at"`
	UpdatedAt   time.Time      `db:"updated_at"`
}

func (row assignmentRow) toDomain() assignment.Assignment {
	return assignment.Assignment{
		ID:          row.ID,
		Title:       row.Title,
		Description: row.Description,
		DueDate:     row.DueDate,
		Files:       []string(row.Files),
		CreatedAt:   row.CreatedAt.UTC(),
		UpdatedAt:   row.UpdatedAt.UTC(),
	}
}

type assignmentRepository struct {
	db *sqlx.DB
}

var _ assignment.Repository = (*assignmentRepository)(nil)

func NewAssignmentRepository(db *sqlx.DB) *assignmentRepository {
	return &assignmentRepository{db: db}
}

func (repo *assignmentRepository) CreateAssignment(ctx context.Context, a assignment.Assignment) (assignment.Assignment, error) {
	const q = `
INSERT INTO assignments (title, description, due_date, files, created_at, updated_at)
VALUES ($1, $2, $3, $4, $5, $6)
RETURNING id`
	err := repo.db.QueryRowContext(
		ctx, q, a.Title, a.Description, a.DueDate, pq.Array(a.Files), a.CreatedAt, a.UpdatedAt,
	).Scan(&a.ID)
	if err != nil {
		return assignment.Assignment{}, errors.Wrap(err, "creating assignment")
	}
	return a, nil
}

func (repo *assignmentRepository) GetAssignmentByID(ctx context.Context, id int) (assignment.Assignment, error) {
	var row assignmentRow
	if err := repo.db.GetContext(ctx, &row, `SELECT `+assignmentColumns+` FROM assignments WHERE id = $1`, id); err != nil {
		return assignment.Assignment{}, trapNoRowsErr(err, assignment.ErrNotFound, "getting assignment by id")
	}
	return row.toDomain(), nil
}

func (repo *assignmentRepository) FilterAssignments(ctx context.Context, search string, ordering core.DBOrdering) ([]assignment.Assignment, error) {
	q := `SELECT ` + assignmentColumns + ` FROM assignments`
	args := make([]interface{}, 0, 1)
	if search != "" {
		q += ` WHERE (title ILIKE $1 OR description ILIKE $1)`
		args = append(args, "%"+search+"%")
	}
	// ordering.Field comes from an allow-list, never from raw input;
	// id breaks ties so pagination stays stable
	q += ` ORDER BY ` + ordering.String() + `, id`

	var rows []assignmentRow
	if err := repo.db.SelectContext(ctx, &rows, q, args...); err != nil {
		return nil, errors.Wrap(err, "filtering assignments")
	}

	assignments := make([]assignment.Assignment, len(rows))
	for i, row := range rows {
		assignments[i] = row.toDomain()
	}
	return assignments, nil
}

func (repo *assignmentRepository) UpdateAssignment(ctx context.Context, a assignment.Assignment) (assignment.Assignment, error) {
	const q = `
UPDATE assignments
SET title = $1, description = $2, due_date = $3, files = $4, updated_at = $5
WHERE id = $6`
	res, err := repo.db.ExecContext(ctx, q, a.Title, a.Description, a.DueDate, pq.Array(a.Files), a.UpdatedAt, a.ID)
	if err != nil {
		return assignment.Assignment{}, errors.Wrap(err, "updating assignment")
	}
	if n, err := res.RowsAffected(); err != nil {
		return assignment.Assignment{}, errors.Wrap(err, "updating assignment")
	} else if n == 0 {
		return assignment.Assignment{}, assignment.ErrNotFound
	}
	return a, nil
}

func (repo *assignmentRepository) DeleteAssignment(ctx context.Context, id int) error {
	tx, err := repo.db.BeginTxx(ctx, nil)
	if err != nil {
		return errors.Wrap(err, "starting transaction")
	}
	defer func() { _ = tx.Rollback() }()

	if _, err = tx.ExecContext(ctx, `DELETE FROM assignment_comments WHERE assignment_id = $1`, id); err != nil {
		return errors.Wrap(err, "deleting assignment comments")
	}
	res, err := tx.ExecContext(ctx, `DELETE FROM assignments WHERE id = $1`, id)
	if err != nil {
		return errors.Wrap(err, "deleting assignment")
	}
	if n, err := res.RowsAffected(); err != nil {
		return errors.Wrap(err, "deleting assignment")
	} else if n == 0 {
		return assignment.ErrNotFound
	}
	return errors.Wrap(tx.Commit(), "committing transaction")
}

func (repo *assignmentRepository) QueryComments(ctx context.Context, assignmentID int) ([]assignment.Comment, error) {
	const q = `
SELECT id, assignment_id, author, text, created_at
FROM assignment_comments
WHERE assignment_id = $1
ORDER BY created_at, id`
	comments := make([]assignment.Comment, 0)
	if err := repo.db.SelectContext(ctx, &comments, q, assignmentID); err != nil {
		return nil, errors.Wrap(err, "querying assignment comments")
	}
	return comments, nil
}

func (repo *assignmentRepository) CreateComment(ctx context.Context, c assignment.Comment) (assignment.Comment, error) {
	const q = `
INSERT INTO assignment_comments (assignment_id, author, text, created_at)
VALUES ($1, $2, $3, $4)
RETURNING id`
	err := repo.db.QueryRowContext(ctx, q, c.AssignmentID, c.Author, c.Text, c.CreatedAt).Scan(&c.ID)
	if err != nil {
		return assignment.Comment{}, errors.Wrap(err, "creating assignment comment")
	}
	return c, nil
}

func (repo *assignmentRepository) DeleteComment(ctx context.Context, id int) error {
	res, err := repo.db.ExecContext(ctx, `DELETE FROM assignment_comments WHERE id = $1`, id)
	if err != nil {
		return errors.Wrap(err, "deleting assignment comment")
	}
	if n, err := res.RowsAffected(); err != nil {
		return errors.Wrap(err, "deleting assignment comment")
	} else if n == 0 {
		return assignment.ErrCommentNotFound
	}
	return nil
}
