package inmemdb

import (
	"context"
	"sort"
	"strings"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/assignment"
)

type assignmentRepository struct {
	db       *assignmentTable
	comments *assignmentCommentTable
}

var _ assignment.Repository = (*assignmentRepository)(nil)

func NewAssignmentRepository(db *DB) assignment.Repository {
	return &assignmentRepository{db: db.assignment, comments: db.assignmentComment}
}

func (repo *assignmentRepository) CreateAssignment(_ context.Context, a assignment.Assignment) (assignment.Assignment, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	repo.db.pkCount++
	a.ID = repo.db.pkCount
	repo.db.table[a.ID] = &a
	return a, nil
}

func (repo *assignmentRepository) GetAssignmentByID(_ context.Context, id int) (assignment.Assignment, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if a, ok := repo.db.table[id]; ok {
		return *a, nil
	}
	return assignment.Assignment{}, assignment.ErrNotFound
}

func (repo *assignmentRepository) FilterAssignments(_ context.Context, search string, ordering core.DBOrdering) ([]assignment.Assignment, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	search = strings.ToLower(search)
	assignments := make([]assignment.Assignment, 0, len(repo.db.table))
	for _, a := range repo.db.table {
		if search != "" &&
			!strings.Contains(strings.ToLower(a.Title), search) &&
			!strings.Contains(strings.ToLower(a.Description), search) {
			continue
		}
		assignments = append(assignments, *a)
	}

	sort.Slice(assignments, func(i, j int) bool {
		a, b := assignments[i], assignments[j]
		var less, eq bool
		switch ordering.Field {
		case "title":
			less, eq = a.Title < b.Title, a.Title == b.Title
		case "created_at":
			less, eq = a.CreatedAt.Before(b.CreatedAt), a.CreatedAt.Equal(b.CreatedAt)
		default: // due_date; lexicographic works for YYYY-MM-DD
			less, eq = a.DueDate < b.DueDate, a.DueDate == b.DueDate
		}
		if eq {
			return a.ID < b.ID
		}
		if ordering.Ascending {
			return less
		}
		return !less
	})
	return assignments, nil
}

func (repo *assignmentRepository) UpdateAssignment(_ context.Context, a assignment.Assignment) (assignment.Assignment, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.table[a.ID]; !ok {
		return assignment.Assignment{}, assignment.ErrNotFound
	}
	repo.db.table[a.ID] = &a
	return a, nil
}

func (repo *assignmentRepository) DeleteAssignment(_ context.Context, id int) error {
	repo.db.Lock()
	defer repo.db.Unlock()
	repo.comments.Lock()
	defer repo.comments.Unlock()

	if _, ok := repo.db.table[id]; !ok {
		return assignment.ErrNotFound
	}
	for cid, c := range repo.comments.table {
		if c.AssignmentID == id {
			delete(repo.comments.table, cid)
		}
	}
	delete(repo.db.table, id)
	return nil
}

func (repo *assignmentRepository) QueryComments(_ context.Context, assignmentID int) ([]assignment.Comment, error) {
	repo.comments.RLock()
	defer repo.comments.RUnlock()

	comments := make([]assignment.Comment, 0)
	for _, c := range repo.comments.table {
		if c.AssignmentID == assignmentID {
			comments = append(comments, *c)
		}
	}
	sort.Slice(comments, func(i, j int) bool {
		if comments[i].CreatedAt.Equal(comments[j].CreatedAt) {
			return comments[i].ID < comments[j].ID
		}
		return comments[i].CreatedAt.Before(comments[j].CreatedAt)
	})
	return comments, nil
}

func (repo *assignmentRepository) CreateComment(_ context.Context, c assignment.Comment) (assignment.Comment, error) {
	repo.comments.Lock()
	defer repo.comments.Unlock()

	repo.comments.pkCount++
	c.ID = repo.comments.pkCount
	repo.comments.table[c.ID] = &c
	return c, nil
}

func (repo *assignmentRepository) DeleteComment(_ context.Context, id int) error {
	repo.comments.Lock()
	defer repo.comments.Unlock()

	if _, ok := repo.comments.table[id]; !ok {
		return assignment.ErrCommentNotFound
	}
	delete(repo.comments.table, id)
	return nil
}
