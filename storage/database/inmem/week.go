package inmemdb

import (
	"context"
	"sort"
	"strings"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/week"
)

type weekRepository struct {
	db       *weekTable
	comments *weekCommentTable
}

var _ week.Repository = (*weekRepository)(nil)

func NewWeekRepository(db *DB) week.Repository {
	return &weekRepository{db: db.week, comments: db.weekComment}
}

func (repo *weekRepository) CreateWeek(_ context.Context, w week.Week) (week.Week, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.table[w.WeekNumber]; ok {
		return week.Week{}, week.ErrWeekExists
	}
	repo.db.pkCount++
	w.ID = repo.db.pkCount
	repo.db.table[w.WeekNumber] = &w
	return w, nil
}

func (repo *weekRepository) GetWeekByNumber(_ context.Context, weekNumber int) (week.Week, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	if w, ok := repo.db.table[weekNumber]; ok {
		return *w, nil
	}
	return week.Week{}, week.ErrNotFound
}

func (repo *weekRepository) FilterWeeks(_ context.Context, search string, ordering core.DBOrdering) ([]week.Week, error) {
	repo.db.RLock()
	defer repo.db.RUnlock()

	search = strings.ToLower(search)
	weeks := make([]week.Week, 0, len(repo.db.table))
	for _, w := range repo.db.table {
		if search != "" &&
			!strings.Contains(strings.ToLower(w.Title), search) &&
			!strings.Contains(strings.ToLower(w.Description), search) {
			continue
		}
		weeks = append(weeks, *w)
	}

	sort.Slice(weeks, func(i, j int) bool {
		a, b := weeks[i], weeks[j]
		var less, eq bool
		switch ordering.Field {
		case "title":
			less, eq = a.Title < b.Title, a.Title == b.Title
		case "week_number":
			less, eq = a.WeekNumber < b.WeekNumber, a.WeekNumber == b.WeekNumber
		case "created_at":
			less, eq = a.CreatedAt.Before(b.CreatedAt), a.CreatedAt.Equal(b.CreatedAt)
		default: // start_date; lexicographic works for YYYY-MM-DD
			less, eq = a.StartDate < b.StartDate, a.StartDate == b.StartDate
		}
		if eq {
			return a.WeekNumber < b.WeekNumber
		}
		if ordering.Ascending {
			return less
		}
		return !less
	})
	return weeks, nil
}

func (repo *weekRepository) UpdateWeek(_ context.Context, w week.Week) (week.Week, error) {
	repo.db.Lock()
	defer repo.db.Unlock()

	if _, ok := repo.db.table[w.WeekNumber]; !ok {
		return week.Week{}, week.ErrNotFound
	}
	repo.db.table[w.WeekNumber] = &w
	return w, nil
}

func (repo *weekRepository) DeleteWeek(_ context.Context, weekNumber int) error {
	repo.db.Lock()
	defer repo.db.Unlock()
	repo.comments.Lock()
	defer repo.comments.Unlock()

	if _, ok := repo.db.table[weekNumber]; !ok {
		return week.ErrNotFound
	}
	for cid, c := range repo.comments.table {
		if c.WeekNumber == weekNumber {
			delete(repo.comments.table, cid)
		}
	}
	delete(repo.db.table, weekNumber)
	return nil
}

func (repo *weekRepository) QueryComments(_ context.Context, weekNumber int) ([]week.Comment, error) {
	repo.comments.RLock()
	defer repo.comments.RUnlock()

	comments := make([]week.Comment, 0)
	for _, c := range repo.comments.table {
		if c.WeekNumber == weekNumber {
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

func (repo *weekRepository) CreateComment(_ context.Context, c week.Comment) (week.Comment, error) {
	repo.comments.Lock()
	defer repo.comments.Unlock()

	repo.comments.pkCount++
	c.ID = repo.comments.pkCount
	repo.comments.table[c.ID] = &c
	return c, nil
}

func (repo *weekRepository) DeleteComment(_ context.Context, id int) error {
	repo.comments.Lock()
	defer repo.comments.Unlock()

	if _, ok := repo.comments.table[id]; !ok {
		return week.ErrCommentNotFound
	}
	delete(repo.comments.table, id)
	return nil
}
