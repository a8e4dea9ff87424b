package week

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/trezcool/darasa/core"
)

var (
	ErrNotFound        = errors.New("week not found")
	ErrWeekExists      = errors.New("a week with this week_id already exists")
	ErrCommentNotFound = errors.New("comment not found")
)

type (
	Repository interface {
		CreateWeek(ctx context.Context, w Week) (Week, error)
		GetWeekByNumber(ctx context.Context, weekNumber int) (Week, error)
		// FilterWeeks does a case-insensitive match of `search` on title and
		// description; empty search matches everything.
		FilterWeeks(ctx context.Context, search string, ordering core.DBOrdering) ([]Week, error)
		UpdateWeek(ctx context.Context, w Week) (Week, error)
		// DeleteWeek removes the week and all its comments in a single
		// transaction; no orphaned comment is ever readable.
		DeleteWeek(ctx context.Context, weekNumber int) error

		QueryComments(ctx context.Context, weekNumber int) ([]Comment, error)
		CreateComment(ctx context.Context, c Comment) (Comment, error)
		DeleteComment(ctx context.Context, id int) error
	}

	ServiceInterface interface {
		Query(ctx context.Context, filter *QueryFilter) ([]Week, error)
		Get(ctx context.Context, weekID string) (Week, error)
		Create(ctx context.Context, nw NewWeek) (Week, error)
		Update(ctx context.Context, weekID string, uw UpdateWeek) (Week, error)
		Delete(ctx context.Context, weekID string) error
		QueryComments(ctx context.Context, weekID string) ([]Comment, error)
		AddComment(ctx context.Context, nc NewComment) (Comment, error)
		DeleteComment(ctx context.Context, id int) error
	}

	Service struct {
		repo Repository
	}
)

var _ ServiceInterface = (*Service)(nil)

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

func (svc *Service) Query(ctx context.Context, filter *QueryFilter) ([]Week, error) {
	if filter == nil {
		filter = &QueryFilter{}
	}
	filter.Clean()
	return svc.repo.FilterWeeks(ctx, filter.Search, filter.Ordering())
}

func (svc *Service) Get(ctx context.Context, weekID string) (Week, error) {
	n, err := ParseWeekID(weekID)
	if err != nil {
		return Week{}, err
	}
	return svc.repo.GetWeekByNumber(ctx, n)
}

func (svc *Service) Create(ctx context.Context, nw NewWeek) (Week, error) {
	n, err := ParseWeekID(nw.WeekID)
	if err != nil {
		return Week{}, err
	}

	// best-effort pre-check; the unique constraint at insert time is the
	// sole arbiter under concurrent creates
	if _, err = svc.repo.GetWeekByNumber(ctx, n); err == nil {
		return Week{}, ErrWeekExists
	} else if errors.Cause(err) != ErrNotFound {
		return Week{}, errors.Wrap(err, "checking week uniqueness")
	}

	now := time.Now().UTC()
	return svc.repo.CreateWeek(ctx, Week{
		WeekNumber:  n,
		Title:       nw.Title,
		StartDate:   nw.StartDate,
		Description: nw.Description,
		Links:       nw.Links,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
}

func (svc *Service) Update(ctx context.Context, weekID string, uw UpdateWeek) (Week, error) {
	w, err := svc.Get(ctx, weekID)
	if err != nil {
		return Week{}, err
	}

	if uw.Title != nil {
		w.Title = *uw.Title
	}
	if uw.StartDate != nil {
		w.StartDate = *uw.StartDate
	}
	if uw.Description != nil {
		w.Description = *uw.Description
	}
	if uw.Links != nil {
		w.Links = *uw.Links
	}
	w.UpdatedAt = time.Now().UTC()
	return svc.repo.UpdateWeek(ctx, w)
}

func (svc *Service) Delete(ctx context.Context, weekID string) error {
	n, err := ParseWeekID(weekID)
	if err != nil {
		return err
	}
	return svc.repo.DeleteWeek(ctx, n)
}

func (svc *Service) QueryComments(ctx context.Context, weekID string) ([]Comment, error) {
	w, err := svc.Get(ctx, weekID)
	if err != nil {
		return nil, err
	}
	return svc.repo.QueryComments(ctx, w.WeekNumber)
}

func (svc *Service) AddComment(ctx context.Context, nc NewComment) (Comment, error) {
	w, err := svc.Get(ctx, nc.WeekID)
	if err != nil {
		return Comment{}, err
	}
	return svc.repo.CreateComment(ctx, Comment{
		WeekNumber: w.WeekNumber,
		Author:     nc.Author,
		Text:       nc.Text,
		CreatedAt:  time.Now().UTC(),
	})
}

func (svc *Service) DeleteComment(ctx context.Context, id int) error {
	return svc.repo.DeleteComment(ctx, id)
}
