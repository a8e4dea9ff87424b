package assignment

import (
	"context"
	"time"

	"github.com/pkg/errors"

	"github.com/trezcool/darasa/core"
)

var (
	ErrNotFound        = errors.New("assignment not found")
	ErrCommentNotFound = errors.New("comment not found")
)

type (
	Repository interface {
		CreateAssignment(ctx context.Context, a Assignment) (Assignment, error)
		GetAssignmentByID(ctx context.Context, id int) (Assignment, error)
		// FilterAssignments does a case-insensitive match of `search` on
		// title and description; empty search matches everything.
		FilterAssignments(ctx context.Context, search string, ordering core.DBOrdering) ([]Assignment, error)
		UpdateAssignment(ctx context.Context, a Assignment) (Assignment, error)
		// DeleteAssignment removes the assignment and all its comments in a
		// single transaction; no orphaned comment is ever readable.
		DeleteAssignment(ctx context.Context, id int) error

		QueryComments(ctx context.Context, assignmentID int) ([]Comment, error)
		CreateComment(ctx context.Context, c Comment) (Comment, error)
		DeleteComment(ctx context.Context, id int) error
	}

	ServiceInterface interface {
		Query(ctx context.Context, filter *QueryFilter) ([]Assignment, error)
		Get(ctx context.Context, id int) (Assignment, error)
		Create(ctx context.Context, na NewAssignment) (Assignment, error)
		Update(ctx context.Context, id int, ua UpdateAssignment) (Assignment, error)
		Delete(ctx context.Context, id int) error
		QueryComments(ctx context.Context, assignmentID int) ([]Comment, error)
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

func (svc *Service) Query(ctx context.Context, filter *QueryFilter) ([]Assignment, error) {
	if filter == nil {
		filter = &QueryFilter{}
	}
	filter.Clean()
	return svc.repo.FilterAssignments(ctx, filter.Search, filter.Ordering())
}

func (svc *Service) Get(ctx context.Context, id int) (Assignment, error) {
	return svc.repo.GetAssignmentByID(ctx, id)
}

func (svc *Service) Create(ctx context.Context, na NewAssignment) (Assignment, error) {
	now := time.Now().UTC()
	return svc.repo.CreateAssignment(ctx, Assignment{
		Title:       na.Title,
		Description: na.Description,
		DueDate:     na.DueDate,
		Files:       na.Files,
		CreatedAt:   now,
		UpdatedAt:   now,
	})
}

func (svc *Service) Update(ctx context.Context, id int, ua UpdateAssignment) (Assignment, error) {
	a, err := svc.repo.GetAssignmentByID(ctx, id)
	if err != nil {
		return Assignment{}, err
	}

	if ua.Title != nil {
		a.Title = *ua.Title
	}
	if ua.Description != nil {
		a.Description = *ua.Description
	}
	if ua.DueDate != nil {
		a.DueDate = *ua.DueDate
	}
	if ua.Files != nil {
		a.Files = *ua.Files
	}
	a.UpdatedAt = time.Now().UTC()
	return svc.repo.UpdateAssignment(ctx, a)
}

func (svc *Service) Delete(ctx context.Context, id int) error {
	return svc.repo.DeleteAssignment(ctx, id)
}

func (svc *Service) QueryComments(ctx context.Context, assignmentID int) ([]Comment, error) {
	// the parent must resolve; an existing assignment with no comments
	// yields an empty sequence, not an error
	if _, err := svc.repo.GetAssignmentByID(ctx, assignmentID); err != nil {
		return nil, err
	}
	return svc.repo.QueryComments(ctx, assignmentID)
}

func (svc *Service) AddComment(ctx context.Context, nc NewComment) (Comment, error) {
	if _, err := svc.repo.GetAssignmentByID(ctx, nc.AssignmentID); err != nil {
		return Comment{}, err
	}
	return svc.repo.CreateComment(ctx, Comment{
		AssignmentID: nc.AssignmentID,
		Author:       nc.Author,
		Text:         nc.Text,
		CreatedAt:    time.Now().UTC(),
	})
}

func (svc *Service) DeleteComment(ctx context.Context, id int) error {
	return svc.repo.DeleteComment(ctx, id)
}
