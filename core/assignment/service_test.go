package assignment_test

import (
	"context"
	"testing"

	"github.com/pkg/errors"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/assignment"
	"github.com/trezcool/darasa/storage/database/inmem"
)

func newTestService(t *testing.T) *assignment.Service {
	t.Helper()
	db, err := inmemdb.Open()
	if err != nil {
		t.Fatalf("inmemdb.Open() failed: %v", err)
	}
	return assignment.NewService(inmemdb.NewAssignmentRepository(db))
}

func createAssignment(t *testing.T, svc *assignment.Service, title, dueDate string) assignment.Assignment {
	t.Helper()
	a, err := svc.Create(context.Background(), assignment.NewAssignment{
		Title:       title,
		Description: "desc for " + title,
		DueDate:     dueDate,
	})
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	return a
}

func strPtr(s string) *string { return &s }

func Test_NewAssignment_Validate(t *testing.T) {
	validate, _ := core.NewValidator()

	tests := []struct {
		name    string
		data    assignment.NewAssignment
		wantErr bool
	}{
		{name: "ok", data: assignment.NewAssignment{Title: "HW1", Description: "desc", DueDate: "2025-01-10"}},
		{name: "missing title", data: assignment.NewAssignment{Description: "desc", DueDate: "2025-01-10"}, wantErr: true},
		{name: "missing description", data: assignment.NewAssignment{Title: "HW1", DueDate: "2025-01-10"}, wantErr: true},
		{name: "empty date", data: assignment.NewAssignment{Title: "HW1", Description: "desc"}, wantErr: true},
		{name: "impossible date", data: assignment.NewAssignment{Title: "HW1", Description: "desc", DueDate: "2024-02-30"}, wantErr: true},
		{name: "slashed date", data: assignment.NewAssignment{Title: "HW1", Description: "desc", DueDate: "2024/02/15"}, wantErr: true},
		{name: "whitespace-only title", data: assignment.NewAssignment{Title: "   ", Description: "desc", DueDate: "2025-01-10"}, wantErr: true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.data.Validate(validate)
			if (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v; wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func Test_UpdateAssignment_Validate(t *testing.T) {
	validate, _ := core.NewValidator()

	ua := assignment.UpdateAssignment{}
	if err := ua.Validate(validate); err == nil {
		t.Error("zero-field update accepted")
	}
	ua = assignment.UpdateAssignment{DueDate: strPtr("2024-13-40")}
	if err := ua.Validate(validate); err == nil {
		t.Error("malformed date accepted on update")
	}
	ua = assignment.UpdateAssignment{Title: strPtr(" <b>HW2</b> ")}
	if err := ua.Validate(validate); err != nil {
		t.Fatalf("Validate() failed: %v", err)
	}
	if *ua.Title != "HW2" {
		t.Errorf("title not sanitized: %q", *ua.Title)
	}
}

func Test_Service_Create(t *testing.T) {
	svc := newTestService(t)

	a, err := svc.Create(context.Background(), assignment.NewAssignment{
		Title:       "HW1",
		Description: "desc",
		DueDate:     "2025-01-10",
	})
	if err != nil {
		t.Fatalf("Create() failed: %v", err)
	}
	if a.ID == 0 {
		t.Error("expected a generated ID")
	}
	if a.DueDate != "2025-01-10" {
		t.Errorf("due date stored as %q; want it unchanged", a.DueDate)
	}
	if a.CreatedAt.IsZero() || a.UpdatedAt.IsZero() {
		t.Error("timestamps not set")
	}
}

func Test_Service_Query_sorting(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	hw2 := createAssignment(t, svc, "b-HW2", "2025-02-01")
	hw1 := createAssignment(t, svc, "c-HW1", "2025-01-10")
	hw3 := createAssignment(t, svc, "a-HW3", "2025-03-05")

	assertOrder := func(name string, got []assignment.Assignment, want ...int) {
		if len(got) != len(want) {
			t.Fatalf("%s: got %d assignments; want %d", name, len(got), len(want))
		}
		for i, id := range want {
			if got[i].ID != id {
				t.Errorf("%s: position %d = id %d; want %d", name, i, got[i].ID, id)
			}
		}
	}

	// default: due date ascending
	all, err := svc.Query(ctx, nil)
	if err != nil {
		t.Fatalf("Query() failed: %v", err)
	}
	assertOrder("default", all, hw1.ID, hw2.ID, hw3.ID)

	all, _ = svc.Query(ctx, &assignment.QueryFilter{Sort: "title"})
	assertOrder("title asc", all, hw3.ID, hw2.ID, hw1.ID)

	all, _ = svc.Query(ctx, &assignment.QueryFilter{Sort: "date", Order: "desc"})
	assertOrder("date desc", all, hw3.ID, hw2.ID, hw1.ID)

	// unknown sort/order silently fall back to the defaults
	all, _ = svc.Query(ctx, &assignment.QueryFilter{Sort: "evil; DROP TABLE", Order: "sideways"})
	assertOrder("fallback", all, hw1.ID, hw2.ID, hw3.ID)

	// search is a case-insensitive contains on title/description
	all, _ = svc.Query(ctx, &assignment.QueryFilter{Search: "hw2"})
	assertOrder("search", all, hw2.ID)
}

func Test_Service_Update_partial(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	a := createAssignment(t, svc, "HW1", "2025-01-10")

	updated, err := svc.Update(ctx, a.ID, assignment.UpdateAssignment{Title: strPtr("HW1 v2")})
	if err != nil {
		t.Fatalf("Update() failed: %v", err)
	}
	if updated.Title != "HW1 v2" {
		t.Errorf("title = %q; want %q", updated.Title, "HW1 v2")
	}
	// untouched fields survive
	if updated.Description != a.Description || updated.DueDate != a.DueDate {
		t.Errorf("partial update clobbered other fields: %+v", updated)
	}
	if updated.UpdatedAt.Before(a.UpdatedAt) {
		t.Error("UpdatedAt not refreshed")
	}

	if _, err = svc.Update(ctx, 999, assignment.UpdateAssignment{Title: strPtr("X")}); errors.Cause(err) != assignment.ErrNotFound {
		t.Errorf("missing id error = %v; want ErrNotFound", err)
	}
}

func Test_Service_Delete_cascades(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	a := createAssignment(t, svc, "HW1", "2025-01-10")
	for _, text := range []string{"first", "second"} {
		if _, err := svc.AddComment(ctx, assignment.NewComment{AssignmentID: a.ID, Author: "Bob", Text: text}); err != nil {
			t.Fatalf("AddComment() failed: %v", err)
		}
	}

	if err := svc.Delete(ctx, a.ID); err != nil {
		t.Fatalf("Delete() failed: %v", err)
	}
	// parent gone: its comments are unreachable
	if _, err := svc.QueryComments(ctx, a.ID); errors.Cause(err) != assignment.ErrNotFound {
		t.Errorf("comments of deleted parent: error = %v; want ErrNotFound", err)
	}
	// re-deleting is not success
	if err := svc.Delete(ctx, a.ID); errors.Cause(err) != assignment.ErrNotFound {
		t.Errorf("re-delete error = %v; want ErrNotFound", err)
	}
}

func Test_Service_Comments(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	a := createAssignment(t, svc, "HW1", "2025-01-10")

	// existing parent, no comments: empty sequence, not an error
	comments, err := svc.QueryComments(ctx, a.ID)
	if err != nil {
		t.Fatalf("QueryComments() failed: %v", err)
	}
	if len(comments) != 0 {
		t.Errorf("want no comments, got %v", comments)
	}

	c1, err := svc.AddComment(ctx, assignment.NewComment{AssignmentID: a.ID, Author: "Bob", Text: "hi"})
	if err != nil {
		t.Fatalf("AddComment() failed: %v", err)
	}
	c2, err := svc.AddComment(ctx, assignment.NewComment{AssignmentID: a.ID, Author: "Ann", Text: "hello"})
	if err != nil {
		t.Fatalf("AddComment() failed: %v", err)
	}

	comments, err = svc.QueryComments(ctx, a.ID)
	if err != nil {
		t.Fatalf("QueryComments() failed: %v", err)
	}
	if len(comments) != 2 || comments[0].ID != c1.ID || comments[1].ID != c2.ID {
		t.Errorf("want [c1 c2] in creation order, got %v", comments)
	}

	// no orphan: commenting on a missing parent fails
	if _, err = svc.AddComment(ctx, assignment.NewComment{AssignmentID: 999, Author: "Bob", Text: "hi"}); errors.Cause(err) != assignment.ErrNotFound {
		t.Errorf("comment on missing parent error = %v; want ErrNotFound", err)
	}

	if err = svc.DeleteComment(ctx, c1.ID); err != nil {
		t.Fatalf("DeleteComment() failed: %v", err)
	}
	if err = svc.DeleteComment(ctx, c1.ID); errors.Cause(err) != assignment.ErrCommentNotFound {
		t.Errorf("re-delete comment error = %v; want ErrCommentNotFound", err)
	}
}
