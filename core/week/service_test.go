package week_test

import (
	"context"
	"testing"

	"github.com/pkg/errors"

	"github.com/trezcool/darasa/core/week"
	"github.com/trezcool/darasa/storage/database/inmem"
)

func newTestService(t *testing.T) *week.Service {
	t.Helper()
	db, err := inmemdb.Open()
	if err != nil {
		t.Fatalf("inmemdb.Open() failed: %v", err)
	}
	return week.NewService(inmemdb.NewWeekRepository(db))
}

func createWeek(t *testing.T, svc *week.Service, weekID, title, startDate string) week.Week {
	t.Helper()
	w, err := svc.Create(context.Background(), week.NewWeek{
		WeekID:      weekID,
		Title:       title,
		StartDate:   startDate,
		Description: "desc for " + title,
	})
	if err != nil {
		t.Fatalf("Create(%s) failed: %v", weekID, err)
	}
	return w
}

func Test_Service_Create(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	w := createWeek(t, svc, "week_3", "Intro", "2025-01-06")
	if w.WeekNumber != 3 {
		t.Errorf("WeekNumber = %d; want 3", w.WeekNumber)
	}
	if got := w.WeekID(); got != "week_3" {
		t.Errorf("WeekID() = %q; want %q", got, "week_3")
	}

	// same week number again
	_, err := svc.Create(ctx, week.NewWeek{
		WeekID: "week_3", Title: "Other", StartDate: "2025-01-13", Description: "x",
	})
	if errors.Cause(err) != week.ErrWeekExists {
		t.Errorf("duplicate create error = %v; want ErrWeekExists", err)
	}

	// malformed external id never reaches storage
	_, err = svc.Create(ctx, week.NewWeek{
		WeekID: "week_03", Title: "Bad", StartDate: "2025-01-13", Description: "x",
	})
	if errors.Cause(err) != week.ErrInvalidWeekID {
		t.Errorf("malformed id error = %v; want ErrInvalidWeekID", err)
	}
}

func Test_Service_Get(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	createWeek(t, svc, "week_1", "Intro", "2025-01-06")

	if _, err := svc.Get(ctx, "week_1"); err != nil {
		t.Errorf("Get() failed: %v", err)
	}
	if _, err := svc.Get(ctx, "week_9"); errors.Cause(err) != week.ErrNotFound {
		t.Errorf("missing week error = %v; want ErrNotFound", err)
	}
	if _, err := svc.Get(ctx, "nonsense"); errors.Cause(err) != week.ErrInvalidWeekID {
		t.Errorf("malformed id error = %v; want ErrInvalidWeekID", err)
	}
}

func Test_Service_Query_sorting(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	w2 := createWeek(t, svc, "week_2", "b-Structs", "2025-01-13")
	w1 := createWeek(t, svc, "week_1", "c-Intro", "2025-01-06")
	w3 := createWeek(t, svc, "week_3", "a-Slices", "2025-01-20")

	assertOrder := func(name string, got []week.Week, want ...int) {
		if len(got) != len(want) {
			t.Fatalf("%s: got %d weeks; want %d", name, len(got), len(want))
		}
		for i, n := range want {
			if got[i].WeekNumber != n {
				t.Errorf("%s: position %d = week %d; want %d", name, i, got[i].WeekNumber, n)
			}
		}
	}

	// default: start date ascending
	all, err := svc.Query(ctx, nil)
	if err != nil {
		t.Fatalf("Query() failed: %v", err)
	}
	assertOrder("default", all, w1.WeekNumber, w2.WeekNumber, w3.WeekNumber)

	all, _ = svc.Query(ctx, &week.QueryFilter{Sort: "title"})
	assertOrder("title asc", all, w3.WeekNumber, w2.WeekNumber, w1.WeekNumber)

	all, _ = svc.Query(ctx, &week.QueryFilter{Sort: "date", Order: "desc"})
	assertOrder("date desc", all, w3.WeekNumber, w2.WeekNumber, w1.WeekNumber)

	all, _ = svc.Query(ctx, &week.QueryFilter{Sort: "bogus", Order: "bogus"})
	assertOrder("fallback", all, w1.WeekNumber, w2.WeekNumber, w3.WeekNumber)

	all, _ = svc.Query(ctx, &week.QueryFilter{Search: "slices"})
	assertOrder("search", all, w3.WeekNumber)
}

func Test_Service_Update(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	w := createWeek(t, svc, "week_1", "Intro", "2025-01-06")

	title := "Intro v2"
	updated, err := svc.Update(ctx, "week_1", week.UpdateWeek{Title: &title})
	if err != nil {
		t.Fatalf("Update() failed: %v", err)
	}
	if updated.Title != title {
		t.Errorf("title = %q; want %q", updated.Title, title)
	}
	if updated.StartDate != w.StartDate || updated.Description != w.Description {
		t.Errorf("partial update clobbered other fields: %+v", updated)
	}
	// the week number is immutable
	if updated.WeekNumber != w.WeekNumber {
		t.Errorf("week number changed on update: %d", updated.WeekNumber)
	}

	if _, err = svc.Update(ctx, "week_9", week.UpdateWeek{Title: &title}); errors.Cause(err) != week.ErrNotFound {
		t.Errorf("missing week error = %v; want ErrNotFound", err)
	}
}

func Test_Service_Delete_cascades(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	createWeek(t, svc, "week_1", "Intro", "2025-01-06")
	if _, err := svc.AddComment(ctx, week.NewComment{WeekID: "week_1", Author: "Bob", Text: "hi"}); err != nil {
		t.Fatalf("AddComment() failed: %v", err)
	}

	if err := svc.Delete(ctx, "week_1"); err != nil {
		t.Fatalf("Delete() failed: %v", err)
	}
	if _, err := svc.QueryComments(ctx, "week_1"); errors.Cause(err) != week.ErrNotFound {
		t.Errorf("comments of deleted parent: error = %v; want ErrNotFound", err)
	}
	if err := svc.Delete(ctx, "week_1"); errors.Cause(err) != week.ErrNotFound {
		t.Errorf("re-delete error = %v; want ErrNotFound", err)
	}
}

func Test_Service_Comments(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	createWeek(t, svc, "week_1", "Intro", "2025-01-06")

	comments, err := svc.QueryComments(ctx, "week_1")
	if err != nil {
		t.Fatalf("QueryComments() failed: %v", err)
	}
	if len(comments) != 0 {
		t.Errorf("want no comments, got %v", comments)
	}

	c, err := svc.AddComment(ctx, week.NewComment{WeekID: "week_1", Author: "Bob", Text: "hi"})
	if err != nil {
		t.Fatalf("AddComment() failed: %v", err)
	}
	if c.WeekNumber != 1 {
		t.Errorf("comment week number = %d; want 1", c.WeekNumber)
	}

	if _, err = svc.AddComment(ctx, week.NewComment{WeekID: "week_9", Author: "Bob", Text: "hi"}); errors.Cause(err) != week.ErrNotFound {
		t.Errorf("comment on missing parent error = %v; want ErrNotFound", err)
	}
	if _, err = svc.AddComment(ctx, week.NewComment{WeekID: "bogus", Author: "Bob", Text: "hi"}); errors.Cause(err) != week.ErrInvalidWeekID {
		t.Errorf("comment with malformed id error = %v; want ErrInvalidWeekID", err)
	}

	if err = svc.DeleteComment(ctx, c.ID); err != nil {
		t.Fatalf("DeleteComment() failed: %v", err)
	}
	if err = svc.DeleteComment(ctx, c.ID); errors.Cause(err) != week.ErrCommentNotFound {
		t.Errorf("re-delete comment error = %v; want ErrCommentNotFound", err)
	}
}
