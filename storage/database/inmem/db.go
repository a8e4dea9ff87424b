// Package inmemdb provides map-backed repositories for tests and local
// prototyping. They honor the same uniqueness, ordering and cascade semantics
// as the SQL implementations.
package inmemdb

import (
	"sync"

	"github.com/trezcool/darasa/core/assignment"
	"github.com/trezcool/darasa/core/user"
	"github.com/trezcool/darasa/core/week"
)

type (
	DB struct {
		user              *userTable
		assignment        *assignmentTable
		assignmentComment *assignmentCommentTable
		week              *weekTable
		weekComment       *weekCommentTable
	}

	userTable struct {
		sync.RWMutex
		table   map[int]*user.User
		pkCount int
	}

	assignmentTable struct {
		sync.RWMutex
		table   map[int]*assignment.Assignment
		pkCount int
	}

	assignmentCommentTable struct {
		sync.RWMutex
		table   map[int]*assignment.Comment
		pkCount int
	}

	weekTable struct {
		sync.RWMutex
		table   map[int]*week.Week // keyed by week number
		pkCount int
	}

	weekCommentTable struct {
		sync.RWMutex
		table   map[int]*week.Comment
		pkCount int
	}
)

func Open() (*DB, error) {
	db := &DB{
		user:              &userTable{table: make(map[int]*user.User)},
		assignment:        &assignmentTable{table: make(map[int]*assignment.Assignment)},
		assignmentComment: &assignmentCommentTable{table: make(map[int]*assignment.Comment)},
		week:              &weekTable{table: make(map[int]*week.Week)},
		weekComment:       &weekCommentTable{table: make(map[int]*week.Comment)},
	}
	return db, nil
}
