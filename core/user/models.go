package user

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"golang.org/x/crypto/bcrypt"

	"github.com/trezcool/darasa/core"
)

type User struct {
	ID           int       `json:"id" db:"id"`
	Name         string    `json:"name" db:"name"`
	Email        string    `json:"email" db:"email"`
	IsAdmin      bool      `json:"is_admin" db:"is_admin"`
	PasswordHash []byte    `json:"-" db:"password_hash"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"` // UTC
	UpdatedAt    time.Time `json:"updated_at" db:"updated_at"` // UTC
}

func (u *User) SetPassword(pwd string) error {
	hash, err := bcrypt.GenerateFromPassword([]byte(pwd), bcrypt.DefaultCost)
	if err != nil {
		return errors.Wrap(err, "hashing password")
	}
	u.PasswordHash = hash
	return nil
}

func (u *User) CheckPassword(pwd string) error {
	return bcrypt.CompareHashAndPassword(u.PasswordHash, []byte(pwd))
}

// StudentID is the externally-visible student identifier, always derived
// from the email: the part before the first "@".
func (u *User) StudentID() string {
	return LocalPart(u.Email)
}

// LocalPart returns the substring of `email` before the first "@".
func LocalPart(email string) string {
	if i := strings.Index(email, "@"); i >= 0 {
		return email[:i]
	}
	return email
}

// NewStudent contains information needed to create a new student account.
type NewStudent struct {
	StudentID string `json:"student_id" validate:"required"`
	Name      string `json:"name" validate:"required"`
	Email     string `json:"email" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=8"`
}

func (ns *NewStudent) Validate(validate *validator.Validate) error {
	ns.Name = core.SanitizeString(ns.Name)
	ns.Email = core.CleanString(ns.Email, true /* lower */)
	ns.StudentID = core.CleanString(ns.StudentID, true /* lower */)

	if err := validate.Struct(ns); err != nil {
		return err
	}
	if ns.StudentID != LocalPart(ns.Email) {
		return core.NewValidationError(
			errors.New("student_id mismatch"),
			core.FieldError{Field: "student_id", Error: "student_id must match the part of email before \"@\""},
		)
	}
	return nil
}

// UpdateStudent defines what information may be provided to modify an
// existing student. Passwords are never touched here.
type UpdateStudent struct {
	Name  string `json:"name" validate:"required"`
	Email string `json:"email" validate:"required,email"`
}

func (us *UpdateStudent) Validate(validate *validator.Validate) error {
	us.Name = core.SanitizeString(us.Name)
	us.Email = core.CleanString(us.Email, true /* lower */)
	return validate.Struct(us)
}

// ChangePassword is the self-service password change request. NewPassword
// length is validated before any account lookup so a failure does not leak
// whether the email exists.
type ChangePassword struct {
	Email           string `json:"email" validate:"required,email"`
	CurrentPassword string `json:"currentPassword" validate:"required"`
	NewPassword     string `json:"newPassword" validate:"required,min=8"`
}

func (cp *ChangePassword) Validate(validate *validator.Validate) error {
	cp.Email = core.CleanString(cp.Email, true /* lower */)
	return validate.Struct(cp)
}

type QueryFilter struct {
	Search string `query:"search"`
}

func (qf *QueryFilter) IsEmpty() bool { return qf.Search == "" }

func (qf *QueryFilter) Clean() {
	qf.Search = core.CleanString(qf.Search)
}
