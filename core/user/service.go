package user

import (
	"context"
	"fmt"
	"net/mail"
	"time"

	"github.com/pkg/errors"

	"github.com/trezcool/darasa/core"
)

var (
	ErrNotFound           = errors.New("student not found")
	ErrEmailExists        = errors.New("a user with this email already exists")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

type (
	Repository interface {
		// CheckEmailUniqueness fails with ErrEmailExists when another user
		// (excluding excludedIDs) already owns `email`.
		CheckEmailUniqueness(ctx context.Context, email string, excludedIDs ...int) error
		CreateUser(ctx context.Context, usr User) (User, error)
		GetUserByID(ctx context.Context, id int) (User, error)
		GetUserByEmail(ctx context.Context, email string) (User, error)
		// FilterStudents returns non-admin users in creation order.
		// QueryFilter.Search does a case-insensitive match on one of
		// User.Name, User.Email or the derived student id.
		FilterStudents(ctx context.Context, filter QueryFilter) ([]User, error)
		UpdateUser(ctx context.Context, usr User) (User, error)
		DeleteStudent(ctx context.Context, id int) error
	}

	ServiceInterface interface {
		Authenticate(ctx context.Context, email, password string) (User, error)
		CreateStudent(ctx context.Context, ns NewStudent) (User, error)
		QueryStudents(ctx context.Context, filter *QueryFilter) ([]User, error)
		GetStudent(ctx context.Context, id int) (User, error)
		UpdateStudent(ctx context.Context, id int, us UpdateStudent) (User, error)
		DeleteStudent(ctx context.Context, id int) error
		ChangePassword(ctx context.Context, cp ChangePassword) error
	}

	Service struct {
		conf    *core.Config
		repo    Repository
		mailSvc core.EmailService
	}
)

var _ ServiceInterface = (*Service)(nil)

func NewService(conf *core.Config, repo Repository, mailSvc core.EmailService) *Service {
	return &Service{conf: conf, repo: repo, mailSvc: mailSvc}
}

// Authenticate verifies the email/password pair against the stored digest.
// Unknown accounts and bad passwords are indistinguishable to the caller.
func (svc *Service) Authenticate(ctx context.Context, email, password string) (User, error) {
	usr, err := svc.repo.GetUserByEmail(ctx, core.CleanString(email, true /* lower */))
	if err != nil {
		if errors.Cause(err) == ErrNotFound {
			return User{}, ErrInvalidCredentials
		}
		return User{}, errors.Wrap(err, "finding user by email")
	}
	if err = usr.CheckPassword(password); err != nil {
		return User{}, ErrInvalidCredentials
	}
	return usr, nil
}

func (svc *Service) checkUniqueness(ctx context.Context, email string, exclIDs ...int) error {
	if err := svc.repo.CheckEmailUniqueness(ctx, email, exclIDs...); err != nil {
		if errors.Cause(err) == ErrEmailExists {
			return err
		}
		return errors.Wrap(err, "checking email uniqueness")
	}
	return nil
}

func (svc *Service) CreateStudent(ctx context.Context, ns NewStudent) (User, error) {
	// best-effort pre-check; the unique constraint at insert time is the
	// sole arbiter under concurrent creates
	if err := svc.checkUniqueness(ctx, ns.Email); err != nil {
		return User{}, err
	}

	now := time.Now().UTC()
	usr := User{
		Name:      ns.Name,
		Email:     ns.Email,
		IsAdmin:   false,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := usr.SetPassword(ns.Password); err != nil {
		return User{}, err
	}

	usr, err := svc.repo.CreateUser(ctx, usr)
	if err != nil {
		return User{}, err
	}
	svc.sendWelcomeEmail(usr)
	return usr, nil
}

// CreateAdmin seeds an administrator account. Only reachable from the admin
// CLI; the HTTP API never creates nor deletes admins.
func (svc *Service) CreateAdmin(ctx context.Context, name, email, password string) (User, error) {
	email = core.CleanString(email, true /* lower */)
	if err := svc.checkUniqueness(ctx, email); err != nil {
		return User{}, err
	}

	now := time.Now().UTC()
	usr := User{
		Name:      core.CleanString(name),
		Email:     email,
		IsAdmin:   true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := usr.SetPassword(password); err != nil {
		return User{}, err
	}
	return svc.repo.CreateUser(ctx, usr)
}

func (svc *Service) QueryStudents(ctx context.Context, filter *QueryFilter) ([]User, error) {
	if filter == nil {
		filter = &QueryFilter{}
	}
	filter.Clean()
	return svc.repo.FilterStudents(ctx, *filter)
}

func (svc *Service) GetStudent(ctx context.Context, id int) (User, error) {
	usr, err := svc.repo.GetUserByID(ctx, id)
	if err != nil {
		return User{}, err
	}
	if usr.IsAdmin {
		// admin accounts are not addressable through the student directory
		return User{}, ErrNotFound
	}
	return usr, nil
}

func (svc *Service) GetByEmail(ctx context.Context, email string) (User, error) {
	return svc.repo.GetUserByEmail(ctx, core.CleanString(email, true /* lower */))
}

func (svc *Service) UpdateStudent(ctx context.Context, id int, us UpdateStudent) (User, error) {
	usr, err := svc.GetStudent(ctx, id)
	if err != nil {
		return User{}, err
	}
	if err = svc.checkUniqueness(ctx, us.Email, usr.ID); err != nil {
		return User{}, err
	}

	usr.Name = us.Name
	usr.Email = us.Email
	usr.UpdatedAt = time.Now().UTC()
	return svc.repo.UpdateUser(ctx, usr)
}

func (svc *Service) DeleteStudent(ctx context.Context, id int) error {
	return svc.repo.DeleteStudent(ctx, id)
}

func (svc *Service) ChangePassword(ctx context.Context, cp ChangePassword) error {
	usr, err := svc.Authenticate(ctx, cp.Email, cp.CurrentPassword)
	if err != nil {
		return err
	}
	if err = usr.SetPassword(cp.NewPassword); err != nil {
		return err
	}
	usr.UpdatedAt = time.Now().UTC()
	if _, err = svc.repo.UpdateUser(ctx, usr); err != nil {
		return errors.Wrap(err, "updating password")
	}
	return nil
}

// SetPassword overrides an account's password without checking the current
// one. Only reachable from the admin CLI.
func (svc *Service) SetPassword(ctx context.Context, email, password string) error {
	usr, err := svc.GetByEmail(ctx, email)
	if err != nil {
		return err
	}
	if err = usr.SetPassword(password); err != nil {
		return err
	}
	usr.UpdatedAt = time.Now().UTC()
	_, err = svc.repo.UpdateUser(ctx, usr)
	return err
}

func (svc *Service) sendWelcomeEmail(usr User) {
	if svc.mailSvc == nil {
		return
	}
	svc.mailSvc.SendMessages(&core.EmailMessage{
		To:      []mail.Address{{Name: usr.Name, Address: usr.Email}},
		Subject: "Your account is ready",
		BodyStr: fmt.Sprintf(
			"Hi %s,\n\nYour %s student account has been created.\n"+
				"Sign in with this email address at %s.\n",
			usr.Name, svc.conf.AppName, svc.conf.FrontendBaseURL),
	})
}
