package echoapi

import (
	"time"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/darasa/core/user"
)

type studentApi struct {
	svc        user.ServiceInterface
	validate   *validator.Validate
	translator ut.Translator
}

func registerStudentAPI(
	app *echo.Echo,
	svc user.ServiceInterface,
	validate *validator.Validate,
	translator ut.Translator,
) {
	api := studentApi{svc: svc, validate: validate, translator: translator}

	// change-password is its own gate: it verifies the current password
	app.POST("/students/change-password", api.changePassword)

	sg := app.Group("/students", adminMiddleware())
	sg.GET("", api.query)
	sg.POST("", api.create)
	sg.PUT("", api.update)
	sg.DELETE("", api.destroy)
}

// studentResponse is the directory view of a student account; the digest
// never leaves the server and the student_id is always derived.
type studentResponse struct {
	ID        int       `json:"id"`
	StudentID string    `json:"student_id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	CreatedAt time.Time `json:"created_at"`
}

func newStudentResponse(usr user.User) studentResponse {
	return studentResponse{
		ID:        usr.ID,
		StudentID: usr.StudentID(),
		Name:      usr.Name,
		Email:     usr.Email,
		CreatedAt: usr.CreatedAt,
	}
}

func (api *studentApi) query(ctx echo.Context) error {
	if ctx.QueryParam("id") != "" {
		id, err := intQueryParam(ctx, "id")
		if err != nil {
			return err
		}
		usr, err := api.svc.GetStudent(ctx.Request().Context(), id)
		if err != nil {
			return errors.Wrap(err, "getting student")
		}
		return jsonOK(ctx, newStudentResponse(usr), "")
	}

	filter := new(user.QueryFilter)
	if err := ctx.Bind(filter); err != nil {
		return errors.Wrap(err, "binding to QueryFilter")
	}
	users, err := api.svc.QueryStudents(ctx.Request().Context(), filter)
	if err != nil {
		return errors.Wrap(err, "querying students")
	}

	students := make([]studentResponse, len(users))
	for i, usr := range users {
		students[i] = newStudentResponse(usr)
	}
	return jsonOK(ctx, students, "")
}

func (api *studentApi) create(ctx echo.Context) error {
	var data user.NewStudent
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewStudent")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	usr, err := api.svc.CreateStudent(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating student")
	}
	return jsonCreated(ctx, newStudentResponse(usr), "Student added successfully")
}

func (api *studentApi) update(ctx echo.Context) error {
	id, err := intQueryParam(ctx, "id")
	if err != nil {
		return err
	}

	var data user.UpdateStudent
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateStudent")
	}
	if err = data.Validate(api.validate); err != nil {
		return err
	}

	usr, err := api.svc.UpdateStudent(ctx.Request().Context(), id, data)
	if err != nil {
		return errors.Wrap(err, "updating student")
	}
	return jsonOK(ctx, newStudentResponse(usr), "Student updated successfully")
}

func (api *studentApi) destroy(ctx echo.Context) error {
	id, err := intQueryParam(ctx, "id")
	if err != nil {
		return err
	}
	// resolve through the directory first so admin rows 404 like missing ones
	if _, err = api.svc.GetStudent(ctx.Request().Context(), id); err != nil {
		return errors.Wrap(err, "getting student")
	}
	if err = api.svc.DeleteStudent(ctx.Request().Context(), id); err != nil {
		return errors.Wrap(err, "deleting student")
	}
	return jsonOK(ctx, nil, "Student deleted successfully")
}

func (api *studentApi) changePassword(ctx echo.Context) error {
	var data user.ChangePassword
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to ChangePassword")
	}
	// the new password's strength is checked before any account lookup
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	if err := api.svc.ChangePassword(ctx.Request().Context(), data); err != nil {
		return errors.Wrap(err, "changing password")
	}
	return jsonOK(ctx, nil, "Password changed successfully")
}
