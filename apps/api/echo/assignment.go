package echoapi

import (
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/darasa/core/assignment"
)

type assignmentApi struct {
	svc        assignment.ServiceInterface
	validate   *validator.Validate
	translator ut.Translator
}

func registerAssignmentAPI(
	app *echo.Echo,
	svc assignment.ServiceInterface,
	validate *validator.Validate,
	translator ut.Translator,
) {
	api := assignmentApi{svc: svc, validate: validate, translator: translator}

	// reads and commenting are open to any caller; mutations are admin-only
	app.GET("/assignments", api.query)
	app.POST("/assignments", api.create, adminMiddleware())
	app.PUT("/assignments", api.update, adminMiddleware())
	app.DELETE("/assignments", api.destroy, adminMiddleware())

	app.GET("/assignments/comments", api.queryComments)
	app.POST("/assignments/comments", api.createComment)
	app.DELETE("/assignments/comments", api.destroyComment, adminMiddleware())
}

func (api *assignmentApi) query(ctx echo.Context) error {
	if ctx.QueryParam("id") != "" {
		id, err := intQueryParam(ctx, "id")
		if err != nil {
			return err
		}
		a, err := api.svc.Get(ctx.Request().Context(), id)
		if err != nil {
			return errors.Wrap(err, "getting assignment")
		}
		return jsonOK(ctx, a, "")
	}

	filter := new(assignment.QueryFilter)
	if err := ctx.Bind(filter); err != nil {
		return errors.Wrap(err, "binding to QueryFilter")
	}
	assignments, err := api.svc.Query(ctx.Request().Context(), filter)
	if err != nil {
		return errors.Wrap(err, "querying assignments")
	}
	return jsonOK(ctx, assignments, "")
}

func (api *assignmentApi) create(ctx echo.Context) error {
	var data assignment.NewAssignment
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewAssignment")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	a, err := api.svc.Create(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating assignment")
	}
	return jsonCreated(ctx, a, "Assignment added successfully")
}

func (api *assignmentApi) update(ctx echo.Context) error {
	id, err := intQueryParam(ctx, "id")
	if err != nil {
		return err
	}

	var data assignment.UpdateAssignment
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateAssignment")
	}
	if err = data.Validate(api.validate); err != nil {
		return err
	}

	a, err := api.svc.Update(ctx.Request().Context(), id, data)
	if err != nil {
		return errors.Wrap(err, "updating assignment")
	}
	return jsonOK(ctx, a, "Assignment updated successfully")
}

func (api *assignmentApi) destroy(ctx echo.Context) error {
	id, err := intQueryParam(ctx, "id")
	if err != nil {
		return err
	}
	if err = api.svc.Delete(ctx.Request().Context(), id); err != nil {
		return errors.Wrap(err, "deleting assignment")
	}
	return jsonOK(ctx, nil, "Assignment deleted successfully")
}

func (api *assignmentApi) queryComments(ctx echo.Context) error {
	assignmentID, err := intQueryParam(ctx, "assignment_id")
	if err != nil {
		return err
	}
	comments, err := api.svc.QueryComments(ctx.Request().Context(), assignmentID)
	if err != nil {
		return errors.Wrap(err, "querying comments")
	}
	return jsonOK(ctx, comments, "")
}

func (api *assignmentApi) createComment(ctx echo.Context) error {
	var data assignment.NewComment
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewComment")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	c, err := api.svc.AddComment(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "adding comment")
	}
	return jsonCreated(ctx, c, "Comment added successfully")
}

func (api *assignmentApi) destroyComment(ctx echo.Context) error {
	id, err := intQueryParam(ctx, "id")
	if err != nil {
		return err
	}
	if err = api.svc.DeleteComment(ctx.Request().Context(), id); err != nil {
		return errors.Wrap(err, "deleting comment")
	}
	return jsonOK(ctx, nil, "Comment deleted successfully")
}
