package echoapi

import (
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/darasa/core/week"
)

type weekApi struct {
	svc        week.ServiceInterface
	validate   *validator.Validate
	translator ut.Translator
}

func registerWeekAPI(
	app *echo.Echo,
	svc week.ServiceInterface,
	validate *validator.Validate,
	translator ut.Translator,
) {
	api := weekApi{svc: svc, validate: validate, translator: translator}

	app.GET("/weeks", api.query)
	app.POST("/weeks", api.create, adminMiddleware())
	app.PUT("/weeks", api.update, adminMiddleware())
	app.DELETE("/weeks", api.destroy, adminMiddleware())

	app.GET("/weeks/comments", api.queryComments)
	app.POST("/weeks/comments", api.createComment)
	app.DELETE("/weeks/comments", api.destroyComment, adminMiddleware())
}

// weekResponse renders the external "week_<N>" identifier alongside the
// stored fields.
type weekResponse struct {
	WeekID string `json:"week_id"`
	week.Week
}

func newWeekResponse(w week.Week) weekResponse {
	return weekResponse{WeekID: w.WeekID(), Week: w}
}

// weekCommentResponse carries the parent week's external identifier.
type weekCommentResponse struct {
	WeekID string `json:"week_id"`
	week.Comment
}

func newWeekCommentResponse(c week.Comment) weekCommentResponse {
	return weekCommentResponse{WeekID: week.FormatWeekID(c.WeekNumber), Comment: c}
}

func (api *weekApi) query(ctx echo.Context) error {
	if weekID := weekIDQueryParam(ctx); weekID != "" {
		w, err := api.svc.Get(ctx.Request().Context(), weekID)
		if err != nil {
			return errors.Wrap(err, "getting week")
		}
		return jsonOK(ctx, newWeekResponse(w), "")
	}

	filter := new(week.QueryFilter)
	if err := ctx.Bind(filter); err != nil {
		return errors.Wrap(err, "binding to QueryFilter")
	}
	weeks, err := api.svc.Query(ctx.Request().Context(), filter)
	if err != nil {
		return errors.Wrap(err, "querying weeks")
	}

	resp := make([]weekResponse, len(weeks))
	for i, w := range weeks {
		resp[i] = newWeekResponse(w)
	}
	return jsonOK(ctx, resp, "")
}

func (api *weekApi) create(ctx echo.Context) error {
	var data week.NewWeek
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewWeek")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	w, err := api.svc.Create(ctx.Request().Context(), data)
	if err != nil {
		return errors.Wrap(err, "creating week")
	}
	return jsonCreated(ctx, newWeekResponse(w), "Week added successfully")
}

func (api *weekApi) update(ctx echo.Context) error {
	weekID := weekIDQueryParam(ctx)

	var data week.UpdateWeek
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to UpdateWeek")
	}
	if err := data.Validate(api.validate); err != nil {
		return err
	}

	w, err := api.svc.Update(ctx.Request().Context(), weekID, data)
	if err != nil {
		return errors.Wrap(err, "updating week")
	}
	return jsonOK(ctx, newWeekResponse(w), "Week updated successfully")
}

func (api *weekApi) destroy(ctx echo.Context) error {
	if err := api.svc.Delete(ctx.Request().Context(), weekIDQueryParam(ctx)); err != nil {
		return errors.Wrap(err, "deleting week")
	}
	return jsonOK(ctx, nil, "Week deleted successfully")
}

func (api *weekApi) queryComments(ctx echo.Context) error {
	comments, err := api.svc.QueryComments(ctx.Request().Context(), weekIDQueryParam(ctx))
	if err != nil {
		return errors.Wrap(err, "querying comments")
	}

	resp := make([]weekCommentResponse, len(comments))
	for i, c := range comments {
		resp[i] = newWeekCommentResponse(c)
	}
	return jsonOK(ctx, resp, "")
}

func (api *weekApi) createComment(ctx echo.Context) error {
	var data week.NewComment
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
	return jsonCreated(ctx, newWeekCommentResponse(c), "Comment added successfully")
}

func (api *weekApi) destroyComment(ctx echo.Context) error {
	id, err := intQueryParam(ctx, "id")
	if err != nil {
		return err
	}
	if err = api.svc.DeleteComment(ctx.Request().Context(), id); err != nil {
		return errors.Wrap(err, "deleting comment")
	}
	return jsonOK(ctx, nil, "Comment deleted successfully")
}
