package echoapi

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/darasa/core"
)

// envelope is the uniform response wrapper used by every endpoint.
type envelope struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Message string      `json:"message,omitempty"`
	Error   interface{} `json:"error,omitempty"`
}

func jsonOK(ctx echo.Context, data interface{}, message string) error {
	return ctx.JSON(http.StatusOK, envelope{Success: true, Data: data, Message: message})
}

func jsonCreated(ctx echo.Context, data interface{}, message string) error {
	return ctx.JSON(http.StatusCreated, envelope{Success: true, Data: data, Message: message})
}

// intQueryParam extracts a required integer query parameter.
func intQueryParam(ctx echo.Context, name string) (int, error) {
	raw := ctx.QueryParam(name)
	if raw == "" {
		return 0, core.NewValidationError(
			errors.New(name+" missing"),
			core.FieldError{Field: name, Error: name + " is required"},
		)
	}
	id, err := strconv.Atoi(raw)
	if err != nil {
		return 0, core.NewValidationError(
			errors.New(name+" malformed"),
			core.FieldError{Field: name, Error: name + " must be an integer"},
		)
	}
	return id, nil
}

// weekIDQueryParam extracts the external "week_<N>" identifier; it accepts
// both ?week_id= and ?id= for symmetry with the other resources.
func weekIDQueryParam(ctx echo.Context) string {
	if raw := ctx.QueryParam("week_id"); raw != "" {
		return raw
	}
	return ctx.QueryParam("id")
}
