package echoapi

import (
	"net/http"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/assignment"
	"github.com/trezcool/darasa/core/auth"
	"github.com/trezcool/darasa/core/user"
	"github.com/trezcool/darasa/core/week"
)

var errHttpForbidden = echo.NewHTTPError(http.StatusForbidden, "permission denied")

// newAppHTTPErrorHandler returns a custom echo.HTTPErrorHandler that translates
// domain errors into the uniform envelope.
// signalShutdown is called in order to gracefully shutdown the Server whenever a core.shutdown error is caught.
func newAppHTTPErrorHandler(logger core.Logger, translator ut.Translator, signalShutdown func()) echo.HTTPErrorHandler {
	return func(err error, ctx echo.Context) {
		var code int
		var message interface{}

		switch origErr := errors.Cause(err).(type) {
		case *echo.HTTPError:
			if origErr.Internal != nil {
				if herr, ok := origErr.Internal.(*echo.HTTPError); ok {
					origErr = herr
				}
			}
			code = origErr.Code
			message = origErr.Message
		case validator.ValidationErrors:
			fldErrs := make(map[string]string, len(origErr))
			for _, vErr := range origErr {
				fldErrs[vErr.Field()] = vErr.Translate(translator)
			}
			code = http.StatusBadRequest
			message = fldErrs
		case *core.ValidationError:
			if origErr.Fields != nil {
				fldErrs := make(map[string]string, len(origErr.Fields))
				for _, fErr := range origErr.Fields {
					fldErrs[fErr.Field] = fErr.Error
				}
				message = fldErrs
			} else {
				message = origErr.Error()
			}
			code = http.StatusBadRequest
		default:
			switch origErr {
			case week.ErrInvalidWeekID:
				code = http.StatusBadRequest
				message = origErr.Error()
			case user.ErrInvalidCredentials, auth.ErrSessionNotFound:
				code = http.StatusUnauthorized
				message = user.ErrInvalidCredentials.Error()
			case user.ErrNotFound, assignment.ErrNotFound, assignment.ErrCommentNotFound,
				week.ErrNotFound, week.ErrCommentNotFound:
				code = http.StatusNotFound
				message = origErr.Error()
			case user.ErrEmailExists, week.ErrWeekExists:
				code = http.StatusConflict
				message = origErr.Error()
			default: // any other error is a server error; details stay server-side
				code = http.StatusInternalServerError
				msg := http.StatusText(http.StatusInternalServerError)
				message = msg

				args := []interface{}{errors.Wrap(err, msg)}
				if sess, ok := getContextSession(ctx); ok {
					args = append(args, user.User{ID: sess.UserID, Name: sess.Name, Email: sess.Email})
				}
				logger.Error(msg, args...)

				// shutting down...
				if core.IsShutdown(err) {
					signalShutdown()
				}
			}
		}

		if ctx.Echo().Debug && code == http.StatusInternalServerError {
			message = err.Error()
		}

		if !ctx.Response().Committed {
			if ctx.Request().Method == http.MethodHead {
				err = ctx.NoContent(code)
			} else {
				err = ctx.JSON(code, envelope{Success: false, Error: message})
			}
			if err != nil {
				ctx.Echo().Logger.Error(err)
			}
		}
	}
}
