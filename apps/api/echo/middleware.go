package echoapi

import (
	"github.com/labstack/echo/v4"

	"github.com/trezcool/darasa/core/auth"
)

// SessionCookieName carries the opaque session token.
const SessionCookieName = "darasa_session"

const sessionContextKey = "session"

// sessionMiddleware resolves the session cookie (when present) and stashes the
// live session in the request context. Anonymous requests pass through.
func sessionMiddleware(authSvc *auth.Service) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			if cookie, err := ctx.Cookie(SessionCookieName); err == nil {
				if sess, err := authSvc.Get(cookie.Value); err == nil {
					ctx.Set(sessionContextKey, sess)
				}
			}
			return next(ctx)
		}
	}
}

func getContextSession(ctx echo.Context) (auth.Session, bool) {
	sess, ok := ctx.Get(sessionContextKey).(auth.Session)
	return sess, ok
}

// adminMiddleware guards admin-only endpoints. Anonymous callers and plain
// students both get a 403; admin status is asserted from the flag captured at
// login time.
func adminMiddleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			if sess, ok := getContextSession(ctx); ok && sess.IsAdmin {
				return next(ctx)
			}
			return errHttpForbidden
		}
	}
}
