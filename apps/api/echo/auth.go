package echoapi

import (
	"net/http"
	"time"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/trezcool/darasa/core"
	"github.com/trezcool/darasa/core/auth"
	"github.com/trezcool/darasa/core/user"
)

type authApi struct {
	svc        *auth.Service
	validate   *validator.Validate
	translator ut.Translator
}

func registerAuthAPI(app *echo.Echo, svc *auth.Service, validate *validator.Validate, translator ut.Translator) {
	api := authApi{svc: svc, validate: validate, translator: translator}
	app.POST("/login", api.login)
	app.POST("/logout", api.logout)
}

type (
	LoginRequest struct {
		Email    string `json:"email" validate:"required,email"`
		Password string `json:"password" validate:"required,min=8"`
	}

	LoginUser struct {
		ID      int    `json:"id"`
		Name    string `json:"name"`
		Email   string `json:"email"`
		IsAdmin bool   `json:"is_admin"`
	}

	LoginResponse struct {
		Success bool      `json:"success"`
		Message string    `json:"message"`
		User    LoginUser `json:"user"`
	}
)

func (lr *LoginRequest) Validate(validate *validator.Validate) error {
	lr.Email = core.CleanString(lr.Email, true /* lower */)
	return validate.Struct(lr)
}

func (api *authApi) login(ctx echo.Context) error {
	var data LoginRequest
	if err := ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to LoginRequest")
	}
	// a malformed email or short password can never authenticate; report it
	// as bad credentials so nothing leaks about account existence
	if err := data.Validate(api.validate); err != nil {
		return user.ErrInvalidCredentials
	}

	sess, err := api.svc.Login(ctx.Request().Context(), data.Email, data.Password)
	if err != nil {
		return errors.Wrap(err, "logging in")
	}

	ctx.SetCookie(&http.Cookie{
		Name:     SessionCookieName,
		Value:    sess.Token,
		Path:     "/",
		Expires:  sess.ExpiresAt,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return ctx.JSON(http.StatusOK, LoginResponse{
		Success: true,
		Message: "Login successful",
		User: LoginUser{
			ID:      sess.UserID,
			Name:    sess.Name,
			Email:   sess.Email,
			IsAdmin: sess.IsAdmin,
		},
	})
}

func (api *authApi) logout(ctx echo.Context) error {
	var token string
	if cookie, err := ctx.Cookie(SessionCookieName); err == nil {
		token = cookie.Value
	}
	if err := api.svc.Logout(token); err != nil {
		return errors.Wrap(err, "logging out")
	}

	// expire the cookie
	ctx.SetCookie(&http.Cookie{
		Name:     SessionCookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		MaxAge:   -1,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return jsonOK(ctx, nil, "Logout successful")
}
