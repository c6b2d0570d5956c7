package auth

import (
	"context"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

const ehrTokenKey = "ehr_token"

// TokenSource yields a currently-valid DrChrono bearer token for a local
// user, refreshing behind the scenes when needed.
type TokenSource interface {
	ValidToken(ctx context.Context, userID uuid.UUID) (string, error)
}

// RequireEHRToken resolves a valid DrChrono token before the handler runs
// and stashes it on the context. An auth failure answers 401 with the
// re-auth entry point instead of invoking the handler.
func RequireEHRToken(tokens TokenSource) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			userID := UserID(c)
			if userID == uuid.Nil {
				return reauthResponse(c, "not signed in")
			}

			token, err := tokens.ValidToken(c.Request().Context(), userID)
			if err != nil {
				var ae *Error
				if errors.As(err, &ae) {
					return reauthResponse(c, ae.Reason)
				}
				return echo.NewHTTPError(http.StatusInternalServerError, "could not resolve API token")
			}

			c.Set(ehrTokenKey, token)
			return next(c)
		}
	}
}

// EHRToken returns the DrChrono bearer token resolved by RequireEHRToken.
func EHRToken(c echo.Context) string {
	token, _ := c.Get(ehrTokenKey).(string)
	return token
}
