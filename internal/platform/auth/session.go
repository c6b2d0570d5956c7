// Package auth carries the local login session (a signed JWT cookie issued
// after the OAuth callback) and the per-request gate that guarantees a valid
// DrChrono bearer token before a handler runs.
package auth

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
)

// SessionCookie is the name of the local login cookie.
const SessionCookie = "cp_session"

const userIDKey = "user_id"

type sessionClaims struct {
	jwt.RegisteredClaims
}

// IssueSession signs a session token for the given local user.
func IssueSession(secret string, userID uuid.UUID, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := sessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   userID.String(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
}

// ParseSession validates a session token and returns the local user id.
func ParseSession(secret, token string) (uuid.UUID, error) {
	parsed, err := jwt.ParseWithClaims(token, &sessionClaims{}, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return uuid.Nil, err
	}
	claims, ok := parsed.Claims.(*sessionClaims)
	if !ok || !parsed.Valid {
		return uuid.Nil, errors.New("invalid session token")
	}
	return uuid.Parse(claims.Subject)
}

// Session authenticates the request from the session cookie (or a bearer
// Authorization header) and stores the user id on the echo context. An
// expired or missing session answers 401 with the re-auth entry point, so
// clients know to send the user back through the connect flow.
func Session(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token := ""
			if cookie, err := c.Cookie(SessionCookie); err == nil {
				token = cookie.Value
			}
			if token == "" {
				header := c.Request().Header.Get("Authorization")
				if parts := strings.SplitN(header, " ", 2); len(parts) == 2 && strings.EqualFold(parts[0], "bearer") {
					token = parts[1]
				}
			}
			if token == "" {
				return reauthResponse(c, "not signed in")
			}

			userID, err := ParseSession(secret, token)
			if err != nil {
				return reauthResponse(c, "session expired, please reconnect")
			}

			c.Set(userIDKey, userID)
			return next(c)
		}
	}
}

// UserID returns the authenticated local user id, or uuid.Nil outside the
// session middleware.
func UserID(c echo.Context) uuid.UUID {
	id, _ := c.Get(userIDKey).(uuid.UUID)
	return id
}

func reauthResponse(c echo.Context, reason string) error {
	return c.JSON(http.StatusUnauthorized, map[string]string{
		"error":      reason,
		"reauth_url": ReauthPath,
	})
}
