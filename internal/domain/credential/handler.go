package credential

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
	"golang.org/x/oauth2"

	"github.com/chartpacket/chartpacket/internal/config"
	"github.com/chartpacket/chartpacket/internal/platform/auth"
	"github.com/chartpacket/chartpacket/internal/platform/drchrono"
)

const stateCookie = "cp_oauth_state"

// Handler runs the DrChrono OAuth connect flow and signs users into a
// local session once the provider hands back a token.
type Handler struct {
	oauth   *oauth2.Config
	ehr     *drchrono.Client
	users   UserRepository
	service *Service
	cfg     *config.Config
}

func NewHandler(cfg *config.Config, ehr *drchrono.Client, users UserRepository, service *Service) *Handler {
	return &Handler{
		oauth: &oauth2.Config{
			ClientID:     cfg.DrChronoClientID,
			ClientSecret: cfg.DrChronoClientSecret,
			RedirectURL:  cfg.DrChronoRedirectURI,
			Scopes:       cfg.Scopes(),
			Endpoint: oauth2.Endpoint{
				AuthURL:  ehr.AuthorizeURL(),
				TokenURL: ehr.TokenURL(),
			},
		},
		ehr:     ehr,
		users:   users,
		service: service,
		cfg:     cfg,
	}
}

func (h *Handler) Register(e *echo.Echo) {
	e.GET("/auth/connect", h.Connect)
	e.GET("/auth/callback", h.Callback)
}

// Connect sends the browser to DrChrono's authorization page with a
// one-time state value pinned in a short-lived cookie.
func (h *Handler) Connect(c echo.Context) error {
	state := uuid.NewString()
	c.SetCookie(&http.Cookie{
		Name:     stateCookie,
		Value:    state,
		Path:     "/auth",
		MaxAge:   600,
		HttpOnly: true,
		Secure:   !h.cfg.IsDev(),
		SameSite: http.SameSiteLaxMode,
	})
	return c.Redirect(http.StatusFound, h.oauth.AuthCodeURL(state))
}

// Callback completes the OAuth exchange, stores the credential for the
// DrChrono user and issues the local session cookie.
func (h *Handler) Callback(c echo.Context) error {
	if errParam := c.QueryParam("error"); errParam != "" {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error":      "authorization was denied: " + errParam,
			"reauth_url": auth.ReauthPath,
		})
	}

	wantState, err := c.Cookie(stateCookie)
	if err != nil || wantState.Value == "" || c.QueryParam("state") != wantState.Value {
		return c.JSON(http.StatusBadRequest, map[string]string{
			"error":      "state mismatch, restart the connect flow",
			"reauth_url": auth.ReauthPath,
		})
	}

	code := c.QueryParam("code")
	if code == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "missing authorization code"})
	}

	ctx := c.Request().Context()
	tok, err := h.oauth.Exchange(ctx, code)
	if err != nil {
		log.Error().Err(err).Msg("oauth code exchange failed")
		return c.JSON(http.StatusBadGateway, map[string]string{"error": "token exchange with drchrono failed"})
	}

	remote, err := h.ehr.CurrentUser(ctx, tok.AccessToken)
	if err != nil {
		log.Error().Err(err).Msg("failed to identify drchrono user")
		return c.JSON(http.StatusBadGateway, map[string]string{"error": "could not identify the connected drchrono user"})
	}

	user, err := h.users.GetOrCreate(ctx, remote.Username)
	if err != nil {
		return err
	}

	var expiresAt *time.Time
	if !tok.Expiry.IsZero() {
		t := tok.Expiry
		expiresAt = &t
	}
	scope, _ := tok.Extra("scope").(string)
	if err := h.service.SaveFromOAuth(ctx, user.ID, tok.AccessToken, tok.RefreshToken, scope, expiresAt); err != nil {
		return err
	}

	ttl := time.Duration(h.cfg.SessionTTLMin) * time.Minute
	session, err := auth.IssueSession(h.cfg.SessionSecret, user.ID, ttl)
	if err != nil {
		return err
	}
	c.SetCookie(&http.Cookie{
		Name:     auth.SessionCookie,
		Value:    session,
		Path:     "/",
		MaxAge:   int(ttl.Seconds()),
		HttpOnly: true,
		Secure:   !h.cfg.IsDev(),
		SameSite: http.SameSiteLaxMode,
	})

	log.Info().Str("username", remote.Username).Stringer("user_id", user.ID).Msg("drchrono account connected")
	return c.Redirect(http.StatusFound, "/search")
}
