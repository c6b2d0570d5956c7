package search

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/chartpacket/chartpacket/internal/platform/auth"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Register(g *echo.Group) {
	g.POST("/patients/search", h.Search)
}

// Search handles POST /api/v1/patients/search.
func (h *Handler) Search(c echo.Context) error {
	var filters Filters
	if err := c.Bind(&filters); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}

	result, err := h.service.Patients(c.Request().Context(), auth.EHRToken(c), filters)
	if err != nil {
		var ve *ValidationError
		if errors.As(err, &ve) {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": ve.Error()})
		}
		var ae *auth.Error
		if errors.As(err, &ae) {
			return c.JSON(http.StatusUnauthorized, map[string]string{
				"error":      ae.Reason,
				"reauth_url": auth.ReauthPath,
			})
		}
		return echo.NewHTTPError(http.StatusBadGateway, "patient search failed")
	}
	return c.JSON(http.StatusOK, result)
}
