package appointments

import (
	"errors"
	"net/http"
	"strconv"

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
	g.GET("/patients/:id/appointments/historical", h.Historical)
}

// Historical handles GET /api/v1/patients/:id/appointments/historical.
func (h *Handler) Historical(c echo.Context) error {
	patientID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid patient id"})
	}

	appts, err := h.service.Historical(c.Request().Context(), auth.EHRToken(c), patientID)
	if err != nil {
		var ae *auth.Error
		if errors.As(err, &ae) {
			return c.JSON(http.StatusUnauthorized, map[string]string{
				"error":      ae.Reason,
				"reauth_url": auth.ReauthPath,
			})
		}
		return echo.NewHTTPError(http.StatusBadGateway, "failed to load appointments")
	}
	return c.JSON(http.StatusOK, map[string]interface{}{"appointments": appts})
}
