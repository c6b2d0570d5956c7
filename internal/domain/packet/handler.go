package packet

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/chartpacket/chartpacket/internal/platform/auth"
)

// WarningsHeader carries the skipped-section warnings alongside the PDF
// body, which has no room for them.
const WarningsHeader = "X-Packet-Warnings"

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) Register(g *echo.Group) {
	g.POST("/patients/:id/packet", h.Generate)
}

type generateRequest struct {
	AppointmentIDs []int64 `json:"appointment_ids"`
}

// Generate handles POST /api/v1/patients/:id/packet and answers with the
// merged PDF as a file download.
func (h *Handler) Generate(c echo.Context) error {
	patientID, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid patient id"})
	}

	var req generateRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid request body"})
	}
	if len(req.AppointmentIDs) == 0 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "no appointments were selected"})
	}

	result, err := h.service.Build(c.Request().Context(), auth.EHRToken(c), patientID, req.AppointmentIDs)
	if err != nil {
		var ae *auth.Error
		if errors.As(err, &ae) {
			return c.JSON(http.StatusUnauthorized, map[string]string{
				"error":      ae.Reason,
				"reauth_url": auth.ReauthPath,
			})
		}
		return echo.NewHTTPError(http.StatusBadGateway, "packet generation failed")
	}

	if len(result.Warnings) > 0 {
		c.Response().Header().Set(WarningsHeader, strings.Join(result.Warnings, "; "))
	}
	c.Response().Header().Set(echo.HeaderContentDisposition,
		fmt.Sprintf("attachment; filename=%q", result.Filename))
	return c.Blob(http.StatusOK, "application/pdf", result.PDF)
}
