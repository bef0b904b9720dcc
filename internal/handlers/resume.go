package handlers

import (
	"log/slog"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/clarawendel/artisan-market/internal/publish"
	"github.com/clarawendel/artisan-market/internal/session"
)

type ResumeHandler struct {
	orchestrator *publish.Orchestrator
}

func NewResumeHandler(orchestrator *publish.Orchestrator) *ResumeHandler {
	return &ResumeHandler{orchestrator: orchestrator}
}

// HandleResume continues a publish flow after an OAuth round-trip. It
// reads nothing from the URL; the flow state lives server-side, so a
// reload of the consuming page is a harmless no-op.
func (h *ResumeHandler) HandleResume(c echo.Context) error {
	sessionID := session.ID(c)

	result, err := h.orchestrator.Resume(c.Request().Context(), sessionID)
	if err != nil {
		switch publish.KindOf(err) {
		case publish.KindPartialFailure, publish.KindTotalFailure:
			return c.JSON(http.StatusOK, flowResponse(result, err))
		default:
			slog.Error("publish resume failed", "error", err)
			return echo.NewHTTPError(http.StatusInternalServerError, "Failed to resume publish flow")
		}
	}

	if result.Status == publish.StatusAuthorizationRequired && !wantsJSON(c) {
		return c.Redirect(http.StatusSeeOther, result.RedirectURL)
	}
	return c.JSON(http.StatusOK, flowResponse(result, nil))
}
