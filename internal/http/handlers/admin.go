package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
)

// SchedulerTick handles POST /v1/admin/scheduler/tick. Step failures are
// reported in the body next to whatever the other steps achieved.
func (a *App) SchedulerTick(w http.ResponseWriter, r *http.Request) {
	report, err := a.Engine.Tick(r.Context())
	body := map[string]any{
		"closed":        report.Closed,
		"scanned":       report.Open.Scanned,
		"opened":        report.Open.Opened,
		"skipped":       report.Open.Skipped,
		"failed":        report.Open.Failed,
		"purged_tokens": report.PurgedTokens,
	}
	status := http.StatusOK
	if err != nil {
		a.Logger.Error().Err(err).Msg("scheduler tick reported errors")
		body["error"] = map[string]string{"code": "internal", "message": "one or more scheduler steps failed"}
		status = http.StatusInternalServerError
	}
	a.json(w, status, body)
}

// CancelEvent handles POST /v1/admin/events/{eventID}/cancel.
func (a *App) CancelEvent(w http.ResponseWriter, r *http.Request) {
	ev, err := a.Engine.Cancel(r.Context(), chi.URLParam(r, "eventID"))
	if err != nil {
		a.fail(w, r, err)
		return
	}
	a.json(w, http.StatusOK, newEventView(*ev))
}
