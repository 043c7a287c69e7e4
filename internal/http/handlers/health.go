package handlers

import (
	"net/http"
)

// Health reports liveness and the timezone deadlines are computed in.
func (a *App) Health(w http.ResponseWriter, _ *http.Request) {
	a.json(w, http.StatusOK, map[string]string{
		"status":   "ok",
		"timezone": a.Engine.Options().Location.String(),
	})
}
