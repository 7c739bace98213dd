package api

import (
	"net/http"

	service "github.com/okian/matchscope/internal/app"
	"github.com/okian/matchscope/pkg/logger"
)

// MatchHandler serves the match overview.
type MatchHandler struct {
	deps Dependencies
	log  logger.Logger
}

// NewMatchHandler creates a new match handler.
func NewMatchHandler(deps Dependencies, log logger.Logger) *MatchHandler {
	return &MatchHandler{deps: deps, log: log}
}

// HandleOverview handles
// GET /api/competitions/{competitionID}/seasons/{seasonID}/matches/{matchID}/overview?from=&to=&scope=.
// An empty top passer is reported as null, not as an error.
func (h *MatchHandler) HandleOverview(w http.ResponseWriter, r *http.Request) {
	const op = "api.overview"
	var (
		sel service.Selection
		err error
	)
	if sel.CompetitionID, err = pathInt(r, "competitionID"); err != nil {
		writeServiceError(r.Context(), h.log, w, op, err)
		return
	}
	if sel.SeasonID, err = pathInt(r, "seasonID"); err != nil {
		writeServiceError(r.Context(), h.log, w, op, err)
		return
	}
	if sel.MatchID, err = pathInt(r, "matchID"); err != nil {
		writeServiceError(r.Context(), h.log, w, op, err)
		return
	}
	q := r.URL.Query()
	if sel.Window, err = ParseWindow(q.Get("from"), q.Get("to")); err != nil {
		writeServiceError(r.Context(), h.log, w, op, err)
		return
	}
	sel.Scope = q.Get("scope")

	out, err := h.deps.Overview(r.Context(), sel)
	if err != nil {
		writeServiceError(r.Context(), h.log, w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}
