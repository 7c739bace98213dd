package api

import (
	"net/http"

	"github.com/okian/matchscope/pkg/logger"
)

// CatalogHandler serves the cascading selector lists.
type CatalogHandler struct {
	deps Dependencies
	log  logger.Logger
}

// NewCatalogHandler creates a new catalog handler.
func NewCatalogHandler(deps Dependencies, log logger.Logger) *CatalogHandler {
	return &CatalogHandler{deps: deps, log: log}
}

// HandleCompetitions handles GET /api/competitions.
func (h *CatalogHandler) HandleCompetitions(w http.ResponseWriter, r *http.Request) {
	const op = "api.competitions"
	out, err := h.deps.Competitions(r.Context())
	if err != nil {
		writeServiceError(r.Context(), h.log, w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// HandleSeasons handles GET /api/competitions/{competitionID}/seasons.
func (h *CatalogHandler) HandleSeasons(w http.ResponseWriter, r *http.Request) {
	const op = "api.seasons"
	competitionID, err := pathInt(r, "competitionID")
	if err != nil {
		writeServiceError(r.Context(), h.log, w, op, err)
		return
	}
	out, err := h.deps.Seasons(r.Context(), competitionID)
	if err != nil {
		writeServiceError(r.Context(), h.log, w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// HandleMatches handles GET /api/competitions/{competitionID}/seasons/{seasonID}/matches.
func (h *CatalogHandler) HandleMatches(w http.ResponseWriter, r *http.Request) {
	const op = "api.matches"
	competitionID, err := pathInt(r, "competitionID")
	if err != nil {
		writeServiceError(r.Context(), h.log, w, op, err)
		return
	}
	seasonID, err := pathInt(r, "seasonID")
	if err != nil {
		writeServiceError(r.Context(), h.log, w, op, err)
		return
	}
	out, err := h.deps.Matches(r.Context(), competitionID, seasonID)
	if err != nil {
		writeServiceError(r.Context(), h.log, w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}
