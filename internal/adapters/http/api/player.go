package api

import (
	"context"
	"mime"
	"net/http"
	"strconv"

	"github.com/okian/matchscope/internal/adapters/charts"
	"github.com/okian/matchscope/internal/adapters/export"
	service "github.com/okian/matchscope/internal/app"
	"github.com/okian/matchscope/pkg/logger"
)

// PlayerHandler serves the per-player detail, CSV downloads and pitch maps.
type PlayerHandler struct {
	deps Dependencies
	log  logger.Logger
}

// NewPlayerHandler creates a new player handler.
func NewPlayerHandler(deps Dependencies, log logger.Logger) *PlayerHandler {
	return &PlayerHandler{deps: deps, log: log}
}

// HandleDetail handles GET /api/competitions/{competitionID}/seasons/{seasonID}/matches/{matchID}/players/{player}?from=&to=.
func (h *PlayerHandler) HandleDetail(w http.ResponseWriter, r *http.Request) {
	const op = "api.player"
	sel, err := playerSelection(r)
	if err != nil {
		writeServiceError(r.Context(), h.log, w, op, err)
		return
	}
	out, err := h.deps.PlayerDetail(r.Context(), sel)
	if err != nil {
		writeServiceError(r.Context(), h.log, w, op, err)
		return
	}
	writeJSON(w, http.StatusOK, out)
}

// HandleCSV returns the download handler for one export kind.
func (h *PlayerHandler) HandleCSV(kind export.Kind) http.HandlerFunc {
	op := "api." + string(kind) + "_csv"
	return func(w http.ResponseWriter, r *http.Request) {
		sel, err := playerSelection(r)
		if err != nil {
			writeServiceError(r.Context(), h.log, w, op, err)
			return
		}
		f, err := h.deps.ExportCSV(r.Context(), sel, kind)
		if err != nil {
			writeServiceError(r.Context(), h.log, w, op, err)
			return
		}
		w.Header().Set("Content-Type", f.ContentType)
		w.Header().Set("Content-Disposition", mime.FormatMediaType("attachment", map[string]string{"filename": f.Name}))
		w.Header().Set("Content-Length", strconv.Itoa(len(f.Data)))
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write(f.Data)
	}
}

// HandlePassMap handles GET /charts/competitions/{competitionID}/seasons/{seasonID}/matches/{matchID}/players/{player}/passes.
func (h *PlayerHandler) HandlePassMap(w http.ResponseWriter, r *http.Request) {
	h.serveChart(w, r, "api.pass_map", h.deps.PassMap)
}

// HandleShotMap handles GET /charts/competitions/{competitionID}/seasons/{seasonID}/matches/{matchID}/players/{player}/shots.
func (h *PlayerHandler) HandleShotMap(w http.ResponseWriter, r *http.Request) {
	h.serveChart(w, r, "api.shot_map", h.deps.ShotMap)
}

func (h *PlayerHandler) serveChart(w http.ResponseWriter, r *http.Request, op string,
	draw func(context.Context, service.Selection) (*charts.Map, error),
) {
	sel, err := playerSelection(r)
	if err != nil {
		writeServiceError(r.Context(), h.log, w, op, err)
		return
	}
	m, err := draw(r.Context(), sel)
	if err != nil {
		writeServiceError(r.Context(), h.log, w, op, err)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("X-Skipped-Events", strconv.Itoa(m.Skipped))
	w.WriteHeader(http.StatusOK)
	if err := m.Render(w); err != nil {
		h.log.Error(r.Context(), "chart render failed", logger.String("op", op), logger.Error(err))
	}
}
