package site

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"

	"github.com/okian/matchscope/internal/adapters/http/api"
	service "github.com/okian/matchscope/internal/app"
	"github.com/okian/matchscope/internal/domain/aggregate"
	"github.com/okian/matchscope/internal/domain/model"
	"github.com/okian/matchscope/pkg/logger"
)

// PageData is everything the dashboard renders for one selection.
type PageData struct {
	Competitions []model.Competition
	Seasons      []model.Season
	Matches      []model.Match

	CompetitionID int
	SeasonID      int
	MatchID       int
	Scope         string
	Window        aggregate.Window

	Overview *service.Overview

	Player string
	Detail *service.PlayerDetail

	Error string
}

// query builds the shared query string of chart and CSV links. It is empty
// while the window is not engaged.
func (d PageData) query() string {
	if d.Window.IsFull() {
		return ""
	}
	v := url.Values{}
	v.Set("from", strconv.Itoa(d.Window.Start))
	v.Set("to", strconv.Itoa(d.Window.End))
	return v.Encode()
}

func (d PageData) playerPath(prefix, suffix string) string {
	path := prefix + "/competitions/" + strconv.Itoa(d.CompetitionID) + "/seasons/" + strconv.Itoa(d.SeasonID) +
		"/matches/" + strconv.Itoa(d.MatchID) + "/players/" + url.PathEscape(d.Player) + suffix
	if q := d.query(); q != "" {
		return path + "?" + q
	}
	return path
}

// load resolves the selection top-down: a missing or stale id falls back to
// the first entry of its list, the way a select box defaults.
func (h *DashboardHandler) load(ctx context.Context, q url.Values) (PageData, int) {
	data := PageData{Scope: q.Get("scope"), Window: aggregate.FullWindow()}
	if data.Scope == "" {
		data.Scope = service.ScopeMatch
	}
	fail := func(err error) (PageData, int) {
		status, code := api.StatusFor(err)
		h.log.Warn(ctx, "dashboard selection failed", logger.String("code", code), logger.Error(err))
		data.Error = err.Error()
		return data, status
	}

	window, err := api.ParseWindow(q.Get("from"), q.Get("to"))
	if err != nil {
		return fail(err)
	}
	if window != nil {
		data.Window = *window
	}

	if data.Competitions, err = h.deps.Competitions(ctx); err != nil {
		return fail(err)
	}
	if len(data.Competitions) == 0 {
		return data, http.StatusOK
	}
	data.CompetitionID = pick(queryInt(q, "competition"), len(data.Competitions), func(i int) int { return data.Competitions[i].ID })

	if data.Seasons, err = h.deps.Seasons(ctx, data.CompetitionID); err != nil {
		return fail(err)
	}
	if len(data.Seasons) == 0 {
		return data, http.StatusOK
	}
	data.SeasonID = pick(queryInt(q, "season"), len(data.Seasons), func(i int) int { return data.Seasons[i].ID })

	if data.Matches, err = h.deps.Matches(ctx, data.CompetitionID, data.SeasonID); err != nil {
		return fail(err)
	}
	if len(data.Matches) == 0 {
		return data, http.StatusOK
	}
	data.MatchID = pick(queryInt(q, "match"), len(data.Matches), func(i int) int { return data.Matches[i].ID })

	sel := service.Selection{
		CompetitionID: data.CompetitionID,
		SeasonID:      data.SeasonID,
		MatchID:       data.MatchID,
		Window:        window,
		Scope:         data.Scope,
	}
	if data.Overview, err = h.deps.Overview(ctx, sel); err != nil {
		return fail(err)
	}

	data.Player = strings.TrimSpace(q.Get("player"))
	if data.Player == "" {
		return data, http.StatusOK
	}
	sel.Player = data.Player
	if data.Detail, err = h.deps.PlayerDetail(ctx, sel); err != nil {
		return fail(err)
	}
	return data, http.StatusOK
}

// pick returns want when one of the n ids matches it, else the first id.
func pick(want, n int, id func(int) int) int {
	for i := 0; i < n; i++ {
		if id(i) == want {
			return want
		}
	}
	return id(0)
}

func queryInt(q url.Values, key string) int {
	n, err := strconv.Atoi(q.Get(key))
	if err != nil {
		return -1
	}
	return n
}
