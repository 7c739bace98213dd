package site

import (
	"strconv"

	service "github.com/okian/matchscope/internal/app"
	"github.com/okian/matchscope/internal/domain/model"
)

//go:generate go run github.com/a-h/templ/cmd/templ@v0.3.977 generate -f dashboard.templ

// scopeOptions are the choices of the scope selector.
var scopeOptions = []struct{ value, label string }{ //nolint:gochecknoglobals
	{service.ScopeMatch, "Partida selecionada"},
	{service.ScopeSeason, "Temporada inteira"},
}

// competitionNames lists each competition name once, in catalog order.
func competitionNames(cs []model.Competition) []string {
	names := make([]string, 0, len(cs))
	seen := make(map[string]bool, len(cs))
	for _, c := range cs {
		if seen[c.Name] {
			continue
		}
		seen[c.Name] = true
		names = append(names, c.Name)
	}
	return names
}

func shotTone(n int) string {
	if n > model.ShotTileThreshold {
		return "inverse"
	}
	return "normal"
}

func passTone(n int) string {
	if n > model.PassTileThreshold {
		return "normal"
	}
	return "inverse"
}

func ratioText(s model.PlayerMatchStats) string {
	r, err := s.Ratio()
	if err != nil {
		return "—"
	}
	return strconv.FormatFloat(r, 'f', 2, 64)
}
