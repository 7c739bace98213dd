package statsbomb

import (
	"github.com/google/uuid"
	"github.com/okian/matchscope/internal/domain/model"
)

// Rows of the open-data JSON files. Only the fields we read are declared.

type competitionRow struct {
	CompetitionID     int    `json:"competition_id"`
	SeasonID          int    `json:"season_id"`
	CountryName       string `json:"country_name"`
	CompetitionName   string `json:"competition_name"`
	CompetitionGender string `json:"competition_gender"`
	SeasonName        string `json:"season_name"`
}

type matchRow struct {
	MatchID   int    `json:"match_id"`
	MatchDate string `json:"match_date"`
	HomeScore *int   `json:"home_score"`
	AwayScore *int   `json:"away_score"`
	HomeTeam  struct {
		Name string `json:"home_team_name"`
	} `json:"home_team"`
	AwayTeam struct {
		Name string `json:"away_team_name"`
	} `json:"away_team"`
	Competition struct {
		ID int `json:"competition_id"`
	} `json:"competition"`
	Season struct {
		ID int `json:"season_id"`
	} `json:"season"`
}

type named struct {
	Name string `json:"name"`
}

type eventRow struct {
	ID       string    `json:"id"`
	Index    int       `json:"index"`
	Period   int       `json:"period"`
	Minute   int       `json:"minute"`
	Second   int       `json:"second"`
	Type     *named    `json:"type"`
	Team     *named    `json:"team"`
	Player   *named    `json:"player"`
	Location []float64 `json:"location"`
	Pass     *struct {
		EndLocation []float64 `json:"end_location"`
		Outcome     *named    `json:"outcome"`
	} `json:"pass"`
	Shot *struct {
		Outcome *named `json:"outcome"`
	} `json:"shot"`
}

func (r competitionRow) competition() model.Competition {
	return model.Competition{
		ID:      r.CompetitionID,
		Name:    r.CompetitionName,
		Country: r.CountryName,
		Gender:  r.CompetitionGender,
	}
}

func (r competitionRow) season() model.Season {
	return model.Season{ID: r.SeasonID, Name: r.SeasonName, CompetitionID: r.CompetitionID}
}

func (r matchRow) match() model.Match {
	m := model.Match{
		ID:            r.MatchID,
		HomeTeam:      r.HomeTeam.Name,
		AwayTeam:      r.AwayTeam.Name,
		CompetitionID: r.Competition.ID,
		SeasonID:      r.Season.ID,
		Date:          r.MatchDate,
	}
	if r.HomeScore != nil {
		m.HomeScore = *r.HomeScore
	}
	if r.AwayScore != nil {
		m.AwayScore = *r.AwayScore
	}
	return m
}

func (r eventRow) event(matchID int) model.Event {
	e := model.Event{
		Index:    r.Index,
		MatchID:  matchID,
		Period:   r.Period,
		Minute:   r.Minute,
		Second:   r.Second,
		Type:     name(r.Type),
		Team:     name(r.Team),
		Player:   name(r.Player),
		Location: point(r.Location),
	}
	if id, err := uuid.Parse(r.ID); err == nil {
		e.ID = id
	}
	if r.Pass != nil {
		e.PassEndLocation = point(r.Pass.EndLocation)
		e.PassOutcome = name(r.Pass.Outcome)
	}
	if r.Shot != nil {
		e.ShotOutcome = name(r.Shot.Outcome)
	}
	return e
}

func name(n *named) string {
	if n == nil {
		return ""
	}
	return n.Name
}

// point keeps x and y; shot end locations carry a third height coordinate.
func point(v []float64) *model.Point {
	if len(v) < 2 {
		return nil
	}
	return &model.Point{X: v[0], Y: v[1]}
}
