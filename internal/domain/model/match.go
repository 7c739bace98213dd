package model

// Competition is a tournament or league offered by the provider.
type Competition struct {
	ID      int    `json:"id"`
	Name    string `json:"name"`
	Country string `json:"country,omitempty"`
	Gender  string `json:"gender,omitempty"`
}

// Season is one edition of a competition.
type Season struct {
	ID            int    `json:"id"`
	Name          string `json:"name"`
	CompetitionID int    `json:"competition_id"`
}

// Match is a single fixture inside a season.
type Match struct {
	ID            int    `json:"id"`
	HomeTeam      string `json:"home_team"`
	AwayTeam      string `json:"away_team"`
	CompetitionID int    `json:"competition_id"`
	SeasonID      int    `json:"season_id"`
	Date          string `json:"match_date,omitempty"`
	HomeScore     int    `json:"home_score"`
	AwayScore     int    `json:"away_score"`
}

// Label is the short form used by selectors and tables.
func (m Match) Label() string {
	return m.HomeTeam + " x " + m.AwayTeam
}
