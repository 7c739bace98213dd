// Package types contains read shapes shared by the aggregation, API and CLI layers.
package types

// PasserCount names the player with the most passes and how many they made.
type PasserCount struct {
	Player string `json:"player"`
	Passes int    `json:"passes"`
}

// TeamShots pairs a team's goals with its shots.
type TeamShots struct {
	Team  string `json:"team"`
	Goals int    `json:"goals"`
	Shots int    `json:"shots"`
}

// NotableEvent is one distinct (player, type, team) triple.
type NotableEvent struct {
	Player string `json:"player"`
	Type   string `json:"type"`
	Team   string `json:"team"`
}
