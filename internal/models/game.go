package models

// Game is one catalog entry. Route is the client-side path the game is
// served under.
type Game struct {
	ID          int    `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	ImageURL    string `json:"image_url"`
	AgeRange    string `json:"age_range"`
	GameType    string `json:"game_type"`
	Route       string `json:"route"`
	Featured    bool   `json:"featured"`
}

// NewGame carries the fields for a catalog insert.
type NewGame struct {
	Title       string
	Description string
	ImageURL    string
	AgeRange    string
	GameType    string
	Route       string
	Featured    bool
}
