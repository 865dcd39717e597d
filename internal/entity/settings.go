package entity

const (
	ModeLight = "light"
	ModeDark  = "dark"
)

// UserSettings are per-username display preferences. They are independent
// of game state and may be saved or fetched in any connection state.
type UserSettings struct {
	Username string `json:"username"`
	Mode     string `json:"mode,omitempty"`
	Palette  string `json:"palette,omitempty"`
}
