package entity

// GameRecord is the durable shape of a game used for seeding demo data.
// Live play never reads it: active sessions exist only in memory.
type GameRecord struct {
	ID       string `json:"id"`
	Board    Board  `json:"board"`
	NextTurn Mark   `json:"next_turn,omitempty"`
	Status   string `json:"status"`
	PlayerX  string `json:"player_x"`
	PlayerO  string `json:"player_o"`
}
