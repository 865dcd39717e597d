package entity

const (
	StatusWaiting  = "waiting"
	StatusPlaying  = "playing"
	StatusFinished = "finished"
)

// Participant is one of the two player slots of a session. The connection
// reference is opaque to the domain: the session never closes or owns it.
type Participant struct {
	ConnID   string `json:"-"`
	Username string `json:"username"`
}

// Session is a live or completed two-player game. Sessions are created
// fully paired by the matchmaker and stay addressable after a terminal
// result until a participant leaves or disconnects.
type Session struct {
	ID       string                `json:"id"`
	Board    Board                 `json:"board"`
	NextTurn Mark                  `json:"next_turn,omitempty"`
	Status   string                `json:"status"`
	Players  map[Mark]*Participant `json:"players,omitempty"`
}

// NewSession builds a playing session for a freshly paired couple, X to move.
func NewSession(playerX, playerO *Participant) *Session {
	return &Session{
		Board:    EmptyBoard,
		NextTurn: MarkX,
		Status:   StatusPlaying,
		Players: map[Mark]*Participant{
			MarkX: playerX,
			MarkO: playerO,
		},
	}
}

func (that *Session) IsFinished() bool {
	return that.Status == StatusFinished
}

func (that *Session) IsPlaying() bool {
	return that.Status == StatusPlaying
}

// Opponent returns the participant slot not owned by the given connection.
func (that *Session) Opponent(connID string) *Participant {
	for _, player := range that.Players {
		if player != nil && player.ConnID != connID {
			return player
		}
	}
	return nil
}
