package turn

// State is the scheduler's position in the turn cycle.
type State int

const (
	// StateIdle - nothing has started, or no team could act.
	StateIdle State = iota
	// StateTeamActive - a team's roster is readied but no character holds the turn.
	StateTeamActive
	// StateCharacterActive - one character is deciding or acting.
	StateCharacterActive
	// StateGameOver - one side has been wiped out.
	StateGameOver
)

// String returns a human-readable state name.
func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateTeamActive:
		return "team_active"
	case StateCharacterActive:
		return "character_active"
	case StateGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// Outcome is how a game ended.
type Outcome int

const (
	// OutcomeNone - the game is still running.
	OutcomeNone Outcome = iota
	// OutcomeVictory - no characters remain on any team but the human one.
	OutcomeVictory
	// OutcomeDefeat - no characters remain on the human team.
	OutcomeDefeat
)

// String returns a human-readable outcome name.
func (o Outcome) String() string {
	switch o {
	case OutcomeNone:
		return "none"
	case OutcomeVictory:
		return "victory"
	case OutcomeDefeat:
		return "defeat"
	default:
		return "unknown"
	}
}

// Message returns the line shown to the player when the game ends.
func (o Outcome) Message() string {
	switch o {
	case OutcomeVictory:
		return "Victory! All enemies defeated!"
	case OutcomeDefeat:
		return "Your party has been defeated!"
	default:
		return ""
	}
}
