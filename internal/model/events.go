package model

import "time"

// EventType identifies the type of event
type EventType string

const (
	EventGameStarted  EventType = "game_started"
	EventCellRevealed EventType = "cell_revealed"
	EventCellFlagged  EventType = "cell_flagged"
	EventTimerTicked  EventType = "timer_ticked"
	EventGameWon      EventType = "game_won"
	EventGameLost     EventType = "game_lost"
)

// Event describes a change to the current game
type Event struct {
	Type      EventType
	Timestamp time.Time
	GameID    GameID
	Position  *Position // Target cell for reveal and flag events
	Snapshot  Snapshot  // Board state after the change
}
