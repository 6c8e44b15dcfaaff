package model

import "strings"

// Difficulty selects the mine density of a new board
type Difficulty string

const (
	DifficultyEasy   Difficulty = "easy"
	DifficultyMedium Difficulty = "medium"
	DifficultyHard   Difficulty = "hard"
	DifficultyExpert Difficulty = "expert"
)

// DefaultDifficulty is used when a start request names none
const DefaultDifficulty = DifficultyMedium

// minePercent maps each difficulty to the percentage of cells holding a mine
var minePercent = map[Difficulty]int{
	DifficultyEasy:   10,
	DifficultyMedium: 15,
	DifficultyHard:   20,
	DifficultyExpert: 25,
}

// ParseDifficulty converts user input to a Difficulty.
// An empty string yields DefaultDifficulty.
func ParseDifficulty(s string) (Difficulty, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return DefaultDifficulty, nil
	}
	d := Difficulty(s)
	if !d.IsValid() {
		return "", ErrInvalidDifficulty
	}
	return d, nil
}

// IsValid returns true for the known difficulty levels
func (d Difficulty) IsValid() bool {
	_, ok := minePercent[d]
	return ok
}

// MineCount returns the number of mines for a width x height board.
// The result is always in [1, width*height).
func (d Difficulty) MineCount(width, height int) (int, error) {
	pct, ok := minePercent[d]
	if !ok {
		return 0, ErrInvalidDifficulty
	}
	if !ValidDimensions(width, height) {
		return 0, ErrInvalidDimensions
	}
	count := width * height * pct / 100
	if count < 1 {
		count = 1
	}
	return count, nil
}
