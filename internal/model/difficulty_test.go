package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDifficulty(t *testing.T) {
	tests := []struct {
		input    string
		expected Difficulty
	}{
		{"easy", DifficultyEasy},
		{"medium", DifficultyMedium},
		{"hard", DifficultyHard},
		{"expert", DifficultyExpert},
		{" Hard ", DifficultyHard},
		{"", DefaultDifficulty},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			d, err := ParseDifficulty(tt.input)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, d)
		})
	}
}

func TestParseDifficultyUnknown(t *testing.T) {
	_, err := ParseDifficulty("nightmare")
	assert.ErrorIs(t, err, ErrInvalidDifficulty)
}

func TestMineCount(t *testing.T) {
	tests := []struct {
		name       string
		difficulty Difficulty
		width      int
		height     int
		expected   int
	}{
		{"easy 10x10", DifficultyEasy, 10, 10, 10},
		{"medium 10x10", DifficultyMedium, 10, 10, 15},
		{"hard 10x10", DifficultyHard, 10, 10, 20},
		{"expert 10x10", DifficultyExpert, 10, 10, 25},
		{"easy 5x5 rounds down", DifficultyEasy, 5, 5, 2},
		{"medium 7x9 rounds down", DifficultyMedium, 7, 9, 9},
		{"expert 30x30", DifficultyExpert, 30, 30, 225},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			count, err := tt.difficulty.MineCount(tt.width, tt.height)
			require.NoError(t, err)
			assert.Equal(t, tt.expected, count)
		})
	}
}

func TestMineCountErrors(t *testing.T) {
	_, err := Difficulty("nope").MineCount(10, 10)
	assert.ErrorIs(t, err, ErrInvalidDifficulty)

	_, err = DifficultyEasy.MineCount(4, 10)
	assert.ErrorIs(t, err, ErrInvalidDimensions)
}

func TestBoardNeighbors(t *testing.T) {
	b := &Board{Width: 5, Height: 5}

	assert.Len(t, b.Neighbors(0, nil), 3)
	assert.Len(t, b.Neighbors(2, nil), 5)
	assert.Len(t, b.Neighbors(12, nil), 8)
	assert.Len(t, b.Neighbors(24, nil), 3)
	assert.ElementsMatch(t, []int{1, 5, 6}, b.Neighbors(0, nil))
}

func TestBoardState(t *testing.T) {
	win, loss := true, false

	assert.Equal(t, GameStateActive, (&Board{}).State())
	assert.Equal(t, GameStateWon, (&Board{GameOver: true, Win: &win}).State())
	assert.Equal(t, GameStateLost, (&Board{GameOver: true, Win: &loss}).State())
	assert.True(t, GameStateWon.IsTerminal())
	assert.False(t, GameStateActive.IsTerminal())
}
