package game

import (
	"errors"
	"fmt"
	"strings"
)

// Side length of the board, only 4x4 boards are supported
const Size = 4

// Tile value, which is considered a win (the game can continue after reaching it)
const WinningTile = 2048

// Probability of spawning a '4' tile instead of a '2'
const DefaultFourProbability = 0.1

var (
	ErrInvalidDirection = errors.New("invalid direction")
	ErrInvalidNotation  = errors.New("invalid board notation")
	ErrInvalidBoard     = errors.New("invalid board")
)

type Direction uint8

const (
	Left Direction = iota
	Right
	Up
	Down
)

// Number of valid directions
const DirectionCount = 4

// All directions in the canonical order, every 'first in order' rule
// (like tie-breaking in move selection) refers to this order
var Directions = [DirectionCount]Direction{Left, Right, Up, Down}

var directionNames = [DirectionCount]string{"left", "right", "up", "down"}

func (d Direction) Valid() bool {
	return d < DirectionCount
}

func (d Direction) String() string {
	if !d.Valid() {
		return fmt.Sprintf("Direction(%d)", uint8(d))
	}
	return directionNames[d]
}

// Parse direction from it's name (case insensitive), accepts also
// the first letter only: 'l', 'r', 'u', 'd'
func ParseDirection(s string) (Direction, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range directionNames {
		if s == name || (len(s) == 1 && s[0] == name[0]) {
			return Direction(i), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrInvalidDirection, s)
}
