package game

import (
	"fmt"
	"strconv"
	"strings"
)

// Text notation of the board, rows are separated by '/', cells by ',',
// optionally followed by a space and the score. For example:
//
//	2,2,0,0/0,0,0,0/0,4,0,0/0,0,0,2 12
//
// is the board:
//
//	2 2 . .
//	. . . .
//	. 4 . .
//	. . . 2
//
// with score 12.
func (b Board) Notation() string {
	builder := strings.Builder{}
	for r := range Size {
		for c := range Size {
			if c > 0 {
				builder.WriteByte(',')
			}
			builder.WriteString(strconv.Itoa(b[r][c]))
		}
		if r != Size-1 {
			builder.WriteByte('/')
		}
	}
	return builder.String()
}

// Parse the board (and optional score) from the notation, see Board.Notation
func FromNotation(notation string) (Board, int, error) {
	var board Board
	fields := strings.Fields(notation)
	if len(fields) == 0 || len(fields) > 2 {
		return board, 0, fmt.Errorf("%w: expected '<rows> [score]', got %q", ErrInvalidNotation, notation)
	}

	rows := strings.Split(fields[0], "/")
	if len(rows) != Size {
		return board, 0, fmt.Errorf("%w: expected %d rows, got %d", ErrInvalidNotation, Size, len(rows))
	}

	for r, row := range rows {
		cells := strings.Split(row, ",")
		if len(cells) != Size {
			return board, 0, fmt.Errorf("%w: row %d has %d cells", ErrInvalidNotation, r+1, len(cells))
		}
		for c, cell := range cells {
			v, err := strconv.Atoi(cell)
			if err != nil {
				return board, 0, fmt.Errorf("%w: row %d: %w", ErrInvalidNotation, r+1, err)
			}
			board[r][c] = v
		}
	}

	if !board.Valid() {
		return board, 0, fmt.Errorf("%w: %w: tiles must be 0 or powers of two", ErrInvalidNotation, ErrInvalidBoard)
	}

	score := 0
	if len(fields) == 2 {
		var err error
		if score, err = strconv.Atoi(fields[1]); err != nil || score < 0 {
			return board, 0, fmt.Errorf("%w: bad score %q", ErrInvalidNotation, fields[1])
		}
	}

	return board, score, nil
}
