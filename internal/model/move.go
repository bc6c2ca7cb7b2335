package model

import (
	"fmt"
	"strings"
)

// MoveFlag marks the special moves the board cannot infer on its own.
type MoveFlag uint8

const (
	FlagEnPassant MoveFlag = 1 << iota
	FlagCastle
)

// Move is a single ply. It is built from the board as it stands before the move
// and never changes afterwards.
type Move struct {
	From          Square `json:"from"`
	To            Square `json:"to"`
	PieceMoved    Piece  `json:"pieceMoved"`
	PieceCaptured Piece  `json:"pieceCaptured"`
	IsPromotion   bool   `json:"isPromotion"`
	IsEnPassant   bool   `json:"isEnPassant"`
	IsCastle      bool   `json:"isCastle"`
}

// NewMove reads the moved and captured pieces off board. A pawn reaching the far
// rank is flagged as a promotion. An en-passant capture records the enemy pawn as
// captured because the destination square itself is empty.
func NewMove(from, to Square, board *Board, flags MoveFlag) Move {
	m := Move{
		From:          from,
		To:            to,
		PieceMoved:    board.at(from),
		PieceCaptured: board.at(to),
		IsEnPassant:   flags&FlagEnPassant != 0,
		IsCastle:      flags&FlagCastle != 0,
	}
	if m.PieceMoved.Type == Pawn {
		m.IsPromotion = (m.PieceMoved.Color == White && to.Row == 0) ||
			(m.PieceMoved.Color == Black && to.Row == 7)
	}
	if m.IsEnPassant {
		m.PieceCaptured = Piece{Type: Pawn, Color: m.PieceMoved.Color.Opponent()}
	}
	return m
}

// ID packs origin and destination into one integer. Two moves between the same
// squares share an ID.
func (m Move) ID() int {
	return m.From.Row*1000 + m.From.Col*100 + m.To.Row*10 + m.To.Col
}

func (m Move) Equal(other Move) bool {
	return m.ID() == other.ID()
}

// Algebraic renders the move as origin and destination squares, e.g. "e2e4".
func (m Move) Algebraic() string {
	return m.From.getSquareNotation() + m.To.getSquareNotation()
}

func (m Move) String() string {
	return m.Algebraic()
}

func (m Move) isDoublePawnPush() bool {
	return m.PieceMoved.Type == Pawn && abs(m.To.Row-m.From.Row) == 2
}

// FindMove returns the move in moves whose notation matches. A trailing promotion
// letter is accepted and ignored since promotion is always to a queen.
func FindMove(moves []Move, notation string) (Move, error) {
	notation = strings.ToLower(strings.TrimSpace(notation))
	if len(notation) == 5 {
		notation = notation[:4]
	}
	if len(notation) != 4 {
		return Move{}, fmt.Errorf("%w: %q", ErrIllegalMove, notation)
	}
	from, err := ParseSquare(notation[:2])
	if err != nil {
		return Move{}, err
	}
	to, err := ParseSquare(notation[2:])
	if err != nil {
		return Move{}, err
	}
	want := Move{From: from, To: to}
	for _, m := range moves {
		if m.Equal(want) {
			return m, nil
		}
	}
	return Move{}, fmt.Errorf("%w: %s", ErrIllegalMove, notation)
}

func abs(x int) int {
	if x < 0 {
		return -x
	}
	return x
}
