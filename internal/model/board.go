package model

import "fmt"

type Color string

const (
	White Color = "white"
	Black Color = "black"
)

// Opponent returns the other side.
func (c Color) Opponent() Color {
	if c == White {
		return Black
	}
	return White
}

type PieceType string

func (p PieceType) getPieceNotation() string {
	switch p {
	case King:
		return "K"
	case Queen:
		return "Q"
	case Rook:
		return "R"
	case Bishop:
		return "B"
	case Knight:
		return "N"
	case Pawn:
		return "p"
	}
	return "-"
}

const (
	NoPiece PieceType = ""
	King    PieceType = "king"
	Queen   PieceType = "queen"
	Rook    PieceType = "rook"
	Bishop  PieceType = "bishop"
	Knight  PieceType = "knight"
	Pawn    PieceType = "pawn"
)

// Piece is the content of one board cell. The zero value is an empty cell.
type Piece struct {
	Type  PieceType `json:"type"`
	Color Color     `json:"color"`
}

var Empty = Piece{}

func (p Piece) IsEmpty() bool {
	return p.Type == NoPiece
}

// String renders the piece as a two character code such as "wK" or "bp"; "--" for empty.
func (p Piece) String() string {
	if p.IsEmpty() {
		return "--"
	}
	return fmt.Sprintf("%c%s", p.Color[0], p.Type.getPieceNotation())
}

// Square addresses a board cell. Row 0 is rank 8, row 7 is rank 1; column 0 is file a.
type Square struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// NoSquare marks the absence of an en-passant target.
var NoSquare = Square{Row: -1, Col: -1}

func (s Square) OnBoard() bool {
	return s.Row >= 0 && s.Row < 8 && s.Col >= 0 && s.Col < 8
}

func (s Square) offset(dRow, dCol int) Square {
	return Square{Row: s.Row + dRow, Col: s.Col + dCol}
}

func (s Square) getSquareNotation() string {
	return fmt.Sprintf("%c%d", s.Col+'a', 8-s.Row)
}

func (s Square) String() string {
	if !s.OnBoard() {
		return "-"
	}
	return s.getSquareNotation()
}

// ParseSquare converts a square name such as "e2" into a Square.
func ParseSquare(name string) (Square, error) {
	if len(name) != 2 {
		return NoSquare, fmt.Errorf("%w: %q", ErrInvalidSquare, name)
	}
	sq := Square{Row: int('8' - rune(name[1])), Col: int(rune(name[0]) - 'a')}
	if !sq.OnBoard() {
		return NoSquare, fmt.Errorf("%w: %q", ErrInvalidSquare, name)
	}
	return sq, nil
}

// Board is the 8x8 grid indexed as [row][col].
type Board [8][8]Piece

func (b *Board) at(sq Square) Piece {
	return b[sq.Row][sq.Col]
}

func (b *Board) set(sq Square, p Piece) {
	b[sq.Row][sq.Col] = p
}

var backRank = [8]PieceType{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}

func newBoard() Board {
	var board Board
	for col := 0; col < 8; col++ {
		board[0][col] = Piece{Type: backRank[col], Color: Black}
		board[1][col] = Piece{Type: Pawn, Color: Black}
		board[6][col] = Piece{Type: Pawn, Color: White}
		board[7][col] = Piece{Type: backRank[col], Color: White}
	}
	return board
}

// String draws the board one rank per line, rank 8 first.
func (b Board) String() string {
	out := ""
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			if col > 0 {
				out += " "
			}
			out += b[row][col].String()
		}
		out += "\n"
	}
	return out
}
