package model

import (
	"testing"
)

var pieceLetters = map[byte]Piece{
	'P': {Type: Pawn, Color: White}, 'N': {Type: Knight, Color: White}, 'B': {Type: Bishop, Color: White},
	'R': {Type: Rook, Color: White}, 'Q': {Type: Queen, Color: White}, 'K': {Type: King, Color: White},
	'p': {Type: Pawn, Color: Black}, 'n': {Type: Knight, Color: Black}, 'b': {Type: Bishop, Color: Black},
	'r': {Type: Rook, Color: Black}, 'q': {Type: Queen, Color: Black}, 'k': {Type: King, Color: Black},
}

// boardFromRows builds a board from eight strings, rank 8 first, '.' for empty.
func boardFromRows(t *testing.T, rows ...string) Board {
	t.Helper()
	if len(rows) != 8 {
		t.Fatalf("need 8 rows, got %d", len(rows))
	}
	var board Board
	for row, line := range rows {
		if len(line) != 8 {
			t.Fatalf("row %d: need 8 columns, got %q", row, line)
		}
		for col := 0; col < 8; col++ {
			if line[col] == '.' {
				continue
			}
			p, ok := pieceLetters[line[col]]
			if !ok {
				t.Fatalf("row %d: unknown piece %q", row, line[col])
			}
			board[row][col] = p
		}
	}
	return board
}

func gameFromRows(t *testing.T, toMove Color, rights CastleRights, rows ...string) *GameState {
	t.Helper()
	g, err := NewGameFromBoard(boardFromRows(t, rows...), toMove, rights, NoSquare)
	if err != nil {
		t.Fatalf("NewGameFromBoard: %v", err)
	}
	return g
}

// play applies each move in notation, drawing it from the current legal moves.
func play(t *testing.T, g *GameState, notations ...string) {
	t.Helper()
	for _, n := range notations {
		m, err := FindMove(g.LegalMoves(), n)
		if err != nil {
			t.Fatalf("play %s: %v\n%s", n, err, g.board)
		}
		g.Apply(m)
	}
}

func notations(moves []Move) map[string]bool {
	out := make(map[string]bool, len(moves))
	for _, m := range moves {
		out[m.Algebraic()] = true
	}
	return out
}

func mustSquare(t *testing.T, name string) Square {
	t.Helper()
	sq, err := ParseSquare(name)
	if err != nil {
		t.Fatal(err)
	}
	return sq
}

// snapshot is everything a move and its undo must leave untouched.
type snapshot struct {
	board     Board
	toMove    Color
	whiteKing Square
	blackKing Square
	rights    CastleRights
	enPassant Square
	plies     int
}

func takeSnapshot(g *GameState) snapshot {
	return snapshot{
		board:     g.board,
		toMove:    g.toMove,
		whiteKing: g.whiteKing,
		blackKing: g.blackKing,
		rights:    g.castleRights,
		enPassant: g.enPassant,
		plies:     len(g.history),
	}
}

// assertKingCache checks the cached king squares against a scan of the board.
func assertKingCache(t *testing.T, g *GameState) {
	t.Helper()
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			p := g.board[row][col]
			if p.Type != King {
				continue
			}
			if got := g.KingSquare(p.Color); got != (Square{Row: row, Col: col}) {
				t.Fatalf("%s king cached at %s but found on %s\n%s", p.Color, got, Square{Row: row, Col: col}, g.board)
			}
		}
	}
}
