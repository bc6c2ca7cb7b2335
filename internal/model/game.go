package model

import (
	"errors"
	"fmt"
)

var (
	ErrInvalidSquare = errors.New("invalid square")
	ErrIllegalMove   = errors.New("illegal move")
	ErrMissingKing   = errors.New("each side needs exactly one king")
)

// ply is one entry of the history log: the move plus the castle rights and
// en-passant target that were in force before it was played.
type ply struct {
	move         Move
	castleRights CastleRights
	enPassant    Square
}

// GameState owns the board and everything derived from it. It is not safe for
// concurrent use; LegalMoves plays and takes back moves on the live board.
type GameState struct {
	board        Board
	toMove       Color
	whiteKing    Square
	blackKing    Square
	castleRights CastleRights
	enPassant    Square
	history      []ply
	checkmate    bool
	stalemate    bool
}

// NewGame returns the standard starting position with white to move.
func NewGame() *GameState {
	return &GameState{
		board:        newBoard(),
		toMove:       White,
		whiteKing:    Square{Row: 7, Col: 4},
		blackKing:    Square{Row: 0, Col: 4},
		castleRights: AllCastleRights(),
		enPassant:    NoSquare,
		history:      make([]ply, 0),
	}
}

// NewGameFromBoard sets up an arbitrary position. Pass NoSquare when there is no
// en-passant target.
func NewGameFromBoard(board Board, toMove Color, rights CastleRights, enPassant Square) (*GameState, error) {
	g := &GameState{
		board:        board,
		toMove:       toMove,
		castleRights: rights,
		enPassant:    enPassant,
		history:      make([]ply, 0),
	}
	whiteKings, blackKings := 0, 0
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			switch board[row][col] {
			case Piece{Type: King, Color: White}:
				whiteKings++
				g.whiteKing = Square{Row: row, Col: col}
			case Piece{Type: King, Color: Black}:
				blackKings++
				g.blackKing = Square{Row: row, Col: col}
			}
		}
	}
	if whiteKings != 1 || blackKings != 1 {
		return nil, fmt.Errorf("%w: found %d white and %d black", ErrMissingKing, whiteKings, blackKings)
	}
	if toMove != White && toMove != Black {
		return nil, fmt.Errorf("unknown side to move %q", toMove)
	}
	return g, nil
}

// Board returns a copy of the grid.
func (g *GameState) Board() Board { return g.board }

func (g *GameState) At(sq Square) Piece { return g.board.at(sq) }

func (g *GameState) ToMove() Color { return g.toMove }

func (g *GameState) CastleRights() CastleRights { return g.castleRights }

// EnPassant returns the square a pawn skipped on the previous move, or NoSquare.
func (g *GameState) EnPassant() Square { return g.enPassant }

func (g *GameState) Checkmate() bool { return g.checkmate }

func (g *GameState) Stalemate() bool { return g.stalemate }

func (g *GameState) KingSquare(c Color) Square {
	if c == White {
		return g.whiteKing
	}
	return g.blackKing
}

// Plies is the number of moves played and not taken back.
func (g *GameState) Plies() int { return len(g.history) }

// MoveLog returns the moves played so far, oldest first.
func (g *GameState) MoveLog() []Move {
	moves := make([]Move, len(g.history))
	for i, p := range g.history {
		moves[i] = p.move
	}
	return moves
}

func (g *GameState) switchTurn() {
	g.toMove = g.toMove.Opponent()
}

func (g *GameState) setKing(c Color, sq Square) {
	if c == White {
		g.whiteKing = sq
	} else {
		g.blackKing = sq
	}
}

// castleRookSquares returns where the rook starts and ends for a castling king move.
func castleRookSquares(m Move) (from, to Square) {
	if m.To.Col-m.From.Col == 2 {
		return m.To.offset(0, 1), m.To.offset(0, -1)
	}
	return m.To.offset(0, -2), m.To.offset(0, 1)
}

// Apply plays m. The move must come from the latest LegalMoves call; it is not
// validated again.
func (g *GameState) Apply(m Move) {
	g.history = append(g.history, ply{move: m, castleRights: g.castleRights, enPassant: g.enPassant})

	g.board.set(m.From, Empty)
	g.board.set(m.To, m.PieceMoved)
	g.switchTurn()

	if m.PieceMoved.Type == King {
		g.setKing(m.PieceMoved.Color, m.To)
	}
	if m.IsPromotion {
		g.board.set(m.To, Piece{Type: Queen, Color: m.PieceMoved.Color})
	}
	// the captured pawn sits beside the destination, on the origin's rank
	if m.IsEnPassant {
		g.board.set(Square{Row: m.From.Row, Col: m.To.Col}, Empty)
	}

	if m.isDoublePawnPush() {
		g.enPassant = Square{Row: (m.From.Row + m.To.Row) / 2, Col: m.From.Col}
	} else {
		g.enPassant = NoSquare
	}

	if m.IsCastle {
		rookFrom, rookTo := castleRookSquares(m)
		g.board.set(rookTo, g.board.at(rookFrom))
		g.board.set(rookFrom, Empty)
	}

	g.castleRights = g.castleRights.afterMove(m)
}

// Undo takes back the last move. It does nothing when no move has been played.
func (g *GameState) Undo() {
	if len(g.history) == 0 {
		return
	}
	last := g.history[len(g.history)-1]
	g.history = g.history[:len(g.history)-1]
	m := last.move

	g.board.set(m.From, m.PieceMoved)
	g.board.set(m.To, m.PieceCaptured)
	g.switchTurn()

	if m.PieceMoved.Type == King {
		g.setKing(m.PieceMoved.Color, m.From)
	}
	if m.IsEnPassant {
		g.board.set(m.To, Empty)
		g.board.set(Square{Row: m.From.Row, Col: m.To.Col}, m.PieceCaptured)
	}
	if m.IsCastle {
		rookFrom, rookTo := castleRookSquares(m)
		g.board.set(rookFrom, g.board.at(rookTo))
		g.board.set(rookTo, Empty)
	}

	// After an en-passant capture this is the capture's destination square.
	g.enPassant = last.enPassant
	g.castleRights = last.castleRights
}

// simulate plays m, evaluates check against the resulting position and always
// takes m back before returning.
func (g *GameState) simulate(m Move, check func() bool) bool {
	g.Apply(m)
	defer g.Undo()
	return check()
}

// LegalMoves returns every move of the side to move that does not leave its own
// king attacked, and records checkmate or stalemate when there are none.
func (g *GameState) LegalMoves() []Move {
	savedEnPassant, savedRights := g.enPassant, g.castleRights

	moves := g.pseudoLegalMoves()
	moves = g.castleMoves(moves)

	for i := len(moves) - 1; i >= 0; i-- {
		exposed := g.simulate(moves[i], func() bool {
			g.switchTurn()
			defer g.switchTurn()
			return g.InCheck()
		})
		if exposed {
			moves = append(moves[:i], moves[i+1:]...)
		}
	}

	if len(moves) == 0 {
		inCheck := g.InCheck()
		g.checkmate = inCheck
		g.stalemate = !inCheck
	} else {
		g.checkmate = false
		g.stalemate = false
	}

	g.enPassant, g.castleRights = savedEnPassant, savedRights
	return moves
}

// InCheck reports whether the side to move has its king attacked.
func (g *GameState) InCheck() bool {
	return g.SquareAttacked(g.KingSquare(g.toMove))
}

// SquareAttacked reports whether any pseudo-legal move of the opponent of the side
// to move lands on sq.
func (g *GameState) SquareAttacked(sq Square) bool {
	g.switchTurn()
	opponentMoves := g.pseudoLegalMoves()
	g.switchTurn()
	for _, m := range opponentMoves {
		if m.To == sq {
			return true
		}
	}
	return false
}
