package model

var (
	rookDirs    = []Square{{Row: -1, Col: 0}, {Row: 0, Col: -1}, {Row: 1, Col: 0}, {Row: 0, Col: 1}}
	bishopDirs  = []Square{{Row: -1, Col: -1}, {Row: -1, Col: 1}, {Row: 1, Col: -1}, {Row: 1, Col: 1}}
	knightJumps = []Square{
		{Row: -2, Col: -1}, {Row: -2, Col: 1}, {Row: 2, Col: -1}, {Row: 2, Col: 1},
		{Row: -1, Col: -2}, {Row: -1, Col: 2}, {Row: 1, Col: -2}, {Row: 1, Col: 2},
	}
	kingSteps = []Square{
		{Row: -1, Col: -1}, {Row: -1, Col: 0}, {Row: -1, Col: 1}, {Row: 0, Col: -1},
		{Row: 0, Col: 1}, {Row: 1, Col: -1}, {Row: 1, Col: 0}, {Row: 1, Col: 1},
	}
)

// pseudoLegalMoves lists every move of the side to move that obeys piece movement,
// without asking whether it leaves the mover's king attacked. Castling is not included.
func (g *GameState) pseudoLegalMoves() []Move {
	moves := make([]Move, 0, 48)
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			piece := g.board[row][col]
			if piece.IsEmpty() || piece.Color != g.toMove {
				continue
			}
			moves = g.pseudoPieceMoves(Square{Row: row, Col: col}, piece.Type, moves)
		}
	}
	return moves
}

func (g *GameState) pseudoPieceMoves(sq Square, pieceType PieceType, moves []Move) []Move {
	switch pieceType {
	case Pawn:
		return g.pseudoPawnMoves(sq, moves)
	case Knight:
		return g.pseudoStepMoves(sq, knightJumps, moves)
	case Bishop:
		return g.pseudoSlidingMoves(sq, bishopDirs, moves)
	case Rook:
		return g.pseudoSlidingMoves(sq, rookDirs, moves)
	case Queen:
		moves = g.pseudoSlidingMoves(sq, rookDirs, moves)
		return g.pseudoSlidingMoves(sq, bishopDirs, moves)
	case King:
		return g.pseudoStepMoves(sq, kingSteps, moves)
	}
	return moves
}

func (g *GameState) pseudoPawnMoves(sq Square, moves []Move) []Move {
	dir, startRow := -1, 6
	if g.toMove == Black {
		dir, startRow = 1, 1
	}
	ahead := sq.offset(dir, 0)
	if !ahead.OnBoard() {
		return moves
	}
	// forward 1, then forward 2 from the starting rank
	if g.board.at(ahead).IsEmpty() {
		moves = append(moves, NewMove(sq, ahead, &g.board, 0))
		twoAhead := sq.offset(2*dir, 0)
		if sq.Row == startRow && g.board.at(twoAhead).IsEmpty() {
			moves = append(moves, NewMove(sq, twoAhead, &g.board, 0))
		}
	}
	for _, side := range []int{-1, 1} {
		target := sq.offset(dir, side)
		if !target.OnBoard() {
			continue
		}
		occupant := g.board.at(target)
		if !occupant.IsEmpty() && occupant.Color != g.toMove {
			moves = append(moves, NewMove(sq, target, &g.board, 0))
		} else if target == g.enPassant {
			moves = append(moves, NewMove(sq, target, &g.board, FlagEnPassant))
		}
	}
	return moves
}

// pseudoSlidingMoves walks each direction until the edge or the first occupied
// square, which is included only when it holds an enemy piece.
func (g *GameState) pseudoSlidingMoves(sq Square, dirs []Square, moves []Move) []Move {
	for _, dir := range dirs {
		target := sq.offset(dir.Row, dir.Col)
		for target.OnBoard() {
			occupant := g.board.at(target)
			if occupant.IsEmpty() {
				moves = append(moves, NewMove(sq, target, &g.board, 0))
			} else {
				if occupant.Color != g.toMove {
					moves = append(moves, NewMove(sq, target, &g.board, 0))
				}
				break
			}
			target = target.offset(dir.Row, dir.Col)
		}
	}
	return moves
}

// pseudoStepMoves covers knights and kings: fixed offsets, no sliding.
func (g *GameState) pseudoStepMoves(sq Square, offsets []Square, moves []Move) []Move {
	for _, off := range offsets {
		target := sq.offset(off.Row, off.Col)
		if !target.OnBoard() {
			continue
		}
		if occupant := g.board.at(target); occupant.IsEmpty() || occupant.Color != g.toMove {
			moves = append(moves, NewMove(sq, target, &g.board, 0))
		}
	}
	return moves
}

// castleMoves appends the castling moves available to the side to move. The king may
// not castle out of, through, or into an attacked square.
func (g *GameState) castleMoves(moves []Move) []Move {
	king := g.KingSquare(g.toMove)
	if g.SquareAttacked(king) {
		return moves
	}
	if g.castleRights.kingSide(g.toMove) {
		moves = g.kingSideCastle(king, moves)
	}
	if g.castleRights.queenSide(g.toMove) {
		moves = g.queenSideCastle(king, moves)
	}
	return moves
}

func (g *GameState) kingSideCastle(king Square, moves []Move) []Move {
	transit, dest, corner := king.offset(0, 1), king.offset(0, 2), king.offset(0, 3)
	if !g.ownRookOn(corner) {
		return moves
	}
	if g.board.at(transit).IsEmpty() && g.board.at(dest).IsEmpty() &&
		!g.SquareAttacked(transit) && !g.SquareAttacked(dest) {
		moves = append(moves, NewMove(king, dest, &g.board, FlagCastle))
	}
	return moves
}

func (g *GameState) queenSideCastle(king Square, moves []Move) []Move {
	transit, dest, rookSide := king.offset(0, -1), king.offset(0, -2), king.offset(0, -3)
	if !g.ownRookOn(king.offset(0, -4)) {
		return moves
	}
	if g.board.at(transit).IsEmpty() && g.board.at(dest).IsEmpty() && g.board.at(rookSide).IsEmpty() &&
		!g.SquareAttacked(transit) && !g.SquareAttacked(dest) {
		moves = append(moves, NewMove(king, dest, &g.board, FlagCastle))
	}
	return moves
}

// ownRookOn reports whether sq holds a rook of the side to move. Rights survive a
// rook being captured on its corner, so castling also needs the rook itself.
func (g *GameState) ownRookOn(sq Square) bool {
	return sq.OnBoard() && g.board.at(sq) == Piece{Type: Rook, Color: g.toMove}
}
