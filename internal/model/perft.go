package model

// Perft counts the leaf nodes of the legal move tree depth plies deep. The state is
// returned to where it started.
func Perft(g *GameState, depth int) uint64 {
	if depth == 0 {
		return 1
	}
	moves := g.LegalMoves()
	if depth == 1 {
		return uint64(len(moves))
	}
	var nodes uint64
	for _, m := range moves {
		g.Apply(m)
		nodes += Perft(g, depth-1)
		g.Undo()
	}
	return nodes
}

// Divide returns the perft count below each root move, keyed by its notation.
func Divide(g *GameState, depth int) map[string]uint64 {
	out := make(map[string]uint64)
	if depth < 1 {
		return out
	}
	for _, m := range g.LegalMoves() {
		g.Apply(m)
		out[m.Algebraic()] = Perft(g, depth-1)
		g.Undo()
	}
	return out
}
