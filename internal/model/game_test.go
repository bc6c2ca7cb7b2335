package model

import (
	"errors"
	"testing"
)

func TestNewGameLegalMoves(t *testing.T) {
	g := NewGame()
	moves := g.LegalMoves()
	if len(moves) != 20 {
		t.Fatalf("want 20 moves from the starting position, got %d: %v", len(moves), moves)
	}
	got := notations(moves)
	for _, want := range []string{"a2a3", "a2a4", "h2h3", "h2h4", "b1a3", "b1c3", "g1f3", "g1h3"} {
		if !got[want] {
			t.Errorf("missing %s", want)
		}
	}
	if g.Checkmate() || g.Stalemate() {
		t.Errorf("starting position flagged as terminal")
	}
	if g.InCheck() {
		t.Errorf("white in check at the start")
	}
}

func TestApplyUndoRoundTrip(t *testing.T) {
	cases := []struct {
		name  string
		setup func(t *testing.T) *GameState
	}{
		{"start", func(t *testing.T) *GameState { return NewGame() }},
		{"open game", func(t *testing.T) *GameState {
			g := NewGame()
			play(t, g, "e2e4", "e7e5", "g1f3", "b8c6", "f1c4", "f8c5")
			return g
		}},
		{"en passant available", func(t *testing.T) *GameState {
			g := NewGame()
			play(t, g, "a2a3", "d7d5", "a3a4", "d5d4", "e2e4")
			return g
		}},
		{"kiwipete", func(t *testing.T) *GameState {
			return gameFromRows(t, White, AllCastleRights(),
				"r...k..r",
				"p.ppqpb.",
				"bn..pnp.",
				"...PN...",
				".p..P...",
				"..N..Q.p",
				"PPPBBPPP",
				"R...K..R",
			)
		}},
		{"promotion", func(t *testing.T) *GameState {
			return gameFromRows(t, White, CastleRights{},
				".n..k...",
				"P.P.....",
				"........",
				"........",
				"........",
				"........",
				"........",
				"....K...",
			)
		}},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			g := c.setup(t)
			for _, m := range g.LegalMoves() {
				before := takeSnapshot(g)
				g.Apply(m)
				assertKingCache(t, g)
				// one ply deeper so replies are round-tripped too
				for _, reply := range g.LegalMoves() {
					mid := takeSnapshot(g)
					g.Apply(reply)
					assertKingCache(t, g)
					g.Undo()
					if after := takeSnapshot(g); after != mid {
						t.Fatalf("%s %s: undo did not restore state\nwant:\n%s\ngot:\n%s", m, reply, mid.board, after.board)
					}
				}
				g.Undo()
				assertKingCache(t, g)
				if after := takeSnapshot(g); after != before {
					t.Fatalf("%s: undo did not restore state\nwant %+v\ngot  %+v\n%s", m, before, after, after.board)
				}
			}
		})
	}
}

func TestLegalMovesFilterPins(t *testing.T) {
	g := NewGame()
	play(t, g, "e2e4", "e7e5", "d1h5")

	if g.InCheck() {
		t.Fatalf("black should not be in check after Qh5")
	}
	moves := g.LegalMoves()
	got := notations(moves)
	// the f7 pawn is pinned against the king
	for _, pinned := range []string{"f7f6", "f7f5"} {
		if got[pinned] {
			t.Errorf("pinned move %s returned as legal", pinned)
		}
	}
	for _, want := range []string{"g7g6", "b8c6", "d8f6", "e8e7"} {
		if !got[want] {
			t.Errorf("missing %s", want)
		}
	}
	for _, m := range moves {
		exposed := g.simulate(m, func() bool {
			g.switchTurn()
			defer g.switchTurn()
			return g.InCheck()
		})
		if exposed {
			t.Errorf("%s leaves the black king attacked", m)
		}
	}
}

func TestFoolsMate(t *testing.T) {
	g := NewGame()
	play(t, g, "f2f3", "e7e5", "g2g4", "d8h4")

	moves := g.LegalMoves()
	if len(moves) != 0 {
		t.Fatalf("want no moves after fool's mate, got %v", moves)
	}
	if !g.Checkmate() {
		t.Errorf("want checkmate")
	}
	if g.Stalemate() {
		t.Errorf("checkmate reported as stalemate")
	}

	g.Undo()
	if moves := g.LegalMoves(); len(moves) == 0 {
		t.Fatalf("black should have moves after taking back the mate")
	}
	if g.Checkmate() || g.Stalemate() {
		t.Errorf("terminal flags not cleared after undo")
	}
}

func TestBackRankMate(t *testing.T) {
	g := gameFromRows(t, Black, CastleRights{},
		"R......k",
		"......pp",
		"........",
		"........",
		"........",
		"........",
		"........",
		"K.......",
	)
	if moves := g.LegalMoves(); len(moves) != 0 {
		t.Fatalf("want no moves, got %v", moves)
	}
	if !g.Checkmate() {
		t.Errorf("want checkmate")
	}
}

func TestStalemate(t *testing.T) {
	g := gameFromRows(t, Black, CastleRights{},
		".......k",
		"........",
		"......Q.",
		"........",
		"........",
		"........",
		"........",
		"K.......",
	)
	if g.InCheck() {
		t.Fatalf("black king should not be attacked")
	}
	if moves := g.LegalMoves(); len(moves) != 0 {
		t.Fatalf("want no moves, got %v", moves)
	}
	if !g.Stalemate() {
		t.Errorf("want stalemate")
	}
	if g.Checkmate() {
		t.Errorf("stalemate reported as checkmate")
	}
}

func TestEnPassant(t *testing.T) {
	g := NewGame()
	play(t, g, "a2a3", "d7d5", "a3a4", "d5d4", "e2e4")

	e3 := mustSquare(t, "e3")
	if g.EnPassant() != e3 {
		t.Fatalf("want en-passant target e3, got %s", g.EnPassant())
	}

	moves := g.LegalMoves()
	capture, err := FindMove(moves, "d4e3")
	if err != nil {
		t.Fatalf("en-passant capture missing: %v", err)
	}
	if !capture.IsEnPassant {
		t.Fatalf("d4e3 not flagged as en passant")
	}
	if capture.PieceCaptured != (Piece{Type: Pawn, Color: White}) {
		t.Errorf("want white pawn captured, got %v", capture.PieceCaptured)
	}
	if !notations(moves)["d4d3"] {
		t.Errorf("missing d4d3")
	}

	before := takeSnapshot(g)
	g.Apply(capture)
	if p := g.At(mustSquare(t, "e4")); !p.IsEmpty() {
		t.Errorf("captured pawn still on e4: %v", p)
	}
	if p := g.At(e3); p != (Piece{Type: Pawn, Color: Black}) {
		t.Errorf("want black pawn on e3, got %v", p)
	}
	if p := g.At(mustSquare(t, "d4")); !p.IsEmpty() {
		t.Errorf("d4 not vacated: %v", p)
	}
	if g.EnPassant() != NoSquare {
		t.Errorf("en-passant target not cleared by the capture: %s", g.EnPassant())
	}

	g.Undo()
	if g.EnPassant() != capture.To {
		t.Errorf("after undoing en passant the target should be %s, got %s", capture.To, g.EnPassant())
	}
	if after := takeSnapshot(g); after != before {
		t.Errorf("undo did not restore the position\nwant:\n%s\ngot:\n%s", before.board, after.board)
	}
}

func TestEnPassantExpires(t *testing.T) {
	g := NewGame()
	play(t, g, "a2a3", "d7d5", "a3a4", "d5d4", "e2e4", "h7h6", "h2h3")
	if g.EnPassant() != NoSquare {
		t.Fatalf("target should clear after a quiet move, got %s", g.EnPassant())
	}
	if notations(g.LegalMoves())["d4e3"] {
		t.Errorf("en passant offered a move too late")
	}
}

func TestKingSideCastle(t *testing.T) {
	g := NewGame()
	if notations(g.LegalMoves())["e1g1"] {
		t.Fatalf("castling offered through pieces")
	}
	play(t, g, "e2e4", "e7e5", "g1f3", "b8c6", "f1c4", "f8c5")

	castle, err := FindMove(g.LegalMoves(), "e1g1")
	if err != nil {
		t.Fatalf("castling missing: %v", err)
	}
	if !castle.IsCastle {
		t.Fatalf("e1g1 not flagged as castling")
	}

	before := takeSnapshot(g)
	g.Apply(castle)
	want := map[string]Piece{
		"e1": Empty,
		"f1": {Type: Rook, Color: White},
		"g1": {Type: King, Color: White},
		"h1": Empty,
	}
	for name, p := range want {
		if got := g.At(mustSquare(t, name)); got != p {
			t.Errorf("%s: want %v, got %v", name, p, got)
		}
	}
	if g.KingSquare(White) != mustSquare(t, "g1") {
		t.Errorf("king cache not updated: %s", g.KingSquare(White))
	}
	if cr := g.CastleRights(); cr.WhiteKingSide || cr.WhiteQueenSide {
		t.Errorf("white keeps castle rights after castling: %s", cr)
	}
	if cr := g.CastleRights(); !cr.BlackKingSide || !cr.BlackQueenSide {
		t.Errorf("black lost castle rights: %s", cr)
	}

	g.Undo()
	if after := takeSnapshot(g); after != before {
		t.Errorf("undo did not restore the position\nwant:\n%s\ngot:\n%s", before.board, after.board)
	}
}

func TestQueenSideCastle(t *testing.T) {
	g := gameFromRows(t, White, AllCastleRights(),
		"r...k..r",
		"pppppppp",
		"........",
		"........",
		"........",
		"........",
		"PPPPPPPP",
		"R...K..R",
	)
	moves := notations(g.LegalMoves())
	if !moves["e1c1"] || !moves["e1g1"] {
		t.Fatalf("want both castles, got %v", moves)
	}
	play(t, g, "e1c1")
	if got := g.At(mustSquare(t, "d1")); got != (Piece{Type: Rook, Color: White}) {
		t.Errorf("rook not on d1: %v", got)
	}
	if got := g.At(mustSquare(t, "a1")); !got.IsEmpty() {
		t.Errorf("a1 not vacated: %v", got)
	}
	if !notations(g.LegalMoves())["e8c8"] {
		t.Errorf("black queen-side castle missing")
	}
}

func TestCastleBlockedByAttack(t *testing.T) {
	cases := []struct {
		name string
		top  string
		want bool
	}{
		{"quiet", "k.......", true},
		{"transit attacked", "k....r..", false},
		{"destination attacked", "k.....r.", false},
		{"king in check", "k...r...", false},
		{"rook attacked only", "k......r", true},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			g := gameFromRows(t, White, CastleRights{WhiteKingSide: true},
				c.top,
				"........",
				"........",
				"........",
				"........",
				"........",
				"........",
				"....K..R",
			)
			if got := notations(g.LegalMoves())["e1g1"]; got != c.want {
				t.Errorf("e1g1 offered = %v, want %v", got, c.want)
			}
		})
	}
}

func TestQueenSideCastleNeedsEmptyKnightSquare(t *testing.T) {
	rows := []string{
		"k.......",
		"........",
		"........",
		"........",
		"........",
		"........",
		"........",
		"RN..K...",
	}
	g := gameFromRows(t, White, CastleRights{WhiteQueenSide: true}, rows...)
	if notations(g.LegalMoves())["e1c1"] {
		t.Errorf("castled with a knight on b1")
	}

	// b1 may be attacked, only d1 and c1 matter
	rows[0] = "kr......"
	rows[7] = "R...K..."
	g = gameFromRows(t, White, CastleRights{WhiteQueenSide: true}, rows...)
	if !notations(g.LegalMoves())["e1c1"] {
		t.Errorf("castling refused because b1 is attacked")
	}
}

func TestCastleNeedsRook(t *testing.T) {
	cases := []struct {
		name   string
		bottom string
	}{
		{"no rooks", "....K..."},
		{"enemy rooks", "r...K..r"},
		{"rooks off the corner", ".R..K.R."},
	}
	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			g := gameFromRows(t, White, AllCastleRights(),
				"....k...",
				"........",
				"........",
				"........",
				"........",
				"........",
				"........",
				c.bottom,
			)
			moves := notations(g.LegalMoves())
			if moves["e1g1"] || moves["e1c1"] {
				t.Errorf("castling offered without a rook on the corner: %v", moves)
			}
		})
	}
}

func TestCastleAfterRookCapturedAtHome(t *testing.T) {
	g := gameFromRows(t, Black, AllCastleRights(),
		"....k...",
		"........",
		"........",
		"........",
		"........",
		"........",
		"......b.",
		"R...K..R",
	)
	play(t, g, "g2h1")

	// the h1 rook never moved, so its right survives the capture
	if !g.CastleRights().WhiteKingSide {
		t.Fatalf("king-side right should survive: %s", g.CastleRights())
	}
	moves := notations(g.LegalMoves())
	if moves["e1g1"] {
		t.Errorf("castled with a rook that was captured")
	}
	if !moves["e1c1"] {
		t.Errorf("queen-side castle with the a1 rook missing")
	}
}

func TestCastleRightsUpdates(t *testing.T) {
	g := NewGame()
	play(t, g, "h2h4", "a7a5", "h1h3")
	cr := g.CastleRights()
	if cr.WhiteKingSide {
		t.Errorf("white king side kept after rook moved")
	}
	if !cr.WhiteQueenSide || !cr.BlackKingSide || !cr.BlackQueenSide {
		t.Errorf("unrelated rights lost: %s", cr)
	}

	// moving the rook back does not restore the right
	play(t, g, "a8a6", "h3h1")
	if cr := g.CastleRights(); cr.WhiteKingSide || cr.BlackQueenSide {
		t.Errorf("rights came back: %s", cr)
	}

	play(t, g, "e7e6", "e2e3", "e8e7")
	if cr := g.CastleRights(); cr.BlackKingSide || cr.BlackQueenSide {
		t.Errorf("black kept rights after king move: %s", cr)
	}
	if got := g.CastleRights().String(); got != "Q" {
		t.Errorf("want rights Q, got %s", got)
	}

	g.Undo()
	if got := g.CastleRights().String(); got != "Qk" {
		t.Errorf("undo should restore black king side, got %s", got)
	}
}

func TestPromotion(t *testing.T) {
	g := gameFromRows(t, White, CastleRights{},
		".n..k...",
		"P.P.....",
		"........",
		"........",
		"........",
		"........",
		"........",
		"....K...",
	)
	moves := g.LegalMoves()
	for _, n := range []string{"a7a8", "a7b8", "c7c8", "c7b8"} {
		m, err := FindMove(moves, n)
		if err != nil {
			t.Fatalf("%s missing: %v", n, err)
		}
		if !m.IsPromotion {
			t.Errorf("%s not flagged as promotion", n)
		}
	}

	play(t, g, "a7b8")
	if got := g.At(mustSquare(t, "b8")); got != (Piece{Type: Queen, Color: White}) {
		t.Errorf("want white queen on b8, got %v", got)
	}
	g.Undo()
	if got := g.At(mustSquare(t, "a7")); got != (Piece{Type: Pawn, Color: White}) {
		t.Errorf("want pawn back on a7, got %v", got)
	}
	if got := g.At(mustSquare(t, "b8")); got != (Piece{Type: Knight, Color: Black}) {
		t.Errorf("want knight back on b8, got %v", got)
	}
}

func TestLegalMovesIdempotent(t *testing.T) {
	g := NewGame()
	play(t, g, "e2e4", "d7d5")
	before := takeSnapshot(g)
	first := g.LegalMoves()
	second := g.LegalMoves()
	if len(first) != len(second) {
		t.Fatalf("lengths differ: %d vs %d", len(first), len(second))
	}
	for i := range first {
		if first[i] != second[i] {
			t.Errorf("move %d differs: %v vs %v", i, first[i], second[i])
		}
	}
	if after := takeSnapshot(g); after != before {
		t.Errorf("LegalMoves changed the position")
	}
}

func TestUndoEmptyHistory(t *testing.T) {
	g := NewGame()
	before := takeSnapshot(g)
	g.Undo()
	if after := takeSnapshot(g); after != before {
		t.Errorf("undo with no history changed the state")
	}
	if len(g.MoveLog()) != 0 {
		t.Errorf("move log should be empty")
	}
}

func TestMoveLog(t *testing.T) {
	g := NewGame()
	play(t, g, "e2e4", "e7e5", "g1f3")
	log := g.MoveLog()
	want := []string{"e2e4", "e7e5", "g1f3"}
	if len(log) != len(want) {
		t.Fatalf("want %d moves, got %d", len(want), len(log))
	}
	for i, m := range log {
		if m.Algebraic() != want[i] {
			t.Errorf("move %d: want %s, got %s", i, want[i], m)
		}
	}
	if g.ToMove() != Black {
		t.Errorf("want black to move, got %s", g.ToMove())
	}
	if g.Plies() != 3 {
		t.Errorf("want 3 plies, got %d", g.Plies())
	}
	g.Undo()
	if g.Plies() != 2 {
		t.Errorf("want 2 plies after undo, got %d", g.Plies())
	}
}

func TestNewGameFromBoardValidation(t *testing.T) {
	board := boardFromRows(t,
		"........",
		"........",
		"........",
		"........",
		"........",
		"........",
		"........",
		"....K...",
	)
	if _, err := NewGameFromBoard(board, White, CastleRights{}, NoSquare); !errors.Is(err, ErrMissingKing) {
		t.Errorf("want ErrMissingKing, got %v", err)
	}

	board[0][0] = Piece{Type: King, Color: Black}
	g, err := NewGameFromBoard(board, Black, CastleRights{}, NoSquare)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if g.KingSquare(Black) != (Square{Row: 0, Col: 0}) || g.KingSquare(White) != (Square{Row: 7, Col: 4}) {
		t.Errorf("king squares not scanned: %s %s", g.KingSquare(White), g.KingSquare(Black))
	}
}
