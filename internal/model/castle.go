package model

// CastleRights holds the four castling permissions. A right once lost is only ever
// restored by undoing the move that lost it.
type CastleRights struct {
	WhiteKingSide  bool `json:"whiteKingSide"`
	BlackKingSide  bool `json:"blackKingSide"`
	WhiteQueenSide bool `json:"whiteQueenSide"`
	BlackQueenSide bool `json:"blackQueenSide"`
}

func AllCastleRights() CastleRights {
	return CastleRights{WhiteKingSide: true, BlackKingSide: true, WhiteQueenSide: true, BlackQueenSide: true}
}

func (cr CastleRights) kingSide(c Color) bool {
	if c == White {
		return cr.WhiteKingSide
	}
	return cr.BlackKingSide
}

func (cr CastleRights) queenSide(c Color) bool {
	if c == White {
		return cr.WhiteQueenSide
	}
	return cr.BlackQueenSide
}

// afterMove returns the rights left once m has been played. Moving a king drops both
// of its side's rights; moving a rook off its starting corner drops that corner's.
func (cr CastleRights) afterMove(m Move) CastleRights {
	switch m.PieceMoved {
	case Piece{Type: King, Color: White}:
		cr.WhiteKingSide, cr.WhiteQueenSide = false, false
	case Piece{Type: King, Color: Black}:
		cr.BlackKingSide, cr.BlackQueenSide = false, false
	case Piece{Type: Rook, Color: White}:
		if m.From.Row == 7 {
			switch m.From.Col {
			case 0:
				cr.WhiteQueenSide = false
			case 7:
				cr.WhiteKingSide = false
			}
		}
	case Piece{Type: Rook, Color: Black}:
		if m.From.Row == 0 {
			switch m.From.Col {
			case 0:
				cr.BlackQueenSide = false
			case 7:
				cr.BlackKingSide = false
			}
		}
	}
	return cr
}

// String uses the familiar KQkq letters, "-" when none remain.
func (cr CastleRights) String() string {
	s := ""
	if cr.WhiteKingSide {
		s += "K"
	}
	if cr.WhiteQueenSide {
		s += "Q"
	}
	if cr.BlackKingSide {
		s += "k"
	}
	if cr.BlackQueenSide {
		s += "q"
	}
	if s == "" {
		return "-"
	}
	return s
}
