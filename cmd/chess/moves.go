package main

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/benbeisheim/chessrules/internal/model"
	"github.com/spf13/cobra"
)

func newMovesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "moves [moves...]",
		Short: "Play moves from the start and list the legal replies",
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := playMoves(args)
			if err != nil {
				return err
			}
			printPosition(cmd.OutOrStdout(), g)
			return nil
		},
	}
}

// playMoves replays notations from the starting position, rejecting the first
// one that is not legal.
func playMoves(notations []string) (*model.GameState, error) {
	g := model.NewGame()
	for i, n := range notations {
		m, err := model.FindMove(g.LegalMoves(), n)
		if err != nil {
			return nil, fmt.Errorf("move %d: %w", i+1, err)
		}
		g.Apply(m)
	}
	return g, nil
}

func printPosition(w io.Writer, g *model.GameState) {
	moves := g.LegalMoves()
	board := g.Board()
	fmt.Fprint(w, board.String())
	fmt.Fprintf(w, "\n%s to move, castling %s, en passant %s\n", g.ToMove(), g.CastleRights(), g.EnPassant())

	switch {
	case g.Checkmate():
		fmt.Fprintf(w, "checkmate, %s wins\n", g.ToMove().Opponent())
		return
	case g.Stalemate():
		fmt.Fprintln(w, "stalemate")
		return
	case g.InCheck():
		fmt.Fprintln(w, "check")
	}

	names := make([]string, len(moves))
	for i, m := range moves {
		names[i] = m.Algebraic()
	}
	sort.Strings(names)
	fmt.Fprintf(w, "%d legal moves: %s\n", len(names), strings.Join(names, " "))
}
