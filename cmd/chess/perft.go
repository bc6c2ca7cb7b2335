package main

import (
	"fmt"
	"sort"
	"time"

	"github.com/benbeisheim/chessrules/internal/model"
	"github.com/spf13/cobra"
)

func newPerftCmd() *cobra.Command {
	var (
		depth  int
		divide bool
	)
	cmd := &cobra.Command{
		Use:   "perft [moves...]",
		Short: "Count leaf positions reachable from the start, after playing the given moves",
		RunE: func(cmd *cobra.Command, args []string) error {
			if depth < 1 {
				return fmt.Errorf("depth must be at least 1, got %d", depth)
			}
			g, err := playMoves(args)
			if err != nil {
				return err
			}
			out := cmd.OutOrStdout()

			start := time.Now()
			if divide {
				counts := model.Divide(g, depth)
				keys := make([]string, 0, len(counts))
				for k := range counts {
					keys = append(keys, k)
				}
				sort.Strings(keys)
				var total uint64
				for _, k := range keys {
					fmt.Fprintf(out, "%s: %d\n", k, counts[k])
					total += counts[k]
				}
				fmt.Fprintf(out, "\nmoves: %d\nnodes: %d\n", len(keys), total)
			} else {
				fmt.Fprintf(out, "nodes: %d\n", model.Perft(g, depth))
			}
			fmt.Fprintf(out, "time: %s\n", time.Since(start).Round(time.Millisecond))
			return nil
		},
	}
	cmd.Flags().IntVarP(&depth, "depth", "d", 3, "search depth in plies")
	cmd.Flags().BoolVar(&divide, "divide", false, "print the node count below each root move")
	return cmd
}
