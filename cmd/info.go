package cmd

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/msalah0e/helix/internal/graph"
	"github.com/msalah0e/helix/internal/render"
	"github.com/msalah0e/helix/internal/ui"
)

func infoCmd() *cobra.Command {
	var (
		dot  bool
		list bool
	)

	cmd := &cobra.Command{
		Use:   "info",
		Short: "Show how the records assemble onto the helix",
		Example: `  helix info -d records.toml
  helix info -d records.toml --dot | dot -Tpng -o graph.png`,
		Run: func(cmd *cobra.Command, args []string) {
			cfg, ds := setup()

			snap := graph.Assemble(ds.Questions, ds.Objectives, cfg.GraphOptions())
			if dot {
				fmt.Print(snap.ExportDOT())
				return
			}

			st := snap.Stats()
			ui.Banner("assembly")
			row := func(label string, n int) {
				fmt.Printf("  %s  %d\n", ui.Brand.Sprintf("%-16s", label), n)
			}
			row("Steps", st.Steps)
			row("Questions", st.Questions)
			row("Objectives", st.Objectives)
			row("Ghosts", st.Ghosts)
			row("Links", st.Structural)
			row("Mutations", st.Synthetic)
			row("Crystallized", st.Crystallized)
			row("Recent", st.Recent)

			if !list {
				return
			}
			fmt.Println()
			rows := make([][]string, 0, len(snap.Nodes))
			for _, n := range snap.Nodes {
				if n.Ghost {
					continue
				}
				rows = append(rows, []string{
					strconv.Itoa(n.Rank),
					strandName(n.Strand),
					n.ID,
					render.TruncateLabel(n.Label),
					ui.StatusIcon(n.Crystallized),
					flag(snap.IsRecent(n.ID)),
				})
			}
			ui.Table([]string{"RANK", "KIND", "ID", "TITLE", "DONE", "RECENT"}, rows)
		},
	}

	cmd.Flags().BoolVar(&dot, "dot", false, "Print the assembled graph in Graphviz DOT")
	cmd.Flags().BoolVarP(&list, "list", "l", false, "List every placed record")

	return cmd
}

func flag(on bool) string {
	if on {
		return ui.Info.Sprint("●")
	}
	return ui.Subtle.Sprint("·")
}
