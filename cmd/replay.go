package cmd

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/msalah0e/helix/internal/metrics"
	"github.com/msalah0e/helix/internal/renderer"
	"github.com/msalah0e/helix/internal/session"
	"github.com/msalah0e/helix/internal/ui"
)

func replayCmd() *cobra.Command {
	var (
		all     bool
		logTo   string
		output  string
		promOut string
	)

	cmd := &cobra.Command{
		Use:   "replay <session.toml|session.yaml>",
		Short: "Feed a scripted pointer session through the renderer",
		Long: `Replay a scripted session of pointer events (down, move, up, leave,
scroll, hover, click, tick, resize, focus, rotate) and print the select,
delete and clear intents it dispatched.`,
		Args: cobra.ExactArgs(1),
		Run: func(cmd *cobra.Command, args []string) {
			s, err := session.Load(args[0])
			if err != nil {
				ui.Bad.Printf("  replay: %v\n", err)
				os.Exit(1)
			}
			cfg, ds := setup()

			opts := rendererOptions(cfg, newLogger())
			var m *metrics.Collector
			if promOut != "" {
				m = metrics.New("helix")
				opts.Metrics = m
			}
			r := renderer.New(opts)
			r.UpdateData(ds.Questions, ds.Objectives)
			entries := session.Play(r, s)
			if err := m.WriteTextfile(promOut); err != nil {
				ui.Bad.Printf("  replay: %v\n", err)
				os.Exit(1)
			}

			if logTo != "" {
				if err := session.Save(logTo, entries); err != nil {
					ui.Bad.Printf("  replay: save transcript: %v\n", err)
					os.Exit(1)
				}
			}
			if output != "" {
				r.Tick(0)
				if err := writeFrame(output, r.SVG()); err != nil {
					ui.Bad.Printf("  replay: %v\n", err)
					os.Exit(1)
				}
			}

			ui.Banner("replay " + s.Name)
			shown := entries
			if !all {
				shown = session.Intents(entries)
			}
			if len(shown) == 0 {
				fmt.Printf("  %s\n", ui.Subtle.Sprintf("%d events, nothing dispatched", len(entries)))
				return
			}

			rows := make([][]string, 0, len(shown))
			for _, e := range shown {
				rows = append(rows, []string{
					strconv.Itoa(e.Index),
					e.Event,
					e.Intent,
					e.TargetID,
					e.Strand,
					e.Hovered,
					strconv.FormatFloat(e.Rotation, 'f', 3, 64),
				})
			}
			ui.Table([]string{"#", "EVENT", "INTENT", "TARGET", "STRAND", "HOVER", "ROTATION"}, rows)
			fmt.Printf("\n  %s\n", ui.Subtle.Sprintf("%d events, %d intents", len(entries), len(session.Intents(entries))))
		},
	}

	cmd.Flags().BoolVarP(&all, "all", "a", false, "Show every event, not only dispatched intents")
	cmd.Flags().StringVar(&logTo, "log", "", "Append the transcript to this JSONL file")
	cmd.Flags().StringVarP(&output, "output", "o", "", "Write the final frame to this SVG file")
	cmd.Flags().StringVar(&promOut, "metrics-file", "", "Write Prometheus textfile metrics for the replay")

	return cmd
}
