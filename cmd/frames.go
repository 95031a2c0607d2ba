package cmd

import (
	"context"
	"fmt"
	"math"
	"math/rand"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"

	"github.com/msalah0e/helix/internal/parallel"
	"github.com/msalah0e/helix/internal/record"
	"github.com/msalah0e/helix/internal/renderer"
	"github.com/msalah0e/helix/internal/ui"
)

func framesCmd() *cobra.Command {
	var (
		count int
		dir   string
		flags frameFlags
	)

	cmd := &cobra.Command{
		Use:   "frames",
		Short: "Render a full rotation sweep as numbered SVG frames",
		Example: `  helix frames -d records.toml --count 72 --dir out/`,
		Run: func(cmd *cobra.Command, args []string) {
			start := time.Now()
			cfg, ds := setup()
			if count <= 0 {
				count = cfg.Animation.Frames
			}

			// Every frame assembles with the same seed so synthetic links
			// hold still across the sweep.
			seed := cfg.Graph.Seed
			if seed == 0 {
				seed = time.Now().UnixNano()
			}

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
			defer stop()

			ui.Banner(fmt.Sprintf("rendering %d frames", count))

			tasks := make([]parallel.Task, count)
			for i := range tasks {
				rot := 2 * math.Pi * float64(i) / float64(count)
				path := filepath.Join(dir, fmt.Sprintf("frame-%03d.svg", i))
				tasks[i] = parallel.Task{
					Name: filepath.Base(path),
					Fn: func(ctx context.Context) (string, error) {
						opts := rendererOptions(cfg, newLogger())
						opts.Graph.Rand = rand.New(rand.NewSource(seed))
						return path, renderFrame(opts, ds, rot, &flags, path)
					},
				}
			}

			results := parallel.Run(ctx, tasks, cfg.Parallel.Concurrency, os.Stdout)
			failed := parallel.Failed(results)

			fmt.Println()
			if len(failed) > 0 {
				ui.Bad.Printf("  %d of %d frames failed\n", len(failed), len(results))
				os.Exit(1)
			}
			fmt.Printf("  %s %d frames in %s %s\n", ui.StatusIcon(true), len(results), dir, elapsed(start))
		},
	}

	cmd.Flags().IntVar(&count, "count", 0, "Frames per full turn (default from config)")
	cmd.Flags().StringVar(&dir, "dir", "frames", "Output directory")
	flags.register(cmd)

	return cmd
}

func renderFrame(opts renderer.Options, ds *record.Dataset, rotation float64, flags *frameFlags, path string) error {
	r := renderer.New(opts)
	r.UpdateData(ds.Questions, ds.Objectives)
	r.SetRotation(rotation)
	flags.apply(r)
	r.Tick(0)
	return writeFrame(path, r.SVG())
}
