package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/msalah0e/helix/internal/metrics"
	"github.com/msalah0e/helix/internal/record"
	"github.com/msalah0e/helix/internal/renderer"
	"github.com/msalah0e/helix/internal/scene"
	"github.com/msalah0e/helix/internal/ui"
	"github.com/msalah0e/helix/internal/watch"
)

func animateCmd() *cobra.Command {
	var (
		output   string
		every    time.Duration
		duration time.Duration
		noWatch  bool
		metricsF string
		flags    frameFlags
	)

	cmd := &cobra.Command{
		Use:   "animate",
		Short: "Run the helix live, rewriting an SVG file as it turns",
		Long: `Run the frame loop and keep rewriting the output file. Open it in a
browser that auto-reloads to watch the helix turn. Record files are
watched and reloaded when they change. Stop with Ctrl-C.`,
		Example: `  helix animate -d records.toml -o live.svg
  helix animate -d records.toml -o live.svg --duration 10s --every 100ms
  helix animate -d records.toml --metrics-file /var/lib/node_exporter/helix.prom`,
		Run: func(cmd *cobra.Command, args []string) {
			if output == "-" {
				ui.Bad.Println("  animate: output must be a file")
				os.Exit(1)
			}
			cfg, ds := setup()
			logger := newLogger()
			defer func() { _ = logger.Sync() }()

			ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
			defer stop()
			if duration > 0 {
				var cancel context.CancelFunc
				ctx, cancel = context.WithTimeout(ctx, duration)
				defer cancel()
			}

			// OnFrame runs under the renderer lock, which also guards last.
			frames := make(chan string, 1)
			var last time.Time
			var m *metrics.Collector
			if metricsF != "" {
				m = metrics.New("helix")
			}
			opts := rendererOptions(cfg, logger)
			opts.Metrics = m
			opts.OnFrame = func(sc *scene.Scene) {
				now := time.Now()
				if now.Sub(last) < every {
					return
				}
				last = now
				select {
				case frames <- sc.SVG():
				default:
				}
			}

			r := renderer.New(opts)
			r.UpdateData(ds.Questions, ds.Objectives)
			flags.apply(r)

			g, gctx := errgroup.WithContext(ctx)
			var written int
			g.Go(func() error {
				for {
					select {
					case <-gctx.Done():
						return nil
					case svg := <-frames:
						if err := writeFrame(output, svg); err != nil {
							return fmt.Errorf("write frame: %w", err)
						}
						written++
						if err := m.WriteTextfile(metricsF); err != nil {
							logger.Warn("metrics not written", zap.Error(err))
						}
					}
				}
			})

			if cfg.Watch.Enabled && !noWatch {
				w, err := watch.New(dataFiles, func() {
					next, err := record.Load(dataFiles...)
					m.ObserveReload(err)
					if err != nil {
						logger.Warn("reload failed", zap.Error(err))
						ui.Warn.Printf("  %s reload: %v\n", ui.WarnIcon(), err)
						return
					}
					r.UpdateData(next.Questions, next.Objectives)
					ui.Info.Printf("  ⟳ reloaded %d records\n", next.Len())
				}, cfg.Debounce(), logger)
				if err != nil {
					ui.Bad.Printf("  watch: %v\n", err)
					os.Exit(1)
				}
				defer w.Stop()
			}

			ui.Banner("live")
			fmt.Printf("  Writing %s every %s %s\n", output, every, ui.Subtle.Sprintf("(%d records)", ds.Len()))
			fmt.Printf("  %s\n\n", ui.Subtle.Sprint("Press Ctrl-C to stop"))

			r.Start(gctx)
			err := g.Wait()
			r.Stop()

			if werr := writeFrame(output, r.SVG()); werr != nil && err == nil {
				err = werr
			}
			if merr := m.WriteTextfile(metricsF); merr != nil && err == nil {
				err = merr
			}
			if err != nil {
				ui.Bad.Printf("  animate: %v\n", err)
				os.Exit(1)
			}
			fmt.Printf("  %s %d frames rendered, %d written\n", ui.StatusIcon(true), r.Frames(), written+1)
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "helix-live.svg", "Output file")
	cmd.Flags().DurationVar(&every, "every", 250*time.Millisecond, "Minimum time between file rewrites")
	cmd.Flags().DurationVar(&duration, "duration", 0, "Stop after this long (default: until interrupted)")
	cmd.Flags().BoolVar(&noWatch, "no-watch", false, "Do not reload record files on change")
	cmd.Flags().StringVar(&metricsF, "metrics-file", "", "Write Prometheus textfile metrics here")
	flags.register(cmd)

	return cmd
}
