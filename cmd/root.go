package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/msalah0e/helix/internal/config"
	"github.com/msalah0e/helix/internal/helix"
	"github.com/msalah0e/helix/internal/record"
	"github.com/msalah0e/helix/internal/renderer"
	"github.com/msalah0e/helix/internal/ui"
)

var version = "0.3.0"

var (
	cfgFile   string
	dataFiles []string
	verbose   bool
	noColor   bool
)

var rootCmd = &cobra.Command{
	Use:   "helix",
	Short: "helix — records on a rotating double helix",
	Long: ui.Brand.Sprint(ui.Mark+" helix") + " — render questions and objectives as a living double helix\n" +
		ui.Subtle.Sprint("Render frames, sweep rotations, animate live and replay pointer sessions"),
	Version: version,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		ui.SetColor(!noColor && os.Getenv("NO_COLOR") == "")
	},
	SilenceUsage: true,
}

func init() {
	rootCmd.SetVersionTemplate("helix {{ .Version }}\n")
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "Config file (default $XDG_CONFIG_HOME/helix/config.toml)")
	rootCmd.PersistentFlags().StringArrayVarP(&dataFiles, "data", "d", nil, "Record file (TOML, YAML or JSON); repeatable")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log renderer and watcher diagnostics to stderr")
	rootCmd.PersistentFlags().BoolVar(&noColor, "no-color", false, "Disable coloured output")
	_ = rootCmd.RegisterFlagCompletionFunc("data", recordFileCompletion)

	rootCmd.AddCommand(
		renderCmd(),
		framesCmd(),
		animateCmd(),
		replayCmd(),
		infoCmd(),
		configCmd(),
		completionCmd(),
	)
}

// Execute runs the root command.
func Execute() error {
	return rootCmd.Execute()
}

// loadConfig reads --config when given, else the user and project files.
func loadConfig() (*config.Config, error) {
	if cfgFile != "" {
		return config.LoadFile(cfgFile)
	}
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func newLogger() *zap.Logger {
	if !verbose {
		return zap.NewNop()
	}
	logger, err := zap.NewDevelopment()
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

var errNoData = errors.New("no record files; pass one or more with --data")

func loadData() (*record.Dataset, error) {
	if len(dataFiles) == 0 {
		return nil, errNoData
	}
	return record.Load(dataFiles...)
}

// setup loads config and records, exiting on failure the way every
// command reports errors.
func setup() (*config.Config, *record.Dataset) {
	cfg, err := loadConfig()
	if err != nil {
		ui.Bad.Printf("  config: %v\n", err)
		os.Exit(1)
	}
	ui.SetColor(cfg.UI.Color && !noColor && os.Getenv("NO_COLOR") == "")

	ds, err := loadData()
	if err != nil {
		ui.Bad.Printf("  records: %v\n", err)
		os.Exit(1)
	}
	return cfg, ds
}

// rendererOptions maps config onto the renderer.
func rendererOptions(cfg *config.Config, logger *zap.Logger) renderer.Options {
	return renderer.Options{
		Width:         cfg.Viewport.Width,
		Height:        cfg.Viewport.Height,
		FrameInterval: cfg.FrameInterval(),
		Physics:       cfg.Physics,
		Graph:         cfg.GraphOptions(),
		Palette:       cfg.Palette,
		Logger:        logger,
	}
}

// writeFrame replaces path atomically so watchers of the file never see
// a partial frame. "-" writes to stdout.
func writeFrame(path, svg string) error {
	if path == "-" {
		_, err := fmt.Fprint(os.Stdout, svg)
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return err
		}
	}
	tmp := path + ".tmp"
	if err := os.WriteFile(tmp, []byte(svg), 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, path)
}

// strandName is the record kind shown to users.
func strandName(s helix.Strand) string {
	switch s {
	case helix.StrandA:
		return "question"
	case helix.StrandB:
		return "objective"
	}
	return s.String()
}

func elapsed(start time.Time) string {
	return ui.Subtle.Sprintf("%.0fms", float64(time.Since(start).Microseconds())/1000)
}
