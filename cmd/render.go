package cmd

import (
	"fmt"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/msalah0e/helix/internal/renderer"
	"github.com/msalah0e/helix/internal/ui"
)

type frameFlags struct {
	width, height float64
	focus, hover  string
}

func (f *frameFlags) register(cmd *cobra.Command) {
	cmd.Flags().Float64Var(&f.width, "width", 0, "Viewport width (default from config)")
	cmd.Flags().Float64Var(&f.height, "height", 0, "Viewport height (default from config)")
	cmd.Flags().StringVar(&f.focus, "focus", "", "Select the record with this id")
	cmd.Flags().StringVar(&f.hover, "hover", "", "Hover the record with this id")
}

// apply sizes and focuses r.
func (f *frameFlags) apply(r *renderer.Renderer) {
	if f.width > 0 || f.height > 0 {
		proj := r.Frame().Projection
		w, h := proj.Width, proj.Height
		if f.width > 0 {
			w = f.width
		}
		if f.height > 0 {
			h = f.height
		}
		r.UpdateViewportSize(w, h)
	}
	if f.focus != "" {
		r.SetInteractionFocus(f.focus)
	}
	if f.hover != "" && !r.HoverNode(f.hover) {
		ui.Warn.Printf("  %s no record %q to hover\n", ui.WarnIcon(), f.hover)
	}
}

func renderCmd() *cobra.Command {
	var (
		output   string
		rotation float64
		flags    frameFlags
	)

	cmd := &cobra.Command{
		Use:   "render",
		Short: "Render one frame to SVG",
		Example: `  helix render -d records.toml -o helix.svg
  helix render -d questions.yaml -d objectives.json --rotation 1.2 --focus q-42 -o -`,
		Run: func(cmd *cobra.Command, args []string) {
			start := time.Now()
			cfg, ds := setup()

			r := renderer.New(rendererOptions(cfg, newLogger()))
			r.UpdateData(ds.Questions, ds.Objectives)
			r.SetRotation(rotation)
			flags.apply(r)
			r.Tick(0)

			if err := writeFrame(output, r.SVG()); err != nil {
				ui.Bad.Printf("  render: %v\n", err)
				os.Exit(1)
			}
			if output == "-" {
				return
			}
			fmt.Printf("  %s %s %s\n", ui.StatusIcon(true), output,
				ui.Subtle.Sprintf("(%d records, %s)", ds.Len(), elapsed(start)))
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "helix.svg", "Output file, or - for stdout")
	cmd.Flags().Float64Var(&rotation, "rotation", 0, "Rotation in radians")
	flags.register(cmd)

	return cmd
}
