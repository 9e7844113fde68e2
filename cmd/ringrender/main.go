// Command ringrender renders ring progress indicators and
// gradients to PNG files.
//
//	ringrender ring --config style.toml --progress 0.75 --out ring.png
//	ringrender ring --progress 0 --to 1.5 --frames 30 --out ring.png
//	ringrender group --progress 0.8,0.5,0.3 --out rings.png
//	ringrender gradient --type conical --size 256 --colors "#f00,#00f" --out g.png
//	ringrender gradient --svg icon.svg --id glow --out g.png
package main

import (
	"fmt"
	"image"
	"image/png"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/benoitkugler/ringprogress/gradient"
	"github.com/benoitkugler/ringprogress/ring"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var verbose bool
	root := &cobra.Command{
		Use:          "ringrender",
		Short:        "Render ring progress indicators and gradients to PNG files",
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				ring.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
			}
		},
	}
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
	root.AddCommand(newRingCmd(), newGroupCmd(), newGradientCmd())
	return root
}

func newRingCmd() *cobra.Command {
	var (
		config   string
		progress float64
		to       float64
		frames   int
		out      string
	)
	cmd := &cobra.Command{
		Use:   "ring",
		Short: "Render one ring, or an animation as a sequence of frames",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			style, err := loadStyle(config)
			if err != nil {
				return err
			}
			params, err := style.params()
			if err != nil {
				return err
			}
			if !cmd.Flags().Changed("to") {
				to = progress
			}
			return renderFrames(newLayer(params), sampleProgress(progress, to, frames), out)
		},
	}
	flags := cmd.Flags()
	flags.StringVarP(&config, "config", "c", "", "style file (.toml, .yaml or .yml)")
	flags.Float64VarP(&progress, "progress", "p", 0.5, "progress of the ring, or of the first frame")
	flags.Float64Var(&to, "to", 0, "progress of the last frame")
	flags.IntVarP(&frames, "frames", "n", 1, "number of frames")
	flags.StringVarP(&out, "out", "o", "ring.png", "output file; frames are suffixed by their index")
	return cmd
}

func newGroupCmd() *cobra.Command {
	var (
		config   string
		progress []float64
		spacing  float64
		out      string
	)
	cmd := &cobra.Command{
		Use:   "group",
		Short: "Render concentric rings, one per progress value",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			style, err := loadStyle(config)
			if err != nil {
				return err
			}
			params, err := style.params()
			if err != nil {
				return err
			}
			group := ring.NewGroup(params.Width, params.Height, len(progress))
			group.SetScale(params.Scale)
			group.SetRingWidth(params.RingWidth)
			group.SetSpacing(spacing)
			for i := 0; i < group.Len(); i++ {
				configureLayer(group.Ring(i), params)
			}
			return writePNG(out, group.Render(progress...))
		},
	}
	flags := cmd.Flags()
	flags.StringVarP(&config, "config", "c", "", "style file (.toml, .yaml or .yml)")
	flags.Float64SliceVarP(&progress, "progress", "p", []float64{0.8, 0.5, 0.3}, "progress of each ring, from the outer one")
	flags.Float64Var(&spacing, "spacing", ring.DefaultSpacing, "gap between rings, in points")
	flags.StringVarP(&out, "out", "o", "rings.png", "output file")
	return cmd
}

func newGradientCmd() *cobra.Command {
	var (
		kind   string
		size   float64
		scale  float64
		colors string
		blend  string
		svg    string
		id     string
		out    string
	)
	cmd := &cobra.Command{
		Use:   "gradient",
		Short: "Render a gradient image",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var (
				spec gradient.Spec
				err  error
			)
			if svg != "" {
				spec, err = loadSVGGradient(svg, id)
			} else {
				spec, err = gradientSpec(kind, colors)
			}
			if err != nil {
				return err
			}
			spec.Blend, err = parseBlend(blend)
			if err != nil {
				return err
			}
			img, err := gradient.Render(spec, gradient.Size{W: size, H: size}, scale)
			if err != nil {
				return err
			}
			return writePNG(out, img)
		},
	}
	flags := cmd.Flags()
	flags.StringVarP(&kind, "type", "t", "conical", "linear, radial, conical or bilinear")
	flags.Float64VarP(&size, "size", "s", 256, "side of the image, in points")
	flags.Float64Var(&scale, "scale", 1, "pixels per point")
	flags.StringVar(&colors, "colors", "#f00,#00f", "comma separated hex colors, evenly spaced")
	flags.StringVar(&blend, "blend", "rgb", "interpolation space: rgb, lab or hcl")
	flags.StringVar(&svg, "svg", "", "read the gradient from an SVG file instead")
	flags.StringVar(&id, "id", "", "id of the gradient in the SVG file, optional if there is only one")
	flags.StringVarP(&out, "out", "o", "gradient.png", "output file")
	return cmd
}

func gradientSpec(kind, colors string) (gradient.Spec, error) {
	ty, err := gradient.ParseType(kind)
	if err != nil {
		return gradient.Spec{}, err
	}
	cs, err := parseColors(colors)
	if err != nil {
		return gradient.Spec{}, err
	}
	ramp, err := gradient.NewRamp(cs, nil)
	if err != nil {
		return gradient.Spec{}, errors.Wrap(err, "invalid --colors")
	}
	return gradient.Spec{Type: ty, Primary: ramp}, nil
}

func loadSVGGradient(path, id string) (gradient.Spec, error) {
	f, err := os.Open(path)
	if err != nil {
		return gradient.Spec{}, errors.Wrap(err, "reading svg file")
	}
	defer f.Close()
	specs, err := gradient.ReadSVG(f)
	if err != nil {
		return gradient.Spec{}, errors.Wrap(err, path)
	}
	if id == "" && len(specs) == 1 {
		for _, spec := range specs {
			return spec, nil
		}
	}
	spec, ok := specs[id]
	if !ok {
		ids := make([]string, 0, len(specs))
		for k := range specs {
			ids = append(ids, k)
		}
		sort.Strings(ids)
		return gradient.Spec{}, errors.Errorf("no gradient %q in %s (available: %s)", id, path, strings.Join(ids, ", "))
	}
	return spec, nil
}

func parseBlend(s string) (gradient.Blend, error) {
	for _, b := range []gradient.Blend{gradient.BlendRGB, gradient.BlendLab, gradient.BlendHcl} {
		if strings.EqualFold(b.String(), s) {
			return b, nil
		}
	}
	return 0, errors.Errorf("unknown blend %q", s)
}

// configureLayer copies the drawing parameters of `p`
// into `l`, but not its geometry.
func configureLayer(l *ring.Layer, p ring.Params) {
	l.SetStyle(p.Style)
	l.SetStartColor(p.StartColor)
	l.SetEndColor(p.EndColor)
	l.SetBackdropColor(p.BackdropColor)
	l.SetEndShadowOpacity(p.EndShadowOpacity)
	l.SetAntialias(p.Antialias)
	l.SetGradientScale(p.GradientScale)
}

func newLayer(p ring.Params) *ring.Layer {
	l := ring.NewLayer(p.Width, p.Height)
	l.SetScale(p.Scale)
	l.SetRingWidth(p.RingWidth)
	configureLayer(l, p)
	return l
}

// sampleProgress returns `frames` values evenly spaced from `from` to `to`.
func sampleProgress(from, to float64, frames int) []float64 {
	if frames <= 1 {
		return []float64{from}
	}
	out := make([]float64, frames)
	for i := range out {
		out[i] = from + (to-from)*float64(i)/float64(frames-1)
	}
	return out
}

// frameName returns the output file of the frame `i` among `n`.
func frameName(out string, i, n int) string {
	if n <= 1 {
		return out
	}
	ext := filepath.Ext(out)
	return fmt.Sprintf("%s-%03d%s", strings.TrimSuffix(out, ext), i, ext)
}

func renderFrames(l *ring.Layer, progress []float64, out string) error {
	for i, p := range progress {
		if err := writePNG(frameName(out, i, len(progress)), l.Render(p)); err != nil {
			return err
		}
	}
	return nil
}

func writePNG(path string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return errors.Wrap(err, "creating output file")
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return errors.Wrapf(err, "encoding %s", path)
	}
	return errors.Wrapf(f.Close(), "writing %s", path)
}
