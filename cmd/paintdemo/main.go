// Command paintdemo paints two rows of brush dabs into a tiled surface and
// writes the result as an image.
package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"image/png"
	"log"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/bmp"
	"golang.org/x/image/draw"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/tiff"

	"github.com/gogpu/brushsurf"
	"github.com/gogpu/brushsurf/dab"
)

func main() {
	var (
		width   = flag.Int("width", 400, "canvas width")
		height  = flag.Int("height", 200, "canvas height")
		output  = flag.String("output", "out.png", "output file")
		format  = flag.String("format", "png", "output format: png, bmp or tiff")
		thumb   = flag.Int("thumb", 0, "also write a thumbnail this many pixels wide (0 = off)")
		roi     = flag.String("roi", "bounds", "region-of-interest mode: bounds or runs")
		verbose = flag.Bool("v", false, "verbose logging")
	)
	flag.Parse()

	level := slog.LevelInfo
	if *verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	brushsurf.SetLogger(logger)

	cfg := config{
		width:  *width,
		height: *height,
		output: *output,
		format: *format,
		thumb:  *thumb,
		roi:    *roi,
	}
	if err := run(cfg, logger); err != nil {
		log.Fatal(err)
	}
}

type config struct {
	width, height int
	output        string
	format        string
	thumb         int
	roi           string
}

func run(cfg config, logger *slog.Logger) error {
	mode, err := parseROIMode(cfg.roi)
	if err != nil {
		return err
	}

	surf, err := brushsurf.New(cfg.width, cfg.height, brushsurf.WithROIMode(mode))
	if err != nil {
		return fmt.Errorf("create surface: %w", err)
	}
	defer surf.Close()

	if err := surf.BeginAtomic(); err != nil {
		return err
	}
	dabs, err := paintRows(surf, cfg.width, cfg.height)
	if err != nil {
		return fmt.Errorf("paint: %w", err)
	}
	rois, err := surf.EndAtomic()
	if err != nil {
		return err
	}

	logger.Info("atomic session", "dabs", dabs, "roi_mode", mode.String(), "rects", len(rois))
	for i, r := range rois {
		logger.Info("roi", "index", i, "rect", r.String())
	}

	rgba := image.NewRGBA(image.Rect(0, 0, cfg.width, cfg.height))
	if err := surf.ReadRGBA8Parallel(context.Background(), rgba.Pix, 0); err != nil {
		return fmt.Errorf("read back: %w", err)
	}

	st := brushsurf.AlphaStats(rgba.Pix)
	logger.Info("alpha",
		"pixels", st.Pixels, "painted", st.Painted,
		"mean", fmt.Sprintf("%.2f", st.MeanAlpha),
		"min", st.MinAlpha, "max", st.MaxAlpha)

	var img image.Image = rgba
	if cfg.format == "tiff" {
		img = surf.RGBA64()
	}
	if err := save(cfg.output, cfg.format, img); err != nil {
		return fmt.Errorf("save: %w", err)
	}
	logger.Info("saved", "path", cfg.output, "width", cfg.width, "height", cfg.height)

	if cfg.thumb > 0 {
		path := thumbPath(cfg.output)
		if err := save(path, cfg.format, thumbnail(rgba, cfg.thumb)); err != nil {
			return fmt.Errorf("save thumbnail: %w", err)
		}
		logger.Info("saved thumbnail", "path", path)
	}
	return nil
}

// paintRows draws a hard red row at h/4 and a soft blue row at 3h/4. The
// blue row runs past the right edge, so part of it lands off canvas.
func paintRows(s *brushsurf.Surface, w, h int) (int, error) {
	radius := max(h/10, 2)

	hard := dab.Dab{
		Radius:   fixed.I(radius),
		Color:    [3]uint16{0xFFFF, 0x2000, 0x2000},
		Opacity:  0xFFFF,
		Hardness: 0.8,
	}
	n1, err := dab.Stroke(s,
		fixed.P(radius, h/4), fixed.P(w-radius, h/4),
		hard, fixed.I(radius))
	if err != nil {
		return n1, err
	}

	soft := dab.Dab{
		Radius:   fixed.I(radius),
		Color:    [3]uint16{0x2000, 0x4000, 0xFFFF},
		Opacity:  0xC000,
		Hardness: 0,
	}
	n2, err := dab.Stroke(s,
		fixed.P(radius, 3*h/4), fixed.P(w+2*radius, 3*h/4),
		soft, fixed.I(radius/2))
	return n1 + n2, err
}

func parseROIMode(s string) (brushsurf.ROIMode, error) {
	switch s {
	case "bounds":
		return brushsurf.ROIBounds, nil
	case "runs":
		return brushsurf.ROITileRuns, nil
	default:
		return 0, fmt.Errorf("unknown roi mode %q (want bounds or runs)", s)
	}
}

// thumbnail scales src down to width pixels wide, keeping the aspect ratio.
func thumbnail(src image.Image, width int) image.Image {
	b := src.Bounds()
	height := max(b.Dy()*width/max(b.Dx(), 1), 1)
	dst := image.NewRGBA(image.Rect(0, 0, width, height))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, b, draw.Src, nil)
	return dst
}

func thumbPath(output string) string {
	ext := filepath.Ext(output)
	return strings.TrimSuffix(output, ext) + "_thumb" + ext
}

func save(path, format string, img image.Image) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}

	switch format {
	case "png":
		err = png.Encode(f, img)
	case "bmp":
		err = bmp.Encode(f, img)
	case "tiff":
		err = tiff.Encode(f, img, &tiff.Options{Compression: tiff.Deflate})
	default:
		err = fmt.Errorf("unknown format %q (want png, bmp or tiff)", format)
	}
	if err != nil {
		_ = f.Close()
		return err
	}
	return f.Close()
}
