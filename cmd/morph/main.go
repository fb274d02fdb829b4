package main

import (
	"flag"
	"fmt"
	"image"
	"image/draw"
	_ "image/jpeg"
	"image/png"
	"log"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	morph "github.com/whoisashish/Image-Transition"
	"github.com/whoisashish/Image-Transition/utils"
)

var (
	// Flags
	first     = flag.String("first", "", "First source image")
	second    = flag.String("second", "", "Second source image")
	out       = flag.String("out", "", "Output directory for the frame sequence")
	landmarks = flag.String("points", "", "Landmark pairs as x1,y1:x2,y2 separated by ';'")
	frames    = flag.Int("frames", 30, "Number of frames to render")
	width     = flag.Int("width", morph.DefaultWidth, "Mesh domain width")
	height    = flag.Int("height", morph.DefaultHeight, "Mesh domain height")
	overlay   = flag.Bool("overlay", false, "Also write the mesh overlays")
)

func main() {
	flag.Parse()

	if len(*first) == 0 || len(*second) == 0 || len(*out) == 0 {
		log.Fatal("Usage: morph -first a.jpg -second b.jpg -points x1,y1:x2,y2;... -out frames/")
	}

	session := morph.NewSession(morph.Options{
		Width:  *width,
		Height: *height,
	}, morph.TickerScheduler{})

	if err := session.SetImage(morph.SideA, decode(*first)); err != nil {
		log.Fatalf("Unable to attach first image: %v", err)
	}
	if err := session.SetImage(morph.SideB, decode(*second)); err != nil {
		log.Fatalf("Unable to attach second image: %v", err)
	}

	if err := placeLandmarks(session.Pair(), *landmarks); err != nil {
		log.Fatalf("Unable to parse landmarks: %v", err)
	}

	if err := os.MkdirAll(*out, 0755); err != nil {
		log.Fatalf("Unable to create output directory: %v", err)
	}

	s := utils.NewSpinner()
	s.Start("Rendering morph sequence...")
	start := time.Now()

	n := utils.Max(*frames, 2)
	blended := image.NewNRGBA(image.Rect(0, 0, *width, *height))
	for i := 0; i < n; i++ {
		t := float64(i) / float64(n-1)

		if err := session.RenderStaticWarp(morph.SideA, t); err != nil {
			log.Fatalf("Frame %d: %v", i, err)
		}
		if err := session.RenderStaticWarp(morph.SideB, 1-t); err != nil {
			log.Fatalf("Frame %d: %v", i, err)
		}
		morph.Blend(blended, session.Buffer(morph.SideA), session.Buffer(morph.SideB), t)

		if err := write(filepath.Join(*out, fmt.Sprintf("morph_%03d.png", i)), blended); err != nil {
			log.Fatalf("Frame %d: %v", i, err)
		}
	}

	if *overlay {
		writeOverlay(session, morph.SideA, filepath.Join(*out, "overlay_a.png"))
		writeOverlay(session, morph.SideB, filepath.Join(*out, "overlay_b.png"))
	}
	s.Stop()

	fmt.Printf("\nRendered %s%d%s frames in %s%s\n",
		utils.SuccessColor, n, utils.DefaultColor,
		utils.SuccessColor, utils.FormatTime(time.Since(start)))
	if skipped := session.SkippedTriangles(); skipped > 0 {
		fmt.Printf("%sSkipped %d degenerate triangle(s)\n", utils.DefaultColor, skipped)
	}
	fmt.Printf("%sSaved to: %s %s✓\n", utils.DefaultColor, *out, utils.SuccessColor)
}

func decode(name string) image.Image {
	f, err := os.Open(name)
	if err != nil {
		log.Fatalf("Unable to open source file: %v", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		log.Fatalf("Unable to decode image %s: %v", name, err)
	}
	return img
}

// placeLandmarks seeds the mesh pair from the -points flag. Each entry
// adds the point on the first mesh, which balances a twin onto the
// second mesh, then drags the twin to its matching location.
func placeLandmarks(pair *morph.Pair, list string) error {
	if strings.TrimSpace(list) == "" {
		return nil
	}
	for _, entry := range strings.Split(list, ";") {
		sides := strings.Split(entry, ":")
		if len(sides) != 2 {
			return fmt.Errorf("expected x1,y1:x2,y2 but got %q", entry)
		}
		x1, y1, err := parseCoord(sides[0])
		if err != nil {
			return err
		}
		x2, y2, err := parseCoord(sides[1])
		if err != nil {
			return err
		}

		i := pair.AddPoint(morph.SideA, x1, y1)
		if _, err := pair.MovePoint(morph.SideB, i, x2, y2); err != nil {
			return err
		}
	}
	return nil
}

func parseCoord(s string) (x, y float64, err error) {
	parts := strings.Split(strings.TrimSpace(s), ",")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("expected x,y but got %q", s)
	}
	x, err = strconv.ParseFloat(parts[0], 64)
	if err != nil {
		return 0, 0, err
	}
	y, err = strconv.ParseFloat(parts[1], 64)
	return x, y, err
}

// writeOverlay stacks the mesh overlay on the side's identity warp.
func writeOverlay(session *morph.Session, side morph.Side, name string) {
	if err := session.RenderStaticWarp(side, 0); err != nil {
		log.Fatalf("Overlay render: %v", err)
	}
	base := session.Buffer(side)

	composed := image.NewNRGBA(base.Bounds())
	draw.Draw(composed, composed.Bounds(), base, image.Point{}, draw.Src)

	mesh := session.Pair().Mesh(side)
	ov := morph.DrawOverlay(mesh, session.Pair().Selected(), morph.DefaultOverlayStyle())
	draw.Draw(composed, composed.Bounds(), ov, image.Point{}, draw.Over)

	if err := write(name, composed); err != nil {
		log.Fatalf("Overlay write: %v", err)
	}
}

func write(name string, img image.Image) error {
	f, err := os.Create(name)
	if err != nil {
		return err
	}
	defer f.Close()
	return png.Encode(f, img)
}
