package video

import (
	"image"
	"image/color"

	"gocv.io/x/gocv"

	"github.com/redjex/Framer-Bot/internal/config"
)

// hersheyCapHeight is the approximate pixel cap height of the Hershey
// simplex font at scale 1.0, used to convert a target pixel size into a
// font scale.
const hersheyCapHeight = 22.0

// Watermark stamps a translucent text mark at a fixed relative position.
// It is layered after the gesture overlays and carries no gesture logic.
type Watermark struct {
	cfg config.Watermark
}

// NewWatermark creates a Watermark with the given parameters.
func NewWatermark(cfg config.Watermark) *Watermark {
	return &Watermark{cfg: cfg}
}

// Draw stamps the text bottom-center onto frame in place. The text is
// rendered on a copy and blended at the configured opacity.
func (w *Watermark) Draw(frame *gocv.Mat) {
	h := frame.Rows()
	fw := frame.Cols()

	short := fw
	if h < short {
		short = h
	}
	scale := float64(short) * 0.045 / hersheyCapHeight
	thickness := 1 + int(scale)

	textSize := gocv.GetTextSize(w.cfg.Text, gocv.FontHersheySimplex, scale, thickness)
	x := (fw - textSize.X) / 2
	y := int(float64(h) * w.cfg.YPos)

	stamped := frame.Clone()
	defer stamped.Close()
	gocv.PutText(&stamped, w.cfg.Text, image.Pt(x, y),
		gocv.FontHersheySimplex, scale, color.RGBA{R: 255, G: 255, B: 255, A: 255}, thickness)

	gocv.AddWeighted(stamped, w.cfg.Opacity, *frame, 1.0-w.cfg.Opacity, 0, frame)
}
