// Package overlay plays animated stickers and composites them onto video
// frames.
package overlay

import (
	"encoding/json"
	"fmt"
	"image"
	"image/draw"
	"image/gif"
	_ "image/png"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/sirupsen/logrus"
	"gocv.io/x/gocv"
	"golang.org/x/image/webp"
)

// defaultDurationMS is used when a clip frame carries no timing of its own.
const defaultDurationMS = 50

// Frame is one animation frame: a BGRA pixel buffer plus display duration.
type Frame struct {
	BGRA       gocv.Mat
	DurationMS int
}

// Clip is an immutable, ordered animation. A zero Clip is valid and means
// "no visual overlay for this gesture".
type Clip struct {
	frames []Frame
}

// NewClip builds a clip from already-decoded frames. The clip takes
// ownership of the frame buffers.
func NewClip(frames []Frame) Clip {
	return Clip{frames: frames}
}

// Empty reports whether the clip has no frames.
func (c Clip) Empty() bool {
	return len(c.frames) == 0
}

// Len returns the number of frames.
func (c Clip) Len() int {
	return len(c.frames)
}

// Frame returns frame i. The caller must not mutate or close it.
func (c Clip) Frame(i int) *Frame {
	return &c.frames[i]
}

// Close releases the pixel buffers of all frames.
func (c *Clip) Close() {
	for i := range c.frames {
		c.frames[i].BGRA.Close()
	}
	c.frames = nil
}

// Library decodes stored clips. Load never fails: on any error it returns
// an empty clip, which disables the overlay for that gesture.
type Library interface {
	Load(path string) Clip
}

// FileLibrary loads clips from the local filesystem. Supported forms:
// animated GIF, still WebP (single frame) and a directory of PNG frames
// with an optional durations.json manifest.
type FileLibrary struct{}

// Load implements Library.
func (FileLibrary) Load(path string) Clip {
	clip, err := loadClip(path)
	if err != nil {
		logrus.WithField("path", path).WithError(err).Warn("animation load failed, overlay disabled")
		return Clip{}
	}
	return clip
}

func loadClip(path string) (Clip, error) {
	info, err := os.Stat(path)
	if err != nil {
		return Clip{}, err
	}
	if info.IsDir() {
		return loadFrameDir(path)
	}
	switch strings.ToLower(filepath.Ext(path)) {
	case ".gif":
		return loadGIF(path)
	case ".webp":
		return loadWebP(path)
	}
	return Clip{}, fmt.Errorf("unsupported clip format %q", filepath.Ext(path))
}

// loadGIF decodes every GIF frame, composing partial frames onto the
// running canvas, and carries the per-frame delays over as durations.
func loadGIF(path string) (Clip, error) {
	f, err := os.Open(path)
	if err != nil {
		return Clip{}, err
	}
	defer f.Close()

	g, err := gif.DecodeAll(f)
	if err != nil {
		return Clip{}, fmt.Errorf("decode gif: %w", err)
	}
	if len(g.Image) == 0 {
		return Clip{}, fmt.Errorf("gif has no frames")
	}

	bounds := image.Rect(0, 0, g.Config.Width, g.Config.Height)
	if bounds.Empty() {
		bounds = g.Image[0].Bounds()
	}
	canvas := image.NewRGBA(bounds)

	var clip Clip
	for i, src := range g.Image {
		draw.Draw(canvas, src.Bounds(), src, src.Bounds().Min, draw.Over)

		mat, err := imageToBGRA(canvas)
		if err != nil {
			clip.Close()
			return Clip{}, err
		}

		durMS := defaultDurationMS
		if i < len(g.Delay) && g.Delay[i] > 0 {
			durMS = g.Delay[i] * 10 // GIF delays are in 1/100 s
		}
		clip.frames = append(clip.frames, Frame{BGRA: mat, DurationMS: durMS})
	}
	return clip, nil
}

// loadWebP decodes a still WebP into a single-frame clip.
func loadWebP(path string) (Clip, error) {
	f, err := os.Open(path)
	if err != nil {
		return Clip{}, err
	}
	defer f.Close()

	img, err := webp.Decode(f)
	if err != nil {
		return Clip{}, fmt.Errorf("decode webp: %w", err)
	}

	mat, err := imageToBGRA(img)
	if err != nil {
		return Clip{}, err
	}
	return Clip{frames: []Frame{{BGRA: mat, DurationMS: defaultDurationMS}}}, nil
}

// loadFrameDir loads a lexicographically sorted PNG sequence. An optional
// durations.json manifest ({"durations": [ms, ...]}) supplies per-frame
// timing by index.
func loadFrameDir(dir string) (Clip, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return Clip{}, err
	}

	var names []string
	for _, e := range entries {
		if !e.IsDir() && strings.EqualFold(filepath.Ext(e.Name()), ".png") {
			names = append(names, e.Name())
		}
	}
	if len(names) == 0 {
		return Clip{}, fmt.Errorf("no png frames in %s", dir)
	}
	sort.Strings(names)

	durations := readDurations(filepath.Join(dir, "durations.json"))

	var clip Clip
	for i, name := range names {
		f, err := os.Open(filepath.Join(dir, name))
		if err != nil {
			clip.Close()
			return Clip{}, err
		}
		img, _, err := image.Decode(f)
		f.Close()
		if err != nil {
			clip.Close()
			return Clip{}, fmt.Errorf("decode %s: %w", name, err)
		}

		mat, err := imageToBGRA(img)
		if err != nil {
			clip.Close()
			return Clip{}, err
		}

		durMS := defaultDurationMS
		if i < len(durations) && durations[i] > 0 {
			durMS = durations[i]
		}
		clip.frames = append(clip.frames, Frame{BGRA: mat, DurationMS: durMS})
	}
	return clip, nil
}

func readDurations(path string) []int {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil
	}
	var manifest struct {
		Durations []int `json:"durations"`
	}
	if err := json.Unmarshal(data, &manifest); err != nil {
		return nil
	}
	return manifest.Durations
}

// imageToBGRA converts a decoded image into an 8UC4 Mat in BGRA order.
func imageToBGRA(img image.Image) (gocv.Mat, error) {
	b := img.Bounds()
	w, h := b.Dx(), b.Dy()

	rgba, ok := img.(*image.RGBA)
	if !ok || rgba.Bounds() != image.Rect(0, 0, w, h) {
		tmp := image.NewRGBA(image.Rect(0, 0, w, h))
		draw.Draw(tmp, tmp.Bounds(), img, b.Min, draw.Src)
		rgba = tmp
	}

	data := make([]byte, 0, w*h*4)
	for y := 0; y < h; y++ {
		row := rgba.Pix[y*rgba.Stride : y*rgba.Stride+w*4]
		for x := 0; x < w*4; x += 4 {
			data = append(data, row[x+2], row[x+1], row[x], row[x+3])
		}
	}
	return gocv.NewMatFromBytes(h, w, gocv.MatTypeCV8UC4, data)
}
