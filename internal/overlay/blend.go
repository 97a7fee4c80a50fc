package overlay

import (
	"image"

	"gocv.io/x/gocv"

	"github.com/redjex/Framer-Bot/internal/gesture"
)

// cacheKey identifies one precomputed resize: which gesture's clip, which
// frame of it, and the target edge length. Structural on purpose, so the
// cache never depends on buffer identity.
type cacheKey struct {
	label gesture.Label
	frame int
	size  int
}

// cacheEntry holds the resized overlay split into the planes the blend
// needs: float32 BGR (0..255) and float32 normalized alpha (0..1).
type cacheEntry struct {
	bgr   gocv.Mat // CV32FC3
	alpha gocv.Mat // CV32FC1
}

// resizeCache memoizes overlay resizes. The target size is constant per
// job, so the cache is bounded by gestures x clip frames and is never
// invalidated within a job.
type resizeCache struct {
	entries map[cacheKey]cacheEntry
}

func newResizeCache() *resizeCache {
	return &resizeCache{entries: make(map[cacheKey]cacheEntry)}
}

// get returns the cached planes for (label, frame index, size), computing
// them from the BGRA source on first use.
func (rc *resizeCache) get(label gesture.Label, frameIdx int, bgra *gocv.Mat, size int) cacheEntry {
	if size < 2 {
		size = 2
	}
	key := cacheKey{label: label, frame: frameIdx, size: size}
	if entry, ok := rc.entries[key]; ok {
		return entry
	}

	resized := gocv.NewMat()
	defer resized.Close()
	gocv.Resize(*bgra, &resized, image.Pt(size, size), 0, 0, gocv.InterpolationLinear)

	ch := gocv.Split(resized)

	color := gocv.NewMat()
	defer color.Close()
	gocv.Merge(ch[:3], &color)

	var entry cacheEntry
	entry.bgr = gocv.NewMat()
	color.ConvertTo(&entry.bgr, gocv.MatTypeCV32FC3)

	entry.alpha = gocv.NewMat()
	ch[3].ConvertToWithParams(&entry.alpha, gocv.MatTypeCV32F, 1.0/255.0, 0)

	for i := range ch {
		ch[i].Close()
	}

	rc.entries[key] = entry
	return entry
}

// Close releases all cached planes.
func (rc *resizeCache) Close() {
	for _, entry := range rc.entries {
		entry.bgr.Close()
		entry.alpha.Close()
	}
	rc.entries = nil
}

// blendOverlay alpha-blends a cached overlay onto dst centered at (cx, cy),
// clipped to the frame bounds: dst = src*a + dst*(1-a), with a scaled by
// alphaMul (the player's fade alpha).
func blendOverlay(dst *gocv.Mat, entry cacheEntry, cx, cy int, alphaMul float64) {
	h := dst.Rows()
	w := dst.Cols()
	s := entry.bgr.Cols()

	x1 := cx - s/2
	y1 := cy - s/2
	x2 := x1 + s
	y2 := y1 + s

	// Source / destination clip rectangles.
	sx1 := maxInt(0, -x1)
	sy1 := maxInt(0, -y1)
	ex1 := maxInt(0, x1)
	ey1 := maxInt(0, y1)
	ex2 := minInt(w, x2)
	ey2 := minInt(h, y2)
	if ex2 <= ex1 || ey2 <= ey1 {
		return
	}
	sx2 := sx1 + (ex2 - ex1)
	sy2 := sy1 + (ey2 - ey1)

	roi := dst.Region(image.Rect(ex1, ey1, ex2, ey2))
	defer roi.Close()

	roiF := gocv.NewMat()
	defer roiF.Close()
	roi.ConvertTo(&roiF, gocv.MatTypeCV32FC3)

	srcRegion := entry.bgr.Region(image.Rect(sx1, sy1, sx2, sy2))
	src := srcRegion.Clone()
	srcRegion.Close()
	defer src.Close()

	alphaRegion := entry.alpha.Region(image.Rect(sx1, sy1, sx2, sy2))
	alpha := alphaRegion.Clone()
	alphaRegion.Close()
	defer alpha.Close()

	roiData, err := roiF.DataPtrFloat32()
	if err != nil {
		return
	}
	srcData, err := src.DataPtrFloat32()
	if err != nil {
		return
	}
	alphaData, err := alpha.DataPtrFloat32()
	if err != nil {
		return
	}

	mul := float32(alphaMul)
	for i, a := range alphaData {
		af := a * mul
		if af <= 0 {
			continue
		}
		inv := 1.0 - af
		j := i * 3
		roiData[j] = srcData[j]*af + roiData[j]*inv
		roiData[j+1] = srcData[j+1]*af + roiData[j+1]*inv
		roiData[j+2] = srcData[j+2]*af + roiData[j+2]*inv
	}

	out := gocv.NewMat()
	defer out.Close()
	roiF.ConvertTo(&out, gocv.MatTypeCV8UC3)
	out.CopyTo(&roi)
}

func maxInt(a, b int) int {
	if a > b {
		return a
	}
	return b
}

func minInt(a, b int) int {
	if a < b {
		return a
	}
	return b
}
