package gesture

import (
	"image"

	"gocv.io/x/gocv"

	"github.com/redjex/Framer-Bot/internal/config"
	"github.com/redjex/Framer-Bot/internal/detector"
)

// rotationAngles is the fixed rotation search order.
var rotationAngles = [4]int{0, 90, 180, 270}

// Classifier searches frame rotations for a gesture and maps the detected
// position back into unrotated coordinates. It is owned by a single
// pipeline job and is not safe for concurrent use.
type Classifier struct {
	det   detector.Detector
	cfg   config.Gesture
	clahe gocv.CLAHE

	// Downscale factor for landmark inference, computed on the first
	// frame and reused for the rest of the job.
	scale    float64
	scaleSet bool
}

// NewClassifier creates a Classifier over the given landmark provider.
func NewClassifier(det detector.Detector, cfg config.Gesture) *Classifier {
	return &Classifier{
		det:   det,
		cfg:   cfg,
		clahe: gocv.NewCLAHEWithParams(3.0, image.Pt(8, 8)),
		scale: 1.0,
	}
}

// Close releases the classifier's OpenCV resources. The landmark provider
// is owned by the job and closed separately.
func (c *Classifier) Close() {
	c.clahe.Close()
}

// Classify runs the rotation search on one frame. With skipRotation set
// (the previous frames already confirmed a gesture at 0°) the canonical
// orientation is tried first and the other angles only as a fallback.
// Returns the zero Event (Label == None) when no angle yields a gesture.
func (c *Classifier) Classify(frame *gocv.Mat, skipRotation bool) Event {
	if !c.scaleSet {
		c.scale = downscaleFor(frame, c.cfg.MaxShortSide)
		c.scaleSet = true
	}

	if skipRotation {
		if ev, ok := c.detectAtAngle(frame, 0); ok {
			return ev
		}
		for _, angle := range rotationAngles {
			if angle == 0 {
				continue
			}
			if ev, ok := c.detectAtAngle(frame, angle); ok {
				return ev
			}
		}
		return Event{}
	}

	for _, angle := range rotationAngles {
		if ev, ok := c.detectAtAngle(frame, angle); ok {
			return ev
		}
	}
	return Event{}
}

// detectAtAngle prepares the frame at one rotation and applies the gesture
// rules. A provider error counts as no detection at this angle.
func (c *Classifier) detectAtAngle(frame *gocv.Mat, angle int) (Event, bool) {
	work := c.prepare(frame, angle)
	defer work.Close()

	hands, err := c.det.Detect(&work)
	if err != nil || len(hands) == 0 {
		return Event{}, false
	}

	var ev Event
	var ok bool
	if len(hands) >= 2 {
		ev, ok = detectHeart(&hands[0], &hands[1])
	} else {
		ev, ok = detectLikeDislike(&hands[0])
	}
	if !ok {
		return Event{}, false
	}

	ev.X, ev.Y = unrotate(ev.X, ev.Y, angle)
	return ev, true
}

// prepare rotates, downscales and light-normalizes the frame for the
// landmark provider. The caller owns the returned Mat.
func (c *Classifier) prepare(frame *gocv.Mat, angle int) gocv.Mat {
	work := gocv.NewMat()
	switch angle {
	case 90:
		gocv.Rotate(*frame, &work, gocv.Rotate90Clockwise)
	case 180:
		gocv.Rotate(*frame, &work, gocv.Rotate180Clockwise)
	case 270:
		gocv.Rotate(*frame, &work, gocv.Rotate90CounterClockwise)
	default:
		frame.CopyTo(&work)
	}

	if c.scale < 1.0 {
		w := work.Cols()
		h := work.Rows()
		nw := int(float64(w) * c.scale)
		nh := int(float64(h) * c.scale)
		if nw < 1 {
			nw = 1
		}
		if nh < 1 {
			nh = 1
		}
		scaled := gocv.NewMat()
		gocv.Resize(work, &scaled, image.Pt(nw, nh), 0, 0, gocv.InterpolationArea)
		work.Close()
		work = scaled
	}

	c.normalizeLighting(&work)
	return work
}

// normalizeLighting removes the dependence on ambient colored illumination:
// CLAHE on the LAB luminance channel for local contrast, then each BGR
// channel stretched to the full range independently so a dominant tint
// (blue stage light and the like) cannot drown the skin tones.
func (c *Classifier) normalizeLighting(img *gocv.Mat) {
	lab := gocv.NewMat()
	defer lab.Close()
	gocv.CvtColor(*img, &lab, gocv.ColorBGRToLab)

	labCh := gocv.Split(lab)
	c.clahe.Apply(labCh[0], &labCh[0])
	gocv.Merge(labCh, &lab)
	for i := range labCh {
		labCh[i].Close()
	}
	gocv.CvtColor(lab, img, gocv.ColorLabToBGR)

	bgr := gocv.Split(*img)
	for i := range bgr {
		gocv.Normalize(bgr[i], &bgr[i], 0, 255, gocv.NormMinMax)
	}
	gocv.Merge(bgr, img)
	for i := range bgr {
		bgr[i].Close()
	}
}

// downscaleFor caps the shorter frame side at maxShortSide pixels.
func downscaleFor(frame *gocv.Mat, maxShortSide int) float64 {
	short := frame.Rows()
	if frame.Cols() < short {
		short = frame.Cols()
	}
	if short <= maxShortSide || short == 0 {
		return 1.0
	}
	return float64(maxShortSide) / float64(short)
}
