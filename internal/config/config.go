// Package config holds the tunable parameters of a video job.
package config

// Gesture holds classification and debouncing parameters.
type Gesture struct {
	// ConfirmFrames is the sliding-window size for gesture confirmation.
	ConfirmFrames int

	// ClearFrames is the number of consecutive empty detections that
	// clears a confirmed gesture. Must be strictly less than ConfirmFrames.
	ClearFrames int

	// ConfirmRatio is the fraction of the window a label must occupy
	// to become confirmed (0.0-1.0).
	ConfirmRatio float64

	// DetectionSkipAfterConfirm is the number of consecutive frames to
	// skip full classification once a gesture is confirmed. A value of 2
	// means 1 of every 3 frames is classified. Must be strictly less than
	// ClearFrames so a clear transition can never be missed.
	DetectionSkipAfterConfirm int

	// MaxShortSide caps the shorter frame side (pixels) before the frame
	// is handed to the landmark provider.
	MaxShortSide int
}

// Overlay holds animation playback and compositing parameters.
type Overlay struct {
	// FadeFrames is the fixed frame-count ramp for linear alpha decay.
	FadeFrames int

	// SizeMult and SizeAdd define the overlay edge length:
	// min(frameW, frameH)*SizeMult + SizeAdd pixels.
	SizeMult float64
	SizeAdd  int

	// Smooth is the exponential-moving-average coefficient for the
	// overlay center position (0.0-1.0).
	Smooth float64

	// HeartOffsetY shifts the heart overlay down by this many pixels.
	HeartOffsetY int
}

// Video holds pipeline and encoder parameters.
type Video struct {
	// DefaultFPS is used when the input container reports no frame rate.
	DefaultFPS float64

	// QueueSize is the capacity of each inter-stage frame queue.
	QueueSize int

	// WriteBatch is the number of frames accumulated before a single
	// write to the encoder stdin.
	WriteBatch int

	// FFmpegPath is the encoder binary; "ffmpeg" resolves via PATH.
	FFmpegPath string

	// FFmpegPreset and FFmpegCRF configure libx264.
	FFmpegPreset string
	FFmpegCRF    int

	// JoinTimeoutSec bounds the shutdown wait for the source and
	// processor stages. Expiry is logged, not escalated.
	JoinTimeoutSec int
}

// Watermark holds the cosmetic stamp parameters.
type Watermark struct {
	Text string

	// YPos is the relative vertical position of the text baseline
	// (0.0 = top, 1.0 = bottom).
	YPos float64

	// Opacity is the blend weight of the stamped text (0.0-1.0).
	Opacity float64
}

// Config aggregates all job parameters.
type Config struct {
	Gesture   Gesture
	Overlay   Overlay
	Video     Video
	Watermark Watermark
}

// Default returns a Config with the production default values.
func Default() Config {
	return Config{
		Gesture: Gesture{
			ConfirmFrames:             10,
			ClearFrames:               6,
			ConfirmRatio:              0.6,
			DetectionSkipAfterConfirm: 2,
			MaxShortSide:              320,
		},
		Overlay: Overlay{
			FadeFrames:   15,
			SizeMult:     0.28,
			SizeAdd:      40,
			Smooth:       0.25,
			HeartOffsetY: 20,
		},
		Video: Video{
			DefaultFPS:     30.0,
			QueueSize:      128,
			WriteBatch:     4,
			FFmpegPath:     "ffmpeg",
			FFmpegPreset:   "ultrafast",
			FFmpegCRF:      23,
			JoinTimeoutSec: 10,
		},
		Watermark: Watermark{
			Text:    "@framer_robot",
			YPos:    0.93,
			Opacity: 0.5,
		},
	}
}
