package video

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gocv.io/x/gocv"

	"github.com/redjex/Framer-Bot/internal/config"
	"github.com/redjex/Framer-Bot/internal/detector"
	"github.com/redjex/Framer-Bot/internal/gesture"
	"github.com/redjex/Framer-Bot/internal/overlay"
)

// Options configures one video job. The caller resolves user identity and
// clip paths; the pipeline never touches storage itself.
type Options struct {
	// AnimationPaths maps each gesture to its clip identifier. Missing
	// or unloadable clips disable that gesture's overlay only.
	AnimationPaths map[gesture.Label]string

	// Watermark enables the cosmetic stamp. Business accounts get a
	// clean frame.
	Watermark bool

	// Config overrides the default parameters; nil uses config.Default.
	Config *config.Config

	// FPS overrides the frame rate reported by the input container.
	// Zero means use the container's rate.
	FPS float64

	// Detector, Library, Source and Sink override the production
	// collaborators; nil selects the MediaPipe subprocess, the file
	// clip loader, the OpenCV file decoder and the FFmpeg encoder.
	Detector detector.Detector
	Library  overlay.Library
	Source   Source
	Sink     FrameSink
}

// job bundles the per-job state threaded through the three stages. Each
// job owns its collaborators outright; nothing is shared across jobs.
type job struct {
	cfg        config.Config
	log        *logrus.Entry
	classifier *gesture.Classifier
	buf        *gesture.Buffer
	compositor *overlay.Compositor
	watermark  *Watermark
}

// Process runs one video job to completion: decode, classify, composite,
// encode, mux with the original audio. It blocks until the output is
// written or the job fails. There is no mid-job cancellation; shutdown
// joins are bounded and best-effort.
func Process(inputPath, outputPath string, opts Options) error {
	cfg := config.Default()
	if opts.Config != nil {
		cfg = *opts.Config
	}

	log := logrus.WithFields(logrus.Fields{
		"job":    uuid.New().String()[:8],
		"input":  inputPath,
		"output": outputPath,
	})

	src := opts.Source
	if src == nil {
		var err error
		src, err = OpenFileSource(inputPath, cfg.Video.DefaultFPS)
		if err != nil {
			return err
		}
	}

	det := opts.Detector
	if det == nil {
		var err error
		det, err = detector.NewMediaPipeDetector(detector.DefaultConfig())
		if err != nil {
			src.Close()
			return fmt.Errorf("start landmark provider: %w", err)
		}
	}

	lib := opts.Library
	if lib == nil {
		lib = overlay.FileLibrary{}
	}

	width, height := src.Size()
	fps := src.FPS()
	if opts.FPS > 0 {
		fps = opts.FPS
	}

	clips := make(map[gesture.Label]overlay.Clip, len(opts.AnimationPaths))
	for label, path := range opts.AnimationPaths {
		clips[label] = lib.Load(path)
	}

	j := &job{
		cfg:        cfg,
		log:        log,
		classifier: gesture.NewClassifier(det, cfg.Gesture),
		buf:        gesture.NewBuffer(cfg.Gesture),
		compositor: overlay.NewCompositor(clips, fps, width, height, cfg.Overlay),
	}
	if opts.Watermark {
		j.watermark = NewWatermark(cfg.Watermark)
	}

	sink := opts.Sink
	if sink == nil {
		var err error
		sink, err = StartFFmpeg(cfg.Video, width, height, fps, inputPath, outputPath)
		if err != nil {
			j.release(src, det)
			return err
		}
	}

	log.WithFields(logrus.Fields{"fps": fps, "width": width, "height": height}).Info("job started")
	start := time.Now()

	raw := make(chan gocv.Mat, cfg.Video.QueueSize)
	processed := make(chan gocv.Mat, cfg.Video.QueueSize)

	srcDone := make(chan struct{})
	procDone := make(chan struct{})
	sinkDone := make(chan error, 1)

	go func() {
		defer close(srcDone)
		j.runSource(src, raw)
	}()
	go func() {
		defer close(procDone)
		j.runProcessor(raw, processed)
	}()
	go func() {
		sinkDone <- j.runSink(processed, sink)
	}()

	// The sink is last in the chain; once it returns, join the earlier
	// stages with a bounded timeout. Expiry is logged, never escalated.
	streamErr := <-sinkDone
	joinTimeout := time.Duration(cfg.Video.JoinTimeoutSec) * time.Second
	j.join(srcDone, "source", joinTimeout)
	j.join(procDone, "processor", joinTimeout)

	j.release(src, det)

	encErr := sink.Close()

	switch {
	case streamErr != nil:
		log.WithError(streamErr).Error("job failed")
		return streamErr
	case encErr != nil:
		log.WithError(encErr).Error("job failed")
		return encErr
	}

	log.WithField("elapsed", time.Since(start).Round(time.Millisecond)).Info("job finished")
	return nil
}

// runSource decodes frames in order onto the raw queue. Any read error is
// treated as end of stream. The channel close is the end marker and is
// emitted on every exit path so the processor can never block forever.
func (j *job) runSource(src Source, out chan<- gocv.Mat) {
	defer close(out)
	for {
		frame, err := src.ReadFrame()
		if err != nil {
			return
		}
		out <- frame
	}
}

// runProcessor classifies frames (adaptively sampled), debounces the
// result, drives the compositor and stamps the watermark, all mutating the
// frame in place. Once a gesture is confirmed, full classification runs on
// only 1 of every DetectionSkipAfterConfirm+1 frames; the skip count is
// strictly less than ClearFrames, so no confirm/clear transition can be
// missed while skipping.
func (j *job) runProcessor(in <-chan gocv.Mat, out chan<- gocv.Mat) {
	defer close(out)

	skipAfterConfirm := j.cfg.Gesture.DetectionSkipAfterConfirm
	skipCount := 0
	lastRaw := gesture.None

	for frame := range in {
		shouldDetect := true
		if j.buf.Confirmed() != gesture.None && skipAfterConfirm > 0 {
			if skipCount < skipAfterConfirm {
				shouldDetect = false
				skipCount++
			} else {
				skipCount = 0
			}
		}

		var confirmed gesture.Label
		if shouldDetect {
			ev := j.classifier.Classify(&frame, j.buf.SkipRotation())
			lastRaw = ev.Label
			confirmed = j.buf.Push(ev)
		} else {
			confirmed = j.buf.Confirmed()
		}

		// The compositor needs the raw signal, not the confirmed one:
		// a vanished hand starts the fade before the buffer clears.
		nx, ny := j.buf.LastPosition()
		j.compositor.UpdateAndDraw(&frame, confirmed, lastRaw, nx, ny)

		if j.watermark != nil {
			j.watermark.Draw(&frame)
		}

		out <- frame
	}
}

// runSink batches frames and streams them to the encoder, flushing on the
// batch threshold and at end of stream. On a write failure it keeps
// draining and releasing frames so the upstream stages can finish, and
// reports the first error.
func (j *job) runSink(in <-chan gocv.Mat, sink FrameSink) error {
	var firstErr error
	var batch []byte
	batched := 0

	flush := func() {
		if batched == 0 || firstErr != nil {
			batch = batch[:0]
			batched = 0
			return
		}
		if err := sink.Write(batch); err != nil {
			firstErr = err
			j.log.WithError(err).Error("sink write failed, draining")
		}
		batch = batch[:0]
		batched = 0
	}

	for frame := range in {
		if firstErr == nil {
			batch = append(batch, frame.ToBytes()...)
			batched++
		}
		frame.Close()
		if batched >= j.cfg.Video.WriteBatch {
			flush()
		}
	}
	flush()

	return firstErr
}

// join waits for a stage with a bounded timeout.
func (j *job) join(done <-chan struct{}, stage string, timeout time.Duration) {
	select {
	case <-done:
	case <-time.After(timeout):
		j.log.WithField("stage", stage).Warn("stage join timed out")
	}
}

// release frees the per-job resources in decoder, classifier, provider,
// compositor order.
func (j *job) release(src Source, det detector.Detector) {
	if err := src.Close(); err != nil {
		j.log.WithError(err).Warn("close source")
	}
	j.classifier.Close()
	if err := det.Close(); err != nil {
		j.log.WithError(err).Warn("close detector")
	}
	j.compositor.Close()
}
