// Package capture streams rendered frames to ffmpeg.
package capture

import (
	"errors"
	"fmt"
	"io"
	"log"
	"runtime"
	"strings"

	ffmpeg "github.com/u2takey/ffmpeg-go"
)

// numBuffers is how many frames may queue ahead of the encoder.
const numBuffers = 3

// ErrClosed is returned by Submit after Close.
var ErrClosed = errors.New("capture: recorder closed")

// Config describes the recording.
type Config struct {
	Width      int
	Height     int
	FPS        int
	Output     string
	Codec      string // "h264" or "hevc"
	FFmpegPath string
}

// Frame is one RGBA8 frame, bottom row first as read back from GL.
type Frame struct {
	Pixels []byte
	PTS    int64
}

// Recorder is the consumer side of the recording. Submit is called from the
// render thread; a goroutine writes frames to ffmpeg's stdin. The goroutine
// never touches GL.
type Recorder struct {
	cfg    Config
	frames chan *Frame
	done   chan error
	failed chan struct{}
	err    error
	pts    int64
	closed bool
}

// Start launches ffmpeg and returns a recorder feeding it.
func Start(cfg Config) (*Recorder, error) {
	if cfg.Width <= 0 || cfg.Height <= 0 || cfg.FPS <= 0 {
		return nil, fmt.Errorf("invalid recording format %dx%d@%d", cfg.Width, cfg.Height, cfg.FPS)
	}

	pipeReader, pipeWriter := io.Pipe()
	ffmpegCmd := ffmpeg.Input("pipe:", inputArgs(cfg)).
		Output(cfg.Output, outputArgs(cfg, runtime.GOOS)).
		OverWriteOutput().WithInput(pipeReader).ErrorToStdOut()

	if cfg.FFmpegPath != "" {
		ffmpegCmd = ffmpegCmd.SetFfmpegPath(cfg.FFmpegPath)
	}

	log.Printf("Recording %dx%d@%d to %s", cfg.Width, cfg.Height, cfg.FPS, cfg.Output)
	return start(cfg, pipeWriter, func() error {
		// unblock pending writes once ffmpeg is gone
		defer pipeReader.Close()
		return ffmpegCmd.Run()
	}), nil
}

func start(cfg Config, w io.WriteCloser, run func() error) *Recorder {
	r := &Recorder{
		cfg:    cfg,
		frames: make(chan *Frame, numBuffers),
		done:   make(chan error, 1),
		failed: make(chan struct{}),
	}
	errc := make(chan error, 1)
	go func() {
		errc <- run()
	}()
	go r.consume(w, errc)
	return r
}

func (r *Recorder) consume(w io.WriteCloser, errc <-chan error) {
	var writeErr error
	var written int64
	for frame := range r.frames {
		if writeErr != nil {
			continue
		}
		if _, err := w.Write(frame.Pixels); err != nil {
			writeErr = fmt.Errorf("failed to write frame %d: %w", frame.PTS, err)
			r.err = writeErr
			close(r.failed)
			continue
		}
		written++
	}
	w.Close()
	runErr := <-errc
	if runErr != nil {
		runErr = fmt.Errorf("ffmpeg failed: %w", runErr)
	}
	log.Printf("Recording finished: %d frames", written)
	r.done <- errors.Join(writeErr, runErr)
}

// FrameSize is the byte size of one frame.
func (r *Recorder) FrameSize() int {
	return r.cfg.Width * r.cfg.Height * 4
}

// Submit queues one frame. It blocks while the encoder is numBuffers frames
// behind and fails once the encoder has stopped.
func (r *Recorder) Submit(pixels []byte) error {
	if r.closed {
		return ErrClosed
	}
	if len(pixels) != r.FrameSize() {
		return fmt.Errorf("frame is %d bytes, want %d", len(pixels), r.FrameSize())
	}
	select {
	case <-r.failed:
		return fmt.Errorf("encoder stopped: %w", r.err)
	default:
	}
	select {
	case r.frames <- &Frame{Pixels: pixels, PTS: r.pts}:
		r.pts++
		return nil
	case <-r.failed:
		return fmt.Errorf("encoder stopped: %w", r.err)
	}
}

// Close flushes queued frames, closes ffmpeg's input and waits for it to
// exit. Calling Close again returns nil.
func (r *Recorder) Close() error {
	if r.closed {
		return nil
	}
	r.closed = true
	close(r.frames)
	return <-r.done
}

func inputArgs(cfg Config) ffmpeg.KwArgs {
	return ffmpeg.KwArgs{
		"f":         "rawvideo",
		"pix_fmt":   "rgba",
		"s":         fmt.Sprintf("%dx%d", cfg.Width, cfg.Height),
		"framerate": cfg.FPS,
	}
}

func outputArgs(cfg Config, goos string) ffmpeg.KwArgs {
	outputArgs := ffmpeg.KwArgs{
		// GL rows arrive bottom-up
		"vf":      "vflip",
		"pix_fmt": "yuv420p",
	}

	switch goos {
	case "darwin":
		if cfg.Codec == "hevc" {
			outputArgs["c:v"] = "hevc_videotoolbox"
		} else {
			outputArgs["c:v"] = "h264_videotoolbox"
		}
	default:
		if cfg.Codec == "hevc" {
			outputArgs["c:v"] = "libx265"
		} else {
			outputArgs["c:v"] = "libx264"
		}
	}

	if cfg.Codec == "hevc" && strings.HasSuffix(cfg.Output, ".mp4") {
		outputArgs["tag:v"] = "hvc1"
	}
	return outputArgs
}
