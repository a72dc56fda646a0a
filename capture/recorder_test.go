package capture

import (
	"bytes"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	ffmpeg "github.com/u2takey/ffmpeg-go"
)

type pipe struct {
	mu     sync.Mutex
	buf    bytes.Buffer
	closed chan struct{}
	fail   error
}

func newPipe() *pipe {
	return &pipe{closed: make(chan struct{})}
}

func (p *pipe) Write(b []byte) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.fail != nil {
		return 0, p.fail
	}
	return p.buf.Write(b)
}

func (p *pipe) Close() error {
	close(p.closed)
	return nil
}

func (p *pipe) bytes() []byte {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]byte(nil), p.buf.Bytes()...)
}

func testConfig() Config {
	return Config{Width: 2, Height: 1, FPS: 30, Output: "out.mp4", Codec: "h264"}
}

func TestFramesStreamInOrder(t *testing.T) {
	p := newPipe()
	r := start(testConfig(), p, func() error {
		<-p.closed
		return nil
	})

	for i := 0; i < 5; i++ {
		require.NoError(t, r.Submit(bytes.Repeat([]byte{byte(i)}, r.FrameSize())))
	}
	require.NoError(t, r.Close())

	var want []byte
	for i := 0; i < 5; i++ {
		want = append(want, bytes.Repeat([]byte{byte(i)}, 8)...)
	}
	assert.Equal(t, want, p.bytes())
	assert.NoError(t, r.Close(), "second close is a no-op")
}

func TestSubmitRejectsWrongSize(t *testing.T) {
	p := newPipe()
	r := start(testConfig(), p, func() error {
		<-p.closed
		return nil
	})

	assert.Error(t, r.Submit(make([]byte, 3)))
	require.NoError(t, r.Close())
	assert.Empty(t, p.bytes())
	assert.ErrorIs(t, r.Submit(make([]byte, 8)), ErrClosed)
}

func TestEncoderFailure(t *testing.T) {
	p := newPipe()
	cause := errors.New("broken pipe")
	p.fail = cause
	exit := errors.New("exit status 1")
	r := start(testConfig(), p, func() error {
		<-p.closed
		return exit
	})

	// the first frame is accepted and fails in the writer; later submits
	// observe the failure
	require.NoError(t, r.Submit(make([]byte, 8)))
	<-r.failed
	assert.ErrorIs(t, r.Submit(make([]byte, 8)), cause)

	err := r.Close()
	assert.ErrorIs(t, err, cause)
	assert.ErrorIs(t, err, exit)
}

func TestStartRejectsEmptyFormat(t *testing.T) {
	_, err := Start(Config{Width: 0, Height: 10, FPS: 30})
	assert.Error(t, err)
	_, err = Start(Config{Width: 10, Height: 10})
	assert.Error(t, err)
}

func TestInputArgs(t *testing.T) {
	cfg := testConfig()
	cfg.Width, cfg.Height = 640, 360
	assert.Equal(t, ffmpeg.KwArgs{
		"f":         "rawvideo",
		"pix_fmt":   "rgba",
		"s":         "640x360",
		"framerate": 30,
	}, inputArgs(cfg))
}

func TestOutputArgs(t *testing.T) {
	cfg := testConfig()

	args := outputArgs(cfg, "linux")
	assert.Equal(t, "libx264", args["c:v"])
	assert.Equal(t, "vflip", args["vf"])
	assert.Equal(t, "yuv420p", args["pix_fmt"])
	assert.NotContains(t, args, "tag:v")

	cfg.Codec = "hevc"
	args = outputArgs(cfg, "linux")
	assert.Equal(t, "libx265", args["c:v"])
	assert.Equal(t, "hvc1", args["tag:v"])

	args = outputArgs(cfg, "darwin")
	assert.Equal(t, "hevc_videotoolbox", args["c:v"])

	cfg.Output = "out.mkv"
	assert.NotContains(t, outputArgs(cfg, "linux"), "tag:v")
}
