package encoder

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os/exec"
	"strconv"
	"strings"
	"sync"

	"go.uber.org/zap"

	"github.com/san-kum/climaspiral/internal/config"
	"github.com/san-kum/climaspiral/internal/log"
)

var commandContext = exec.CommandContext

var (
	ErrEncoderFailed = errors.New("encoder failed")
	ErrClosed        = errors.New("encoder closed")
)

// Options configures one encoder invocation.
type Options struct {
	Binary      string
	FrameRate   int
	Codec       string
	Bitrate     string
	PixelFormat string
	Output      string
	Width       int
	Height      int
}

// OptionsFrom combines the encoder config with the frame size.
func OptionsFrom(cfg config.EncoderConfig, width, height int) Options {
	return Options{
		Binary:      cfg.Binary,
		FrameRate:   cfg.FrameRate,
		Codec:       cfg.Codec,
		Bitrate:     cfg.Bitrate,
		PixelFormat: cfg.PixelFormat,
		Output:      cfg.Output,
		Width:       width,
		Height:      height,
	}
}

// Args builds the ffmpeg argument list: PNG frames on stdin, one video file
// out.
func (o Options) Args() []string {
	args := []string{
		"-y",
		"-loglevel", "error",
		"-f", "image2pipe",
		"-c:v", "png",
	}
	if o.Width > 0 && o.Height > 0 {
		args = append(args, "-s", fmt.Sprintf("%dx%d", o.Width, o.Height))
	}
	args = append(args,
		"-framerate", strconv.Itoa(o.FrameRate),
		"-i", "-",
	)
	if o.Codec != "" {
		args = append(args, "-c:v", o.Codec)
	}
	if o.Bitrate != "" {
		args = append(args, "-b:v", o.Bitrate)
	}
	if o.PixelFormat != "" {
		args = append(args, "-pix_fmt", o.PixelFormat)
	}
	return append(args, o.Output)
}

// Available reports whether the encoder binary can be found.
func Available(binary string) error {
	binary = strings.TrimSpace(binary)
	if binary == "" {
		return errors.New("encoder binary not set")
	}
	if _, err := exec.LookPath(binary); err != nil {
		return fmt.Errorf("encoder %q not found: %w", binary, err)
	}
	return nil
}

// Process is a running encoder. It is not safe for concurrent writes.
type Process struct {
	cmd     *exec.Cmd
	stdin   io.WriteCloser
	stderr  *tailBuffer
	logger  *zap.SugaredLogger
	written int64

	closeOnce sync.Once
	closeErr  error
	closed    bool
}

// Start launches the encoder.
func Start(ctx context.Context, opts Options, logger *zap.SugaredLogger) (*Process, error) {
	if strings.TrimSpace(opts.Output) == "" {
		return nil, errors.New("encoder output path required")
	}
	binary := strings.TrimSpace(opts.Binary)
	if binary == "" {
		binary = "ffmpeg"
	}
	logger = log.OrNop(logger)

	cmd := commandContext(ctx, binary, opts.Args()...) //nolint:gosec
	stdin, err := cmd.StdinPipe()
	if err != nil {
		return nil, fmt.Errorf("stdin pipe: %w", err)
	}
	tail := newTailBuffer(4096)
	cmd.Stderr = tail

	if err := cmd.Start(); err != nil {
		return nil, fmt.Errorf("start %s: %w", binary, err)
	}
	logger.Debugw("encoder started", "binary", binary, "pid", cmd.Process.Pid, "output", opts.Output)

	return &Process{cmd: cmd, stdin: stdin, stderr: tail, logger: logger}, nil
}

func (p *Process) Write(b []byte) (int, error) {
	if p.closed {
		return 0, ErrClosed
	}
	n, err := p.stdin.Write(b)
	p.written += int64(n)
	if err != nil {
		return n, fmt.Errorf("write to encoder: %w", err)
	}
	return n, nil
}

// Written returns the number of bytes accepted so far.
func (p *Process) Written() int64 {
	return p.written
}

// Close closes stdin and waits for the process to exit. Later calls return
// the first result.
func (p *Process) Close() error {
	p.closeOnce.Do(func() {
		p.closed = true
		closeErr := p.stdin.Close()
		waitErr := p.cmd.Wait()
		switch {
		case waitErr != nil:
			p.closeErr = fmt.Errorf("%w: %v: %s", ErrEncoderFailed, waitErr, p.stderr.String())
		case closeErr != nil && !errors.Is(closeErr, io.ErrClosedPipe):
			p.closeErr = fmt.Errorf("close encoder stdin: %w", closeErr)
		}
		p.logger.Debugw("encoder exited", "bytes", p.written, "error", p.closeErr)
	})
	return p.closeErr
}

// Run starts the encoder, hands it to fn, then closes and waits whatever fn
// does. fn's error takes precedence over the encoder's.
func Run(ctx context.Context, opts Options, logger *zap.SugaredLogger, fn func(w io.Writer) error) (err error) {
	p, err := Start(ctx, opts, logger)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := p.Close(); err == nil {
			err = cerr
		}
	}()
	return fn(p)
}

// tailBuffer keeps the last max bytes written to it.
type tailBuffer struct {
	mu  sync.Mutex
	buf []byte
	max int
}

func newTailBuffer(max int) *tailBuffer {
	return &tailBuffer{max: max}
}

func (t *tailBuffer) Write(p []byte) (int, error) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.buf = append(t.buf, p...)
	if over := len(t.buf) - t.max; over > 0 {
		t.buf = append(t.buf[:0], t.buf[over:]...)
	}
	return len(p), nil
}

func (t *tailBuffer) String() string {
	t.mu.Lock()
	defer t.mu.Unlock()
	return strings.TrimSpace(string(t.buf))
}
