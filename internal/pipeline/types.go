package pipeline

import (
	"context"
	"errors"
	"io"
	"time"

	"go.uber.org/zap"

	"github.com/san-kum/climaspiral/internal/encoder"
)

var ErrNotPrepared = errors.New("pipeline: Prepare has not run")

// Observer receives progress after each frame reaches the encoder.
type Observer interface {
	OnFrame(index, total int)
}

// ObserverFunc adapts a function to Observer.
type ObserverFunc func(index, total int)

func (f ObserverFunc) OnFrame(index, total int) { f(index, total) }

// EncodeFunc runs an encoder around fn. encoder.Run is the default.
type EncodeFunc func(ctx context.Context, opts encoder.Options, logger *zap.SugaredLogger, fn func(w io.Writer) error) error

type Result struct {
	Frames  int           `json:"frames"`
	Bytes   int64         `json:"bytes"`
	Elapsed time.Duration `json:"elapsed"`
	Output  string        `json:"output"`
}
