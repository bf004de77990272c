// Package encoder streams frames into an external ffmpeg process.
//
// The process is started once with a writable stdin pipe, written
// sequentially, and always closed with a blocking wait: [Run] guarantees the
// close even when frame production fails or panics, so no encoder outlives
// the render.
package encoder
