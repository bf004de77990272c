// Package render draws climate spiral frames as raster images.
//
// A [Renderer] is built once per series and holds the static layout: disc,
// threshold rings, title and rim labels. Frame n reveals the first n points
// of the spiral; the path and the current year appear only once two points
// are visible. Frames are pure functions of n, so they can be rendered
// concurrently and in any order.
package render
