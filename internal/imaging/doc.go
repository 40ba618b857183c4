// Package imaging loads document figures and provides the pixel-level
// inspection operations the classifier tools are built on: color
// sampling, dominant-color extraction, cropping, measurement, region
// comparison, edge maps, and grid overlays.
//
// All operations take standard image.Image values. Coordinates are
// 0-based with (0,0) at the top-left corner, X increasing rightward
// and Y increasing downward. For regions, (x1,y1) is inclusive and
// (x2,y2) is exclusive.
//
// # Color representation
//
// Sampled colors are reported in several forms at once: "#RRGGBB"
// hex, 8-bit RGB and RGBA components, and HSL with hue 0-360 and
// saturation/lightness 0-100.
//
// # Caching
//
// ImageCache keeps decoded figures in memory keyed by path so that a
// sequence of tool calls against the same figure decodes it once. The
// cache is safe for concurrent use; the individual operations are
// stateless.
package imaging
