// Package features turns a figure image into numeric measures for
// classification.
//
// The central type is Vector, fourteen quantitative measures (aspect
// ratio, brightness, contrast, edge density, color diversity, text
// ratio, line density, circle ratio, rectangle ratio, two symmetry
// correlations, dominant color count, saturation mean, hue variance)
// computed by Extract. Extraction is pure: the same pixels always
// produce the same vector. The one randomized sub-step, k-means color
// clustering, runs from a fixed seed to keep that guarantee.
//
// Coarse is the lightweight companion used by the caption-keyword
// classifier: aspect ratio, brightness, color diversity, and edge
// density only, skipping the expensive Hough transforms.
//
// # Grayscale Input
//
// Images stored as grayscale (image.Gray, image.Gray16) skip the color
// measures: diversity and saturation report 0 and the dominant color
// count reports 1. Color images that merely look gray are still
// measured as color.
//
// # Cost
//
// Extract runs every detector in the detection package over the image.
// The Hough circle search dominates; expect extraction to be much
// slower than decoding for large figures.
package features
