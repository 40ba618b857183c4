// Package detection provides shape and structure detection for document figures.
//
// This package implements the computer vision algorithms behind figure
// classification: it detects geometric shapes (rectangles, circles, lines),
// text-shaped regions, and scatter-plot specks within images cropped out of
// PDF documents.
//
// # Shape Detection
//
// The package provides detection for common figure elements:
//
//   - Rectangles: Binarization, boundary tracing, and polygon approximation
//   - Circles: The Hough circle transform over Canny edges
//   - Lines: The Hough line transform with gap splitting and arrow detection
//   - Text regions: Morphological closing over binarized ink
//   - Small blobs: Connected-component analysis for scatter-plot dots
//
// # Algorithm Overview
//
// Detection functions follow one of two pipelines:
//
//  1. Edge-based (circles, lines): Canny edge detection, then a Hough
//     accumulator vote, then peak and duplicate filtering
//  2. Ink-based (rectangles, text, blobs): Otsu binarization with the
//     minority side as ink, then connected components, then per-component
//     shape analysis
//
// Every public Detect function has a From variant accepting a precomputed
// *BinaryMap or edge map, so a caller extracting several measures from the
// same image binarizes and edge-detects once.
//
// # Coordinate System
//
// All coordinates use the standard image convention:
//   - Origin (0, 0) at top-left corner
//   - X increases rightward
//   - Y increases downward
//   - Bounding boxes use inclusive top-left and exclusive bottom-right
//
// # Confidence Scores
//
// Detection functions return confidence scores (0.0 to 1.0) indicating how well
// a detected shape matches the expected pattern:
//   - 1.0 = Perfect match
//   - 0.5 = Moderate confidence
//   - Lower values indicate uncertain detections
//
// Confidence calculation varies by shape type:
//   - Rectangles: Based on rectangularity (boundary length vs expected perimeter)
//   - Circles: Based on edge votes in the Hough accumulator
//   - Text regions: Based on horizontal elongation
//
// # Performance Considerations
//
// Detection algorithms iterate over all pixels and may be computationally
// intensive for large images. The Hough transforms have O(n²) or O(n³)
// complexity depending on the parameter space searched.
//
// For large images, consider:
//   - Using higher minimum size thresholds to reduce false positives
//   - Limiting the search space (e.g., min/max radius for circles)
//
// # Limitations
//
// These algorithms work best on clean, high-contrast images:
//   - Figures with solid lines and fills
//   - Images without heavy compression artifacts
//   - Shapes that are reasonably close to their ideal forms
//
// Noisy images, photographs, or hand-drawn content may produce poor results.
package detection
