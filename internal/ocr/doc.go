// Package ocr extracts text from figures using the Tesseract engine
// (via gosseract/v2).
//
// Figures in scientific documents carry axis labels, legends, and
// embedded captions that the pixel heuristics cannot read. This
// package recovers that text for the figure_ocr, figure_text_blocks,
// and ocr_info tools and, when enabled, to enrich caption keyword
// scoring.
//
// # Build modes
//
// Tesseract is a native library, so the real backend is gated behind
// cgo. Builds with CGO_ENABLED=0 get stubs that return ErrUnavailable
// from every recognition function; Info reports Available=false so
// callers can degrade cleanly instead of failing.
//
// With cgo, Tesseract and its language data must be installed on the
// system:
//   - Ubuntu/Debian: apt-get install tesseract-ocr tesseract-ocr-eng
//   - macOS: brew install tesseract
//
// # Languages
//
// Recognition functions take a Tesseract language spec: one code
// ("eng", "deu", "fra", "chi_sim") or several joined with '+'
// ("eng+deu"). Info lists the traineddata sets the engine can see.
//
// # Functions
//
//   - ExtractText: full-image OCR with word bounding boxes
//   - ExtractTextFromRegion: OCR on one rectangle of an in-memory
//     image, word boxes reported in full-image coordinates
//   - DetectBlocks: text block locations without content
//
// OCR is slow relative to the pixel pipeline. Crop to a region of
// interest when one is known, and use DetectBlocks to find candidate
// areas before recognizing them.
package ocr
