//go:build cgo

package ocr

import (
	"fmt"
	"image"
	"os"
	"strings"

	"github.com/disintegration/imaging"
	"github.com/otiai10/gosseract/v2"
)

const backendName = "tesseract"

// ExtractText runs OCR over a whole image file and returns the
// recognized text with word-level bounding boxes.
//
// language is a Tesseract language spec: a single code ("eng") or
// several joined with '+' ("eng+deu"). The empty string keeps the
// engine default. The matching traineddata files must be installed on
// the system.
//
// Word boxes are best effort. When the engine cannot produce them the
// recognized text is still returned with an empty Words slice.
func ExtractText(imagePath string, language string) (*Result, error) {
	client := gosseract.NewClient()
	defer client.Close()

	if err := configureClient(client, imagePath, language); err != nil {
		return nil, err
	}

	text, err := client.Text()
	if err != nil {
		return nil, fmt.Errorf("recognize text: %w", err)
	}

	words := []Word{}
	if boxes, err := client.GetBoundingBoxes(gosseract.RIL_WORD); err == nil {
		for _, box := range boxes {
			words = append(words, Word{
				Text:       box.Word,
				Confidence: float64(box.Confidence) / 100.0,
				Bounds:     boundsFromRect(box.Box),
			})
		}
	}

	return &Result{FullText: text, Words: words}, nil
}

// ExtractTextFromRegion runs OCR over one rectangular region of an
// in-memory image. The region is clamped to the image bounds; word
// boxes in the result are reported in the coordinates of the full
// image, not the crop.
//
// The crop goes through a temporary PNG because Tesseract reads from
// a file path. The file is removed before returning.
func ExtractTextFromRegion(img image.Image, x1, y1, x2, y2 int, language string) (*Result, error) {
	region := clampRegion(img.Bounds(), x1, y1, x2, y2)
	if region.Empty() {
		return nil, fmt.Errorf("region (%d,%d)-(%d,%d) lies outside the image", x1, y1, x2, y2)
	}

	cropped := imaging.Crop(img, region)

	tmpPath, err := SaveImageToTemp(cropped, "ocr-region")
	if err != nil {
		return nil, err
	}
	defer os.Remove(tmpPath)

	result, err := ExtractText(tmpPath, language)
	if err != nil {
		return nil, err
	}

	for i := range result.Words {
		result.Words[i].Bounds.X1 += region.Min.X
		result.Words[i].Bounds.Y1 += region.Min.Y
		result.Words[i].Bounds.X2 += region.Min.X
		result.Words[i].Bounds.Y2 += region.Min.Y
	}

	return result, nil
}

// DetectBlocks locates text blocks in an image file without returning
// their content. Blocks whose recognition confidence falls below
// minConfidence (0.0 to 1.0) are dropped.
func DetectBlocks(imagePath string, minConfidence float64) (*BlocksResult, error) {
	client := gosseract.NewClient()
	defer client.Close()

	if err := configureClient(client, imagePath, ""); err != nil {
		return nil, err
	}

	boxes, err := client.GetBoundingBoxes(gosseract.RIL_BLOCK)
	if err != nil {
		return nil, fmt.Errorf("locate text blocks: %w", err)
	}

	blocks := []Block{}
	for _, box := range boxes {
		confidence := float64(box.Confidence) / 100.0
		if confidence < minConfidence {
			continue
		}
		blocks = append(blocks, Block{
			Bounds:     boundsFromRect(box.Box),
			Confidence: confidence,
		})
	}

	return &BlocksResult{Blocks: blocks, Count: len(blocks)}, nil
}

// Info probes the compiled-in Tesseract backend. Available is true
// whenever the native library is linked; Languages lists the
// installed traineddata sets when the engine can enumerate them.
func Info() EngineInfo {
	client := gosseract.NewClient()
	defer client.Close()

	info := EngineInfo{
		Available: true,
		Backend:   backendName,
		Version:   client.Version(),
	}

	if langs, err := client.GetAvailableLanguages(); err != nil {
		info.Error = err.Error()
	} else {
		info.Languages = langs
	}

	return info
}

// configureClient points a gosseract client at an image file and
// applies the language spec. '+'-joined codes are split because the
// client takes languages as separate arguments.
func configureClient(client *gosseract.Client, imagePath string, language string) error {
	if _, err := os.Stat(imagePath); err != nil {
		return fmt.Errorf("open image: %w", err)
	}

	if err := client.SetImage(imagePath); err != nil {
		return fmt.Errorf("set image: %w", err)
	}

	if language != "" {
		if err := client.SetLanguage(strings.Split(language, "+")...); err != nil {
			return fmt.Errorf("set language %q: %w", language, err)
		}
	}

	return nil
}

func boundsFromRect(r image.Rectangle) Bounds {
	return Bounds{X1: r.Min.X, Y1: r.Min.Y, X2: r.Max.X, Y2: r.Max.Y}
}
