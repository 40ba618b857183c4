package imaging

import (
	"fmt"
	"os"

	"github.com/bep/imagemeta"
)

// CaptureInfo holds EXIF capture metadata extracted from a figure file.
//
// Figures cropped out of PDF pages almost never carry EXIF; photographs
// embedded verbatim sometimes do, and the camera fields are a useful hint
// when reviewing classification output.
type CaptureInfo struct {
	Make     string `json:"make,omitempty"`
	Model    string `json:"model,omitempty"`
	Software string `json:"software,omitempty"`
	Created  string `json:"created,omitempty"`
}

// Empty reports whether no capture metadata was found.
func (c *CaptureInfo) Empty() bool {
	return c == nil || (c.Make == "" && c.Model == "" && c.Software == "" && c.Created == "")
}

// wantedCaptureTags lists the EXIF tags surfaced in CaptureInfo.
var wantedCaptureTags = map[string]bool{
	"Make":             true,
	"Model":            true,
	"Software":         true,
	"DateTime":         true,
	"DateTimeOriginal": true,
}

// ReadCaptureInfo parses EXIF capture metadata from an image file.
//
// Only formats with EXIF support are inspected (jpeg, png, webp, tiff);
// other formats return an empty CaptureInfo without touching the file.
// Parse failures are returned as errors so callers can treat metadata as
// best effort.
func ReadCaptureInfo(path, format string) (*CaptureInfo, error) {
	switch format {
	case "jpeg", "png", "webp", "tiff":
	default:
		return &CaptureInfo{}, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()

	info := &CaptureInfo{}
	_, err = imagemeta.Decode(imagemeta.Options{
		R:       f,
		Sources: imagemeta.EXIF,
		ShouldHandleTag: func(ti imagemeta.TagInfo) bool {
			return ti.Source == imagemeta.EXIF && wantedCaptureTags[ti.Tag]
		},
		HandleTag: func(ti imagemeta.TagInfo) error {
			s, ok := ti.Value.(string)
			if !ok || s == "" {
				return nil
			}
			switch ti.Tag {
			case "Make":
				info.Make = s
			case "Model":
				info.Model = s
			case "Software":
				info.Software = s
			case "DateTimeOriginal":
				info.Created = s
			case "DateTime":
				if info.Created == "" {
					info.Created = s
				}
			}
			return nil
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to parse metadata: %w", err)
	}

	return info, nil
}
