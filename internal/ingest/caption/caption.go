package caption

import (
	"context"
	"encoding/base64"
	"fmt"
	"os"

	"github.com/akolanti/IngestAPI/internal/domain/docmodel"
	"github.com/akolanti/IngestAPI/pkg/logger_i"
)

// Sentinels folded into page text in place of a description. Image
// trouble never fails a page.
const (
	SentinelDataNotFound     = "[Image data not found]"
	SentinelProcessingFailed = "[Image processing failed]"
)

// Describer turns one base64-encoded image into a textual description.
type Describer interface {
	DescribeImage(ctx context.Context, base64Image string) (string, error)
}

// CaptionElement resolves the image payload of an element under the
// known attribute shapes (inline bytes, then extracted file path) and
// returns the text to fold into the page. Never returns an error.
func CaptionElement(ctx context.Context, describer Describer, element docmodel.ContentElement, log *logger_i.Logger) string {
	imageData := element.ImageData
	if imageData == nil && element.ImagePath != "" {
		fileData, err := os.ReadFile(element.ImagePath)
		if err != nil {
			log.Warn("could not read extracted image", "path", element.ImagePath, "error", err)
		} else {
			imageData = fileData
		}
	}

	if imageData == nil {
		log.Warn("unable to find image data, skipping image", "page", element.PageNumber)
		return SentinelDataNotFound
	}

	base64Image := base64.StdEncoding.EncodeToString(imageData)
	description, err := describer.DescribeImage(ctx, base64Image)
	if err != nil {
		log.Error("image captioning failed", "page", element.PageNumber, "error", err)
		return SentinelProcessingFailed
	}

	return fmt.Sprintf("[Image Description: %s]", description)
}
