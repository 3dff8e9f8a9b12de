package caption

import (
	"context"
	"encoding/base64"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/akolanti/IngestAPI/internal/domain/docmodel"
	"github.com/akolanti/IngestAPI/pkg/logger_i"
)

type MockDescriber struct {
	OnDescribeImage func(ctx context.Context, base64Image string) (string, error)
}

func (m *MockDescriber) DescribeImage(ctx context.Context, base64Image string) (string, error) {
	if m.OnDescribeImage != nil {
		return m.OnDescribeImage(ctx, base64Image)
	}
	return "a bar chart", nil
}

func TestCaptionElement_Scenarios(t *testing.T) {
	log := logger_i.NewLogger("caption-test")
	imageBytes := []byte{0x89, 0x50, 0x4e, 0x47}

	extractedPath := filepath.Join(t.TempDir(), "figure-1.png")
	if err := os.WriteFile(extractedPath, imageBytes, 0o644); err != nil {
		t.Fatal(err)
	}

	tests := []struct {
		name      string
		element   docmodel.ContentElement
		describer *MockDescriber
		want      string
	}{
		{
			name:      "Inline_Bytes_Described",
			element:   docmodel.ContentElement{Kind: docmodel.KindImage, PageNumber: 1, ImageData: imageBytes},
			describer: &MockDescriber{},
			want:      "[Image Description: a bar chart]",
		},
		{
			name:      "Extracted_File_Described",
			element:   docmodel.ContentElement{Kind: docmodel.KindImage, PageNumber: 2, ImagePath: extractedPath},
			describer: &MockDescriber{},
			want:      "[Image Description: a bar chart]",
		},
		{
			name:      "No_Image_Data",
			element:   docmodel.ContentElement{Kind: docmodel.KindImage, PageNumber: 3},
			describer: &MockDescriber{},
			want:      SentinelDataNotFound,
		},
		{
			name:      "Unreadable_Path",
			element:   docmodel.ContentElement{Kind: docmodel.KindImage, PageNumber: 4, ImagePath: "/nonexistent/figure.png"},
			describer: &MockDescriber{},
			want:      SentinelDataNotFound,
		},
		{
			name:    "Describer_Failure",
			element: docmodel.ContentElement{Kind: docmodel.KindImage, PageNumber: 5, ImageData: imageBytes},
			describer: &MockDescriber{
				OnDescribeImage: func(ctx context.Context, base64Image string) (string, error) {
					return "", errors.New("vision model down")
				},
			},
			want: SentinelProcessingFailed,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CaptionElement(context.Background(), tt.describer, tt.element, log)
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCaptionElement_EncodesBytesForDescriber(t *testing.T) {
	log := logger_i.NewLogger("caption-test")
	imageBytes := []byte("raw image bytes")

	var received string
	describer := &MockDescriber{
		OnDescribeImage: func(ctx context.Context, base64Image string) (string, error) {
			received = base64Image
			return "ok", nil
		},
	}

	CaptionElement(context.Background(), describer, docmodel.ContentElement{
		Kind:      docmodel.KindImage,
		ImageData: imageBytes,
	}, log)

	if received != base64.StdEncoding.EncodeToString(imageBytes) {
		t.Errorf("describer received %q, want standard base64 of the raw bytes", received)
	}
}
