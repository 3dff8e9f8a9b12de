package partition

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"
	"path/filepath"
	"sort"

	"github.com/akolanti/IngestAPI/internal/config"
	"github.com/akolanti/IngestAPI/internal/customHttpClient"
	"github.com/akolanti/IngestAPI/internal/domain/docmodel"
	"github.com/akolanti/IngestAPI/pkg/logger_i"
)

// UnstructuredClient drives an unstructured-compatible partitioning
// endpoint in high-fidelity mode with embedded-image detection and
// table-structure inference.
type UnstructuredClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
	logger     *logger_i.Logger
}

// rawElement is the engine's wire shape for one element.
type rawElement struct {
	Type     string `json:"type"`
	Text     string `json:"text"`
	Metadata struct {
		PageNumber  *int   `json:"page_number"`
		ImageBase64 string `json:"image_base64"`
		ImagePath   string `json:"image_path"`
	} `json:"metadata"`
}

func NewUnstructuredClient(baseURL string, apiKey string) *UnstructuredClient {
	return &UnstructuredClient{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: customHttpClient.NewPooledClient(config.PartitionRequestTimeout),
		logger:     logger_i.NewLogger("Partitioner"),
	}
}

func (c *UnstructuredClient) Partition(ctx context.Context, filePath string, imageDir string) ([]docmodel.ContentElement, error) {
	log := c.logger.With("traceId", ctx.Value(config.TRACE_ID_KEY))
	log.Debug("partitioning document", "path", filePath)

	body, contentType, err := buildRequestBody(filePath)
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/general/v0/general", body)
	if err != nil {
		return nil, fmt.Errorf("building partition request: %w", err)
	}
	req.Header.Set("Content-Type", contentType)
	req.Header.Set("Accept", "application/json")
	if c.apiKey != "" {
		req.Header.Set("unstructured-api-key", c.apiKey)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("partition call failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		detail, _ := io.ReadAll(io.LimitReader(resp.Body, 1024))
		return nil, fmt.Errorf("partition engine returned %d: %s", resp.StatusCode, detail)
	}

	var raw []rawElement
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("decoding partition response: %w", err)
	}

	return mapElements(raw, imageDir)
}

func buildRequestBody(filePath string) (io.Reader, string, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, "", fmt.Errorf("opening pdf for partitioning: %w", err)
	}
	defer file.Close()

	var buf bytes.Buffer
	writer := multipart.NewWriter(&buf)

	part, err := writer.CreateFormFile("files", filepath.Base(filePath))
	if err != nil {
		return nil, "", err
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, "", fmt.Errorf("copying pdf into request: %w", err)
	}

	_ = writer.WriteField("strategy", config.PartitionStrategy)
	_ = writer.WriteField("pdf_infer_table_structure", "true")
	_ = writer.WriteField("extract_image_block_types", `["Image"]`)

	if err := writer.Close(); err != nil {
		return nil, "", err
	}
	return &buf, writer.FormDataContentType(), nil
}

// mapElements converts wire elements to ContentElements, keeping the
// engine's within-page order and sorting pages ascending. Any element
// without a page number makes the whole run unprocessable.
func mapElements(raw []rawElement, imageDir string) ([]docmodel.ContentElement, error) {
	elements := make([]docmodel.ContentElement, 0, len(raw))

	for i, el := range raw {
		if el.Metadata.PageNumber == nil || *el.Metadata.PageNumber < 1 {
			return nil, fmt.Errorf("element %d has no page number, cannot process document", i)
		}

		element := docmodel.ContentElement{
			PageNumber: *el.Metadata.PageNumber,
			Kind:       docmodel.KindText,
			Text:       el.Text,
		}

		if el.Type == "Image" {
			element.Kind = docmodel.KindImage
			element.Text = ""
			if el.Metadata.ImageBase64 != "" {
				data, err := base64.StdEncoding.DecodeString(el.Metadata.ImageBase64)
				if err == nil {
					element.ImageData = data
				}
			} else if el.Metadata.ImagePath != "" {
				// engine-relative paths land inside the run's image dir
				element.ImagePath = filepath.Join(imageDir, filepath.Base(el.Metadata.ImagePath))
			}
		}

		elements = append(elements, element)
	}

	sort.SliceStable(elements, func(i, j int) bool {
		return elements[i].PageNumber < elements[j].PageNumber
	})
	return elements, nil
}
