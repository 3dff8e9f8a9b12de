package partition

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/akolanti/IngestAPI/internal/domain/docmodel"
)

func writeTestPDF(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "doc.pdf")
	if err := os.WriteFile(path, []byte("%PDF-1.4 test"), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func pageRef(n int) *int { return &n }

func TestUnstructuredClient_Partition(t *testing.T) {
	imageBytes := []byte("fake png")

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/general/v0/general" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if err := r.ParseMultipartForm(1 << 20); err != nil {
			t.Errorf("bad multipart request: %v", err)
		}
		if got := r.FormValue("strategy"); got != "hi_res" {
			t.Errorf("strategy got %q, want hi_res", got)
		}
		if _, _, err := r.FormFile("files"); err != nil {
			t.Errorf("missing files part: %v", err)
		}

		// elements arrive page-interleaved to exercise the sort
		response := []rawElement{
			{Type: "NarrativeText", Text: "page two text"},
			{Type: "Title", Text: "page one title"},
			{Type: "Image"},
		}
		response[0].Metadata.PageNumber = pageRef(2)
		response[1].Metadata.PageNumber = pageRef(1)
		response[2].Metadata.PageNumber = pageRef(1)
		response[2].Metadata.ImageBase64 = base64.StdEncoding.EncodeToString(imageBytes)

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(response)
	}))
	defer server.Close()

	client := NewUnstructuredClient(server.URL, "")
	elements, err := client.Partition(context.Background(), writeTestPDF(t), t.TempDir())
	if err != nil {
		t.Fatalf("Partition failed: %v", err)
	}

	if len(elements) != 3 {
		t.Fatalf("got %d elements, want 3", len(elements))
	}

	// pages ascending, page 1 elements before page 2
	if elements[0].PageNumber != 1 || elements[1].PageNumber != 1 || elements[2].PageNumber != 2 {
		t.Errorf("elements not ordered by page: %+v", elements)
	}
	if elements[0].Kind != docmodel.KindText || elements[0].Text != "page one title" {
		t.Errorf("unexpected first element: %+v", elements[0])
	}
	if elements[1].Kind != docmodel.KindImage || string(elements[1].ImageData) != string(imageBytes) {
		t.Errorf("image bytes not decoded: %+v", elements[1])
	}
}

func TestUnstructuredClient_MissingPageNumberFails(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		response := []rawElement{{Type: "NarrativeText", Text: "orphan element"}}
		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(response)
	}))
	defer server.Close()

	client := NewUnstructuredClient(server.URL, "")
	_, err := client.Partition(context.Background(), writeTestPDF(t), t.TempDir())
	if err == nil {
		t.Fatal("expected an error for an element without a page number")
	}
}

func TestUnstructuredClient_EngineErrorSurfaces(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "model backend busy", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := NewUnstructuredClient(server.URL, "")
	_, err := client.Partition(context.Background(), writeTestPDF(t), t.TempDir())
	if err == nil {
		t.Fatal("expected an error for a non-200 engine response")
	}
}

func TestUnstructuredClient_SendsAPIKeyHeader(t *testing.T) {
	var gotKey string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotKey = r.Header.Get("unstructured-api-key")
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte("[]"))
	}))
	defer server.Close()

	client := NewUnstructuredClient(server.URL, "secret-key")
	if _, err := client.Partition(context.Background(), writeTestPDF(t), t.TempDir()); err != nil {
		t.Fatalf("Partition failed: %v", err)
	}
	if gotKey != "secret-key" {
		t.Errorf("api key header got %q, want secret-key", gotKey)
	}
}

func TestMapElements_RelativeImagePath(t *testing.T) {
	raw := []rawElement{{Type: "Image"}}
	raw[0].Metadata.PageNumber = pageRef(1)
	raw[0].Metadata.ImagePath = "figures/figure-1-1.jpg"

	elements, err := mapElements(raw, "/tmp/run-images")
	if err != nil {
		t.Fatalf("mapElements failed: %v", err)
	}
	if elements[0].ImagePath != filepath.Join("/tmp/run-images", "figure-1-1.jpg") {
		t.Errorf("image path got %q", elements[0].ImagePath)
	}
}
