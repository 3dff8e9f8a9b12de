package docmodel

// ElementKind tags what the partitioning engine extracted from a page.
type ElementKind string

const (
	KindText  ElementKind = "Text"
	KindImage ElementKind = "Image"
)

// ContentElement is one atomic unit emitted by the partitioner, ordered
// by page number and then by document order within the page.
type ContentElement struct {
	PageNumber int         `json:"page_number"`
	Kind       ElementKind `json:"kind"`
	Text       string      `json:"text,omitempty"`

	//image payloads come back in one of two shapes depending on the
	//engine configuration: inline bytes or a path inside the run's
	//image-extraction directory
	ImageData []byte `json:"image_data,omitempty"`
	ImagePath string `json:"image_path,omitempty"`
}

// SourceDocument is the raw PDF plus the identifiers issued by the
// upload path. The pipeline references it, it never copies or owns it.
type SourceDocument struct {
	FileID   string
	FileURL  string
	FileName string
	Content  []byte
}

// SemanticChunk is a bounded contiguous slice of one page's cleaned text.
type SemanticChunk struct {
	Index int
	Text  string
}

// PageUpload carries everything the vector uploader needs for one
// completed page. Chunks and summaries are parallel, same length.
type PageUpload struct {
	FileID     string
	FileURL    string
	FileName   string
	PageNumber int
	Chunks     []SemanticChunk
	Summaries  []string
	Collection string
}
