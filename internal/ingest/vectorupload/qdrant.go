package vectorupload

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/qdrant/go-client/qdrant"

	"github.com/akolanti/IngestAPI/internal/adapter/utils"
	"github.com/akolanti/IngestAPI/internal/config"
	"github.com/akolanti/IngestAPI/internal/domain/docmodel"
	"github.com/akolanti/IngestAPI/internal/ingest/embedding"
	"github.com/akolanti/IngestAPI/pkg/logger_i"
)

var logger *logger_i.Logger
var qdrantInstance *qdrant.Client
var once sync.Once
var dimension = uint64(config.EmbeddingOutputDimensionality)

type ClientHolder struct {
	QObj     *qdrant.Client
	embedder embedding.Embedder
}

// GetQdrantUploader wires the shared qdrant client with the embedder
// that turns chunk text into vectors at upload time.
func GetQdrantUploader(ctx context.Context, embedder embedding.Embedder) *ClientHolder {
	once.Do(func() {
		logger = logger_i.NewLogger("Qdrant")
		res := newClient()
		if res != nil {
			qdrantInstance = res
			go closeQdrant(ctx, qdrantInstance)
		}
	})

	if qdrantInstance == nil {
		return nil
	}
	return &ClientHolder{
		QObj:     qdrantInstance,
		embedder: embedder,
	}
}

func newClient() *qdrant.Client {
	host := os.Getenv("QDRANT_HOST")
	port, er := strconv.Atoi(os.Getenv("QDRANT_PORT"))

	if host == "" || er != nil {
		host = config.QdrantHost
		port = config.QdrantGrpcPort
	}

	client, err := qdrant.NewClient(&qdrant.Config{
		Host:     host,
		Port:     port,
		UseTLS:   config.QdrantUseTLS,
		PoolSize: uint(config.QdrantPoolSize),
	})
	if err != nil {
		logger.Error("could not instantiate qdrant client", "error", err)
		return nil
	}
	return client
}

func closeQdrant(ctx context.Context, qi *qdrant.Client) {
	<-ctx.Done()
	logger.Info("Shutting down Qdrant")
	err := qi.Close()
	if err != nil {
		logger.Error("could not close Qdrant", "error", err)
	}
	logger.Info("Closed Qdrant")
}

func (db *ClientHolder) EnsureCollection(ctx context.Context, collectionName string) error {
	return createCollection(ctx, db.QObj, collectionName)
}

func (db *ClientHolder) UploadPage(ctx context.Context, page docmodel.PageUpload) error {
	if len(page.Chunks) != len(page.Summaries) {
		return fmt.Errorf("mismatch: got %d chunks but %d summaries", len(page.Chunks), len(page.Summaries))
	}
	if len(page.Chunks) == 0 {
		return nil
	}

	texts := make([]string, len(page.Chunks))
	for i, chunk := range page.Chunks {
		texts[i] = chunk.Text
	}

	vectors, err := db.embedder.BatchEmbedding(ctx, texts)
	if err != nil {
		return fmt.Errorf("embedding page %d failed: %w", page.PageNumber, err)
	}
	if len(vectors) != len(page.Chunks) {
		return fmt.Errorf("mismatch: got %d chunks but %d vectors", len(page.Chunks), len(vectors))
	}

	ingestedAt := time.Now().Unix()
	points := make([]*qdrant.PointStruct, len(page.Chunks))
	for i, chunk := range page.Chunks {
		points[i] = &qdrant.PointStruct{
			Id:      qdrant.NewID(utils.GetNewUUID()),
			Vectors: qdrant.NewVectors(vectors[i]...),
			Payload: qdrant.NewValueMap(map[string]any{
				"file_id":     page.FileID,
				"file_url":    page.FileURL,
				"file_name":   page.FileName,
				"page_num":    page.PageNumber,
				"content":     chunk.Text,
				"summary":     page.Summaries[i],
				"chunk_order": chunk.Index,
				"ingested_at": ingestedAt,
			}),
		}
	}

	// Wait ensures the whole page is accepted before we report progress
	_, err = db.QObj.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: page.Collection,
		Points:         points,
		Wait:           qdrant.PtrOf(true),
	})
	if err != nil {
		return fmt.Errorf("qdrant upsert failed: %w", err)
	}

	return nil
}

func (db *ClientHolder) DeleteByFile(ctx context.Context, collectionName string, fileID string) error {
	_, err := db.QObj.Delete(ctx, &qdrant.DeletePoints{
		CollectionName: collectionName,
		Points: qdrant.NewPointsSelectorFilter(&qdrant.Filter{
			Must: []*qdrant.Condition{
				qdrant.NewMatch("file_id", fileID),
			},
		}),
		Wait: qdrant.PtrOf(true),
	})
	if err != nil {
		return fmt.Errorf("qdrant delete by file failed: %w", err)
	}
	return nil
}

func createCollection(ctx context.Context, client *qdrant.Client, collectionName string) error {
	if collectionName == "" {
		return errors.New("empty collection name")
	}

	exists, err := client.CollectionExists(ctx, collectionName)
	if err != nil {
		return err
	}
	if exists {
		return nil
	}

	err = client.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: collectionName,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     dimension,
			Distance: qdrant.Distance_Cosine,
		}),
	})
	// another run may have created it between the existence check and
	// the create call - that is not a failure
	if err != nil {
		exists, checkErr := client.CollectionExists(ctx, collectionName)
		if checkErr == nil && exists {
			return nil
		}
	}
	return err
}
