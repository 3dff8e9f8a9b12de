package config

import (
	"log/slog"
	"os"
	"time"
)

const (
	IS_PROD                            = false
	LOG_LEVEL_PROD                     = slog.LevelInfo
	FALLBACK_POSTGRES_TO_INTERNALSTORE = true //if the file catalog init fails, fall back to an in-memory store
	TRACE_ID_KEY                       = "traceId"
	RATE_LIMIT_PER_SECOND              = 2
	BURST_RATE_LIMIT_PER_SECOND        = 5

	NoAuthBypass = true //local dev only - bearer auth skipped
	AuthToken    = ""

	//chunks target 80% of the unit budget so summaries and index records
	//keep headroom under model input limits
	MaxChunkUnit     = 1000 //runes
	TargetChunkRatio = 0.8

	StatusParsing   = "parsing..."
	StatusCompleted = "Completed"
	StatusFailed    = "Failed"

	EmbeddingOutputDimensionality int32 = 1536
	DefaultCollectionName               = "pdf-knowledge"

	RequestsPerNewWorkerCount int64 = 10
	MaxWorkerCount            int64 = 10
	MinWorkerCount            int64 = 1
	IdleWorkerTimeout               = 1 * time.Minute

	//serverTimeouts
	ReadTimeout            = 60 * time.Second //multipart PDF uploads need room
	WriteTimeout           = 10 * time.Second
	IdleTimeout            = 120 * time.Second
	ShutdownContextTimeout = 10 * time.Second

	//server listening port
	ServerListenAddr = ":3000"

	//job requests buffer limit
	BufferLimit = 100

	//one run may block on partitioning for minutes on a large scan
	IngestRunTimeout = 15 * time.Minute

	//vectorDB
	QdrantConnectionTimeout = 30 * time.Second
	QdrantHost              = "localhost"
	QdrantGrpcPort          = 6334
	QdrantUseTLS            = false
	QdrantPoolSize          = 1

	//partitioning engine (unstructured-compatible HTTP endpoint)
	PartitionRequestTimeout = 10 * time.Minute
	PartitionStrategy       = "hi_res"

	//openai models
	CaptionModelName = "gpt-4o-mini"
	SummaryModelName = "gpt-4o-mini"
	SummaryPrompt    = "Summarize the following passage in one or two sentences. Keep figures and named entities."
	CaptionPrompt    = "Describe this image in one sentence to a paragraph. Focus on what it shows, not how it looks."

	//embeddings
	GoogleEmbeddingModel = "gemini-embedding-001"

	MaxIdleConns        = 50
	MaxIdleConnsPerHost = 25
	IdleConnTimeout     = 60 * time.Second

	//redis
	redisHost     = "127.0.0.1"
	redisPort     = "6379"
	RedisAddr     = redisHost + ":" + redisPort
	RedisPassword = ""

	//redis has 16 DB we can use
	RedisJobStore    = 0
	RedisStatusStore = 1

	//redis timeouts
	RedisJobStoreTTL    = 24 * time.Hour
	RedisStatusStoreTTL = 24 * time.Hour

	//postgres file catalog
	PostgresConnectTimeout = 10 * time.Second

	//object storage
	DefaultS3Region = "us-east-2"
	DefaultBucket   = "ingest-api-files"
)

// Env reads an environment variable with a fallback - endpoints and
// secrets live in the environment, tunables stay constants above.
func Env(key string, fallback string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return fallback
}
