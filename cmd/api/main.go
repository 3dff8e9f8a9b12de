// @title           PDF Ingestion API
// @version         1.0
// @description     This API handles asynchronous PDF ingestion and file status tracking
// @termsOfService  http://swagger.io/terms/

// @contact.name    me lol
// @contact.url
// @contact.email

// @license.name    Apache 2.0
// @license.url     http://www.apache.org/licenses/LICENSE-2.0.html

// @host      localhost:3000
// @BasePath  /
// @schemes   http https
package main

import (
	"context"
	"flag"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/akolanti/IngestAPI/internal/config"
	"github.com/akolanti/IngestAPI/internal/data/objectstore"
	"github.com/akolanti/IngestAPI/internal/data/redisStore"
	"github.com/akolanti/IngestAPI/internal/data/store"
	"github.com/akolanti/IngestAPI/internal/domain/filemodel"
	jobmodel "github.com/akolanti/IngestAPI/internal/domain/jobModel"
	"github.com/akolanti/IngestAPI/internal/handlers"
	"github.com/akolanti/IngestAPI/internal/ingest"
	"github.com/akolanti/IngestAPI/internal/ingest/caption"
	"github.com/akolanti/IngestAPI/internal/ingest/embedding/googleEmbedding"
	"github.com/akolanti/IngestAPI/internal/ingest/partition"
	"github.com/akolanti/IngestAPI/internal/ingest/status"
	"github.com/akolanti/IngestAPI/internal/ingest/summarize"
	"github.com/akolanti/IngestAPI/internal/ingest/vectorupload"
	"github.com/akolanti/IngestAPI/internal/job"
	"github.com/akolanti/IngestAPI/internal/server"
	"github.com/akolanti/IngestAPI/internal/worker"
	"github.com/akolanti/IngestAPI/pkg/logger_i"
)

var (
	listenAddr        string
	requestCount      int64
	stopWorkerChannel chan bool
	workerWaitGroup   sync.WaitGroup
)

func main() {

	logger_i.Init()
	var logger = logger_i.NewLogger("main")

	//config
	if err := godotenv.Load(); err != nil {
		logger.Debug("No .env file, relying on the process environment")
	}
	flag.StringVar(&listenAddr, "listen-addr", config.ServerListenAddr, "server listen address")
	flag.Parse()

	//init buffered job channel
	jobChannel := make(chan jobmodel.Job, config.BufferLimit)
	dispatcherChannel := make(chan bool, 1)
	stopWorkerChannel = make(chan bool, 1)

	serviceContext, closeExternalServices := context.WithCancel(context.Background())
	defer closeExternalServices()

	//init job service and job store
	var jobStore jobmodel.JobStore
	if redisJobStore := store.GetRedisJobStore(serviceContext); redisJobStore != nil {
		jobStore = redisJobStore
	} else {
		logger.Error("Redis job store is offline, using in-memory store")
		jobStore = store.InitInMemoryJobStore()
	}

	serviceConfig := job.ServiceConfig{
		JobChannel:        jobChannel,
		RequestCount:      requestCount,
		DispatcherChannel: dispatcherChannel,
		JobStore:          jobStore,
	}
	logger.Info("Starting job service")
	service := job.InitJobService(serviceConfig)

	//file catalog with in-memory fallback
	var fileStore filemodel.FileStore
	if pgStore := store.GetPostgresFileStore(serviceContext); pgStore != nil {
		fileStore = pgStore
	} else if config.FALLBACK_POSTGRES_TO_INTERNALSTORE {
		logger.Error("Postgres file catalog is offline, using in-memory store")
		fileStore = store.InitInMemoryFileStore()
	} else {
		logger.Error("Postgres file catalog is offline. Shutting down.")
		return
	}

	objectStore, err := objectstore.NewS3Client(serviceContext)
	if err != nil {
		logger.Error("Object storage failed to initialize. Shutting down.", "error", err)
		return
	}

	embeddingService := googleEmbedding.GetGoogleEmbeddingClient(serviceContext, config.GoogleEmbeddingModel, config.Env("GEMINI_API_KEY", ""))
	vectorUploader := vectorupload.GetQdrantUploader(serviceContext, embeddingService)
	describer := caption.GetOpenAIVisionClient(config.Env("OPENAI_API_KEY", ""), config.CaptionModelName)
	summarizer := summarize.GetOpenAISummarizer(config.Env("OPENAI_API_KEY", ""), config.SummaryModelName)

	if embeddingService == nil || vectorUploader == nil {
		logger.Error("One or more external services failed to initialize. Shutting down.")
		logger.Debug("Available services : ", "EmbeddingService", embeddingService != nil, "VectorUploader", vectorUploader != nil)
		return
	}

	var partitioner partition.Partitioner
	if partitionURL := config.Env("UNSTRUCTURED_API_URL", ""); partitionURL != "" {
		partitioner = partition.NewUnstructuredClient(partitionURL, config.Env("UNSTRUCTURED_API_KEY", ""))
	} else {
		logger.Warn("No partitioning endpoint configured, falling back to local text extraction")
		partitioner = partition.NewLocalPDFPartitioner()
	}

	tracker := status.NewTracker(fileStore, redisStore.GetRedisStore(serviceContext, config.RedisStatusStore))

	processor := ingest.NewProcessor(ingest.ProcessorConfig{
		Partitioner:  partitioner,
		Describer:    describer,
		Summarizer:   summarizer,
		Uploader:     vectorUploader,
		Tracker:      tracker,
		Collection:   config.Env("QDRANT_COLLECTION", config.DefaultCollectionName),
		MaxChunkUnit: config.MaxChunkUnit,
	})

	handlers.InitFileJobHandler(handlers.HandlerConfig{
		Service:    service,
		Files:      fileStore,
		Objects:    objectStore,
		Vectors:    vectorUploader,
		Tracker:    tracker,
		Collection: config.Env("QDRANT_COLLECTION", config.DefaultCollectionName),
	})

	//init worker pool
	worker.InitServices(service, processor, objectStore)
	worker.InitWorkerPool(stopWorkerChannel, &workerWaitGroup)

	//server handling
	gracefulShutdown := make(chan os.Signal, 1)
	signal.Notify(gracefulShutdown, syscall.SIGINT, syscall.SIGTERM)
	stopExecution := make(chan bool, 1)

	shutdownParams := server.ShutdownParams{
		GracefulShutdown: gracefulShutdown,
		StopExecution:    stopExecution,
		WorkerStop:       stopWorkerChannel,
		Group:            &workerWaitGroup,
		CloseServices:    closeExternalServices,
	}
	go server.ShutDownHandler(shutdownParams)
	go server.CreateServer(listenAddr)

	<-stopExecution
	logger.Info("Server stopped")
}
