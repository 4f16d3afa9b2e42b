// @title           PDF Query & Stage API
// @version         1.0
// @description     Ingests PDF and office documents, answers questions against them and streams the originals back across storage layout generations.
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
	"syscall"

	"github.com/akolanti/DocQueryAPI/internal/config"
	"github.com/akolanti/DocQueryAPI/internal/data/stage"
	"github.com/akolanti/DocQueryAPI/internal/data/store"
	"github.com/akolanti/DocQueryAPI/internal/domain/docmodel"
	"github.com/akolanti/DocQueryAPI/internal/handlers"
	"github.com/akolanti/DocQueryAPI/internal/rag"
	"github.com/akolanti/DocQueryAPI/internal/rag/embedding/googleEmbedding"
	"github.com/akolanti/DocQueryAPI/internal/rag/ingest"
	"github.com/akolanti/DocQueryAPI/internal/rag/llm/gateway"
	"github.com/akolanti/DocQueryAPI/internal/rag/vectorDB/qdrantDB"
	"github.com/akolanti/DocQueryAPI/internal/server"
	"github.com/akolanti/DocQueryAPI/internal/streamer"
	"github.com/akolanti/DocQueryAPI/pkg/logger_i"
)

var listenAddr string

func main() {

	logger_i.Init()
	var logger = logger_i.NewLogger("main")

	//config
	flag.StringVar(&listenAddr, "listen-addr", config.ServerListenAddr, "server listen address")
	flag.Parse()

	serviceContext, closeExternalServices := context.WithCancel(context.Background())
	defer closeExternalServices()

	//document rows live in redis, fall back to memory when it is offline
	var documentStore docmodel.DocumentStore
	if redisDocs := store.GetRedisDocumentStore(serviceContext); redisDocs != nil {
		documentStore = redisDocs
	} else {
		logger.Error("Redis document store is offline, using in-memory store")
		documentStore = store.InitInMemoryDocumentStore()
	}

	embeddingService := googleEmbedding.GetGoogleEmbeddingClient(serviceContext, config.GoogleEmbeddingModel, config.GoogleEmbeddingAPIKey)
	vectorDB := qdrantDB.GetQdrantClient(serviceContext, embeddingService)
	llmProvider := gateway.GetGatewayClient(serviceContext)

	if vectorDB == nil || embeddingService == nil || llmProvider == nil {
		logger.Error("One or more external services failed to initialize. Shutting down.")
		logger.Debug("Available services : ", "VectorDB", vectorDB != nil, "EmbeddingService", embeddingService != nil, "LLMProvider", llmProvider != nil)
		return
	}

	//collections are created once here, everything after assumes they exist
	if err := vectorDB.EnsureReady(serviceContext); err != nil {
		logger.Error("Vector collections could not be prepared. Shutting down.", "error", err)
		return
	}

	stageClient := stage.NewClient(config.StageGatewayURL, config.StageGatewayToken)

	ingestService := ingest.NewService(stageClient, documentStore, vectorDB)
	ragService := rag.NewService(vectorDB, llmProvider, embeddingService)
	streamService := streamer.NewService(documentStore, streamer.NewStageProber(stageClient))

	handlers.InitServiceHandler(ingestService, ragService, streamService, documentStore)

	//server handling
	gracefulShutdown := make(chan os.Signal, 1)
	signal.Notify(gracefulShutdown, syscall.SIGINT, syscall.SIGTERM)
	stopExecution := make(chan bool, 1)

	shutdownParams := server.ShutdownParams{
		GracefulShutdown: gracefulShutdown,
		StopExecution:    stopExecution,
		CloseServices:    closeExternalServices,
	}
	go server.ShutDownHandler(shutdownParams)
	go server.CreateServer(listenAddr)

	<-stopExecution
	logger.Info("Server stopped")
}
