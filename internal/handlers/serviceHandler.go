package handlers

import (
	"sync"

	"github.com/akolanti/DocQueryAPI/internal/domain/docmodel"
	"github.com/akolanti/DocQueryAPI/internal/rag"
	"github.com/akolanti/DocQueryAPI/internal/rag/ingest"
	"github.com/akolanti/DocQueryAPI/internal/streamer"
	"github.com/akolanti/DocQueryAPI/pkg/logger_i"
)

var (
	handlerInstance *ServiceHandler //private singleton
	once            sync.Once
	logRH           *logger_i.Logger
)

type ServiceHandler struct {
	ingest   *ingest.Service
	rag      rag.Service
	streamer *streamer.Service
	docs     docmodel.DocumentStore
}

func InitServiceHandler(ingestService *ingest.Service, ragService rag.Service, streamService *streamer.Service, docs docmodel.DocumentStore) {
	once.Do(func() {
		handlerInstance = &ServiceHandler{
			ingest:   ingestService,
			rag:      ragService,
			streamer: streamService,
			docs:     docs,
		}
		logRH = logger_i.NewLogger("RequestHandler")
		logRH.Info("Starting request handlers")
	})
}
