package qdrantDB

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"sync"

	"github.com/akolanti/DocQueryAPI/internal/config"
	"github.com/akolanti/DocQueryAPI/internal/domain/docmodel"
	"github.com/akolanti/DocQueryAPI/internal/faults"
	"github.com/akolanti/DocQueryAPI/internal/rag/embedding"
	"github.com/akolanti/DocQueryAPI/pkg/logger_i"
	"github.com/qdrant/go-client/qdrant"
)

var logger *logger_i.Logger
var qdrantInstance *qdrant.Client
var once sync.Once
var dimension = uint64(config.EmbeddingOutputDimensionality)

const chunkCollection = config.ChunkCollectionName

// ClientHolder implements vectorDB.DataProcessor on qdrant. The embedder
// rides along so chunk vectors are computed at insert time, inside the store.
type ClientHolder struct {
	QObj     *qdrant.Client
	embedder embedding.Embedder
}

func GetQdrantClient(ctx context.Context, embedder embedding.Embedder) *ClientHolder {
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
		logger.Error("could not instantiate: ", "error:", err)
		return nil
	}
	return client
}

func closeQdrant(ctx context.Context, qi *qdrant.Client) {
	<-ctx.Done()
	logger.Info("Shutting down Qdrant")
	if err := qi.Close(); err != nil {
		logger.Error("could not close Qdrant: ", "error:", err)
	}
	logger.Info("Closed Qdrant")
}

// EnsureReady creates both collections if they are missing. Idempotent and
// called once from startup, not per request.
func (db *ClientHolder) EnsureReady(ctx context.Context) error {
	if err := createCollection(ctx, db.QObj, chunkCollection); err != nil {
		return faults.Upstreamf("vector store bootstrap", err)
	}
	if err := createCollection(ctx, db.QObj, config.AnswerCacheCollectionName); err != nil {
		return faults.Upstreamf("vector store bootstrap", err)
	}
	return nil
}

// InsertChunk embeds the normalized text and upserts one point carrying the
// full chunk row plus enough document fields to project RetrievedSource at
// query time without a join.
func (db *ClientHolder) InsertChunk(ctx context.Context, doc docmodel.Document, chunk docmodel.Chunk) error {
	vector, err := db.embedder.GetEmbedding(ctx, chunk.Text)
	if err != nil {
		return faults.Upstreamf("chunk embedding", err)
	}

	point := &qdrant.PointStruct{
		Id:      qdrant.NewID(chunk.ChunkId),
		Vectors: qdrant.NewVectors(vector...),
		Payload: qdrant.NewValueMap(map[string]any{
			"chunk_id":        chunk.ChunkId,
			"file_id":         chunk.FileId,
			"page_number":     int64(chunk.PageNumber),
			"chunk_index":     int64(chunk.ChunkIndex),
			"content":         chunk.Text,
			"char_start":      int64(chunk.CharStart),
			"char_end":        int64(chunk.CharEnd),
			"filename":        doc.Filename,
			"stage_path":      doc.StagePath,
			"stage_reference": doc.StageReference,
			"created_at":      chunk.CreatedAt.Unix(),
		}),
	}

	_, err = db.QObj.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: chunkCollection,
		Points:         []*qdrant.PointStruct{point},
		Wait:           qdrant.PtrOf(true),
	})
	if err != nil {
		return faults.Upstreamf("chunk upsert", fmt.Errorf("qdrant upsert failed: %w", err))
	}
	return nil
}

// Search runs the cosine similarity query, restricted to fileIds when the
// caller scoped the question to specific documents.
func (db *ClientHolder) Search(ctx context.Context, queryVector []float32, fileIds []string, limit int) ([]docmodel.RetrievedSource, error) {
	log := logger.WithTrace(ctx)

	queryPoints := &qdrant.QueryPoints{
		CollectionName: chunkCollection,
		Query:          qdrant.NewQuery(queryVector...),
		Limit:          qdrant.PtrOf(uint64(limit)),
		WithPayload:    qdrant.NewWithPayload(true),
	}
	if len(fileIds) > 0 {
		queryPoints.Filter = &qdrant.Filter{
			Must: []*qdrant.Condition{
				qdrant.NewMatchKeywords("file_id", fileIds...),
			},
		}
	}

	result, err := db.QObj.Query(ctx, queryPoints)
	if err != nil {
		log.Error("Error querying Qdrant: ", "error:", err)
		return nil, faults.Upstreamf("similarity search", err)
	}

	sources := make([]docmodel.RetrievedSource, 0, len(result))
	for _, hit := range result {
		p := hit.Payload
		sources = append(sources, docmodel.RetrievedSource{
			ChunkId:        p["chunk_id"].GetStringValue(),
			FileId:         p["file_id"].GetStringValue(),
			PageNumber:     int(p["page_number"].GetIntegerValue()),
			ChunkIndex:     int(p["chunk_index"].GetIntegerValue()),
			Text:           p["content"].GetStringValue(),
			CharStart:      int(p["char_start"].GetIntegerValue()),
			CharEnd:        int(p["char_end"].GetIntegerValue()),
			Filename:       p["filename"].GetStringValue(),
			StagePath:      p["stage_path"].GetStringValue(),
			StageReference: p["stage_reference"].GetStringValue(),
			Relevance:      hit.Score,
		})
	}

	log.Debug("Similarity search done", "hits", len(sources))
	return sources, nil
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
	return err
}
