package config

import (
	"log/slog"
	"time"
)

const (
	IS_PROD        = false
	LOG_LEVEL_PROD = slog.LevelInfo
	TRACE_ID_KEY   = "traceId"

	RATE_LIMIT_PER_SECOND       = 2
	BURST_RATE_LIMIT_PER_SECOND = 5

	//auth
	NoAuthBypass = true //flip for local runs without a token
	AuthToken    = ""

	//chunking
	ChunkSize    = 1000
	ChunkOverlap = 150

	//retrieval
	DefaultTopK           = 5
	MaxTopK               = 10
	CacheSimilarityCutoff = 0.97

	//TODO:this will differ based on the request and provider
	EmbeddingOutputDimensionality int32 = 1536
	ChunkCollectionName                 = "pdf-chunks"
	AnswerCacheCollectionName           = "answer-cache"

	//serverTimeouts
	ReadTimeout            = 5 * time.Second
	WriteTimeout           = 60 * time.Second //streaming downloads need headroom
	IdleTimeout            = 120 * time.Second
	ShutdownContextTimeout = 10 * time.Second

	//server listening port
	ServerListenAddr = ":3000"

	//vectorDB
	QdrantConnectionTimeout = 30 * time.Second
	QdrantHost              = ""
	QdrantPort              = 6333 //http
	QdrantGrpcPort          = 6334
	QdrantUseTLS            = false
	QdrantPoolSize          = 1 //2-5 is preferred for prod according to documentation

	//embeddings
	GoogleEmbeddingModel  = "gemini-embedding-001"
	GoogleEmbeddingAPIKey = ""

	//completion gateway
	CompletionGatewayURL  = "http://localhost:11434"
	CompletionModelName   = "llama3.1:8b"
	CompletionAPIKey      = ""
	CompletionCallTimeout = 60 * time.Second

	//stage gateway (object storage)
	StageGatewayURL   = "http://localhost:8200"
	StageGatewayToken = ""
	DefaultStage      = "@pdf_documents"
	PresignTTL        = 300 * time.Second
	StageCallTimeout  = 30 * time.Second

	MaxIdleConns        = 50
	MaxIdleConnsPerHost = 25
	IdleConnTimeout     = 60 * time.Second

	//redis
	redisHost     = "127.0.0.1"
	redisPort     = "6379"
	RedisAddr     = redisHost + ":" + redisPort
	RedisPassword = ""

	//redis has 16 DB we can use
	RedisDocumentStore = 0

	//document rows have no TTL - they must outlive the process
	RedisDocumentStoreTTL = time.Duration(0)
)
