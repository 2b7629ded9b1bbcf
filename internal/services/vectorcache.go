package services

import (
	"context"
	"fmt"
	"hash/fnv"
	"net/url"
	"strconv"

	"github.com/qdrant/go-client/qdrant"
	"go.uber.org/zap"
)

// EmbeddingCache persists embeddings of serialized texts across matching
// runs. It is a best-effort optimization: correctness never depends on it,
// and any cache failure just falls back to re-embedding.
type EmbeddingCache interface {
	InitCollection() error
	Get(ctx context.Context, text string) ([]float32, bool)
	Put(ctx context.Context, text string, embedding []float32)
}

type qdrantEmbeddingCache struct {
	client         *qdrant.Client
	collectionName string
	vectorSize     uint64
	logger         *zap.Logger
}

func NewQdrantEmbeddingCache(urlStr, apiKey, collectionName string, logger *zap.Logger) (EmbeddingCache, error) {
	parsed, err := url.Parse(urlStr)
	if err != nil {
		return nil, fmt.Errorf("invalid Qdrant URL: %w", err)
	}

	host := parsed.Hostname()
	useTLS := parsed.Scheme == "https"

	// For gRPC client, use port 6334 by default (gRPC port)
	port := 6334
	if p := parsed.Port(); p != "" {
		if v, err := strconv.Atoi(p); err == nil {
			port = v
		}
	}

	client, err := qdrant.NewClient(&qdrant.Config{
		Host:   host,
		Port:   port,
		APIKey: apiKey,
		UseTLS: useTLS,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create qdrant client: %w", err)
	}

	return &qdrantEmbeddingCache{
		client:         client,
		collectionName: collectionName,
		vectorSize:     768, // text-embedding-004 dimension
		logger:         logger,
	}, nil
}

// InitCollection implements EmbeddingCache.
func (q *qdrantEmbeddingCache) InitCollection() error {
	ctx := context.Background()

	exists, err := q.client.CollectionExists(ctx, q.collectionName)
	if err != nil {
		return fmt.Errorf("failed to check collection: %w", err)
	}

	if exists {
		return nil
	}

	err = q.client.CreateCollection(ctx, &qdrant.CreateCollection{
		CollectionName: q.collectionName,
		VectorsConfig: qdrant.NewVectorsConfig(&qdrant.VectorParams{
			Size:     q.vectorSize,
			Distance: qdrant.Distance_Cosine,
		}),
	})
	if err != nil {
		return fmt.Errorf("failed to create collection: %w", err)
	}

	q.logger.Info("qdrant embedding cache collection created",
		zap.String("collection", q.collectionName))
	return nil
}

// Get implements EmbeddingCache.
func (q *qdrantEmbeddingCache) Get(ctx context.Context, text string) ([]float32, bool) {
	filter := &qdrant.Filter{
		Must: []*qdrant.Condition{
			qdrant.NewMatch("text_hash", textHash(text)),
		},
	}

	points, err := q.client.Query(ctx, &qdrant.QueryPoints{
		CollectionName: q.collectionName,
		Filter:         filter,
		Limit:          qdrant.PtrOf(uint64(1)),
		WithVectors:    qdrant.NewWithVectors(true),
	})
	if err != nil {
		q.logger.Warn("embedding cache lookup failed", zap.Error(err))
		return nil, false
	}

	if len(points) == 0 {
		return nil, false
	}

	vectors := points[0].GetVectors().GetVector()
	if vectors == nil || len(vectors.GetData()) == 0 {
		return nil, false
	}

	return vectors.GetData(), true
}

// Put implements EmbeddingCache.
func (q *qdrantEmbeddingCache) Put(ctx context.Context, text string, embedding []float32) {
	point := &qdrant.PointStruct{
		Id:      qdrant.NewIDNum(textHashNum(text)),
		Vectors: qdrant.NewVectors(embedding...),
		Payload: qdrant.NewValueMap(map[string]interface{}{
			"text_hash": textHash(text),
		}),
	}

	_, err := q.client.Upsert(ctx, &qdrant.UpsertPoints{
		CollectionName: q.collectionName,
		Points:         []*qdrant.PointStruct{point},
	})
	if err != nil {
		q.logger.Warn("embedding cache upsert failed", zap.Error(err))
	}
}

func textHashNum(text string) uint64 {
	h := fnv.New64a()
	h.Write([]byte(text))
	return h.Sum64()
}

func textHash(text string) string {
	return strconv.FormatUint(textHashNum(text), 16)
}
