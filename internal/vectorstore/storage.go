package vectorstore

import "tablerag/internal/domain"

// Storage holds chunk vectors and supports nearest-neighbour search.
// Built once at startup, read-only afterwards.
type Storage interface {
	Build(chunks []domain.Chunk, vectors [][]float64) error
	Search(vector []float64, topK int) ([]domain.SearchResult, error)
}
