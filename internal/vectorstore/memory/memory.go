package memory

import (
	"fmt"
	"sort"
	"sync"

	"tablerag/internal/domain"
)

// Storage is a brute-force flat index over squared Euclidean distance.
// Slot ids are assigned 0..N-1 in build order. The index is write-once:
// after Build it is never mutated, so concurrent searches need no
// coordination beyond the guard around Build itself.
type Storage struct {
	mu        sync.RWMutex
	dimension int
	vectors   [][]float64
	chunks    []domain.Chunk
}

func NewStorage() *Storage { return &Storage{} }

func (s *Storage) Build(chunks []domain.Chunk, vectors [][]float64) error {
	if len(vectors) == 0 {
		return domain.ErrEmptyIndex
	}
	if len(chunks) != len(vectors) {
		return fmt.Errorf("chunks and vectors length mismatch: %d vs %d", len(chunks), len(vectors))
	}
	dimension := len(vectors[0])
	if dimension == 0 {
		return fmt.Errorf("%w: zero-length vector at slot 0", domain.ErrDimensionMismatch)
	}
	for i, v := range vectors {
		if len(v) != dimension {
			return fmt.Errorf("%w: slot %d has dimension %d, want %d",
				domain.ErrDimensionMismatch, i, len(v), dimension)
		}
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dimension = dimension
	s.vectors = vectors
	s.chunks = chunks
	return nil
}

// Search returns the min(topK, N) stored chunks closest to the query,
// ascending by squared Euclidean distance, ties broken by ascending
// slot id.
func (s *Storage) Search(vector []float64, topK int) ([]domain.SearchResult, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if len(s.vectors) == 0 {
		return nil, domain.ErrEmptyIndex
	}
	if len(vector) != s.dimension {
		return nil, fmt.Errorf("%w: query has dimension %d, index has %d",
			domain.ErrDimensionMismatch, len(vector), s.dimension)
	}
	if topK <= 0 {
		topK = 5
	}
	results := make([]domain.SearchResult, len(s.vectors))
	for i := range s.vectors {
		results[i] = domain.SearchResult{
			ID:       i,
			Chunk:    s.chunks[i],
			Distance: squaredDistance(s.vectors[i], vector),
		}
	}
	sort.Slice(results, func(i, j int) bool {
		if results[i].Distance != results[j].Distance {
			return results[i].Distance < results[j].Distance
		}
		return results[i].ID < results[j].ID
	})
	if topK > len(results) {
		topK = len(results)
	}
	return results[:topK], nil
}

func squaredDistance(a, b []float64) float64 {
	sum := 0.0
	for i := range a {
		d := a[i] - b[i]
		sum += d * d
	}
	return sum
}
