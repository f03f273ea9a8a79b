package retriever

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tablerag/internal/domain"
	"tablerag/internal/vectorstore/memory"
)

// stubEmbedder returns a fixed vector for every query.
type stubEmbedder struct {
	vector []float64
	err    error
}

func (s *stubEmbedder) ModelName() string { return "stub" }

func (s *stubEmbedder) Embed(ctx context.Context, text string) ([]float64, error) {
	return s.vector, s.err
}

func (s *stubEmbedder) EmbedBatch(ctx context.Context, texts []string) ([][]float64, error) {
	out := make([][]float64, len(texts))
	for i := range texts {
		out[i] = s.vector
	}
	return out, s.err
}

func buildStore(t *testing.T) *memory.Storage {
	t.Helper()
	store := memory.NewStorage()
	chunks := []domain.Chunk{
		{Index: 0, Text: "A"},
		{Index: 1, Text: "B"},
		{Index: 2, Text: "C"},
	}
	// query vector {0,0}: B closest, then A, C far away
	vectors := [][]float64{
		{1, 0},
		{0.5, 0},
		{3, 0},
	}
	require.NoError(t, store.Build(chunks, vectors))
	return store
}

func TestRetrieveRanksAndJoinsContext(t *testing.T) {
	r := New(&stubEmbedder{vector: []float64{0, 0}}, buildStore(t), 5)

	bundle, err := r.Retrieve(context.Background(), "who?", 2)
	require.NoError(t, err)
	require.Len(t, bundle.Results, 2)

	assert.Equal(t, "B", bundle.Results[0].Chunk.Text)
	assert.Equal(t, "A", bundle.Results[1].Chunk.Text)
	assert.Less(t, strings.Index(bundle.Context, "B"), strings.Index(bundle.Context, "A"))
	assert.NotContains(t, bundle.Context, "C")
	assert.Equal(t, "B"+ContextSeparator+"A", bundle.Context)
	assert.Equal(t, "who?", bundle.Query)
}

func TestRetrieveDefaultTopK(t *testing.T) {
	r := New(&stubEmbedder{vector: []float64{0, 0}}, buildStore(t), 2)

	bundle, err := r.Retrieve(context.Background(), "who?", 0)
	require.NoError(t, err)
	assert.Len(t, bundle.Results, 2)
}

func TestRetrievePropagatesEmbedderError(t *testing.T) {
	boom := errors.New("model offline")
	r := New(&stubEmbedder{err: boom}, buildStore(t), 2)

	_, err := r.Retrieve(context.Background(), "who?", 2)
	require.Error(t, err)
	var retrievalErr *domain.RetrievalError
	assert.ErrorAs(t, err, &retrievalErr)
	assert.ErrorIs(t, err, boom)
}

func TestRetrievePropagatesStoreError(t *testing.T) {
	r := New(&stubEmbedder{vector: []float64{0, 0}}, memory.NewStorage(), 2)

	_, err := r.Retrieve(context.Background(), "who?", 2)
	require.Error(t, err)
	var retrievalErr *domain.RetrievalError
	assert.ErrorAs(t, err, &retrievalErr)
	assert.ErrorIs(t, err, domain.ErrEmptyIndex)
}

func TestRetrieveIdempotentForFixedIndex(t *testing.T) {
	r := New(&stubEmbedder{vector: []float64{0, 0}}, buildStore(t), 2)

	first, err := r.Retrieve(context.Background(), "who?", 2)
	require.NoError(t, err)
	second, err := r.Retrieve(context.Background(), "who?", 2)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}
