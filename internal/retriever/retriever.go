package retriever

import (
	"context"
	"strings"

	"tablerag/internal/domain"
	"tablerag/internal/embedding"
	"tablerag/internal/vectorstore"
)

// ContextSeparator joins retrieved chunks into a single context string.
// Chunks never contain a horizontal rule, so the separator cannot
// collide with chunk content.
const ContextSeparator = "\n\n---\n\n"

// Retriever embeds a query, searches the store and assembles the
// ranked context bundle. Embedder and store errors propagate wrapped
// in a RetrievalError; nothing is swallowed.
type Retriever struct {
	embedder embedding.Embedder
	store    vectorstore.Storage
	topK     int
}

func New(embedder embedding.Embedder, store vectorstore.Storage, topK int) *Retriever {
	if topK <= 0 {
		topK = 5
	}
	return &Retriever{embedder: embedder, store: store, topK: topK}
}

func (r *Retriever) Retrieve(ctx context.Context, query string, topK int) (*domain.Bundle, error) {
	if topK <= 0 {
		topK = r.topK
	}
	vec, err := r.embedder.Embed(ctx, query)
	if err != nil {
		return nil, &domain.RetrievalError{Err: err}
	}
	results, err := r.store.Search(vec, topK)
	if err != nil {
		return nil, &domain.RetrievalError{Err: err}
	}
	texts := make([]string, len(results))
	for i, res := range results {
		texts[i] = res.Chunk.Text
	}
	return &domain.Bundle{
		Query:   query,
		Results: results,
		Context: strings.Join(texts, ContextSeparator),
	}, nil
}
