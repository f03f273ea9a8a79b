package domain

import "context"

// Document is the textualized form of one source record.
type Document struct {
	RecordID string
	Text     string
}

// Chunk is a bounded window of the concatenated document corpus,
// the unit that gets embedded and retrieved.
type Chunk struct {
	Index int
	Text  string
}

// SearchResult is one retrieved chunk with its slot id and distance
// to the query vector (squared Euclidean, smaller is closer).
type SearchResult struct {
	ID       int
	Chunk    Chunk
	Distance float64
}

// Bundle is the ranked retrieval context assembled for one query.
type Bundle struct {
	Query   string
	Results []SearchResult
	Context string
}

// ChatMessage is one role-tagged message sent to the generation model.
type ChatMessage struct {
	Role    string
	Content string
}

// Embedder converts text into a fixed-dimension numeric vector.
// Batch embedding preserves input order in its output.
type Embedder interface {
	ModelName() string
	Embed(ctx context.Context, text string) ([]float64, error)
	EmbedBatch(ctx context.Context, texts []string) ([][]float64, error)
}

// Chunker splits a document corpus into overlapping chunks suitable
// for retrieval indexing.
type Chunker interface {
	Chunk(documents []Document) ([]Chunk, error)
}

// Store holds chunk vectors and answers k-nearest-neighbour queries.
// It is built once at startup and read-only afterwards.
type Store interface {
	Build(chunks []Chunk, vectors [][]float64) error
	Search(vector []float64, topK int) ([]SearchResult, error)
}

// Retriever produces ranked context for a query.
type Retriever interface {
	Retrieve(ctx context.Context, query string, topK int) (*Bundle, error)
}

// Generator is the text-generation collaborator. Ping verifies at
// startup that the service is reachable and the model is provisioned.
type Generator interface {
	ModelName() string
	Chat(ctx context.Context, messages []ChatMessage) (string, error)
	Ping(ctx context.Context) error
}

// Summarizer produces a brief summary of the provided text.
type Summarizer interface {
	Summarize(text string, maxSentences int) (string, error)
}

// AnswerService defines the question-answering operation exposed by
// the application core.
type AnswerService interface {
	Answer(ctx context.Context, query string) (string, error)
}
