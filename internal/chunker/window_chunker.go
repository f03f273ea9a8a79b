package chunker

import (
	"strings"

	"tablerag/internal/domain"
)

// Separator joins documents into the corpus the chunker windows over.
const Separator = "\n\n"

// WindowChunker splits the concatenated document corpus into
// overlapping windows of bounded length. Window ends prefer the last
// paragraph break, then the last sentence break, then the last word
// break, before falling back to a hard character cut.
type WindowChunker struct {
	chunkSize int
	overlap   int
}

func NewWindowChunker(chunkSize, overlap int) *WindowChunker {
	if chunkSize <= 0 {
		chunkSize = 500
	}
	if overlap < 0 {
		overlap = 0
	}
	if overlap >= chunkSize {
		overlap = chunkSize / 10
	}
	return &WindowChunker{chunkSize: chunkSize, overlap: overlap}
}

func (c *WindowChunker) Chunk(documents []domain.Document) ([]domain.Chunk, error) {
	texts := make([]string, 0, len(documents))
	for _, d := range documents {
		if d.Text != "" {
			texts = append(texts, d.Text)
		}
	}
	corpus := strings.Join(texts, Separator)
	if corpus == "" {
		return nil, nil
	}

	var chunks []domain.Chunk
	start := 0
	for start < len(corpus) {
		end := start + c.chunkSize
		if end >= len(corpus) {
			chunks = append(chunks, domain.Chunk{Index: len(chunks), Text: corpus[start:]})
			break
		}
		cut := breakAt(corpus[start:end])
		chunks = append(chunks, domain.Chunk{Index: len(chunks), Text: corpus[start : start+cut]})

		next := start + cut - c.overlap
		if next <= start {
			// window too small to afford overlap, step past it instead
			next = start + cut
		}
		start = next
	}
	return chunks, nil
}

// breakAt returns the preferred cut position (0 < cut <= len(window))
// for a window that is followed by more corpus text.
func breakAt(window string) int {
	if p := strings.LastIndex(window, Separator); p > 0 {
		return p + len(Separator)
	}
	if p := lastSentenceEnd(window); p > 0 {
		return p
	}
	if p := strings.LastIndexByte(window, ' '); p > 0 {
		return p + 1
	}
	return len(window)
}

func lastSentenceEnd(window string) int {
	for i := len(window) - 1; i >= 0; i-- {
		switch window[i] {
		case '.', '!', '?':
			if i == len(window)-1 || window[i+1] == ' ' || window[i+1] == '\n' {
				return i + 1
			}
		}
	}
	return 0
}
