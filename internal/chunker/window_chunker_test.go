package chunker

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"tablerag/internal/domain"
)

func docs(texts ...string) []domain.Document {
	out := make([]domain.Document, len(texts))
	for i, t := range texts {
		out[i] = domain.Document{RecordID: "r", Text: t}
	}
	return out
}

func TestChunkEmptyInput(t *testing.T) {
	c := NewWindowChunker(100, 10)
	chunks, err := c.Chunk(nil)
	require.NoError(t, err)
	assert.Empty(t, chunks)
}

func TestChunkShortInputSingleChunk(t *testing.T) {
	c := NewWindowChunker(100, 10)
	chunks, err := c.Chunk(docs("A short document."))
	require.NoError(t, err)
	require.Len(t, chunks, 1)
	assert.Equal(t, "A short document.", chunks[0].Text)
	assert.Equal(t, 0, chunks[0].Index)
}

func TestChunkPrefersParagraphBoundary(t *testing.T) {
	c := NewWindowChunker(30, 5)
	chunks, err := c.Chunk(docs("Alpha one. Alpha two.", "Beta one. Beta two."))
	require.NoError(t, err)
	require.Len(t, chunks, 2)

	assert.Equal(t, "Alpha one. Alpha two.\n\n", chunks[0].Text)
	assert.Equal(t, "wo.\n\nBeta one. Beta two.", chunks[1].Text)
}

func TestChunkPrefersSentenceBoundary(t *testing.T) {
	c := NewWindowChunker(10, 2)
	chunks, err := c.Chunk(docs("One. Two. Three. Four."))
	require.NoError(t, err)
	require.Len(t, chunks, 3)

	assert.Equal(t, "One. Two.", chunks[0].Text)
	assert.Equal(t, "o. Three.", chunks[1].Text)
	assert.Equal(t, "e. Four.", chunks[2].Text)
}

func TestChunkFallsBackToWordBoundary(t *testing.T) {
	c := NewWindowChunker(10, 0)
	chunks, err := c.Chunk(docs("alpha beta gamma"))
	require.NoError(t, err)
	require.Len(t, chunks, 2)
	assert.Equal(t, "alpha ", chunks[0].Text)
	assert.Equal(t, "beta gamma", chunks[1].Text)
}

func TestChunkHardCutWithoutBreakpoints(t *testing.T) {
	c := NewWindowChunker(10, 0)
	chunks, err := c.Chunk(docs("abcdefghijklmnop"))
	require.NoError(t, err)
	require.Len(t, chunks, 2)
	assert.Equal(t, "abcdefghij", chunks[0].Text)
	assert.Equal(t, "klmnop", chunks[1].Text)
}

func TestChunkSizeAndOverlapInvariants(t *testing.T) {
	const size, overlap = 40, 8
	c := NewWindowChunker(size, overlap)
	text := strings.Repeat("The quick brown fox jumps over dogs. ", 20)
	chunks, err := c.Chunk(docs(strings.TrimSpace(text)))
	require.NoError(t, err)
	require.NotEmpty(t, chunks)

	for i, ch := range chunks {
		assert.LessOrEqual(t, len(ch.Text), size, "chunk %d too long", i)
		assert.Equal(t, i, ch.Index)
	}
	for i := 1; i < len(chunks); i++ {
		prev, cur := chunks[i-1].Text, chunks[i].Text
		n := overlap
		if len(prev) < n {
			n = len(prev)
		}
		if len(cur) < n {
			n = len(cur)
		}
		assert.Equal(t, prev[len(prev)-n:], cur[:n], "chunks %d and %d do not overlap", i-1, i)
	}
}

func TestChunkIndexesAreOrdered(t *testing.T) {
	c := NewWindowChunker(25, 5)
	chunks, err := c.Chunk(docs("First sentence here.", "Second sentence here.", "Third sentence here."))
	require.NoError(t, err)
	for i, ch := range chunks {
		assert.Equal(t, i, ch.Index)
	}
}

func TestNewWindowChunkerClampsBadArguments(t *testing.T) {
	c := NewWindowChunker(0, -3)
	assert.Equal(t, 500, c.chunkSize)
	assert.Equal(t, 0, c.overlap)

	c = NewWindowChunker(100, 100)
	assert.Equal(t, 10, c.overlap)
}
