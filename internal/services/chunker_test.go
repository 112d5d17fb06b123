package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestChunkTextEmptyInput(t *testing.T) {
	chunker := NewTextChunker()

	assert.Empty(t, chunker.ChunkText("", 1000, 200))
	assert.Empty(t, chunker.ChunkText("   \n\n  ", 1000, 200))
}

func TestChunkTextShortInputIsSingleChunk(t *testing.T) {
	chunker := NewTextChunker()

	chunks := chunker.ChunkText("A short reference paragraph.", 1000, 200)
	require.Len(t, chunks, 1)
	assert.Equal(t, "A short reference paragraph.", chunks[0])
}

func TestChunkTextSplitsOnParagraphs(t *testing.T) {
	chunker := NewTextChunker()

	para := strings.Repeat("word ", 30)
	text := strings.TrimSpace(para) + "\n\n" + strings.TrimSpace(para) + "\n\n" + strings.TrimSpace(para)

	chunks := chunker.ChunkText(text, 200, 0)
	assert.Greater(t, len(chunks), 1)
	for _, chunk := range chunks {
		assert.LessOrEqual(t, len(chunk), 200)
	}
}

func TestChunkTextOversizedParagraphFallsBackToSentences(t *testing.T) {
	chunker := NewTextChunker()

	var b strings.Builder
	for i := 0; i < 40; i++ {
		b.WriteString("This sentence pads out a very long single paragraph. ")
	}

	chunks := chunker.ChunkText(b.String(), 300, 0)
	assert.Greater(t, len(chunks), 1)
}

func TestChunkTextOverlapCarriesContext(t *testing.T) {
	chunker := NewTextChunker()

	para := strings.TrimSpace(strings.Repeat("alpha beta gamma ", 10))
	text := para + "\n\n" + para + "\n\n" + para

	chunks := chunker.ChunkText(text, 200, 50)
	require.Greater(t, len(chunks), 1)

	// The tail of each chunk reappears at the head of the next.
	for i := 1; i < len(chunks); i++ {
		tail := lastNRunes(chunks[i-1], 50)
		assert.True(t, strings.HasPrefix(chunks[i], tail))
	}
}

func TestChunkTextDefendsAgainstBadParameters(t *testing.T) {
	chunker := NewTextChunker()

	// Zero size and overlap >= size both fall back to sane defaults.
	assert.NotPanics(t, func() {
		chunker.ChunkText("some text", 0, 200)
		chunker.ChunkText("some text", 100, 100)
		chunker.ChunkText("some text", 100, -5)
	})
}

func TestSplitIntoSentences(t *testing.T) {
	sentences := splitIntoSentences("First one. Second one! Third one? ")
	assert.Equal(t, []string{"First one", "Second one", "Third one"}, sentences)
}

func TestLastNRunes(t *testing.T) {
	assert.Equal(t, "def", lastNRunes("abcdef", 3))
	assert.Equal(t, "abc", lastNRunes("abc", 10))
	assert.Equal(t, "", lastNRunes("abc", 0))
	assert.Equal(t, "héllo", lastNRunes("say héllo", 5))
}
