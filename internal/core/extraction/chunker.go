package extraction

import (
	"regexp"
	"strings"
)

// Chunker splits article text into pieces small enough for one LLM call.
type Chunker struct {
	// Size is the maximum words per chunk.
	Size int
	// Method is "word" or "sentence".
	Method string
	// Overlap is the number of words carried between adjacent chunks.
	Overlap int
}

// DefaultChunkSize is the word budget per chunk.
const DefaultChunkSize = 900

var sentenceBoundary = regexp.MustCompile(`(?:[.!?])\s+`)

// Chunk splits text. Empty input yields no chunks.
func (c Chunker) Chunk(text string) []string {
	size := c.Size
	if size <= 0 {
		size = DefaultChunkSize
	}
	if c.Method == "sentence" {
		return chunkBySentences(text, size, c.Overlap)
	}
	return chunkByWords(text, size, c.Overlap)
}

func chunkByWords(text string, size, overlap int) []string {
	words := strings.Fields(text)
	step := size - overlap
	if step <= 0 {
		step = size
	}

	var chunks []string
	for i := 0; i < len(words); i += step {
		end := i + size
		if end > len(words) {
			end = len(words)
		}
		chunk := strings.Join(words[i:end], " ")
		if strings.TrimSpace(chunk) != "" {
			chunks = append(chunks, chunk)
		}
		if end == len(words) {
			break
		}
	}
	return chunks
}

// chunkBySentences packs whole sentences up to the word budget, carrying
// the last overlap words into the next chunk.
func chunkBySentences(text string, size, overlap int) []string {
	sentences := splitSentences(text)

	var chunks []string
	var current []string
	currentWords := 0

	flush := func() {
		if len(current) == 0 {
			return
		}
		chunks = append(chunks, strings.Join(current, " "))
		if overlap > 0 {
			words := strings.Fields(strings.Join(current, " "))
			if len(words) > overlap {
				words = words[len(words)-overlap:]
			}
			current = []string{strings.Join(words, " ")}
			currentWords = len(words)
		} else {
			current = nil
			currentWords = 0
		}
	}

	for _, sent := range sentences {
		n := len(strings.Fields(sent))
		if currentWords+n > size && len(current) > 0 {
			flush()
		}
		current = append(current, sent)
		currentWords += n
	}
	if len(current) > 0 && strings.TrimSpace(strings.Join(current, " ")) != "" {
		chunks = append(chunks, strings.Join(current, " "))
	}
	return chunks
}

func splitSentences(text string) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}

	var sentences []string
	last := 0
	for _, loc := range sentenceBoundary.FindAllStringIndex(text, -1) {
		// keep the terminating punctuation, drop the whitespace
		sentences = append(sentences, strings.TrimSpace(text[last:loc[0]+1]))
		last = loc[1]
	}
	if last < len(text) {
		sentences = append(sentences, strings.TrimSpace(text[last:]))
	}
	return sentences
}
