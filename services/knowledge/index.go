// Package knowledge answers free-text questions that the booking flow
// does not claim. It retrieves relevant chunks from the PDF document
// base with keyword scoring and grounds a Gemini answer on them.
package knowledge

import (
	"bytes"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"unicode"

	"github.com/ledongthuc/pdf"
	"go.uber.org/zap"

	"scoutai/utils"
)

const (
	chunkSize    = 1000
	chunkOverlap = 200
	topK         = 3
)

// Chunk is one retrievable slice of a source document.
type Chunk struct {
	Source string
	Text   string
	terms  map[string]int
}

// Index is the in-memory retrieval store. User uploads can extend it at
// runtime, so access is guarded.
type Index struct {
	mu     sync.RWMutex
	chunks []Chunk
}

// NewIndex builds an index from every PDF directly under docsDir. A
// missing or empty directory yields an empty, still-usable index.
func NewIndex(docsDir string) *Index {
	idx := &Index{}
	logger := utils.GetLogger()

	entries, err := os.ReadDir(docsDir)
	if err != nil {
		logger.Warn("knowledge docs directory unavailable", zap.String("dir", docsDir), zap.Error(err))
		return idx
	}
	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(strings.ToLower(entry.Name()), ".pdf") {
			continue
		}
		path := filepath.Join(docsDir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			logger.Warn("failed to read knowledge document", zap.String("path", path), zap.Error(err))
			continue
		}
		if err := idx.AddDocument(entry.Name(), data); err != nil {
			logger.Warn("failed to index knowledge document", zap.String("path", path), zap.Error(err))
		}
	}
	logger.Info("knowledge base built", zap.Int("chunks", idx.Len()))
	return idx
}

// AddDocument extracts the PDF's text, splits it into overlapping chunks
// and adds them to the index.
func (idx *Index) AddDocument(name string, document []byte) error {
	text, err := extractText(document)
	if err != nil {
		return err
	}
	chunks := splitText(text)

	idx.mu.Lock()
	defer idx.mu.Unlock()
	for _, c := range chunks {
		idx.chunks = append(idx.chunks, Chunk{
			Source: name,
			Text:   c,
			terms:  termCounts(c),
		})
	}
	return nil
}

// Reload drops every chunk and re-ingests the docs directory. User
// uploads made since startup are discarded.
func (idx *Index) Reload(docsDir string) {
	fresh := NewIndex(docsDir)
	idx.mu.Lock()
	idx.chunks = fresh.chunks
	idx.mu.Unlock()
}

// Len reports the number of indexed chunks.
func (idx *Index) Len() int {
	idx.mu.RLock()
	defer idx.mu.RUnlock()
	return len(idx.chunks)
}

// Search returns up to k chunks ranked by query-term overlap. Chunks
// sharing no terms with the query are never returned.
func (idx *Index) Search(query string, k int) []Chunk {
	queryTerms := termCounts(query)
	if len(queryTerms) == 0 {
		return nil
	}

	idx.mu.RLock()
	defer idx.mu.RUnlock()

	type scored struct {
		chunk Chunk
		score int
	}
	var matches []scored
	for _, c := range idx.chunks {
		score := 0
		for term := range queryTerms {
			score += c.terms[term]
		}
		if score > 0 {
			matches = append(matches, scored{chunk: c, score: score})
		}
	}
	sort.SliceStable(matches, func(i, j int) bool { return matches[i].score > matches[j].score })

	if k > len(matches) {
		k = len(matches)
	}
	out := make([]Chunk, 0, k)
	for _, m := range matches[:k] {
		out = append(out, m.chunk)
	}
	return out
}

func extractText(document []byte) (string, error) {
	reader, err := pdf.NewReader(bytes.NewReader(document), int64(len(document)))
	if err != nil {
		return "", err
	}
	var sb strings.Builder
	for pageNum := 1; pageNum <= reader.NumPage(); pageNum++ {
		page := reader.Page(pageNum)
		if page.V.IsNull() {
			continue
		}
		content, err := page.GetPlainText(nil)
		if err != nil {
			continue
		}
		sb.WriteString(content)
		sb.WriteString("\n")
	}
	return sb.String(), nil
}

// splitText produces fixed-size chunks with a trailing overlap so that
// sentences straddling a boundary stay retrievable.
func splitText(text string) []string {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil
	}
	runes := []rune(text)
	var chunks []string
	step := chunkSize - chunkOverlap
	for start := 0; start < len(runes); start += step {
		end := start + chunkSize
		if end > len(runes) {
			end = len(runes)
		}
		chunk := strings.TrimSpace(string(runes[start:end]))
		if chunk != "" {
			chunks = append(chunks, chunk)
		}
		if end == len(runes) {
			break
		}
	}
	return chunks
}

// stopwords excluded from term matching. Short function words dominate
// raw overlap counts otherwise.
var stopwords = map[string]bool{
	"the": true, "a": true, "an": true, "is": true, "are": true, "was": true,
	"in": true, "on": true, "at": true, "of": true, "to": true, "for": true,
	"and": true, "or": true, "it": true, "that": true, "this": true,
	"what": true, "how": true, "do": true, "does": true, "can": true,
	"i": true, "you": true, "we": true, "my": true, "your": true,
}

func termCounts(text string) map[string]int {
	counts := make(map[string]int)
	words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
	for _, w := range words {
		if len(w) < 2 || stopwords[w] {
			continue
		}
		counts[w]++
	}
	return counts
}
