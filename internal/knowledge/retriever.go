// Package knowledge holds the fixed corpus of architecture notes and a
// lexical similarity retriever over it. The index is built once at startup;
// per-request retrieval is pure and makes no external calls.
package knowledge

import (
	"fmt"
	"math"
	"sort"
	"strings"
	"unicode"
	"unicode/utf8"

	lru "github.com/hashicorp/golang-lru/v2"
)

// DefaultTopK is the number of chunks concatenated when the caller does not
// ask for a specific k.
const DefaultTopK = 3

// Chunk is one immutable corpus document.
type Chunk struct {
	Text string
}

// Retriever scores corpus chunks against a query using term-frequency /
// inverse-document-frequency overlap and returns the most relevant texts.
type Retriever struct {
	chunks []Chunk
	tf     []map[string]float64 // per chunk: term -> frequency
	df     map[string]int       // term -> chunks containing it

	cache *lru.Cache[string, string]
}

// NewRetriever indexes the given documents. With no documents the retriever
// stays usable and returns empty context for every query.
func NewRetriever(documents []string) *Retriever {
	r := &Retriever{df: make(map[string]int)}
	for _, doc := range documents {
		doc = strings.TrimSpace(doc)
		if doc == "" {
			continue
		}
		terms := tokenize(doc)
		freq := make(map[string]float64, len(terms))
		for _, t := range terms {
			freq[t]++
		}
		for t := range freq {
			r.df[t]++
		}
		r.chunks = append(r.chunks, Chunk{Text: doc})
		r.tf = append(r.tf, freq)
	}
	// Retrieval is a pure function of (query, corpus, k), so memoizing
	// results is safe.
	cache, err := lru.New[string, string](256)
	if err == nil {
		r.cache = cache
	}
	return r
}

// NewDefaultRetriever indexes the built-in corpus.
func NewDefaultRetriever() *Retriever {
	return NewRetriever(defaultDocuments())
}

// Retrieve returns the k most similar chunks' text, most relevant first,
// joined by a blank line. k <= 0 uses DefaultTopK. An empty corpus or a query
// matching nothing yields ""; Retrieve never fails.
func (r *Retriever) Retrieve(query string, k int) string {
	if r == nil || len(r.chunks) == 0 {
		return ""
	}
	if k <= 0 {
		k = DefaultTopK
	}
	cacheKey := fmt.Sprintf("%d|%s", k, query)
	if r.cache != nil {
		if hit, ok := r.cache.Get(cacheKey); ok {
			return hit
		}
	}

	queryTerms := tokenize(query)
	type scored struct {
		idx   int
		score float64
	}
	scores := make([]scored, 0, len(r.chunks))
	n := float64(len(r.chunks))
	for i := range r.chunks {
		var s float64
		for _, t := range queryTerms {
			tf := r.tf[i][t]
			if tf == 0 {
				continue
			}
			idf := math.Log(1 + n/float64(r.df[t]))
			s += tf * idf
		}
		if s > 0 {
			scores = append(scores, scored{idx: i, score: s})
		}
	}
	// Score descending; corpus order breaks ties so retrieval is
	// deterministic.
	sort.SliceStable(scores, func(a, b int) bool {
		return scores[a].score > scores[b].score
	})
	if len(scores) > k {
		scores = scores[:k]
	}

	parts := make([]string, 0, len(scores))
	for _, s := range scores {
		parts = append(parts, r.chunks[s.idx].Text)
	}
	out := strings.Join(parts, "\n\n")
	if r.cache != nil {
		r.cache.Add(cacheKey, out)
	}
	return out
}

// tokenize splits text into lowercase ident-like words: a token starts with a
// letter or '_' and continues with letters, digits, or '_'. Numbers and
// symbols are delimiters.
func tokenize(src string) []string {
	var out []string
	data := []byte(src)
	isStart := func(r rune) bool { return r == '_' || unicode.IsLetter(r) }
	isCont := func(r rune) bool { return r == '_' || unicode.IsLetter(r) || unicode.IsDigit(r) }

	i := 0
	for i < len(data) {
		r, w := utf8.DecodeRune(data[i:])
		if r == utf8.RuneError && w == 1 {
			i++
			continue
		}
		if !isStart(r) {
			i += w
			continue
		}
		start := i
		i += w
		for i < len(data) {
			rc, wc := utf8.DecodeRune(data[i:])
			if !isCont(rc) {
				break
			}
			i += wc
		}
		out = append(out, strings.ToLower(string(data[start:i])))
	}
	return out
}
