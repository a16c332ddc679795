// Package vectorizer builds term-weighted vector representations of chunk
// texts and projects queries into the same space.
package vectorizer

import (
	"math"
	"sort"

	"lexrag/internal/adapter/analyzer"
	"lexrag/internal/domain"
)

// DefaultMaxFeatures caps the vocabulary at the most frequent corpus terms.
const DefaultMaxFeatures = 5000

// TFIDF computes term-frequency inverse-document-frequency weight vectors
// over a vocabulary frozen at fit time. Queries projected afterwards drop
// out-of-vocabulary terms instead of erroring.
type TFIDF struct {
	tokenizer   *analyzer.Tokenizer
	maxFeatures int
	vocabulary  map[string]int
	idf         []float64
}

// NewTFIDF creates an unfitted vectorizer. maxFeatures <= 0 selects the
// default cap.
func NewTFIDF(tokenizer *analyzer.Tokenizer, maxFeatures int) *TFIDF {
	if maxFeatures <= 0 {
		maxFeatures = DefaultMaxFeatures
	}
	return &TFIDF{
		tokenizer:   tokenizer,
		maxFeatures: maxFeatures,
	}
}

// Fit builds the vocabulary and IDF weights from the record texts and
// returns one L2-normalised weight vector per record, in input order.
// Row i of the returned matrix belongs to records[i].
func (v *TFIDF) Fit(records []domain.ChunkRecord) ([][]float64, error) {
	docTokens := make([][]string, len(records))
	counts := make(map[string]int)
	df := make(map[string]int)

	for i, rec := range records {
		tokens := v.tokenizer.Tokenize(rec.Text)
		docTokens[i] = tokens

		seen := make(map[string]struct{}, len(tokens))
		for _, tok := range tokens {
			counts[tok]++
			if _, ok := seen[tok]; !ok {
				seen[tok] = struct{}{}
				df[tok]++
			}
		}
	}

	if len(counts) == 0 {
		return nil, &domain.VectorizeError{Reason: "corpus contains no indexable terms"}
	}

	terms := make([]string, 0, len(counts))
	for term := range counts {
		terms = append(terms, term)
	}

	// Cap the vocabulary at the most frequent terms, alphabetical on ties,
	// then assign dimensions in alphabetical order for a stable layout.
	sort.Slice(terms, func(i, j int) bool {
		if counts[terms[i]] != counts[terms[j]] {
			return counts[terms[i]] > counts[terms[j]]
		}
		return terms[i] < terms[j]
	})
	if len(terms) > v.maxFeatures {
		terms = terms[:v.maxFeatures]
	}
	sort.Strings(terms)

	v.vocabulary = make(map[string]int, len(terms))
	v.idf = make([]float64, len(terms))
	n := float64(len(records))
	for i, term := range terms {
		v.vocabulary[term] = i
		// Smoothed IDF, always positive.
		v.idf[i] = math.Log((1+n)/(1+float64(df[term]))) + 1
	}

	vectors := make([][]float64, len(records))
	for i, tokens := range docTokens {
		vectors[i] = v.vectorize(tokens)
	}
	return vectors, nil
}

// Transform projects text into the frozen vector space. A fully
// out-of-vocabulary input yields the zero vector.
func (v *TFIDF) Transform(text string) []float64 {
	return v.vectorize(v.tokenizer.Tokenize(text))
}

// Dimension returns the size of the fitted vocabulary.
func (v *TFIDF) Dimension() int { return len(v.idf) }

func (v *TFIDF) vectorize(tokens []string) []float64 {
	vec := make([]float64, len(v.idf))
	for _, tok := range tokens {
		if idx, ok := v.vocabulary[tok]; ok {
			vec[idx] += v.idf[idx]
		}
	}

	norm := 0.0
	for _, w := range vec {
		norm += w * w
	}
	if norm > 0 {
		norm = math.Sqrt(norm)
		for i := range vec {
			vec[i] /= norm
		}
	}
	return vec
}
