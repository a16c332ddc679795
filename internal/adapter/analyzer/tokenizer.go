package analyzer

import (
	"regexp"
	"strings"
)

var wordPattern = regexp.MustCompile(`\b\w+\b`)

// Tokenizer lowercases text, splits it on word boundaries and drops English
// stopwords. Numbers and underscored tokens count as words; punctuation is
// a separator.
type Tokenizer struct {
	stopwords map[string]struct{}
}

// NewTokenizer creates a Tokenizer with the default English stopword list.
func NewTokenizer() *Tokenizer {
	return &Tokenizer{stopwords: defaultStopwords()}
}

// Tokenize splits text into lowercased tokens with stopwords removed.
func (t *Tokenizer) Tokenize(text string) []string {
	words := wordPattern.FindAllString(strings.ToLower(text), -1)
	if len(words) == 0 {
		return nil
	}
	tokens := make([]string, 0, len(words))
	for _, word := range words {
		if _, isStop := t.stopwords[word]; isStop {
			continue
		}
		tokens = append(tokens, word)
	}
	return tokens
}

// defaultStopwords returns a set of common English stopwords.
func defaultStopwords() map[string]struct{} {
	stops := []string{
		"a", "an", "and", "are", "as", "at", "be", "by", "for",
		"from", "has", "he", "in", "is", "it", "its", "of", "on",
		"that", "the", "to", "was", "were", "will", "with", "this",
		"have", "had", "but", "not", "you", "your", "we", "our",
		"they", "their", "she", "her", "his", "if", "or", "so",
		"no", "can", "do", "does", "did", "been", "being", "would",
		"could", "should", "may", "might", "must", "shall", "which",
		"who", "whom", "what", "when", "where", "why", "how", "all",
		"each", "every", "both", "few", "more", "most", "other",
		"some", "such", "than", "too", "very", "just", "also",
	}
	m := make(map[string]struct{}, len(stops))
	for _, s := range stops {
		m[s] = struct{}{}
	}
	return m
}
