package usecase

import (
	"context"
	"time"

	"github.com/rs/zerolog"

	"lexrag/internal/adapter/store"
	"lexrag/internal/domain"
	"lexrag/internal/port"
)

const noResultsAnswer = "I couldn't find any relevant information to answer your question. " +
	"Please try a different query or make sure documents have been loaded."

// AskUseCase retrieves passages for a question and hands them to the
// answer synthesizer. Like Search, it fails open: retrieval misses and
// model failures produce a degraded Answer, never an error.
type AskUseCase struct {
	searcher port.Searcher
	synth    port.Synthesizer
	history  *store.HistoryStore
	minScore float64
	log      zerolog.Logger
}

// NewAskUseCase wires the search side to the synthesizer. history may be
// nil to disable the answer log.
func NewAskUseCase(searcher port.Searcher, synth port.Synthesizer, history *store.HistoryStore, minScore float64, log zerolog.Logger) *AskUseCase {
	return &AskUseCase{
		searcher: searcher,
		synth:    synth,
		history:  history,
		minScore: minScore,
		log:      log,
	}
}

// Ask answers the query from the topK retrieved passages.
func (u *AskUseCase) Ask(ctx context.Context, query string, topK int) domain.Answer {
	results := u.searcher.Search(query, topK)
	if u.minScore > 0 {
		results = filterByScore(results, u.minScore)
	}

	if len(results) == 0 {
		u.log.Warn().Str("query", query).Msg("no relevant passages retrieved")
		return domain.Answer{Text: noResultsAnswer}
	}

	text, err := u.synth.Synthesize(ctx, query, results)
	if err != nil {
		u.log.Error().Err(err).Str("model", u.synth.ModelName()).Msg("answer synthesis failed")
		return domain.Answer{
			Text:    "Error generating response: " + err.Error(),
			Sources: results,
		}
	}

	answer := domain.Answer{Text: text, Sources: results}
	u.record(query, answer)
	return answer
}

func (u *AskUseCase) record(query string, answer domain.Answer) {
	if u.history == nil {
		return
	}
	err := u.history.Append(store.HistoryEntry{
		AskedAt: time.Now(),
		Query:   query,
		Answer:  answer.Text,
		Model:   u.synth.ModelName(),
		Sources: answer.Sources,
	})
	if err != nil {
		u.log.Warn().Err(err).Msg("failed to record answer history")
	}
}

func filterByScore(results []domain.SearchResult, minScore float64) []domain.SearchResult {
	filtered := make([]domain.SearchResult, 0, len(results))
	for _, r := range results {
		if r.Score >= minScore {
			filtered = append(filtered, r)
		}
	}
	return filtered
}
