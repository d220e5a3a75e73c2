// Package relevance scores past question/answer exchanges against a new
// query by lexical overlap. This is a deliberately cheap heuristic, not
// semantic search: a question phrased entirely with synonyms of a history
// entry scores zero and is excluded.
package relevance

import (
	"sort"
	"strings"

	"github.com/synerge/synergereader/history"
)

// DefaultTopK is the number of ranked entries handed to the prompt composer.
const DefaultTopK = 3

// Query is the unit of work for one ask operation.
type Query struct {
	SelectedText string
	Question     string
}

// RankedRecord is a history record with its relevance score for one query.
// Scores are recomputed per query and never persisted.
type RankedRecord struct {
	history.Record
	Score int
}

// Rank scores candidates against the query and returns the topK highest
// scoring ones. Scoring is case-insensitive at word level:
//
//   - +1 if any word of the query question appears within the candidate
//     question,
//   - +2 if any word of the query selected text appears within the candidate
//     selected text.
//
// Candidates scoring zero are discarded regardless of topK. Ties keep the
// candidates' input order, so with most-recent-first input the newer of two
// equally relevant exchanges ranks higher.
func Rank(q Query, candidates []history.Record, topK int) []RankedRecord {
	if topK <= 0 {
		topK = DefaultTopK
	}
	questionWords := strings.Fields(strings.ToLower(q.Question))
	selectedWords := strings.Fields(strings.ToLower(q.SelectedText))

	var ranked []RankedRecord
	for _, candidate := range candidates {
		score := 0
		if anyWordWithin(questionWords, candidate.Question) {
			score++
		}
		if anyWordWithin(selectedWords, candidate.SelectedText) {
			score += 2
		}
		if score > 0 {
			ranked = append(ranked, RankedRecord{Record: candidate, Score: score})
		}
	}
	sort.SliceStable(ranked, func(i, j int) bool {
		return ranked[i].Score > ranked[j].Score
	})
	if len(ranked) > topK {
		ranked = ranked[:topK]
	}
	return ranked
}

func anyWordWithin(words []string, text string) bool {
	text = strings.ToLower(text)
	for _, word := range words {
		if strings.Contains(text, word) {
			return true
		}
	}
	return false
}
