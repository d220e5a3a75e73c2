// Package history defines the append-only log of question/answer exchanges
// and the store contract its implementations satisfy.
package history

import "context"

// RecencyWindow is the number of most recent records considered when ranking
// candidates for a new question. Ranking reads a bounded window rather than
// the full history so work per request stays constant as the log grows.
const RecencyWindow = 20

// Record is one answered question. Records are created once, never mutated
// or deleted, and carry strictly increasing ids in creation order.
type Record struct {
	ID           int64  `json:"id"`
	Timestamp    string `json:"timestamp"`
	SelectedText string `json:"selected_text"`
	Question     string `json:"question"`
	Answer       string `json:"answer"`
}

// AppendArgs holds the caller-supplied fields of a new record. The store
// assigns the id and timestamp.
type AppendArgs struct {
	SelectedText string
	Question     string
	Answer       string
}

// Store is the append-only history log. Implementations must serialize
// concurrent appends enough to guarantee unique, strictly increasing ids.
type Store interface {
	// Append persists a new record, assigning the next id and the current
	// timestamp, and returns the stored record.
	Append(ctx context.Context, args AppendArgs) (Record, error)

	// Recent returns at most limit records, most recent first.
	Recent(ctx context.Context, limit int) ([]Record, error)
}
