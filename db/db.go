// Package db implements the history store on rqlite. chat_history is the
// only persisted table; ids come from SQLite's AUTOINCREMENT, which keeps
// them unique and strictly increasing under concurrent writers.
package db

import (
	"context"
	"fmt"
	"time"

	"github.com/rqlite/gorqlite"
	"github.com/synerge/synergereader/history"
)

func New(conn *gorqlite.Connection) *Store {
	return &Store{
		conn: conn,
		now:  func() time.Time { return time.Now().UTC() },
	}
}

type Store struct {
	conn *gorqlite.Connection
	now  func() time.Time
}

func (s *Store) Append(ctx context.Context, args history.AppendArgs) (history.Record, error) {
	ts := s.now().Format(time.RFC3339)
	stmt := gorqlite.ParameterizedStatement{
		Query:     `insert into chat_history (ts, selected_text, question, answer) values (?, ?, ?, ?)`,
		Arguments: []any{ts, args.SelectedText, args.Question, args.Answer},
	}
	result, err := s.conn.WriteOneParameterizedContext(ctx, stmt)
	if err != nil {
		return history.Record{}, fmt.Errorf("db: append failed: %w", err)
	}
	return history.Record{
		ID:           result.LastInsertID,
		Timestamp:    ts,
		SelectedText: args.SelectedText,
		Question:     args.Question,
		Answer:       args.Answer,
	}, nil
}

func (s *Store) Recent(ctx context.Context, limit int) ([]history.Record, error) {
	if limit <= 0 {
		return nil, nil
	}
	stmt := gorqlite.ParameterizedStatement{
		Query:     `select id, ts, selected_text, question, answer from chat_history order by id desc limit ?`,
		Arguments: []any{limit},
	}
	result, err := s.conn.QueryOneParameterizedContext(ctx, stmt)
	if err != nil {
		return nil, fmt.Errorf("db: recent failed: %w", err)
	}
	var records []history.Record
	for result.Next() {
		var r history.Record
		if err = result.Scan(&r.ID, &r.Timestamp, &r.SelectedText, &r.Question, &r.Answer); err != nil {
			return nil, fmt.Errorf("db: scan failed: %w", err)
		}
		records = append(records, r)
	}
	return records, nil
}
