package models

import "github.com/synerge/synergereader/history"

type AskRequest struct {
	SelectedText string `json:"selected_text"`
	Question     string `json:"question"`
}

type AskResponse struct {
	Answer          string            `json:"answer"`
	ContextChunks   []string          `json:"context_chunks"`
	RelevantHistory []RelevantHistory `json:"relevant_history"`

	// HistoryError is set when the answer could not be recorded in the
	// history store. The answer itself is still valid.
	HistoryError string `json:"history_error,omitempty"`
}

type RelevantHistory struct {
	history.Record
	RelevanceScore int `json:"relevance_score"`
}
