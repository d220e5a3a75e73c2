package models

import "github.com/synerge/synergereader/history"

type HistoryResponse struct {
	Items []history.Record `json:"items"`
}

type HealthResponse struct {
	Message string `json:"message"`
}
