package models

type UploadResponse struct {
	Message    string `json:"message"`
	DocumentID string `json:"document_id"`
	TextLength int    `json:"text_length"`
	ChunkCount int    `json:"chunk_count"`
}
