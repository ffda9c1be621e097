package engine

import (
	"github.com/akolanti/DocChatAPI/internal/domain/chatModel"
	"github.com/akolanti/DocChatAPI/internal/domain/fileModel"
)

// The wire contract: one JSON value on the child's stdin, one JSON value on
// its stdout, decoded only after a clean exit. Field names are fixed by the
// engine scripts and must not change.

type IngestFileInfo struct {
	FileId     string `json:"file_id"`
	FilePath   string `json:"file_path"`
	FileFormat string `json:"file_format"`
}

type IngestRequest struct {
	UserId   string         `json:"user_id"`
	FileInfo IngestFileInfo `json:"fileInfo"`
}

type IngestResponse struct {
	Chunks int `json:"chunks"`
	Pages  int `json:"pages"`
}

type QueryRequest struct {
	UserId         string                       `json:"user_id"`
	FileInfo       []fileModel.SelectedDocument `json:"fileInfo"`
	Query          string                       `json:"query"`
	NoOfReferences int                          `json:"noOfReferences"`
	ApiKey         string                       `json:"apiKey"`
}

type QueryResponse struct {
	Answer     string                    `json:"answer"`
	References []chatModel.ChatReference `json:"references"`
	TokensUsed chatModel.TokensUsed      `json:"tokensUsed"`
}
