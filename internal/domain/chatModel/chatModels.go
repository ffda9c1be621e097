package chatModel

import (
	"context"
	"errors"
	"time"

	"github.com/akolanti/DocChatAPI/internal/domain/fileModel"
)

type ChatType string

const (
	ChatTypeManual ChatType = "Manual"
	ChatTypeAuto   ChatType = "Auto"
)

var ErrModelNotFound = errors.New("model not found or disabled")
var ErrChatNotFound = errors.New("chat not found")

type ChatReference struct {
	FileName string `json:"fileName"`
	FileId   string `json:"fileId"`
	PageNo   int    `json:"pageNo"`
}

type TokensUsed struct {
	Input  int `json:"input"`
	Output int `json:"output"`
}

// ChatFile is the denormalized snapshot of one queried file, captured at
// answer time so history stays readable after the file changes or is removed.
type ChatFile struct {
	FileId     string                `json:"fileId"`
	FileName   string                `json:"fileName"`
	FileType   string                `json:"fileType"`
	TotalPages int                   `json:"totalPages"`
	PageRanges []fileModel.PageRange `json:"pageRanges"`
}

type ChatHistoryRecord struct {
	Id              string          `json:"id"`
	UserId          string          `json:"user_id"`
	Question        string          `json:"question"`
	Answer          string          `json:"answer"`
	Model           string          `json:"model"`
	ReferencesCount int             `json:"references_count"`
	References      []ChatReference `json:"references"`
	Files           []ChatFile      `json:"files"`
	Featured        bool            `json:"featured"`
	ChatType        ChatType        `json:"chat_type"`
	CreatedTime     time.Time       `json:"created_time"`
}

type ChatStore interface {
	SaveChat(ctx context.Context, chat ChatHistoryRecord) error
	GetChat(ctx context.Context, chatId string) (ChatHistoryRecord, bool)
	GetUserChats(ctx context.Context, userId string) ([]ChatHistoryRecord, error)
	SetFeatured(ctx context.Context, chatId string, featured bool) error
}

// ModelRecord is one entry of the server-side model registry. ApiKey is the
// server-held credential handed to the query engine when the caller does not
// supply their own.
type ModelRecord struct {
	Name    string `json:"name" db:"name"`
	ApiKey  string `json:"-" db:"api_key"`
	Enabled bool   `json:"enabled" db:"enabled"`
}

type ModelStore interface {
	// GetModelApiKey returns ErrModelNotFound for unknown or disabled models.
	GetModelApiKey(ctx context.Context, modelName string) (string, error)
	UpdateModel(ctx context.Context, model ModelRecord) error
}
