package api

import "time"

type ErrorResponse struct {
	StatusCode        int    `json:"statusCode" example:"400"`
	Message           string `json:"message" example:"Bad Request"`
	RetryAfterSeconds int    `json:"retryAfterSeconds,omitempty" example:"42"`
}

type PageRange struct {
	Start int `json:"start" example:"0"`
	End   int `json:"end" example:"10"`
}

type SelectedDoc struct {
	FileId     string      `json:"fileId" validate:"required"`
	PageRanges []PageRange `json:"pageRanges"`
}

// requests---------------------

type AskRequest struct {
	Question        string        `json:"question" validate:"required"`
	ModelId         string        `json:"modelId" validate:"required"`
	ReferencesCount int           `json:"referencesCount,omitempty"`
	SelectedDocs    []SelectedDoc `json:"selectedDocs,omitempty"`
	FileTags        []string      `json:"fileTags,omitempty"`
	KnowledgeBaseId string        `json:"knowledgeBaseId,omitempty"`
	UseCustomApiKey bool          `json:"useCustomApiKey"`
	CustomApiKey    string        `json:"customApiKey,omitempty"`
}

type DeleteFileRequest struct {
	FileId string `json:"fileId" validate:"required"`
}

type UpdateFileTagsRequest struct {
	FileId string   `json:"fileId" validate:"required"`
	Tags   []string `json:"tags"`
}

type EvaluateFilesRequest struct {
	Files []string `json:"files"`
}

type UpdateApiKeyRequest struct {
	ModelName string `json:"modelName" validate:"required"`
	ApiKey    string `json:"apiKey" validate:"required"`
	Enabled   *bool  `json:"isEnabled,omitempty"`
}

// responses--------------------

type Reference struct {
	FileName string `json:"fileName"`
	FileId   string `json:"fileId"`
	PageNo   int    `json:"pageNo"`
}

type AskResponse struct {
	StatusCode int         `json:"statusCode" example:"200"`
	Message    string      `json:"message"`
	ChatId     string      `json:"chatId"`
	Answer     string      `json:"answer"`
	References []Reference `json:"references,omitempty"`
}

type FileInfo struct {
	Id           string    `json:"id"`
	OriginalName string    `json:"originalName"`
	SizeBytes    int64     `json:"sizeBytes"`
	FileType     string    `json:"fileType"`
	Tags         []string  `json:"tags"`
	TotalPages   int       `json:"totalPages"`
	TotalChunks  int       `json:"totalChunks"`
	CreatedTime  time.Time `json:"createdTime"`
}

type UploadResponse struct {
	StatusCode int      `json:"statusCode" example:"200"`
	Message    string   `json:"message"`
	File       FileInfo `json:"file"`
}

type FileListResponse struct {
	StatusCode int        `json:"statusCode" example:"200"`
	Message    string     `json:"message"`
	Files      []FileInfo `json:"files"`
}

type FileEvaluation struct {
	Filename      string `json:"filename"`
	AlreadyExists bool   `json:"alreadyExists"`
}

type EvaluateFilesResponse struct {
	StatusCode int              `json:"statusCode" example:"200"`
	Message    string           `json:"message"`
	Files      []FileEvaluation `json:"files"`
}

type ChatSummary struct {
	Id          string      `json:"id"`
	Question    string      `json:"question"`
	Answer      string      `json:"answer"`
	Model       string      `json:"model"`
	References  []Reference `json:"references"`
	Featured    bool        `json:"featured"`
	CreatedTime time.Time   `json:"createdTime"`
}

type ChatHistoryResponse struct {
	StatusCode  int           `json:"statusCode" example:"200"`
	Message     string        `json:"message"`
	ChatHistory []ChatSummary `json:"chatHistory"`
}

type FeatureChatResponse struct {
	StatusCode int    `json:"statusCode" example:"200"`
	Message    string `json:"message"`
	ChatId     string `json:"chatId"`
	Featured   bool   `json:"featured"`
}

type StatusResponse struct {
	StatusCode int    `json:"statusCode" example:"200"`
	Message    string `json:"message"`
}
