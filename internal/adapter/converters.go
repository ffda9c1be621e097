package adapter

import (
	"github.com/akolanti/DocChatAPI/internal/api"
	"github.com/akolanti/DocChatAPI/internal/domain/chatModel"
	"github.com/akolanti/DocChatAPI/internal/domain/fileModel"
	"github.com/akolanti/DocChatAPI/internal/ingestion"
	"github.com/akolanti/DocChatAPI/internal/query"
)

func ToSelectedDocuments(docs []api.SelectedDoc) []fileModel.SelectedDocument {
	if len(docs) == 0 {
		return nil
	}
	out := make([]fileModel.SelectedDocument, 0, len(docs))
	for _, d := range docs {
		ranges := make([]fileModel.PageRange, 0, len(d.PageRanges))
		for _, pr := range d.PageRanges {
			ranges = append(ranges, fileModel.PageRange{Start: pr.Start, End: pr.End})
		}
		out = append(out, fileModel.SelectedDocument{FileId: d.FileId, PageRanges: ranges})
	}
	return out
}

func ToFileInfo(f fileModel.FileRecord) api.FileInfo {
	return api.FileInfo{
		Id:           f.Id,
		OriginalName: f.OriginalName,
		SizeBytes:    f.SizeBytes,
		FileType:     f.FileType,
		Tags:         f.Tags,
		TotalPages:   f.TotalPages,
		TotalChunks:  f.TotalChunks,
		CreatedTime:  f.CreatedTime,
	}
}

func ToFileListResponse(files []fileModel.FileRecord) api.FileListResponse {
	infos := make([]api.FileInfo, 0, len(files))
	for _, f := range files {
		infos = append(infos, ToFileInfo(f))
	}
	return api.FileListResponse{
		StatusCode: 200,
		Message:    "Files fetched successfully",
		Files:      infos,
	}
}

func ToEvaluateFilesResponse(evaluations []ingestion.FileExistence) api.EvaluateFilesResponse {
	out := make([]api.FileEvaluation, 0, len(evaluations))
	for _, e := range evaluations {
		out = append(out, api.FileEvaluation{Filename: e.Filename, AlreadyExists: e.AlreadyExists})
	}
	return api.EvaluateFilesResponse{
		StatusCode: 200,
		Message:    "Files evaluated successfully",
		Files:      out,
	}
}

func toReferences(refs []chatModel.ChatReference) []api.Reference {
	out := make([]api.Reference, 0, len(refs))
	for _, r := range refs {
		out = append(out, api.Reference{FileName: r.FileName, FileId: r.FileId, PageNo: r.PageNo})
	}
	return out
}

func ToAskResponse(answer query.Answer) api.AskResponse {
	return api.AskResponse{
		StatusCode: 200,
		Message:    "Response generated and saved successfully",
		ChatId:     answer.ChatId,
		Answer:     answer.Text,
		References: toReferences(answer.References),
	}
}

func ToChatHistoryResponse(chats []chatModel.ChatHistoryRecord) api.ChatHistoryResponse {
	summaries := make([]api.ChatSummary, 0, len(chats))
	for _, c := range chats {
		summaries = append(summaries, api.ChatSummary{
			Id:          c.Id,
			Question:    c.Question,
			Answer:      c.Answer,
			Model:       c.Model,
			References:  toReferences(c.References),
			Featured:    c.Featured,
			CreatedTime: c.CreatedTime,
		})
	}
	return api.ChatHistoryResponse{
		StatusCode:  200,
		Message:     "Chats fetched successfully",
		ChatHistory: summaries,
	}
}
