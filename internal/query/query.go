package query

import (
	"context"
	"time"

	"github.com/akolanti/DocChatAPI/internal/adapter/utils"
	"github.com/akolanti/DocChatAPI/internal/admission"
	"github.com/akolanti/DocChatAPI/internal/domain/chatModel"
	"github.com/akolanti/DocChatAPI/internal/domain/fileModel"
	"github.com/akolanti/DocChatAPI/internal/engine"
	"github.com/akolanti/DocChatAPI/internal/resolver"
	"github.com/akolanti/DocChatAPI/pkg/logger_i"
)

// AskRoute is the admission key queries are throttled under. Uploads and
// queries share the mechanism but not the same limits.
const AskRoute = "/chat/ask"

type Ask struct {
	Question        string
	ModelId         string
	ReferencesCount int
	SelectedDocs    []fileModel.SelectedDocument
	FileTags        []string
	KnowledgeBaseId string
	UseCustomApiKey bool
	CustomApiKey    string
}

type Answer struct {
	ChatId     string
	Text       string
	References []chatModel.ChatReference
	TokensUsed chatModel.TokensUsed
}

// Service runs the query pipeline: admission, document resolution,
// credential selection, engine dispatch, history persistence.
type Service struct {
	files    fileModel.FileStore
	chats    chatModel.ChatStore
	models   chatModel.ModelStore
	gate     *admission.Controller
	resolver *resolver.Resolver
	invoker  engine.Invoker
	logger   *logger_i.Logger
}

func NewService(files fileModel.FileStore, chats chatModel.ChatStore, models chatModel.ModelStore,
	gate *admission.Controller, res *resolver.Resolver, invoker engine.Invoker) *Service {
	return &Service{
		files:    files,
		chats:    chats,
		models:   models,
		gate:     gate,
		resolver: res,
		invoker:  invoker,
		logger:   logger_i.NewLogger("Query"),
	}
}

func (s *Service) Ask(ctx context.Context, userId string, ask Ask) (Answer, error) {
	log := s.logger.With("userId", userId, "model", ask.ModelId)

	// Everything that can reject this request runs before a child process
	// is ever spawned.
	if err := s.gate.CheckAndConsume(ctx, userId, AskRoute); err != nil {
		return Answer{}, err
	}

	docs, err := s.resolver.Resolve(ctx, userId, ask.SelectedDocs, ask.FileTags, ask.KnowledgeBaseId)
	if err != nil {
		return Answer{}, err
	}

	apiKey, err := s.selectApiKey(ctx, ask)
	if err != nil {
		return Answer{}, err
	}

	request := engine.QueryRequest{
		UserId:         userId,
		FileInfo:       docs,
		Query:          ask.Question,
		NoOfReferences: ask.ReferencesCount,
		ApiKey:         apiKey,
	}
	var response engine.QueryResponse
	if err := s.invoker.Invoke(ctx, request, &response); err != nil {
		log.Error("engine query failed", "error", err)
		return Answer{}, err
	}

	chat := chatModel.ChatHistoryRecord{
		Id:              utils.GetNewUUID(),
		UserId:          userId,
		Question:        ask.Question,
		Answer:          response.Answer,
		Model:           ask.ModelId,
		ReferencesCount: ask.ReferencesCount,
		References:      response.References,
		Files:           s.snapshotFiles(ctx, userId, docs),
		Featured:        false,
		ChatType:        chatModel.ChatTypeManual,
		CreatedTime:     time.Now(),
	}
	if err := s.chats.SaveChat(ctx, chat); err != nil {
		log.Error("failed to persist chat history", "error", err)
		return Answer{}, err
	}

	log.Info("query answered", "chatId", chat.Id, "docs", len(docs), "tokensIn", response.TokensUsed.Input, "tokensOut", response.TokensUsed.Output)
	return Answer{
		ChatId:     chat.Id,
		Text:       response.Answer,
		References: response.References,
		TokensUsed: response.TokensUsed,
	}, nil
}

// selectApiKey prefers the caller's own key when they explicitly opted in,
// else the server-held key for the requested model. Unknown or disabled
// models fail with chatModel.ErrModelNotFound.
func (s *Service) selectApiKey(ctx context.Context, ask Ask) (string, error) {
	if ask.UseCustomApiKey && ask.CustomApiKey != "" {
		return ask.CustomApiKey, nil
	}
	return s.models.GetModelApiKey(ctx, ask.ModelId)
}

// snapshotFiles denormalizes the selected documents' metadata into the chat
// record so history stays readable after files change or are removed.
func (s *Service) snapshotFiles(ctx context.Context, userId string, docs []fileModel.SelectedDocument) []chatModel.ChatFile {
	var snapshot []chatModel.ChatFile
	for _, doc := range docs {
		f, found := s.files.GetFile(ctx, doc.FileId)
		if !found || f.OwnerId != userId {
			continue
		}
		snapshot = append(snapshot, chatModel.ChatFile{
			FileId:     f.Id,
			FileName:   f.OriginalName,
			FileType:   f.FileType,
			TotalPages: f.TotalPages,
			PageRanges: doc.PageRanges,
		})
	}
	return snapshot
}

func (s *Service) GetHistory(ctx context.Context, userId string) ([]chatModel.ChatHistoryRecord, error) {
	return s.chats.GetUserChats(ctx, userId)
}

// FeatureChat flips the featured flag: calling it twice restores the
// original state, so it must not be retried blindly on ambiguous failure.
func (s *Service) FeatureChat(ctx context.Context, userId string, chatId string) (bool, error) {
	chat, found := s.chats.GetChat(ctx, chatId)
	if !found || chat.UserId != userId {
		return false, chatModel.ErrChatNotFound
	}
	next := !chat.Featured
	if err := s.chats.SetFeatured(ctx, chatId, next); err != nil {
		return false, err
	}
	return next, nil
}
