package query

import (
	"context"
	"errors"
	"testing"

	"github.com/akolanti/DocChatAPI/internal/admission"
	"github.com/akolanti/DocChatAPI/internal/data/store"
	"github.com/akolanti/DocChatAPI/internal/domain/chatModel"
	"github.com/akolanti/DocChatAPI/internal/domain/fileModel"
	"github.com/akolanti/DocChatAPI/internal/engine"
	"github.com/akolanti/DocChatAPI/internal/resolver"
)

type MockInvoker struct {
	OnInvoke func(ctx context.Context, request any, response any) error
	Calls    int
}

func (m *MockInvoker) Invoke(ctx context.Context, request any, response any) error {
	m.Calls++
	if m.OnInvoke != nil {
		return m.OnInvoke(ctx, request, response)
	}
	return nil
}

type fixture struct {
	svc    *Service
	files  *store.InMemoryFileStore
	chats  *store.InMemoryChatStore
	models *store.InMemoryModelStore
}

func newFixture(invoker engine.Invoker) fixture {
	files := store.InitInMemoryFileStore()
	chats := store.InitInMemoryChatStore()
	models := store.InitInMemoryModelStore([]chatModel.ModelRecord{
		{Name: "gpt-test", ApiKey: "server-key", Enabled: true},
		{Name: "disabled-model", ApiKey: "unused", Enabled: false},
	})
	gate := admission.NewController(admission.InitInMemoryWindowStore(), files)

	return fixture{
		svc:    NewService(files, chats, models, gate, resolver.NewResolver(files), invoker),
		files:  files,
		chats:  chats,
		models: models,
	}
}

func seedFile(f fixture, id string, tags ...string) {
	f.files.SaveFile(context.Background(), fileModel.FileRecord{
		Id: id, OwnerId: "user-1", OriginalName: id + ".pdf", FileType: ".pdf",
		TotalPages: 20, Tags: tags,
	})
}

func baseAsk() Ask {
	return Ask{
		Question:        "what does the contract say?",
		ModelId:         "gpt-test",
		ReferencesCount: 3,
		SelectedDocs: []fileModel.SelectedDocument{
			{FileId: "f-1", PageRanges: []fileModel.PageRange{{Start: 0, End: 5}}},
		},
	}
}

func TestAsk_Success(t *testing.T) {
	var gotRequest engine.QueryRequest
	invoker := &MockInvoker{
		OnInvoke: func(ctx context.Context, request any, response any) error {
			gotRequest = request.(engine.QueryRequest)
			*(response.(*engine.QueryResponse)) = engine.QueryResponse{
				Answer: "the answer",
				References: []chatModel.ChatReference{
					{FileName: "f-1.pdf", FileId: "f-1", PageNo: 2},
				},
				TokensUsed: chatModel.TokensUsed{Input: 120, Output: 40},
			}
			return nil
		},
	}
	f := newFixture(invoker)
	seedFile(f, "f-1")

	answer, err := f.svc.Ask(context.Background(), "user-1", baseAsk())
	if err != nil {
		t.Fatalf("Ask failed: %v", err)
	}

	if gotRequest.UserId != "user-1" || gotRequest.Query != "what does the contract say?" {
		t.Errorf("engine request wrong: %+v", gotRequest)
	}
	if gotRequest.ApiKey != "server-key" {
		t.Errorf("engine should get the server-held key, got %q", gotRequest.ApiKey)
	}
	if gotRequest.NoOfReferences != 3 || len(gotRequest.FileInfo) != 1 {
		t.Errorf("engine request wrong: %+v", gotRequest)
	}

	if answer.Text != "the answer" || answer.ChatId == "" {
		t.Errorf("answer wrong: %+v", answer)
	}
	if answer.TokensUsed.Input != 120 || answer.TokensUsed.Output != 40 {
		t.Errorf("token usage wrong: %+v", answer.TokensUsed)
	}

	// the exchange is in history with the file snapshot denormalized
	chat, found := f.chats.GetChat(context.Background(), answer.ChatId)
	if !found {
		t.Fatal("chat should be persisted")
	}
	if chat.Answer != "the answer" || chat.Model != "gpt-test" || chat.Featured {
		t.Errorf("chat record wrong: %+v", chat)
	}
	if len(chat.Files) != 1 || chat.Files[0].FileName != "f-1.pdf" || chat.Files[0].TotalPages != 20 {
		t.Errorf("file snapshot wrong: %+v", chat.Files)
	}
}

func TestAsk_CustomApiKey(t *testing.T) {
	var gotKey string
	invoker := &MockInvoker{
		OnInvoke: func(ctx context.Context, request any, response any) error {
			gotKey = request.(engine.QueryRequest).ApiKey
			return nil
		},
	}
	f := newFixture(invoker)
	seedFile(f, "f-1")

	ask := baseAsk()
	ask.ModelId = "model-we-do-not-hold" //must not matter once the caller brings a key
	ask.UseCustomApiKey = true
	ask.CustomApiKey = "caller-key"

	if _, err := f.svc.Ask(context.Background(), "user-1", ask); err != nil {
		t.Fatalf("Ask failed: %v", err)
	}
	if gotKey != "caller-key" {
		t.Errorf("engine should get the caller's key, got %q", gotKey)
	}
}

func TestAsk_UnknownOrDisabledModel(t *testing.T) {
	for _, model := range []string{"no-such-model", "disabled-model"} {
		invoker := &MockInvoker{}
		f := newFixture(invoker)
		seedFile(f, "f-1")

		ask := baseAsk()
		ask.ModelId = model

		_, err := f.svc.Ask(context.Background(), "user-1", ask)
		if !errors.Is(err, chatModel.ErrModelNotFound) {
			t.Errorf("model %q: want ErrModelNotFound, got %v", model, err)
		}
		if invoker.Calls != 0 {
			t.Errorf("model %q: engine must not run without a usable key", model)
		}
	}
}

func TestAsk_NoDocumentsNeverSpawnsEngine(t *testing.T) {
	invoker := &MockInvoker{}
	f := newFixture(invoker)

	ask := baseAsk()
	ask.SelectedDocs = nil

	_, err := f.svc.Ask(context.Background(), "user-1", ask)
	if !errors.Is(err, resolver.ErrNoDocuments) {
		t.Fatalf("want ErrNoDocuments, got %v", err)
	}
	if invoker.Calls != 0 {
		t.Error("engine must not run with no documents resolved")
	}
	if chats, _ := f.chats.GetUserChats(context.Background(), "user-1"); len(chats) != 0 {
		t.Error("no chat should be persisted")
	}
}

func TestAsk_EngineFailureLeavesNoHistory(t *testing.T) {
	invoker := &MockInvoker{
		OnInvoke: func(ctx context.Context, request any, response any) error {
			return engine.ErrTimedOut
		},
	}
	f := newFixture(invoker)
	seedFile(f, "f-1")

	_, err := f.svc.Ask(context.Background(), "user-1", baseAsk())
	if !errors.Is(err, engine.ErrTimedOut) {
		t.Fatalf("engine failure should propagate, got %v", err)
	}
	if chats, _ := f.chats.GetUserChats(context.Background(), "user-1"); len(chats) != 0 {
		t.Error("a failed query must not appear in history")
	}
}

func TestAsk_RateLimited(t *testing.T) {
	f := newFixture(&MockInvoker{})
	seedFile(f, "f-1")
	ctx := context.Background()

	// AskRoute carries no override, so the default window applies
	var err error
	for i := 0; i < 50; i++ {
		if _, err = f.svc.Ask(ctx, "user-1", baseAsk()); err != nil {
			break
		}
	}

	var denied *admission.DeniedError
	if !errors.As(err, &denied) {
		t.Fatalf("sustained asking should hit the rate limit, got %v", err)
	}
}

func TestFeatureChat_Toggle(t *testing.T) {
	f := newFixture(&MockInvoker{})
	ctx := context.Background()

	f.chats.SaveChat(ctx, chatModel.ChatHistoryRecord{Id: "c-1", UserId: "user-1"})

	on, err := f.svc.FeatureChat(ctx, "user-1", "c-1")
	if err != nil || !on {
		t.Fatalf("first toggle should feature the chat, got on=%v err=%v", on, err)
	}
	off, err := f.svc.FeatureChat(ctx, "user-1", "c-1")
	if err != nil || off {
		t.Fatalf("second toggle should restore the original state, got on=%v err=%v", off, err)
	}

	if _, err := f.svc.FeatureChat(ctx, "user-2", "c-1"); !errors.Is(err, chatModel.ErrChatNotFound) {
		t.Errorf("another user's chat should be not found, got %v", err)
	}
	if _, err := f.svc.FeatureChat(ctx, "user-1", "ghost"); !errors.Is(err, chatModel.ErrChatNotFound) {
		t.Errorf("unknown chat should be not found, got %v", err)
	}
}
