package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/akolanti/DocChatAPI/internal/domain/chatModel"
)

type chatRow struct {
	Id              string    `db:"id"`
	UserId          string    `db:"user_id"`
	Question        string    `db:"question"`
	Answer          string    `db:"answer"`
	Model           string    `db:"model"`
	ReferencesCount int       `db:"references_count"`
	References      []byte    `db:"references"`
	Files           []byte    `db:"files"`
	Featured        bool      `db:"featured"`
	ChatType        string    `db:"chat_type"`
	CreatedTime     time.Time `db:"created_time"`
}

type chatRepository struct {
	db *sqlx.DB
}

func NewChatRepository(db *sqlx.DB) chatModel.ChatStore {
	return &chatRepository{db: db}
}

func (r *chatRepository) SaveChat(ctx context.Context, chat chatModel.ChatHistoryRecord) error {
	references, err := json.Marshal(chat.References)
	if err != nil {
		return err
	}
	files, err := json.Marshal(chat.Files)
	if err != nil {
		return err
	}
	query := `
		INSERT INTO chat_history (id, user_id, question, answer, model, references_count, "references", files, featured, chat_type, created_time)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)
	`
	_, err = r.db.ExecContext(ctx, query, chat.Id, chat.UserId, chat.Question, chat.Answer, chat.Model,
		chat.ReferencesCount, references, files, chat.Featured, chat.ChatType, chat.CreatedTime)
	return err
}

func (r *chatRepository) GetChat(ctx context.Context, chatId string) (chatModel.ChatHistoryRecord, bool) {
	var row chatRow
	query := `SELECT * FROM chat_history WHERE id = $1`
	if err := r.db.GetContext(ctx, &row, query, chatId); err != nil {
		return chatModel.ChatHistoryRecord{}, false
	}
	return toChatRecord(row), true
}

func (r *chatRepository) GetUserChats(ctx context.Context, userId string) ([]chatModel.ChatHistoryRecord, error) {
	var rows []chatRow
	query := `SELECT * FROM chat_history WHERE user_id = $1 ORDER BY created_time DESC`
	if err := r.db.SelectContext(ctx, &rows, query, userId); err != nil {
		return nil, err
	}
	chats := make([]chatModel.ChatHistoryRecord, 0, len(rows))
	for _, row := range rows {
		chats = append(chats, toChatRecord(row))
	}
	return chats, nil
}

func (r *chatRepository) SetFeatured(ctx context.Context, chatId string, featured bool) error {
	res, err := r.db.ExecContext(ctx, `UPDATE chat_history SET featured = $2 WHERE id = $1`, chatId, featured)
	if err != nil {
		return err
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if affected == 0 {
		return fmt.Errorf("chat %s: %w", chatId, chatModel.ErrChatNotFound)
	}
	return nil
}

func toChatRecord(row chatRow) chatModel.ChatHistoryRecord {
	var references []chatModel.ChatReference
	var files []chatModel.ChatFile
	if len(row.References) > 0 {
		if err := json.Unmarshal(row.References, &references); err != nil {
			references = nil
		}
	}
	if len(row.Files) > 0 {
		if err := json.Unmarshal(row.Files, &files); err != nil {
			files = nil
		}
	}
	return chatModel.ChatHistoryRecord{
		Id:              row.Id,
		UserId:          row.UserId,
		Question:        row.Question,
		Answer:          row.Answer,
		Model:           row.Model,
		ReferencesCount: row.ReferencesCount,
		References:      references,
		Files:           files,
		Featured:        row.Featured,
		ChatType:        chatModel.ChatType(row.ChatType),
		CreatedTime:     row.CreatedTime,
	}
}
