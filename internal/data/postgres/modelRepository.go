package postgres

import (
	"context"

	"github.com/jmoiron/sqlx"

	"github.com/akolanti/DocChatAPI/internal/domain/chatModel"
)

type modelRepository struct {
	db *sqlx.DB
}

func NewModelRepository(db *sqlx.DB) chatModel.ModelStore {
	return &modelRepository{db: db}
}

func (r *modelRepository) GetModelApiKey(ctx context.Context, modelName string) (string, error) {
	var apiKey string
	query := `SELECT api_key FROM llm_models WHERE name = $1 AND enabled = true`
	err := r.db.GetContext(ctx, &apiKey, query, modelName)
	if isNoRows(err) {
		return "", chatModel.ErrModelNotFound
	}
	if err != nil {
		return "", err
	}
	return apiKey, nil
}

func (r *modelRepository) UpdateModel(ctx context.Context, model chatModel.ModelRecord) error {
	query := `
		INSERT INTO llm_models (name, api_key, enabled)
		VALUES ($1, $2, $3)
		ON CONFLICT (name) DO UPDATE SET api_key = EXCLUDED.api_key, enabled = EXCLUDED.enabled
	`
	_, err := r.db.ExecContext(ctx, query, model.Name, model.ApiKey, model.Enabled)
	return err
}
