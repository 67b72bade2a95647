package credentials

import (
	"context"
	"encoding/json"
	"errors"
	"strings"

	"github.com/rdpaiva/future-self/internal/infra"
	"github.com/rdpaiva/future-self/internal/sqlinline"
)

const ProviderGemini = "gemini"

// Store keeps provider API keys in the database so operators can rotate them
// without redeploying. The environment variable, when set, always wins; the
// gateway consults this store only as a fallback.
type Store struct {
	sql infra.SQLExecutor
}

func NewStore(sql infra.SQLExecutor) *Store {
	return &Store{sql: sql}
}

func (s *Store) GeminiAPIKey(ctx context.Context) (string, error) {
	return s.token(ctx, ProviderGemini)
}

func (s *Store) token(ctx context.Context, provider string) (string, error) {
	row := s.sql.QueryRow(ctx, sqlinline.QSelectIntegrationToken, provider)
	var token string
	if err := row.Scan(&token); err != nil {
		if infra.IsNoRows(err) {
			return "", nil
		}
		return "", err
	}
	return strings.TrimSpace(token), nil
}

func (s *Store) SetGeminiAPIKey(ctx context.Context, key string) error {
	key = strings.TrimSpace(key)
	if key == "" {
		return errors.New("gemini api key is required")
	}
	raw, err := json.Marshal(map[string]any{})
	if err != nil {
		return err
	}
	_, err = s.sql.Exec(ctx, sqlinline.QUpsertIntegrationToken, ProviderGemini, key, raw)
	return err
}
