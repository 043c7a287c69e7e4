package repo

import (
	"context"
	"time"

	"moa/internal/domain"
	"moa/internal/infra"
	"moa/internal/sqlinline"
)

// ShareTokenRepositoryPG implements domain.ShareTokenRepository backed by PostgreSQL.
type ShareTokenRepositoryPG struct {
	db infra.SQLExecutor
}

func NewShareTokenRepository(db infra.SQLExecutor) *ShareTokenRepositoryPG {
	return &ShareTokenRepositoryPG{db: db}
}

func (r *ShareTokenRepositoryPG) CreateShareToken(ctx context.Context, t *domain.ShareToken) error {
	_, err := r.db.Exec(ctx, sqlinline.QInsertShareToken, t.Token, t.EventID, t.ExpiresAt, t.IsActive, t.CreatedAt)
	return err
}

func (r *ShareTokenRepositoryPG) GetShareToken(ctx context.Context, token string) (*domain.ShareToken, error) {
	var t domain.ShareToken
	err := r.db.QueryRow(ctx, sqlinline.QGetShareToken, token).Scan(&t.Token, &t.EventID, &t.ExpiresAt, &t.IsActive, &t.CreatedAt)
	if err != nil {
		if infra.IsNoRows(err) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &t, nil
}

func (r *ShareTokenRepositoryPG) PurgeShareTokens(ctx context.Context, now time.Time) (int64, error) {
	tag, err := r.db.Exec(ctx, sqlinline.QPurgeShareTokens, now)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

var _ domain.ShareTokenRepository = (*ShareTokenRepositoryPG)(nil)
