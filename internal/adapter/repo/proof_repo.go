package repo

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"moa/internal/domain"
	"moa/internal/infra"
	"moa/internal/sqlinline"
)

const constraintProofPerEvent = "purchase_proofs_event_key"

// ProofRepositoryPG implements domain.ProofRepository backed by PostgreSQL.
type ProofRepositoryPG struct {
	db infra.SQLExecutor
}

func NewProofRepository(db infra.SQLExecutor) *ProofRepositoryPG {
	return &ProofRepositoryPG{db: db}
}

func (r *ProofRepositoryPG) CreateProof(ctx context.Context, proof *domain.PurchaseProof) error {
	if proof.ID == "" {
		proof.ID = uuid.NewString()
	}
	if proof.CreatedAt.IsZero() {
		proof.CreatedAt = time.Now()
	}
	_, err := r.db.Exec(ctx, sqlinline.QInsertPurchaseProof, proof.ID, proof.EventID, proof.Images, proof.Message, proof.CreatedAt)
	if err != nil {
		if c, ok := infra.UniqueViolation(err); ok && c == constraintProofPerEvent {
			return domain.ErrDuplicateProof
		}
		return fmt.Errorf("insert proof: %w", err)
	}
	return nil
}

func (r *ProofRepositoryPG) GetProofByEvent(ctx context.Context, eventID string) (*domain.PurchaseProof, error) {
	var p domain.PurchaseProof
	err := r.db.QueryRow(ctx, sqlinline.QGetPurchaseProofByEvent, eventID).Scan(&p.ID, &p.EventID, &p.Images, &p.Message, &p.CreatedAt)
	if err != nil {
		if infra.IsNoRows(err) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return &p, nil
}

var _ domain.ProofRepository = (*ProofRepositoryPG)(nil)
