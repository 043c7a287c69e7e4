// Package repo implements the domain repositories on PostgreSQL. Every
// statement comes from sqlinline and runs through an infra SQL executor.
package repo

import (
	"github.com/jackc/pgx/v5"

	"moa/internal/domain"
	"moa/internal/infra"
)

// scanner is satisfied by pgx.Row and pgx.Rows.
type scanner interface {
	Scan(dest ...any) error
}

func scanEvent(row scanner) (*domain.Event, error) {
	var (
		ev     domain.Event
		status string
	)
	if err := row.Scan(&ev.ID, &ev.OwnerID, &ev.Title, &ev.PooledAmount, &ev.Deadline, &status, &ev.CreatedAt, &ev.UpdatedAt); err != nil {
		if infra.IsNoRows(err) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	ev.Status = domain.EventStatus(status)
	return &ev, nil
}

func scanParticipation(row scanner) (*domain.Participation, error) {
	var (
		p  domain.Participation
		pt string
	)
	if err := row.Scan(&p.ID, &p.EventID, &p.UserID, &p.Amount, &pt, &p.ParticipatedAt); err != nil {
		if infra.IsNoRows(err) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	p.Type = domain.ParticipationType(pt)
	return &p, nil
}

// collect drains rows with scan and closes them.
func collect[T any](rows pgx.Rows, scan func(scanner) (*T, error)) ([]T, error) {
	defer rows.Close()
	var out []T
	for rows.Next() {
		item, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *item)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}
