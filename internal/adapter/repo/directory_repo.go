package repo

import (
	"context"

	"moa/internal/domain"
	"moa/internal/infra"
	"moa/internal/sqlinline"
)

// DirectoryPG reads profiles, follow edges and letters owned by other
// services from their tables in the shared database.
type DirectoryPG struct {
	db infra.SQLExecutor
}

func NewDirectory(db infra.SQLExecutor) *DirectoryPG {
	return &DirectoryPG{db: db}
}

func scanUser(row scanner) (*domain.User, error) {
	var u domain.User
	if err := row.Scan(&u.ID, &u.Name, &u.Birthday); err != nil {
		return nil, err
	}
	return &u, nil
}

func (d *DirectoryPG) FindUsersWithBirthday(ctx context.Context) ([]domain.User, error) {
	rows, err := d.db.Query(ctx, sqlinline.QFindUsersWithBirthday)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanUser)
}

func (d *DirectoryPG) FindUsersByIDs(ctx context.Context, ids []string) ([]domain.User, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	rows, err := d.db.Query(ctx, sqlinline.QFindUsersByIDs, ids)
	if err != nil {
		return nil, err
	}
	return collect(rows, scanUser)
}

func (d *DirectoryPG) IsFollowing(ctx context.Context, followerID, targetID string) (bool, error) {
	var ok bool
	if err := d.db.QueryRow(ctx, sqlinline.QIsFollowing, followerID, targetID).Scan(&ok); err != nil {
		return false, err
	}
	return ok, nil
}

func (d *DirectoryPG) FollowersOf(ctx context.Context, userID string) ([]string, error) {
	rows, err := d.db.Query(ctx, sqlinline.QFollowersOf, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		out = append(out, id)
	}
	return out, rows.Err()
}

func (d *DirectoryPG) HasWrittenLetter(ctx context.Context, userID, eventID string) (bool, error) {
	var ok bool
	if err := d.db.QueryRow(ctx, sqlinline.QHasWrittenLetter, userID, eventID).Scan(&ok); err != nil {
		return false, err
	}
	return ok, nil
}

var (
	_ domain.UserDirectory   = (*DirectoryPG)(nil)
	_ domain.SocialGraph     = (*DirectoryPG)(nil)
	_ domain.LetterDirectory = (*DirectoryPG)(nil)
)
