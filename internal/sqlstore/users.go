package sqlstore

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/andrebq/hijackbox/identity"
	"github.com/cespare/xxhash/v2"
)

type (
	Users struct {
		db *sql.DB
	}
)

var _ identity.Store = (*Users)(nil)

func (u *Users) Put(ctx context.Context, rec identity.UserRecord) error {
	_, err := u.db.ExecContext(ctx, `insert or replace into users(id, email, email_hash64, password) values (?, ?, ?, ?)`,
		string(rec.ID), rec.Email, emailHash(rec.Email), rec.Password)
	if err != nil {
		return fmt.Errorf("unable to store user %v, cause %w", rec.ID, err)
	}
	return nil
}

func (u *Users) Get(ctx context.Context, id identity.Token) (identity.UserRecord, bool, error) {
	return u.one(ctx, `select id, email, password from users where id = ?`, string(id))
}

func (u *Users) FindByEmail(ctx context.Context, email string) (identity.UserRecord, bool, error) {
	return u.one(ctx, `select id, email, password from users where email_hash64 = ? and email = ? limit 1`,
		emailHash(email), email)
}

func (u *Users) FindByCredentials(ctx context.Context, email, password string) (identity.UserRecord, bool, error) {
	return u.one(ctx, `select id, email, password from users where email_hash64 = ? and email = ? and password = ? limit 1`,
		emailHash(email), email, password)
}

func (u *Users) Delete(ctx context.Context, id identity.Token) error {
	_, err := u.db.ExecContext(ctx, `delete from users where id = ?`, string(id))
	if err != nil {
		return fmt.Errorf("unable to delete user %v, cause %w", id, err)
	}
	return nil
}

func (u *Users) List(ctx context.Context) ([]identity.UserRecord, error) {
	rows, err := u.db.QueryContext(ctx, `select id, email, password from users order by rowid asc`)
	if err != nil {
		return nil, fmt.Errorf("unable to list users, cause %w", err)
	}
	defer rows.Close()
	var out []identity.UserRecord
	for rows.Next() {
		var rec identity.UserRecord
		var id string
		err = rows.Scan(&id, &rec.Email, &rec.Password)
		if err != nil {
			return nil, fmt.Errorf("unable to scan user, cause %w", err)
		}
		rec.ID = identity.Token(id)
		out = append(out, rec)
	}
	return out, rows.Err()
}

func (u *Users) one(ctx context.Context, query string, args ...interface{}) (identity.UserRecord, bool, error) {
	var rec identity.UserRecord
	var id string
	err := u.db.QueryRowContext(ctx, query, args...).Scan(&id, &rec.Email, &rec.Password)
	if errors.Is(err, sql.ErrNoRows) {
		return identity.UserRecord{}, false, nil
	} else if err != nil {
		return identity.UserRecord{}, false, fmt.Errorf("unable to lookup user, cause %w", err)
	}
	rec.ID = identity.Token(id)
	return rec, true, nil
}

func emailHash(email string) int64 {
	return int64(xxhash.Sum64String(email))
}
