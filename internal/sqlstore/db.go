// Package sqlstore keeps users and harvested credentials in sqlite.
//
// The default DSN points to an in-memory database, so state still dies
// with the process, same as the memory backends.
package sqlstore

import (
	"context"
	"database/sql"
	"fmt"

	_ "github.com/mattn/go-sqlite3"
)

type (
	DB struct {
		db *sql.DB
	}
)

const (
	MemoryDSN = ":memory:"
)

// Open connects to the given sqlite dsn and creates the tables if needed.
//
// A single connection is kept open: an in-memory database is private to its
// connection and would vanish if the pool recycled it.
func Open(ctx context.Context, dsn string) (*DB, error) {
	if dsn == "" {
		dsn = MemoryDSN
	}
	conn, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("unable to open %v, cause %w", dsn, err)
	}
	conn.SetMaxOpenConns(1)
	conn.SetMaxIdleConns(1)
	conn.SetConnMaxLifetime(0)
	conn.SetConnMaxIdleTime(0)
	err = conn.PingContext(ctx)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("unable to ping %v, cause %w", dsn, err)
	}
	d := &DB{db: conn}
	err = d.init(ctx)
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("unable to init %v, cause %w", dsn, err)
	}
	return d, nil
}

func (d *DB) Users() *Users {
	return &Users{db: d.db}
}

func (d *DB) Captures() *Captures {
	return &Captures{db: d.db}
}

func (d *DB) Close() error {
	return d.db.Close()
}

func (d *DB) init(ctx context.Context) error {
	for _, cmd := range []string{
		// no unique constraint on email, registration checks it
		`create table if not exists users(
			id text not null primary key,
			email text not null,
			email_hash64 integer not null,
			password text not null
		)`,
		`create index if not exists idx_users_email_hash64 on users(email_hash64)`,
		`create table if not exists captures(
			seq integer not null primary key autoincrement,
			email text not null,
			password text not null,
			captured_at integer not null,
			remote_addr text not null,
			user_agent text not null
		)`,
	} {
		_, err := d.db.ExecContext(ctx, cmd)
		if err != nil {
			return fmt.Errorf("unable to run %v, cause %w", cmd, err)
		}
	}
	return nil
}
