package sqlstore

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/andrebq/hijackbox/harvest"
)

type (
	Captures struct {
		db *sql.DB
	}
)

var _ harvest.Log = (*Captures)(nil)

func (c *Captures) Append(ctx context.Context, entry harvest.Capture) error {
	_, err := c.db.ExecContext(ctx, `insert into captures(email, password, captured_at, remote_addr, user_agent) values (?, ?, ?, ?, ?)`,
		entry.Email, entry.Password, entry.CapturedAt.UnixNano(), entry.RemoteAddr, entry.UserAgent)
	if err != nil {
		return fmt.Errorf("unable to append capture, cause %w", err)
	}
	return nil
}

func (c *Captures) List(ctx context.Context) ([]harvest.Capture, error) {
	rows, err := c.db.QueryContext(ctx, `select email, password, captured_at, remote_addr, user_agent from captures order by seq asc`)
	if err != nil {
		return nil, fmt.Errorf("unable to list captures, cause %w", err)
	}
	defer rows.Close()
	var out []harvest.Capture
	for rows.Next() {
		var entry harvest.Capture
		var nanos int64
		err = rows.Scan(&entry.Email, &entry.Password, &nanos, &entry.RemoteAddr, &entry.UserAgent)
		if err != nil {
			return nil, fmt.Errorf("unable to scan capture, cause %w", err)
		}
		entry.CapturedAt = time.Unix(0, nanos).UTC()
		out = append(out, entry)
	}
	return out, rows.Err()
}

func (c *Captures) Len(ctx context.Context) (int, error) {
	var n int
	err := c.db.QueryRowContext(ctx, `select count(*) from captures`).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("unable to count captures, cause %w", err)
	}
	return n, nil
}
