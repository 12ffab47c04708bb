package testutil

import (
	"context"
	"os"
	"path/filepath"

	"github.com/andrebq/hijackbox/internal/sqlstore"
)

type (
	TestLog interface {
		Fatal(...interface{})
		Log(...interface{})
	}
)

// AcquireSQLStore opens a sqlite database under a temporary directory,
// the returned function closes it and removes the directory.
func AcquireSQLStore(ctx context.Context, t TestLog, name string) (*sqlstore.DB, func()) {
	dir, err := os.MkdirTemp("", "hijackbox-tests")
	if err != nil {
		t.Fatal(err)
	}
	dsn := "file:" + filepath.Join(dir, name+".db") + "?_journal=wal&mode=rwc"
	db, err := sqlstore.Open(ctx, dsn)
	if err != nil {
		t.Fatal(err)
	}
	return db, func() {
		err := db.Close()
		if err != nil {
			t.Log("unable to close database", err)
		}
		err = os.RemoveAll(dir)
		if err != nil {
			t.Log("unable to cleanup temp dir", dir)
		}
	}
}
