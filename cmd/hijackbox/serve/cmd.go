package serve

import (
	"context"
	"fmt"
	"io"

	"github.com/andrebq/hijackbox/harvest"
	"github.com/andrebq/hijackbox/identity"
	"github.com/andrebq/hijackbox/internal/cmdflags"
	"github.com/andrebq/hijackbox/internal/httpserver"
	"github.com/andrebq/hijackbox/internal/logutil"
	"github.com/andrebq/hijackbox/internal/sqlstore"
	"github.com/andrebq/hijackbox/webapp"
	"github.com/urfave/cli/v2"
)

func Cmd() *cli.Command {
	var port int
	var host string
	var store string
	var dsn string
	var level string
	var pretty bool
	return &cli.Command{
		Name:  "serve",
		Usage: "Start the demo app",
		Flags: []cli.Flag{
			cmdflags.Port(&port),
			cmdflags.Host(&host),
			cmdflags.Store(&store),
			cmdflags.SQLiteDSN(&dsn),
			cmdflags.LogLevel(&level),
			cmdflags.LogPretty(&pretty),
		},
		Action: func(ctx *cli.Context) error {
			logger, err := logutil.New(ctx.App.ErrWriter, level, pretty)
			if err != nil {
				return err
			}
			appCtx := logutil.WithLogger(ctx.Context, logger)
			users, captures, closer, err := openStores(appCtx, store, dsn)
			if err != nil {
				return err
			}
			defer closer.Close()
			logger.Info().Str("store", store).Msg("State initialized")

			handler, err := webapp.AsHandler(appCtx, webapp.NewState(users, captures, nil))
			if err != nil {
				return err
			}
			return httpserver.Serve(appCtx, httpserver.Addr(host, port), handler)
		},
	}
}

func openStores(ctx context.Context, kind, dsn string) (identity.Store, harvest.Log, io.Closer, error) {
	switch kind {
	case cmdflags.StoreMemory:
		users, err := identity.NewMemoryStore()
		if err != nil {
			return nil, nil, nil, err
		}
		return users, harvest.NewMemoryLog(), users, nil
	case cmdflags.StoreSQLite:
		db, err := sqlstore.Open(ctx, dsn)
		if err != nil {
			return nil, nil, nil, err
		}
		return db.Users(), db.Captures(), db, nil
	}
	return nil, nil, nil, fmt.Errorf("unknown store %q, use %v or %v", kind, cmdflags.StoreMemory, cmdflags.StoreSQLite)
}
