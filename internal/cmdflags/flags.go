package cmdflags

import (
	"github.com/urfave/cli/v2"
)

const (
	StoreMemory = "memory"
	StoreSQLite = "sqlite"
)

func Port(out *int) cli.Flag {
	if *out == 0 {
		*out = 3000
	}
	return &cli.IntFlag{
		Name:        "port",
		Aliases:     []string{"p"},
		Usage:       "Port to listen on",
		EnvVars:     []string{"PORT"},
		Value:       *out,
		Destination: out,
	}
}

func Host(out *string) cli.Flag {
	return &cli.StringFlag{
		Name:        "host",
		Usage:       "Interface to bind (leave empty to listen on all of them)",
		EnvVars:     []string{"HIJACKBOX_HOST"},
		Value:       *out,
		Destination: out,
	}
}

func Store(out *string) cli.Flag {
	if *out == "" {
		*out = StoreMemory
	}
	return &cli.StringFlag{
		Name:        "store",
		Usage:       "Where users and captures are kept: memory or sqlite",
		EnvVars:     []string{"HIJACKBOX_STORE"},
		Value:       *out,
		Destination: out,
	}
}

func SQLiteDSN(out *string) cli.Flag {
	return &cli.StringFlag{
		Name:        "sqlite-dsn",
		Usage:       "sqlite connection string, defaults to a private in-memory database",
		EnvVars:     []string{"HIJACKBOX_SQLITE_DSN"},
		Value:       *out,
		Destination: out,
	}
}

func LogLevel(out *string) cli.Flag {
	if *out == "" {
		*out = "info"
	}
	return &cli.StringFlag{
		Name:        "log-level",
		Usage:       "Minimum level to log (debug, info, warn, error)",
		EnvVars:     []string{"HIJACKBOX_LOG_LEVEL"},
		Value:       *out,
		Destination: out,
	}
}

func LogPretty(out *bool) cli.Flag {
	return &cli.BoolFlag{
		Name:        "log-pretty",
		Usage:       "Write human friendly logs instead of json lines",
		EnvVars:     []string{"HIJACKBOX_LOG_PRETTY"},
		Value:       *out,
		Destination: out,
	}
}
