package token

import (
	"fmt"

	"github.com/andrebq/hijackbox/identity"
	"github.com/urfave/cli/v2"
)

func Cmd() *cli.Command {
	var count int
	return &cli.Command{
		Name:  "token",
		Usage: "Print freshly generated session tokens, same format the server hands out",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:        "count",
				Aliases:     []string{"n"},
				Usage:       "How many tokens to print",
				Value:       1,
				Destination: &count,
			},
		},
		Action: func(ctx *cli.Context) error {
			for i := 0; i < count; i++ {
				tk, err := identity.NewToken(nil)
				if err != nil {
					return err
				}
				fmt.Fprintln(ctx.App.Writer, tk)
			}
			return nil
		},
	}
}
