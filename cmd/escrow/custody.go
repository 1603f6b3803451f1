package main

import (
	"net/http"
	"net/url"

	"github.com/urfave/cli/v2"
)

var custody = cli.Command{
	Name:  "custody",
	Usage: "fund accounts and check their balances",
	Subcommands: []*cli.Command{
		custodyCreditCmd, custodyBalanceCmd,
	},
}

var (
	custodyCreditCmd = &cli.Command{
		Name:  "credit",
		Usage: "deposit an amount of an asset into an account",
		Flags: []cli.Flag{
			&actorFlag,
			&cli.StringFlag{
				Name:     "asset",
				Usage:    "the asset to credit",
				Required: true,
			},
			&cli.Uint64Flag{
				Name:     "amount",
				Usage:    "the amount to credit",
				Required: true,
			},
		},
		Action: custodyCreditAction,
	}
	custodyBalanceCmd = &cli.Command{
		Name:  "balance",
		Usage: "get the balance of an asset held by an account",
		Flags: []cli.Flag{
			&actorFlag,
			&cli.StringFlag{
				Name:     "asset",
				Usage:    "the asset",
				Required: true,
			},
		},
		Action: custodyBalanceAction,
	}
)

func custodyCreditAction(ctx *cli.Context) error {
	account, err := getActor(ctx)
	if err != nil {
		return err
	}

	return call(http.MethodPost, "/v1/custody/credit", map[string]interface{}{
		"account": account,
		"asset":   ctx.String("asset"),
		"amount":  ctx.Uint64("amount"),
	})
}

func custodyBalanceAction(ctx *cli.Context) error {
	account, err := getActor(ctx)
	if err != nil {
		return err
	}

	query := url.Values{"asset": []string{ctx.String("asset")}}
	return call(
		http.MethodGet,
		"/v1/custody/balances/"+account+"?"+query.Encode(), nil,
	)
}
