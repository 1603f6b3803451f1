package main

import (
	"net/http"
	"net/url"

	"github.com/urfave/cli/v2"
)

var trade = cli.Command{
	Name:  "trade",
	Usage: "open, fund and settle escrow trades",
	Subcommands: []*cli.Command{
		tradeCreateCmd, tradeListCmd, tradeGetCmd, tradeDepositCmd,
		tradeCompleteCmd, tradeCancelCmd, tradeDisputeCmd,
	},
}

var (
	tradeKeyFlag = &cli.StringFlag{
		Name:     "key",
		Usage:    "the address of the trade",
		Required: true,
	}

	tradeCreateCmd = &cli.Command{
		Name:  "create",
		Usage: "open a trade directly with a counterparty, funded by the initiator",
		Flags: []cli.Flag{
			&actorFlag,
			&cli.StringFlag{
				Name:     "counterparty",
				Usage:    "the identity receiving the asset",
				Required: true,
			},
			&cli.StringFlag{
				Name:     "token_mint",
				Usage:    "the asset to trade",
				Required: true,
			},
			&cli.Uint64Flag{
				Name:     "amount",
				Usage:    "the amount to trade",
				Required: true,
			},
			&cli.Uint64Flag{
				Name:     "price",
				Usage:    "the agreed price",
				Required: true,
			},
		},
		Action: tradeCreateAction,
	}
	tradeListCmd = &cli.Command{
		Name:   "list",
		Usage:  "list the trades of a party, default to the configured identity",
		Flags:  []cli.Flag{&actorFlag},
		Action: tradeListAction,
	}
	tradeGetCmd = &cli.Command{
		Name:   "get",
		Usage:  "get the details of a trade",
		Flags:  []cli.Flag{tradeKeyFlag},
		Action: tradeGetAction,
	}
	tradeDepositCmd = &cli.Command{
		Name:  "deposit",
		Usage: "fund the escrow of a trade",
		Flags: []cli.Flag{
			tradeKeyFlag,
			&actorFlag,
			&cli.Uint64Flag{
				Name:     "amount",
				Usage:    "the amount to deposit, must match the trade amount",
				Required: true,
			},
		},
		Action: tradeDepositAction,
	}
	tradeCompleteCmd = &cli.Command{
		Name:  "complete",
		Usage: "release the escrow to the receiver after checking the price",
		Flags: []cli.Flag{
			tradeKeyFlag,
			&actorFlag,
			&cli.StringFlag{
				Name:  "currency",
				Usage: "the currency the trade price is checked against",
				Value: "USD",
			},
			&cli.UintFlag{
				Name:  "tolerance_bps",
				Usage: "the accepted price deviation, default to the daemon one",
			},
		},
		Action: tradeCompleteAction,
	}
	tradeCancelCmd = &cli.Command{
		Name:   "cancel",
		Usage:  "cancel a trade and refund the escrow to the depositor",
		Flags:  []cli.Flag{tradeKeyFlag, &actorFlag},
		Action: tradeTransitionAction("cancel"),
	}
	tradeDisputeCmd = &cli.Command{
		Name:   "dispute",
		Usage:  "dispute a funded trade, freezing its escrow",
		Flags:  []cli.Flag{tradeKeyFlag, &actorFlag},
		Action: tradeTransitionAction("dispute"),
	}
)

func tradeCreateAction(ctx *cli.Context) error {
	initiator, err := getActor(ctx)
	if err != nil {
		return err
	}

	return call(http.MethodPost, "/v1/trades", map[string]interface{}{
		"initiator":    initiator,
		"counterparty": ctx.String("counterparty"),
		"token_mint":   ctx.String("token_mint"),
		"amount":       ctx.Uint64("amount"),
		"price":        ctx.Uint64("price"),
	})
}

func tradeListAction(ctx *cli.Context) error {
	party, err := getActor(ctx)
	if err != nil {
		return err
	}
	query := url.Values{"party": []string{party}}
	return call(http.MethodGet, "/v1/trades?"+query.Encode(), nil)
}

func tradeGetAction(ctx *cli.Context) error {
	return call(http.MethodGet, "/v1/trades/"+ctx.String("key"), nil)
}

func tradeDepositAction(ctx *cli.Context) error {
	depositor, err := getActor(ctx)
	if err != nil {
		return err
	}

	return call(
		http.MethodPost, "/v1/trades/"+ctx.String("key")+"/deposit",
		map[string]interface{}{
			"depositor": depositor,
			"amount":    ctx.Uint64("amount"),
		},
	)
}

func tradeCompleteAction(ctx *cli.Context) error {
	actor, err := getActor(ctx)
	if err != nil {
		return err
	}

	body := map[string]interface{}{
		"actor":    actor,
		"currency": ctx.String("currency"),
	}
	if ctx.IsSet("tolerance_bps") {
		body["tolerance_bps"] = ctx.Uint("tolerance_bps")
	}
	return call(
		http.MethodPost, "/v1/trades/"+ctx.String("key")+"/complete", body,
	)
}

func tradeTransitionAction(action string) cli.ActionFunc {
	return func(ctx *cli.Context) error {
		actor, err := getActor(ctx)
		if err != nil {
			return err
		}
		return call(
			http.MethodPost, "/v1/trades/"+ctx.String("key")+"/"+action,
			map[string]interface{}{"actor": actor},
		)
	}
}
