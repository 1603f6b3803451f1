package main

import (
	"net/http"
	"net/url"

	"github.com/urfave/cli/v2"
)

var offer = cli.Command{
	Name:  "offer",
	Usage: "create, manage and take offers",
	Subcommands: []*cli.Command{
		offerCreateCmd, offerListCmd, offerGetCmd, offerUpdateCmd,
		offerPauseCmd, offerResumeCmd, offerCloseCmd, offerTakeCmd,
	},
}

var (
	offerKeyFlag = &cli.StringFlag{
		Name:     "key",
		Usage:    "the address of the offer",
		Required: true,
	}

	offerCreateCmd = &cli.Command{
		Name:  "create",
		Usage: "create an offer to buy or sell an asset within an amount range",
		Flags: []cli.Flag{
			&actorFlag,
			&cli.StringFlag{
				Name:     "token_mint",
				Usage:    "the asset to trade",
				Required: true,
			},
			&cli.Uint64Flag{
				Name:     "price",
				Usage:    "the price per token",
				Required: true,
			},
			&cli.Uint64Flag{
				Name:     "min_amount",
				Usage:    "the min amount that can be taken",
				Required: true,
			},
			&cli.Uint64Flag{
				Name:     "max_amount",
				Usage:    "the max amount that can be taken",
				Required: true,
			},
			&cli.StringFlag{
				Name:  "type",
				Usage: "the offer type, either buy or sell",
				Value: "sell",
			},
		},
		Action: offerCreateAction,
	}
	offerListCmd = &cli.Command{
		Name:  "list",
		Usage: "list offers, optionally filtered",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "token_mint", Usage: "filter by asset"},
			&cli.StringFlag{Name: "type", Usage: "filter by offer type"},
			&cli.StringFlag{Name: "status", Usage: "filter by status"},
			&cli.StringFlag{Name: "maker", Usage: "filter by maker"},
		},
		Action: offerListAction,
	}
	offerGetCmd = &cli.Command{
		Name:   "get",
		Usage:  "get the details of an offer",
		Flags:  []cli.Flag{offerKeyFlag},
		Action: offerGetAction,
	}
	offerUpdateCmd = &cli.Command{
		Name:  "update",
		Usage: "update the price or the amount range of an offer",
		Flags: []cli.Flag{
			offerKeyFlag,
			&actorFlag,
			&cli.Uint64Flag{Name: "price", Usage: "the new price per token"},
			&cli.Uint64Flag{Name: "min_amount", Usage: "the new min amount"},
			&cli.Uint64Flag{Name: "max_amount", Usage: "the new max amount"},
		},
		Action: offerUpdateAction,
	}
	offerPauseCmd = &cli.Command{
		Name:   "pause",
		Usage:  "pause an active offer",
		Flags:  []cli.Flag{offerKeyFlag, &actorFlag},
		Action: offerTransitionAction("pause"),
	}
	offerResumeCmd = &cli.Command{
		Name:   "resume",
		Usage:  "resume a paused offer",
		Flags:  []cli.Flag{offerKeyFlag, &actorFlag},
		Action: offerTransitionAction("resume"),
	}
	offerCloseCmd = &cli.Command{
		Name:   "close",
		Usage:  "close an offer for good",
		Flags:  []cli.Flag{offerKeyFlag, &actorFlag},
		Action: offerTransitionAction("close"),
	}
	offerTakeCmd = &cli.Command{
		Name:  "take",
		Usage: "open a trade against an offer",
		Flags: []cli.Flag{
			offerKeyFlag,
			&actorFlag,
			&cli.Uint64Flag{
				Name:     "amount",
				Usage:    "the amount to trade",
				Required: true,
			},
		},
		Action: offerTakeAction,
	}
)

func offerCreateAction(ctx *cli.Context) error {
	maker, err := getActor(ctx)
	if err != nil {
		return err
	}

	return call(http.MethodPost, "/v1/offers", map[string]interface{}{
		"maker":           maker,
		"token_mint":      ctx.String("token_mint"),
		"price_per_token": ctx.Uint64("price"),
		"min_amount":      ctx.Uint64("min_amount"),
		"max_amount":      ctx.Uint64("max_amount"),
		"offer_type":      ctx.String("type"),
	})
}

func offerListAction(ctx *cli.Context) error {
	query := url.Values{}
	for _, name := range []string{"token_mint", "status", "maker"} {
		if v := ctx.String(name); len(v) > 0 {
			query.Set(name, v)
		}
	}
	if v := ctx.String("type"); len(v) > 0 {
		query.Set("offer_type", v)
	}

	path := "/v1/offers"
	if len(query) > 0 {
		path += "?" + query.Encode()
	}
	return call(http.MethodGet, path, nil)
}

func offerGetAction(ctx *cli.Context) error {
	return call(http.MethodGet, "/v1/offers/"+ctx.String("key"), nil)
}

func offerUpdateAction(ctx *cli.Context) error {
	actor, err := getActor(ctx)
	if err != nil {
		return err
	}

	body := map[string]interface{}{"actor": actor}
	if ctx.IsSet("price") {
		body["price_per_token"] = ctx.Uint64("price")
	}
	if ctx.IsSet("min_amount") {
		body["min_amount"] = ctx.Uint64("min_amount")
	}
	if ctx.IsSet("max_amount") {
		body["max_amount"] = ctx.Uint64("max_amount")
	}
	if len(body) == 1 {
		return &invalidUsageError{ctx, "update"}
	}

	return call(http.MethodPatch, "/v1/offers/"+ctx.String("key"), body)
}

func offerTransitionAction(action string) cli.ActionFunc {
	return func(ctx *cli.Context) error {
		actor, err := getActor(ctx)
		if err != nil {
			return err
		}
		return call(
			http.MethodPost, "/v1/offers/"+ctx.String("key")+"/"+action,
			map[string]interface{}{"actor": actor},
		)
	}
}

func offerTakeAction(ctx *cli.Context) error {
	taker, err := getActor(ctx)
	if err != nil {
		return err
	}

	return call(
		http.MethodPost, "/v1/offers/"+ctx.String("key")+"/take",
		map[string]interface{}{
			"taker":  taker,
			"amount": ctx.Uint64("amount"),
		},
	)
}
