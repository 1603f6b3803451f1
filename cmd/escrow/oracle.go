package main

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/urfave/cli/v2"
)

var oracle = cli.Command{
	Name:   "oracle",
	Usage:  "show or administer the price oracle",
	Action: oracleInfoAction,
	Subcommands: []*cli.Command{
		oracleInitCmd, oracleProviderCmd, oraclePricesCmd, oraclePriceCmd,
		oracleRouteCmd, oracleVerifyCmd,
	},
}

var (
	oracleInitCmd = &cli.Command{
		Name:   "init",
		Usage:  "initialize the oracle, the actor becomes admin and price provider",
		Flags:  []cli.Flag{&actorFlag},
		Action: oracleInitAction,
	}
	oracleProviderCmd = &cli.Command{
		Name:  "provider",
		Usage: "change the identity allowed to update prices, admin only",
		Flags: []cli.Flag{
			&actorFlag,
			&cli.StringFlag{
				Name:     "provider",
				Usage:    "the new price provider",
				Required: true,
			},
		},
		Action: oracleProviderAction,
	}
	oraclePricesCmd = &cli.Command{
		Name:  "update",
		Usage: "update the reference quotes, price provider only",
		Flags: []cli.Flag{
			&actorFlag,
			&cli.StringSliceFlag{
				Name:     "quote",
				Usage:    "a CURRENCY:USD_PRICE pair, can be repeated",
				Required: true,
			},
		},
		Action: oraclePricesAction,
	}
	oraclePriceCmd = &cli.Command{
		Name:  "price",
		Usage: "get the reference quote of a currency",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "currency",
				Usage:    "the currency code",
				Required: true,
			},
		},
		Action: oraclePriceAction,
	}
	oracleRouteCmd = &cli.Command{
		Name:  "route",
		Usage: "register the conversion routes of a denom, admin only",
		Flags: []cli.Flag{
			&actorFlag,
			&cli.StringFlag{
				Name:     "denom",
				Usage:    "the denom the routes convert",
				Required: true,
			},
			&cli.StringSliceFlag{
				Name:     "route",
				Usage:    "an OFFER_ASSET:POOL pair, can be repeated",
				Required: true,
			},
		},
		Action: oracleRouteAction,
	}
	oracleVerifyCmd = &cli.Command{
		Name:  "verify",
		Usage: "check a price against the reference quote",
		Flags: []cli.Flag{
			&cli.Uint64Flag{
				Name:     "price",
				Usage:    "the price to check",
				Required: true,
			},
			&cli.StringFlag{
				Name:  "currency",
				Usage: "the currency code",
				Value: "USD",
			},
			&cli.UintFlag{
				Name:  "tolerance_bps",
				Usage: "the accepted deviation, default to the daemon one",
			},
		},
		Action: oracleVerifyAction,
	}
)

func oracleInfoAction(ctx *cli.Context) error {
	return call(http.MethodGet, "/v1/oracle", nil)
}

func oracleInitAction(ctx *cli.Context) error {
	admin, err := getActor(ctx)
	if err != nil {
		return err
	}
	return call(http.MethodPost, "/v1/oracle/initialize", map[string]interface{}{
		"admin": admin,
	})
}

func oracleProviderAction(ctx *cli.Context) error {
	admin, err := getActor(ctx)
	if err != nil {
		return err
	}
	return call(http.MethodPost, "/v1/oracle/provider", map[string]interface{}{
		"admin":    admin,
		"provider": ctx.String("provider"),
	})
}

func oraclePricesAction(ctx *cli.Context) error {
	authority, err := getActor(ctx)
	if err != nil {
		return err
	}

	quotes := make([]map[string]interface{}, 0)
	for _, q := range ctx.StringSlice("quote") {
		currency, price, err := parsePair(q)
		if err != nil {
			return err
		}
		usdPrice, err := strconv.ParseUint(price, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid price in %q: %s", q, err)
		}
		quotes = append(quotes, map[string]interface{}{
			"currency":  currency,
			"usd_price": usdPrice,
		})
	}

	return call(http.MethodPost, "/v1/oracle/prices", map[string]interface{}{
		"authority": authority,
		"quotes":    quotes,
	})
}

func oraclePriceAction(ctx *cli.Context) error {
	return call(
		http.MethodGet, "/v1/oracle/prices/"+ctx.String("currency"), nil,
	)
}

func oracleRouteAction(ctx *cli.Context) error {
	admin, err := getActor(ctx)
	if err != nil {
		return err
	}

	routes := make([]map[string]interface{}, 0)
	for _, r := range ctx.StringSlice("route") {
		asset, pool, err := parsePair(r)
		if err != nil {
			return err
		}
		routes = append(routes, map[string]interface{}{
			"offer_asset": asset,
			"pool":        pool,
		})
	}

	return call(http.MethodPost, "/v1/oracle/routes", map[string]interface{}{
		"admin":  admin,
		"denom":  ctx.String("denom"),
		"routes": routes,
	})
}

func oracleVerifyAction(ctx *cli.Context) error {
	body := map[string]interface{}{
		"price":    ctx.Uint64("price"),
		"currency": ctx.String("currency"),
	}
	if ctx.IsSet("tolerance_bps") {
		body["tolerance_bps"] = ctx.Uint("tolerance_bps")
	}
	if err := call(http.MethodPost, "/v1/oracle/verify", body); err != nil {
		return err
	}
	fmt.Println("price is within tolerance")
	return nil
}

func parsePair(str string) (string, string, error) {
	parts := strings.SplitN(str, ":", 2)
	if len(parts) != 2 || len(parts[0]) <= 0 || len(parts[1]) <= 0 {
		return "", "", fmt.Errorf("invalid pair %q, must be KEY:VALUE", str)
	}
	return parts[0], parts[1], nil
}
