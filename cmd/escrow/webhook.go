package main

import (
	"net/http"
	"net/url"

	"github.com/urfave/cli/v2"
)

var webhook = cli.Command{
	Name:  "webhook",
	Usage: "add, remove or list webhooks notified of trade events",
	Subcommands: []*cli.Command{
		webhookAddCmd, webhookRemoveCmd, webhookListCmd,
	},
}

var (
	webhookAddCmd = &cli.Command{
		Name:  "add",
		Usage: "add a (secured) webhook endpoint called whenever a target event occurs",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "endpoint",
				Usage:    "the endpoint where to notify the webhook",
				Required: true,
			},
			&cli.StringFlag{
				Name:  "event",
				Usage: "the trade event, or * for any event",
				Value: "*",
			},
			&cli.StringFlag{
				Name:  "secret",
				Usage: "the secret used to sign the bearer token of requests",
			},
			&cli.BoolFlag{
				Name:  "generate_secret",
				Usage: "let the daemon generate a random secret",
			},
		},
		Action: webhookAddAction,
	}
	webhookRemoveCmd = &cli.Command{
		Name:  "remove",
		Usage: "remove a webhook by id",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "id",
				Usage:    "the id of the webhook",
				Required: true,
			},
		},
		Action: webhookRemoveAction,
	}
	webhookListCmd = &cli.Command{
		Name:  "list",
		Usage: "list all webhooks, optionally filtered by target event",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  "event",
				Usage: "the trade event",
			},
		},
		Action: webhookListAction,
	}
)

func webhookAddAction(ctx *cli.Context) error {
	return call(http.MethodPost, "/v1/webhooks", map[string]interface{}{
		"event":           ctx.String("event"),
		"endpoint":        ctx.String("endpoint"),
		"secret":          ctx.String("secret"),
		"generate_secret": ctx.Bool("generate_secret"),
	})
}

func webhookRemoveAction(ctx *cli.Context) error {
	if err := call(
		http.MethodDelete, "/v1/webhooks/"+url.PathEscape(ctx.String("id")), nil,
	); err != nil {
		return err
	}
	return nil
}

func webhookListAction(ctx *cli.Context) error {
	path := "/v1/webhooks"
	if event := ctx.String("event"); len(event) > 0 {
		path += "?" + url.Values{"event": []string{event}}.Encode()
	}
	return call(http.MethodGet, path, nil)
}
