package main

import (
	"net/http"
	"net/url"

	"github.com/urfave/cli/v2"
)

var profile = cli.Command{
	Name:  "profile",
	Usage: "manage user profiles and reputation",
	Subcommands: []*cli.Command{
		profileCreateCmd, profileGetCmd, profileUpdateCmd,
		profileReputationCmd, profileVerifyCmd,
	},
}

var (
	profileKeyFlag = &cli.StringFlag{
		Name:     "key",
		Usage:    "the address of the profile",
		Required: true,
	}

	profileCreateCmd = &cli.Command{
		Name:  "create",
		Usage: "create the profile of the configured identity",
		Flags: []cli.Flag{
			&actorFlag,
			&cli.StringFlag{
				Name:     "username",
				Usage:    "the display name of the profile",
				Required: true,
			},
		},
		Action: profileCreateAction,
	}
	profileGetCmd = &cli.Command{
		Name:  "get",
		Usage: "get a profile by key, or by owner",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "key", Usage: "the address of the profile"},
			&actorFlag,
		},
		Action: profileGetAction,
	}
	profileUpdateCmd = &cli.Command{
		Name:  "update",
		Usage: "change the username of a profile",
		Flags: []cli.Flag{
			profileKeyFlag,
			&actorFlag,
			&cli.StringFlag{
				Name:     "username",
				Usage:    "the new display name",
				Required: true,
			},
		},
		Action: profileUpdateAction,
	}
	profileReputationCmd = &cli.Command{
		Name:  "reputation",
		Usage: "change the reputation score of a profile, authority only",
		Flags: []cli.Flag{
			profileKeyFlag,
			&actorFlag,
			&cli.Int64Flag{
				Name:     "delta",
				Usage:    "the signed score delta",
				Required: true,
			},
		},
		Action: profileReputationAction,
	}
	profileVerifyCmd = &cli.Command{
		Name:   "verify",
		Usage:  "mark a profile as verified, authority only",
		Flags:  []cli.Flag{profileKeyFlag, &actorFlag},
		Action: profileVerifyAction,
	}
)

func profileCreateAction(ctx *cli.Context) error {
	owner, err := getActor(ctx)
	if err != nil {
		return err
	}

	return call(http.MethodPost, "/v1/profiles", map[string]interface{}{
		"owner":    owner,
		"username": ctx.String("username"),
	})
}

func profileGetAction(ctx *cli.Context) error {
	if key := ctx.String("key"); len(key) > 0 {
		return call(http.MethodGet, "/v1/profiles/"+key, nil)
	}

	owner, err := getActor(ctx)
	if err != nil {
		return err
	}
	query := url.Values{"owner": []string{owner}}
	return call(http.MethodGet, "/v1/profiles?"+query.Encode(), nil)
}

func profileUpdateAction(ctx *cli.Context) error {
	actor, err := getActor(ctx)
	if err != nil {
		return err
	}

	return call(
		http.MethodPatch, "/v1/profiles/"+ctx.String("key"),
		map[string]interface{}{
			"actor":    actor,
			"username": ctx.String("username"),
		},
	)
}

func profileReputationAction(ctx *cli.Context) error {
	authority, err := getActor(ctx)
	if err != nil {
		return err
	}

	return call(
		http.MethodPost, "/v1/profiles/"+ctx.String("key")+"/reputation",
		map[string]interface{}{
			"authority":   authority,
			"score_delta": ctx.Int64("delta"),
		},
	)
}

func profileVerifyAction(ctx *cli.Context) error {
	authority, err := getActor(ctx)
	if err != nil {
		return err
	}

	return call(
		http.MethodPost, "/v1/profiles/"+ctx.String("key")+"/verify",
		map[string]interface{}{"authority": authority},
	)
}
