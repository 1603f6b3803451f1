package main

import (
	"errors"
	"fmt"

	"github.com/urfave/cli/v2"
)

var (
	rpcFlag = cli.StringFlag{
		Name:  "rpcserver",
		Usage: "escrowd daemon http address",
		Value: "http://localhost:9945",
	}

	identityFlag = cli.StringFlag{
		Name:  "identity",
		Usage: "base58 encoded identity used as default actor",
		Value: "",
	}

	// actorFlag overrides the identity from the local state for a single
	// command.
	actorFlag = cli.StringFlag{
		Name:  "actor",
		Usage: "base58 encoded identity performing the operation",
	}
)

var config = cli.Command{
	Name:   "config",
	Usage:  "Print local configuration of the escrow CLI",
	Action: configAction,
	Subcommands: []*cli.Command{
		{
			Name:   "set",
			Usage:  "set a <key> <value> in the local state",
			Action: configSetAction,
		},
		{
			Name:   "init",
			Usage:  "initialize the local state with flags",
			Action: configInitAction,
			Flags: []cli.Flag{
				&rpcFlag,
				&identityFlag,
			},
		},
	},
}

func configAction(c *cli.Context) error {
	state, err := getState()
	if err != nil {
		return err
	}

	for key, value := range state {
		fmt.Println(key + ": " + value)
	}

	return nil
}

func configInitAction(c *cli.Context) error {
	return setState(map[string]string{
		"rpcserver": c.String("rpcserver"),
		"identity":  c.String("identity"),
	})
}

func configSetAction(c *cli.Context) error {
	if c.NArg() < 2 {
		return errors.New("key and value are missing")
	}

	key := c.Args().Get(0)
	value := c.Args().Get(1)

	if err := setState(map[string]string{key: value}); err != nil {
		return err
	}

	fmt.Printf("%s %s has been set\n", key, value)
	return nil
}

// getActor returns the --actor flag if set, or the identity stored in the
// local state.
func getActor(c *cli.Context) (string, error) {
	if actor := c.String(actorFlag.Name); len(actor) > 0 {
		return actor, nil
	}

	state, err := getState()
	if err != nil {
		return "", err
	}
	identity, ok := state["identity"]
	if !ok || len(identity) <= 0 {
		return "", errors.New(
			"set identity with `config set identity` or use --actor",
		)
	}
	return identity, nil
}
