package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/btcsuite/btcd/btcutil"
	"github.com/go-resty/resty/v2"
	"github.com/urfave/cli/v2"
)

var (
	escrowDataDir = btcutil.AppDataDir("escrow-cli", false)
	statePath     = filepath.Join(escrowDataDir, "state.json")
)

func main() {
	app := cli.NewApp()

	app.Version = "0.1.0"
	app.Name = "escrow CLI"
	app.Usage = "Command line interface for escrowd daemon users and operators"
	app.Commands = append(
		app.Commands,
		&config,
		&offer,
		&trade,
		&profile,
		&oracle,
		&custody,
		&webhook,
	)

	err := app.Run(os.Args)
	if err != nil {
		fatal(err)
	}
}

func getState() (map[string]string, error) {
	data := map[string]string{}

	file, err := os.ReadFile(statePath)
	if err != nil {
		return nil, errors.New("get config state error: try 'config init'")
	}
	if err := json.Unmarshal(file, &data); err != nil {
		return nil, fmt.Errorf("invalid config state: %w", err)
	}

	return data, nil
}

func setState(data map[string]string) error {
	if _, err := os.Stat(escrowDataDir); os.IsNotExist(err) {
		if err := os.MkdirAll(escrowDataDir, os.ModeDir|0755); err != nil {
			return err
		}
	}

	currentData := map[string]string{}
	if _, err := os.Stat(statePath); err == nil {
		if currentData, err = getState(); err != nil {
			return err
		}
	}

	mergedData := merge(currentData, data)

	jsonString, err := json.Marshal(mergedData)
	if err != nil {
		return err
	}
	if err := os.WriteFile(statePath, jsonString, 0644); err != nil {
		return fmt.Errorf("writing to file: %w", err)
	}

	return nil
}

func merge(maps ...map[string]string) map[string]string {
	merge := make(map[string]string)
	for _, m := range maps {
		for k, v := range m {
			merge[k] = v
		}
	}
	return merge
}

func getClient() (*resty.Client, error) {
	state, err := getState()
	if err != nil {
		return nil, err
	}
	address, ok := state["rpcserver"]
	if !ok {
		return nil, errors.New("set rpcserver with `config set rpcserver`")
	}

	return resty.New().
		SetBaseURL(address).
		SetHeader("Content-Type", "application/json"), nil
}

type errorResponse struct {
	Error string `json:"error"`
}

// call sends body to the daemon and prints the JSON response.
func call(method, path string, body interface{}) error {
	client, err := getClient()
	if err != nil {
		return err
	}

	req := client.R().SetError(&errorResponse{})
	if body != nil {
		req.SetBody(body)
	}

	resp, err := req.Execute(method, path)
	if err != nil {
		return fmt.Errorf("unable to connect to daemon: %w", err)
	}
	if resp.IsError() {
		if e, ok := resp.Error().(*errorResponse); ok && len(e.Error) > 0 {
			return fmt.Errorf("%s", e.Error)
		}
		return fmt.Errorf("request failed with status %s", resp.Status())
	}

	printRespJSON(resp.Body())
	return nil
}

func printRespJSON(body []byte) {
	if len(body) <= 0 {
		fmt.Println("{}")
		return
	}

	var v interface{}
	if err := json.Unmarshal(body, &v); err != nil {
		fmt.Println("unable to decode response: ", err)
		return
	}
	jsonStr, _ := json.MarshalIndent(v, "", "\t")
	fmt.Println(string(jsonStr))
}

type invalidUsageError struct {
	ctx     *cli.Context
	command string
}

func (e *invalidUsageError) Error() string {
	return fmt.Sprintf("invalid usage of command %s", e.command)
}

func fatal(err error) {
	var e *invalidUsageError
	if errors.As(err, &e) {
		_ = cli.ShowCommandHelp(e.ctx, e.command)
	} else {
		_, _ = fmt.Fprintf(os.Stderr, "[escrow] %v\n", err)
	}
	os.Exit(1)
}
