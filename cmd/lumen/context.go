package main

import (
	"errors"
	"fmt"
	"strings"

	"lumen/internal/ipc"
)

type commandContext struct {
	socketFlag *string
	configFlag *string
}

func newCommandContext(socketFlag, configFlag *string) *commandContext {
	return &commandContext{socketFlag: socketFlag, configFlag: configFlag}
}

func (c *commandContext) endpoint() string {
	if c.socketFlag != nil && strings.TrimSpace(*c.socketFlag) != "" {
		return *c.socketFlag
	}
	return ipc.DefaultEndpoint()
}

func (c *commandContext) withClient(fn func(*ipc.Client) error) error {
	endpoint := c.endpoint()
	client, err := ipc.Dial(endpoint)
	if err != nil {
		if errors.Is(err, ipc.ErrDaemonNotRunning) {
			return fmt.Errorf("no daemon is listening on %s; start it by running `lumen` first", endpoint)
		}
		return fmt.Errorf("connect to daemon: %w", err)
	}
	defer client.Close()
	return fn(client)
}

// commandError turns a daemon-side failure into a CLI error printed
// verbatim. A successful result is nil.
func commandError(result ipc.CommandResult) error {
	if result.OK {
		return nil
	}
	if strings.TrimSpace(result.Error) == "" {
		return errors.New("daemon reported failure")
	}
	return errors.New(result.Error)
}
