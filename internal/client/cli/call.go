package cli

import (
	"bytes"
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"io"

	"github.com/iudanet/casinoadmin/internal/client/auth"
	"github.com/iudanet/casinoadmin/internal/client/rpc"
)

// runCall sends an arbitrary method and prints the outcome, errors included
func (c *Cli) runCall(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("call", flag.ContinueOnError)
	fs.SetOutput(io.Discard)
	admin := fs.Bool("admin", false, "Use the admin endpoint and session")

	// Флаги допускаются после позиционных аргументов
	var positional []string
	for len(args) > 0 {
		if err := fs.Parse(args); err != nil {
			return fmt.Errorf("usage: %s call <domain> <method> [json-params] [--admin]", ProgramName)
		}
		args = fs.Args()
		if len(args) > 0 {
			positional = append(positional, args[0])
			args = args[1:]
		}
	}

	const usage = "call <domain> <method> [json-params] [--admin]"
	domain, err := argAt(positional, 0, usage)
	if err != nil {
		return err
	}
	method, err := argAt(positional, 1, usage)
	if err != nil {
		return err
	}

	var params any
	if len(positional) > 2 {
		var raw json.RawMessage
		if err := json.Unmarshal([]byte(positional[2]), &raw); err != nil {
			return fmt.Errorf("invalid json params: %w", err)
		}
		params = raw
	}

	scope := auth.ScopeUser
	if *admin {
		scope = auth.ScopeAdmin
	}
	client, err := c.clients(domain, scope, rpc.WithLocation(c.Location))
	if err != nil {
		return err
	}

	reply, err := client.Call(ctx, method, params, rpc.ReceiveError())
	if err != nil {
		return err
	}

	if reply.Err != nil {
		e := reply.Err
		c.io.Printf("Error:   %s\n", rpc.DisplayMessage(e))
		c.io.Printf("Kind:    %s\n", e.Kind)
		if e.HasCode() {
			c.io.Printf("Code:    %d\n", e.Code)
		}
		if e.HTTPStatus != 0 {
			c.io.Printf("HTTP:    %d\n", e.HTTPStatus)
		}
		if len(e.Raw) > 0 {
			c.io.Printf("Body:    %s\n", bytes.TrimSpace(e.Raw))
		}
		return e
	}

	if reply.Result == nil {
		c.io.Println("null")
		return nil
	}
	out, err := json.MarshalIndent(reply.Result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to format result: %w", err)
	}
	c.io.Println(string(out))
	return nil
}
