package cli

import "context"

func (c *Cli) runPing(ctx context.Context) error {
	pong, err := c.console.System.Ping(ctx)
	if err != nil {
		return err
	}
	c.io.Printf("Server: %s\n", pong)
	return nil
}

func (c *Cli) runVersion(ctx context.Context) error {
	version, err := c.console.System.Version(ctx)
	if err != nil {
		return err
	}
	c.io.Printf("Server version: %s\n", version)
	return nil
}
