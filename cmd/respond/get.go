package respond

import (
	"context"
	"fmt"
	"time"

	"github.com/viant/respond/client"
)

// GetCmd resumes streaming an existing response by ID.
type GetCmd struct {
	ID            string `short:"r" long:"response" description:"response ID" required:"true"`
	StartingAfter int    `short:"s" long:"starting-after" description:"replay events after this sequence number" default:"-1"`
	Timeout       int    `short:"t" long:"timeout" description:"timeout in seconds (0=none)"`
}

func (c *GetCmd) Execute(_ []string) error {
	ctx := context.Background()
	var cancel context.CancelFunc
	if c.Timeout > 0 {
		ctx, cancel = context.WithTimeout(ctx, time.Duration(c.Timeout)*time.Second)
		defer cancel()
	}
	config, err := loadConfig(ctx, configPath())
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	aClient := client.NewClient(config.clientOptions()...)
	aStream, err := aClient.RetrieveStream(ctx, c.ID, c.StartingAfter)
	if err != nil {
		return err
	}
	defer aStream.Close()
	return drain(aStream)
}
