package respond

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/viant/respond/client"
	"github.com/viant/respond/stream"
)

// RunCmd creates a response and streams its text output to stdout.
type RunCmd struct {
	Model        string `short:"m" long:"model" description:"model identifier"`
	Query        string `short:"q" long:"query" description:"user prompt" required:"true"`
	Instructions string `short:"i" long:"instructions" description:"system instructions"`
	Socket       bool   `long:"socket" description:"stream over websocket instead of HTTP"`
	Timeout      int    `short:"t" long:"timeout" description:"timeout in seconds (0=none)"`
}

func (c *RunCmd) Execute(_ []string) error {
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
	model := c.Model
	if model == "" {
		model = config.Model
	}
	if model == "" {
		return fmt.Errorf("model was empty: use -m or set it in config")
	}
	aClient := client.NewClient(config.clientOptions()...)
	request := &client.Request{Model: model, Input: c.Query, Instructions: c.Instructions}

	var aStream *stream.Stream
	if c.Socket {
		aStream, err = aClient.CreateStreamSocket(ctx, request)
	} else {
		aStream, err = aClient.CreateStream(ctx, request)
	}
	if err != nil {
		return err
	}
	defer aStream.Close()
	return drain(aStream)
}

// drain prints text deltas as they arrive and reports how the stream ended.
func drain(aStream *stream.Stream) error {
	for {
		event, err := aStream.Next()
		if err != nil {
			var decodeErr *stream.DecodeError
			if errors.As(err, &decodeErr) {
				fmt.Fprintf(os.Stderr, "skipped malformed record: %v\n", decodeErr)
				continue
			}
			if err != io.EOF {
				return err
			}
			break
		}
		if delta, ok := event.(*stream.OutputTextDelta); ok {
			fmt.Print(delta.Delta)
		}
	}
	fmt.Println()
	result, err := aStream.Final()
	if err != nil {
		return err
	}
	fmt.Fprintf(os.Stderr, "response %v: %v\n", result.ID, result.Status)
	return nil
}
