package bot

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"

	"github.com/tartampluch/go-contactbook/internal/config"
)

// Run reads commands from in and writes replies to out until an exit
// command, the end of input or the cancellation of ctx.
func (b *Bot) Run(ctx context.Context, in io.Reader, out io.Writer) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	lines := make(chan string)
	readErr := make(chan error, config.ChannelBufferSize)

	// Scan blocks on the reader, so it runs apart from the select below.
	go func() {
		defer close(lines)
		sc := bufio.NewScanner(in)
		for sc.Scan() {
			select {
			case lines <- sc.Text():
			case <-ctx.Done():
				return
			}
		}
		readErr <- sc.Err()
	}()

	if err := write(out, b.Tr.Msg(config.TKeyGreeting, nil)+config.RecordSeparator+config.ReplPrompt); err != nil {
		return err
	}

	for {
		select {
		case <-ctx.Done():
			slog.Info(config.MsgCtxCancel, config.LogKeyComponent, config.CompBot)
			return nil

		case line, ok := <-lines:
			if !ok {
				select {
				case err := <-readErr:
					if err != nil {
						return fmt.Errorf("%s: %w", config.ErrReadInput, err)
					}
				default:
				}
				return nil
			}

			if strings.TrimSpace(line) == "" {
				if err := write(out, config.ReplPrompt); err != nil {
					return err
				}
				continue
			}

			reply, exit := b.Handle(line)
			if exit {
				return write(out, reply+config.RecordSeparator)
			}
			if err := write(out, reply+config.RecordSeparator+config.ReplPrompt); err != nil {
				return err
			}
		}
	}
}

func write(w io.Writer, s string) error {
	if _, err := io.WriteString(w, s); err != nil {
		return fmt.Errorf("%s: %w", config.ErrWriteOutput, err)
	}
	return nil
}
