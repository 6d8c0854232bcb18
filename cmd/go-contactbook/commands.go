package main

import (
	"context"
	"io"
	"os"

	"github.com/tartampluch/go-contactbook/internal/config"
	"github.com/urfave/cli/v3"
)

// newApp builds the command tree. Without a subcommand the interactive
// assistant starts. The log file opened before any action is stored in
// logFile for the caller to close.
func newApp(logFile *io.Closer) *cli.Command {
	return &cli.Command{
		Name:    config.CLIName,
		Usage:   config.CLIUsage,
		Version: config.Version,
		Flags: []cli.Flag{
			&cli.BoolFlag{
				Name:  config.FlagDebug,
				Usage: config.FlagDescDebug,
			},
			&cli.StringFlag{
				Name:      config.FlagFile,
				Aliases:   []string{"f"},
				Usage:     config.FlagDescFile,
				TakesFile: true,
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			stderr := cmd.Root().ErrWriter
			if stderr == nil {
				stderr = os.Stderr
			}
			*logFile = setupLogging(cmd.Bool(config.FlagDebug), stderr)
			logStartupInfo()
			return ctx, nil
		},
		Action: runRepl,
		Commands: []*cli.Command{
			{
				Name:   config.CmdRepl,
				Usage:  config.CmdDescRepl,
				Action: runRepl,
			},
			{
				Name:   config.CmdServe,
				Usage:  config.CmdDescServe,
				Action: runServe,
			},
			{
				Name:   config.CmdCalendar,
				Usage:  config.CmdDescCalendar,
				Flags:  []cli.Flag{outputFlag()},
				Action: runCalendar,
			},
			{
				Name:   config.CmdExport,
				Usage:  config.CmdDescExport,
				Flags:  []cli.Flag{outputFlag()},
				Action: runExport,
			},
			{
				Name:  config.CmdLogin,
				Usage: config.CmdDescLogin,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    config.FlagUser,
						Aliases: []string{"u"},
						Usage:   config.FlagDescUser,
					},
				},
				Action: runLogin,
			},
		},
	}
}

func outputFlag() cli.Flag {
	return &cli.StringFlag{
		Name:      config.FlagOutput,
		Aliases:   []string{"o"},
		Usage:     config.FlagDescOutput,
		TakesFile: true,
	}
}
