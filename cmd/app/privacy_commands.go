package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/jdai-ca/atticus-privacy/cmd/app/commands"
	"github.com/jdai-ca/atticus-privacy/internal/app"
	"github.com/jdai-ca/atticus-privacy/internal/config"
)

func getPrivacyCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:      "scan",
			Usage:     "Scan text for sensitive information before it leaves the machine",
			ArgsUsage: "[text]",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "conversation",
					Aliases: []string{"c"},
					Value:   "",
					Usage:   "Conversation ID the text belongs to",
				},
				&cli.StringFlag{
					Name:    "message",
					Aliases: []string{"m"},
					Value:   "",
					Usage:   "Message ID the text belongs to",
				},
				&cli.StringFlag{
					Name:    "decision",
					Aliases: []string{"d"},
					Value:   "",
					Usage:   "Record a decision for this scan: 'proceed', 'cancel' or 'anonymize'",
				},
				&cli.StringFlag{
					Name:    "format",
					Aliases: []string{"f"},
					Value:   "text",
					Usage:   "Output format: 'text' or 'json'",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				if err := cfg.Validate(); err != nil {
					return err
				}
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				privacyUseCase, err := container.PrivacyUseCase()
				if err != nil {
					return err
				}

				return commands.RunScan(
					ctx,
					privacyUseCase,
					container.Logger(),
					commands.DefaultIO(),
					commands.ScanOptions{
						Text:           cmd.Args().First(),
						ConversationID: cmd.String("conversation"),
						MessageID:      cmd.String("message"),
						Decision:       cmd.String("decision"),
						Format:         cmd.String("format"),
					},
				)
			},
		},
		{
			Name:      "anonymize",
			Usage:     "Scan text and print it with every detected value redacted",
			ArgsUsage: "[text]",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				if err := cfg.Validate(); err != nil {
					return err
				}
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				privacyUseCase, err := container.PrivacyUseCase()
				if err != nil {
					return err
				}

				return commands.RunAnonymize(
					ctx,
					privacyUseCase,
					commands.DefaultIO(),
					cmd.Args().First(),
				)
			},
		},
		{
			Name:  "scan-log",
			Usage: "Show recorded scan decisions for a conversation",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "conversation",
					Aliases:  []string{"c"},
					Required: true,
					Usage:    "Conversation ID",
				},
				&cli.StringFlag{
					Name:    "format",
					Aliases: []string{"f"},
					Value:   "text",
					Usage:   "Output format: 'text' or 'json'",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				if err := cfg.Validate(); err != nil {
					return err
				}
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				privacyUseCase, err := container.PrivacyUseCase()
				if err != nil {
					return err
				}

				return commands.RunScanLog(
					ctx,
					privacyUseCase,
					commands.DefaultIO(),
					cmd.String("conversation"),
					cmd.String("format"),
				)
			},
		},
	}
}
