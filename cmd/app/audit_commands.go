package main

import (
	"context"

	"github.com/urfave/cli/v3"

	"github.com/jdai-ca/atticus-privacy/cmd/app/commands"
	"github.com/jdai-ca/atticus-privacy/internal/app"
	"github.com/jdai-ca/atticus-privacy/internal/config"
)

func getAuditCommands() []*cli.Command {
	return []*cli.Command{
		{
			Name:  "audit-log",
			Usage: "Show the audit trail for a conversation",
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

				auditUseCase, err := container.AuditUseCase()
				if err != nil {
					return err
				}

				return commands.RunAuditLog(
					ctx,
					auditUseCase,
					commands.DefaultIO(),
					cmd.String("conversation"),
					cmd.String("format"),
				)
			},
		},
		{
			Name:  "verify-audit-log",
			Usage: "Verify the cryptographic integrity of a conversation's audit trail",
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

				auditUseCase, err := container.AuditUseCase()
				if err != nil {
					return err
				}

				return commands.RunVerifyAuditLog(
					ctx,
					auditUseCase,
					container.Logger(),
					commands.DefaultIO().Writer,
					cmd.String("conversation"),
					cmd.String("format"),
				)
			},
		},
		{
			Name:  "export-ediscovery",
			Usage: "Export audit records as line-delimited JSON for legal production",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:    "conversation",
					Aliases: []string{"c"},
					Value:   "",
					Usage:   "Conversation ID (empty exports every conversation)",
				},
				&cli.StringFlag{
					Name:    "output",
					Aliases: []string{"o"},
					Value:   "",
					Usage:   "Output file path (defaults to stdout)",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				if err := cfg.Validate(); err != nil {
					return err
				}
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				auditUseCase, err := container.AuditUseCase()
				if err != nil {
					return err
				}

				return commands.RunExportEDiscovery(
					ctx,
					auditUseCase,
					container.Logger(),
					commands.DefaultIO().Writer,
					cmd.String("conversation"),
					cmd.String("output"),
				)
			},
		},
		{
			Name:  "clear-audit-log",
			Usage: "Delete a conversation's audit trail after recording the clearing",
			Flags: []cli.Flag{
				&cli.StringFlag{
					Name:     "conversation",
					Aliases:  []string{"c"},
					Required: true,
					Usage:    "Conversation ID",
				},
				&cli.StringFlag{
					Name:     "reason",
					Aliases:  []string{"r"},
					Required: true,
					Usage:    "Reason recorded in the final audit entry",
				},
			},
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				if err := cfg.Validate(); err != nil {
					return err
				}
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				auditUseCase, err := container.AuditUseCase()
				if err != nil {
					return err
				}

				return commands.RunClearAuditLog(
					ctx,
					auditUseCase,
					container.Logger(),
					commands.DefaultIO().Writer,
					cmd.String("conversation"),
					cmd.String("reason"),
				)
			},
		},
		{
			Name:  "dump-metrics",
			Usage: "Print collected metrics in Prometheus text format",
			Action: func(ctx context.Context, cmd *cli.Command) error {
				cfg := config.Load()
				if err := cfg.Validate(); err != nil {
					return err
				}
				container := app.NewContainer(cfg)
				defer func() { _ = container.Shutdown(ctx) }()

				provider, err := container.MetricsProvider()
				if err != nil {
					return err
				}
				return provider.Dump(commands.DefaultIO().Writer)
			},
		},
	}
}
