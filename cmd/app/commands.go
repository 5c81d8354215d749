package main

import (
	"github.com/urfave/cli/v3"
)

func getCommands() []*cli.Command {
	cmds := []*cli.Command{}
	cmds = append(cmds, getPrivacyCommands()...)
	cmds = append(cmds, getAuditCommands()...)
	return cmds
}
