package main

import (
	"fmt"
	"os"

	"github.com/mwantia/pathways/cmd/pathways/cli"
	"github.com/mwantia/pathways/cmd/pathways/cli/client"
	"github.com/mwantia/pathways/cmd/pathways/cli/server"
)

var (
	version = "0.0.1-dev"
	commit  = "main"
)

func main() {
	info := cli.VersionInfo{
		Version: version,
		Commit:  commit,
	}
	root := cli.NewRootCommand(info)

	root.AddCommand(cli.NewVersionCommand(info))

	root.AddCommand(server.NewAgentCommand())
	root.AddCommand(server.NewConfigCommand())
	root.AddCommand(server.NewMigrationsCommand())

	root.AddCommand(client.NewMatchCommand())
	root.AddCommand(client.NewInquiriesCommand())

	if err := root.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}
