package server

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/mwantia/pathways/internal/agent"
	config "github.com/mwantia/pathways/internal/config/server"
)

func NewAgentCommand() *cobra.Command {
	var address string

	cmd := &cobra.Command{
		Use:   "agent",
		Short: "Start the College Pathways agent",
		Long: `Start the College Pathways agent.

The agent serves the HTTP API of the counseling tools, keeps one state
container per view session and stores consultation requests. It runs until
interrupted and reloads match tolerances when the config file changes.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Flags().Changed("address") {
				viper.Set("http.address", address)
			}

			cfg, err := config.LoadServerConfig()
			if err != nil {
				return fmt.Errorf("failed to load server configuration: %w", err)
			}

			return agent.NewAgent(cfg).Serve(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&address, "address", "", "listen address, overrides http.address")

	return cmd
}
