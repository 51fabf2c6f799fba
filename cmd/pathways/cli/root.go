package cli

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

type rootFlags struct {
	config    string
	noColor   bool
	logLevel  string
	logFormat string
}

func NewRootCommand(info VersionInfo) *cobra.Command {
	flags := rootFlags{}

	cmd := &cobra.Command{
		Use:   "pathways",
		Short: "College Pathways counseling tools",
		Long: "Serves the college match, transfer pathway, document tracker, timeline and essay tools " +
			"of College Pathways and runs the matching engine from the command line.",
		Version:       info.String(),
		SilenceErrors: true,
		SilenceUsage:  true,

		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := initConfig(flags.config); err != nil {
				return err
			}
			return applyLogFlags(cmd, flags)
		},
	}

	pf := cmd.PersistentFlags()
	pf.StringVar(&flags.config, "config", "", "config file (default is ./config.yaml)")
	pf.BoolVar(&flags.noColor, "no-color", false, "disable colored log output")
	pf.StringVar(&flags.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	pf.StringVar(&flags.logFormat, "log-format", "", "log format (text, json)")

	return cmd
}

// applyLogFlags lets explicitly set flags win over the config file and env.
func applyLogFlags(cmd *cobra.Command, flags rootFlags) error {
	pf := cmd.Flags()
	if pf.Changed("log-level") {
		viper.Set("log.level", flags.logLevel)
	}
	if pf.Changed("log-format") {
		viper.Set("log.format", flags.logFormat)
	}
	if flags.noColor {
		viper.Set("log.color", false)
	}
	return nil
}
