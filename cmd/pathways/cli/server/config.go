package server

import (
	"bytes"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	config "github.com/mwantia/pathways/internal/config/server"
)

func NewConfigCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "config",
		Short: "Configuration management utilities",
		Long:  `Generate and check College Pathways agent configuration files.`,
	}

	cmd.AddCommand(newConfigGenerateCommand())
	cmd.AddCommand(newConfigValidateCommand())

	return cmd
}

func newConfigGenerateCommand() *cobra.Command {
	var (
		outputDir string
		overwrite bool
		stdout    bool
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a configuration file with every default",
		Long: `Generate a configuration file holding the default value of every
agent setting, ready to be customized.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			data, err := encodeDefaults()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if stdout {
				_, err := out.Write(data)
				return err
			}

			if err := os.MkdirAll(outputDir, 0755); err != nil {
				return fmt.Errorf("failed to create output directory: %w", err)
			}

			filename := filepath.Join(outputDir, "config.yaml")
			if _, err := os.Stat(filename); err == nil && !overwrite {
				fmt.Fprintf(out, "Skipping %s (file exists, use --overwrite to replace)\n", filename)
				return nil
			}

			if err := os.WriteFile(filename, data, 0644); err != nil {
				return fmt.Errorf("failed to write config file %s: %w", filename, err)
			}

			fmt.Fprintf(out, "Generated %s\n", filename)
			return nil
		},
	}

	cmd.Flags().StringVar(&outputDir, "output", ".", "output directory for configuration files")
	cmd.Flags().BoolVar(&overwrite, "overwrite", false, "overwrite existing files")
	cmd.Flags().BoolVar(&stdout, "stdout", false, "print the configuration instead of writing a file")

	return cmd
}

func encodeDefaults() ([]byte, error) {
	var buf bytes.Buffer

	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(config.GetServerDefault()); err != nil {
		return nil, fmt.Errorf("failed to marshal config: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func newConfigValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Validate the loaded configuration",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.LoadServerConfig()
			if err != nil {
				return err
			}
			return describeConfig(cmd.OutOrStdout(), cfg)
		},
	}
}

func describeConfig(w io.Writer, cfg *config.BaseServerConfig) error {
	publish := "off"
	if cfg.Inquiry.Publish.Enabled() {
		publish = cfg.Inquiry.Publish.Topic
	}
	_, err := fmt.Fprintf(w, "Configuration is valid (http %s, metadata %s, publish %s)\n",
		cfg.HTTP.Address, cfg.Metadata.Type, publish)
	return err
}
