package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const envPrefix = "PATHWAYS"

var (
	envFiles    = []string{".env", ".env.local"}
	configPaths = []string{".", "./config", "/etc/pathways", "$HOME/.pathways"}
)

func initConfig(path string) error {
	dirs := []string{"."}
	if path != "" {
		viper.SetConfigFile(path)
		dirs = append(dirs, filepath.Dir(path))
	} else {
		viper.SetConfigName("config")
		viper.SetConfigType("yaml")
		for _, p := range configPaths {
			viper.AddConfigPath(p)
		}
		dirs = configPaths
	}
	loadEnvFiles(dirs)

	viper.SetEnvPrefix(envPrefix)
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			return nil
		}
		// An explicit --config that does not exist is reported as well.
		return fmt.Errorf("error reading config file: %w", err)
	}
	return nil
}

// loadEnvFiles loads .env files next to every config location. Variables
// already present in the environment are never overwritten.
func loadEnvFiles(dirs []string) {
	for _, dir := range dirs {
		dir = os.ExpandEnv(dir)
		for _, name := range envFiles {
			file := filepath.Join(dir, name)
			if _, err := os.Stat(file); err != nil {
				continue
			}
			godotenv.Load(file)
		}
	}
}
