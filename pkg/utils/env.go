package utils

import (
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
)

// LoadConfig reads an optional .env file from the given path and wires viper
// to the process environment so flags and env vars share the same keys.
func LoadConfig(path string) {
	envFile := filepath.Join(path, ".env")
	if err := godotenv.Load(envFile); err != nil {
		logrus.Debugf("[CONFIG] No .env file loaded from %s: %v", envFile, err)
	}

	viper.AutomaticEnv()
}
