package main

import (
	"fmt"

	"github.com/kelseyhightower/envconfig"
)

const envVarPrefix = "FILESERVER"

type Config struct {
	Addr  string `envconfig:"FILESERVER_ADDR"  default:"0.0.0.0:12345"`
	Disk  string `envconfig:"FILESERVER_DISK"  default:"filesystem.dat"`
	Debug bool   `envconfig:"FILESERVER_DEBUG" default:"false"`
}

func LoadConfig() (*Config, error) {
	var c Config
	if err := envconfig.Process(envVarPrefix, &c); err != nil {
		return nil, fmt.Errorf("parsing environment variables: %w", err)
	}
	return &c, nil
}
