package main

import (
	"fmt"
	"github.com/sherifabdlnaby/configuro"
)

// Config values can be set using either environment variables with `CONFIG_`
// prefix or config.yml file placed in working directory.
// See https://github.com/sherifabdlnaby/configuro.
type Config struct {
	Logging  Logging
	Platform Platform
	Database Database
	Mail     Mail
}

type Logging struct {
	Level  string
	Format string
}

type Platform struct {
	Username string
	Password string
	ApiKey   string
	Demo     bool
}

func (p *Platform) validate() error {
	if len(p.Username) == 0 {
		return fmt.Errorf("platform username is not set")
	}

	if len(p.Password) == 0 {
		return fmt.Errorf("platform password is not set")
	}

	if len(p.ApiKey) == 0 {
		return fmt.Errorf("platform api key is not set")
	}

	return nil
}

type Database struct {
	Address      string
	User         string
	Password     string
	Name         string
	SSLMode      string
	MigrationDir string
}

type Mail struct {
	Host     string
	Port     int
	Username string
	Password string
}

func readConfig() (*Config, error) {
	loader, err := configuro.NewConfig()
	if err != nil {
		return nil, err
	}

	// Default config values.
	config := &Config{
		Logging: Logging{
			Level:  "warning",
			Format: "text",
		},
		Database: Database{
			Address:      "localhost:5432",
			User:         "postgres",
			Password:     "postgres",
			Name:         "postgres",
			SSLMode:      "disable",
			MigrationDir: "postgres/migrations",
		},
		Mail: Mail{
			Host: "smtp.gmail.com",
			Port: 587,
		},
	}

	err = loader.Load(config)
	if err != nil {
		return nil, err
	}

	err = loader.Validate(config)
	if err != nil {
		return nil, err
	}

	if err := config.Platform.validate(); err != nil {
		return nil, err
	}

	return config, nil
}
