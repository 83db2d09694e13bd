package main

import (
	"flag"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/HerbHall/collegefinder/internal/apiclient"
	"github.com/HerbHall/collegefinder/internal/config"
)

// clientFlags are shared by the commands that talk to a running server.
type clientFlags struct {
	config  *string
	server  *string
	timeout *time.Duration
	verbose *bool
}

func addClientFlags(fs *flag.FlagSet) *clientFlags {
	return &clientFlags{
		config:  fs.String("config", "", "path to configuration file"),
		server:  fs.String("server", "", "API base URL (default from client.base_url)"),
		timeout: fs.Duration("timeout", 0, "per-request timeout (default from client.timeout)"),
		verbose: fs.Bool("v", false, "log requests to stderr"),
	}
}

func (f *clientFlags) build() (*apiclient.Client, *zap.Logger, error) {
	cfg, err := config.Load(*f.config)
	if err != nil {
		return nil, nil, fmt.Errorf("load config: %w", err)
	}

	logger := zap.NewNop()
	if *f.verbose {
		if logger, err = zap.NewDevelopment(); err != nil {
			return nil, nil, err
		}
	}

	base := cfg.GetString("client.base_url")
	if *f.server != "" {
		base = *f.server
	}
	timeout := cfg.GetDuration("client.timeout")
	if *f.timeout > 0 {
		timeout = *f.timeout
	}

	client := apiclient.New(base,
		apiclient.WithTimeout(timeout),
		apiclient.WithLogger(logger.Named("apiclient")),
	)
	return client, logger, nil
}

// multiFlag collects a repeatable string flag.
type multiFlag []string

func (m *multiFlag) String() string { return strings.Join(*m, ",") }

func (m *multiFlag) Set(v string) error {
	*m = append(*m, v)
	return nil
}
