package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/peterbourgon/ff/v4"
	"github.com/peterbourgon/ff/v4/ffhelp"
)

type Config struct {
	DatabaseURL  string        `ff:"long: database-url, default: postgresql://root@127.0.0.1:26257/defaultdb?sslmode=disable, usage: URL for the Postgres database"`
	Port         uint32        `ff:"long: port, short: p, default: 4000, usage: Port for the HTTP server"`
	StoreTimeout time.Duration `ff:"long: store-timeout, default: 5s, usage: Per-call deadline for store queries"`
}

func Load() (Config, error) {
	_ = godotenv.Load()

	var cfg Config
	fs := ff.NewFlagSetFrom("dapa", &cfg)
	err := ff.Parse(fs, os.Args[1:], ff.WithEnvVarPrefix("DAPA"))
	if errors.Is(err, ff.ErrHelp) {
		fmt.Println(ffhelp.Flags(fs))
		os.Exit(0)
	}

	return cfg, err
}
