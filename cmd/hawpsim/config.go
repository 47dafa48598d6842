package main

import (
	"flag"
	"fmt"

	"github.com/caarlos0/env/v11"
)

//Config contains the settings of a simulation. Every field can be set from
//the environment, and overridden with a command line flag.
type Config struct {
	Scenario  string  `env:"HAWP_SCENARIO" envDefault:"harmonic2d"`
	Eps       float64 `env:"HAWP_EPS" envDefault:"0.1"`
	Dt        float64 `env:"HAWP_DT" envDefault:"0.01"`
	Steps     int     `env:"HAWP_STEPS" envDefault:"1000"`
	Order     int     `env:"HAWP_QUADRATURE_ORDER" envDefault:"8"`
	Cpus      int     `env:"HAWP_CPUS" envDefault:"0"`
	Every     int     `env:"HAWP_RECORD_EVERY" envDefault:"10"`
	Record    string  `env:"HAWP_RECORD"`
	PlotDir   string  `env:"HAWP_PLOT_DIR"`
	LogLevel  string  `env:"HAWP_LOG_LEVEL" envDefault:"info"`
	LogPretty bool    `env:"HAWP_LOG_PRETTY" envDefault:"false"`
}

//loadConfig reads the configuration from the environment, and then
//from the command line arguments args (without the program name).
func loadConfig(args []string) (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return cfg, fmt.Errorf("parse env: %w", err)
	}
	fs := flag.NewFlagSet("hawpsim", flag.ContinueOnError)
	fs.StringVar(&cfg.Scenario, "scenario", cfg.Scenario, fmt.Sprintf("Scenario to simulate, one of %v", scenarioNames()))
	fs.Float64Var(&cfg.Eps, "eps", cfg.Eps, "Semiclassical parameter")
	fs.Float64Var(&cfg.Dt, "dt", cfg.Dt, "Time step")
	fs.IntVar(&cfg.Steps, "steps", cfg.Steps, "Number of steps")
	fs.IntVar(&cfg.Order, "order", cfg.Order, "Order of the Gauss-Hermite rule on each axis")
	fs.IntVar(&cfg.Cpus, "cpus", cfg.Cpus, "Goroutines for the coupling matrix, 0 for all CPUs")
	fs.IntVar(&cfg.Every, "every", cfg.Every, "Record, log and plot every this many steps")
	fs.StringVar(&cfg.Record, "record", cfg.Record, "Record file (.gz: gzip, .fl: flate, zstd otherwise). Empty for none")
	fs.StringVar(&cfg.PlotDir, "plots", cfg.PlotDir, "Directory for the plots. Empty for none")
	fs.StringVar(&cfg.LogLevel, "loglevel", cfg.LogLevel, "debug, info, warn or error")
	fs.BoolVar(&cfg.LogPretty, "pretty", cfg.LogPretty, "Human-friendly log output")
	if err := fs.Parse(args); err != nil {
		return cfg, err
	}
	if cfg.Steps < 0 || cfg.Order < 1 || cfg.Every < 1 || !(cfg.Eps > 0) {
		return cfg, fmt.Errorf("invalid configuration: steps %d, order %d, every %d, eps %g", cfg.Steps, cfg.Order, cfg.Every, cfg.Eps)
	}
	if _, ok := scenarios[cfg.Scenario]; !ok {
		return cfg, fmt.Errorf("unknown scenario %q, use one of %v", cfg.Scenario, scenarioNames())
	}
	return cfg, nil
}
