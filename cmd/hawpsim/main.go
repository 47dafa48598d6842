/*
 * main.go, part of gohawp.
 *
 * Copyright 2026 Raul Mera <rmera{at}chemDOThelsinkiDOTfi>
 *
 * This program is free software; you can redistribute it and/or modify
 * it under the terms of the GNU Lesser General Public License as
 * published by the Free Software Foundation; either version 2.1 of the
 * License, or (at your option) any later version.
 *
 * This program is distributed in the hope that it will be useful,
 * but WITHOUT ANY WARRANTY; without even the implied warranty of
 * MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 * GNU General Public License for more details.
 *
 * You should have received a copy of the GNU Lesser General
 * Public License along with this program.  If not, see
 * <http://www.gnu.org/licenses/>.
 *
 */

//hawpsim propagates a Hagedorn wavepacket in one of a few model potentials,
//logging the observables, and optionally writing a record and plots.
//
//Settings are read from HAWP_* environment variables, and can be overridden
//with flags. Run with -h for the list.
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	hawp "github.com/rmera/gohawp"
	"github.com/rmera/gohawp/hawplot"
	"github.com/rmera/gohawp/observables"
	"github.com/rmera/gohawp/propagator"
	"github.com/rmera/gohawp/quadrature"
	"github.com/rmera/gohawp/record"
	"github.com/rs/zerolog"
)

func main() {
	cfg, err := loadConfig(os.Args[1:])
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	log := newLogger(cfg, os.Stderr)
	if err := run(cfg, log); err != nil {
		log.Error().Err(err).Msg("Simulation failed")
		os.Exit(1)
	}
}

func newLogger(cfg Config, out io.Writer) zerolog.Logger {
	level, err := zerolog.ParseLevel(cfg.LogLevel)
	if err != nil || cfg.LogLevel == "" {
		level = zerolog.InfoLevel
	}
	if cfg.LogPretty {
		out = zerolog.ConsoleWriter{Out: out, TimeFormat: "15:04:05"}
	}
	return zerolog.New(out).Level(level).With().Timestamp().Logger()
}

func run(cfg Config, log zerolog.Logger) error {
	P, V, err := scenarios[cfg.Scenario](cfg.Eps)
	if err != nil {
		return fmt.Errorf("set up scenario %s: %w", cfg.Scenario, err)
	}
	orders := make([]int, P.Dim())
	for i := range orders {
		orders[i] = cfg.Order
	}
	rule := quadrature.GaussHermiteProduct(orders...)
	opts := propagator.DefaultOptions()
	opts.Cpus(cfg.Cpus)
	H := propagator.NewHagedorn(rule, opts)

	var W *record.Writer
	if cfg.Record != "" {
		W, err = record.NewWriter(cfg.Record, map[string]string{
			"scenario": cfg.Scenario,
			"eps":      strconv.FormatFloat(cfg.Eps, 'g', -1, 64),
			"dt":       strconv.FormatFloat(cfg.Dt, 'g', -1, 64),
			"order":    strconv.Itoa(cfg.Order),
		})
		if err != nil {
			return err
		}
		defer W.Close()
	}
	trace := new(hawplot.Trace)
	log.Info().Str("scenario", cfg.Scenario).Str("kind", P.Kind().String()).
		Int("dim", P.Dim()).Int("components", P.Len()).Int("size", P.Size()).
		Float64("eps", cfg.Eps).Float64("dt", cfg.Dt).Int("steps", cfg.Steps).
		Int("nodes", rule.Len()).Msg("Starting propagation")
	start := time.Now()
	observe := func(step int, t float64, P *hawp.Packet) error {
		if step%cfg.Every != 0 && step != cfg.Steps {
			return nil
		}
		e, err := observables.Energies(P, V, H.Builder())
		if err != nil {
			return err
		}
		log.Debug().Int("step", step).Float64("t", t).Float64("norm", e.Norm).
			Float64("ekin", e.Kinetic).Float64("epot", e.Potential).Float64("etot", e.Total()).
			Floats64("q", P.Params()[0].Pos).Msg("Step")
		trace.Add(t, P, e)
		if W != nil {
			return W.WriteFrame(t, P, e)
		}
		return nil
	}
	if err := H.Run(P, V, cfg.Dt, cfg.Steps, observe); err != nil {
		return err
	}
	first, last := trace.Energies[0], trace.Energies[trace.Len()-1]
	log.Info().Dur("elapsed", time.Since(start)).
		Float64("norm_drift", last.Norm-first.Norm).
		Float64("energy_drift", last.Total()-first.Total()).
		Msg("Propagation finished")
	if W != nil {
		if err := W.Close(); err != nil {
			return err
		}
		log.Info().Str("file", cfg.Record).Int("frames", trace.Len()).Msg("Record written")
	}
	if cfg.PlotDir != "" {
		if err := os.MkdirAll(cfg.PlotDir, 0o755); err != nil {
			return err
		}
		plots := []struct {
			name string
			f    func(*hawplot.Trace, string, string) error
		}{{"path", hawplot.PathPlot}, {"energy", hawplot.EnergyPlot}, {"drift", hawplot.DriftPlot}}
		for _, p := range plots {
			name := filepath.Join(cfg.PlotDir, cfg.Scenario+"_"+p.name+".png")
			if err := p.f(trace, cfg.Scenario+" "+p.name, name); err != nil {
				return err
			}
			log.Info().Str("file", name).Msg("Plot written")
		}
	}
	return nil
}
