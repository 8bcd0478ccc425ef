// Command nrlresp combines a sensor and a datalogger from an NRL catalog
// and prints the resulting instrument response.
//
// Usage:
//
//	nrlresp [flags]
//
// Keys are given as one string per role, separated by -sep.
//
// Examples:
//
//	nrlresp -list sensor
//	nrlresp -list sensor -path 'Guralp|CMG-3T'
//	nrlresp -sensor 'Guralp|CMG-3T|1500 V/m/s' -datalogger 'REFTEK|RT130|1x 100 sps'
//	nrlresp -sensor ... -datalogger ... -curve -points 50
//	nrlresp -sensor ... -datalogger ... -yaml > response.yaml
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"math/cmplx"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/cwbudde/algo-nrl/catalog"
	"github.com/cwbudde/algo-nrl/combine"
	"github.com/cwbudde/algo-nrl/internal/config"
	"github.com/cwbudde/algo-nrl/internal/textwrap"
	"github.com/cwbudde/algo-nrl/lookup"
	"github.com/cwbudde/algo-nrl/resolver"
	"github.com/cwbudde/algo-nrl/response"
)

var errUsage = errors.New("usage")

func main() {
	err := run(context.Background(), os.Args[1:], os.Stdout, os.Stderr)
	if err != nil {
		if !errors.Is(err, errUsage) && !errors.Is(err, flag.ErrHelp) {
			fmt.Fprintf(os.Stderr, "error: %v\n", err)
		}

		os.Exit(1)
	}
}

type options struct {
	configPath string
	root       string
	sensor     string
	datalogger string
	sep        string
	list       string
	path       string
	curve      bool
	points     int
	fir        int
	yaml       bool
}

func parseFlags(args []string, stderr io.Writer) (options, error) {
	var o options

	fs := flag.NewFlagSet("nrlresp", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVar(&o.configPath, "config", "", "config file (default $NRL_CONFIG or ~/.config/nrl/config.toml)")
	fs.StringVar(&o.root, "root", "", "NRL catalog root (overrides catalog.root)")
	fs.StringVar(&o.sensor, "sensor", "", "sensor key sequence")
	fs.StringVar(&o.datalogger, "datalogger", "", "datalogger key sequence")
	fs.StringVar(&o.sep, "sep", "|", "key separator")
	fs.StringVar(&o.list, "list", "", "list the options of a role (sensor or datalogger) and exit")
	fs.StringVar(&o.path, "path", "", "keys to follow before listing")
	fs.BoolVar(&o.curve, "curve", false, "print the amplitude and phase response")
	fs.IntVar(&o.points, "points", 0, "curve points (overrides curve.points)")
	fs.IntVar(&o.fir, "fir", 0, "print an n point spectrum summary of every FIR stage")
	fs.BoolVar(&o.yaml, "yaml", false, "write the combined response as a YAML document")
	fs.Usage = func() {
		fmt.Fprintf(stderr, "Usage: nrlresp [flags]\n\n")
		fmt.Fprintf(stderr, "Combines a sensor and a datalogger from an NRL catalog.\n\n")
		fmt.Fprintf(stderr, "Flags:\n")
		fs.PrintDefaults()
		fmt.Fprintf(stderr, "\nExamples:\n")
		fmt.Fprintf(stderr, "  nrlresp -list sensor -path 'Guralp'\n")
		fmt.Fprintf(stderr, "  nrlresp -sensor 'Guralp|CMG-3T|1500 V/m/s' -datalogger 'REFTEK|RT130|1x 100 sps'\n")
	}

	err := fs.Parse(args)
	if err != nil {
		return o, err
	}

	if o.list == "" && (o.sensor == "" || o.datalogger == "") {
		fs.Usage()
		return o, errUsage
	}

	return o, nil
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	o, err := parseFlags(args, stderr)
	if err != nil {
		return err
	}

	var cfg config.Config
	if o.configPath != "" {
		cfg, err = config.LoadFile(o.configPath)
	} else {
		cfg, err = config.Load()
	}

	if err != nil {
		return err
	}

	logger, err := cfg.Log.NewLogger(stderr)
	if err != nil {
		return err
	}

	if o.root != "" {
		cfg.Catalog.Root = o.root
	}

	if o.points > 0 {
		cfg.Curve.Points = o.points
	}

	loader, err := catalog.NewCachedLoader(catalog.FileLoader{}, cfg.Catalog.CacheSize)
	if err != nil {
		return err
	}

	if o.list != "" {
		return listOptions(stdout, loader, cfg.Catalog.Root, catalog.Role(o.list), splitKeys(o.path, o.sep))
	}

	store := lookup.NewStore(cfg.Catalog.Root, loader)

	sensor, err := store.Resolve(ctx, catalog.RoleSensor, splitKeys(o.sensor, o.sep))
	if err != nil {
		return err
	}

	datalogger, err := store.Resolve(ctx, catalog.RoleDatalogger, splitKeys(o.datalogger, o.sep))
	if err != nil {
		return err
	}

	res, err := combine.Combine(sensor, datalogger)
	if err != nil {
		return err
	}

	for _, w := range res.Warnings {
		logger.Warn("combine warning", "error", w)
	}

	logger.Debug("response combined", "stages", len(res.Response.Stages), "catalog_nodes", loader.Len())

	if o.yaml {
		data, err := lookup.Encode(res.Response)
		if err != nil {
			return err
		}

		_, err = stdout.Write(data)

		return err
	}

	err = printStages(stdout, res.Response)
	if err != nil {
		return err
	}

	if o.curve {
		err = printCurve(stdout, res.Response.Stages, cfg.Curve)
		if err != nil {
			return err
		}
	}

	if o.fir > 0 {
		return printFIR(stdout, logger, res.Response.Stages, o.fir)
	}

	return nil
}

func splitKeys(s, sep string) []string {
	if s == "" {
		return nil
	}

	parts := strings.Split(s, sep)
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	return parts
}

func listOptions(w io.Writer, loader catalog.Loader, root string, role catalog.Role, keys []string) error {
	if !role.Valid() {
		return fmt.Errorf("unknown role %q (want %s or %s)", role, catalog.RoleSensor, catalog.RoleDatalogger)
	}

	r, err := resolver.New(loader, catalog.RoleRoot(root, role), role, resolver.WithoutAutoAdvance())
	if err != nil {
		return err
	}

	for _, key := range keys {
		err = r.Choose(key)
		if err != nil {
			return err
		}

		err = r.Advance()
		if err != nil {
			return err
		}
	}

	if r.Completed() {
		res, _ := r.Result()
		_, err = fmt.Fprintf(w, "%s: %s -> %s\n", strings.Join(res.Keys, " | "), res.Leaf.Description, res.Leaf.Payload)

		return err
	}

	opts, err := r.Options()
	if err != nil {
		return err
	}

	_, err = fmt.Fprintln(w, r.Prompt())
	if err != nil {
		return err
	}

	for _, o := range opts {
		lines := textwrap.Lines(o.Text, textwrap.DefaultWidth)

		_, err = fmt.Fprintf(w, "  %s\n", lines[0])
		if err != nil {
			return err
		}

		for _, l := range lines[1:] {
			_, err = fmt.Fprintf(w, "      %s\n", l)
			if err != nil {
				return err
			}
		}
	}

	return nil
}

func printStages(w io.Writer, r response.Response) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintf(tw, "Stage\tType\tName\tInput\tOutput\tGain\n"); err != nil {
		return fmt.Errorf("write output header: %w", err)
	}

	if _, err := fmt.Fprintf(tw, "-----\t----\t----\t-----\t------\t----\n"); err != nil {
		return fmt.Errorf("write output header: %w", err)
	}

	for i, s := range r.Stages {
		if _, err := fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\t%g\n", i+1, s.Type, s.Name, s.Input.Name, s.Output.Name, s.Gain); err != nil {
			return fmt.Errorf("write output row: %w", err)
		}
	}

	if err := tw.Flush(); err != nil {
		return fmt.Errorf("flush output: %w", err)
	}

	sens := r.Sensitivity
	_, err := fmt.Fprintf(w, "\nSensitivity: %g %s/%s at %g Hz\n", sens.Value, sens.OutputUnits.Name, sens.InputUnits.Name, sens.Frequency)

	return err
}

func printCurve(w io.Writer, stages []response.Stage, c config.CurveConfig) error {
	grid, err := response.ApplyCurveOptions(
		response.WithFrequencyRange(c.MinFrequency, c.MaxFrequency),
		response.WithPoints(c.Points),
	).Grid()
	if err != nil {
		return err
	}

	data, err := response.Curve(stages, grid)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintf(tw, "\nFrequency [Hz]\tAmplitude\tPhase [deg]\n"); err != nil {
		return fmt.Errorf("write output header: %w", err)
	}

	for i, f := range data.Frequencies {
		if _, err := fmt.Fprintf(tw, "%.6g\t%.6g\t%.2f\n", f, data.Amplitude[i], data.Phase[i]); err != nil {
			return fmt.Errorf("write output row: %w", err)
		}
	}

	return tw.Flush()
}

func printFIR(w io.Writer, logger *slog.Logger, stages []response.Stage, n int) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	if _, err := fmt.Fprintf(tw, "\nStage\tTaps\tBins\t|H(DC)|\t|H(Nyquist)|\tPeak\n"); err != nil {
		return fmt.Errorf("write output header: %w", err)
	}

	for i, s := range stages {
		if s.Type != response.StageFIR {
			continue
		}

		bins, err := response.FIRSpectrum(s.FIR, n)
		if err != nil {
			logger.Warn("fir spectrum failed", "stage", i+1, "error", err)
			continue
		}

		peak := 0.0
		for _, b := range bins {
			peak = max(peak, cmplx.Abs(b))
		}

		if _, err := fmt.Fprintf(tw, "%d\t%d\t%d\t%.6g\t%.6g\t%.6g\n",
			i+1, len(s.FIR.Taps()), len(bins), cmplx.Abs(bins[0]), cmplx.Abs(bins[len(bins)-1]), peak,
		); err != nil {
			return fmt.Errorf("write output row: %w", err)
		}
	}

	return tw.Flush()
}
