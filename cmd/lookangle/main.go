// Command lookangle prints the azimuth and elevation from an observer to an
// observable point, both given as geodetic coordinates.
//
//	lookangle [flags] source_lat source_lon source_alt dest_lat dest_lon dest_alt
//
// Latitude and longitude are decimal degrees, altitude is meters above the
// reference ellipsoid. Flags must precede the coordinates.
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"

	"github.com/paunstefan/view-angle-calculator/internal/config"
	"github.com/paunstefan/view-angle-calculator/internal/logging"
	"github.com/paunstefan/view-angle-calculator/internal/transform"
)

var argNames = [6]string{"source_lat", "source_lon", "source_alt", "dest_lat", "dest_lon", "dest_alt"}

// valueFlags take a separate argument when not written as -name=value.
var valueFlags = map[string]bool{"config": true}

func main() {
	// .env is optional.
	_ = godotenv.Load()
	os.Exit(run(os.Args, os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	prog := args[0]
	flagArgs, positional := splitArgs(args[1:])

	fs := flag.NewFlagSet(prog, flag.ContinueOnError)
	fs.SetOutput(stderr)
	lenient := fs.Bool("lenient", false, "treat unparsable coordinates as 0 instead of failing")
	configFile := fs.String("config", "", "path to a YAML config file")
	fs.Usage = func() {
		printUsage(stdout, prog)
		fs.PrintDefaults()
	}

	if err := fs.Parse(flagArgs); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		return 1
	}
	positional = append(fs.Args(), positional...)

	if len(positional) != len(argNames) {
		printUsage(stdout, prog)
		return 1
	}

	cfg, err := config.Load(*configFile)
	if err != nil {
		logging.New(stderr, "error", "text").Error("invalid configuration", "error", err)
		return 1
	}
	logger := logging.New(stderr, cfg.Log.Level, cfg.Log.Format).With("component", "cli")

	values, err := parseCoordinates(positional, *lenient || cfg.CLI.Lenient, logger)
	if err != nil {
		logger.Error("invalid argument", "error", err)
		return 1
	}

	observer := transform.GeodeticPosition{LatDeg: values[0], LonDeg: values[1], AltM: values[2]}
	target := transform.GeodeticPosition{LatDeg: values[3], LonDeg: values[4], AltM: values[5]}
	ellipsoid := cfg.Ellipsoid.Ellipsoid()

	la := transform.Compute(observer, target, ellipsoid)
	if la.Degenerate() {
		logger.Warn("degenerate geometry, angles are undefined",
			"observer", observer,
			"target", target,
		)
	}
	logger.Debug("look angles computed",
		"ellipsoid", ellipsoid.String(),
		"range_m", la.RangeM,
	)

	fmt.Fprintf(stdout, "Azimuth: %f degrees\n", la.AzimuthDeg)
	fmt.Fprintf(stdout, "Elevation: %f degrees\n", la.ElevationDeg)
	return 0
}

func printUsage(w io.Writer, prog string) {
	fmt.Fprintf(w, "Usage: %s [source_lat] [source_lon] [source_alt] [dest_lat] [dest_lon] [dest_alt]\n", prog)
}

// splitArgs separates leading flags from coordinates. Anything that parses as
// a number ends the flags, so negative coordinates are never read as flags.
func splitArgs(args []string) (flags, positional []string) {
	for i := 0; i < len(args); i++ {
		a := args[i]
		if a == "--" {
			return args[:i], args[i+1:]
		}
		if !strings.HasPrefix(a, "-") || isNumber(a) {
			return args[:i], args[i:]
		}
		name := strings.TrimLeft(a, "-")
		if valueFlags[name] && i+1 < len(args) {
			i++
		}
	}
	return args, nil
}

func isNumber(s string) bool {
	_, err := strconv.ParseFloat(s, 64)
	return err == nil
}

// parseCoordinates converts the six positional arguments. In lenient mode an
// unparsable argument becomes 0.
func parseCoordinates(args []string, lenient bool, logger *slog.Logger) ([6]float64, error) {
	var out [6]float64
	for i, raw := range args {
		v, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			if !lenient {
				return out, fmt.Errorf("%s: %w", argNames[i], err)
			}
			logger.Warn("argument is not a number, using 0", "name", argNames[i], "value", raw)
			v = 0
		}
		out[i] = v
	}
	return out, nil
}
