// Command tapinfo inspects the spectrum tap.
//
// Usage:
//
//	tapinfo [-config file] [-log-level level] <command> [flags]
//
// Commands:
//
//	layout   print band centers and recurrence coefficients
//	tone     run a synthetic tone through a tap and print the final levels
//	pcm      stream a raw PCM file through a tap and print each snapshot
//	compare  compare filter-bank levels with an FFT reference
//	cpu      print the SIMD features of this machine
//
// Examples:
//
//	tapinfo layout -rate 44100 -bands 24
//	tapinfo tone -freq 3500 -seconds 2
//	tapinfo -config tap.yaml pcm -file capture.raw -channels 2
//	tapinfo compare -freq 8000
package main

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"sort"

	"github.com/cwbudde/algo-spectap/internal/config"
	"github.com/cwbudde/algo-spectap/internal/logging"
	"github.com/sirupsen/logrus"
)

// env carries what every command needs.
type env struct {
	cfg    *config.Config
	log    *logrus.Logger
	stdout io.Writer
	stderr io.Writer
}

type command struct {
	summary string
	run     func(e *env, args []string) error
}

var commands = map[string]command{
	"layout":  {"print band centers and recurrence coefficients", runLayout},
	"tone":    {"run a synthetic tone through a tap", runTone},
	"pcm":     {"stream a raw PCM file through a tap", runPCM},
	"compare": {"compare filter-bank levels with an FFT reference", runCompare},
	"cpu":     {"print SIMD features", runCPU},
}

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	global := flag.NewFlagSet("tapinfo", flag.ContinueOnError)
	global.SetOutput(stderr)
	configPath := global.String("config", "", "YAML configuration file")
	logLevel := global.String("log-level", "", "override logging.level (debug, info, warn, error)")
	global.Usage = func() { usage(global, stderr) }

	if err := global.Parse(args); err != nil {
		return 2
	}

	rest := global.Args()
	if len(rest) == 0 {
		global.Usage()
		return 2
	}

	cmd, ok := commands[rest[0]]
	if !ok {
		fmt.Fprintf(stderr, "error: unknown command %q\n\n", rest[0])
		global.Usage()
		return 2
	}

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}

	if *logLevel != "" {
		cfg.Logging.Level = *logLevel
	}

	log, err := logging.New(cfg.Logging.Level, cfg.Logging.JSON, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return 1
	}

	if err := cmd.run(&env{cfg: cfg, log: log, stdout: stdout, stderr: stderr}, rest[1:]); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return 0
		}
		if errors.Is(err, errUsage) {
			return 2
		}
		log.WithError(err).WithField("command", rest[0]).Error("command failed")
		return 1
	}

	return 0
}

// errUsage marks flag errors already reported by the flag set.
var errUsage = errors.New("usage")

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		cfg := config.Default()
		return &cfg, nil
	}

	return config.Load(path)
}

func usage(fs *flag.FlagSet, w io.Writer) {
	fmt.Fprintf(w, "Usage: tapinfo [flags] <command> [command flags]\n\n")
	fmt.Fprintf(w, "Inspects the band layout and levels of the spectrum tap.\n\n")
	fmt.Fprintf(w, "Commands:\n")

	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		fmt.Fprintf(w, "  %-8s %s\n", name, commands[name].summary)
	}

	fmt.Fprintf(w, "\nFlags:\n")
	fs.PrintDefaults()
}

// parseFlags parses args, mapping parse failures to errUsage.
func parseFlags(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return err
		}
		return errUsage
	}

	if fs.NArg() > 0 {
		fmt.Fprintf(fs.Output(), "unexpected arguments: %v\n", fs.Args())
		return errUsage
	}

	return nil
}
