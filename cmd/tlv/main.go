package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/spf13/pflag"
	"go.uber.org/zap"

	"github.com/tokenlists/tokenlist"
)

const usage = "tlv [flags] <source>"

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	def := tokenlist.DefaultConfig()

	flags := pflag.NewFlagSet("tlv", pflag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.Usage = func() {
		fmt.Fprintln(stderr, "Usage:", usage)
		flags.PrintDefaults()
	}
	configFile := flags.String("config", "", "YAML configuration file")
	baseDir := flags.String("base-dir", def.BaseDir, "directory relative paths are resolved against")
	schema := flags.String("schema", "", "schema file used instead of the embedded token list schema")
	timeout := flags.Duration("timeout", def.Timeout, "time allowed for loading the source; 0 disables it")
	maxRedirects := flags.Int("max-redirects", def.HTTP.MaxRedirects, "redirects followed for remote sources; 0 disables following")
	insecure := flags.BoolP("insecure", "k", false, "skip tls certificate verification")
	cacert := flags.String("cacert", "", "PEM file with additional root certificates")
	errorLog := flags.String("error-log", def.Log.ErrorLog, "file receiving error records")
	logLevel := flags.String("log-level", def.Log.Level, "console log level: debug, info, warn or error")
	quiet := flags.BoolP("quiet", "q", false, "log errors only")
	output := flags.StringP("output", "o", def.Output, "result written to stdout: simple, basic or detailed")
	if err := flags.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return tokenlist.ExitSuccess
		}
		return tokenlist.ExitFailure
	}

	// the logger depends on cfg, so errors up to cfg.Validate go to stderr only
	cfg := def
	if *configFile != "" {
		var err error
		if cfg, err = tokenlist.LoadConfig(*configFile); err != nil {
			fmt.Fprintln(stderr, err)
			return tokenlist.ExitFailure
		}
	}
	flags.Visit(func(f *pflag.Flag) {
		switch f.Name {
		case "base-dir":
			cfg.BaseDir = *baseDir
		case "schema":
			cfg.Schema = *schema
		case "timeout":
			cfg.Timeout = *timeout
		case "max-redirects":
			cfg.HTTP.MaxRedirects = *maxRedirects
		case "insecure":
			cfg.HTTP.Insecure = *insecure
		case "cacert":
			cfg.HTTP.CACert = *cacert
		case "error-log":
			cfg.Log.ErrorLog = *errorLog
		case "log-level":
			cfg.Log.Level = *logLevel
		case "output":
			cfg.Output = *output
		}
	})
	if *quiet {
		cfg.Log.Level = "error"
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(stderr, err)
		return tokenlist.ExitFailure
	}

	logger, closeLogger, err := tokenlist.OpenLogger(cfg.Log, stderr)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return tokenlist.ExitFailure
	}
	defer closeLogger()

	sch, err := tokenlist.CompileSchema(cfg.Schema)
	if err != nil {
		logger.Error("Failed to compile schema", zap.String("schema", cfg.Schema), zap.Error(err))
		return tokenlist.ExitFailure
	}
	loader, err := tokenlist.NewLoader(cfg)
	if err != nil {
		logger.Error("Failed to create loader", zap.Error(err))
		return tokenlist.ExitFailure
	}

	var source string
	if flags.NArg() == 1 {
		source = flags.Arg(0)
	}
	p := &tokenlist.Pipeline{
		Loader:       loader,
		Validator:    tokenlist.NewValidator(sch),
		Reporter:     tokenlist.NewReporter(logger),
		Output:       stdout,
		OutputFormat: cfg.Output,
	}
	return p.Run(ctx, source, usage)
}
