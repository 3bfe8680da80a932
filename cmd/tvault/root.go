package main

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/aretw0/lifecycle"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/tvault-go/tvault"
	"github.com/tvault-go/tvault/pkg/core"
)

var (
	verbose    bool
	configPath string
	adapter    string
	yamlOutput bool

	// serviceOptions are appended to every service built by openService.
	serviceOptions []tvault.Option
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = &cobra.Command{
	Use:   "tvault",
	Short: "A command line client for TrueVault documents and sessions",
	Long: `tvault reads and writes JSON documents stored in a TrueVault vault.
Documents travel base64-encoded; bulk reads are batched 100 ids at a time.

Credentials come from --config, a .tvault.yaml/tvault.yaml found upwards from
the working directory, or the TVAULT_* environment variables.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := slog.LevelInfo
		if verbose {
			level = slog.LevelDebug
		}

		opts := &slog.HandlerOptions{
			Level: level,
		}
		logger := slog.New(slog.NewTextHandler(cmd.ErrOrStderr(), opts))
		slog.SetDefault(logger)
	},
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main().
func Execute() {
	// First SIGINT/SIGTERM cancels the context, a second one force-exits.
	ctx := lifecycle.NewSignalContext(context.Background())
	defer ctx.Cancel()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		ctx.Cancel()
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Path to the config file (default: search upwards for .tvault.yaml)")
	rootCmd.PersistentFlags().StringVar(&adapter, "adapter", "", "Storage adapter (truevault, memory)")
	rootCmd.PersistentFlags().BoolVar(&yamlOutput, "yaml", false, "Output in YAML instead of JSON")
}

// loadConfig resolves the config file and environment.
func loadConfig() (tvault.Config, error) {
	path := configPath
	if path == "" {
		if wd, err := os.Getwd(); err == nil {
			if found, err := tvault.FindConfig(wd); err == nil {
				path = found
			}
		}
	}
	if path != "" {
		slog.Debug("loading config", "path", path)
	}
	return tvault.LoadConfig(path)
}

// openService builds the service from config and flags.
func openService() (*core.Service, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	opts := []tvault.Option{tvault.WithLogger(slog.Default())}
	if adapter != "" {
		opts = append(opts, tvault.WithAdapter(adapter))
	}
	opts = append(opts, serviceOptions...)

	svc, err := tvault.New(cfg, opts...)
	if err != nil {
		return nil, fmt.Errorf("initializing tvault: %w", err)
	}
	return svc, nil
}

// printResult writes v as indented JSON, or YAML with --yaml.
func printResult(w io.Writer, v any) error {
	if yamlOutput {
		// Round-trip through JSON so json.Number and struct tags render naturally.
		raw, err := json.Marshal(v)
		if err != nil {
			return err
		}
		var plain any
		if err := json.Unmarshal(raw, &plain); err != nil {
			return err
		}
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		defer enc.Close()
		return enc.Encode(plain)
	}

	encoder := json.NewEncoder(w)
	encoder.SetIndent("", "  ")
	return encoder.Encode(v)
}

// readPayload parses a JSON payload from --data, --file or stdin, keeping numbers exact.
// Reading stops when the command context is cancelled.
func readPayload(cmd *cobra.Command, data, file string) (any, error) {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	var r io.Reader
	switch {
	case data != "" && file != "":
		return nil, errors.New("--data and --file are mutually exclusive")
	case data != "":
		return decodeJSON([]byte(data))
	case file == "-" || file == "":
		in := cmd.InOrStdin()
		if upgraded, err := lifecycle.UpgradeTerminal(in); err == nil && upgraded != nil {
			in = upgraded
		}
		r = in
	default:
		f, err := os.Open(file)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		r = f
	}

	raw, err := io.ReadAll(lifecycle.NewInterruptibleReader(r, ctx.Done()))
	if ctxErr := ctx.Err(); ctxErr != nil {
		return nil, fmt.Errorf("reading payload: %w", ctxErr)
	}
	if err != nil {
		return nil, err
	}
	return decodeJSON(raw)
}

func decodeJSON(raw []byte) (any, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return nil, fmt.Errorf("invalid JSON payload: %w", err)
	}
	return v, nil
}
