// leakclient drains leaks from a running delivery server and reports how
// many of the delivered identities match a locally known set. It is the
// consumer half of the benchmark setup fakegen produces data for.
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kristi-balla/leakchef/internal/worker"
	"github.com/kristi-balla/leakchef/pkg/client"
)

const defaultFilter = "FOM7YjPDhpwkquBaV7gIqE+K3KDYrmk6TPrBeVKpNLA="

type runOptions struct {
	apiKey     string
	identities string
	filter     string
	limit      int64
	watcher    string
}

func newRunCommand() *cobra.Command {
	opts := runOptions{}

	cmd := &cobra.Command{
		Use:   "run",
		Short: "Continuously fetch leaks and report match counts",
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger, _ := zap.NewProduction()
			defer logger.Sync()
			return run(cmd.Context(), logger, opts)
		},
	}

	cmd.Flags().StringVar(&opts.apiKey, "api-key", "", "api key of the customer to fetch leaks for")
	cmd.Flags().StringVar(&opts.identities, "identities", "identities.json", "file holding the known identities to match against")
	cmd.Flags().StringVar(&opts.filter, "filter", defaultFilter, "customer domain filter sent with every page request")
	cmd.Flags().Int64Var(&opts.limit, "limit", 100_000, "batch size requested per page")
	cmd.Flags().StringVar(&opts.watcher, "watcher", "client_watcher.dat", "file RSS samples are appended to; empty disables recording")
	cmd.MarkFlagRequired("api-key")

	return cmd
}

func run(ctx context.Context, logger *zap.Logger, opts runOptions) error {
	known, err := readKnownIdentities(opts.identities)
	if err != nil {
		return err
	}
	logger.Info("known identities loaded",
		zap.String("path", opts.identities),
		zap.Int("count", len(known)))

	ip := getenv("CLIENT_IP", "0.0.0.0")
	port := getenv("CLIENT_PORT", "9999")
	c := client.New(opts.apiKey, ip, port)

	if opts.watcher != "" {
		recorder := worker.NewMemoryRecorder(opts.watcher, time.Second, logger)
		go recorder.Run(ctx)
	}

	// Keep draining until the server runs out of leaks or we get told to
	// stop. The iteration cap matches the benchmark harness.
	for i := 0; i < 1000; i++ {
		if ctx.Err() != nil {
			logger.Info("shutdown received, stopping")
			return nil
		}

		done, err := drainOne(ctx, logger, c, known, opts)
		if err != nil {
			return err
		}
		if done {
			return nil
		}
	}
	return nil
}

// drainOne fetches one full leak and reports the result. It returns true
// when the server had nothing left to deliver.
func drainOne(ctx context.Context, logger *zap.Logger, c *client.Client, known map[string]client.PlainPair, opts runOptions) (bool, error) {
	leakID, identities, err := c.GetLatestLeak(ctx, opts.filter, opts.limit)
	if err != nil {
		return false, fmt.Errorf("fetching the latest leak: %w", err)
	}

	if leakID == "" {
		logger.Warn("no leak available, nothing to do")
		return true, nil
	}
	logger.Info("working on leak", zap.String("leak_id", leakID))

	total := len(identities)
	matches := len(c.CountMatches(known, identities))

	for {
		more, err := c.GetLeak(ctx, leakID, opts.filter, opts.limit)
		if err != nil {
			return false, fmt.Errorf("fetching leak %s: %w", leakID, err)
		}
		if len(more) == 0 {
			logger.Info("leak fully received", zap.String("leak_id", leakID))
			break
		}

		total += len(more)
		matches += len(c.CountMatches(known, more))
	}

	if err := c.SendResult(ctx, leakID, uint32(matches), uint32(total)); err != nil {
		return false, fmt.Errorf("sending result for %s: %w", leakID, err)
	}

	logger.Info("result reported",
		zap.String("leak_id", leakID),
		zap.Int("received", total),
		zap.Int("matches", matches))
	return false, nil
}

func readKnownIdentities(path string) (map[string]client.PlainPair, error) {
	file, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", path, err)
	}
	defer file.Close()

	var known map[string]client.PlainPair
	if err := json.NewDecoder(bufio.NewReader(file)).Decode(&known); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	return known, nil
}

func getenv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func main() {
	root := &cobra.Command{
		Use:  "leakclient [command]",
		Long: "Demo consumer for the leak delivery server",
	}

	root.AddCommand(newRunCommand())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := root.ExecuteContext(ctx); err != nil && !errors.Is(err, context.Canceled) {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}
