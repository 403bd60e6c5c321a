// fakegen produces test datasets for the leak delivery server: a
// known-identities file for the demo client and, when a Mongo URL is
// given, the matching seeded leak plus a customer to deliver it to.
package main

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"math/rand/v2"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/kristi-balla/leakchef/internal/crypto"
	"github.com/kristi-balla/leakchef/internal/repository"
	"github.com/kristi-balla/leakchef/pkg/client"
)

const seedBatchSize = 10_000

type generateOptions struct {
	count      int
	out        string
	salt       string
	leakID     string
	mongoURL   string
	mongoDB    string
	apiKey     string
	customerID int32
}

func newGenerateCommand() *cobra.Command {
	opts := generateOptions{}

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate fake identities and optionally seed them into Mongo",
		RunE: func(cmd *cobra.Command, _ []string) error {
			logger, _ := zap.NewProduction()
			defer logger.Sync()
			return runGenerate(cmd.Context(), logger, opts)
		},
	}

	cmd.Flags().IntVar(&opts.count, "count", 500_000, "number of identities to generate")
	cmd.Flags().StringVar(&opts.out, "out", "identities.json", "file the known identities are written to")
	cmd.Flags().StringVar(&opts.salt, "salt", "ZZhUc2b", "customer salt used to hash the identifiers")
	cmd.Flags().StringVar(&opts.leakID, "leak-id", "", "leak id for the seeded dataset (default: random)")
	cmd.Flags().StringVar(&opts.mongoURL, "mongo-url", "", "when set, the generated data is also seeded into this Mongo instance")
	cmd.Flags().StringVar(&opts.mongoDB, "mongo-db", "leaks", "database the seeded data goes into")
	cmd.Flags().StringVar(&opts.apiKey, "api-key", "", "api key for the seeded customer (default: random)")
	cmd.Flags().Int32Var(&opts.customerID, "customer-id", 1, "id of the seeded customer")

	return cmd
}

func runGenerate(ctx context.Context, logger *zap.Logger, opts generateOptions) error {
	if opts.leakID == "" {
		opts.leakID = uuid.NewString()
	}
	if opts.apiKey == "" {
		opts.apiKey = uuid.NewString()
	}

	logger.Info("generating identities",
		zap.Int("count", opts.count),
		zap.String("leak_id", opts.leakID))

	known := make(map[string]client.PlainPair, opts.count)
	rows := make([]repository.Identity, 0, opts.count)

	for i := 0; i < opts.count; i++ {
		email := randomEmail()
		password := randomPassword()

		idHash, err := crypto.ApplySalt(email, []byte(opts.salt))
		if err != nil {
			return fmt.Errorf("hashing %q: %w", email, err)
		}

		key := client.HashedCredentials{IDHash: idHash, DTEnc: password}.String()
		known[key] = client.PlainPair{Identifier: email, Password: password}

		rows = append(rows, repository.Identity{
			LeakID:     opts.leakID,
			LineNumber: int64(i + 1),
			Emails:     []string{email},
			Passwords:  []string{password},
		})
	}

	if err := writeKnownIdentities(opts.out, known); err != nil {
		return err
	}
	logger.Info("known identities written", zap.String("path", opts.out))

	if opts.mongoURL == "" {
		return nil
	}

	return seed(ctx, logger, opts, rows)
}

func writeKnownIdentities(path string, known map[string]client.PlainPair) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("creating %s: %w", path, err)
	}
	defer file.Close()

	writer := bufio.NewWriter(file)
	if err := json.NewEncoder(writer).Encode(known); err != nil {
		return fmt.Errorf("encoding known identities: %w", err)
	}
	return writer.Flush()
}

// seed writes the customer, the leak metadata and the identity rows. The
// metadata lands with status finished so the server picks the leak up
// immediately.
func seed(ctx context.Context, logger *zap.Logger, opts generateOptions, rows []repository.Identity) error {
	store, err := repository.Connect(ctx, logger, opts.mongoURL, opts.mongoDB)
	if err != nil {
		return err
	}
	defer store.Disconnect(ctx)

	err = store.UpsertCustomer(ctx, repository.Customer{
		CustomerID:   opts.customerID,
		APIKey:       opts.apiKey,
		HandledLeaks: []string{},
		CustomerSalt: opts.salt,
	})
	if err != nil {
		return fmt.Errorf("seeding customer: %w", err)
	}

	err = store.InsertMetadata(ctx, repository.Metadata{
		LeakID:           opts.leakID,
		Parser:           "fakegen",
		DateParsed:       time.Now().Unix(),
		FileLineCount:    int64(len(rows)),
		ParsedIdentities: int64(len(rows)),
		Status:           repository.LeakStatusFinished,
		DetectedFields:   []string{"email", "password"},
		LeakSource:       "generated",
	})
	if err != nil {
		return fmt.Errorf("seeding metadata: %w", err)
	}

	var total int64
	for start := 0; start < len(rows); start += seedBatchSize {
		end := start + seedBatchSize
		if end > len(rows) {
			end = len(rows)
		}

		n, err := store.InsertIdentities(ctx, rows[start:end])
		if err != nil {
			return fmt.Errorf("seeding identities at offset %d: %w", start, err)
		}
		total += n
	}

	logger.Info("dataset seeded",
		zap.String("leak_id", opts.leakID),
		zap.Int32("customer_id", opts.customerID),
		zap.String("api_key", opts.apiKey),
		zap.Int64("identities", total))
	return nil
}

var usernameParts = []string{
	"lena", "jonas", "mara", "felix", "anna", "tim", "nora", "max",
	"ida", "paul", "greta", "finn", "emma", "luis", "clara", "noah",
	"mia", "erik", "lina", "ben", "sofia", "jan", "ella", "tom",
}

func randomEmail() string {
	// All generated identities live on hotmail.com so a single domain
	// filter covers the whole dataset.
	name := usernameParts[rand.IntN(len(usernameParts))]
	surname := usernameParts[rand.IntN(len(usernameParts))]
	return fmt.Sprintf("%s.%s%d@hotmail.com", name, surname, rand.IntN(10_000_000))
}

const passwordCharset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!$%&"

func randomPassword() string {
	length := 8 + rand.IntN(8)
	out := make([]byte, length)
	for i := range out {
		out[i] = passwordCharset[rand.IntN(len(passwordCharset))]
	}
	return string(out)
}

func main() {
	root := &cobra.Command{
		Use:  "fakegen [command]",
		Long: "Test data generator for the leak delivery server",
	}

	root.AddCommand(newGenerateCommand())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
}
