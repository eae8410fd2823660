// Command verify runs the staged comparison between the legacy document
// store and the relational store. It prints a per-stage pass/fail table and
// exits non-zero if any stage failed, so it can gate the migration pipeline.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"

	"github.com/joho/godotenv"
	"github.com/neerajsamtani/budget.rip-sub001/internal/models"
	"github.com/neerajsamtani/budget.rip-sub001/internal/reconcile"
	"github.com/olekukonko/tablewriter"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"
)

// errVerificationFailed signals a completed run with at least one failed
// stage. It travels up to main so the deferred cleanup inside run happens
// before the process exits.
var errVerificationFailed = errors.New("verification failed")

func main() {
	// Values from a .env file are a convenience for local runs, the
	// environment always wins.
	_ = godotenv.Load()

	configureLogging()

	if err := newVerifyCommand().Execute(); err != nil {
		if errors.Is(err, errVerificationFailed) {
			os.Exit(1)
		}

		log.Fatal().Msg(err.Error())
	}
}

// configureLogging sets up zerolog. Output defaults to JSON, LOG_FORMAT=human
// switches to the console writer for development.
func configureLogging() {
	output := io.Writer(os.Stdout)
	if os.Getenv("LOG_FORMAT") == "human" {
		output = zerolog.ConsoleWriter{Out: os.Stdout}
	}

	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	log.Logger = log.Output(output).With().Timestamp().Logger()
}

func newVerifyCommand() *cobra.Command {
	var thorough bool
	var sample int

	cmd := &cobra.Command{
		Use:   "verify",
		Short: "Compare the legacy document store against the relational store",
		Long: `verify runs the staged reconciliation checklist between the legacy
document store and the relational store: reference data, transactions and
line items, events and their relationships, accounts and users.

The default quick mode spot-checks a sample of line items; --thorough
compares every line item field by field.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return run(cmd.Context(), thorough, sample)
		},
	}

	cmd.Flags().BoolVar(&thorough, "thorough", false, "compare every line item instead of a sample")
	cmd.Flags().IntVar(&sample, "sample", 0, "line items to compare in quick mode (default 25)")

	return cmd
}

func run(parent context.Context, thorough bool, sample int) error {
	ctx, stop := signal.NotifyContext(parent, os.Interrupt)
	defer stop()

	legacyURI := envOr("MONGODB_URI", "mongodb://localhost:27017")
	legacyName := envOr("MONGODB_DATABASE", "budget")
	dsn := envOr("DATABASE_URL", "data/ledger.db?_pragma=foreign_keys(1)")

	client, err := mongo.Connect(options.Client().ApplyURI(legacyURI))
	if err != nil {
		return fmt.Errorf("connecting to the legacy store: %w", err)
	}
	defer func() {
		if err := client.Disconnect(context.Background()); err != nil {
			log.Error().Err(err).Msg("disconnecting from the legacy store")
		}
	}()

	db, err := models.Connect(dsn)
	if err != nil {
		return err
	}

	legacy := reconcile.NewDocumentStore(client.Database(legacyName))
	relational := reconcile.NewSQLStore(db)

	driver := reconcile.NewDriver(legacy, relational, log.Logger)
	if sample > 0 {
		driver.SampleSize = sample
	}

	mode := reconcile.ModeQuick
	if thorough {
		mode = reconcile.ModeThorough
	}

	report := driver.VerifyAll(ctx, mode)
	render(report)

	return reportError(report)
}

// reportError maps the report onto the command's error result. The details
// were already rendered, so the error only carries the exit decision.
func reportError(report reconcile.Report) error {
	if report.Passed() {
		return nil
	}

	return errVerificationFailed
}

// render prints the per-stage table and a summary to stdout.
func render(report reconcile.Report) {
	table := tablewriter.NewWriter(os.Stdout)
	table.SetHeader([]string{"Stage", "Result"})

	for _, stage := range report.Stages {
		result := "pass"
		if !stage.Passed {
			result = "FAIL"
		}
		table.Append([]string{stage.Stage, result})
	}

	table.Render()

	for _, stage := range report.Stages {
		for _, detail := range stage.Details {
			fmt.Printf("  [%s] %s\n", stage.Stage, detail)
		}
	}

	if report.Passed() {
		fmt.Println("All stages passed, the stores agree.")
	} else {
		fmt.Println("Verification failed, see details above.")
	}
}

func envOr(key, fallback string) string {
	value, ok := os.LookupEnv(key)
	if !ok {
		return fallback
	}

	return value
}
