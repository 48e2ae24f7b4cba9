package main

import (
	"flag"
	"os"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/HMB-research/invoice-gleans/internal/gleanerr"
	"github.com/HMB-research/invoice-gleans/internal/glean"
	"github.com/HMB-research/invoice-gleans/internal/ledger"
)

// Exit codes distinguish fatal input failures from unexpected errors so
// calling scripts can branch on them without parsing log output.
const (
	exitOK          = 0
	exitSchemaError = 2
	exitParseError  = 3
	exitRuntimeErr  = 1
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	var (
		invoicesPath  = flag.String("invoices", "", "Path to the invoice CSV table (required)")
		lineItemsPath = flag.String("line-items", "", "Path to the line_item CSV table (required)")
		outPath       = flag.String("out", "", "Path to write the glean CSV table (required)")
		configPath    = flag.String("config", "", "Optional YAML file overriding detector thresholds")
		logLevel      = flag.String("log-level", "info", "Log level: trace, debug, info, warn, error")
	)
	flag.Parse()

	level, err := zerolog.ParseLevel(*logLevel)
	if err != nil {
		log.Warn().Str("level", *logLevel).Msg("invalid -log-level, defaulting to info")
		level = zerolog.InfoLevel
	}
	zerolog.SetGlobalLevel(level)

	runID := uuid.New().String()
	logger := log.Logger.With().Str("run_id", runID).Logger()

	if *invoicesPath == "" || *lineItemsPath == "" || *outPath == "" {
		logger.Error().Msg("-invoices, -line-items, and -out are all required")
		os.Exit(exitRuntimeErr)
	}

	os.Exit(run(logger, *invoicesPath, *lineItemsPath, *outPath, *configPath))
}

func run(logger zerolog.Logger, invoicesPath, lineItemsPath, outPath, configPath string) int {
	thresholds, err := glean.LoadThresholds(configPath)
	if err != nil {
		logger.Error().Err(err).Msg("failed to load threshold config")
		return exitRuntimeErr
	}

	invoicesFile, err := os.Open(invoicesPath)
	if err != nil {
		logger.Error().Err(err).Str("path", invoicesPath).Msg("failed to open invoice table")
		return exitRuntimeErr
	}
	defer invoicesFile.Close()

	invoices, err := ledger.ReadInvoices(invoicesFile, logger)
	if err != nil {
		return exitForIngestError(logger, err, "failed to read invoice table")
	}

	lineItemsFile, err := os.Open(lineItemsPath)
	if err != nil {
		logger.Error().Err(err).Str("path", lineItemsPath).Msg("failed to open line_item table")
		return exitRuntimeErr
	}
	defer lineItemsFile.Close()

	lineItems, err := ledger.ReadLineItems(lineItemsFile, logger)
	if err != nil {
		return exitForIngestError(logger, err, "failed to read line_item table")
	}

	logger.Info().
		Int("invoice_count", len(invoices)).
		Int("line_item_count", len(lineItems)).
		Msg("ingest complete")

	engine := glean.NewEngine(thresholds, logger)
	gleans := engine.Run(invoices, lineItems)

	outFile, err := os.Create(outPath)
	if err != nil {
		logger.Error().Err(err).Str("path", outPath).Msg("failed to create output file")
		return exitRuntimeErr
	}
	defer outFile.Close()

	if err := ledger.NewWriter(outFile).WriteGleans(gleans); err != nil {
		logger.Error().Err(err).Msg("failed to write glean table")
		return exitRuntimeErr
	}

	return exitOK
}

func exitForIngestError(logger zerolog.Logger, err error, msg string) int {
	var code int
	switch {
	case gleanerr.IsSchema(err):
		code = exitSchemaError
	case gleanerr.IsInputParse(err):
		code = exitParseError
	default:
		code = exitRuntimeErr
	}
	logger.Error().Err(err).Msg(msg)
	return code
}
