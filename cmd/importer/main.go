package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"postalgeo-api/internal/config"
	"postalgeo-api/internal/diagnostic"
	"postalgeo-api/internal/loader"
	"postalgeo-api/internal/repository"

	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	file := flag.String("file", "", "Path to the CSV file to import")
	header := flag.Bool("header", false, "Skip the first row of the file")
	lenient := flag.Bool("lenient", false, "Keep rows with out-of-range coordinates")
	flag.Parse()

	if *file == "" {
		fmt.Println("Error: --file flag is required")
		os.Exit(1)
	}

	// Load config
	cfg, err := config.LoadConfig("configs")
	if err != nil {
		fmt.Printf("Error loading config: %v\n", err)
		os.Exit(1)
	}
	logger := cfg.NewLogger(os.Stderr)

	fmt.Printf("Starting import from file: %s\n", *file)

	l := loader.New(loader.Options{
		HasHeader:         *header,
		StrictCoordinates: !*lenient,
	}, diagnostic.NewLogReporter(logger))

	st, summary, err := l.LoadFile(*file)
	if err != nil {
		fmt.Printf("Error parsing CSV: %v\n", err)
		os.Exit(1)
	}

	fmt.Printf("Parsed %d rows: %d loaded, %d repaired, %d skipped, %d duplicate codes\n",
		summary.Rows, summary.Loaded, summary.Repaired, summary.Skipped, summary.Replaced)

	if cfg.DBSource == "" {
		fmt.Println("Error: db_source is not configured")
		os.Exit(1)
	}

	// Connect to DB
	ctx := context.Background()
	conn, err := pgxpool.New(ctx, cfg.DBSource)
	if err != nil {
		fmt.Printf("Error connecting to database: %v\n", err)
		os.Exit(1)
	}
	defer conn.Close()

	repo := repository.NewRepository(conn)

	// Ensure table exists
	if err := repo.EnsureSchema(ctx); err != nil {
		fmt.Printf("Error creating table: %v\n", err)
		os.Exit(1)
	}

	// Replace snapshot
	if _, err := repo.ReplaceAll(ctx, st.All()); err != nil {
		fmt.Printf("Error inserting records: %v\n", err)
		os.Exit(1)
	}

	// Verify data
	count, err := repo.Count(ctx)
	if err != nil {
		fmt.Printf("Error verifying import: %v\n", err)
		os.Exit(1)
	}
	if count != st.Len() {
		fmt.Printf("Error verifying import: record count mismatch: expected %d, got %d\n", st.Len(), count)
		os.Exit(1)
	}

	fmt.Printf("Successfully imported %d postal codes\n", count)
}
