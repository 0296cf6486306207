// seed_performances.go — standalone script to load performance vectors from
// a CSV file into the echelon database.
//
// CSV columns: entry_id, display_name, team, era, then one numeric column
// per dimension in the mode's configured order. Lower-is-better stats must
// already be negated.
//
// Usage:
//
//	go run scripts/seed_performances.go -csv seasons.csv -mode playeravg -db postgres://localhost/echelon
package main

import (
	"context"
	"encoding/csv"
	"flag"
	"io"
	"log"
	"os"
	"strconv"

	"github.com/jackc/pgx/v5/pgxpool"
)

func main() {
	csvPath := flag.String("csv", "", "path to performances CSV")
	mode := flag.String("mode", "playeravg", "analysis mode to seed")
	dbURL := flag.String("db", os.Getenv("ECHELON_DATABASE_URL"), "database URL")
	dryRun := flag.Bool("dry-run", false, "parse and report without inserting")
	flag.Parse()

	if *csvPath == "" {
		log.Fatal("-csv is required")
	}

	f, err := os.Open(*csvPath)
	if err != nil {
		log.Fatalf("open csv: %v", err)
	}
	defer f.Close()

	ctx := context.Background()

	var pool *pgxpool.Pool
	if !*dryRun {
		pool, err = pgxpool.New(ctx, *dbURL)
		if err != nil {
			log.Fatalf("connect: %v", err)
		}
		defer pool.Close()
	}

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1

	// Header row names the dimensions after the four identity columns.
	header, err := r.Read()
	if err != nil {
		log.Fatalf("read header: %v", err)
	}
	if len(header) < 5 {
		log.Fatalf("csv needs entry_id, display_name, team, era and at least one dimension, got %v", header)
	}
	log.Printf("seeding mode %s with dimensions %v", *mode, header[4:])

	inserted := 0
	for {
		record, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			log.Fatalf("read row: %v", err)
		}
		if len(record) != len(header) {
			log.Fatalf("row %d has %d columns, header has %d", inserted+1, len(record), len(header))
		}

		dims := make([]float64, 0, len(record)-4)
		for _, field := range record[4:] {
			v, err := strconv.ParseFloat(field, 64)
			if err != nil {
				log.Fatalf("entry %s: bad value %q: %v", record[0], field, err)
			}
			dims = append(dims, v)
		}

		if *dryRun {
			log.Printf("would insert %s (%s) %v", record[0], record[1], dims)
			inserted++
			continue
		}

		_, err = pool.Exec(ctx, `
			INSERT INTO performances (entry_id, mode, display_name, team, era, dims)
			VALUES ($1, $2, $3, $4, $5, $6)
			ON CONFLICT (mode, entry_id) DO UPDATE
			SET display_name = EXCLUDED.display_name,
			    team = EXCLUDED.team,
			    era = EXCLUDED.era,
			    dims = EXCLUDED.dims`,
			record[0], *mode, record[1], record[2], record[3], dims)
		if err != nil {
			log.Fatalf("insert %s: %v", record[0], err)
		}
		inserted++
	}

	log.Printf("seeded %d performances for mode %s", inserted, *mode)
}
