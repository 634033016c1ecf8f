package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/kacperjurak/goimpbatch"
	"github.com/kacperjurak/goimpbatch/internal/csvdata"
	"github.com/kacperjurak/goimpbatch/pkg/config"
	"github.com/kacperjurak/goimpbatch/pkg/submit"
)

func main() {
	cfg := parseFlags()

	if err := run(cfg, os.Stdout); err != nil {
		log.Fatalf("Error: %v", err)
	}
}

// parseFlags parses command line flags and positionals into a configuration.
func parseFlags() *config.Config {
	cfg := config.DefaultConfig()

	flag.StringVar(&cfg.SubmitURL, "submit", "", "POST the batch document to this solver endpoint")
	flag.DurationVar(&cfg.Timeout, "timeout", cfg.Timeout, "Submit request timeout")
	flag.BoolVar(&cfg.Quiet, "q", cfg.Quiet, "Quiet mode")
	flag.Usage = usage
	flag.Parse()

	args := flag.Args()
	if len(args) < 1 {
		usage()
		os.Exit(1)
	}

	cfg.File = args[0]
	if len(args) > 1 {
		cfg.BatchID = args[1]
	}

	return cfg
}

func usage() {
	fmt.Fprintf(os.Stderr, "Usage: %s [flags] <csv_file> [batch_id]\n", os.Args[0])
	flag.PrintDefaults()
}

// run executes the whole pipeline. The document reaches out only after every
// stage has succeeded, so a failed run writes nothing to out.
func run(cfg *config.Config, out *os.File) error {
	records, err := csvdata.ReadFile(cfg.File)
	if err != nil {
		return err
	}

	batch := goimpbatch.BuildBatch(records, cfg.BatchID)

	doc, err := json.MarshalIndent(batch, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal batch: %w", err)
	}

	if !cfg.Quiet {
		printStats(goimpbatch.Summarize(batch))
	}

	if _, err := out.Write(doc); err != nil {
		return fmt.Errorf("failed to write batch: %w", err)
	}
	fmt.Fprintln(out)

	if cfg.SubmitURL != "" {
		client := submit.NewClient(cfg.SubmitURL, cfg)
		start := time.Now()
		if err := client.Send(batch); err != nil {
			return err
		}
		if !cfg.Quiet {
			log.Printf("Submission took %v", time.Since(start))
		}
	}

	return nil
}

// printStats writes the run summary to the diagnostic stream, never stdout.
func printStats(stats goimpbatch.Stats) {
	log.Printf("Converted CSV to batch JSON:")
	log.Printf("  Batch ID: %s", stats.BatchID)
	log.Printf("  Spectra: %d", stats.Spectra)
	if stats.Spectra > 0 {
		log.Printf("  Frequencies per spectrum: %d", stats.FirstSpectrum)
		log.Printf("  Frequency span: %g - %g Hz", stats.FreqMin, stats.FreqMax)
	}
	log.Printf("  Total data points: %d", stats.TotalPoints)
}
