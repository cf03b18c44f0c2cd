package main

import (
	"flag"
	"fmt"
	"io"
	"log"
	"os"

	"vaeprep/pkg/config"
	"vaeprep/pkg/pipeline"
)

//
// ---------------------- CLI FLAGS DOCUMENTATION ----------------------
//
// --data-dir         : Directory with sample_info.csv and CRISPR_gene_dependency.csv. Default = ../0.data-download/data
// --output-dir       : Directory for the partitions. Default = data-dir
// --sample-file      : Sample metadata file name
// --dependency-file  : Gene dependency file name
// --scope            : Population loaded: "all", "adult" or "pediatric"
// --categories       : Age categories kept for the split. Default = Adult,Pediatric
// --test-size        : Fraction of rows in the test partition. Default = 0.15
// --seed             : Random seed of the stratified split. Default = 42
// --require-coverage : Fail unless every age/sex stratum lands in both partitions
// --train-file       : Training partition. Default = VAE_train_df.csv
// --test-file        : Testing partition. Default = VAE_test_df.csv
// --format           : "csv" or "tsv". Default = from file extension
// --plot             : Save a per-stratum bar chart (png, svg, pdf)
// --quiet            : Only print the final summary
//
// Column names: --id-col, --sex-col, --age-col, --stratum-col, --separator
//
// Example:
//   go run ./cmd/vaesplit --data-dir ../0.data-download/data --seed 7 --plot split.png
//
// ---------------------------------------------------------------------
//

func main() {
	cfg := config.Default()
	cfg.RegisterFlags(flag.CommandLine)
	flag.Parse()

	logger := log.New(os.Stderr, "vaesplit: ", log.LstdFlags)
	if err := cfg.Validate(); err != nil {
		logger.Fatalf("Invalid configuration: %v", err)
	}

	progress := logger
	if cfg.Quiet {
		progress = log.New(io.Discard, "", 0)
	}

	st, err := pipeline.New(cfg, progress).Run()
	if err != nil {
		logger.Fatalf("Split failed: %v", err)
	}

	if cfg.Quiet {
		st.Summary.Fprint(os.Stdout)
	}
	fmt.Println("Testing data saved to:", cfg.TestPath())
	fmt.Println("Training data saved to:", cfg.TrainPath())
}
