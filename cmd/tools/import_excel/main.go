package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"os"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/pflag"

	"techtrack-api/internal/inventory"
	"techtrack-api/internal/models"
	"techtrack-api/pkg/importer"
)

func main() {
	if err := run(os.Args[1:]); err != nil {
		log.Fatalf("import_excel: %v", err)
	}
}

func run(args []string) error {
	var filePath, mappingPath, seedFile, outPath string
	var dryRun, sample bool
	var maxErrors int

	flagSet := pflag.NewFlagSet("import_excel", pflag.ContinueOnError)
	flagSet.StringVar(&filePath, "file", "", "workbook to import (.xlsx)")
	flagSet.StringVar(&mappingPath, "mapping", "", "YAML header mapping (default: built-in aliases)")
	flagSet.StringVar(&seedFile, "seed-file", "", "YAML inventory to import into")
	flagSet.BoolVar(&sample, "sample", false, "import into the built-in sample inventory")
	flagSet.StringVar(&outPath, "out", "", "write the resulting inventory to this .xlsx file")
	flagSet.BoolVar(&dryRun, "dry-run", false, "validate rows without adding them")
	flagSet.IntVar(&maxErrors, "max-errors", importer.DefaultMaxErrors, "stop after this many failed rows")
	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}
	if filePath == "" {
		flagSet.Usage()
		return errors.New("--file is required")
	}

	var opts importer.ImportOptions
	opts.DryRun = dryRun
	opts.MaxErrors = maxErrors
	if mappingPath != "" {
		m, err := importer.LoadMapping(mappingPath)
		if err != nil {
			return err
		}
		opts.Mapping = m
	}

	var seed []models.Asset
	var err error
	switch {
	case seedFile != "":
		seed, err = inventory.LoadSeedFile(seedFile)
	case sample:
		seed, err = inventory.SampleAssets()
	}
	if err != nil {
		return err
	}
	store := inventory.NewStore(seed...)

	file, err := os.Open(filePath)
	if err != nil {
		return err
	}
	defer file.Close()

	fmt.Printf("Importing %s into %d existing assets (dry_run=%v)\n", filePath, store.Len(), dryRun)
	fmt.Println(strings.Repeat("=", 60))

	summary, importErr := importer.ImportExcel(context.Background(), store, file, opts)
	printSummary(summary, store.List())
	if importErr != nil {
		return importErr
	}

	if outPath != "" && !dryRun {
		out, err := os.Create(outPath)
		if err != nil {
			return err
		}
		if err := importer.ExportExcel(out, store.List()); err != nil {
			out.Close()
			return err
		}
		if err := out.Close(); err != nil {
			return err
		}
		fmt.Printf("\nWrote %d assets to %s\n", store.Len(), outPath)
	}
	return nil
}

func printSummary(summary importer.ImportSummary, assets []models.Asset) {
	fmt.Println("\n" + strings.Repeat("=", 60))
	fmt.Println("IMPORT SUMMARY")
	fmt.Println(strings.Repeat("=", 60))

	fmt.Printf("Total inserted: %d\n", summary.Inserted)
	fmt.Printf("Total skipped: %d\n", summary.Skipped)
	fmt.Printf("Total errors: %d\n", summary.Errors)
	fmt.Printf("Dry run: %v\n", summary.DryRun)

	var total float64
	for _, a := range assets {
		total += a.Cost
	}
	fmt.Printf("Inventory: %d assets, $%s\n", len(assets), humanize.Commaf(total))

	if len(summary.Sheets) > 0 {
		fmt.Println("\nSheet Details:")
		for _, sheet := range summary.Sheets {
			fmt.Printf("  %s: inserted=%d, skipped=%d, errors=%d\n",
				sheet.Name, sheet.Inserted, sheet.Skipped, sheet.Errors)

			if len(sheet.Samples) > 0 {
				fmt.Printf("    Error samples:\n")
				for _, sample := range sheet.Samples {
					fmt.Printf("      Row %d: %s\n", sample.Row, sample.Message)
				}
			}
		}
	}
}
