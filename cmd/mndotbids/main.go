package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"mndotbids/internal/abstract"
	"mndotbids/internal/catalog"
	"mndotbids/internal/config"
	"mndotbids/internal/pipeline"
	"mndotbids/internal/scrape"
	"mndotbids/internal/stats"
	"mndotbids/internal/storage"
	"mndotbids/internal/util"
)

func main() {
	cfg, err := config.Load()
	must(err)

	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	db, err := storage.Open(cfg.DBPath)
	must(err)
	defer db.Close()

	cmd := os.Args[1]
	switch cmd {
	case "items:load":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		specYear := fs.Int("spec-year", 0, "2018|2020")
		csvPath := fs.String("csv", "", "item list csv (defaults per spec year)")
		_ = fs.Parse(os.Args[2:])
		path := *csvPath
		if path == "" {
			switch *specYear {
			case 2018:
				path = cfg.ItemList2018
			case 2020:
				path = cfg.ItemList2020
			}
		}
		if *specYear == 0 || path == "" {
			must(fmt.Errorf("--spec-year is required (2018 or 2020)"))
		}
		items, err := catalog.LoadItemList(path)
		must(err)
		must(db.InsertItems(*specYear, items))
		fmt.Printf("loaded %d items into spec year %d\n", len(items), *specYear)
	case "ids:scrape":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		year := fs.Int("year", 0, "letting year")
		_ = fs.Parse(os.Args[2:])
		if *year == 0 {
			must(fmt.Errorf("--year is required"))
		}
		client := scrape.NewClient(cfg)
		ids, err := client.ContractIDs(context.Background(), *year)
		must(err)
		inserted, err := db.InsertAbstractIDs(*year, ids)
		must(err)
		fmt.Printf("scraped %d abstract ids for %d, %d new\n", len(ids), *year, inserted)
	case "abstracts:process":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		limit := fs.Int("limit", 100, "max abstracts per run")
		_ = fs.Parse(os.Args[2:])
		classifier, err := makeClassifier(db)
		must(err)
		svc := pipeline.NewProcessingService(db, abstract.NewClient(cfg), classifier)
		result, err := svc.ProcessPending(context.Background(), *limit)
		must(err)
		fmt.Printf("processed=%d failed=%d bids=%d\n", result.Processed, result.Failed, result.Bids)
	case "abstracts:run":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		contractID := fs.Int("contractId", 0, "contract id")
		_ = fs.Parse(os.Args[2:])
		if *contractID == 0 {
			must(fmt.Errorf("--contractId is required"))
		}
		classifier, err := makeClassifier(db)
		must(err)
		svc := pipeline.NewProcessingService(db, abstract.NewClient(cfg), classifier)
		bids, err := svc.ProcessOne(context.Background(), *contractID)
		must(err)
		fmt.Printf("contract %d processed: %d bids\n", *contractID, bids)
	case "export:weighted-avg":
		fs := flag.NewFlagSet(cmd, flag.ExitOnError)
		district := fs.String("district", "", "filter by district")
		county := fs.String("county", "", "filter by county")
		specYear := fs.Int("spec-year", 2018, "item list vintage for the report rows")
		out := fs.String("out", "", "output path (.csv default)")
		xlsx := fs.Bool("xlsx", false, "also write an xlsx rendition")
		_ = fs.Parse(os.Args[2:])
		if *district != "" && *county != "" {
			must(fmt.Errorf("--district and --county are mutually exclusive"))
		}

		filter := storage.BidFilter{
			District: util.NormalizeDistrict(*district),
			County:   util.NormalizeCounty(*county),
		}
		rows, err := db.GetBidJoinRows(filter)
		must(err)
		items, err := db.ListItems(*specYear)
		must(err)
		report := stats.BuildReport(items, rows, cfg.Years)

		outputPath := *out
		if outputPath == "" {
			outputPath = filepath.Join(cfg.OutputDir, "weighted_average_all.csv")
		}
		must(report.ExportCSV(outputPath))
		fmt.Printf("exported %d items to %s\n", len(items), outputPath)
		if *xlsx {
			xlsxPath := strings.TrimSuffix(outputPath, filepath.Ext(outputPath)) + ".xlsx"
			must(report.ExportXLSX(xlsxPath))
			fmt.Printf("exported xlsx to %s\n", xlsxPath)
		}
	default:
		usage()
		os.Exit(1)
	}
}

func makeClassifier(db *storage.DB) (*catalog.Classifier, error) {
	ids2018, err := db.ListItemIDs(2018)
	if err != nil {
		return nil, err
	}
	ids2020, err := db.ListItemIDs(2020)
	if err != nil {
		return nil, err
	}
	return catalog.NewClassifier(2018, ids2018, 2020, ids2020), nil
}

func usage() {
	fmt.Println("usage: mndotbids <command>")
	fmt.Println("commands:")
	fmt.Println("  items:load --spec-year=2018|2020 [--csv=path]")
	fmt.Println("  ids:scrape --year=YYYY")
	fmt.Println("  abstracts:process [--limit=100]")
	fmt.Println("  abstracts:run --contractId=200131")
	fmt.Println("  export:weighted-avg [--district=D | --county=C] [--spec-year=2018] [--out=path] [--xlsx]")
}

func must(err error) {
	if err == nil {
		return
	}
	fmt.Fprintf(os.Stderr, "error: %v\n", err)
	os.Exit(1)
}
