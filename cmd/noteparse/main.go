// Command noteparse extracts trade operations from decoded brokerage
// documents. Each input file holds the extracted text of one document;
// with the ibkr family, .csv inputs are read as trade exports instead.
//
// Usage:
//
//	noteparse --family br-nota nota-janeiro.txt nota-fevereiro.txt
//	noteparse --family ibkr activity.csv
//	noteparse --family generic --debug statement.txt
package main

import (
	"encoding/json"
	"flag"
	"log"
	"os"
	"path/filepath"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/grahamfi/noteparse/config"
	"github.com/grahamfi/noteparse/internal/domain"
	"github.com/grahamfi/noteparse/internal/parsers"
	"github.com/grahamfi/noteparse/internal/parsers/ibkr"
)

type fileResult struct {
	File   string                  `json:"file"`
	Result domain.ExtractionResult `json:"result"`
}

func main() {
	family := flag.String("family", parsers.FamilyGeneric, "parser family: "+strings.Join(parsers.Families(), ", "))
	configPath := flag.String("config", "", "path to yaml config")
	password := flag.String("password", "", "password supplied for protected documents")
	debug := flag.Bool("debug", false, "echo the raw document text in results")
	flag.Parse()

	files := flag.Args()
	if len(files) == 0 {
		log.Fatal("no input files; pass one or more extracted-text or csv files")
	}

	cfg := config.Default()
	if *configPath != "" {
		var err error
		cfg, err = config.Load(*configPath)
		if err != nil {
			log.Fatal(err)
		}
	}

	logger, err := zap.NewProduction()
	if err != nil {
		log.Fatal(err)
	}
	defer logger.Sync()

	parser, err := parsers.Get(*family, logger, cfg)
	if err != nil {
		log.Fatal(err)
	}

	results := make([]fileResult, len(files))
	var g errgroup.Group
	for i, path := range files {
		i, path := i, path
		g.Go(func() error {
			res, err := parseFile(parser, logger, cfg, *family, path, *password, *debug)
			if err != nil {
				return err
			}
			results[i] = fileResult{File: path, Result: res}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		log.Fatal(err)
	}

	out, err := json.MarshalIndent(results, "", "  ")
	if err != nil {
		log.Fatal(err)
	}
	os.Stdout.Write(append(out, '\n'))
}

func parseFile(p parsers.Parser, logger *zap.Logger, cfg config.Config, family, path, password string, debug bool) (domain.ExtractionResult, error) {
	if family == parsers.FamilyIBKR && strings.EqualFold(filepath.Ext(path), ".csv") {
		f, err := os.Open(path)
		if err != nil {
			return domain.ExtractionResult{}, err
		}
		defer f.Close()
		return ibkr.New(logger, cfg).ParseCSV(f), nil
	}

	text, err := os.ReadFile(path)
	if err != nil {
		return domain.ExtractionResult{}, err
	}
	return p.Parse(parsers.Request{
		Document: domain.Document{Text: string(text)},
		Password: password,
		Debug:    debug,
	}), nil
}
