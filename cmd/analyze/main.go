// Command analyze runs the sentiment pipeline over a local file and prints
// the result as JSON. It talks to the same model endpoint as the web service
// and is mainly useful for batch jobs and pipeline debugging.
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"sentimeter/internal/config"
	"sentimeter/internal/infrastructure"
	"sentimeter/internal/pipeline"
	"sentimeter/internal/sentiment"
	"sentimeter/internal/translate"
)

func main() {
	var (
		inPath      = flag.String("in", "", "path to the CSV/TSV/XLSX file to analyze (required)")
		outPath     = flag.String("out", "", "write the JSON result to this file instead of stdout")
		doTranslate = flag.Bool("translate", false, "translate non-English rows before classification")
		doValidate  = flag.Bool("validate", true, "compare predictions against a ground-truth column when present")
	)
	flag.Parse()

	if *inPath == "" {
		flag.Usage()
		os.Exit(2)
	}

	if err := run(*inPath, *outPath, *doTranslate, *doValidate); err != nil {
		fmt.Fprintf(os.Stderr, "analyze: %v\n", err)
		os.Exit(1)
	}
}

func run(inPath, outPath string, doTranslate, doValidate bool) error {
	ctx := context.Background()

	cfg, err := config.Load()
	if err != nil {
		return err
	}

	logger, err := infrastructure.InitializeLogger(cfg.Logging)
	if err != nil {
		return err
	}
	defer infrastructure.CloseLogFile()

	data, err := os.ReadFile(inPath)
	if err != nil {
		return fmt.Errorf("failed to read input file: %w", err)
	}

	model := sentiment.NewRemoteModel(cfg.Model.Endpoint, cfg.Model.APIToken, cfg.Model.Timeout)
	classifier := sentiment.NewClassifier(model, logger)

	var capability translate.Capability
	if doTranslate && cfg.Translate.APIKey != "" {
		translator, err := translate.NewGoogleTranslator(ctx, cfg.Translate.APIKey)
		if err != nil {
			return fmt.Errorf("failed to initialize translator: %w", err)
		}
		capability = translator
	}
	adapter := translate.NewAdapter(capability, logger)

	analyzer := pipeline.NewAnalyzer(classifier, adapter, logger)

	result, err := analyzer.Analyze(ctx, pipeline.Request{
		Filename:  filepath.Base(inPath),
		Data:      data,
		Translate: doTranslate,
		Validate:  doValidate,
	})
	if err != nil {
		return err
	}

	encoded, err := json.MarshalIndent(result, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode result: %w", err)
	}

	if outPath != "" {
		return os.WriteFile(outPath, append(encoded, '\n'), 0o644)
	}

	fmt.Println(string(encoded))
	return nil
}
