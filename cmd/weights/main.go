// Command weights runs the weight-lifting-exercise classification pipeline:
// it downloads the labeled and application datasets, cleans them, compares
// a decision tree, a gradient-boosted ensemble and a random forest on a
// held-out split, and writes one prediction file per application row using
// the best model refit on all labeled data.
package main

import (
	"flag"
	"log"
	"os"

	"github.com/lindakukolich/WeightsProject/pkg/config"
	"github.com/lindakukolich/WeightsProject/pkg/pipeline"
)

func main() {
	configPath := flag.String("config", "", "yaml config file (defaults are built in)")
	outDir := flag.String("out", "", "override the output directory")
	flag.Parse()

	cfg := config.Default()
	if *configPath != "" {
		var err error
		cfg, err = config.Load(*configPath)
		if err != nil {
			log.Fatal(err)
		}
	}
	if *outDir != "" {
		cfg.OutputDir = *outDir
	}

	logger := config.NewLogger(cfg.Log.Path)
	r := &pipeline.Runner{Cfg: cfg, Log: logger}
	if err := r.Run(); err != nil {
		logger.Error("run failed", "error", err)
		os.Exit(1)
	}
}
