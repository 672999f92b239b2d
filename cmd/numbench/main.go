package main

import (
	"fmt"
	"log"
	"os"

	"github.com/goccy/go-json"
	"github.com/urfave/cli/v2"

	"github.com/arloliu/numbench/bench"
)

func main() {
	app := cli.App{
		Name:  "numbench",
		Usage: "Benchmark numeric-array compression algorithms",
		Commands: []*cli.Command{
			{
				Name:   "run",
				Usage:  "Run benchmarks for all compatible dataset/algorithm combinations",
				Action: runBenchmarks,
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:  "cache-dir",
						Value: ".benchmark_cache",
						Usage: "directory for cached benchmark results",
					},
					&cli.StringSliceFlag{
						Name:  "dataset",
						Usage: "restrict the run to the named datasets (repeatable)",
					},
					&cli.StringSliceFlag{
						Name:  "algorithm",
						Usage: "restrict the run to the named algorithms (repeatable)",
					},
					&cli.StringFlag{
						Name:  "output",
						Usage: "write the JSON report to this file instead of stdout",
					},
					&cli.BoolFlag{
						Name:  "quiet",
						Usage: "suppress progress reporting",
					},
					&cli.StringFlag{
						Name:  "remote-url",
						Usage: "base URL of a remote result store",
					},
					&cli.StringFlag{
						Name:    "remote-user",
						Usage:   "user ID for remote store uploads",
						EnvVars: []string{"NUMBENCH_REMOTE_USER"},
					},
					&cli.StringFlag{
						Name:    "remote-key",
						Usage:   "API key for remote store uploads",
						EnvVars: []string{"NUMBENCH_REMOTE_KEY"},
					},
				},
			},
			{
				Name:   "list",
				Usage:  "List registered datasets and algorithms",
				Action: listRegistries,
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatalf("fatal error: %s", err.Error())
	}
}

func runBenchmarks(ctx *cli.Context) error {
	cfg := bench.Config{
		CacheDir:   ctx.String("cache-dir"),
		Datasets:   ctx.StringSlice("dataset"),
		Algorithms: ctx.StringSlice("algorithm"),
	}
	if !ctx.Bool("quiet") {
		cfg.Output = os.Stderr
	}
	if baseURL := ctx.String("remote-url"); baseURL != "" {
		cfg.Remote = &bench.RemoteStore{
			BaseURL: baseURL,
			UserID:  ctx.String("remote-user"),
			APIKey:  ctx.String("remote-key"),
		}
	}

	report, runErr := bench.Run(cfg)

	raw, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		return err
	}
	if path := ctx.String("output"); path != "" {
		if err := os.WriteFile(path, raw, 0o644); err != nil {
			return err
		}
	} else {
		fmt.Println(string(raw))
	}

	// Individual combination failures are reported after the surviving
	// results have been written.
	return runErr
}

func listRegistries(ctx *cli.Context) error {
	fmt.Println("Datasets:")
	for _, ds := range bench.Datasets() {
		fmt.Printf("  %-16s v%-3s %v\n    %s\n", ds.Name, ds.Version, ds.Tags, ds.Description)
	}

	fmt.Println("\nAlgorithms:")
	for _, alg := range bench.Algorithms() {
		fmt.Printf("  %-20s v%-3s %v\n    %s\n", alg.Name, alg.Version, alg.Tags, alg.Description)
	}

	return nil
}
