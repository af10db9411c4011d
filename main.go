package main

import (
	"context"
	"log"
	"os"

	"github.com/fatih/color"
	"github.com/gnomegl/contribtally/internal/config"
	"github.com/gnomegl/contribtally/internal/runlog"
	"github.com/gnomegl/contribtally/internal/service"
	"github.com/urfave/cli/v2"
)

const helpTemplate = `{{.Name}} - {{.Usage}}

Usage: {{.HelpName}} [options] <repo-file>

Options:
   {{range .VisibleFlags}}{{.}}
   {{end}}`

var version = "dev"

func runApp(c *cli.Context) error {
	cfg, err := config.ParseConfig(c)
	if err != nil || cfg == nil {
		return err
	}

	rec, err := runlog.New(cfg.LogFile, cfg.Debug)
	if err != nil {
		color.Red("Could not open log file %s: %v", cfg.LogFile, err)
		rec = runlog.NewDiscard()
	}
	defer rec.Close()

	rec.Info("Starting run with provided arguments")

	orch := service.NewOrchestrator(cfg, rec)
	if err := orch.Run(context.Background()); err != nil {
		color.Red("❌ Error: %v", err)
	}

	// The run itself always exits 0; logged problems surface as an advisory.
	if rec.HadProblems() {
		color.Yellow("\nProcess completed with errors or warnings. Check %s for details.", cfg.LogFile)
		rec.Info("Process completed with errors or warnings")
	} else {
		rec.Info("Process completed")
	}

	return nil
}

func main() {
	cli.AppHelpTemplate = helpTemplate
	log.SetFlags(0)

	app := &cli.App{
		Name:      "contribtally",
		Usage:     "Tally unique human contributors across GitHub repositories",
		Version:   version,
		ArgsUsage: "<repo-file>",
		Flags: []cli.Flag{
			&cli.IntFlag{
				Name:  "days",
				Value: 90,
				Usage: "Number of days to look back for contributions (0 = no lower bound)",
			},
			&cli.StringFlag{
				Name:    "token",
				Aliases: []string{"t"},
				Usage:   "GitHub personal access token",
				EnvVars: []string{"CONTRIBTALLY_GITHUB_TOKEN"},
			},
			&cli.StringFlag{
				Name:  "api-url",
				Value: config.DefaultAPIURL,
				Usage: "GitHub API base URL",
			},
			&cli.StringFlag{
				Name:    "output",
				Aliases: []string{"o"},
				Value:   "contributors.csv",
				Usage:   "Output report path (.csv or .xlsx)",
			},
			&cli.StringFlag{
				Name:  "log-file",
				Value: "contribtally.log",
				Usage: "Log file path",
			},
			&cli.IntFlag{
				Name:    "concurrency",
				Aliases: []string{"c"},
				Usage:   "Number of repositories processed in parallel (default: number of CPUs)",
			},
			&cli.BoolFlag{
				Name:    "debug",
				Aliases: []string{"d"},
				Usage:   "Verbose console logging, disables the progress bar",
			},
		},
		Action: runApp,
		Authors: []*cli.Author{
			{Name: "gnomegl"},
		},
	}

	if err := app.Run(os.Args); err != nil {
		log.Fatal(err)
	}
}
