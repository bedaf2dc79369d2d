// Command mailblast sends one message to every address in a recipient file.
//
// Configuration comes from the environment (and an optional .env file);
// flags override the file paths and batch size:
//
//	mailblast -recipients email_list.txt -message message.md -attachment brochure.pdf
//
// With -check, nothing is sent: the files are loaded and the relay and
// bucket are contacted, and the result is printed.
//
// The exit code is 1 when the run could not start or was interrupted, and 0
// otherwise, even if some recipients failed.
package main

import (
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/dmitrymomot/mailblast/internal/app"
	"github.com/dmitrymomot/mailblast/internal/config"
	"github.com/dmitrymomot/mailblast/pkg/logger"
)

func main() {
	os.Exit(run())
}

func run() int {
	var (
		envFile    = flag.String("env", "", "path to an env file (default .env)")
		recipients = flag.String("recipients", "", "recipient list file, one address per line")
		message    = flag.String("message", "", "markdown message file with Subject frontmatter")
		attachment = flag.String("attachment", "", "attachment path or s3://bucket/key")
		reportPath = flag.String("report", "", "where to write the JSON report")
		batchSize  = flag.Int("batch-size", 0, "recipients delivered concurrently per batch")
		dryRun     = flag.Bool("dry-run", false, "log messages instead of sending them")
		check      = flag.Bool("check", false, "verify configuration, files, relay and storage, then exit")
	)
	flag.Parse()

	var files []string
	if *envFile != "" {
		files = append(files, *envFile)
	}
	cfg, err := config.Load(files...)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	if *recipients != "" {
		cfg.RecipientsFile = *recipients
	}
	if *message != "" {
		cfg.MessageFile = *message
	}
	if *attachment != "" {
		cfg.Attachment = *attachment
	}
	if *reportPath != "" {
		cfg.ReportPath = *reportPath
	}
	if *batchSize > 0 {
		cfg.BatchSize = *batchSize
	}
	if *dryRun {
		cfg.DryRun = true
	}

	if err := cfg.Validate(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		return 1
	}

	// Progress goes to stdout, structured logs to stderr.
	log, flush := logger.NewWithSentry(cfg.Sentry, os.Stderr, logger.ParseLevel(cfg.LogLevel), logger.RunIDExtractor)
	defer flush()

	a := app.New(cfg, app.WithLogger(log))
	if *check {
		resp, err := a.Check()
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			return 1
		}
		a.PrintCheck(resp)
		if !resp.Healthy() {
			return 1
		}
		return 0
	}

	_, err = a.Run()
	switch {
	case errors.Is(err, app.ErrSetup):
		log.Error("mailblast could not start", slog.Any("error", err))
		fmt.Fprintln(os.Stderr, "Error processing email list:", err)
		return 1
	case errors.Is(err, app.ErrInterrupted):
		log.Warn("mailblast interrupted", slog.Any("error", err))
		return 1
	case err != nil:
		log.Error("mailblast failed", slog.Any("error", err))
		return 1
	}
	return 0
}
