// Command cadastral-lookup performs one property-address lookup and prints
// the result as a single JSON object on stdout, so calling processes can
// parse the output unconditionally.
package main

import (
	"context"
	"encoding/json"
	"os"
	"strings"
	"time"

	"cadastralscraper/browser"
	"cadastralscraper/config"
	"cadastralscraper/extract"
	"cadastralscraper/fetcher"
	"cadastralscraper/lookup"

	"github.com/spf13/cobra"
)

func main() {
	var (
		mode    string
		timeout time.Duration
	)

	root := &cobra.Command{
		Use:           "cadastral-lookup <geocode>",
		Short:         "Look up a property's mailing address by cadastral geocode",
		SilenceUsage:  true,
		SilenceErrors: true,
		Args:          cobra.ArbitraryArgs,
		Run: func(cmd *cobra.Command, args []string) {
			if len(args) != 1 || strings.TrimSpace(args[0]) == "" {
				printResult(lookup.Result{Success: false, Error: "Geocode argument required"})
				os.Exit(1)
			}

			cfg := config.Load()

			var pageFetcher fetcher.Fetcher
			if mode == config.ModeHTTP {
				pageFetcher = fetcher.NewHTTPFetcher(cfg.BaseURL)
			} else {
				pageFetcher = fetcher.NewBrowserFetcher(browser.Default, cfg.BaseURL, timeout)
			}
			defer pageFetcher.Close()

			service := lookup.NewService(pageFetcher, extract.DefaultChain(cfg.EnableKnownFallback))

			// A failed lookup still prints a well-formed result
			result, _ := service.Lookup(context.Background(), args[0])
			printResult(result)
		},
	}

	root.Flags().StringVar(&mode, "mode", config.ModeBrowser, "fetch mode: browser or http")
	root.Flags().DurationVar(&timeout, "timeout", 45*time.Second, "navigation timeout for the browser fetch")

	if err := root.Execute(); err != nil {
		printResult(lookup.Result{Success: false, Error: err.Error()})
		os.Exit(1)
	}
}

func printResult(result lookup.Result) {
	// Stdout carries exactly one JSON object, never a stack trace
	json.NewEncoder(os.Stdout).Encode(result)
}
