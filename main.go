package main

import (
	"context"
	"fmt"
	"log"
	"os"

	"github.com/spf13/cobra"

	"feed-reporter/pkg/config"
	"feed-reporter/pkg/content"
	"feed-reporter/pkg/discord"
	"feed-reporter/pkg/feed"
	"feed-reporter/pkg/llm"
	"feed-reporter/pkg/output"
	"feed-reporter/pkg/pipeline"
	"feed-reporter/pkg/ratelimit"
	"feed-reporter/pkg/scheduler"
)

func main() {
	var outputDir string
	var noContent bool
	var reuseNarrative bool

	rootCmd := &cobra.Command{
		Use:   "feed-reporter <feed-list>",
		Short: "Process RSS feeds and generate a narrative digest",
		Long: "feed-reporter ingests a list of RSS feeds, filters recent articles, " +
			"fetches missing article bodies, summarizes each article and " +
			"synthesizes a single narrative digest.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return run(args[0], outputDir, !noContent, reuseNarrative)
		},
		SilenceUsage: true,
	}

	rootCmd.Flags().StringVarP(&outputDir, "output", "o", "output", "output directory for results")
	rootCmd.Flags().BoolVar(&noContent, "no-content", false, "skip fetching full article content")
	rootCmd.Flags().BoolVar(&reuseNarrative, "reuse-narrative", false, "deliver the most recent saved narrative instead of regenerating when one is fresh enough")

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func run(feedListPath, outputDir string, fetchContent, reuseNarrative bool) error {
	cfg := config.Load()
	ctx := context.Background()

	if reuseNarrative {
		if narrative := output.LatestNarrative(outputDir, config.MaxEntryAge); narrative != "" {
			log.Printf("Reusing narrative from the latest run")
			fmt.Println(narrative)
			return deliverNarrative(ctx, cfg, narrative)
		}
		log.Printf("No fresh narrative found, regenerating")
	}

	log.Printf("Processing feeds from: %s", feedListPath)

	limiter := ratelimit.New(config.MinRequestDelay)
	contentFetcher := content.NewFetcher(limiter)

	var summarizer pipeline.Summarizer
	var narrator pipeline.Narrator
	if fetchContent {
		// Fail fast on a missing credential before any work is done
		client, err := llm.NewClient(cfg)
		if err != nil {
			return err
		}
		summarizer = client
		narrator = client
	}

	processor := pipeline.New(
		feed.NewFetcher(),
		feed.NewParser(),
		scheduler.New(contentFetcher),
		summarizer,
		narrator,
	)

	entries, narrative, err := processor.Run(ctx, feedListPath, fetchContent)
	if err != nil {
		return err
	}

	runDir, err := output.SaveResults(outputDir, entries, narrative)
	if err != nil {
		return err
	}
	fmt.Printf("Results saved to %s\n", runDir)

	if narrative != "" {
		return deliverNarrative(ctx, cfg, narrative)
	}
	return nil
}

// deliverNarrative posts the narrative to Discord when a webhook is
// configured. Delivery failures are logged, not fatal, since the narrative
// is already persisted.
func deliverNarrative(ctx context.Context, cfg *config.Config, narrative string) error {
	if cfg.WebhookURL == "" {
		return nil
	}
	if err := discord.NewWebhook(cfg.WebhookURL).Post(ctx, narrative); err != nil {
		log.Printf("Error posting narrative to Discord: %v", err)
	}
	return nil
}
