// cmd/admissionctl/seed.go
package main

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/spf13/cobra"

	"admission-workers/internal/common/config"
	"admission-workers/internal/common/database"
	"admission-workers/internal/engine"
)

//nolint:gochecknoglobals // Cobra boilerplate
var seedIndex string

//nolint:gochecknoglobals // Cobra boilerplate
var seedCollegesCmd = &cobra.Command{
	Use:   "seed-colleges",
	Short: "Index the built-in college directory into Elasticsearch",
	Long: `Index every college the tier classifier knows about into the search
index, so search-colleges answers from Elasticsearch instead of the
classifier fallback.

Safe to re-run: documents are keyed by name and overwritten in place.`,
	RunE: runSeedColleges,
}

//nolint:gochecknoinits // Cobra boilerplate
func init() {
	rootCmd.AddCommand(seedCollegesCmd)
	seedCollegesCmd.Flags().StringVar(&seedIndex, "index", "", "Target index (default: from config)")
}

func runSeedColleges(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	index := seedIndex
	if index == "" {
		index = cfg.Database.Elasticsearch.Index
	}

	esClient, err := database.NewElasticsearch(cfg.Database.Elasticsearch)
	if err != nil {
		return fmt.Errorf("connect elasticsearch: %w", err)
	}
	if err := esClient.Ping(); err != nil {
		return fmt.Errorf("ping elasticsearch: %w", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	docs := engine.CollegeDirectory()
	for _, doc := range docs {
		body, err := json.Marshal(doc)
		if err != nil {
			return fmt.Errorf("encode %q: %w", doc.Name, err)
		}

		req := esapi.IndexRequest{
			Index:      index,
			DocumentID: collegeDocID(doc.Name),
			Body:       bytes.NewReader(body),
		}
		res, err := req.Do(ctx, esClient.Client)
		if err != nil {
			return fmt.Errorf("index %q: %w", doc.Name, err)
		}
		if res.IsError() {
			msg := res.String()
			res.Body.Close()
			return fmt.Errorf("index %q: %s", doc.Name, msg)
		}
		res.Body.Close()

		if verbose {
			fmt.Printf("  indexed %s (%s)\n", doc.Name, doc.Tier)
		}
	}

	// Make the documents searchable right away
	refresh := esapi.IndicesRefreshRequest{Index: []string{index}}
	if res, err := refresh.Do(ctx, esClient.Client); err == nil {
		res.Body.Close()
	}

	fmt.Printf("✓ Seeded %d colleges into index %q\n", len(docs), index)
	return nil
}

// collegeDocID turns a college name into a stable document ID.
func collegeDocID(name string) string {
	id := strings.ToLower(strings.TrimSpace(name))
	id = strings.Map(func(r rune) rune {
		if (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9') {
			return r
		}
		return '-'
	}, id)
	for strings.Contains(id, "--") {
		id = strings.ReplaceAll(id, "--", "-")
	}
	return strings.Trim(id, "-")
}
