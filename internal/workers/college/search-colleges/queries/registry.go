// internal/workers/college/search-colleges/queries/registry.go
package queries

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/elastic/go-elasticsearch/v8"

	"admission-workers/internal/models"
)

// ScoredDoc pairs an index document with its relevance score.
type ScoredDoc struct {
	Source models.CollegeDoc
	Score  float64
}

type SearchResult struct {
	Docs      []ScoredDoc
	TotalHits int64
	MaxScore  float64
	Took      int64
}

// Execute runs the autocomplete query and decodes the hits.
func Execute(ctx context.Context, esClient *elasticsearch.Client, cq CollegeQuery) (*SearchResult, error) {
	req, err := BuildQuery(cq)
	if err != nil {
		return nil, err
	}

	start := time.Now()
	res, err := req.Do(ctx, esClient)
	if err != nil {
		return nil, err
	}
	defer res.Body.Close()

	if res.IsError() {
		return nil, fmt.Errorf("search query failed: %s", res.String())
	}

	var r struct {
		Hits struct {
			Total struct {
				Value int64 `json:"value"`
			} `json:"total"`
			MaxScore float64 `json:"max_score"`
			Hits     []struct {
				Score  float64           `json:"_score"`
				Source models.CollegeDoc `json:"_source"`
			} `json:"hits"`
		} `json:"hits"`
	}
	if err := json.NewDecoder(res.Body).Decode(&r); err != nil {
		return nil, err
	}

	docs := make([]ScoredDoc, 0, len(r.Hits.Hits))
	for _, hit := range r.Hits.Hits {
		docs = append(docs, ScoredDoc{Source: hit.Source, Score: hit.Score})
	}

	return &SearchResult{
		Docs:      docs,
		TotalHits: r.Hits.Total.Value,
		MaxScore:  r.Hits.MaxScore,
		Took:      time.Since(start).Milliseconds(),
	}, nil
}
