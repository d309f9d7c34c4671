// internal/workers/college/search-colleges/queries/builders.go
package queries

import (
	"encoding/json"
	"errors"
	"strings"

	"github.com/elastic/go-elasticsearch/v8/esapi"
)

var (
	ErrMissingIndex = errors.New("index name is required")
	ErrMissingText  = errors.New("query text is required")
)

// CollegeQuery describes one autocomplete request.
type CollegeQuery struct {
	Index string
	Text  string
	Size  int
}

// BuildQuery builds the autocomplete search request. Full matches on name
// and aliases score highest; the phrase-prefix clause catches partial typing.
func BuildQuery(cq CollegeQuery) (*esapi.SearchRequest, error) {
	if cq.Index == "" {
		return nil, ErrMissingIndex
	}
	if strings.TrimSpace(cq.Text) == "" {
		return nil, ErrMissingText
	}

	size := cq.Size
	if size < 1 {
		size = 10
	}

	queryBody := map[string]interface{}{
		"query": map[string]interface{}{
			"bool": map[string]interface{}{
				"should": []interface{}{
					map[string]interface{}{
						"multi_match": map[string]interface{}{
							"query":  cq.Text,
							"fields": []string{"name^3", "aliases^2"},
							"type":   "best_fields",
						},
					},
					map[string]interface{}{
						"match_phrase_prefix": map[string]interface{}{
							"name": cq.Text,
						},
					},
				},
				"minimum_should_match": 1,
			},
		},
	}

	body, _ := json.Marshal(queryBody)

	req := esapi.SearchRequest{
		Index: []string{cq.Index},
		Body:  strings.NewReader(string(body)),
		Size:  &size,
	}

	return &req, nil
}
