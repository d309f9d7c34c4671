// internal/workers/college/search-colleges/models.go
package searchcolleges

import "admission-workers/internal/models"

type Input struct {
	Query string `json:"query"`
	Size  int    `json:"size"`
}

type Output struct {
	Matches   []models.CollegeMatch `json:"matches"`
	TotalHits int64                 `json:"totalHits"`
	Source    string                `json:"source"`
	Took      int64                 `json:"took"`
}
