// internal/models/college.go
package models

// CollegeDoc is the Elasticsearch document for the college directory index.
type CollegeDoc struct {
	Name    string   `json:"name"`
	Aliases []string `json:"aliases,omitempty"`
	Tier    string   `json:"tier"`
	Public  bool     `json:"public"`
}

// CollegeMatch is one search hit returned to the form autocomplete.
type CollegeMatch struct {
	Name   string  `json:"name"`
	Tier   string  `json:"tier"`
	Public bool    `json:"public"`
	Score  float64 `json:"score,omitempty"`
}

// College list buckets used by the report's balance summary.
const (
	BucketReach  = "reach"
	BucketTarget = "target"
	BucketLikely = "likely"
)

// CollegeBucket pairs an estimate with its balance bucket.
type CollegeBucket struct {
	College    string `json:"college"`
	Percentage int    `json:"percentage"`
	Bucket     string `json:"bucket"`
}
