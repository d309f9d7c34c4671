// internal/workers/college/categorize-colleges/models.go
package categorizecolleges

import "admission-workers/internal/models"

type Input struct {
	Analysis *models.AnalysisResult `json:"analysis"`
}

type Output struct {
	Buckets     []models.CollegeBucket `json:"buckets"`
	ReachCount  int                    `json:"reachCount"`
	TargetCount int                    `json:"targetCount"`
	LikelyCount int                    `json:"likelyCount"`
	Balanced    bool                   `json:"balanced"`
}
