// internal/workers/college/parse-college-list/models.go
package parsecollegelist

type Input struct {
	// Colleges accepts the raw textarea string or an already-split array.
	Colleges interface{} `json:"colleges"`
}

type Output struct {
	Colleges     []string `json:"colleges"`
	CollegeCount int      `json:"collegeCount"`
}
