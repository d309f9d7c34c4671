// internal/engine/tiers_test.go
package engine

import (
	"testing"

	"admission-workers/internal/models"

	"github.com/stretchr/testify/assert"
)

// ==========================
// Tier Classification Tests
// ==========================

func TestClassifyTier(t *testing.T) {
	tests := []struct {
		college  string
		expected string
	}{
		{"Harvard University", models.TierIvyPlus},
		{"harvard", models.TierIvyPlus},
		{"  Harvard  ", models.TierIvyPlus},
		{"MIT", models.TierIvyPlus},
		{"Massachusetts Institute of Technology", models.TierIvyPlus},
		{"University of Pennsylvania", models.TierIvyPlus},
		{"University of Michigan", models.Tier1},
		{"Georgia Tech", models.Tier1},
		{"New York University", models.Tier1},
		{"Penn State", models.Tier2}, // Never matches the UPenn entries
		{"Ohio State University", models.Tier2},
		{"University of Texas at Austin", models.Tier2},
		{"Michigan State University", models.Tier3},
		{"Arizona State University", models.Tier3},
		{"Some Unknown College", models.Tier4},
		{"", models.Tier4},
	}

	for _, tt := range tests {
		t.Run(tt.college, func(t *testing.T) {
			assert.Equal(t, tt.expected, ClassifyTier(tt.college))
		})
	}
}

func TestTierColor(t *testing.T) {
	assert.Equal(t, "purple", TierColor(models.TierIvyPlus))
	assert.Equal(t, "blue", TierColor(models.Tier1))
	assert.Equal(t, "teal", TierColor(models.Tier2))
	assert.Equal(t, "orange", TierColor(models.Tier3))
	assert.Equal(t, "gray", TierColor(models.Tier4))
	assert.Equal(t, "gray", TierColor("tier99"))
}

// ==========================
// Public University Tests
// ==========================

func TestIsPublicUniversity(t *testing.T) {
	tests := []struct {
		college  string
		expected bool
	}{
		{"Michigan State University", true},
		{"University of Michigan", true},
		{"Georgia Tech", true},
		{"Texas Tech University", true},
		{"Harvard University", false},
		{"Williams College", false},
		{"Caltech", false},             // No space before "tech"
		{"Statesboro College", false},  // "state" embedded in a word
		{"University of Chicago", true}, // Known false positive of the name heuristic
	}

	for _, tt := range tests {
		t.Run(tt.college, func(t *testing.T) {
			assert.Equal(t, tt.expected, IsPublicUniversity(tt.college))
		})
	}
}

// ==========================
// Special Fit Tests
// ==========================

func TestSpecialFitBonus(t *testing.T) {
	tests := []struct {
		name     string
		college  string
		features Features
		expected int
	}{
		{
			name:     "STEM school, STEM major, GPA gate",
			college:  "MIT",
			features: Features{Major: "Computer Science", GPA: 3.95},
			expected: 5,
		},
		{
			name:     "STEM school, STEM major, SAT gate",
			college:  "Georgia Tech",
			features: Features{Major: "Electrical Engineering", GPA: 3.5, SAT: 1520},
			expected: 5,
		},
		{
			name:     "STEM school, STEM major, no gate cleared",
			college:  "MIT",
			features: Features{Major: "Computer Science", GPA: 3.5, SAT: 1300},
			expected: 0,
		},
		{
			name:     "STEM school, unrelated major",
			college:  "MIT",
			features: Features{Major: "History", GPA: 4.0},
			expected: 0,
		},
		{
			name:     "Liberal arts fit",
			college:  "Williams College",
			features: Features{Major: "English Literature", GPA: 3.85},
			expected: 5,
		},
		{
			name:     "Liberal arts fit below GPA gate",
			college:  "Williams College",
			features: Features{Major: "English Literature", GPA: 3.7},
			expected: 0,
		},
		{
			name:     "Business fit needs leadership",
			college:  "Wharton",
			features: Features{Major: "Finance", GPA: 3.8, HasLeadershipRoles: true},
			expected: 5,
		},
		{
			name:     "Business fit without leadership",
			college:  "Wharton",
			features: Features{Major: "Finance", GPA: 3.8},
			expected: 0,
		},
		{
			name:     "No affinity list match",
			college:  "Some Unknown College",
			features: Features{Major: "Computer Science", GPA: 4.0},
			expected: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, SpecialFitBonus(tt.college, tt.features))
		})
	}
}

// ==========================
// Directory Tests
// ==========================

func TestCollegeDirectory(t *testing.T) {
	docs := CollegeDirectory()

	assert.NotEmpty(t, docs)

	byName := make(map[string]models.CollegeDoc, len(docs))
	for _, doc := range docs {
		byName[doc.Name] = doc
	}

	assert.Equal(t, models.TierIvyPlus, byName["harvard"].Tier)
	assert.Equal(t, models.Tier1, byName["university of michigan"].Tier)
	assert.Equal(t, models.Tier2, byName["penn state"].Tier)
	assert.Equal(t, models.Tier3, byName["michigan state"].Tier)

	assert.True(t, byName["university of michigan"].Public)
	assert.True(t, byName["penn state"].Public)
	assert.False(t, byName["harvard"].Public)

	// The directory only carries the curated lists; everything else is tier4
	// by omission.
	for _, doc := range docs {
		assert.NotEqual(t, models.Tier4, doc.Tier)
	}
}
