// internal/engine/engine.go

// Package engine implements the deterministic admission analysis pipeline:
// feature extraction, category grading, tier classification, chance
// estimation, plan generation, and narrative composition. Everything here is
// a pure function of the profile plus an injected current year; the package
// does no I/O and never fails on well-formed input.
package engine

import (
	"strings"
	"time"

	"admission-workers/internal/common/logger"
	"admission-workers/internal/models"
)

type Engine struct {
	currentYear int
	logger      logger.Logger
}

type Options struct {
	// CurrentYear drives award recency. Zero means time.Now().Year().
	CurrentYear int
	Logger      logger.Logger
}

func New(opts Options) *Engine {
	year := opts.CurrentYear
	if year == 0 {
		year = time.Now().Year()
	}
	log := opts.Logger
	if log == nil {
		log = logger.NewNoOpLogger()
	}
	return &Engine{currentYear: year, logger: log}
}

// Analyze runs the full pipeline for one submission. College estimates come
// back in input order; blank college entries are skipped.
func (e *Engine) Analyze(profile models.AdmissionProfile) models.AnalysisResult {
	f := ExtractFeatures(profile, e.currentYear)

	academic := GradeAcademic(f)
	extracurricular := GradeExtracurricular(f)
	awards := GradeAwards(f)
	overall, overallValue := OverallGrade(academic.Grade, extracurricular.Grade, awards.Grade)

	grades := models.GradeSet{
		Academic:        academic.Grade,
		Extracurricular: extracurricular.Grade,
		Awards:          awards.Grade,
		Overall:         overall,
	}

	var estimates []models.AdmissionEstimate
	for _, college := range profile.Colleges {
		if strings.TrimSpace(college) == "" {
			continue
		}
		estimates = append(estimates, EstimateChance(college, f, grades))
	}

	assessment, sections := ComposeNarrative(f, grades)

	e.logger.Info("analysis computed", map[string]interface{}{
		"overallGrade": overall,
		"colleges":     len(estimates),
		"major":        f.Major,
	})

	return models.AnalysisResult{
		OverallAssessment: assessment,
		Sections:          sections,
		CollegeChances:    estimates,
		ImprovementPlan:   BuildPlan(f),
		Grades:            grades,
		Breakdown: models.ScoreBreakdown{
			AcademicPoints:        academic.Points,
			ExtracurricularPoints: extracurricular.Points,
			AwardsPoints:          awards.Points,
			OverallValue:          overallValue,
		},
	}
}

// CurrentYear exposes the injected year so callers can build prompts or
// reports that cite the same recency window.
func (e *Engine) CurrentYear() int {
	return e.currentYear
}
