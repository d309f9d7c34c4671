// internal/engine/grades.go
package engine

import "admission-workers/internal/models"

// CategoryScore is a grader's result: the letter plus the raw point total
// that produced it.
type CategoryScore struct {
	Grade  string
	Points float64
}

type gradeStep struct {
	Min   float64
	Grade string
}

// Per-category letter scales. Academic tops out at 10.5 points, the other two
// at 11; the awards scale sits lower because honors are the rarest input.
var academicScale = []gradeStep{
	{9.5, models.GradeAPlus}, {8.5, models.GradeA}, {7.5, models.GradeAMinus},
	{6.5, models.GradeBPlus}, {5.5, models.GradeB}, {4.5, models.GradeBMinus},
	{3.5, models.GradeCPlus}, {2.5, models.GradeC}, {1.5, models.GradeCMinus},
	{0.75, models.GradeDPlus},
}

var extracurricularScale = []gradeStep{
	{9, models.GradeAPlus}, {8, models.GradeA}, {7, models.GradeAMinus},
	{6, models.GradeBPlus}, {5, models.GradeB}, {4, models.GradeBMinus},
	{3.5, models.GradeCPlus}, {3, models.GradeC}, {2, models.GradeCMinus},
	{1, models.GradeDPlus},
}

var awardsScale = []gradeStep{
	{9, models.GradeAPlus}, {7.5, models.GradeA}, {6, models.GradeAMinus},
	{4.5, models.GradeBPlus}, {3.5, models.GradeB}, {2.5, models.GradeBMinus},
	{2, models.GradeCPlus}, {1.5, models.GradeC}, {1, models.GradeCMinus},
	{0.5, models.GradeDPlus},
}

// overallScale re-quantizes the weighted numeric average (D=1..A+=12) back to
// a letter at the midpoints between adjacent encodings.
var overallScale = []gradeStep{
	{11.5, models.GradeAPlus}, {10.5, models.GradeA}, {9.5, models.GradeAMinus},
	{8.5, models.GradeBPlus}, {7.5, models.GradeB}, {6.5, models.GradeBMinus},
	{5.5, models.GradeCPlus}, {4.5, models.GradeC}, {3.5, models.GradeCMinus},
	{2, models.GradeDPlus},
}

func gradeFromScale(points float64, scale []gradeStep) string {
	for _, step := range scale {
		if points >= step.Min {
			return step.Grade
		}
	}
	return models.GradeD
}

// gradeValues encodes letters for averaging, D=1 up to A+=12. The unused 2
// keeps D a full step below the rest of the ladder.
var gradeValues = map[string]int{
	models.GradeAPlus:  12,
	models.GradeA:      11,
	models.GradeAMinus: 10,
	models.GradeBPlus:  9,
	models.GradeB:      8,
	models.GradeBMinus: 7,
	models.GradeCPlus:  6,
	models.GradeC:      5,
	models.GradeCMinus: 4,
	models.GradeDPlus:  3,
	models.GradeD:      1,
}

// GradeValue returns the numeric encoding of a letter grade, 0 if unknown.
func GradeValue(grade string) int {
	return gradeValues[grade]
}

// GradeAcademic scores the academic record. Max 10.5 points: GPA 4, best
// test 3, AP load 2, rigor 1, weighted-GPA gap 0.5. Submitting neither SAT
// nor ACT costs a point instead of scoring zero.
func GradeAcademic(f Features) CategoryScore {
	points := 0.0

	// GPA contribution (max 4)
	if f.GPA >= 3.9 {
		points += 4
	} else if f.GPA >= 3.7 {
		points += 3.5
	} else if f.GPA >= 3.5 {
		points += 3
	} else if f.GPA >= 3.3 {
		points += 2.5
	} else if f.GPA >= 3.0 {
		points += 2
	} else if f.GPA >= 2.7 {
		points += 1.5
	} else if f.GPA >= 2.3 {
		points += 1
	} else {
		points += 0.5
	}

	// Test contribution (max 3): better of the two, never the sum
	sat := satPoints(f.SAT)
	act := actPoints(f.ACT)
	if f.SAT == 0 && f.ACT == 0 {
		points -= 1
	} else if sat >= act {
		points += sat
	} else {
		points += act
	}

	// AP/IB course load (max 2)
	if f.APCourses >= 10 {
		points += 2
	} else if f.APCourses >= 7 {
		points += 1.5
	} else if f.APCourses >= 5 {
		points += 1
	} else if f.APCourses >= 3 {
		points += 0.5
	} else if f.APCourses >= 1 {
		points += 0.25
	}

	// Course rigor (max 1)
	switch f.CourseRigor {
	case models.RigorVeryHigh:
		points += 1
	case models.RigorHigh:
		points += 0.75
	case models.RigorModerate:
		points += 0.5
	case models.RigorLow:
		points += 0.25
	}

	// Weighted-GPA gap rewards honors/AP weighting (max 0.5)
	if gap := f.WeightedGPA - f.GPA; gap > 0 {
		if gap > 0.5 {
			gap = 0.5
		}
		points += gap
	}

	return CategoryScore{Grade: gradeFromScale(points, academicScale), Points: points}
}

func satPoints(sat int) float64 {
	switch {
	case sat >= 1550:
		return 3
	case sat >= 1450:
		return 2.5
	case sat >= 1350:
		return 2
	case sat >= 1250:
		return 1.5
	case sat >= 1150:
		return 1
	case sat >= 1050:
		return 0.5
	case sat > 0:
		return 0.25
	default:
		return 0
	}
}

func actPoints(act int) float64 {
	switch {
	case act >= 35:
		return 3
	case act >= 33:
		return 2.5
	case act >= 31:
		return 2
	case act >= 29:
		return 1.5
	case act >= 27:
		return 1
	case act >= 24:
		return 0.5
	case act > 0:
		return 0.25
	default:
		return 0
	}
}

// GradeExtracurricular scores involvement. Max 11 points: count 3,
// leadership 3, long-term 2, significant time 1, major fit 2.
func GradeExtracurricular(f Features) CategoryScore {
	points := 0.0

	// Activity count (max 3)
	if f.ActivityCount >= 5 {
		points += 3
	} else if f.ActivityCount == 4 {
		points += 2.5
	} else if f.ActivityCount == 3 {
		points += 2
	} else if f.ActivityCount == 2 {
		points += 1.5
	} else if f.ActivityCount == 1 {
		points += 1
	}

	if f.HasLeadershipRoles {
		points += 3
	}
	if f.HasLongTermCommitment {
		points += 2
	}
	if f.HasSignificantTimeCommitment {
		points += 1
	}
	if f.HasMajorRelatedActivities {
		points += 2
	}

	return CategoryScore{Grade: gradeFromScale(points, extracurricularScale), Points: points}
}

// GradeAwards scores honors. Max 11 points: count 3, national 3, state 2,
// recency 1, major fit 2.
func GradeAwards(f Features) CategoryScore {
	points := 0.0

	// Honor count (max 3)
	if f.HonorCount >= 5 {
		points += 3
	} else if f.HonorCount == 4 {
		points += 2.75
	} else if f.HonorCount == 3 {
		points += 2.5
	} else if f.HonorCount == 2 {
		points += 2
	} else if f.HonorCount == 1 {
		points += 1.5
	}

	if f.HasNationalAwards {
		points += 3
	}
	if f.HasStateAwards {
		points += 2
	}
	if f.HasRecentAwards {
		points += 1
	}
	if f.HasMajorRelatedAwards {
		points += 2
	}

	return CategoryScore{Grade: gradeFromScale(points, awardsScale), Points: points}
}

// OverallGrade combines the category grades at Academic 50%, Extracurricular
// 30%, Awards 20% over their numeric encodings.
func OverallGrade(academic, extracurricular, awards string) (string, float64) {
	value := float64(GradeValue(academic))*0.5 +
		float64(GradeValue(extracurricular))*0.3 +
		float64(GradeValue(awards))*0.2
	return gradeFromScale(value, overallScale), value
}
