// internal/engine/tiers.go
package engine

import (
	"strings"

	"admission-workers/internal/models"
)

// Tier name lists, matched as lowercased substrings in declaration order.
// Entries are deliberately loose ("university of pennsylvania" not "penn" so
// Penn State never lands in the Ivy bucket); first matching tier wins.
var ivyPlusNames = []string{
	"harvard", "yale", "princeton", "columbia", "university of pennsylvania",
	"upenn", "dartmouth", "brown", "cornell", "stanford",
	"massachusetts institute of technology", "mit", "caltech",
	"california institute of technology", "university of chicago", "duke",
	"johns hopkins",
}

var tier1Names = []string{
	"northwestern", "vanderbilt", "rice", "notre dame",
	"washington university", "emory", "georgetown", "carnegie mellon",
	"berkeley", "ucla", "university of michigan", "university of virginia",
	"north carolina at chapel hill", "new york university", "nyu", "tufts",
	"wake forest", "university of southern california", "georgia tech",
	"georgia institute of technology",
}

var tier2Names = []string{
	"boston college", "boston university", "brandeis", "case western",
	"northeastern", "tulane", "university of florida", "university of georgia",
	"ohio state", "penn state", "university of texas", "texas a&m",
	"university of wisconsin", "university of illinois",
	"university of washington", "purdue", "university of maryland", "rutgers",
	"university of miami", "villanova",
}

var tier3Names = []string{
	"michigan state", "indiana university", "university of arizona",
	"arizona state", "university of colorado", "university of oregon",
	"university of iowa", "university of alabama", "university of tennessee",
	"university of south carolina", "temple", "drexel", "baylor", "clemson",
	"auburn", "university of utah", "university of kansas",
}

var tierColors = map[string]string{
	models.TierIvyPlus: "purple",
	models.Tier1:       "blue",
	models.Tier2:       "teal",
	models.Tier3:       "orange",
	models.Tier4:       "gray",
}

// ClassifyTier buckets a free-text college name. Unmatched names are tier4.
func ClassifyTier(college string) string {
	name := strings.ToLower(strings.TrimSpace(college))
	switch {
	case matchesAny(name, ivyPlusNames):
		return models.TierIvyPlus
	case matchesAny(name, tier1Names):
		return models.Tier1
	case matchesAny(name, tier2Names):
		return models.Tier2
	case matchesAny(name, tier3Names):
		return models.Tier3
	default:
		return models.Tier4
	}
}

// TierColor returns the display color for a tier, gray if unknown.
func TierColor(tier string) string {
	if c, ok := tierColors[tier]; ok {
		return c
	}
	return tierColors[models.Tier4]
}

// IsPublicUniversity is the residency-adjustment heuristic. Pure name
// matching, with the known false positives that implies (University of
// Chicago reads as public).
func IsPublicUniversity(college string) bool {
	name := strings.ToLower(college)
	return strings.Contains(name, " state ") ||
		strings.Contains(name, "university of ") ||
		strings.Contains(name, " tech")
}

func matchesAny(name string, list []string) bool {
	for _, entry := range list {
		if strings.Contains(name, entry) {
			return true
		}
	}
	return false
}

// Special-fit school lists. A fit only pays out when the major matches the
// paired keyword set and the excellence gate passes; first fit wins and at
// most one +5 applies per college.
var stemSchools = []string{
	"mit", "massachusetts institute of technology", "caltech",
	"california institute of technology", "georgia tech",
	"georgia institute of technology", "carnegie mellon", "stanford",
	"harvey mudd", "rose-hulman", "rensselaer", "worcester polytechnic",
	"virginia tech", "purdue",
}

var liberalArtsSchools = []string{
	"williams", "amherst", "swarthmore", "pomona", "wellesley", "bowdoin",
	"middlebury", "carleton", "davidson", "haverford", "vassar", "colgate",
	"hamilton", "oberlin", "grinnell",
}

var businessSchools = []string{
	"wharton", "stern", "ross", "haas", "mccombs", "kelley", "babson",
	"bentley",
}

var stemMajorKeywords = []string{
	"computer", "engineer", "math", "physics", "data", "science",
}

var liberalArtsMajorKeywords = []string{
	"english", "history", "philosophy", "political", "psychology",
	"sociology", "literature", "writing",
}

var businessMajorKeywords = []string{
	"business", "finance", "economics", "marketing", "accounting",
	"entrepreneur",
}

// SpecialFitBonus returns 5 when the college/major pairing matches one of the
// affinity rules and the student clears its excellence gate, otherwise 0.
func SpecialFitBonus(college string, f Features) int {
	name := strings.ToLower(college)
	major := strings.ToLower(f.Major)

	if matchesAny(name, stemSchools) && matchesAny(major, stemMajorKeywords) &&
		(f.GPA >= 3.9 || f.SAT >= 1500 || f.ACT >= 34) {
		return 5
	}
	if matchesAny(name, liberalArtsSchools) && matchesAny(major, liberalArtsMajorKeywords) &&
		f.GPA >= 3.8 {
		return 5
	}
	if matchesAny(name, businessSchools) && matchesAny(major, businessMajorKeywords) &&
		f.GPA >= 3.7 && f.HasLeadershipRoles {
		return 5
	}
	return 0
}

// CollegeDirectory returns the built-in directory used to seed the search
// index: every list entry with its tier and public flag. List entries are
// bare substrings ("ohio state"), so they are space-padded before the
// word-boundary public checks.
func CollegeDirectory() []models.CollegeDoc {
	var docs []models.CollegeDoc
	add := func(names []string, tier string) {
		for _, n := range names {
			docs = append(docs, models.CollegeDoc{
				Name:   n,
				Tier:   tier,
				Public: IsPublicUniversity(" " + n + " "),
			})
		}
	}
	add(ivyPlusNames, models.TierIvyPlus)
	add(tier1Names, models.Tier1)
	add(tier2Names, models.Tier2)
	add(tier3Names, models.Tier3)
	return docs
}
