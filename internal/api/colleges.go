// internal/api/colleges.go
package api

import (
	"net/http"
	"strconv"
	"strings"

	"admission-workers/internal/engine"
	"admission-workers/internal/models"
	"admission-workers/internal/workers/college/search-colleges/queries"
)

const maxSearchResults = 10

type collegeSearchResponse struct {
	Matches   []models.CollegeMatch `json:"matches"`
	TotalHits int64                 `json:"totalHits"`
	Source    string                `json:"source"`
	Took      int64                 `json:"took,omitempty"`
}

// handleSearchColleges serves autocomplete. The index answers when it can;
// anything else degrades to the in-process tier classifier, which always has
// an opinion about a name.
func (s *Server) handleSearchColleges(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.URL.Query().Get("q"))
	if query == "" {
		s.writeError(w, http.StatusBadRequest, "MISSING_QUERY", "Query parameter q is required", "")
		return
	}

	size := maxSearchResults
	if v, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && v >= 1 && v <= maxSearchResults {
		size = v
	}

	if s.es != nil {
		index := s.config.Database.Elasticsearch.Index
		if index == "" {
			index = "colleges"
		}

		result, err := queries.Execute(r.Context(), s.es, queries.CollegeQuery{
			Index: index,
			Text:  query,
			Size:  size,
		})
		if err == nil && result.TotalHits > 0 {
			matches := make([]models.CollegeMatch, 0, len(result.Docs))
			for _, doc := range result.Docs {
				matches = append(matches, models.CollegeMatch{
					Name:   doc.Source.Name,
					Tier:   doc.Source.Tier,
					Public: doc.Source.Public,
					Score:  doc.Score,
				})
			}
			s.writeJSON(w, http.StatusOK, collegeSearchResponse{
				Matches:   matches,
				TotalHits: result.TotalHits,
				Source:    "elasticsearch",
				Took:      result.Took,
			})
			return
		}
		if err != nil {
			s.logger.Warn("college search failed, using classifier", map[string]interface{}{
				"query": query,
				"error": err,
			})
		}
	}

	match := models.CollegeMatch{
		Name:   query,
		Tier:   engine.ClassifyTier(query),
		Public: engine.IsPublicUniversity(query),
	}
	s.writeJSON(w, http.StatusOK, collegeSearchResponse{
		Matches:   []models.CollegeMatch{match},
		TotalHits: 1,
		Source:    "classifier",
	})
}
