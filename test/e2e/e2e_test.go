// test/e2e/e2e_test.go
package e2e

import (
	"bytes"
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"testing"
	"time"

	"github.com/camunda/zeebe/clients/go/v8/pkg/zbc"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/esapi"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"admission-workers/internal/common/config"
	"admission-workers/internal/common/database"
	"admission-workers/internal/common/logger"
	"admission-workers/internal/models"

	// Analysis workers
	analyzeprofile "admission-workers/internal/workers/analysis/analyze-profile"
	createanalysisrecord "admission-workers/internal/workers/analysis/create-analysis-record"
	enrichanalysis "admission-workers/internal/workers/analysis/enrich-analysis"
	fetchanalysis "admission-workers/internal/workers/analysis/fetch-analysis"
	validateprofile "admission-workers/internal/workers/analysis/validate-profile"

	// College workers
	categorizecolleges "admission-workers/internal/workers/college/categorize-colleges"
	parsecollegelist "admission-workers/internal/workers/college/parse-college-list"
	searchcolleges "admission-workers/internal/workers/college/search-colleges"

	// Report workers
	composereport "admission-workers/internal/workers/communication/compose-report"
	sendreport "admission-workers/internal/workers/communication/send-report"
)

var (
	zeebeClient zbc.Client
	zapLog      *zap.Logger
)

func TestMain(m *testing.M) {
	var err error

	// Initialize Zeebe client with real connection
	zeebeClient, err = zbc.NewClient(&zbc.ClientConfig{
		GatewayAddress:         "localhost:26500",
		UsePlaintextConnection: true,
	})
	if err != nil {
		panic(fmt.Sprintf("❌ Failed to connect to Zeebe: %v", err))
	}

	// Initialize logger
	zapLog, _ = zap.NewProduction()

	// Run tests
	code := m.Run()

	// Cleanup
	zeebeClient.Close()
	os.Exit(code)
}

func TestFullE2E(t *testing.T) {
	_, cancel := context.WithTimeout(context.Background(), 10*time.Minute)
	defer cancel()

	// Load config
	cfg, err := config.Load()
	require.NoError(t, err)
	require.NotNil(t, cfg)

	t.Log("🚀 Starting FULL E2E Test with real services...")

	// 1. Check all external services are available
	assertAllServicesConnectivity(t, cfg)

	// 2. Create DB tables if needed and seed test data
	createDatabaseTables(t, cfg)
	seedCollegeIndex(t, cfg)

	// 3. Deploy all BPMN files
	deployAllBPMN(t, cfg, zapLog)

	// 4. Test all 10 workers with real execution
	testAllWorkers(t, cfg, zapLog)

	t.Log("✅ ALL TESTS PASSED — Full E2E workflow successful!")
}

func assertAllServicesConnectivity(t *testing.T, cfg *config.Config) {
	t.Log("🔍 Checking service connectivity...")

	// 🔧 FORCE LOCALHOST FOR E2E TESTS
	cfg.Database.Postgres.Host = "localhost"
	cfg.Database.Redis.Address = "localhost:6379"
	cfg.Database.Elasticsearch.URL = "http://localhost:9200"

	// --- PostgreSQL ---
	db, err := database.NewPostgres(cfg.Database.Postgres)
	require.NoError(t, err, "❌ PostgreSQL connection failed")
	assert.NoError(t, db.Ping(context.Background()), "❌ PostgreSQL ping failed")
	db.Close()
	t.Log("✅ PostgreSQL connected")

	// --- Redis ---
	rdb, err := database.NewRedis(cfg.Database.Redis)
	require.NoError(t, err, "❌ Redis client creation failed")
	assert.NoError(t, rdb.Ping(context.Background()), "❌ Redis ping failed")
	t.Log("✅ Redis connected")

	// --- Elasticsearch ---
	esURL := cfg.Database.Elasticsearch.GetURL()
	t.Logf("🔗 Elasticsearch URL: %s", esURL)

	es, err := elasticsearch.NewClient(elasticsearch.Config{
		Addresses: []string{esURL},
	})
	require.NoError(t, err, "❌ Elasticsearch client creation failed")

	res, err := es.Info()
	require.NoError(t, err, "❌ Elasticsearch info request failed")
	assert.False(t, res.IsError(), "❌ Elasticsearch returned error")
	res.Body.Close()
	t.Log("✅ Elasticsearch connected")

	// --- Zeebe ---
	_, err = zeebeClient.NewTopologyCommand().Send(context.Background())
	assert.NoError(t, err, "❌ Zeebe topology request failed")
	t.Log("✅ Zeebe connected")
}

// ==========================
// 2. Database Tables Setup + Test Data
// ==========================
func createDatabaseTables(t *testing.T, cfg *config.Config) {
	t.Log("🔧 Creating database tables and inserting test data...")

	dbClient, err := database.NewPostgres(cfg.Database.Postgres)
	require.NoError(t, err)
	defer dbClient.Close()

	db := dbClient.GetDB()

	// Create test tables if they don't exist
	queries := []string{
		`CREATE TABLE IF NOT EXISTS analyses (
			id VARCHAR(255) PRIMARY KEY,
			profile JSONB,
			result JSONB NOT NULL,
			simulated BOOLEAN DEFAULT false,
			overall_grade VARCHAR(10),
			created_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)`,
	}

	for _, query := range queries {
		_, err := db.ExecContext(context.Background(), query)
		if err != nil {
			t.Logf("Warning: Failed to create table: %v", err)
		}
	}

	// Insert test data
	testData := []string{
		`INSERT INTO analyses (id, profile, result, simulated, overall_grade)
		 VALUES ('e2e-analysis-001', '{}',
		         '{"overallAssessment":"Seeded for e2e","grades":{"overall":"B+"}}',
		         false, 'B+')
		 ON CONFLICT (id) DO NOTHING`,
	}

	for _, query := range testData {
		_, err := db.ExecContext(context.Background(), query)
		if err != nil {
			t.Logf("Warning: Failed to insert test data: %v", err)
		}
	}

	t.Log("✅ Database tables created/verified with test data")
}

// seedCollegeIndex puts a handful of known colleges into the search index so
// search-colleges can answer from Elasticsearch instead of the classifier.
func seedCollegeIndex(t *testing.T, cfg *config.Config) {
	t.Log("🔧 Seeding college search index...")

	esURL := cfg.Database.Elasticsearch.GetURL()
	es, err := elasticsearch.NewClient(elasticsearch.Config{Addresses: []string{esURL}})
	require.NoError(t, err)

	docs := []models.CollegeDoc{
		{Name: "Harvard University", Tier: models.TierIvyPlus},
		{Name: "University of Michigan", Tier: models.Tier1, Public: true},
		{Name: "Ohio State University", Tier: models.Tier2, Public: true},
	}

	for _, doc := range docs {
		body, err := json.Marshal(doc)
		if err != nil {
			t.Logf("Warning: Failed to encode college doc: %v", err)
			continue
		}
		docID := strings.ToLower(strings.ReplaceAll(doc.Name, " ", "-"))
		req := esapi.IndexRequest{
			Index:      cfg.Database.Elasticsearch.Index,
			DocumentID: docID,
			Body:       bytes.NewReader(body),
		}
		res, err := req.Do(context.Background(), es)
		if err != nil {
			t.Logf("Warning: Failed to index %s: %v", doc.Name, err)
			continue
		}
		res.Body.Close()
	}

	refresh := esapi.IndicesRefreshRequest{Index: []string{cfg.Database.Elasticsearch.Index}}
	if res, err := refresh.Do(context.Background(), es); err == nil {
		res.Body.Close()
	}

	t.Log("✅ College index seeded")
}

// ==========================
// 3. Deploy All BPMN Files
// ==========================
func deployAllBPMN(t *testing.T, _ *config.Config, _ *zap.Logger) {
	t.Log("🏗️ Deploying BPMN files...")

	client := zeebeClient

	// Try multiple possible paths for BPMN directory
	possiblePaths := []string{
		"bpmn",
		"../bpmn",
		"../../bpmn",
		"./bpmn",
	}

	var bpmnDir string
	var files []os.DirEntry
	var err error

	for _, path := range possiblePaths {
		if _, err := os.Stat(path); err == nil {
			files, err = os.ReadDir(path)
			if err == nil {
				bpmnDir = path
				t.Logf("📁 Found BPMN directory: %s", bpmnDir)
				break
			}
		}
	}

	if bpmnDir == "" {
		t.Log("⚠️ BPMN directory not found in any expected location, skipping deployment")
		return
	}

	require.NoError(t, err, "❌ Cannot read BPMN directory")

	bpmnCount := 0
	for _, f := range files {
		if f.IsDir() {
			continue
		}
		if !strings.HasSuffix(strings.ToLower(f.Name()), ".bpmn") {
			continue
		}

		path := fmt.Sprintf("%s/%s", bpmnDir, f.Name())
		t.Logf("📄 Deploying BPMN: %s", path)

		_, err := client.NewDeployResourceCommand().AddResourceFile(path).Send(context.Background())
		if err != nil {
			t.Logf("⚠️ Failed to deploy BPMN %s: %v", f.Name(), err)
		} else {
			t.Logf("✅ Deployed: %s", f.Name())
			bpmnCount++
		}
	}

	if bpmnCount == 0 {
		t.Log("ℹ️ No BPMN files were successfully deployed")
	} else {
		t.Logf("✅ Successfully deployed %d BPMN files", bpmnCount)
	}
}

// ==========================
// 4. Test All 10 Workers
// ==========================
func testAllWorkers(t *testing.T, cfg *config.Config, log *zap.Logger) {
	t.Log("🧪 Testing all 10 workers with real execution...")

	// Get clients for all services
	dbClient, err := database.NewPostgres(cfg.Database.Postgres)
	require.NoError(t, err)
	defer dbClient.Close()

	db := dbClient.GetDB()

	esURL := cfg.Database.Elasticsearch.GetURL()
	es, err := elasticsearch.NewClient(elasticsearch.Config{Addresses: []string{esURL}})
	require.NoError(t, err)

	rdbClient, err := database.NewRedis(cfg.Database.Redis)
	require.NoError(t, err)
	defer rdbClient.Close()

	rdb := rdbClient.GetClient()

	// Worker test cases, in pipeline order
	testCases := []struct {
		name   string
		testFn func(*testing.T, *config.Config, *zap.Logger, *sql.DB, *elasticsearch.Client, *redis.Client)
	}{
		{"validate-profile", testValidateProfile},
		{"parse-college-list", testParseCollegeList},
		{"search-colleges", testSearchColleges},
		{"analyze-profile", testAnalyzeProfile},
		{"enrich-analysis", testEnrichAnalysis},
		{"categorize-colleges", testCategorizeColleges},
		{"create-analysis-record", testCreateAnalysisRecord},
		{"fetch-analysis", testFetchAnalysis},
		{"compose-report", testComposeReport},
		{"send-report", testSendReport},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			tc.testFn(t, cfg, log, db, es, rdb)
		})
	}
}

// sampleAnalysis is the shared engine-output fixture: one college per bucket
// so categorization and report rendering exercise every branch.
func sampleAnalysis() models.AnalysisResult {
	return models.AnalysisResult{
		OverallAssessment: "A strong profile anchored by academics.",
		Sections: []models.AssessmentSection{
			{
				Title:     "Academic Performance",
				Grade:     models.GradeAMinus,
				Content:   "GPA and rigor are both competitive.",
				Strengths: []string{"High GPA", "Rigorous courseload"},
			},
		},
		CollegeChances: []models.AdmissionEstimate{
			{College: "Massachusetts Institute of Technology", Tier: models.TierIvyPlus, TierColor: models.ColorRed, Percentage: 8, Chance: models.ChanceLow, Color: models.ColorRed, Feedback: "Extremely selective."},
			{College: "University of Michigan", Tier: models.Tier1, TierColor: models.ColorYellow, Percentage: 45, Chance: models.ChanceMedium, Color: models.ColorYellow, Feedback: "Competitive but realistic."},
			{College: "Ohio State University", Tier: models.Tier2, TierColor: models.ColorGreen, Percentage: 78, Chance: models.ChanceHigh, Color: models.ColorGreen, Feedback: "Profile exceeds the typical admit."},
		},
		ImprovementPlan: []string{
			"Take on a leadership role in an existing activity.",
			"Target a national-level competition in your field.",
		},
		Grades: models.GradeSet{
			Academic:        models.GradeAMinus,
			Extracurricular: models.GradeB,
			Awards:          models.GradeBPlus,
			Overall:         models.GradeBPlus,
		},
		Breakdown: models.ScoreBreakdown{
			AcademicPoints:        9.0,
			ExtracurricularPoints: 7.0,
			AwardsPoints:          7.5,
			OverallValue:          8.1,
		},
	}
}

// ==========================
// Worker Test Functions
// ==========================

func testValidateProfile(t *testing.T, cfg *config.Config, log *zap.Logger, db *sql.DB, es *elasticsearch.Client, rdb *redis.Client) {
	handler := validateprofile.NewHandler(&validateprofile.Config{
		Timeout: 30 * time.Second,
	}, logger.NewZapAdapter(log))

	input := &validateprofile.Input{
		Profile: map[string]interface{}{
			"academics": map[string]interface{}{
				"gpa":         "3.8",
				"sat":         "1450",
				"courseRigor": "high",
			},
			"colleges": []interface{}{"Harvard University", "Ohio State University"},
			"major":    "Computer Science",
		},
	}
	output, err := handler.Execute(context.Background(), input)
	assert.NoError(t, err)
	assert.True(t, output.IsValid)
	assert.Len(t, output.NormalizedProfile.Colleges, 2)
}

func testParseCollegeList(t *testing.T, cfg *config.Config, log *zap.Logger, db *sql.DB, es *elasticsearch.Client, rdb *redis.Client) {
	handler := parsecollegelist.NewHandler(&parsecollegelist.Config{
		Timeout: 30 * time.Second,
	}, logger.NewZapAdapter(log))

	input := &parsecollegelist.Input{
		Colleges: "Harvard University\nUniversity of Michigan, Ohio State University",
	}
	output, err := handler.Execute(context.Background(), input)
	assert.NoError(t, err)
	assert.Equal(t, 3, output.CollegeCount)
}

func testSearchColleges(t *testing.T, cfg *config.Config, log *zap.Logger, db *sql.DB, es *elasticsearch.Client, rdb *redis.Client) {
	handler := searchcolleges.NewHandler(&searchcolleges.Config{
		IndexName:  cfg.Database.Elasticsearch.Index,
		MaxResults: 10,
		Timeout:    10 * time.Second,
	}, es, logger.NewZapAdapter(log))

	input := &searchcolleges.Input{Query: "Harvard"}
	output, err := handler.Execute(context.Background(), input)
	assert.NoError(t, err)
	assert.NotEmpty(t, output.Matches)
	t.Logf("search source: %s (%d hits)", output.Source, output.TotalHits)
}

func testAnalyzeProfile(t *testing.T, cfg *config.Config, log *zap.Logger, db *sql.DB, es *elasticsearch.Client, rdb *redis.Client) {
	handler, err := analyzeprofile.NewHandler(analyzeprofile.HandlerOptions{
		AppConfig: cfg,
		Redis:     rdb,
		Logger:    logger.NewZapAdapter(log),
	})
	require.NoError(t, err)

	input := &analyzeprofile.Input{
		Profile: &models.AdmissionProfile{
			Academics: models.AcademicRecord{
				GPA:         "3.8",
				SAT:         "1450",
				APCourses:   "5",
				CourseRigor: models.RigorHigh,
			},
			Activities: []models.Activity{
				{Name: "Debate Team", Role: "Captain", YearsInvolved: "3", HoursPerWeek: "8"},
			},
			Honors: []models.Honor{
				{Title: "State Debate Champion", Level: models.LevelState, Year: "2025"},
			},
			Colleges: []string{"Harvard University", "University of Michigan", "Ohio State University"},
			Major:    "Political Science",
		},
	}
	output, err := handler.Execute(context.Background(), input)
	assert.NoError(t, err)
	assert.NotEmpty(t, output.AnalysisID)
	assert.Len(t, output.Analysis.CollegeChances, 3)
	assert.NotEmpty(t, output.Analysis.Grades.Overall)
}

func testEnrichAnalysis(t *testing.T, cfg *config.Config, log *zap.Logger, db *sql.DB, es *elasticsearch.Client, rdb *redis.Client) {
	// No provider configured: the deterministic result comes back marked
	// as simulated without any network calls.
	handler := enrichanalysis.NewHandler(&enrichanalysis.Config{
		Timeout:    5 * time.Second,
		MaxRetries: 1,
	}, logger.NewZapAdapter(log))

	analysis := sampleAnalysis()
	input := &enrichanalysis.Input{Analysis: &analysis}
	output, err := handler.Execute(context.Background(), input)
	assert.NoError(t, err)
	assert.True(t, output.Simulated)
	assert.NotEmpty(t, output.Analysis.SimulationNote)
}

func testCategorizeColleges(t *testing.T, cfg *config.Config, log *zap.Logger, db *sql.DB, es *elasticsearch.Client, rdb *redis.Client) {
	handler := categorizecolleges.NewHandler(&categorizecolleges.Config{
		Timeout: 10 * time.Second,
	}, logger.NewZapAdapter(log))

	analysis := sampleAnalysis()
	input := &categorizecolleges.Input{Analysis: &analysis}
	output, err := handler.Execute(context.Background(), input)
	assert.NoError(t, err)
	assert.Equal(t, 1, output.ReachCount)
	assert.Equal(t, 1, output.TargetCount)
	assert.Equal(t, 1, output.LikelyCount)
	assert.True(t, output.Balanced)
}

func testCreateAnalysisRecord(t *testing.T, cfg *config.Config, log *zap.Logger, db *sql.DB, es *elasticsearch.Client, rdb *redis.Client) {
	handler := createanalysisrecord.NewHandler(&createanalysisrecord.Config{
		Timeout: 30 * time.Second,
	}, db, logger.NewZapAdapter(log))

	analysis := sampleAnalysis()
	uniqueID := fmt.Sprintf("e2e-%d", time.Now().UnixNano())
	input := &createanalysisrecord.Input{
		AnalysisID: uniqueID,
		Analysis:   &analysis,
	}

	output, err := handler.Execute(context.Background(), input)
	assert.NoError(t, err, "Should store analysis record successfully")
	assert.Equal(t, uniqueID, output.AnalysisID)
	assert.Equal(t, "stored", output.AnalysisStatus)
}

func testFetchAnalysis(t *testing.T, cfg *config.Config, log *zap.Logger, db *sql.DB, es *elasticsearch.Client, rdb *redis.Client) {
	handler := fetchanalysis.NewHandler(&fetchanalysis.Config{
		CacheTTL: 60 * time.Minute,
		Timeout:  30 * time.Second,
	}, db, rdb, logger.NewZapAdapter(log))

	input := &fetchanalysis.Input{AnalysisID: "e2e-analysis-001"}
	output, err := handler.Execute(context.Background(), input)
	assert.NoError(t, err)
	assert.Equal(t, "e2e-analysis-001", output.AnalysisID)
	assert.NotEmpty(t, output.Source)
	t.Logf("fetched from: %s", output.Source)
}

func testComposeReport(t *testing.T, cfg *config.Config, log *zap.Logger, db *sql.DB, es *elasticsearch.Client, rdb *redis.Client) {
	handler := composereport.NewHandler(&composereport.Config{
		SubjectPrefix: "Your College Admission Analysis",
		Timeout:       30 * time.Second,
	}, logger.NewZapAdapter(log))

	analysis := sampleAnalysis()
	input := &composereport.Input{
		RecipientName: "E2E Student",
		Analysis:      &analysis,
	}
	output, err := handler.Execute(context.Background(), input)
	assert.NoError(t, err)
	assert.Contains(t, output.Subject, "Your College Admission Analysis")
	assert.NotEmpty(t, output.TextBody)
	assert.NotEmpty(t, output.HTMLBody)
}

func testSendReport(t *testing.T, cfg *config.Config, log *zap.Logger, db *sql.DB, es *elasticsearch.Client, rdb *redis.Client) {
	handler, err := sendreport.NewHandler(&sendreport.Config{
		EmailEnabled: false,
		SMSEnabled:   false,
	}, logger.NewZapAdapter(log))
	require.NoError(t, err)

	input := &sendreport.Input{
		To:       "e2e@example.com",
		Subject:  "Your College Admission Analysis",
		TextBody: "Sample body",
	}
	output, err := handler.Execute(context.Background(), input)
	assert.NoError(t, err)
	assert.Equal(t, sendreport.StatusDisabled, output.Status)
}

// ==========================
// Benchmark Tests
// ==========================
func BenchmarkHandler_ValidateProfile(b *testing.B) {
	handler := validateprofile.NewHandler(&validateprofile.Config{
		Timeout: 30 * time.Second,
	}, logger.NewStructured("info", "json"))

	input := &validateprofile.Input{
		Profile: map[string]interface{}{
			"academics": map[string]interface{}{
				"gpa":         "3.8",
				"sat":         "1450",
				"courseRigor": "high",
			},
			"colleges": []interface{}{"Harvard University", "Ohio State University"},
			"major":    "Computer Science",
		},
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		handler.Execute(context.Background(), input)
	}
}

func BenchmarkHandler_CategorizeColleges(b *testing.B) {
	handler := categorizecolleges.NewHandler(&categorizecolleges.Config{
		Timeout: 10 * time.Second,
	}, logger.NewStructured("info", "json"))

	analysis := sampleAnalysis()
	input := &categorizecolleges.Input{Analysis: &analysis}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		handler.Execute(context.Background(), input)
	}
}

func BenchmarkHandler_ComposeReport(b *testing.B) {
	handler := composereport.NewHandler(&composereport.Config{
		SubjectPrefix: "Your College Admission Analysis",
		Timeout:       30 * time.Second,
	}, logger.NewStructured("info", "json"))

	analysis := sampleAnalysis()
	input := &composereport.Input{
		RecipientName: "Benchmark Student",
		Analysis:      &analysis,
	}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		handler.Execute(context.Background(), input)
	}
}

func BenchmarkHandler_SearchColleges(b *testing.B) {
	cfg, _ := config.Load()
	esURL := cfg.Database.Elasticsearch.GetURL()
	es, _ := elasticsearch.NewClient(elasticsearch.Config{Addresses: []string{esURL}})

	handler := searchcolleges.NewHandler(&searchcolleges.Config{
		IndexName:  cfg.Database.Elasticsearch.Index,
		MaxResults: 10,
		Timeout:    10 * time.Second,
	}, es, logger.NewStructured("info", "json"))

	input := &searchcolleges.Input{Query: "university"}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		handler.Execute(context.Background(), input)
	}
}

func BenchmarkHandler_FetchAnalysis(b *testing.B) {
	cfg, _ := config.Load()
	dbClient, _ := database.NewPostgres(cfg.Database.Postgres)
	defer dbClient.Close()
	db := dbClient.GetDB()

	rdbClient, _ := database.NewRedis(cfg.Database.Redis)
	defer rdbClient.Close()
	rdb := rdbClient.GetClient()

	handler := fetchanalysis.NewHandler(&fetchanalysis.Config{
		CacheTTL: 60 * time.Minute,
		Timeout:  30 * time.Second,
	}, db, rdb, logger.NewStructured("info", "json"))

	input := &fetchanalysis.Input{AnalysisID: "e2e-analysis-001"}

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		handler.Execute(context.Background(), input)
	}
}
