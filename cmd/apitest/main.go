// Command apitest smoke-tests a running Igbo calendar API.
//
// Usage:
//
//	go run ./cmd/apitest -url http://localhost:8080 -key $API_KEY
//
// Engine endpoints are checked against a fixed year starting 2024-02-20.
// With -key, a temporary year is registered, exercised and removed again.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"
)

// smokeYearStart anchors every engine check.
const smokeYearStart = "2024-02-20"

// =============================================================================
// Response Types - Match the actual API response structure
// =============================================================================

type APIResponse struct {
	Success bool            `json:"success"`
	Data    json.RawMessage `json:"data,omitempty"`
	Error   *ErrorInfo      `json:"error,omitempty"`
}

type ErrorInfo struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

// ConvertResponse is the response for /convert/{date} and /today
type ConvertResponse struct {
	GregorianDate string  `json:"gregorian_date"`
	YearStart     string  `json:"year_start"`
	YearLabel     string  `json:"year_label"`
	DayOfYear     int     `json:"day_of_year"`
	Month         *int    `json:"month"`
	DayInMonth    *int    `json:"day_in_month"`
	WeekdayName   string  `json:"weekday_name"`
	LunarStage    *string `json:"lunar_stage"`
	IsFestival    bool    `json:"is_festival"`
}

// GridResponse is the part of a year grid the smoke test inspects
type GridResponse struct {
	YearLabel string `json:"year_label"`
	Months    []struct {
		Meta struct {
			Index int `json:"index"`
		} `json:"meta"`
		Rows [][4]*struct {
			DayInMonth int `json:"day_in_month"`
		} `json:"rows"`
	} `json:"months"`
}

// HealthResponse is the response for /health
type HealthResponse struct {
	Status string `json:"status"`
}

// =============================================================================
// Test Runner
// =============================================================================

type TestRunner struct {
	baseURL      string
	apiKey       string
	client       *http.Client
	out          io.Writer
	successCount int
	errorCount   int
	errors       []string
}

func NewTestRunner(baseURL, apiKey string, out io.Writer) *TestRunner {
	return &TestRunner{
		baseURL: strings.TrimSuffix(baseURL, "/"),
		apiKey:  apiKey,
		client: &http.Client{
			Timeout: 10 * time.Second,
		},
		out: out,
	}
}

func (tr *TestRunner) Run() {
	fmt.Fprintln(tr.out, "==============================================")
	fmt.Fprintln(tr.out, "Igbo Calendar API Smoke Test")
	fmt.Fprintln(tr.out, "==============================================")
	fmt.Fprintf(tr.out, "Base URL: %s\n", tr.baseURL)

	tr.testHealth()
	tr.testTables()
	tr.testConversions()
	tr.testGrid()
	tr.testEdgeCases()
	if tr.apiKey != "" {
		tr.testRegistry()
	}

	tr.printSummary()
}

// =============================================================================
// Test Groups
// =============================================================================

func (tr *TestRunner) testHealth() {
	tr.printSection("Health Check")

	var health HealthResponse
	if err := tr.getData("/health", &health); err != nil {
		tr.recordError("Health", err.Error())
		return
	}

	if health.Status == "healthy" {
		tr.recordSuccess("Health check passed")
	} else {
		tr.recordError("Health", fmt.Sprintf("Unexpected status: %s", health.Status))
	}
}

func (tr *TestRunner) testTables() {
	tr.printSection("Weekdays and Months")

	var weekdays []struct {
		Name string `json:"name"`
	}
	if err := tr.getData("/api/v1/weekdays", &weekdays); err != nil {
		tr.recordError("Weekdays", err.Error())
	} else if len(weekdays) != 4 || weekdays[0].Name != "Eke" {
		tr.recordError("Weekdays", fmt.Sprintf("Unexpected market week: %v", weekdays))
	} else {
		tr.recordSuccess("Market week has four days starting with Eke")
	}

	var months []struct {
		DisplayName string `json:"display_name"`
	}
	if err := tr.getData("/api/v1/months", &months); err != nil {
		tr.recordError("Months", err.Error())
	} else if len(months) != 13 {
		tr.recordError("Months", fmt.Sprintf("Expected 13 months, got %d", len(months)))
	} else {
		tr.recordSuccess(fmt.Sprintf("13 months, first is %s", months[0].DisplayName))
	}
}

func (tr *TestRunner) testConversions() {
	tr.printSection("Conversions")

	testCases := []struct {
		date        string
		dayOfYear   int
		weekday     string
		festival    bool
		description string
	}{
		{"2024-02-20", 1, "Eke", false, "First day of the year"},
		{"2024-03-04", 14, "Orie", false, "Full moon of month 1"},
		{"2024-03-19", 29, "Orie", false, "First day of month 2"},
		{"2025-02-17", 364, "Nkwọ", false, "Last day of month 13"},
		{"2025-02-18", 365, "Eke", true, "First festival day"},
	}

	for _, tc := range testCases {
		var data ConvertResponse
		path := fmt.Sprintf("/api/v1/convert/%s?year_start=%s", tc.date, smokeYearStart)
		if err := tr.getData(path, &data); err != nil {
			tr.recordError(tc.date, err.Error())
			continue
		}

		if data.DayOfYear == tc.dayOfYear && data.WeekdayName == tc.weekday && data.IsFestival == tc.festival {
			tr.recordSuccess(fmt.Sprintf("%s: day %d, %s (%s)", tc.date, data.DayOfYear, data.WeekdayName, tc.description))
		} else {
			tr.recordError(tc.date, fmt.Sprintf("Expected day %d %s festival=%t, got day %d %s festival=%t",
				tc.dayOfYear, tc.weekday, tc.festival, data.DayOfYear, data.WeekdayName, data.IsFestival))
		}
	}
}

func (tr *TestRunner) testGrid() {
	tr.printSection("Year Grid")

	var grid GridResponse
	if err := tr.getData("/api/v1/grid?year_start="+smokeYearStart+"&label=smoke", &grid); err != nil {
		tr.recordError("Grid", err.Error())
		return
	}

	if len(grid.Months) != 13 {
		tr.recordError("Grid", fmt.Sprintf("Expected 13 months, got %d", len(grid.Months)))
		return
	}

	for _, m := range grid.Months {
		cells := 0
		for _, row := range m.Rows {
			for _, cell := range row {
				if cell != nil {
					cells++
				}
			}
		}
		if cells != 28 {
			tr.recordError("Grid", fmt.Sprintf("Month %d has %d days", m.Meta.Index, cells))
			return
		}
	}
	tr.recordSuccess("Every month has 28 days in 4-column rows")
}

func (tr *TestRunner) testEdgeCases() {
	tr.printSection("Edge Cases")

	tr.expectError("/api/v1/convert/invalid?year_start="+smokeYearStart, http.StatusBadRequest, "BAD_REQUEST", "Invalid date format rejected")
	tr.expectError("/api/v1/convert/2024-02-19?year_start="+smokeYearStart, http.StatusNotFound, "BEFORE_YEAR_START", "Date before year start rejected")
	tr.expectError("/api/v1/grid", http.StatusBadRequest, "BAD_REQUEST", "Grid without year_start rejected")
	tr.expectError("/api/v1/lunar/full", http.StatusBadRequest, "BAD_REQUEST", "Non-numeric lunar day rejected")
}

func (tr *TestRunner) testRegistry() {
	tr.printSection("Year Registry")

	label := fmt.Sprintf("smoke-%d", time.Now().Unix())
	body := map[string]string{"label": label, "start_date": "1900-01-01", "notes": "apitest"}

	status, err := tr.send(http.MethodPost, "/api/v1/admin/years", body)
	if err != nil || status != http.StatusCreated {
		tr.recordError("Create year", fmt.Sprintf("HTTP %d %v", status, err))
		return
	}
	tr.recordSuccess("Registered " + label)

	var data ConvertResponse
	if err := tr.getData("/api/v1/convert/1900-01-10", &data); err != nil {
		tr.recordError("Registry conversion", err.Error())
	} else if data.YearLabel != label || data.DayOfYear != 10 {
		tr.recordError("Registry conversion", fmt.Sprintf("Got %s day %d", data.YearLabel, data.DayOfYear))
	} else {
		tr.recordSuccess("Conversion resolved the registered year")
	}

	resp, err := tr.getRaw("/api/v1/years/" + label + "/calendar.ics")
	if err != nil {
		tr.recordError("ICS export", err.Error())
	} else {
		resp.Body.Close()
		if resp.StatusCode == http.StatusOK && strings.HasPrefix(resp.Header.Get("Content-Type"), "text/calendar") {
			tr.recordSuccess("ICS export served")
		} else {
			tr.recordError("ICS export", fmt.Sprintf("HTTP %d %s", resp.StatusCode, resp.Header.Get("Content-Type")))
		}
	}

	status, err = tr.send(http.MethodDelete, "/api/v1/admin/years/"+label, nil)
	if err != nil || status != http.StatusOK {
		tr.recordError("Delete year", fmt.Sprintf("HTTP %d %v", status, err))
		return
	}
	tr.recordSuccess("Removed " + label)
}

// =============================================================================
// Helpers
// =============================================================================

// getData fetches path and decodes the data field of a successful response.
func (tr *TestRunner) getData(path string, target interface{}) error {
	resp, err := tr.getRaw(path)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	apiResp, err := decodeResponse(resp.Body)
	if err != nil {
		return err
	}

	if !apiResp.Success {
		errMsg := "unknown error"
		if apiResp.Error != nil {
			errMsg = apiResp.Error.Message
		}
		return fmt.Errorf("API error (HTTP %d): %s", resp.StatusCode, errMsg)
	}

	return json.Unmarshal(apiResp.Data, target)
}

func (tr *TestRunner) getRaw(path string) (*http.Response, error) {
	return tr.client.Get(tr.baseURL + path)
}

// send issues an authenticated request and returns the status code.
func (tr *TestRunner) send(method, path string, body interface{}) (int, error) {
	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return 0, err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequest(method, tr.baseURL+path, reader)
	if err != nil {
		return 0, err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("X-API-Key", tr.apiKey)

	resp, err := tr.client.Do(req)
	if err != nil {
		return 0, err
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	return resp.StatusCode, nil
}

// expectError checks that path fails with the given status and code.
func (tr *TestRunner) expectError(path string, status int, code, msg string) {
	resp, err := tr.getRaw(path)
	if err != nil {
		tr.recordError(msg, err.Error())
		return
	}
	defer resp.Body.Close()

	apiResp, err := decodeResponse(resp.Body)
	if err != nil {
		tr.recordError(msg, err.Error())
		return
	}

	if resp.StatusCode == status && apiResp.Error != nil && apiResp.Error.Code == code {
		tr.recordSuccess(msg)
	} else {
		tr.recordError(msg, fmt.Sprintf("Expected HTTP %d %s, got HTTP %d", status, code, resp.StatusCode))
	}
}

func decodeResponse(r io.Reader) (*APIResponse, error) {
	var apiResp APIResponse
	if err := json.NewDecoder(r).Decode(&apiResp); err != nil {
		return nil, fmt.Errorf("decode error: %w", err)
	}
	return &apiResp, nil
}

func (tr *TestRunner) printSection(name string) {
	fmt.Fprintln(tr.out)
	fmt.Fprintf(tr.out, "--- %s ---\n", name)
	fmt.Fprintln(tr.out)
}

func (tr *TestRunner) recordSuccess(msg string) {
	tr.successCount++
	fmt.Fprintf(tr.out, "  ✓ %s\n", msg)
}

func (tr *TestRunner) recordError(context, msg string) {
	tr.errorCount++
	errStr := fmt.Sprintf("%s: %s", context, msg)
	tr.errors = append(tr.errors, errStr)
	fmt.Fprintf(tr.out, "  ✗ %s\n", errStr)
}

func (tr *TestRunner) printSummary() {
	fmt.Fprintln(tr.out)
	fmt.Fprintln(tr.out, "==============================================")
	fmt.Fprintln(tr.out, "Summary")
	fmt.Fprintln(tr.out, "==============================================")
	fmt.Fprintf(tr.out, "  Passed: %d\n", tr.successCount)
	fmt.Fprintf(tr.out, "  Failed: %d\n", tr.errorCount)
	fmt.Fprintln(tr.out)

	if tr.errorCount > 0 {
		fmt.Fprintln(tr.out, "Failures:")
		for _, err := range tr.errors {
			fmt.Fprintf(tr.out, "  • %s\n", err)
		}
		fmt.Fprintln(tr.out)
		fmt.Fprintf(tr.out, "Tests completed with %d failure(s)\n", tr.errorCount)
		return
	}

	fmt.Fprintln(tr.out, "All tests passed! ✓")
}

// =============================================================================
// Main
// =============================================================================

func main() {
	baseURL := flag.String("url", "http://localhost:8080", "Base URL of the API")
	apiKey := flag.String("key", os.Getenv("API_KEY"), "API key; enables registry checks")
	flag.Parse()

	// Check if server is reachable
	client := &http.Client{Timeout: 2 * time.Second}
	resp, err := client.Get(*baseURL + "/health")
	if err != nil {
		fmt.Printf("Error: Cannot connect to %s\n", *baseURL)
		fmt.Println("Make sure the API server is running.")
		os.Exit(1)
	}
	resp.Body.Close()

	runner := NewTestRunner(*baseURL, *apiKey, os.Stdout)
	runner.Run()

	// Exit with error code if tests failed
	if runner.errorCount > 0 {
		os.Exit(1)
	}
}
