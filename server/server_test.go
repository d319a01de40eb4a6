package server

import (
	"bytes"
	"encoding/json"
	"energy-monitor/confs"
	"energy-monitor/db"
	"energy-monitor/entities"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

func newTestRouter(t *testing.T) (*gin.Engine, db.Database) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	database, err := db.OpenSQLite(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name()))
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}

	cfg := &confs.Config{ServiceName: "energy-monitor-test"}
	srv := NewServer(cfg, database, zap.NewNop())
	return srv.Routes(), database
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader *bytes.Buffer
	if body != "" {
		reader = bytes.NewBufferString(body)
	} else {
		reader = &bytes.Buffer{}
	}
	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func examplePayloadJSON(timestamp string) string {
	return fmt.Sprintf(`{
		"meter_id": "meter_001",
		"timestamp": "%s",
		"location": "Main",
		"voltages": {"V_RN": 230.1},
		"currents": {"I_R": 5.2},
		"power": {"P_Total": 1150.0},
		"power_factors": {"PF_Avg": 0.95},
		"frequency": 50.0
	}`, timestamp)
}

type statusEnvelope struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

func TestRootLiveness(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doJSON(t, router, http.MethodGet, "/", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "running") {
		t.Errorf("expected liveness message, got %s", w.Body.String())
	}
}

func TestIngestAndReadBack(t *testing.T) {
	router, _ := newTestRouter(t)

	ts := time.Now().UTC().Format("2006-01-02T15:04:05") + "Z"
	w := doJSON(t, router, http.MethodPost, "/api/meter-data", examplePayloadJSON(ts))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}

	var env statusEnvelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if env.Status != "success" {
		t.Fatalf("expected success envelope, got %+v", env)
	}

	w = doJSON(t, router, http.MethodGet, "/api/meter/meter_001/readings?hours=48", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}

	var result struct {
		MeterID  string                 `json:"meter_id"`
		Readings []entities.ReadingView `json:"readings"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
		t.Fatalf("bad readings body: %v", err)
	}
	if result.MeterID != "meter_001" {
		t.Errorf("expected meter_001, got %s", result.MeterID)
	}
	if len(result.Readings) != 1 {
		t.Fatalf("expected 1 reading, got %d", len(result.Readings))
	}

	view := result.Readings[0]
	if view.Voltages["V_RN"] == nil || *view.Voltages["V_RN"] != 230.1 {
		t.Errorf("expected V_RN 230.1, got %v", view.Voltages["V_RN"])
	}
	if view.Voltages["V_YN"] != nil {
		t.Errorf("expected V_YN null, got %v", *view.Voltages["V_YN"])
	}
	if view.Frequency == nil || *view.Frequency != 50.0 {
		t.Errorf("expected frequency 50.0, got %v", view.Frequency)
	}
}

func TestIngestErrorsUseSuccessClassTransport(t *testing.T) {
	router, _ := newTestRouter(t)

	// unparseable timestamp
	w := doJSON(t, router, http.MethodPost, "/api/meter-data", examplePayloadJSON("half past eight"))
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 for embedded error, got %d", w.Code)
	}
	var env statusEnvelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if env.Status != "error" || env.Message == "" {
		t.Errorf("expected error envelope with message, got %+v", env)
	}

	// malformed JSON body
	w = doJSON(t, router, http.MethodPost, "/api/meter-data", `{"meter_id": `)
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 for embedded error, got %d", w.Code)
	}
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if env.Status != "error" {
		t.Errorf("expected error envelope, got %+v", env)
	}
}

func TestReadingsRejectNonIntegerHours(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doJSON(t, router, http.MethodGet, "/api/meter/meter_001/readings?hours=soon", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200 for embedded error, got %d", w.Code)
	}
	var env statusEnvelope
	if err := json.Unmarshal(w.Body.Bytes(), &env); err != nil {
		t.Fatalf("bad response body: %v", err)
	}
	if env.Status != "error" || !strings.Contains(env.Message, "hours") {
		t.Errorf("expected hours validation error, got %+v", env)
	}

	// absent hours still defaults to the 24h window
	w = doJSON(t, router, http.MethodGet, "/api/meter/meter_001/readings", "")
	if w.Code != http.StatusOK || strings.Contains(w.Body.String(), `"error"`) {
		t.Errorf("expected default window to succeed, got %d: %s", w.Code, w.Body.String())
	}
}

func TestMeterListingReflectsStatus(t *testing.T) {
	router, database := newTestRouter(t)

	readList := func() map[string]entities.MeterOverview {
		w := doJSON(t, router, http.MethodGet, "/api/meters", "")
		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var result struct {
			Meters []entities.MeterOverview `json:"meters"`
		}
		if err := json.Unmarshal(w.Body.Bytes(), &result); err != nil {
			t.Fatalf("bad meters body: %v", err)
		}
		byID := make(map[string]entities.MeterOverview)
		for _, m := range result.Meters {
			byID[m.MeterID] = m
		}
		return byID
	}

	before := readList()
	m, ok := before["meter_001"]
	if !ok {
		t.Fatal("expected seeded meter_001 in listing")
	}
	if m.Online || m.LastUpdate != nil {
		t.Errorf("expected offline with nil last_update before any ingest, got %+v", m)
	}

	ts := time.Now().UTC().Format("2006-01-02T15:04:05") + "Z"
	if w := doJSON(t, router, http.MethodPost, "/api/meter-data", examplePayloadJSON(ts)); w.Code != http.StatusOK {
		t.Fatalf("ingest failed: %d", w.Code)
	}

	after := readList()
	m = after["meter_001"]
	if !m.Online || m.LastUpdate == nil {
		t.Errorf("expected online with last_update after ingest, got %+v", m)
	}

	// deactivated meters disappear from the listing
	if err := database.GetDB().Model(&entities.Meter{}).Where("id = ?", "meter_004").Update("is_active", false).Error; err != nil {
		t.Fatalf("failed to deactivate meter: %v", err)
	}
	if _, ok := readList()["meter_004"]; ok {
		t.Error("inactive meter must not appear in listing")
	}
}

func TestProvisionMeterEndpoint(t *testing.T) {
	router, _ := newTestRouter(t)

	w := doJSON(t, router, http.MethodPost, "/api/meters", `{"id": "meter_200", "description": "Annex panel"}`)
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}

	// duplicate id rejected
	w = doJSON(t, router, http.MethodPost, "/api/meters", `{"id": "meter_200"}`)
	if w.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for duplicate meter, got %d", w.Code)
	}
}
