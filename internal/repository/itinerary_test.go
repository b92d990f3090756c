package repository

import (
	"testing"
	"time"

	"github.com/surrealdb/surrealdb.go/pkg/models"

	"github.com/forgo/voyage/api/internal/model"
)

func TestSortClause(t *testing.T) {
	tests := []struct {
		sort     string
		wantCol  string
		wantDesc bool
	}{
		{"", "created_on", true},
		{"createdAt", "created_on", true},
		{"createdAt:asc", "created_on", false},
		{"createdAt:desc", "created_on", true},
		{"updatedAt", "updated_on", true},
		{"startDate:ASC", "start_date", false},
		{"endDate", "end_date", true},
		{"title:asc", "title", false},
		{"destination", "destination", true},
		// Unknown fields fall back instead of reaching the query text
		{"bogus", "created_on", true},
		{"created_on; DROP TABLE itinerary", "created_on", true},
		{"title:sideways", "title", true},
	}

	for _, tt := range tests {
		col, desc := sortClause(tt.sort)
		if col != tt.wantCol || desc != tt.wantDesc {
			t.Errorf("sortClause(%q) = (%q, %v), want (%q, %v)", tt.sort, col, desc, tt.wantCol, tt.wantDesc)
		}
	}
}

func TestListFilter(t *testing.T) {
	where, vars := listFilter(&model.ListItinerariesQuery{})
	if where != "" {
		t.Errorf("empty query should produce no WHERE clause, got %q", where)
	}
	if len(vars) != 0 {
		t.Errorf("empty query should produce no vars, got %v", vars)
	}

	where, vars = listFilter(&model.ListItinerariesQuery{OwnerID: "user:1", Destination: "Kyoto"})
	want := ` WHERE user_id = type::record($owner) AND string::contains(string::lowercase(destination), string::lowercase($destination))`
	if where != want {
		t.Errorf("filter clause mismatch:\n got %q\nwant %q", where, want)
	}
	if vars["owner"] != "user:1" || vars["destination"] != "Kyoto" {
		t.Errorf("unexpected vars: %v", vars)
	}
}

func TestActivitiesToVars(t *testing.T) {
	out := activitiesToVars([]model.Activity{
		{Time: "09:00", Description: "Museum", Location: "Louvre"},
	})
	if len(out) != 1 {
		t.Fatalf("expected 1 entry, got %d", len(out))
	}
	entry := out[0].(map[string]interface{})
	if entry["time"] != "09:00" || entry["description"] != "Museum" || entry["location"] != "Louvre" {
		t.Errorf("unexpected entry: %v", entry)
	}

	if out := activitiesToVars(nil); len(out) != 0 {
		t.Errorf("nil activities should produce empty slice, got %v", out)
	}
}

func TestParseItinerary(t *testing.T) {
	started := time.Date(2026, 7, 1, 0, 0, 0, 0, time.UTC)
	record := map[string]interface{}{
		"id":           models.RecordID{Table: "itinerary", ID: "abc"},
		"user_id":      models.RecordID{Table: "user", ID: "42"},
		"title":        "Summer in Kyoto",
		"destination":  "Kyoto",
		"start_date":   started,
		"end_date":     started.AddDate(0, 0, 13),
		"shareable_id": "share-1",
		"activities": []interface{}{
			map[string]interface{}{"time": "09:00", "description": "Hike", "location": "Inari"},
		},
		"created_on": "2026-06-01T12:00:00Z",
		"updated_on": "2026-06-02T12:00:00Z",
	}

	it, err := parseItinerary(record)
	if err != nil {
		t.Fatalf("parseItinerary failed: %v", err)
	}
	if it.ID != "itinerary:abc" {
		t.Errorf("id = %q", it.ID)
	}
	if it.UserID != "user:42" {
		t.Errorf("user_id = %q", it.UserID)
	}
	if !it.StartDate.Equal(started) {
		t.Errorf("start_date = %v", it.StartDate)
	}
	if len(it.Activities) != 1 || it.Activities[0].Description != "Hike" {
		t.Errorf("activities = %v", it.Activities)
	}
	if it.CreatedOn.IsZero() || it.UpdatedOn.IsZero() {
		t.Error("timestamps not parsed")
	}

	// Absent records surface as (nil, nil)
	it, err = parseItinerary(nil)
	if err != nil || it != nil {
		t.Errorf("expected (nil, nil) for nil result, got (%v, %v)", it, err)
	}
}

func TestParseActivities_MalformedEntries(t *testing.T) {
	activities := parseActivities([]interface{}{
		map[string]interface{}{"time": "09:00", "description": "ok", "location": "here"},
		"not-a-map",
	})
	if len(activities) != 1 {
		t.Errorf("malformed entries should be skipped, got %v", activities)
	}

	if got := parseActivities("garbage"); len(got) != 0 {
		t.Errorf("expected empty slice for non-array input, got %v", got)
	}
}

func TestExtractCount(t *testing.T) {
	wrapped := map[string]interface{}{
		"status": "OK",
		"result": []interface{}{map[string]interface{}{"count": int64(17)}},
	}
	if n := extractCount(wrapped); n != 17 {
		t.Errorf("extractCount = %d, want 17", n)
	}
	if n := extractCount(nil); n != 0 {
		t.Errorf("extractCount(nil) = %d, want 0", n)
	}
}

func TestConvertSurrealID(t *testing.T) {
	if got := convertSurrealID("itinerary:abc"); got != "itinerary:abc" {
		t.Errorf("string form = %q", got)
	}
	if got := convertSurrealID(models.RecordID{Table: "user", ID: "42"}); got != "user:42" {
		t.Errorf("RecordID form = %q", got)
	}
}
