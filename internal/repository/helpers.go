package repository

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/surrealdb/surrealdb.go/pkg/models"
)

// isUniqueConstraintError checks if an error is a unique constraint violation
func isUniqueConstraintError(err error) bool {
	if err == nil {
		return false
	}
	errStr := err.Error()
	return strings.Contains(errStr, "unique") ||
		strings.Contains(errStr, "duplicate") ||
		strings.Contains(errStr, "already exists")
}

// convertSurrealID converts a SurrealDB record id (which may arrive as a
// string, a models.RecordID, or a raw map depending on the decode path) to
// the canonical "table:id" string form.
func convertSurrealID(id interface{}) string {
	switch v := id.(type) {
	case string:
		return v
	case models.RecordID:
		return fmt.Sprintf("%s:%v", v.Table, v.ID)
	case *models.RecordID:
		if v != nil {
			return fmt.Sprintf("%s:%v", v.Table, v.ID)
		}
	case map[string]interface{}:
		tb := ""
		idPart := ""
		if t, ok := v["tb"].(string); ok {
			tb = t
		} else if t, ok := v["Table"].(string); ok {
			tb = t
		}
		if idVal, ok := v["id"]; ok {
			idPart = extractIDValue(idVal)
		} else if idVal, ok := v["ID"]; ok {
			idPart = extractIDValue(idVal)
		}
		if tb != "" && idPart != "" {
			return tb + ":" + idPart
		}
		if idPart != "" {
			return idPart
		}
	}

	// Try JSON marshaling as fallback
	if data, err := json.Marshal(id); err == nil {
		var recordID models.RecordID
		if err := json.Unmarshal(data, &recordID); err == nil {
			return recordID.String()
		}
	}

	return fmt.Sprintf("%v", id)
}

// extractIDValue extracts the ID value which may be nested
func extractIDValue(val interface{}) string {
	if str, ok := val.(string); ok {
		return str
	}
	if m, ok := val.(map[string]interface{}); ok {
		if s, ok := m["String"].(string); ok {
			return s
		}
		if s, ok := m["string"].(string); ok {
			return s
		}
	}
	return fmt.Sprintf("%v", val)
}

// parseTime parses time from the formats the SurrealDB client hands back
func parseTime(v interface{}) time.Time {
	switch t := v.(type) {
	case time.Time:
		return t
	case string:
		if parsed, err := time.Parse(time.RFC3339, t); err == nil {
			return parsed
		}
		if parsed, err := time.Parse(time.RFC3339Nano, t); err == nil {
			return parsed
		}
	case models.CustomDateTime:
		return t.Time
	case *models.CustomDateTime:
		if t != nil {
			return t.Time
		}
	}
	return time.Time{}
}

// extractString reads an optional string field from a decoded record
func extractString(data map[string]interface{}, key string) string {
	if s, ok := data[key].(string); ok {
		return s
	}
	return ""
}

// extractRecord unwraps a QueryOne result down to the record map
func extractRecord(result interface{}) (map[string]interface{}, bool) {
	if result == nil {
		return nil, false
	}

	// Handle the surrealdb response wrapper {status: "OK", result: [...]}
	if resp, ok := result.(map[string]interface{}); ok {
		if status, ok := resp["status"].(string); ok && status == "OK" {
			if resultData, ok := resp["result"].([]interface{}); ok {
				if len(resultData) == 0 {
					return nil, false
				}
				result = resultData[0]
			} else if resultData, ok := resp["result"].(map[string]interface{}); ok {
				result = resultData
			}
		}
	}

	// Handle array wrapper
	if arr, ok := result.([]interface{}); ok {
		if len(arr) == 0 {
			return nil, false
		}
		result = arr[0]
	}

	data, ok := result.(map[string]interface{})
	return data, ok
}

// extractQueryResults extracts the result array from a Query response
func extractQueryResults(result []interface{}) []interface{} {
	if len(result) == 0 {
		return nil
	}
	if firstResult, ok := result[0].(map[string]interface{}); ok {
		if resultArray, ok := firstResult["result"].([]interface{}); ok {
			return resultArray
		}
	}
	return result
}

// extractCount extracts the value of a `SELECT count() ... GROUP ALL` query
func extractCount(result interface{}) int {
	if data, ok := extractRecord(result); ok {
		return extractCountValue(data["count"])
	}
	return 0
}

// extractCountValue converts the numeric types the decoder may produce to int
func extractCountValue(v interface{}) int {
	switch c := v.(type) {
	case int:
		return c
	case int64:
		return int(c)
	case uint64:
		return int(c)
	case float64:
		return int(c)
	case json.Number:
		if i, err := c.Int64(); err == nil {
			return int(i)
		}
	}
	return 0
}
