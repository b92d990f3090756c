package repository

import (
	"context"
	"errors"
	"strings"

	"github.com/forgo/voyage/api/internal/database"
	"github.com/forgo/voyage/api/internal/model"
)

// sortColumns maps the sort fields accepted on the list endpoint to their
// stored column names. Anything outside this map falls back to created_on.
var sortColumns = map[string]string{
	"createdAt":   "created_on",
	"updatedAt":   "updated_on",
	"startDate":   "start_date",
	"endDate":     "end_date",
	"title":       "title",
	"destination": "destination",
}

// ItineraryRepository handles itinerary data access
type ItineraryRepository struct {
	db database.Database
}

// NewItineraryRepository creates a new itinerary repository
func NewItineraryRepository(db database.Database) *ItineraryRepository {
	return &ItineraryRepository{db: db}
}

// Create creates a new itinerary
func (r *ItineraryRepository) Create(ctx context.Context, it *model.Itinerary) error {
	query := `
		CREATE itinerary CONTENT {
			user_id: type::record($user_id),
			title: $title,
			destination: $destination,
			start_date: $start_date,
			end_date: $end_date,
			activities: $activities,
			shareable_id: $shareable_id,
			created_on: time::now(),
			updated_on: time::now()
		}
	`

	vars := map[string]interface{}{
		"user_id":      it.UserID,
		"title":        it.Title,
		"destination":  it.Destination,
		"start_date":   it.StartDate,
		"end_date":     it.EndDate,
		"activities":   activitiesToVars(it.Activities),
		"shareable_id": it.ShareableID,
	}

	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return err
	}

	created := extractQueryResults(result)
	if len(created) == 0 {
		return errors.New("no result returned")
	}

	data, ok := created[0].(map[string]interface{})
	if !ok {
		return errors.New("unexpected result format")
	}

	it.ID = convertSurrealID(data["id"])
	it.CreatedOn = parseTime(data["created_on"])
	it.UpdatedOn = parseTime(data["updated_on"])
	return nil
}

// GetByID retrieves an itinerary by ID. Returns (nil, nil) when absent.
func (r *ItineraryRepository) GetByID(ctx context.Context, id string) (*model.Itinerary, error) {
	// Direct record access - more efficient than WHERE id =
	query := `SELECT * FROM type::record($id)`
	vars := map[string]interface{}{"id": id}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return parseItinerary(result)
}

// GetByShareableID retrieves an itinerary by its shareable id. Returns
// (nil, nil) when absent.
func (r *ItineraryRepository) GetByShareableID(ctx context.Context, shareableID string) (*model.Itinerary, error) {
	query := `SELECT * FROM itinerary WHERE shareable_id = $shareable_id LIMIT 1`
	vars := map[string]interface{}{"shareable_id": shareableID}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return parseItinerary(result)
}

// List retrieves a page of itineraries matching the query. The destination
// filter is a literal case-insensitive substring match, never a pattern.
func (r *ItineraryRepository) List(ctx context.Context, q *model.ListItinerariesQuery) ([]*model.Itinerary, error) {
	query := `SELECT * FROM itinerary`
	where, vars := listFilter(q)
	query += where

	column, desc := sortClause(q.Sort)
	query += ` ORDER BY ` + column
	if desc {
		query += ` DESC`
	} else {
		query += ` ASC`
	}

	query += ` LIMIT $limit START $start`
	vars["limit"] = q.Limit
	vars["start"] = (q.Page - 1) * q.Limit

	result, err := r.db.Query(ctx, query, vars)
	if err != nil {
		return nil, err
	}

	return parseItineraries(result)
}

// Count returns the unpaginated number of itineraries matching the query's
// filters.
func (r *ItineraryRepository) Count(ctx context.Context, q *model.ListItinerariesQuery) (int, error) {
	query := `SELECT count() FROM itinerary`
	where, vars := listFilter(q)
	query += where + ` GROUP ALL`

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return 0, nil
		}
		return 0, err
	}

	return extractCount(result), nil
}

// Update applies the patch to an itinerary and returns the updated record.
// Returns (nil, nil) when the record does not exist. Only the fields the
// patch can represent are ever written; the SET clauses are static.
func (r *ItineraryRepository) Update(ctx context.Context, id string, patch *model.ItineraryPatch) (*model.Itinerary, error) {
	query := `UPDATE itinerary SET updated_on = time::now()`
	vars := map[string]interface{}{"id": id}

	if patch.Title != nil {
		query += `, title = $title`
		vars["title"] = *patch.Title
	}
	if patch.Destination != nil {
		query += `, destination = $destination`
		vars["destination"] = *patch.Destination
	}
	if patch.StartDate != nil {
		query += `, start_date = $start_date`
		vars["start_date"] = *patch.StartDate
	}
	if patch.EndDate != nil {
		query += `, end_date = $end_date`
		vars["end_date"] = *patch.EndDate
	}
	if patch.Activities != nil {
		query += `, activities = $activities`
		vars["activities"] = activitiesToVars(*patch.Activities)
	}

	query += ` WHERE id = type::record($id) RETURN AFTER`

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return nil, nil
		}
		return nil, err
	}

	return parseItinerary(result)
}

// Delete removes an itinerary and reports whether a record was deleted.
func (r *ItineraryRepository) Delete(ctx context.Context, id string) (bool, error) {
	query := `DELETE itinerary WHERE id = type::record($id) RETURN BEFORE`
	vars := map[string]interface{}{"id": id}

	result, err := r.db.QueryOne(ctx, query, vars)
	if err != nil {
		if errors.Is(err, database.ErrNotFound) {
			return false, nil
		}
		return false, err
	}

	_, ok := extractRecord(result)
	return ok, nil
}

// listFilter builds the WHERE clause shared by List and Count so both always
// see the same filter.
func listFilter(q *model.ListItinerariesQuery) (string, map[string]interface{}) {
	clauses := []string{}
	vars := map[string]interface{}{}

	if q.OwnerID != "" {
		clauses = append(clauses, `user_id = type::record($owner)`)
		vars["owner"] = q.OwnerID
	}
	if q.Destination != "" {
		clauses = append(clauses, `string::contains(string::lowercase(destination), string::lowercase($destination))`)
		vars["destination"] = q.Destination
	}

	if len(clauses) == 0 {
		return "", vars
	}
	return ` WHERE ` + strings.Join(clauses, ` AND `), vars
}

// sortClause resolves a "field:direction" sort token to an allow-listed
// column and direction. Unknown fields fall back to created_on; the
// direction defaults to descending.
func sortClause(sort string) (string, bool) {
	field := sort
	desc := true

	if idx := strings.IndexByte(sort, ':'); idx >= 0 {
		field = sort[:idx]
		if strings.EqualFold(sort[idx+1:], "asc") {
			desc = false
		}
	}

	column, ok := sortColumns[field]
	if !ok {
		column = "created_on"
	}
	return column, desc
}

// activitiesToVars converts activities into plain maps so the wire encoding
// matches the stored field names regardless of codec.
func activitiesToVars(activities []model.Activity) []interface{} {
	out := make([]interface{}, 0, len(activities))
	for _, a := range activities {
		out = append(out, map[string]interface{}{
			"time":        a.Time,
			"description": a.Description,
			"location":    a.Location,
		})
	}
	return out
}

func parseItinerary(result interface{}) (*model.Itinerary, error) {
	data, ok := extractRecord(result)
	if !ok {
		return nil, nil
	}

	it := &model.Itinerary{
		ID:          convertSurrealID(data["id"]),
		UserID:      convertSurrealID(data["user_id"]),
		Title:       extractString(data, "title"),
		Destination: extractString(data, "destination"),
		StartDate:   parseTime(data["start_date"]),
		EndDate:     parseTime(data["end_date"]),
		Activities:  parseActivities(data["activities"]),
		ShareableID: extractString(data, "shareable_id"),
		CreatedOn:   parseTime(data["created_on"]),
		UpdatedOn:   parseTime(data["updated_on"]),
	}

	return it, nil
}

func parseItineraries(result []interface{}) ([]*model.Itinerary, error) {
	records := extractQueryResults(result)
	itineraries := make([]*model.Itinerary, 0, len(records))

	for _, record := range records {
		it, err := parseItinerary(record)
		if err != nil {
			return nil, err
		}
		if it != nil {
			itineraries = append(itineraries, it)
		}
	}

	return itineraries, nil
}

func parseActivities(v interface{}) []model.Activity {
	items, ok := v.([]interface{})
	if !ok {
		return []model.Activity{}
	}

	activities := make([]model.Activity, 0, len(items))
	for _, item := range items {
		m, ok := item.(map[string]interface{})
		if !ok {
			continue
		}
		activities = append(activities, model.Activity{
			Time:        extractString(m, "time"),
			Description: extractString(m, "description"),
			Location:    extractString(m, "location"),
		})
	}

	return activities
}
