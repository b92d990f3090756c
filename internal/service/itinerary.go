package service

import (
	"context"
	"html"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/forgo/voyage/api/internal/model"
)

const (
	defaultPage  = 1
	defaultLimit = 10
	maxLimit     = 100

	minTitleLength = 3
)

// ItineraryRepository defines the interface for itinerary storage
type ItineraryRepository interface {
	Create(ctx context.Context, it *model.Itinerary) error
	GetByID(ctx context.Context, id string) (*model.Itinerary, error)
	GetByShareableID(ctx context.Context, shareableID string) (*model.Itinerary, error)
	List(ctx context.Context, q *model.ListItinerariesQuery) ([]*model.Itinerary, error)
	Count(ctx context.Context, q *model.ListItinerariesQuery) (int, error)
	Update(ctx context.Context, id string, patch *model.ItineraryPatch) (*model.Itinerary, error)
	Delete(ctx context.Context, id string) (bool, error)
}

// ItineraryCache is the side cache in front of point lookups. Get reports a
// miss as (nil, false); Set and Invalidate are best-effort.
type ItineraryCache interface {
	Get(id string) (*model.Itinerary, bool)
	Set(id string, it *model.Itinerary)
	Invalidate(id string)
}

// Notifier sends outbound email. Implementations must be safe for
// concurrent use; the service calls Send from its own goroutines.
type Notifier interface {
	Send(ctx context.Context, to, subject, htmlBody string) error
}

// ItineraryService handles itinerary operations
type ItineraryService struct {
	repo         ItineraryRepository
	cache        ItineraryCache
	notifier     Notifier
	shareBaseURL string
}

// ItineraryServiceConfig holds configuration for the itinerary service
type ItineraryServiceConfig struct {
	Repo         ItineraryRepository
	Cache        ItineraryCache
	Notifier     Notifier
	ShareBaseURL string
}

// NewItineraryService creates a new itinerary service
func NewItineraryService(cfg ItineraryServiceConfig) *ItineraryService {
	return &ItineraryService{
		repo:         cfg.Repo,
		cache:        cfg.Cache,
		notifier:     cfg.Notifier,
		shareBaseURL: strings.TrimRight(cfg.ShareBaseURL, "/"),
	}
}

// Create validates the payload, assigns ownership and a shareable id, and
// persists the itinerary. A notification email is dispatched without
// joining the request.
func (s *ItineraryService) Create(ctx context.Context, ownerID, ownerEmail string, req *model.CreateItineraryRequest) (*model.Itinerary, error) {
	title := strings.TrimSpace(req.Title)
	if len(title) < minTitleLength {
		return nil, ErrTitleRequired
	}

	destination := strings.TrimSpace(req.Destination)
	if destination == "" {
		return nil, ErrDestinationRequired
	}

	startDate, err := parseDate(req.StartDate)
	if err != nil {
		return nil, ErrInvalidStartDate
	}
	endDate, err := parseDate(req.EndDate)
	if err != nil {
		return nil, ErrInvalidEndDate
	}

	activities := req.Activities
	if activities == nil {
		activities = []model.Activity{}
	}

	it := &model.Itinerary{
		UserID:      ownerID,
		Title:       title,
		Destination: destination,
		StartDate:   startDate,
		EndDate:     endDate,
		Activities:  activities,
		ShareableID: uuid.NewString(),
	}

	if err := s.repo.Create(ctx, it); err != nil {
		return nil, err
	}

	s.sendCreatedEmail(ownerEmail, it)

	return it, nil
}

// List returns a page of the owner's itineraries. Total counts every record
// matching the filter, not just the returned page.
func (s *ItineraryService) List(ctx context.Context, ownerID string, q *model.ListItinerariesQuery) (*model.ItineraryPage, error) {
	query := &model.ListItinerariesQuery{
		OwnerID:     ownerID,
		Page:        q.Page,
		Limit:       q.Limit,
		Destination: strings.TrimSpace(q.Destination),
		Sort:        q.Sort,
	}
	if query.Page < 1 {
		query.Page = defaultPage
	}
	if query.Limit < 1 {
		query.Limit = defaultLimit
	}
	if query.Limit > maxLimit {
		query.Limit = maxLimit
	}

	items, err := s.repo.List(ctx, query)
	if err != nil {
		return nil, err
	}

	total, err := s.repo.Count(ctx, query)
	if err != nil {
		return nil, err
	}

	return &model.ItineraryPage{
		Page:  query.Page,
		Limit: query.Limit,
		Total: total,
		Items: items,
	}, nil
}

// Get retrieves one of the owner's itineraries by id, serving from the side
// cache when possible. A cached record still goes through the ownership
// check; a record owned by someone else is reported as not found.
func (s *ItineraryService) Get(ctx context.Context, ownerID, id string) (*model.Itinerary, error) {
	recordID, err := normalizeItineraryID(id)
	if err != nil {
		return nil, err
	}

	if it, ok := s.cache.Get(recordID); ok {
		if it.UserID != ownerID {
			return nil, ErrItineraryNotFound
		}
		return it, nil
	}

	it, err := s.repo.GetByID(ctx, recordID)
	if err != nil {
		return nil, err
	}
	if it == nil {
		return nil, ErrItineraryNotFound
	}

	s.cache.Set(recordID, it)

	if it.UserID != ownerID {
		return nil, ErrItineraryNotFound
	}
	return it, nil
}

// Update applies an allow-listed patch to one of the owner's itineraries and
// invalidates its cache entry.
func (s *ItineraryService) Update(ctx context.Context, ownerID, id string, req *model.UpdateItineraryRequest) (*model.Itinerary, error) {
	recordID, err := normalizeItineraryID(id)
	if err != nil {
		return nil, err
	}

	if req.IsEmpty() {
		return nil, ErrEmptyUpdate
	}

	patch, err := buildPatch(req)
	if err != nil {
		return nil, err
	}

	existing, err := s.repo.GetByID(ctx, recordID)
	if err != nil {
		return nil, err
	}
	if existing == nil || existing.UserID != ownerID {
		return nil, ErrItineraryNotFound
	}

	updated, err := s.repo.Update(ctx, recordID, patch)
	if err != nil {
		return nil, err
	}
	if updated == nil {
		return nil, ErrItineraryNotFound
	}

	s.cache.Invalidate(recordID)

	return updated, nil
}

// Delete removes one of the owner's itineraries and invalidates its cache
// entry.
func (s *ItineraryService) Delete(ctx context.Context, ownerID, id string) error {
	recordID, err := normalizeItineraryID(id)
	if err != nil {
		return err
	}

	existing, err := s.repo.GetByID(ctx, recordID)
	if err != nil {
		return err
	}
	if existing == nil || existing.UserID != ownerID {
		return ErrItineraryNotFound
	}

	deleted, err := s.repo.Delete(ctx, recordID)
	if err != nil {
		return err
	}
	if !deleted {
		return ErrItineraryNotFound
	}

	s.cache.Invalidate(recordID)

	return nil
}

// GetShared retrieves the public view of an itinerary by its shareable id.
// The share path never touches the cache and never exposes the owner.
func (s *ItineraryService) GetShared(ctx context.Context, shareableID string) (*model.PublicItinerary, error) {
	shareableID = strings.TrimSpace(shareableID)
	if shareableID == "" {
		return nil, ErrItineraryNotFound
	}

	it, err := s.repo.GetByShareableID(ctx, shareableID)
	if err != nil {
		return nil, err
	}
	if it == nil {
		return nil, ErrItineraryNotFound
	}

	return it.ToPublic(), nil
}

// ShareURL builds the public link for an itinerary
func (s *ItineraryService) ShareURL(shareableID string) string {
	return s.shareBaseURL + "/" + shareableID
}

// sendCreatedEmail dispatches the creation notification without joining the
// request. Failures are logged and never surface to the caller.
func (s *ItineraryService) sendCreatedEmail(ownerEmail string, it *model.Itinerary) {
	if s.notifier == nil || ownerEmail == "" {
		return
	}

	subject := "Your itinerary \"" + it.Title + "\" is ready"
	body := "<h1>" + html.EscapeString(it.Title) + "</h1>" +
		"<p>Your trip to " + html.EscapeString(it.Destination) + " has been created.</p>" +
		"<p>Share it with friends: <a href=\"" + s.ShareURL(it.ShareableID) + "\">" +
		s.ShareURL(it.ShareableID) + "</a></p>"

	go func() {
		if err := s.notifier.Send(context.Background(), ownerEmail, subject, body); err != nil {
			slog.Warn("failed to send itinerary notification",
				slog.String("itinerary_id", it.ID),
				slog.String("error", err.Error()))
		}
	}()
}

// buildPatch validates and converts an update request into the typed patch
// the repository accepts.
func buildPatch(req *model.UpdateItineraryRequest) (*model.ItineraryPatch, error) {
	patch := &model.ItineraryPatch{}

	if req.Title != nil {
		title := strings.TrimSpace(*req.Title)
		if len(title) < minTitleLength {
			return nil, ErrTitleRequired
		}
		patch.Title = &title
	}
	if req.Destination != nil {
		destination := strings.TrimSpace(*req.Destination)
		if destination == "" {
			return nil, ErrDestinationRequired
		}
		patch.Destination = &destination
	}
	if req.StartDate != nil {
		startDate, err := parseDate(*req.StartDate)
		if err != nil {
			return nil, ErrInvalidStartDate
		}
		patch.StartDate = &startDate
	}
	if req.EndDate != nil {
		endDate, err := parseDate(*req.EndDate)
		if err != nil {
			return nil, ErrInvalidEndDate
		}
		patch.EndDate = &endDate
	}
	if req.Activities != nil {
		activities := *req.Activities
		if activities == nil {
			activities = []model.Activity{}
		}
		patch.Activities = &activities
	}

	return patch, nil
}

// normalizeItineraryID accepts either a bare record key or the full
// "itinerary:key" form and returns the canonical record id. Anything else
// is rejected before it can reach the store.
func normalizeItineraryID(id string) (string, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return "", ErrInvalidItineraryID
	}

	key := id
	if table, rest, ok := strings.Cut(id, ":"); ok {
		if table != "itinerary" {
			return "", ErrInvalidItineraryID
		}
		key = rest
	}

	if key == "" || !isValidRecordKey(key) {
		return "", ErrInvalidItineraryID
	}

	return "itinerary:" + key, nil
}

func isValidRecordKey(key string) bool {
	for _, r := range key {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		case r == '-' || r == '_':
		default:
			return false
		}
	}
	return true
}

func parseDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}
