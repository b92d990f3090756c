package model

import "time"

// Activity is a single scheduled entry within an itinerary. Activities have
// no identity of their own; their order within the itinerary is significant
// and preserved as stored.
type Activity struct {
	Time        string `json:"time"`
	Description string `json:"description"`
	Location    string `json:"location"`
}

// Itinerary represents a travel itinerary owned by a user.
type Itinerary struct {
	ID          string     `json:"id"`
	UserID      string     `json:"user_id"`
	Title       string     `json:"title"`
	Destination string     `json:"destination"`
	StartDate   time.Time  `json:"start_date"`
	EndDate     time.Time  `json:"end_date"`
	Activities  []Activity `json:"activities"`
	ShareableID string     `json:"shareable_id"`
	CreatedOn   time.Time  `json:"created_on"`
	UpdatedOn   time.Time  `json:"updated_on"`
}

// PublicItinerary is the shared-view projection of an itinerary. It carries
// no owner reference and is the only shape returned on the unauthenticated
// share path.
type PublicItinerary struct {
	ID          string     `json:"id"`
	Title       string     `json:"title"`
	Destination string     `json:"destination"`
	StartDate   time.Time  `json:"start_date"`
	EndDate     time.Time  `json:"end_date"`
	Activities  []Activity `json:"activities"`
	ShareableID string     `json:"shareable_id"`
	CreatedOn   time.Time  `json:"created_on"`
	UpdatedOn   time.Time  `json:"updated_on"`
}

// ToPublic converts an itinerary to its shared-view representation.
func (i *Itinerary) ToPublic() *PublicItinerary {
	return &PublicItinerary{
		ID:          i.ID,
		Title:       i.Title,
		Destination: i.Destination,
		StartDate:   i.StartDate,
		EndDate:     i.EndDate,
		Activities:  i.Activities,
		ShareableID: i.ShareableID,
		CreatedOn:   i.CreatedOn,
		UpdatedOn:   i.UpdatedOn,
	}
}

// CreateItineraryRequest is the payload for creating an itinerary.
type CreateItineraryRequest struct {
	Title       string     `json:"title"`
	Destination string     `json:"destination"`
	StartDate   string     `json:"start_date"`
	EndDate     string     `json:"end_date"`
	Activities  []Activity `json:"activities"`
}

// UpdateItineraryRequest is the allow-listed patch for updating an itinerary.
// Owner reference, shareable id, and record identity are deliberately not
// representable here.
type UpdateItineraryRequest struct {
	Title       *string     `json:"title,omitempty"`
	Destination *string     `json:"destination,omitempty"`
	StartDate   *string     `json:"start_date,omitempty"`
	EndDate     *string     `json:"end_date,omitempty"`
	Activities  *[]Activity `json:"activities,omitempty"`
}

// IsEmpty reports whether the patch carries no fields.
func (u *UpdateItineraryRequest) IsEmpty() bool {
	return u.Title == nil && u.Destination == nil && u.StartDate == nil &&
		u.EndDate == nil && u.Activities == nil
}

// ItineraryPatch is the validated form of an update, with dates parsed. Only
// the fields here can ever reach the store on an update.
type ItineraryPatch struct {
	Title       *string
	Destination *string
	StartDate   *time.Time
	EndDate     *time.Time
	Activities  *[]Activity
}

// IsEmpty reports whether the patch carries no fields.
func (p *ItineraryPatch) IsEmpty() bool {
	return p.Title == nil && p.Destination == nil && p.StartDate == nil &&
		p.EndDate == nil && p.Activities == nil
}

// ListItinerariesQuery holds the parsed query parameters for listing
// itineraries. OwnerID is empty when the query is not owner-scoped.
type ListItinerariesQuery struct {
	OwnerID     string
	Page        int
	Limit       int
	Destination string
	Sort        string
}

// ItineraryPage is a page of itineraries plus pagination metadata. Total is
// the unpaginated count of records matching the filter.
type ItineraryPage struct {
	Page  int          `json:"page"`
	Limit int          `json:"limit"`
	Total int          `json:"total"`
	Items []*Itinerary `json:"items"`
}
