package models

// VenueKind is the wizard's venue selector.
type VenueKind string

const (
	VenuePhysical VenueKind = "physical"
	VenueVirtual  VenueKind = "virtual"
	VenueHybrid   VenueKind = "hybrid"
)

// Venue is a bookable location or conferencing room.
type Venue struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Capacity     int    `json:"capacity"`
	HasVideoConf bool   `json:"has_video_conf"`
	IsVirtual    bool   `json:"is_virtual"`
}

// BoardMember is a selectable board participant.
type BoardMember struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Title string `json:"title"`
	Email string `json:"email"`
}

// Invitee is a selectable non-board participant.
type Invitee struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Title string `json:"title"`
	Email string `json:"email"`
}

// MeetingTypeOption is a wizard meeting type with its agenda template key.
type MeetingTypeOption struct {
	Key   string `json:"key"`
	Label string `json:"label"`
}

// AgendaCatalogItem is an entry of the meeting-type agenda matrix.
type AgendaCatalogItem struct {
	ID           int      `json:"id"`
	Title        string   `json:"title"`
	MeetingTypes []string `json:"meeting_types"`
}
