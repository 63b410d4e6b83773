package apiclient

import "time"

type RSVPStatus string

const (
	RSVPPending  RSVPStatus = "pending"
	RSVPAccepted RSVPStatus = "accepted"
	RSVPDeclined RSVPStatus = "declined"
)

type DietaryRequirement string

const (
	DietaryVegan      DietaryRequirement = "Vegan"
	DietaryVegetarian DietaryRequirement = "Vegetarian"
	DietaryOther      DietaryRequirement = "Other"
	DietaryNone       DietaryRequirement = "None"
)

type Attendee struct {
	ID                  string             `json:"id"`
	FirstName           string             `json:"firstName"`
	LastName            string             `json:"lastName"`
	Email               string             `json:"email,omitempty"`
	RSVPStatus          RSVPStatus         `json:"rsvpStatus"`
	DietaryRequirements DietaryRequirement `json:"dietaryRequirements,omitempty"`
	GroupID             string             `json:"groupId,omitempty"`
	CreatedAt           time.Time          `json:"createdAt"`
	UpdatedAt           time.Time          `json:"updatedAt"`
}

type Group struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Members   []Attendee `json:"members"`
	CreatedAt time.Time  `json:"createdAt"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// AttendeesPage is one page of the admin attendee listing.
type AttendeesPage struct {
	Attendees []Attendee `json:"attendees"`
	Total     int        `json:"total"`
	Page      int        `json:"page"`
	Limit     int        `json:"limit"`
}

type CreateAttendeeRequest struct {
	FirstName           string             `json:"firstName"`
	LastName            string             `json:"lastName"`
	Email               string             `json:"email,omitempty"`
	DietaryRequirements DietaryRequirement `json:"dietaryRequirements,omitempty"`
	GroupID             string             `json:"groupId,omitempty"`
}

type UpdateAttendeeRequest struct {
	FirstName           string             `json:"firstName,omitempty"`
	LastName            string             `json:"lastName,omitempty"`
	Email               string             `json:"email,omitempty"`
	DietaryRequirements DietaryRequirement `json:"dietaryRequirements,omitempty"`
	GroupID             string             `json:"groupId,omitempty"`
}

type CreateGroupRequest struct {
	Name      string   `json:"name"`
	MemberIDs []string `json:"memberIds,omitempty"`
}

// MemberAction discriminates the group membership update.
type MemberAction string

const (
	MemberAdd    MemberAction = "add"
	MemberRemove MemberAction = "remove"
)

type updateGroupMembersRequest struct {
	Action      MemberAction `json:"action"`
	AttendeeIDs []string     `json:"attendeeIds"`
}

// GroupRSVPResponse is one member's decision inside a group submission.
// The caller filters members still on "pending" out before submitting.
type GroupRSVPResponse struct {
	AttendeeID          string             `json:"attendeeId"`
	RSVPStatus          RSVPStatus         `json:"rsvpStatus"`
	DietaryRequirements DietaryRequirement `json:"dietaryRequirements,omitempty"`
}

type GroupRSVPRequest struct {
	Responses []GroupRSVPResponse `json:"responses"`
}

type rsvpRequest struct {
	RSVPStatus          RSVPStatus         `json:"rsvpStatus"`
	DietaryRequirements DietaryRequirement `json:"dietaryRequirements,omitempty"`
}

// UploadError is one rejected row of a bulk CSV upload.
type UploadError struct {
	Row     int    `json:"row"`
	Field   string `json:"field"`
	Value   string `json:"value"`
	Message string `json:"message"`
}

// BulkUploadResult is the backend's report for one CSV import. It is
// read-only on this side.
type BulkUploadResult struct {
	TotalRecords        int           `json:"totalRecords"`
	SuccessfulCreations int           `json:"successfulCreations"`
	Duplicates          int           `json:"duplicates"`
	Failures            int           `json:"failures"`
	Errors              []UploadError `json:"errors"`
	CreatedAttendees    []Attendee    `json:"createdAttendees"`
	GroupsCreated       []Group       `json:"groupsCreated,omitempty"`
	GroupsUpdated       []Group       `json:"groupsUpdated,omitempty"`
}
