package dto

import (
	"errors"
	"strings"
)

// Request DTOs for the web routes. The validate tags mirror the constraints
// the original sign-up and admin forms enforce before anything reaches the
// backend.

type SearchRequest struct {
	Name string `json:"name" validate:"required,min=2,max=100,person_name"`
}

type RSVPRequest struct {
	RSVPStatus          string `json:"rsvpStatus" validate:"required,oneof=accepted declined"`
	DietaryRequirements string `json:"dietaryRequirements" validate:"omitempty,oneof=Vegan Vegetarian Other None"`
}

type GroupRSVPEntry struct {
	AttendeeID          string `json:"attendeeId" validate:"required"`
	RSVPStatus          string `json:"rsvpStatus" validate:"required,oneof=accepted declined"`
	DietaryRequirements string `json:"dietaryRequirements" validate:"omitempty,oneof=Vegan Vegetarian Other None"`
}

type GroupRSVPRequest struct {
	Responses []GroupRSVPEntry `json:"responses" validate:"required,min=1,dive"`
}

type CreateAttendeeRequest struct {
	FirstName           string `json:"firstName" validate:"required,max=50,person_name"`
	LastName            string `json:"lastName" validate:"required,max=50,person_name"`
	Email               string `json:"email" validate:"omitempty,simple_email"`
	DietaryRequirements string `json:"dietaryRequirements" validate:"omitempty,oneof=Vegan Vegetarian Other None"`
	GroupID             string `json:"groupId"`
}

type UpdateAttendeeRequest struct {
	FirstName           string `json:"firstName" validate:"omitempty,max=50,person_name"`
	LastName            string `json:"lastName" validate:"omitempty,max=50,person_name"`
	Email               string `json:"email" validate:"omitempty,simple_email"`
	DietaryRequirements string `json:"dietaryRequirements" validate:"omitempty,oneof=Vegan Vegetarian Other None"`
	GroupID             string `json:"groupId"`
}

type CreateGroupRequest struct {
	Name      string   `json:"name" validate:"required,max=100,group_name"`
	MemberIDs []string `json:"memberIds"`
}

type UpdateGroupMembersRequest struct {
	Action      string   `json:"action" validate:"required,oneof=add remove"`
	AttendeeIDs []string `json:"attendeeIds" validate:"required,min=1,dive,required"`
}

// Upload limits from the admin bulk form: CSV only, capped at 50MB, with a
// rough row estimate assuming ~100 bytes per record.
const (
	maxUploadBytes = 50 * 1024 * 1024
	maxUploadRows  = 10000
	uploadRowBytes = 100
)

// CheckUploadFile rejects an upload before it leaves for the backend.
func CheckUploadFile(name string, size int64) error {
	if size <= 0 {
		return errors.New(UploadFileMissing)
	}
	if size > maxUploadBytes {
		return errors.New("File size must be less than 50MB")
	}
	if !strings.HasSuffix(strings.ToLower(name), ".csv") {
		return errors.New("File must be a CSV file (.csv extension required)")
	}
	if size/uploadRowBytes > maxUploadRows {
		return errors.New("File appears to contain more than 10,000 records")
	}
	return nil
}
