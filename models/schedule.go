package models

import (
	"fmt"
	"time"

	"gorm.io/gorm"
)

// ScheduleSlot is one candidate date/time range proposed on a schedule.
type ScheduleSlot struct {
	Date      string `json:"date"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

// Schedule is a shareable proposal of candidate meeting times. It is owned
// either by an authenticated user (OwnerID set) or by a guest identified by
// CreatorName/CreatorEmail; never both.
type Schedule struct {
	gorm.Model
	OwnerID      *uint          `json:"owner_id,omitempty" gorm:"index"`
	CreatorName  string         `json:"creator_name"`
	CreatorEmail string         `json:"creator_email"`
	Title        string         `json:"title"`
	Description  string         `json:"description"`
	Slots        []ScheduleSlot `json:"slots" gorm:"serializer:json"`
	Duration     int            `json:"duration"` // meeting length, minutes
	TimeZone     string         `json:"time_zone"`
}

func (s *Schedule) BeforeCreate(tx *gorm.DB) error {
	if s.OwnerID == nil && s.CreatorName == "" {
		return fmt.Errorf("schedule requires an owner or a creator name")
	}
	// Owner and guest identity are mutually exclusive.
	if s.OwnerID != nil {
		s.CreatorName = ""
		s.CreatorEmail = ""
	}
	return nil
}

// IsGuest reports whether the schedule was created without an account.
func (s *Schedule) IsGuest() bool {
	return s.OwnerID == nil
}

// CreatorDisplayName resolves the name shown on the public schedule page.
// The owning user, when there is one, is looked up through tx.
func (s *Schedule) CreatorDisplayName(tx *gorm.DB) string {
	if s.OwnerID != nil {
		var owner User
		if err := tx.First(&owner, *s.OwnerID).Error; err == nil && owner.Name != "" {
			return owner.Name
		}
	}
	if s.CreatorName != "" {
		return s.CreatorName
	}
	return "Unknown"
}

// CreatorDisplayEmail resolves the contact email shown alongside the creator
// name: the owning user's email when there is one, otherwise the guest email.
func (s *Schedule) CreatorDisplayEmail(tx *gorm.DB) string {
	if s.OwnerID != nil {
		var owner User
		if err := tx.First(&owner, *s.OwnerID).Error; err == nil {
			return owner.Email
		}
	}
	return s.CreatorEmail
}

// DayAvailability is one respondent's selected ranges on a single date.
type DayAvailability struct {
	Date  string         `json:"date"`
	Slots []ScheduleSlot `json:"slots"`
}

// AvailabilityResponse records one named respondent's selection against a
// schedule. At most one response per (schedule, name); resubmission under the
// same name replaces the earlier one.
type AvailabilityResponse struct {
	gorm.Model
	ScheduleID   uint              `json:"schedule_id" gorm:"uniqueIndex:idx_response_schedule_name"`
	Schedule     Schedule          `json:"-" gorm:"foreignKey:ScheduleID"`
	Name         string            `json:"name" gorm:"uniqueIndex:idx_response_schedule_name"`
	Availability []DayAvailability `json:"availability" gorm:"serializer:json"`
	SubmittedAt  time.Time         `json:"submitted_at"`
}
