package models

import (
	"gorm.io/gorm"
)

type DayOfWeek int

const (
	Sunday DayOfWeek = iota
	Monday
	Tuesday
	Wednesday
	Thursday
	Friday
	Saturday
)

// TimeSlot is one concrete bookable interval on a freelancer's calendar.
// Date is "YYYY-MM-DD" and StartTime/EndTime are "HH:MM" 24h, so the ISO
// string ordering matches chronological ordering.
type TimeSlot struct {
	gorm.Model
	OwnerID     uint   `json:"owner_id" gorm:"index:idx_slot_owner_date"`
	Owner       User   `json:"-" gorm:"foreignKey:OwnerID"`
	Date        string `json:"date" gorm:"index:idx_slot_owner_date"`
	StartTime   string `json:"start_time"`
	EndTime     string `json:"end_time"`
	Duration    int    `json:"duration"`    // minutes
	BufferTime  int    `json:"buffer_time"` // minutes between bookings
	IsAvailable bool   `json:"is_available" gorm:"default:true"`
}

// Overlaps reports whether the half-open interval [StartTime, EndTime)
// intersects [start, end). HH:MM strings compare correctly as strings.
func (s *TimeSlot) Overlaps(start, end string) bool {
	return s.StartTime < end && start < s.EndTime
}

// RecurringRule is a weekly repeating availability template. It is only a
// template; bookings are always made against the TimeSlots generated from it.
type RecurringRule struct {
	gorm.Model
	OwnerID    uint      `json:"owner_id" gorm:"index"`
	Owner      User      `json:"-" gorm:"foreignKey:OwnerID"`
	DayOfWeek  DayOfWeek `json:"day_of_week"` // 0 = Sunday ... 6 = Saturday
	StartTime  string    `json:"start_time"`
	EndTime    string    `json:"end_time"`
	Duration   int       `json:"duration"`
	BufferTime int       `json:"buffer_time"`
	IsActive   bool      `json:"is_active" gorm:"default:true"`
}
