package models

import (
	"fmt"

	"gorm.io/gorm"
)

type AppointmentStatus string

const (
	StatusPending   AppointmentStatus = "pending"
	StatusConfirmed AppointmentStatus = "confirmed"
	StatusCancelled AppointmentStatus = "cancelled"
	StatusCompleted AppointmentStatus = "completed"
)

// Appointment is a customer booking against one TimeSlot. Date/StartTime/
// EndTime are copied from the slot at booking time so the record survives
// later edits to the slot. BookingReference is the public handle customers
// use for unauthenticated lookup and self-service cancellation.
type Appointment struct {
	gorm.Model
	TimeSlotID       uint              `json:"time_slot_id" gorm:"index"`
	TimeSlot         TimeSlot          `json:"time_slot,omitempty" gorm:"foreignKey:TimeSlotID"`
	FreelancerID     uint              `json:"freelancer_id" gorm:"index"`
	Freelancer       User              `json:"-" gorm:"foreignKey:FreelancerID"`
	CustomerName     string            `json:"customer_name"`
	CustomerEmail    string            `json:"customer_email"`
	CustomerPhone    string            `json:"customer_phone"`
	CustomerMessage  string            `json:"customer_message"`
	Date             string            `json:"date" gorm:"index"`
	StartTime        string            `json:"start_time"`
	EndTime          string            `json:"end_time"`
	Status           AppointmentStatus `json:"status"`
	BookingReference string            `json:"booking_reference" gorm:"uniqueIndex"`
}

func (a *Appointment) BeforeCreate(tx *gorm.DB) error {
	if a.Status == "" {
		a.Status = StatusPending
	}
	return nil
}

// IsActive reports whether the appointment still holds its time slot.
func (a *Appointment) IsActive() bool {
	return a.Status == StatusPending || a.Status == StatusConfirmed
}

// UpdateStatus validates and persists a status transition. Cancelled and
// completed are terminal. Pending appointments may complete directly when
// their end time passes without the owner ever confirming.
func (a *Appointment) UpdateStatus(tx *gorm.DB, newStatus AppointmentStatus) error {
	switch a.Status {
	case StatusPending:
		if newStatus != StatusConfirmed && newStatus != StatusCancelled && newStatus != StatusCompleted {
			return fmt.Errorf("invalid transition from pending to %s", newStatus)
		}
	case StatusConfirmed:
		if newStatus != StatusCompleted && newStatus != StatusCancelled {
			return fmt.Errorf("invalid transition from confirmed to %s", newStatus)
		}
	case StatusCompleted, StatusCancelled:
		return fmt.Errorf("no transitions allowed from %s", a.Status)
	}

	a.Status = newStatus
	return tx.Save(a).Error
}
