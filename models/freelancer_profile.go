package models

import (
	"gorm.io/gorm"
)

// FreelancerProfile is the public booking-page configuration for a user.
// One profile per owner; the slug is the public URL handle.
type FreelancerProfile struct {
	gorm.Model
	OwnerID            uint     `json:"owner_id" gorm:"uniqueIndex"`
	BusinessName       string   `json:"business_name"`
	Description        string   `json:"description"`
	Services           []string `json:"services" gorm:"serializer:json"`
	HourlyRate         float64  `json:"hourly_rate"`
	Currency           string   `json:"currency"`
	TimeZone           string   `json:"time_zone"`
	Slug               string   `json:"slug" gorm:"uniqueIndex"`
	IsPublic           bool     `json:"is_public" gorm:"default:true"`
	BookingAdvanceDays int      `json:"booking_advance_days" gorm:"default:30"`
	CancellationPolicy string   `json:"cancellation_policy"`
}
