package models

import (
	"time"
)

type User struct {
	ID           uint               `json:"id" gorm:"primaryKey"`
	Name         string             `json:"name"`
	Email        string             `json:"email" gorm:"unique"`
	Password     string             `json:"password,omitempty"`
	Bio          string             `json:"bio"`
	AvatarURL    string             `json:"avatar_url"`
	Profile      *FreelancerProfile `json:"profile,omitempty" gorm:"foreignKey:OwnerID"`
	TimeSlots    []TimeSlot         `json:"time_slots,omitempty" gorm:"foreignKey:OwnerID"`
	Appointments []Appointment      `json:"appointments,omitempty" gorm:"foreignKey:FreelancerID"`
	CreatedAt    time.Time          `json:"created_at"`
	UpdatedAt    time.Time          `json:"updated_at"`
}
