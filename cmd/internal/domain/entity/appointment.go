package entity

import "time"

type Appointment struct {
	ID              int       `gorm:"primaryKey"`
	PatientName     string    `gorm:"size:50;not null"`
	PatientEmail    string    `gorm:"size:100;not null"`
	DoctorID        int       `gorm:"not null"` // References: directory entry, not a table
	DoctorName      string    `gorm:"size:50;not null"`
	DoctorSpecialty string    `gorm:"size:50;not null"`
	ScheduledAt     time.Time `gorm:"not null"`
	CreatedAt       time.Time `gorm:"not null"`
}
