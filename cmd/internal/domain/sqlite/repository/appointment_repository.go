package repository

import (
	"companion/cmd/internal/domain/entity"
	"context"
	"errors"
	"gorm.io/gorm"
)

type DefaultAppointmentRepository struct {
	db *gorm.DB
}

func NewAppointmentRepository(db *gorm.DB) *DefaultAppointmentRepository {
	return &DefaultAppointmentRepository{db: db}
}

func (a *DefaultAppointmentRepository) FindByID(ctx context.Context, id int) (*entity.Appointment, error) {
	var appt entity.Appointment
	err := a.db.WithContext(ctx).First(&appt, id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	return &appt, err
}

// FindAll returns every stored appointment, earliest scheduled first.
func (a *DefaultAppointmentRepository) FindAll(ctx context.Context) ([]*entity.Appointment, error) {
	var appts []*entity.Appointment
	err := a.db.WithContext(ctx).
		Order("scheduled_at asc").
		Order("id asc").
		Find(&appts).Error
	return appts, err
}

func (a *DefaultAppointmentRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := a.db.WithContext(ctx).Model(&entity.Appointment{}).Count(&count).Error
	return count, err
}

// Save inserts a new appointment. The write is committed before Save
// returns; callers do not get a transaction to roll back.
func (a *DefaultAppointmentRepository) Save(ctx context.Context, appointment *entity.Appointment) error {
	return a.db.WithContext(ctx).Create(appointment).Error
}
