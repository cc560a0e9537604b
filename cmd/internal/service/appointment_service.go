package service

import (
	"companion/cmd/internal/composer"
	"companion/cmd/internal/directory"
	"companion/cmd/internal/domain/entity"
	"companion/cmd/internal/integration/mailer"
	"companion/cmd/internal/metrics"
	"companion/cmd/internal/utils"
	"companion/cmd/internal/utils/apierror"
	"context"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/gommon/log"
)

type AppointmentRepository interface {
	Save(ctx context.Context, appointment *entity.Appointment) error
	FindAll(ctx context.Context) ([]*entity.Appointment, error)
}

type DoctorDirectory interface {
	Find(id int) (directory.Doctor, bool)
	All() []directory.Doctor
}

type BookAppointmentRequest struct {
	Name     string   `json:"appointmentName" form:"appointmentName" validate:"required,max=50"`
	Email    string   `json:"appointmentEmail" form:"appointmentEmail" validate:"required,max=100"`
	DoctorID IntParam `json:"doctor" form:"doctor" validate:"required"`
	Date     string   `json:"appointmentDate" form:"appointmentDate" validate:"required,isodate"`
	Time     string   `json:"appointmentTime" form:"appointmentTime" validate:"required,hhmm"`
}

type AppointmentResponse struct {
	ID              int    `json:"id"`
	PatientName     string `json:"patient_name"`
	PatientEmail    string `json:"patient_email"`
	DoctorID        int    `json:"doctor_id"`
	DoctorName      string `json:"doctor_name"`
	DoctorSpecialty string `json:"doctor_specialty"`
	ScheduledAt     string `json:"scheduled_at"`
}

type DefaultAppointmentService struct {
	AppointmentRepo AppointmentRepository
	Directory       DoctorDirectory
	Mailer          mailer.Sender
	Validate        *validator.Validate
	Metrics         *metrics.Metrics
}

func NewAppointmentService(apptRepo AppointmentRepository, dir DoctorDirectory, sender mailer.Sender,
	validate *validator.Validate, m *metrics.Metrics) *DefaultAppointmentService {
	return &DefaultAppointmentService{AppointmentRepo: apptRepo, Directory: dir, Mailer: sender, Validate: validate, Metrics: m}
}

// BookAppointment stores the appointment and then emails a confirmation.
// The row is committed before the email is attempted and stays committed
// if the email fails; the caller still receives EmailDeliveryError.
func (a *DefaultAppointmentService) BookAppointment(ctx context.Context, req *BookAppointmentRequest) (*AppointmentResponse, apierror.ErrorResponse) {
	utils.Sanitize(req)
	if valerr := a.Validate.Struct(req); valerr != nil {
		a.Metrics.ObserveBooking("invalid")
		return nil, apierror.FromValidationError(valerr)
	}

	doctor, ok := a.Directory.Find(int(req.DoctorID))
	if !ok {
		log.Warnf("booking for %s rejected: unknown doctor %d", req.Email, req.DoctorID)
		a.Metrics.ObserveBooking("invalid")
		return nil, apierror.InvalidDoctorError
	}

	scheduledAt, err := utils.ParseDateTime(req.Date, req.Time)
	if err != nil {
		a.Metrics.ObserveBooking("invalid")
		return nil, apierror.InvalidDateTimeError
	}

	appointment := &entity.Appointment{
		PatientName:     req.Name,
		PatientEmail:    req.Email,
		DoctorID:        doctor.ID,
		DoctorName:      doctor.Name,
		DoctorSpecialty: doctor.Specialty,
		ScheduledAt:     scheduledAt,
		CreatedAt:       utils.NowUTC(),
	}

	err = a.AppointmentRepo.Save(ctx, appointment)
	if err != nil {
		log.Errorf("failed to save appointment for %s: %v", req.Email, err)
		a.Metrics.ObserveBooking("error")
		return nil, apierror.InternalServerError
	}

	msg := mailer.Message{
		To:      appointment.PatientEmail,
		ToName:  appointment.PatientName,
		Subject: "Appointment Confirmation",
		Body:    composer.BookingConfirmation(appointment.PatientName, doctor, scheduledAt),
	}
	err = a.Mailer.Send(ctx, msg)
	if err != nil {
		log.Errorf("appointment %d saved but confirmation to %s failed: %v", appointment.ID, appointment.PatientEmail, err)
		a.Metrics.ObserveBooking("email_failed")
		return nil, apierror.EmailDeliveryError
	}

	log.Infof("appointment %d booked with doctor %d for %s", appointment.ID, doctor.ID, appointment.PatientEmail)
	a.Metrics.ObserveBooking("success")
	return toAppointmentResponse(appointment), nil
}

func (a *DefaultAppointmentService) GetAppointments(ctx context.Context) ([]*AppointmentResponse, apierror.ErrorResponse) {
	appts, err := a.AppointmentRepo.FindAll(ctx)
	if err != nil {
		log.Errorf("failed to fetch appointments: %v", err)
		return nil, apierror.InternalServerError
	}

	response := make([]*AppointmentResponse, len(appts))
	for i, appt := range appts {
		response[i] = toAppointmentResponse(appt)
	}
	return response, nil
}

func (a *DefaultAppointmentService) GetDoctors() []directory.Doctor {
	return a.Directory.All()
}

func toAppointmentResponse(appt *entity.Appointment) *AppointmentResponse {
	return &AppointmentResponse{
		ID:              appt.ID,
		PatientName:     appt.PatientName,
		PatientEmail:    appt.PatientEmail,
		DoctorID:        appt.DoctorID,
		DoctorName:      appt.DoctorName,
		DoctorSpecialty: appt.DoctorSpecialty,
		ScheduledAt:     utils.FormatDateTime(appt.ScheduledAt),
	}
}
