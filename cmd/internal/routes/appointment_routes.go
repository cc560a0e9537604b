package routes

import (
	"companion/cmd/internal/directory"
	"companion/cmd/internal/service"
	"companion/cmd/internal/utils/apierror"
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
)

type AppointmentService interface {
	BookAppointment(ctx context.Context, req *service.BookAppointmentRequest) (*service.AppointmentResponse, apierror.ErrorResponse)
	GetAppointments(ctx context.Context) ([]*service.AppointmentResponse, apierror.ErrorResponse)
	GetDoctors() []directory.Doctor
}

type DefaultAppointmentRoute struct {
	AppointmentService AppointmentService
}

func NewAppointmentDefault(apptService AppointmentService) *DefaultAppointmentRoute {
	return &DefaultAppointmentRoute{AppointmentService: apptService}
}

func (a *DefaultAppointmentRoute) BookAppointment(c echo.Context) error {
	var req service.BookAppointmentRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedBodyError)
	}

	appt, apierr := a.AppointmentService.BookAppointment(c.Request().Context(), &req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	resp := success("Appointment booked successfully")
	resp["appointment"] = appt
	return c.JSON(http.StatusOK, &resp)
}

func (a *DefaultAppointmentRoute) GetAppointments(c echo.Context) error {
	appts, apierr := a.AppointmentService.GetAppointments(c.Request().Context())
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	resp := echo.Map{"appointments": appts}
	return c.JSON(http.StatusOK, &resp)
}

func (a *DefaultAppointmentRoute) GetDoctors(c echo.Context) error {
	return c.JSON(http.StatusOK, a.AppointmentService.GetDoctors())
}

func (a *DefaultAppointmentRoute) Index(c echo.Context) error {
	return c.Render(http.StatusOK, "index.html", echo.Map{
		"Doctors": a.AppointmentService.GetDoctors(),
	})
}

func success(message string) echo.Map {
	return echo.Map{"status": "success", "message": message}
}
