package routes

import (
	"companion/cmd/internal/service"
	"companion/cmd/internal/utils/apierror"
	"context"
	"net/http"

	"github.com/labstack/echo/v4"
)

type NotificationService interface {
	SubmitNotification(ctx context.Context, req *service.SubmitNotificationRequest) (*service.SubmitNotificationResponse, apierror.ErrorResponse)
}

type DefaultNotificationRoute struct {
	NotificationService NotificationService
}

func NewNotificationDefault(notifService NotificationService) *DefaultNotificationRoute {
	return &DefaultNotificationRoute{NotificationService: notifService}
}

func (n *DefaultNotificationRoute) Submit(c echo.Context) error {
	var req service.SubmitNotificationRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, apierror.MalformedBodyError)
	}

	result, apierr := n.NotificationService.SubmitNotification(c.Request().Context(), &req)
	if apierr != nil {
		return c.JSON(apierr.Code(), apierr)
	}

	resp := success(result.Message)
	if result.Deferred {
		resp["job_id"] = result.JobID
		resp["fire_at"] = result.FireAt
	}
	return c.JSON(http.StatusOK, &resp)
}
