package service

import (
	"companion/cmd/internal/composer"
	"companion/cmd/internal/integration/mailer"
	"companion/cmd/internal/scheduler"
	"companion/cmd/internal/utils"
	"companion/cmd/internal/utils/apierror"
	"context"
	"errors"
	"fmt"

	"github.com/go-playground/validator/v10"
	"github.com/labstack/gommon/log"
)

type MessageComposer interface {
	Compose(ctx context.Context, req composer.Request) string
}

type Dispatcher interface {
	Dispatch(ctx context.Context, timeOfDay string, msg mailer.Message) (*scheduler.Result, error)
}

type SubmitNotificationRequest struct {
	Name             string   `json:"name" form:"name" validate:"required,max=80"`
	Condition        string   `json:"condition" form:"condition" validate:"required,max=200"`
	Age              IntParam `json:"age" form:"age" validate:"required,gte=1,lte=130"`
	Email            string   `json:"email" form:"email" validate:"required,max=100"`
	NotificationType string   `json:"notificationType" form:"notificationType" validate:"required"`
	Time             string   `json:"time" form:"time"`
	EnhanceAccuracy  bool     `json:"enhance_accuracy" form:"enhance_accuracy"`
}

type SubmitNotificationResponse struct {
	Message  string `json:"-"`
	Deferred bool   `json:"deferred"`
	JobID    string `json:"job_id,omitempty"`
	FireAt   string `json:"fire_at,omitempty"`
}

type DefaultNotificationService struct {
	Composer   MessageComposer
	Dispatcher Dispatcher
	Validate   *validator.Validate
}

func NewNotificationService(comp MessageComposer, dispatcher Dispatcher, validate *validator.Validate) *DefaultNotificationService {
	return &DefaultNotificationService{Composer: comp, Dispatcher: dispatcher, Validate: validate}
}

// SubmitNotification composes a message for the patient and delivers it
// now, or at the next occurrence of req.Time. Category and time are
// checked before anything is generated or sent.
func (n *DefaultNotificationService) SubmitNotification(ctx context.Context, req *SubmitNotificationRequest) (*SubmitNotificationResponse, apierror.ErrorResponse) {
	utils.Sanitize(req)
	if valerr := n.Validate.Struct(req); valerr != nil {
		return nil, apierror.FromValidationError(valerr)
	}

	category, err := composer.ParseCategory(req.NotificationType)
	if err != nil {
		log.Warnf("notification for %s rejected: %v", req.Email, err)
		return nil, apierror.UnsupportedNotificationTypeError
	}

	if req.Time != "" {
		if _, err := scheduler.ParseTimeOfDay(req.Time); err != nil {
			return nil, apierror.InvalidTimeOfDayError
		}
	}

	text := n.Composer.Compose(ctx, composer.Request{
		Category:  category,
		Name:      req.Name,
		Age:       int(req.Age),
		Condition: req.Condition,
		Enhanced:  req.EnhanceAccuracy,
	})

	msg := mailer.Message{
		To:      req.Email,
		ToName:  req.Name,
		Subject: composer.Subject(category),
		Body:    composer.WithSignOff(text),
	}

	result, err := n.Dispatcher.Dispatch(ctx, req.Time, msg)
	if err != nil {
		if errors.Is(err, scheduler.ErrInvalidTimeOfDay) {
			return nil, apierror.InvalidTimeOfDayError
		}
		log.Errorf("failed to deliver %s notification to %s: %v", category, req.Email, err)
		return nil, apierror.EmailDeliveryError
	}

	if !result.Deferred {
		return &SubmitNotificationResponse{Message: "Notification sent successfully"}, nil
	}
	fireAt := utils.FormatDateTime(result.FireAt)
	return &SubmitNotificationResponse{
		Message:  fmt.Sprintf("Notification scheduled for %s", fireAt),
		Deferred: true,
		JobID:    result.JobID,
		FireAt:   fireAt,
	}, nil
}
