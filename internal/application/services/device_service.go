package services

import (
	"context"

	"github.com/mobilectl/core/internal/domain/entities"
	"github.com/mobilectl/core/internal/infrastructure/logger"
	"github.com/mobilectl/core/internal/ports"
)

// DeviceService validates device requests before handing them to the
// platform controller
type DeviceService struct {
	controller ports.DeviceController
	validator  *requestValidator
	logger     *logger.Logger
}

// NewDeviceService creates a new device service
func NewDeviceService(controller ports.DeviceController, log *logger.Logger) *DeviceService {
	return &DeviceService{
		controller: controller,
		validator:  newRequestValidator(),
		logger:     log.WithComponent("device"),
	}
}

// MakeCall dials a phone number
func (s *DeviceService) MakeCall(ctx context.Context, req ports.CallRequest) (string, error) {
	if err := s.validator.Struct(req); err != nil {
		return "", err
	}
	return s.controller.Call(ctx, req.PhoneNumber)
}

// SendSMS opens a text message to a phone number
func (s *DeviceService) SendSMS(ctx context.Context, req ports.SMSRequest) (string, error) {
	if err := s.validator.Struct(req); err != nil {
		return "", err
	}
	return s.controller.SendSMS(ctx, req.PhoneNumber, req.Message)
}

// SetVolume sets the output volume in percent
func (s *DeviceService) SetVolume(ctx context.Context, req ports.LevelRequest) (string, error) {
	if err := s.validator.Struct(req); err != nil {
		return "", levelError("volume")
	}
	return s.controller.SetVolume(ctx, req.Level)
}

// SetBrightness sets the screen brightness in percent
func (s *DeviceService) SetBrightness(ctx context.Context, req ports.LevelRequest) (string, error) {
	if err := s.validator.Struct(req); err != nil {
		return "", levelError("brightness")
	}
	return s.controller.SetBrightness(ctx, req.Level)
}

// SetTheme switches the system appearance
func (s *DeviceService) SetTheme(ctx context.Context, req ports.ThemeRequest) (string, error) {
	if err := s.validator.Struct(req); err != nil {
		return "", themeError()
	}
	return s.controller.SetTheme(ctx, req.Mode)
}

func levelError(kind string) error {
	return entities.NewValidationError("level", "%s level must be an integer between 0 and 100", kind)
}

func themeError() error {
	return entities.NewValidationError("mode", "invalid theme mode, expected one of: light, dark, auto")
}
