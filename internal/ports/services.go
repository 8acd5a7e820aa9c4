package ports

import (
	"context"
	"time"

	"github.com/mobilectl/core/internal/domain/entities"
)

// DeviceController performs platform side effects. Parameters are validated
// by the caller; the returned string is a human-readable success message.
type DeviceController interface {
	Call(ctx context.Context, phone string) (string, error)
	SendSMS(ctx context.Context, phone, message string) (string, error)
	SetVolume(ctx context.Context, level int) (string, error)
	SetBrightness(ctx context.Context, level int) (string, error)
	SetTheme(ctx context.Context, mode entities.ThemeMode) (string, error)
}

// PhonebookService interface for phonebook operations
type PhonebookService interface {
	ListContacts(ctx context.Context) ([]entities.Contact, error)
	AddContact(ctx context.Context, req AddContactRequest) (*entities.Contact, error)
	DeleteContact(ctx context.Context, req DeleteContactRequest) (*entities.Contact, error)
}

// DeviceService interface for device control operations
type DeviceService interface {
	MakeCall(ctx context.Context, req CallRequest) (string, error)
	SendSMS(ctx context.Context, req SMSRequest) (string, error)
	SetVolume(ctx context.Context, req LevelRequest) (string, error)
	SetBrightness(ctx context.Context, req LevelRequest) (string, error)
	SetTheme(ctx context.Context, req ThemeRequest) (string, error)
}

// ActionService routes a named action to exactly one operation
type ActionService interface {
	Execute(ctx context.Context, action string, params ActionParams) entities.Result
}

// ActionObserver receives the outcome of every executed action
type ActionObserver interface {
	ObserveAction(action string, result entities.Result, duration time.Duration)
}

// Request types

type AddContactRequest struct {
	Name  string `json:"name" validate:"required"`
	Phone string `json:"phone" validate:"required"`
	Alias string `json:"alias"`
}

type DeleteContactRequest struct {
	Name string `json:"name" validate:"required"`
}

type CallRequest struct {
	PhoneNumber string `json:"phone_number" validate:"required"`
}

type SMSRequest struct {
	PhoneNumber string `json:"phone_number" validate:"required"`
	Message     string `json:"message" validate:"required"`
}

type LevelRequest struct {
	Level int `json:"level" validate:"min=0,max=100"`
}

type ThemeRequest struct {
	Mode entities.ThemeMode `json:"mode" validate:"required,oneof=light dark auto"`
}
