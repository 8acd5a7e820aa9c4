package services

import (
	"context"
	"fmt"
	"time"

	"github.com/mobilectl/core/internal/domain/entities"
	"github.com/mobilectl/core/internal/infrastructure/logger"
	"github.com/mobilectl/core/internal/ports"
)

// Parameter keys accepted by the router. The automation host's names come
// first, the REST body names second.
var (
	nameKeys    = []string{"contact_name", "name"}
	phoneKeys   = []string{"phone_number", "phone"}
	aliasKeys   = []string{"contact_alias", "alias"}
	messageKeys = []string{"sms_message", "message"}
	modeKeys    = []string{"theme_mode", "mode"}
)

// ActionService maps an action identifier plus flat parameters to exactly
// one phonebook or device operation and wraps the outcome in a Result.
type ActionService struct {
	phonebook ports.PhonebookService
	device    ports.DeviceService
	observer  ports.ActionObserver
	logger    *logger.Logger
}

// NewActionService creates a new action router. observer may be nil.
func NewActionService(phonebook ports.PhonebookService, device ports.DeviceService, observer ports.ActionObserver, log *logger.Logger) *ActionService {
	return &ActionService{
		phonebook: phonebook,
		device:    device,
		observer:  observer,
		logger:    log.WithComponent("actions"),
	}
}

// Execute runs the named action. Unknown names fail without side effects.
func (s *ActionService) Execute(ctx context.Context, name string, params ports.ActionParams) entities.Result {
	start := time.Now()

	var result entities.Result
	label := name
	action, err := entities.ParseAction(name)
	if err != nil {
		label = "unknown"
		result = entities.Failed(entities.FailureUnknownAction, fmt.Sprintf("unknown action: %s", name))
	} else {
		result = s.Dispatch(ctx, action, params)
	}

	duration := time.Since(start)
	s.logger.LogAction(name, result.Success, result.Message, duration)
	if s.observer != nil {
		s.observer.ObserveAction(label, result, duration)
	}

	return result
}

// Dispatch runs an already parsed action.
func (s *ActionService) Dispatch(ctx context.Context, action entities.Action, params ports.ActionParams) entities.Result {
	switch action {
	case entities.ActionPhonebookList:
		return s.listContacts(ctx)
	case entities.ActionPhonebookAdd:
		return s.addContact(ctx, ports.AddContactRequest{
			Name:  params.String(nameKeys...),
			Phone: params.String(phoneKeys...),
			Alias: params.String(aliasKeys...),
		})
	case entities.ActionPhonebookDelete:
		return s.deleteContact(ctx, ports.DeleteContactRequest{Name: params.String(nameKeys...)})
	case entities.ActionCall:
		return message(s.device.MakeCall(ctx, ports.CallRequest{PhoneNumber: params.String(phoneKeys...)}))
	case entities.ActionSMS:
		return message(s.device.SendSMS(ctx, ports.SMSRequest{
			PhoneNumber: params.String(phoneKeys...),
			Message:     params.String(messageKeys...),
		}))
	case entities.ActionVolume:
		level, err := levelParam(params, "volume")
		if err != nil {
			return failure(err)
		}
		return message(s.device.SetVolume(ctx, ports.LevelRequest{Level: level}))
	case entities.ActionBrightness:
		level, err := levelParam(params, "brightness")
		if err != nil {
			return failure(err)
		}
		return message(s.device.SetBrightness(ctx, ports.LevelRequest{Level: level}))
	case entities.ActionTheme:
		return message(s.device.SetTheme(ctx, ports.ThemeRequest{Mode: entities.ThemeMode(params.String(modeKeys...))}))
	default:
		return entities.Failed(entities.FailureUnknownAction, fmt.Sprintf("unknown action: %s", action))
	}
}

func (s *ActionService) listContacts(ctx context.Context) entities.Result {
	contacts, err := s.phonebook.ListContacts(ctx)
	if err != nil {
		return failure(err)
	}
	if len(contacts) == 0 {
		return entities.Succeeded("phonebook is empty")
	}
	return entities.Succeeded(fmt.Sprintf("found %d contacts", len(contacts)), contacts...)
}

func (s *ActionService) addContact(ctx context.Context, req ports.AddContactRequest) entities.Result {
	contact, err := s.phonebook.AddContact(ctx, req)
	if err != nil {
		return failure(err)
	}
	return entities.Succeeded(fmt.Sprintf("added contact '%s'%s: %s", contact.Name, aliasSuffix(contact.Alias), contact.Phone))
}

func (s *ActionService) deleteContact(ctx context.Context, req ports.DeleteContactRequest) entities.Result {
	removed, err := s.phonebook.DeleteContact(ctx, req)
	if err != nil {
		return failure(err)
	}
	return entities.Succeeded(fmt.Sprintf("deleted contact '%s'%s: %s", removed.Name, aliasSuffix(removed.Alias), removed.Phone))
}

// levelParam reads the action-specific level key, falling back to "level".
// Missing and non-integer values fail the same way as out-of-range ones.
func levelParam(params ports.ActionParams, kind string) (int, error) {
	level, present, err := params.Int(kind+"_level", "level")
	if !present || err != nil {
		return 0, levelError(kind)
	}
	return level, nil
}

func message(msg string, err error) entities.Result {
	if err != nil {
		return failure(err)
	}
	return entities.Succeeded(msg)
}

func failure(err error) entities.Result {
	return entities.Failed(entities.FailureKindOf(err), err.Error())
}

func aliasSuffix(alias string) string {
	if alias == "" {
		return ""
	}
	return fmt.Sprintf(" (alias: %s)", alias)
}
