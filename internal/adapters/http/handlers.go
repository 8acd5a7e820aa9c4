package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/url"

	"github.com/labstack/echo/v4"

	"github.com/mobilectl/core/internal/domain/entities"
	"github.com/mobilectl/core/internal/infrastructure/logger"
	"github.com/mobilectl/core/internal/ports"
)

// ActionHandler serves the action envelope endpoint and the REST shortcuts
// that map onto single actions
type ActionHandler struct {
	actions ports.ActionService
	logger  *logger.Logger
}

// NewActionHandler creates a new action handler
func NewActionHandler(actions ports.ActionService, logger *logger.Logger) *ActionHandler {
	return &ActionHandler{
		actions: actions,
		logger:  logger,
	}
}

// Execute handles POST /api/mobile-control with a body of {action, ...params}
func (h *ActionHandler) Execute(c echo.Context) error {
	params, err := decodeParams(c)
	if err != nil || len(params) == 0 {
		return respond(c, entities.Failed(entities.FailureValidation, "request body is required"))
	}

	action := params.String("action")
	if action == "" {
		return respond(c, entities.Failed(entities.FailureValidation, "missing action parameter"))
	}
	delete(params, "action")

	return respond(c, h.actions.Execute(c.Request().Context(), action, params))
}

// ListContacts handles GET /api/phonebook
func (h *ActionHandler) ListContacts(c echo.Context) error {
	return respond(c, h.actions.Execute(c.Request().Context(), entities.ActionPhonebookList.String(), nil))
}

// DeleteContact handles DELETE /api/phonebook/:name
func (h *ActionHandler) DeleteContact(c echo.Context) error {
	name := c.Param("name")
	// echo routes on the raw path only when the request carries one; the
	// param is still escaped in that case.
	if c.Request().URL.RawPath != "" {
		if unescaped, err := url.PathUnescape(name); err == nil {
			name = unescaped
		}
	}

	params := ports.ActionParams{"name": name}
	return respond(c, h.actions.Execute(c.Request().Context(), entities.ActionPhonebookDelete.String(), params))
}

// Body returns a handler that runs action with the JSON body as parameters.
// It serves POST /api/phonebook and the /api/system and /api/communication
// routes.
func (h *ActionHandler) Body(action entities.Action) echo.HandlerFunc {
	return func(c echo.Context) error {
		params, err := decodeParams(c)
		if err != nil {
			return respond(c, entities.Failed(entities.FailureValidation, "request body must be a JSON object"))
		}
		return respond(c, h.actions.Execute(c.Request().Context(), action.String(), params))
	}
}

// decodeParams reads a JSON object body. An empty body yields empty params.
// Numbers are kept as json.Number so integer checks stay exact.
func decodeParams(c echo.Context) (ports.ActionParams, error) {
	dec := json.NewDecoder(c.Request().Body)
	dec.UseNumber()

	var params ports.ActionParams
	if err := dec.Decode(&params); err != nil {
		if errors.Is(err, io.EOF) {
			return ports.ActionParams{}, nil
		}
		return nil, err
	}
	if params == nil {
		params = ports.ActionParams{}
	}
	return params, nil
}

func respond(c echo.Context, result entities.Result) error {
	return c.JSON(StatusFor(result), result)
}

// StatusFor maps a Result to the HTTP status code used by every route
func StatusFor(result entities.Result) int {
	if result.Success {
		return http.StatusOK
	}

	switch result.Kind {
	case entities.FailureValidation, entities.FailureUnknownAction:
		return http.StatusBadRequest
	case entities.FailureConflict:
		return http.StatusConflict
	case entities.FailureNotFound:
		return http.StatusNotFound
	case entities.FailureExternal:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
