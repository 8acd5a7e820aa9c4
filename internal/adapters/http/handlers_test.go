package http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mobilectl/core/internal/domain/entities"
	"github.com/mobilectl/core/internal/infrastructure/logger"
	"github.com/mobilectl/core/internal/ports"
)

type call struct {
	action string
	params ports.ActionParams
}

type fakeActions struct {
	calls  []call
	result entities.Result
}

func (f *fakeActions) Execute(ctx context.Context, action string, params ports.ActionParams) entities.Result {
	f.calls = append(f.calls, call{action: action, params: params})
	return f.result
}

func serve(t *testing.T, handler echo.HandlerFunc, method, target, body string, pathParams ...string) *httptest.ResponseRecorder {
	t.Helper()
	e := echo.New()

	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	if len(pathParams) == 2 {
		c.SetParamNames(pathParams[0])
		c.SetParamValues(pathParams[1])
	}

	require.NoError(t, handler(c))
	return rec
}

func decodeResult(t *testing.T, rec *httptest.ResponseRecorder) entities.Result {
	t.Helper()
	var result entities.Result
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
	return result
}

func TestExecute(t *testing.T) {
	actions := &fakeActions{result: entities.Succeeded("volume set to 40%")}
	h := NewActionHandler(actions, logger.NewNop())

	rec := serve(t, h.Execute, http.MethodPost, "/api/mobile-control", `{"action": "volume", "volume_level": 40}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success": true, "message": "volume set to 40%"}`, rec.Body.String())

	require.Len(t, actions.calls, 1)
	assert.Equal(t, "volume", actions.calls[0].action)
	assert.Equal(t, json.Number("40"), actions.calls[0].params["volume_level"])
	assert.NotContains(t, actions.calls[0].params, "action")
}

func TestExecute_BadRequests(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		message string
	}{
		{"empty body", ``, "request body is required"},
		{"empty object", `{}`, "request body is required"},
		{"not an object", `[1, 2]`, "request body is required"},
		{"malformed", `{"action":`, "request body is required"},
		{"missing action", `{"volume_level": 40}`, "missing action parameter"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actions := &fakeActions{}
			h := NewActionHandler(actions, logger.NewNop())

			rec := serve(t, h.Execute, http.MethodPost, "/api/mobile-control", tt.body)

			assert.Equal(t, http.StatusBadRequest, rec.Code)
			result := decodeResult(t, rec)
			assert.False(t, result.Success)
			assert.Equal(t, tt.message, result.Message)
			assert.Empty(t, actions.calls)
		})
	}
}

func TestExecute_StatusMapping(t *testing.T) {
	tests := []struct {
		kind   entities.FailureKind
		status int
	}{
		{entities.FailureValidation, http.StatusBadRequest},
		{entities.FailureUnknownAction, http.StatusBadRequest},
		{entities.FailureConflict, http.StatusConflict},
		{entities.FailureNotFound, http.StatusNotFound},
		{entities.FailureExternal, http.StatusBadGateway},
		{entities.FailurePersistence, http.StatusInternalServerError},
		{entities.FailureInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(string(tt.kind), func(t *testing.T) {
			actions := &fakeActions{result: entities.Failed(tt.kind, "nope")}
			h := NewActionHandler(actions, logger.NewNop())

			rec := serve(t, h.Execute, http.MethodPost, "/api/mobile-control", `{"action": "x"}`)
			assert.Equal(t, tt.status, rec.Code)
			assert.JSONEq(t, `{"success": false, "message": "nope"}`, rec.Body.String())
		})
	}
}

func TestListContacts(t *testing.T) {
	actions := &fakeActions{result: entities.Succeeded("found 1 contacts", entities.Contact{Name: "Bob", Phone: "555"})}
	h := NewActionHandler(actions, logger.NewNop())

	rec := serve(t, h.ListContacts, http.MethodGet, "/api/phonebook", ``)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success": true, "message": "found 1 contacts", "data": [{"name": "Bob", "phone": "555", "alias": ""}]}`, rec.Body.String())
	assert.Equal(t, "phonebook_list", actions.calls[0].action)
}

func TestDeleteContact_DecodesNameOnce(t *testing.T) {
	tests := []struct {
		target string
		name   string
	}{
		{"/api/phonebook/Bob", "Bob"},
		{"/api/phonebook/Bob%20Smith", "Bob Smith"},
		{"/api/phonebook/%E5%BC%A0%E4%B8%89", "张三"},
		{"/api/phonebook/a%2Fb", "a/b"},
		{"/api/phonebook/a%2541", "a%41"},
		{"/api/phonebook/100%25", "100%"},
	}

	for _, tt := range tests {
		t.Run(tt.target, func(t *testing.T) {
			actions := &fakeActions{result: entities.Succeeded("deleted")}
			h := NewActionHandler(actions, logger.NewNop())

			e := echo.New()
			e.DELETE("/api/phonebook/:name", h.DeleteContact)

			rec := httptest.NewRecorder()
			e.ServeHTTP(rec, httptest.NewRequest(http.MethodDelete, tt.target, nil))

			require.Equal(t, http.StatusOK, rec.Code)
			require.Len(t, actions.calls, 1)
			assert.Equal(t, "phonebook_delete", actions.calls[0].action)
			assert.Equal(t, tt.name, actions.calls[0].params["name"])
		})
	}
}

func TestBody(t *testing.T) {
	t.Run("passes body through", func(t *testing.T) {
		actions := &fakeActions{result: entities.Succeeded("theme set to dark")}
		h := NewActionHandler(actions, logger.NewNop())

		rec := serve(t, h.Body(entities.ActionTheme), http.MethodPost, "/api/system/theme", `{"mode": "dark"}`)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "theme", actions.calls[0].action)
		assert.Equal(t, "dark", actions.calls[0].params["mode"])
	})

	t.Run("empty body reaches validation", func(t *testing.T) {
		actions := &fakeActions{result: entities.Failed(entities.FailureValidation, "phone number is required")}
		h := NewActionHandler(actions, logger.NewNop())

		rec := serve(t, h.Body(entities.ActionCall), http.MethodPost, "/api/communication/call", ``)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		require.Len(t, actions.calls, 1)
		assert.Empty(t, actions.calls[0].params)
	})

	t.Run("malformed body", func(t *testing.T) {
		actions := &fakeActions{}
		h := NewActionHandler(actions, logger.NewNop())

		rec := serve(t, h.Body(entities.ActionSMS), http.MethodPost, "/api/communication/sms", `"hello"`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "request body must be a JSON object", decodeResult(t, rec).Message)
		assert.Empty(t, actions.calls)
	})
}
