package plugin

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	"github.com/mobilectl/core/internal/domain/entities"
)

// Text is a localized label.
type Text struct {
	EnUS string `yaml:"en_US"`
}

// Option is one choice of a select parameter.
type Option struct {
	Value string `yaml:"value"`
	Label Text   `yaml:"label"`
}

// Parameter describes one tool parameter to the host.
type Parameter struct {
	Name             string   `yaml:"name"`
	Type             string   `yaml:"type"`
	Required         bool     `yaml:"required"`
	Label            Text     `yaml:"label"`
	HumanDescription Text     `yaml:"human_description"`
	LLMDescription   string   `yaml:"llm_description,omitempty"`
	Form             string   `yaml:"form"`
	Options          []Option `yaml:"options,omitempty"`
	Min              *int     `yaml:"min,omitempty"`
	Max              *int     `yaml:"max,omitempty"`
}

// Identity describes the tool itself.
type Identity struct {
	Author                   string                 `yaml:"author"`
	Name                     string                 `yaml:"name"`
	Version                  string                 `yaml:"version"`
	Label                    Text                   `yaml:"label"`
	Description              Text                   `yaml:"description"`
	SupportedModelTypes      []string               `yaml:"supported_model_types"`
	ConfigurateMethods       []string               `yaml:"configurate_methods"`
	ProviderCredentialSchema map[string]interface{} `yaml:"provider_credential_schema"`
	ToolCredentialSchema     map[string]interface{} `yaml:"tool_credential_schema"`
}

// Manifest is the document the host imports alongside the tool.
type Manifest struct {
	Identity   Identity    `yaml:"identity"`
	Parameters []Parameter `yaml:"parameters"`
}

var actionLabels = map[entities.Action]string{
	entities.ActionPhonebookList:   "List contacts",
	entities.ActionPhonebookAdd:    "Add contact",
	entities.ActionPhonebookDelete: "Delete contact",
	entities.ActionCall:            "Make a call",
	entities.ActionSMS:             "Send SMS",
	entities.ActionVolume:          "Set volume",
	entities.ActionBrightness:      "Set brightness",
	entities.ActionTheme:           "Set theme",
}

// NewManifest builds the manifest for version.
func NewManifest(version string) Manifest {
	var actionOptions []Option
	for _, action := range entities.Actions() {
		actionOptions = append(actionOptions, Option{Value: action.String(), Label: Text{EnUS: actionLabels[action]}})
	}

	var themeOptions []Option
	for _, mode := range entities.ThemeModes() {
		themeOptions = append(themeOptions, Option{Value: string(mode), Label: Text{EnUS: string(mode)}})
	}

	zero, hundred := 0, 100

	return Manifest{
		Identity: Identity{
			Author:                   "mobilectl",
			Name:                     "mobile_control",
			Version:                  version,
			Label:                    Text{EnUS: "Mobile Control"},
			Description:              Text{EnUS: "Manage the phonebook, place calls, send SMS and adjust volume, brightness and theme"},
			SupportedModelTypes:      []string{"llm"},
			ConfigurateMethods:       []string{"predefined-model"},
			ProviderCredentialSchema: map[string]interface{}{},
			ToolCredentialSchema:     map[string]interface{}{},
		},
		Parameters: []Parameter{
			{
				Name: "action", Type: "select", Required: true, Form: "llm",
				Label:            Text{EnUS: "Action"},
				HumanDescription: Text{EnUS: "The operation to perform"},
				Options:          actionOptions,
			},
			stringParam("contact_name", "Contact name", "Name of the contact to add or delete"),
			stringParam("phone_number", "Phone number", "Number to store, call or text"),
			stringParam("contact_alias", "Contact alias", "Optional alias for a new contact"),
			stringParam("sms_message", "SMS message", "Text of the message to send"),
			{
				Name: "volume_level", Type: "number", Form: "llm", Min: &zero, Max: &hundred,
				Label:            Text{EnUS: "Volume level"},
				HumanDescription: Text{EnUS: "Output volume in percent (0-100)"},
			},
			{
				Name: "brightness_level", Type: "number", Form: "llm", Min: &zero, Max: &hundred,
				Label:            Text{EnUS: "Brightness level"},
				HumanDescription: Text{EnUS: "Screen brightness in percent (0-100)"},
			},
			{
				Name: "theme_mode", Type: "select", Form: "llm",
				Label:            Text{EnUS: "Theme mode"},
				HumanDescription: Text{EnUS: "System appearance"},
				Options:          themeOptions,
			},
		},
	}
}

func stringParam(name, label, description string) Parameter {
	return Parameter{
		Name:             name,
		Type:             "string",
		Form:             "llm",
		Label:            Text{EnUS: label},
		HumanDescription: Text{EnUS: description},
	}
}

// Write encodes the manifest as YAML.
func (m Manifest) Write(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(m); err != nil {
		return fmt.Errorf("encode manifest: %w", err)
	}
	return enc.Close()
}
