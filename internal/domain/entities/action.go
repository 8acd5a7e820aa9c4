package entities

import "fmt"

// Action is the closed set of operations a front end can request.
type Action int

const (
	ActionPhonebookList Action = iota + 1
	ActionPhonebookAdd
	ActionPhonebookDelete
	ActionCall
	ActionSMS
	ActionVolume
	ActionBrightness
	ActionTheme
)

var actionNames = map[Action]string{
	ActionPhonebookList:   "phonebook_list",
	ActionPhonebookAdd:    "phonebook_add",
	ActionPhonebookDelete: "phonebook_delete",
	ActionCall:            "call",
	ActionSMS:             "sms",
	ActionVolume:          "volume",
	ActionBrightness:      "brightness",
	ActionTheme:           "theme",
}

// Actions returns every supported action in vocabulary order.
func Actions() []Action {
	return []Action{
		ActionPhonebookList,
		ActionPhonebookAdd,
		ActionPhonebookDelete,
		ActionCall,
		ActionSMS,
		ActionVolume,
		ActionBrightness,
		ActionTheme,
	}
}

func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return fmt.Sprintf("action(%d)", int(a))
}

// ParseAction resolves an action identifier. Matching is exact.
func ParseAction(name string) (Action, error) {
	for action, actionName := range actionNames {
		if actionName == name {
			return action, nil
		}
	}
	return 0, fmt.Errorf("%w: %s", ErrUnknownAction, name)
}
