package main

// ActionDefinition defines an action with its default keybindings, mouse bindings, and description
type ActionDefinition struct {
	Name         string
	Keys         []string
	MouseActions []string
	Description  string
}

// actionDefinitions contains all action definitions with default keybindings, mouse bindings, and descriptions
var actionDefinitions = []ActionDefinition{
	{"close", []string{"Escape", "KeyQ"}, []string{}, "Close the viewer"},
	{"delete", []string{"Delete", "KeyD"}, []string{}, "Remove the current page"},
	{"next", []string{"Space", "KeyN", "ArrowRight"}, []string{"WheelDown", "Forward"}, "Next page"},
	{"previous", []string{"Backspace", "KeyP", "ArrowLeft"}, []string{"WheelUp", "Back"}, "Previous page"},
	{"jump_first", []string{"Home", "Shift+Comma"}, []string{}, "Jump to first page"},
	{"jump_last", []string{"End", "Shift+Period"}, []string{}, "Jump to last page"},
	{"fullscreen", []string{"Enter", "KeyF"}, []string{"DoubleLeftClick"}, "Toggle fullscreen"},
	{"info", []string{"KeyI"}, []string{}, "Show/hide info display"},
	{"help", []string{"Shift+Slash"}, []string{"Alt+RightClick"}, "Show/hide help"},
}

func isKnownAction(name string) bool {
	for _, action := range actionDefinitions {
		if action.Name == name {
			return true
		}
	}
	return false
}

// GetActionDescriptions returns a map of action names to their descriptions
func GetActionDescriptions() map[string]string {
	descriptions := make(map[string]string)
	for _, action := range actionDefinitions {
		descriptions[action.Name] = action.Description
	}
	return descriptions
}

// GetDefaultKeybindings returns a map of action names to their default keybindings
func GetDefaultKeybindings() map[string][]string {
	keybindings := make(map[string][]string)
	for _, action := range actionDefinitions {
		keybindings[action.Name] = append([]string(nil), action.Keys...)
	}
	return keybindings
}

// GetDefaultMousebindings returns a map of action names to their default mouse bindings
func GetDefaultMousebindings() map[string][]string {
	mousebindings := make(map[string][]string)
	for _, action := range actionDefinitions {
		mousebindings[action.Name] = append([]string(nil), action.MouseActions...)
	}
	return mousebindings
}
