package main

// ActionExecutor maps action names onto InputActions so keyboard and mouse
// bindings share one dispatch table
type ActionExecutor struct{}

// NewActionExecutor creates a new ActionExecutor instance
func NewActionExecutor() *ActionExecutor {
	return &ActionExecutor{}
}

// ExecuteAction executes the given action using the InputActions interface
func (ae *ActionExecutor) ExecuteAction(action string, inputActions InputActions) bool {
	switch action {
	case "close":
		inputActions.Close()
	case "delete":
		inputActions.DeleteCurrent()
	case "next":
		inputActions.NavigateNext()
	case "previous":
		inputActions.NavigatePrevious()
	case "jump_first":
		inputActions.JumpToPage(1)
	case "jump_last":
		totalPages := inputActions.GetTotalPagesCount()
		if totalPages > 0 {
			inputActions.JumpToPage(totalPages)
		}
	case "fullscreen":
		inputActions.ToggleFullscreen()
	case "info":
		inputActions.ToggleInfo()
	case "help":
		inputActions.ToggleHelp()
	default:
		return false
	}

	return true
}

// globalActionExecutor is the global instance of ActionExecutor used throughout the application
var globalActionExecutor = NewActionExecutor()
