package commands

import "fmt"

type Result struct {
	Message string
}

type Handlers struct {
	Add        func(AddArgs) (Result, error)
	Plan       func(PlanArgs) (Result, error)
	Schedule   func(ScheduleArgs) (Result, error)
	Resize     func(ResizeArgs) (Result, error)
	Unschedule func(TargetArgs) (Result, error)
	Due        func(DateArgs) (Result, error)
	Start      func(DateArgs) (Result, error)
	Done       func(TargetArgs) (Result, error)
	Focus      func(TargetArgs) (Result, error)
	Dismiss    func(TargetArgs) (Result, error)
}

func Execute(cmd Command, handlers Handlers) (Result, error) {
	switch cmd.Type {
	case TypeAdd:
		if handlers.Add == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Add(*cmd.Add)
	case TypePlan:
		if handlers.Plan == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Plan(*cmd.Plan)
	case TypeSchedule:
		if handlers.Schedule == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Schedule(*cmd.Schedule)
	case TypeResize:
		if handlers.Resize == nil {
			return Result{}, missing(cmd.Type)
		}
		return handlers.Resize(*cmd.Resize)
	case TypeDue, TypeStart:
		h := handlers.Due
		if cmd.Type == TypeStart {
			h = handlers.Start
		}
		if h == nil {
			return Result{}, missing(cmd.Type)
		}
		return h(*cmd.Date)
	case TypeUnschedule, TypeDone, TypeFocus, TypeDismiss:
		var h func(TargetArgs) (Result, error)
		switch cmd.Type {
		case TypeUnschedule:
			h = handlers.Unschedule
		case TypeDone:
			h = handlers.Done
		case TypeFocus:
			h = handlers.Focus
		default:
			h = handlers.Dismiss
		}
		if h == nil {
			return Result{}, missing(cmd.Type)
		}
		return h(*cmd.Target)
	default:
		return Result{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unknown command type: %s", cmd.Type)}
	}
}

func missing(t Type) error {
	return &CommandError{Code: ErrCodeHandlerMissing, Message: fmt.Sprintf("%s handler not configured", t)}
}
