package commands

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/sandeepkv93/tempo/internal/calendar"
	"github.com/sandeepkv93/tempo/internal/model"
	"github.com/sandeepkv93/tempo/internal/parse"
)

type Type string

const (
	TypeAdd        Type = "add"
	TypePlan       Type = "plan"
	TypeSchedule   Type = "schedule"
	TypeResize     Type = "resize"
	TypeUnschedule Type = "unschedule"
	TypeDue        Type = "due"
	TypeStart      Type = "start"
	TypeDone       Type = "done"
	TypeFocus      Type = "focus"
	TypeDismiss    Type = "dismiss"
)

type ErrorCode string

const (
	ErrCodeEmptyInput      ErrorCode = "empty_input"
	ErrCodeUnknownCommand  ErrorCode = "unknown_command"
	ErrCodeInvalidArgument ErrorCode = "invalid_argument"
	ErrCodeHandlerMissing  ErrorCode = "handler_missing"
)

type CommandError struct {
	Code    ErrorCode
	Message string
}

func (e *CommandError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func invalid(format string, args ...any) error {
	return &CommandError{Code: ErrCodeInvalidArgument, Message: fmt.Sprintf(format, args...)}
}

// AddArgs carries the title with any date phrase removed; the phrase becomes
// the due date.
type AddArgs struct {
	Title string
	Due   *model.Date
}

type PlanArgs struct {
	Minutes int
}

type ScheduleArgs struct {
	Target string
	Date   model.Date
	Slot   int
}

type ResizeArgs struct {
	Target  string
	Minutes int
}

type DateArgs struct {
	Target string
	Date   *model.Date
}

type TargetArgs struct {
	Target string
}

type Command struct {
	Type     Type
	Raw      string
	Add      *AddArgs
	Plan     *PlanArgs
	Schedule *ScheduleArgs
	Resize   *ResizeArgs
	Date     *DateArgs
	Target   *TargetArgs
}

// Parse reads one palette command. Date and time arguments go through the
// natural-language parsers with opts.
func Parse(input string, opts parse.Options) (Command, error) {
	raw := strings.TrimSpace(input)
	raw = strings.TrimSpace(strings.TrimPrefix(raw, "/"))
	if raw == "" {
		return Command{}, &CommandError{Code: ErrCodeEmptyInput, Message: "command is empty"}
	}

	parts := strings.Fields(raw)
	head := strings.ToLower(parts[0])
	args := parts[1:]

	switch Type(head) {
	case TypeAdd:
		return parseAdd(input, args, opts)
	case TypePlan:
		return parsePlan(input, args)
	case TypeSchedule:
		return parseSchedule(input, args, opts)
	case TypeResize:
		return parseResize(input, args)
	case TypeDue, TypeStart:
		return parseDate(input, Type(head), args, opts)
	case TypeUnschedule, TypeDone, TypeFocus, TypeDismiss:
		if len(args) != 1 {
			return Command{}, invalid("%s requires exactly one target", head)
		}
		return Command{Type: Type(head), Raw: input, Target: &TargetArgs{Target: args[0]}}, nil
	default:
		return Command{}, &CommandError{Code: ErrCodeUnknownCommand, Message: fmt.Sprintf("unsupported command: %s", head)}
	}
}

func parseAdd(raw string, args []string, opts parse.Options) (Command, error) {
	text := strings.TrimSpace(strings.Join(args, " "))
	if text == "" {
		return Command{}, invalid("add requires a title")
	}
	res := parse.ParseDate(text, opts)
	title := text
	if res.Date != nil && strings.TrimSpace(res.CleanedText) != "" {
		title = strings.TrimSpace(res.CleanedText)
	} else {
		res.Date = nil
	}
	return Command{Type: TypeAdd, Raw: raw, Add: &AddArgs{Title: title, Due: res.Date}}, nil
}

func parsePlan(raw string, args []string) (Command, error) {
	if len(args) != 1 {
		return Command{}, invalid("plan requires a budget, e.g. plan 240 or plan 4h")
	}
	minutes, err := parseMinutes(args[0])
	if err != nil {
		return Command{}, err
	}
	return Command{Type: TypePlan, Raw: raw, Plan: &PlanArgs{Minutes: minutes}}, nil
}

func parseSchedule(raw string, args []string, opts parse.Options) (Command, error) {
	if len(args) < 3 {
		return Command{}, invalid("schedule requires target, date and time")
	}
	clock := parse.ParseTime(args[len(args)-1])
	if clock == "" {
		return Command{}, invalid("unrecognised time %q", args[len(args)-1])
	}
	dateText := strings.Join(args[1:len(args)-1], " ")
	res := parse.ParseDate(dateText, opts)
	if res.Date == nil || strings.TrimSpace(res.CleanedText) != "" {
		return Command{}, invalid("unrecognised date %q", dateText)
	}
	minutes, _ := parse.ToMinutes(clock)
	return Command{Type: TypeSchedule, Raw: raw, Schedule: &ScheduleArgs{
		Target: args[0],
		Date:   *res.Date,
		Slot:   calendar.SlotOf(minutes),
	}}, nil
}

func parseResize(raw string, args []string) (Command, error) {
	if len(args) != 2 {
		return Command{}, invalid("resize requires target and duration")
	}
	minutes, err := parseMinutes(args[1])
	if err != nil {
		return Command{}, err
	}
	return Command{Type: TypeResize, Raw: raw, Resize: &ResizeArgs{Target: args[0], Minutes: minutes}}, nil
}

func parseDate(raw string, typ Type, args []string, opts parse.Options) (Command, error) {
	if len(args) < 2 {
		return Command{}, invalid("%s requires target and date (or none)", typ)
	}
	text := strings.Join(args[1:], " ")
	if strings.EqualFold(text, "none") {
		return Command{Type: typ, Raw: raw, Date: &DateArgs{Target: args[0]}}, nil
	}
	res := parse.ParseDate(text, opts)
	if res.Date == nil || strings.TrimSpace(res.CleanedText) != "" {
		return Command{}, invalid("unrecognised date %q", text)
	}
	return Command{Type: typ, Raw: raw, Date: &DateArgs{Target: args[0], Date: res.Date}}, nil
}

// parseMinutes accepts bare minutes ("90") or a Go duration ("1h30m").
func parseMinutes(s string) (int, error) {
	if n, err := strconv.Atoi(s); err == nil {
		if n <= 0 {
			return 0, invalid("duration must be positive")
		}
		return n, nil
	}
	d, err := time.ParseDuration(s)
	if err != nil || d < time.Minute {
		return 0, invalid("unrecognised duration %q", s)
	}
	return int(d / time.Minute), nil
}
