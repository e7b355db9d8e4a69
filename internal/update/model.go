package update

import (
	"context"
	"fmt"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	log "github.com/sirupsen/logrus"

	"github.com/sandeepkv93/tempo/internal/calendar"
	"github.com/sandeepkv93/tempo/internal/classify"
	"github.com/sandeepkv93/tempo/internal/model"
	"github.com/sandeepkv93/tempo/internal/parse"
	"github.com/sandeepkv93/tempo/internal/planner"
	"github.com/sandeepkv93/tempo/internal/scheduler"
	"github.com/sandeepkv93/tempo/internal/service"
)

type View string

const (
	ViewMyDay    View = "My Day"
	ViewPlan     View = "Plan"
	ViewCalendar View = "Calendar"
	ViewBacklog  View = "Backlog"
)

type StatusBar struct {
	Text    string
	IsError bool
}

type GlobalKeyMap struct {
	MyDay    string
	Plan     string
	Calendar string
	Backlog  string
	Help     string
	Quit     string
}

// Config carries the settings the TUI needs from the loaded configuration.
type Config struct {
	BudgetMinutes int
	PixelsPerSlot float64
	VisibleSlots  int
	ParseOptions  func(today model.Date) parse.Options
}

func DefaultConfig() Config {
	return Config{
		BudgetMinutes: 240,
		PixelsPerSlot: 2,
		VisibleSlots:  16,
		ParseOptions: func(today model.Date) parse.Options {
			return parse.Options{Today: today, Format: parse.FormatAuto, Locale: parse.LocaleFromEnv()}
		},
	}
}

type MyDayState struct {
	Items  []planner.FeedItem
	Cursor int
}

type PlanState struct {
	Proposal *planner.Proposal
	Budget   int
	Cursor   int
	Editing  bool
}

// DragState is a task picked up for dropping onto the week grid.
type DragState struct {
	TaskID string
	Title  string
}

type CalendarState struct {
	Anchor model.Date
	Day    int
	Slot   int
	Top    int
	Drag   *DragState
	Resize *calendar.ResizeSession
	// resizeRows is the keyboard equivalent of the pointer offset.
	resizeRows float64
}

type BacklogItem struct {
	Task     model.Task
	Score    int
	Ready    bool
	Blockers []string
}

type BacklogState struct {
	Items  []BacklogItem
	Cursor int
}

type CommandPaletteState struct {
	Active bool
	Input  string
}

type Model struct {
	CurrentView    View
	SelectedTaskID string
	MyDay          MyDayState
	Plan           PlanState
	Calendar       CalendarState
	Backlog        BacklogState
	Palette        CommandPaletteState
	EventLog       []scheduler.Event
	HelpVisible    bool
	Status         StatusBar
	Keys           GlobalKeyMap
	Quitting       bool
	LastError      error

	ctx    context.Context
	svc    *service.Service
	engine *scheduler.Engine
	logger log.FieldLogger
	cfg    Config
	today  model.Date
	tasks  []model.Task

	commandInput textinput.Model
	budgetInput  textinput.Model
	backlogTable table.Model
	helpModel    help.Model
}

// NewModel loads the current tasks and, when engine is set, queues the next
// midnight rollover and every upcoming slot start.
func NewModel(ctx context.Context, svc *service.Service, engine *scheduler.Engine, logger log.FieldLogger, cfg Config) Model {
	def := DefaultConfig()
	if cfg.BudgetMinutes <= 0 {
		cfg.BudgetMinutes = def.BudgetMinutes
	}
	if cfg.PixelsPerSlot < 1 {
		cfg.PixelsPerSlot = def.PixelsPerSlot
	}
	if cfg.VisibleSlots <= 0 || cfg.VisibleSlots > calendar.SlotsPerDay {
		cfg.VisibleSlots = def.VisibleSlots
	}
	if cfg.ParseOptions == nil {
		cfg.ParseOptions = def.ParseOptions
	}
	if logger == nil {
		logger = log.StandardLogger()
	}

	m := Model{
		CurrentView: ViewMyDay,
		Plan:        PlanState{Budget: cfg.BudgetMinutes, Editing: true},
		Calendar:    CalendarState{Slot: 18, Top: 16},
		Keys: GlobalKeyMap{
			MyDay:    "1",
			Plan:     "2",
			Calendar: "3",
			Backlog:  "4",
			Help:     "?",
			Quit:     "q",
		},
		ctx:    ctx,
		svc:    svc,
		engine: engine,
		logger: logger,
		cfg:    cfg,
	}
	m.initBubbleComponents()
	m.reload()
	m.Calendar.Anchor = m.today
	m.Calendar.Day = weekdayIndex(m.today)
	m.scheduleRollover()
	return m
}

// reload re-reads every task and recomputes all derived views against the
// current date.
func (m *Model) reload() {
	m.today = m.svc.Today()
	all, err := m.svc.Tasks(m.ctx)
	if err != nil {
		m.fail(err)
		return
	}
	m.tasks = all

	opts := m.svc.Options()
	m.MyDay.Items = planner.MyDayFeed(all, m.today, opts.Focus, opts.FeedLimit)
	m.MyDay.Cursor = clamp(m.MyDay.Cursor, len(m.MyDay.Items))

	open := make([]model.Task, 0, len(all))
	for _, t := range all {
		if t.IsDone() || classify.IsInFocusToday(t, m.today, opts.Focus) {
			continue
		}
		open = append(open, t)
	}
	eow := planner.EndOfWeek(m.today)
	items := make([]BacklogItem, 0, len(open))
	for _, t := range planner.RankByPriority(open, m.today) {
		items = append(items, BacklogItem{
			Task:     t,
			Score:    planner.Priority(t, m.today, eow),
			Ready:    classify.ReadyToStart(t, m.today),
			Blockers: classify.Blockers(t, all),
		})
	}
	m.Backlog.Items = items
	m.Backlog.Cursor = clamp(m.Backlog.Cursor, len(m.Backlog.Items))
	m.syncBubbleData()

	if m.engine != nil {
		if _, err := m.engine.SyncSlots(all, m.svc.Now()); err != nil {
			m.logger.WithError(err).Warn("failed to queue slot events")
		}
	}
}

func (m *Model) scheduleRollover() {
	if m.engine == nil {
		return
	}
	if err := m.engine.Schedule(scheduler.RolloverEvent(m.svc.Now())); err != nil {
		m.logger.WithError(err).Warn("failed to queue midnight rollover")
	}
}

func (m *Model) fail(err error) {
	m.LastError = err
	m.Status = StatusBar{Text: err.Error(), IsError: true}
	m.logger.WithError(err).Warn("tui action failed")
}

func (m *Model) ok(format string, args ...any) {
	m.LastError = nil
	m.Status = StatusBar{Text: fmt.Sprintf(format, args...)}
}

func (m Model) taskByID(id string) (model.Task, bool) {
	for _, t := range m.tasks {
		if t.ID == id {
			return t, true
		}
	}
	return model.Task{}, false
}

// Today is the date every derived view was last computed for.
func (m Model) Today() model.Date { return m.today }

func (m Model) Tasks() []model.Task { return m.tasks }
