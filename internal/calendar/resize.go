package calendar

import (
	"errors"
	"math"

	"github.com/sandeepkv93/tempo/internal/model"
)

var ErrSessionClosed = errors.New("calendar: resize session already finished")

// ResizeSession tracks a bottom-edge drag on a scheduled task. Move updates
// the preview only; nothing is written until Commit.
type ResizeSession struct {
	task          model.Task
	start         int
	base          int
	pixelsPerSlot float64
	delta         float64
	done          bool
}

// BeginResize opens a session for t. pixelsPerSlot is the rendered height of
// one 30-minute slot; values below 1 are treated as 1.
func BeginResize(t model.Task, pixelsPerSlot float64) (*ResizeSession, error) {
	start, end, ok := Interval(t)
	if !ok {
		return nil, ErrNotScheduled
	}
	if pixelsPerSlot < 1 {
		pixelsPerSlot = 1
	}
	return &ResizeSession{
		task:          t,
		start:         start,
		base:          end - start,
		pixelsPerSlot: pixelsPerSlot,
	}, nil
}

// Move sets the pointer offset from where the drag began and returns the
// previewed duration in minutes.
func (s *ResizeSession) Move(deltaPixels float64) int {
	if !s.done {
		s.delta = deltaPixels
	}
	return s.Duration()
}

// Duration is the previewed duration: the starting duration plus whole slots,
// never below 15 minutes.
func (s *ResizeSession) Duration() int {
	slots := int(math.Floor(s.delta/s.pixelsPerSlot + 0.5))
	d := s.base + slots*SlotMinutes
	if d < MinDuration {
		d = MinDuration
	}
	return d
}

// PreviewEnd renders the end time the task would get on release.
func (s *ResizeSession) PreviewEnd() string {
	return model.FormatClock(clampEnd(s.start, s.start+s.Duration()))
}

// Commit closes the session and returns end_time and time_estimate together.
func (s *ResizeSession) Commit() (model.TaskPatch, error) {
	if s.done {
		return model.TaskPatch{}, ErrSessionClosed
	}
	s.done = true
	end := clampEnd(s.start, s.start+s.Duration())
	estimate := end - s.start
	return model.TaskPatch{
		EndTime:      model.SetField(model.FormatClock(end)),
		TimeEstimate: model.SetField(&estimate),
	}, nil
}

// Cancel discards the preview. A cancelled session cannot be committed.
func (s *ResizeSession) Cancel() {
	s.done = true
	s.delta = 0
}

func (s *ResizeSession) Task() model.Task { return s.task }

func (s *ResizeSession) Done() bool { return s.done }

// ResizeTo builds the same patch a committed session would for an explicit
// duration in minutes.
func ResizeTo(t model.Task, minutes int) (model.TaskPatch, error) {
	start, _, ok := Interval(t)
	if !ok {
		return model.TaskPatch{}, ErrNotScheduled
	}
	if minutes < MinDuration {
		minutes = MinDuration
	}
	end := clampEnd(start, start+minutes)
	estimate := end - start
	return model.TaskPatch{
		EndTime:      model.SetField(model.FormatClock(end)),
		TimeEstimate: model.SetField(&estimate),
	}, nil
}
