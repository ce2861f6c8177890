package domain

import (
	"fmt"
	"strings"
	"time"
)

// EventInput describes a milestone to append to a timeline.
type EventInput struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	Location    string     `json:"location"`
	Timestamp   *time.Time `json:"timestamp,omitempty"`
	Completed   bool       `json:"completed"`
	// Placeholder marks a future milestone: it keeps a nil timestamp
	// instead of being stamped with the current time.
	Placeholder bool `json:"placeholder,omitempty"`
}

// EventPatch carries a partial in-place edit of one progress event.
type EventPatch struct {
	Title       *string    `json:"title,omitempty"`
	Description *string    `json:"description,omitempty"`
	Location    *string    `json:"location,omitempty"`
	Completed   *bool      `json:"completed,omitempty"`
	Timestamp   *time.Time `json:"timestamp,omitempty"`
	// ClearTimestamp turns the event back into a placeholder. It wins over Timestamp.
	ClearTimestamp bool `json:"clear_timestamp,omitempty"`
}

// AppendEvent adds a milestone at the end of the timeline and re-derives the
// shipment's location and status from it.
func (s *Shipment) AppendEvent(in EventInput, now time.Time) error {
	ev := ProgressEvent{
		Title:       strings.TrimSpace(in.Title),
		Description: strings.TrimSpace(in.Description),
		Location:    strings.TrimSpace(in.Location),
		Timestamp:   copyTime(in.Timestamp),
		Completed:   in.Completed,
	}
	if err := ValidateEvent(ev); err != nil {
		return err
	}
	if ev.Timestamp == nil && !in.Placeholder {
		t := now.UTC()
		ev.Timestamp = &t
	}

	s.Progress = append(s.Progress, ev)
	s.deriveFromLast()
	return nil
}

// EditEvent edits the event at index in place. The event keeps its position;
// only an edit of the last event changes the derived fields.
func (s *Shipment) EditEvent(index int, p EventPatch) error {
	if err := s.checkIndex(index); err != nil {
		return err
	}

	ev := s.Progress[index]
	if p.Title != nil {
		ev.Title = strings.TrimSpace(*p.Title)
	}
	if p.Description != nil {
		ev.Description = strings.TrimSpace(*p.Description)
	}
	if p.Location != nil {
		ev.Location = strings.TrimSpace(*p.Location)
	}
	if p.Completed != nil {
		ev.Completed = *p.Completed
	}
	switch {
	case p.ClearTimestamp:
		ev.Timestamp = nil
	case p.Timestamp != nil:
		ev.Timestamp = copyTime(p.Timestamp)
	}
	if err := ValidateEvent(ev); err != nil {
		return err
	}

	s.Progress[index] = ev
	if index == len(s.Progress)-1 {
		s.deriveFromLast()
	}
	return nil
}

// RemoveEvent deletes the event at index. The last remaining event cannot be removed.
func (s *Shipment) RemoveEvent(index int) error {
	if err := s.checkIndex(index); err != nil {
		return err
	}
	if len(s.Progress) == 1 {
		return fmt.Errorf("%w: a shipment must keep at least one progress event", ErrValidation)
	}

	progress := make([]ProgressEvent, 0, len(s.Progress)-1)
	progress = append(progress, s.Progress[:index]...)
	progress = append(progress, s.Progress[index+1:]...)
	s.Progress = progress
	s.deriveFromLast()
	return nil
}

// ToggleCompleted flips the completed flag of one event. Timestamp, status and
// current location are left as they are.
func (s *Shipment) ToggleCompleted(index int) error {
	if err := s.checkIndex(index); err != nil {
		return err
	}
	s.Progress[index].Completed = !s.Progress[index].Completed
	return nil
}

// DeriveStatus applies the status rule to the last event of a timeline.
// An incomplete trailing event never regresses the current status.
func DeriveStatus(last ProgressEvent, current Status) Status {
	if !last.Completed {
		return current
	}
	switch {
	case strings.EqualFold(strings.TrimSpace(last.Title), string(StatusDelivered)):
		return StatusDelivered
	case strings.EqualFold(strings.TrimSpace(last.Title), string(StatusOutForDelivery)):
		return StatusOutForDelivery
	default:
		return StatusInTransit
	}
}

func (s *Shipment) deriveFromLast() {
	last := s.LastEvent()
	if last == nil {
		return
	}
	s.CurrentLocation = last.Location
	s.Status = DeriveStatus(*last, s.Status)
}

func (s *Shipment) checkIndex(index int) error {
	if index < 0 || index >= len(s.Progress) {
		return fmt.Errorf("%w: progress index %d out of range [0, %d)", ErrValidation, index, len(s.Progress))
	}
	return nil
}
