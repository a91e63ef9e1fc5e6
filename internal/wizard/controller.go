// Package wizard implements the six-step board meeting wizard: the step pointer,
// per-step validation and the draft replacement contract.
package wizard

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/boardflow/backend/internal/fixtures"
	"github.com/boardflow/backend/internal/models"
	"github.com/boardflow/backend/pkg/apperr"
)

var (
	ErrFirstStep   = apperr.Conflict("already at the first step")
	ErrLastStep    = apperr.Conflict("already at the review step; submit instead")
	ErrNotAtReview = apperr.Conflict("submit is only available at the review step")
	ErrCompleted   = apperr.Conflict("wizard already completed")
)

// StepError is returned when validation blocks a transition.
type StepError struct {
	Step   Step
	Fields FieldErrors
}

func (e *StepError) Error() string {
	return fmt.Sprintf("%s has %d invalid field(s)", e.Step, len(e.Fields))
}

// CompleteFunc receives the finished draft.
type CompleteFunc func(models.MeetingDraft)

// Controller owns a draft and the step pointer. It is not safe for concurrent use.
type Controller struct {
	step       Step
	draft      models.MeetingDraft
	errors     FieldErrors
	completed  bool
	onComplete CompleteFunc
	reducer    Reducer
	logger     *zap.Logger
}

// NewController opens a wizard at step one with an empty draft.
func NewController(onComplete CompleteFunc, logger *zap.Logger) *Controller {
	if logger == nil {
		logger = zap.NewNop()
	}
	if onComplete == nil {
		onComplete = func(models.MeetingDraft) {}
	}
	return &Controller{
		step:       StepMeetingDetails,
		draft:      models.NewMeetingDraft(),
		errors:     FieldErrors{},
		onComplete: onComplete,
		reducer:    NewReducer(),
		logger:     logger,
	}
}

// SetReducer replaces the reducer used by Dispatch.
func (c *Controller) SetReducer(r Reducer) { c.reducer = r }

func (c *Controller) Step() Step { return c.step }

func (c *Controller) Completed() bool { return c.completed }

// Draft returns a copy of the current draft.
func (c *Controller) Draft() models.MeetingDraft { return c.draft.Clone() }

// Errors returns a copy of the field errors of the last failed transition.
func (c *Controller) Errors() FieldErrors {
	out := make(FieldErrors, len(c.errors))
	for k, v := range c.errors {
		out[k] = v
	}
	return out
}

// UpdateFormData replaces the whole draft. When the meeting type changes to a
// non-empty value the agenda is regenerated from that type's template.
func (c *Controller) UpdateFormData(next models.MeetingDraft) error {
	if c.completed {
		return ErrCompleted
	}
	next = next.Clone()
	if next.MeetingType != "" && next.MeetingType != c.draft.MeetingType {
		next.AgendaItems = fixtures.DefaultAgendaItems(next.MeetingType)
		c.logger.Debug("agenda regenerated for meeting type",
			zap.String("meeting_type", next.MeetingType),
			zap.Int("items", len(next.AgendaItems)),
		)
	}
	c.draft = next
	return nil
}

// Dispatch applies a step operation and feeds the result through UpdateFormData.
func (c *Controller) Dispatch(a Action) error {
	if c.completed {
		return ErrCompleted
	}
	next, err := c.reducer.Apply(c.draft, a)
	if err != nil {
		return err
	}
	return c.UpdateFormData(next)
}

// Next validates the current step and advances on success.
func (c *Controller) Next() error {
	if c.completed {
		return ErrCompleted
	}
	if c.step == StepReview {
		return ErrLastStep
	}
	errs := ValidateStep(c.step, c.draft)
	c.errors = errs
	if len(errs) > 0 {
		return &StepError{Step: c.step, Fields: errs}
	}
	c.step++
	return nil
}

// Previous goes back one step without validating.
func (c *Controller) Previous() error {
	if c.completed {
		return ErrCompleted
	}
	if c.step == StepMeetingDetails {
		return ErrFirstStep
	}
	c.step--
	return nil
}

// Submit re-validates every step and hands the draft to the completion callback once.
func (c *Controller) Submit() error {
	if c.completed {
		return ErrCompleted
	}
	if c.step != StepReview {
		return ErrNotAtReview
	}
	errs := ValidateAll(c.draft)
	c.errors = errs
	if len(errs) > 0 {
		return &StepError{Step: c.step, Fields: errs}
	}
	c.completed = true
	c.logger.Info("meeting wizard completed", zap.String("title", c.draft.Title))
	c.onComplete(c.draft.Clone())
	return nil
}
