// Package form implements the recipe form state machine:
// idle -> loading -> succeeded | failed.
package form

import (
	"context"
	"strconv"
	"strings"
	"sync"

	"github.com/hammamikhairi/recipegen/internal/domain"
	"github.com/hammamikhairi/recipegen/internal/logger"
)

// Option configures the controller.
type Option func(*Controller)

// WithNotifier sets where one-shot success and error notifications go.
func WithNotifier(n domain.Notifier) Option {
	return func(c *Controller) {
		c.notifier = n
	}
}

// WithObserver registers a callback invoked with a snapshot after every
// state change. It runs with no lock held.
func WithObserver(fn func(domain.FormState)) Option {
	return func(c *Controller) {
		c.observers = append(c.observers, fn)
	}
}

// Controller owns the FormState. It depends only on interfaces and is
// fully testable with fakes. All methods are safe for concurrent use.
type Controller struct {
	service   domain.RecipeService
	notifier  domain.Notifier
	observers []func(domain.FormState)
	log       *logger.Logger

	mu    sync.Mutex
	state domain.FormState
}

// New creates a form controller with default field values.
func New(service domain.RecipeService, log *logger.Logger, opts ...Option) *Controller {
	c := &Controller{
		service: service,
		log:     log,
		state:   domain.NewFormState(),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Snapshot returns a copy of the current state.
func (c *Controller) Snapshot() domain.FormState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state.Clone()
}

// SetPending updates the ingredient text being typed.
func (c *Controller) SetPending(text string) {
	c.update(func(s *domain.FormState) bool {
		if s.Pending == text {
			return false
		}
		s.Pending = text
		return true
	})
}

// AddIngredient commits the pending text as an ingredient. Whitespace-only
// text is ignored. Reports whether an ingredient was added.
func (c *Controller) AddIngredient() bool {
	return c.update(func(s *domain.FormState) bool {
		ing := strings.TrimSpace(s.Pending)
		if ing == "" {
			return false
		}
		s.Ingredients = append(s.Ingredients, ing)
		s.Pending = ""
		c.log.Debug("form: added ingredient %q (%d total)", ing, len(s.Ingredients))
		return true
	})
}

// RemoveIngredient drops the ingredient at index i, keeping the order of
// the rest. Out-of-range indexes are ignored.
func (c *Controller) RemoveIngredient(i int) bool {
	return c.update(func(s *domain.FormState) bool {
		if i < 0 || i >= len(s.Ingredients) {
			return false
		}
		c.log.Debug("form: removed ingredient %q", s.Ingredients[i])
		s.Ingredients = append(s.Ingredients[:i:i], s.Ingredients[i+1:]...)
		return true
	})
}

// SetCuisine selects a cuisine type from domain.Cuisines.
func (c *Controller) SetCuisine(cuisine string) error {
	if !domain.IsCuisine(cuisine) {
		return domain.ErrUnknownCuisine
	}
	if !c.update(func(s *domain.FormState) bool {
		s.CuisineType = cuisine
		return true
	}) {
		return domain.ErrSubmitInFlight
	}
	return nil
}

// SetLanguage selects a language code from domain.Languages.
func (c *Controller) SetLanguage(code string) error {
	if !domain.IsLanguage(code) {
		return domain.ErrUnknownLanguage
	}
	if !c.update(func(s *domain.FormState) bool {
		s.Language = code
		return true
	}) {
		return domain.ErrSubmitInFlight
	}
	return nil
}

// SetDuration sets the target duration in minutes. Values outside
// [MinDuration, MaxDuration] are rejected and the prior value kept.
func (c *Controller) SetDuration(minutes int) bool {
	if minutes < domain.MinDuration || minutes > domain.MaxDuration {
		return false
	}
	return c.update(func(s *domain.FormState) bool {
		s.Duration = minutes
		return true
	})
}

// SetDurationText parses user text as a duration. Non-numeric input is
// rejected like out-of-range input.
func (c *Controller) SetDurationText(text string) bool {
	n, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		return false
	}
	return c.SetDuration(n)
}

// Reset restores every field to its default and clears any result or
// error. Not allowed while a request is in flight.
func (c *Controller) Reset() error {
	c.mu.Lock()
	if c.state.Busy() {
		c.mu.Unlock()
		return domain.ErrSubmitInFlight
	}
	c.state = domain.NewFormState()
	snap := c.state.Clone()
	c.mu.Unlock()

	c.log.Debug("form: reset")
	c.publish(snap)
	return nil
}

// Submit sends the current form to the recipe service and blocks until
// it answers. At most one submission runs at a time; a second call while
// loading returns domain.ErrSubmitInFlight without side effects.
func (c *Controller) Submit(ctx context.Context) (*domain.GenerateResponse, error) {
	c.mu.Lock()
	if c.state.Busy() {
		c.mu.Unlock()
		return nil, domain.ErrSubmitInFlight
	}

	if len(c.state.Ingredients) == 0 {
		c.state.Status = domain.StatusFailed
		c.state.LastError = domain.MsgNoIngredients
		snap := c.state.Clone()
		c.mu.Unlock()

		c.log.Debug("form: submit rejected, no ingredients")
		c.publish(snap)
		c.notifyError(ctx, domain.MsgNoIngredients)
		return nil, domain.ErrNoIngredients
	}

	req := c.state.Request()
	c.state.Status = domain.StatusLoading
	c.state.LastError = ""
	snap := c.state.Clone()
	c.mu.Unlock()
	c.publish(snap)

	c.log.Info("form: generating %s recipe in %s, %d min, ingredients=%v",
		req.CuisineType, req.Language, req.Duration, req.Ingredients)

	resp, err := c.service.GenerateRecipe(ctx, req)
	c.finish(ctx, resp, err)
	return resp, err
}

// finish records the outcome of a submission. The loading status never
// survives it.
func (c *Controller) finish(ctx context.Context, resp *domain.GenerateResponse, err error) {
	c.mu.Lock()
	if err != nil {
		msg := err.Error()
		if msg == "" {
			msg = domain.MsgGenerateFailed
		}
		c.state.Status = domain.StatusFailed
		c.state.LastError = msg
	} else {
		c.state.Status = domain.StatusSucceeded
		c.state.Result = resp
	}
	snap := c.state.Clone()
	c.mu.Unlock()

	c.publish(snap)

	if err != nil {
		c.log.Error("form: recipe generation failed: %v", err)
		c.notifyError(ctx, snap.LastError)
		return
	}

	c.log.Info("form: generated %q", resp.Recipe.Title)
	if c.notifier != nil {
		if nerr := c.notifier.Notify(ctx, domain.MsgGenerated); nerr != nil {
			c.log.Warn("form: success notification failed: %v", nerr)
		}
	}
}

// update applies fn under the lock unless a request is in flight, and
// publishes a snapshot when fn reports a change.
func (c *Controller) update(fn func(s *domain.FormState) bool) bool {
	c.mu.Lock()
	if c.state.Busy() {
		c.mu.Unlock()
		c.log.Debug("form: input ignored while loading")
		return false
	}
	changed := fn(&c.state)
	snap := c.state.Clone()
	c.mu.Unlock()

	if changed {
		c.publish(snap)
	}
	return changed
}

func (c *Controller) publish(s domain.FormState) {
	for _, fn := range c.observers {
		fn(s)
	}
}

func (c *Controller) notifyError(ctx context.Context, msg string) {
	if c.notifier == nil {
		return
	}
	if err := c.notifier.NotifyUrgent(ctx, msg); err != nil {
		c.log.Warn("form: error notification failed: %v", err)
	}
}
