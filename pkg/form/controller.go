package form

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/rs/zerolog"

	"github.com/goliatone/go-formstate/pkg/model"
	"github.com/goliatone/go-formstate/pkg/validation"
	"github.com/goliatone/go-formstate/pkg/widgets"
)

// Phase is the position of the controller in the submission lifecycle.
type Phase string

const (
	PhaseIdle       Phase = "idle"
	PhaseValidating Phase = "validating"
	PhaseInvalid    Phase = "invalid"
	PhaseSubmitting Phase = "submitting"
	PhasePosted     Phase = "posted"
	// PhaseFailed is idle with the errors reported by the submit function.
	PhaseFailed Phase = "failed"
)

// Values is the flattened projection of a form: field name to its raw
// value, a string for every kind except checkbox, which is a strict bool.
type Values map[string]any

// SubmitFunc persists the flattened values and reports server or business
// errors in ErrorMap form. An empty (or all-blank) map means success. A
// non-nil error is published as a form-level message; it does not make
// Submit fail.
type SubmitFunc func(ctx context.Context, values Values) (validation.ErrorMap, error)

// Result describes a submit attempt that reached the submit function.
type Result struct {
	Posted bool
	Errors validation.ErrorMap
}

// Diagnostic flags a field definition the controller accepted with a
// degraded behaviour.
type Diagnostic struct {
	Field   string
	Kind    model.Kind
	Message string
}

type listenerEntry struct {
	id int
	fn Listener
}

// Controller owns the state of one form instance. It is safe for concurrent
// use; listeners run outside the internal lock.
type Controller struct {
	mu sync.Mutex

	fields  model.Fields
	errors  validation.ErrorMap
	loading bool
	posted  bool
	phase   Phase

	submit      SubmitFunc
	classes     Classes
	logger      zerolog.Logger
	widgets     *widgets.Registry
	diagnostics []Diagnostic

	listeners  []listenerEntry
	listenerID int
}

// New builds a controller from the initial fields, in presentation order.
func New(fields []model.Field, submit SubmitFunc, options ...Option) (*Controller, error) {
	if submit == nil {
		return nil, ErrSubmitterRequired
	}
	initial, err := model.NewFields(fields...)
	if err != nil {
		return nil, fmt.Errorf("form: %w", err)
	}

	c := &Controller{
		fields:  initial,
		errors:  make(validation.ErrorMap),
		phase:   PhaseIdle,
		submit:  submit,
		classes: DefaultClasses(),
		logger:  zerolog.Nop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(c)
	}

	for _, name := range initial.Names() {
		field, _ := initial.Get(name)
		if res := c.widgets.Resolve(field); res.Fallback {
			diag := Diagnostic{
				Field:   name,
				Kind:    field.Kind,
				Message: fmt.Sprintf("unknown field kind %q rendered as %s", field.Kind, res.Widget.InputType()),
			}
			c.diagnostics = append(c.diagnostics, diag)
			c.logger.Warn().
				Str("field", name).
				Str("kind", string(field.Kind)).
				Str("widget", res.Widget.InputType()).
				Msg("form: unknown field kind, falling back")
		}
	}
	return c, nil
}

// WithWidgets installs a widget registry used for dispatch and flattening.
func WithWidgets(registry *widgets.Registry) Option {
	return func(c *Controller) {
		c.widgets = registry
	}
}

// Change replaces the value of a single field. Other fields and the
// published errors are left untouched.
func (c *Controller) Change(name string, value model.Value) error {
	c.mu.Lock()
	updated, err := c.fields.With(name, value)
	if err != nil {
		c.mu.Unlock()
		return fmt.Errorf("form: change: %w", err)
	}
	c.fields = updated
	snap := c.snapshotLocked()
	c.mu.Unlock()

	c.notify(snap)
	return nil
}

// ChangeHandler returns an event handler bound to one field.
func (c *Controller) ChangeHandler(name string) func(model.Value) error {
	return func(value model.Value) error {
		return c.Change(name, value)
	}
}

// Submit validates every field and, when all pass, hands the flattened
// values to the submit function.
//
// A failed validation returns a *ValidationError carrying the field errors;
// the submit function is not called and loading is never set. Otherwise the
// submit function's errors replace the published errors and Submit returns
// a nil error, with Result.Posted reporting whether they were empty.
// ErrSubmitInFlight is returned while a previous attempt is unresolved. A
// panicking submit function resolves the attempt as failed and Submit
// returns ErrSubmitPanicked along with the result.
func (c *Controller) Submit(ctx context.Context) (Result, error) {
	if ctx == nil {
		ctx = context.Background()
	}
	if err := ctx.Err(); err != nil {
		return Result{}, err
	}

	c.mu.Lock()
	if c.phase == PhaseValidating || c.phase == PhaseSubmitting {
		c.mu.Unlock()
		return Result{}, ErrSubmitInFlight
	}
	c.posted = false
	c.phase = PhaseValidating
	data := c.fields
	c.mu.Unlock()

	validationErrs := validation.ValidateData(data)

	c.mu.Lock()
	c.errors = validationErrs.Clone()
	if validation.HasErrors(validationErrs) {
		c.phase = PhaseInvalid
		snap := c.snapshotLocked()
		c.mu.Unlock()

		c.logger.Debug().Int("errors", len(validationErrs)).Msg("form: submit rejected by validation")
		c.notify(snap)
		return Result{}, &ValidationError{Errors: validationErrs}
	}
	c.loading = true
	c.phase = PhaseSubmitting
	values := Flatten(data, c.widgets)
	snap := c.snapshotLocked()
	c.mu.Unlock()

	c.notify(snap)
	c.logger.Debug().Int("fields", len(values)).Msg("form: submitting")

	serverErrs, err := c.callSubmit(ctx, values)
	published := serverErrs.Clone()
	if err != nil {
		c.logger.Error().Err(err).Msg("form: submit function failed")
		if published.Form() == "" {
			published[validation.FormErrorKey] = err.Error()
		}
	}

	c.mu.Lock()
	c.errors = published
	c.loading = false
	if validation.HasErrors(published) {
		c.phase = PhaseFailed
	} else {
		c.posted = true
		c.phase = PhasePosted
	}
	result := Result{Posted: c.posted, Errors: published.Clone()}
	snap = c.snapshotLocked()
	c.mu.Unlock()

	c.logger.Debug().Bool("posted", result.Posted).Msg("form: submit resolved")
	c.notify(snap)
	if errors.Is(err, ErrSubmitPanicked) {
		return result, err
	}
	return result, nil
}

// callSubmit runs the submit function, turning a panic into an error so the
// attempt always resolves.
func (c *Controller) callSubmit(ctx context.Context, values Values) (errs validation.ErrorMap, err error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			errs = nil
			err = fmt.Errorf("%w: %v", ErrSubmitPanicked, recovered)
		}
	}()
	return c.submit(ctx, values)
}

// SetErrors publishes errs wholesale, for example errors a caller obtained
// outside Submit. Phase and flags are unchanged.
func (c *Controller) SetErrors(errs validation.ErrorMap) {
	c.mu.Lock()
	c.errors = errs.Clone()
	snap := c.snapshotLocked()
	c.mu.Unlock()

	c.notify(snap)
}

// Snapshot returns a copy of the published state.
func (c *Controller) Snapshot() Snapshot {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.snapshotLocked()
}

// Loading reports whether a submission is awaiting the submit function.
func (c *Controller) Loading() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.loading
}

// Posted reports whether the last submission succeeded.
func (c *Controller) Posted() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.posted
}

// Phase returns the current lifecycle phase.
func (c *Controller) Phase() Phase {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.phase
}

// Fields returns the current fields.
func (c *Controller) Fields() model.Fields {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fields
}

// Errors returns a copy of the published errors.
func (c *Controller) Errors() validation.ErrorMap {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.errors.Clone()
}

// FormError returns the published form-level message.
func (c *Controller) FormError() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.errors.Form()
}

// Values returns the flattened projection of the current fields.
func (c *Controller) Values() Values {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Flatten(c.fields, c.widgets)
}

// Classes returns the configured classification tags.
func (c *Controller) Classes() Classes {
	return c.classes
}

// Diagnostics lists the degraded field definitions found by New.
func (c *Controller) Diagnostics() []Diagnostic {
	return append([]Diagnostic(nil), c.diagnostics...)
}

// Widget resolves the presentation behaviour of the named field.
func (c *Controller) Widget(name string) (widgets.Resolution, error) {
	c.mu.Lock()
	field, ok := c.fields.Get(name)
	c.mu.Unlock()
	if !ok {
		return widgets.Resolution{}, fmt.Errorf("form: widget: %w: %q", model.ErrUnknownField, name)
	}
	return c.widgets.Resolve(field), nil
}

// Subscribe registers fn for every published change and returns a function
// removing it.
func (c *Controller) Subscribe(fn Listener) (cancel func()) {
	if fn == nil {
		return func() {}
	}
	c.mu.Lock()
	id := c.nextListenerID()
	c.listeners = append(c.listeners, listenerEntry{id: id, fn: fn})
	c.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() {
			c.mu.Lock()
			defer c.mu.Unlock()
			for idx, entry := range c.listeners {
				if entry.id == id {
					c.listeners = append(c.listeners[:idx:idx], c.listeners[idx+1:]...)
					return
				}
			}
		})
	}
}

func (c *Controller) nextListenerID() int {
	c.listenerID++
	return c.listenerID
}

func (c *Controller) snapshotLocked() Snapshot {
	return Snapshot{
		Phase:   c.phase,
		Loading: c.loading,
		Posted:  c.posted,
		Fields:  c.fields,
		Errors:  c.errors.Clone(),
		Classes: c.classes,
		widgets: c.widgets,
	}
}

func (c *Controller) notify(snap Snapshot) {
	c.mu.Lock()
	if len(c.listeners) == 0 {
		c.mu.Unlock()
		return
	}
	listeners := append([]listenerEntry(nil), c.listeners...)
	c.mu.Unlock()

	for _, entry := range listeners {
		entry.fn(snap)
	}
}

// Flatten projects fields onto their raw values, coerced to the shape of
// each field's widget. Labels, validators and metadata are dropped.
func Flatten(fields model.Fields, registry *widgets.Registry) Values {
	out := make(Values, fields.Len())
	for _, name := range fields.Names() {
		field, _ := fields.Get(name)
		res := registry.Resolve(field)
		out[name] = res.Widget.Coerce(field.Value).Raw()
	}
	return out
}
