package html

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	theme "github.com/goliatone/go-theme"
	"github.com/microcosm-cc/bluemonday"
	"github.com/rs/zerolog"

	"github.com/goliatone/go-formstate/pkg/form"
	"github.com/goliatone/go-formstate/pkg/render"
	rendertemplate "github.com/goliatone/go-formstate/pkg/render/template"
	"github.com/goliatone/go-formstate/pkg/render/template/gotemplate"
	"github.com/goliatone/go-formstate/pkg/widgets"
)

// Chrome classes applied around fields.
const (
	DefaultFormClass      = "formstate-form"
	DefaultErrorClass     = "form-error"
	DefaultFormErrorClass = "form-error form-error--form"
	InvalidClass          = "has-error"
)

// ErrUnknownField is returned by RenderField for names the snapshot lacks.
var ErrUnknownField = errors.New("html renderer: unknown field")

// Option configures the renderer.
type Option func(*config)

type config struct {
	templateFS       fs.FS
	templateRenderer rendertemplate.TemplateRenderer
	selector         theme.ThemeSelector
	themeName        string
	themeVariant     string
	sanitizer        *bluemonday.Policy
	action           string
	method           string
	submitLabel      string
	logger           zerolog.Logger
}

// WithTemplatesFS supplies an alternate template bundle.
func WithTemplatesFS(files fs.FS) Option {
	return func(cfg *config) {
		if files != nil {
			cfg.templateFS = files
		}
	}
}

// WithTemplatesDir loads templates from a directory on disk.
func WithTemplatesDir(path string) Option {
	return func(cfg *config) {
		if strings.TrimSpace(path) == "" {
			return
		}
		cfg.templateFS = os.DirFS(path)
	}
}

// WithTemplateRenderer injects a custom template engine.
func WithTemplateRenderer(renderer rendertemplate.TemplateRenderer) Option {
	return func(cfg *config) {
		if renderer != nil {
			cfg.templateRenderer = renderer
		}
	}
}

// WithThemeSelector resolves classification tags from a go-theme selection
// on every render. The snapshot classes are the fallback.
func WithThemeSelector(selector theme.ThemeSelector, name, variant string) Option {
	return func(cfg *config) {
		cfg.selector = selector
		cfg.themeName = strings.TrimSpace(name)
		cfg.themeVariant = strings.TrimSpace(variant)
	}
}

// WithSanitizer replaces the error message policy.
func WithSanitizer(policy *bluemonday.Policy) Option {
	return func(cfg *config) {
		if policy != nil {
			cfg.sanitizer = policy
		}
	}
}

// WithAction sets the form action and method attributes.
func WithAction(action, method string) Option {
	return func(cfg *config) {
		cfg.action = strings.TrimSpace(action)
		if trimmed := strings.ToLower(strings.TrimSpace(method)); trimmed != "" {
			cfg.method = trimmed
		}
	}
}

// WithSubmitLabel overrides the submit button text.
func WithSubmitLabel(label string) Option {
	return func(cfg *config) {
		if trimmed := strings.TrimSpace(label); trimmed != "" {
			cfg.submitLabel = trimmed
		}
	}
}

// WithLogger sets the logger used for theme resolution warnings.
func WithLogger(logger zerolog.Logger) Option {
	return func(cfg *config) {
		cfg.logger = logger
	}
}

// Renderer renders snapshots as HTML forms using pongo2 templates.
type Renderer struct {
	templates rendertemplate.TemplateRenderer
	cfg       config
}

var _ render.Renderer = (*Renderer)(nil)

// New constructs the renderer applying any provided options.
func New(options ...Option) (*Renderer, error) {
	cfg := config{
		templateFS:  TemplatesFS(),
		sanitizer:   MessagePolicy(),
		method:      "post",
		submitLabel: "Submit",
		logger:      zerolog.Nop(),
	}
	for _, opt := range options {
		if opt == nil {
			continue
		}
		opt(&cfg)
	}

	templates := cfg.templateRenderer
	if templates == nil {
		engine, err := gotemplate.New(gotemplate.WithFS(cfg.templateFS))
		if err != nil {
			return nil, fmt.Errorf("html renderer: configure template renderer: %w", err)
		}
		templates = engine
	}
	return &Renderer{templates: templates, cfg: cfg}, nil
}

func (r *Renderer) Name() string {
	return "html"
}

func (r *Renderer) ContentType() string {
	return "text/html; charset=utf-8"
}

// Render produces the whole form: one wrapper per field in declaration
// order, the form-level error and a submit button disabled while loading.
func (r *Renderer) Render(ctx context.Context, snapshot form.Snapshot) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	classes := r.classes(snapshot)

	fields := make([]any, 0, snapshot.Fields.Len())
	for _, name := range snapshot.Fields.Names() {
		markup, err := r.renderField(snapshot, classes, name)
		if err != nil {
			return nil, err
		}
		fields = append(fields, markup)
	}

	out, err := r.templates.RenderTemplate("form", map[string]any{
		"formClass":      DefaultFormClass,
		"formErrorClass": DefaultFormErrorClass,
		"action":         r.cfg.action,
		"method":         r.cfg.method,
		"phase":          string(snapshot.Phase),
		"loading":        snapshot.Loading,
		"fields":         fields,
		"formError":      sanitizeMessage(r.cfg.sanitizer, snapshot.FormError()),
		"submitLabel":    r.cfg.submitLabel,
	})
	if err != nil {
		return nil, fmt.Errorf("html renderer: render form: %w", err)
	}
	return []byte(out), nil
}

// RenderField renders a single field wrapper.
func (r *Renderer) RenderField(snapshot form.Snapshot, name string) (string, error) {
	return r.renderField(snapshot, r.classes(snapshot), name)
}

func (r *Renderer) renderField(snapshot form.Snapshot, classes form.Classes, name string) (string, error) {
	resolution, ok := snapshot.Widget(name)
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownField, name)
	}
	data := r.fieldData(resolution, snapshot.FieldError(name), classes)

	control, err := r.templates.RenderTemplate(templateFor(resolution.Widget.Variant()), data)
	if err != nil {
		return "", fmt.Errorf("html renderer: render field %q: %w", name, err)
	}
	data["control"] = strings.TrimSpace(control)

	wrapper, err := r.templates.RenderTemplate("field", data)
	if err != nil {
		return "", fmt.Errorf("html renderer: render field %q wrapper: %w", name, err)
	}
	return strings.TrimSpace(wrapper), nil
}

func (r *Renderer) fieldData(resolution widgets.Resolution, message string, classes form.Classes) map[string]any {
	field := resolution.Field
	widget := resolution.Widget
	value := widget.Coerce(field.Value)
	message = sanitizeMessage(r.cfg.sanitizer, message)

	wrapper := render.ClassNames(classes.FieldWrapper, "field-"+cssName(field.Name))
	if message != "" {
		wrapper = render.ClassNames(wrapper, InvalidClass)
	}

	data := map[string]any{
		"name":         field.Name,
		"id":           controlID(field.Name),
		"errorId":      controlID(field.Name) + "-error",
		"label":        field.Label,
		"labelClass":   render.ClassNames(field.Class, classes.Label, labelVariantClass(widget.Variant())),
		"wrapperClass": wrapper,
		"errorClass":   DefaultErrorClass,
		"class":        controlClass(widget.Variant()),
		"variant":      string(widget.Variant()),
		"inputType":    widget.InputType(),
		"placeholder":  widget.Placeholder(field),
		"value":        value.String(),
		"checked":      value.IsBool() && value.Truthy(),
		"error":        message,
		"fallback":     resolution.Fallback,
	}
	if opts := widget.Options(field); opts != nil {
		data["options"] = optionData(opts)
	}
	return data
}

func (r *Renderer) classes(snapshot form.Snapshot) form.Classes {
	classes := snapshot.Classes
	if r.cfg.selector == nil {
		return classes
	}
	selection, err := r.cfg.selector.Select(r.cfg.themeName, r.cfg.themeVariant)
	if err != nil {
		r.cfg.logger.Warn().Err(err).Str("theme", r.cfg.themeName).Msg("html renderer: theme selection failed")
		return classes
	}
	return render.ThemeClasses(selection, classes)
}

func optionData(options []widgets.Option) []any {
	out := make([]any, 0, len(options))
	for _, option := range options {
		out = append(out, map[string]any{
			"value":    option.Value,
			"label":    option.Label,
			"disabled": option.Disabled,
			"selected": option.Selected,
		})
	}
	return out
}

func templateFor(variant widgets.Variant) string {
	switch variant {
	case widgets.VariantTextarea:
		return "textarea"
	case widgets.VariantSelect:
		return "select"
	case widgets.VariantCheckbox:
		return "checkbox"
	default:
		return "input"
	}
}

// labelVariantClass tags labels with the widget they wrap.
func labelVariantClass(variant widgets.Variant) string {
	switch variant {
	case widgets.VariantTextarea:
		return "text-area-input"
	case widgets.VariantSelect:
		return "select-input"
	case widgets.VariantCheckbox:
		return "checkbox-input"
	default:
		return "text-input"
	}
}

func controlClass(variant widgets.Variant) string {
	switch variant {
	case widgets.VariantTextarea:
		return "textarea"
	case widgets.VariantSelect:
		return "select-css"
	case widgets.VariantCheckbox:
		return "checkbox"
	default:
		return ""
	}
}

func controlID(name string) string {
	return "fs-" + cssName(name)
}

func cssName(name string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '-'
		}
	}, strings.TrimSpace(name))
}
