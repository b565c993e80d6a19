package loader

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-formstate/pkg/form"
	"github.com/goliatone/go-formstate/pkg/model"
	"github.com/goliatone/go-formstate/pkg/validation"
	"github.com/goliatone/go-formstate/pkg/widgets"
)

var (
	// ErrEmptyDocument is returned when the source holds no content.
	ErrEmptyDocument = errors.New("loader: document is empty")
	// ErrNoFields is returned when a document declares no fields.
	ErrNoFields = errors.New("loader: document declares no fields")
)

// Document is the decoded form definition.
type Document struct {
	Title             string      `json:"title,omitempty" yaml:"title,omitempty"`
	LabelClass        string      `json:"labelClass,omitempty" yaml:"labelClass,omitempty"`
	FieldWrapperClass string      `json:"fieldWrapperClass,omitempty" yaml:"fieldWrapperClass,omitempty"`
	Endpoint          string      `json:"endpoint,omitempty" yaml:"endpoint,omitempty"`
	Method            string      `json:"method,omitempty" yaml:"method,omitempty"`
	Specs             []FieldSpec `json:"fields" yaml:"fields"`

	// Source names where the document was read from, for error messages.
	Source string `json:"-" yaml:"-"`
}

// FieldSpec declares a single field. Type is accepted as an alias for Kind.
type FieldSpec struct {
	Name        string            `json:"name" yaml:"name"`
	Kind        string            `json:"kind,omitempty" yaml:"kind,omitempty"`
	Type        string            `json:"type,omitempty" yaml:"type,omitempty"`
	Label       string            `json:"label,omitempty" yaml:"label,omitempty"`
	Placeholder string            `json:"placeholder,omitempty" yaml:"placeholder,omitempty"`
	Class       string            `json:"class,omitempty" yaml:"class,omitempty"`
	Value       any               `json:"value,omitempty" yaml:"value,omitempty"`
	Options     []string          `json:"options,omitempty" yaml:"options,omitempty"`
	Widget      string            `json:"widget,omitempty" yaml:"widget,omitempty"`
	Metadata    map[string]string `json:"metadata,omitempty" yaml:"metadata,omitempty"`
	Rules       []validation.Rule `json:"rules,omitempty" yaml:"rules,omitempty"`
}

// Diagnostic reports a recoverable problem found while building fields.
type Diagnostic struct {
	Field   string
	Message string
}

func (d Diagnostic) String() string {
	if d.Field == "" {
		return d.Message
	}
	return d.Field + ": " + d.Message
}

// Parse decodes a YAML or JSON document. Unknown keys are rejected.
func Parse(data []byte) (Document, error) {
	return parse(data, "document")
}

// LoadFile reads and parses the document at path.
func LoadFile(path string) (Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Document{}, fmt.Errorf("loader: read %s: %w", path, err)
	}
	return parse(data, path)
}

// LoadFS reads and parses the document at path inside fsys.
func LoadFS(fsys fs.FS, path string) (Document, error) {
	if fsys == nil {
		return Document{}, fmt.Errorf("loader: nil filesystem for %s", path)
	}
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return Document{}, fmt.Errorf("loader: read %s: %w", path, err)
	}
	return parse(data, path)
}

func parse(data []byte, source string) (Document, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return Document{}, fmt.Errorf("%w: %s", ErrEmptyDocument, source)
	}

	// YAML is a superset of JSON, so a single decoder covers both formats.
	decoder := yaml.NewDecoder(bytes.NewReader(data))
	decoder.KnownFields(true)

	var doc Document
	if err := decoder.Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return Document{}, fmt.Errorf("%w: %s", ErrEmptyDocument, source)
		}
		return Document{}, fmt.Errorf("loader: parse %s: %w", source, err)
	}
	if len(doc.Specs) == 0 {
		return Document{}, fmt.Errorf("%w: %s", ErrNoFields, source)
	}
	doc.Source = source
	return doc, nil
}

// Fields builds model fields in declaration order. Unknown kinds are kept
// as declared so the controller's fallback applies, and reported as
// diagnostics. Blank or duplicate names and invalid rules are errors.
func (d Document) Fields() ([]model.Field, []Diagnostic, error) {
	fields := make([]model.Field, 0, len(d.Specs))
	seen := make(map[string]struct{}, len(d.Specs))
	var diagnostics []Diagnostic

	for idx, entry := range d.Specs {
		name := strings.TrimSpace(entry.Name)
		if name == "" {
			return nil, nil, fmt.Errorf("loader: %s field %d: %w", d.source(), idx, model.ErrFieldNameRequired)
		}
		if _, exists := seen[name]; exists {
			return nil, nil, fmt.Errorf("loader: %s: %w: %q", d.source(), model.ErrDuplicateField, name)
		}
		seen[name] = struct{}{}

		rawKind := entry.Kind
		if strings.TrimSpace(rawKind) == "" {
			rawKind = entry.Type
		}
		kind, known := model.ParseKind(rawKind)
		if !known {
			kind = model.Kind(strings.ToLower(strings.TrimSpace(rawKind)))
			diagnostics = append(diagnostics, Diagnostic{
				Field:   name,
				Message: fmt.Sprintf("unknown kind %q rendered as text", rawKind),
			})
		}

		if kind == model.KindSelect && len(entry.Options) == 0 {
			return nil, nil, fmt.Errorf("loader: %s: %w: %q", d.source(), model.ErrOptionsRequired, name)
		}

		validators, err := validation.FromRules(entry.Rules)
		if err != nil {
			return nil, nil, fmt.Errorf("loader: %s field %q: %w", d.source(), name, err)
		}

		fields = append(fields, model.Field{
			Name:        name,
			Kind:        kind,
			Value:       initialValue(kind, entry.Value),
			Label:       entry.Label,
			Placeholder: entry.Placeholder,
			Class:       entry.Class,
			Options:     append([]string(nil), entry.Options...),
			Metadata:    metadata(entry),
			Validators:  validators,
		})
	}
	return fields, diagnostics, nil
}

// Options returns the controller options the document configures.
func (d Document) Options() []form.Option {
	var opts []form.Option
	if strings.TrimSpace(d.LabelClass) != "" {
		opts = append(opts, form.WithLabelClass(d.LabelClass))
	}
	if strings.TrimSpace(d.FieldWrapperClass) != "" {
		opts = append(opts, form.WithFieldWrapperClass(d.FieldWrapperClass))
	}
	return opts
}

func (d Document) source() string {
	if d.Source == "" {
		return "document"
	}
	return d.Source
}

func initialValue(kind model.Kind, raw any) model.Value {
	return kind.Normalize(model.ValueOf(raw))
}

func metadata(entry FieldSpec) map[string]string {
	if len(entry.Metadata) == 0 && strings.TrimSpace(entry.Widget) == "" {
		return nil
	}
	out := make(map[string]string, len(entry.Metadata)+1)
	for key, value := range entry.Metadata {
		out[key] = value
	}
	if widget := strings.TrimSpace(entry.Widget); widget != "" {
		out[widgets.MetadataKey] = widget
	}
	return out
}
