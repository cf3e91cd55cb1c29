package panel

import (
	"context"
	"net/url"
	"strconv"

	"gizindir-panel/internal/handlers"
	"gizindir-panel/internal/models"
	"gizindir-panel/internal/services"
)

// Row is one rendered table line
type Row struct {
	ID    int64
	Cells []string
}

// Option is a select choice
type Option struct {
	Value string
	Label string
}

// Field is one form input
type Field struct {
	Name     string
	Label    string
	Type     string // text, email, password, textarea, date, select, checkbox
	Value    string
	Options  []Option
	Required bool
	Hint     string
}

// Checked reports whether a checkbox field is on
func (f Field) Checked() bool {
	return f.Value == "true"
}

// Form is the create/edit form of an entity page
type Form struct {
	ID      int64
	Title   string
	Fields  []Field
	Error   string
	Details []services.FieldError
}

// fill overwrites field values with submitted ones so a failed submit keeps
// what the admin typed. Passwords are never echoed back.
func (f *Form) fill(values url.Values) {
	for i := range f.Fields {
		field := &f.Fields[i]
		switch field.Type {
		case "password":
			field.Value = ""
		case "checkbox":
			field.Value = strconv.FormatBool(checked(values, field.Name))
		default:
			field.Value = values.Get(field.Name)
		}
	}
}

// Labels holds the Turkish page texts of an entity
type Labels struct {
	Title   string
	New     string
	Edit    string
	Columns []string
	Confirm string
}

// resource adapts one entity service to the table/form pages
type resource interface {
	entity() handlers.Entity
	labels() Labels
	rows(ctx context.Context) ([]Row, error)
	fields(ctx context.Context, id int64) ([]Field, error)
	submit(ctx context.Context, id int64, values url.Values) error
	remove(ctx context.Context, id int64) error
}

// formError is a rejection raised by the page itself before any service call
type formError string

func (e formError) Error() string { return string(e) }

// userLister is the user surface the relation pickers need
type userLister interface {
	List(ctx context.Context) ([]*models.User, error)
}

// userOptions builds a picker keyed by id or, when byEmail is set, by email
func userOptions(ctx context.Context, users userLister, byEmail bool) ([]Option, error) {
	list, err := users.List(ctx)
	if err != nil {
		return nil, err
	}

	options := []Option{{Value: "", Label: "Kullanıcı Seçin"}}
	for _, u := range list {
		key := formatID(u.ID)
		if byEmail {
			key = u.Email
		}
		options = append(options, Option{Value: key, Label: userLabel(u) + " (" + u.Email + ")"})
	}
	return options, nil
}

func optString(values url.Values, name string) *string {
	v := values.Get(name)
	if v == "" {
		return nil
	}
	return &v
}

// optField maps a submitted input onto a partial update: an empty input
// clears a nullable column
func optField(values url.Values, name string) models.Optional[string] {
	if _, ok := values[name]; !ok {
		return models.Optional[string]{}
	}
	if v := values.Get(name); v != "" {
		return models.Some(v)
	}
	return models.Null[string]()
}

// requiredField only updates when a non-empty value was submitted
func requiredField(values url.Values, name string) models.Optional[string] {
	if v := values.Get(name); v != "" {
		return models.Some(v)
	}
	return models.Optional[string]{}
}

// intField returns 0 for missing or malformed ids so validation rejects them
func intField(values url.Values, name string) int64 {
	n, err := strconv.ParseInt(values.Get(name), 10, 64)
	if err != nil {
		return 0
	}
	return n
}

// idField only updates when a valid id was picked
func idField(values url.Values, name string) models.Optional[int64] {
	if n := intField(values, name); n > 0 {
		return models.Some(n)
	}
	return models.Optional[int64]{}
}

func checked(values url.Values, name string) bool {
	switch values.Get(name) {
	case "true", "on", "1":
		return true
	}
	return false
}

// tristateField reads a yes/no/undecided select
func tristateField(values url.Values, name string) *bool {
	switch values.Get(name) {
	case "true":
		v := true
		return &v
	case "false":
		v := false
		return &v
	}
	return nil
}

func tristateValue(b *bool) string {
	if b == nil {
		return "null"
	}
	return strconv.FormatBool(*b)
}
