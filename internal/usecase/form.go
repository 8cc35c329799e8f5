package usecase

import "fmt"

type FormState int

const (
	FormLoading FormState = iota
	FormEditing
	FormSubmitting
	FormSuccess
	FormFailed
)

func (s FormState) String() string {
	switch s {
	case FormLoading:
		return "loading"
	case FormEditing:
		return "editing"
	case FormSubmitting:
		return "submitting"
	case FormSuccess:
		return "success"
	case FormFailed:
		return "failed"
	}
	return fmt.Sprintf("FormState(%d)", int(s))
}

// Violations maps a field name to its problem.
type Violations map[string]string

func (v Violations) Empty() bool { return len(v) == 0 }

func (v Violations) Has(field string) bool {
	_, ok := v[field]
	return ok
}

// Required flags an empty value. Whitespace counts as a value.
func Required(field, value string, v Violations) {
	if value == "" {
		v[field] = "required"
	}
}

// Form is the create/edit state shared by every entity form.
type Form struct {
	State      FormState
	Message    string
	Violations Violations
}

var transitions = map[FormState][]FormState{
	FormLoading:    {FormEditing},
	FormEditing:    {FormSubmitting},
	FormSubmitting: {FormSuccess, FormFailed},
	FormFailed:     {FormEditing},
}

func (f *Form) move(to FormState) error {
	for _, next := range transitions[f.State] {
		if next == to {
			f.State = to
			return nil
		}
	}
	return fmt.Errorf("form: %s -> %s not allowed", f.State, to)
}

// Ready finishes Loading; the fields are seeded and editable.
func (f *Form) Ready() error { return f.move(FormEditing) }

// LoadFailed keeps the form in Loading with a message shown in place of
// the fields; there is no record to edit.
func (f *Form) LoadFailed(msg string) {
	f.Message = msg
}

// Invalid records a client-side validation failure. The form stays editable.
func (f *Form) Invalid(v Violations, msg string) {
	f.Violations = v
	f.Message = msg
}

// Submit enters Submitting. A failed form goes back to Editing first,
// keeping its message until the new attempt starts.
func (f *Form) Submit() error {
	if f.State == FormFailed {
		if err := f.move(FormEditing); err != nil {
			return err
		}
	}
	if err := f.move(FormSubmitting); err != nil {
		return err
	}
	f.Message = ""
	f.Violations = nil
	return nil
}

func (f *Form) Succeed() error { return f.move(FormSuccess) }

func (f *Form) Fail(msg string) error {
	if err := f.move(FormFailed); err != nil {
		return err
	}
	f.Message = msg
	return nil
}

// Editable reports whether the fields should be shown as inputs.
func (f *Form) Editable() bool {
	return f.State == FormEditing || f.State == FormFailed
}

func (f *Form) Done() bool { return f.State == FormSuccess }

// Invalidates reports whether field carries a violation; used by templates.
func (f *Form) Invalidates(field string) bool { return f.Violations.Has(field) }
