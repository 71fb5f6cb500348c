package resource

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"

	"peopleops.org/internal/api"
)

// FormStatus is the form controller's lifecycle state.
type FormStatus int

const (
	FormIdle FormStatus = iota
	FormSubmitting
	FormError
)

func (s FormStatus) String() string {
	switch s {
	case FormIdle:
		return "idle"
	case FormSubmitting:
		return "submitting"
	case FormError:
		return "error"
	default:
		return "unknown"
	}
}

// FormController manages one create-or-update authoring flow bound to a list
// controller. The draft mirrors the form's field subset; a nil editing id
// means create mode.
type FormController[T Record] struct {
	client *api.Client
	list   *ListController[T]
	ep     Endpoint

	mu        sync.Mutex
	defaults  map[string]any
	draft     map[string]any
	editingID string
	status    FormStatus
	message   string
}

// NewForm binds a form to a list controller. defaults defines both the
// field subset the form manages and each field's create-mode value.
func NewForm[T Record](client *api.Client, list *ListController[T], defaults map[string]any) *FormController[T] {
	f := &FormController[T]{
		client:   client,
		list:     list,
		ep:       list.Endpoint(),
		defaults: cloneFields(defaults),
	}
	f.draft = cloneFields(defaults)
	return f
}

// BeginCreate resets the draft to field defaults and enters create mode.
func (f *FormController[T]) BeginCreate() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.draft = cloneFields(f.defaults)
	f.editingID = ""
	f.status = FormIdle
	f.message = ""
}

// BeginEdit copies the form's field subset out of the record and enters
// update mode for that record's id.
func (f *FormController[T]) BeginEdit(record T) {
	fields := recordFields(record)
	f.mu.Lock()
	defer f.mu.Unlock()
	f.draft = cloneFields(f.defaults)
	for name := range f.defaults {
		if v, ok := fields[name]; ok {
			f.draft[name] = v
		}
	}
	f.editingID = record.RecordID()
	f.status = FormIdle
	f.message = ""
}

// SetField mutates one draft field. Validation stays server-side.
func (f *FormController[T]) SetField(name string, value any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.draft[name] = value
}

// Field reads one draft field.
func (f *FormController[T]) Field(name string) any {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.draft[name]
}

// Draft returns a copy of the current field values.
func (f *FormController[T]) Draft() map[string]any {
	f.mu.Lock()
	defer f.mu.Unlock()
	return cloneFields(f.draft)
}

// EditingID returns the id under edit, empty in create mode.
func (f *FormController[T]) EditingID() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.editingID
}

// Status returns the current lifecycle state.
func (f *FormController[T]) Status() FormStatus {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.status
}

// Message returns the user-displayable message from the last failure.
func (f *FormController[T]) Message() string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.message
}

// Submit sends the draft: POST to the collection in create mode, PUT to the
// record in update mode. Success clears the draft and refreshes the bound
// list. A validation failure preserves the draft for correction; every other
// failure also keeps the draft but surfaces a generic notice.
func (f *FormController[T]) Submit(ctx context.Context) error {
	f.mu.Lock()
	payload := cloneFields(f.draft)
	editingID := f.editingID
	f.status = FormSubmitting
	f.message = ""
	f.mu.Unlock()

	var err error
	if editingID == "" {
		err = f.client.Do(ctx, http.MethodPost, f.ep.Path, payload, nil)
	} else {
		err = f.client.Do(ctx, http.MethodPut, f.ep.RecordPath(editingID), payload, nil)
	}

	if err != nil {
		f.mu.Lock()
		f.status = FormError
		f.message = api.Message(err)
		f.mu.Unlock()
		return err
	}

	f.mu.Lock()
	f.draft = cloneFields(f.defaults)
	f.editingID = ""
	f.status = FormIdle
	f.mu.Unlock()

	return f.list.Refresh(ctx)
}

// Deactivate transitions a record to its inactive status and refreshes the
// bound list. The record remains visible.
func (f *FormController[T]) Deactivate(ctx context.Context, id string) error {
	if !f.ep.CanDeactivate {
		return &api.Error{Kind: api.KindValidation, Message: fmt.Sprintf("%s records cannot be deactivated", f.ep.Name)}
	}
	if err := f.client.Do(ctx, http.MethodPut, f.ep.DeactivatePath(id), struct{}{}, nil); err != nil {
		f.mu.Lock()
		f.status = FormError
		f.message = api.Message(err)
		f.mu.Unlock()
		return err
	}
	return f.list.Refresh(ctx)
}

// IsValidation reports whether a submit failure should surface its message
// next to the form rather than as a generic notice.
func IsValidation(err error) bool {
	return errors.Is(err, api.ErrValidation)
}

func cloneFields(in map[string]any) map[string]any {
	out := make(map[string]any, len(in))
	for k, v := range in {
		out[k] = v
	}
	return out
}

// recordFields flattens a record into its wire field names via its JSON tags.
func recordFields[T Record](record T) map[string]any {
	data, err := json.Marshal(record)
	if err != nil {
		return nil
	}
	var fields map[string]any
	if err := json.Unmarshal(data, &fields); err != nil {
		return nil
	}
	return fields
}
