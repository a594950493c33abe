package view

import (
	"reflect"
)

// View generates markup for a region of the page.
type View interface {
	Markup(data any) (string, error)
	Anchor() *Region
}

// Messages supplies the default text of the error and success blocks.
type Messages interface {
	ErrorMessage() string
	SuccessMessage() string
}

func isEmpty(data any) bool {
	if data == nil {
		return true
	}
	v := reflect.ValueOf(data)
	switch v.Kind() {
	case reflect.Slice, reflect.Array, reflect.Map:
		return v.Len() == 0
	case reflect.Pointer, reflect.Interface:
		return v.IsNil()
	}
	return false
}

// Render replaces the region with the markup for data. Absent data or an
// empty list renders the error block instead.
func Render(v View, data any) error {
	if isEmpty(data) {
		return RenderError(v, "")
	}
	region := v.Anchor()
	region.state = Rendering
	region.data = data
	markup, err := v.Markup(data)
	if err != nil {
		return err
	}
	if err := region.SetHTML(markup); err != nil {
		return err
	}
	region.state = Rendered
	return nil
}

// Update patches the live region with the text and attributes that differ
// in the markup for data.
func Update(v View, data any) error {
	region := v.Anchor()
	region.data = data
	markup, err := v.Markup(data)
	if err != nil {
		return err
	}
	return Patch(region, markup)
}

func renderStatus(v View, state State, name string, message string) error {
	region := v.Anchor()
	markup, err := statusMarkup(name, region.Icons, message)
	if err != nil {
		return err
	}
	if err := region.SetHTML(markup); err != nil {
		return err
	}
	region.state = state
	return nil
}

func RenderSpinner(v View) error {
	return renderStatus(v, Spinner, "spinner", "")
}

// RenderError shows message, or the view's default error message when
// message is blank.
func RenderError(v View, message string) error {
	if m, ok := v.(Messages); ok && message == "" {
		message = m.ErrorMessage()
	}
	return renderStatus(v, Error, "error", message)
}

func RenderSuccess(v View, message string) error {
	if m, ok := v.(Messages); ok && message == "" {
		message = m.SuccessMessage()
	}
	return renderStatus(v, Success, "message", message)
}
