package metadata

import (
	"strconv"
	"strings"

	"github.com/vvka-141/ardmeta/internal/tree"
)

// field is one element consumed by a dispatch table, with its traversal.
type field struct {
	n *tree.Node
	t *traversal
}

func (f field) fail(kind Kind, format string, args ...interface{}) *Error {
	return f.t.fail(kind, f.n, format, args...)
}

// content returns the trimmed text of the element; text is required.
func (f field) content() (string, error) {
	text, ok := f.n.Content()
	if !ok {
		return "", f.fail(KindMissingRequiredContent, "element has no text content")
	}
	return strings.TrimSpace(text), nil
}

func (f field) checkLength(what, value string) error {
	if len(value) >= MaxFieldLength {
		return f.fail(KindFieldOverflow, "%s is %d bytes, limit is %d", what, len(value), MaxFieldLength-1)
	}
	return nil
}

func (f field) text(dst *string) error {
	s, err := f.content()
	if err != nil {
		return err
	}
	if err := f.checkLength("value", s); err != nil {
		return err
	}
	*dst = s
	return nil
}

func (f field) float(dst *float64) error {
	s, err := f.content()
	if err != nil {
		return err
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return f.fail(KindInvalidValue, "%q is not a number", s)
	}
	*dst = v
	return nil
}

func (f field) integer(dst *int) error {
	s, err := f.content()
	if err != nil {
		return err
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return f.fail(KindInvalidValue, "%q is not an integer", s)
	}
	*dst = v
	return nil
}

// enumText parses the element text with names.
func enumText[T comparable](f field, names enumNames[T], dst *T) error {
	s, err := f.content()
	if err != nil {
		return err
	}
	v, ok := names.parse(s)
	if !ok {
		return f.fail(KindUnsupportedEnumValue, "unknown value %q", s)
	}
	*dst = v
	return nil
}

// attrSetter stores one attribute value.
type attrSetter func(f field, attr, value string) error

// attrs dispatches the unqualified attributes of the element.
// Namespace declarations and qualified attributes are ignored; unknown
// attributes are reported and skipped.
func (f field) attrs(setters map[string]attrSetter) error {
	for _, a := range f.n.Attrs {
		if a.Space != "" || a.Name == "xmlns" {
			continue
		}
		set, ok := setters[a.Name]
		if !ok {
			f.t.log.Warn("unknown attribute %q on <%s> (line %d); skipping", a.Name, f.n.Name, f.n.Line)
			continue
		}
		if err := set(f, a.Name, a.Value); err != nil {
			return err
		}
	}
	return nil
}

// each dispatches the child elements and returns the names it handled.
func (f field) each(handlers map[string]func(field) error) (map[string]bool, error) {
	seen := make(map[string]bool, len(handlers))
	for _, c := range f.n.Elements() {
		if f.t.foreign(c) {
			continue
		}
		h, ok := handlers[c.Name]
		if !ok {
			f.t.log.Warn("unknown element <%s> in <%s> (line %d); skipping", c.Name, f.n.Name, c.Line)
			continue
		}
		if err := h(field{n: c, t: f.t}); err != nil {
			return nil, err
		}
		seen[c.Name] = true
	}
	return seen, nil
}

// requireChildren fails when one of names was not handled by each.
func (f field) requireChildren(seen map[string]bool, names ...string) error {
	for _, name := range names {
		if !seen[name] {
			return f.fail(KindMissingRequiredContent, "missing <%s>", name)
		}
	}
	return nil
}

func stringAttr(dst *string) attrSetter {
	return func(f field, attr, value string) error {
		if err := f.checkLength("attribute "+attr, value); err != nil {
			return err
		}
		*dst = value
		return nil
	}
}

func floatAttr(dst *float64) attrSetter {
	return func(f field, attr, value string) error {
		v, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return f.fail(KindInvalidValue, "attribute %s=%q is not a number", attr, value)
		}
		*dst = v
		return nil
	}
}

func intAttr(dst *int) attrSetter {
	return func(f field, attr, value string) error {
		v, err := strconv.Atoi(strings.TrimSpace(value))
		if err != nil {
			return f.fail(KindInvalidValue, "attribute %s=%q is not an integer", attr, value)
		}
		*dst = v
		return nil
	}
}

func int64Attr(dst *int64) attrSetter {
	return func(f field, attr, value string) error {
		v, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64)
		if err != nil {
			return f.fail(KindInvalidValue, "attribute %s=%q is not an integer", attr, value)
		}
		*dst = v
		return nil
	}
}

func enumAttr[T comparable](names enumNames[T], dst *T) attrSetter {
	return func(f field, attr, value string) error {
		v, ok := names.parse(value)
		if !ok {
			return f.fail(KindUnsupportedEnumValue, "attribute %s=%q is not a known value", attr, value)
		}
		*dst = v
		return nil
	}
}

func textField(dst *string) func(field) error   { return func(f field) error { return f.text(dst) } }
func floatField(dst *float64) func(field) error { return func(f field) error { return f.float(dst) } }
