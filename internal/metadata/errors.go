package metadata

import (
	"errors"
	"fmt"

	"github.com/vvka-141/ardmeta/internal/stack"
	"github.com/vvka-141/ardmeta/internal/tree"
	"github.com/vvka-141/ardmeta/pkg/ardmeta"
)

// Kind classifies a fatal document error.
type Kind int

const (
	KindMalformedDocument Kind = iota + 1
	KindDuplicateSection
	KindTooManyScenes
	KindBandIndexOverflow
	KindFieldOverflow
	KindMissingRequiredContent
	KindUnsupportedEnumValue
	KindProjectionParamMismatch
	KindInvalidValue
	KindInvalidBitmap
)

var kindSentinels = map[Kind]error{
	KindMalformedDocument:       ardmeta.ErrMalformedDocument,
	KindDuplicateSection:        ardmeta.ErrDuplicateSection,
	KindTooManyScenes:           ardmeta.ErrTooManyScenes,
	KindBandIndexOverflow:       ardmeta.ErrBandIndexOverflow,
	KindFieldOverflow:           ardmeta.ErrFieldOverflow,
	KindMissingRequiredContent:  ardmeta.ErrMissingRequiredContent,
	KindUnsupportedEnumValue:    ardmeta.ErrUnsupportedEnumValue,
	KindProjectionParamMismatch: ardmeta.ErrProjectionParamMismatch,
	KindInvalidValue:            ardmeta.ErrInvalidValue,
	KindInvalidBitmap:           ardmeta.ErrInvalidBitmap,
}

func (k Kind) String() string {
	if err, ok := kindSentinels[k]; ok {
		return err.Error()
	}
	return fmt.Sprintf("kind(%d)", int(k))
}

// Error is a fatal parse or emit failure.
// It carries the offending element and matches the sentinel for its Kind
// (for example ardmeta.ErrTooManyScenes) under errors.Is.
type Error struct {
	Kind     Kind
	Element  string // offending element name, if any
	FilePath string // document path, set by ParseFile
	Line     int    // 0 if unknown
	Message  string
	Hint     string // actionable suggestion, optional
	Err      error  // underlying cause, optional
}

// Error implements the error interface with rich formatting.
func (e *Error) Error() string {
	location := e.FilePath
	if location == "" {
		location = "document"
	}
	if e.Line > 0 {
		location = fmt.Sprintf("%s (line %d)", location, e.Line)
	}

	msg := fmt.Sprintf("%s in %s", e.Kind, location)
	if e.Element != "" {
		msg += fmt.Sprintf(" [element: %s]", e.Element)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Hint != "" {
		msg += "\n\nHint: " + e.Hint
	}
	return msg
}

func (e *Error) Unwrap() []error {
	out := make([]error, 0, 2)
	if s, ok := kindSentinels[e.Kind]; ok {
		out = append(out, s)
	}
	if e.Err != nil {
		out = append(out, e.Err)
	}
	return out
}

// KindOf returns the Kind of the first *Error in err's chain, or 0.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return 0
}

func newError(kind Kind, elem, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Element: elem, Message: fmt.Sprintf(format, args...)}
}

// wrapBuildError converts tree builder and stack failures to *Error.
func wrapBuildError(err error) error {
	var buildErr *tree.BuildError
	if errors.As(err, &buildErr) {
		return &Error{
			Kind:    KindMalformedDocument,
			Element: buildErr.Element,
			Line:    buildErr.Line,
			Message: buildErr.Message,
			Hint:    "Check that all XML tags are properly closed and attributes are quoted.",
			Err:     buildErr.Err,
		}
	}
	if errors.Is(err, stack.ErrCapacityExceeded) {
		return &Error{
			Kind:    KindMalformedDocument,
			Message: fmt.Sprintf("elements nested deeper than %d levels", MaxStackDepth),
			Err:     err,
		}
	}
	return &Error{Kind: KindMalformedDocument, Message: err.Error(), Err: err}
}
