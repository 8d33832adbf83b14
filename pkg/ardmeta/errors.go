package ardmeta

import (
	"errors"
	"strings"
)

// Sentinel errors for every failure kind surfaced by ardmeta.
// Callers distinguish them with errors.Is().
//
// Example usage:
//
//	doc, err := metadata.ParseFile(path, logger)
//	if errors.Is(err, ardmeta.ErrTooManyScenes) {
//	    // document lists more scene sections than a tile may carry
//	}
var (
	// ErrMalformedDocument indicates the XML reader or tree builder failed.
	ErrMalformedDocument = errors.New("malformed document")

	// ErrDuplicateSection indicates a tile, scene, global or bands section was re-entered.
	ErrDuplicateSection = errors.New("duplicate section")

	// ErrTooManyScenes indicates more scene sections than MaxScenes.
	ErrTooManyScenes = errors.New("too many scenes")

	// ErrBandIndexOverflow indicates more bands in a section than MaxBands.
	ErrBandIndexOverflow = errors.New("band index overflow")

	// ErrFieldOverflow indicates a value too long for its destination field.
	ErrFieldOverflow = errors.New("field overflow")

	// ErrMissingRequiredContent indicates expected text or an attribute is absent.
	ErrMissingRequiredContent = errors.New("missing required content")

	// ErrUnsupportedEnumValue indicates an unknown projection, datum, elevation,
	// sensor, ephemeris, data type or resample code.
	ErrUnsupportedEnumValue = errors.New("unsupported enumeration value")

	// ErrProjectionParamMismatch indicates a projection parameter block that
	// does not belong to the declared projection kind.
	ErrProjectionParamMismatch = errors.New("projection parameter mismatch")

	// ErrInvalidValue indicates a numeric field that could not be parsed.
	ErrInvalidValue = errors.New("invalid value")

	// ErrInvalidBitmap indicates a bitmap description with a gap or a duplicate bit number.
	ErrInvalidBitmap = errors.New("invalid bitmap description")

	// ErrValidatorUnavailable indicates the schema validator or schema could not be reached.
	ErrValidatorUnavailable = errors.New("validator unavailable")

	// ErrSchemaViolation indicates the document does not conform to the schema.
	ErrSchemaViolation = errors.New("schema violation")

	// ErrInvalidConfig indicates the provided configuration is invalid.
	ErrInvalidConfig = errors.New("invalid configuration")

	// ErrRasterIO indicates a band raster could not be read or written.
	ErrRasterIO = errors.New("raster I/O failed")
)

// structuralErrors are the fatal parse and emit kinds.
var structuralErrors = []error{
	ErrMalformedDocument,
	ErrDuplicateSection,
	ErrTooManyScenes,
	ErrBandIndexOverflow,
	ErrFieldOverflow,
	ErrMissingRequiredContent,
	ErrUnsupportedEnumValue,
	ErrProjectionParamMismatch,
	ErrInvalidValue,
	ErrInvalidBitmap,
}

// IsStructural reports whether err is one of the fatal document kinds.
func IsStructural(err error) bool {
	for _, target := range structuralErrors {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// ExitCodeForError returns the appropriate exit code for an error.
// Returns ExitSuccess (0) for nil errors, semantic codes for known errors,
// and ExitGeneralError (1) for unclassified errors.
func ExitCodeForError(err error) int {
	if err == nil {
		return ExitSuccess
	}

	switch {
	case errors.Is(err, ErrInvalidConfig):
		return ExitConfigError
	case errors.Is(err, ErrValidatorUnavailable):
		return ExitValidatorUnavailable
	case errors.Is(err, ErrSchemaViolation):
		return ExitSchemaViolation
	case errors.Is(err, ErrRasterIO):
		return ExitRasterError
	case IsStructural(err):
		return ExitDocumentError
	}

	// cobra reports usage problems as plain errors
	errStr := err.Error()
	for _, prefix := range []string{"unknown flag", "unknown shorthand flag", "unknown command", "accepts ", "requires at least", "required flag", "invalid argument", "missing required argument"} {
		if strings.HasPrefix(errStr, prefix) {
			return ExitUsageError
		}
	}

	return ExitGeneralError
}
