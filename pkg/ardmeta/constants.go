package ardmeta

import "time"

// Exit codes for semantic error classification.
// These follow Unix/GNU conventions:
//   - 0: Success
//   - 1: General error
//   - 2: CLI usage error (misuse of command line)
//   - 3+: Application-specific errors
const (
	ExitSuccess              = 0  // Command completed successfully
	ExitGeneralError         = 1  // Unknown or unclassified error
	ExitUsageError           = 2  // CLI usage error (missing args, invalid flags)
	ExitPanic                = 3  // Internal panic (unexpected crash)
	ExitConfigError          = 10 // Invalid configuration
	ExitDocumentError        = 11 // Document failed to parse or emit
	ExitSchemaViolation      = 12 // Document does not conform to the schema
	ExitValidatorUnavailable = 13 // Schema or validator could not be reached
	ExitRasterError          = 14 // Band raster read or write failed
)

const (
	// DefaultValidateTimeout bounds a single schema validation run.
	DefaultValidateTimeout = 30 * time.Second

	// DefaultRetryInitialDelay is the default initial delay before the first retry attempt.
	DefaultRetryInitialDelay = 200 * time.Millisecond

	// DefaultRetryMaxDelay is the default maximum delay between retry attempts.
	DefaultRetryMaxDelay = 10 * time.Second

	// DefaultRetryMaxAttempts is the default maximum number of retry attempts
	// for downloading a remote schema.
	DefaultRetryMaxAttempts = 3

	// DefaultAppendBandCount is how many default bands `ardmeta append` adds
	// when no band file is given.
	DefaultAppendBandCount = 3

	// DefaultAppendSuffix is inserted before the extension of appended output files.
	DefaultAppendSuffix = "_new"

	// DefaultRasterOutputDir receives band rasters written by `ardmeta roundtrip`,
	// relative to the document directory.
	DefaultRasterOutputDir = "output"
)
