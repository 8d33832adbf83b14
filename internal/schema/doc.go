// Package schema checks ARD documents against the published XSD grammar.
//
// The schema is located by Locator (environment, installed copy, then the
// public URL), downloaded with retry when remote, and applied by running
// xmllint. The structural mapper in internal/metadata does not depend on
// this package; grammar validation is an optional step before parsing.
package schema
