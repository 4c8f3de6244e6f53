package six

import "github.com/nitro-go/nitro/internal/options"

// config holds the resolved settings a set of TranscodeOption values
// produce.
type config struct {
	schemaPath string
	strict     bool
}

func newConfig() *config {
	return &config{}
}

// TranscodeOption configures Marshal/Unmarshal: schema discovery,
// conventionally via SIX_SCHEMA_PATH, plus a strict-validation toggle.
type TranscodeOption = options.Option[*config]

// WithSchemaPath overrides schema discovery, taking precedence over the
// SIX_SCHEMA_PATH environment variable.
func WithSchemaPath(path string) TranscodeOption {
	return options.NoError(func(c *config) { c.schemaPath = path })
}

// WithStrictValidation fails Unmarshal/Marshal when no schema path is
// resolved, instead of silently skipping validation.
func WithStrictValidation() TranscodeOption {
	return options.NoError(func(c *config) { c.strict = true })
}
