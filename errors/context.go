package errors

// WithContext adds a single context field to an error.
// Returns a new PlatformError with the context field added.
// Existing context fields are preserved.
//
// If err is not a PlatformError, it is converted to one with CodeUnknown.
// Returns nil if err is nil.
//
// Example:
//
//	err = errors.WithContext(err, "path", "/data/a.txt")
func WithContext(err error, key string, value interface{}) PlatformError {
	if err == nil {
		return nil
	}
	pe := toPlatform(err)
	if pe.context == nil {
		pe.context = make(map[string]interface{}, 1)
	}
	pe.context[key] = value
	return pe
}

// WithContextMap adds multiple context fields to an error.
// New fields override existing ones with the same key.
//
// If err is not a PlatformError, it is converted to one with CodeUnknown.
// Returns nil if err is nil.
func WithContextMap(err error, ctx map[string]interface{}) PlatformError {
	if err == nil {
		return nil
	}
	pe := toPlatform(err)
	if pe.context == nil {
		pe.context = make(map[string]interface{}, len(ctx))
	}
	for k, v := range ctx {
		pe.context[k] = v
	}
	return pe
}

// WithClassification overrides the classification of an error.
//
// If err is not a PlatformError, it is converted to one with CodeUnknown.
// Returns nil if err is nil.
//
// Example:
//
//	// A missing bucket will not appear by retrying.
//	err = errors.WithClassification(err, errors.ClassificationPermanent)
func WithClassification(err error, classification ErrorClassification) PlatformError {
	if err == nil {
		return nil
	}
	pe := toPlatform(err)
	pe.classification = classification
	return pe
}
