package errors

import (
	"sort"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// MarshalLogObject implements zapcore.ObjectMarshaler so platform errors
// render as structured objects instead of flat strings.
//
// The cause chain is rendered as a single string under "cause".
func (e *platformError) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddString("code", string(e.code))
	enc.AddString("classification", string(e.classification))
	enc.AddString("message", e.message)
	if e.cause != nil {
		enc.AddString("cause", e.cause.Error())
	}
	if len(e.context) == 0 {
		return nil
	}
	return enc.AddObject("context", contextMarshaler(e.context))
}

type contextMarshaler map[string]interface{}

func (c contextMarshaler) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	keys := make([]string, 0, len(c))
	for k := range c {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if err := enc.AddReflected(k, c[k]); err != nil {
			return err
		}
	}
	return nil
}

// Field returns a zap field describing err.
//
// PlatformErrors are encoded as objects carrying code, classification,
// message and context; other errors fall back to zap.Error.
//
// Example:
//
//	logger.Error("temporary cleanup failed", errors.Field(err))
func Field(err error) zap.Field {
	if err == nil {
		return zap.Skip()
	}
	var pe PlatformError
	if As(err, &pe) {
		if m, ok := pe.(zapcore.ObjectMarshaler); ok {
			return zap.Object("error", m)
		}
	}
	return zap.Error(err)
}
