package tokenlist

import (
	"errors"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Process exit statuses.
const (
	ExitSuccess = 0
	ExitFailure = 1
)

// Reporter turns pipeline outcomes into log records and exit statuses.
type Reporter struct {
	logger *zap.Logger
}

func NewReporter(logger *zap.Logger) *Reporter {
	return &Reporter{logger: logger}
}

func (r *Reporter) Started(src Source) {
	r.logger.Info("Validating token list", zap.Stringer("source", src))
}

func (r *Reporter) Succeeded(src Source) int {
	r.logger.Info("Token list is valid.", zap.Stringer("source", src))
	return ExitSuccess
}

// Failed logs err with all the detail it carries and returns [ExitFailure].
func (r *Reporter) Failed(err error) int {
	var (
		usageErr   *UsageError
		fetchErr   *FetchError
		readErr    *ReadError
		parseErr   *ParseError
		timeoutErr *TimeoutError
		schemaErr  *SchemaValidationError
	)
	switch {
	case errors.As(err, &schemaErr):
		r.logger.Error("Validation failed",
			zap.String("source", schemaErr.Source),
			zap.Array("errors", validationErrors(schemaErr.Errors)),
		)
	case errors.As(err, &timeoutErr):
		r.logger.Error("Timed out loading data",
			zap.String("source", timeoutErr.Source),
			zap.Duration("timeout", timeoutErr.Timeout),
			zap.Error(err),
		)
	case errors.As(err, &fetchErr):
		fields := []zap.Field{zap.String("url", fetchErr.URL)}
		if fetchErr.StatusCode != 0 {
			fields = append(fields, zap.Int("status", fetchErr.StatusCode))
		}
		r.logger.Error("Failed to fetch data", append(fields, zap.Error(err))...)
	case errors.As(err, &readErr):
		r.logger.Error("Failed to read data", zap.String("path", readErr.Path), zap.Error(err))
	case errors.As(err, &parseErr):
		r.logger.Error("Failed to parse data", zap.String("source", parseErr.Source), zap.Error(err))
	case errors.As(err, &usageErr):
		r.logger.Error("Missing source argument", zap.String("usage", usageErr.Usage))
	default:
		r.logger.Error("Validation failed", zap.Error(err))
	}
	return ExitFailure
}

// --

type validationErrors []ValidationError

func (errs validationErrors) MarshalLogArray(enc zapcore.ArrayEncoder) error {
	for _, e := range errs {
		if err := enc.AppendObject(e); err != nil {
			return err
		}
	}
	return nil
}

func (e ValidationError) MarshalLogObject(enc zapcore.ObjectEncoder) error {
	enc.AddString("instancePath", e.InstancePath)
	enc.AddString("schemaPath", e.SchemaPath)
	enc.AddString("keyword", e.Keyword)
	enc.AddString("message", e.Message)
	if len(e.Params) > 0 {
		return enc.AddReflected("params", e.Params)
	}
	return nil
}
