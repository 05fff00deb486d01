package tokenlist

import (
	"context"
	"fmt"
	"io"
)

// DocumentLoader is implemented by [*Loader]. Tests substitute their own.
type DocumentLoader interface {
	Load(ctx context.Context, src Source) (any, error)
}

// Pipeline runs resolve, load, validate and report for one source.
// The first failure ends the run.
type Pipeline struct {
	Loader    DocumentLoader
	Validator *Validator
	Reporter  *Reporter

	// Output receives the result in OutputFormat, if set.
	Output       io.Writer
	OutputFormat string
}

// Run validates the token list at source and returns the exit status.
// An empty source is reported as a [*UsageError].
func (p *Pipeline) Run(ctx context.Context, source, usage string) int {
	if source == "" {
		return p.Reporter.Failed(&UsageError{Usage: usage})
	}
	src := Resolve(source)
	p.Reporter.Started(src)
	if err := p.Validate(ctx, src); err != nil {
		return p.Reporter.Failed(err)
	}
	return p.Reporter.Succeeded(src)
}

// Validate loads src and checks it against the schema. Invalid documents
// yield a [*SchemaValidationError]; load failures are returned unchanged.
func (p *Pipeline) Validate(ctx context.Context, src Source) error {
	doc, err := p.Loader.Load(ctx, src)
	if err != nil {
		return err
	}
	result := p.Validator.Validate(doc)
	if p.Output != nil {
		if err := WriteOutput(p.Output, p.OutputFormat, result); err != nil {
			return fmt.Errorf("writing output: %w", err)
		}
	}
	if !result.Valid {
		return &SchemaValidationError{Source: src.String(), Errors: result.Errors}
	}
	return nil
}
