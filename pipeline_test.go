package tokenlist_test

import (
	"bytes"
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tokenlists/tokenlist"
)

type loaderFunc func(ctx context.Context, src tokenlist.Source) (any, error)

func (f loaderFunc) Load(ctx context.Context, src tokenlist.Source) (any, error) {
	return f(ctx, src)
}

func TestPipelineRun(t *testing.T) {
	v := newValidator(t)
	valid := loadFixture(t, "valid-list.json")
	missingName := loadFixture(t, "missing-name.json")

	var loaded []tokenlist.Source
	loader := loaderFunc(func(ctx context.Context, src tokenlist.Source) (any, error) {
		loaded = append(loaded, src)
		switch src.String() {
		case "valid.json":
			return valid, nil
		case "missing-name.json":
			return missingName, nil
		case "https://example.com/missing.json":
			return nil, &tokenlist.FetchError{URL: src.String(), StatusCode: 404}
		}
		return nil, &tokenlist.ReadError{Path: src.String(), Err: errors.New("no such file")}
	})

	tests := []struct {
		source   string
		exitCode int
		message  string
	}{
		{"valid.json", tokenlist.ExitSuccess, "Token list is valid."},
		{"missing-name.json", tokenlist.ExitFailure, "Validation failed"},
		{"https://example.com/missing.json", tokenlist.ExitFailure, "Failed to fetch data"},
		{"nowhere.json", tokenlist.ExitFailure, "Failed to read data"},
	}
	for _, test := range tests {
		r, logs := newObservedReporter()
		p := &tokenlist.Pipeline{Loader: loader, Validator: v, Reporter: r}
		assert.Equal(t, test.exitCode, p.Run(context.Background(), test.source, "tlv <source>"), test.source)

		entries := logs.AllUntimed()
		require.Len(t, entries, 2, test.source)
		assert.Equal(t, "Validating token list", entries[0].Message)
		assert.Equal(t, test.message, entries[1].Message, test.source)
	}

	assert.Equal(t, tokenlist.RemoteSource{URL: "https://example.com/missing.json"}, loaded[2])
	assert.Equal(t, tokenlist.LocalSource{Path: "nowhere.json"}, loaded[3])
}

func TestPipelineRunWithoutSource(t *testing.T) {
	r, logs := newObservedReporter()
	p := &tokenlist.Pipeline{
		Loader: loaderFunc(func(context.Context, tokenlist.Source) (any, error) {
			t.Fatal("loader must not be called")
			return nil, nil
		}),
		Reporter: r,
	}
	assert.Equal(t, tokenlist.ExitFailure, p.Run(context.Background(), "", "tlv <source>"))
	assert.Equal(t, 1, logs.FilterMessage("Missing source argument").Len())
	assert.Equal(t, 0, logs.FilterMessage("Validating token list").Len())
}

func TestPipelineValidate(t *testing.T) {
	missingName := loadFixture(t, "missing-name.json")
	var out bytes.Buffer
	p := &tokenlist.Pipeline{
		Loader: loaderFunc(func(context.Context, tokenlist.Source) (any, error) {
			return missingName, nil
		}),
		Validator:    newValidator(t),
		Output:       &out,
		OutputFormat: tokenlist.OutputBasic,
	}
	err := p.Validate(context.Background(), tokenlist.LocalSource{Path: "missing-name.json"})

	var schemaErr *tokenlist.SchemaValidationError
	require.ErrorAs(t, err, &schemaErr)
	assert.Equal(t, "missing-name.json", schemaErr.Source)
	require.NotEmpty(t, schemaErr.Errors)
	assert.Equal(t, "required", schemaErr.Errors[0].Keyword)
	assert.Contains(t, out.String(), `"valid": false`)
}

func TestPipelineValidateStopsOnLoadError(t *testing.T) {
	loadErr := &tokenlist.ParseError{Source: "broken.json", Err: errors.New("unexpected EOF")}
	p := &tokenlist.Pipeline{
		Loader: loaderFunc(func(context.Context, tokenlist.Source) (any, error) {
			return nil, loadErr
		}),
	}
	err := p.Validate(context.Background(), tokenlist.LocalSource{Path: "broken.json"})
	assert.Same(t, loadErr, err)
}
