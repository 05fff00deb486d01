package tokenlist

import (
	_ "embed"
	"fmt"
	"os"

	"github.com/dlclark/regexp2"
	"github.com/santhosh-tekuri/jsonschema/v6"
)

// SchemaURL is the $id of the embedded token list schema.
const SchemaURL = "https://uniswap.org/tokenlist.schema.json"

//go:embed schemas/tokenlist.schema.json
var tokenListSchema []byte

// CompileSchema compiles the embedded token list schema. If path is
// not empty, the JSON or YAML schema in that file is compiled instead.
//
// Formats are asserted and patterns use ECMAScript semantics, which is
// what token list schemas are written against.
func CompileSchema(path string) (*jsonschema.Schema, error) {
	url := SchemaURL
	data := tokenListSchema
	if path != "" {
		b, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("reading schema: %w", err)
		}
		url, data = "schema.json", b
	}
	doc, err := UnmarshalDocument(data, isYAMLPath(path))
	if err != nil {
		return nil, fmt.Errorf("parsing schema %s: %w", url, err)
	}

	c := jsonschema.NewCompiler()
	c.DefaultDraft(jsonschema.Draft7)
	c.AssertFormat()
	c.UseRegexpEngine(ecmaCompile)
	if err := c.AddResource(url, doc); err != nil {
		return nil, err
	}
	return c.Compile(url)
}

// --

type ecmaRegexp regexp2.Regexp

func (re *ecmaRegexp) MatchString(s string) bool {
	matched, err := (*regexp2.Regexp)(re).MatchString(s)
	return err == nil && matched
}

func (re *ecmaRegexp) String() string {
	return (*regexp2.Regexp)(re).String()
}

func ecmaCompile(s string) (jsonschema.Regexp, error) {
	re, err := regexp2.Compile(s, regexp2.ECMAScript)
	if err != nil {
		return nil, err
	}
	return (*ecmaRegexp)(re), nil
}
