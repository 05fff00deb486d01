package tokenlist

import (
	"cmp"
	"errors"
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/santhosh-tekuri/jsonschema/v6"
	"github.com/santhosh-tekuri/jsonschema/v6/kind"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

// ValidationError describes a single schema violation.
type ValidationError struct {
	// InstancePath is a json-pointer to the offending value; "" is the root.
	InstancePath string `json:"instancePath"`

	// SchemaPath is the fragment locating the failed keyword in the schema,
	// e.g. "#/required".
	SchemaPath string `json:"schemaPath"`

	Keyword string         `json:"keyword"`
	Message string         `json:"message"`
	Params  map[string]any `json:"params,omitempty"`
}

func (e ValidationError) String() string {
	return fmt.Sprintf("I[%s] S[%s] %s", e.InstancePath, e.SchemaPath, e.Message)
}

// Result is the outcome of validating one document.
type Result struct {
	Valid  bool
	Errors []ValidationError

	cause *jsonschema.ValidationError
}

// BasicOutput returns the result in the standard "basic" output format.
func (r Result) BasicOutput() *jsonschema.OutputUnit {
	if r.cause == nil {
		return &jsonschema.OutputUnit{Valid: r.Valid}
	}
	return r.cause.BasicOutput()
}

// DetailedOutput returns the result in the standard "detailed" output format.
func (r Result) DetailedOutput() *jsonschema.OutputUnit {
	if r.cause == nil {
		return &jsonschema.OutputUnit{Valid: r.Valid}
	}
	return r.cause.DetailedOutput()
}

// Validator checks documents against a compiled schema.
// It is safe for concurrent use.
type Validator struct {
	schema  *jsonschema.Schema
	printer *message.Printer
}

func NewValidator(schema *jsonschema.Schema) *Validator {
	return &Validator{
		schema:  schema,
		printer: message.NewPrinter(language.English),
	}
}

// Validate collects every violation of doc, in the order the
// schema is traversed. It performs no I/O.
func (v *Validator) Validate(doc any) Result {
	err := v.schema.Validate(doc)
	if err == nil {
		return Result{Valid: true}
	}
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return Result{Errors: []ValidationError{{Message: err.Error()}}}
	}
	return Result{Errors: v.flatten(nil, ve), cause: ve}
}

func (v *Validator) flatten(errs []ValidationError, ve *jsonschema.ValidationError) []ValidationError {
	if len(ve.Causes) == 0 {
		return append(errs, v.leaves(ve)...)
	}
	// causes of sibling properties come back in map order
	slices.SortStableFunc(ve.Causes, compareErrors)
	for _, cause := range ve.Causes {
		errs = v.flatten(errs, cause)
	}
	switch ve.ErrorKind.(type) {
	case *kind.AnyOf, *kind.OneOf:
		errs = append(errs, v.newError(ve, ve.ErrorKind, nil))
	}
	return errs
}

// leaves splits errors naming several properties into one error per property.
func (v *Validator) leaves(ve *jsonschema.ValidationError) []ValidationError {
	switch k := ve.ErrorKind.(type) {
	case *kind.Required:
		var errs []ValidationError
		for _, p := range k.Missing {
			errs = append(errs, v.newError(ve, &kind.Required{Missing: []string{p}}, map[string]any{
				"missingProperty": p,
			}))
		}
		return errs
	case *kind.AdditionalProperties:
		var errs []ValidationError
		for _, p := range k.Properties {
			errs = append(errs, v.newError(ve, &kind.AdditionalProperties{Properties: []string{p}}, map[string]any{
				"additionalProperty": p,
			}))
		}
		return errs
	}
	return []ValidationError{v.newError(ve, ve.ErrorKind, params(ve.ErrorKind))}
}

func (v *Validator) newError(ve *jsonschema.ValidationError, k jsonschema.ErrorKind, params map[string]any) ValidationError {
	var keyword string
	if kp := k.KeywordPath(); len(kp) > 0 {
		keyword = kp[0]
	}
	return ValidationError{
		InstancePath: instancePath(ve.InstanceLocation),
		SchemaPath:   keywordLocation(ve.SchemaURL, k),
		Keyword:      keyword,
		Message:      k.LocalizedString(v.printer),
		Params:       params,
	}
}

func params(k jsonschema.ErrorKind) map[string]any {
	switch k := k.(type) {
	case *kind.Type:
		return map[string]any{"type": strings.Join(k.Want, ","), "got": k.Got}
	case *kind.Enum:
		return map[string]any{"allowedValues": k.Want}
	case *kind.Const:
		return map[string]any{"allowedValue": k.Want}
	case *kind.Format:
		return map[string]any{"format": k.Want}
	case *kind.Pattern:
		return map[string]any{"pattern": k.Want}
	case *kind.MinLength:
		return map[string]any{"limit": k.Want}
	case *kind.MaxLength:
		return map[string]any{"limit": k.Want}
	case *kind.MinItems:
		return map[string]any{"limit": k.Want}
	case *kind.MaxItems:
		return map[string]any{"limit": k.Want}
	case *kind.MinProperties:
		return map[string]any{"limit": k.Want}
	case *kind.MaxProperties:
		return map[string]any{"limit": k.Want}
	case *kind.Minimum:
		want, _ := k.Want.Float64()
		return map[string]any{"comparison": ">=", "limit": want}
	case *kind.Maximum:
		want, _ := k.Want.Float64()
		return map[string]any{"comparison": "<=", "limit": want}
	case *kind.ExclusiveMinimum:
		want, _ := k.Want.Float64()
		return map[string]any{"comparison": ">", "limit": want}
	case *kind.ExclusiveMaximum:
		want, _ := k.Want.Float64()
		return map[string]any{"comparison": "<", "limit": want}
	case *kind.MultipleOf:
		want, _ := k.Want.Float64()
		return map[string]any{"multipleOf": want}
	case *kind.UniqueItems:
		return map[string]any{"i": k.Duplicates[0], "j": k.Duplicates[1]}
	case *kind.PropertyNames:
		return map[string]any{"propertyName": k.Property}
	case *kind.OneOf:
		if len(k.Subschemas) > 0 {
			return map[string]any{"passingSchemas": k.Subschemas}
		}
	case *kind.Dependency:
		return map[string]any{"property": k.Prop, "missingProperties": k.Missing}
	case *kind.DependentRequired:
		return map[string]any{"property": k.Prop, "missingProperties": k.Missing}
	}
	return nil
}

func compareErrors(a, b *jsonschema.ValidationError) int {
	if c := strings.Compare(keywordLocation(a.SchemaURL, a.ErrorKind), keywordLocation(b.SchemaURL, b.ErrorKind)); c != 0 {
		return c
	}
	return compareInstanceLocations(a.InstanceLocation, b.InstanceLocation)
}

// compareInstanceLocations orders array indexes numerically.
func compareInstanceLocations(a, b []string) int {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] == b[i] {
			continue
		}
		x, errx := strconv.Atoi(a[i])
		y, erry := strconv.Atoi(b[i])
		if errx == nil && erry == nil {
			return cmp.Compare(x, y)
		}
		return strings.Compare(a[i], b[i])
	}
	return cmp.Compare(len(a), len(b))
}

func instancePath(loc []string) string {
	var sb strings.Builder
	for _, tok := range loc {
		sb.WriteByte('/')
		sb.WriteString(escapeToken(tok))
	}
	return sb.String()
}

// keywordLocation joins the fragment of the failing schema with the
// keyword path of k.
func keywordLocation(url string, k jsonschema.ErrorKind) string {
	loc := "#"
	if i := strings.IndexByte(url, '#'); i != -1 {
		loc = strings.TrimSuffix(url[i:], "/")
	}
	if k == nil {
		return loc
	}
	var sb strings.Builder
	sb.WriteString(loc)
	for _, tok := range k.KeywordPath() {
		sb.WriteByte('/')
		sb.WriteString(escapeToken(tok))
	}
	return sb.String()
}

func escapeToken(tok string) string {
	tok = strings.ReplaceAll(tok, "~", "~0")
	return strings.ReplaceAll(tok, "/", "~1")
}
