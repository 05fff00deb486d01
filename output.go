package tokenlist

import (
	"fmt"
	"io"

	"github.com/goccy/go-json"
	"github.com/santhosh-tekuri/jsonschema/v6"
)

// WriteOutput writes result to w as indented JSON in the standard
// output format named by format. [OutputSimple] writes nothing.
func WriteOutput(w io.Writer, format string, result Result) error {
	var unit *jsonschema.OutputUnit
	switch format {
	case OutputBasic:
		unit = result.BasicOutput()
	case OutputDetailed:
		unit = result.DetailedOutput()
	case OutputSimple, "":
		return nil
	default:
		return fmt.Errorf("unknown output format %q", format)
	}
	b, err := json.MarshalIndent(unit, "", "  ")
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(w, "%s\n", b)
	return err
}
