package config

import "fmt"

// OutputFormat selects how the CLI prints a parsed value. It implements
// pflag.Value.
type OutputFormat string

const (
	OutputVimson OutputFormat = "vimson"
	OutputJSON   OutputFormat = "json"
	OutputYAML   OutputFormat = "yaml"
)

// String is used both by fmt.Print and by Cobra in help text.
func (f *OutputFormat) String() string {
	return string(*f)
}

// Set must have pointer receiver so it doesn't change the value of a copy.
func (f *OutputFormat) Set(v string) error {
	switch v {
	case "vimson", "json", "yaml":
		*f = OutputFormat(v)
		return nil
	case "":
		*f = OutputVimson
		return nil
	default:
		return fmt.Errorf(`must be one of "vimson", "json" or "yaml"`)
	}
}

// Type is only used in help text.
func (f *OutputFormat) Type() string {
	return "format"
}
