package main

import (
	"encoding/json"
	"strings"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"tablens/domain/analysis"
	"tablens/internal/errors"
)

// statusResult is any analysis result embedding analysis.Status.
type statusResult interface {
	Result() analysis.Status
}

// emit writes v then, under --strict, turns a non-ok outcome into an error.
func (st *cliState) emit(cmd *cobra.Command, v interface{}) error {
	if err := st.write(cmd, v); err != nil {
		return err
	}
	if r, ok := v.(statusResult); ok && st.strict {
		if appErr := errors.FromStatus(r.Result()); appErr != nil {
			return appErr
		}
	}
	return nil
}

// write encodes v to stdout as JSON or YAML. YAML goes through a JSON round
// trip so the field names match the json tags.
func (st *cliState) write(cmd *cobra.Command, v interface{}) error {
	out := cmd.OutOrStdout()
	switch strings.ToLower(st.format) {
	case "", "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		return enc.Encode(v)
	case "yaml", "yml":
		raw, err := json.Marshal(v)
		if err != nil {
			return errors.Wrap(err, "failed to encode output")
		}
		var generic interface{}
		if err := yaml.Unmarshal(raw, &generic); err != nil {
			return errors.Wrap(err, "failed to encode output")
		}
		enc := yaml.NewEncoder(out)
		enc.SetIndent(2)
		if err := enc.Encode(generic); err != nil {
			return errors.Wrap(err, "failed to encode output")
		}
		return enc.Close()
	default:
		return errors.InvalidInput("unsupported output format " + st.format)
	}
}
