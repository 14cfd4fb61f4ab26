package cli

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/ericfisherdev/trailtail/internal/domain/model"
)

const (
	formatText = "text"
	formatJSON = "json"
	formatYAML = "yaml"
)

var outputFormat = formatText

func validateOutput() error {
	switch outputFormat {
	case formatText, formatJSON, formatYAML:
		return nil
	default:
		return fmt.Errorf("unknown output format %q (want text, json or yaml)", outputFormat)
	}
}

// render writes v in the selected format. text prints the human form.
func render(cmd *cobra.Command, v any, text func(cmd *cobra.Command)) error {
	switch outputFormat {
	case formatJSON:
		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal output: %w", err)
		}
		cmd.Println(string(data))
		return nil
	case formatYAML:
		return renderYAML(cmd, v)
	default:
		text(cmd)
		return nil
	}
}

// renderYAML goes through JSON first so keys match the json tags on the
// model types.
func renderYAML(cmd *cobra.Command, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	var generic any
	if err := json.Unmarshal(data, &generic); err != nil {
		return fmt.Errorf("failed to convert output: %w", err)
	}

	enc := yaml.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent(2)
	if err := enc.Encode(generic); err != nil {
		return fmt.Errorf("failed to write yaml: %w", err)
	}
	return enc.Close()
}

// renderAction prints res and fails the command when the action did not
// succeed. Text output leaves the failure message to cobra's error line.
func renderAction(cmd *cobra.Command, res model.ActionResult) error {
	if res.Success || outputFormat != formatText {
		if err := render(cmd, res, func(cmd *cobra.Command) { cmd.Println(res.Message) }); err != nil {
			return err
		}
	}
	if !res.Success {
		return errors.New(res.Message)
	}
	return nil
}
