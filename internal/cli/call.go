package cli

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/GriffinCanCode/mathd/internal/shared/types"
	"github.com/GriffinCanCode/mathd/internal/shared/utils"
	"github.com/GriffinCanCode/mathd/pkg/client"
)

// ErrCallFailed is returned when a tool answers with an error report
var ErrCallFailed = errors.New("tool call failed")

// CallOptions holds flags for the call command.
type CallOptions struct {
	*RootOptions
	Remote string
}

// NewCallCommand creates the call command.
func NewCallCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &CallOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "call <tool> [arguments]",
		Short: "Call a tool",
		Long: `Call a tool in-process, or on a running server with --remote.

Arguments are JSON. Slightly malformed JSON is repaired, and a value that
is not JSON at all is passed as a string.

Example:
  mathd call hypotenuse '{"a": 3, "b": 4}'
  mathd call mean '[1, 2, 3]'
  mathd call constant pi`,
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var raw interface{}
			if len(args) == 2 {
				raw = parseArguments(args[1])
			}

			result, err := callTool(cmd, opts, args[0], raw)
			if err != nil {
				return err
			}
			return writeResult(cmd.OutOrStdout(), opts.Format, result)
		},
	}

	cmd.Flags().StringVar(&opts.Remote, "remote", "", "call a running server at this base URL")

	return cmd
}

func parseArguments(text string) interface{} {
	raw, err := utils.DefaultJSONValidator().Decode([]byte(text))
	if err != nil {
		return strings.TrimSpace(text)
	}
	return raw
}

func callTool(cmd *cobra.Command, opts *CallOptions, name string, raw interface{}) (*types.Result, error) {
	if opts.Remote != "" {
		return client.New(opts.Remote).Call(contextOf(cmd), name, raw)
	}

	registry, err := localRegistry(opts.ConfigPath)
	if err != nil {
		return nil, err
	}
	return registry.Execute(contextOf(cmd), name, raw), nil
}

func writeResult(w io.Writer, format string, result *types.Result) error {
	if format == "json" {
		if err := writeJSON(w, result); err != nil {
			return err
		}
	} else if result.Success {
		value, err := sonic.Marshal(result.Value)
		if err != nil {
			return err
		}
		color.New(color.FgGreen).Fprintln(w, string(value))
	} else {
		report := result.Error
		color.New(color.FgRed, color.Bold).Fprintf(w, "%s", report.Kind)
		fmt.Fprintf(w, " in %s: %s\n", report.Operation, report.Message)
	}

	if !result.Success {
		return fmt.Errorf("%w: %s", ErrCallFailed, result.Error.Kind)
	}
	return nil
}
