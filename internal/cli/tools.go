package cli

import (
	"fmt"
	"io"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"

	"github.com/GriffinCanCode/mathd/internal/shared/types"
	"github.com/GriffinCanCode/mathd/pkg/client"
)

// ToolsOptions holds flags for the tools command.
type ToolsOptions struct {
	*RootOptions
	Group  string
	Remote string
}

// NewToolsCommand creates the tools command.
func NewToolsCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ToolsOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:     "tools",
		Aliases: []string{"ls"},
		Short:   "List the advertised tools",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tools, err := listTools(cmd, opts)
			if err != nil {
				return err
			}

			if opts.Format == "json" {
				return writeJSON(cmd.OutOrStdout(), map[string]interface{}{
					"tools": tools,
					"count": len(tools),
				})
			}
			return writeToolTable(cmd.OutOrStdout(), tools)
		},
	}

	cmd.Flags().StringVarP(&opts.Group, "group", "g", "", "only list tools in this group")
	cmd.Flags().StringVar(&opts.Remote, "remote", "", "list the tools of a running server at this base URL")

	return cmd
}

func listTools(cmd *cobra.Command, opts *ToolsOptions) ([]types.Tool, error) {
	if opts.Remote != "" {
		return client.New(opts.Remote).ListTools(contextOf(cmd), opts.Group)
	}

	registry, err := localRegistry(opts.ConfigPath)
	if err != nil {
		return nil, err
	}

	tools := registry.Tools()
	if opts.Group == "" {
		return tools, nil
	}
	filtered := tools[:0]
	for _, tool := range tools {
		if tool.Group == opts.Group {
			filtered = append(filtered, tool)
		}
	}
	return filtered, nil
}

func writeToolTable(w io.Writer, tools []types.Tool) error {
	table := tablewriter.NewWriter(w)
	table.Header("Tool", "Group", "Parameters", "Returns", "Description")

	for _, tool := range tools {
		_ = table.Append([]string{
			tool.ID,
			tool.Group,
			formatParams(tool.Parameters),
			tool.Returns,
			tool.Description,
		})
	}

	if err := table.Render(); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "%d tools\n", len(tools))
	return err
}

// formatParams renders parameters as "name:type", optional ones with a "?"
func formatParams(params []types.Parameter) string {
	parts := make([]string, 0, len(params))
	for _, p := range params {
		typ := p.Type
		if p.Items != "" {
			typ = p.Items + "[]"
		}
		if len(p.Enum) > 0 {
			typ = strings.Join(p.Enum, "|")
		}
		name := p.Name
		if !p.Required {
			name += "?"
		}
		parts = append(parts, name+":"+typ)
	}
	return strings.Join(parts, ", ")
}
