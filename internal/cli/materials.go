package cli

import (
	"io"

	"github.com/spf13/cobra"

	"github.com/rshade/zern/internal/report"
)

// NewMaterialsCmd creates the "materials" command that prints the active
// material emission table.
func NewMaterialsCmd() *cobra.Command {
	var output outputParams

	cmd := &cobra.Command{
		Use:   "materials",
		Short: "Show the material emission table",
		Long: `Show the material emission table used by the lifespan and zeb commands.

The built-in table can be extended or overridden with a YAML file given by
--materials, ZERN_MATERIALS_FILE or materials.file in the configuration.`,
		Example: `  # Built-in table
  zern materials

  # Table with a local override file, as JSON
  zern materials --materials ./materials.yaml --output json`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			table, err := materialsTable(cmd)
			if err != nil {
				return err
			}
			doc := report.NewMaterialsDocument(table)
			return emit(cmd, output, func(w io.Writer, f report.Format) error {
				return report.WriteMaterials(w, f, doc)
			})
		},
	}

	addOutputFlags(cmd, &output)
	return cmd
}
