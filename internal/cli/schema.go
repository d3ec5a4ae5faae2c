package cli

import (
	"fmt"

	"github.com/reglet-dev/reglet-entities/registry"
	"github.com/spf13/cobra"
)

func (a *app) schemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Print the JSON schema of the output document",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := registry.NewDocumentRegistry()
			if err != nil {
				return err
			}
			schema, ok := reg.GetSchema(registry.DocumentSchema)
			if !ok {
				return fmt.Errorf("schema %q is not registered", registry.DocumentSchema)
			}
			fmt.Fprintln(cmd.OutOrStdout(), schema)
			return nil
		},
	}
}
