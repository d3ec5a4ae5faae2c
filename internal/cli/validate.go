package cli

import (
	"fmt"

	entitylib "github.com/reglet-dev/reglet-entities"
	"github.com/reglet-dev/reglet-entities/sink"
	"github.com/reglet-dev/reglet-entities/validation"
	"github.com/spf13/cobra"
)

func (a *app) validateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <document>",
		Short: "Validate a written document against the document schema",
		Long: `Validate checks an existing output document against the document schema.
The format and compression are inferred from the file name, e.g.
entities.yaml.zst.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := args[0]
			format, compression, err := sink.FormatForFile(path)
			if err != nil {
				return err
			}

			data, err := sink.NewFileSink(path, sink.WithCompression(compression)).ReadDocument()
			if err != nil {
				return err
			}
			doc, err := sink.ToJSON(data, format)
			if err != nil {
				return err
			}

			v, err := validation.NewDocumentValidator()
			if err != nil {
				return err
			}
			res, err := v.Validate(doc)
			if err != nil {
				return err
			}
			if !res.Valid {
				for _, issue := range res.Errors {
					fmt.Fprintf(cmd.OutOrStdout(), "  %s: %s\n", issue.Path, issue.Message)
				}
				return &entitylib.InvalidDocumentError{Issues: res.Errors}
			}

			fmt.Fprintf(cmd.OutOrStdout(), "%s is valid\n", path)
			return nil
		},
	}
}
