package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"archibridge/application/queries"
)

func newConvertCmd(a *app) *cobra.Command {
	var output string

	cmd := &cobra.Command{
		Use:   "convert <legacy.archimate>",
		Short: "Rewrite a zipped legacy archive as a plain model file",
		Long: "Read a legacy zip archive, move its images into the model and write the\n" +
			"result as a plain model file, over the input unless --output is given.",
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			if !a.container.Store.IsArchiveFile(args[0]) {
				return fmt.Errorf("%s is not a legacy archive", args[0])
			}

			modelID, err := a.open(ctx, args[0])
			if err != nil {
				return err
			}
			saved, err := a.save(ctx, modelID, output)
			if err != nil {
				return err
			}

			result, err := a.container.QueryBus.Ask(ctx, queries.ListImagesQuery{ModelID: modelID})
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "converted %s (%d images)\n", saved, len(result.(*queries.ListImagesResult).Referenced))
			return nil
		},
	}

	cmd.Flags().StringVarP(&output, "output", "o", "", "Write the converted model here")
	return cmd
}
