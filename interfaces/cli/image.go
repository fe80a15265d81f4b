package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"archibridge/application/commands"
	"archibridge/application/queries"
)

func newImageCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "image",
		Short: "Manage the images stored in a model file",
	}
	cmd.AddCommand(newImageAddCmd(a), newImageListCmd(a))
	return cmd
}

func newImageAddCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "add <model.archimate> <image>",
		Short: "Store an image file in a model and print its key",
		Long: "Store the image under its content key and save the model. Saving keeps only\n" +
			"the images some view shows, so the key must be referenced by an image figure.",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			modelID, err := a.open(ctx, args[0])
			if err != nil {
				return err
			}

			add := &commands.AddImageCommand{ModelID: modelID, Path: args[1]}
			if err := a.container.CommandBus.Send(ctx, add); err != nil {
				return err
			}
			if _, err := a.save(ctx, modelID, ""); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), add.Key)
			return nil
		},
	}
}

func newImageListCmd(a *app) *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "list <model.archimate>",
		Short: "List the image keys shown by the views of a model",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			modelID, err := a.open(ctx, args[0])
			if err != nil {
				return err
			}

			result, err := a.container.QueryBus.Ask(ctx, queries.ListImagesQuery{ModelID: modelID})
			if err != nil {
				return err
			}
			images := result.(*queries.ListImagesResult)
			keys := images.Referenced
			if all {
				keys = images.Stored
			}
			for _, key := range keys {
				fmt.Fprintln(cmd.OutOrStdout(), key)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "Include stored images no view shows")
	return cmd
}
