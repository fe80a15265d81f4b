package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"archibridge/application/commands"
)

type importOptions struct {
	delimiter string
	encoding  string
	output    string
	dryRun    bool
}

func newImportCmd(a *app) *cobra.Command {
	var opts importOptions

	cmd := &cobra.Command{
		Use:   "import <model.archimate> <elements.csv>",
		Short: "Merge a CSV file set into a model file",
		Long: "Merge the elements, relations and properties files sharing the prefix of the\n" +
			"given CSV file into the model. Any one file of the set may be named.",
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			modelID, err := a.open(ctx, args[0])
			if err != nil {
				return err
			}

			imp := &commands.ImportCSVCommand{
				ModelID:   modelID,
				Path:      args[1],
				Delimiter: opts.delimiter,
				Encoding:  opts.encoding,
			}
			if err := a.container.CommandBus.Send(ctx, imp); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			r := imp.Result
			fmt.Fprintf(out, "new concepts: %d\nupdated concepts: %d\nnew properties: %d\n",
				r.NewConcepts, r.UpdatedConcepts, r.NewProperties)
			if !r.Changed {
				fmt.Fprintln(out, "model unchanged")
				return nil
			}
			if opts.dryRun {
				fmt.Fprintln(out, "dry run: model not written")
				return nil
			}

			saved, err := a.save(ctx, modelID, opts.output)
			if err != nil {
				return err
			}
			fmt.Fprintf(out, "saved %s\n", saved)
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.delimiter, "delimiter", "", "Field delimiter: , ; or tab (default from config)")
	cmd.Flags().StringVar(&opts.encoding, "encoding", "", "UTF-8, UTF-8 BOM or ANSI (default from config)")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "Write the merged model here instead of over the input")
	cmd.Flags().BoolVar(&opts.dryRun, "dry-run", false, "Report the changes without writing the model")
	return cmd
}

type exportOptions struct {
	prefix           string
	delimiter        string
	encoding         string
	noHeader         bool
	stripNewLines    bool
	leadingCharsHack bool
}

func newExportCmd(a *app) *cobra.Command {
	var opts exportOptions

	cmd := &cobra.Command{
		Use:   "export <model.archimate> <directory>",
		Short: "Write a model as a CSV file set",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			modelID, err := a.open(ctx, args[0])
			if err != nil {
				return err
			}

			exp := &commands.ExportCSVCommand{
				ModelID:   modelID,
				Directory: args[1],
				Delimiter: opts.delimiter,
				Encoding:  opts.encoding,
			}
			flags := cmd.Flags()
			if flags.Changed("prefix") {
				exp.Prefix = &opts.prefix
			}
			if flags.Changed("no-header") {
				header := !opts.noHeader
				exp.WriteHeader = &header
			}
			if flags.Changed("strip-newlines") {
				exp.StripNewLines = &opts.stripNewLines
			}
			if flags.Changed("leading-chars-hack") {
				exp.UseLeadingCharsHack = &opts.leadingCharsHack
			}
			if err := a.container.CommandBus.Send(ctx, exp); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			for _, path := range []string{exp.Files.Elements, exp.Files.Relations, exp.Files.Properties} {
				fmt.Fprintln(out, path)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&opts.prefix, "prefix", "", "File name prefix")
	cmd.Flags().StringVar(&opts.delimiter, "delimiter", "", "Field delimiter: , ; or tab (default from config)")
	cmd.Flags().StringVar(&opts.encoding, "encoding", "", "UTF-8, UTF-8 BOM or ANSI (default from config)")
	cmd.Flags().BoolVar(&opts.noHeader, "no-header", false, "Omit the header row")
	cmd.Flags().BoolVar(&opts.stripNewLines, "strip-newlines", false, "Replace line breaks in values with spaces")
	cmd.Flags().BoolVar(&opts.leadingCharsHack, "leading-chars-hack", false, `Write values with leading zeros or spaces as ="value"`)
	return cmd
}
