package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/JaimeStill/promptchain/internal/prompts"
)

func newCompileCmd() *cobra.Command {
	var (
		file    string
		subject string
		all     bool
	)

	cmd := &cobra.Command{
		Use:   "compile",
		Short: "Print the compiled prompt for a chain version",
		Example: `  promptctl compile --file version.json --subject "1girl, silver hair"
  promptctl compile --file version.json --all`,
		RunE: func(cmd *cobra.Command, args []string) error {
			var src prompts.Source
			if err := readJSON(cmd, file, &src); err != nil {
				return err
			}
			if err := prompts.ValidateModules(src.Modules); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), prompts.Compile(src, subject, !all))
			return nil
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "version JSON file with basePrompt and modules (- for stdin)")
	cmd.Flags().StringVarP(&subject, "subject", "s", "", "subject prompt placed between pre and post modules")
	cmd.Flags().BoolVar(&all, "all", false, "include inactive modules")
	cmd.MarkFlagRequired("file")

	return cmd
}
