package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/JaimeStill/promptchain/internal/chains"
	"github.com/JaimeStill/promptchain/internal/generation"
	"github.com/JaimeStill/promptchain/internal/prompts"
)

func newPayloadCmd() *cobra.Command {
	var (
		file    string
		subject string
		model   string
	)

	cmd := &cobra.Command{
		Use:   "payload",
		Short: "Print the upstream generation request for a chain version",
		RunE: func(cmd *cobra.Command, args []string) error {
			var v chains.Version
			if err := readJSON(cmd, file, &v); err != nil {
				return err
			}
			if err := prompts.ValidateModules(v.Modules); err != nil {
				return err
			}

			prompt := prompts.CompileDefault(v.Source(), subject)
			payload := generation.BuildPayload(prompt, v.NegativePrompt, v.Params, model)

			body, err := json.Marshal(payload)
			if err != nil {
				return fmt.Errorf("encode payload: %w", err)
			}
			if err := generation.ValidateRequest(body); err != nil {
				return err
			}

			return writeJSON(cmd, payload)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "version JSON file (- for stdin)")
	cmd.Flags().StringVarP(&subject, "subject", "s", "", "subject prompt")
	cmd.Flags().StringVarP(&model, "model", "m", generation.DefaultModel, "upstream model name")
	cmd.MarkFlagRequired("file")

	return cmd
}

func newTemplateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "template",
		Short: "Print the default version template",
		RunE: func(cmd *cobra.Command, args []string) error {
			return writeJSON(cmd, chains.DefaultVersion())
		},
	}
}
