package main

import (
	"github.com/spf13/cobra"
)

func newStaticRenditionsCommand(ctx *commandContext) *cobra.Command {
	renditionsCmd := &cobra.Command{
		Use:   "static-renditions",
		Short: "Manage static MP4 renditions",
	}
	renditionsCmd.AddCommand(newStaticRenditionsCreateCommand(ctx))
	return renditionsCmd
}

func newStaticRenditionsCreateCommand(ctx *commandContext) *cobra.Command {
	var resolution string
	var wait bool

	cmd := &cobra.Command{
		Use:   "create <asset-id>",
		Short: "Request a static rendition for an existing asset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pipeline, _, err := ctx.pipeline(cmd)
			if err != nil {
				return err
			}
			result, err := pipeline.CreateRendition(requestContext(cmd.Context()), args[0], resolution, wait)
			if err != nil {
				if result != nil && !ctx.jsonOutput() {
					renderRenditionResult(cmd.OutOrStdout(), result, shouldColorize(cmd.OutOrStdout()))
				}
				return err
			}
			if ctx.jsonOutput() {
				return writeJSON(cmd, result)
			}
			renderRenditionResult(cmd.OutOrStdout(), result, shouldColorize(cmd.OutOrStdout()))
			return nil
		},
	}

	cmd.Flags().StringVar(&resolution, "resolution", "", "Rendition resolution such as 1080p, highest, or audio-only")
	cmd.Flags().BoolVar(&wait, "wait", false, "Wait until the rendition is ready, skipped, or errored")
	return cmd
}
