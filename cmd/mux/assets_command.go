package main

import (
	"github.com/spf13/cobra"

	"muxcli/internal/ingest"
	"muxcli/internal/logging"
)

func newAssetsCommand(ctx *commandContext) *cobra.Command {
	assetsCmd := &cobra.Command{
		Use:   "assets",
		Short: "Create and inspect assets",
	}

	assetsCmd.AddCommand(newAssetsCreateCommand(ctx))
	assetsCmd.AddCommand(newAssetsGetCommand(ctx))
	assetsCmd.AddCommand(newAssetsWaitCommand(ctx))

	return assetsCmd
}

func newAssetsCreateCommand(ctx *commandContext) *cobra.Command {
	var input ingest.Input

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an asset from a URL, local files, or a JSON manifest",
		Long: `Create an asset from exactly one source:

  --url      a remote URL the platform downloads itself
  --upload   local files or glob patterns, uploaded one after another
  --file     a JSON manifest used as the request body

Flags such as --video-quality apply to every source and win over manifest fields.
Uploading more than one file asks for confirmation unless --yes is given.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			pipeline, _, err := ctx.pipeline(cmd)
			if err != nil {
				return err
			}
			result, err := pipeline.Run(requestContext(cmd.Context()), input)
			if err != nil {
				if result != nil && !ctx.jsonOutput() {
					renderIngestResult(cmd.OutOrStdout(), result, shouldColorize(cmd.OutOrStdout()))
				}
				return err
			}
			if ctx.jsonOutput() {
				return writeJSON(cmd, result)
			}
			renderIngestResult(cmd.OutOrStdout(), result, shouldColorize(cmd.OutOrStdout()))
			return nil
		},
	}

	flags := cmd.Flags()
	flags.StringVar(&input.Sources.URL, "url", "", "Remote URL to ingest")
	flags.StringArrayVar(&input.Sources.Uploads, "upload", nil, "Local file or glob pattern to upload (repeatable)")
	flags.StringVarP(&input.Sources.ManifestPath, "file", "f", "", "JSON manifest describing the asset")
	flags.StringSliceVar(&input.Overrides.PlaybackPolicies, "playback-policy", nil, "Playback policy: public, signed, or drm (repeatable)")
	flags.StringSliceVar(&input.Overrides.StaticRenditions, "static-renditions", nil, "Static rendition resolution such as 1080p or highest (repeatable)")
	flags.StringVar(&input.Overrides.VideoQuality, "video-quality", "", "Video quality: basic, plus, or premium")
	flags.StringVar(&input.Overrides.Passthrough, "passthrough", "", "Free-form metadata stored with the asset (max 255 characters)")
	flags.BoolVar(&input.Overrides.Test, "test", false, "Create a watermarked test asset")
	flags.BoolVar(&input.Overrides.NormalizeAudio, "normalize-audio", false, "Normalize audio loudness")
	flags.BoolVarP(&input.AssumeYes, "yes", "y", false, "Skip the confirmation prompt for multi-file uploads")
	flags.BoolVar(&input.Wait, "wait", false, "Wait until the asset is ready")

	return cmd
}

func newAssetsGetCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "get <asset-id>",
		Short: "Show an asset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			logger, err := ctx.logger(cmd.ErrOrStderr())
			if err != nil {
				return err
			}
			client, err := ctx.apiClient(logger)
			if err != nil {
				return err
			}
			reqCtx := requestContext(cmd.Context())
			asset, err := client.GetAsset(reqCtx, args[0])
			if err != nil {
				return err
			}
			logging.WithContext(reqCtx, logger).Debug("asset fetched", logging.String(logging.FieldAssetID, asset.ID))
			if ctx.jsonOutput() {
				return writeJSON(cmd, asset)
			}
			renderAsset(cmd.OutOrStdout(), asset, shouldColorize(cmd.OutOrStdout()))
			return nil
		},
	}
}

func newAssetsWaitCommand(ctx *commandContext) *cobra.Command {
	return &cobra.Command{
		Use:   "wait <asset-id>",
		Short: "Wait until an asset is ready or errored",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pipeline, _, err := ctx.pipeline(cmd)
			if err != nil {
				return err
			}
			asset, outcome, err := pipeline.WaitForAsset(requestContext(cmd.Context()), args[0])
			result := &ingest.Result{Asset: asset, Poll: &outcome}
			if err != nil {
				if asset != nil && !ctx.jsonOutput() {
					renderIngestResult(cmd.OutOrStdout(), result, shouldColorize(cmd.OutOrStdout()))
				}
				return err
			}
			if ctx.jsonOutput() {
				return writeJSON(cmd, result)
			}
			renderIngestResult(cmd.OutOrStdout(), result, shouldColorize(cmd.OutOrStdout()))
			return nil
		},
	}
}
