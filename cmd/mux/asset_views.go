package main

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"muxcli/internal/ingest"
	"muxcli/internal/readiness"
	"muxcli/internal/services/mux"
)

const streamBaseURL = "https://stream.mux.com"

func printLines(out io.Writer, lines ...string) {
	for _, line := range lines {
		fmt.Fprintln(out, line)
	}
}

func renderAsset(out io.Writer, asset *mux.Asset, colorize bool) {
	printLines(out, renderSectionHeader("Asset "+asset.ID, colorize)...)
	printLines(out, renderStatusLine("Status", platformStatusKind(asset.Status), statusLabel(asset.Status), colorize))
	if messages := asset.ErrorMessages(); len(messages) > 0 {
		printLines(out, renderStatusLine("Errors", statusError, strings.Join(messages, "; "), colorize))
	}

	fields := [][2]string{
		{"ID", asset.ID},
		{"Created", asset.CreatedAt},
		{"Video quality", asset.VideoQuality},
		{"Aspect ratio", asset.AspectRatio},
		{"Passthrough", asset.Passthrough},
		{"Upload ID", asset.UploadID},
		{"Test asset", testLabel(asset.Test)},
	}
	if asset.Duration > 0 {
		fields = append(fields, [2]string{"Duration", fmt.Sprintf("%.1fs", asset.Duration)})
	}
	for _, playback := range asset.PlaybackIDs {
		fields = append(fields, [2]string{"Playback (" + playback.Policy + ")", playbackURL(playback)})
	}
	printLines(out, renderFields(fields))

	if asset.StaticRenditions != nil && len(asset.StaticRenditions.Files) > 0 {
		printLines(out, renderRenditionTable(asset.StaticRenditions.Files))
	}
}

func playbackURL(playback mux.PlaybackID) string {
	if playback.Policy == "public" {
		return fmt.Sprintf("%s/%s.m3u8", streamBaseURL, playback.ID)
	}
	return playback.ID
}

func testLabel(test bool) string {
	if !test {
		return ""
	}
	return yesNo(test)
}

func renderRenditionTable(files []mux.StaticRendition) string {
	rows := make([][]string, 0, len(files))
	for _, file := range files {
		rows = append(rows, []string{file.ID, file.Name, file.Resolution, statusLabel(file.Status), renditionSize(file.Filesize)})
	}
	return renderTable(
		[]string{"Rendition", "Name", "Resolution", "Status", "Size"},
		rows,
		[]columnAlignment{alignLeft, alignLeft, alignLeft, alignLeft, alignRight},
	)
}

func renditionSize(raw string) string {
	var size uint64
	if _, err := fmt.Sscan(raw, &size); err != nil || size == 0 {
		return ""
	}
	return humanize.IBytes(size)
}

func renderUploads(out io.Writer, outcomes []ingest.UploadOutcome, colorize bool) {
	printLines(out, renderSectionHeader(fmt.Sprintf("Uploaded %d file(s)", len(outcomes)), colorize)...)
	rows := make([][]string, 0, len(outcomes))
	for _, outcome := range outcomes {
		assetStatus := ""
		if outcome.AssetStatus != "" {
			assetStatus = statusLabel(outcome.AssetStatus)
		}
		rows = append(rows, []string{outcome.File, outcome.UploadID, statusLabel(outcome.Status), outcome.AssetID, assetStatus})
	}
	printLines(out, renderTable([]string{"File", "Upload ID", "Status", "Asset ID", "Asset Status"}, rows, nil))
}

func renderPoll(out io.Writer, outcome *readiness.Outcome, colorize bool) {
	if outcome == nil {
		return
	}
	message := fmt.Sprintf("%s after %d check(s) in %s", statusLabel(outcome.FinalStatus), outcome.Attempts, outcome.Elapsed.Round(time.Second))
	printLines(out, renderStatusLine("Readiness", platformStatusKind(outcome.FinalStatus), message, colorize))
}

func renderIngestResult(out io.Writer, result *ingest.Result, colorize bool) {
	if result.Asset != nil {
		renderAsset(out, result.Asset, colorize)
	}
	if len(result.Uploads) > 0 {
		renderUploads(out, result.Uploads, colorize)
	}
	renderPoll(out, result.Poll, colorize)
}

func renderRenditionResult(out io.Writer, result *ingest.RenditionResult, colorize bool) {
	printLines(out, renderSectionHeader("Static rendition for asset "+result.AssetID, colorize)...)
	printLines(out, renderStatusLine("Status", platformStatusKind(result.Rendition.Status), statusLabel(result.Rendition.Status), colorize))
	printLines(out, renderRenditionTable([]mux.StaticRendition{result.Rendition}))
	renderPoll(out, result.Poll, colorize)
}
