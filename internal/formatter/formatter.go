// package formatter provides functions to export curation snapshots to various formats (JSON, CSV, Markdown, plain text)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/lectern-app/lectern/internal/curation"
	"github.com/lectern-app/lectern/internal/models"
	"github.com/lectern-app/lectern/internal/shared"
)

// Format identifies an export serialization format.
type Format string

const (
	FormatJSON     Format = "json"
	FormatCSV      Format = "csv"
	FormatMarkdown Format = "markdown"
	FormatText     Format = "text"
)

// ParseFormat validates a user-supplied format name.
func ParseFormat(name string) (Format, error) {
	switch Format(name) {
	case FormatJSON, FormatCSV, FormatMarkdown, FormatText:
		return Format(name), nil
	case "md":
		return FormatMarkdown, nil
	case "txt":
		return FormatText, nil
	default:
		return "", fmt.Errorf("%w: unknown export format %q", shared.ErrInvalidArgument, name)
	}
}

// Export serializes a snapshot in the given format.
func Export(snapshot models.Snapshot, format Format) ([]byte, error) {
	switch format {
	case FormatJSON:
		return ExportToJSON(snapshot)
	case FormatCSV:
		return ExportToCSV(snapshot)
	case FormatMarkdown:
		return ExportToMarkdown(snapshot)
	case FormatText:
		return ExportToText(snapshot)
	default:
		return nil, fmt.Errorf("%w: unknown export format %q", shared.ErrInvalidArgument, format)
	}
}

// ExportToJSON converts a snapshot to pretty-printed JSON.
//
// The JSON layout mirrors the wire format: topic groups in display order, each
// holding its marked videos.
func ExportToJSON(snapshot models.Snapshot) ([]byte, error) {
	data, err := shared.MarshalJSON(snapshot, true)
	if err != nil {
		return nil, fmt.Errorf("failed to generate JSON: %w", err)
	}
	return data, nil
}

// ExportToCSV converts a snapshot to CSV with columns: Topic, ID, Title, Channel, URL, Duration, Views, Likes, Published
func ExportToCSV(snapshot models.Snapshot) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"Topic", "ID", "Title", "Channel", "URL", "Duration", "Views", "Likes", "Published"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, group := range snapshot.Topics {
		for _, video := range group.Videos {
			record := []string{
				group.Topic,
				video.ID,
				video.Title,
				video.Channel,
				video.URL(),
				shared.FormatDuration(curation.ParseDuration(video.DurationCode)),
				strconv.FormatInt(video.Views, 10),
				strconv.FormatInt(video.Likes, 10),
				video.PublishedAt.Format("2006-01-02"),
			}
			if err := writer.Write(record); err != nil {
				return nil, fmt.Errorf("failed to write CSV record: %w", err)
			}
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown converts a snapshot to Markdown with one section per topic
func ExportToMarkdown(snapshot models.Snapshot) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("# %s\n\n", snapshot.Name))
	buf.WriteString(fmt.Sprintf("**Generated**: %s\n", snapshot.GeneratedAt.Format("2006-01-02 15:04 MST")))
	buf.WriteString(fmt.Sprintf("**Topics**: %d\n", len(snapshot.Topics)))
	buf.WriteString(fmt.Sprintf("**Videos**: %d\n\n", snapshot.VideoCount()))

	for _, group := range snapshot.Topics {
		buf.WriteString(fmt.Sprintf("## %s\n\n", group.Topic))
		for i, video := range group.Videos {
			duration := shared.FormatDuration(curation.ParseDuration(video.DurationCode))
			buf.WriteString(fmt.Sprintf("%d. [%s](%s) - %s [%s]\n", i+1, video.Title, video.URL(), video.Channel, duration))
		}
		buf.WriteString("\n")
	}

	return buf.Bytes(), nil
}

// ExportToText converts a snapshot to plain text
func ExportToText(snapshot models.Snapshot) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Snapshot: %s\n", snapshot.Name))
	buf.WriteString(fmt.Sprintf("Generated: %s\n", snapshot.GeneratedAt.Format("2006-01-02 15:04 MST")))
	buf.WriteString(fmt.Sprintf("Videos: %d\n\n", snapshot.VideoCount()))

	for _, group := range snapshot.Topics {
		buf.WriteString(fmt.Sprintf("%s:\n", group.Topic))
		for i, video := range group.Videos {
			buf.WriteString(fmt.Sprintf("  %d. %s - %s (%s)\n", i+1, video.Title, video.Channel, video.URL()))
		}
		buf.WriteString("\n")
	}

	return buf.Bytes(), nil
}

// extensions maps formats to their output file extensions.
var extensions = map[Format]string{
	FormatJSON:     ".json",
	FormatCSV:      ".csv",
	FormatMarkdown: ".md",
	FormatText:     ".txt",
}

// WriteExport serializes a snapshot and writes it under outputDir.
//
// The base filename defaults to the snapshot name; returns the path of the
// written file.
func WriteExport(snapshot models.Snapshot, format Format, outputDir, baseName string) (string, error) {
	data, err := Export(snapshot, format)
	if err != nil {
		return "", err
	}

	if baseName == "" {
		baseName = snapshot.Name
	}
	if baseName == "" {
		baseName = "snapshot"
	}

	if outputDir != "" {
		if err := os.MkdirAll(outputDir, 0755); err != nil {
			return "", fmt.Errorf("failed to create export directory: %w", err)
		}
	}

	path := filepath.Join(outputDir, baseName+extensions[format])
	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write export file: %w", err)
	}

	return path, nil
}
