// package formatter renders tracks for display and exports favorites to various formats (CSV, Markdown, plain text, JSON)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/Rhymond/go-money"
	"github.com/desertthunder/tunes/internal/models"
	"github.com/desertthunder/tunes/internal/shared"
)

// Format names an export format.
type Format string

const (
	FormatCSV      Format = "csv"
	FormatMarkdown Format = "markdown"
	FormatText     Format = "text"
	FormatJSON     Format = "json"
)

// Formats lists the supported export formats.
var Formats = []Format{FormatCSV, FormatMarkdown, FormatText, FormatJSON}

// ParseFormat resolves a format name, accepting the common aliases "md" and "txt".
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "csv":
		return FormatCSV, nil
	case "markdown", "md":
		return FormatMarkdown, nil
	case "text", "txt":
		return FormatText, nil
	case "json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: unknown export format %q", shared.ErrInvalidFlag, s)
	}
}

// Extension returns the file extension used for f
func (f Format) Extension() string {
	switch f {
	case FormatMarkdown:
		return "md"
	case FormatText:
		return "txt"
	default:
		return string(f)
	}
}

// FormatDuration renders a length in milliseconds as m:ss. Unknown lengths render as "-:--".
func FormatDuration(ms int64) string {
	if ms <= 0 {
		return "-:--"
	}
	total := (ms + 500) / 1000
	return fmt.Sprintf("%d:%02d", total/60, total%60)
}

// FormatPrice renders a track price in its currency. A zero price is "Free".
//
// Unknown or missing currency codes fall back to a plain two-decimal amount.
func FormatPrice(price float64, currency string) string {
	if price <= 0 {
		return "Free"
	}

	cur := money.GetCurrency(strings.ToUpper(currency))
	if cur == nil {
		return strings.TrimSpace(fmt.Sprintf("%.2f %s", price, currency))
	}

	minor := int64(math.Round(price * math.Pow10(cur.Fraction)))
	return money.New(minor, cur.Code).Display()
}

// ReleaseYear extracts the year from a catalog release date, or "" when it has none.
func ReleaseYear(date string) string {
	if date == "" {
		return ""
	}
	if t, err := time.Parse(time.RFC3339, date); err == nil {
		return strconv.Itoa(t.Year())
	}
	if len(date) >= 4 {
		if _, err := strconv.Atoi(date[:4]); err == nil {
			return date[:4]
		}
	}
	return ""
}

// Describe is the one-line secondary description of a track: artist, album, duration and price.
func Describe(t models.Track) string {
	parts := []string{t.ArtistName}
	if t.Collection != "" {
		parts = append(parts, t.Collection)
	}
	parts = append(parts, FormatDuration(t.DurationMS), FormatPrice(t.Price, t.Currency))
	return strings.Join(parts, " • ")
}

// ExportToCSV converts tracks to CSV format with columns: ID, Title, Artist, Album, Duration, Price, Genre, Year, Preview
func ExportToCSV(tracks []models.Track) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"ID", "Title", "Artist", "Album", "Duration", "Price", "Genre", "Year", "Preview"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, track := range tracks {
		record := []string{
			strconv.FormatInt(track.ID, 10),
			track.TrackName,
			track.ArtistName,
			track.Collection,
			FormatDuration(track.DurationMS),
			FormatPrice(track.Price, track.Currency),
			track.Genre,
			ReleaseYear(track.ReleaseDate),
			track.PreviewURL,
		}
		if err := writer.Write(record); err != nil {
			return nil, fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("CSV writer error: %w", err)
	}

	return buf.Bytes(), nil
}

// ExportToMarkdown converts tracks to a Markdown document with a numbered list
func ExportToMarkdown(tracks []models.Track) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString("# Favorites\n\n")
	buf.WriteString(fmt.Sprintf("**Tracks**: %d\n\n", len(tracks)))

	if len(tracks) == 0 {
		buf.WriteString("_No favorites yet._\n")
		return buf.Bytes(), nil
	}

	buf.WriteString("## Tracks\n\n")
	for i, track := range tracks {
		albumPart := ""
		if track.Collection != "" {
			albumPart = fmt.Sprintf(" (%s)", track.Collection)
		}
		title := track.TrackName
		if track.PreviewURL != "" {
			title = fmt.Sprintf("[%s](%s)", track.TrackName, track.PreviewURL)
		}
		buf.WriteString(fmt.Sprintf("%d. %s - %s%s [%s]\n", i+1, track.ArtistName, title, albumPart, FormatDuration(track.DurationMS)))
	}

	return buf.Bytes(), nil
}

// ExportToText converts tracks to plain text format
func ExportToText(tracks []models.Track) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("Favorites: %d\n\n", len(tracks)))
	for i, track := range tracks {
		buf.WriteString(fmt.Sprintf("%d. %s - %s\n", i+1, track.ArtistName, track.TrackName))
	}

	return buf.Bytes(), nil
}

// ExportToJSON renders tracks as an indented JSON array
func ExportToJSON(tracks []models.Track) ([]byte, error) {
	if tracks == nil {
		tracks = []models.Track{}
	}
	return shared.MarshalJSON(tracks, true)
}

// Export renders tracks in format
func Export(tracks []models.Track, format Format) ([]byte, error) {
	switch format {
	case FormatCSV:
		return ExportToCSV(tracks)
	case FormatMarkdown:
		return ExportToMarkdown(tracks)
	case FormatText:
		return ExportToText(tracks)
	case FormatJSON:
		return ExportToJSON(tracks)
	default:
		return nil, fmt.Errorf("%w: unknown export format %q", shared.ErrInvalidFlag, format)
	}
}

// WriteExport writes tracks to path in format and returns the path written.
//
// Defaults to favorites.{ext} in the working directory.
func WriteExport(tracks []models.Track, format Format, path string) (string, error) {
	data, err := Export(tracks, format)
	if err != nil {
		return "", err
	}

	if path == "" {
		path = "favorites." + format.Extension()
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return "", fmt.Errorf("failed to write %s export: %w", format, err)
	}

	return path, nil
}
