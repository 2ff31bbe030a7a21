// package formatter provides functions to export a collection snapshot to various formats (CSV, Markdown, plain text)
package formatter

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"
	"strings"

	"github.com/cr1stiaaana/movie-ai-suggestor/internal/models"
	"github.com/cr1stiaaana/movie-ai-suggestor/internal/shared"
)

// ExportToCSV converts a Collection to CSV with columns: Title, Year, Rating, WatchDate, Genres.
//
// The column shape matches what the backend's CSV importer accepts, so an
// exported collection can be re-imported elsewhere.
func ExportToCSV(collection *models.Collection) ([]byte, error) {
	var buf bytes.Buffer
	writer := csv.NewWriter(&buf)

	headers := []string{"Title", "Year", "Rating", "WatchDate", "Genres"}
	if err := writer.Write(headers); err != nil {
		return nil, fmt.Errorf("failed to write CSV headers: %w", err)
	}

	for _, movie := range collection.Movies {
		year := ""
		if movie.Year > 0 {
			year = strconv.Itoa(movie.Year)
		}

		rating := ""
		if movie.Rating != nil {
			rating = strconv.FormatFloat(*movie.Rating, 'f', -1, 64)
		}

		record := []string{
			movie.Title,
			year,
			rating,
			movie.WatchDate,
			strings.Join(movie.Genres, "; "),
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

// ExportToMarkdown converts a Collection to a Markdown listing.
func ExportToMarkdown(collection *models.Collection) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString("# My Movie Collection\n\n")
	buf.WriteString(fmt.Sprintf("**Total**: %s\n\n", shared.MovieCount(collection.Count)))

	buf.WriteString("## Movies\n\n")
	for i, movie := range collection.Movies {
		yearPart := ""
		if movie.Year > 0 {
			yearPart = fmt.Sprintf(" (%d)", movie.Year)
		}

		ratingPart := ""
		if movie.Rating != nil {
			ratingPart = fmt.Sprintf(" - rated %.1f/10", *movie.Rating)
		}

		buf.WriteString(fmt.Sprintf("%d. %s%s%s\n", i+1, movie.Title, yearPart, ratingPart))
		if len(movie.Genres) > 0 {
			buf.WriteString(fmt.Sprintf("   - %s\n", strings.Join(movie.Genres, ", ")))
		}
	}

	return buf.Bytes(), nil
}

// ExportToText converts a Collection to a plain text listing.
func ExportToText(collection *models.Collection) ([]byte, error) {
	var buf bytes.Buffer

	buf.WriteString(fmt.Sprintf("You have %s in your collection\n\n", shared.MovieCount(collection.Count)))

	for _, movie := range collection.Movies {
		line := movie.Title
		if movie.Year > 0 {
			line = fmt.Sprintf("%s (%d)", line, movie.Year)
		}
		if movie.Rating != nil {
			line = fmt.Sprintf("%s [%.1f/10]", line, *movie.Rating)
		}
		buf.WriteString(line + "\n")
	}

	return buf.Bytes(), nil
}

// Export renders the collection in the named format: csv, markdown, or text.
func Export(collection *models.Collection, format string) ([]byte, error) {
	switch format {
	case "csv":
		return ExportToCSV(collection)
	case "markdown", "md":
		return ExportToMarkdown(collection)
	case "text", "txt":
		return ExportToText(collection)
	default:
		return nil, fmt.Errorf("%w: unknown format %q", shared.ErrInvalidArgument, format)
	}
}
