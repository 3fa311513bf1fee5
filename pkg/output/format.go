// Package output renders the calculator catalog and evaluation results for
// the command line in pretty, CSV or YAML form.
package output

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"

	"github.com/iwvelando/finance-calculators/pkg/constants"
	"golang.org/x/text/language"
	"golang.org/x/text/message"
	"gopkg.in/yaml.v3"
)

// CatalogEntry describes one calculator in the catalog listing.
type CatalogEntry struct {
	ID       string   `yaml:"id"`
	Title    string   `yaml:"title"`
	Category string   `yaml:"category"`
	Summary  string   `yaml:"summary"`
	Fields   []string `yaml:"fields"`
}

// Line is one rendered output of an evaluation.
type Line struct {
	Name  string `yaml:"name"`
	Label string `yaml:"label"`
	Value string `yaml:"value"`
}

// Result is an evaluation ready for printing.
type Result struct {
	Calculator string   `yaml:"calculator"`
	Label      string   `yaml:"label,omitempty"`
	Lines      []Line   `yaml:"outputs"`
	Defaulted  []string `yaml:"defaulted,omitempty"`
}

// WriteCatalog renders the catalog in the given output format.
func WriteCatalog(w io.Writer, format string, catalog []CatalogEntry) error {
	switch format {
	case constants.OutputFormatPretty:
		return PrettyFormat(w, catalog)
	case constants.OutputFormatCSV:
		return CsvFormat(w, catalog)
	case constants.OutputFormatYAML:
		return yamlFormat(w, catalog)
	}
	return fmt.Errorf("unsupported output format %q", format)
}

// WriteResult renders one evaluation in the given output format.
func WriteResult(w io.Writer, format string, result Result) error {
	switch format {
	case constants.OutputFormatPretty:
		return PrettyResult(w, result)
	case constants.OutputFormatCSV:
		return CsvResult(w, result)
	case constants.OutputFormatYAML:
		return yamlFormat(w, result)
	}
	return fmt.Errorf("unsupported output format %q", format)
}

// PrettyFormat outputs a human-readable rather than machine-readable
// catalog, one table per category in catalog order.
func PrettyFormat(w io.Writer, catalog []CatalogEntry) error {
	p := message.NewPrinter(language.English)

	var categories []string
	byCategory := make(map[string][]CatalogEntry)
	for _, entry := range catalog {
		if _, seen := byCategory[entry.Category]; !seen {
			categories = append(categories, entry.Category)
		}
		byCategory[entry.Category] = append(byCategory[entry.Category], entry)
	}

	width := len("ID")
	for _, entry := range catalog {
		if len(entry.ID) > width {
			width = len(entry.ID)
		}
	}

	for i, category := range categories {
		if _, err := fmt.Fprintf(w, "--- %s ---\n", category); err != nil {
			return err
		}
		fmt.Fprintf(w, "%-*s | %s\n", width, "ID", "Calculator")
		fmt.Fprintf(w, "%s | %s\n", strings.Repeat("_", width), strings.Repeat("_", len("Calculator")))
		for _, entry := range byCategory[category] {
			fmt.Fprintf(w, "%-*s | %s\n", width, entry.ID, entry.Title)
		}
		if i < len(categories)-1 {
			fmt.Fprintln(w)
		}
	}

	_, err := p.Fprintf(w, "\n%d calculators\n", len(catalog))
	return err
}

// CsvFormat outputs the catalog in comma-separated value format. Field
// names are joined with semicolons.
func CsvFormat(w io.Writer, catalog []CatalogEntry) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"id", "title", "category", "summary", "fields"}); err != nil {
		return err
	}
	for _, entry := range catalog {
		record := []string{entry.ID, entry.Title, entry.Category, entry.Summary, strings.Join(entry.Fields, ";")}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// PrettyResult prints an evaluation as an aligned label/value table.
func PrettyResult(w io.Writer, result Result) error {
	if _, err := fmt.Fprintf(w, "--- Results for %s ---\n", result.Calculator); err != nil {
		return err
	}

	width := 0
	for _, line := range result.Lines {
		if len(line.Label) > width {
			width = len(line.Label)
		}
	}
	for _, line := range result.Lines {
		fmt.Fprintf(w, "%-*s | %s\n", width, line.Label, line.Value)
	}
	if result.Label != "" {
		fmt.Fprintf(w, "\n%s\n", result.Label)
	}
	if len(result.Defaulted) > 0 {
		fmt.Fprintf(w, "Defaulted to zero or the field default: %s\n", strings.Join(result.Defaulted, ", "))
	}
	return nil
}

// CsvResult outputs one row per evaluation output.
func CsvResult(w io.Writer, result Result) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"calculator", "name", "label", "value"}); err != nil {
		return err
	}
	for _, line := range result.Lines {
		if err := cw.Write([]string{result.Calculator, line.Name, line.Label, line.Value}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func yamlFormat(w io.Writer, v interface{}) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode yaml: %w", err)
	}
	return enc.Close()
}
