package cli

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"github.com/google/uuid"

	"github.com/gnomegl/mcavail/internal/core"
)

type Exporter struct {
	Summary core.RunSummary
	RunID   string
	Out     io.Writer

	now func() time.Time
}

func NewExporter(summary core.RunSummary, out io.Writer) *Exporter {
	if out == nil {
		out = os.Stdout
	}
	return &Exporter{
		Summary: summary,
		RunID:   uuid.NewString(),
		Out:     out,
		now:     time.Now,
	}
}

// WriteReport writes the available-names report to path, replacing any
// previous content. The timestamp is taken at write time.
func (e *Exporter) WriteReport(path string) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create report file: %w", err)
	}
	defer file.Close()

	report := core.FormatReport(e.Summary.Total, e.Summary.Available, e.now())
	if _, err := io.WriteString(file, report); err != nil {
		return fmt.Errorf("failed to write report file: %w", err)
	}

	return file.Close()
}

func (e *Exporter) ExportCSV(path string) error {
	var writer *csv.Writer

	if path == "" {
		writer = csv.NewWriter(e.Out)
	} else {
		file, err := os.Create(path)
		if err != nil {
			return fmt.Errorf("failed to create CSV file: %w", err)
		}
		defer file.Close()
		writer = csv.NewWriter(file)
	}

	header := []string{"Name", "Status", "Available", "Response Code", "Profile ID", "Elapsed", "Error", "Timestamp"}
	if err := writer.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	for _, result := range e.Summary.Results {
		row := []string{
			result.Name,
			string(result.Status),
			strconv.FormatBool(result.Available()),
			strconv.Itoa(result.ResponseCode),
			result.ProfileID,
			fmt.Sprintf("%.2f", result.Elapsed),
			result.Error,
			result.CreatedAt.Format(time.RFC3339),
		}
		if err := writer.Write(row); err != nil {
			return fmt.Errorf("failed to write CSV row: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("failed to flush CSV: %w", err)
	}

	if path != "" {
		fmt.Fprintf(e.Out, "Exported to CSV: %s\n", path)
	}
	return nil
}

type jsonExport struct {
	RunID     string             `json:"run_id"`
	Timestamp string             `json:"timestamp"`
	Summary   map[string]int     `json:"summary"`
	Available []string           `json:"available"`
	Results   []core.CheckResult `json:"results"`
}

func (e *Exporter) ExportJSON(path string) error {
	data := jsonExport{
		RunID:     e.RunID,
		Timestamp: e.now().Format(time.RFC3339),
		Summary: map[string]int{
			"total":     e.Summary.Total,
			"available": len(e.Summary.Available),
			"taken":     e.Summary.CountByStatus(core.CheckStatusTaken),
			"errors":    e.Summary.CountByStatus(core.CheckStatusError),
		},
		Available: e.Summary.Available,
		Results:   e.Summary.Results,
	}

	if path == "" {
		encoder := json.NewEncoder(e.Out)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(data); err != nil {
			return fmt.Errorf("failed to encode JSON: %w", err)
		}
		return nil
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create JSON file: %w", err)
	}
	defer file.Close()

	encoder := json.NewEncoder(file)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(data); err != nil {
		return fmt.Errorf("failed to encode JSON: %w", err)
	}
	fmt.Fprintf(e.Out, "Exported to JSON: %s\n", path)

	return nil
}
