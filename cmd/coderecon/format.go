package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
	"github.com/olekukonko/tablewriter"
	"github.com/pelletier/go-toml/v2"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"coderecon/internal/config"
	"coderecon/internal/diff"
	"coderecon/internal/model"
	"coderecon/internal/slice"
	"coderecon/internal/summary"
	"coderecon/internal/topology"
)

// OutputFormat represents the output format type
type OutputFormat string

const (
	FormatJSON  OutputFormat = "json"
	FormatYAML  OutputFormat = "yaml"
	FormatHuman OutputFormat = "human"
)

// colorEnabled is decided once from stdout.
var colorEnabled = isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())

var (
	highStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("#E74C3C")).Bold(true)
	mediumStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("#F4D03F"))
	lowStyle    = lipgloss.NewStyle().Foreground(lipgloss.Color("#2CD7C7"))
)

// FormatResponse formats a response according to the specified format
func FormatResponse(resp interface{}, format OutputFormat) (string, error) {
	switch format {
	case FormatJSON:
		return formatJSON(resp)
	case FormatYAML:
		return formatYAML(resp)
	case FormatHuman:
		return formatHuman(resp)
	default:
		return "", fmt.Errorf("unsupported format: %s", format)
	}
}

func formatJSON(resp interface{}) (string, error) {
	data, err := json.MarshalIndent(resp, "", "  ")
	if err != nil {
		return "", fmt.Errorf("failed to marshal JSON: %w", err)
	}
	return string(data), nil
}

func formatYAML(resp interface{}) (string, error) {
	data, err := yaml.Marshal(resp)
	if err != nil {
		return "", fmt.Errorf("failed to marshal YAML: %w", err)
	}
	return strings.TrimRight(string(data), "\n"), nil
}

func formatHuman(resp interface{}) (string, error) {
	switch v := resp.(type) {
	case *AnalyzeResponseCLI:
		return formatAnalyzeHuman(v), nil
	case *diff.Result:
		return formatDiffHuman(v), nil
	case *summary.Summary:
		var b strings.Builder
		err := v.Render(&b)
		return strings.TrimRight(b.String(), "\n"), err
	case *topology.Topology:
		var b strings.Builder
		err := v.Render(&b)
		return strings.TrimRight(b.String(), "\n"), err
	case *HotspotsResponseCLI:
		return formatHotspotsHuman(v), nil
	case *slice.Slice:
		return formatSliceHuman(v), nil
	case *config.Config:
		data, err := toml.Marshal(v)
		return strings.TrimRight(string(data), "\n"), err
	default:
		return formatJSON(resp)
	}
}

// severityLabel colours a severity or risk label on a terminal.
func severityLabel(level string) string {
	if !colorEnabled {
		return level
	}
	switch strings.ToLower(level) {
	case string(model.SeverityHigh):
		return highStyle.Render(level)
	case string(model.SeverityMedium):
		return mediumStyle.Render(level)
	default:
		return lowStyle.Render(level)
	}
}

func newTable(buf *bytes.Buffer, header []string) *tablewriter.Table {
	table := tablewriter.NewWriter(buf)
	table.SetHeader(header)
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetColumnSeparator("")
	table.SetAutoWrapText(false)
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	return table
}

func formatAnalyzeHuman(resp *AnalyzeResponseCLI) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Analyzed %s\n", resp.Root))
	b.WriteString(strings.Repeat("=", 60) + "\n\n")
	b.WriteString(fmt.Sprintf("  Scan ID:    %s\n", resp.ScanID))
	b.WriteString(fmt.Sprintf("  Files:      %d\n", resp.Files))
	b.WriteString(fmt.Sprintf("  Functions:  %d\n", resp.Functions))
	b.WriteString(fmt.Sprintf("  Tests:      %d\n", resp.Tests))
	b.WriteString(fmt.Sprintf("  Edge cases: %d\n", resp.EdgeCases))
	b.WriteString(fmt.Sprintf("  Signals:    %d\n", resp.Signals))
	b.WriteString(fmt.Sprintf("  Duration:   %dms\n\n", resp.DurationMs))
	b.WriteString(fmt.Sprintf("Snapshot written to %s", resp.Snapshot))
	if resp.Unchanged {
		b.WriteString("\nSignals unchanged since the previous scan")
	}
	return b.String()
}

func formatDiffHuman(r *diff.Result) string {
	var b strings.Builder
	if r.Status == diff.StatusNoBaseline {
		b.WriteString("No previous snapshot to compare against.\n")
		b.WriteString("Run `coderecon analyze` again after making changes.")
		return b.String()
	}

	b.WriteString(fmt.Sprintf("Signal diff (%s)\n", r.Policy))
	b.WriteString(strings.Repeat("=", 60) + "\n\n")
	b.WriteString(fmt.Sprintf("Added: %d  Removed: %d\n", r.AddedCount, r.RemovedCount))
	if r.IsEmpty() {
		b.WriteString("\nNo changes.")
		return b.String()
	}

	var buf bytes.Buffer
	table := newTable(&buf, []string{"", "Path", "Type", "Function", "Case"})
	for _, f := range r.Added {
		table.Append([]string{"+", f.Path, f.Type, f.Function, f.Case})
	}
	for _, f := range r.Removed {
		table.Append([]string{"-", f.Path, f.Type, f.Function, f.Case})
	}
	table.Render()
	b.WriteString("\n")
	b.WriteString(strings.TrimRight(buf.String(), "\n"))
	return b.String()
}

func formatHotspotsHuman(resp *HotspotsResponseCLI) string {
	if len(resp.Hotspots) == 0 {
		return "No files with signals."
	}
	var buf bytes.Buffer
	table := newTable(&buf, []string{"#", "File", "Signals", "Risk", "Bucket", "Fan-in", "Fan-out"})
	for i, h := range resp.Hotspots {
		table.Append([]string{
			strconv.Itoa(i + 1),
			h.Rel,
			strconv.Itoa(h.Signals),
			severityLabel(h.Risk),
			h.Bucket.Title(),
			strconv.Itoa(h.FanIn),
			strconv.Itoa(h.FanOut),
		})
	}
	table.SetFooter([]string{"", fmt.Sprintf("%d of %d files", len(resp.Hotspots), resp.TotalFiles), "", "", "", "", ""})
	table.Render()
	return strings.TrimRight(buf.String(), "\n")
}

func formatSliceHuman(s *slice.Slice) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%s: %s\n", strings.ToUpper(s.Kind[:1])+s.Kind[1:], s.Target))
	b.WriteString(fmt.Sprintf("Files with signals: %d  Signals: %d\n", s.FileCount, s.SignalCount))
	if len(s.Signals) == 0 {
		return strings.TrimRight(b.String(), "\n")
	}

	var buf bytes.Buffer
	table := newTable(&buf, []string{"Severity", "Type", "Function", "Case", "Lines", "Path"})
	for _, sig := range s.Signals {
		lines := make([]string, len(sig.Lines))
		for i, l := range sig.Lines {
			lines[i] = strconv.Itoa(l)
		}
		table.Append([]string{
			severityLabel(string(sig.Severity)),
			sig.Type,
			sig.Function,
			sig.Case,
			strings.Join(lines, ","),
			sig.Path,
		})
	}
	table.Render()
	b.WriteString("\n")
	b.WriteString(strings.TrimRight(buf.String(), "\n"))
	return b.String()
}

// printResponse formats resp with the --format flag and writes it to the command's stdout.
func printResponse(cmd *cobra.Command, resp interface{}) error {
	output, err := FormatResponse(resp, OutputFormat(formatFlag))
	if err != nil {
		return err
	}
	fmt.Fprintln(cmd.OutOrStdout(), output)
	return nil
}
