package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"upkeep/internal/domain"
)

var (
	colorSuccess = lipgloss.Color("#04B575")
	colorWarning = lipgloss.Color("#F5A623")
	colorError   = lipgloss.Color("#FF4672")
	colorMuted   = lipgloss.Color("#7D7D7D")

	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("#7D56F4"))
	mutedStyle = lipgloss.NewStyle().Foreground(colorMuted)
	boxStyle   = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			Padding(0, 1)
	headerStyle = lipgloss.NewStyle().Bold(true).Underline(true)
)

// maxPreviewRows caps the preview table; the rest is summarised.
const maxPreviewRows = 20

func statusColor(status domain.ImportStatus) lipgloss.Color {
	switch status {
	case domain.ImportStatusSuccess:
		return colorSuccess
	case domain.ImportStatusWarning:
		return colorWarning
	default:
		return colorError
	}
}

// renderResult draws the outcome box: green when everything was created,
// amber on partial failure, red when nothing was.
func renderResult(result domain.ImportResult) string {
	status := result.Status()

	var b strings.Builder
	switch status {
	case domain.ImportStatusSuccess:
		fmt.Fprintf(&b, "Imported %d vendors", result.Successful)
	case domain.ImportStatusWarning:
		fmt.Fprintf(&b, "Imported %d of %d vendors; %d failed", result.Successful, result.Total, result.Failed)
	default:
		fmt.Fprintf(&b, "No vendors imported; all %d failed", result.Total)
	}
	for _, f := range result.Failures {
		fmt.Fprintf(&b, "\n  #%d %s: %s", f.Index+1, f.Name, f.Error)
	}

	return boxStyle.BorderForeground(statusColor(status)).
		Foreground(statusColor(status)).
		Render(b.String())
}

func renderError(err error) string {
	return boxStyle.BorderForeground(colorError).Foreground(colorError).Render("Error: " + err.Error())
}

// renderPreview lists the extracted vendors as an aligned table.
func renderPreview(fileName string, records []domain.ParsedVendorRecord, skipped int) string {
	rows := [][]string{{"#", "Name", "Email", "Phone", "Type"}}
	for i, r := range records {
		if i == maxPreviewRows {
			break
		}
		rows = append(rows, []string{fmt.Sprint(i + 1), r.Name, r.Email, r.Phone, string(r.VendorType)})
	}

	widths := make([]int, len(rows[0]))
	for _, row := range rows {
		for i, cell := range row {
			if w := lipgloss.Width(cell); w > widths[i] {
				widths[i] = w
			}
		}
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render(fmt.Sprintf("%d vendors found in %s", len(records), fileName)))
	b.WriteString("\n\n")
	for n, row := range rows {
		cells := make([]string, len(row))
		for i, cell := range row {
			cells[i] = cell + strings.Repeat(" ", widths[i]-lipgloss.Width(cell))
		}
		line := strings.Join(cells, "  ")
		if n == 0 {
			line = headerStyle.Render(line)
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	if extra := len(records) - maxPreviewRows; extra > 0 {
		b.WriteString(mutedStyle.Render(fmt.Sprintf("... and %d more", extra)))
		b.WriteString("\n")
	}
	if skipped > 0 {
		b.WriteString(mutedStyle.Render(fmt.Sprintf("%d low-confidence entries were skipped", skipped)))
		b.WriteString("\n")
	}
	return b.String()
}
