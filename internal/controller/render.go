package controller

import (
	"bufio"
	"bytes"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	m "bindport.dev/pkg/bindport/internal/model"
)

func renderReportTable(reports []m.Report) string {
	sorted := make([]m.Report, len(reports))
	copy(sorted, reports)
	sort.Slice(sorted, func(i, j int) bool { return sorted[i].Source < sorted[j].Source })

	var tableBuffer bytes.Buffer

	table := tablewriter.NewWriter(&tableBuffer)
	table.SetHeader([]string{"Path", "Rewrites", "Inserted", "Size", "Rules"})
	table.SetBorder(false)
	table.SetCenterSeparator("")
	table.SetAutoWrapText(false)
	table.SetColumnAlignment([]int{
		tablewriter.ALIGN_LEFT, tablewriter.ALIGN_CENTER, tablewriter.ALIGN_CENTER,
		tablewriter.ALIGN_RIGHT, tablewriter.ALIGN_LEFT,
	})

	totals := make(m.RuleCounts)
	totalBytes := 0

	for _, report := range sorted {
		table.Append([]string{
			string(report.Source),
			fmt.Sprintf("%d", report.Counts.Rewrites()),
			fmt.Sprintf("%d", report.Counts.Total()-report.Counts.Rewrites()),
			humanize.Bytes(uint64(report.Bytes)),
			formatRules(report.Counts),
		})

		totals.Merge(report.Counts)
		totalBytes += report.Bytes
	}

	table.SetFooter([]string{
		fmt.Sprintf("Total Files %d", len(sorted)),
		fmt.Sprintf("%d", totals.Rewrites()),
		fmt.Sprintf("%d", totals.Total()-totals.Rewrites()),
		humanize.Bytes(uint64(totalBytes)),
		"",
	})

	table.Render()

	return tableBuffer.String()
}

func formatRules(counts m.RuleCounts) string {
	rules := counts.Rules()
	parts := make([]string, 0, len(rules))

	for _, rule := range rules {
		parts = append(parts, fmt.Sprintf("%s=%d", rule, counts[rule]))
	}

	return strings.Join(parts, " ")
}

var (
	diffHeader = color.New(color.Bold)
	diffHunk   = color.New(color.FgCyan)
	diffAdd    = color.New(color.FgGreen)
	diffDel    = color.New(color.FgRed)
)

// writeDiff prints a unified diff, colouring lines by their prefix.
func writeDiff(w io.Writer, diff string) error {
	scanner := bufio.NewScanner(strings.NewReader(diff))
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)

	for scanner.Scan() {
		line := scanner.Text()

		var err error

		switch {
		case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
			_, err = diffHeader.Fprintln(w, line)
		case strings.HasPrefix(line, "@@"):
			_, err = diffHunk.Fprintln(w, line)
		case strings.HasPrefix(line, "+"):
			_, err = diffAdd.Fprintln(w, line)
		case strings.HasPrefix(line, "-"):
			_, err = diffDel.Fprintln(w, line)
		default:
			_, err = fmt.Fprintln(w, line)
		}

		if err != nil {
			return err
		}
	}

	return scanner.Err()
}
