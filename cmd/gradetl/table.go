package main

import (
	"fmt"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/mattn/go-isatty"

	"gradetl/internal/loader"
	"gradetl/internal/records"
)

type columnAlignment int

const (
	alignLeft columnAlignment = iota
	alignRight
)

func renderTable(headers []string, rows [][]string, aligns []columnAlignment) string {
	columns := len(headers)
	if columns == 0 {
		return ""
	}

	tw := table.NewWriter()
	if stdoutIsTerminal() {
		tw.SetStyle(table.StyleRounded)
	} else {
		tw.SetStyle(table.StyleLight)
	}

	header := make(table.Row, columns)
	for i := 0; i < columns; i++ {
		header[i] = headers[i]
	}
	tw.AppendHeader(header)

	for _, row := range rows {
		r := make(table.Row, columns)
		for i := 0; i < columns; i++ {
			if i < len(row) {
				r[i] = row[i]
			} else {
				r[i] = ""
			}
		}
		tw.AppendRow(r)
	}

	columnConfigs := make([]table.ColumnConfig, 0, columns)
	for i := 0; i < columns; i++ {
		align := text.AlignLeft
		if i < len(aligns) && aligns[i] == alignRight {
			align = text.AlignRight
		}
		columnConfigs = append(columnConfigs, table.ColumnConfig{
			Number:      i + 1,
			Align:       align,
			AlignHeader: text.AlignLeft,
		})
	}
	tw.SetColumnConfigs(columnConfigs)

	return tw.Render()
}

func stdoutIsTerminal() bool {
	fd := os.Stdout.Fd()
	return isatty.IsTerminal(fd) || isatty.IsCygwinTerminal(fd)
}

func renderReportTable(report *loader.Report) string {
	rows := [][]string{
		{"Loaded", strconv.Itoa(report.Loaded)},
		{"Inserted", strconv.Itoa(report.Inserted)},
		{"Skipped", strconv.Itoa(report.Skipped)},
		{"Batches committed", strconv.Itoa(report.Batches)},
	}

	kinds := make([]string, 0, len(report.Issues))
	for kind := range report.Issues {
		kinds = append(kinds, string(kind))
	}
	sort.Strings(kinds)
	for _, kind := range kinds {
		rows = append(rows, []string{"Issue: " + kind, strconv.Itoa(report.Issues[records.IssueKind(kind)])})
	}

	if len(report.SampleInsertedIDs) > 0 {
		samples := make([]string, 0, len(report.SampleInsertedIDs))
		for _, id := range report.SampleInsertedIDs {
			samples = append(samples, strconv.FormatInt(id, 10))
		}
		rows = append(rows, []string{"Sample inserted ids", strings.Join(samples, ", ")})
	}

	out := renderTable([]string{"Metric", "Value"}, rows, []columnAlignment{alignLeft, alignRight})
	return fmt.Sprintf("Load report %s\n%s", report.ReportID, out)
}
