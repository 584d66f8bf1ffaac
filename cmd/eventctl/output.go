package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/prohmpiriya/event-management/internal/domain"
	"github.com/prohmpiriya/event-management/internal/listing"
)

const (
	formatTable = "table"
	formatJSON  = "json"
)

// printer renders results as aligned tables or JSON
type printer struct {
	w      io.Writer
	format string
	locale domain.Locale
}

func newPrinter(w io.Writer, format, locale string) (*printer, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	if format != formatTable && format != formatJSON {
		return nil, fmt.Errorf("unknown output format %q (want table or json)", format)
	}
	return &printer{w: w, format: format, locale: domain.ParseLocale(locale)}, nil
}

func (p *printer) writeJSON(v any) error {
	enc := json.NewEncoder(p.w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (p *printer) table(headers []string, rows [][]string) error {
	tw := tabwriter.NewWriter(p.w, 0, 0, 3, ' ', 0)

	fmt.Fprintln(tw, strings.Join(headers, "\t"))
	separators := make([]string, len(headers))
	for i, h := range headers {
		separators[i] = strings.Repeat("-", len(h))
	}
	fmt.Fprintln(tw, strings.Join(separators, "\t"))

	for _, row := range rows {
		fmt.Fprintln(tw, strings.Join(row, "\t"))
	}
	return tw.Flush()
}

func (p *printer) eventRows(events []domain.Event) [][]string {
	rows := make([][]string, 0, len(events))
	for i := range events {
		e := &events[i]
		rows = append(rows, []string{
			e.IDValue(),
			e.Title,
			e.Date,
			e.Time,
			e.Location,
			e.StatusLabel(p.locale),
			capacityText(e.Capacity),
		})
	}
	return rows
}

var eventHeaders = []string{"ID", "TITLE", "DATE", "TIME", "LOCATION", "STATUS", "CAPACITY"}

func (p *printer) events(events []domain.Event) error {
	if p.format == formatJSON {
		return p.writeJSON(events)
	}
	if len(events) == 0 {
		fmt.Fprintln(p.w, "No events found.")
		return nil
	}
	return p.table(eventHeaders, p.eventRows(events))
}

func (p *printer) page(page listing.Page) error {
	if p.format == formatJSON {
		return p.writeJSON(struct {
			Items      []domain.Event `json:"items"`
			Page       int            `json:"page"`
			PageSize   int            `json:"page_size"`
			TotalPages int            `json:"total_pages"`
			Total      int            `json:"total"`
		}{page.Items, page.Page, page.PageSize, page.TotalPages, page.Total})
	}

	if page.Total == 0 {
		fmt.Fprintln(p.w, "No events found.")
		return nil
	}
	if len(page.Items) > 0 {
		if err := p.table(eventHeaders, p.eventRows(page.Items)); err != nil {
			return err
		}
	}
	fmt.Fprintf(p.w, "\nPage %d of %d (%d events)\n", page.Page, page.TotalPages, page.Total)
	return nil
}

func (p *printer) event(e *domain.Event) error {
	if e == nil {
		return fmt.Errorf("no event to show")
	}
	if p.format == formatJSON {
		return p.writeJSON(e)
	}

	description := "-"
	if e.Description != nil {
		description = *e.Description
	}
	rows := [][]string{
		{"ID", e.IDValue()},
		{"Title", e.Title},
		{"Date", e.Date},
		{"Time", e.Time},
		{"Location", e.Location},
		{"Description", description},
		{"Capacity", capacityText(e.Capacity)},
		{"Status", e.StatusLabel(p.locale)},
	}
	if e.CreatedAt != nil {
		rows = append(rows, []string{"Created", *e.CreatedAt})
	}
	if e.UpdatedAt != nil {
		rows = append(rows, []string{"Updated", *e.UpdatedAt})
	}
	return p.table([]string{"FIELD", "VALUE"}, rows)
}

func (p *printer) statistics(s *domain.Statistics) error {
	if p.format == formatJSON {
		return p.writeJSON(s)
	}

	rows := make([][]string, 0, 5)
	for _, status := range domain.AllStatuses() {
		rows = append(rows, []string{status.Label(p.locale), strconv.Itoa(s.CountFor(status))})
	}
	rows = append(rows, []string{"Total", strconv.Itoa(s.Total)})
	return p.table([]string{"STATUS", "COUNT"}, rows)
}

// banner prints a success message; JSON output stays machine readable
func (p *printer) banner(msg string) {
	if p.format == formatJSON {
		return
	}
	fmt.Fprintf(p.w, "✓ %s\n", msg)
}

func capacityText(capacity *int) string {
	if capacity == nil {
		return "-"
	}
	return strconv.Itoa(*capacity)
}
