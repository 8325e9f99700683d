package main

import (
	"fmt"
	"io"
	"strconv"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"

	"github.com/MKhiriev/go-bizsync/internal/engine"
	"github.com/MKhiriev/go-bizsync/models"
)

var headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
var cellStyle = lipgloss.NewStyle().Padding(0, 1)

func printTable(w io.Writer, headers []string, rows [][]string) {
	t := table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		Rows(rows...).
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})

	fmt.Fprintln(w, t.Render())
}

func printQueue(w io.Writer, items []models.QueueItem) {
	if len(items) == 0 {
		fmt.Fprintln(w, "queue is empty")
		return
	}

	rows := make([][]string, 0, len(items))
	for _, item := range items {
		target := "-"
		if id, ok := item.Target(); ok {
			target = engine.RecordIDFromWire(id).String()
		}
		lastError := "-"
		if item.LastError != nil {
			lastError = *item.LastError
		}

		rows = append(rows, []string{
			strconv.FormatInt(item.ID, 10),
			item.TableName,
			string(item.Op),
			target,
			string(item.Status),
			strconv.Itoa(item.Attempts),
			lastError,
		})
	}

	printTable(w, []string{"ID", "RESOURCE", "OP", "TARGET", "STATUS", "ATTEMPTS", "LAST ERROR"}, rows)
}

func printSummaries(w io.Writer, summaries []engine.Summary) {
	rows := make([][]string, 0, len(summaries))
	for _, s := range summaries {
		lastError := s.LastLoadError
		if lastError == "" {
			lastError = "-"
		}

		rows = append(rows, []string{
			s.Resource,
			strconv.Itoa(s.Items),
			strconv.Itoa(s.Pending),
			strconv.Itoa(s.PendingDelete),
			strconv.Itoa(s.Errors),
			strconv.Itoa(s.QueueLength),
			lastError,
		})
	}

	printTable(w, []string{"RESOURCE", "ITEMS", "PENDING", "DELETING", "ERRORS", "QUEUE", "LAST LOAD ERROR"}, rows)
}
