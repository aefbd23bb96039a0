package view

import (
	"fmt"
	"strings"
	"time"

	"shipdesk/internal/domain"
)

const containerField = "container_number"

// RecordCountLabel renders "1 record" or "N records".
func RecordCountLabel(n int) string {
	if n == 1 {
		return "1 record"
	}
	return fmt.Sprintf("%d records", n)
}

// Summarize computes the headline numbers for an extraction of docs documents.
func Summarize(docs int, records []domain.Record, took time.Duration) domain.ExtractionSummary {
	containers := 0
	for _, r := range records {
		if strings.TrimSpace(r[containerField]) != "" {
			containers++
		}
	}
	return domain.ExtractionSummary{
		Documents:  docs,
		Shipments:  len(records),
		Containers: containers,
		Duration:   took,
	}
}

// WelcomeMessage is the first assistant message posted to chat after an extraction.
func WelcomeMessage(sum domain.ExtractionSummary) string {
	return fmt.Sprintf(
		"I've analyzed your %d documents and found %d shipping records. Ask me anything about this data!",
		sum.Documents, sum.Shipments,
	)
}

// FormatDuration renders an extraction duration in seconds with one decimal, e.g. "3.2s".
func FormatDuration(d time.Duration) string {
	return fmt.Sprintf("%.1fs", d.Seconds())
}
