package sidebot

import (
	"fmt"
	"strings"
)

// Template placeholders replaced by SystemPrompt.
const (
	PlaceholderSchema = "${SCHEMA}"
	PlaceholderRows   = "${ROWS}"
	PlaceholderStats  = "${STATS}"
)

// DefaultPromptTemplate is used when no prompt file is configured.
const DefaultPromptTemplate = `You are Sidebot, an assistant embedded in a dashboard about restaurant tipping.
Answer questions about the dataset below concisely. Use markdown for lists and tables.
If a question cannot be answered from the data, say so.

The dataset is a table named "tips" with ${ROWS} rows and these columns:
${SCHEMA}

Precomputed statistics:
${STATS}`

// SystemPrompt fills template with the dataset's schema, row count and
// summary statistics. An empty template selects DefaultPromptTemplate.
func SystemPrompt(ds *Dataset, template string) string {
	if template == "" {
		template = DefaultPromptTemplate
	}
	s := ds.Summary()
	stats := strings.Join([]string{
		fmt.Sprintf("- total_tippers: %s", s.TotalTippersText()),
		fmt.Sprintf("- average_tip: %s", s.AverageTipText()),
		fmt.Sprintf("- average_bill: %s", s.AverageBillText()),
	}, "\n")
	r := strings.NewReplacer(
		PlaceholderSchema, ds.Schema(),
		PlaceholderRows, fmt.Sprintf("%d", ds.Len()),
		PlaceholderStats, stats,
	)
	return r.Replace(template)
}
