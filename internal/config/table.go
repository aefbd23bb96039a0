package config

import (
	"fmt"
	"strings"

	"shipdesk/internal/domain"
	"shipdesk/internal/schema"
)

// TableConfig overrides parts of the built-in shipment schema. Empty fields keep
// the defaults.
type TableConfig struct {
	FieldOrder       []string            `mapstructure:"field_order"`
	DisplayNames     map[string]string   `mapstructure:"display_names"`
	Aliases          map[string][]string `mapstructure:"aliases"`
	DateFields       []string            `mapstructure:"date_fields"`
	DateTimeFields   []string            `mapstructure:"datetime_fields"`
	DirectionalField string              `mapstructure:"directional_field"`
}

// parseTable reads the flat env representation:
//
//	field_order       office_name,customer,...
//	display_names     office_name=Office,po_number=PO#
//	aliases           office_name=office|branch,Notes=notes
//	date_fields       eta_date,cut_off_date
func parseTable(order, names, aliases, dates, dateTimes, directional string) (*TableConfig, error) {
	t := &TableConfig{
		FieldOrder:       splitList(order, ","),
		DateFields:       splitList(dates, ","),
		DateTimeFields:   splitList(dateTimes, ","),
		DirectionalField: strings.TrimSpace(directional),
	}

	pairs, err := splitPairs(names)
	if err != nil {
		return nil, fmt.Errorf("table.display_names: %w", err)
	}
	if len(pairs) > 0 {
		t.DisplayNames = pairs
	}

	aliasPairs, err := splitPairs(aliases)
	if err != nil {
		return nil, fmt.Errorf("table.aliases: %w", err)
	}
	if len(aliasPairs) > 0 {
		t.Aliases = make(map[string][]string, len(aliasPairs))
		for k, v := range aliasPairs {
			t.Aliases[k] = splitList(v, "|")
		}
	}
	return t, nil
}

func splitPairs(s string) (map[string]string, error) {
	out := map[string]string{}
	for _, entry := range splitList(s, ",") {
		k, v, ok := strings.Cut(entry, "=")
		k = strings.TrimSpace(k)
		if !ok || k == "" {
			return nil, fmt.Errorf("malformed entry %q, want key=value", entry)
		}
		out[k] = strings.TrimSpace(v)
	}
	return out, nil
}

// Schema builds the table schema: the built-in shipment schema with the configured
// overrides applied.
func (t *TableConfig) Schema() *schema.Schema {
	s := schema.Default()

	if len(t.FieldOrder) > 0 {
		s.Fields = toFieldIDs(t.FieldOrder)
	}
	for k, v := range t.DisplayNames {
		s.DisplayNames[domain.FieldID(k)] = v
	}
	for k, v := range t.Aliases {
		s.Aliases[domain.FieldID(k)] = toFieldIDs(v)
	}
	if len(t.DateFields) > 0 {
		s.DateFields = toFieldSet(t.DateFields)
	}
	if len(t.DateTimeFields) > 0 {
		s.DateTimeFields = toFieldSet(t.DateTimeFields)
	}
	if t.DirectionalField != "" {
		s.DirectionalField = domain.FieldID(t.DirectionalField)
	}
	return s
}

func toFieldIDs(in []string) []domain.FieldID {
	out := make([]domain.FieldID, 0, len(in))
	seen := map[string]bool{}
	for _, f := range in {
		if seen[f] {
			continue
		}
		seen[f] = true
		out = append(out, domain.FieldID(f))
	}
	return out
}

func toFieldSet(in []string) map[domain.FieldID]bool {
	out := make(map[domain.FieldID]bool, len(in))
	for _, f := range in {
		out[domain.FieldID(f)] = true
	}
	return out
}
