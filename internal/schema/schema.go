// Package schema holds the canonical column layout of the shipment table: field order,
// display names, the alias table and the fields that need special formatting.
// Deployments override any of it through configuration.
package schema

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"shipdesk/internal/domain"
)

// Synthetic fields exist for display and interaction only.
const (
	FieldOptions domain.FieldID = "Options"
	FieldTags    domain.FieldID = "Tags"
	FieldNotes   domain.FieldID = "Notes"
	FieldType    domain.FieldID = "type"
)

// maxAliasDepth bounds alias-of-alias resolution.
const maxAliasDepth = 2

// Schema describes the universe of columns for one deployment.
type Schema struct {
	Fields           []domain.FieldID
	DisplayNames     map[domain.FieldID]string
	Aliases          map[domain.FieldID][]domain.FieldID
	DateFields       map[domain.FieldID]bool
	DateTimeFields   map[domain.FieldID]bool
	Synthetic        map[domain.FieldID]bool
	DirectionalField domain.FieldID
}

// defaultFields is the column order of the shipment import template.
var defaultFields = []domain.FieldID{
	"office_name",
	"batch_no",
	"customer",
	"type",
	"reference_number",
	"booking_number",
	"bol_number",
	"po_number",
	"container_number",
	"container_size",
	"container_type",
	"pickup_location_name",
	"delivery_location_name",
	"delivery_street_address",
	"delivery_city",
	"delivery_state",
	"delivery_zip",
	"return_location",
	"container_weight",
	"commodity",
	"number_of_packages",
	"eta_date",
	"steam_ship_line",
	"vessel",
	"voyage",
	"cut_off_date",
	"early_release_date",
	"seal",
	"pickup_number",
	"pickup_appointment_date_time",
	"delivery_appointment_date_time",
	FieldOptions,
	FieldTags,
	FieldNotes,
}

var defaultDisplayNames = map[domain.FieldID]string{
	"office_name":                    "Office",
	"batch_no":                       "Batch no",
	"customer":                       "Customer",
	"type":                           "I/E",
	"reference_number":               "Reference#",
	"booking_number":                 "Booking#",
	"bol_number":                     "BOL#",
	"po_number":                      "PO#",
	"container_number":               "Container#",
	"container_size":                 "Size",
	"container_type":                 "Type",
	"pickup_location_name":           "Pickup Location",
	"delivery_location_name":         "Shipper/Consignee",
	"delivery_street_address":        "Street",
	"delivery_city":                  "City",
	"delivery_state":                 "State",
	"delivery_zip":                   "Zip",
	"return_location":                "Return Location",
	"container_weight":               "Weight",
	"commodity":                      "Commodity",
	"number_of_packages":             "#Pkgs",
	"eta_date":                       "ETA",
	"steam_ship_line":                "SSL",
	"vessel":                         "Vessel",
	"voyage":                         "Voyage",
	"cut_off_date":                   "LFD/Cut-off",
	"early_release_date":             "ERD",
	"seal":                           "Seal",
	"pickup_number":                  "Pickup#",
	"pickup_appointment_date_time":   "Port/Rail Appt. Date/Time",
	"delivery_appointment_date_time": "Cust Appt. Date/Time",
	FieldOptions:                     "Options",
	FieldTags:                        "Tags",
	FieldNotes:                       "Quick Notes",
}

// Default returns the shipment schema used when no override is configured.
func Default() *Schema {
	s := &Schema{
		Fields:       append([]domain.FieldID(nil), defaultFields...),
		DisplayNames: make(map[domain.FieldID]string, len(defaultDisplayNames)),
		Aliases: map[domain.FieldID][]domain.FieldID{
			"office_name": {"office"},
			FieldNotes:    {"notes"},
		},
		DateFields: map[domain.FieldID]bool{
			"eta_date":           true,
			"cut_off_date":       true,
			"early_release_date": true,
		},
		DateTimeFields: map[domain.FieldID]bool{
			"pickup_appointment_date_time":   true,
			"delivery_appointment_date_time": true,
		},
		Synthetic: map[domain.FieldID]bool{
			FieldOptions: true,
			FieldTags:    true,
		},
		DirectionalField: FieldType,
	}
	for k, v := range defaultDisplayNames {
		s.DisplayNames[k] = v
	}
	return s
}

// DisplayName returns the header label for a field. Unmapped ids are split on
// underscores and title-cased.
func (s *Schema) DisplayName(id domain.FieldID) string {
	if name, ok := s.DisplayNames[id]; ok && name != "" {
		return name
	}
	words := strings.Split(string(id), "_")
	for i, w := range words {
		if w == "" {
			continue
		}
		r, size := utf8.DecodeRuneInString(w)
		words[i] = string(unicode.ToUpper(r)) + w[size:]
	}
	return strings.Join(words, " ")
}

// SourceFields returns the ordered list of record keys consulted for a column:
// the id itself, its declared aliases, then the aliases of those aliases.
func (s *Schema) SourceFields(id domain.FieldID) []domain.FieldID {
	out := []domain.FieldID{id}
	seen := map[domain.FieldID]bool{id: true}
	frontier := []domain.FieldID{id}
	for depth := 0; depth < maxAliasDepth; depth++ {
		var next []domain.FieldID
		for _, f := range frontier {
			for _, alias := range s.Aliases[f] {
				if seen[alias] {
					continue
				}
				seen[alias] = true
				out = append(out, alias)
				next = append(next, alias)
			}
		}
		frontier = next
	}
	return out
}

// Has reports whether id is part of the Field List.
func (s *Schema) Has(id domain.FieldID) bool {
	for _, f := range s.Fields {
		if f == id {
			return true
		}
	}
	return false
}
