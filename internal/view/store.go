package view

import "shipdesk/internal/domain"

// RecordStore holds one extraction result. It is never mutated after creation;
// a new extraction replaces it wholesale.
type RecordStore struct {
	records []domain.Record
}

// NewRecordStore copies records into a new store.
func NewRecordStore(records []domain.Record) *RecordStore {
	out := make([]domain.Record, len(records))
	for i, r := range records {
		cp := make(domain.Record, len(r))
		for k, v := range r {
			cp[k] = v
		}
		out[i] = cp
	}
	return &RecordStore{records: out}
}

// Len returns the number of records.
func (s *RecordStore) Len() int {
	if s == nil {
		return 0
	}
	return len(s.records)
}

// At returns the record at position i in extraction order.
func (s *RecordStore) At(i int) domain.Record {
	return s.records[i]
}
