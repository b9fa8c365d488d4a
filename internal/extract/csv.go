package extract

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/gocarina/gocsv"
)

// modeSeparator joins the entries of a ModeList inside a single CSV cell.
const modeSeparator = "|"

// ModeList is the deduplicated set of transport modes of an itinerary,
// serialized as a single separator-joined CSV cell.
type ModeList []string

// MarshalCSV implements gocsv.TypeMarshaller.
func (m ModeList) MarshalCSV() (string, error) {
	return strings.Join(m, modeSeparator), nil
}

// UnmarshalCSV implements gocsv.TypeUnmarshaller.
func (m *ModeList) UnmarshalCSV(value string) error {
	if value == "" {
		*m = nil
		return nil
	}
	*m = strings.Split(value, modeSeparator)
	return nil
}

// MarshalCSV serializes route records to CSV with the canonical column
// layout: mode, start_time, end_time, from, to, route, distance, agency, id,
// duration, transfers, modes. A nil or empty record set still produces the
// header row.
func MarshalCSV(records []RouteRecord) ([]byte, error) {
	var buf bytes.Buffer
	if err := gocsv.Marshal(&records, &buf); err != nil {
		return nil, fmt.Errorf("marshaling route records: %w", err)
	}
	return buf.Bytes(), nil
}

// UnmarshalCSV parses CSV produced by MarshalCSV back into route records.
func UnmarshalCSV(data []byte) ([]RouteRecord, error) {
	var records []RouteRecord
	if err := gocsv.UnmarshalBytes(data, &records); err != nil {
		return nil, fmt.Errorf("unmarshaling route records: %w", err)
	}
	return records, nil
}
