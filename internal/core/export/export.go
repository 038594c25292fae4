// Package export serializes triplets and networks into the file formats the
// downstream tooling expects. All functions are pure: they produce a payload
// and leave persistence to the caller.
package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"github.com/sociotyper/sociotyper/internal/core/model"
)

// Default filenames, kept stable for downstream tooling.
const (
	TripletsJSONFile = "sociotyper_triplets.json"
	TripletsCSVFile  = "sociotyper_triplets.csv"
	TripletsXLSXFile = "sociotyper_triplets.xlsx"
	NetworkJSONFile  = "sociotyper_network.json"
)

// TripletExport is the JSON triplet export envelope.
type TripletExport struct {
	ExportedAt    time.Time       `json:"exported_at"`
	TotalTriplets int             `json:"total_triplets"`
	Triplets      []model.Triplet `json:"triplets"`
}

// ToJSON serializes triplets with an export timestamp.
func ToJSON(triplets []model.Triplet, now time.Time) ([]byte, error) {
	if triplets == nil {
		triplets = []model.Triplet{}
	}
	payload := TripletExport{
		ExportedAt:    now.UTC(),
		TotalTriplets: len(triplets),
		Triplets:      triplets,
	}
	data, err := json.MarshalIndent(payload, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal triplet export: %w", err)
	}
	return data, nil
}

// ParseJSON reads a triplet export back. Round-trips with ToJSON.
func ParseJSON(data []byte) (TripletExport, error) {
	var payload TripletExport
	if err := json.Unmarshal(data, &payload); err != nil {
		return TripletExport{}, fmt.Errorf("failed to parse triplet export: %w", err)
	}
	return payload, nil
}

// csvHeader is fixed; column order is part of the export contract.
var csvHeader = []string{"ID", "Role", "Practice", "Counterrole", "Context", "Confidence", "Validated"}

// ToCSV serializes triplets as CSV. encoding/csv handles the double-quote
// escaping of embedded quotes in free-text fields.
func ToCSV(triplets []model.Triplet) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(csvHeader); err != nil {
		return nil, fmt.Errorf("failed to write csv header: %w", err)
	}
	for _, t := range triplets {
		row := []string{
			t.ID,
			t.Role,
			t.Practice,
			t.Counterrole,
			t.Context,
			strconv.FormatFloat(t.Confidence, 'f', -1, 64),
			string(t.Validated),
		}
		if err := w.Write(row); err != nil {
			return nil, fmt.Errorf("failed to write csv row for %q: %w", t.ID, err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush csv: %w", err)
	}
	return buf.Bytes(), nil
}

// GraphToJSON serializes a built network in the shape the rendering layer
// consumes: plain actor-name strings for source/target.
func GraphToJSON(g model.Graph) ([]byte, error) {
	if g.Nodes == nil {
		g.Nodes = []model.GraphNode{}
	}
	if g.Links == nil {
		g.Links = []model.GraphLink{}
	}
	data, err := json.MarshalIndent(g, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("failed to marshal network export: %w", err)
	}
	return data, nil
}
