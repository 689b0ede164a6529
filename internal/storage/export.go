package storage

import (
	"encoding/json"
	"io"
)

// RunExport is the document written by export-json: run metadata plus the
// full trajectory.
type RunExport struct {
	Meta   RunMetadata `json:"meta"`
	Times  []float64   `json:"times"`
	States [][]float64 `json:"states"`
}

// ExportJSON writes a run as indented JSON.
func ExportJSON(w io.Writer, meta *RunMetadata, states [][]float64, times []float64) error {
	doc := RunExport{
		Meta:   *meta,
		Times:  times,
		States: states,
	}
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}
