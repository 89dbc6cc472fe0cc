// Package report holds the JSON result types the CLI emits and the
// writers that persist them.
package report

import (
	"bytes"
	"encoding/json"
	"io"

	"github.com/natefinch/atomic"
)

// Partition summarizes a partitioning run over a sorted sequence.
type Partition struct {
	K             int     `json:"k"`
	Ranked        bool    `json:"ranked"`
	Epsilon       float64 `json:"epsilon"`
	Entries       int     `json:"entries"`
	Blocks        int     `json:"blocks"`
	PlainBits     int     `json:"plain_bits"`
	PartitionBits int     `json:"partition_bits"`
	BitsPerEntry  float64 `json:"bits_per_entry"`
}

// Ranks summarizes a rank-generation run.
type Ranks struct {
	K        int     `json:"k"`
	Kmers    int     `json:"kmers"`
	Distinct int     `json:"distinct"`
	Universe uint64  `json:"universe"`
	Density  float64 `json:"density"`
}

// WriteJSON writes v as indented JSON.
func WriteJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// WriteFile writes v as indented JSON to path atomically.
func WriteFile(path string, v any) error {
	var buf bytes.Buffer
	if err := WriteJSON(&buf, v); err != nil {
		return err
	}
	return atomic.WriteFile(path, &buf)
}
