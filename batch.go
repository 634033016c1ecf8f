// Package goimpbatch regroups flat impedance sweep measurements into the
// batch document consumed by the goimpcore solver's ingest endpoint. Rows
// are bucketed by spectrum number, sorted by frequency within each bucket,
// and emitted as one spectrum entry per bucket in ascending spectrum order.
package goimpbatch

import (
	"sort"
	"time"

	"github.com/kacperjurak/goimpbatch/pkg/models"
	"gonum.org/v1/gonum/floats"
)

// Record is a single measurement row from a sweep export.
type Record struct {
	SpectrumID int
	Frequency  float64
	Real       float64
	Imag       float64
}

// GroupBySpectrum buckets records by spectrum number and sorts each bucket
// ascending by frequency. The sort is stable: rows sharing a frequency keep
// their input order. Spectrum numbers are taken verbatim; they need not be
// contiguous or start at 1.
func GroupBySpectrum(records []Record) map[int][]Record {
	groups := make(map[int][]Record)
	for _, rec := range records {
		groups[rec.SpectrumID] = append(groups[rec.SpectrumID], rec)
	}

	for _, bucket := range groups {
		sort.SliceStable(bucket, func(i, j int) bool {
			return bucket[i].Frequency < bucket[j].Frequency
		})
	}

	return groups
}

// BuildBatch assembles the ingest document from raw records. Spectrum numbers
// are 1-based at the source, so each entry's iteration is the spectrum number
// minus one. Timestamps are wall-clock at assembly time, one per entry plus
// one for the batch.
func BuildBatch(records []Record, batchID string) *models.ImpedanceBatch {
	groups := GroupBySpectrum(records)

	ids := make([]int, 0, len(groups))
	for id := range groups {
		ids = append(ids, id)
	}
	sort.Ints(ids)

	batch := &models.ImpedanceBatch{
		BatchID:   batchID,
		Timestamp: isoNow(),
		Spectra:   make([]models.BatchItem, 0, len(ids)),
	}

	for _, id := range ids {
		bucket := groups[id]

		freqs := make([]float64, len(bucket))
		imps := make([]models.ImpedancePoint, len(bucket))
		for i, rec := range bucket {
			freqs[i] = rec.Frequency
			imps[i] = models.ImpedancePoint{Real: rec.Real, Imag: rec.Imag}
		}

		batch.Spectra = append(batch.Spectra, models.BatchItem{
			Iteration: id - 1,
			ImpedanceData: models.ImpedanceData{
				Timestamp:   isoNow(),
				Frequencies: freqs,
				Magnitude:   []float64{},
				Phase:       []float64{},
				Impedance:   imps,
			},
		})
	}

	return batch
}

// isoNow returns the current UTC time in RFC 3339 form with a Z suffix.
func isoNow() string {
	return time.Now().UTC().Format(time.RFC3339Nano)
}

// Stats summarizes a built batch for diagnostics.
type Stats struct {
	BatchID       string
	Spectra       int
	FirstSpectrum int
	TotalPoints   int
	FreqMin       float64
	FreqMax       float64
}

// Summarize computes run statistics for a batch. FirstSpectrum is the point
// count of the first entry; FreqMin/FreqMax span every frequency in the
// batch and are zero when the batch is empty.
func Summarize(batch *models.ImpedanceBatch) Stats {
	stats := Stats{BatchID: batch.BatchID, Spectra: len(batch.Spectra)}

	var all []float64
	for _, item := range batch.Spectra {
		stats.TotalPoints += len(item.ImpedanceData.Frequencies)
		all = append(all, item.ImpedanceData.Frequencies...)
	}

	if len(batch.Spectra) > 0 {
		stats.FirstSpectrum = len(batch.Spectra[0].ImpedanceData.Frequencies)
	}
	if len(all) > 0 {
		stats.FreqMin = floats.Min(all)
		stats.FreqMax = floats.Max(all)
	}

	return stats
}
