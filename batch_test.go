package goimpbatch

import (
	"testing"
	"time"

	"github.com/kacperjurak/goimpbatch/pkg/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGroupBySpectrumSortsByFrequency(t *testing.T) {
	records := []Record{
		{SpectrumID: 1, Frequency: 1000, Real: 0.5, Imag: -0.1},
		{SpectrumID: 1, Frequency: 10, Real: 0.9, Imag: -0.4},
		{SpectrumID: 1, Frequency: 100, Real: 0.7, Imag: -0.2},
	}

	groups := GroupBySpectrum(records)
	require.Len(t, groups, 1)

	bucket := groups[1]
	require.Len(t, bucket, 3)
	assert.Equal(t, []Record{
		{SpectrumID: 1, Frequency: 10, Real: 0.9, Imag: -0.4},
		{SpectrumID: 1, Frequency: 100, Real: 0.7, Imag: -0.2},
		{SpectrumID: 1, Frequency: 1000, Real: 0.5, Imag: -0.1},
	}, bucket)
}

func TestGroupBySpectrumStableOnEqualFrequencies(t *testing.T) {
	records := []Record{
		{SpectrumID: 4, Frequency: 50, Real: 1.0},
		{SpectrumID: 4, Frequency: 50, Real: 2.0},
		{SpectrumID: 4, Frequency: 10, Real: 3.0},
		{SpectrumID: 4, Frequency: 50, Real: 4.0},
	}

	bucket := GroupBySpectrum(records)[4]
	require.Len(t, bucket, 4)

	// Ties at 50 Hz must keep their input order.
	assert.Equal(t, 3.0, bucket[0].Real)
	assert.Equal(t, 1.0, bucket[1].Real)
	assert.Equal(t, 2.0, bucket[2].Real)
	assert.Equal(t, 4.0, bucket[3].Real)
}

func TestBuildBatchOrdersSpectraAndOffsetsIteration(t *testing.T) {
	records := []Record{
		{SpectrumID: 2, Frequency: 1000, Real: 0.5, Imag: -0.1},
		{SpectrumID: 2, Frequency: 500, Real: 0.6, Imag: -0.2},
		{SpectrumID: 1, Frequency: 1000, Real: 0.4, Imag: -0.3},
	}

	batch := BuildBatch(records, "test-batch")
	require.Equal(t, "test-batch", batch.BatchID)
	require.Len(t, batch.Spectra, 2)

	first := batch.Spectra[0]
	assert.Equal(t, 0, first.Iteration)
	assert.Equal(t, []float64{1000}, first.ImpedanceData.Frequencies)
	assert.Equal(t, []models.ImpedancePoint{{Real: 0.4, Imag: -0.3}}, first.ImpedanceData.Impedance)

	second := batch.Spectra[1]
	assert.Equal(t, 1, second.Iteration)
	assert.Equal(t, []float64{500, 1000}, second.ImpedanceData.Frequencies)
	assert.Equal(t, []models.ImpedancePoint{
		{Real: 0.6, Imag: -0.2},
		{Real: 0.5, Imag: -0.1},
	}, second.ImpedanceData.Impedance)
}

func TestBuildBatchNonContiguousSpectrumNumbers(t *testing.T) {
	records := []Record{
		{SpectrumID: 7, Frequency: 10},
		{SpectrumID: 3, Frequency: 20},
		{SpectrumID: 7, Frequency: 5},
	}

	batch := BuildBatch(records, "b")
	require.Len(t, batch.Spectra, 2)
	assert.Equal(t, 2, batch.Spectra[0].Iteration)
	assert.Equal(t, 6, batch.Spectra[1].Iteration)
	assert.Equal(t, []float64{5, 10}, batch.Spectra[1].ImpedanceData.Frequencies)
}

func TestBuildBatchPreservesRowCount(t *testing.T) {
	var records []Record
	for i := 0; i < 30; i++ {
		records = append(records, Record{
			SpectrumID: i%3 + 1,
			Frequency:  float64(1000 - i),
		})
	}

	batch := BuildBatch(records, "b")
	total := 0
	for _, item := range batch.Spectra {
		require.Len(t, item.ImpedanceData.Impedance, len(item.ImpedanceData.Frequencies))
		total += len(item.ImpedanceData.Frequencies)
	}
	assert.Equal(t, len(records), total)
}

func TestBuildBatchFrequenciesNonDecreasing(t *testing.T) {
	records := []Record{
		{SpectrumID: 1, Frequency: 300},
		{SpectrumID: 1, Frequency: 100},
		{SpectrumID: 1, Frequency: 100},
		{SpectrumID: 1, Frequency: 200},
	}

	batch := BuildBatch(records, "b")
	require.Len(t, batch.Spectra, 1)

	freqs := batch.Spectra[0].ImpedanceData.Frequencies
	for i := 1; i < len(freqs); i++ {
		assert.LessOrEqual(t, freqs[i-1], freqs[i])
	}
}

func TestBuildBatchEmptyInput(t *testing.T) {
	batch := BuildBatch(nil, "empty")

	require.NotNil(t, batch.Spectra)
	assert.Empty(t, batch.Spectra)
	assert.Equal(t, "empty", batch.BatchID)

	// Batch timestamp is still stamped at assembly time.
	ts, err := time.Parse(time.RFC3339Nano, batch.Timestamp)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().UTC(), ts, time.Minute)
}

func TestBuildBatchTimestampsAreUTC(t *testing.T) {
	batch := BuildBatch([]Record{{SpectrumID: 1, Frequency: 1}}, "b")

	for _, raw := range []string{batch.Timestamp, batch.Spectra[0].ImpedanceData.Timestamp} {
		ts, err := time.Parse(time.RFC3339Nano, raw)
		require.NoError(t, err)
		_, offset := ts.Zone()
		assert.Zero(t, offset)
	}
}

func TestSummarize(t *testing.T) {
	records := []Record{
		{SpectrumID: 1, Frequency: 1000},
		{SpectrumID: 1, Frequency: 10},
		{SpectrumID: 2, Frequency: 50000},
		{SpectrumID: 2, Frequency: 0.5},
		{SpectrumID: 2, Frequency: 120},
	}

	stats := Summarize(BuildBatch(records, "stats-batch"))

	assert.Equal(t, "stats-batch", stats.BatchID)
	assert.Equal(t, 2, stats.Spectra)
	assert.Equal(t, 2, stats.FirstSpectrum)
	assert.Equal(t, 5, stats.TotalPoints)
	assert.Equal(t, 0.5, stats.FreqMin)
	assert.Equal(t, 50000.0, stats.FreqMax)
}

func TestSummarizeEmptyBatch(t *testing.T) {
	stats := Summarize(BuildBatch(nil, "b"))

	assert.Zero(t, stats.Spectra)
	assert.Zero(t, stats.TotalPoints)
	assert.Zero(t, stats.FreqMin)
	assert.Zero(t, stats.FreqMax)
}
