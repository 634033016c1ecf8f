package models

// ImpedancePoint is a single complex impedance sample.
type ImpedancePoint struct {
	Real float64 `json:"real"`
	Imag float64 `json:"imag"`
}

// ImpedanceData holds one spectrum's measurement arrays. Frequencies[i] and
// Impedance[i] belong to the same sample. Magnitude and Phase are part of the
// ingest schema but are not populated from CSV input; they must marshal as
// empty arrays, never null.
type ImpedanceData struct {
	Timestamp   string           `json:"timestamp"`
	Frequencies []float64        `json:"frequencies"`
	Magnitude   []float64        `json:"magnitude"`
	Phase       []float64        `json:"phase"`
	Impedance   []ImpedancePoint `json:"impedance"`
}

// BatchItem represents a single spectrum with its 0-based iteration number.
type BatchItem struct {
	Iteration     int           `json:"iteration"`
	ImpedanceData ImpedanceData `json:"impedance_data"`
}

// ImpedanceBatch is the top-level document consumed by the solver's batch
// endpoint. Spectra are ordered by ascending source spectrum number.
type ImpedanceBatch struct {
	BatchID   string      `json:"batch_id"`
	Timestamp string      `json:"timestamp"`
	Spectra   []BatchItem `json:"spectra"`
}
