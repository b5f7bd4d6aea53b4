package similarity

// Combiner reduces a score matrix to a single set-level score.
// An empty matrix always yields 0.
type Combiner interface {
	Name() string
	Combine(m *Matrix) float32
}

// FunSimAvg is the mean of the averaged row maxima and the averaged column
// maxima.
type FunSimAvg struct{}

// Name returns "funsimavg".
func (FunSimAvg) Name() string { return "funsimavg" }

// Combine implements Combiner.
func (FunSimAvg) Combine(m *Matrix) float32 {
	if m.IsEmpty() {
		return 0
	}
	return (mean(m.RowMaxima()) + mean(m.ColMaxima())) / 2
}

// FunSimMax is the larger of the averaged row maxima and the averaged
// column maxima.
type FunSimMax struct{}

// Name returns "funsimmax".
func (FunSimMax) Name() string { return "funsimmax" }

// Combine implements Combiner.
func (FunSimMax) Combine(m *Matrix) float32 {
	if m.IsEmpty() {
		return 0
	}
	return max(mean(m.RowMaxima()), mean(m.ColMaxima()))
}

// BWA is the best-match weighted average: all row and column maxima
// divided by the number of rows plus columns.
type BWA struct{}

// Name returns "bwa".
func (BWA) Name() string { return "bwa" }

// Combine implements Combiner.
func (BWA) Combine(m *Matrix) float32 {
	if m.IsEmpty() {
		return 0
	}
	return (sum(m.RowMaxima()) + sum(m.ColMaxima())) / float32(m.Rows()+m.Cols())
}

func sum(v []float32) float32 {
	var s float32
	for _, x := range v {
		s += x
	}
	return s
}

func mean(v []float32) float32 {
	if len(v) == 0 {
		return 0
	}
	return sum(v) / float32(len(v))
}
