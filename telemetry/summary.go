package telemetry

import (
	"log/slog"

	"gonum.org/v1/gonum/stat"

	"github.com/golangdaddy/highway/scoring"
)

// Summary describes a run from its evaluation records.
type Summary struct {
	Evaluations   int
	Seconds       float64 // Time of the last evaluation
	FinalScore    int
	MeanSpeed     float64
	StdDevSpeed   float64
	ReasonSeconds map[scoring.Reason]float64 // Time spent rated with each reason
}

// Summarize aggregates records taken every interval seconds.
func Summarize(records []Record, interval float64) Summary {
	s := Summary{ReasonSeconds: make(map[scoring.Reason]float64)}
	if len(records) == 0 {
		return s
	}

	speeds := make([]float64, len(records))
	for i, rec := range records {
		speeds[i] = rec.Speed
		s.ReasonSeconds[rec.Reason] += interval
	}

	last := records[len(records)-1]
	s.Evaluations = len(records)
	s.Seconds = last.Time
	s.FinalScore = last.Score

	if len(speeds) < 2 {
		s.MeanSpeed = speeds[0]
		return s
	}
	s.MeanSpeed, s.StdDevSpeed = stat.MeanStdDev(speeds, nil)
	return s
}

// LogValue implements slog.LogValuer.
func (s Summary) LogValue() slog.Value {
	attrs := []slog.Attr{
		slog.Int("evaluations", s.Evaluations),
		slog.Float64("seconds", s.Seconds),
		slog.Int("final_score", s.FinalScore),
		slog.Float64("mean_speed", s.MeanSpeed),
		slog.Float64("stddev_speed", s.StdDevSpeed),
	}
	for r := scoring.None; r <= scoring.Blocking; r++ {
		if secs, ok := s.ReasonSeconds[r]; ok {
			attrs = append(attrs, slog.Float64(r.String()+"_seconds", secs))
		}
	}
	return slog.GroupValue(attrs...)
}
