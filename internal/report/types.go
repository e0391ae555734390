package report

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Timestamp accepts the two encodings the Stats API has been seen to
// emit: an RFC3339 string or epoch milliseconds.
type Timestamp struct {
	time.Time
}

// UnmarshalJSON implements the dual decoding.
func (t *Timestamp) UnmarshalJSON(data []byte) error {
	raw := strings.TrimSpace(string(data))

	if strings.HasPrefix(raw, `"`) {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		parsed, err := time.Parse(time.RFC3339, s)
		if err != nil {
			return fmt.Errorf("timestamp %q is not RFC3339: %w", s, err)
		}
		t.Time = parsed
		return nil
	}

	ms, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return fmt.Errorf("timestamp %s is neither RFC3339 nor epoch milliseconds", raw)
	}
	t.Time = time.UnixMilli(ms).UTC()
	return nil
}

// Lift is the relative improvement block attached to a variation's
// metric result. Value and Significance are fractions (0-1).
type Lift struct {
	Value        float64 `json:"value"`
	Significance float64 `json:"significance"`
}

// VariationResult is one variation's entry in a metric's results map.
type VariationResult struct {
	Name string  `json:"name"`
	Rate float64 `json:"rate"`
	Lift *Lift   `json:"lift"`
}

// StatsMetric is one metric in the results payload. Results is kept raw
// so its object keys (variation ids) can be walked in document order.
type StatsMetric struct {
	Name    string          `json:"name"`
	Results json.RawMessage `json:"results"`
}

// ReachVariation is one variation's exposure entry under reach.
type ReachVariation struct {
	Name       string `json:"name"`
	Count      int64  `json:"count"`
	IsBaseline bool   `json:"is_baseline"`
}

// statsResults is the decoded vendor payload. Pointer and RawMessage
// fields exist so absence can be detected and reported by name.
type statsResults struct {
	StartTime    *Timestamp    `json:"start_time"`
	EndTime      *Timestamp    `json:"end_time"`
	ExperimentID *int64        `json:"experiment_id"`
	Metrics      []StatsMetric `json:"metrics"`
	Reach        *reach        `json:"reach"`
	StatsConfig  *statsConfig  `json:"stats_config"`
}

type reach struct {
	Variations json.RawMessage `json:"variations"`
	TotalCount *int64          `json:"total_count"`
}

type statsConfig struct {
	ConfidenceLevel *float64 `json:"confidence_level"`
}

// Payload is the normalized Experiment Report Payload sent to the
// report-generation function.
type Payload struct {
	ExperimentID    string            `json:"experimentId"`
	DateRange       string            `json:"dateRange"`
	Duration        string            `json:"duration"`
	SampleSize      int64             `json:"sampleSize"`
	ConfidenceLevel float64           `json:"confidenceLevel"`
	Metrics         []MetricReport    `json:"metrics"`
	Variations      []VariationReport `json:"variations"`
	Recommendation  Recommendation    `json:"recommendation"`
	Actions         []string          `json:"actions"`
}

// MetricReport is one normalized metric: display values are percentages
// (0-100) and Lift is a formatted string ("+X.X%" or "N/A").
type MetricReport struct {
	Name       string            `json:"name"`
	Lift       string            `json:"lift"`
	Variations []MetricVariation `json:"variations"`
}

// MetricVariation is one variation's display row within a metric.
type MetricVariation struct {
	Name         string  `json:"name"`
	Value        float64 `json:"value"`
	Significance float64 `json:"significance"`
}

// VariationReport is one experiment arm in the report.
type VariationReport struct {
	Name        string `json:"name"`
	SampleSize  int64  `json:"sampleSize"`
	Description string `json:"description"`
}

// Recommendation is the analyst guidance block; each field defaults
// independently when absent.
type Recommendation struct {
	Status      string `json:"status"`
	Title       string `json:"title"`
	Description string `json:"description"`
}
