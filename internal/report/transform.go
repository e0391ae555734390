package report

import (
	"bytes"
	"encoding/json"
	"fmt"
	"math"
	"time"

	"github.com/hristobakalov/hristo-opal-custom-tools/internal/errs"
)

const (
	// dayMillis is the divisor for the whole-day duration computation.
	dayMillis = 86_400_000

	// dateLayout renders "{Mon} {Day}, {Year}", e.g. "Mar 5, 2025".
	dateLayout = "Jan 2, 2006"

	descriptionBaseline  = "Original experience (Control)"
	descriptionTreatment = "Treatment variation"
)

// Recommendation defaults, applied per field when the caller omits one.
const (
	DefaultRecommendationStatus      = "Pending review"
	DefaultRecommendationTitle       = "Review experiment results"
	DefaultRecommendationDescription = "The experiment has concluded. Review the metrics below and decide whether to roll out the winning variation."
)

// DefaultActions are the follow-up actions used when the caller supplies
// none.
func DefaultActions() []string {
	return []string{
		"Review the experiment results with your team",
		"Roll out the winning variation to all traffic",
		"Archive the experiment and document learnings",
	}
}

// Transform converts a raw Stats API results payload into the normalized
// report payload (without recommendation/actions, which are caller
// inputs layered on afterwards).
//
// Required fields are checked before any computation; a missing field is
// a 400 naming the field, never a nil-dereference or a generic decode
// complaint.
func Transform(raw []byte) (*Payload, error) {
	var results statsResults
	if err := json.Unmarshal(raw, &results); err != nil {
		return nil, errs.NewBadRequestError(
			fmt.Sprintf("results is not valid JSON: %s", err.Error()),
			false,
			nil,
			[]errs.FieldError{{Field: "results", Error: "must be a JSON object"}},
		)
	}

	if err := validateResults(&results); err != nil {
		return nil, err
	}

	start := results.StartTime.Time
	end := results.EndTime.Time

	payload := &Payload{
		ExperimentID:    fmt.Sprintf("%d", *results.ExperimentID),
		DateRange:       formatDateRange(start, end),
		Duration:        fmt.Sprintf("%d days", durationDays(start, end)),
		SampleSize:      *results.Reach.TotalCount,
		ConfidenceLevel: *results.StatsConfig.ConfidenceLevel * 100,
	}

	for _, metric := range results.Metrics {
		transformed, err := transformMetric(metric)
		if err != nil {
			return nil, err
		}
		payload.Metrics = append(payload.Metrics, transformed)
	}

	variations, err := transformReach(results.Reach.Variations)
	if err != nil {
		return nil, err
	}
	payload.Variations = variations

	return payload, nil
}

// BuildRecommendation fills each absent recommendation field with its
// default. Fields default independently: a caller-supplied status does
// not suppress the default title.
func BuildRecommendation(status, title, description string) Recommendation {
	if status == "" {
		status = DefaultRecommendationStatus
	}
	if title == "" {
		title = DefaultRecommendationTitle
	}
	if description == "" {
		description = DefaultRecommendationDescription
	}
	return Recommendation{Status: status, Title: title, Description: description}
}

// durationDays computes ceil((end-start) / 86_400_000 ms) in whole days.
func durationDays(start, end time.Time) int64 {
	deltaMillis := end.Sub(start).Milliseconds()
	return int64(math.Ceil(float64(deltaMillis) / dayMillis))
}

func formatDateRange(start, end time.Time) string {
	return start.Format(dateLayout) + " - " + end.Format(dateLayout)
}

// transformMetric normalizes one metric: per-variation display rows in
// document order and the headline lift, which is the plain numeric
// maximum of lift.value across variations that carry a lift object.
func transformMetric(metric StatsMetric) (MetricReport, error) {
	report := MetricReport{Name: metric.Name, Lift: "N/A"}

	entries, err := orderedEntries(metric.Results, "metrics.results")
	if err != nil {
		return MetricReport{}, err
	}

	var bestLift float64
	var liftSeen bool

	for _, entry := range entries {
		var result VariationResult
		if err := json.Unmarshal(entry.value, &result); err != nil {
			return MetricReport{}, errs.NewBadRequestError(
				fmt.Sprintf("results entry %s is malformed: %s", entry.key, err.Error()),
				false, nil, nil,
			)
		}

		row := MetricVariation{
			Name:  result.Name,
			Value: result.Rate * 100,
		}
		if result.Lift != nil {
			row.Significance = result.Lift.Significance * 100

			if !liftSeen || result.Lift.Value > bestLift {
				bestLift = result.Lift.Value
				liftSeen = true
			}
		}

		report.Variations = append(report.Variations, row)
	}

	if liftSeen && bestLift > 0 {
		report.Lift = fmt.Sprintf("+%.1f%%", bestLift*100)
	}

	return report, nil
}

// transformReach builds the variations list from reach.variations,
// preserving the object's document order.
func transformReach(raw json.RawMessage) ([]VariationReport, error) {
	entries, err := orderedEntries(raw, "reach.variations")
	if err != nil {
		return nil, err
	}

	var reports []VariationReport
	for _, entry := range entries {
		var v ReachVariation
		if err := json.Unmarshal(entry.value, &v); err != nil {
			return nil, errs.NewBadRequestError(
				fmt.Sprintf("reach.variations entry %s is malformed: %s", entry.key, err.Error()),
				false, nil, nil,
			)
		}

		description := descriptionTreatment
		if v.IsBaseline {
			description = descriptionBaseline
		}

		reports = append(reports, VariationReport{
			Name:        v.Name,
			SampleSize:  v.Count,
			Description: description,
		})
	}

	return reports, nil
}

type rawEntry struct {
	key   string
	value json.RawMessage
}

// orderedEntries walks a JSON object's keys in document order.
//
// encoding/json maps randomize iteration, which would scramble the
// variation ordering the report relies on, so the object is re-walked
// with a token decoder instead.
func orderedEntries(raw json.RawMessage, field string) ([]rawEntry, error) {
	dec := json.NewDecoder(bytes.NewReader(raw))

	malformed := func(err error) error {
		return errs.NewBadRequestError(
			fmt.Sprintf("%s is not a JSON object: %s", field, err.Error()),
			false, nil, nil,
		)
	}

	tok, err := dec.Token()
	if err != nil {
		return nil, malformed(err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, errs.NewBadRequestError(
			fmt.Sprintf("%s must be a JSON object keyed by variation id", field),
			false, nil, nil,
		)
	}

	var entries []rawEntry
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return nil, malformed(err)
		}
		key := keyTok.(string)

		var value json.RawMessage
		if err := dec.Decode(&value); err != nil {
			return nil, malformed(err)
		}

		entries = append(entries, rawEntry{key: key, value: value})
	}

	return entries, nil
}

// validateResults checks every required field of the vendor payload and
// names the first one missing.
func validateResults(r *statsResults) error {
	switch {
	case r.StartTime == nil:
		return errs.MissingFieldError("results.start_time")
	case r.EndTime == nil:
		return errs.MissingFieldError("results.end_time")
	case r.ExperimentID == nil:
		return errs.MissingFieldError("results.experiment_id")
	case r.Metrics == nil:
		return errs.MissingFieldError("results.metrics")
	case r.Reach == nil:
		return errs.MissingFieldError("results.reach")
	case len(r.Reach.Variations) == 0:
		return errs.MissingFieldError("results.reach.variations")
	case r.Reach.TotalCount == nil:
		return errs.MissingFieldError("results.reach.total_count")
	case r.StatsConfig == nil:
		return errs.MissingFieldError("results.stats_config")
	case r.StatsConfig.ConfidenceLevel == nil:
		return errs.MissingFieldError("results.stats_config.confidence_level")
	}
	return nil
}
