package optimizely

// Defaults applied when the corresponding optional input is absent.
// These mirror what the Optimizely UI pre-selects for a fresh A/B test.
const (
	DefaultStatus = "not_started"
	DefaultType   = "a/b"

	DefaultAggregator       = "unique"
	DefaultScope            = "visitor"
	DefaultEventType        = "custom"
	DefaultWinningDirection = "increasing"

	DefaultControlName   = "Control"
	DefaultTreatmentName = "Variation #1"
)

// DefaultVariationsBasisPoints is the 50/50 control/treatment split in
// basis points (create_experiment convention, sums to 10000).
func DefaultVariationsBasisPoints() []Variation {
	return []Variation{
		{Name: DefaultControlName, Weight: 5000},
		{Name: DefaultTreatmentName, Weight: 5000},
	}
}

// DefaultVariationsPercent is the same split in whole percents
// (create_ab_test convention, sums to 100).
func DefaultVariationsPercent() []Variation {
	return []Variation{
		{Name: DefaultControlName, Weight: 50},
		{Name: DefaultTreatmentName, Weight: 50},
	}
}

// ApplyMetricDefaults fills the metric fields the API requires but the
// caller may omit. Caller-supplied values always win; only absent keys
// are injected. The fixed account id comes from config, not a literal.
func ApplyMetricDefaults(m Metric, accountID int64) Metric {
	if m == nil {
		m = Metric{}
	}

	setIfAbsent(m, "aggregator", DefaultAggregator)
	setIfAbsent(m, "scope", DefaultScope)
	setIfAbsent(m, "event_type", DefaultEventType)
	setIfAbsent(m, "winning_direction", DefaultWinningDirection)
	setIfAbsent(m, "account_id", accountID)

	return m
}

// ApplyUpdateDefaults injects the fixed account id into the top-level
// update payload and applies metric defaults to every metric entry.
func ApplyUpdateDefaults(update ExperimentUpdate, accountID int64) ExperimentUpdate {
	if update == nil {
		update = ExperimentUpdate{}
	}

	setIfAbsent(update, "account_id", accountID)

	if raw, ok := update["metrics"].([]Metric); ok {
		for i, m := range raw {
			raw[i] = ApplyMetricDefaults(m, accountID)
		}
		update["metrics"] = raw
	}

	return update
}

func setIfAbsent(m map[string]any, key string, value any) {
	if _, ok := m[key]; !ok {
		m[key] = value
	}
}
