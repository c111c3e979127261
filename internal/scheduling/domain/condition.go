package domain

import "time"

// ConditionType identifies what a schedule condition inspects.
type ConditionType string

const (
	ConditionTypeTimeRange       ConditionType = "time_range"
	ConditionTypeAltitude        ConditionType = "altitude"
	ConditionTypeWeather         ConditionType = "weather"
	ConditionTypeMoonPhase       ConditionType = "moon_phase"
	ConditionTypeEquipmentStatus ConditionType = "equipment_status"
)

// ConditionOperator is the comparison applied by a condition.
type ConditionOperator string

const (
	OperatorLessThan       ConditionOperator = "<"
	OperatorGreaterThan    ConditionOperator = ">"
	OperatorGreaterOrEqual ConditionOperator = ">="
	OperatorLessOrEqual    ConditionOperator = "<="
	OperatorBetween        ConditionOperator = "between"
)

// ScheduleCondition is a single predicate attached to a schedule rule.
// Value's shape depends on Type: a TimeRangeValue for time_range, a
// WeatherValue for weather, and a plain number for altitude and moon_phase.
// Conditions are immutable once attached to a rule.
type ScheduleCondition struct {
	Type     ConditionType     `json:"type"`
	Operator ConditionOperator `json:"operator"`
	Value    any               `json:"value,omitempty"`
}

// TimeRangeValue is the value shape for time_range conditions.
type TimeRangeValue struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// WeatherValue is the value shape for weather conditions.
type WeatherValue struct {
	Parameter string  `json:"parameter"`
	Threshold float64 `json:"threshold"`
}

// ScheduleAction defines what a rule does when its conditions hold.
type ScheduleAction struct {
	Type       string         `json:"type"`
	Parameters map[string]any `json:"parameters,omitempty"`
}
