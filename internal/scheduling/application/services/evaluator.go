// Package services contains the scheduling engine: condition evaluation,
// priority ranking, slot search, orchestration, live tracking.
package services

import (
	"context"
	"encoding/json"
	"time"

	"github.com/felixgeelhaar/astrosched/internal/ephemeris"
	"github.com/felixgeelhaar/astrosched/internal/scheduling/domain"
)

// EvalContext is the runtime context a condition is evaluated against.
// Every field is optional; conditions whose inputs are absent evaluate
// permissively to true. This is a deliberate open/fail-safe design carried
// over from the original behavior: a missing weather feed or disconnected
// equipment monitor must not silently veto every schedule.
type EvalContext struct {
	Target    *domain.Target
	Location  *domain.Location
	Date      *time.Time
	Weather   *domain.WeatherSnapshot
	Equipment *domain.EquipmentState
}

// ConditionEvaluator maps a typed condition plus runtime context to a
// boolean. Pure with respect to its inputs, modulo wall-clock reads and
// ephemeris lookups.
type ConditionEvaluator struct {
	provider ephemeris.Provider
	phases   ephemeris.PhaseCalculator
	now      func() time.Time
}

// NewConditionEvaluator creates an evaluator backed by the given provider
// and phase calculator.
func NewConditionEvaluator(provider ephemeris.Provider, phases ephemeris.PhaseCalculator) *ConditionEvaluator {
	if phases == nil {
		phases = ephemeris.JulianPhaseCalculator{}
	}
	return &ConditionEvaluator{
		provider: provider,
		phases:   phases,
		now:      time.Now,
	}
}

// Evaluate dispatches on the condition type. Malformed values and unknown
// operators fall through to true rather than erroring.
func (e *ConditionEvaluator) Evaluate(ctx context.Context, condition domain.ScheduleCondition, evalCtx EvalContext) bool {
	switch condition.Type {
	case domain.ConditionTypeTimeRange:
		return e.evaluateTimeRange(condition)
	case domain.ConditionTypeAltitude:
		return e.evaluateAltitude(ctx, condition, evalCtx)
	case domain.ConditionTypeWeather:
		return e.evaluateWeather(condition, evalCtx)
	case domain.ConditionTypeMoonPhase:
		return e.evaluateMoonPhase(condition, evalCtx)
	case domain.ConditionTypeEquipmentStatus:
		return e.evaluateEquipment(evalCtx)
	default:
		return true
	}
}

// evaluateTimeRange compares the wall clock at evaluation time, not the
// scheduled slot time, against the condition value.
func (e *ConditionEvaluator) evaluateTimeRange(condition domain.ScheduleCondition) bool {
	now := e.now()

	switch condition.Operator {
	case domain.OperatorBetween:
		value, ok := decodeValue[domain.TimeRangeValue](condition.Value)
		if !ok {
			return true
		}
		return !now.Before(value.Start) && !now.After(value.End)
	case domain.OperatorLessThan:
		instant, ok := decodeValue[time.Time](condition.Value)
		if !ok {
			return true
		}
		return now.Before(instant)
	case domain.OperatorGreaterThan:
		instant, ok := decodeValue[time.Time](condition.Value)
		if !ok {
			return true
		}
		return now.After(instant)
	case domain.OperatorLessOrEqual:
		instant, ok := decodeValue[time.Time](condition.Value)
		if !ok {
			return true
		}
		return !now.After(instant)
	case domain.OperatorGreaterOrEqual:
		instant, ok := decodeValue[time.Time](condition.Value)
		if !ok {
			return true
		}
		return !now.Before(instant)
	default:
		return true
	}
}

// evaluateAltitude asks the ephemeris provider for the target's altitude at
// the context date (or now) and compares it against the condition value.
// Provider failures evaluate permissively; hard provider errors only abort
// a run inside the slot search, where they matter.
func (e *ConditionEvaluator) evaluateAltitude(ctx context.Context, condition domain.ScheduleCondition, evalCtx EvalContext) bool {
	if evalCtx.Target == nil || evalCtx.Location == nil {
		return true
	}

	at := e.now()
	if evalCtx.Date != nil {
		at = *evalCtx.Date
	}

	obs, err := e.provider.Observe(ctx, *evalCtx.Target, *evalCtx.Location, at)
	if err != nil {
		return true
	}

	threshold, ok := decodeValue[float64](condition.Value)
	if !ok {
		return true
	}
	return compareNumber(obs.AltitudeOrZero(), condition.Operator, threshold)
}

func (e *ConditionEvaluator) evaluateWeather(condition domain.ScheduleCondition, evalCtx EvalContext) bool {
	if evalCtx.Weather == nil {
		return true
	}

	value, ok := decodeValue[domain.WeatherValue](condition.Value)
	if !ok {
		return true
	}

	reading, present := evalCtx.Weather.Reading(value.Parameter)
	if !present {
		return true
	}
	return compareNumber(reading, condition.Operator, value.Threshold)
}

func (e *ConditionEvaluator) evaluateMoonPhase(condition domain.ScheduleCondition, evalCtx EvalContext) bool {
	at := e.now()
	if evalCtx.Date != nil {
		at = *evalCtx.Date
	}
	phase := e.phases.Phase(at)

	threshold, ok := decodeValue[float64](condition.Value)
	if !ok {
		return true
	}

	switch condition.Operator {
	case domain.OperatorLessThan:
		return phase < threshold
	case domain.OperatorGreaterThan:
		return phase > threshold
	default:
		return true
	}
}

func (e *ConditionEvaluator) evaluateEquipment(evalCtx EvalContext) bool {
	if evalCtx.Equipment == nil {
		return true
	}
	return evalCtx.Equipment.IsReady()
}

// compareNumber applies a comparison operator. Unknown operators default to
// true, the same permissive fallback the rest of the evaluator uses.
func compareNumber(actual float64, operator domain.ConditionOperator, expected float64) bool {
	switch operator {
	case domain.OperatorLessThan:
		return actual < expected
	case domain.OperatorGreaterThan:
		return actual > expected
	case domain.OperatorLessOrEqual:
		return actual <= expected
	case domain.OperatorGreaterOrEqual:
		return actual >= expected
	default:
		return true
	}
}

// decodeValue coerces a condition value into its expected shape. Values
// arrive either as typed structs (built in code) or as generic JSON maps
// (loaded from persistence), so a marshal round-trip covers both.
func decodeValue[T any](v any) (T, bool) {
	var out T
	if v == nil {
		return out, false
	}
	if typed, ok := v.(T); ok {
		return typed, true
	}
	raw, err := json.Marshal(v)
	if err != nil {
		return out, false
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, false
	}
	return out, true
}
