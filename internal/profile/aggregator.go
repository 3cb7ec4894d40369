package profile

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/2beens/healthstats/internal/bodycomp"
)

const (
	opUpdateProfile = "update profile"
	opTrackProgress = "track progress"
	opDietPlan      = "generate diet plan"
)

const (
	msgWarningBMIOnly      = "Warning: BFP not available. Plan based on BMI. For personalized plans, provide BFP info."
	msgWarningInsufficient = "Warning: Insufficient data for body composition. Plan is generalized."
)

// All functions below are pure: they never modify the profile they get
// and treat a nil profile as an empty one.

func startFrom(existing *UserProfile) *UserProfile {
	if existing == nil {
		return &UserProfile{}
	}
	return existing.Clone()
}

func ensureContainers(p *UserProfile) {
	if p.ProgressHistory == nil {
		p.ProgressHistory = []ProgressEntry{}
	}
}

func navyEstimate(metrics bodycomp.CalculatedMetrics, ts time.Time) *BodyFatEstimate {
	if metrics.BFPNavy == nil {
		return nil
	}
	value := *metrics.BFPNavy
	return &BodyFatEstimate{
		Value:       &value,
		Timestamp:   ts,
		FormulaUsed: FormulaNavy,
	}
}

// ApplyProfileUpdate merges a profile create/update request into existing.
func ApplyProfileUpdate(existing *UserProfile, userID string, incoming ProfileUpdate, now time.Time) (*UserProfile, error) {
	hasMeasurements := !incoming.Measurements.IsEmpty()
	if hasMeasurements {
		m := incoming.Measurements
		if m.HeightCm == nil || *m.HeightCm == 0 || m.WeightKg == nil || *m.WeightKg == 0 {
			return nil, newValidationError(opUpdateProfile, "height_cm and weight_kg are mandatory in measurements")
		}
	}

	p := startFrom(existing)
	p.UserID = userID

	if incoming.Age != nil {
		age := *incoming.Age
		p.Age = &age
	}
	if incoming.Gender != nil {
		gender := *incoming.Gender
		p.Gender = &gender
	}

	if hasMeasurements {
		p.Measurements = incoming.Measurements.Clone()
		p.CalculatedMetrics = bodycomp.ComputeAllMetrics(p.Measurements, p.Gender)
		if est := navyEstimate(p.CalculatedMetrics, now.UTC()); est != nil {
			p.BodyFatEstimates.FromMeasurements = est
		}
	}

	if isProvided(incoming.Lifestyle) {
		p.Lifestyle = cloneRaw(incoming.Lifestyle)
	}

	ensureContainers(p)
	return p, nil
}

func positive(v *float64) bool {
	return v != nil && *v > 0
}

// ApplyProgressEntry appends a progress snapshot and makes it the current state.
// Height may be omitted when the profile already knows it.
func ApplyProgressEntry(existing *UserProfile, entry ProgressUpdate, now time.Time) (*UserProfile, error) {
	if entry.WeightKg == nil {
		return nil, newValidationError(opTrackProgress, "weight_kg is required")
	}
	if entry.Measurements == nil {
		return nil, newValidationError(opTrackProgress, "measurements are required")
	}

	measurements := entry.Measurements.Clone()
	if !positive(measurements.HeightCm) {
		measurements.HeightCm = nil
		if existing != nil && existing.Measurements != nil && positive(existing.Measurements.HeightCm) {
			measurements.HeightCm = cloneFloat(existing.Measurements.HeightCm)
		}
	}
	if measurements.HeightCm == nil {
		return nil, newValidationError(opTrackProgress, "height_cm missing and no previous height on profile")
	}
	if measurements.WeightKg == nil {
		measurements.WeightKg = cloneFloat(entry.WeightKg)
	}

	p := startFrom(existing)
	ts := now.UTC()
	metrics := bodycomp.ComputeAllMetrics(measurements, p.Gender)

	p.ProgressHistory = append(p.ProgressHistory, ProgressEntry{
		Timestamp:         ts,
		WeightKg:          *entry.WeightKg,
		Measurements:      measurements.Clone(),
		CalculatedMetrics: metrics.Clone(),
		Notes:             entry.Notes,
	})
	p.Measurements = measurements
	p.CalculatedMetrics = metrics
	if est := navyEstimate(metrics, ts); est != nil {
		p.BodyFatEstimates.FromMeasurements = est
	}

	ensureContainers(p)
	return p, nil
}

// RecordPhotoEstimate stores the latest image based estimate. Measurements
// and calculated metrics are left as they are.
func RecordPhotoEstimate(existing *UserProfile, analysis PhotoAnalysis, now time.Time) *UserProfile {
	p := startFrom(existing)

	assessment := analysis.Assessment
	p.BodyFatEstimates.FromImage = (&BodyFatEstimate{
		Value:      analysis.BodyFatPercent,
		Timestamp:  now.UTC(),
		Analysis:   analysis.Analysis,
		Confidence: analysis.Confidence,
		Photo:      &assessment,
	}).clone()

	ensureContainers(p)
	return p
}

// SelectBodyCompositionContext picks the body fat signal downstream consumers
// should rely on: image estimate, then measurement estimate, then BMI only.
// The value is returned only when a body fat estimate was chosen.
func SelectBodyCompositionContext(p *UserProfile) (string, *float64) {
	if p == nil {
		return msgWarningInsufficient, nil
	}

	if est := p.BodyFatEstimates.FromImage; est != nil && est.Value != nil {
		return fmt.Sprintf("Plan based on image-estimated body fat: %s%%.", formatPercent(*est.Value)), cloneFloat(est.Value)
	}
	if est := p.BodyFatEstimates.FromMeasurements; est != nil && est.Value != nil {
		return fmt.Sprintf("Plan based on measurement-estimated body fat: %s%%.", formatPercent(*est.Value)), cloneFloat(est.Value)
	}
	if p.CalculatedMetrics.BMI != nil {
		return msgWarningBMIOnly, nil
	}
	return msgWarningInsufficient, nil
}

func formatPercent(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// ValidateForDietPlan checks the profile carries what a diet plan needs.
func ValidateForDietPlan(p *UserProfile) error {
	if p == nil {
		return ErrProfileNotFound
	}
	m := p.Measurements
	if m == nil || m.HeightCm == nil || *m.HeightCm == 0 || m.WeightKg == nil || *m.WeightKg == 0 {
		return newValidationError(opDietPlan, "height and weight required in profile for diet plan")
	}
	if !isProvided(p.Lifestyle) {
		return newValidationError(opDietPlan, "lifestyle details required for diet plan")
	}
	return nil
}

// BuildDietPlanContext assembles the planner input, including the message
// from SelectBodyCompositionContext.
func BuildDietPlanContext(p *UserProfile) DietPlanContext {
	contextMsg, _ := SelectBodyCompositionContext(p)
	c := startFrom(p)
	ensureContainers(c)

	return DietPlanContext{
		UserID:                        c.UserID,
		Age:                           c.Age,
		Gender:                        c.Gender,
		Measurements:                  c.Measurements,
		CalculatedMetrics:             c.CalculatedMetrics,
		Lifestyle:                     c.Lifestyle,
		BodyFatEstimates:              c.BodyFatEstimates,
		BodyCompositionAssessmentInfo: contextMsg,
		ProgressHistory:               c.ProgressHistory,
	}
}

// ApplyDietPlan stores plan as the current diet plan, with contextMsg
// prepended to the planner notes.
func ApplyDietPlan(existing *UserProfile, plan DietPlan, contextMsg string) *UserProfile {
	p := startFrom(existing)

	stored := plan.clone()
	stored.NotesFromGemini = contextMsg + "\n" + plan.NotesFromGemini
	p.CurrentDietPlan = stored

	ensureContainers(p)
	return p
}

func ApplyCheckupPreference(existing *UserProfile, pref CheckupPreference) *UserProfile {
	p := startFrom(existing)
	p.CheckupPreference = &pref
	ensureContainers(p)
	return p
}

func ApplyGoogleAuthCreds(existing *UserProfile, userID string, creds []byte) *UserProfile {
	p := startFrom(existing)
	p.UserID = userID
	p.GoogleAuthCreds = cloneRaw(creds)
	ensureContainers(p)
	return p
}

// ValidateForPhotoAnalysis lists what the photo analysis prompt can't do without.
func ValidateForPhotoAnalysis(p *UserProfile) error {
	if p == nil {
		return ErrProfileNotFound
	}

	var missing []string
	m := p.Measurements
	if m == nil {
		m = &bodycomp.Measurements{}
	}
	if !isPositive(m.HeightCm) {
		missing = append(missing, "height_cm")
	}
	if !isPositive(m.WeightKg) {
		missing = append(missing, "weight_kg")
	}
	if p.Age == nil || *p.Age <= 0 {
		missing = append(missing, "age")
	}
	if p.Gender == nil || *p.Gender == "" {
		missing = append(missing, "gender")
	}
	if !isPositive(m.WaistCm) {
		missing = append(missing, "waist_cm")
	}
	if !isPositive(m.HipCm) {
		missing = append(missing, "hip_cm")
	}

	if len(missing) > 0 {
		return newValidationError("analyze photo", "missing required user measurements: "+strings.Join(missing, ", "))
	}
	return nil
}

func isPositive(v *float64) bool {
	return v != nil && *v > 0
}
