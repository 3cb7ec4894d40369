package profile

import (
	"encoding/json"
	"time"

	"github.com/2beens/healthstats/internal/bodycomp"
)

const FormulaNavy = "Navy Method"

// UserProfile is the persisted per-user aggregate.
// GoogleAuthCreds, CurrentDietPlan and CheckupPreference are owned by
// other components and are carried along untouched by measurement updates.
type UserProfile struct {
	UserID            string                     `json:"user_id"`
	Age               *int                       `json:"age,omitempty"`
	Gender            *string                    `json:"gender,omitempty"`
	Measurements      *bodycomp.Measurements     `json:"measurements,omitempty"`
	CalculatedMetrics bodycomp.CalculatedMetrics `json:"calculated_metrics"`
	BodyFatEstimates  BodyFatEstimates           `json:"body_fat_estimates"`
	Lifestyle         json.RawMessage            `json:"lifestyle,omitempty"`
	ProgressHistory   []ProgressEntry            `json:"progress_history"`

	GoogleAuthCreds   json.RawMessage    `json:"google_auth_creds,omitempty"`
	CurrentDietPlan   *DietPlan          `json:"current_diet_plan,omitempty"`
	CheckupPreference *CheckupPreference `json:"checkup_preference,omitempty"`
}

type BodyFatEstimates struct {
	FromMeasurements *BodyFatEstimate `json:"from_measurements,omitempty"`
	FromImage        *BodyFatEstimate `json:"from_image,omitempty"`
}

// BodyFatEstimate is the latest estimate from a single source.
// Value is nil when the source could not produce a number.
type BodyFatEstimate struct {
	Value       *float64         `json:"value"`
	Timestamp   time.Time        `json:"timestamp"`
	FormulaUsed string           `json:"formula_used,omitempty"`
	Analysis    string           `json:"analysis,omitempty"`
	Confidence  *float64         `json:"confidence,omitempty"`
	Photo       *PhotoAssessment `json:"photo_assessment,omitempty"`
}

type PhotoAssessment struct {
	BMI             *float64      `json:"bmi,omitempty"`
	BMIComment      string        `json:"bmi_comment,omitempty"`
	WHR             *float64      `json:"whr,omitempty"`
	WHRComment      string        `json:"whr_comment,omitempty"`
	ExerciseProgram []ExerciseDay `json:"exercise_program,omitempty"`
	DietList        []MealDay     `json:"diet_list,omitempty"`
}

type ExerciseDay struct {
	Day      string `json:"day"`
	Exercise string `json:"exercise"`
}

type MealDay struct {
	Day           string  `json:"day"`
	Breakfast     string  `json:"breakfast,omitempty"`
	Lunch         string  `json:"lunch,omitempty"`
	Dinner        string  `json:"dinner,omitempty"`
	Snack         string  `json:"snack,omitempty"`
	TotalCalories float64 `json:"total_calories,omitempty"`
}

// ProgressEntry is never modified once appended.
type ProgressEntry struct {
	Timestamp         time.Time                  `json:"timestamp"`
	WeightKg          float64                    `json:"weight_kg"`
	Measurements      *bodycomp.Measurements     `json:"measurements"`
	CalculatedMetrics bodycomp.CalculatedMetrics `json:"calculated_metrics"`
	Notes             string                     `json:"notes,omitempty"`
}

type DietPlan struct {
	Summary         string    `json:"summary"`
	DailyCalories   float64   `json:"daily_calories,omitempty"`
	Days            []MealDay `json:"days,omitempty"`
	Recommendations []string  `json:"recommendations,omitempty"`
	NotesFromGemini string    `json:"notes_from_gemini"`
	GeneratedAt     time.Time `json:"generated_at"`
}

type CheckupPreference struct {
	DayOfWeek             string `json:"day_of_week"`
	TimeOfDay             string `json:"time_of_day"`
	GoogleCalendarEventID string `json:"google_calendar_event_id,omitempty"`
}

// ProfileUpdate is the body of a profile create/update. Nil fields are not provided.
type ProfileUpdate struct {
	Age          *int                   `json:"age"`
	Gender       *string                `json:"gender"`
	Measurements *bodycomp.Measurements `json:"measurements"`
	Lifestyle    json.RawMessage        `json:"lifestyle"`
}

// IsEmpty reports whether the request carried no profile fields at all.
func (u ProfileUpdate) IsEmpty() bool {
	return u.Age == nil && u.Gender == nil && u.Measurements == nil && len(u.Lifestyle) == 0
}

type ProgressUpdate struct {
	WeightKg     *float64               `json:"weight_kg"`
	Measurements *bodycomp.Measurements `json:"measurements"`
	Notes        string                 `json:"notes,omitempty"`
}

// PhotoAnalysis is what a photo body fat analyzer reports back.
type PhotoAnalysis struct {
	BodyFatPercent *float64        `json:"body_fat_percent"`
	Analysis       string          `json:"analysis"`
	Confidence     *float64        `json:"confidence,omitempty"`
	Assessment     PhotoAssessment `json:"assessment"`
}

// DietPlanContext is everything a diet planner gets to see about the user.
type DietPlanContext struct {
	UserID                        string                     `json:"user_id"`
	Age                           *int                       `json:"age,omitempty"`
	Gender                        *string                    `json:"gender,omitempty"`
	Measurements                  *bodycomp.Measurements     `json:"measurements,omitempty"`
	CalculatedMetrics             bodycomp.CalculatedMetrics `json:"calculated_metrics"`
	Lifestyle                     json.RawMessage            `json:"lifestyle,omitempty"`
	BodyFatEstimates              BodyFatEstimates           `json:"body_fat_estimates"`
	BodyCompositionAssessmentInfo string                     `json:"body_composition_assessment_info"`
	ProgressHistory               []ProgressEntry            `json:"progress_history"`
}

func (p *UserProfile) Clone() *UserProfile {
	if p == nil {
		return nil
	}

	c := &UserProfile{
		UserID:            p.UserID,
		Age:               cloneInt(p.Age),
		Gender:            cloneString(p.Gender),
		Measurements:      p.Measurements.Clone(),
		CalculatedMetrics: p.CalculatedMetrics.Clone(),
		BodyFatEstimates: BodyFatEstimates{
			FromMeasurements: p.BodyFatEstimates.FromMeasurements.clone(),
			FromImage:        p.BodyFatEstimates.FromImage.clone(),
		},
		Lifestyle:       cloneRaw(p.Lifestyle),
		GoogleAuthCreds: cloneRaw(p.GoogleAuthCreds),
		CurrentDietPlan: p.CurrentDietPlan.clone(),
	}

	if p.ProgressHistory != nil {
		c.ProgressHistory = make([]ProgressEntry, len(p.ProgressHistory))
		for i, e := range p.ProgressHistory {
			e.Measurements = e.Measurements.Clone()
			e.CalculatedMetrics = e.CalculatedMetrics.Clone()
			c.ProgressHistory[i] = e
		}
	}
	if p.CheckupPreference != nil {
		pref := *p.CheckupPreference
		c.CheckupPreference = &pref
	}

	return c
}

func (e *BodyFatEstimate) clone() *BodyFatEstimate {
	if e == nil {
		return nil
	}
	c := *e
	c.Value = cloneFloat(e.Value)
	c.Confidence = cloneFloat(e.Confidence)
	if e.Photo != nil {
		photo := *e.Photo
		photo.BMI = cloneFloat(e.Photo.BMI)
		photo.WHR = cloneFloat(e.Photo.WHR)
		photo.ExerciseProgram = append([]ExerciseDay(nil), e.Photo.ExerciseProgram...)
		photo.DietList = append([]MealDay(nil), e.Photo.DietList...)
		c.Photo = &photo
	}
	return &c
}

func (d *DietPlan) clone() *DietPlan {
	if d == nil {
		return nil
	}
	c := *d
	c.Days = append([]MealDay(nil), d.Days...)
	c.Recommendations = append([]string(nil), d.Recommendations...)
	return &c
}

func cloneFloat(v *float64) *float64 {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func cloneInt(v *int) *int {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func cloneString(v *string) *string {
	if v == nil {
		return nil
	}
	c := *v
	return &c
}

func cloneRaw(raw json.RawMessage) json.RawMessage {
	if raw == nil {
		return nil
	}
	return append(json.RawMessage(nil), raw...)
}

// isProvided reports whether a raw JSON field carries an actual value.
func isProvided(raw json.RawMessage) bool {
	switch string(raw) {
	case "", "null", "{}", "[]", `""`:
		return false
	default:
		return true
	}
}
