package gemini

import (
	"context"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"

	"github.com/google/generative-ai-go/genai"
	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"

	"github.com/2beens/healthstats/internal/bodycomp"
	"github.com/2beens/healthstats/internal/profile"
	"github.com/2beens/healthstats/internal/telemetry/tracing"
)

//go:generate mockgen -source=$GOFILE -destination=mocks_test.go -package=gemini_test

type textGenerator interface {
	GenerateText(ctx context.Context, operation string, parts []genai.Part) (string, error)
}

const (
	opPhotoAnalysis   = "photo_analysis"
	opExerciseProgram = "exercise_program"
	opPhotoDietList   = "photo_diet_list"
)

// photoAnalysisResponse is the JSON the analysis prompt asks for.
// body_fat is sometimes a number and sometimes text.
type photoAnalysisResponse struct {
	BMI        *float64        `json:"bmi"`
	BMIComment string          `json:"bmi_comment"`
	WHR        *float64        `json:"whr"`
	WHRComment string          `json:"whr_comment"`
	BodyFat    json.RawMessage `json:"body_fat"`
	Analysis   string          `json:"analysis"`
}

type exerciseProgramResponse struct {
	Days []profile.ExerciseDay `json:"days"`
}

type mealDaysResponse struct {
	Days []profile.MealDay `json:"days"`
}

// PhotoAnalyzer estimates body fat from a photo plus the profile
// measurements, and asks for a weekly exercise program and meal list.
type PhotoAnalyzer struct {
	generator textGenerator
}

func NewPhotoAnalyzer(generator textGenerator) *PhotoAnalyzer {
	return &PhotoAnalyzer{
		generator: generator,
	}
}

// photoSubject is the profile data the prompts are built from.
type photoSubject struct {
	heightCm, weightKg, waistCm, hipCm float64
	age                                int
	gender                             string
	bmi, whr                           float64
	bmiComment, whrComment             string
}

func newPhotoSubject(p *profile.UserProfile) photoSubject {
	m := p.Measurements
	s := photoSubject{
		heightCm: *m.HeightCm,
		weightKg: *m.WeightKg,
		waistCm:  *m.WaistCm,
		hipCm:    *m.HipCm,
		age:      *p.Age,
		gender:   *p.Gender,
	}
	if bmi := bodycomp.ComputeBMI(m.WeightKg, m.HeightCm); bmi != nil {
		s.bmi = *bmi
	}
	if whr := bodycomp.ComputeWHR(m.WaistCm, m.HipCm); whr != nil {
		s.whr = *whr
	}
	s.bmiComment = bmiCategory(s.bmi)
	s.whrComment = whrCategory(s.whr, s.gender)
	return s
}

func bmiCategory(bmi float64) string {
	switch {
	case bmi < 18.5:
		return "Underweight"
	case bmi < 25:
		return "Normal"
	case bmi < 30:
		return "Overweight"
	default:
		return "Obese"
	}
}

func whrCategory(whr float64, gender string) string {
	threshold := 1.0
	if g, ok := bodycomp.ParseGender(gender); ok && g == bodycomp.GenderFemale {
		threshold = 0.85
	}
	if whr > threshold {
		return "Apple shape (higher risk)"
	}
	return "Pear shape (lower risk)"
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func photoAnalysisPrompt(s photoSubject) string {
	var sb strings.Builder
	sb.WriteString("Evaluate the person described below together with the attached photo. ")
	sb.WriteString("Answer only in the JSON format given below.\n\n")
	fmt.Fprintf(&sb, "- Height: %s cm\n", formatNumber(s.heightCm))
	fmt.Fprintf(&sb, "- Weight: %s kg\n", formatNumber(s.weightKg))
	fmt.Fprintf(&sb, "- Age: %d\n", s.age)
	fmt.Fprintf(&sb, "- Gender: %s\n", s.gender)
	fmt.Fprintf(&sb, "- Waist circumference: %s cm\n", formatNumber(s.waistCm))
	fmt.Fprintf(&sb, "- Hip circumference: %s cm\n", formatNumber(s.hipCm))
	fmt.Fprintf(&sb, "- Body Mass Index (BMI): %s -> %s\n", formatNumber(s.bmi), s.bmiComment)
	fmt.Fprintf(&sb, "- Waist to Hip Ratio (WHR): %s -> %s\n\n", formatNumber(s.whr), s.whrComment)
	sb.WriteString(`JSON format:
{
  "bmi": <float>,
  "bmi_comment": "<string>",
  "whr": <float>,
  "whr_comment": "<string>",
  "body_fat": "<string, in %>",
  "analysis": "<string, a short 3 sentence assessment>"
}

Return only this JSON. Do not add any explanation, formatting or markdown. `)
	sb.WriteString("Return the body fat percentage as a single number in %.")
	return sb.String()
}

func exerciseProgramPrompt(s photoSubject) string {
	var sb strings.Builder
	sb.WriteString("Create a personal 7 day exercise program for the person below:\n")
	fmt.Fprintf(&sb, "- Age: %d\n", s.age)
	fmt.Fprintf(&sb, "- Gender: %s\n", s.gender)
	fmt.Fprintf(&sb, "- BMI: %s (%s)\n", formatNumber(s.bmi), s.bmiComment)
	fmt.Fprintf(&sb, "- WHR: %s (%s)\n", formatNumber(s.whr), s.whrComment)
	sb.WriteString(`The program should include cardio, stretching and weight training.
Return the result in this JSON format:
{
  "days": [
    {"day": "Monday", "exercise": "<string>"},
    ...
  ]
}`)
	return sb.String()
}

func photoDietListPrompt() string {
	return `Goal: lose weight and build a healthy lifestyle. For every day of the week give:
- Breakfast
- Lunch
- Dinner
- Snack
- Total daily calories (1500-2200 kcal) in the "total_calories" field.

JSON format:
{
  "days": [
    {
      "day": "Monday",
      "breakfast": "<string>",
      "lunch": "<string>",
      "dinner": "<string>",
      "snack": "<string>",
      "total_calories": <float>
    },
    ...
  ]
}`
}

// AnalyzePhoto expects a profile that passed profile.ValidateForPhotoAnalysis.
// A reply that isn't valid JSON leaves the matching fields empty;
// generation failures are returned.
func (a *PhotoAnalyzer) AnalyzePhoto(ctx context.Context, p *profile.UserProfile, photo profile.Photo) (_ *profile.PhotoAnalysis, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "gemini.photo.analyze")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user_id", p.UserID))

	if err := profile.ValidateForPhotoAnalysis(p); err != nil {
		return nil, err
	}
	subject := newPhotoSubject(p)

	mimeType := photo.MIMEType
	if mimeType == "" {
		mimeType = "image/jpeg"
	}
	analysisText, err := a.generator.GenerateText(ctx, opPhotoAnalysis, []genai.Part{
		genai.Text(photoAnalysisPrompt(subject)),
		genai.Blob{MIMEType: mimeType, Data: photo.Data},
	})
	if err != nil {
		return nil, err
	}
	var analysisResp photoAnalysisResponse
	if !decodeJSONObject(analysisText, &analysisResp) {
		log.Warnf("photo analysis for [%s]: no usable JSON in response", p.UserID)
	}

	exerciseText, err := a.generator.GenerateText(ctx, opExerciseProgram, []genai.Part{
		genai.Text(exerciseProgramPrompt(subject)),
	})
	if err != nil {
		return nil, err
	}
	var exerciseResp exerciseProgramResponse
	if !decodeJSONObject(exerciseText, &exerciseResp) {
		log.Warnf("exercise program for [%s]: no usable JSON in response", p.UserID)
	}

	dietText, err := a.generator.GenerateText(ctx, opPhotoDietList, []genai.Part{
		genai.Text(photoDietListPrompt()),
	})
	if err != nil {
		return nil, err
	}
	var dietResp mealDaysResponse
	if !decodeJSONObject(dietText, &dietResp) {
		log.Warnf("photo diet list for [%s]: no usable JSON in response", p.UserID)
	}

	return buildPhotoAnalysis(subject, analysisResp, exerciseResp.Days, dietResp.Days), nil
}

// buildPhotoAnalysis falls back to the locally computed BMI and WHR when
// the model leaves them out.
func buildPhotoAnalysis(
	subject photoSubject,
	resp photoAnalysisResponse,
	exerciseDays []profile.ExerciseDay,
	mealDays []profile.MealDay,
) *profile.PhotoAnalysis {
	assessment := profile.PhotoAssessment{
		BMI:             resp.BMI,
		BMIComment:      resp.BMIComment,
		WHR:             resp.WHR,
		WHRComment:      resp.WHRComment,
		ExerciseProgram: exerciseDays,
		DietList:        mealDays,
	}
	if assessment.BMI == nil {
		assessment.BMI = bodycomp.Float(subject.bmi)
	}
	if assessment.BMIComment == "" {
		assessment.BMIComment = subject.bmiComment
	}
	if assessment.WHR == nil {
		assessment.WHR = bodycomp.Float(subject.whr)
	}
	if assessment.WHRComment == "" {
		assessment.WHRComment = subject.whrComment
	}

	return &profile.PhotoAnalysis{
		BodyFatPercent: normalizeBodyFat(resp.BodyFat),
		Analysis:       resp.Analysis,
		Assessment:     assessment,
	}
}
