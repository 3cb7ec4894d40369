package gemini

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/generative-ai-go/genai"
	"go.opentelemetry.io/otel/attribute"

	"github.com/2beens/healthstats/internal/profile"
	"github.com/2beens/healthstats/internal/telemetry/tracing"
)

const opDietPlan = "diet_plan"

var ErrInvalidDietPlan = errors.New("gemini diet plan response is not valid JSON")

type dietPlanResponse struct {
	Summary         string            `json:"summary"`
	DailyCalories   float64           `json:"daily_calories"`
	Days            []profile.MealDay `json:"days"`
	Recommendations []string          `json:"recommendations"`
	Notes           string            `json:"notes"`
}

type DietPlanner struct {
	generator textGenerator
	Now       func() time.Time
}

func NewDietPlanner(generator textGenerator) *DietPlanner {
	return &DietPlanner{
		generator: generator,
		Now:       time.Now,
	}
}

func dietPlanPrompt(dietContextJSON []byte, contextMsg string) string {
	var sb strings.Builder
	sb.WriteString("You are a nutrition assistant. Create a personal 7 day diet plan for the user whose profile is given below as JSON.\n")
	sb.WriteString("Respect the lifestyle details (activity level, goals, dietary restrictions) when present.\n")
	fmt.Fprintf(&sb, "Body composition note: %s\n\n", contextMsg)
	sb.WriteString("User profile:\n")
	sb.Write(dietContextJSON)
	sb.WriteString(`

Answer only with JSON in this format:
{
  "summary": "<string, 2-3 sentences>",
  "daily_calories": <float>,
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
  ],
  "recommendations": ["<string>", ...],
  "notes": "<string>"
}
Do not add any explanation, formatting or markdown.`)
	return sb.String()
}

func (d *DietPlanner) GenerateDietPlan(ctx context.Context, dietContext profile.DietPlanContext) (_ *profile.DietPlan, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "gemini.dietplan.generate")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user_id", dietContext.UserID))

	dietContextJSON, err := json.MarshalIndent(dietContext, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshal diet plan context: %w", err)
	}

	text, err := d.generator.GenerateText(ctx, opDietPlan, []genai.Part{
		genai.Text(dietPlanPrompt(dietContextJSON, dietContext.BodyCompositionAssessmentInfo)),
	})
	if err != nil {
		return nil, err
	}

	var resp dietPlanResponse
	if !decodeJSONObject(text, &resp) {
		return nil, ErrInvalidDietPlan
	}

	return &profile.DietPlan{
		Summary:         resp.Summary,
		DailyCalories:   resp.DailyCalories,
		Days:            resp.Days,
		Recommendations: resp.Recommendations,
		NotesFromGemini: resp.Notes,
		GeneratedAt:     d.Now().UTC(),
	}, nil
}
