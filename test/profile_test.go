package test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/brianvoe/gofakeit/v6"

	"github.com/2beens/healthstats/internal/bodycomp"
	"github.com/2beens/healthstats/internal/profile"
)

func (s *IntegrationTestSuite) TestProfile_Unauthorized() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	status, _ := s.doRequest(ctx, "GET", "/profile/"+gofakeit.UUID(), nil, false)
	s.Equal(http.StatusUnauthorized, status)
}

func (s *IntegrationTestSuite) TestProfile_NotFound() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	userID := gofakeit.UUID()
	status, body := s.doRequest(ctx, "GET", "/profile/"+userID, nil, true)
	s.Equal(http.StatusNotFound, status)
	s.Contains(string(body), fmt.Sprintf("No profile found for user %s", userID))
}

func (s *IntegrationTestSuite) TestProfile_CreateTrackAndRead() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	userID := gofakeit.UUID()
	update := profile.ProfileUpdate{
		Age:    intPtr(gofakeit.IntRange(18, 70)),
		Gender: strPtr("male"),
		Measurements: &bodycomp.Measurements{
			HeightCm: floatPtr(180),
			WeightKg: floatPtr(80),
			WaistCm:  floatPtr(90),
			HipCm:    floatPtr(95),
			NeckCm:   floatPtr(40),
		},
		Lifestyle: json.RawMessage(fmt.Sprintf(`{"activity_level":%q}`, gofakeit.RandomString([]string{"low", "moderate", "high"}))),
	}

	status, body := s.doRequest(ctx, "POST", "/profile/"+userID, update, true)
	s.Require().Equal(http.StatusOK, status, string(body))

	var updateResp profile.UpdateProfileResponse
	s.Require().NoError(json.Unmarshal(body, &updateResp))
	s.Equal("Profile updated successfully", updateResp.Message)
	s.Require().NotNil(updateResp.Profile.CalculatedMetrics.BMI)
	s.Equal(24.69, *updateResp.Profile.CalculatedMetrics.BMI)
	s.Equal(0.95, *updateResp.Profile.CalculatedMetrics.WHR)
	s.Require().NotNil(updateResp.Profile.BodyFatEstimates.FromMeasurements)
	s.Equal(profile.FormulaNavy, updateResp.Profile.BodyFatEstimates.FromMeasurements.FormulaUsed)

	notes := gofakeit.Sentence(5)
	status, body = s.doRequest(ctx, "POST", "/track-progress/"+userID, profile.ProgressUpdate{
		WeightKg: floatPtr(78),
		Measurements: &bodycomp.Measurements{
			WaistCm: floatPtr(88),
			HipCm:   floatPtr(95),
			NeckCm:  floatPtr(40),
		},
		Notes: notes,
	}, true)
	s.Require().Equal(http.StatusOK, status, string(body))

	status, body = s.doRequest(ctx, "GET", "/profile/"+userID, nil, true)
	s.Require().Equal(http.StatusOK, status)

	var stored profile.UserProfile
	s.Require().NoError(json.Unmarshal(body, &stored))
	s.Equal(userID, stored.UserID)
	s.Require().Len(stored.ProgressHistory, 1)
	s.Equal(78.0, stored.ProgressHistory[0].WeightKg)
	s.Equal(notes, stored.ProgressHistory[0].Notes)
	s.Equal(78.0, *stored.Measurements.WeightKg)
	// height carried over from the profile
	s.Equal(180.0, *stored.Measurements.HeightCm)
	s.Equal(88.0, *stored.Measurements.WaistCm)

	// the document is what ends up in postgres
	var data []byte
	err := s.DB.QueryRowContext(ctx, `SELECT data FROM user_profile WHERE user_id = $1`, userID).Scan(&data)
	s.Require().NoError(err)
	var fromDB profile.UserProfile
	s.Require().NoError(json.Unmarshal(data, &fromDB))
	s.Len(fromDB.ProgressHistory, 1)
	s.Equal(*stored.CalculatedMetrics.BMI, *fromDB.CalculatedMetrics.BMI)
}

func (s *IntegrationTestSuite) TestProfile_TrackProgressWithoutProfile() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	status, _ := s.doRequest(ctx, "POST", "/track-progress/"+gofakeit.UUID(), profile.ProgressUpdate{
		WeightKg: floatPtr(70),
	}, true)
	s.Equal(http.StatusNotFound, status)
}

func (s *IntegrationTestSuite) TestProfile_MissingWeightRejected() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	userID := gofakeit.UUID()
	status, _ := s.doRequest(ctx, "POST", "/profile/"+userID, profile.ProfileUpdate{
		Age: intPtr(40),
	}, true)
	s.Require().Equal(http.StatusOK, status)

	status, _ = s.doRequest(ctx, "POST", "/track-progress/"+userID, profile.ProgressUpdate{
		Measurements: &bodycomp.Measurements{HeightCm: floatPtr(170)},
		Notes:        "forgot to weigh in",
	}, true)
	s.Equal(http.StatusBadRequest, status)

	status, body := s.doRequest(ctx, "GET", "/profile/"+userID, nil, true)
	s.Require().Equal(http.StatusOK, status)
	var stored profile.UserProfile
	s.Require().NoError(json.Unmarshal(body, &stored))
	s.Empty(stored.ProgressHistory)
}

func (s *IntegrationTestSuite) TestDietPlan_GeminiNotConfigured() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	status, body := s.doRequest(ctx, "POST", "/generate-diet-plan/"+gofakeit.UUID(), nil, true)
	s.Equal(http.StatusInternalServerError, status)
	s.Contains(string(body), "Gemini model not initialized.")

	status, body = s.doRequest(ctx, "GET", "/test-gemini", nil, true)
	s.Equal(http.StatusInternalServerError, status)
	s.Contains(string(body), "GEMINI_API_KEY not found")
}
