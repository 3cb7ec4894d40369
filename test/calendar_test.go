package test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/brianvoe/gofakeit/v6"

	"github.com/2beens/healthstats/internal/calendar"
	"github.com/2beens/healthstats/internal/profile"
)

func (s *IntegrationTestSuite) TestCalendar_AuthorizeRedirect() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, "GET", serverEndpoint+"/authorize-google-calendar/"+gofakeit.UUID(), nil)
	s.Require().NoError(err)

	resp, err := s.httpClient.Do(req)
	s.Require().NoError(err)
	s.Require().NoError(resp.Body.Close())
	s.Require().Equal(http.StatusFound, resp.StatusCode)

	location, err := url.Parse(resp.Header.Get("Location"))
	s.Require().NoError(err)
	s.Equal("accounts.google.com", location.Host)
	s.Equal("test-client-id.apps.googleusercontent.com", location.Query().Get("client_id"))
	s.Equal(testRedirectURI, location.Query().Get("redirect_uri"))
	s.Equal("offline", location.Query().Get("access_type"))
	s.NotEmpty(location.Query().Get("state"))
}

func (s *IntegrationTestSuite) TestCalendar_CallbackUnknownState() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	req, err := http.NewRequestWithContext(ctx, "GET", serverEndpoint+"/oauth2callback?state=forged&code=abc", nil)
	s.Require().NoError(err)

	resp, err := s.httpClient.Do(req)
	s.Require().NoError(err)
	s.Require().NoError(resp.Body.Close())
	s.Equal(http.StatusBadRequest, resp.StatusCode)
}

func (s *IntegrationTestSuite) TestCalendar_ScheduleWithoutAuthorization() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	userID := gofakeit.UUID()
	status, _ := s.doRequest(ctx, "POST", "/profile/"+userID, profile.ProfileUpdate{
		Age: intPtr(35),
	}, true)
	s.Require().Equal(http.StatusOK, status)

	status, body := s.doRequest(ctx, "POST", "/profile/"+userID+"/schedule-checkup", calendar.ScheduleCheckupRequest{
		DayOfWeek: "Monday",
		TimeOfDay: "09:00",
	}, true)
	s.Require().Equal(http.StatusUnauthorized, status)

	var resp calendar.AuthorizationNeededResponse
	s.Require().NoError(json.Unmarshal(body, &resp))
	s.True(resp.AuthorizationNeeded)
	s.Equal(serverEndpoint+"/authorize-google-calendar/"+userID, resp.AuthorizationURL)

	status, _ = s.doRequest(ctx, "POST", "/profile/"+gofakeit.UUID()+"/schedule-checkup", calendar.ScheduleCheckupRequest{
		DayOfWeek: "Monday",
		TimeOfDay: "09:00",
	}, true)
	s.Equal(http.StatusNotFound, status)
}
