package calendar

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"net/url"
	"strings"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/2beens/healthstats/internal/profile"
	"github.com/2beens/healthstats/internal/telemetry/metrics"
	"github.com/2beens/healthstats/internal/telemetry/tracing"
	"github.com/2beens/healthstats/pkg"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=calendar_test

type stateStore interface {
	NewState(ctx context.Context, userID string) (string, error)
	Consume(ctx context.Context, state string) (string, error)
}

type checkupScheduler interface {
	AuthCodeURL(state string) string
	Exchange(ctx context.Context, userID, code string) error
	ScheduleWeeklyCheckup(ctx context.Context, userID, dayOfWeek, timeOfDay, previousEventID string) (string, error)
}

type profileService interface {
	Get(ctx context.Context, userID string) (*profile.UserProfile, error)
	SetCheckupPreference(ctx context.Context, userID string, pref profile.CheckupPreference) error
}

type ScheduleCheckupRequest struct {
	DayOfWeek string `json:"day_of_week"`
	TimeOfDay string `json:"time_of_day"`
}

type ScheduleCheckupResponse struct {
	Message string `json:"message"`
	EventID string `json:"event_id"`
}

type AuthorizationNeededResponse struct {
	Error               string `json:"error"`
	AuthorizationNeeded bool   `json:"authorization_needed"`
	AuthorizationURL    string `json:"authorization_url"`
}

var authStatusTemplate = template.Must(template.New("auth_status").Parse(`<html>
    <head>
        <title>{{if .Success}}Authorization Successful{{else}}Authorization Failed{{end}}</title>
        <style>
            body { font-family: Arial, sans-serif; text-align: center; padding: 50px; }
            .success { color: #28a745; }
            .error { color: #dc3545; }
            .message { margin: 20px 0; }
        </style>
    </head>
    <body>
    {{- if .Success}}
        <h1 class="success">Google Calendar Authorization Successful!</h1>
        <p class="message">You can now close this tab and return to the application.</p>
    {{- else}}
        <h1 class="error">Google Calendar Authorization Failed</h1>
        <p class="message">Error: {{.Message}}</p>
        <p>Please try again or contact support.</p>
    {{- end}}
    </body>
</html>
`))

type Handler struct {
	states         stateStore
	scheduler      checkupScheduler
	profiles       profileService
	publicBaseURL  string
	metricsManager *metrics.Manager
}

type NewHandlerParams struct {
	States stateStore
	// Scheduler is nil when the OAuth client config is missing or invalid.
	Scheduler      checkupScheduler
	Profiles       profileService
	PublicBaseURL  string
	MetricsManager *metrics.Manager
}

func NewHandler(params NewHandlerParams) *Handler {
	return &Handler{
		states:         params.States,
		scheduler:      params.Scheduler,
		profiles:       params.Profiles,
		publicBaseURL:  strings.TrimSuffix(params.PublicBaseURL, "/"),
		metricsManager: params.MetricsManager,
	}
}

// PublicBaseURL derives the externally visible base URL from the OAuth redirect URI.
func PublicBaseURL(redirectURI string) string {
	u, err := url.Parse(redirectURI)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return ""
	}
	return u.Scheme + "://" + u.Host
}

func (handler *Handler) authorizationURL(userID string) string {
	return handler.publicBaseURL + "/authorize-google-calendar/" + url.PathEscape(userID)
}

func authStatusRedirect(w http.ResponseWriter, r *http.Request, status, message string) {
	q := url.Values{}
	q.Set("status", status)
	if message != "" {
		q.Set("message", message)
	}
	http.Redirect(w, r, "/auth_status?"+q.Encode(), http.StatusFound)
}

func (handler *Handler) HandleAuthorize(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.calendar.authorize")
	defer span.End()

	userID := mux.Vars(r)["user_id"]
	if userID == "" {
		pkg.WriteJSONError(w, "user_id is required to start authorization", http.StatusBadRequest)
		return
	}

	if handler.scheduler == nil {
		pkg.WriteJSONError(w, "Failed to start Google authentication flow. Check server logs.", http.StatusInternalServerError)
		return
	}

	state, err := handler.states.NewState(ctx, userID)
	if err != nil {
		log.Errorf("authorize calendar [%s]: %s", userID, err)
		pkg.WriteJSONError(w, "Failed to initialize OAuth state", http.StatusInternalServerError)
		return
	}

	http.Redirect(w, r, handler.scheduler.AuthCodeURL(state), http.StatusFound)
}

func (handler *Handler) HandleOAuthCallback(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.calendar.oauthcallback")
	defer span.End()

	query := r.URL.Query()
	state := query.Get("state")
	if state == "" {
		pkg.WriteJSONError(w, "OAuth callback error: Session state missing and not found in URL.", http.StatusBadRequest)
		return
	}

	userID, err := handler.states.Consume(ctx, state)
	if err != nil {
		if errors.Is(err, ErrUnknownState) {
			pkg.WriteJSONError(w, "OAuth callback error: State mismatch.", http.StatusBadRequest)
			return
		}
		log.Errorf("oauth callback, consume state: %s", err)
		pkg.WriteJSONError(w, "OAuth callback error: "+err.Error(), http.StatusInternalServerError)
		return
	}

	if authErr := query.Get("error"); authErr != "" {
		log.Warnf("oauth callback for [%s]: google returned error: %s", userID, authErr)
		authStatusRedirect(w, r, "error", authErr)
		return
	}

	if handler.scheduler == nil {
		authStatusRedirect(w, r, "error", "processing_failed")
		return
	}
	if err := handler.scheduler.Exchange(ctx, userID, query.Get("code")); err != nil {
		log.Errorf("oauth callback for [%s]: %s", userID, err)
		authStatusRedirect(w, r, "error", "processing_failed")
		return
	}

	log.Printf("google calendar authorized for user [%s]", userID)
	authStatusRedirect(w, r, "success", "")
}

func (handler *Handler) HandleAuthStatus(w http.ResponseWriter, r *http.Request) {
	message := r.URL.Query().Get("message")
	if message == "" {
		message = "Unknown error"
	}

	var buf bytes.Buffer
	if err := authStatusTemplate.Execute(&buf, struct {
		Success bool
		Message string
	}{
		Success: r.URL.Query().Get("status") == "success",
		Message: message,
	}); err != nil {
		log.Errorf("render auth status page: %s", err)
		pkg.WriteResponse(w, pkg.ContentType.HTML, "<h1>Error</h1><p>An unexpected error occurred.</p>", http.StatusInternalServerError)
		return
	}

	pkg.WriteResponseBytes(w, pkg.ContentType.HTML, buf.Bytes(), http.StatusOK)
}

func (handler *Handler) HandleScheduleCheckup(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.calendar.schedulecheckup")
	defer span.End()

	userID := mux.Vars(r)["user_id"]
	if userID == "" {
		pkg.WriteJSONError(w, "user_id is required", http.StatusBadRequest)
		return
	}

	var req ScheduleCheckupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.DayOfWeek == "" || req.TimeOfDay == "" {
		pkg.WriteJSONError(w, "day_of_week and time_of_day are required.", http.StatusBadRequest)
		return
	}

	p, err := handler.profiles.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, profile.ErrProfileNotFound) {
			pkg.WriteJSONError(w, fmt.Sprintf("No profile for %s", userID), http.StatusNotFound)
			return
		}
		log.Errorf("schedule checkup [%s], load profile: %s", userID, err)
		pkg.WriteJSONError(w, "Failed to load profile for scheduling", http.StatusInternalServerError)
		return
	}

	if handler.scheduler == nil {
		handler.writeAuthorizationNeeded(w, userID, "Google Calendar not authorized or token invalid.", http.StatusUnauthorized)
		return
	}

	var previousEventID string
	if p.CheckupPreference != nil {
		previousEventID = p.CheckupPreference.GoogleCalendarEventID
	}

	eventID, err := handler.scheduler.ScheduleWeeklyCheckup(ctx, userID, req.DayOfWeek, req.TimeOfDay, previousEventID)
	switch {
	case errors.Is(err, ErrNotAuthorized):
		handler.writeAuthorizationNeeded(w, userID, "Google Calendar not authorized or token invalid.", http.StatusUnauthorized)
		return
	case errors.Is(err, ErrInvalidSchedule):
		pkg.WriteJSONError(w, err.Error(), http.StatusBadRequest)
		return
	case err != nil:
		log.Errorf("schedule checkup [%s]: %s", userID, err)
		handler.writeAuthorizationNeeded(w, userID, "Failed to schedule check-up. Re-authorization might be needed.", http.StatusInternalServerError)
		return
	}

	if err := handler.profiles.SetCheckupPreference(ctx, userID, profile.CheckupPreference{
		DayOfWeek:             req.DayOfWeek,
		TimeOfDay:             req.TimeOfDay,
		GoogleCalendarEventID: eventID,
	}); err != nil {
		log.Errorf("schedule checkup [%s], save preference: %s", userID, err)
		pkg.WriteJSONResponse(w, map[string]string{
			"message": "Check-up scheduled, but failed to update profile. Event ID: " + eventID,
		}, http.StatusInternalServerError)
		return
	}

	if handler.metricsManager != nil {
		handler.metricsManager.CounterCheckupsScheduled.Inc()
	}

	pkg.WriteJSONResponse(w, ScheduleCheckupResponse{
		Message: "Weekly check-up scheduled in your Google Calendar.",
		EventID: eventID,
	}, http.StatusOK)
}

func (handler *Handler) writeAuthorizationNeeded(w http.ResponseWriter, userID, message string, status int) {
	pkg.WriteJSONResponse(w, AuthorizationNeededResponse{
		Error:               message,
		AuthorizationNeeded: true,
		AuthorizationURL:    handler.authorizationURL(userID),
	}, status)
}
