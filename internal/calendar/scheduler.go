package calendar

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"golang.org/x/oauth2"
	gcalendar "google.golang.org/api/calendar/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"github.com/2beens/healthstats/internal/telemetry/tracing"
)

type tokenStore interface {
	SaveGoogleAuthCreds(ctx context.Context, userID string, creds []byte) error
	GoogleAuthCreds(ctx context.Context, userID string) ([]byte, error)
}

const (
	primaryCalendarID = "primary"
	checkupSummary    = "Diet App: Weekly Check-in"
	checkupDesc       = "Time to update your progress in the Diet App!"
	checkupDuration   = 30 * time.Minute
)

var (
	ErrNotAuthorized   = errors.New("google calendar not authorized or token invalid")
	ErrInvalidSchedule = errors.New("invalid check-up schedule")
)

var byDayCodes = map[string]string{
	"SUNDAY":    "SU",
	"MONDAY":    "MO",
	"TUESDAY":   "TU",
	"WEDNESDAY": "WE",
	"THURSDAY":  "TH",
	"FRIDAY":    "FR",
	"SATURDAY":  "SA",
}

var weekdays = map[string]time.Weekday{
	"SU": time.Sunday,
	"MO": time.Monday,
	"TU": time.Tuesday,
	"WE": time.Wednesday,
	"TH": time.Thursday,
	"FR": time.Friday,
	"SA": time.Saturday,
}

type NewSchedulerParams struct {
	OAuthConfig *oauth2.Config
	Tokens      tokenStore
	// HTTPClient is used for token exchange/refresh and as the base
	// transport of calendar API calls.
	HTTPClient *http.Client
	// APIOptions are appended when building the calendar service.
	APIOptions []option.ClientOption
}

type Scheduler struct {
	oauthConfig *oauth2.Config
	tokens      tokenStore
	httpClient  *http.Client
	apiOptions  []option.ClientOption

	Now func() time.Time
}

func NewScheduler(params NewSchedulerParams) *Scheduler {
	httpClient := params.HTTPClient
	if httpClient == nil {
		httpClient = http.DefaultClient
	}

	return &Scheduler{
		oauthConfig: params.OAuthConfig,
		tokens:      params.Tokens,
		httpClient:  httpClient,
		apiOptions:  params.APIOptions,
		Now:         time.Now,
	}
}

func (s *Scheduler) oauthContext(ctx context.Context) context.Context {
	return context.WithValue(ctx, oauth2.HTTPClient, s.httpClient)
}

// AuthCodeURL is the Google consent page URL, asking for offline access.
func (s *Scheduler) AuthCodeURL(state string) string {
	return s.oauthConfig.AuthCodeURL(
		state,
		oauth2.AccessTypeOffline,
		oauth2.ApprovalForce,
		oauth2.SetAuthURLParam("include_granted_scopes", "true"),
	)
}

// Exchange trades the authorization code for a token and stores it with the user's profile.
func (s *Scheduler) Exchange(ctx context.Context, userID, code string) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "calendar.oauth.exchange")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user_id", userID))

	tok, err := s.oauthConfig.Exchange(s.oauthContext(ctx), code)
	if err != nil {
		return fmt.Errorf("exchange oauth code: %w", err)
	}

	data, err := json.Marshal(tok)
	if err != nil {
		return fmt.Errorf("marshal oauth token: %w", err)
	}
	if err := s.tokens.SaveGoogleAuthCreds(ctx, userID, data); err != nil {
		return fmt.Errorf("save oauth token: %w", err)
	}
	return nil
}

func (s *Scheduler) loadToken(ctx context.Context, userID string) (*oauth2.Token, error) {
	creds, err := s.tokens.GoogleAuthCreds(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("load google creds: %w", err)
	}
	if len(creds) == 0 {
		return nil, ErrNotAuthorized
	}

	var tok oauth2.Token
	if err := json.Unmarshal(creds, &tok); err != nil {
		log.Errorf("stored google creds for [%s] unreadable: %s", userID, err)
		return nil, ErrNotAuthorized
	}
	if !tok.Valid() && tok.RefreshToken == "" {
		return nil, ErrNotAuthorized
	}
	return &tok, nil
}

func (s *Scheduler) calendarService(ctx context.Context, userID string) (*gcalendar.Service, error) {
	tok, err := s.loadToken(ctx, userID)
	if err != nil {
		return nil, err
	}

	oauthCtx := s.oauthContext(ctx)
	tokenSource := newPersistingTokenSource(ctx, userID, tok, s.oauthConfig.TokenSource(oauthCtx, tok), s.tokens)
	client := oauth2.NewClient(oauthCtx, tokenSource)

	opts := append([]option.ClientOption{option.WithHTTPClient(client)}, s.apiOptions...)
	svc, err := gcalendar.NewService(ctx, opts...)
	if err != nil {
		return nil, fmt.Errorf("create calendar service: %w", err)
	}
	return svc, nil
}

// ScheduleWeeklyCheckup creates the recurring check-in event and returns
// its ID. A previous event, if any, is deleted first.
func (s *Scheduler) ScheduleWeeklyCheckup(
	ctx context.Context,
	userID, dayOfWeek, timeOfDay, previousEventID string,
) (_ string, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "calendar.checkup.schedule")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(
		attribute.String("user_id", userID),
		attribute.String("day_of_week", dayOfWeek),
		attribute.String("time_of_day", timeOfDay),
	)

	byDay, ok := byDayCodes[strings.ToUpper(strings.TrimSpace(dayOfWeek))]
	if !ok {
		return "", fmt.Errorf("%w: unknown day of week %q", ErrInvalidSchedule, dayOfWeek)
	}
	hour, minute, err := parseTimeOfDay(timeOfDay)
	if err != nil {
		return "", err
	}

	svc, err := s.calendarService(ctx, userID)
	if err != nil {
		return "", err
	}

	if previousEventID != "" {
		if err := svc.Events.Delete(primaryCalendarID, previousEventID).Context(ctx).Do(); err != nil {
			if notAuthorized(err) {
				return "", ErrNotAuthorized
			}
			log.Warnf("delete previous check-up event %s for [%s]: %s", previousEventID, userID, err)
		} else {
			log.Debugf("previous check-up event %s deleted for [%s]", previousEventID, userID)
		}
	}

	start := nextOccurrence(s.Now(), weekdays[byDay], hour, minute)
	created, err := svc.Events.Insert(primaryCalendarID, checkupEvent(start, byDay)).Context(ctx).Do()
	if err != nil {
		if notAuthorized(err) {
			return "", ErrNotAuthorized
		}
		return "", fmt.Errorf("insert check-up event: %w", err)
	}

	log.Debugf("check-up event created for [%s]: %s", userID, created.HtmlLink)
	return created.Id, nil
}

func notAuthorized(err error) bool {
	var retrieveErr *oauth2.RetrieveError
	if errors.As(err, &retrieveErr) {
		return true
	}
	var apiErr *googleapi.Error
	if errors.As(err, &apiErr) {
		return apiErr.Code == http.StatusUnauthorized || apiErr.Code == http.StatusForbidden
	}
	return false
}

func parseTimeOfDay(timeOfDay string) (hour, minute int, err error) {
	parts := strings.Split(strings.TrimSpace(timeOfDay), ":")
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("%w: time of day %q not in HH:MM format", ErrInvalidSchedule, timeOfDay)
	}
	hour, hErr := strconv.Atoi(parts[0])
	minute, mErr := strconv.Atoi(parts[1])
	if hErr != nil || mErr != nil || hour < 0 || hour > 23 || minute < 0 || minute > 59 {
		return 0, 0, fmt.Errorf("%w: time of day %q not in HH:MM format", ErrInvalidSchedule, timeOfDay)
	}
	return hour, minute, nil
}

// nextOccurrence is the next weekday at hour:minute UTC strictly after now.
// A slot later today counts, one already passed moves to next week.
func nextOccurrence(now time.Time, weekday time.Weekday, hour, minute int) time.Time {
	now = now.UTC()
	daysAhead := (int(weekday) - int(now.Weekday()) + 7) % 7
	if daysAhead == 0 && (now.Hour() > hour || (now.Hour() == hour && now.Minute() >= minute)) {
		daysAhead = 7
	}
	return time.Date(now.Year(), now.Month(), now.Day()+daysAhead, hour, minute, 0, 0, time.UTC)
}

func checkupEvent(start time.Time, byDay string) *gcalendar.Event {
	end := start.Add(checkupDuration)
	return &gcalendar.Event{
		Summary:     checkupSummary,
		Description: checkupDesc,
		Start: &gcalendar.EventDateTime{
			DateTime: start.Format(time.RFC3339),
			TimeZone: "UTC",
		},
		End: &gcalendar.EventDateTime{
			DateTime: end.Format(time.RFC3339),
			TimeZone: "UTC",
		},
		Recurrence: []string{"RRULE:FREQ=WEEKLY;BYDAY=" + byDay},
		Reminders: &gcalendar.EventReminders{
			UseDefault: false,
			Overrides: []*gcalendar.EventReminder{
				{Method: "popup", Minutes: 60},
				{Method: "popup", Minutes: 10},
			},
			ForceSendFields: []string{"UseDefault"},
		},
	}
}
