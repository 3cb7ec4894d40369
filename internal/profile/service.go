package profile

import (
	"context"
	"errors"
	"fmt"
	"time"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"

	"github.com/2beens/healthstats/internal/telemetry/metrics"
	"github.com/2beens/healthstats/internal/telemetry/tracing"
)

//go:generate mockgen -source=$GOFILE -destination=service_mocks_test.go -package=profile_test

type profileStore interface {
	Load(ctx context.Context, userID string) (*UserProfile, error)
	Save(ctx context.Context, p *UserProfile) error
}

type userLocker interface {
	Lock(ctx context.Context, userID string) (func(), error)
}

type photoAnalyzer interface {
	AnalyzePhoto(ctx context.Context, p *UserProfile, photo Photo) (*PhotoAnalysis, error)
}

type dietPlanner interface {
	GenerateDietPlan(ctx context.Context, dietContext DietPlanContext) (*DietPlan, error)
}

// Photo is an uploaded body photo.
type Photo struct {
	Data     []byte
	MIMEType string
}

type DietPlanResult struct {
	Plan           *DietPlan
	ContextMessage string
}

type NewServiceParams struct {
	Store          profileStore
	Locker         userLocker
	Cache          *Cache
	PhotoAnalyzer  photoAnalyzer
	DietPlanner    dietPlanner
	MetricsManager *metrics.Manager
}

type Service struct {
	store          profileStore
	locker         userLocker
	cache          *Cache
	photoAnalyzer  photoAnalyzer
	dietPlanner    dietPlanner
	metricsManager *metrics.Manager

	Now func() time.Time
}

func NewService(params NewServiceParams) *Service {
	return &Service{
		store:          params.Store,
		locker:         params.Locker,
		cache:          params.Cache,
		photoAnalyzer:  params.PhotoAnalyzer,
		dietPlanner:    params.DietPlanner,
		metricsManager: params.MetricsManager,
		Now:            time.Now,
	}
}

// loadFromStore reads the profile, bypassing the cache. A corrupt stored
// profile is logged and treated like a missing one.
func (s *Service) loadFromStore(ctx context.Context, userID string) (*UserProfile, error) {
	p, err := s.store.Load(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrCorruptProfile) {
			log.Errorf("profile for user [%s] is corrupt, treating as empty: %s", userID, err)
			return nil, nil
		}
		return nil, fmt.Errorf("load profile: %w", err)
	}
	return p, nil
}

func (s *Service) load(ctx context.Context, userID string) (*UserProfile, error) {
	if s.cache != nil {
		if p := s.cache.Get(userID); p != nil {
			return p, nil
		}
	}

	p, err := s.loadFromStore(ctx, userID)
	if err != nil {
		return nil, err
	}
	if p != nil && s.cache != nil {
		s.cache.Set(p)
	}
	return p, nil
}

// mutate runs a locked load-apply-save cycle for one user. Nothing is
// written when apply fails.
func (s *Service) mutate(
	ctx context.Context,
	userID string,
	apply func(existing *UserProfile) (*UserProfile, error),
) (*UserProfile, error) {
	unlock, err := s.locker.Lock(ctx, userID)
	if err != nil {
		return nil, err
	}
	defer unlock()

	existing, err := s.loadFromStore(ctx, userID)
	if err != nil {
		return nil, err
	}

	updated, err := apply(existing)
	if err != nil {
		return nil, err
	}

	if err := s.store.Save(ctx, updated); err != nil {
		if s.cache != nil {
			s.cache.Invalidate(userID)
		}
		return nil, fmt.Errorf("save profile: %w", err)
	}
	if s.cache != nil {
		s.cache.Set(updated)
	}

	return updated, nil
}

func (s *Service) countValidationErr(operation string, err error) {
	if s.metricsManager != nil && IsValidationError(err) {
		s.metricsManager.CounterValidationErrors.WithLabelValues(operation).Inc()
	}
}

// Get returns ErrProfileNotFound if the user has no (readable) profile.
func (s *Service) Get(ctx context.Context, userID string) (_ *UserProfile, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.profile.get")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user_id", userID))

	p, err := s.load(ctx, userID)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, ErrProfileNotFound
	}
	return p, nil
}

func (s *Service) UpdateProfile(ctx context.Context, userID string, update ProfileUpdate) (_ *UserProfile, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.profile.update")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user_id", userID))

	p, err := s.mutate(ctx, userID, func(existing *UserProfile) (*UserProfile, error) {
		return ApplyProfileUpdate(existing, userID, update, s.Now())
	})
	if err != nil {
		s.countValidationErr("update_profile", err)
		return nil, err
	}

	if s.metricsManager != nil {
		s.metricsManager.CounterProfileUpdates.Inc()
	}
	return p, nil
}

// TrackProgress needs an existing profile.
func (s *Service) TrackProgress(ctx context.Context, userID string, update ProgressUpdate) (_ *UserProfile, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.profile.trackprogress")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user_id", userID))

	p, err := s.mutate(ctx, userID, func(existing *UserProfile) (*UserProfile, error) {
		if existing == nil {
			return nil, ErrProfileNotFound
		}
		return ApplyProgressEntry(existing, update, s.Now())
	})
	if err != nil {
		s.countValidationErr("track_progress", err)
		return nil, err
	}

	if s.metricsManager != nil {
		s.metricsManager.CounterProgressEntries.Inc()
	}
	span.SetAttributes(attribute.Int("progress_entries", len(p.ProgressHistory)))
	return p, nil
}

// AnalyzePhoto runs the (slow) analysis without holding the user lock,
// then records the estimate on the latest stored profile.
func (s *Service) AnalyzePhoto(ctx context.Context, userID string, photo Photo) (_ *PhotoAnalysis, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.profile.analyzephoto")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(
		attribute.String("user_id", userID),
		attribute.Int("photo.size", len(photo.Data)),
	)

	if s.photoAnalyzer == nil {
		return nil, ErrModelUnavailable
	}

	current, err := s.loadFromStore(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := ValidateForPhotoAnalysis(current); err != nil {
		s.countValidationErr("analyze_photo", err)
		return nil, err
	}

	analysis, err := s.photoAnalyzer.AnalyzePhoto(ctx, current, photo)
	if err != nil {
		return nil, fmt.Errorf("analyze photo: %w", err)
	}

	if _, err := s.mutate(ctx, userID, func(existing *UserProfile) (*UserProfile, error) {
		if existing == nil {
			return nil, ErrProfileNotFound
		}
		return RecordPhotoEstimate(existing, *analysis, s.Now()), nil
	}); err != nil {
		return nil, err
	}

	if s.metricsManager != nil {
		s.metricsManager.CounterPhotoAnalyses.Inc()
	}
	return analysis, nil
}

func (s *Service) GenerateDietPlan(ctx context.Context, userID string) (_ *DietPlanResult, err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.profile.dietplan")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()
	span.SetAttributes(attribute.String("user_id", userID))

	if s.dietPlanner == nil {
		return nil, ErrModelUnavailable
	}

	current, err := s.loadFromStore(ctx, userID)
	if err != nil {
		return nil, err
	}
	if err := ValidateForDietPlan(current); err != nil {
		s.countValidationErr("diet_plan", err)
		return nil, err
	}

	dietContext := BuildDietPlanContext(current)
	plan, err := s.dietPlanner.GenerateDietPlan(ctx, dietContext)
	if err != nil {
		return nil, fmt.Errorf("generate diet plan: %w", err)
	}

	updated, err := s.mutate(ctx, userID, func(existing *UserProfile) (*UserProfile, error) {
		if existing == nil {
			return nil, ErrProfileNotFound
		}
		return ApplyDietPlan(existing, *plan, dietContext.BodyCompositionAssessmentInfo), nil
	})
	if err != nil {
		return nil, err
	}

	if s.metricsManager != nil {
		s.metricsManager.CounterDietPlans.Inc()
	}
	return &DietPlanResult{
		Plan:           updated.CurrentDietPlan,
		ContextMessage: dietContext.BodyCompositionAssessmentInfo,
	}, nil
}

func (s *Service) SetCheckupPreference(ctx context.Context, userID string, pref CheckupPreference) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.profile.checkuppreference")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	_, err = s.mutate(ctx, userID, func(existing *UserProfile) (*UserProfile, error) {
		if existing == nil {
			return nil, ErrProfileNotFound
		}
		return ApplyCheckupPreference(existing, pref), nil
	})
	return err
}

func (s *Service) SaveGoogleAuthCreds(ctx context.Context, userID string, creds []byte) (err error) {
	ctx, span := tracing.GlobalTracer.Start(ctx, "service.profile.savecreds")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	_, err = s.mutate(ctx, userID, func(existing *UserProfile) (*UserProfile, error) {
		return ApplyGoogleAuthCreds(existing, userID, creds), nil
	})
	return err
}

// GoogleAuthCreds returns nil if the user never authorized calendar access.
func (s *Service) GoogleAuthCreds(ctx context.Context, userID string) ([]byte, error) {
	p, err := s.loadFromStore(ctx, userID)
	if err != nil {
		return nil, err
	}
	if p == nil || !isProvided(p.GoogleAuthCreds) {
		return nil, nil
	}
	return p.GoogleAuthCreds, nil
}
