package profile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/gorilla/mux"
	log "github.com/sirupsen/logrus"

	"github.com/2beens/healthstats/internal/telemetry/tracing"
	"github.com/2beens/healthstats/pkg"
)

//go:generate mockgen -source=$GOFILE -destination=handler_mocks_test.go -package=profile_test

type profileService interface {
	Get(ctx context.Context, userID string) (*UserProfile, error)
	UpdateProfile(ctx context.Context, userID string, update ProfileUpdate) (*UserProfile, error)
	TrackProgress(ctx context.Context, userID string, update ProgressUpdate) (*UserProfile, error)
	AnalyzePhoto(ctx context.Context, userID string, photo Photo) (*PhotoAnalysis, error)
	GenerateDietPlan(ctx context.Context, userID string) (*DietPlanResult, error)
}

const photoFormField = "photo"

var allowedPhotoTypes = map[string]string{
	".png":  "image/png",
	".jpg":  "image/jpeg",
	".jpeg": "image/jpeg",
}

type UpdateProfileResponse struct {
	Message string       `json:"message"`
	Profile *UserProfile `json:"profile"`
}

type DietPlanResponse struct {
	Message        string    `json:"message"`
	DietPlan       *DietPlan `json:"diet_plan"`
	ContextMessage string    `json:"context_message"`
}

type Handler struct {
	service       profileService
	maxPhotoBytes int64
}

func NewHandler(service profileService, maxPhotoBytes int64) *Handler {
	return &Handler{
		service:       service,
		maxPhotoBytes: maxPhotoBytes,
	}
}

// writeServiceError maps service errors onto the API status codes.
func writeServiceError(w http.ResponseWriter, err error, internalMsg string) {
	var vErr *ValidationError
	switch {
	case errors.As(err, &vErr):
		pkg.WriteJSONError(w, vErr.Reason, http.StatusBadRequest)
	case errors.Is(err, ErrProfileNotFound):
		pkg.WriteJSONError(w, "User profile not found. Please create a profile first.", http.StatusNotFound)
	case errors.Is(err, ErrModelUnavailable):
		pkg.WriteJSONError(w, "Gemini model not initialized.", http.StatusInternalServerError)
	default:
		pkg.WriteJSONError(w, internalMsg, http.StatusInternalServerError)
	}
}

func (handler *Handler) HandleUpdate(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.profile.update")
	defer span.End()

	userID := mux.Vars(r)["user_id"]
	if userID == "" {
		pkg.WriteJSONError(w, "user_id is required", http.StatusBadRequest)
		return
	}

	var update ProfileUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		log.Errorf("update profile [%s], unmarshal json: %s", userID, err)
		pkg.WriteJSONError(w, "No data provided", http.StatusBadRequest)
		return
	}
	if update.IsEmpty() {
		pkg.WriteJSONError(w, "No data provided", http.StatusBadRequest)
		return
	}

	p, err := handler.service.UpdateProfile(ctx, userID, update)
	if err != nil {
		log.Errorf("update profile [%s]: %s", userID, err)
		writeServiceError(w, err, fmt.Sprintf("Failed to save profile for user %s", userID))
		return
	}

	pkg.WriteJSONResponse(w, UpdateProfileResponse{
		Message: "Profile updated successfully",
		Profile: p,
	}, http.StatusOK)
}

func (handler *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.profile.get")
	defer span.End()

	userID := mux.Vars(r)["user_id"]
	if userID == "" {
		pkg.WriteJSONError(w, "user_id is required", http.StatusBadRequest)
		return
	}

	p, err := handler.service.Get(ctx, userID)
	if err != nil {
		if errors.Is(err, ErrProfileNotFound) {
			pkg.WriteJSONResponse(w, map[string]string{
				"message": fmt.Sprintf("No profile found for user %s. Please create one.", userID),
			}, http.StatusNotFound)
			return
		}
		log.Errorf("get profile [%s]: %s", userID, err)
		pkg.WriteJSONError(w, "Failed to retrieve profile", http.StatusInternalServerError)
		return
	}

	pkg.WriteJSONResponse(w, p, http.StatusOK)
}

func (handler *Handler) HandleTrackProgress(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.profile.trackprogress")
	defer span.End()

	userID := mux.Vars(r)["user_id"]
	if userID == "" {
		pkg.WriteJSONError(w, "user_id is required", http.StatusBadRequest)
		return
	}

	var update ProgressUpdate
	if err := json.NewDecoder(r.Body).Decode(&update); err != nil {
		log.Errorf("track progress [%s], unmarshal json: %s", userID, err)
		pkg.WriteJSONError(w, "No data provided", http.StatusBadRequest)
		return
	}

	p, err := handler.service.TrackProgress(ctx, userID, update)
	if err != nil {
		log.Errorf("track progress [%s]: %s", userID, err)
		writeServiceError(w, err, "Failed to save progress")
		return
	}

	pkg.WriteJSONResponse(w, UpdateProfileResponse{
		Message: "Progress tracked successfully",
		Profile: p,
	}, http.StatusOK)
}

func (handler *Handler) HandleAnalyzePhoto(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.profile.analyzephoto")
	defer span.End()

	userID := mux.Vars(r)["user_id"]
	if userID == "" {
		pkg.WriteJSONError(w, "user_id is required", http.StatusBadRequest)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, handler.maxPhotoBytes)
	if err := r.ParseMultipartForm(handler.maxPhotoBytes); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) || errors.Is(err, multipart.ErrMessageTooLarge) {
			pkg.WriteJSONError(w, "Photo too large", http.StatusRequestEntityTooLarge)
			return
		}
		pkg.WriteJSONError(w, "No photo part", http.StatusBadRequest)
		return
	}
	defer func() {
		if err := r.MultipartForm.RemoveAll(); err != nil {
			log.Warnf("analyze photo [%s], remove multipart files: %s", userID, err)
		}
	}()

	file, header, err := r.FormFile(photoFormField)
	if err != nil {
		pkg.WriteJSONError(w, "No photo part", http.StatusBadRequest)
		return
	}
	defer file.Close()

	if header.Filename == "" {
		pkg.WriteJSONError(w, "No selected file", http.StatusBadRequest)
		return
	}
	mimeType, ok := allowedPhotoTypes[strings.ToLower(filepath.Ext(header.Filename))]
	if !ok {
		pkg.WriteJSONError(w, "Invalid file type", http.StatusBadRequest)
		return
	}

	data, err := io.ReadAll(file)
	if err != nil {
		log.Errorf("analyze photo [%s], read upload: %s", userID, err)
		pkg.WriteJSONError(w, "Failed to read photo", http.StatusBadRequest)
		return
	}

	analysis, err := handler.service.AnalyzePhoto(ctx, userID, Photo{
		Data:     data,
		MIMEType: mimeType,
	})
	if err != nil {
		log.Errorf("analyze photo [%s]: %s", userID, err)
		writeServiceError(w, err, "Failed to analyze photo")
		return
	}

	pkg.WriteJSONResponse(w, analysis, http.StatusOK)
}

func (handler *Handler) HandleGenerateDietPlan(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.profile.dietplan")
	defer span.End()

	userID := mux.Vars(r)["user_id"]
	if userID == "" {
		pkg.WriteJSONError(w, "user_id is required", http.StatusBadRequest)
		return
	}

	result, err := handler.service.GenerateDietPlan(ctx, userID)
	if err != nil {
		log.Errorf("generate diet plan [%s]: %s", userID, err)
		writeServiceError(w, err, "Diet plan generation failed")
		return
	}

	pkg.WriteJSONResponse(w, DietPlanResponse{
		Message:        "Diet plan generated",
		DietPlan:       result.Plan,
		ContextMessage: result.ContextMessage,
	}, http.StatusOK)
}
