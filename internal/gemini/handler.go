package gemini

import (
	"context"
	"net/http"

	log "github.com/sirupsen/logrus"

	"github.com/2beens/healthstats/internal/telemetry/tracing"
	"github.com/2beens/healthstats/pkg"
)

type pinger interface {
	Ping(ctx context.Context) (string, error)
}

type TestGeminiResponse struct {
	Status   string `json:"status"`
	Message  string `json:"message"`
	Response string `json:"response"`
}

type Handler struct {
	pinger pinger
}

// NewHandler accepts a nil pinger, meaning the API key is not configured.
func NewHandler(pinger pinger) *Handler {
	return &Handler{
		pinger: pinger,
	}
}

func (handler *Handler) HandleTestGemini(w http.ResponseWriter, r *http.Request) {
	ctx, span := tracing.GlobalTracer.Start(r.Context(), "handler.gemini.test")
	defer span.End()

	if handler.pinger == nil {
		pkg.WriteJSONError(w, "GEMINI_API_KEY not found in environment variables", http.StatusInternalServerError)
		return
	}

	resp, err := handler.pinger.Ping(ctx)
	if err != nil {
		log.Errorf("gemini api test failed: %s", err)
		pkg.WriteJSONResponse(w, map[string]any{
			"error":          "Gemini API test failed: " + err.Error(),
			"api_key_exists": true,
		}, http.StatusInternalServerError)
		return
	}

	pkg.WriteJSONResponse(w, TestGeminiResponse{
		Status:   "success",
		Message:  "Gemini API is properly configured",
		Response: resp,
	}, http.StatusOK)
}
