package handler

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/persimmonlabs/hercules-gym-log-sub005/internal/domain"
	"github.com/persimmonlabs/hercules-gym-log-sub005/internal/llm"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

func TestCoachingHandler_Get(t *testing.T) {
	userID := uuid.New()

	tests := []struct {
		name           string
		userID         string
		mockService    *MockCoachingService
		wantStatusCode int
	}{
		{
			name:           "valid coaching response",
			userID:         userID.String(),
			mockService:    &MockCoachingService{},
			wantStatusCode: http.StatusOK,
		},
		{
			name:           "invalid user ID",
			userID:         "not-a-uuid",
			mockService:    &MockCoachingService{},
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name:   "unknown user",
			userID: userID.String(),
			mockService: &MockCoachingService{
				generateFunc: func(ctx context.Context, userID uuid.UUID, exerciseName string, opts domain.SuggestionOptions) (*domain.CoachingResponse, error) {
					return nil, domain.ErrNotFound
				},
			},
			wantStatusCode: http.StatusNotFound,
		},
		{
			name:   "LLM not configured",
			userID: userID.String(),
			mockService: &MockCoachingService{
				generateFunc: func(ctx context.Context, userID uuid.UUID, exerciseName string, opts domain.SuggestionOptions) (*domain.CoachingResponse, error) {
					return nil, llm.ErrOpenAIUnavailable
				},
			},
			wantStatusCode: http.StatusServiceUnavailable,
		},
		{
			name:   "LLM request failure",
			userID: userID.String(),
			mockService: &MockCoachingService{
				generateFunc: func(ctx context.Context, userID uuid.UUID, exerciseName string, opts domain.SuggestionOptions) (*domain.CoachingResponse, error) {
					return nil, llm.ErrOpenAIRequest
				},
			},
			wantStatusCode: http.StatusBadGateway,
		},
		{
			name:   "unsupported exercise",
			userID: userID.String(),
			mockService: &MockCoachingService{
				generateFunc: func(ctx context.Context, userID uuid.UUID, exerciseName string, opts domain.SuggestionOptions) (*domain.CoachingResponse, error) {
					return nil, domain.ErrUnsupportedExercise
				},
			},
			wantStatusCode: http.StatusUnprocessableEntity,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := NewCoachingHandler(tt.mockService, &mockLangfuseClient{})

			req := httptest.NewRequest(http.MethodGet, "/v1/users/"+tt.userID+"/exercises/Deadlift/coaching", nil)
			rctx := chi.NewRouteContext()
			rctx.URLParams.Add("userId", tt.userID)
			rctx.URLParams.Add("exercise", "Deadlift")
			req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
			rec := httptest.NewRecorder()

			handler.Get(rec, req)

			if rec.Code != tt.wantStatusCode {
				t.Errorf("Get() status = %d, want %d, body: %s", rec.Code, tt.wantStatusCode, rec.Body.String())
			}

			if tt.wantStatusCode == http.StatusOK {
				var response domain.CoachingResponse
				if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
					t.Fatalf("Failed to decode response: %v", err)
				}
				if response.Insights.Summary == "" {
					t.Error("Get() returned empty coaching summary")
				}
			}
		})
	}
}

func TestCoachingHandler_Get_LangfuseTraceFallback(t *testing.T) {
	// With no OTEL span in the context, an enabled Langfuse client supplies
	// the trace ID used for feedback linking.
	userID := uuid.New()
	mockLangfuse := &mockLangfuseClient{enabled: true}
	handler := NewCoachingHandler(&MockCoachingService{}, mockLangfuse)

	req := httptest.NewRequest(http.MethodGet, "/v1/users/"+userID.String()+"/exercises/Deadlift/coaching?target_sets=4", nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("userId", userID.String())
	rctx.URLParams.Add("exercise", "Deadlift")
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
	rec := httptest.NewRecorder()

	handler.Get(rec, req)

	if rec.Code != http.StatusOK {
		t.Fatalf("Get() status = %d, body: %s", rec.Code, rec.Body.String())
	}
	if mockLangfuse.traceCalls != 1 {
		t.Fatalf("Get() traceCalls = %d, want 1", mockLangfuse.traceCalls)
	}
	if mockLangfuse.lastTrace.Name != "workout-coaching" {
		t.Errorf("Get() trace name = %q, want workout-coaching", mockLangfuse.lastTrace.Name)
	}

	var response domain.CoachingResponse
	if err := json.NewDecoder(rec.Body).Decode(&response); err != nil {
		t.Fatalf("Failed to decode response: %v", err)
	}
	if response.TraceID != "trace-workout-coaching" {
		t.Errorf("Get() trace_id = %q, want trace-workout-coaching", response.TraceID)
	}
}

func TestCoachingHandler_Get_InvalidOptions(t *testing.T) {
	userID := uuid.New()
	handler := NewCoachingHandler(&MockCoachingService{}, &mockLangfuseClient{})

	req := httptest.NewRequest(http.MethodGet, "/v1/users/"+userID.String()+"/exercises/Deadlift/coaching?target_sets=99", nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("userId", userID.String())
	rctx.URLParams.Add("exercise", "Deadlift")
	req = req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
	rec := httptest.NewRecorder()

	handler.Get(rec, req)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("Get() status = %d, want %d, body: %s", rec.Code, http.StatusBadRequest, rec.Body.String())
	}
}

func TestCoachingHandler_PostFeedback(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		wantStatusCode int
		wantScoreCalls int
	}{
		{
			name:           "valid feedback",
			body:           `{"trace_id": "abc123", "score": 4, "comment": "helpful"}`,
			wantStatusCode: http.StatusNoContent,
			wantScoreCalls: 1,
		},
		{
			name:           "missing trace_id",
			body:           `{"score": 4}`,
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name:           "score out of range",
			body:           `{"trace_id": "abc123", "score": 9}`,
			wantStatusCode: http.StatusBadRequest,
		},
		{
			name:           "invalid JSON",
			body:           `{invalid}`,
			wantStatusCode: http.StatusBadRequest,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mockLangfuse := &mockLangfuseClient{enabled: true}
			handler := NewCoachingHandler(&MockCoachingService{}, mockLangfuse)

			req := httptest.NewRequest(http.MethodPost, "/v1/feedback", bytes.NewBufferString(tt.body))
			req.Header.Set("Content-Type", "application/json")
			rec := httptest.NewRecorder()

			handler.PostFeedback(rec, req)

			if rec.Code != tt.wantStatusCode {
				t.Errorf("PostFeedback() status = %d, want %d, body: %s", rec.Code, tt.wantStatusCode, rec.Body.String())
			}
			if mockLangfuse.scoreCalls != tt.wantScoreCalls {
				t.Errorf("PostFeedback() scoreCalls = %d, want %d", mockLangfuse.scoreCalls, tt.wantScoreCalls)
			}
			if tt.wantScoreCalls == 1 && mockLangfuse.lastScore.Name != "user_rating" {
				t.Errorf("PostFeedback() score name = %q, want user_rating", mockLangfuse.lastScore.Name)
			}
		})
	}
}
