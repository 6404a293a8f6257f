package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	errs "supplychain-insights/internal/common/errors"
	"supplychain-insights/internal/models"
	answerquestion "supplychain-insights/internal/workers/ai-conversation/answer-question"
)

const maxRequestBytes = 1 << 20

func (s *Server) handleChat(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxRequestBytes))
	if err != nil {
		s.writeError(w, http.StatusBadRequest, errs.NewInvalidRequestError(err.Error()))
		return
	}

	var input answerquestion.Input
	if len(body) > 0 {
		if err := s.request.ValidateBytes(body).Err(); err != nil {
			s.writeError(w, http.StatusBadRequest, errs.NewInvalidRequestError(err.Error()))
			return
		}
		if err := json.Unmarshal(body, &input); err != nil {
			s.writeError(w, http.StatusBadRequest, errs.NewInvalidRequestError(err.Error()))
			return
		}
	}

	resp, err := s.opts.Answerer.Execute(r.Context(), &input)
	if err != nil {
		s.writeError(w, errs.HTTPStatus(errs.Classify(err).Code), err)
		return
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	resp := models.HealthResponse{
		Status:       "healthy",
		ModelsLoaded: []string{},
		Timestamp:    s.clock().Format(time.RFC3339Nano),
	}
	if s.opts.Models != nil {
		if loaded := s.opts.Models.Loaded(); loaded != nil {
			resp.ModelsLoaded = loaded
		}
	}
	if g := s.opts.Generator; g != nil {
		resp.AIEnabled = true
		resp.Provider = g.Name()
		resp.Model = g.Model()
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	caps := s.opts.Capabilities
	info := ServiceInfo{
		Service:      caps.Service,
		Version:      caps.Version,
		Status:       "running",
		Endpoints:    endpoints,
		Capabilities: caps.Intents(),
		Examples:     caps.Examples,
	}
	if s.opts.App.Version != "" {
		info.Version = s.opts.App.Version
	}
	for _, c := range caps.Capabilities {
		info.Features = append(info.Features, Feature{Name: c.DisplayName, Description: c.Description})
	}
	writeJSON(w, http.StatusOK, info)
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	if s.opts.Dashboard == nil {
		s.writeError(w, http.StatusNotFound, errors.New("dashboard is not configured"))
		return
	}
	sum, err := s.opts.Dashboard.Summary(r.Context())
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, sum)
}

func (s *Server) writeError(w http.ResponseWriter, status int, err error) {
	var envelope *models.ErrorResponse
	if s.opts.Answerer != nil {
		envelope = s.opts.Answerer.ErrorResponse(err)
	} else {
		envelope = &models.ErrorResponse{
			Error:    err.Error(),
			Insights: []models.Insight{models.NewErrorInsight("Error", err)},
		}
	}
	writeJSON(w, status, envelope)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
