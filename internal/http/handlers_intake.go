package http

import (
	"context"
	stdhttp "net/http"
	"strconv"

	"github.com/danielgtaylor/huma/v2"
	"github.com/rotisserie/eris"
	"github.com/sirupsen/logrus"

	"stacknova/site/internal/intake"
)

type contactRequest struct {
	Body intake.ContactInput
}

type contactResponse struct {
	Status int
	Body   struct {
		Message string `json:"message"`
		ID      string `json:"id,omitempty"`
	}
}

type quoteRequest struct {
	Body intake.QuoteInput
}

type quoteResponse struct {
	Status int
	Body   struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
		Data    any    `json:"data,omitempty"`
	}
}

type applicationRequest struct {
	Body intake.ApplicationInput
}

type applicationResponse struct {
	Status int
	Body   struct {
		Success bool   `json:"success"`
		Message string `json:"message"`
		Error   string `json:"error,omitempty"`
	}
}

func (s *Server) registerIntakeRoutes() {
	huma.Post(s.api, "/api/contact", s.contactHandler, jsonOperation(
		"Submit a contact message",
		stdhttp.StatusOK,
		stdhttp.StatusBadRequest,
		stdhttp.StatusInternalServerError,
	))
	huma.Post(s.api, "/api/get-started", s.quoteHandler, jsonOperation(
		"Submit a project quote request",
		stdhttp.StatusCreated,
		stdhttp.StatusBadRequest,
		stdhttp.StatusInternalServerError,
	))
	huma.Post(s.api, "/api/job/apply", s.applicationHandler, jsonOperation(
		"Submit a job application",
		stdhttp.StatusOK,
		stdhttp.StatusBadRequest,
		stdhttp.StatusInternalServerError,
	))
}

func (s *Server) contactHandler(ctx context.Context, input *contactRequest) (*contactResponse, error) {
	resp := &contactResponse{}

	message, err := s.intake.SubmitContact(ctx, input.Body)
	if err != nil {
		var fieldErrs intake.FieldErrors
		if eris.As(err, &fieldErrs) {
			resp.Status = stdhttp.StatusBadRequest
			resp.Body.Message = fieldErrs.Error()
			return resp, nil
		}

		s.recordError(ctx, err, "persisting contact message", nil)
		resp.Status = stdhttp.StatusInternalServerError
		resp.Body.Message = "Something went wrong. Please try again later."
		return resp, nil
	}

	resp.Status = stdhttp.StatusOK
	resp.Body.Message = "Thanks for reaching out! We'll get back to you shortly."
	resp.Body.ID = strconv.FormatUint(uint64(message.ID), 10)
	return resp, nil
}

func (s *Server) quoteHandler(ctx context.Context, input *quoteRequest) (*quoteResponse, error) {
	resp := &quoteResponse{}

	quote, err := s.intake.SubmitQuote(ctx, input.Body)
	if err != nil {
		var fieldErrs intake.FieldErrors
		if eris.As(err, &fieldErrs) {
			resp.Status = stdhttp.StatusBadRequest
			resp.Body.Message = fieldErrs.Error()
			return resp, nil
		}

		s.recordError(ctx, err, "persisting quote request", nil)
		resp.Status = stdhttp.StatusInternalServerError
		resp.Body.Message = "Something went wrong. Please try again later."
		return resp, nil
	}

	resp.Status = stdhttp.StatusCreated
	resp.Body.Success = true
	resp.Body.Message = "Your request has been received. Our team will prepare a proposal and reach out soon."
	resp.Body.Data = quote
	return resp, nil
}

func (s *Server) applicationHandler(ctx context.Context, input *applicationRequest) (*applicationResponse, error) {
	resp := &applicationResponse{}

	application, err := s.intake.SubmitApplication(ctx, input.Body)
	if err != nil {
		var fieldErrs intake.FieldErrors
		if eris.As(err, &fieldErrs) {
			resp.Status = stdhttp.StatusBadRequest
			resp.Body.Message = "Application validation failed."
			resp.Body.Error = fieldErrs.Error()
			return resp, nil
		}

		s.recordError(ctx, err, "persisting job application", nil)
		resp.Status = stdhttp.StatusInternalServerError
		resp.Body.Message = "Something went wrong. Please try again later."
		resp.Body.Error = "internal server error"
		return resp, nil
	}

	if s.logger != nil {
		s.logger.WithFields(logrus.Fields{
			"position": application.Position,
			"id":       application.ID,
		}).Info("job application received")
	}

	resp.Status = stdhttp.StatusOK
	resp.Body.Success = true
	resp.Body.Message = "Your application has been submitted. We'll be in touch."
	return resp, nil
}

func jsonOperation(summary string, statuses ...int) func(op *huma.Operation) {
	return func(op *huma.Operation) {
		if summary != "" {
			op.Summary = summary
		}
		if op.Responses == nil {
			op.Responses = map[string]*huma.Response{}
		}

		for _, status := range statuses {
			code := strconv.Itoa(status)
			op.Responses[code] = &huma.Response{
				Description: stdhttp.StatusText(status),
			}
		}
	}
}
