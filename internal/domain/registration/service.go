// internal/domain/registration/service.go
package registration

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	apperrors "trustpanel-registration/pkg/errors"
)

type RegistrationResponse struct {
	Status       int          `json:"status"`
	Message      string       `json:"message"`
	Confirmation Confirmation `json:"confirmation"`
}

// FieldCheckRequest validates one field outside of a wizard session.
type FieldCheckRequest struct {
	Field    Field  `json:"field"`
	Value    string `json:"value"`
	Password string `json:"password"`
}

// Service exposes the registration rules to stateless callers.
type Service struct {
	submitter Submitter
	validator Validator
	logger    *slog.Logger
}

func NewService(s Submitter, v Validator, logger *slog.Logger) *Service {
	return &Service{
		submitter: s,
		validator: v,
		logger:    logger,
	}
}

// Register validates both steps at once and submits the draft synchronously.
func (s *Service) Register(ctx context.Context, req *RegistrationRequest) (*RegistrationResponse, error) {
	if err := s.validator.Validate(req); err != nil {
		var fields FieldErrors
		if errors.As(err, &fields) {
			return nil, apperrors.NewValidationError(fields.Error(), fields.strings())
		}
		return nil, apperrors.NewBadRequestError(err.Error())
	}

	draft := req.Draft()
	if err := s.submitter.Submit(ctx, draft); err != nil {
		switch {
		case errors.Is(err, ErrCompanyExists), errors.Is(err, ErrAdminExists):
			return nil, apperrors.NewConflictError(err.Error())
		case errors.Is(err, ErrDuplicateSubmission):
			return nil, apperrors.NewBusyError(err.Error())
		default:
			s.logger.Error("registration submit failed", "error", err)
			return nil, apperrors.NewInternalError()
		}
	}

	s.logger.Info("event tracked", "event", "registration_submitted", "channel", "http")
	return &RegistrationResponse{
		Status:       http.StatusCreated,
		Message:      MsgSubmitted,
		Confirmation: draft.Confirm(),
	}, nil
}

// CheckField validates a single field value against an optional password.
func (s *Service) CheckField(req *FieldCheckRequest) (FieldResult, error) {
	if _, known := req.Field.Kind(); !known {
		return FieldResult{}, apperrors.NewBadRequestError("unknown field " + string(req.Field))
	}
	return ValidateField(req.Field, Values{
		req.Field:     req.Value,
		FieldPassword: passwordFor(req),
	}), nil
}

func passwordFor(req *FieldCheckRequest) string {
	if req.Field == FieldPassword {
		return req.Value
	}
	return req.Password
}

func (e FieldErrors) strings() map[string]string {
	out := make(map[string]string, len(e))
	for f, msg := range e {
		out[string(f)] = msg
	}
	return out
}
