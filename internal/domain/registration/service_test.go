package registration

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "trustpanel-registration/pkg/errors"
)

func newTestService(t *testing.T, sub Submitter) *Service {
	t.Helper()
	return NewService(sub, newTestValidator(t), slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestService_Register(t *testing.T) {
	sub := &stubSubmitter{}
	svc := newTestService(t, sub)
	req := validRequest()

	resp, err := svc.Register(context.Background(), &req)

	require.NoError(t, err)
	assert.Equal(t, http.StatusCreated, resp.Status)
	assert.Equal(t, MsgSubmitted, resp.Message)
	assert.Equal(t, "11.222.333/0001-81", resp.Confirmation.CNPJ)
	assert.Equal(t, "(11) 3456-7890", resp.Confirmation.CompanyPhone)
	require.Len(t, sub.drafts, 1)
	assert.Equal(t, "Password1!", sub.drafts[0].Password)
}

func TestService_RegisterValidationError(t *testing.T) {
	sub := &stubSubmitter{}
	svc := newTestService(t, sub)
	req := validRequest()
	req.CompanyEmail = ""

	_, err := svc.Register(context.Background(), &req)

	var verr *apperrors.ValidationError
	require.ErrorAs(t, err, &verr)
	assert.Equal(t, map[string]string{"companyEmail": MsgRequired}, verr.Fields)
	assert.Empty(t, sub.drafts)
}

func TestService_RegisterMapsBackendErrors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		target any
	}{
		{"company exists", ErrCompanyExists, new(*apperrors.ConflictError)},
		{"admin exists", ErrAdminExists, new(*apperrors.ConflictError)},
		{"duplicate submission", ErrDuplicateSubmission, new(*apperrors.BusyError)},
		{"unexpected", errors.New("boom"), new(*apperrors.InternalError)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc := newTestService(t, &stubSubmitter{results: []error{tt.err}})
			req := validRequest()

			_, err := svc.Register(context.Background(), &req)

			assert.ErrorAs(t, err, tt.target)
		})
	}
}

func TestService_CheckField(t *testing.T) {
	svc := newTestService(t, &stubSubmitter{})

	res, err := svc.CheckField(&FieldCheckRequest{Field: FieldCNPJ, Value: "11222333000181"})
	require.NoError(t, err)
	assert.True(t, res.Valid)

	res, err = svc.CheckField(&FieldCheckRequest{Field: FieldConfirmPassword, Value: "abc", Password: "abd"})
	require.NoError(t, err)
	assert.Equal(t, fail(MsgMismatch), res)

	res, err = svc.CheckField(&FieldCheckRequest{Field: FieldPassword, Value: "abc"})
	require.NoError(t, err)
	assert.Equal(t, fail(MsgPassword), res)
}

func TestService_CheckFieldUnknown(t *testing.T) {
	svc := newTestService(t, &stubSubmitter{})

	_, err := svc.CheckField(&FieldCheckRequest{Field: "nickname"})

	var bad *apperrors.BadRequestError
	assert.ErrorAs(t, err, &bad)
}
