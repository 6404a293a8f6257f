package errors

import (
	"context"
	stderrors "errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errMissingFile = stderrors.New("no such file")

func TestStandardErrorWrapping(t *testing.T) {
	err := fmt.Errorf("forecast: %w", NewModelNotFoundError("model_orders", errMissingFile))

	assert.ErrorIs(t, err, errMissingFile)
	assert.ErrorIs(t, err, &StandardError{Code: ErrCodeModelNotFound})
	assert.NotErrorIs(t, err, &StandardError{Code: ErrCodeDatasetNotFound})
	assert.Contains(t, err.Error(), "Model model_orders not found")
	assert.Contains(t, err.Error(), "no such file")
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name       string
		err        error
		wantCode   ErrorCode
		wantStatus int
	}{
		{"question missing", NewQuestionMissingError(), ErrCodeQuestionMissing, http.StatusBadRequest},
		{"wrapped dataset", fmt.Errorf("load: %w", NewDatasetNotFoundError("orders_sample", nil)), ErrCodeDatasetNotFound, http.StatusNotFound},
		{"deadline", fmt.Errorf("generate: %w", context.DeadlineExceeded), ErrCodeAITimeout, http.StatusGatewayTimeout},
		{"plain", stderrors.New("boom"), ErrCodeInternal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(tt.err)
			require.NotNil(t, got)
			assert.Equal(t, tt.wantCode, got.Code)
			assert.Equal(t, tt.wantStatus, HTTPStatus(got.Code))
		})
	}

	assert.Nil(t, Classify(nil))
}

func TestConvertToBPMNError(t *testing.T) {
	timeout := ConvertToBPMNError(NewQueryTimeoutError("orders_sample"))
	assert.Equal(t, "QUERY_TIMEOUT", timeout.Code)
	assert.Equal(t, 2, timeout.Retries)
	assert.Equal(t, "QUERY_TIMEOUT", timeout.ToErrorVariables()["originalErrorCode"])

	notFound := ConvertToBPMNError(NewModelNotFoundError("model_seasonal", nil))
	assert.Equal(t, 0, notFound.Retries)
	assert.False(t, notFound.Retryable)
}

func TestGetErrorCategory(t *testing.T) {
	assert.Equal(t, "VALIDATION", GetErrorCategory(ErrCodeQuestionMissing))
	assert.Equal(t, "MODEL", GetErrorCategory(ErrCodeModelNotFound))
	assert.Equal(t, "DATA", GetErrorCategory(ErrCodeQueryTimeout))
	assert.Equal(t, "AI", GetErrorCategory(ErrCodeAITimeout))
	assert.Equal(t, "NOTIFICATION", GetErrorCategory(ErrCodeAlertSendFailed))
	assert.Equal(t, "OTHER", GetErrorCategory(ErrCodeInternal))
	assert.True(t, IsRetryableErrorCode(ErrCodeSearchQueryFailed))
	assert.False(t, IsRetryableErrorCode(ErrCodeInvalidRequest))
}
