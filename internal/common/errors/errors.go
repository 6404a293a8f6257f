package errors

import (
	"context"
	stderrors "errors"
	"fmt"
	"net/http"
	"strings"
	"time"
)

type ErrorCode string

const (
	// Request errors
	ErrCodeQuestionMissing ErrorCode = "QUESTION_MISSING"
	ErrCodeInvalidRequest  ErrorCode = "INVALID_REQUEST"

	// Analytics errors
	ErrCodeModelNotFound     ErrorCode = "MODEL_NOT_FOUND"
	ErrCodeModelLoadFailed   ErrorCode = "MODEL_LOAD_FAILED"
	ErrCodeDatasetNotFound   ErrorCode = "DATASET_NOT_FOUND"
	ErrCodeColumnNotFound    ErrorCode = "COLUMN_NOT_FOUND"
	ErrCodeAnalysisFailed    ErrorCode = "ANALYSIS_FAILED"
	ErrCodeQueryTimeout      ErrorCode = "QUERY_TIMEOUT"
	ErrCodeSearchQueryFailed ErrorCode = "SEARCH_QUERY_FAILED"

	// AI errors
	ErrCodeAIClassificationFailed ErrorCode = "AI_CLASSIFICATION_FAILED"
	ErrCodeAITimeout              ErrorCode = "AI_TIMEOUT"
	ErrCodeFormatFailed           ErrorCode = "FORMAT_FAILED"

	// Notification errors
	ErrCodeAlertSendFailed ErrorCode = "ALERT_SEND_FAILED"

	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

// StandardError is the error shape shared by the HTTP surface and the job worker.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`

	cause error
}

func (e *StandardError) Error() string {
	if e.Details != "" {
		return fmt.Sprintf("%s: %s", e.Message, e.Details)
	}
	return e.Message
}

func (e *StandardError) Unwrap() error {
	return e.cause
}

// Is matches another StandardError by code.
func (e *StandardError) Is(target error) bool {
	t, ok := target.(*StandardError)
	if !ok {
		return false
	}
	return t.Code == e.Code
}

func newError(code ErrorCode, message string, cause error, retryable bool) *StandardError {
	details := ""
	if cause != nil {
		details = cause.Error()
	}
	return &StandardError{
		Code:      code,
		Message:   message,
		Details:   details,
		Retryable: retryable,
		Timestamp: time.Now().UTC(),
		cause:     cause,
	}
}

type BPMNError struct {
	Code           string                 `json:"code"`
	Message        string                 `json:"message"`
	Details        string                 `json:"details,omitempty"`
	Retryable      bool                   `json:"retryable"`
	Retries        int                    `json:"retries"`
	ErrorVariables map[string]interface{} `json:"errorVariables,omitempty"`
}

func (e *BPMNError) Error() string {
	return fmt.Sprintf("BPMNError[%s]: %s", e.Code, e.Message)
}

func (e *BPMNError) ToErrorVariables() map[string]interface{} {
	vars := map[string]interface{}{
		"errorCode":    e.Code,
		"errorMessage": e.Message,
		"errorDetails": e.Details,
		"retryable":    e.Retryable,
	}
	for k, v := range e.ErrorVariables {
		vars[k] = v
	}
	return vars
}

func NewQuestionMissingError() *StandardError {
	return &StandardError{
		Code:      ErrCodeQuestionMissing,
		Message:   "No question provided",
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

func NewInvalidRequestError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeInvalidRequest,
		Message:   "Invalid request body",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

func NewModelNotFoundError(model string, cause error) *StandardError {
	e := newError(ErrCodeModelNotFound, fmt.Sprintf("Model %s not found", model), cause, false)
	e.Metadata = map[string]interface{}{"model": model}
	return e
}

func NewModelLoadFailedError(model string, cause error) *StandardError {
	e := newError(ErrCodeModelLoadFailed, fmt.Sprintf("Model %s could not be loaded", model), cause, true)
	e.Metadata = map[string]interface{}{"model": model}
	return e
}

func NewDatasetNotFoundError(dataset string, cause error) *StandardError {
	e := newError(ErrCodeDatasetNotFound, fmt.Sprintf("Dataset %s not found", dataset), cause, false)
	e.Metadata = map[string]interface{}{"dataset": dataset}
	return e
}

func NewColumnNotFoundError(dataset, column string) *StandardError {
	return &StandardError{
		Code:      ErrCodeColumnNotFound,
		Message:   fmt.Sprintf("Column %s not found in %s", column, dataset),
		Retryable: false,
		Metadata:  map[string]interface{}{"dataset": dataset, "column": column},
		Timestamp: time.Now().UTC(),
	}
}

func NewAnalysisFailedError(analysis string, cause error) *StandardError {
	return newError(ErrCodeAnalysisFailed, fmt.Sprintf("%s analysis failed", analysis), cause, false)
}

func NewQueryTimeoutError(dataset string) *StandardError {
	return &StandardError{
		Code:      ErrCodeQueryTimeout,
		Message:   "Database query timeout",
		Details:   fmt.Sprintf("dataset: %s", dataset),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

func NewSearchQueryFailedError(index string, cause error) *StandardError {
	e := newError(ErrCodeSearchQueryFailed, "Elasticsearch query error", cause, true)
	e.Metadata = map[string]interface{}{"index": index}
	return e
}

func NewAIClassificationFailedError(cause error) *StandardError {
	return newError(ErrCodeAIClassificationFailed, "AI intent classification failed", cause, false)
}

func NewAITimeoutError(stage string) *StandardError {
	return &StandardError{
		Code:      ErrCodeAITimeout,
		Message:   "Generative service timeout",
		Details:   fmt.Sprintf("stage: %s", stage),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

func NewFormatFailedError(cause error) *StandardError {
	return newError(ErrCodeFormatFailed, "Insight formatting failed", cause, false)
}

func NewAlertSendFailedError(channel string, cause error) *StandardError {
	e := newError(ErrCodeAlertSendFailed, "Alert delivery failed", cause, true)
	e.Metadata = map[string]interface{}{"channel": channel}
	return e
}

func NewInternalError(cause error) *StandardError {
	return newError(ErrCodeInternal, "Unexpected error", cause, false)
}

// Classify returns the StandardError carried by err, or wraps err as an
// internal error. Context deadlines map to a timeout.
func Classify(err error) *StandardError {
	if err == nil {
		return nil
	}
	var stdErr *StandardError
	if stderrors.As(err, &stdErr) {
		return stdErr
	}
	if stderrors.Is(err, context.DeadlineExceeded) {
		return newError(ErrCodeAITimeout, "Operation timed out", err, true)
	}
	return NewInternalError(err)
}

// HTTPStatus maps an error code to the status returned by the HTTP surface.
func HTTPStatus(code ErrorCode) int {
	switch code {
	case ErrCodeQuestionMissing, ErrCodeInvalidRequest:
		return http.StatusBadRequest
	case ErrCodeModelNotFound, ErrCodeDatasetNotFound, ErrCodeColumnNotFound:
		return http.StatusNotFound
	case ErrCodeQueryTimeout, ErrCodeAITimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

var BPMNErrorMapping = map[ErrorCode]string{
	ErrCodeQuestionMissing:        "QUESTION_MISSING",
	ErrCodeInvalidRequest:         "INVALID_REQUEST",
	ErrCodeModelNotFound:          "MODEL_NOT_FOUND",
	ErrCodeModelLoadFailed:        "MODEL_LOAD_FAILED",
	ErrCodeDatasetNotFound:        "DATASET_NOT_FOUND",
	ErrCodeColumnNotFound:         "COLUMN_NOT_FOUND",
	ErrCodeAnalysisFailed:         "ANALYSIS_FAILED",
	ErrCodeQueryTimeout:           "QUERY_TIMEOUT",
	ErrCodeSearchQueryFailed:      "SEARCH_QUERY_FAILED",
	ErrCodeAIClassificationFailed: "AI_CLASSIFICATION_FAILED",
	ErrCodeAITimeout:              "AI_TIMEOUT",
	ErrCodeFormatFailed:           "FORMAT_FAILED",
	ErrCodeAlertSendFailed:        "ALERT_SEND_FAILED",
}

func GetRetryCount(code ErrorCode) int {
	switch code {
	case ErrCodeModelLoadFailed,
		ErrCodeSearchQueryFailed,
		ErrCodeAlertSendFailed:
		return 3
	case ErrCodeQueryTimeout,
		ErrCodeAITimeout:
		return 2
	default:
		return 0
	}
}

func ConvertToBPMNError(stdErr *StandardError) *BPMNError {
	bpmnCode, exists := BPMNErrorMapping[stdErr.Code]
	if !exists {
		bpmnCode = string(stdErr.Code)
	}

	retries := GetRetryCount(stdErr.Code)
	if !stdErr.Retryable {
		retries = 0
	}

	return &BPMNError{
		Code:      bpmnCode,
		Message:   stdErr.Message,
		Details:   stdErr.Details,
		Retryable: stdErr.Retryable,
		Retries:   retries,
		ErrorVariables: map[string]interface{}{
			"originalErrorCode": string(stdErr.Code),
			"timestamp":         stdErr.Timestamp.Format(time.RFC3339),
		},
	}
}

func IsRetryableErrorCode(code ErrorCode) bool {
	return GetRetryCount(code) > 0
}

func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.Contains(codeStr, "QUESTION") || strings.Contains(codeStr, "REQUEST"):
		return "VALIDATION"
	case strings.Contains(codeStr, "MODEL"):
		return "MODEL"
	case strings.Contains(codeStr, "DATASET") || strings.Contains(codeStr, "COLUMN") || strings.Contains(codeStr, "QUERY"):
		return "DATA"
	case strings.HasPrefix(codeStr, "AI_") || strings.Contains(codeStr, "FORMAT"):
		return "AI"
	case strings.Contains(codeStr, "ALERT"):
		return "NOTIFICATION"
	case strings.Contains(codeStr, "ANALYSIS"):
		return "ANALYTICS"
	default:
		return "OTHER"
	}
}
