package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"email-intake/internal/validator"
)

func TestObserveOutcome(t *testing.T) {
	SubmissionsTotal.Reset()
	RuleViolationsTotal.Reset()

	ObserveOutcome(validator.Validate("jane@example.com"))
	ObserveOutcome(validator.Validate("bad email"))
	ObserveOutcome(validator.Validate("john@@example.com"))

	assert.Equal(t, 1.0, testutil.ToFloat64(SubmissionsTotal.WithLabelValues(OutcomeValid)))
	assert.Equal(t, 2.0, testutil.ToFloat64(SubmissionsTotal.WithLabelValues(OutcomeInvalid)))
	assert.Equal(t, 1.0, testutil.ToFloat64(RuleViolationsTotal.WithLabelValues(validator.RuleNoSpaces)))
	assert.Equal(t, 1.0, testutil.ToFloat64(RuleViolationsTotal.WithLabelValues(validator.RuleMultipleAt)))
}

func TestHandler(t *testing.T) {
	ObserveOutcome(validator.Validate("jane@example.com"))

	req := httptest.NewRequest(http.MethodGet, "/metrics", nil)
	rec := httptest.NewRecorder()
	Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.True(t, strings.Contains(rec.Body.String(), "emailintake_submissions_total"))
}
