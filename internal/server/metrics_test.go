package server

import (
	"context"
	"errors"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"

	"profilewizard/internal/domain"
	domaintypes "profilewizard/internal/domain/types"
)

type stubLocations struct{ err error }

func (s stubLocations) FetchChildren(context.Context, domain.Tier, string) ([]domain.LocationOption, error) {
	return []domain.LocationOption{}, s.err
}

func TestResultLabel(t *testing.T) {
	assert.Equal(t, "success", resultLabel(nil))
	assert.Equal(t, "invalid", resultLabel(&domain.ValidationError{}))
	assert.Equal(t, "invalid", resultLabel(&domain.UploadRejectedError{Reason: "x"}))
	assert.Equal(t, "conflict", resultLabel(&domain.ConflictError{Username: "x"}))
	assert.Equal(t, "unavailable", resultLabel(domaintypes.Unavailable("op", errors.New("down"))))
	assert.Equal(t, "error", resultLabel(errors.New("boom")))
}

func TestInstrumentedLocations(t *testing.T) {
	ok := lookupsTotal.WithLabelValues("state", "success")
	failed := lookupsTotal.WithLabelValues("city", "error")
	okBefore, failedBefore := testutil.ToFloat64(ok), testutil.ToFloat64(failed)

	_, _ = instrumentedLocations{next: stubLocations{}}.FetchChildren(context.Background(), domaintypes.TierState, "us")
	_, _ = instrumentedLocations{next: stubLocations{err: errors.New("down")}}.FetchChildren(context.Background(), domaintypes.TierCity, "ca")

	assert.Equal(t, okBefore+1, testutil.ToFloat64(ok))
	assert.Equal(t, failedBefore+1, testutil.ToFloat64(failed))
}

func TestRecordSubmissionMetric(t *testing.T) {
	c := submissionsTotal.WithLabelValues("conflict")
	before := testutil.ToFloat64(c)
	recordSubmissionMetric(&domain.ConflictError{Username: "gopher"})
	assert.Equal(t, before+1, testutil.ToFloat64(c))
}
