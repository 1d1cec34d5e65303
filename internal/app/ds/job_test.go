package ds

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJobStatusValid(t *testing.T) {
	for _, s := range []JobStatus{JobStatusPending, JobStatusInProgress, JobStatusCompleted, JobStatusCancelled} {
		assert.True(t, s.Valid(), string(s))
	}
	assert.False(t, JobStatus("done").Valid())
	assert.False(t, JobStatus("").Valid())
}

func TestJobStatusInRevenue(t *testing.T) {
	// В выручку попадают все статусы кроме отмены, включая неначатые заказы
	assert.True(t, JobStatusPending.InRevenue())
	assert.True(t, JobStatusInProgress.InRevenue())
	assert.True(t, JobStatusCompleted.InRevenue())
	assert.False(t, JobStatusCancelled.InRevenue())
}

func TestPaymentMethodValid(t *testing.T) {
	for _, m := range AllPaymentMethods {
		assert.True(t, m.Valid(), string(m))
	}
	assert.False(t, PaymentMethod("crypto").Valid())
}

func TestServiceIsSystem(t *testing.T) {
	assert.True(t, (&Service{ID: 1}).IsSystem())
	assert.True(t, (&Service{ID: SystemServiceIDLimit}).IsSystem())
	assert.False(t, (&Service{ID: SystemServiceIDLimit + 1}).IsSystem())
	assert.False(t, (&Service{}).IsSystem())
}
