package audit

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEventCategory(t *testing.T) {
	assert.Equal(t, CategorySecurity, EventAuthorizationRejected.Category())
	assert.Equal(t, CategoryCompliance, EventSlashExecuted.Category())
	assert.Equal(t, CategoryCompliance, AuditEvent("unlisted").Category())
}
