package main

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTenantNameFor(t *testing.T) {
	assert.Equal(t, "Demo Hospital", tenantNameFor("Demo Hospital", 0, 1))

	assert.Equal(t, "Demo Hospital 1", tenantNameFor("Demo Hospital", 0, 30))
	assert.Equal(t, "Demo Hospital 2", tenantNameFor("Demo Hospital", 1, 30))
	// stays a readable counter well past 26 tenants
	assert.Equal(t, "Demo Hospital 27", tenantNameFor("Demo Hospital", 26, 30))
}
