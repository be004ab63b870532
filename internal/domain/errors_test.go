package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntityNotFoundMessages(t *testing.T) {
	assert.Equal(t, "No Spot entity found with ID (12).",
		NewEntityNotFound("Spot", 12).Error())
	assert.Equal(t, "Employee entity with ID (34) not found.",
		NewEntityNotFoundForUpdate("Employee", 34).Error())
}

func TestTenantMismatchMessage(t *testing.T) {
	err := &TenantMismatchError{GivenTenantID: 2, Name: "Emergency ward", ActualTenantID: 1}
	assert.Equal(t, "The tenantId (2) does not match the persistable (Emergency ward)'s tenantId (1).",
		err.Error())
}

func TestTenantChangeMessage(t *testing.T) {
	err := &TenantChangeError{EntityType: "Skill", TenantID: 5}
	assert.Equal(t, "Skill entity with tenantId (5) cannot change tenants.", err.Error())
}

func TestNewIllegalState(t *testing.T) {
	err := NewIllegalState("The rotationLength (%d) must be positive.", -3)
	assert.Equal(t, "The rotationLength (-3) must be positive.", err.Error())
}

func TestValidateTenantID(t *testing.T) {
	spot := &Spot{ID: 1, TenantID: 1, Name: "Emergency ward"}

	require.NoError(t, ValidateTenantID(1, spot))

	err := ValidateTenantID(2, spot)
	var mismatch *TenantMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, int64(2), mismatch.GivenTenantID)
	assert.Equal(t, int64(1), mismatch.ActualTenantID)
	assert.Equal(t, "Emergency ward", mismatch.Name)
}
