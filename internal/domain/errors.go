package domain

import "fmt"

// Persistable is implemented by every tenant-scoped entity so that the
// tenant checks can report which entity was involved.
type Persistable interface {
	GetTenantID() int64
	GetName() string
}

type EntityNotFoundError struct {
	EntityType string
	ID         int64
	forUpdate  bool
}

func NewEntityNotFound(entityType string, id int64) *EntityNotFoundError {
	return &EntityNotFoundError{EntityType: entityType, ID: id}
}

// NewEntityNotFoundForUpdate is the update-path variant with its own
// message form.
func NewEntityNotFoundForUpdate(entityType string, id int64) *EntityNotFoundError {
	return &EntityNotFoundError{EntityType: entityType, ID: id, forUpdate: true}
}

func (e *EntityNotFoundError) Error() string {
	if e.forUpdate {
		return fmt.Sprintf("%s entity with ID (%d) not found.", e.EntityType, e.ID)
	}
	return fmt.Sprintf("No %s entity found with ID (%d).", e.EntityType, e.ID)
}

type TenantMismatchError struct {
	GivenTenantID  int64
	Name           string
	ActualTenantID int64
}

func (e *TenantMismatchError) Error() string {
	return fmt.Sprintf("The tenantId (%d) does not match the persistable (%s)'s tenantId (%d).",
		e.GivenTenantID, e.Name, e.ActualTenantID)
}

type TenantChangeError struct {
	EntityType string
	TenantID   int64
}

func (e *TenantChangeError) Error() string {
	return fmt.Sprintf("%s entity with tenantId (%d) cannot change tenants.", e.EntityType, e.TenantID)
}

// IllegalStateError marks programming or configuration errors that are
// not user recoverable, such as a rotation employee index calculator
// producing an out-of-range index.
type IllegalStateError struct {
	Message string
}

func NewIllegalState(format string, args ...any) *IllegalStateError {
	return &IllegalStateError{Message: fmt.Sprintf(format, args...)}
}

func (e *IllegalStateError) Error() string {
	return e.Message
}

// ValidateTenantID checks that an entity belongs to the tenant named in
// the request path.
func ValidateTenantID(tenantID int64, p Persistable) error {
	if p.GetTenantID() != tenantID {
		return &TenantMismatchError{
			GivenTenantID:  tenantID,
			Name:           p.GetName(),
			ActualTenantID: p.GetTenantID(),
		}
	}
	return nil
}
