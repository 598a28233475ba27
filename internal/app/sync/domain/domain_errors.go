package domain

import "errors"

// Domain errors as sentinel values
var (
	// Customer errors
	ErrCustomerNotFound = errors.New("customer not found")
	ErrEmptyCustomerID  = errors.New("customer id cannot be empty")
	ErrEmptySalesOrg    = errors.New("sales org cannot be empty")

	// Material errors
	ErrMaterialNotFound         = errors.New("material not found")
	ErrEmptyMaterialNumber      = errors.New("material number cannot be empty")
	ErrCustomerMaterialNotFound = errors.New("customer material not found")

	// Position number errors
	ErrPosnrEmpty     = errors.New("position number cannot be empty")
	ErrPosnrLength    = errors.New("position number must be exactly 6 characters")
	ErrPosnrNotDigits = errors.New("position number must contain only digits")
	ErrPosnrRange     = errors.New("position number must be between 0 and 999999")

	// Sync errors
	ErrSyncRunNotFound    = errors.New("sync run not found")
	ErrSyncInProgress     = errors.New("a sync is already in progress for this customer")
	ErrInvalidLockKey     = errors.New("invalid sync lock key format")
	ErrSalesOrgUnresolved = errors.New("sales org could not be resolved from command or context")
)
