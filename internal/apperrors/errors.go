package apperrors

import "errors"

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrForbidden indicates that the authenticated user may not perform the action.
var ErrForbidden = errors.New("forbidden")

// ErrUnauthorized indicates missing or invalid credentials.
var ErrUnauthorized = errors.New("unauthorized")

// ErrConflict indicates the resource is in a state that rejects the operation.
var ErrConflict = errors.New("conflict")

// ErrStoreWrite indicates the ledger store rejected an append. The entry was
// not written; the caller decides whether to retry or surface the failure.
var ErrStoreWrite = errors.New("ledger store write failed")
