package domain

import "errors"

var (
	ErrNotFound           = errors.New("resource not found")
	ErrUnauthorized       = errors.New("unauthorized")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrOperatorInactive   = errors.New("operator is inactive")
	ErrNoUpdatableFields  = errors.New("no fields to update")
	ErrInvalidCNPJ        = errors.New("cnpj must have 14 characters")

	// Import pipeline taxonomy. NoFile, InvalidArchive and FileTooLarge
	// fail the whole submission; the rest are local to a single entry.
	ErrNoFile              = errors.New("no archive payload supplied")
	ErrInvalidArchive      = errors.New("payload is not a readable zip archive")
	ErrFileTooLarge        = errors.New("archive exceeds maximum allowed size")
	ErrMalformedDocument   = errors.New("malformed xml document")
	ErrInvalidInvoice      = errors.New("invalid or missing invoice key")
	ErrDuplicateInvoiceKey = errors.New("invoice key already imported")
)
