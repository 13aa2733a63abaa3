package entity

import "errors"

var (
	ErrServiceNotFound  = errors.New("service not found")
	ErrCampaignNotFound = errors.New("campaign not found")
	ErrContractNotFound = errors.New("contract not found")

	// ErrProtected is returned when a delete would orphan rows that still
	// reference the record (RESTRICT foreign keys).
	ErrProtected = errors.New("record is referenced by other records")
)
