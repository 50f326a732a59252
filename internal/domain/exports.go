package domain

import (
	interfaces "profilewizard/internal/domain/interfaces"
	types "profilewizard/internal/domain/types"
)

// Type aliases expose domain types from the types subpackage for compact imports.
type (
	Username                = types.Username
	ProfileID               = types.ProfileID
	SessionID               = types.SessionID
	Step                    = types.Step
	Field                   = types.Field
	FieldErrors             = types.FieldErrors
	Photo                   = types.Photo
	FormState               = types.FormState
	ProfileRecord           = types.ProfileRecord
	StoredPhoto             = types.StoredPhoto
	SubmitResult            = types.SubmitResult
	Availability            = types.Availability
	Tier                    = types.Tier
	LocationOption          = types.LocationOption
	LocationTiers           = types.LocationTiers
	LoadingFlags            = types.LoadingFlags
	ValidationError         = types.ValidationError
	ConflictError           = types.ConflictError
	UploadRejectedError     = types.UploadRejectedError
	BackendUnavailableError = types.BackendUnavailableError
)

// Interface aliases expose domain interfaces from the interfaces subpackage.
type (
	ProfileStore        = interfaces.ProfileStore
	PhotoStore          = interfaces.PhotoStore
	LocationService     = interfaces.LocationService
	AvailabilityService = interfaces.AvailabilityService
	UploadService       = interfaces.UploadService
	ProfileService      = interfaces.ProfileService
)
