package types

import "fmt"

// Username identifies a profile. Usernames are unique across the store.
type Username string

// String returns the string form of the username.
func (u Username) String() string { return string(u) }

// ProfileID is the identifier generated by the persistence layer.
type ProfileID string

// String returns the string form of the identifier.
func (id ProfileID) String() string { return string(id) }

// SessionID identifies an in-memory wizard session.
type SessionID string

// String returns the string form of the session identifier.
func (id SessionID) String() string { return string(id) }

// Step is a 1-based wizard step index.
type Step int

const (
	StepPersonal     Step = 1
	StepProfessional Step = 2
	StepPreferences  Step = 3
	StepSummary      Step = 4

	FirstStep = StepPersonal
	LastStep  = StepSummary
)

// String returns a short name for the step.
func (s Step) String() string {
	switch s {
	case StepPersonal:
		return "personal"
	case StepProfessional:
		return "professional"
	case StepPreferences:
		return "preferences"
	case StepSummary:
		return "summary"
	default:
		return fmt.Sprintf("step(%d)", int(s))
	}
}

// Field names one member of FormState.
type Field string

const (
	FieldProfilePhoto     Field = "profilePhoto"
	FieldUsername         Field = "username"
	FieldCurrentPassword  Field = "currentPassword"
	FieldNewPassword      Field = "newPassword"
	FieldProfession       Field = "profession"
	FieldCompanyName      Field = "companyName"
	FieldAddressLine1     Field = "addressLine1"
	FieldCountry          Field = "country"
	FieldState            Field = "state"
	FieldCity             Field = "city"
	FieldSubscriptionPlan Field = "subscriptionPlan"
	FieldNewsletter       Field = "newsletter"
)

// Fields lists every form field in display order.
var Fields = []Field{
	FieldProfilePhoto,
	FieldUsername,
	FieldCurrentPassword,
	FieldNewPassword,
	FieldProfession,
	FieldCompanyName,
	FieldAddressLine1,
	FieldCountry,
	FieldState,
	FieldCity,
	FieldSubscriptionPlan,
	FieldNewsletter,
}

// String returns the string form of the field name.
func (f Field) String() string { return string(f) }

// Valid reports whether f is one of the known form fields.
func (f Field) Valid() bool {
	for _, known := range Fields {
		if f == known {
			return true
		}
	}
	return false
}

// FieldErrors maps a field to a human readable message.
type FieldErrors map[Field]string

// Empty reports whether there are no errors.
func (e FieldErrors) Empty() bool { return len(e) == 0 }

// Clone returns an independent copy.
func (e FieldErrors) Clone() FieldErrors {
	out := make(FieldErrors, len(e))
	for k, v := range e {
		out[k] = v
	}
	return out
}
