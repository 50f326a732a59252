package validation

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"profilewizard/internal/domain"
	domaintypes "profilewizard/internal/domain/types"
)

const (
	MinUsernameLength = 4
	MaxUsernameLength = 20
)

// Messages shown next to the offending field.
const (
	MsgPhotoRequired          = "Profile photo is required"
	MsgPhotoType              = "Only JPG and PNG files are allowed"
	MsgPhotoSize              = "File size must be less than 2MB"
	MsgUsernameRequired       = "Username is required"
	MsgUsernameLength         = "Username must be 4-20 characters"
	MsgUsernameSpaces         = "Username cannot contain spaces"
	MsgUsernameTaken          = "Username is already taken"
	MsgCurrentPasswordMissing = "Current password required to change password"
	MsgPasswordWeak           = "Password must be 8+ chars with 1 number and 1 special character"
	MsgProfessionRequired     = "Profession is required"
	MsgCompanyRequired        = "Company name is required for entrepreneurs"
	MsgAddressRequired        = "Address is required"
	MsgCountryRequired        = "Country is required"
	MsgStateRequired          = "State is required"
	MsgCityRequired           = "City is required"
	MsgPlanRequired           = "Subscription plan is required"
)

// ValidateStep returns the errors for step. A step is valid iff the result
// is empty. The summary step has no rules.
func ValidateStep(form domain.FormState, step domain.Step) domain.FieldErrors {
	errs := domain.FieldErrors{}
	switch step {
	case domaintypes.StepPersonal:
		validatePersonal(form, errs)
	case domaintypes.StepProfessional:
		validateProfessional(form, errs)
	case domaintypes.StepPreferences:
		validatePreferences(form, errs)
	}
	return errs
}

// ValidateAll runs every step's rules and merges the results.
func ValidateAll(form domain.FormState) domain.FieldErrors {
	errs := domain.FieldErrors{}
	for step := domaintypes.FirstStep; step < domaintypes.LastStep; step++ {
		for f, msg := range ValidateStep(form, step) {
			errs[f] = msg
		}
	}
	return errs
}

func validatePersonal(form domain.FormState, errs domain.FieldErrors) {
	if form.ProfilePhoto == nil {
		errs[domaintypes.FieldProfilePhoto] = MsgPhotoRequired
	} else if msg := CheckPhoto(*form.ProfilePhoto); msg != "" {
		errs[domaintypes.FieldProfilePhoto] = msg
	}

	if msg := CheckUsername(form.Username); msg != "" {
		errs[domaintypes.FieldUsername] = msg
	}

	if form.NewPassword != "" {
		if form.CurrentPassword == "" {
			errs[domaintypes.FieldCurrentPassword] = MsgCurrentPasswordMissing
		}
		if !IsStrongPassword(form.NewPassword) {
			errs[domaintypes.FieldNewPassword] = MsgPasswordWeak
		}
	}
}

func validateProfessional(form domain.FormState, errs domain.FieldErrors) {
	if strings.TrimSpace(form.Profession) == "" {
		errs[domaintypes.FieldProfession] = MsgProfessionRequired
	}
	if form.Profession == domaintypes.ProfessionEntrepreneur && strings.TrimSpace(form.CompanyName) == "" {
		errs[domaintypes.FieldCompanyName] = MsgCompanyRequired
	}
	if strings.TrimSpace(form.AddressLine1) == "" {
		errs[domaintypes.FieldAddressLine1] = MsgAddressRequired
	}
}

func validatePreferences(form domain.FormState, errs domain.FieldErrors) {
	if form.Country == "" {
		errs[domaintypes.FieldCountry] = MsgCountryRequired
	}
	if form.State == "" {
		errs[domaintypes.FieldState] = MsgStateRequired
	}
	if form.City == "" {
		errs[domaintypes.FieldCity] = MsgCityRequired
	}
	if form.SubscriptionPlan == "" {
		errs[domaintypes.FieldSubscriptionPlan] = MsgPlanRequired
	}
}

// CheckUsername returns the message for an unacceptable username, or "".
// Whitespace is reported over length since it is the more specific problem.
func CheckUsername(username string) string {
	if username == "" {
		return MsgUsernameRequired
	}
	msg := ""
	if n := utf8.RuneCountInString(username); n < MinUsernameLength || n > MaxUsernameLength {
		msg = MsgUsernameLength
	}
	if strings.IndexFunc(username, unicode.IsSpace) >= 0 {
		msg = MsgUsernameSpaces
	}
	return msg
}

// Checkable reports whether a username is long enough to be worth an
// availability lookup.
func Checkable(username string) bool {
	return utf8.RuneCountInString(username) >= MinUsernameLength
}

// CheckPhoto returns the message for a photo with the wrong type or size, or "".
func CheckPhoto(p domain.Photo) string {
	switch p.ContentType {
	case domaintypes.ContentTypeJPEG, domaintypes.ContentTypePNG:
	default:
		return MsgPhotoType
	}
	if p.Size() > domaintypes.MaxPhotoBytes {
		return MsgPhotoSize
	}
	return ""
}
