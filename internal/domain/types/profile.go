package types

import "time"

const (
	ProfessionStudent      = "Student"
	ProfessionDeveloper    = "Developer"
	ProfessionEntrepreneur = "Entrepreneur"

	PlanBasic      = "Basic"
	PlanPro        = "Pro"
	PlanEnterprise = "Enterprise"

	ContentTypeJPEG = "image/jpeg"
	ContentTypePNG  = "image/png"

	// MaxPhotoBytes is the largest accepted profile photo (2 MiB).
	MaxPhotoBytes = 2 * 1024 * 1024
)

// Photo is an uploaded profile image held in memory until submission.
type Photo struct {
	Filename    string `json:"filename"`
	ContentType string `json:"contentType"`
	Data        []byte `json:"-"`
}

// Size returns the payload length in bytes.
func (p Photo) Size() int { return len(p.Data) }

// FormState holds every value collected by the wizard plus the current step.
type FormState struct {
	Step             Step   `json:"step"`
	ProfilePhoto     *Photo `json:"profilePhoto,omitempty"`
	Username         string `json:"username"`
	CurrentPassword  string `json:"-"`
	NewPassword      string `json:"-"`
	Profession       string `json:"profession"`
	CompanyName      string `json:"companyName"`
	AddressLine1     string `json:"addressLine1"`
	Country          string `json:"country"`
	State            string `json:"state"`
	City             string `json:"city"`
	SubscriptionPlan string `json:"subscriptionPlan"`
	Newsletter       bool   `json:"newsletter"`
}

// NewFormState returns the initial state of a fresh wizard.
func NewFormState() FormState {
	return FormState{
		Step:             FirstStep,
		SubscriptionPlan: PlanBasic,
		Newsletter:       true,
	}
}

// Clone returns a deep copy; the photo payload is copied too.
func (s FormState) Clone() FormState {
	out := s
	if s.ProfilePhoto != nil {
		p := *s.ProfilePhoto
		p.Data = append([]byte(nil), s.ProfilePhoto.Data...)
		out.ProfilePhoto = &p
	}
	return out
}

// ProfileRecord is the document handed to the persistence boundary.
type ProfileRecord struct {
	ID               ProfileID `json:"id"`
	Username         Username  `json:"username"`
	Profession       string    `json:"profession"`
	CompanyName      string    `json:"companyName,omitempty"`
	AddressLine1     string    `json:"addressLine1"`
	Country          string    `json:"country"`
	State            string    `json:"state"`
	City             string    `json:"city"`
	SubscriptionPlan string    `json:"subscriptionPlan"`
	Newsletter       bool      `json:"newsletter"`
	PasswordHash     string    `json:"passwordHash,omitempty"`
	PhotoPath        string    `json:"photoPath,omitempty"`
	CreatedAt        time.Time `json:"createdAt"`
	UpdatedAt        time.Time `json:"updatedAt"`
}

// StoredPhoto references a photo accepted by the upload boundary.
type StoredPhoto struct {
	Filename string `json:"filename"`
	URL      string `json:"url"`
}

// SubmitResult is returned after a profile has been persisted.
type SubmitResult struct {
	ID      ProfileID `json:"id"`
	Message string    `json:"message"`
}

// Availability is the outcome of a username check.
type Availability struct {
	Available bool `json:"available"`
}
