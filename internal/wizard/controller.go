package wizard

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"sync"
	"time"

	"github.com/go-logr/logr"

	"profilewizard/internal/domain"
	domaintypes "profilewizard/internal/domain/types"
	"profilewizard/internal/services/validation"
)

var (
	ErrUnknownField  = errors.New("unknown field")
	ErrTierDisabled  = errors.New("parent location not selected")
	ErrNotOnSummary  = errors.New("profile can only be submitted from the summary step")
	ErrSubmitPending = errors.New("submission already in progress")
	ErrClosed        = errors.New("wizard closed")
)

const (
	msgSubmitted    = "Profile updated successfully"
	msgSubmitFailed = "Failed to update profile"
	msgLookupFailed = "Could not load locations. Please try again."
)

// UsernameStatus is the availability indicator next to the username.
type UsernameStatus string

const (
	UsernameIdle      UsernameStatus = "idle"
	UsernameChecking  UsernameStatus = "checking"
	UsernameAvailable UsernameStatus = "available"
	UsernameTaken     UsernameStatus = "taken"
)

// Deps are the services a Controller talks to.
type Deps struct {
	Locations    domain.LocationService
	Availability domain.AvailabilityService
	Profiles     domain.ProfileService
	Debounce     time.Duration
	Log          logr.Logger
}

// View is a point-in-time copy of a wizard's visible state.
type View struct {
	Step             domain.Step          `json:"step"`
	Progress         float64              `json:"progress"`
	Form             domain.FormState     `json:"form"`
	Errors           domain.FieldErrors   `json:"errors"`
	Locations        domain.LocationTiers `json:"locations"`
	Loading          domain.LoadingFlags  `json:"loading"`
	Disabled         Disabled             `json:"disabled"`
	UsernameStatus   UsernameStatus       `json:"usernameStatus"`
	PasswordStrength float64              `json:"passwordStrength"`
	StrengthLabel    string               `json:"strengthLabel,omitempty"`
	Submitting       bool                 `json:"submitting"`
	Notice           string               `json:"notice,omitempty"`
	Result           *domain.SubmitResult `json:"result,omitempty"`
}

// Controller drives one wizard. All methods are safe for concurrent use.
type Controller struct {
	availability domain.AvailabilityService
	profiles     domain.ProfileService
	log          logr.Logger

	cascade  *Cascade
	debounce *Debouncer

	ctx    context.Context
	cancel context.CancelFunc
	checks sync.WaitGroup

	mu         sync.Mutex
	form       domain.FormState
	errs       domain.FieldErrors
	username   UsernameStatus
	submitting bool
	notice     string
	result     *domain.SubmitResult
	closed     bool
}

// New returns a Controller with a fresh form. Call Start to begin loading
// countries.
func New(deps Deps) *Controller {
	delay := deps.Debounce
	if delay == 0 {
		delay = DefaultDebounce
	}
	ctx, cancel := context.WithCancel(context.Background())
	c := &Controller{
		availability: deps.Availability,
		profiles:     deps.Profiles,
		log:          deps.Log.WithName("wizard"),
		debounce:     NewDebouncer(delay),
		ctx:          ctx,
		cancel:       cancel,
		form:         domaintypes.NewFormState(),
		errs:         domain.FieldErrors{},
		username:     UsernameIdle,
	}
	c.cascade = NewCascade(deps.Locations, deps.Log, c.lookupFailed)
	return c
}

// Start loads the country tier.
func (c *Controller) Start() { c.cascade.Mount() }

// Close stops pending checks and lookups and waits for them to return.
func (c *Controller) Close() {
	c.mu.Lock()
	c.closed = true
	c.mu.Unlock()

	c.debounce.Cancel()
	c.cancel()
	c.cascade.Close()
	c.checks.Wait()
}

// Wait blocks until in-flight lookups and availability checks have
// returned. Pending debounce timers are not waited for.
func (c *Controller) Wait() {
	c.cascade.Wait()
	c.checks.Wait()
}

// Update sets field to value and clears that field's error. Booleans are
// parsed with strconv.ParseBool. Photos go through SetPhoto.
func (c *Controller) Update(field domain.Field, value string) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClosed
	}

	switch field {
	case domaintypes.FieldUsername:
		c.form.Username = value
		c.username = UsernameIdle
		if validation.Checkable(value) {
			c.debounce.Schedule(func(gen uint64) { c.checkUsername(gen, value) })
		} else {
			c.debounce.Cancel()
		}
	case domaintypes.FieldCurrentPassword:
		c.form.CurrentPassword = value
	case domaintypes.FieldNewPassword:
		c.form.NewPassword = value
	case domaintypes.FieldProfession:
		c.form.Profession = value
		if value != domaintypes.ProfessionEntrepreneur {
			c.form.CompanyName = ""
		}
	case domaintypes.FieldCompanyName:
		c.form.CompanyName = value
	case domaintypes.FieldAddressLine1:
		c.form.AddressLine1 = value
	case domaintypes.FieldCountry:
		// Re-selecting the same country only retries a failed state lookup.
		if value == c.form.Country && !c.retryLookup(domaintypes.TierState, value) {
			break
		}
		c.form.Country = value
		c.form.State = ""
		c.form.City = ""
		c.cascade.SelectCountry(value)
	case domaintypes.FieldState:
		if c.form.Country == "" {
			return fmt.Errorf("state: %w", ErrTierDisabled)
		}
		if value == c.form.State && !c.retryLookup(domaintypes.TierCity, value) {
			break
		}
		c.form.State = value
		c.form.City = ""
		c.cascade.SelectState(value)
	case domaintypes.FieldCity:
		if c.form.State == "" {
			return fmt.Errorf("city: %w", ErrTierDisabled)
		}
		c.form.City = value
	case domaintypes.FieldSubscriptionPlan:
		c.form.SubscriptionPlan = value
	case domaintypes.FieldNewsletter:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("newsletter: %w", err)
		}
		c.form.Newsletter = b
	default:
		return fmt.Errorf("%w %q", ErrUnknownField, field)
	}
	delete(c.errs, field)
	return nil
}

// SetPhoto validates photo and, if acceptable, makes it the profile photo.
// A rejected photo leaves the form unchanged and records the message as
// the photo's error.
func (c *Controller) SetPhoto(photo domain.Photo) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return ErrClosed
	}

	if msg := validation.CheckPhoto(photo); msg != "" {
		c.errs[domaintypes.FieldProfilePhoto] = msg
		return &domain.UploadRejectedError{Reason: msg}
	}
	p := photo
	p.Data = append([]byte(nil), photo.Data...)
	c.form.ProfilePhoto = &p
	delete(c.errs, domaintypes.FieldProfilePhoto)
	return nil
}

// Advance validates the current step and moves forward on success. It
// reports whether the step changed; on failure the step's errors replace
// the current ones.
func (c *Controller) Advance() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	errs := validation.ValidateStep(c.form, c.form.Step)
	c.errs = errs
	if !errs.Empty() {
		return false
	}
	if c.form.Step < domaintypes.LastStep {
		c.form.Step++
	}
	return true
}

// Retreat moves back one step without validating.
func (c *Controller) Retreat() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.form.Step > domaintypes.FirstStep {
		c.form.Step--
	}
}

// Submit re-validates the preferences step and sends a copy of the form to
// the profile service. The outcome is recorded as the notice; the form
// stays editable either way.
func (c *Controller) Submit(ctx context.Context) (domain.SubmitResult, error) {
	c.mu.Lock()
	switch {
	case c.closed:
		c.mu.Unlock()
		return domain.SubmitResult{}, ErrClosed
	case c.form.Step != domaintypes.StepSummary:
		c.mu.Unlock()
		return domain.SubmitResult{}, ErrNotOnSummary
	case c.submitting:
		c.mu.Unlock()
		return domain.SubmitResult{}, ErrSubmitPending
	}
	errs := validation.ValidateStep(c.form, domaintypes.StepPreferences)
	if !errs.Empty() {
		c.errs = errs
		c.mu.Unlock()
		return domain.SubmitResult{}, &domain.ValidationError{Fields: errs}
	}
	snapshot := c.form.Clone()
	c.submitting = true
	c.notice = ""
	c.mu.Unlock()

	res, err := c.profiles.SubmitProfile(ctx, snapshot)

	c.mu.Lock()
	defer c.mu.Unlock()
	c.submitting = false
	if err != nil {
		c.notice = submitFailure(err)
		var conflict *domain.ConflictError
		var invalid *domain.ValidationError
		switch {
		case errors.As(err, &conflict):
			c.errs[domaintypes.FieldUsername] = validation.MsgUsernameTaken
			c.username = UsernameTaken
		case errors.As(err, &invalid):
			for f, msg := range invalid.Fields {
				c.errs[f] = msg
			}
		}
		c.log.Info("submission failed", "username", snapshot.Username, "error", err.Error())
		return domain.SubmitResult{}, err
	}
	c.notice = msgSubmitted
	c.result = &res
	c.log.Info("submission succeeded", "id", res.ID)
	return res, nil
}

// Snapshot returns a copy of the wizard's visible state.
func (c *Controller) Snapshot() View {
	tiers, loading, disabled := c.cascade.Snapshot()

	c.mu.Lock()
	defer c.mu.Unlock()

	v := View{
		Step:           c.form.Step,
		Progress:       Progress(c.form.Step),
		Form:           c.form.Clone(),
		Errors:         c.errs.Clone(),
		Locations:      tiers,
		Loading:        loading,
		Disabled:       disabled,
		UsernameStatus: c.username,
		Submitting:     c.submitting,
		Notice:         c.notice,
	}
	if c.form.NewPassword != "" {
		v.PasswordStrength = validation.PasswordStrength(c.form.NewPassword)
		v.StrengthLabel = validation.StrengthLabel(v.PasswordStrength)
	}
	if c.result != nil {
		res := *c.result
		v.Result = &res
	}
	return v
}

// Progress is the completion percentage shown for step.
func Progress(step domain.Step) float64 {
	return float64(step) / float64(domaintypes.LastStep) * 100
}

// checkUsername runs on the debounce timer's goroutine.
func (c *Controller) checkUsername(gen uint64, candidate string) {
	c.mu.Lock()
	if c.closed || !c.debounce.Current(gen) {
		c.mu.Unlock()
		return
	}
	c.username = UsernameChecking
	c.checks.Add(1)
	c.mu.Unlock()
	defer c.checks.Done()

	res := c.availability.CheckAvailability(c.ctx, domain.Username(candidate))

	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed || !c.debounce.Current(gen) || c.form.Username != candidate {
		return
	}
	if res.Available {
		c.username = UsernameAvailable
		return
	}
	c.username = UsernameTaken
	c.errs[domaintypes.FieldUsername] = validation.MsgUsernameTaken
}

// retryLookup reports whether child's last lookup under parent failed and,
// if so, clears the failure notice. Callers hold mu.
func (c *Controller) retryLookup(child domain.Tier, parent string) bool {
	if parent == "" || !c.cascade.Failed(child) {
		return false
	}
	if c.notice == msgLookupFailed {
		c.notice = ""
	}
	return true
}

func (c *Controller) lookupFailed(domain.Tier, error) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.notice = msgLookupFailed
}

func submitFailure(err error) string {
	if msg := err.Error(); msg != "" {
		return msg
	}
	return msgSubmitFailed
}
