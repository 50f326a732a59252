package wizard_test

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/go-logr/logr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"profilewizard/internal/domain"
	domaintypes "profilewizard/internal/domain/types"
	"profilewizard/internal/services/location"
	"profilewizard/internal/services/validation"
	"profilewizard/internal/wizard"
)

type fakeAvailability struct {
	mu    sync.Mutex
	taken map[domain.Username]bool
	calls []domain.Username
}

func (f *fakeAvailability) CheckAvailability(_ context.Context, u domain.Username) domain.Availability {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, u)
	return domain.Availability{Available: !f.taken[u]}
}

func (f *fakeAvailability) Calls() []domain.Username {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]domain.Username(nil), f.calls...)
}

type fakeProfiles struct {
	mu        sync.Mutex
	submitted []domain.FormState
	err       error
}

func (f *fakeProfiles) SubmitProfile(_ context.Context, form domain.FormState) (domain.SubmitResult, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.submitted = append(f.submitted, form)
	if f.err != nil {
		return domain.SubmitResult{}, f.err
	}
	return domain.SubmitResult{ID: "p-1", Message: "Profile created successfully!"}, nil
}

type fixture struct {
	ctrl     *wizard.Controller
	avail    *fakeAvailability
	profiles *fakeProfiles
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		avail:    &fakeAvailability{taken: map[domain.Username]bool{"taken1": true}},
		profiles: &fakeProfiles{},
	}
	f.ctrl = wizard.New(wizard.Deps{
		Locations:    location.New(logr.Discard(), location.Latency{}),
		Availability: f.avail,
		Profiles:     f.profiles,
		Debounce:     10 * time.Millisecond,
		Log:          logr.Discard(),
	})
	f.ctrl.Start()
	f.ctrl.Wait()
	t.Cleanup(f.ctrl.Close)
	return f
}

func pngPhoto() domain.Photo {
	return domain.Photo{
		Filename:    "me.png",
		ContentType: domaintypes.ContentTypePNG,
		Data:        bytes.Repeat([]byte{0x7}, 100*1024),
	}
}

func (f *fixture) update(t *testing.T, field domain.Field, value string) {
	t.Helper()
	require.NoError(t, f.ctrl.Update(field, value))
	f.ctrl.Wait()
}

// fillToSummary completes steps one to three and advances to the summary.
func (f *fixture) fillToSummary(t *testing.T) {
	t.Helper()
	require.NoError(t, f.ctrl.SetPhoto(pngPhoto()))
	f.update(t, domaintypes.FieldUsername, "gopher")
	require.Eventually(t, func() bool {
		return f.ctrl.Snapshot().UsernameStatus == wizard.UsernameAvailable
	}, time.Second, 5*time.Millisecond)
	require.True(t, f.ctrl.Advance())

	f.update(t, domaintypes.FieldProfession, domaintypes.ProfessionDeveloper)
	f.update(t, domaintypes.FieldAddressLine1, "1 Main St")
	require.True(t, f.ctrl.Advance())

	f.update(t, domaintypes.FieldCountry, "us")
	f.update(t, domaintypes.FieldState, "ca")
	f.update(t, domaintypes.FieldCity, "sf")
	f.update(t, domaintypes.FieldSubscriptionPlan, domaintypes.PlanPro)
	require.True(t, f.ctrl.Advance())
}

func TestController_InitialView(t *testing.T) {
	f := newFixture(t)
	v := f.ctrl.Snapshot()

	assert.Equal(t, domaintypes.StepPersonal, v.Step)
	assert.Equal(t, 25.0, v.Progress)
	assert.Equal(t, domaintypes.PlanBasic, v.Form.SubscriptionPlan)
	assert.True(t, v.Form.Newsletter)
	assert.Len(t, v.Locations.Countries, 4)
	assert.True(t, v.Disabled.States)
	assert.True(t, v.Disabled.Cities)
	assert.Equal(t, wizard.UsernameIdle, v.UsernameStatus)
	assert.Empty(t, v.Errors)
}

func TestController_AdvanceRequiresValidStep(t *testing.T) {
	f := newFixture(t)

	assert.False(t, f.ctrl.Advance())
	v := f.ctrl.Snapshot()
	assert.Equal(t, domaintypes.StepPersonal, v.Step)
	assert.Equal(t, validation.MsgPhotoRequired, v.Errors[domaintypes.FieldProfilePhoto])
	assert.Equal(t, validation.MsgUsernameRequired, v.Errors[domaintypes.FieldUsername])

	f.update(t, domaintypes.FieldUsername, "gopher")
	v = f.ctrl.Snapshot()
	assert.NotContains(t, v.Errors, domaintypes.FieldUsername)
	assert.Contains(t, v.Errors, domaintypes.FieldProfilePhoto, "other errors are kept")
}

func TestController_RetreatNeverValidates(t *testing.T) {
	f := newFixture(t)

	f.ctrl.Retreat()
	assert.Equal(t, domaintypes.StepPersonal, f.ctrl.Snapshot().Step)

	require.NoError(t, f.ctrl.SetPhoto(pngPhoto()))
	f.update(t, domaintypes.FieldUsername, "gopher")
	require.True(t, f.ctrl.Advance())
	f.ctrl.Retreat()

	v := f.ctrl.Snapshot()
	assert.Equal(t, domaintypes.StepPersonal, v.Step)
	assert.Empty(t, v.Errors)
}

func TestController_CascadeFollowsSelections(t *testing.T) {
	f := newFixture(t)

	err := f.ctrl.Update(domaintypes.FieldState, "ca")
	assert.ErrorIs(t, err, wizard.ErrTierDisabled)

	f.update(t, domaintypes.FieldCountry, "us")
	f.update(t, domaintypes.FieldState, "ca")
	f.update(t, domaintypes.FieldCity, "sf")
	v := f.ctrl.Snapshot()
	assert.Len(t, v.Locations.States, 3)
	assert.Len(t, v.Locations.Cities, 3)
	assert.False(t, v.Disabled.Cities)

	f.update(t, domaintypes.FieldCountry, "uk")
	v = f.ctrl.Snapshot()
	assert.Equal(t, "uk", v.Form.Country)
	assert.Empty(t, v.Form.State)
	assert.Empty(t, v.Form.City)
	assert.Equal(t, "en", v.Locations.States[0].ID)
	assert.Empty(t, v.Locations.Cities)
	assert.True(t, v.Disabled.Cities)
}

// flakyLocations fails the first lookup of failTier and then defers to the
// static table.
type flakyLocations struct {
	domain.LocationService
	failTier domain.Tier

	mu     sync.Mutex
	failed bool
	calls  int
}

func (f *flakyLocations) FetchChildren(ctx context.Context, tier domain.Tier, parent string) ([]domain.LocationOption, error) {
	f.mu.Lock()
	if tier == f.failTier {
		f.calls++
		if !f.failed {
			f.failed = true
			f.mu.Unlock()
			return nil, domaintypes.Unavailable("fetch "+tier.String()+" options", errors.New("timeout"))
		}
	}
	f.mu.Unlock()
	return f.LocationService.FetchChildren(ctx, tier, parent)
}

func (f *flakyLocations) Calls() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.calls
}

func newFlakyController(t *testing.T, failTier domain.Tier) (*wizard.Controller, *flakyLocations) {
	t.Helper()
	locs := &flakyLocations{
		LocationService: location.New(logr.Discard(), location.Latency{}),
		failTier:        failTier,
	}
	ctrl := wizard.New(wizard.Deps{
		Locations:    locs,
		Availability: &fakeAvailability{},
		Profiles:     &fakeProfiles{},
		Debounce:     10 * time.Millisecond,
		Log:          logr.Discard(),
	})
	ctrl.Start()
	ctrl.Wait()
	t.Cleanup(ctrl.Close)
	return ctrl, locs
}

func TestController_ReselectRetriesFailedLookup(t *testing.T) {
	t.Run("states", func(t *testing.T) {
		ctrl, locs := newFlakyController(t, domaintypes.TierState)

		require.NoError(t, ctrl.Update(domaintypes.FieldCountry, "us"))
		ctrl.Wait()
		v := ctrl.Snapshot()
		assert.Empty(t, v.Locations.States)
		assert.Equal(t, "Could not load locations. Please try again.", v.Notice)

		require.NoError(t, ctrl.Update(domaintypes.FieldCountry, "us"))
		ctrl.Wait()
		v = ctrl.Snapshot()
		assert.Equal(t, 2, locs.Calls())
		assert.Len(t, v.Locations.States, 3)
		assert.Empty(t, v.Notice)

		require.NoError(t, ctrl.Update(domaintypes.FieldCountry, "us"))
		ctrl.Wait()
		assert.Equal(t, 2, locs.Calls(), "a loaded tier is not fetched again")
	})

	t.Run("cities", func(t *testing.T) {
		ctrl, locs := newFlakyController(t, domaintypes.TierCity)

		require.NoError(t, ctrl.Update(domaintypes.FieldCountry, "us"))
		ctrl.Wait()
		require.NoError(t, ctrl.Update(domaintypes.FieldState, "ca"))
		ctrl.Wait()
		assert.Empty(t, ctrl.Snapshot().Locations.Cities)

		require.NoError(t, ctrl.Update(domaintypes.FieldState, "ca"))
		ctrl.Wait()
		v := ctrl.Snapshot()
		assert.Equal(t, 2, locs.Calls())
		assert.Equal(t, "ca", v.Form.State)
		assert.Len(t, v.Locations.Cities, 3)
	})
}

func TestController_ProfessionClearsCompany(t *testing.T) {
	f := newFixture(t)

	f.update(t, domaintypes.FieldProfession, domaintypes.ProfessionEntrepreneur)
	f.update(t, domaintypes.FieldCompanyName, "Acme")
	assert.Equal(t, "Acme", f.ctrl.Snapshot().Form.CompanyName)

	f.update(t, domaintypes.FieldProfession, domaintypes.ProfessionStudent)
	assert.Empty(t, f.ctrl.Snapshot().Form.CompanyName)
}

func TestController_UpdateRejectsBadInput(t *testing.T) {
	f := newFixture(t)

	assert.ErrorIs(t, f.ctrl.Update("favouriteColour", "blue"), wizard.ErrUnknownField)
	assert.ErrorIs(t, f.ctrl.Update(domaintypes.FieldProfilePhoto, "x"), wizard.ErrUnknownField)
	assert.Error(t, f.ctrl.Update(domaintypes.FieldNewsletter, "maybe"))

	f.update(t, domaintypes.FieldNewsletter, "false")
	assert.False(t, f.ctrl.Snapshot().Form.Newsletter)
}

func TestController_SetPhotoRejected(t *testing.T) {
	f := newFixture(t)

	err := f.ctrl.SetPhoto(domain.Photo{Filename: "a.gif", ContentType: "image/gif", Data: []byte("GIF89a")})
	assert.ErrorIs(t, err, domaintypes.ErrUploadRejected)

	big := pngPhoto()
	big.Data = make([]byte, domaintypes.MaxPhotoBytes+1)
	err = f.ctrl.SetPhoto(big)
	assert.ErrorIs(t, err, domaintypes.ErrUploadRejected)

	v := f.ctrl.Snapshot()
	assert.Nil(t, v.Form.ProfilePhoto)
	assert.Equal(t, validation.MsgPhotoSize, v.Errors[domaintypes.FieldProfilePhoto])

	require.NoError(t, f.ctrl.SetPhoto(pngPhoto()))
	assert.NotContains(t, f.ctrl.Snapshot().Errors, domaintypes.FieldProfilePhoto)
}

func TestController_UsernameCheckDebounced(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, f.ctrl.Update(domaintypes.FieldUsername, "gop"))
	for _, partial := range []string{"goph", "gophe", "gopher"} {
		require.NoError(t, f.ctrl.Update(domaintypes.FieldUsername, partial))
	}

	require.Eventually(t, func() bool {
		return f.ctrl.Snapshot().UsernameStatus == wizard.UsernameAvailable
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, []domain.Username{"gopher"}, f.avail.Calls())
}

func TestController_UsernameTaken(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, f.ctrl.Update(domaintypes.FieldUsername, "taken1"))
	require.Eventually(t, func() bool {
		return f.ctrl.Snapshot().UsernameStatus == wizard.UsernameTaken
	}, time.Second, 5*time.Millisecond)
	assert.Equal(t, validation.MsgUsernameTaken, f.ctrl.Snapshot().Errors[domaintypes.FieldUsername])

	require.NoError(t, f.ctrl.Update(domaintypes.FieldUsername, "abc"))
	v := f.ctrl.Snapshot()
	assert.Equal(t, wizard.UsernameIdle, v.UsernameStatus)
	assert.NotContains(t, v.Errors, domaintypes.FieldUsername)
}

func TestController_PasswordStrength(t *testing.T) {
	f := newFixture(t)

	f.update(t, domaintypes.FieldNewPassword, "abcdef1!")
	v := f.ctrl.Snapshot()
	assert.Equal(t, 75.0, v.PasswordStrength)
	assert.Equal(t, "Strong", v.StrengthLabel)
	assert.Equal(t, "abcdef1!", v.Form.NewPassword)
}

func TestController_SubmitSuccess(t *testing.T) {
	f := newFixture(t)
	f.fillToSummary(t)

	v := f.ctrl.Snapshot()
	require.Equal(t, domaintypes.StepSummary, v.Step)
	assert.Equal(t, 100.0, v.Progress)

	res, err := f.ctrl.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, domain.ProfileID("p-1"), res.ID)

	v = f.ctrl.Snapshot()
	assert.Equal(t, "Profile updated successfully", v.Notice)
	require.NotNil(t, v.Result)
	assert.Equal(t, res, *v.Result)
	assert.False(t, v.Submitting)

	require.Len(t, f.profiles.submitted, 1)
	got := f.profiles.submitted[0]
	assert.Equal(t, "gopher", got.Username)
	assert.Equal(t, "sf", got.City)
	assert.Equal(t, pngPhoto().Data, got.ProfilePhoto.Data)
}

func TestController_SubmitOnlyFromSummary(t *testing.T) {
	f := newFixture(t)

	_, err := f.ctrl.Submit(context.Background())
	assert.ErrorIs(t, err, wizard.ErrNotOnSummary)
	assert.Empty(t, f.profiles.submitted)
}

func TestController_SubmitRevalidatesPreferences(t *testing.T) {
	f := newFixture(t)
	f.fillToSummary(t)

	f.update(t, domaintypes.FieldCountry, "in")
	_, err := f.ctrl.Submit(context.Background())
	assert.ErrorIs(t, err, domaintypes.ErrValidation)
	assert.Empty(t, f.profiles.submitted, "no call is made for an invalid step")
	assert.Equal(t, validation.MsgStateRequired, f.ctrl.Snapshot().Errors[domaintypes.FieldState])
}

func TestController_SubmitConflict(t *testing.T) {
	f := newFixture(t)
	f.fillToSummary(t)
	f.profiles.err = &domain.ConflictError{Username: "gopher"}

	_, err := f.ctrl.Submit(context.Background())
	require.ErrorIs(t, err, domaintypes.ErrConflict)

	v := f.ctrl.Snapshot()
	assert.Equal(t, "Username already exists", v.Notice)
	assert.Equal(t, validation.MsgUsernameTaken, v.Errors[domaintypes.FieldUsername])
	assert.Equal(t, wizard.UsernameTaken, v.UsernameStatus)
	assert.Nil(t, v.Result)

	f.profiles.err = nil
	f.update(t, domaintypes.FieldUsername, "gopher2")
	_, err = f.ctrl.Submit(context.Background())
	assert.NoError(t, err, "form stays editable after a failure")
}

func TestController_SubmitBackendFailure(t *testing.T) {
	f := newFixture(t)
	f.fillToSummary(t)
	f.profiles.err = domaintypes.Unavailable("insert profile", errors.New("connection refused"))

	_, err := f.ctrl.Submit(context.Background())
	assert.ErrorIs(t, err, domaintypes.ErrBackendUnavailable)
	assert.Equal(t, "insert profile: connection refused", f.ctrl.Snapshot().Notice)
}

func TestController_ClosedRejectsUpdates(t *testing.T) {
	f := newFixture(t)
	f.ctrl.Close()

	assert.ErrorIs(t, f.ctrl.Update(domaintypes.FieldUsername, "gopher"), wizard.ErrClosed)
	assert.ErrorIs(t, f.ctrl.SetPhoto(pngPhoto()), wizard.ErrClosed)
}
