package form

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/Sachintlgt/brd-admin-sub000/internal/api"
	"github.com/Sachintlgt/brd-admin-sub000/internal/dtos"
	"github.com/Sachintlgt/brd-admin-sub000/internal/utils"
)

// Status is the submission state machine. Any edit returns the form to
// StatusIdle.
type Status int

const (
	StatusIdle Status = iota
	StatusValidating
	StatusSubmitting
	StatusSucceeded
	StatusFailed
)

// PropertyAPI is the slice of the API client the form needs.
type PropertyAPI interface {
	CreateProperty(ctx context.Context, payload *api.Payload) (*dtos.Property, error)
	UpdateProperty(ctx context.Context, id string, payload *api.Payload) (*dtos.Property, error)
}

// Notifier surfaces outcome messages to whatever front end embeds the form.
type Notifier interface {
	Success(msg string)
	Error(msg string)
}

// ErrSubmitInFlight is returned when Submit is called while a previous
// submission has not resolved yet.
var ErrSubmitInFlight = errors.New("a submission is already in flight")

// ErrValidationFailed signals local validation blocked the submit; the
// per-field messages are on Form.FieldErrors().
var ErrValidationFailed = errors.New("validation failed")

const listRoute = "/properties"

// Options wires the form's side-effect collaborators.
type Options struct {
	Notifier       Notifier
	Navigate       func(route string)  // called after NavigateDelay on success
	InvalidateList func()              // list cache invalidation hook
	NavigateDelay  time.Duration       // defaults to 1500ms
	Sleep          func(time.Duration) // injectable for tests
}

// Form owns the master draft state: every scalar field plus one controller
// per sub-entity family. One Form instance backs one create or edit
// session.
type Form struct {
	mu sync.Mutex

	mode       api.Mode
	propertyID string

	Scalars api.Scalars

	Amenities    *ItemList
	Certificates *ItemList
	FloorPlans   *ItemList
	Documents    *ItemList
	Images       *ItemList
	Videos       *ItemList

	Pricing     *RecordList[dtos.PricingDetail]
	Shares      *RecordList[dtos.ShareDetail]
	Maintenance *RecordList[dtos.MaintenanceTemplate]
	Plans       *RecordList[dtos.PaymentPlan]
	Highlights  *RecordList[dtos.Highlight]

	client PropertyAPI
	opts   Options

	status      Status
	submitting  bool
	fieldErrors FieldErrors
	bannerError string
	permission  bool
}

// NewCreateForm starts an empty create session.
func NewCreateForm(client PropertyAPI, opts Options) *Form {
	f := &Form{mode: api.ModeCreate, client: client, opts: normalizeOptions(opts)}
	f.initControllers(nil)
	return f
}

// NewEditForm starts an edit session seeded from a fetched property.
func NewEditForm(client PropertyAPI, p *dtos.Property, opts Options) *Form {
	f := &Form{
		mode:       api.ModeUpdate,
		propertyID: p.ID,
		client:     client,
		opts:       normalizeOptions(opts),
		Scalars:    scalarsFromProperty(p),
	}
	f.initControllers(p)
	return f
}

func normalizeOptions(opts Options) Options {
	if opts.NavigateDelay <= 0 {
		opts.NavigateDelay = 1500 * time.Millisecond
	}
	if opts.Sleep == nil {
		opts.Sleep = time.Sleep
	}
	if opts.Navigate == nil {
		opts.Navigate = func(string) {}
	}
	if opts.InvalidateList == nil {
		opts.InvalidateList = func() {}
	}
	if opts.Notifier == nil {
		opts.Notifier = nopNotifier{}
	}
	return opts
}

type nopNotifier struct{}

func (nopNotifier) Success(string) {}
func (nopNotifier) Error(string)   {}

func (f *Form) initControllers(p *dtos.Property) {
	var amenities, certificates, floorPlans, documents, images, videos []dtos.SubAsset
	if p != nil {
		amenities, certificates, floorPlans = p.Amenities, p.Certificates, p.FloorPlans
		documents, images, videos = p.Documents, p.Images, p.Videos
	}
	f.Amenities = NewItemList(FamilyAmenities, amenities)
	f.Certificates = NewItemList(FamilyCertificates, certificates)
	f.FloorPlans = NewItemList(FamilyFloorPlans, floorPlans)
	f.Documents = NewItemList(FamilyDocuments, documents)
	f.Images = NewItemList(FamilyImages, images)
	f.Videos = NewItemList(FamilyVideos, videos)

	if p != nil {
		f.Pricing = NewRecordList(p.PricingDetails)
		f.Shares = NewRecordList(p.ShareDetails)
		f.Maintenance = NewRecordList(p.MaintenanceTemplates)
		f.Plans = NewRecordList(p.PaymentPlans)
		f.Highlights = NewRecordList(p.Highlights)
	} else {
		f.Pricing = NewRecordList[dtos.PricingDetail](nil)
		f.Shares = NewRecordList[dtos.ShareDetail](nil)
		f.Maintenance = NewRecordList[dtos.MaintenanceTemplate](nil)
		f.Plans = NewRecordList[dtos.PaymentPlan](nil)
		f.Highlights = NewRecordList[dtos.Highlight](nil)
	}
}

func scalarsFromProperty(p *dtos.Property) api.Scalars {
	s := api.Scalars{
		Name:             p.Name,
		Location:         p.Location,
		FormattedAddress: p.FormattedAddress,
		PlaceID:          p.PlaceID,
		Description:      p.Description,
		PossessionDate:   p.PossessionDate,
		LaunchDate:       p.LaunchDate,
	}
	if p.Latitude != 0 || p.Longitude != 0 {
		lat, lng := p.Latitude, p.Longitude
		s.Latitude, s.Longitude = &lat, &lng
	}
	if p.Zoom != 0 {
		z := p.Zoom
		s.Zoom = &z
	}
	beds, occ, total, avail, days := p.Beds, p.MaxOccupancy, p.TotalShares, p.AvailableShares, p.MaxBookingDays
	s.Beds, s.MaxOccupancy, s.TotalShares, s.AvailableShares, s.MaxBookingDays = &beds, &occ, &total, &avail, &days
	bath, sqft := p.Bathrooms, p.Sqft
	s.Bathrooms, s.Sqft = &bath, &sqft
	ipps, cpps, wup := p.InitialPricePerShare, p.CurrentPricePerShare, p.WholeUnitPrice
	s.InitialPricePerShare, s.CurrentPricePerShare, s.WholeUnitPrice = &ipps, &cpps, &wup
	irr, yield, appr := p.TargetIRR, p.TargetRentalYield, p.AppreciationRate
	s.TargetIRR, s.TargetRentalYield, s.AppreciationRate = &irr, &yield, &appr
	amt, gst := p.BookingAmount, p.BookingAmountGST
	s.BookingAmount, s.BookingAmountGST = &amt, &gst
	active, featured := p.IsActive, p.IsFeatured
	s.IsActive, s.IsFeatured = &active, &featured
	return s
}

// Status reports the current submission state.
func (f *Form) Status() Status {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.status
}

// FieldErrors returns the per-field messages of the last failed attempt.
func (f *Form) FieldErrors() FieldErrors {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.fieldErrors
}

// BannerError returns the last non-field-addressed failure message.
func (f *Form) BannerError() (msg string, permission bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.bannerError, f.permission
}

// Touch marks the form edited: any edit after an attempt returns the state
// machine to Idle. Section controllers call into local state directly, so
// UI glue invokes Touch alongside.
func (f *Form) Touch() {
	f.mu.Lock()
	defer f.mu.Unlock()
	if !f.submitting {
		f.status = StatusIdle
	}
}

// Submit runs Idle -> Validating -> Submitting -> {Succeeded | Failed}.
// Fragments and scalars are snapshotted together before anything leaves
// the process, so every family's slice reflects the same state.
func (f *Form) Submit(ctx context.Context) (*dtos.Property, error) {
	f.mu.Lock()
	if f.submitting {
		f.mu.Unlock()
		return nil, ErrSubmitInFlight
	}
	f.submitting = true
	f.status = StatusValidating
	f.fieldErrors = nil
	f.bannerError = ""
	f.permission = false

	// Single consistent snapshot of the whole form.
	input := f.payloadInput()
	fieldErrs := f.validateLocked()
	if len(fieldErrs) > 0 {
		f.fieldErrors = fieldErrs
		f.status = StatusFailed
		f.submitting = false
		f.mu.Unlock()
		return nil, ErrValidationFailed
	}
	f.status = StatusSubmitting
	f.mu.Unlock()

	payload, err := api.BuildPropertyPayload(input)
	if err != nil {
		f.fail(err)
		return nil, err
	}

	var prop *dtos.Property
	if f.mode == api.ModeUpdate {
		prop, err = f.client.UpdateProperty(ctx, f.propertyID, payload)
	} else {
		prop, err = f.client.CreateProperty(ctx, payload)
	}
	if err != nil {
		f.fail(err)
		return nil, err
	}

	f.mu.Lock()
	f.status = StatusSucceeded
	f.submitting = false
	f.mu.Unlock()

	if f.mode == api.ModeUpdate {
		f.opts.Notifier.Success("Property updated successfully")
	} else {
		f.opts.Notifier.Success("Property created successfully")
	}
	f.opts.InvalidateList()
	// Let the user read the message before leaving the page.
	f.opts.Sleep(f.opts.NavigateDelay)
	f.opts.Navigate(listRoute)

	return prop, nil
}

// payloadInput snapshots scalars plus every controller fragment. Caller
// holds f.mu.
func (f *Form) payloadInput() api.PropertyPayloadInput {
	amenities := f.Amenities.Fragment()
	certificates := f.Certificates.Fragment()
	floorPlans := f.FloorPlans.Fragment()
	documents := f.Documents.Fragment()
	images := f.Images.Fragment()
	videos := f.Videos.Fragment()

	return api.PropertyPayloadInput{
		Mode:    f.mode,
		Scalars: f.Scalars,

		AmenityNames:  amenities.Names,
		DocumentNames: documents.Names,

		PricingDetails:       f.Pricing.Records(),
		ShareDetails:         f.Shares.Records(),
		MaintenanceTemplates: f.Maintenance.Records(),
		PaymentPlans:         f.Plans.Records(),
		Highlights:           f.Highlights.Records(),
		Certificates:         certificates.Records,
		FloorPlans:           floorPlans.Records,

		ImageIDsToDelete:       images.DeletionIDs,
		VideoIDsToDelete:       videos.DeletionIDs,
		DocumentIDsToDelete:    documents.DeletionIDs,
		CertificateIDsToDelete: certificates.DeletionIDs,
		FloorPlanIDsToDelete:   floorPlans.DeletionIDs,
		AmenityIDsToDelete:     amenities.DeletionIDs,

		PropertyImages:   images.Files,
		PropertyVideos:   videos.Files,
		Documents:        documents.Files,
		CertificateFiles: certificates.Files,
		FloorPlanImages:  floorPlans.Files,
		AmenityIcons:     amenities.Files,
	}
}

// fail maps a remote failure onto the form's error surface: field map when
// the backend returned one, a distinct permission banner for 403 permission
// denials, otherwise one generic banner falling back through server
// message -> error text -> per-operation default.
func (f *Form) fail(err error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.status = StatusFailed
	f.submitting = false

	var permErr *api.PermissionError
	if errors.As(err, &permErr) {
		f.permission = true
		f.bannerError = permErr.Message
		f.opts.Notifier.Error(permErr.Message)
		return
	}

	var apiErr *api.APIError
	if errors.As(err, &apiErr) {
		if len(apiErr.Fields) > 0 {
			f.fieldErrors = FieldErrors(apiErr.Fields)
			f.opts.Notifier.Error("Please fix the highlighted fields")
			return
		}
		if apiErr.Message != "" {
			f.bannerError = apiErr.Message
			f.opts.Notifier.Error(apiErr.Message)
			return
		}
	}

	msg := err.Error()
	if msg == "" {
		if f.mode == api.ModeUpdate {
			msg = "Failed to update property"
		} else {
			msg = "Failed to create property"
		}
	}
	f.bannerError = msg
	f.opts.Notifier.Error(msg)
	utils.Logger.WithError(err).Error("Property submission failed")
}
