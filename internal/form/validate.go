package form

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/Sachintlgt/brd-admin-sub000/internal/files"
)

// FieldErrors maps a field address (e.g. "availableShares" or
// "pricingDetails[2].phaseName") to its messages.
type FieldErrors map[string][]string

func (e FieldErrors) add(field, msg string) {
	e[field] = append(e[field], msg)
}

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// Address errors by json name, matching what the backend sends back.
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

// scalarSchema is the required-field surface of the draft's scalar state.
type scalarSchema struct {
	Name                 string  `json:"name" validate:"required,max=256"`
	Location             string  `json:"location" validate:"required,max=512"`
	Description          string  `json:"description" validate:"required"`
	TotalShares          int     `json:"totalShares" validate:"required,gte=1"`
	AvailableShares      int     `json:"availableShares" validate:"gte=0,ltefield=TotalShares"`
	InitialPricePerShare float64 `json:"initialPricePerShare" validate:"required,gt=0"`
}

// validateLocked runs the full schema against the current draft: required
// scalars, the share-count invariant, per-record conditional rules, file
// policy per family, and the lockstep count cross-checks. Caller holds
// f.mu. Empty result means the draft may be submitted.
func (f *Form) validateLocked() FieldErrors {
	errs := FieldErrors{}

	f.validateScalars(errs)
	f.validateRecordFamilies(errs)
	f.validateItemFamilies(errs)
	f.validateLockstep(errs)

	if len(errs) == 0 {
		return nil
	}
	return errs
}

func (f *Form) validateScalars(errs FieldErrors) {
	s := scalarSchema{
		Name:        f.Scalars.Name,
		Location:    f.Scalars.Location,
		Description: f.Scalars.Description,
	}
	if f.Scalars.TotalShares != nil {
		s.TotalShares = *f.Scalars.TotalShares
	}
	// A required tag would reject a legitimate zero, so presence is checked
	// on the pointer instead.
	if f.Scalars.AvailableShares == nil {
		errs.add("availableShares", "This field is required")
	} else {
		s.AvailableShares = *f.Scalars.AvailableShares
	}
	if f.Scalars.InitialPricePerShare != nil {
		s.InitialPricePerShare = *f.Scalars.InitialPricePerShare
	}
	collect(errs, "", validate.Struct(s))
}

func (f *Form) validateRecordFamilies(errs FieldErrors) {
	for i, r := range f.Pricing.Records() {
		collect(errs, fmt.Sprintf("pricingDetails[%d].", i), validate.Struct(r))
	}
	for i, r := range f.Shares.Records() {
		collect(errs, fmt.Sprintf("shareDetails[%d].", i), validate.Struct(r))
	}
	for i, r := range f.Maintenance.Records() {
		collect(errs, fmt.Sprintf("maintenanceTemplates[%d].", i), validate.Struct(r))
	}
	for i, r := range f.Plans.Records() {
		collect(errs, fmt.Sprintf("paymentPlans[%d].", i), validate.Struct(r))
	}
	for i, r := range f.Highlights.Records() {
		collect(errs, fmt.Sprintf("highlights[%d].", i), validate.Struct(r))
	}
}

func (f *Form) validateItemFamilies(errs FieldErrors) {
	for _, list := range []*ItemList{f.Amenities, f.Certificates, f.FloorPlans, f.Documents, f.Images, f.Videos} {
		family := list.Family()

		var metas []files.FileMeta
		for _, up := range list.Files() {
			metas = append(metas, up.Meta())
		}
		for _, fe := range files.ValidateFiles(metas, family.FileCategory) {
			errs.add(family.Name, fe.Err)
		}

		// Images and videos are identified by their file alone; every other
		// family names its items.
		if family.Name == FamilyImages.Name || family.Name == FamilyVideos.Name {
			continue
		}
		for _, it := range list.Items() {
			if strings.TrimSpace(it.Name) == "" {
				errs.add(family.Name, "Every entry needs a name before submitting")
				break
			}
		}
	}
}

// validateLockstep cross-checks name and file counts over newly added
// items. Only new items carry uploads, so existing server-side entries stay
// out of the tally.
func (f *Form) validateLockstep(errs FieldErrors) {
	docNames, docFiles := newItemCounts(f.Documents)
	if docFiles > 0 && docNames != docFiles {
		errs.add("documentNames", fmt.Sprintf("Document name count (%d) does not match document file count (%d)", docNames, docFiles))
	}

	amenNames, amenIcons := newItemCounts(f.Amenities)
	if amenIcons > amenNames {
		errs.add("amenityIcons", fmt.Sprintf("More amenity icons (%d) than amenity names (%d)", amenIcons, amenNames))
	}
}

// newItemCounts tallies a family's newly added items: non-blank names and
// attached files.
func newItemCounts(l *ItemList) (names, uploads int) {
	for _, it := range l.Items() {
		if it.Kind == ItemExisting {
			continue
		}
		if strings.TrimSpace(it.Name) != "" {
			names++
		}
		if it.Kind == ItemNewWithFile {
			uploads++
		}
	}
	return names, uploads
}

// collect flattens validator output into field-addressed messages.
func collect(errs FieldErrors, prefix string, err error) {
	if err == nil {
		return
	}
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		errs.add("_form", err.Error())
		return
	}
	for _, fe := range verrs {
		errs.add(prefix+fe.Field(), messageFor(fe))
	}
}

func messageFor(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required"
	case "required_if":
		return fmt.Sprintf("Required when %s", strings.ToLower(fe.Param()))
	case "ltefield":
		return "Available shares cannot exceed total shares"
	case "oneof":
		return fmt.Sprintf("Must be one of: %s", fe.Param())
	case "max":
		return fmt.Sprintf("Must be at most %s characters", fe.Param())
	case "gte":
		return fmt.Sprintf("Must be at least %s", fe.Param())
	case "lte":
		return fmt.Sprintf("Must be at most %s", fe.Param())
	case "gt":
		return fmt.Sprintf("Must be greater than %s", fe.Param())
	default:
		return fmt.Sprintf("Invalid value (%s)", fe.Tag())
	}
}
