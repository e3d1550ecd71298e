package form

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Sachintlgt/brd-admin-sub000/internal/dtos"
	"github.com/Sachintlgt/brd-admin-sub000/internal/files"
)

func intp(v int) *int           { return &v }
func floatp(v float64) *float64 { return &v }

// validDraft returns a create-session form that passes validation as-is.
func validDraft() *Form {
	f := NewCreateForm(nil, Options{})
	f.Scalars.Name = "Lake View Residences"
	f.Scalars.Location = "Pune"
	f.Scalars.Description = "Premium lakeside living"
	f.Scalars.TotalShares = intp(100)
	f.Scalars.AvailableShares = intp(100)
	f.Scalars.InitialPricePerShare = floatp(50000)
	return f
}

func TestValidDraftHasNoErrors(t *testing.T) {
	errs := validDraft().validateLocked()
	assert.Nil(t, errs)
}

func TestRequiredScalarsAddressedByJSONName(t *testing.T) {
	f := NewCreateForm(nil, Options{})
	errs := f.validateLocked()
	require.NotNil(t, errs)

	for _, field := range []string{"name", "location", "description", "totalShares", "initialPricePerShare"} {
		assert.Contains(t, errs, field)
	}
	assert.Contains(t, errs["name"], "This field is required")
}

func TestAvailableSharesCannotExceedTotal(t *testing.T) {
	f := validDraft()
	f.Scalars.TotalShares = intp(100)
	f.Scalars.AvailableShares = intp(150)

	errs := f.validateLocked()
	require.Contains(t, errs, "availableShares")
	assert.Contains(t, errs["availableShares"], "Available shares cannot exceed total shares")
	assert.NotContains(t, errs, "totalShares")
}

func TestPhasePricingRequiresPhaseFields(t *testing.T) {
	f := validDraft()
	f.Pricing.Add(dtos.PricingDetail{Type: dtos.PricingTypePhase, PricePerShare: 55000})

	errs := f.validateLocked()
	require.NotNil(t, errs)
	assert.Contains(t, errs, "pricingDetails[0].phaseName")
	assert.Contains(t, errs, "pricingDetails[0].effectiveFrom")
	assert.Contains(t, errs, "pricingDetails[0].effectiveTo")
}

func TestBasePricingNeedsNoPhaseFields(t *testing.T) {
	f := validDraft()
	f.Pricing.Add(dtos.PricingDetail{Type: dtos.PricingTypeBase, PricePerShare: 50000})

	assert.Nil(t, f.validateLocked())
}

func TestRecurringMaintenanceRequiresFrequencyAndDueDay(t *testing.T) {
	f := validDraft()
	f.Maintenance.Add(dtos.MaintenanceTemplate{
		Name:       "CAM charges",
		Amount:     2500,
		ChargeType: dtos.ChargeTypeRecurring,
	})

	errs := f.validateLocked()
	require.NotNil(t, errs)
	assert.Contains(t, errs, "maintenanceTemplates[0].frequency")
	assert.Contains(t, errs, "maintenanceTemplates[0].dueDay")

	f.Maintenance.Update(f.Maintenance.Keys()[0], dtos.MaintenanceTemplate{
		Name:       "CAM charges",
		Amount:     2500,
		ChargeType: dtos.ChargeTypeRecurring,
		Frequency:  "MONTHLY",
		DueDay:     5,
	})
	assert.Nil(t, f.validateLocked())
}

func TestSecondRecordErrorsCarryTheirIndex(t *testing.T) {
	f := validDraft()
	f.Shares.Add(dtos.ShareDetail{PackageName: "Silver", ShareCount: 5, PricePerShare: 50000})
	f.Shares.Add(dtos.ShareDetail{PackageName: "", ShareCount: 0, PricePerShare: 0})

	errs := f.validateLocked()
	require.NotNil(t, errs)
	assert.NotContains(t, errs, "shareDetails[0].packageName")
	assert.Contains(t, errs, "shareDetails[1].packageName")
	assert.Contains(t, errs, "shareDetails[1].shareCount")
}

func TestOversizedFileBlocksSubmit(t *testing.T) {
	f := validDraft()
	f.Images.AddFile("huge", files.Upload{
		Name:        "huge.jpg",
		ContentType: "image/jpeg",
		Content:     bytes.Repeat([]byte("x"), 11<<20),
	})

	errs := f.validateLocked()
	require.Contains(t, errs, "propertyImages")
	assert.Contains(t, errs["propertyImages"][0], "huge.jpg")
}

func TestWrongFileTypeBlocksSubmit(t *testing.T) {
	f := validDraft()
	f.Videos.AddFile("clip", files.Upload{
		Name:        "clip.gif",
		ContentType: "image/gif",
		Content:     []byte("gifdata"),
	})

	errs := f.validateLocked()
	assert.Contains(t, errs, "propertyVideos")
}

func TestBlankNamedEntriesBlockNamedFamilies(t *testing.T) {
	f := validDraft()
	f.Certificates.AddFile("", files.Upload{Name: "c.pdf", ContentType: "application/pdf", Content: []byte("pdf")})

	errs := f.validateLocked()
	require.Contains(t, errs, "certificates")
	assert.Contains(t, errs["certificates"], "Every entry needs a name before submitting")
}

func TestBlankNameAllowedForImagesAndVideos(t *testing.T) {
	f := validDraft()
	f.Images.AddFile("", files.Upload{Name: "a.jpg", ContentType: "image/jpeg", Content: []byte("img")})

	assert.Nil(t, f.validateLocked())
}

func TestExistingDocumentsWithNewUploadValidates(t *testing.T) {
	prop := &dtos.Property{
		ID:                   "p1",
		Name:                 "Lake View Residences",
		Location:             "Pune",
		Description:          "Premium lakeside living",
		TotalShares:          100,
		AvailableShares:      80,
		InitialPricePerShare: 50000,
		Documents: []dtos.SubAsset{
			{ID: "d1", Name: "Brochure", URL: "https://cdn/brochure.pdf"},
			{ID: "d2", Name: "Agreement", URL: "https://cdn/agreement.pdf"},
		},
	}
	f := NewEditForm(nil, prop, Options{})
	f.Documents.AddFile("Floor Guide", files.Upload{
		Name:        "floor-guide.pdf",
		ContentType: "application/pdf",
		Content:     []byte("pdf"),
	})

	assert.Nil(t, f.validateLocked())
}

func TestDocumentCountCheckIgnoresExistingEntries(t *testing.T) {
	f := validDraft()
	// A blank-named upload is the only way names and files diverge.
	f.Documents.AddFile("", files.Upload{Name: "d.pdf", ContentType: "application/pdf", Content: []byte("pdf")})

	errs := f.validateLocked()
	require.Contains(t, errs, "documentNames")
	assert.Contains(t, errs["documentNames"][0], "(0)")
	assert.Contains(t, errs["documentNames"][0], "(1)")
}

func TestAvailableSharesMustBePresent(t *testing.T) {
	f := validDraft()
	f.Scalars.AvailableShares = nil

	errs := f.validateLocked()
	require.Contains(t, errs, "availableShares")
	assert.Contains(t, errs["availableShares"], "This field is required")

	// Zero is a legitimate value, not an absence.
	f.Scalars.AvailableShares = intp(0)
	assert.Nil(t, f.validateLocked())
}

func TestHighlightTitleRequired(t *testing.T) {
	f := validDraft()
	f.Highlights.Add(dtos.Highlight{Title: "", Description: "near the lake"})

	errs := f.validateLocked()
	assert.Contains(t, errs, "highlights[0].title")
}
