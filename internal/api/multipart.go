package api

import (
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/textproto"
	"strconv"
	"strings"

	"github.com/Sachintlgt/brd-admin-sub000/internal/dtos"
	"github.com/Sachintlgt/brd-admin-sub000/internal/files"
)

// Mode distinguishes create from update submissions. Deletion-id parts are
// only ever emitted in update mode.
type Mode int

const (
	ModeCreate Mode = iota
	ModeUpdate
)

// Part is one multipart entry in emission order. Exactly one of Value /
// File is meaningful: File == nil means a text part.
type Part struct {
	Field string
	Value string
	File  *files.Upload
}

// Payload is the flattened, ordered multipart form for one submission
// attempt. It is rebuilt from scratch on every submit; never reused.
type Payload struct {
	parts []Part
}

// Parts exposes the ordered part sequence (used by tests and the encoder).
func (p *Payload) Parts() []Part {
	return p.parts
}

// Encode writes the payload as multipart/form-data and returns the
// Content-Type header value carrying the boundary.
func (p *Payload) Encode(w io.Writer) (string, error) {
	mw := multipart.NewWriter(w)
	for _, part := range p.parts {
		if part.File == nil {
			if err := mw.WriteField(part.Field, part.Value); err != nil {
				return "", fmt.Errorf("write field %s: %w", part.Field, err)
			}
			continue
		}
		h := make(textproto.MIMEHeader)
		h.Set("Content-Disposition", fmt.Sprintf(`form-data; name=%q; filename=%q`,
			part.Field, escapeQuotes(part.File.Name)))
		ct := part.File.ContentType
		if ct == "" {
			ct = "application/octet-stream"
		}
		h.Set("Content-Type", ct)
		fw, err := mw.CreatePart(h)
		if err != nil {
			return "", fmt.Errorf("create file part %s: %w", part.Field, err)
		}
		if _, err := fw.Write(part.File.Content); err != nil {
			return "", fmt.Errorf("write file part %s: %w", part.Field, err)
		}
	}
	if err := mw.Close(); err != nil {
		return "", fmt.Errorf("close multipart writer: %w", err)
	}
	return mw.FormDataContentType(), nil
}

func escapeQuotes(s string) string {
	r := strings.NewReplacer(`\`, `\\`, `"`, `\"`)
	return r.Replace(s)
}

// Scalars carries every top-level form value. Empty strings and nil
// pointers are omitted from the payload rather than sent as nulls.
type Scalars struct {
	Name             string   `json:"name"`
	Location         string   `json:"location"`
	FormattedAddress string   `json:"formattedAddress"`
	PlaceID          string   `json:"placeId"`
	Latitude         *float64 `json:"latitude"`
	Longitude        *float64 `json:"longitude"`
	Zoom             *int     `json:"zoom"`
	Description      string   `json:"description"`

	Beds         *int     `json:"beds"`
	Bathrooms    *float64 `json:"bathrooms"`
	Sqft         *float64 `json:"sqft"`
	MaxOccupancy *int     `json:"maxOccupancy"`

	TotalShares          *int     `json:"totalShares"`
	AvailableShares      *int     `json:"availableShares"`
	InitialPricePerShare *float64 `json:"initialPricePerShare"`
	CurrentPricePerShare *float64 `json:"currentPricePerShare"`
	WholeUnitPrice       *float64 `json:"wholeUnitPrice"`
	TargetIRR            *float64 `json:"targetIRR"`
	TargetRentalYield    *float64 `json:"targetRentalYield"`
	AppreciationRate     *float64 `json:"appreciationRate"`

	PossessionDate string `json:"possessionDate"`
	LaunchDate     string `json:"launchDate"`

	MaxBookingDays   *int     `json:"maxBookingDays"`
	BookingAmount    *float64 `json:"bookingAmount"`
	BookingAmountGST *float64 `json:"bookingAmountGST"`

	IsActive   *bool `json:"isActive"`
	IsFeatured *bool `json:"isFeatured"`
}

// PropertyPayloadInput is everything one submission attempt flattens: the
// scalar snapshot, each family's reconciliation fragment output, and the
// raw new-file lists in their insertion order.
type PropertyPayloadInput struct {
	Mode    Mode
	Scalars Scalars

	AmenityNames  string
	DocumentNames string

	PricingDetails       []dtos.PricingDetail
	ShareDetails         []dtos.ShareDetail
	MaintenanceTemplates []dtos.MaintenanceTemplate
	PaymentPlans         []dtos.PaymentPlan
	Highlights           []dtos.Highlight
	Certificates         []dtos.NamedRecord
	FloorPlans           []dtos.NamedRecord

	ImageIDsToDelete       []string
	VideoIDsToDelete       []string
	DocumentIDsToDelete    []string
	CertificateIDsToDelete []string
	FloorPlanIDsToDelete   []string
	AmenityIDsToDelete     []string

	PropertyImages   []files.Upload
	PropertyVideos   []files.Upload
	Documents        []files.Upload
	CertificateFiles []files.Upload
	FloorPlanImages  []files.Upload
	AmenityIcons     []files.Upload
}

// BuildPropertyPayload flattens one submission snapshot into the ordered
// multipart part sequence. Pure: identical input yields an identical
// sequence. Numeric values are stringified bare (no grouping); booleans as
// "true"/"false"; repeated file parts share their family's field name.
func BuildPropertyPayload(in PropertyPayloadInput) (*Payload, error) {
	p := &Payload{}

	// 1) scalar text parts, fixed order, absent values omitted
	p.addString("name", in.Scalars.Name)
	p.addString("location", in.Scalars.Location)
	p.addString("formattedAddress", in.Scalars.FormattedAddress)
	p.addString("placeId", in.Scalars.PlaceID)
	p.addFloat("latitude", in.Scalars.Latitude)
	p.addFloat("longitude", in.Scalars.Longitude)
	p.addInt("zoom", in.Scalars.Zoom)
	p.addString("description", in.Scalars.Description)
	p.addInt("beds", in.Scalars.Beds)
	p.addFloat("bathrooms", in.Scalars.Bathrooms)
	p.addFloat("sqft", in.Scalars.Sqft)
	p.addInt("maxOccupancy", in.Scalars.MaxOccupancy)
	p.addInt("totalShares", in.Scalars.TotalShares)
	p.addInt("availableShares", in.Scalars.AvailableShares)
	p.addFloat("initialPricePerShare", in.Scalars.InitialPricePerShare)
	p.addFloat("currentPricePerShare", in.Scalars.CurrentPricePerShare)
	p.addFloat("wholeUnitPrice", in.Scalars.WholeUnitPrice)
	p.addFloat("targetIRR", in.Scalars.TargetIRR)
	p.addFloat("targetRentalYield", in.Scalars.TargetRentalYield)
	p.addFloat("appreciationRate", in.Scalars.AppreciationRate)
	p.addString("possessionDate", in.Scalars.PossessionDate)
	p.addString("launchDate", in.Scalars.LaunchDate)
	p.addInt("maxBookingDays", in.Scalars.MaxBookingDays)
	p.addFloat("bookingAmount", in.Scalars.BookingAmount)
	p.addFloat("bookingAmountGST", in.Scalars.BookingAmountGST)
	p.addBool("isActive", in.Scalars.IsActive)
	p.addBool("isFeatured", in.Scalars.IsFeatured)

	// 2) comma-joined name lists
	p.addString("amenityNames", in.AmenityNames)
	p.addString("documentNames", in.DocumentNames)

	// 3) structured JSON-array parts, only when non-empty
	if err := p.addJSON("pricingDetails", in.PricingDetails, len(in.PricingDetails)); err != nil {
		return nil, err
	}
	if err := p.addJSON("shareDetails", in.ShareDetails, len(in.ShareDetails)); err != nil {
		return nil, err
	}
	if err := p.addJSON("maintenanceTemplates", in.MaintenanceTemplates, len(in.MaintenanceTemplates)); err != nil {
		return nil, err
	}
	if err := p.addJSON("paymentPlans", in.PaymentPlans, len(in.PaymentPlans)); err != nil {
		return nil, err
	}
	if err := p.addJSON("highlights", in.Highlights, len(in.Highlights)); err != nil {
		return nil, err
	}
	if err := p.addJSON("certificates", in.Certificates, len(in.Certificates)); err != nil {
		return nil, err
	}
	if err := p.addJSON("floorPlans", in.FloorPlans, len(in.FloorPlans)); err != nil {
		return nil, err
	}

	// 4) deletion-id parts, update mode only
	if in.Mode == ModeUpdate {
		if err := p.addJSON("imageIdsToDelete", in.ImageIDsToDelete, len(in.ImageIDsToDelete)); err != nil {
			return nil, err
		}
		if err := p.addJSON("videoIdsToDelete", in.VideoIDsToDelete, len(in.VideoIDsToDelete)); err != nil {
			return nil, err
		}
		if err := p.addJSON("documentIdsToDelete", in.DocumentIDsToDelete, len(in.DocumentIDsToDelete)); err != nil {
			return nil, err
		}
		if err := p.addJSON("certificateIdsToDelete", in.CertificateIDsToDelete, len(in.CertificateIDsToDelete)); err != nil {
			return nil, err
		}
		if err := p.addJSON("floorPlanIdsToDelete", in.FloorPlanIDsToDelete, len(in.FloorPlanIDsToDelete)); err != nil {
			return nil, err
		}
		if err := p.addJSON("amenityIdsToDelete", in.AmenityIDsToDelete, len(in.AmenityIDsToDelete)); err != nil {
			return nil, err
		}
	}

	// 5) file parts, one per file, insertion order, repeated field names
	p.addFiles("propertyImages", in.PropertyImages)
	p.addFiles("propertyVideos", in.PropertyVideos)
	p.addFiles("documents", in.Documents)
	p.addFiles("certificateFiles", in.CertificateFiles)
	p.addFiles("floorPlanImages", in.FloorPlanImages)
	p.addFiles("amenityIcons", in.AmenityIcons)

	return p, nil
}

func (p *Payload) addString(field, v string) {
	if v == "" {
		return
	}
	p.parts = append(p.parts, Part{Field: field, Value: v})
}

func (p *Payload) addInt(field string, v *int) {
	if v == nil {
		return
	}
	p.parts = append(p.parts, Part{Field: field, Value: strconv.Itoa(*v)})
}

func (p *Payload) addFloat(field string, v *float64) {
	if v == nil {
		return
	}
	p.parts = append(p.parts, Part{Field: field, Value: strconv.FormatFloat(*v, 'f', -1, 64)})
}

func (p *Payload) addBool(field string, v *bool) {
	if v == nil {
		return
	}
	p.parts = append(p.parts, Part{Field: field, Value: strconv.FormatBool(*v)})
}

func (p *Payload) addJSON(field string, v any, n int) error {
	if n == 0 {
		return nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s: %w", field, err)
	}
	p.parts = append(p.parts, Part{Field: field, Value: string(b)})
	return nil
}

func (p *Payload) addFiles(field string, uploads []files.Upload) {
	for i := range uploads {
		p.parts = append(p.parts, Part{Field: field, File: &uploads[i]})
	}
}
