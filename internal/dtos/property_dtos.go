package dtos

// ----------------------
// Property aggregate
// ----------------------

// Property is the listing as the backend returns it, including all
// server-side sub-entities an edit session reconciles against.
type Property struct {
	ID               string  `json:"id"`
	Name             string  `json:"name"`
	Location         string  `json:"location"`
	FormattedAddress string  `json:"formattedAddress,omitempty"`
	PlaceID          string  `json:"placeId,omitempty"`
	Latitude         float64 `json:"latitude,omitempty"`
	Longitude        float64 `json:"longitude,omitempty"`
	Zoom             int     `json:"zoom,omitempty"`
	Description      string  `json:"description"`

	Beds         int     `json:"beds"`
	Bathrooms    float64 `json:"bathrooms"`
	Sqft         float64 `json:"sqft"`
	MaxOccupancy int     `json:"maxOccupancy"`

	TotalShares          int     `json:"totalShares"`
	AvailableShares      int     `json:"availableShares"`
	InitialPricePerShare float64 `json:"initialPricePerShare"`
	CurrentPricePerShare float64 `json:"currentPricePerShare"`
	WholeUnitPrice       float64 `json:"wholeUnitPrice"`
	TargetIRR            float64 `json:"targetIRR"`
	TargetRentalYield    float64 `json:"targetRentalYield"`
	AppreciationRate     float64 `json:"appreciationRate"`

	PossessionDate string `json:"possessionDate,omitempty"`
	LaunchDate     string `json:"launchDate,omitempty"`

	MaxBookingDays   int     `json:"maxBookingDays"`
	BookingAmount    float64 `json:"bookingAmount"`
	BookingAmountGST float64 `json:"bookingAmountGST"`

	IsActive   bool `json:"isActive"`
	IsFeatured bool `json:"isFeatured"`

	Amenities    []SubAsset `json:"amenities,omitempty"`
	Certificates []SubAsset `json:"certificates,omitempty"`
	FloorPlans   []SubAsset `json:"floorPlans,omitempty"`
	Documents    []SubAsset `json:"documents,omitempty"`
	Images       []SubAsset `json:"images,omitempty"`
	Videos       []SubAsset `json:"videos,omitempty"`

	PricingDetails       []PricingDetail       `json:"pricingDetails,omitempty"`
	ShareDetails         []ShareDetail         `json:"shareDetails,omitempty"`
	MaintenanceTemplates []MaintenanceTemplate `json:"maintenanceTemplates,omitempty"`
	PaymentPlans         []PaymentPlan         `json:"paymentPlans,omitempty"`
	Highlights           []Highlight           `json:"highlights,omitempty"`
}

// SubAsset is a server-side sub-entity (amenity, certificate, floor plan,
// document, image or video) as it arrives from a detail fetch.
type SubAsset struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	URL  string `json:"url,omitempty"`
}

// ----------------------
// Structured record families
// ----------------------

const (
	PricingTypeBase  = "BASE"
	PricingTypePhase = "PHASE"

	ChargeTypeOneTime   = "ONE_TIME"
	ChargeTypeRecurring = "RECURRING"

	PlanTypeInstalment  = "INSTALMENT"
	PlanTypeBifurcation = "BIFURCATION"

	PurchaseTypeWholeUnit  = "WHOLE_UNIT"
	PurchaseTypeFractional = "FRACTIONAL"
)

type PricingDetail struct {
	ID             string  `json:"id,omitempty"`
	Type           string  `json:"type" validate:"required,oneof=BASE PHASE"`
	PricePerShare  float64 `json:"pricePerShare" validate:"required,gt=0"`
	WholeUnitPrice float64 `json:"wholeUnitPrice" validate:"omitempty,gt=0"`
	PhaseName      string  `json:"phaseName,omitempty" validate:"required_if=Type PHASE"`
	EffectiveFrom  string  `json:"effectiveFrom,omitempty" validate:"required_if=Type PHASE"`
	EffectiveTo    string  `json:"effectiveTo,omitempty" validate:"required_if=Type PHASE"`
}

type ShareDetail struct {
	ID            string  `json:"id,omitempty"`
	PackageName   string  `json:"packageName" validate:"required,max=256"`
	ShareCount    int     `json:"shareCount" validate:"required,gte=1"`
	PricePerShare float64 `json:"pricePerShare" validate:"required,gt=0"`
	Discount      float64 `json:"discount" validate:"gte=0,lte=100"`
}

type MaintenanceTemplate struct {
	ID            string  `json:"id,omitempty"`
	Name          string  `json:"name" validate:"required,max=256"`
	Amount        float64 `json:"amount" validate:"required,gt=0"`
	ChargeType    string  `json:"chargeType" validate:"required,oneof=ONE_TIME RECURRING"`
	Frequency     string  `json:"frequency,omitempty" validate:"required_if=ChargeType RECURRING,omitempty,oneof=MONTHLY QUARTERLY YEARLY"`
	DueDay        int     `json:"dueDay,omitempty" validate:"required_if=ChargeType RECURRING,omitempty,gte=1,lte=28"`
	HasGST        bool    `json:"hasGST"`
	GSTPercentage float64 `json:"gstPercentage" validate:"gte=0,lte=100"`
	Description   string  `json:"description,omitempty"`
}

type PaymentPlan struct {
	ID            string  `json:"id,omitempty"`
	PlanType      string  `json:"planType" validate:"required,oneof=INSTALMENT BIFURCATION"`
	PurchaseType  string  `json:"purchaseType" validate:"required,oneof=WHOLE_UNIT FRACTIONAL"`
	Name          string  `json:"name" validate:"required,max=256"`
	Amount        float64 `json:"amount" validate:"gte=0"`
	Percentage    float64 `json:"percentage" validate:"gte=0,lte=100"`
	Milestone     string  `json:"milestone,omitempty"`
	DueDate       string  `json:"dueDate,omitempty"`
	HasGST        bool    `json:"hasGST"`
	GSTPercentage float64 `json:"gstPercentage" validate:"gte=0,lte=100"`
	Description   string  `json:"description,omitempty"`
}

type Highlight struct {
	ID           string `json:"id,omitempty"`
	Title        string `json:"title" validate:"required,max=256"`
	Description  string `json:"description,omitempty"`
	DisplayOrder int    `json:"displayOrder"`
}

// NamedRecord is the structured-array row submitted for the name+file
// entity families (certificates, floor plans).
type NamedRecord struct {
	Name         string `json:"name"`
	DisplayOrder int    `json:"displayOrder"`
}

// ----------------------
// List query & pagination
// ----------------------

// ListQuery mirrors the /properties filter surface. Pointer fields are
// omitted from the query string entirely when nil.
type ListQuery struct {
	Page       int
	Limit      int
	Search     string
	Name       string
	Location   string
	IsActive   *bool
	IsFeatured *bool
	SortBy     string
	SortOrder  string
	MinPrice   *float64
	MaxPrice   *float64
	StaffID    string
}

// ServerPagination is the backend's key naming.
type ServerPagination struct {
	CurrentPage     int  `json:"currentPage"`
	Limit           int  `json:"limit"`
	TotalRecords    int  `json:"totalRecords"`
	TotalPages      int  `json:"totalPages"`
	HasNextPage     bool `json:"hasNextPage"`
	HasPreviousPage bool `json:"hasPreviousPage"`
}

// Pagination is the client-side naming the rest of the app consumes.
type Pagination struct {
	Page        int  `json:"page"`
	Limit       int  `json:"limit"`
	Total       int  `json:"total"`
	TotalPages  int  `json:"totalPages"`
	HasNextPage bool `json:"hasNextPage"`
	HasPrevPage bool `json:"hasPrevPage"`
}

// Remap converts the server's pagination naming into ours.
func (p ServerPagination) Remap() Pagination {
	return Pagination{
		Page:        p.CurrentPage,
		Limit:       p.Limit,
		Total:       p.TotalRecords,
		TotalPages:  p.TotalPages,
		HasNextPage: p.HasNextPage,
		HasPrevPage: p.HasPreviousPage,
	}
}

type PropertyPage struct {
	Properties []Property `json:"properties"`
	Pagination Pagination `json:"pagination"`
}
