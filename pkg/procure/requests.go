package procure

import "time"

// ManufacturerCreateRequest carries the fields a caller supplies when
// creating a manufacturer. Identifier and timestamps are server-generated.
type ManufacturerCreateRequest struct {
	Name              string     `json:"name"`
	Description       string     `json:"description,omitempty"`
	Industry          string     `json:"industry"`
	Website           string     `json:"website,omitempty"`
	Address           Address    `json:"address"`
	Contacts          []Contact  `json:"contacts"`
	LinkedSupplierIDs []string   `json:"linkedSupplierIds"`
	Capabilities      []string   `json:"capabilities"`
	Certifications    []string   `json:"certifications"`
	Status            Status     `json:"status"`
	LastContactDate   *time.Time `json:"lastContactDate,omitempty"`
	Notes             string     `json:"notes,omitempty"`
}

// ManufacturerUpdateRequest is a partial update; nil fields are left as-is.
type ManufacturerUpdateRequest struct {
	Name              *string    `json:"name,omitempty"`
	Description       *string    `json:"description,omitempty"`
	Industry          *string    `json:"industry,omitempty"`
	Website           *string    `json:"website,omitempty"`
	Address           *Address   `json:"address,omitempty"`
	Contacts          *[]Contact `json:"contacts,omitempty"`
	LinkedSupplierIDs *[]string  `json:"linkedSupplierIds,omitempty"`
	Capabilities      *[]string  `json:"capabilities,omitempty"`
	Certifications    *[]string  `json:"certifications,omitempty"`
	Status            *Status    `json:"status,omitempty"`
	LastContactDate   *time.Time `json:"lastContactDate,omitempty"`
	Notes             *string    `json:"notes,omitempty"`
}

// SupplierCreateRequest carries the fields a caller supplies when creating
// a supplier.
type SupplierCreateRequest struct {
	Name                  string       `json:"name"`
	Description           string       `json:"description,omitempty"`
	Type                  SupplierType `json:"type"`
	Website               string       `json:"website,omitempty"`
	Address               Address      `json:"address"`
	Contacts              []Contact    `json:"contacts"`
	LinkedManufacturerIDs []string     `json:"linkedManufacturerIds"`
	Specializations       []string     `json:"specializations"`
	PaymentTerms          string       `json:"paymentTerms,omitempty"`
	DeliveryTime          string       `json:"deliveryTime,omitempty"`
	Status                Status       `json:"status"`
	LastContactDate       *time.Time   `json:"lastContactDate,omitempty"`
	Notes                 string       `json:"notes,omitempty"`
}

// SupplierUpdateRequest is a partial update; nil fields are left as-is.
type SupplierUpdateRequest struct {
	Name                  *string       `json:"name,omitempty"`
	Description           *string       `json:"description,omitempty"`
	Type                  *SupplierType `json:"type,omitempty"`
	Website               *string       `json:"website,omitempty"`
	Address               *Address      `json:"address,omitempty"`
	Contacts              *[]Contact    `json:"contacts,omitempty"`
	LinkedManufacturerIDs *[]string     `json:"linkedManufacturerIds,omitempty"`
	Specializations       *[]string     `json:"specializations,omitempty"`
	PaymentTerms          *string       `json:"paymentTerms,omitempty"`
	DeliveryTime          *string       `json:"deliveryTime,omitempty"`
	Status                *Status       `json:"status,omitempty"`
	LastContactDate       *time.Time    `json:"lastContactDate,omitempty"`
	Notes                 *string       `json:"notes,omitempty"`
}

// RFQCreateRequest carries an uploaded RFQ. Line items without identifiers
// get them assigned on create.
type RFQCreateRequest struct {
	RFQNo       string     `json:"rfqNo"`
	Client      string     `json:"client"`
	PublishDate time.Time  `json:"publishDate"`
	BidDate     time.Time  `json:"bidDate"`
	Status      RFQStatus  `json:"status"`
	LineItems   []LineItem `json:"lineItems"`
}

// RFQUpdateRequest is a partial update; nil fields are left as-is. A
// non-nil LineItems replaces the whole line item collection.
type RFQUpdateRequest struct {
	RFQNo       *string     `json:"rfqNo,omitempty"`
	Client      *string     `json:"client,omitempty"`
	PublishDate *time.Time  `json:"publishDate,omitempty"`
	BidDate     *time.Time  `json:"bidDate,omitempty"`
	Status      *RFQStatus  `json:"status,omitempty"`
	LineItems   *[]LineItem `json:"lineItems,omitempty"`
}

// LineItemCreateRequest carries a new line item for an existing RFQ.
type LineItemCreateRequest struct {
	LineNumber   string         `json:"lineNumber"`
	ItemID       string         `json:"itemId"`
	Manufacturer string         `json:"manufacturer"`
	Supplier     string         `json:"supplier"`
	Email        string         `json:"email"`
	Status       LineItemStatus `json:"status"`
	Qty          int            `json:"qty"`
}

// LineItemUpdateRequest is a partial line item update.
type LineItemUpdateRequest struct {
	LineNumber   *string         `json:"lineNumber,omitempty"`
	ItemID       *string         `json:"itemId,omitempty"`
	Manufacturer *string         `json:"manufacturer,omitempty"`
	Supplier     *string         `json:"supplier,omitempty"`
	Email        *string         `json:"email,omitempty"`
	Status       *LineItemStatus `json:"status,omitempty"`
	Qty          *int            `json:"qty,omitempty"`
}
