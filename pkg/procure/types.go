package procure

import (
	"time"
)

// Status represents the lifecycle state of a directory entity.
type Status string

const (
	StatusActive   Status = "active"
	StatusInactive Status = "inactive"
	StatusPending  Status = "pending"
)

// RFQStatus represents the workflow state of an RFQ.
type RFQStatus string

const (
	RFQStatusOpen      RFQStatus = "open"
	RFQStatusSubmitted RFQStatus = "submitted"
	RFQStatusClosed    RFQStatus = "closed"
	RFQStatusPending   RFQStatus = "pending"
)

// LineItemStatus represents the workflow state of a single RFQ line item.
type LineItemStatus string

const (
	LineItemStatusOpen          LineItemStatus = "open"
	LineItemStatusQuoteReceived LineItemStatus = "quote_received"
	LineItemStatusSubmitted     LineItemStatus = "submitted"
	LineItemStatusClosed        LineItemStatus = "closed"
)

// SupplierType classifies a supplier's role in the supply chain.
type SupplierType string

const (
	SupplierTypeDistributor SupplierType = "distributor"
	SupplierTypeReseller    SupplierType = "reseller"
	SupplierTypeWholesaler  SupplierType = "wholesaler"
	SupplierTypeBroker      SupplierType = "broker"
)

// Address is a postal address attached to a directory entity.
type Address struct {
	Street     string `json:"street"     yaml:"street"`
	City       string `json:"city"       yaml:"city"`
	State      string `json:"state"      yaml:"state"`
	Country    string `json:"country"    yaml:"country"`
	PostalCode string `json:"postalCode" yaml:"postalCode"`
}

// Contact is a named contact person on a directory entity.
type Contact struct {
	ID        string `json:"id"              yaml:"id"`
	Name      string `json:"name"            yaml:"name"`
	Email     string `json:"email"           yaml:"email"`
	Phone     string `json:"phone,omitempty" yaml:"phone,omitempty"`
	Role      string `json:"role"            yaml:"role"`
	IsPrimary bool   `json:"isPrimary"       yaml:"isPrimary"`
}

// Manufacturer represents a manufacturer directory entry.
type Manufacturer struct {
	ID                string     `json:"id"                        yaml:"id"`
	Name              string     `json:"name"                      yaml:"name"`
	Description       string     `json:"description,omitempty"     yaml:"description,omitempty"`
	Industry          string     `json:"industry"                  yaml:"industry"`
	Website           string     `json:"website,omitempty"         yaml:"website,omitempty"`
	Address           Address    `json:"address"                   yaml:"address"`
	Contacts          []Contact  `json:"contacts"                  yaml:"contacts"`
	LinkedSupplierIDs []string   `json:"linkedSupplierIds"         yaml:"linkedSupplierIds"`
	Capabilities      []string   `json:"capabilities"              yaml:"capabilities"`
	Certifications    []string   `json:"certifications"            yaml:"certifications"`
	Status            Status     `json:"status"                    yaml:"status"`
	CreatedAt         time.Time  `json:"createdAt"                 yaml:"createdAt"`
	UpdatedAt         time.Time  `json:"updatedAt"                 yaml:"updatedAt"`
	LastContactDate   *time.Time `json:"lastContactDate,omitempty" yaml:"lastContactDate,omitempty"`
	Notes             string     `json:"notes,omitempty"           yaml:"notes,omitempty"`
}

// Supplier represents a supplier directory entry.
type Supplier struct {
	ID                    string       `json:"id"                        yaml:"id"`
	Name                  string       `json:"name"                      yaml:"name"`
	Description           string       `json:"description,omitempty"     yaml:"description,omitempty"`
	Type                  SupplierType `json:"type"                      yaml:"type"`
	Website               string       `json:"website,omitempty"         yaml:"website,omitempty"`
	Address               Address      `json:"address"                   yaml:"address"`
	Contacts              []Contact    `json:"contacts"                  yaml:"contacts"`
	LinkedManufacturerIDs []string     `json:"linkedManufacturerIds"     yaml:"linkedManufacturerIds"`
	Specializations       []string     `json:"specializations"           yaml:"specializations"`
	PaymentTerms          string       `json:"paymentTerms,omitempty"    yaml:"paymentTerms,omitempty"`
	DeliveryTime          string       `json:"deliveryTime,omitempty"    yaml:"deliveryTime,omitempty"`
	Status                Status       `json:"status"                    yaml:"status"`
	CreatedAt             time.Time    `json:"createdAt"                 yaml:"createdAt"`
	UpdatedAt             time.Time    `json:"updatedAt"                 yaml:"updatedAt"`
	LastContactDate       *time.Time   `json:"lastContactDate,omitempty" yaml:"lastContactDate,omitempty"`
	Notes                 string       `json:"notes,omitempty"           yaml:"notes,omitempty"`
}

// LineItem is a single per-manufacturer/per-supplier row split out of an RFQ.
type LineItem struct {
	ID           string         `json:"id"           yaml:"id"`
	LineNumber   string         `json:"lineNumber"   yaml:"lineNumber"`
	ItemID       string         `json:"itemId"       yaml:"itemId"`
	Manufacturer string         `json:"manufacturer" yaml:"manufacturer"`
	Supplier     string         `json:"supplier"     yaml:"supplier"`
	Email        string         `json:"email"        yaml:"email"`
	Status       LineItemStatus `json:"status"       yaml:"status"`
	Qty          int            `json:"qty"          yaml:"qty"`
}

// RFQRecord is an uploaded Request-for-Quotation with its line items.
type RFQRecord struct {
	ID          string     `json:"id"          yaml:"id"`
	RFQNo       string     `json:"rfqNo"       yaml:"rfqNo"`
	Client      string     `json:"client"      yaml:"client"`
	PublishDate time.Time  `json:"publishDate" yaml:"publishDate"`
	BidDate     time.Time  `json:"bidDate"     yaml:"bidDate"`
	Status      RFQStatus  `json:"status"      yaml:"status"`
	LastUpdated time.Time  `json:"lastUpdated" yaml:"lastUpdated"`
	LineItems   []LineItem `json:"lineItems"   yaml:"lineItems"`
}

// DirectoryStats summarizes the supplier/manufacturer directory.
type DirectoryStats struct {
	TotalManufacturers  int `json:"totalManufacturers"  yaml:"totalManufacturers"`
	TotalSuppliers      int `json:"totalSuppliers"      yaml:"totalSuppliers"`
	ActiveManufacturers int `json:"activeManufacturers" yaml:"activeManufacturers"`
	ActiveSuppliers     int `json:"activeSuppliers"     yaml:"activeSuppliers"`
	RecentlyAdded       int `json:"recentlyAdded"       yaml:"recentlyAdded"`
	PendingApproval     int `json:"pendingApproval"     yaml:"pendingApproval"`
}

// RFQStats summarizes the RFQ collection.
type RFQStats struct {
	TotalRFQs              int     `json:"totalRFQs"              yaml:"totalRFQs"`
	OpenRFQs               int     `json:"openRFQs"               yaml:"openRFQs"`
	SubmittedRFQs          int     `json:"submittedRFQs"          yaml:"submittedRFQs"`
	ClosedRFQs             int     `json:"closedRFQs"             yaml:"closedRFQs"`
	PendingRFQs            int     `json:"pendingRFQs"            yaml:"pendingRFQs"`
	TotalLineItems         int     `json:"totalLineItems"         yaml:"totalLineItems"`
	AverageLineItemsPerRFQ float64 `json:"averageLineItemsPerRFQ" yaml:"averageLineItemsPerRFQ"`
}

// Envelope is the uniform success/data/error wrapper every API response
// carries on the wire. Exactly one of Data or Error is meaningfully set.
type Envelope[T any] struct {
	Success   bool      `json:"success"`
	Data      *T        `json:"data,omitempty"`
	Error     string    `json:"error,omitempty"`
	Message   string    `json:"message,omitempty"`
	Timestamp time.Time `json:"timestamp"`
	RequestID string    `json:"requestId,omitempty"`
}

// PageMeta describes the position of a page within a filtered result set.
type PageMeta struct {
	Page       int  `json:"page"       yaml:"page"`
	Limit      int  `json:"limit"      yaml:"limit"`
	Total      int  `json:"total"      yaml:"total"`
	TotalPages int  `json:"totalPages" yaml:"totalPages"`
	HasNext    bool `json:"hasNext"    yaml:"hasNext"`
	HasPrev    bool `json:"hasPrev"    yaml:"hasPrev"`
}

// Page is one page of a filtered, sorted result set.
type Page[T any] struct {
	Data       []T      `json:"data"       yaml:"data"`
	Pagination PageMeta `json:"pagination" yaml:"pagination"`
}

// PageRequest selects a 1-based page of a given size.
type PageRequest struct {
	Page  int `json:"page"`
	Limit int `json:"limit"`
}

// DefaultPageRequest matches the page size the dashboard requests.
func DefaultPageRequest() PageRequest {
	return PageRequest{Page: 1, Limit: DefaultPageLimit}
}

// BulkUpdateItem pairs a record identifier with its partial update payload.
type BulkUpdateItem[U any] struct {
	ID   string `json:"id"`
	Data U      `json:"data"`
}

// BulkResult reports how a best-effort bulk operation went: ids with no
// matching record are skipped, not failed.
type BulkResult struct {
	Applied int `json:"applied" yaml:"applied"`
	Skipped int `json:"skipped" yaml:"skipped"`
}

// ExportFormat names a serialization format for Export operations.
type ExportFormat string

const (
	ExportJSON  ExportFormat = "json"
	ExportCSV   ExportFormat = "csv"
	ExportExcel ExportFormat = "excel"
)
