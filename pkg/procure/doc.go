// Package procure defines the public contract of the procurement service
// layer: domain types for the supplier/manufacturer directory and RFQ
// tracking, the response envelope wire shapes, query parameters, the
// in-memory filter/sort/paginate engine used by mock backends, and the
// caching primitives.
//
// Concrete service implementations live in internal/client (HTTP-backed)
// and internal/mock (in-memory); use pkg/services to construct them.
package procure
