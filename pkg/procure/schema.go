package procure

import "time"

// ManufacturerSchema describes how manufacturer lists filter, sort, and
// search. The free-text search reaches one nested level into contacts.
func ManufacturerSchema() *Schema[Manufacturer] {
	return NewSchema[Manufacturer]().
		Text("name", func(m Manufacturer) string { return m.Name }).
		Text("industry", func(m Manufacturer) string { return m.Industry }).
		Token("status", func(m Manufacturer) string { return string(m.Status) }).
		Date("createdAt", func(m Manufacturer) time.Time { return m.CreatedAt }).
		Date("updatedAt", func(m Manufacturer) time.Time { return m.UpdatedAt }).
		DateRange("createdAt").
		Searchable(func(m Manufacturer) []string {
			return []string{m.Name, m.Description, m.Industry}
		}).
		Searchable(func(m Manufacturer) []string {
			values := make([]string, 0, len(m.Contacts)*2)
			for _, c := range m.Contacts {
				values = append(values, c.Name, c.Email)
			}

			return values
		})
}

// SupplierSchema describes how supplier lists filter, sort, and search.
func SupplierSchema() *Schema[Supplier] {
	return NewSchema[Supplier]().
		Text("name", func(s Supplier) string { return s.Name }).
		Token("type", func(s Supplier) string { return string(s.Type) }).
		Token("status", func(s Supplier) string { return string(s.Status) }).
		Date("createdAt", func(s Supplier) time.Time { return s.CreatedAt }).
		Date("updatedAt", func(s Supplier) time.Time { return s.UpdatedAt }).
		DateRange("createdAt").
		Searchable(func(s Supplier) []string {
			return append([]string{s.Name, s.Description}, s.Specializations...)
		}).
		Searchable(func(s Supplier) []string {
			values := make([]string, 0, len(s.Contacts)*2)
			for _, c := range s.Contacts {
				values = append(values, c.Name, c.Email)
			}

			return values
		})
}

// RFQSchema describes how RFQ lists filter, sort, and search. The
// free-text search reaches one nested level into line items.
func RFQSchema() *Schema[RFQRecord] {
	return NewSchema[RFQRecord]().
		Text("rfqNo", func(r RFQRecord) string { return r.RFQNo }).
		Text("client", func(r RFQRecord) string { return r.Client }).
		Token("status", func(r RFQRecord) string { return string(r.Status) }).
		Date("publishDate", func(r RFQRecord) time.Time { return r.PublishDate }).
		Date("bidDate", func(r RFQRecord) time.Time { return r.BidDate }).
		Date("lastUpdated", func(r RFQRecord) time.Time { return r.LastUpdated }).
		DateRange("publishDate").
		Searchable(func(r RFQRecord) []string {
			return []string{r.RFQNo, r.Client}
		}).
		Searchable(func(r RFQRecord) []string {
			values := make([]string, 0, len(r.LineItems)*3)
			for _, item := range r.LineItems {
				values = append(values, item.ItemID, item.Manufacturer, item.Supplier)
			}

			return values
		})
}
