package mock

import (
	"time"

	"github.com/quotia-io/procure/pkg/procure"
)

func date(value string) time.Time {
	t, _ := time.Parse("2006-01-02", value)

	return t
}

func datePtr(value string) *time.Time {
	t := date(value)

	return &t
}

// seedFixtures loads the demo directory and RFQ data. Ids are sequential
// so the per-prefix counters continue after them.
func seedFixtures(s *Store) {
	s.manufacturers = []procure.Manufacturer{
		{
			ID:       "mfg-001",
			Name:     "Precision Dynamics Corp",
			Industry: "Aerospace",
			Website:  "https://precisiondynamics.example.com",
			Address: procure.Address{
				Street: "1200 Industrial Way", City: "Seattle", State: "WA",
				Country: "USA", PostalCode: "98101",
			},
			Contacts: []procure.Contact{
				{ID: "ct-001", Name: "Sarah Chen", Email: "s.chen@precisiondynamics.example.com", Phone: "+1-206-555-0142", Role: "Sales Director", IsPrimary: true},
			},
			LinkedSupplierIDs: []string{"sup-001", "sup-002"},
			Capabilities:      []string{"CNC Machining", "Sheet Metal", "Anodizing"},
			Certifications:    []string{"AS9100D", "ISO 9001"},
			Status:            procure.StatusActive,
			CreatedAt:         date("2024-01-15"),
			UpdatedAt:         date("2024-06-02"),
			LastContactDate:   datePtr("2024-05-28"),
		},
		{
			ID:          "mfg-002",
			Name:        "Nordwerk Industries",
			Description: "Heavy equipment components and castings",
			Industry:    "Industrial Machinery",
			Address: procure.Address{
				Street: "Hafenstrasse 44", City: "Hamburg",
				Country: "Germany", PostalCode: "20457",
			},
			Contacts: []procure.Contact{
				{ID: "ct-002", Name: "Jonas Keller", Email: "j.keller@nordwerk.example.de", Role: "Account Manager", IsPrimary: true},
				{ID: "ct-003", Name: "Anna Weiss", Email: "a.weiss@nordwerk.example.de", Role: "Engineering Liaison", IsPrimary: false},
			},
			LinkedSupplierIDs: []string{"sup-002"},
			Capabilities:      []string{"Casting", "Forging", "Heat Treatment"},
			Certifications:    []string{"ISO 9001", "ISO 14001"},
			Status:            procure.StatusActive,
			CreatedAt:         date("2024-03-08"),
			UpdatedAt:         date("2024-05-19"),
		},
		{
			ID:       "mfg-003",
			Name:     "Kaito Electronics",
			Industry: "Electronics",
			Address: procure.Address{
				Street: "2-14-1 Shibaura", City: "Tokyo",
				Country: "Japan", PostalCode: "108-0023",
			},
			Contacts: []procure.Contact{
				{ID: "ct-004", Name: "Yuki Tanaka", Email: "tanaka@kaito.example.jp", Role: "Export Sales", IsPrimary: true},
			},
			LinkedSupplierIDs: []string{},
			Capabilities:      []string{"PCB Assembly", "Box Build"},
			Certifications:    []string{"IPC-A-610"},
			Status:            procure.StatusPending,
			CreatedAt:         date("2024-06-20"),
			UpdatedAt:         date("2024-06-20"),
		},
	}

	s.suppliers = []procure.Supplier{
		{
			ID:   "sup-001",
			Name: "Global Parts Link",
			Type: procure.SupplierTypeDistributor,
			Address: procure.Address{
				Street: "500 Commerce Blvd", City: "Chicago", State: "IL",
				Country: "USA", PostalCode: "60607",
			},
			Contacts: []procure.Contact{
				{ID: "ct-101", Name: "Miguel Torres", Email: "m.torres@globalpartslink.example.com", Role: "Key Account Manager", IsPrimary: true},
			},
			LinkedManufacturerIDs: []string{"mfg-001"},
			Specializations:       []string{"Fasteners", "Bearings", "Seals"},
			PaymentTerms:          "Net 30",
			DeliveryTime:          "5-7 days",
			Status:                procure.StatusActive,
			CreatedAt:             date("2024-02-01"),
			UpdatedAt:             date("2024-05-30"),
			LastContactDate:       datePtr("2024-05-22"),
		},
		{
			ID:   "sup-002",
			Name: "EuroStock Components",
			Type: procure.SupplierTypeWholesaler,
			Address: procure.Address{
				Street: "Keizersgracht 210", City: "Amsterdam",
				Country: "Netherlands", PostalCode: "1016 DX",
			},
			Contacts: []procure.Contact{
				{ID: "ct-102", Name: "Lotte de Vries", Email: "l.devries@eurostock.example.nl", Role: "Sales", IsPrimary: true},
			},
			LinkedManufacturerIDs: []string{"mfg-001", "mfg-002"},
			Specializations:       []string{"Hydraulics", "Pneumatics"},
			PaymentTerms:          "Net 45",
			DeliveryTime:          "3-5 days",
			Status:                procure.StatusActive,
			CreatedAt:             date("2024-02-11"),
			UpdatedAt:             date("2024-06-05"),
		},
		{
			ID:   "sup-003",
			Name: "Meridian Trade Co",
			Type: procure.SupplierTypeBroker,
			Address: procure.Address{
				Street: "8 Raffles Place", City: "Singapore",
				Country: "Singapore", PostalCode: "048618",
			},
			Contacts: []procure.Contact{
				{ID: "ct-103", Name: "Wei Lim", Email: "w.lim@meridiantrade.example.sg", Role: "Director", IsPrimary: true},
			},
			LinkedManufacturerIDs: []string{},
			Specializations:       []string{"Obsolete Parts Sourcing"},
			PaymentTerms:          "Prepaid",
			DeliveryTime:          "10-14 days",
			Status:                procure.StatusInactive,
			CreatedAt:             date("2023-11-27"),
			UpdatedAt:             date("2024-04-14"),
		},
	}

	s.rfqs = []procure.RFQRecord{
		{
			ID: "rfq-001", RFQNo: "RFQ-2024-0117", Client: "Aldrin Aerospace",
			PublishDate: date("2024-05-02"), BidDate: date("2024-05-23"),
			Status: procure.RFQStatusOpen, LastUpdated: date("2024-05-12"),
			LineItems: []procure.LineItem{
				{ID: "li-001", LineNumber: "1", ItemID: "PD-4411", Manufacturer: "Precision Dynamics Corp", Supplier: "Global Parts Link", Email: "m.torres@globalpartslink.example.com", Status: procure.LineItemStatusOpen, Qty: 120},
				{ID: "li-002", LineNumber: "2", ItemID: "PD-4412", Manufacturer: "Precision Dynamics Corp", Supplier: "EuroStock Components", Email: "l.devries@eurostock.example.nl", Status: procure.LineItemStatusQuoteReceived, Qty: 60},
			},
		},
		{
			ID: "rfq-002", RFQNo: "RFQ-2024-0121", Client: "Helios Marine",
			PublishDate: date("2024-05-10"), BidDate: date("2024-06-01"),
			Status: procure.RFQStatusSubmitted, LastUpdated: date("2024-05-29"),
			LineItems: []procure.LineItem{
				{ID: "li-003", LineNumber: "1", ItemID: "NW-8820", Manufacturer: "Nordwerk Industries", Supplier: "EuroStock Components", Email: "l.devries@eurostock.example.nl", Status: procure.LineItemStatusSubmitted, Qty: 8},
			},
		},
		{
			ID: "rfq-003", RFQNo: "RFQ-2024-0135", Client: "Aldrin Aerospace",
			PublishDate: date("2024-05-27"), BidDate: date("2024-06-17"),
			Status: procure.RFQStatusOpen, LastUpdated: date("2024-05-27"),
			LineItems: []procure.LineItem{
				{ID: "li-004", LineNumber: "1", ItemID: "KE-1033", Manufacturer: "Kaito Electronics", Supplier: "Meridian Trade Co", Email: "w.lim@meridiantrade.example.sg", Status: procure.LineItemStatusOpen, Qty: 500},
				{ID: "li-005", LineNumber: "2", ItemID: "KE-1034", Manufacturer: "Kaito Electronics", Supplier: "Meridian Trade Co", Email: "w.lim@meridiantrade.example.sg", Status: procure.LineItemStatusOpen, Qty: 250},
				{ID: "li-006", LineNumber: "3", ItemID: "PD-2209", Manufacturer: "Precision Dynamics Corp", Supplier: "Global Parts Link", Email: "m.torres@globalpartslink.example.com", Status: procure.LineItemStatusOpen, Qty: 40},
			},
		},
		{
			ID: "rfq-004", RFQNo: "RFQ-2024-0098", Client: "Borealis Rail",
			PublishDate: date("2024-04-03"), BidDate: date("2024-04-24"),
			Status: procure.RFQStatusClosed, LastUpdated: date("2024-04-30"),
			LineItems: []procure.LineItem{
				{ID: "li-007", LineNumber: "1", ItemID: "NW-5511", Manufacturer: "Nordwerk Industries", Supplier: "EuroStock Components", Email: "l.devries@eurostock.example.nl", Status: procure.LineItemStatusClosed, Qty: 16},
			},
		},
		{
			ID: "rfq-005", RFQNo: "RFQ-2024-0140", Client: "Helios Marine",
			PublishDate: date("2024-06-04"), BidDate: date("2024-06-28"),
			Status: procure.RFQStatusPending, LastUpdated: date("2024-06-04"),
			LineItems: []procure.LineItem{},
		},
	}

	s.seq["mfg"] = len(s.manufacturers)
	s.seq["sup"] = len(s.suppliers)
	s.seq["rfq"] = len(s.rfqs)
	s.seq["li"] = 7
	s.seq["ct"] = 200
}
