package mock

import (
	"github.com/quotia-io/procure/pkg/procure"
)

// setIf copies the value when the update request carries one.
func setIf[T any](dst *T, src *T) {
	if src != nil {
		*dst = *src
	}
}

// orEmpty keeps JSON output as [] rather than null.
func orEmpty[T any](values []T) []T {
	if values == nil {
		return []T{}
	}

	return values
}

func removeID(ids []string, id string) []string {
	// Allocates so snapshots handed out earlier keep their backing array.
	out := make([]string, 0, len(ids))

	for _, existing := range ids {
		if existing != id {
			out = append(out, existing)
		}
	}

	return out
}

// assignContactIDs fills in ids for contacts that arrive without one.
// Caller holds the store lock.
func assignContactIDs(store *Store, contacts []procure.Contact) []procure.Contact {
	out := make([]procure.Contact, len(contacts))

	for i, contact := range contacts {
		if contact.ID == "" {
			contact.ID = store.nextID("ct")
		}

		out[i] = contact
	}

	return out
}

func maxLimit(total int) int {
	if total <= 0 {
		return 1
	}

	return total
}

// applyAll runs the engine with filters and sort but no page window.
func applyAll[T any](records []T, schema *procure.Schema[T], query *procure.QueryParams) ([]T, error) {
	all := procure.NewQueryParams().WithPage(1).WithLimit(maxLimit(len(records)))
	if query != nil {
		all.Sort = query.Sort
		all.Filters = query.Filters
	}

	page, err := procure.Apply(records, schema, all)
	if err != nil {
		return nil, err
	}

	return page.Data, nil
}

const recentWindowDays = 30

// directoryStatsLocked summarizes both directory collections. Caller holds
// at least a read lock.
func directoryStatsLocked(store *Store) *procure.DirectoryStats {
	stats := &procure.DirectoryStats{
		TotalManufacturers: len(store.manufacturers),
		TotalSuppliers:     len(store.suppliers),
	}

	recentCutoff := store.now().AddDate(0, 0, -recentWindowDays)

	for _, m := range store.manufacturers {
		if m.Status == procure.StatusActive {
			stats.ActiveManufacturers++
		}

		if m.Status == procure.StatusPending {
			stats.PendingApproval++
		}

		if m.CreatedAt.After(recentCutoff) {
			stats.RecentlyAdded++
		}
	}

	for _, s := range store.suppliers {
		if s.Status == procure.StatusActive {
			stats.ActiveSuppliers++
		}

		if s.Status == procure.StatusPending {
			stats.PendingApproval++
		}

		if s.CreatedAt.After(recentCutoff) {
			stats.RecentlyAdded++
		}
	}

	return stats
}
