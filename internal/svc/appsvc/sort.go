package appsvc

import "sort"

// SortApps returns a new slice ordered by CreatedOn, keeping input order on ties.
// Unknown key returns the copy unchanged; callers that accept user input validate the key first.
func SortApps(apps []App, key SortKey) []App {
	out := make([]App, len(apps))
	copy(out, apps)

	switch key {
	case SortNewest:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].CreatedOn.After(out[j].CreatedOn)
		})

	case SortOldest:
		sort.SliceStable(out, func(i, j int) bool {
			return out[i].CreatedOn.Before(out[j].CreatedOn)
		})
	}

	return out
}
