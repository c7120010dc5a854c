package appsvc

import "fmt"

// Filter selects records by status and platform.
// An empty set does not filter, both sets must match when set.
type Filter struct {
	Status   []Status
	Platform []Platform
}

// IsEmpty reports whether f keeps every record.
func (f Filter) IsEmpty() bool {
	return len(f.Status) == 0 && len(f.Platform) == 0
}

func (f Filter) Validate() error {
	for _, s := range f.Status {
		if !s.Valid() {
			return fmt.Errorf("%w '%s'", ErrUnknownStatus, s)
		}
	}

	for _, p := range f.Platform {
		if !p.Valid() {
			return fmt.Errorf("%w '%s'", ErrUnknownPlatform, p)
		}
	}

	return nil
}

// ToggleStatus returns a copy with s removed when selected, appended otherwise.
func (f Filter) ToggleStatus(s Status) Filter {
	out := f.clone()
	for i, selected := range out.Status {
		if selected == s {
			out.Status = append(out.Status[:i], out.Status[i+1:]...)
			return out
		}
	}

	out.Status = append(out.Status, s)
	return out
}

// TogglePlatform returns a copy with p removed when selected, appended otherwise.
func (f Filter) TogglePlatform(p Platform) Filter {
	out := f.clone()
	for i, selected := range out.Platform {
		if selected == p {
			out.Platform = append(out.Platform[:i], out.Platform[i+1:]...)
			return out
		}
	}

	out.Platform = append(out.Platform, p)
	return out
}

func (f Filter) clone() Filter {
	return Filter{
		Status:   append([]Status(nil), f.Status...),
		Platform: append([]Platform(nil), f.Platform...),
	}
}

// FilterApps keeps the input order. The result never shares its backing array with apps.
func FilterApps(apps []App, f Filter) []App {
	if f.IsEmpty() {
		return append(make([]App, 0, len(apps)), apps...)
	}

	statuses := make(map[Status]struct{}, len(f.Status))
	for _, s := range f.Status {
		statuses[s] = struct{}{}
	}

	platforms := make(map[Platform]struct{}, len(f.Platform))
	for _, p := range f.Platform {
		platforms[p] = struct{}{}
	}

	out := make([]App, 0, len(apps))
	for _, app := range apps {
		if len(statuses) > 0 {
			if _, ok := statuses[app.Status]; !ok {
				continue
			}
		}

		if len(platforms) > 0 {
			if _, ok := platforms[app.Platform]; !ok {
				continue
			}
		}

		out = append(out, app)
	}

	return out
}
