package appsvc

// StatusBadge is the colour set of a status pill.
type StatusBadge struct {
	Background string
	Text       string
	Dot        string
}

// PlatformBadge is the colour set of a platform pill.
type PlatformBadge struct {
	Background string
	Text       string
	Border     string
}

var statusBadges = map[Status]StatusBadge{
	StatusActive:    {Background: "green-50", Text: "green-700", Dot: "green-500"},
	StatusInReview:  {Background: "yellow-50", Text: "yellow-700", Dot: "yellow-500"},
	StatusInTesting: {Background: "blue-50", Text: "blue-700", Dot: "blue-500"},
}

var platformBadges = map[Platform]PlatformBadge{
	PlatformAndroid: {Background: "green-50", Text: "green-700", Border: "green-200"},
	PlatformIOS:     {Background: "gray-50", Text: "gray-700", Border: "gray-200"},
	PlatformWeb:     {Background: "blue-50", Text: "blue-700", Border: "blue-200"},
}

// StatusBadgeOf falls back to the Active style.
func StatusBadgeOf(s Status) StatusBadge {
	if b, ok := statusBadges[s]; ok {
		return b
	}

	return statusBadges[StatusActive]
}

// PlatformBadgeOf falls back to the Web style.
func PlatformBadgeOf(p Platform) PlatformBadge {
	if b, ok := platformBadges[p]; ok {
		return b
	}

	return platformBadges[PlatformWeb]
}
