package apprepo

import "time"

const seedTimeLayout = "2006-01-02T15:04:05"

func seedTime(s string) int64 {
	t, err := time.ParseInLocation(seedTimeLayout, s, time.UTC)
	if err != nil {
		panic(err)
	}

	return t.UnixMicro()
}

// SampleApps returns the records the registry boots with.
func SampleApps() []App {
	return []App{
		{
			ID:          1,
			Name:        "MyFitness Pro",
			Category:    "Health & Fitness",
			Logo:        "https://ui-avatars.com/api/?name=MyFitness&background=F97316&color=fff&bold=true",
			Platform:    "Android",
			Status:      "Active",
			CreatedOn:   seedTime("2024-01-15T10:30:00"),
			PackageName: "com.fitness.myfitness",
			WebsiteURL:  "https://myfitnesspro.com",
			Description: "Track your fitness journey with personalized workouts",
		},
		{
			ID:          2,
			Name:        "Travel Buddy",
			Category:    "Travel & Navigation",
			Logo:        "https://ui-avatars.com/api/?name=Travel&background=3B82F6&color=fff&bold=true",
			Platform:    "iOS",
			Status:      "In Review",
			CreatedOn:   seedTime("2024-01-20T14:45:00"),
			PackageName: "123456789",
			WebsiteURL:  "https://travelbuddy.app",
			Description: "Your perfect travel companion for exploring the world",
		},
		{
			ID:          3,
			Name:        "Recipe Finder",
			Category:    "Food & Drink",
			Logo:        "https://ui-avatars.com/api/?name=Recipe&background=10B981&color=fff&bold=true",
			Platform:    "Web",
			Status:      "Active",
			CreatedOn:   seedTime("2024-02-01T09:15:00"),
			WebsiteURL:  "https://recipefinder.io",
			Description: "Discover delicious recipes from around the world",
		},
		{
			ID:          4,
			Name:        "Music Stream",
			Category:    "Music & Audio",
			Logo:        "https://ui-avatars.com/api/?name=Music&background=8B5CF6&color=fff&bold=true",
			Platform:    "Android",
			Status:      "In Testing",
			CreatedOn:   seedTime("2024-02-10T16:20:00"),
			PackageName: "com.music.stream",
			WebsiteURL:  "https://musicstream.com",
			Description: "Stream millions of songs on demand",
		},
		{
			ID:          5,
			Name:        "Shopping Plus",
			Category:    "Shopping",
			Logo:        "https://ui-avatars.com/api/?name=Shopping&background=EF4444&color=fff&bold=true",
			Platform:    "Web",
			Status:      "Active",
			CreatedOn:   seedTime("2024-02-15T11:30:00"),
			WebsiteURL:  "https://shoppingplus.com",
			Description: "Shop from thousands of brands at the best prices",
		},
		{
			ID:          6,
			Name:        "Study Master",
			Category:    "Education",
			Logo:        "https://ui-avatars.com/api/?name=Study&background=F59E0B&color=fff&bold=true",
			Platform:    "Android",
			Status:      "Active",
			CreatedOn:   seedTime("2024-02-18T08:00:00"),
			PackageName: "com.education.studymaster",
			WebsiteURL:  "https://studymaster.edu",
			Description: "Learn smarter with AI-powered study tools",
		},
		{
			ID:          7,
			Name:        "Budget Tracker",
			Category:    "Finance",
			Logo:        "https://ui-avatars.com/api/?name=Budget&background=06B6D4&color=fff&bold=true",
			Platform:    "iOS",
			Status:      "Active",
			CreatedOn:   seedTime("2024-02-22T13:45:00"),
			PackageName: "987654321",
			WebsiteURL:  "https://budgettracker.app",
			Description: "Take control of your finances with smart budgeting",
		},
		{
			ID:          8,
			Name:        "Photo Editor Pro",
			Category:    "Photography",
			Logo:        "https://ui-avatars.com/api/?name=Photo&background=EC4899&color=fff&bold=true",
			Platform:    "Android",
			Status:      "In Review",
			CreatedOn:   seedTime("2024-02-25T15:10:00"),
			PackageName: "com.photo.editor",
			WebsiteURL:  "https://photoeditorpro.com",
			Description: "Professional photo editing at your fingertips",
		},
		{
			ID:          9,
			Name:        "Yoga Daily",
			Category:    "Health & Fitness",
			Logo:        "https://ui-avatars.com/api/?name=Yoga&background=14B8A6&color=fff&bold=true",
			Platform:    "Web",
			Status:      "Active",
			CreatedOn:   seedTime("2024-03-01T07:30:00"),
			WebsiteURL:  "https://yogadaily.com",
			Description: "Daily yoga routines for mind and body wellness",
		},
		{
			ID:          10,
			Name:        "News Hub",
			Category:    "News & Magazines",
			Logo:        "https://ui-avatars.com/api/?name=News&background=6366F1&color=fff&bold=true",
			Platform:    "iOS",
			Status:      "In Testing",
			CreatedOn:   seedTime("2024-03-05T12:00:00"),
			PackageName: "555666777",
			WebsiteURL:  "https://newshub.io",
			Description: "Stay informed with personalized news from trusted sources",
		},
		{
			ID:          11,
			Name:        "Meditation Space",
			Category:    "Health & Wellness",
			Logo:        "https://ui-avatars.com/api/?name=Meditation&background=A855F7&color=fff&bold=true",
			Platform:    "Android",
			Status:      "Active",
			CreatedOn:   seedTime("2024-03-08T09:20:00"),
			PackageName: "com.meditation.space",
			WebsiteURL:  "https://meditationspace.app",
			Description: "Find peace and calm with guided meditation sessions",
		},
		{
			ID:          12,
			Name:        "Task Manager Pro",
			Category:    "Productivity",
			Logo:        "https://ui-avatars.com/api/?name=Task&background=F97316&color=fff&bold=true",
			Platform:    "Web",
			Status:      "Active",
			CreatedOn:   seedTime("2024-03-12T10:15:00"),
			WebsiteURL:  "https://taskmanagerpro.com",
			Description: "Organize your tasks and boost productivity",
		},
	}
}
