package apprepo

// App is the stored application record.
// CreatedOn is unix micro in UTC and is only ever set on Create.
type App struct {
	ID          int64  `json:"id"`
	Name        string `json:"name"`
	Category    string `json:"category"`
	Description string `json:"description"`
	Logo        string `json:"logo"`
	WebsiteURL  string `json:"website_url"`
	Platform    string `json:"platform"`
	PackageName string `json:"package_name"`
	Status      string `json:"status"`
	CreatedOn   int64  `json:"created_on"`
}
