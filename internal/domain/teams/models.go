package teams

// Team represents a club as returned by team lookups.
type Team struct {
	ID              string `json:"id"`
	Name            string `json:"name"`
	ShortName       string `json:"shortName,omitempty"`
	League          string `json:"league,omitempty"`
	Country         string `json:"country,omitempty"`
	Stadium         string `json:"stadium,omitempty"`
	StadiumCapacity *int   `json:"stadiumCapacity,omitempty"`
	FormedYear      *int   `json:"formedYear,omitempty"`
	Badge           string `json:"badge,omitempty"`
	Description     string `json:"description,omitempty"`
}
