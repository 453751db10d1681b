package players

// Player represents the normalized player shape.
type Player struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	TeamID      string `json:"teamId,omitempty"`
	Team        string `json:"team"`
	Position    string `json:"position"`
	Nationality string `json:"nationality"`
	Height      string `json:"height,omitempty"`
	Weight      string `json:"weight,omitempty"`
	BornOn      string `json:"bornOn,omitempty"`
	Thumbnail   string `json:"thumbnail,omitempty"`
	Description string `json:"description,omitempty"`
}
