package domain

type Executive struct {
	ID         int    `yaml:"id" json:"id"`
	Name       string `yaml:"name" json:"name"`
	Alias      string `yaml:"alias" json:"alias"`
	Position   string `yaml:"position" json:"position"`
	Department string `yaml:"department" json:"department"`
	Quote      string `yaml:"quote" json:"quote"`
	Image      string `yaml:"image" json:"image,omitempty"`
	LinkedIn   string `yaml:"linkedin" json:"linkedin,omitempty"`
}

type Event struct {
	ID          int    `yaml:"id" json:"id"`
	Title       string `yaml:"title" json:"title"`
	Date        string `yaml:"date" json:"date"`
	Time        string `yaml:"time" json:"time,omitempty"`
	Location    string `yaml:"location" json:"location,omitempty"`
	Description string `yaml:"description" json:"description,omitempty"`
	Type        string `yaml:"type" json:"type,omitempty"`
	Attendees   int    `yaml:"attendees" json:"attendees,omitempty"`
}

type Events struct {
	Upcoming []Event `yaml:"upcoming" json:"upcoming"`
	Past     []Event `yaml:"past" json:"past"`
}

type Track struct {
	ID          string   `yaml:"id" json:"id"`
	Title       string   `yaml:"title" json:"title"`
	Description string   `yaml:"description" json:"description"`
	Skills      []string `yaml:"skills" json:"skills"`
}
