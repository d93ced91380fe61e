package formation

import "github.com/futsalboard/server/internal/domain"

// Slot coordinates are presentation metadata (percent of field width/height);
// the engine only cares about slot count and occupancy.
type Slot struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type Template struct {
	Name  string `json:"name"`
	TeamA []Slot `json:"teamA"`
	TeamB []Slot `json:"teamB"`
}

var templates = map[string]Template{
	"2v2": {
		Name:  "2v2",
		TeamA: []Slot{{20, 35}, {35, 50}},
		TeamB: []Slot{{65, 50}, {80, 35}},
	},
	"3v3": {
		Name:  "3v3",
		TeamA: []Slot{{15, 40}, {30, 25}, {30, 55}},
		TeamB: []Slot{{70, 25}, {70, 55}, {85, 40}},
	},
	"4v4": {
		Name:  "4v4",
		TeamA: []Slot{{15, 40}, {30, 20}, {30, 60}, {45, 40}},
		TeamB: []Slot{{55, 40}, {70, 20}, {70, 60}, {85, 40}},
	},
	"5v5": {
		Name:  "5v5",
		TeamA: []Slot{{15, 40}, {30, 20}, {30, 60}, {45, 30}, {45, 50}},
		TeamB: []Slot{{55, 30}, {55, 50}, {70, 20}, {70, 60}, {85, 40}},
	},
	"6v6": {
		Name:  "6v6",
		TeamA: []Slot{{15, 40}, {28, 20}, {28, 60}, {40, 25}, {40, 55}, {50, 40}},
		TeamB: []Slot{{50, 40}, {60, 25}, {60, 55}, {72, 20}, {72, 60}, {85, 40}},
	},
}

// TemplateNames lists the known templates, smallest first.
func TemplateNames() []string {
	return []string{"2v2", "3v3", "4v4", "5v5", "6v6"}
}

func Lookup(name string) (Template, error) {
	t, ok := templates[name]
	if !ok {
		return Template{}, domain.ErrNotFound("formation template", name)
	}
	return t, nil
}
