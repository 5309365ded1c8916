package game

// Scenario is an immutable catalog entry describing a course theme.
type Scenario struct {
	ID         string  `json:"id"`
	Name       string  `json:"name"`
	Background string  `json:"background"`
	GroundY    float64 `json:"groundY"`
}

var scenarios = []Scenario{
	{ID: "volcano", Name: "Blazing Volcano", Background: "#ff4444", GroundY: 150},
	{ID: "farm", Name: "Crazy Farm", Background: "#44aa44", GroundY: 180},
	{ID: "city", Name: "Chaotic City", Background: "#4444aa", GroundY: 200},
	{ID: "space", Name: "Space Station", Background: "#220033", GroundY: 120},
	{ID: "jungle", Name: "Wild Jungle", Background: "#228844", GroundY: 160},
}

// Scenarios returns the scenario catalog.
func Scenarios() []Scenario {
	out := make([]Scenario, len(scenarios))
	copy(out, scenarios)
	return out
}

// FindScenario looks up a catalog entry by id.
func FindScenario(id string) (Scenario, bool) {
	for _, s := range scenarios {
		if s.ID == id {
			return s, true
		}
	}
	return Scenario{}, false
}
