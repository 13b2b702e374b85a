package session

// Rank labels shown on the shelter cards, indexed by rank-1.
var rankLabels = []string{"nearest", "2nd", "3rd", "4th", "5th"}

// Arrow is one shelter direction arrow in the view.
type Arrow struct {
	RotationDegrees float64 `json:"rotation_degrees"`
	DistanceLabel   string  `json:"distance_label"`
}

// Needle is the north-pointing compass needle.
type Needle struct {
	RotationDegrees float64 `json:"rotation_degrees"`
}

// Card is one shelter detail card in the view.
type Card struct {
	Rank           int    `json:"rank"`
	RankLabel      string `json:"rank_label"`
	Name           string `json:"name"`
	Address        string `json:"address,omitempty"`
	DistanceLabel  string `json:"distance_label"`
	DirectionLabel string `json:"direction_label"`
}

// ViewModel is the render-ready snapshot of the navigation session.
// All rotation values are accumulated degrees and may exceed 360 or go
// negative so that a renderer animating them never spins the long way
// around.
type ViewModel struct {
	State      string `json:"state"`
	Status     string `json:"status"`
	Error      string `json:"error,omitempty"`
	RegionCode string `json:"region_code,omitempty"`

	Arrows []Arrow `json:"arrows"`
	Needle Needle  `json:"needle"`
	Cards  []Card  `json:"cards"`
}

func rankLabel(rank int) string {
	if rank >= 1 && rank <= len(rankLabels) {
		return rankLabels[rank-1]
	}
	return ""
}
