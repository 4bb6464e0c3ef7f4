package httpeph

// Endpoint paths.
const (
	PathPosition = "/position"
	PathTransit  = "/transit"
	PathAyanamsa = "/ayanamsa"
)

// positionResponse is the /position response format.
type positionResponse struct {
	Body      string  `json:"body"`
	Longitude float64 `json:"longitude"`
	Latitude  float64 `json:"latitude"`
	Speed     float64 `json:"speed"`
}

// transitResponse is the /transit response format.
// Valid is false when the body has no such event in the search window.
type transitResponse struct {
	JD    float64 `json:"jd"`
	Valid bool    `json:"valid"`
}

// ayanamsaResponse is the /ayanamsa response format.
type ayanamsaResponse struct {
	Ayanamsa float64 `json:"ayanamsa"`
}

// errorResponse is returned with any non-200 status.
type errorResponse struct {
	Error string `json:"error"`
}
