package onboarding

import "net/url"

// ServiceParam is the query parameter that pre-selects a service.
const ServiceParam = "service"

// PrefillServices returns the single service named by the service query
// parameter, or nil when the parameter is missing or unrecognized.
func PrefillServices(query url.Values) []Service {
	s, ok := ParseService(query.Get(ServiceParam))
	if !ok {
		return nil
	}
	return []Service{s}
}

// NewInput returns the initial form values, applying any query prefill.
func NewInput(query url.Values) Input {
	in := Input{Services: []string{}}
	for _, s := range PrefillServices(query) {
		in.Services = append(in.Services, string(s))
	}
	return in
}
