package onboarding

import "strings"

// Service is one of the fixed services a client can ask for.
type Service string

const (
	ServiceUIUX      Service = "UI/UX"
	ServiceBranding  Service = "Branding"
	ServiceWebDev    Service = "Web Dev"
	ServiceMobileApp Service = "Mobile App"
)

// ServiceOption describes a Service for display.
type ServiceOption struct {
	Value       Service `json:"value"       cbor:"value"`
	Label       string  `json:"label"       cbor:"label"`
	Description string  `json:"description" cbor:"description"`
}

var catalog = []ServiceOption{
	{
		Value:       ServiceUIUX,
		Label:       "UI/UX Design",
		Description: "Craft intuitive user interfaces and seamless experiences",
	},
	{
		Value:       ServiceBranding,
		Label:       "Branding",
		Description: "Build memorable brand identities and visual systems",
	},
	{
		Value:       ServiceWebDev,
		Label:       "Web Development",
		Description: "Develop robust, scalable web applications",
	},
	{
		Value:       ServiceMobileApp,
		Label:       "Mobile App Development",
		Description: "Create native and cross-platform mobile solutions",
	},
}

// Catalog returns the service options in display order.
func Catalog() []ServiceOption {
	out := make([]ServiceOption, len(catalog))
	copy(out, catalog)
	return out
}

// ParseService returns the Service whose value is exactly s.
func ParseService(s string) (Service, bool) {
	for _, opt := range catalog {
		if string(opt.Value) == s {
			return opt.Value, true
		}
	}
	return "", false
}

// Label returns the display label of s, or its raw value if unknown.
func (s Service) Label() string {
	for _, opt := range catalog {
		if opt.Value == s {
			return opt.Label
		}
	}
	return string(s)
}

func serviceList() string {
	values := make([]string, len(catalog))
	for i, opt := range catalog {
		values[i] = string(opt.Value)
	}
	return strings.Join(values, ", ")
}
