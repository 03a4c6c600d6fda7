package gst

import "strings"

// ResolveState picks the place-of-supply state for a customer: the
// customer's own state when known, otherwise the business state.
func ResolveState(customerState, businessState string) string {
	if s := strings.TrimSpace(customerState); s != "" {
		return s
	}
	return strings.TrimSpace(businessState)
}
