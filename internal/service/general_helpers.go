package service

import "strings"

// optionalID maps a missing or blank id to nil.
//
// Example:
//
//	optionalID(nil)         // returns nil
//	optionalID(&"")         // returns nil
//	optionalID(&" abc ")    // returns &"abc"
func optionalID(id *string) *string {
	if id == nil {
		return nil
	}
	trimmed := strings.TrimSpace(*id)
	if trimmed == "" {
		return nil
	}
	return &trimmed
}

// normalizeRiskLevel lower-cases a risk level so "High" and "high" are stored alike.
func normalizeRiskLevel(riskLevel string) string {
	return strings.ToLower(strings.TrimSpace(riskLevel))
}
