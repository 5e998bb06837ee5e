package resources

import (
	"github.com/arcenciel/creche-api/store"
)

// Validator inspects a payload and returns the names of invalid fields, in
// declaration order, or an empty list when the payload is acceptable. Unknown
// extra fields are never rejected.
type Validator func(payload store.Record) []string

func ValidateStaff(payload store.Record) []string {
	errs := []string{}
	if !hasString(payload, "name") {
		errs = append(errs, "name")
	}
	if !hasString(payload, "role") {
		errs = append(errs, "role")
	}
	if !hasPositiveNumber(payload, "maxChildrenCapacity") {
		errs = append(errs, "maxChildrenCapacity")
	}
	if !hasObject(payload, "schedule") {
		errs = append(errs, "schedule")
	}
	return errs
}

func ValidateChild(payload store.Record) []string {
	errs := []string{}
	if !hasString(payload, "firstName") {
		errs = append(errs, "firstName")
	}
	if !hasString(payload, "lastName") {
		errs = append(errs, "lastName")
	}
	if !hasString(payload, "birthDate") {
		errs = append(errs, "birthDate")
	}
	if !hasString(payload, "ageGroup") {
		errs = append(errs, "ageGroup")
	}
	if !hasString(payload, "attendancePattern") {
		errs = append(errs, "attendancePattern")
	}
	return errs
}

func ValidateActivity(payload store.Record) []string {
	errs := []string{}
	if !hasString(payload, "name") {
		errs = append(errs, "name")
	}
	if !hasString(payload, "description") {
		errs = append(errs, "description")
	}
	if !hasList(payload, "ageGroups") {
		errs = append(errs, "ageGroups")
	}
	if !hasString(payload, "weekday") {
		errs = append(errs, "weekday")
	}
	if !hasPositiveNumber(payload, "maxChildren") {
		errs = append(errs, "maxChildren")
	}
	return errs
}

func ValidateInventory(payload store.Record) []string {
	errs := []string{}
	if !hasString(payload, "childId") {
		errs = append(errs, "childId")
	}
	if !hasString(payload, "type") {
		errs = append(errs, "type")
	}
	if !hasString(payload, "brand") {
		errs = append(errs, "brand")
	}
	if !hasPositiveNumber(payload, "quantity") {
		errs = append(errs, "quantity")
	}
	if !hasString(payload, "unit") {
		errs = append(errs, "unit")
	}
	if !hasString(payload, "dateReceived") {
		errs = append(errs, "dateReceived")
	}
	if !hasString(payload, "expirationDate") {
		errs = append(errs, "expirationDate")
	}
	return errs
}

func hasString(payload store.Record, field string) bool {
	s, ok := payload[field].(string)
	return ok && s != ""
}

// hasPositiveNumber accepts the float64 produced by JSON decoding plus plain
// ints for records built in code.
func hasPositiveNumber(payload store.Record, field string) bool {
	switch n := payload[field].(type) {
	case float64:
		return n > 0
	case int:
		return n > 0
	default:
		return false
	}
}

func hasObject(payload store.Record, field string) bool {
	switch payload[field].(type) {
	case map[string]interface{}, store.Record:
		return true
	default:
		return false
	}
}

func hasList(payload store.Record, field string) bool {
	switch l := payload[field].(type) {
	case []interface{}:
		return len(l) > 0
	case []string:
		return len(l) > 0
	default:
		return false
	}
}
