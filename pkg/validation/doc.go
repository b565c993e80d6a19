// Package validation runs field validators and aggregates their outcome into
// an ErrorMap.
//
// ValidateField walks a field's validators in declared order and stops at
// the first failure. ValidateData applies ValidateField to every field and
// only records keys for fields that failed. The same ErrorMap shape carries
// server-reported errors, with FormErrorKey reserved for form-level messages,
// so HasErrors treats both sources alike.
package validation
