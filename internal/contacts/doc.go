// Package contacts is the data model of the contact book.
//
// Values are validated on construction and on every reassignment, so a
// Phone or a Birthday that exists is always in canonical form:
//
//	p, err := contacts.NewPhone("(050) 123-45-67") // "+380501234567"
//	b, err := contacts.ParseBirthday(29, 2, 2024)  // "2024-02-29"
//
// A Record aggregates a name, phones and an optional birthday. An
// AddressBook owns records keyed by name and renders them as one-line
// summaries:
//
//	Name: Anna (Birthday: 2024-02-29); Phone: +380501234567
//
// The package performs no I/O. Failures are returned as *Error values that
// wrap one of the sentinel errors, so callers can use errors.Is to pick a
// message and errors.As to recover the offending input.
package contacts
