// Package validate implements declarative per-field validation of request
// payloads.
//
// Handlers build a Collector, declare one rule per field, and call Err().
// Failures are collected - not short-circuited - so a response can report
// every bad field at once:
//
//	v := validate.New()
//	v.MinLength("title", req.Title, 3)
//	v.URL("url", req.URL)
//	if err := v.Err(); err != nil { ... 400 with per-field errors ... }
package validate

import (
	"fmt"
	"net/mail"
	"net/url"
	"strings"
	"unicode/utf8"
)

// FieldError describes a single failed rule.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Errors is the full set of failed rules for one request.
// It implements error so services and handlers can pass it around like any
// other failure.
type Errors []FieldError

func (e Errors) Error() string {
	msgs := make([]string, 0, len(e))
	for _, fe := range e {
		msgs = append(msgs, fmt.Sprintf("%s: %s", fe.Field, fe.Message))
	}
	return "validation failed: " + strings.Join(msgs, "; ")
}

// Collector accumulates field errors as rules are applied.
// The zero value is usable; New exists for symmetry with the rest of the
// codebase's constructors.
type Collector struct {
	errs Errors
}

func New() *Collector {
	return &Collector{}
}

// Add records a failure directly. Used for rules too specific to deserve a
// helper (e.g. the best-effort email-uniqueness check in the auth service).
func (c *Collector) Add(field, message string) {
	c.errs = append(c.errs, FieldError{Field: field, Message: message})
}

// MinLength requires the trimmed value to be at least min characters long.
// Length is counted in runes, not bytes, so multi-byte names aren't rejected.
func (c *Collector) MinLength(field, value string, min int) {
	if utf8.RuneCountInString(strings.TrimSpace(value)) < min {
		c.Add(field, fmt.Sprintf("%s has to be at least %d characters long", field, min))
	}
}

// OptionalMinLength applies MinLength only when the field was present in the
// request body. PATCH payloads use pointer fields: nil means "not provided".
func (c *Collector) OptionalMinLength(field string, value *string, min int) {
	if value == nil {
		return
	}
	c.MinLength(field, *value, min)
}

// Email requires a syntactically valid, non-empty address.
func (c *Collector) Email(field, value string) {
	value = strings.TrimSpace(value)
	if value == "" {
		c.Add(field, fmt.Sprintf("%s can not be empty", field))
		return
	}
	if _, err := mail.ParseAddress(value); err != nil {
		c.Add(field, fmt.Sprintf("%s has to be a valid email", field))
	}
}

// OptionalEmail applies Email only when the field was provided.
func (c *Collector) OptionalEmail(field string, value *string) {
	if value == nil {
		return
	}
	c.Email(field, *value)
}

// URL requires an absolute http(s) URL.
func (c *Collector) URL(field, value string) {
	u, err := url.Parse(strings.TrimSpace(value))
	if err != nil || u.Host == "" || (u.Scheme != "http" && u.Scheme != "https") {
		c.Add(field, fmt.Sprintf("%s has to be a valid URL", field))
	}
}

// OptionalURL applies URL only when the field was provided.
func (c *Collector) OptionalURL(field string, value *string) {
	if value == nil {
		return
	}
	c.URL(field, *value)
}

// Err returns the collected Errors, or nil if every rule passed.
//
// The nil check matters: returning a nil-valued Errors inside a non-nil
// error interface would make `err != nil` true with zero failures.
func (c *Collector) Err() error {
	if len(c.errs) == 0 {
		return nil
	}
	return c.errs
}
