package httpapi

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

// Issue describes one reason a request was rejected. The shape is shared by
// every 400 response carrying an issue list.
type Issue struct {
	Code       string   `json:"code"`
	Expected   string   `json:"expected,omitempty"`
	Received   string   `json:"received,omitempty"`
	Validation string   `json:"validation,omitempty"`
	Minimum    int      `json:"minimum,omitempty"`
	Type       string   `json:"type,omitempty"`
	Path       []string `json:"path"`
	Message    string   `json:"message"`
}

const (
	codeInvalidType   = "invalid_type"
	codeInvalidString = "invalid_string"
	codeTooSmall      = "too_small"
	codeTooBig        = "too_big"

	jsonString  = "string"
	jsonBoolean = "boolean"
	jsonObject  = "object"
)

// field is one expected member of a JSON object body.
type field struct {
	name     string
	kind     string
	optional bool
}

// schema describes an expected JSON object body. With emptyIsObject a
// blank body is read as {}.
type schema struct {
	fields        []field
	emptyIsObject bool
}

var (
	createUserSchema = schema{fields: []field{
		{name: "name", kind: jsonString},
		{name: "password", kind: jsonString, optional: true},
	}}
	createDietSchema = schema{fields: []field{
		{name: "name", kind: jsonString},
		{name: "description", kind: jsonString},
		{name: "dateHour", kind: jsonString},
	}}
	updateDietSchema = schema{emptyIsObject: true, fields: []field{
		{name: "name", kind: jsonString, optional: true},
		{name: "description", kind: jsonString, optional: true},
		{name: "date_hour", kind: jsonString, optional: true},
		{name: "is_on_diet", kind: jsonBoolean, optional: true},
	}}
)

// normalize trims body and substitutes {} for a blank body when allowed.
func (s schema) normalize(body []byte) []byte {
	body = bytes.TrimSpace(body)
	if len(body) == 0 && s.emptyIsObject {
		return []byte("{}")
	}
	return body
}

// check reports type issues of body against s. Unknown members are ignored.
func (s schema) check(body []byte) []Issue {
	body = s.normalize(body)
	if len(body) == 0 {
		return []Issue{{Code: codeInvalidType, Expected: jsonObject, Received: "undefined", Path: []string{}, Message: "Required"}}
	}

	if !json.Valid(body) {
		return []Issue{{Code: codeInvalidType, Expected: jsonObject, Path: []string{}, Message: "Invalid JSON body"}}
	}

	if got := kindOf(body); got != jsonObject {
		return []Issue{typeIssue(nil, jsonObject, got)}
	}

	var members map[string]json.RawMessage
	if err := json.Unmarshal(body, &members); err != nil {
		return []Issue{{Code: codeInvalidType, Expected: jsonObject, Path: []string{}, Message: "Invalid JSON body"}}
	}

	var issues []Issue
	for _, f := range s.fields {
		raw, ok := members[f.name]
		if !ok {
			if !f.optional {
				issues = append(issues, Issue{Code: codeInvalidType, Expected: f.kind, Received: "undefined", Path: []string{f.name}, Message: "Required"})
			}
			continue
		}
		if got := kindOf(raw); got != f.kind {
			issues = append(issues, typeIssue([]string{f.name}, f.kind, got))
		}
	}
	return issues
}

func typeIssue(path []string, expected, received string) Issue {
	if path == nil {
		path = []string{}
	}
	return Issue{
		Code:     codeInvalidType,
		Expected: expected,
		Received: received,
		Path:     path,
		Message:  fmt.Sprintf("Expected %s, received %s", expected, received),
	}
}

// kindOf names the JSON type of a valid JSON value.
func kindOf(raw json.RawMessage) string {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return "undefined"
	}
	switch raw[0] {
	case '"':
		return jsonString
	case 't', 'f':
		return jsonBoolean
	case 'n':
		return "null"
	case '{':
		return jsonObject
	case '[':
		return "array"
	default:
		return "number"
	}
}

func uuidIssue(path string) Issue {
	return Issue{Code: codeInvalidString, Validation: "uuid", Path: []string{path}, Message: "Invalid uuid"}
}

// newValidator returns a validator reporting json member names and knowing
// the canonical_uuid tag.
func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		return name
	})
	// Registration only fails for an empty tag or nil func.
	_ = v.RegisterValidation("canonical_uuid", func(fl validator.FieldLevel) bool {
		return isCanonicalUUID(fl.Field().String())
	})
	return v
}

// isCanonicalUUID accepts only the 36 character hyphenated form.
func isCanonicalUUID(s string) bool {
	if len(s) != 36 {
		return false
	}
	_, err := uuid.Parse(s)
	return err == nil
}

// issuesFromValidation converts validator failures into issues.
func issuesFromValidation(err error) []Issue {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []Issue{{Code: codeInvalidType, Path: []string{}, Message: err.Error()}}
	}

	issues := make([]Issue, 0, len(verrs))
	for _, fe := range verrs {
		path := []string{fe.Field()}
		switch fe.Tag() {
		case "canonical_uuid":
			issues = append(issues, uuidIssue(fe.Field()))
		case "min":
			minimum, _ := strconv.Atoi(fe.Param())
			issues = append(issues, Issue{
				Code:    codeTooSmall,
				Minimum: minimum,
				Type:    jsonString,
				Path:    path,
				Message: fmt.Sprintf("String must contain at least %d character(s)", minimum),
			})
		default:
			issues = append(issues, Issue{Code: codeInvalidType, Path: path, Message: fmt.Sprintf("Failed on %s", fe.Tag())})
		}
	}
	return issues
}
