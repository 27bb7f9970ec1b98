package users

import (
	"unicode/utf8"

	"inkwell-backend/internal/app/validate"
	"inkwell-backend/internal/ports/out/userrepo"
)

const (
	maxNameLen  = 100
	maxEmailLen = 100
	minAge      = 0
	maxAge      = 120
)

// validateCreate checks a create payload: name, email and age must all be
// present and well-typed. Every violated field is reported, not just the
// first. Unknown fields are ignored.
func validateCreate(payload map[string]any) (userrepo.NewUser, validate.Errors) {
	var errs validate.Errors
	var in userrepo.NewUser

	if name, ok := checkName(payload, &errs, true); ok {
		in.Name = name
	}
	if email, ok := checkEmail(payload, &errs, true); ok {
		in.Email = email
	}
	if age, ok := checkAge(payload, &errs, true); ok {
		in.Age = age
	}
	return in, errs
}

// validatePatch checks a partial-update payload: any subset of fields is
// accepted, each validated independently when present.
func validatePatch(payload map[string]any) (userrepo.Patch, validate.Errors) {
	var errs validate.Errors
	var patch userrepo.Patch

	if name, ok := checkName(payload, &errs, false); ok {
		patch.Name = &name
	}
	if email, ok := checkEmail(payload, &errs, false); ok {
		patch.Email = &email
	}
	if age, ok := checkAge(payload, &errs, false); ok {
		patch.Age = &age
	}
	return patch, errs
}

func checkName(payload map[string]any, errs *validate.Errors, required bool) (string, bool) {
	name, present, ok := validate.String(payload, "name")
	switch {
	case !present:
		if required {
			errs.Add("name", "name is required")
		}
	case !ok:
		errs.Add("name", "name must be a string")
	case utf8.RuneCountInString(name) < 1 || utf8.RuneCountInString(name) > maxNameLen:
		errs.Add("name", "name must be between 1 and 100 characters")
	default:
		return name, true
	}
	return "", false
}

func checkEmail(payload map[string]any, errs *validate.Errors, required bool) (string, bool) {
	email, present, ok := validate.String(payload, "email")
	switch {
	case !present:
		if required {
			errs.Add("email", "email is required")
		}
	case !ok:
		errs.Add("email", "email must be a string")
	case utf8.RuneCountInString(email) > maxEmailLen:
		errs.Add("email", "email must be at most 100 characters")
	case !validate.Email(email):
		errs.Add("email", "email must be a valid email address")
	default:
		return email, true
	}
	return "", false
}

func checkAge(payload map[string]any, errs *validate.Errors, required bool) (int, bool) {
	age, present, ok := validate.Int(payload, "age")
	switch {
	case !present:
		if required {
			errs.Add("age", "age is required")
		}
	case !ok:
		errs.Add("age", "age must be an integer")
	case age < minAge || age > maxAge:
		errs.Add("age", "age must be between 0 and 120")
	default:
		return age, true
	}
	return 0, false
}
