package posts

import (
	"github.com/google/uuid"

	"inkwell-backend/internal/app/validate"
	"inkwell-backend/internal/ports/out/postrepo"
)

// validateCreate checks a create payload: title, content and userId must all
// be present, non-empty and well-formed. Unknown fields are ignored.
func validateCreate(payload map[string]any) (postrepo.NewPost, validate.Errors) {
	var errs validate.Errors
	var in postrepo.NewPost

	if title, ok := checkText(payload, &errs, "title", true); ok {
		in.Title = title
	}
	if content, ok := checkText(payload, &errs, "content", true); ok {
		in.Content = content
	}
	if userID, ok := checkUserID(payload, &errs, true); ok {
		in.UserID = userID
	}
	return in, errs
}

// validatePatch checks a partial-update payload: any subset of fields.
func validatePatch(payload map[string]any) (postrepo.Patch, validate.Errors) {
	var errs validate.Errors
	var patch postrepo.Patch

	if title, ok := checkText(payload, &errs, "title", false); ok {
		patch.Title = &title
	}
	if content, ok := checkText(payload, &errs, "content", false); ok {
		patch.Content = &content
	}
	if userID, ok := checkUserID(payload, &errs, false); ok {
		patch.UserID = &userID
	}
	return patch, errs
}

func checkText(payload map[string]any, errs *validate.Errors, field string, required bool) (string, bool) {
	val, present, ok := validate.String(payload, field)
	switch {
	case !present:
		if required {
			errs.Add(field, field+" is required")
		}
	case !ok:
		errs.Add(field, field+" must be a string")
	case val == "":
		errs.Add(field, field+" must not be empty")
	default:
		return val, true
	}
	return "", false
}

// checkUserID validates shape only; whether the user actually exists is a
// store-layer concern answered at insert time by the foreign key.
func checkUserID(payload map[string]any, errs *validate.Errors, required bool) (uuid.UUID, bool) {
	id, present, ok := validate.UUID(payload, "userId")
	switch {
	case !present:
		if required {
			errs.Add("userId", "userId is required")
		}
	case !ok:
		errs.Add("userId", "userId must be a valid user id")
	default:
		return id, true
	}
	return uuid.UUID{}, false
}
