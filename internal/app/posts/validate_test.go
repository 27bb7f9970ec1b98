package posts

import (
	"testing"

	"github.com/google/uuid"
)

func TestValidateCreate(t *testing.T) {
	t.Parallel()

	userID := uuid.New()

	cases := []struct {
		name     string
		payload  map[string]any
		wantErrs map[string]string
	}{
		{
			name:    "valid",
			payload: map[string]any{"title": "Hello", "content": "Body", "userId": userID.String()},
		},
		{
			name:    "all fields missing",
			payload: map[string]any{},
			wantErrs: map[string]string{
				"title":   "title is required",
				"content": "content is required",
				"userId":  "userId is required",
			},
		},
		{
			name:    "empty strings",
			payload: map[string]any{"title": "", "content": "", "userId": userID.String()},
			wantErrs: map[string]string{
				"title":   "title must not be empty",
				"content": "content must not be empty",
			},
		},
		{
			name:     "wrong types",
			payload:  map[string]any{"title": 1.0, "content": "Body", "userId": userID.String()},
			wantErrs: map[string]string{"title": "title must be a string"},
		},
		{
			name:     "malformed userId",
			payload:  map[string]any{"title": "Hello", "content": "Body", "userId": "nope"},
			wantErrs: map[string]string{"userId": "userId must be a valid user id"},
		},
		{
			name:     "non-string userId",
			payload:  map[string]any{"title": "Hello", "content": "Body", "userId": 7.0},
			wantErrs: map[string]string{"userId": "userId must be a valid user id"},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			in, errs := validateCreate(tc.payload)
			got := make(map[string]string, len(errs))
			for _, fe := range errs {
				got[fe.Field] = fe.Message
			}
			if len(got) != len(tc.wantErrs) {
				t.Fatalf("errs=%v want=%v", got, tc.wantErrs)
			}
			for field, msg := range tc.wantErrs {
				if got[field] != msg {
					t.Fatalf("field %s: got=%q want=%q", field, got[field], msg)
				}
			}
			if len(tc.wantErrs) == 0 && in.UserID != userID {
				t.Fatalf("userID=%s want=%s", in.UserID, userID)
			}
		})
	}
}

func TestValidatePatch(t *testing.T) {
	t.Parallel()

	t.Run("subset of fields", func(t *testing.T) {
		t.Parallel()

		patch, errs := validatePatch(map[string]any{"title": "New title"})
		if len(errs) != 0 {
			t.Fatalf("errs=%v", errs)
		}
		if patch.Title == nil || *patch.Title != "New title" {
			t.Fatalf("title=%v", patch.Title)
		}
		if patch.Content != nil || patch.UserID != nil {
			t.Fatalf("patch=%+v want only title set", patch)
		}
	})

	t.Run("present fields still validated", func(t *testing.T) {
		t.Parallel()

		_, errs := validatePatch(map[string]any{"content": "", "userId": "nope"})
		if len(errs) != 2 {
			t.Fatalf("errs=%v want 2", errs)
		}
	})
}
