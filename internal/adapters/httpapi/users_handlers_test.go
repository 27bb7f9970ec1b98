package httpapi

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"inkwell-backend/internal/adapters/memory"
	"inkwell-backend/internal/app/posts"
	"inkwell-backend/internal/app/users"
	"inkwell-backend/internal/domain"
)

func newTestRouter(t *testing.T) (http.Handler, *memory.ManualClock) {
	t.Helper()

	clk := memory.NewManualClock(time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC))
	store := memory.NewStoreWithClock(clk)
	srv := NewServer(
		users.NewService(store.Users()),
		posts.NewService(store.Posts()),
		log.New(io.Discard),
	)
	return NewRouter(srv), clk
}

func doJSON(t *testing.T, h http.Handler, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()

	var rd io.Reader
	if body != "" {
		rd = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, rd)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func createUser(t *testing.T, h http.Handler, name, email string, age int) domain.User {
	t.Helper()

	body := fmt.Sprintf(`{"name":%q,"email":%q,"age":%d}`, name, email, age)
	rec := doJSON(t, h, http.MethodPost, "/api/users", body)
	if rec.Code != http.StatusCreated {
		t.Fatalf("create user status=%d body=%s", rec.Code, rec.Body.String())
	}
	var u domain.User
	if err := json.Unmarshal(rec.Body.Bytes(), &u); err != nil {
		t.Fatalf("decode user: %v", err)
	}
	return u
}

// fieldErrors decodes a validation error body into field -> message.
func fieldErrors(t *testing.T, rec *httptest.ResponseRecorder) map[string]string {
	t.Helper()

	var body struct {
		Error []struct {
			Field   string `json:"field"`
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode error body: %v (body=%s)", err, rec.Body.String())
	}
	out := make(map[string]string, len(body.Error))
	for _, fe := range body.Error {
		out[fe.Field] = fe.Message
	}
	return out
}

func errorMessage(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()

	var body struct {
		Error string `json:"error"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode error body: %v (body=%s)", err, rec.Body.String())
	}
	return body.Error
}

func TestUsers_CreateAndGet(t *testing.T) {
	t.Parallel()

	h, _ := newTestRouter(t)

	u := createUser(t, h, "Ann", "ann@example.com", 30)
	if u.Name != "Ann" || u.Email != "ann@example.com" || u.Age != 30 {
		t.Fatalf("created user=%+v", u)
	}
	if !u.CreatedAt.Equal(u.UpdatedAt) {
		t.Fatalf("createdAt=%v updatedAt=%v want equal", u.CreatedAt, u.UpdatedAt)
	}

	rec := doJSON(t, h, http.MethodGet, "/api/users/"+u.ID.String(), "")
	if rec.Code != http.StatusOK {
		t.Fatalf("get status=%d body=%s", rec.Code, rec.Body.String())
	}
	var got domain.User
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.ID != u.ID || got.Email != u.Email {
		t.Fatalf("got=%+v want=%+v", got, u)
	}
}

func TestUsers_CreateValidation_AllFieldsReported(t *testing.T) {
	t.Parallel()

	h, _ := newTestRouter(t)

	rec := doJSON(t, h, http.MethodPost, "/api/users", `{"name":"","email":"not-an-email","age":-1}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status=%d body=%s", rec.Code, rec.Body.String())
	}
	fes := fieldErrors(t, rec)
	if len(fes) != 3 {
		t.Fatalf("field errors=%v want 3 entries", fes)
	}
	if fes["age"] != "age must be between 0 and 120" {
		t.Fatalf("age message=%q", fes["age"])
	}
}

func TestUsers_CreateAgeBounds(t *testing.T) {
	t.Parallel()

	h, _ := newTestRouter(t)

	cases := []struct {
		age  int
		want int
	}{
		{-1, http.StatusBadRequest},
		{0, http.StatusCreated},
		{120, http.StatusCreated},
		{121, http.StatusBadRequest},
	}
	for i, tc := range cases {
		body := fmt.Sprintf(`{"name":"U","email":"age%d@example.com","age":%d}`, i, tc.age)
		rec := doJSON(t, h, http.MethodPost, "/api/users", body)
		if rec.Code != tc.want {
			t.Fatalf("age=%d status=%d want=%d body=%s", tc.age, rec.Code, tc.want, rec.Body.String())
		}
	}
}

func TestUsers_CreateFractionalAgeRejected(t *testing.T) {
	t.Parallel()

	h, _ := newTestRouter(t)

	rec := doJSON(t, h, http.MethodPost, "/api/users", `{"name":"U","email":"u@example.com","age":30.5}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status=%d body=%s", rec.Code, rec.Body.String())
	}
	fes := fieldErrors(t, rec)
	if fes["age"] != "age must be an integer" {
		t.Fatalf("age message=%q", fes["age"])
	}
}

func TestUsers_DuplicateEmailRejected(t *testing.T) {
	t.Parallel()

	h, _ := newTestRouter(t)

	orig := createUser(t, h, "Ann", "ann@example.com", 30)

	rec := doJSON(t, h, http.MethodPost, "/api/users", `{"name":"Impostor","email":"ann@example.com","age":40}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status=%d body=%s", rec.Code, rec.Body.String())
	}
	if msg := errorMessage(t, rec); msg != "a user with this email already exists" {
		t.Fatalf("message=%q", msg)
	}

	// The original record is untouched.
	getRec := doJSON(t, h, http.MethodGet, "/api/users/"+orig.ID.String(), "")
	var got domain.User
	if err := json.Unmarshal(getRec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Name != "Ann" || got.Age != 30 {
		t.Fatalf("original mutated: %+v", got)
	}
}

func TestUsers_GetMissingAndMalformedID(t *testing.T) {
	t.Parallel()

	h, _ := newTestRouter(t)

	rec := doJSON(t, h, http.MethodGet, "/api/users/7f1ff9e5-30a1-4f4f-9a0e-3a9b708f8f2b", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("missing id status=%d", rec.Code)
	}
	if msg := errorMessage(t, rec); msg != "User not found" {
		t.Fatalf("message=%q", msg)
	}

	rec = doJSON(t, h, http.MethodGet, "/api/users/not-a-uuid", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("malformed id status=%d", rec.Code)
	}
}

func TestUsers_PartialUpdate(t *testing.T) {
	t.Parallel()

	h, clk := newTestRouter(t)

	u := createUser(t, h, "Ann", "ann@example.com", 30)
	clk.Add(time.Minute)

	rec := doJSON(t, h, http.MethodPut, "/api/users/"+u.ID.String(), `{"age":31}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status=%d body=%s", rec.Code, rec.Body.String())
	}
	var got domain.User
	if err := json.Unmarshal(rec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Name != "Ann" || got.Email != "ann@example.com" || got.Age != 31 {
		t.Fatalf("after patch: %+v", got)
	}
	if !got.UpdatedAt.After(u.UpdatedAt) {
		t.Fatalf("updatedAt=%v not after %v", got.UpdatedAt, u.UpdatedAt)
	}
	if !got.CreatedAt.Equal(u.CreatedAt) {
		t.Fatalf("createdAt changed: %v -> %v", u.CreatedAt, got.CreatedAt)
	}
}

func TestUsers_InvalidUpdateLeavesRecordUnchanged(t *testing.T) {
	t.Parallel()

	h, _ := newTestRouter(t)

	u := createUser(t, h, "Ann", "ann@example.com", 30)

	rec := doJSON(t, h, http.MethodPut, "/api/users/"+u.ID.String(), `{"age":-5}`)
	if rec.Code != http.StatusBadRequest {
		t.Fatalf("status=%d body=%s", rec.Code, rec.Body.String())
	}

	getRec := doJSON(t, h, http.MethodGet, "/api/users/"+u.ID.String(), "")
	var got domain.User
	if err := json.Unmarshal(getRec.Body.Bytes(), &got); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if got.Age != 30 || !got.UpdatedAt.Equal(u.UpdatedAt) {
		t.Fatalf("record mutated by rejected update: %+v", got)
	}
}

func TestUsers_UpdateMissingUser(t *testing.T) {
	t.Parallel()

	h, _ := newTestRouter(t)

	rec := doJSON(t, h, http.MethodPut, "/api/users/7f1ff9e5-30a1-4f4f-9a0e-3a9b708f8f2b", `{"age":31}`)
	if rec.Code != http.StatusNotFound {
		t.Fatalf("status=%d body=%s", rec.Code, rec.Body.String())
	}
	if msg := errorMessage(t, rec); msg != "User not found" {
		t.Fatalf("message=%q", msg)
	}
}

func TestUsers_DeleteIsIdempotent(t *testing.T) {
	t.Parallel()

	h, _ := newTestRouter(t)

	u := createUser(t, h, "Ann", "ann@example.com", 30)

	for i := 0; i < 2; i++ {
		rec := doJSON(t, h, http.MethodDelete, "/api/users/"+u.ID.String(), "")
		if rec.Code != http.StatusNoContent {
			t.Fatalf("delete #%d status=%d", i+1, rec.Code)
		}
		if rec.Body.Len() != 0 {
			t.Fatalf("delete #%d body=%s want empty", i+1, rec.Body.String())
		}
	}

	// A malformed id also deletes nothing, successfully.
	rec := doJSON(t, h, http.MethodDelete, "/api/users/not-a-uuid", "")
	if rec.Code != http.StatusNoContent {
		t.Fatalf("malformed id delete status=%d", rec.Code)
	}
}

func TestUsers_ListSortedByCreation(t *testing.T) {
	t.Parallel()

	h, clk := newTestRouter(t)

	rec := doJSON(t, h, http.MethodGet, "/api/users", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status=%d", rec.Code)
	}
	if body := strings.TrimSpace(rec.Body.String()); body != "[]" {
		t.Fatalf("empty list body=%s want []", body)
	}

	first := createUser(t, h, "Ann", "ann@example.com", 30)
	clk.Add(time.Second)
	second := createUser(t, h, "Bob", "bob@example.com", 25)

	rec = doJSON(t, h, http.MethodGet, "/api/users", "")
	var us []domain.User
	if err := json.Unmarshal(rec.Body.Bytes(), &us); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(us) != 2 || us[0].ID != first.ID || us[1].ID != second.ID {
		t.Fatalf("list=%+v", us)
	}
}

func TestUsers_MalformedBodyRejected(t *testing.T) {
	t.Parallel()

	h, _ := newTestRouter(t)

	for _, body := range []string{`{"name":`, `null`, `[1,2]`, `"text"`, ``} {
		rec := doJSON(t, h, http.MethodPost, "/api/users", body)
		if rec.Code != http.StatusBadRequest {
			t.Fatalf("body=%q status=%d", body, rec.Code)
		}
		if msg := errorMessage(t, rec); msg != "invalid request body" {
			t.Fatalf("body=%q message=%q", body, msg)
		}
	}
}

func TestUsers_UnknownFieldsIgnored(t *testing.T) {
	t.Parallel()

	h, _ := newTestRouter(t)

	rec := doJSON(t, h, http.MethodPost, "/api/users",
		`{"name":"Ann","email":"ann@example.com","age":30,"role":"admin"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status=%d body=%s", rec.Code, rec.Body.String())
	}
}

func TestUsers_TimestampsAreRFC3339(t *testing.T) {
	t.Parallel()

	h, _ := newTestRouter(t)

	rec := doJSON(t, h, http.MethodPost, "/api/users", `{"name":"Ann","email":"ann@example.com","age":30}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status=%d body=%s", rec.Code, rec.Body.String())
	}
	var raw map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &raw); err != nil {
		t.Fatalf("decode: %v", err)
	}
	for _, key := range []string{"createdAt", "updatedAt"} {
		s, ok := raw[key].(string)
		if !ok {
			t.Fatalf("%s=%v want string", key, raw[key])
		}
		if _, err := time.Parse(time.RFC3339Nano, s); err != nil {
			t.Fatalf("%s=%q not RFC 3339: %v", key, s, err)
		}
	}
}
