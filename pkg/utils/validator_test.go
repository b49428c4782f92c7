package utils

import "testing"

type sample struct {
	Name  string  `json:"name" validate:"required,min=2"`
	Email string  `json:"email" validate:"omitempty,email"`
	Score int     `json:"score" validate:"gte=0,lte=100"`
	Sex   string  `json:"sex" validate:"omitempty,oneof=MALE FEMALE"`
	Born  *string `json:"born,omitempty" validate:"omitempty,datetime=2006-01-02"`
}

func TestValidateStructUsesJSONNames(t *testing.T) {
	born := "2024-02-30"
	errs := ValidateStruct(&sample{Email: "nope", Score: 101, Sex: "OTHER", Born: &born})
	if len(errs) != 5 {
		t.Fatalf("expected 5 failures, got %d: %v", len(errs), errs)
	}

	want := map[string]string{
		"name":  "This field is required",
		"email": "Invalid email format",
		"score": "Must be at most 100",
		"sex":   "Must be one of: MALE, FEMALE",
		"born":  "Must be a date in 2006-01-02 format",
	}
	got := errs.Map()
	for field, msg := range want {
		if got[field] != msg {
			t.Errorf("%s: expected %q, got %q", field, msg, got[field])
		}
	}
	if errs.First().Field != "name" {
		t.Fatalf("expected name reported first, got %s", errs.First().Field)
	}
}

func TestValidateStructValid(t *testing.T) {
	if errs := ValidateStruct(&sample{Name: "Rex", Score: 50}); errs != nil {
		t.Fatalf("expected no errors, got %v", errs)
	}
}

func TestParseUUIDPtr(t *testing.T) {
	if id, err := ParseUUIDPtr(nil); id != nil || err != nil {
		t.Fatalf("expected nil for nil input")
	}
	bad := "not-a-uuid"
	if _, err := ParseUUIDPtr(&bad); err == nil {
		t.Fatalf("expected error for invalid id")
	}
	good := "3f2504e0-4f89-11d3-9a0c-0305e82c3301"
	id, err := ParseUUIDPtr(&good)
	if err != nil || id == nil || id.String() != good {
		t.Fatalf("expected parsed id, got %v %v", id, err)
	}
}

func TestPasswordHash(t *testing.T) {
	hash, err := HashPassword("correct horse")
	if err != nil {
		t.Fatalf("hash: %v", err)
	}
	if !CheckPasswordHash("correct horse", hash) {
		t.Fatalf("expected password to match")
	}
	if CheckPasswordHash("battery staple", hash) {
		t.Fatalf("expected wrong password to fail")
	}
}
