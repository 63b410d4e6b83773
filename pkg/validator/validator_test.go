package validator

import (
	"context"
	"strings"
	"testing"
)

type nameForm struct {
	First string `validate:"required,max=50,person_name"`
}

type emailForm struct {
	Email string `validate:"omitempty,simple_email"`
}

type groupForm struct {
	Name string `validate:"required,max=100,group_name"`
}

type choiceForm struct {
	Dietary string `validate:"omitempty,oneof=Vegan Vegetarian Other None"`
}

func TestPersonName(t *testing.T) {
	ctx := context.Background()

	for _, ok := range []string{"Sam", "Mary-Jane", "O'Brien", "Anna Lee"} {
		if err := Validate(ctx, nameForm{First: ok}); err != nil {
			t.Errorf("%q should be accepted: %v", ok, err)
		}
	}
	for _, bad := range []string{"", "S4m", "sam!", strings.Repeat("a", 51)} {
		if err := Validate(ctx, nameForm{First: bad}); err == nil {
			t.Errorf("%q should be rejected", bad)
		}
	}

	err := Validate(ctx, nameForm{First: "S4m"})
	if err == nil || !strings.Contains(err.Error(), ErrPersonName) {
		t.Errorf("error = %v, want person name message", err)
	}
}

func TestSimpleEmail(t *testing.T) {
	ctx := context.Background()

	for _, ok := range []string{"", "sam@example.com", "a.b@c.co"} {
		if err := Validate(ctx, emailForm{Email: ok}); err != nil {
			t.Errorf("%q should be accepted: %v", ok, err)
		}
	}
	for _, bad := range []string{"nope", "a@b", "a..b@c.co", ".a@c.co", "a.@c.co", "two words@c.co"} {
		if err := Validate(ctx, emailForm{Email: bad}); err == nil {
			t.Errorf("%q should be rejected", bad)
		}
	}
}

func TestGroupName(t *testing.T) {
	ctx := context.Background()

	for _, ok := range []string{"Smith family", "Table 4 & co.", "O'Neills"} {
		if err := Validate(ctx, groupForm{Name: ok}); err != nil {
			t.Errorf("%q should be accepted: %v", ok, err)
		}
	}
	if err := Validate(ctx, groupForm{Name: "nope!"}); err == nil {
		t.Error("exclamation mark should be rejected")
	}
}

func TestDietaryChoice(t *testing.T) {
	ctx := context.Background()

	if err := Validate(ctx, choiceForm{Dietary: "Vegan"}); err != nil {
		t.Errorf("Vegan should be accepted: %v", err)
	}
	if err := Validate(ctx, choiceForm{Dietary: ""}); err != nil {
		t.Errorf("empty dietary should be accepted: %v", err)
	}
	err := Validate(ctx, choiceForm{Dietary: "Pescatarian"})
	if err == nil || !strings.Contains(err.Error(), ErrInvalidChoice) {
		t.Errorf("error = %v, want choice message", err)
	}
}
