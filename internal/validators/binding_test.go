package validators

import (
	"strings"
	"testing"

	"github.com/go-playground/validator/v10"
)

type slotInput struct {
	StartTime string `validate:"required,hhmm"`
	Hours     int    `validate:"gte=1,lte=12"`
}

func TestHHMMTag(t *testing.T) {
	v := validator.New()
	RegisterOn(v)

	if err := v.Struct(slotInput{StartTime: "09:30", Hours: 3}); err != nil {
		t.Fatalf("expected valid input, got %v", err)
	}

	err := v.Struct(slotInput{StartTime: "25:00", Hours: 13})
	if err == nil {
		t.Fatalf("expected validation error")
	}
	msg := Translate(err)
	if !strings.Contains(msg, "startTime must be in HH:MM format") {
		t.Fatalf("unexpected message %q", msg)
	}
	if !strings.Contains(msg, "hours must be less than or equal to 12") {
		t.Fatalf("unexpected message %q", msg)
	}
}

func TestNormalizeEmail(t *testing.T) {
	if got := NormalizeEmail("  A@X.Com "); got != "a@x.com" {
		t.Fatalf("got %q", got)
	}
}
