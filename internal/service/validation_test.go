package service_test

import (
	"testing"

	"github.com/maxviazov/fantasy-cricket-service/internal/service"
)

func TestIsKnownCategory(t *testing.T) {
	cases := []struct {
		input string
		want  bool
	}{
		{"Batsman", true},
		{" batting ", true},
		{"BOWLER", true},
		{"All-rounder", true},
		{"rounder", true},
		{"Wicketkeeper", false},
		{"", false},
		{"   ", false},
	}
	for _, tc := range cases {
		t.Run(tc.input, func(t *testing.T) {
			if got := service.IsKnownCategory(tc.input); got != tc.want {
				t.Errorf("IsKnownCategory(%q) = %v; want %v", tc.input, got, tc.want)
			}
		})
	}
}

func TestNewInvalidInputError(t *testing.T) {
	err := service.NewInvalidInputError([]service.FieldError{{Field: "body", Message: "malformed JSON"}})
	if !serviceErrIsInvalid(err) {
		t.Fatalf("expected invalid input, got %v", err)
	}
	fe := service.FieldErrors(err)
	if len(fe) != 1 || fe[0].Field != "body" || fe[0].Message != "malformed JSON" {
		t.Fatalf("unexpected field errors: %+v", fe)
	}
	if service.InvalidInputMessage(err) != "" {
		t.Fatalf("expected no summary message")
	}
}
