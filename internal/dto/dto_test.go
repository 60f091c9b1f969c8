package dto

import (
	"testing"

	"github.com/BruksfildServices01/homeservices/internal/domain/role"
	"github.com/BruksfildServices01/homeservices/internal/models"
)

func TestNewPagination(t *testing.T) {
	cases := []struct {
		total     int64
		limit     int
		wantPages int64
	}{
		{0, 20, 0},
		{1, 20, 1},
		{20, 20, 1},
		{21, 20, 2},
		{5, 0, 0},
	}
	for _, tc := range cases {
		if got := NewPagination(tc.total, 1, tc.limit); got.Pages != tc.wantPages {
			t.Fatalf("total=%d limit=%d: expected %d pages, got %d", tc.total, tc.limit, tc.wantPages, got.Pages)
		}
	}
}

func TestNewUserSummary(t *testing.T) {
	u := &models.User{Email: "p@example.com", Name: "P", Role: role.Provider}
	if NewUserSummary(u).Provider != nil {
		t.Fatalf("expected nil provider")
	}

	u.Provider = &models.ServiceProvider{Specialization: "Plumber", Rating: 4.5}
	s := NewUserSummary(u)
	if s.Provider == nil || s.Provider.Rating != 4.5 {
		t.Fatalf("unexpected provider summary %+v", s.Provider)
	}
}
