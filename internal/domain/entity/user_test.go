package entity_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/factory-api/internal/domain/entity"
)

func TestRecomputeActive(t *testing.T) {
	now := time.Date(2024, 5, 20, 12, 0, 0, 0, time.UTC)
	window := 30 * 24 * time.Hour

	cases := []struct {
		name      string
		lastLogin string
		stored    bool
		want      bool
	}{
		{"hace 10 días", entity.FormatLastLogin(now.AddDate(0, 0, -10)), false, true},
		{"hace 40 días", entity.FormatLastLogin(now.AddDate(0, 0, -40)), true, false},
		{"justo en el límite", entity.FormatLastLogin(now.Add(-window)), false, true},
		{"no parseable conserva true", "2024-05-01T10:00:00Z", true, true},
		{"no parseable conserva false", "ayer", false, false},
		{"vacío conserva", "", true, true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			u := &entity.User{LastLogin: tc.lastLogin, IsActive: tc.stored}
			u.RecomputeActive(now, window)
			assert.Equal(t, tc.want, u.IsActive)
		})
	}
}

func TestFormatLastLogin(t *testing.T) {
	ts := time.Date(2023, 1, 2, 3, 4, 5, 0, time.UTC)
	assert.Equal(t, "01/02/23 03:04:05", entity.FormatLastLogin(ts))
}

func TestIsValidRole(t *testing.T) {
	assert.True(t, entity.IsValidRole("manager"))
	assert.True(t, entity.IsValidRole("producer"))
	assert.True(t, entity.IsValidRole("assembler"))
	assert.False(t, entity.IsValidRole("Manager"))
	assert.False(t, entity.IsValidRole(""))
}
