package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("PORT", "")
	t.Setenv("ENV", "")
	t.Setenv("PARTICIPANTS", "")

	cfg := Load()
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "development", cfg.Env)
	assert.True(t, cfg.IsDevelopment())
	assert.NotEmpty(t, cfg.Participants)
}

func TestLoad_ParticipantParsing(t *testing.T) {
	t.Setenv("ENV", "production")
	t.Setenv("PARTICIPANTS", " planner, executor ,reviewer,, ")

	cfg := Load()
	assert.Equal(t, []string{"planner", "executor", "reviewer"}, cfg.Participants)
	assert.False(t, cfg.IsDevelopment())
}

func TestLoad_ProductionRequiresParticipants(t *testing.T) {
	t.Setenv("ENV", "production")
	t.Setenv("PARTICIPANTS", "")

	assert.Panics(t, func() { Load() })
}
