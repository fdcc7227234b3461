package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"partyplanner/internal/model"
)

func TestASCII(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"  Çankaya, İzmir  ", "Cankaya, Izmir"},
		{"Şişli Güzel Ördek ığ", "Sisli Guzel Ordek ig"},
		{"💰 ₺₺ per guest", " TLTL per guest"},
		{"Crème brûlée…", "Creme brulee..."},
		{"Monday: 12:00–23:00", "Monday: 12:00-23:00"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, ASCII(tt.input))
		})
	}
}

func TestFileName(t *testing.T) {
	assert.Equal(t, "birthday_plan_Ankara_2026-06-14.pdf", FileName("Ankara", "2026-06-14"))
}

func TestRenderPlanPDF(t *testing.T) {
	plan := Plan{
		Title: "Birthday Plan - Ankara - 2026-06-14",
		Meta: []MetaField{
			{Label: "City", Value: "Ankara"},
			{Label: "Date", Value: "2026-06-14"},
			{Label: "Weather", Value: ""},
		},
		Sections: []model.PlanSection{
			{Title: "Budget", Content: "- Venue: 6000 ₺\n- Cake: 1500 ₺"},
			{Title: "Venue", Content: "📅 **Weather:** ☀️ Clear sky\n\n**1. Trilye**\n📌 **Address:** Gaziosmanpaşa, Ankara\n🗺️ **Google Maps:** https://maps.google.com/?cid=1\n🕒 **Working Hours:**\n- Monday: 12:00–23:00\n"},
			{Title: "Menu", Content: "**Mains**\n- **Köfte:** with `pilav`\n\n---\n\n```\nprep list\n```"},
			{Title: "Activities", Content: strings.Repeat("A long afternoon of games. ", 120)},
		},
	}

	out, err := RenderPlanPDF(plan)
	require.NoError(t, err)

	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
	assert.Contains(t, string(out), "%%EOF")
}

func TestRenderPlanPDF_Empty(t *testing.T) {
	out, err := RenderPlanPDF(Plan{Title: "Birthday Plan"})
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF-")))
}
