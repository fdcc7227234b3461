package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeText(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{in: "İSTANBUL", want: "istanbul"},
		{in: "Köşkün Altı", want: "koskun alti"},
		{in: "Çankaya/Ankara", want: "cankaya/ankara"},
		{in: "ĞÜÖŞ", want: "guos"},
		{in: "Café Crème", want: "cafe creme"},
		{in: "Straße", want: "strasse"},
		{in: "", want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, NormalizeText(tt.in))
		})
	}
}

func TestNormalizeText_Idempotent(t *testing.T) {
	samples := []string{"İzmir", "Kızılay Meydanı", "Ocakbaşı", "Zürich", "ÉVÉNEMENT", "plain ascii"}
	for _, s := range samples {
		once := NormalizeText(s)
		assert.Equal(t, once, NormalizeText(once), s)
	}
}

func TestInCity(t *testing.T) {
	tests := []struct {
		name    string
		address string
		city    string
		want    bool
	}{
		{name: "city inside address", address: "Kızılay, Çankaya/Ankara, Türkiye", city: "ANKARA", want: true},
		{name: "dotted capital i", address: "Alsancak, Konak/İzmir", city: "Izmir", want: true},
		{name: "address inside city", address: "Ankara", city: "Ankara Province", want: true},
		{name: "different city", address: "Kadıköy, İstanbul", city: "Ankara", want: false},
		{name: "empty address", address: "", city: "Ankara", want: false},
		{name: "empty city", address: "Ankara", city: "  ", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, InCity(tt.address, tt.city))
		})
	}
}
