package textnorm

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClean(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "collapses runs", in: "  Jan \n\t Dingerkus ", want: "Jan Dingerkus"},
		{name: "non-breaking space", in: "TSC\u00a0Hagen", want: "TSC Hagen"},
		{name: "composes umlauts", in: "Findeiß Plo\u0308ger", want: "Findeiß Plöger"},
		{name: "empty", in: "  ", want: ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Clean(tc.in))
		})
	}
}

func TestNormalize(t *testing.T) {
	assert.Equal(t, "11.05.2024 Hgr.II D Standard", Normalize("11.05.2024 Hgr.II D Standard \"1\""))
	assert.Equal(t, "Hgr.II", Normalize("Hgr.II \"1\" \"2\"  "))
	assert.Equal(t, `Club "1" Mitte`, Normalize(`Club "1" Mitte`))
}

func TestStripCounterIsStable(t *testing.T) {
	once := StripCounter(`Endrunde "12"`)
	assert.Equal(t, "Endrunde", once)
	assert.Equal(t, once, StripCounter(once))
}
