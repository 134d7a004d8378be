package browser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTarget(t *testing.T) {
	tests := []struct {
		input   string
		want    Target
		wantErr bool
	}{
		{"", Chrome, false},
		{"chrome", Chrome, false},
		{"msedge", Edge, false},
		{"firefox", "", true},
		{"Chrome", "", true},
		{"edge", "", true},
	}

	for _, tt := range tests {
		t.Run("input_"+tt.input, func(t *testing.T) {
			got, err := ParseTarget(tt.input)
			if tt.wantErr {
				require.ErrorIs(t, err, ErrInvalidTarget)
				assert.Contains(t, err.Error(), "['chrome','msedge']")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestTarget_DriverName(t *testing.T) {
	assert.Equal(t, "chromedriver", Chrome.DriverName())
	assert.Equal(t, "msedgedriver", Edge.DriverName())
}

func TestExtractVersion(t *testing.T) {
	tests := []struct {
		name  string
		text  string
		want  Version
		found bool
	}{
		{"chrome_output", "Google Chrome 114.0.5735.90 \n", "114.0.5735.90", true},
		{"edge_output", "Microsoft Edge 98.0.1108.56 unknown", "98.0.1108.56", true},
		{"bare", "1.2.3.4", "1.2.3.4", true},
		{"embedded_in_noise", "abc[120.0.6099.109]xyz", "120.0.6099.109", true},
		{"first_of_many", "a 1.2.3.4 b 5.6.7.8", "1.2.3.4", true},
		{"three_components", "Chromium 114.0.5735", "", false},
		{"zero_major", "0.1.2.3", "", false},
		{"leading_zero_major", "build 01.2.3.4", "", false},
		{"prefixed_letter", "v114.0.5735.90", "114.0.5735.90", true},
		{"no_version", "command not found", "", false},
		{"empty", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, found := ExtractVersion(tt.text)
			assert.Equal(t, tt.found, found)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtractVersion_EmbeddedExactlyOnce(t *testing.T) {
	versions := []Version{"114.0.5735.90", "98.0.1108.56", "1.0.0.0", "120.10.200.3000"}
	wrappers := []struct{ prefix, suffix string }{
		{"", ""},
		{"Google Chrome ", " \n"},
		{"version: ", " (official build)"},
		{"==>", "<=="},
	}

	for _, v := range versions {
		for _, w := range wrappers {
			text := w.prefix + v.String() + w.suffix
			got := ExtractVersions(text)
			require.Len(t, got, 1, "text %q", text)
			assert.Equal(t, v, got[0])
		}
	}
}

func TestVersion_Helpers(t *testing.T) {
	v := Version("114.0.5735.90")
	assert.True(t, v.Valid())
	assert.Equal(t, "114", v.Major())
	assert.False(t, v.IsSentinel())

	assert.True(t, SentinelVersion.IsSentinel())
	assert.True(t, SentinelVersion.Valid())

	for _, bad := range []Version{"", "114", "114.0.5735", "114.0.5735.90.1", "a.b.c.d", " 1.2.3.4"} {
		assert.False(t, bad.Valid(), "version %q", bad)
		assert.Empty(t, bad.Major())
	}
}
