package teams

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	assert.Equal(t, "st johns", Normalize("St. John's"))
	assert.Equal(t, "texas am", Normalize("Texas A&M"))
	assert.Equal(t, "miami fl", Normalize("  Miami   (FL) "))
	assert.Equal(t, "", Normalize("!!!"))
}

func TestStripMascot(t *testing.T) {
	assert.Equal(t, "texas tech", StripMascot("texas tech red raiders"))
	assert.Equal(t, "kansas", StripMascot("kansas jayhawks"))
	assert.Equal(t, "north carolina", StripMascot("north carolina tar heels"))
	// No known mascot: unchanged
	assert.Equal(t, "duquesne", StripMascot("duquesne"))
	// Only strips at the end
	assert.Equal(t, "wildcats of kentucky", StripMascot("wildcats of kentucky"))
}

func TestMatch(t *testing.T) {
	tests := []struct {
		a, b string
		want bool
	}{
		// Exact after normalization
		{"Kansas", "kansas", true},
		{"St. John's", "St Johns", true},

		// Mascot stripped
		{"Kansas Jayhawks", "Kansas", true},
		{"Gonzaga Bulldogs", "Gonzaga", true},
		{"North Carolina Tar Heels", "North Carolina", true},

		// Aliases
		{"UConn", "Connecticut Huskies", true},
		{"Ole Miss", "Mississippi Rebels", true},
		{"NC State", "North Carolina State Wolfpack", true},

		// Two-token prefix
		{"Texas Tech", "Texas Tech Red Raiders", true},
		{"Michigan State", "Michigan State Spartans", true},

		// Spaced-prefix containment
		{"Duke", "Duke Blue Devils", true},

		// Must not match
		{"Duke", "Duquesne", false},
		{"Miami (FL)", "Miami (OH)", false},
		{"Kansas State", "Kent State", false},
		{"", "Kansas", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, Match(tt.a, tt.b), "Match(%q, %q)", tt.a, tt.b)
		// Symmetry holds for every fixture pair
		assert.Equal(t, Match(tt.a, tt.b), Match(tt.b, tt.a), "symmetry for (%q, %q)", tt.a, tt.b)
	}
}
