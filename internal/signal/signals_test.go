package signal

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{
			name:  "separators become spaces, markers preserved",
			input: "Painting - Interior / Prep & Enamel (437205) (INT) [LS]",
			want:  "PAINTING INTERIOR PREP & ENAMEL (437205) (INT) [LS]",
		},
		{
			name:  "empty input",
			input: "",
			want:  "",
		},
		{
			name:  "whitespace collapsed and trimmed",
			input: "  Touch   Up \t Final ",
			want:  "TOUCH UP FINAL",
		},
		{
			name:  "ampersand preserved",
			input: "prep & enamel",
			want:  "PREP & ENAMEL",
		},
		{
			name:  "underscores and em-dashes",
			input: "roll_walls—final",
			want:  "ROLL WALLS FINAL",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.input))
		})
	}
}

func TestExtractor_Location(t *testing.T) {
	e := NewExtractor(DefaultConfig())

	tests := []struct {
		name         string
		task         string
		wantExterior bool
		wantInterior bool
	}{
		{
			name:         "parenthesized EXT marker",
			task:         "Painting - Spray Overhang (EXT)",
			wantExterior: true,
		},
		{
			name:         "standalone EXT token",
			task:         "EXT paint garage",
			wantExterior: true,
		},
		{
			name:         "EXTERIOR keyword",
			task:         "Exterior painting full house",
			wantExterior: true,
		},
		{
			name:         "parenthesized INT marker",
			task:         "Painting - Walls (INT)",
			wantInterior: true,
		},
		{
			name:         "INTERIOR keyword",
			task:         "Interior painting",
			wantInterior: true,
		},
		{
			name:         "conflicting markers preserved, not resolved",
			task:         "Painting (EXT) and (INT) combined",
			wantExterior: true,
			wantInterior: true,
		},
		{
			name: "no location",
			task: "Touch up after carpet",
		},
		{
			name: "empty task yields all-false",
			task: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := e.Extract(tt.task)
			assert.Equal(t, tt.wantExterior, s.IsExterior, "IsExterior")
			assert.Equal(t, tt.wantInterior, s.IsInterior, "IsInterior")
		})
	}
}

func TestExtractor_Designations(t *testing.T) {
	e := NewExtractor(DefaultConfig())

	s := e.Extract("Painting - Exterior Prime (437220) (EXT) [LS] [OP]")
	assert.True(t, s.IsLS)
	assert.True(t, s.IsOP)
	assert.False(t, s.IsUA)

	s = e.Extract("Painting - Spray Overhang (EXT) [UA]")
	assert.True(t, s.IsUA)

	s = e.Extract("UA touch up front door")
	assert.True(t, s.IsUA, "standalone UA token")
}

func TestExtractor_Keywords(t *testing.T) {
	e := NewExtractor(DefaultConfig())

	tests := []struct {
		name      string
		task      string
		undercoat bool
		prime     bool
		touchup   bool
		rollwalls bool
		baseshoe  bool
	}{
		{
			name:  "first coat is undercoat",
			task:  "Apply first coat to walls",
			undercoat: true,
		},
		{
			name:  "fascia counts as prime",
			task:  "Painting - Exterior Prime/Fascia (EXT)",
			prime: true,
		},
		{
			name:  "prime requires word boundary",
			task:  "PRIMER application", // PRIMER alias matches, PRIME inside PRIMER does not
			prime: true,
		},
		{
			name:    "punch is touchup",
			task:    "Punch list items",
			touchup: true,
		},
		{
			name:    "dashed touch-up",
			task:    "Touch-up hallway",
			touchup: true,
		},
		{
			name:      "roll near walls within window",
			task:      "Roll all of the upstairs walls",
			rollwalls: true,
		},
		{
			name:      "roll ceiling",
			task:      "Rolling the ceiling second coat",
			rollwalls: true,
		},
		{
			name:     "baseboard",
			task:     "Install and paint baseboard",
			baseshoe: true,
		},
		{
			name:     "shoe mould spelling",
			task:     "shoe mould final",
			baseshoe: true,
		},
		{
			name: "plain task fires nothing",
			task: "Paint front door",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := e.Extract(tt.task)
			assert.Equal(t, tt.undercoat, s.KeywordUndercoat, "undercoat")
			assert.Equal(t, tt.prime, s.KeywordPrime, "prime")
			assert.Equal(t, tt.touchup, s.KeywordTouchup, "touchup")
			assert.Equal(t, tt.rollwalls, s.KeywordRollWalls, "rollwalls")
			assert.Equal(t, tt.baseshoe, s.KeywordBaseShoe, "baseshoe")
		})
	}
}

func TestExtractor_MatchedKeywordsAudit(t *testing.T) {
	e := NewExtractor(DefaultConfig())

	s := e.Extract("Painting - Exterior Prime/Fascia (437220) (EXT) [LS] [OP]")
	assert.Contains(t, s.MatchedKeywords, "(EXT)")
	assert.Contains(t, s.MatchedKeywords, "[LS]")
	assert.Contains(t, s.MatchedKeywords, "[OP]")
	assert.Contains(t, s.MatchedKeywords, "prime:PRIME")

	s = e.Extract("")
	assert.Empty(t, s.MatchedKeywords)
}
