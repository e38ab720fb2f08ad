package cards

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCardFromString(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    Card
		wantErr bool
	}{
		// Valid cards with different suit notations
		{"Ace of Spades Unicode", "A♠", Card{Suit: Spades, Value: Ace}, false},
		{"Ace of Spades lowercase", "As", Card{Suit: Spades, Value: Ace}, false},
		{"Ace of Spades uppercase", "AS", Card{Suit: Spades, Value: Ace}, false},
		{"Ten of Hearts Unicode", "10♥", Card{Suit: Hearts, Value: Ten}, false},
		{"Ten of Hearts letter", "Th", Card{Suit: Hearts, Value: Ten}, false},
		{"Ten of Hearts digits", "10H", Card{Suit: Hearts, Value: Ten}, false},
		{"Queen of Diamonds Unicode", "Q♦", Card{Suit: Diamonds, Value: Queen}, false},
		{"Queen of Diamonds lowercase", "Qd", Card{Suit: Diamonds, Value: Queen}, false},
		{"Two of Clubs Unicode", "2♣", Card{Suit: Clubs, Value: Two}, false},
		{"Two of Clubs lowercase", "2c", Card{Suit: Clubs, Value: Two}, false},

		{"King of Hearts", "Kh", Card{Suit: Hearts, Value: King}, false},
		{"Jack of Hearts", "Jh", Card{Suit: Hearts, Value: Jack}, false},
		{"Nine of Hearts", "9h", Card{Suit: Hearts, Value: Nine}, false},
		{"Five of Hearts", "5h", Card{Suit: Hearts, Value: Five}, false},
		{"Input with mixed case", "aS", Card{Suit: Spades, Value: Ace}, false},

		// Invalid inputs
		{"Input with trailing space", "AS ", Card{}, true},
		{"Input with leading space", " AS", Card{}, true},
		{"Too short input", "A", Card{}, true},
		{"Empty input", "", Card{}, true},
		{"Suit only", "♠", Card{}, true},
		{"Invalid suit", "10X", Card{}, true},
		{"Invalid value", "11S", Card{}, true},
		{"Invalid format", "XX", Card{}, true},
		{"Reverse order", "♠A", Card{}, true},
		{"Special characters", "A$", Card{}, true},
		{"Number too large", "100S", Card{}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := CardFromString(tt.input)
			if tt.wantErr {
				require.Error(t, err, "CardFromString(%q) should return an error", tt.input)
			} else {
				require.NoError(t, err, "CardFromString(%q) should not return an error", tt.input)
				require.Equal(t, tt.want, got, "CardFromString(%q) should return the correct card", tt.input)
			}
		})
	}
}

func TestCardStringAndRank(t *testing.T) {
	c := Card{Suit: Spades, Value: Ace}
	assert.Equal(t, "A♠", c.String())
	assert.Equal(t, 14, c.Rank())
	assert.Equal(t, 10, Ten.Rank())
	assert.Equal(t, Ten, ValueOfRank(10))
	assert.Equal(t, Value(""), ValueOfRank(1))
}

func TestCardEqualsIgnoresID(t *testing.T) {
	a := Card{ID: "card-1", Suit: Hearts, Value: King}
	b := Card{ID: "card-9", Suit: Hearts, Value: King}
	assert.True(t, a.Equals(b))
	assert.False(t, a.Equals(Card{Suit: Clubs, Value: King}))
}

func TestMustParse(t *testing.T) {
	stack := MustParse("As Kd 10h")
	require.Len(t, stack, 3)
	assert.Equal(t, "A♠ K♦ T♥", stack.String())
	assert.Equal(t, "x-2", stack[1].ID)

	assert.Panics(t, func() { MustParse("As Zz") })
}
