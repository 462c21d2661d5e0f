package deck

import "testing"

func TestParseCards(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected []Card
		wantErr  bool
	}{
		{
			name:  "royal flush",
			input: "AsKsQsJsTs",
			expected: []Card{
				{Rank: Ace, Suit: Spades},
				{Rank: King, Suit: Spades},
				{Rank: Queen, Suit: Spades},
				{Rank: Jack, Suit: Spades},
				{Rank: Ten, Suit: Spades},
			},
		},
		{
			name:  "mixed suits",
			input: "AhKdQcJs9s",
			expected: []Card{
				{Rank: Ace, Suit: Hearts},
				{Rank: King, Suit: Diamonds},
				{Rank: Queen, Suit: Clubs},
				{Rank: Jack, Suit: Spades},
				{Rank: Nine, Suit: Spades},
			},
		},
		{
			name:  "case insensitive",
			input: "asKHqDjc",
			expected: []Card{
				{Rank: Ace, Suit: Spades},
				{Rank: King, Suit: Hearts},
				{Rank: Queen, Suit: Diamonds},
				{Rank: Jack, Suit: Clubs},
			},
		},
		{name: "invalid rank", input: "XsKs", wantErr: true},
		{name: "invalid suit", input: "Ax", wantErr: true},
		{name: "odd length", input: "AsK", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cards, err := ParseCards(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatalf("Expected error for %q", tt.input)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseCards(%q) failed: %v", tt.input, err)
			}
			if len(cards) != len(tt.expected) {
				t.Fatalf("Expected %d cards, got %d", len(tt.expected), len(cards))
			}
			for i, want := range tt.expected {
				if cards[i] != want {
					t.Errorf("Card %d: expected %s, got %s", i, want, cards[i])
				}
			}
		})
	}
}

func TestCardString(t *testing.T) {
	t.Parallel()

	tests := []struct {
		card Card
		want string
	}{
		{NewCard(Ace, Spades), "A♠"},
		{NewCard(Ten, Hearts), "T♥"},
		{NewCard(Two, Clubs), "2♣"},
		{NewCard(Queen, Diamonds), "Q♦"},
	}

	for _, tt := range tests {
		if got := tt.card.String(); got != tt.want {
			t.Errorf("String() = %q, want %q", got, tt.want)
		}
	}
}

func TestCardCompact(t *testing.T) {
	t.Parallel()

	for _, input := range []string{"As", "Td", "2c", "Qh"} {
		cards := MustParseCards(input)
		if got := cards[0].Compact(); got != input {
			t.Errorf("Compact() = %q, want %q", got, input)
		}
	}
}

func TestPercentile(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		cards string
		want  float64
	}{
		{"pocket aces", "AsAd", 1.000},
		{"suited connectors", "AsKs", 0.982},
		{"offsuit broadway", "AsKd", 0.940},
		{"worst hand", "7s2d", 0.000},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Percentile(MustParseCards(tt.cards))
			if got != tt.want {
				t.Errorf("Percentile(%s) = %v, want %v", tt.cards, got, tt.want)
			}
		})
	}
}
