package deck

import "testing"

func TestCardString(t *testing.T) {
	tests := []struct {
		card     Card
		expected string
	}{
		{NewCard(Ace, Spades, 0), "A♠"},
		{NewCard(Ten, Hearts, 0), "10♥"},
		{NewCard(King, Diamonds, 0), "K♦"},
		{NewCard(Two, Clubs, 0), "2♣"},
	}
	for _, tt := range tests {
		if got := tt.card.String(); got != tt.expected {
			t.Errorf("String() = %s, want %s", got, tt.expected)
		}
	}
}

func TestFaceDownString(t *testing.T) {
	card := NewCard(Ace, Spades, 0)
	card.FaceDown = true
	if got := card.String(); got != "🂠" {
		t.Errorf("face-down card rendered as %q", got)
	}
}

func TestBlackjackValue(t *testing.T) {
	tests := []struct {
		rank     Rank
		expected int
	}{
		{Two, 2},
		{Nine, 9},
		{Ten, 10},
		{Jack, 10},
		{Queen, 10},
		{King, 10},
		{Ace, 11},
	}
	for _, tt := range tests {
		if got := tt.rank.BlackjackValue(); got != tt.expected {
			t.Errorf("BlackjackValue(%s) = %d, want %d", tt.rank, got, tt.expected)
		}
	}
}

func TestIsRed(t *testing.T) {
	if !NewCard(Seven, Hearts, 0).IsRed() || !NewCard(Seven, Diamonds, 0).IsRed() {
		t.Error("hearts and diamonds should be red")
	}
	if NewCard(Seven, Spades, 0).IsRed() || NewCard(Seven, Clubs, 0).IsRed() {
		t.Error("spades and clubs should not be red")
	}
}

func TestIsTenValue(t *testing.T) {
	for _, rank := range []Rank{Ten, Jack, Queen, King} {
		if !NewCard(rank, Spades, 0).IsTenValue() {
			t.Errorf("%s should be ten-valued", rank)
		}
	}
	for _, rank := range []Rank{Two, Nine, Ace} {
		if NewCard(rank, Spades, 0).IsTenValue() {
			t.Errorf("%s should not be ten-valued", rank)
		}
	}
}
