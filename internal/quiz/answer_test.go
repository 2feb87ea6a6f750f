package quiz

import "testing"

func TestCheckAnswer(t *testing.T) {
	tests := []struct {
		input   string
		correct string
		want    bool
	}{
		{"Paris", "Paris", true},
		{"paris", "Paris", true},
		{"Paris ", "Paris", true},
		{"  PARIS\t", "Paris", true},
		{"Pari", "Paris", false},
		{"Paris, France", "Paris", false},
		{"", "Paris", false},
		{"   ", "Paris", false},
		{"4", " 4 ", true},
	}

	for _, tc := range tests {
		got := CheckAnswer(tc.input, tc.correct)
		if got != tc.want {
			t.Errorf("CheckAnswer(%q, %q) = %v, want %v", tc.input, tc.correct, got, tc.want)
		}
	}
}

func TestNormalizeAnswer(t *testing.T) {
	if got := NormalizeAnswer("  Hello World "); got != "hello world" {
		t.Errorf("NormalizeAnswer = %q, want %q", got, "hello world")
	}
}
