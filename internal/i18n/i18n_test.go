package i18n

import "testing"

func TestT(t *testing.T) {
	hello := Text{English: "Hello", Urdu: "سلام"}

	tests := []struct {
		name string
		text Text
		mode Mode
		want string
	}{
		{
			name: "english",
			text: hello,
			mode: English,
			want: "Hello",
		},
		{
			name: "urdu",
			text: hello,
			mode: Urdu,
			want: "سلام",
		},
		{
			name: "bilingual concatenates",
			text: hello,
			mode: Bilingual,
			want: "Hello / سلام",
		},
		{
			name: "bilingual without urdu",
			text: Text{English: "Mouse"},
			mode: Bilingual,
			want: "Mouse",
		},
		{
			name: "urdu falls back to english",
			text: Text{English: "Mouse"},
			mode: Urdu,
			want: "Mouse",
		},
		{
			name: "unknown mode shows english",
			text: hello,
			mode: Mode("klingon"),
			want: "Hello",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := T(tt.text, tt.mode); got != tt.want {
				t.Errorf("T() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestParseMode(t *testing.T) {
	tests := []struct {
		input   string
		want    Mode
		wantErr bool
	}{
		{input: "english", want: English},
		{input: "EN", want: English},
		{input: "urdu", want: Urdu},
		{input: " both ", want: Bilingual},
		{input: "", want: Bilingual},
		{input: "french", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseMode(tt.input)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseMode(%q) error = %v, wantErr %v", tt.input, err, tt.wantErr)
			}
			if got != tt.want {
				t.Errorf("ParseMode(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestLookup(t *testing.T) {
	if got := Lookup("quiz.correct", English); got != "Correct!" {
		t.Errorf("Lookup(quiz.correct) = %q", got)
	}
	if got := Lookup("no.such.key", Bilingual); got != "no.such.key" {
		t.Errorf("Lookup of unknown key = %q, want the key back", got)
	}
}
