package slots

import "testing"

func TestParseClock(t *testing.T) {
	tests := []struct {
		name   string
		input  string
		want   int
		wantOK bool
	}{
		{name: "midnight", input: "00:00", want: 0, wantOK: true},
		{name: "opening", input: "08:00", want: 480, wantOK: true},
		{name: "with minutes", input: "09:30", want: 570, wantOK: true},
		{name: "last minute", input: "23:59", want: 1439, wantOK: true},
		{name: "with seconds", input: "14:15:00", want: 855, wantOK: true},
		{name: "hour 24", input: "24:00", wantOK: false},
		{name: "minute 60", input: "10:60", wantOK: false},
		{name: "single digit hour", input: "9:00", wantOK: false},
		{name: "empty", input: "", wantOK: false},
		{name: "garbage", input: "ab:cd", wantOK: false},
		{name: "bad seconds separator", input: "14:15-00", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseClock(tt.input)
			if ok != tt.wantOK {
				t.Fatalf("ParseClock(%q) ok = %v, want %v", tt.input, ok, tt.wantOK)
			}
			if ok && got != tt.want {
				t.Errorf("ParseClock(%q) = %d, want %d", tt.input, got, tt.want)
			}
		})
	}
}

func TestFormatClock(t *testing.T) {
	tests := []struct {
		input int
		want  string
	}{
		{input: 0, want: "00:00"},
		{input: 480, want: "08:00"},
		{input: 970, want: "16:10"},
		{input: 1210, want: "20:10"},
		{input: -5, want: "00:00"},
		{input: 1500, want: "23:59"},
	}

	for _, tt := range tests {
		if got := FormatClock(tt.input); got != tt.want {
			t.Errorf("FormatClock(%d) = %q, want %q", tt.input, got, tt.want)
		}
	}
}

func TestValidClock(t *testing.T) {
	if !ValidClock("07:45") {
		t.Error("expected 07:45 to be valid")
	}
	if ValidClock("07:45:00") {
		t.Error("ValidClock accepts only HH:MM")
	}
	if ValidClock("7:45") {
		t.Error("expected 7:45 to be invalid")
	}
}
