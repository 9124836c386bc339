package chat

import "testing"

func TestFormatReply(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{
			name: "plain text untouched",
			in:   "Hello there",
			want: "Hello there",
		},
		{
			name: "heading section with dash list",
			in:   "Intro text\nTips:\n- drink water\n- rest",
			want: "Intro text\n\n\nTips:\n\n• - drink water\n• - rest",
		},
		{
			name: "numbered list",
			in:   "Intro\n1. first\n2. second",
			want: "Intro\n• 1. first\n• 2. second",
		},
		{
			name: "sentence before bullet",
			in:   "Do this.\n• next",
			want: "Do this.\n\n• • next",
		},
		{
			name: "capital without colon is not a heading",
			in:   "One\nTwo words here",
			want: "One\nTwo words here",
		},
	}

	for _, testCase := range tests {
		t.Run(testCase.name, func(t *testing.T) {
			if got := FormatReply(testCase.in); got != testCase.want {
				t.Fatalf("FormatReply(%q) = %q, want %q", testCase.in, got, testCase.want)
			}
		})
	}
}

func TestSplitBeforeHeadings(t *testing.T) {
	sections := splitBeforeHeadings([]rune("A\nFirst part:\nx\nSecond:\ny"))
	if len(sections) != 3 {
		t.Fatalf("expected 3 sections, got %d", len(sections))
	}
	if string(sections[1]) != "\nFirst part:\nx" {
		t.Fatalf("unexpected second section %q", string(sections[1]))
	}
}
