package cleaner

import (
	"strings"
	"testing"
)

func TestCleanPageContent_Scenarios(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want string
	}{
		{
			name: "Empty_Input",
			raw:  "",
			want: "",
		},
		{
			name: "Hyphenated_Line_Break_Rejoined",
			raw:  "infor-\nmation retrieval",
			want: "information retrieval",
		},
		{
			name: "Soft_Line_Break_Becomes_Space",
			raw:  "chunking is\na technique",
			want: "chunking is a technique",
		},
		{
			name: "Sentence_End_Keeps_Line_Break",
			raw:  "First sentence.\nSecond sentence.",
			want: "First sentence.\nSecond sentence.",
		},
		{
			name: "Control_Characters_Stripped",
			raw:  "clean\x00 me\x07 up",
			want: "clean me up",
		},
		{
			name: "Repeated_Spaces_Collapsed",
			raw:  "too    many     spaces",
			want: "too many spaces",
		},
		{
			name: "Blank_Line_Runs_Collapsed",
			raw:  "para one\n\n\n\n\npara two",
			want: "para one\n\npara two",
		},
		{
			name: "Surrounding_Whitespace_Trimmed",
			raw:  "  \n  body text  \n  ",
			want: "body text",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CleanPageContent(tt.raw)
			if got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCleanPageContent_Deterministic(t *testing.T) {
	raw := "some-\ntext with  spacing\nissues\n\n\n\nand more"
	first := CleanPageContent(raw)
	second := CleanPageContent(first)
	if first != second {
		t.Errorf("cleaning is not stable: %q then %q", first, second)
	}
}

func TestJoinElements(t *testing.T) {
	got := JoinElements([]string{"first", "", "  ", "second", "[Image Description: a chart]"})
	want := "first\nsecond\n[Image Description: a chart]"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}

	if JoinElements(nil) != "" {
		t.Error("nil parts should join to empty string")
	}
}

func TestJoinElements_PreservesOrder(t *testing.T) {
	parts := []string{"alpha", "beta", "gamma"}
	joined := JoinElements(parts)
	if strings.Index(joined, "alpha") > strings.Index(joined, "beta") ||
		strings.Index(joined, "beta") > strings.Index(joined, "gamma") {
		t.Errorf("element order not preserved: %q", joined)
	}
}
