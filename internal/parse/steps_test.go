package parse

import (
	"testing"
)

func TestExtractSteps(t *testing.T) {
	tests := []struct {
		name  string
		reply string
		want  []struct {
			text     string
			elements []string
		}
	}{
		{
			name: "plain lines",
			reply: `Click "File" menu
Click "Save As"`,
			want: []struct {
				text     string
				elements []string
			}{
				{`Click "File" menu`, []string{"File"}},
				{`Click "Save As"`, []string{"Save As"}},
			},
		},
		{
			name: "numbered and bulleted lines are normalized",
			reply: `1. Click "Save"
- Click "Save"
Click "Save"
  2) ignore me not`,
			want: []struct {
				text     string
				elements []string
			}{
				{`Click "Save"`, []string{"Save"}},
				{`Click "Save"`, []string{"Save"}},
				{`Click "Save"`, []string{"Save"}},
				{`) ignore me not`, []string{}},
			},
		},
		{
			name: "blank lines are dropped",
			reply: `Click "Edit"


Click "Preferences"`,
			want: []struct {
				text     string
				elements []string
			}{
				{`Click "Edit"`, []string{"Edit"}},
				{`Click "Preferences"`, []string{"Preferences"}},
			},
		},
		{
			name:  "multiple quoted elements in order",
			reply: `Type "report.pdf" in the "File name" field`,
			want: []struct {
				text     string
				elements []string
			}{
				{`Type "report.pdf" in the "File name" field`, []string{"report.pdf", "File name"}},
			},
		},
		{
			name:  "odd quote count keeps only paired substrings",
			reply: `Click "Save" then press "Enter`,
			want: []struct {
				text     string
				elements []string
			}{
				{`Click "Save" then press "Enter`, []string{"Save"}},
			},
		},
		{
			name:  "line with no quotes",
			reply: `Press Ctrl+S`,
			want: []struct {
				text     string
				elements []string
			}{
				{`Press Ctrl+S`, []string{}},
			},
		},
		{
			name:  "empty reply",
			reply: "",
			want: []struct {
				text     string
				elements []string
			}{},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			steps := ExtractSteps(tt.reply)

			if len(steps) != len(tt.want) {
				t.Fatalf("got %d steps, want %d: %+v", len(steps), len(tt.want), steps)
			}
			for i, want := range tt.want {
				if steps[i].Text != want.text {
					t.Errorf("steps[%d].Text = %q, want %q", i, steps[i].Text, want.text)
				}
				if len(steps[i].QuotedElements) != len(want.elements) {
					t.Fatalf("steps[%d].QuotedElements = %v, want %v", i, steps[i].QuotedElements, want.elements)
				}
				for j, el := range want.elements {
					if steps[i].QuotedElements[j] != el {
						t.Errorf("steps[%d].QuotedElements[%d] = %q, want %q", i, j, steps[i].QuotedElements[j], el)
					}
				}
				if steps[i].Coordinates != nil {
					t.Errorf("steps[%d].Coordinates = %v, want nil", i, steps[i].Coordinates)
				}
			}
		})
	}
}
