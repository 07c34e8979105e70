package manifest

import (
	"errors"
	"strings"
	"testing"
)

func TestParseRequirements(t *testing.T) {
	reqs, err := ParseRequirements(strings.NewReader(`# web
Django==5.0.6

gunicorn>=21.0
yt-dlp  # media download
openai-whisper
uvicorn[standard]~=0.30
`))
	if err != nil {
		t.Fatalf("ParseRequirements: %v", err)
	}

	want := []Requirement{
		{Name: "Django", Constraint: "==5.0.6"},
		{Name: "gunicorn", Constraint: ">=21.0"},
		{Name: "yt-dlp"},
		{Name: "openai-whisper"},
		{Name: "uvicorn[standard]", Constraint: "~=0.30"},
	}
	if len(reqs) != len(want) {
		t.Fatalf("got %d requirements, want %d: %v", len(reqs), len(want), reqs)
	}
	for i, w := range want {
		if reqs[i] != w {
			t.Errorf("reqs[%d] = %+v, want %+v", i, reqs[i], w)
		}
	}
}

func TestParseRequirementsCompoundConstraint(t *testing.T) {
	reqs, err := ParseRequirements(strings.NewReader("Django>=4.2,<5.1\n"))
	if err != nil {
		t.Fatalf("ParseRequirements: %v", err)
	}
	if reqs[0].Constraint != ">=4.2,<5.1" {
		t.Errorf("Constraint = %q", reqs[0].Constraint)
	}
}

func TestParseRequirementsEmpty(t *testing.T) {
	_, err := ParseRequirements(strings.NewReader("# nothing but comments\n\n"))
	if !errors.Is(err, ErrRequirements) {
		t.Fatalf("err = %v, want ErrRequirements", err)
	}
}

func TestParseRequirementsMalformed(t *testing.T) {
	tests := []struct {
		name  string
		input string
	}{
		{"garbage line", "Django==5.0.6\n!!!not a package\n"},
		{"bare operator", "gunicorn==\n"},
		{"leading operator", "==1.0\n"},
		{"empty clause", "Django>=4.2,\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseRequirements(strings.NewReader(tt.input))
			if !errors.Is(err, ErrRequirements) {
				t.Fatalf("err = %v, want ErrRequirements", err)
			}
		})
	}
}

func TestParseRequirementsLineNumber(t *testing.T) {
	_, err := ParseRequirements(strings.NewReader("Django\n\n<<<\n"))
	if err == nil || !strings.Contains(err.Error(), "line 3") {
		t.Fatalf("err = %v, want line 3 in message", err)
	}
}
