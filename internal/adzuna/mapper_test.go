package adzuna_test

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/samsondavid381/NeedAJobdotCom/internal/adzuna"
	"github.com/samsondavid381/NeedAJobdotCom/internal/model"
)

func f(v float64) *float64 { return &v }

// ── BuildSalaryString ──────────────────────────────────────────────────────

func TestBuildSalaryString(t *testing.T) {
	cases := []struct {
		name string
		min  *float64
		max  *float64
		want string // "" means nil expected
	}{
		{"both bounds", f(60000), f(80000), "$60,000 - $80,000"},
		{"min only", f(50000), nil, "$50,000+"},
		{"max only", nil, f(90000), "Up to $90,000"},
		{"neither", nil, nil, ""},
		{"small amount", f(900), nil, "$900+"},
		{"seven figures", f(1250000), nil, "$1,250,000+"},
		{"fraction rounds away", f(64999.6), nil, "$65,000+"},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			got := adzuna.BuildSalaryString(c.min, c.max)
			if c.want == "" {
				if got != nil {
					t.Fatalf("BuildSalaryString = %q, want nil", *got)
				}
				return
			}
			if got == nil {
				t.Fatalf("BuildSalaryString = nil, want %q", c.want)
			}
			if *got != c.want {
				t.Errorf("BuildSalaryString = %q, want %q", *got, c.want)
			}
		})
	}
}

// ── CleanDescription ───────────────────────────────────────────────────────

func TestCleanDescription_StripsHTML(t *testing.T) {
	in := "<p>We are <b>hiring</b> a <a href=\"x\">developer</a></p>"
	got := adzuna.CleanDescription(in)
	if got != "We are hiring a developer" {
		t.Errorf("CleanDescription = %q, want %q", got, "We are hiring a developer")
	}
}

func TestCleanDescription_TruncatesLongText(t *testing.T) {
	in := strings.Repeat("a", 1500)
	got := adzuna.CleanDescription(in)

	if len(got) != 1003 {
		t.Fatalf("CleanDescription length = %d, want 1003 (1000 + ellipsis)", len(got))
	}
	if !strings.HasSuffix(got, "...") {
		t.Error("truncated description should end with ellipsis")
	}
}

func TestCleanDescription_TruncatesMultiByteTextOnRunes(t *testing.T) {
	in := strings.Repeat("é", 1200) // 2 bytes per character
	got := adzuna.CleanDescription(in)

	if !strings.HasSuffix(got, "...") {
		t.Fatal("truncated description should end with ellipsis")
	}
	body := strings.TrimSuffix(got, "...")
	if n := utf8.RuneCountInString(body); n != 1000 {
		t.Errorf("truncated to %d characters, want 1000", n)
	}
	if !utf8.ValidString(got) {
		t.Error("truncated description is not valid UTF-8")
	}
}

func TestCleanDescription_StripsTagsBeforeTruncating(t *testing.T) {
	// 1200 chars of markup whose text content is under the cap: no
	// truncation should happen once tags are gone.
	in := strings.Repeat("<div>ab</div>", 100)
	got := adzuna.CleanDescription(in)
	if got != strings.Repeat("ab", 100) {
		t.Errorf("CleanDescription should strip tags before applying the length cap, got %q", got)
	}
}

func TestCleanDescription_Empty(t *testing.T) {
	if got := adzuna.CleanDescription(""); got != "" {
		t.Errorf("CleanDescription(\"\") = %q, want empty", got)
	}
}

func TestCleanDescription_TrimsWhitespace(t *testing.T) {
	if got := adzuna.CleanDescription("  hello world \n"); got != "hello world" {
		t.Errorf("CleanDescription = %q, want %q", got, "hello world")
	}
}

// ── MapJobType ─────────────────────────────────────────────────────────────

func TestMapJobType(t *testing.T) {
	cases := []struct {
		in   string
		want model.JobType
	}{
		{"permanent", model.TypeFullTime},
		{"full_time", model.TypeFullTime},
		{"Permanent", model.TypeFullTime},
		{"part_time", model.TypePartTime},
		{"contract", model.TypeContract},
		{"temporary", model.TypeTemporary},
		{"", model.TypeFullTime},
		{"zero_hours", model.TypeFullTime},
	}

	for _, c := range cases {
		if got := adzuna.MapJobType(c.in); got != c.want {
			t.Errorf("MapJobType(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
