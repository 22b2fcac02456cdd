package cvanalysis

import (
	"reflect"
	"strings"
	"testing"
)

func TestExtractEmail(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		input  string
		expect string
	}{
		{name: "lower-cases match", input: "Contact: John.Doe@Example.COM for details", expect: "john.doe@example.com"},
		{name: "first match wins", input: "a@b.io, c@d.io", expect: "a@b.io"},
		{name: "dashes and dots", input: "mail me at first-last.name@sub.domain.org", expect: "first-last.name@sub.domain.org"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := ExtractEmail(tt.input)
			if got == nil {
				t.Fatalf("expected %q, got nil", tt.expect)
			}
			if *got != tt.expect {
				t.Fatalf("expected %q, got %q", tt.expect, *got)
			}
		})
	}

	if got := ExtractEmail("no address here"); got != nil {
		t.Fatalf("expected nil, got %q", *got)
	}
}

func TestExtractPhone(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		input  string
		expect string
	}{
		{name: "country code and parens", input: "Call +1 (555) 123-4567 today", expect: "+1 (555) 123-4567"},
		{name: "dotted", input: "Phone: 555.123.4567", expect: "555.123.4567"},
		{name: "plain digits", input: "tel 5551234567", expect: "5551234567"},
		{name: "no-break spaces", input: "tel 555\u00a0123\u00a04567", expect: "555\u00a0123\u00a04567"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := ExtractPhone(tt.input)
			if got == nil {
				t.Fatalf("expected %q, got nil", tt.expect)
			}
			if *got != tt.expect {
				t.Fatalf("expected %q, got %q", tt.expect, *got)
			}
		})
	}

	if got := ExtractPhone("call me maybe"); got != nil {
		t.Fatalf("expected nil, got %q", *got)
	}
}

func TestExtractSkills(t *testing.T) {
	t.Parallel()

	got := ExtractSkills("Built REACT apps with javascript; react and JavaScript too")
	expect := []string{"JavaScript", "React", "Java"}
	if !reflect.DeepEqual(got, expect) {
		t.Fatalf("expected %v, got %v", expect, got)
	}

	if got := ExtractSkills("lorem ipsum dolor"); len(got) != 0 {
		t.Fatalf("expected no skills, got %v", got)
	}
}

func TestExtractSkillsMatchesSubstrings(t *testing.T) {
	t.Parallel()

	got := ExtractSkills("Good at cooking")
	expect := []string{"Go"}
	if !reflect.DeepEqual(got, expect) {
		t.Fatalf("expected %v, got %v", expect, got)
	}
}

func TestInferExpertise(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		skills []string
		expect string
	}{
		{name: "no skills", skills: nil, expect: GeneralExpertise},
		{name: "no category keywords", skills: []string{"Excel", "PowerPoint"}, expect: GeneralExpertise},
		{name: "clear winner", skills: []string{"Docker", "Kubernetes", "Python"}, expect: "DevOps"},
		{name: "tie resolves to first declared", skills: []string{"Figma", "Docker"}, expect: "DevOps"},
		{name: "shared keyword tie", skills: []string{"Python"}, expect: "Software Engineering"},
		{name: "finance", skills: []string{"Accounting", "Budgeting", "Excel"}, expect: "Finance"},
		{name: "case insensitive", skills: []string{"seo", "copywriting"}, expect: "Marketing"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := InferExpertise(tt.skills); got != tt.expect {
				t.Fatalf("expected %q, got %q", tt.expect, got)
			}
		})
	}
}

func TestExtractJobTitles(t *testing.T) {
	t.Parallel()

	got := ExtractJobTitles("Worked as Tech Lead, then CTO. Tech lead again.")
	expect := []string{"Tech Lead", "CTO"}
	if !reflect.DeepEqual(got, expect) {
		t.Fatalf("expected %v, got %v", expect, got)
	}
}

func TestEstimateExperience(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		input  string
		expect int
	}{
		{name: "largest explicit mention", input: "3 years at Acme, 10+ years overall", expect: 10},
		{name: "singular and upper case", input: "1 YEAR in retail", expect: 1},
		{name: "explicit mention is not capped", input: "40 years of craft", expect: 40},
		{name: "date ranges", input: "2010 - 2012, 2013-2015, 2016-2018", expect: 6},
		{name: "date ranges capped", input: strings.Repeat("2001-2002 ", 12), expect: 15},
		{name: "nothing found", input: "no dates at all", expect: 0},
		{name: "no-break space before years", input: "5\u00a0years of Go", expect: 5},
		{name: "no-break spaces in date range", input: "2010\u00a0-\u2009" + "2012", expect: 2},
		{name: "overflowing mention is skipped", input: "99999999999999999999 years, then 3 years", expect: 3},
		{name: "only overflowing mentions", input: "99999999999999999999 years; 2001-2002", expect: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := EstimateExperience(tt.input); got != tt.expect {
				t.Fatalf("expected %d, got %d", tt.expect, got)
			}
		})
	}
}

func TestExtractEducation(t *testing.T) {
	t.Parallel()

	got := ExtractEducation("PhD in Physics, 2020\nMaster of Science 2015\nMBA")
	if len(got) != 3 {
		t.Fatalf("expected 3 entries, got %d: %+v", len(got), got)
	}

	checks := []struct {
		degree string
		year   string
	}{
		{degree: "PhD", year: "2020"},
		{degree: "Master", year: "2015"},
		{degree: "MBA"},
	}
	for i, check := range checks {
		entry := got[i]
		if entry.Degree != check.degree {
			t.Fatalf("entry %d: expected degree %q, got %q", i, check.degree, entry.Degree)
		}
		if entry.Institution != "University" {
			t.Fatalf("entry %d: expected placeholder institution, got %q", i, entry.Institution)
		}
		if check.year == "" {
			if entry.Year != nil {
				t.Fatalf("entry %d: expected no year, got %q", i, *entry.Year)
			}
			continue
		}
		if entry.Year == nil || *entry.Year != check.year {
			t.Fatalf("entry %d: expected year %q, got %v", i, check.year, entry.Year)
		}
	}
}

func TestExtractEducationOneEntryPerLine(t *testing.T) {
	t.Parallel()

	got := ExtractEducation("Master and Bachelor degrees")
	if len(got) != 1 || got[0].Degree != "Bachelor" {
		t.Fatalf("expected a single Bachelor entry, got %+v", got)
	}
}

func TestExtractEducationFallback(t *testing.T) {
	t.Parallel()

	got := ExtractEducation("self taught")
	expect := []Education{{Degree: NotSpecified, Institution: NotSpecified}}
	if !reflect.DeepEqual(got, expect) {
		t.Fatalf("expected fallback %+v, got %+v", expect, got)
	}
}

func TestExtractFullName(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		input  string
		expect string
	}{
		{name: "first line", input: "Jane Doe\njane@example.com", expect: "Jane Doe"},
		{name: "skips blank lines", input: "\n\n   Jane Doe  \nEngineer", expect: "Jane Doe"},
		{name: "title line is accepted", input: "Senior Backend Engineer\nJane Doe", expect: "Senior Backend Engineer"},
		{name: "too many words", input: "John Ronald Reuel Tolkien Junior", expect: NameNotFound},
		{name: "punctuation", input: "Dr. Smith", expect: NameNotFound},
		{name: "too short", input: "A", expect: NameNotFound},
		{name: "only first line is considered", input: "CV 2024\nJane Doe", expect: NameNotFound},
		{name: "empty", input: "   ", expect: NameNotFound},
		{name: "no-break space between words", input: "Jane\u00a0Doe\nfoo", expect: "Jane\u00a0Doe"},
		{name: "byte order mark is trimmed", input: "\ufeffJane Doe\u00a0\nfoo", expect: "Jane Doe"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := ExtractFullName(tt.input); got != tt.expect {
				t.Fatalf("expected %q, got %q", tt.expect, got)
			}
		})
	}
}
