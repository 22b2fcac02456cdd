package cvanalysis

import (
	"regexp"
	"strconv"
	"strings"
	"unicode"
)

const maxRangeExperience = 15

// space matches what text pasted from PDFs and web pages uses as whitespace,
// NBSP and the other Unicode space separators included.
const space = `\s\p{Zs}\x{FEFF}\v\x{2028}\x{2029}`

var (
	emailRe      = regexp.MustCompile(`[\w.-]+@[\w.-]+\.\w+`)
	phoneRe      = regexp.MustCompile(`(?:\+?\d{1,3}[-.` + space + `]?)?\(?\d{3}\)?[-.` + space + `]?\d{3}[-.` + space + `]?\d{4}`)
	yearsRe      = regexp.MustCompile(`(?i)(\d+)\+?[` + space + `]*years?`)
	dateRangeRe  = regexp.MustCompile(`\d{4}[` + space + `]*-[` + space + `]*\d{4}`)
	fourDigitsRe = regexp.MustCompile(`\d{4}`)
	nameRe       = regexp.MustCompile(`^[a-zA-Z` + space + `]{2,50}$`)
)

func isSpace(r rune) bool {
	return unicode.IsSpace(r) || r == '\uFEFF'
}

func trimSpace(s string) string {
	return strings.TrimFunc(s, isSpace)
}

// ExtractEmail returns the first email-like token, lower-cased.
func ExtractEmail(text string) *string {
	match := emailRe.FindString(text)
	if match == "" {
		return nil
	}
	email := strings.ToLower(match)
	return &email
}

// ExtractPhone returns the first North American style phone number.
func ExtractPhone(text string) *string {
	match := phoneRe.FindString(text)
	if match == "" {
		return nil
	}
	phone := trimSpace(match)
	return &phone
}

// ExtractSkills returns the catalog skills mentioned in text.
func ExtractSkills(text string) []string {
	return matchCatalog(text, skillCatalog)
}

// ExtractJobTitles returns the catalog job titles mentioned in text.
func ExtractJobTitles(text string) []string {
	return matchCatalog(text, titleCatalog)
}

func matchCatalog(text string, catalog []string) []string {
	lower := strings.ToLower(text)
	found := make([]string, 0)
	seen := make(map[string]struct{})

	for _, keyword := range catalog {
		if _, ok := seen[keyword]; ok {
			continue
		}
		if strings.Contains(lower, strings.ToLower(keyword)) {
			seen[keyword] = struct{}{}
			found = append(found, keyword)
		}
	}

	return found
}

// InferExpertise picks the category sharing the most keywords with skills.
// The first declared category wins a tie.
func InferExpertise(skills []string) string {
	best := GeneralExpertise
	bestCount := 0

	for _, c := range expertiseCategories {
		count := 0
		for _, skill := range skills {
			if containsAnyFold(skill, c.Keywords) {
				count++
			}
		}

		if count > bestCount {
			bestCount = count
			best = c.Name
		}
	}

	return best
}

func containsAnyFold(s string, keywords []string) bool {
	lower := strings.ToLower(s)
	for _, k := range keywords {
		if strings.Contains(lower, strings.ToLower(k)) {
			return true
		}
	}
	return false
}

// EstimateExperience returns the largest "N years" mention. Without one it
// guesses two years per date range, up to 15.
func EstimateExperience(text string) int {
	matches := yearsRe.FindAllStringSubmatch(text, -1)
	if len(matches) > 0 {
		longest := 0
		for _, m := range matches {
			n, err := strconv.Atoi(m[1])
			if err != nil {
				continue
			}
			if n > longest {
				longest = n
			}
		}
		return longest
	}

	ranges := len(dateRangeRe.FindAllStringIndex(text, -1))
	return min(ranges*2, maxRangeExperience)
}

// ExtractEducation returns one entry per line mentioning a degree keyword.
func ExtractEducation(text string) []Education {
	var education []Education

	for _, line := range strings.Split(text, "\n") {
		lower := strings.ToLower(line)
		for _, degree := range degreeCatalog {
			if !strings.Contains(lower, strings.ToLower(degree)) {
				continue
			}

			entry := Education{Degree: degree, Institution: placeholderInstitution}
			if year := fourDigitsRe.FindString(line); year != "" {
				entry.Year = &year
			}
			education = append(education, entry)
			break
		}
	}

	if len(education) == 0 {
		return fallbackEducation()
	}

	return education
}

// ExtractFullName treats the first non-empty line as the name when it is
// short and made of letters only. Title lines such as "Senior Backend
// Engineer" pass too.
func ExtractFullName(text string) string {
	for _, line := range strings.Split(text, "\n") {
		line = trimSpace(line)
		if line == "" {
			continue
		}

		if nameRe.MatchString(line) && len(strings.Split(line, " ")) <= 4 {
			return line
		}
		return NameNotFound
	}

	return NameNotFound
}
