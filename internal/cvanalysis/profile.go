package cvanalysis

import "fmt"

const (
	// NameNotFound is returned by ExtractFullName when the first line does not look like a name.
	NameNotFound = "Name Not Found"
	// NotSpecified fills the education fallback entry.
	NotSpecified = "Not specified"
	// GeneralExpertise is the category used when no skill maps to a known category.
	GeneralExpertise = "General"

	placeholderInstitution = "University"
	defaultTitle           = "professional"
)

// Profile holds the fields derived from a single CV text.
type Profile struct {
	FullName        string      `json:"fullName" yaml:"fullName"`
	Email           *string     `json:"email" yaml:"email"`
	Phone           *string     `json:"phone" yaml:"phone"`
	Skills          []string    `json:"skills" yaml:"skills"`
	Expertise       string      `json:"expertise" yaml:"expertise"`
	JobTitles       []string    `json:"jobTitles" yaml:"jobTitles"`
	ExperienceYears int         `json:"experienceYears" yaml:"experienceYears"`
	Education       []Education `json:"education" yaml:"education"`
	Summary         string      `json:"summary" yaml:"summary"`
}

type Education struct {
	Degree      string  `json:"degree" yaml:"degree"`
	Institution string  `json:"institution" yaml:"institution"`
	Year        *string `json:"year,omitempty" yaml:"year,omitempty"`
}

// InvalidInputError is returned by Analyze when there is no text to analyze.
type InvalidInputError struct {
	Reason string
}

func (e *InvalidInputError) Error() string {
	return fmt.Sprintf("invalid cv text: %s", e.Reason)
}

func fallbackEducation() []Education {
	return []Education{{Degree: NotSpecified, Institution: NotSpecified}}
}
