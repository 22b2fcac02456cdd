package cvanalysis

import (
	"fmt"
	"strings"
)

const summarySkills = 5

// GenerateSummary renders the one-sentence profile summary from already
// extracted fields. The Summary field of p is ignored.
func GenerateSummary(p *Profile) string {
	skills := p.Skills
	if len(skills) > summarySkills {
		skills = skills[:summarySkills]
	}
	skillList := strings.Join(skills, ", ")

	title := defaultTitle
	if len(p.JobTitles) > 0 {
		title = p.JobTitles[0]
	}

	if p.ExperienceYears > 0 {
		return fmt.Sprintf(
			"%s is an experienced %s professional with %d+ years of expertise. Skilled in %s. Previously worked as %s, bringing strong technical and leadership capabilities to drive successful project outcomes.",
			p.FullName, p.Expertise, p.ExperienceYears, skillList, title,
		)
	}

	return fmt.Sprintf(
		"%s is a %s professional with expertise in %s. Demonstrates strong capabilities as %s with a focus on delivering high-quality results and continuous learning.",
		p.FullName, p.Expertise, skillList, title,
	)
}
