package store

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/spigell/cv-analyzer/internal/cvanalysis"
)

// Record is a stored cv analysis.
type Record struct {
	ID              int64                  `json:"id" yaml:"id"`
	ResumeID        *int64                 `json:"resumeId" yaml:"resumeId"`
	FullName        string                 `json:"fullName" yaml:"fullName"`
	Email           *string                `json:"email" yaml:"email"`
	Phone           *string                `json:"phone" yaml:"phone"`
	Skills          []string               `json:"skills" yaml:"skills"`
	Expertise       string                 `json:"expertise" yaml:"expertise"`
	JobTitles       []string               `json:"jobTitles" yaml:"jobTitles"`
	ExperienceYears int                    `json:"experienceYears" yaml:"experienceYears"`
	Education       []cvanalysis.Education `json:"education" yaml:"education"`
	Summary         string                 `json:"summary" yaml:"summary"`
	RawText         string                 `json:"rawText" yaml:"rawText"`
	AnalyzedAt      time.Time              `json:"analyzedAt" yaml:"analyzedAt"`
	UpdatedAt       time.Time              `json:"updatedAt" yaml:"updatedAt"`
}

// Profile rebuilds the extracted profile kept in the record.
func (r *Record) Profile() *cvanalysis.Profile {
	return &cvanalysis.Profile{
		FullName:        r.FullName,
		Email:           r.Email,
		Phone:           r.Phone,
		Skills:          r.Skills,
		Expertise:       r.Expertise,
		JobTitles:       r.JobTitles,
		ExperienceYears: r.ExperienceYears,
		Education:       r.Education,
		Summary:         r.Summary,
	}
}

type scanner interface {
	Scan(dest ...any) error
}

func scanRecord(row scanner) (*Record, error) {
	var (
		rec                                  Record
		resumeID, years                      sql.NullInt64
		fullName, email, phone               sql.NullString
		skills, expertise, titles, education sql.NullString
		summary, rawText                     sql.NullString
		analyzedAt, updatedAt                string
	)

	err := row.Scan(&rec.ID, &resumeID, &fullName, &email, &phone, &skills, &expertise,
		&titles, &years, &education, &summary, &rawText, &analyzedAt, &updatedAt)
	if err != nil {
		return nil, err
	}

	if resumeID.Valid {
		rec.ResumeID = &resumeID.Int64
	}
	if email.Valid {
		rec.Email = &email.String
	}
	if phone.Valid {
		rec.Phone = &phone.String
	}

	rec.FullName = fullName.String
	rec.Expertise = expertise.String
	rec.ExperienceYears = int(years.Int64)
	rec.Summary = summary.String
	rec.RawText = rawText.String

	rec.Skills = []string{}
	if err := unmarshalColumn(skills, &rec.Skills); err != nil {
		return nil, fmt.Errorf("decode skills: %w", err)
	}
	rec.JobTitles = []string{}
	if err := unmarshalColumn(titles, &rec.JobTitles); err != nil {
		return nil, fmt.Errorf("decode job titles: %w", err)
	}
	if err := unmarshalColumn(education, &rec.Education); err != nil {
		return nil, fmt.Errorf("decode education: %w", err)
	}

	if rec.AnalyzedAt, err = time.Parse(timeLayout, analyzedAt); err != nil {
		return nil, fmt.Errorf("decode analyzed_at: %w", err)
	}
	if rec.UpdatedAt, err = time.Parse(timeLayout, updatedAt); err != nil {
		return nil, fmt.Errorf("decode updated_at: %w", err)
	}

	return &rec, nil
}

func unmarshalColumn(col sql.NullString, target any) error {
	if !col.Valid || col.String == "" {
		return nil
	}
	return json.Unmarshal([]byte(col.String), target)
}
