package profile

import (
	"encoding/json"
	"errors"
	"strings"
)

// NA is the sentinel for string fields a model failed to supply.
const NA = "NA"

// ContactInformation holds the candidate's contact details.
type ContactInformation struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Location string `json:"location"`
	LinkedIn string `json:"linkedin"`
}

// Skills splits skills into technical and soft buckets.
type Skills struct {
	Technical []string `json:"technical"`
	Soft      []string `json:"soft"`
}

// WorkExperience is a single employment entry.
type WorkExperience struct {
	Company          string   `json:"company"`
	Position         string   `json:"position"`
	Duration         string   `json:"duration"`
	Responsibilities []string `json:"responsibilities"`
	Achievements     []string `json:"achievements"`
}

// Education is a single education entry.
type Education struct {
	Institution    string `json:"institution"`
	Degree         string `json:"degree"`
	Field          string `json:"field"`
	GraduationDate string `json:"graduationDate"`
}

// Analysis carries the model's qualitative assessment and ATS score.
type Analysis struct {
	Strengths           []string `json:"strengths"`
	AreasForImprovement []string `json:"areasForImprovement"`
	Keywords            []string `json:"keywords"`
	ATSScore            int      `json:"atsScore"`
}

// StructuredProfile is the canonical shape of a completed resume analysis.
// Downstream consumers may rely on Normalize having run: string fields are
// never empty (NA sentinel) and list fields are never nil.
type StructuredProfile struct {
	ContactInformation ContactInformation `json:"contactInformation"`
	Skills             Skills             `json:"skills"`
	WorkExperience     []WorkExperience   `json:"workExperience"`
	Education          []Education        `json:"education"`
	Certifications     []string           `json:"certifications"`
	Summary            string             `json:"summary"`
	Analysis           Analysis           `json:"analysis"`
}

// New returns a profile with every field set to its sentinel default.
func New() StructuredProfile {
	p := StructuredProfile{}
	p.Normalize()
	return p
}

// Normalize enforces sentinel defaults and clamps the ATS score to [0,100].
func (p *StructuredProfile) Normalize() {
	p.ContactInformation.Name = orNA(p.ContactInformation.Name)
	p.ContactInformation.Email = orNA(p.ContactInformation.Email)
	p.ContactInformation.Phone = orNA(p.ContactInformation.Phone)
	p.ContactInformation.Location = orNA(p.ContactInformation.Location)
	p.ContactInformation.LinkedIn = orNA(p.ContactInformation.LinkedIn)
	p.Summary = orNA(p.Summary)

	p.Skills.Technical = orEmpty(p.Skills.Technical)
	p.Skills.Soft = orEmpty(p.Skills.Soft)
	p.Certifications = orEmpty(p.Certifications)
	p.Analysis.Strengths = orEmpty(p.Analysis.Strengths)
	p.Analysis.AreasForImprovement = orEmpty(p.Analysis.AreasForImprovement)
	p.Analysis.Keywords = orEmpty(p.Analysis.Keywords)

	if p.WorkExperience == nil {
		p.WorkExperience = []WorkExperience{}
	}
	for i := range p.WorkExperience {
		w := &p.WorkExperience[i]
		w.Company = orNA(w.Company)
		w.Position = orNA(w.Position)
		w.Duration = orNA(w.Duration)
		w.Responsibilities = orEmpty(w.Responsibilities)
		w.Achievements = orEmpty(w.Achievements)
	}
	if p.Education == nil {
		p.Education = []Education{}
	}
	for i := range p.Education {
		e := &p.Education[i]
		e.Institution = orNA(e.Institution)
		e.Degree = orNA(e.Degree)
		e.Field = orNA(e.Field)
		e.GraduationDate = orNA(e.GraduationDate)
	}

	p.Analysis.ATSScore = ClampScore(p.Analysis.ATSScore)
}

// HasContactName reports whether a real name was extracted (not the sentinel).
func (p *StructuredProfile) HasContactName() bool {
	name := strings.TrimSpace(p.ContactInformation.Name)
	return name != "" && name != NA
}

// ClampScore bounds a score to [0,100].
func ClampScore(score int) int {
	if score < 0 {
		return 0
	}
	if score > 100 {
		return 100
	}
	return score
}

// FromJSON parses a model response body into a normalized profile.
func FromJSON(raw string) (StructuredProfile, error) {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" {
		return StructuredProfile{}, errors.New("empty model output")
	}
	var p StructuredProfile
	if err := json.Unmarshal([]byte(trimmed), &p); err != nil {
		return StructuredProfile{}, err
	}
	p.Normalize()
	return p, nil
}

func orNA(s string) string {
	if strings.TrimSpace(s) == "" {
		return NA
	}
	return s
}

func orEmpty(list []string) []string {
	if list == nil {
		return []string{}
	}
	return list
}
