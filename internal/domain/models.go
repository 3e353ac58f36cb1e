package domain

import (
	"fmt"
	"strings"
	"time"
)

// MaxAnswerValue is the highest frequency value an option can carry.
const MaxAnswerValue = 4

// Gender is the closed set of respondent genders, stored by code.
type Gender string

const (
	GenderMale        Gender = "M"
	GenderFemale      Gender = "W"
	GenderUnspecified Gender = "N"
)

// ParseGender maps free-form input onto a Gender; anything unrecognized is Unspecified.
func ParseGender(raw string) Gender {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "m", "male":
		return GenderMale
	case "w", "f", "female":
		return GenderFemale
	default:
		return GenderUnspecified
	}
}

func (g Gender) String() string {
	switch g {
	case GenderMale:
		return "Male"
	case GenderFemale:
		return "Female"
	default:
		return "Unspecified"
	}
}

// Respondent is the person taking the survey; it lives for one session only.
type Respondent struct {
	Name   string
	Age    int
	Gender Gender
}

// Option is one selectable answer and the value it contributes to the score.
type Option struct {
	Label string `yaml:"label"`
	Value int    `yaml:"value"`
}

// Question is a single prompt. Group is the index of the catalog group it belongs to.
type Question struct {
	Index  int
	Group  int
	Prompt string
}

// Group is a run of consecutive questions sharing an instruction screen.
type Group struct {
	Name         string   `yaml:"name"`
	Instructions string   `yaml:"instructions"`
	Questions    []string `yaml:"questions"`
}

// Catalog is the fixed survey content loaded at startup.
type Catalog struct {
	Title   string   `yaml:"title"`
	Guide   string   `yaml:"guide"`
	InfoURL string   `yaml:"info_url"`
	Options []Option `yaml:"options"`
	Groups  []Group  `yaml:"groups"`
}

// Questions flattens the groups into index order.
func (c Catalog) Questions() []Question {
	var out []Question
	for g, group := range c.Groups {
		for _, prompt := range group.Questions {
			out = append(out, Question{Index: len(out), Group: g, Prompt: prompt})
		}
	}
	return out
}

// Category is a severity band, ordered from least to most severe.
type Category int

const (
	CategoryNormal Category = iota
	CategoryMild
	CategoryModerate
	CategorySevere
)

func (c Category) String() string {
	switch c {
	case CategoryNormal:
		return "Normal/Minimal"
	case CategoryMild:
		return "Mild"
	case CategoryModerate:
		return "Moderate"
	default:
		return "Severe"
	}
}

// Result is the score summary shown on the result step.
type Result struct {
	Score    float64
	Category Category
}

func (r Result) String() string {
	return fmt.Sprintf("OSDI score: %.2f (%s)", r.Score, r.Category)
}

// ScoreRecord is one persisted survey outcome. Date is assigned by the history store.
type ScoreRecord struct {
	Name   string
	Age    int
	Gender Gender
	Date   time.Time
	Score  float64
}

// DateLayout is the text form dates take in durable storage.
const DateLayout = "2006-01-02 15:04:05"

// StoredRecord is a ScoreRecord together with the backend's identifier for it.
type StoredRecord struct {
	ID string
	ScoreRecord
}
