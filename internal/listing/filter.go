package listing

import (
	"fmt"
	"net/url"
	"strings"

	"hireable-backend/internal/domain"
)

// Field names one filter dimension. The values double as URL query keys.
type Field string

const (
	FieldSearch      Field = "search"
	FieldLocation    Field = "location"
	FieldNationality Field = "nationality"
	FieldExperience  Field = "experience"
	FieldProfession  Field = "profession"
)

var fields = []Field{FieldSearch, FieldLocation, FieldNationality, FieldExperience, FieldProfession}

// Filter is the current filter set.
type Filter struct {
	Search      string
	Location    string
	Nationality string
	Experience  domain.ExperienceBracket
	Profession  string
}

// With returns a copy of f with one field replaced.
func (f Filter) With(field Field, value string) (Filter, error) {
	value = strings.TrimSpace(value)
	switch field {
	case FieldSearch:
		f.Search = value
	case FieldLocation:
		f.Location = value
	case FieldNationality:
		f.Nationality = value
	case FieldProfession:
		f.Profession = value
	case FieldExperience:
		b, err := domain.ParseExperienceBracket(value)
		if err != nil {
			return f, err
		}
		f.Experience = b
	default:
		return f, fmt.Errorf("unknown filter field %q", field)
	}
	return f, nil
}

// Get returns the value of one field.
func (f Filter) Get(field Field) string {
	switch field {
	case FieldSearch:
		return f.Search
	case FieldLocation:
		return f.Location
	case FieldNationality:
		return f.Nationality
	case FieldExperience:
		return string(f.Experience)
	case FieldProfession:
		return f.Profession
	}
	return ""
}

// Active reports whether any field narrows the result.
func (f Filter) Active() bool {
	return f.Query(0, 0).Active()
}

// Values mirrors the filter into URL query parameters, omitting empty fields.
func (f Filter) Values() url.Values {
	v := url.Values{}
	for _, field := range fields {
		if s := f.Get(field); s != "" {
			v.Set(string(field), s)
		}
	}
	return v
}

// FilterFromValues restores a filter from URL query parameters.
// Unknown experience brackets are dropped.
func FilterFromValues(v url.Values) Filter {
	var f Filter
	for _, field := range fields {
		if next, err := f.With(field, v.Get(string(field))); err == nil {
			f = next
		}
	}
	return f
}

// Query converts the filter into a repository/collaborator query.
func (f Filter) Query(offset, limit int) domain.CandidateFilter {
	return domain.CandidateFilter{
		Search:      f.Search,
		Location:    f.Location,
		Nationality: f.Nationality,
		Experience:  f.Experience,
		Profession:  f.Profession,
		Offset:      offset,
		Limit:       limit,
	}
}
