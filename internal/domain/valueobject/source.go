package valueobject

import "github.com/ignatzorin/projectmatch-backend/internal/pkg/apperror"

// Source - откуда проект попал в каталог.
type Source string

const (
	SourceGithub            Source = "github"
	SourceKaggleCompetition Source = "kaggle_competition"
	SourceKaggleDataset     Source = "kaggle_dataset"
	SourceCurated           Source = "curated"
)

// SourceAll - значение фильтра, отключающее фильтрацию по источнику.
const SourceAll = "all"

var AllSources = []Source{SourceGithub, SourceKaggleCompetition, SourceKaggleDataset, SourceCurated}

var sourceDescriptions = map[Source]string{
	SourceGithub:            "Open source repositories",
	SourceKaggleCompetition: "Data science competitions",
	SourceKaggleDataset:     "Dataset analysis projects",
	SourceCurated:           "Hand-picked learning projects",
}

func (s Source) IsValid() bool {
	switch s {
	case SourceGithub, SourceKaggleCompetition, SourceKaggleDataset, SourceCurated:
		return true
	}
	return false
}

func (s Source) Description() string {
	if d, ok := sourceDescriptions[s]; ok {
		return d
	}
	return "Unknown source"
}

func NewSource(source string) (Source, error) {
	s := Source(source)
	if !s.IsValid() {
		return "", apperror.Validation("source", "допустимые значения: github, kaggle_competition, kaggle_dataset, curated")
	}
	return s, nil
}

// ParseSourceFilter разбирает фильтр источника: пустая строка и "all" означают
// отсутствие фильтра.
func ParseSourceFilter(source string) (*Source, error) {
	if source == "" || source == SourceAll {
		return nil, nil
	}
	s, err := NewSource(source)
	if err != nil {
		return nil, err
	}
	return &s, nil
}
