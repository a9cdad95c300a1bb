package service

import (
	_ "embed"
	"fmt"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/objectifs/objectifs/internal/apperr"
	"github.com/objectifs/objectifs/internal/model"
	"github.com/objectifs/objectifs/internal/repository"
)

//go:embed data/surahs.yaml
var surahCatalog []byte

type QuranService struct {
	repo   repository.QuranRepository
	surahs []model.Surah
}

func NewQuranService(repo repository.QuranRepository) (*QuranService, error) {
	var surahs []model.Surah
	err := yaml.Unmarshal(surahCatalog, &surahs)
	if err != nil {
		return nil, fmt.Errorf("failed to parse surah catalog: %w", err)
	}
	if len(surahs) != model.SurahCount {
		return nil, fmt.Errorf("surah catalog has %d entries, want %d", len(surahs), model.SurahCount)
	}

	return &QuranService{repo: repo, surahs: surahs}, nil
}

func (s *QuranService) Surahs() []model.Surah {
	return s.surahs
}

// Verses returns a surah's verses in order. Surahs run from 1 to 114.
func (s *QuranService) Verses(surah int) ([]*model.Verse, error) {
	err := checkSurah(surah)
	if err != nil {
		return nil, err
	}

	verses, err := s.repo.Verses(surah)
	if err != nil {
		return nil, apperr.Database(fmt.Errorf("failed to load verses: %w", err))
	}
	return verses, nil
}

func (s *QuranService) Verse(surah, verse int) (*model.Verse, error) {
	err := checkSurah(surah)
	if err != nil {
		return nil, err
	}
	if verse < 1 {
		return nil, apperr.Validation("invalid verse number")
	}

	v, err := s.repo.Verse(surah, verse)
	if err != nil {
		return nil, storeErr(err, repository.ErrVerseNotFound, "verse not found")
	}
	return v, nil
}

// Search matches the Arabic text and the translation, ignoring case.
func (s *QuranService) Search(term string) ([]*model.Verse, error) {
	term = strings.TrimSpace(term)
	if term == "" {
		return nil, apperr.Validation("please provide a search term")
	}

	verses, err := s.repo.Search(term)
	if err != nil {
		return nil, apperr.Database(fmt.Errorf("failed to search verses: %w", err))
	}
	return verses, nil
}

// Seed loads verses from a YAML list of {surah, verse, arabic, translation}.
// Existing verses are overwritten. It returns the number of verses loaded.
func (s *QuranService) Seed(r io.Reader) (int, error) {
	var verses []*model.Verse
	err := yaml.NewDecoder(r).Decode(&verses)
	if err != nil {
		return 0, fmt.Errorf("failed to parse verses: %w", err)
	}

	for _, v := range verses {
		err = checkSurah(v.Surah)
		if err != nil {
			return 0, fmt.Errorf("verse %d:%d: %w", v.Surah, v.Verse, err)
		}
		if v.Verse < 1 || v.Verse > s.surahs[v.Surah-1].VerseCount {
			return 0, fmt.Errorf("verse %d:%d: out of range for %s", v.Surah, v.Verse, s.surahs[v.Surah-1].Name)
		}
	}

	err = s.repo.UpsertVerses(verses)
	if err != nil {
		return 0, fmt.Errorf("failed to store verses: %w", err)
	}
	return len(verses), nil
}

func checkSurah(surah int) error {
	if surah < 1 || surah > model.SurahCount {
		return apperr.Validation("invalid surah number")
	}
	return nil
}
