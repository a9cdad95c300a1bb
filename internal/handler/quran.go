package handler

import (
	"net/http"
	"strconv"

	"github.com/objectifs/objectifs/internal/service"
)

type QuranHandler struct {
	quranService *service.QuranService
}

func NewQuranHandler(quranService *service.QuranService) *QuranHandler {
	return &QuranHandler{
		quranService: quranService,
	}
}

func (h *QuranHandler) Surahs(w http.ResponseWriter, r *http.Request) error {
	return list(w, h.quranService.Surahs())
}

func (h *QuranHandler) Verses(w http.ResponseWriter, r *http.Request) error {
	verses, err := h.quranService.Verses(pathInt(r, "surah"))
	if err != nil {
		return err
	}
	return list(w, verses)
}

func (h *QuranHandler) Verse(w http.ResponseWriter, r *http.Request) error {
	verse, err := h.quranService.Verse(pathInt(r, "surah"), pathInt(r, "verse"))
	if err != nil {
		return err
	}
	return ok(w, verse)
}

func (h *QuranHandler) Search(w http.ResponseWriter, r *http.Request) error {
	verses, err := h.quranService.Search(r.URL.Query().Get("q"))
	if err != nil {
		return err
	}
	return list(w, verses)
}

// pathInt reads a numeric path segment. Anything unparsable becomes 0, which
// the service rejects as out of range.
func pathInt(r *http.Request, name string) int {
	n, err := strconv.Atoi(r.PathValue(name))
	if err != nil {
		return 0
	}
	return n
}
