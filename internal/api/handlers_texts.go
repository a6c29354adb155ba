package api

import (
	"net/http"

	"github.com/dayminder/dayminder/internal/api/respond"
	"github.com/dayminder/dayminder/internal/i18n"
)

// TextsHandler serves the display text tables.
type TextsHandler struct {
	fallback i18n.Lang
}

func NewTextsHandler(fallback i18n.Lang) *TextsHandler {
	return &TextsHandler{fallback: fallback}
}

// GetTexts GET /api/texts?lang=
// An explicit lang wins; otherwise Accept-Language is matched; otherwise the
// configured default is used.
func (h *TextsHandler) GetTexts(w http.ResponseWriter, r *http.Request) {
	lang := h.fallback
	if q := r.URL.Query().Get("lang"); q != "" {
		lang = i18n.Parse(q)
	} else if al := r.Header.Get("Accept-Language"); al != "" {
		lang = i18n.Match(al)
	}
	w.Header().Set("Content-Language", string(lang))
	respond.WriteJSON(w, http.StatusOK, i18n.For(lang))
}
