package server

import (
	"net/http"

	"github.com/rs/zerolog"
)

// ThemeToggleHandler flips the theme and returns to the page it came from.
func (s *Server) ThemeToggleHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, ok := clientFromContext(r.Context())
		if !ok {
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}
		mode := c.theme.Toggle(r.Context())
		zerolog.Ctx(r.Context()).Debug().Str("mode", mode.String()).Msg("[Theme] toggled")
		redirectSuccess(w, r, backTo(r))
	}
}

// ThemeSetHandler sets the theme from the "mode" form value. Unknown
// values leave the theme as it was.
func (s *Server) ThemeSetHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		c, ok := clientFromContext(r.Context())
		if !ok {
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}
		if err := r.ParseForm(); err != nil {
			http.Error(w, "Invalid form data", http.StatusBadRequest)
			return
		}
		if !c.theme.SetMode(r.Context(), r.PostFormValue("mode")) {
			zerolog.Ctx(r.Context()).Debug().Str("mode", r.PostFormValue("mode")).Msg("[Theme] ignored unknown mode")
		}
		redirectSuccess(w, r, backTo(r))
	}
}
