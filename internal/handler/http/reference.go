package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/utafrali/ProfileGo/internal/service"
)

// ReferenceHandler serves the read-only reference data endpoints: countries,
// country subdivisions, and challenge questions.
type ReferenceHandler struct {
	countries    *service.CountryService
	subdivisions *service.CountrySubdivisionService
	questions    *service.ChallengeQuestionService
}

// NewReferenceHandler creates a new reference data HTTP handler.
func NewReferenceHandler(
	countries *service.CountryService,
	subdivisions *service.CountrySubdivisionService,
	questions *service.ChallengeQuestionService,
) *ReferenceHandler {
	return &ReferenceHandler{
		countries:    countries,
		subdivisions: subdivisions,
		questions:    questions,
	}
}

// ListCountries handles GET /api/v1/countries
func (h *ReferenceHandler) ListCountries(w http.ResponseWriter, r *http.Request) {
	countries, err := h.countries.FindCountries(r.Context())
	if err != nil {
		writeAppError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, response{Data: countries})
}

// GetCountry handles GET /api/v1/countries/{abbreviation}
func (h *ReferenceHandler) GetCountry(w http.ResponseWriter, r *http.Request) {
	abbreviation := chi.URLParam(r, "abbreviation")

	country, err := h.countries.FindCountryByAbbreviation(r.Context(), abbreviation)
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	if country == nil {
		writeJSON(w, http.StatusNotFound, response{
			Error: &errorResponse{Code: "NOT_FOUND", Message: "country not found"},
		})
		return
	}

	writeJSON(w, http.StatusOK, response{Data: country})
}

// ListSubdivisions handles GET /api/v1/countries/{abbreviation}/subdivisions
func (h *ReferenceHandler) ListSubdivisions(w http.ResponseWriter, r *http.Request) {
	abbreviation := chi.URLParam(r, "abbreviation")

	subdivisions, err := h.subdivisions.FindSubdivisions(r.Context(), abbreviation)
	if err != nil {
		writeAppError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, response{Data: subdivisions})
}

// GetSubdivision handles GET /api/v1/subdivisions/{abbreviation}
func (h *ReferenceHandler) GetSubdivision(w http.ResponseWriter, r *http.Request) {
	abbreviation := chi.URLParam(r, "abbreviation")

	subdivision, err := h.subdivisions.FindSubdivisionByAbbreviation(r.Context(), abbreviation)
	if err != nil {
		writeAppError(w, r, err)
		return
	}
	if subdivision == nil {
		writeJSON(w, http.StatusNotFound, response{
			Error: &errorResponse{Code: "NOT_FOUND", Message: "subdivision not found"},
		})
		return
	}

	writeJSON(w, http.StatusOK, response{Data: subdivision})
}

// ListChallengeQuestions handles GET /api/v1/challenge-questions
func (h *ReferenceHandler) ListChallengeQuestions(w http.ResponseWriter, r *http.Request) {
	questions, err := h.questions.ReadChallengeQuestions(r.Context())
	if err != nil {
		writeAppError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, response{Data: questions})
}
