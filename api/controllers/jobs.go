package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/careerlink-app/careerlink-backend/api/middleware"
	"github.com/careerlink-app/careerlink-backend/api/responses"
	"github.com/careerlink-app/careerlink-backend/api/validators"
	"github.com/careerlink-app/careerlink-backend/internal/jobs"
	pkgerrors "github.com/careerlink-app/careerlink-backend/pkg/errors"
	"github.com/careerlink-app/careerlink-backend/pkg/logger"
	"github.com/careerlink-app/careerlink-backend/pkg/pagination"
)

// JobsSearch is the public board listing. Every filter is optional.
func JobsSearch(svc jobs.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, err := validators.ParseQueryInt(r, "limit", pagination.DefaultLimit, 1, pagination.MaxLimit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		q := r.URL.Query()
		filters := jobs.SearchFilters{
			Category:        strings.TrimSpace(q.Get("category")),
			Location:        strings.TrimSpace(q.Get("location")),
			EmploymentType:  strings.TrimSpace(q.Get("employment_type")),
			ExperienceLevel: strings.TrimSpace(q.Get("experience_level")),
			FreeTextQuery:   q.Get("q"),
			Page: pagination.Params{
				Limit:  limit,
				Cursor: strings.TrimSpace(q.Get("cursor")),
			},
		}

		result, err := svc.Search(r.Context(), filters)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

// JobsGet returns one job by id, regardless of status.
func JobsGet(svc jobs.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		jobID, err := validators.ParsePathUUID(chi.URLParam(r, "jobId"), "jobId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		job, err := svc.Get(r.Context(), jobID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, job)
	}
}

// JobsPost creates a listing for the authenticated employer.
func JobsPost(svc jobs.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		employerID, ok := middleware.UserIDFromContext(r.Context())
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
			return
		}

		var body jobs.PostJobRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		job, err := svc.Post(r.Context(), employerID, body)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, job)
	}
}

// JobsMine lists the employer's own postings with live applicant counts.
func JobsMine(svc jobs.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		employerID, ok := middleware.UserIDFromContext(r.Context())
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
			return
		}

		list, err := svc.ListEmployerJobs(r.Context(), employerID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, list)
	}
}

// JobsClose takes a listing off the board. Closing twice is a no-op.
func JobsClose(svc jobs.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		employerID, ok := middleware.UserIDFromContext(r.Context())
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
			return
		}

		jobID, err := validators.ParsePathUUID(chi.URLParam(r, "jobId"), "jobId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		job, err := svc.Close(r.Context(), employerID, jobID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, job)
	}
}
