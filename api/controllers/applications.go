package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/careerlink-app/careerlink-backend/api/middleware"
	"github.com/careerlink-app/careerlink-backend/api/responses"
	"github.com/careerlink-app/careerlink-backend/api/validators"
	"github.com/careerlink-app/careerlink-backend/internal/applications"
	pkgerrors "github.com/careerlink-app/careerlink-backend/pkg/errors"
	"github.com/careerlink-app/careerlink-backend/pkg/logger"
)

// ApplicationsApply submits the caller's application for a job.
func ApplicationsApply(svc applications.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		applicantID, ok := middleware.UserIDFromContext(r.Context())
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
			return
		}

		jobID, err := validators.ParsePathUUID(chi.URLParam(r, "jobId"), "jobId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		app, err := svc.Apply(r.Context(), applicantID, jobID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, app)
	}
}

// ApplicationsMine lists the caller's submitted applications.
func ApplicationsMine(svc applications.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		applicantID, ok := middleware.UserIDFromContext(r.Context())
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
			return
		}

		list, err := svc.ListForApplicant(r.Context(), applicantID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, list)
	}
}

// ApplicationsForJob lists applicants for one of the employer's jobs.
func ApplicationsForJob(svc applications.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		callerID, ok := middleware.UserIDFromContext(r.Context())
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
			return
		}

		jobID, err := validators.ParsePathUUID(chi.URLParam(r, "jobId"), "jobId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		list, err := svc.ListForJob(r.Context(), jobID, callerID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, list)
	}
}

// ApplicationsIncoming lists applications across all of the employer's jobs.
func ApplicationsIncoming(svc applications.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		employerID, ok := middleware.UserIDFromContext(r.Context())
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
			return
		}

		list, err := svc.ListForEmployer(r.Context(), employerID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, list)
	}
}

// ApplicationsUpdateStatus moves an application to accepted or rejected.
func ApplicationsUpdateStatus(svc applications.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		callerID, ok := middleware.UserIDFromContext(r.Context())
		if !ok {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing credentials"))
			return
		}

		applicationID, err := validators.ParsePathUUID(chi.URLParam(r, "applicationId"), "applicationId")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body applications.UpdateStatusRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		app, err := svc.UpdateStatus(r.Context(), applicationID, body.Status, callerID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, app)
	}
}
