package handler

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"inpatient-registration/internal/delivery/dto"
	"inpatient-registration/internal/domain/entity"
	"inpatient-registration/internal/usecase"
	"inpatient-registration/pkg/response"
	"inpatient-registration/pkg/validator"

	"github.com/gorilla/mux"
)

type PatientHandler struct {
	patientUsecase   usecase.PatientUsecase
	admissionUsecase usecase.PatientAdmissionUsecase
	pageSize         int
	maxPageSize      int
}

func NewPatientHandler(
	patientUsecase usecase.PatientUsecase,
	admissionUsecase usecase.PatientAdmissionUsecase,
	pageSize, maxPageSize int,
) *PatientHandler {
	return &PatientHandler{
		patientUsecase:   patientUsecase,
		admissionUsecase: admissionUsecase,
		pageSize:         pageSize,
		maxPageSize:      maxPageSize,
	}
}

// ListPatients handles GET /patients?search=&room=&sort=&order=&page=&limit=
func (h *PatientHandler) ListPatients(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	query := entity.PatientQuery{
		Search:        q.Get("search"),
		Room:          q.Get("room"),
		SortField:     entity.SortByTanggalMasuk,
		SortDirection: entity.SortDesc,
		Page:          1,
		PageSize:      h.pageSize,
	}
	if query.Room == "" {
		query.Room = entity.RoomFilterAll
	}

	if s := q.Get("sort"); s != "" {
		field, ok := entity.ParseSortField(s)
		if !ok {
			response.BadRequest(w, "Invalid sort field")
			return
		}
		query.SortField = field
		// a new sort field starts ascending unless told otherwise
		query.SortDirection = entity.SortAsc
	}
	if o := q.Get("order"); o != "" {
		dir, ok := entity.ParseSortDirection(o)
		if !ok {
			response.BadRequest(w, "Invalid sort order")
			return
		}
		query.SortDirection = dir
	}

	if page, err := strconv.Atoi(q.Get("page")); err == nil && page > 0 {
		query.Page = page
	}
	if limit, err := strconv.Atoi(q.Get("limit")); err == nil && limit > 0 {
		query.PageSize = min(limit, h.maxPageSize)
	}

	result, err := h.patientUsecase.ListPatients(r.Context(), query)
	if err != nil {
		response.InternalServerError(w, "Failed to get patients")
		return
	}

	meta := &response.Meta{
		Page:       result.Page,
		Limit:      result.Limit,
		Total:      result.Total,
		TotalPages: result.TotalPages,
	}

	response.SuccessWithMeta(w, http.StatusOK, "Patients retrieved successfully", result, meta)
}

func (h *PatientHandler) GetPatient(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	patient, err := h.patientUsecase.GetPatient(r.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, usecase.ErrPatientNotFound):
			response.NotFound(w, "Patient not found")
		default:
			response.InternalServerError(w, "Failed to get patient")
		}
		return
	}

	response.Success(w, http.StatusOK, "Patient retrieved successfully", patient)
}

func (h *PatientHandler) GetRooms(w http.ResponseWriter, r *http.Request) {
	rooms, err := h.patientUsecase.GetRooms(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to get rooms")
		return
	}

	response.Success(w, http.StatusOK, "Rooms retrieved successfully", rooms)
}

// CreatePatient handles POST /patients through the admission workflow.
func (h *PatientHandler) CreatePatient(w http.ResponseWriter, r *http.Request) {
	var req dto.CreatePatientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request body")
		return
	}

	patient, err := h.admissionUsecase.Admit(r.Context(), &req)
	if err != nil {
		var fieldErrors validator.FieldErrors
		switch {
		case errors.As(err, &fieldErrors):
			response.ValidationError(w, fieldErrors)
		case errors.Is(err, usecase.ErrAdmissionInProgress):
			response.Conflict(w, "Another admission is being submitted")
		case errors.Is(err, usecase.ErrRemoteInsert):
			response.BadGateway(w, "Failed to register patient")
		default:
			response.InternalServerError(w, "Failed to register patient")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Patient registered successfully", patient)
}

func (h *PatientHandler) GetAdmissionState(w http.ResponseWriter, r *http.Request) {
	response.Success(w, http.StatusOK, "Admission state retrieved successfully", dto.AdmissionStateResponse{
		State: string(h.admissionUsecase.State()),
	})
}

func (h *PatientHandler) AcknowledgeAdmission(w http.ResponseWriter, r *http.Request) {
	h.admissionUsecase.Acknowledge()

	response.Success(w, http.StatusOK, "Admission acknowledged", dto.AdmissionStateResponse{
		State: string(h.admissionUsecase.State()),
	})
}
