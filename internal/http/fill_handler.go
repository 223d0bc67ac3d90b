package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/Sergey0703/kpfaplus-sub001/internal/application"
)

type fillService interface {
	Fill(ctx context.Context, params application.FillParams) (application.FillResult, error)
}

// FillHandler exposes the generate-from-template pipeline.
type FillHandler struct {
	service   fillService
	validate  *validator.Validate
	responder responder
	logger    *slog.Logger
}

// NewFillHandler constructs the handler.
func NewFillHandler(service fillService, logger *slog.Logger) *FillHandler {
	return &FillHandler{
		service:   service,
		validate:  validator.New(validator.WithRequiredStructEnabled()),
		responder: newResponder(logger),
		logger:    defaultLogger(logger),
	}
}

type fillRequest struct {
	Month          string `json:"month" validate:"required,datetime=2006-01"`
	EmployeeID     string `json:"employeeId" validate:"required"`
	ContractID     string `json:"contractId" validate:"required"`
	ManagerID      string `json:"managerId"`
	GroupID        string `json:"groupId"`
	StartOfWeekDay int    `json:"startOfWeekDay" validate:"gte=0,lte=7"`
}

func (req fillRequest) toParams() (application.FillParams, error) {
	month, err := time.ParseInLocation("2006-01", req.Month, time.UTC)
	if err != nil {
		return application.FillParams{}, err
	}
	return application.FillParams{
		SelectedMonth:  month,
		EmployeeID:     req.EmployeeID,
		ContractID:     req.ContractID,
		ManagerID:      req.ManagerID,
		GroupID:        req.GroupID,
		StartOfWeekDay: req.StartOfWeekDay,
	}, nil
}

// Fill handles POST /api/fill.
func (h *FillHandler) Fill(w http.ResponseWriter, r *http.Request) {
	if h == nil || h.service == nil {
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}
	ctx := r.Context()

	var req fillRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.responder.writeError(ctx, w, http.StatusBadRequest, errBadRequestBody)
		return
	}

	if err := h.validate.Struct(req); err != nil {
		h.responder.writeJSON(ctx, w, http.StatusUnprocessableEntity, errorResponse{
			Message: "invalid input",
			Errors:  fieldErrors(err),
		})
		return
	}

	params, err := req.toParams()
	if err != nil {
		h.responder.writeJSON(ctx, w, http.StatusUnprocessableEntity, errorResponse{
			Message: "invalid input",
			Errors:  map[string]string{"month": "month must look like 2024-10"},
		})
		return
	}

	result, err := h.service.Fill(ctx, params)
	if err != nil {
		h.responder.handleServiceError(ctx, w, err)
		return
	}

	h.responder.writeJSON(ctx, w, statusCode(result.Status), result)
}

func statusCode(status application.FillStatus) int {
	switch status {
	case application.StatusBlocked:
		return http.StatusConflict
	case application.StatusPartial:
		return http.StatusMultiStatus
	case application.StatusFailed:
		return http.StatusBadGateway
	default:
		return http.StatusOK
	}
}

// fieldErrors flattens validator output into the field->message map the
// responder renders.
func fieldErrors(err error) map[string]string {
	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return map[string]string{"request": err.Error()}
	}
	out := make(map[string]string, len(verrs))
	for _, fe := range verrs {
		switch fe.Tag() {
		case "required":
			out[fe.Field()] = "is required"
		case "datetime":
			out[fe.Field()] = "must look like 2024-10"
		default:
			out[fe.Field()] = "is invalid"
		}
	}
	return out
}
