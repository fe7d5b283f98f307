package controllers

import (
	"availability-service/internal/app/contracts"
	"availability-service/internal/pkg/constvars"
	"availability-service/internal/pkg/dto/requests"
	"availability-service/internal/pkg/exceptions"
	"availability-service/internal/pkg/utils"
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

const usecaseTimeout = 30 * time.Second

type AvailabilityController struct {
	Log     *zap.Logger
	Usecase contracts.AvailabilityUsecase
}

func NewAvailabilityController(logger *zap.Logger, usecase contracts.AvailabilityUsecase) *AvailabilityController {
	return &AvailabilityController{
		Log:     logger,
		Usecase: usecase,
	}
}

func (ctrl *AvailabilityController) GetSlotTemplate(w http.ResponseWriter, r *http.Request) {
	result, err := ctrl.Usecase.GetSlotTemplate(r.Context())
	if err != nil {
		ctrl.handleUsecaseError(w, "GetSlotTemplate", utils.RequestIDFromContext(r.Context()), err)
		return
	}
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetSlotTemplateSuccessMessage, result)
}

func (ctrl *AvailabilityController) GetWeekSchedule(w http.ResponseWriter, r *http.Request) {
	requestID := utils.RequestIDFromContext(r.Context())
	ctrl.Log.Info("AvailabilityController.GetWeekSchedule called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	weekOffset, err := utils.ParseQueryIntInRange(r, "week", 0, -constvars.MaxWeekOffset, constvars.MaxWeekOffset)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}
	expanded, err := utils.ParseQueryIntList(r, "expanded")
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), usecaseTimeout)
	defer cancel()

	result, err := ctrl.Usecase.GetWeekSchedule(ctx, weekOffset, expanded)
	if err != nil {
		ctrl.handleUsecaseError(w, "GetWeekSchedule", requestID, err)
		return
	}
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetWeekScheduleSuccessMessage, result)
}

func (ctrl *AvailabilityController) ToggleSlot(w http.ResponseWriter, r *http.Request) {
	requestID := utils.RequestIDFromContext(r.Context())
	ctrl.Log.Info("AvailabilityController.ToggleSlot called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
	)

	request := new(requests.ToggleSlot)
	err := json.NewDecoder(r.Body).Decode(request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrCannotParseJSON(err))
		return
	}

	err = utils.ValidateStruct(request)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrInputValidation(err))
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), usecaseTimeout)
	defer cancel()

	result, err := ctrl.Usecase.ToggleSlot(ctx, request)
	if err != nil {
		ctrl.handleUsecaseError(w, "ToggleSlot", requestID, err)
		return
	}

	switch constvars.ToggleAction(result.Action) {
	case constvars.ToggleActionCreated:
		utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.SlotCreatedSuccessMessage, result)
	case constvars.ToggleActionDeleted:
		utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.SlotDeletedSuccessMessage, result)
	default:
		utils.BuildSuccessResponse(w, constvars.StatusAccepted, constvars.SlotToggleInProgressMessage, result)
	}
}

func (ctrl *AvailabilityController) RefreshSlots(w http.ResponseWriter, r *http.Request) {
	requestID := utils.RequestIDFromContext(r.Context())

	ctx, cancel := context.WithTimeout(r.Context(), usecaseTimeout)
	defer cancel()

	result, err := ctrl.Usecase.RefreshSlots(ctx)
	if err != nil {
		ctrl.handleUsecaseError(w, "RefreshSlots", requestID, err)
		return
	}
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.RefreshSlotsSuccessMessage, result)
}

func (ctrl *AvailabilityController) ExportWeekSchedule(w http.ResponseWriter, r *http.Request) {
	requestID := utils.RequestIDFromContext(r.Context())

	weekOffset, err := utils.ParseQueryIntInRange(r, "week", 0, -constvars.MaxWeekOffset, constvars.MaxWeekOffset)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), usecaseTimeout)
	defer cancel()

	result, err := ctrl.Usecase.ExportWeekSchedule(ctx, weekOffset)
	if err != nil {
		ctrl.handleUsecaseError(w, "ExportWeekSchedule", requestID, err)
		return
	}
	utils.BuildSuccessResponse(w, constvars.StatusCreated, constvars.ExportWeekScheduleSuccessMessage, result)
}

func (ctrl *AvailabilityController) ListAudits(w http.ResponseWriter, r *http.Request) {
	requestID := utils.RequestIDFromContext(r.Context())

	limit, err := utils.ParseQueryInt(r, "limit", constvars.DefaultAuditListLimit)
	if err != nil {
		utils.BuildErrorResponse(ctrl.Log, w, err)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), usecaseTimeout)
	defer cancel()

	result, err := ctrl.Usecase.ListAudits(ctx, limit)
	if err != nil {
		ctrl.handleUsecaseError(w, "ListAudits", requestID, err)
		return
	}
	utils.BuildSuccessResponse(w, constvars.StatusOK, constvars.GetAuditsSuccessMessage, result)
}

func (ctrl *AvailabilityController) handleUsecaseError(w http.ResponseWriter, method, requestID string, err error) {
	ctrl.Log.Error("AvailabilityController."+method+" error from usecase",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Error(err),
	)
	if errors.Is(err, context.DeadlineExceeded) {
		var customErr *exceptions.CustomError
		if !errors.As(err, &customErr) {
			utils.BuildErrorResponse(ctrl.Log, w, exceptions.ErrServerDeadlineExceeded(err))
			return
		}
	}
	utils.BuildErrorResponse(ctrl.Log, w, err)
}
