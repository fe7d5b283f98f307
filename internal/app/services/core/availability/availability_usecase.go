package availability

import (
	"availability-service/internal/app/config"
	"availability-service/internal/app/contracts"
	"availability-service/internal/app/models"
	"availability-service/internal/pkg/constvars"
	"availability-service/internal/pkg/dto/requests"
	"availability-service/internal/pkg/dto/responses"
	"availability-service/internal/pkg/exceptions"
	"availability-service/internal/pkg/utils"
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type AvailabilityUsecase struct {
	engine    *Engine
	store     contracts.SlotSnapshotStore
	loading   contracts.LoadingSet
	slots     contracts.SlotRemoteClient
	publisher contracts.SlotEventPublisher
	storage   contracts.Storage
	audits    contracts.AuditRepository
	config    *config.InternalConfig
	now       func() time.Time
	logger    *zap.Logger
}

func NewAvailabilityUsecase(
	slots contracts.SlotRemoteClient,
	store contracts.SlotSnapshotStore,
	loading contracts.LoadingSet,
	publisher contracts.SlotEventPublisher,
	storage contracts.Storage,
	audits contracts.AuditRepository,
	config *config.InternalConfig,
	now func() time.Time,
	logger *zap.Logger,
) (*AvailabilityUsecase, error) {
	loc, err := time.LoadLocation(config.App.Timezone)
	if err != nil {
		return nil, exceptions.ErrInvalidTimezone(err, config.App.Timezone)
	}
	template, err := BuildTemplate(
		config.Availability.TemplateDayStart,
		config.Availability.TemplateDayEnd,
		config.Availability.TemplateStepInMinutes,
	)
	if err != nil {
		return nil, err
	}
	if now == nil {
		now = time.Now
	}
	return &AvailabilityUsecase{
		engine:    NewEngine(loc, template, config.Availability.SlotDurationInMinutes),
		store:     store,
		loading:   loading,
		slots:     slots,
		publisher: publisher,
		storage:   storage,
		audits:    audits,
		config:    config,
		now:       now,
		logger:    logger,
	}, nil
}

func (uc *AvailabilityUsecase) GetSlotTemplate(ctx context.Context) (*responses.SlotTemplate, error) {
	return &responses.SlotTemplate{
		Timezone:              uc.engine.Location().String(),
		SlotDurationInMinutes: uc.config.Availability.SlotDurationInMinutes,
		CollapsedSlotCount:    uc.config.Availability.CollapsedSlotCount,
		Times:                 append([]string(nil), uc.engine.Template().Times...),
	}, nil
}

func (uc *AvailabilityUsecase) GetWeekSchedule(ctx context.Context, weekOffset int, expandedDays []int) (*responses.WeekSchedule, error) {
	requestID := utils.RequestIDFromContext(ctx)
	practitionerID := utils.PractitionerIDFromContext(ctx)
	uc.logger.Info("AvailabilityUsecase.GetWeekSchedule called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPractitionerIDKey, practitionerID),
		zap.Int(constvars.LoggingWeekOffsetKey, weekOffset),
	)

	if err := checkWeekOffset(weekOffset); err != nil {
		return nil, err
	}

	slots, err := uc.fetchSlots(ctx, practitionerID, utils.AccessTokenFromContext(ctx))
	if err != nil {
		return nil, err
	}

	now := uc.now()
	days := uc.engine.ComputeSchedule(weekOffset, slots, now)

	inFlight, err := uc.loading.Members(ctx, LoadingKeyPrefix(practitionerID))
	if err != nil {
		uc.logger.Warn("AvailabilityUsecase.GetWeekSchedule loading flags unavailable",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
	}
	markLoading(days, practitionerID, inFlight)

	return &responses.WeekSchedule{
		WeekOffset: weekOffset,
		WeekStart:  uc.engine.WeekStart(now, weekOffset),
		Days:       NewExpansionState(expandedDays...).Apply(days, uc.config.Availability.CollapsedSlotCount),
	}, nil
}

// ToggleSlot creates the slot at the grid position when none exists and deletes it
// when an unbooked one does. The decision is taken against a freshly listed
// snapshot and the loading key is held for the whole resolution.
func (uc *AvailabilityUsecase) ToggleSlot(ctx context.Context, request *requests.ToggleSlot) (*responses.ToggleSlot, error) {
	requestID := utils.RequestIDFromContext(ctx)
	practitionerID := utils.PractitionerIDFromContext(ctx)
	accessToken := utils.AccessTokenFromContext(ctx)
	uc.logger.Info("AvailabilityUsecase.ToggleSlot called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPractitionerIDKey, practitionerID),
		zap.Int(constvars.LoggingWeekOffsetKey, request.WeekOffset),
		zap.Int(constvars.LoggingDayIndexKey, request.DayIndex),
		zap.Int(constvars.LoggingSlotIndexKey, request.SlotIndex),
	)

	if err := checkWeekOffset(request.WeekOffset); err != nil {
		return nil, err
	}

	now := uc.now()
	day, start, end, err := uc.engine.SlotAt(now, request.WeekOffset, request.DayIndex, request.SlotIndex)
	if errors.Is(err, errSlotSkippedByClockChange) {
		return nil, exceptions.ErrSlotDoesNotExist(err, request.DayIndex, request.SlotIndex)
	}
	if err != nil {
		return nil, exceptions.ErrSlotPositionOutOfRange(err, request.DayIndex, request.SlotIndex)
	}

	key := LoadingKey(practitionerID, start)
	acquired, token, err := uc.loading.TryAcquire(ctx, key)
	if err != nil {
		uc.logger.Error("AvailabilityUsecase.ToggleSlot error acquiring loading key",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingSlotKey, key),
			zap.Error(err),
		)
		return nil, exceptions.ErrLoadingStateUnavailable(err)
	}
	if !acquired {
		uc.logger.Info("AvailabilityUsecase.ToggleSlot already in progress",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingSlotKey, key),
		)
		return &responses.ToggleSlot{Action: string(constvars.ToggleActionInProgress)}, nil
	}
	defer uc.releaseLoadingKey(ctx, key, token)

	target := models.RemoteSlot{StartTime: start, EndTime: end}

	if IsPastDay(day, now, uc.engine.Location()) || IsPastSlot(start, now) {
		rejection := exceptions.ErrSlotInPast(nil, key)
		uc.recordAudit(ctx, constvars.ToggleActionRejected, target, rejection.ClientMessage)
		return nil, rejection
	}

	slots, err := uc.fetchSlots(ctx, practitionerID, accessToken)
	if err != nil {
		uc.recordAudit(ctx, constvars.ToggleActionFailed, target, constvars.ErrClientSlotStoreUnavailable)
		return nil, err
	}

	match, exists := FindSlot(slots, start)
	if exists && match.IsBooked {
		rejection := exceptions.ErrSlotBooked(nil, key)
		uc.recordAudit(ctx, constvars.ToggleActionRejected, match, rejection.ClientMessage)
		return nil, rejection
	}

	var (
		action  constvars.ToggleAction
		changed models.RemoteSlot
	)
	if exists {
		err = uc.slots.DeleteSlot(ctx, accessToken, match.ID)
		action, changed = constvars.ToggleActionDeleted, match
	} else {
		var created *models.RemoteSlot
		created, err = uc.slots.CreateSlot(ctx, accessToken, &requests.RemoteSlotCreate{
			Date:      day.UTC().Format(constvars.RemoteInstantLayout),
			StartTime: start.UTC().Format(constvars.RemoteInstantLayout),
			EndTime:   end.UTC().Format(constvars.RemoteInstantLayout),
			Duration:  uc.config.Availability.SlotDurationInMinutes,
		})
		action, changed = constvars.ToggleActionCreated, target
		if created != nil {
			changed = *created
		}
	}
	if err != nil {
		failure := toggleFailure(err)
		uc.logger.Error("AvailabilityUsecase.ToggleSlot remote mutation failed",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingSlotKey, key),
			zap.String(constvars.LoggingToggleActionKey, string(action)),
			zap.Error(err),
		)
		uc.recordAudit(ctx, constvars.ToggleActionFailed, changed, failure.ClientMessage)
		return nil, failure
	}

	uc.refetchAfterMutation(ctx, practitionerID, accessToken)
	uc.publishChange(ctx, action, changed)
	uc.recordAudit(ctx, action, changed, "")

	uc.logger.Info("AvailabilityUsecase.ToggleSlot succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingSlotKey, key),
		zap.String(constvars.LoggingToggleActionKey, string(action)),
		zap.String(constvars.LoggingSlotIDKey, changed.ID),
	)
	return &responses.ToggleSlot{Action: string(action), Slot: &changed}, nil
}

func (uc *AvailabilityUsecase) RefreshSlots(ctx context.Context) (*responses.RefreshSlots, error) {
	practitionerID := utils.PractitionerIDFromContext(ctx)
	slots, err := uc.fetchSlots(ctx, practitionerID, utils.AccessTokenFromContext(ctx))
	if err != nil {
		return nil, err
	}
	return &responses.RefreshSlots{SlotCount: len(slots)}, nil
}

func (uc *AvailabilityUsecase) ExportWeekSchedule(ctx context.Context, weekOffset int) (*responses.ExportWeekSchedule, error) {
	requestID := utils.RequestIDFromContext(ctx)
	practitionerID := utils.PractitionerIDFromContext(ctx)
	uc.logger.Info("AvailabilityUsecase.ExportWeekSchedule called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingPractitionerIDKey, practitionerID),
		zap.Int(constvars.LoggingWeekOffsetKey, weekOffset),
	)

	if err := checkWeekOffset(weekOffset); err != nil {
		return nil, err
	}

	slots, err := uc.fetchSlots(ctx, practitionerID, utils.AccessTokenFromContext(ctx))
	if err != nil {
		return nil, err
	}

	objectName, err := uc.exportWeek(ctx, practitionerID, slots, weekOffset)
	if err != nil {
		return nil, err
	}

	expiry := time.Duration(uc.config.Availability.PresignedURLExpiryInHour) * time.Hour
	presignedURL, err := uc.storage.GetObjectUrlWithExpiryTime(ctx, uc.config.Minio.BucketName, objectName, expiry)
	if err != nil {
		uc.logger.Error("AvailabilityUsecase.ExportWeekSchedule error presigning snapshot",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.String(constvars.LoggingObjectNameKey, objectName),
			zap.Error(err),
		)
		return nil, err
	}

	return &responses.ExportWeekSchedule{ObjectName: objectName, PresignedURL: presignedURL}, nil
}

func (uc *AvailabilityUsecase) ListAudits(ctx context.Context, limit int) ([]models.ToggleAudit, error) {
	if limit <= 0 {
		limit = constvars.DefaultAuditListLimit
	}
	if limit > constvars.MaxAuditListLimit {
		limit = constvars.MaxAuditListLimit
	}
	return uc.audits.FindRecentByPractitionerID(ctx, utils.PractitionerIDFromContext(ctx), limit)
}

// ExportCachedWeeks archives the current week of every practitioner held in the
// snapshot store. It never calls the remote store, so each archive reflects the
// last list confirmed within the snapshot TTL.
func (uc *AvailabilityUsecase) ExportCachedWeeks(ctx context.Context) (int, error) {
	practitionerIDs, err := uc.store.PractitionerIDs(ctx)
	if err != nil {
		return 0, err
	}

	exported := 0
	var errs []error
	for _, practitionerID := range practitionerIDs {
		slots, ok, err := uc.store.Get(ctx, practitionerID)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		if !ok {
			continue
		}
		objectName, err := uc.exportWeek(ctx, practitionerID, slots, 0)
		if err != nil {
			errs = append(errs, err)
			continue
		}
		uc.logger.Debug("AvailabilityUsecase.ExportCachedWeeks exported snapshot",
			zap.String(constvars.LoggingPractitionerIDKey, practitionerID),
			zap.String(constvars.LoggingObjectNameKey, objectName),
		)
		exported++
	}
	return exported, errors.Join(errs...)
}

func (uc *AvailabilityUsecase) exportWeek(ctx context.Context, practitionerID string, slots []models.RemoteSlot, weekOffset int) (string, error) {
	now := uc.now()
	weekStart := uc.engine.WeekStart(now, weekOffset)
	days := uc.engine.ComputeSchedule(weekOffset, slots, now)

	// archived weeks always carry every template slot
	snapshot := responses.WeekSchedule{
		WeekOffset: weekOffset,
		WeekStart:  weekStart,
		Days:       NewExpansionState().Apply(days, 0),
	}

	body, err := json.Marshal(snapshot)
	if err != nil {
		return "", exceptions.ErrCannotMarshalJSON(err)
	}

	objectName := fmt.Sprintf(constvars.SnapshotObjectNameFmt, practitionerID, weekStart.Format(constvars.DateLayout))
	return uc.storage.UploadJSON(ctx, body, uc.config.Minio.BucketName, objectName)
}

// fetchSlots lists the remote slots and records them as the last confirmed snapshot.
func (uc *AvailabilityUsecase) fetchSlots(ctx context.Context, practitionerID, accessToken string) ([]models.RemoteSlot, error) {
	slots, err := uc.slots.ListSlots(ctx, accessToken)
	if err != nil {
		uc.logger.Error("AvailabilityUsecase.fetchSlots error listing remote slots",
			zap.String(constvars.LoggingRequestIDKey, utils.RequestIDFromContext(ctx)),
			zap.String(constvars.LoggingPractitionerIDKey, practitionerID),
			zap.Error(err),
		)
		var customErr *exceptions.CustomError
		if errors.As(err, &customErr) && customErr.StatusCode == constvars.StatusGatewayTimeout {
			return nil, err
		}
		return nil, exceptions.ErrSlotStoreUnavailable(err)
	}
	if err := uc.store.Replace(ctx, practitionerID, slots); err != nil {
		uc.logger.Warn("AvailabilityUsecase.fetchSlots error storing snapshot",
			zap.String(constvars.LoggingRequestIDKey, utils.RequestIDFromContext(ctx)),
			zap.String(constvars.LoggingPractitionerIDKey, practitionerID),
			zap.Error(err),
		)
	}
	return slots, nil
}

// refetchAfterMutation replaces the snapshot after a confirmed change. When the
// list cannot be read the stale snapshot is dropped so it is never archived.
func (uc *AvailabilityUsecase) refetchAfterMutation(ctx context.Context, practitionerID, accessToken string) {
	if _, err := uc.fetchSlots(ctx, practitionerID, accessToken); err == nil {
		return
	}
	if err := uc.store.Invalidate(context.WithoutCancel(ctx), practitionerID); err != nil {
		uc.logger.Warn("AvailabilityUsecase.refetchAfterMutation error dropping snapshot",
			zap.String(constvars.LoggingRequestIDKey, utils.RequestIDFromContext(ctx)),
			zap.String(constvars.LoggingPractitionerIDKey, practitionerID),
			zap.Error(err),
		)
	}
}

func (uc *AvailabilityUsecase) releaseLoadingKey(ctx context.Context, key, token string) {
	err := uc.loading.Release(context.WithoutCancel(ctx), key, token)
	if err != nil {
		uc.logger.Error("AvailabilityUsecase.releaseLoadingKey error",
			zap.String(constvars.LoggingRequestIDKey, utils.RequestIDFromContext(ctx)),
			zap.String(constvars.LoggingSlotKey, key),
			zap.Error(err),
		)
	}
}

func (uc *AvailabilityUsecase) publishChange(ctx context.Context, action constvars.ToggleAction, slot models.RemoteSlot) {
	event := &models.SlotChangedEvent{
		ID:             uuid.NewString(),
		PractitionerID: utils.PractitionerIDFromContext(ctx),
		Action:         string(action),
		SlotID:         slot.ID,
		StartTime:      slot.StartTime,
		EndTime:        slot.EndTime,
		OccurredAt:     uc.now().UTC(),
	}
	if err := uc.publisher.PublishSlotChanged(ctx, event); err != nil {
		uc.logger.Warn("AvailabilityUsecase.publishChange failed",
			zap.String(constvars.LoggingRequestIDKey, utils.RequestIDFromContext(ctx)),
			zap.Error(err),
		)
	}
}

func (uc *AvailabilityUsecase) recordAudit(ctx context.Context, action constvars.ToggleAction, slot models.RemoteSlot, message string) {
	audit := &models.ToggleAudit{
		ID:             uuid.NewString(),
		RequestID:      utils.RequestIDFromContext(ctx),
		PractitionerID: utils.PractitionerIDFromContext(ctx),
		Action:         string(action),
		SlotID:         slot.ID,
		StartTime:      slot.StartTime,
		EndTime:        slot.EndTime,
		Message:        message,
		OccurredAt:     uc.now().UTC(),
	}
	if err := uc.audits.InsertAudit(context.WithoutCancel(ctx), audit); err != nil {
		uc.logger.Warn("AvailabilityUsecase.recordAudit failed",
			zap.String(constvars.LoggingRequestIDKey, audit.RequestID),
			zap.Error(err),
		)
	}
}

// toggleFailure maps a failed create/delete to what the practitioner sees: the
// remote message verbatim when one was sent, otherwise the overlap fallback.
func toggleFailure(err error) *exceptions.CustomError {
	statusCode := constvars.StatusBadGateway
	message := constvars.ErrClientSlotOverlapFallback

	var remoteErr *exceptions.RemoteError
	var customErr *exceptions.CustomError
	switch {
	case errors.As(err, &remoteErr):
		if remoteErr.Message != "" {
			message = remoteErr.Message
		}
		if remoteErr.StatusCode >= constvars.StatusBadRequest && remoteErr.StatusCode < constvars.StatusInternalServerError {
			statusCode = remoteErr.StatusCode
		}
	case errors.As(err, &customErr):
		statusCode = customErr.StatusCode
	}
	return exceptions.ErrToggleRemoteFailure(err, statusCode, message)
}

func checkWeekOffset(weekOffset int) error {
	if weekOffset < -constvars.MaxWeekOffset || weekOffset > constvars.MaxWeekOffset {
		return exceptions.ErrWeekOffsetOutOfRange(nil, weekOffset)
	}
	return nil
}

func markLoading(days []models.DaySchedule, practitionerID string, inFlight map[string]struct{}) {
	if len(inFlight) == 0 {
		return
	}
	for d := range days {
		for s := range days[d].Slots {
			if days[d].Slots[s].Nonexistent {
				continue
			}
			_, busy := inFlight[LoadingKey(practitionerID, days[d].Slots[s].StartTime)]
			days[d].Slots[s].Loading = busy
		}
	}
}
