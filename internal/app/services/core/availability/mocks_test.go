package availability

import (
	"availability-service/internal/app/models"
	"availability-service/internal/pkg/dto/requests"
	"context"
	"time"

	"github.com/stretchr/testify/mock"
)

type MockSlotRemoteClient struct {
	mock.Mock
}

func (m *MockSlotRemoteClient) ListSlots(ctx context.Context, accessToken string) ([]models.RemoteSlot, error) {
	args := m.Called(ctx, accessToken)
	slots, _ := args.Get(0).([]models.RemoteSlot)
	return slots, args.Error(1)
}

func (m *MockSlotRemoteClient) CreateSlot(ctx context.Context, accessToken string, request *requests.RemoteSlotCreate) (*models.RemoteSlot, error) {
	args := m.Called(ctx, accessToken, request)
	slot, _ := args.Get(0).(*models.RemoteSlot)
	return slot, args.Error(1)
}

func (m *MockSlotRemoteClient) DeleteSlot(ctx context.Context, accessToken, slotID string) error {
	args := m.Called(ctx, accessToken, slotID)
	return args.Error(0)
}

type MockSlotEventPublisher struct {
	mock.Mock
}

func (m *MockSlotEventPublisher) PublishSlotChanged(ctx context.Context, event *models.SlotChangedEvent) error {
	args := m.Called(ctx, event)
	return args.Error(0)
}

type MockStorage struct {
	mock.Mock
}

func (m *MockStorage) UploadJSON(ctx context.Context, body []byte, bucketName, objectName string) (string, error) {
	args := m.Called(ctx, body, bucketName, objectName)
	return args.String(0), args.Error(1)
}

func (m *MockStorage) GetObjectUrlWithExpiryTime(ctx context.Context, bucketName, objectName string, expiryTime time.Duration) (string, error) {
	args := m.Called(ctx, bucketName, objectName, expiryTime)
	return args.String(0), args.Error(1)
}

type MockAuditRepository struct {
	mock.Mock
}

func (m *MockAuditRepository) InsertAudit(ctx context.Context, audit *models.ToggleAudit) error {
	args := m.Called(ctx, audit)
	return args.Error(0)
}

func (m *MockAuditRepository) FindRecentByPractitionerID(ctx context.Context, practitionerID string, limit int) ([]models.ToggleAudit, error) {
	args := m.Called(ctx, practitionerID, limit)
	audits, _ := args.Get(0).([]models.ToggleAudit)
	return audits, args.Error(1)
}

type MockLockerService struct {
	mock.Mock
}

func (m *MockLockerService) TryLock(ctx context.Context, key string, expiration time.Duration) (bool, string, error) {
	args := m.Called(ctx, key, expiration)
	return args.Bool(0), args.String(1), args.Error(2)
}

func (m *MockLockerService) Unlock(ctx context.Context, key, lockValue string) error {
	args := m.Called(ctx, key, lockValue)
	return args.Error(0)
}

func (m *MockLockerService) Refresh(ctx context.Context, key, lockValue string, expiration time.Duration) error {
	args := m.Called(ctx, key, lockValue, expiration)
	return args.Error(0)
}

type MockRedisRepository struct {
	mock.Mock
}

func (m *MockRedisRepository) Delete(ctx context.Context, key string) error {
	args := m.Called(ctx, key)
	return args.Error(0)
}

func (m *MockRedisRepository) Set(ctx context.Context, key string, value interface{}, exp time.Duration) error {
	args := m.Called(ctx, key, value, exp)
	return args.Error(0)
}

func (m *MockRedisRepository) Get(ctx context.Context, key string) (string, error) {
	args := m.Called(ctx, key)
	return args.String(0), args.Error(1)
}

func (m *MockRedisRepository) TrySetNX(ctx context.Context, key string, value interface{}, exp time.Duration) (bool, error) {
	args := m.Called(ctx, key, value, exp)
	return args.Bool(0), args.Error(1)
}

func (m *MockRedisRepository) Expire(ctx context.Context, key string, exp time.Duration) error {
	args := m.Called(ctx, key, exp)
	return args.Error(0)
}

func (m *MockRedisRepository) ScanKeys(ctx context.Context, pattern string) ([]string, error) {
	args := m.Called(ctx, pattern)
	keys, _ := args.Get(0).([]string)
	return keys, args.Error(1)
}
