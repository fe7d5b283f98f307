package slotapi

import (
	"availability-service/internal/app/contracts"
	"availability-service/internal/app/models"
	"availability-service/internal/pkg/constvars"
	"availability-service/internal/pkg/dto/requests"
	"availability-service/internal/pkg/exceptions"
	"availability-service/internal/pkg/utils"
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/goccy/go-json"
	"go.uber.org/zap"
)

const (
	operationList   = "list"
	operationCreate = "create"
	operationDelete = "delete"
)

// envelope is the response wrapper used by every slot API endpoint.
type envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Error   string          `json:"error"`
	Data    json.RawMessage `json:"data"`
}

type slotAPIClient struct {
	BaseUrl    string
	HTTPClient *http.Client
	Log        *zap.Logger
}

func NewSlotAPIClient(baseUrl string, timeout time.Duration, logger *zap.Logger) contracts.SlotRemoteClient {
	return &slotAPIClient{
		BaseUrl:    strings.TrimRight(baseUrl, "/") + "/" + constvars.ResourceSlot,
		HTTPClient: &http.Client{Timeout: timeout},
		Log:        logger,
	}
}

func (c *slotAPIClient) ListSlots(ctx context.Context, accessToken string) ([]models.RemoteSlot, error) {
	requestID := utils.RequestIDFromContext(ctx)
	c.Log.Info("slotAPIClient.ListSlots called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingRemoteURLKey, c.BaseUrl),
	)

	req, err := c.newRequest(ctx, constvars.MethodGet, c.BaseUrl, accessToken, nil)
	if err != nil {
		return nil, err
	}

	var slots []models.RemoteSlot
	err = c.do(req, operationList, &slots)
	if err != nil {
		c.Log.Error("slotAPIClient.ListSlots error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	c.Log.Info("slotAPIClient.ListSlots succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.Int(constvars.LoggingSlotCountKey, len(slots)),
	)
	return slots, nil
}

func (c *slotAPIClient) CreateSlot(ctx context.Context, accessToken string, request *requests.RemoteSlotCreate) (*models.RemoteSlot, error) {
	requestID := utils.RequestIDFromContext(ctx)
	c.Log.Info("slotAPIClient.CreateSlot called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingSlotStartKey, request.StartTime),
	)

	requestJSON, err := json.Marshal(request)
	if err != nil {
		return nil, exceptions.ErrCannotMarshalJSON(err)
	}

	req, err := c.newRequest(ctx, constvars.MethodPost, c.BaseUrl, accessToken, bytes.NewBuffer(requestJSON))
	if err != nil {
		return nil, err
	}

	slot := new(models.RemoteSlot)
	err = c.do(req, operationCreate, slot)
	if err != nil {
		c.Log.Error("slotAPIClient.CreateSlot error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return nil, err
	}

	c.Log.Info("slotAPIClient.CreateSlot succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingSlotIDKey, slot.ID),
	)
	return slot, nil
}

func (c *slotAPIClient) DeleteSlot(ctx context.Context, accessToken, slotID string) error {
	requestID := utils.RequestIDFromContext(ctx)
	c.Log.Info("slotAPIClient.DeleteSlot called",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingSlotIDKey, slotID),
	)

	endpoint := fmt.Sprintf("%s/%s", c.BaseUrl, url.PathEscape(slotID))
	req, err := c.newRequest(ctx, constvars.MethodDelete, endpoint, accessToken, nil)
	if err != nil {
		return err
	}

	err = c.do(req, operationDelete, nil)
	if err != nil {
		c.Log.Error("slotAPIClient.DeleteSlot error",
			zap.String(constvars.LoggingRequestIDKey, requestID),
			zap.Error(err),
		)
		return err
	}

	c.Log.Info("slotAPIClient.DeleteSlot succeeded",
		zap.String(constvars.LoggingRequestIDKey, requestID),
		zap.String(constvars.LoggingSlotIDKey, slotID),
	)
	return nil
}

func (c *slotAPIClient) newRequest(ctx context.Context, method, endpoint, accessToken string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return nil, exceptions.ErrCreateHTTPRequest(err)
	}
	req.Header.Set(constvars.HeaderContentType, constvars.MIMEApplicationJSON)
	req.Header.Set(constvars.HeaderAccept, constvars.MIMEApplicationJSON)
	if accessToken != "" {
		req.Header.Set(constvars.HeaderAuthorization, constvars.BearerPrefix+accessToken)
	}
	if requestID := utils.RequestIDFromContext(ctx); requestID != "" {
		req.Header.Set(constvars.HeaderXRequestID, requestID)
	}
	return req, nil
}

// do sends the request and decodes the envelope data into out when out is not nil.
// Non 2xx answers and envelopes with success=false become a *exceptions.RemoteError
// carrying the remote message verbatim.
func (c *slotAPIClient) do(req *http.Request, operation string, out interface{}) error {
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		if errors.Is(err, context.DeadlineExceeded) {
			return exceptions.ErrServerDeadlineExceeded(err)
		}
		return exceptions.ErrSendHTTPRequest(err)
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return exceptions.ErrDecodeResponse(err, operation)
	}

	var result envelope
	var decodeErr error
	if len(bytes.TrimSpace(bodyBytes)) > 0 {
		decodeErr = json.Unmarshal(bodyBytes, &result)
	}

	if resp.StatusCode < constvars.StatusOK || resp.StatusCode >= 300 {
		return &exceptions.RemoteError{
			Operation:  operation,
			StatusCode: resp.StatusCode,
			Message:    remoteMessage(result, decodeErr),
		}
	}
	if decodeErr != nil {
		return exceptions.ErrDecodeResponse(decodeErr, operation)
	}
	if len(bodyBytes) > 0 && hasSuccessFalse(bodyBytes) {
		return &exceptions.RemoteError{
			Operation:  operation,
			StatusCode: resp.StatusCode,
			Message:    remoteMessage(result, nil),
		}
	}

	if out == nil || len(result.Data) == 0 || string(result.Data) == "null" {
		return nil
	}
	err = json.Unmarshal(result.Data, out)
	if err != nil {
		return exceptions.ErrDecodeResponse(err, operation)
	}
	return nil
}

func remoteMessage(result envelope, decodeErr error) string {
	if decodeErr != nil {
		return ""
	}
	if strings.TrimSpace(result.Message) != "" {
		return result.Message
	}
	return strings.TrimSpace(result.Error)
}

// hasSuccessFalse distinguishes an explicit "success": false from an omitted field.
func hasSuccessFalse(body []byte) bool {
	var envelope struct {
		Success *bool `json:"success"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return false
	}
	return envelope.Success != nil && !*envelope.Success
}
