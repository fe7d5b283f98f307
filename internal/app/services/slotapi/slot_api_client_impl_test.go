package slotapi

import (
	"availability-service/internal/pkg/constvars"
	"availability-service/internal/pkg/dto/requests"
	"availability-service/internal/pkg/exceptions"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestClient(t *testing.T, handler http.HandlerFunc) *slotAPIClient {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	return NewSlotAPIClient(server.URL+"/", 5*time.Second, zap.NewNop()).(*slotAPIClient)
}

func testContext() context.Context {
	return context.WithValue(context.Background(), constvars.CONTEXT_REQUEST_ID_KEY, "req-1")
}

func TestSlotAPIClient_ListSlots(t *testing.T) {
	t.Run("Decodes the envelope and forwards credentials", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodGet, r.Method)
			assert.Equal(t, "/slots", r.URL.Path)
			assert.Equal(t, "Bearer token-1", r.Header.Get("Authorization"))
			assert.Equal(t, "req-1", r.Header.Get("X-Request-ID"))
			w.Header().Set("Content-Type", "application/json")
			_, _ = io.WriteString(w, `{"success":true,"data":[
				{"id":"s1","startTime":"2024-05-15T09:00:00.000Z","endTime":"2024-05-15T09:15:00.000Z","isBooked":false,"duration":15},
				{"id":"s2","startTime":"2024-05-15T09:15:00.000Z","endTime":"2024-05-15T09:30:00.000Z","isBooked":true,"duration":15}
			]}`)
		})

		slots, err := client.ListSlots(testContext(), "token-1")
		require.NoError(t, err)

		require.Len(t, slots, 2)
		assert.Equal(t, "s1", slots[0].ID)
		assert.True(t, time.Date(2024, time.May, 15, 9, 0, 0, 0, time.UTC).Equal(slots[0].StartTime))
		assert.True(t, slots[1].IsBooked)
		assert.Equal(t, 15, slots[1].Duration)
	})

	t.Run("Empty data", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = io.WriteString(w, `{"success":true,"data":null}`)
		})

		slots, err := client.ListSlots(testContext(), "token-1")
		require.NoError(t, err)
		assert.Empty(t, slots)
	})

	t.Run("Unauthorized", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = io.WriteString(w, `{"success":false,"message":"Invalid token"}`)
		})

		_, err := client.ListSlots(testContext(), "expired")

		var remoteErr *exceptions.RemoteError
		require.ErrorAs(t, err, &remoteErr)
		assert.Equal(t, http.StatusUnauthorized, remoteErr.StatusCode)
		assert.Equal(t, "Invalid token", remoteErr.Message)
		assert.Equal(t, "list", remoteErr.Operation)
	})

	t.Run("Malformed body", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = io.WriteString(w, `<html>oops</html>`)
		})

		_, err := client.ListSlots(testContext(), "token-1")

		var customErr *exceptions.CustomError
		require.ErrorAs(t, err, &customErr)
		assert.Equal(t, constvars.StatusBadGateway, customErr.StatusCode)
	})

	t.Run("Deadline exceeded", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			select {
			case <-r.Context().Done():
			case <-time.After(2 * time.Second):
			}
		})
		ctx, cancel := context.WithTimeout(testContext(), 50*time.Millisecond)
		defer cancel()

		_, err := client.ListSlots(ctx, "token-1")

		var customErr *exceptions.CustomError
		require.ErrorAs(t, err, &customErr)
		assert.Equal(t, constvars.StatusGatewayTimeout, customErr.StatusCode)
	})

	t.Run("Unreachable server", func(t *testing.T) {
		server := httptest.NewServer(http.NotFoundHandler())
		server.Close()
		client := NewSlotAPIClient(server.URL, time.Second, zap.NewNop())

		_, err := client.ListSlots(testContext(), "token-1")

		var customErr *exceptions.CustomError
		require.ErrorAs(t, err, &customErr)
		assert.Equal(t, constvars.StatusBadGateway, customErr.StatusCode)
		var remoteErr *exceptions.RemoteError
		assert.False(t, errors.As(err, &remoteErr))
	})
}

func TestSlotAPIClient_CreateSlot(t *testing.T) {
	request := &requests.RemoteSlotCreate{
		Date:      "2024-05-15T00:00:00.000Z",
		StartTime: "2024-05-15T09:00:00.000Z",
		EndTime:   "2024-05-15T09:15:00.000Z",
		Duration:  15,
	}

	t.Run("Posts the body and returns the created slot", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/slots", r.URL.Path)
			var body map[string]interface{}
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "2024-05-15T00:00:00.000Z", body["date"])
			assert.Equal(t, "2024-05-15T09:00:00.000Z", body["startTime"])
			assert.Equal(t, "2024-05-15T09:15:00.000Z", body["endTime"])
			assert.Equal(t, float64(15), body["duration"])

			w.WriteHeader(http.StatusCreated)
			_, _ = io.WriteString(w, `{"success":true,"data":{"id":"s1","startTime":"2024-05-15T09:00:00.000Z","endTime":"2024-05-15T09:15:00.000Z","isBooked":false,"duration":15}}`)
		})

		slot, err := client.CreateSlot(testContext(), "token-1", request)
		require.NoError(t, err)

		assert.Equal(t, "s1", slot.ID)
		assert.False(t, slot.IsBooked)
	})

	t.Run("Overlap rejection carries the remote message", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusConflict)
			_, _ = io.WriteString(w, `{"success":false,"message":"Slot overlaps with an existing appointment"}`)
		})

		_, err := client.CreateSlot(testContext(), "token-1", request)

		var remoteErr *exceptions.RemoteError
		require.ErrorAs(t, err, &remoteErr)
		assert.Equal(t, http.StatusConflict, remoteErr.StatusCode)
		assert.Equal(t, "Slot overlaps with an existing appointment", remoteErr.Message)
	})

	t.Run("Error field is used when message is empty", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = io.WriteString(w, `{"success":false,"error":"duration must be positive"}`)
		})

		_, err := client.CreateSlot(testContext(), "token-1", request)

		var remoteErr *exceptions.RemoteError
		require.ErrorAs(t, err, &remoteErr)
		assert.Equal(t, "duration must be positive", remoteErr.Message)
	})

	t.Run("Success false on a 200", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			_, _ = io.WriteString(w, `{"success":false,"message":"Practitioner is on leave"}`)
		})

		_, err := client.CreateSlot(testContext(), "token-1", request)

		var remoteErr *exceptions.RemoteError
		require.ErrorAs(t, err, &remoteErr)
		assert.Equal(t, http.StatusOK, remoteErr.StatusCode)
		assert.Equal(t, "Practitioner is on leave", remoteErr.Message)
	})

	t.Run("Server error without a body", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		})

		_, err := client.CreateSlot(testContext(), "token-1", request)

		var remoteErr *exceptions.RemoteError
		require.ErrorAs(t, err, &remoteErr)
		assert.Empty(t, remoteErr.Message)
	})
}

func TestSlotAPIClient_DeleteSlot(t *testing.T) {
	t.Run("Deletes by id", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodDelete, r.Method)
			assert.Equal(t, "/slots/s1", r.URL.Path)
			_, _ = io.WriteString(w, `{"success":true,"message":"Slot deleted"}`)
		})

		assert.NoError(t, client.DeleteSlot(testContext(), "token-1", "s1"))
	})

	t.Run("No content", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNoContent)
		})

		assert.NoError(t, client.DeleteSlot(testContext(), "token-1", "s1"))
	})

	t.Run("Not found", func(t *testing.T) {
		client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusNotFound)
			_, _ = io.WriteString(w, `{"success":false,"message":"Slot not found"}`)
		})

		err := client.DeleteSlot(testContext(), "token-1", "missing")

		var remoteErr *exceptions.RemoteError
		require.ErrorAs(t, err, &remoteErr)
		assert.Equal(t, "delete", remoteErr.Operation)
		assert.Equal(t, "Slot not found", remoteErr.Message)
	})
}
