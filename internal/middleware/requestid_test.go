package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
)

func runRequestID(t *testing.T, req *http.Request) (ctxID, headerID string) {
	t.Helper()
	rec := httptest.NewRecorder()
	RequestID(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctxID = RequestIDFromContext(r.Context())
	})).ServeHTTP(rec, req)
	return ctxID, rec.Header().Get("X-Request-ID")
}

func TestRequestIDHonorsInboundUUID(t *testing.T) {
	inbound := uuid.NewString()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", inbound)

	ctxID, headerID := runRequestID(t, req)
	if ctxID != inbound || headerID != inbound {
		t.Fatalf("inbound id not threaded through: ctx=%q header=%q", ctxID, headerID)
	}
}

func TestRequestIDReplacesNonUUID(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("X-Request-ID", "not-a-uuid\nwith-newline")

	ctxID, headerID := runRequestID(t, req)
	if ctxID != headerID {
		t.Fatalf("context and header disagree: %q vs %q", ctxID, headerID)
	}
	if _, err := uuid.Parse(ctxID); err != nil {
		t.Fatalf("replacement id is not a uuid: %q", ctxID)
	}
}
