package collab

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"travelorbit/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestKindForStatus(t *testing.T) {
	assert.Equal(t, Unauthorized, kindForStatus(401))
	assert.Equal(t, Unauthorized, kindForStatus(403))
	assert.Equal(t, NotFound, kindForStatus(404))
	assert.Equal(t, Transient, kindForStatus(429))
	assert.Equal(t, Transient, kindForStatus(500))
	assert.Equal(t, Transient, kindForStatus(503))
	assert.Equal(t, ValidationFailed, kindForStatus(400))
	assert.Equal(t, ValidationFailed, kindForStatus(422))
}

func TestDoJSONMapsStatusToFailureKind(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/missing":
			http.Error(w, `{"detail": "no such deal"}`, http.StatusNotFound)
		case "/down":
			http.Error(w, `{"message": "overloaded"}`, http.StatusServiceUnavailable)
		default:
			w.Header().Set("Content-Type", "application/json")
			w.Write([]byte(`{"ok": true, "extra_field": "ignored"}`))
		}
	}))
	defer srv.Close()

	api := newAPIClient(srv.URL, zap.NewNop())
	ctx := context.Background()

	err := api.doJSON(ctx, "GET", "/missing", nil, nil)
	assert.Equal(t, NotFound, KindOf(err))

	err = api.doJSON(ctx, "GET", "/down", nil, nil)
	assert.Equal(t, Transient, KindOf(err))

	var out struct {
		OK bool `json:"ok"`
	}
	require.NoError(t, api.doJSON(ctx, "GET", "/fine", nil, &out))
	assert.True(t, out.OK, "unknown response fields are ignored")
}

func TestDoJSONUnreachableIsTransient(t *testing.T) {
	api := newAPIClient("http://127.0.0.1:1", zap.NewNop())
	err := api.doJSON(context.Background(), "GET", "/x", nil, nil)
	assert.Equal(t, Transient, KindOf(err))
}

func TestEmailLoginMapsNotFoundToNew(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/email/login/send-otp", r.URL.Path)
		http.Error(w, `{"detail": "User not found. Please sign up first."}`, http.StatusNotFound)
	}))
	defer srv.Close()

	svc := NewAuthService(srv.URL, zap.NewNop())
	status, err := svc.EmailLogin(context.Background(), "new@x.com")
	require.NoError(t, err)
	assert.Equal(t, EmailNew, status)
}

func TestEmailLoginExisting(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"message": "OTP sent"}`))
	}))
	defer srv.Close()

	svc := NewAuthService(srv.URL, zap.NewNop())
	status, err := svc.EmailLogin(context.Background(), "old@x.com")
	require.NoError(t, err)
	assert.Equal(t, EmailExisting, status)
}

func TestPaymentsVerifyRejectsNonSuccess(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status": "failed"}`))
	}))
	defer srv.Close()

	svc := NewPaymentsService(srv.URL, zap.NewNop())
	_, err := svc.VerifyPayment(context.Background(), "trip-1", models.PaymentProof{OrderID: "o1"})
	assert.Equal(t, Unauthorized, KindOf(err))
}
