package gcp

import (
	"context"
	"errors"
	"testing"
	"time"

	"cloud.google.com/go/secretmanager/apiv1/secretmanagerpb"
	"github.com/googleapis/gax-go/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

type fakeAccessor struct {
	data  map[string]string
	calls []string
	err   error
}

func (f *fakeAccessor) AccessSecretVersion(_ context.Context, req *secretmanagerpb.AccessSecretVersionRequest, _ ...gax.CallOption) (*secretmanagerpb.AccessSecretVersionResponse, error) {
	f.calls = append(f.calls, req.GetName())
	if f.err != nil {
		return nil, f.err
	}
	value, ok := f.data[req.GetName()]
	if !ok {
		return nil, errors.New("NotFound")
	}
	return &secretmanagerpb.AccessSecretVersionResponse{
		Name:    "projects/123/secrets/x/versions/7",
		Payload: &secretmanagerpb.SecretPayload{Data: []byte(value)},
	}, nil
}

func (f *fakeAccessor) Close() error { return nil }

func TestSecretManager_GetSecret(t *testing.T) {
	fake := &fakeAccessor{data: map[string]string{
		"projects/ufc-prod/secrets/ufc-merchants-m1-phrase/versions/latest": "s3cret",
	}}
	sm := newSecretManager(fake, "ufc-prod", time.Minute, zap.NewNop())

	secret, err := sm.GetSecret(context.Background(), "ufc/merchants/m1/phrase")
	require.NoError(t, err)
	assert.Equal(t, "s3cret", secret.Value)
	assert.Equal(t, "7", secret.Version)

	// second read is served from cache
	_, err = sm.GetSecret(context.Background(), "ufc/merchants/m1/phrase")
	require.NoError(t, err)
	assert.Len(t, fake.calls, 1)
}

func TestSecretManager_CacheExpiry(t *testing.T) {
	fake := &fakeAccessor{data: map[string]string{
		"projects/p/secrets/cert/versions/latest": "pem",
	}}
	sm := newSecretManager(fake, "p", time.Nanosecond, zap.NewNop())

	_, err := sm.GetSecret(context.Background(), "cert")
	require.NoError(t, err)
	time.Sleep(time.Millisecond)
	_, err = sm.GetSecret(context.Background(), "cert")
	require.NoError(t, err)
	assert.Len(t, fake.calls, 2)
}

func TestSecretManager_Error(t *testing.T) {
	fake := &fakeAccessor{err: errors.New("permission denied")}
	sm := newSecretManager(fake, "p", time.Minute, zap.NewNop())

	_, err := sm.GetSecret(context.Background(), "cert")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "permission denied")
}

func TestVersionName(t *testing.T) {
	sm := newSecretManager(&fakeAccessor{}, "p", time.Minute, zap.NewNop())

	tests := []struct {
		path string
		want string
	}{
		{"cert", "projects/p/secrets/cert/versions/latest"},
		{"ufc/merchants/m1/cert", "projects/p/secrets/ufc-merchants-m1-cert/versions/latest"},
		{"cert@3", "projects/p/secrets/cert/versions/3"},
		{"projects/other/secrets/cert", "projects/other/secrets/cert/versions/latest"},
		{"projects/other/secrets/cert/versions/2", "projects/other/secrets/cert/versions/2"},
	}
	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, sm.versionName(tt.path))
		})
	}
}
