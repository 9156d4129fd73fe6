package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"files-manager-api/internal/application/ports"
	"files-manager-api/internal/application/services"
	"files-manager-api/internal/domain/file"
	"files-manager-api/internal/domain/user"
	"files-manager-api/internal/interface/api/rest/middleware"
)

const testToken = "valid-token"

var testUserID = uuid.MustParse("11111111-1111-1111-1111-111111111111")

// FakeAuthService resolves testToken to testUserID unless AuthenticateFunc is set.
type FakeAuthService struct {
	ConnectFunc      func(ctx context.Context, email, password string) (string, error)
	DisconnectFunc   func(ctx context.Context, token string) error
	AuthenticateFunc func(ctx context.Context, token string) (user.UUID, error)
}

func (f *FakeAuthService) Connect(ctx context.Context, email, password string) (string, error) {
	if f.ConnectFunc == nil {
		return "", errors.New("not used")
	}
	return f.ConnectFunc(ctx, email, password)
}
func (f *FakeAuthService) Disconnect(ctx context.Context, token string) error {
	if f.DisconnectFunc == nil {
		return errors.New("not used")
	}
	return f.DisconnectFunc(ctx, token)
}
func (f *FakeAuthService) Authenticate(ctx context.Context, token string) (user.UUID, error) {
	if f.AuthenticateFunc != nil {
		return f.AuthenticateFunc(ctx, token)
	}
	if token == testToken {
		return testUserID, nil
	}
	return uuid.Nil, services.ErrUnauthorized
}

type FakeUserService struct {
	FindUserByIDFunc func(ctx context.Context, id user.UUID) (*user.User, error)
	CreateUserFunc   func(ctx context.Context, email, password string) (*user.User, error)
}

func (f *FakeUserService) FindUserByID(ctx context.Context, id user.UUID) (*user.User, error) {
	if f.FindUserByIDFunc == nil {
		return nil, errors.New("not used")
	}
	return f.FindUserByIDFunc(ctx, id)
}
func (f *FakeUserService) CreateUser(ctx context.Context, email, password string) (*user.User, error) {
	if f.CreateUserFunc == nil {
		return nil, errors.New("not used")
	}
	return f.CreateUserFunc(ctx, email, password)
}

type FakeFileService struct {
	UploadFunc    func(ctx context.Context, ownerID uuid.UUID, in file.Upload) (*file.File, error)
	FindFileFunc  func(ctx context.Context, ownerID, id uuid.UUID) (*file.File, error)
	FindFilesFunc func(ctx context.Context, ownerID uuid.UUID, parent file.ParentRef, page int) (file.Files, error)
	SetPublicFunc func(ctx context.Context, ownerID, id uuid.UUID, isPublic bool) (*file.File, error)
}

func (f *FakeFileService) Upload(ctx context.Context, ownerID uuid.UUID, in file.Upload) (*file.File, error) {
	if f.UploadFunc == nil {
		return nil, errors.New("not used")
	}
	return f.UploadFunc(ctx, ownerID, in)
}
func (f *FakeFileService) FindFile(ctx context.Context, ownerID, id uuid.UUID) (*file.File, error) {
	if f.FindFileFunc == nil {
		return nil, errors.New("not used")
	}
	return f.FindFileFunc(ctx, ownerID, id)
}
func (f *FakeFileService) FindFiles(ctx context.Context, ownerID uuid.UUID, parent file.ParentRef, page int) (file.Files, error) {
	if f.FindFilesFunc == nil {
		return nil, errors.New("not used")
	}
	return f.FindFilesFunc(ctx, ownerID, parent, page)
}
func (f *FakeFileService) SetPublic(ctx context.Context, ownerID, id uuid.UUID, isPublic bool) (*file.File, error) {
	if f.SetPublicFunc == nil {
		return nil, errors.New("not used")
	}
	return f.SetPublicFunc(ctx, ownerID, id, isPublic)
}

type FakeServingService struct {
	ContentFunc func(ctx context.Context, id uuid.UUID, caller *uuid.UUID) ([]byte, string, error)
}

func (f *FakeServingService) Content(ctx context.Context, id uuid.UUID, caller *uuid.UUID) ([]byte, string, error) {
	if f.ContentFunc == nil {
		return nil, "", errors.New("not used")
	}
	return f.ContentFunc(ctx, id, caller)
}

type FakeStatusService struct {
	StatusFunc func(ctx context.Context) ports.Status
	StatsFunc  func(ctx context.Context) (ports.Stats, error)
}

func (f *FakeStatusService) Status(ctx context.Context) ports.Status {
	if f.StatusFunc == nil {
		return ports.Status{}
	}
	return f.StatusFunc(ctx)
}
func (f *FakeStatusService) Stats(ctx context.Context) (ports.Stats, error) {
	if f.StatsFunc == nil {
		return ports.Stats{}, errors.New("not used")
	}
	return f.StatsFunc(ctx)
}

func newTestEngine(t *testing.T) (*gin.Engine, *zap.Logger) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	return gin.New(), zap.NewNop()
}

func authHeader() map[string]string {
	return map[string]string{middleware.HeaderToken: testToken}
}

func doReq(t *testing.T, r *gin.Engine, method, path string, body any, headers map[string]string) *httptest.ResponseRecorder {
	t.Helper()

	var buf *bytes.Reader
	switch v := body.(type) {
	case nil:
		buf = bytes.NewReader(nil)
	case string:
		buf = bytes.NewReader([]byte(v))
	default:
		b, err := json.Marshal(v)
		require.NoError(t, err)
		buf = bytes.NewReader(b)
	}

	req, err := http.NewRequest(method, path, buf)
	require.NoError(t, err)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr
}

func decodeBody(t *testing.T, rr *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var out map[string]any
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &out))
	return out
}
