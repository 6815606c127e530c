package services

import (
	"context"
	"fmt"

	"github.com/stretchr/testify/mock"

	"braindrive.ai/plugindev/internal/core/domain"
)

type MockAuthenticator struct {
	mock.Mock
}

func (m *MockAuthenticator) Login(ctx context.Context) (domain.AuthToken, error) {
	args := m.Called(ctx)
	return args.Get(0).(domain.AuthToken), args.Error(1)
}

func (m *MockAuthenticator) Account() string {
	return m.Called().String(0)
}

type MockPluginGateway struct {
	mock.Mock
}

func (m *MockPluginGateway) Install(ctx context.Context, token domain.AuthToken, archivePath string) (*domain.ServerResponse, error) {
	args := m.Called(ctx, token, archivePath)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ServerResponse), args.Error(1)
}

func (m *MockPluginGateway) Uninstall(ctx context.Context, token domain.AuthToken, slug string) (*domain.ServerResponse, error) {
	args := m.Called(ctx, token, slug)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ServerResponse), args.Error(1)
}

func (m *MockPluginGateway) InstallURL() string {
	return "http://api.test/api/v1/plugins/install"
}

func (m *MockPluginGateway) UninstallURL(slug string) string {
	return "http://api.test/api/v1/plugins/" + slug + "/uninstall"
}

type MockArchiveBuilder struct {
	mock.Mock
}

func (m *MockArchiveBuilder) Build(ctx context.Context, name, version string) (string, error) {
	args := m.Called(ctx, name, version)
	return args.String(0), args.Error(1)
}

// recordingReporter keeps every line the services report
type recordingReporter struct {
	steps     []string
	successes []string
	failures  []error
	responses []*domain.ServerResponse
}

func (r *recordingReporter) Step(format string, args ...any) {
	r.steps = append(r.steps, fmt.Sprintf(format, args...))
}

func (r *recordingReporter) Success(message string) { r.successes = append(r.successes, message) }

func (r *recordingReporter) Failure(_ string, err error) { r.failures = append(r.failures, err) }

func (r *recordingReporter) Response(resp *domain.ServerResponse) {
	r.responses = append(r.responses, resp)
}
