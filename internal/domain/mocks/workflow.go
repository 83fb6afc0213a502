// Package mocks provides testify mocks for the domain interfaces.
package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"entfix.dev/pkg/entfix/internal/domain"
)

// MockWorkflow is a testify mock of domain.Workflow.
type MockWorkflow struct {
	mock.Mock
}

// NewMockWorkflow creates a MockWorkflow that registers its expectations
// check as a test cleanup.
func NewMockWorkflow(t interface {
	mock.TestingT
	Cleanup(func())
}) *MockWorkflow {
	m := &MockWorkflow{}
	m.Mock.Test(t)

	t.Cleanup(func() { m.AssertExpectations(t) })

	return m
}

// Migrate implements domain.Workflow.
func (m *MockWorkflow) Migrate(ctx context.Context, args domain.MigrateArgs) error {
	ret := m.Called(ctx, args)
	return ret.Error(0)
}

// Estimate implements domain.Workflow.
func (m *MockWorkflow) Estimate(ctx context.Context, args domain.EstimateArgs) error {
	ret := m.Called(ctx, args)
	return ret.Error(0)
}

// Scan implements domain.Workflow.
func (m *MockWorkflow) Scan(ctx context.Context, args domain.ScanArgs) error {
	ret := m.Called(ctx, args)
	return ret.Error(0)
}

// View implements domain.Workflow.
func (m *MockWorkflow) View(ctx context.Context, args domain.ViewArgs) error {
	ret := m.Called(ctx, args)
	return ret.Error(0)
}
