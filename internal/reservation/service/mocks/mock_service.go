package mocks

import (
	"context"

	"github.com/stretchr/testify/mock"

	"github.com/sleepr/sleepr/backend/go-services/internal/reservation"
	"github.com/sleepr/sleepr/backend/go-services/internal/reservation/service"
)

type MockService struct {
	mock.Mock
}

var _ service.Service = (*MockService)(nil)

func (m *MockService) Create(ctx context.Context, req reservation.CreateReservationRequest, userID string) (*reservation.ReservationDocument, error) {
	args := m.Called(ctx, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*reservation.ReservationDocument), args.Error(1)
}

func (m *MockService) FindAll(ctx context.Context, userID string) ([]reservation.ReservationDocument, error) {
	args := m.Called(ctx, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]reservation.ReservationDocument), args.Error(1)
}

func (m *MockService) FindOne(ctx context.Context, id string) (*reservation.ReservationDocument, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*reservation.ReservationDocument), args.Error(1)
}

func (m *MockService) Update(ctx context.Context, id string, req reservation.UpdateReservationRequest) (*reservation.ReservationDocument, error) {
	args := m.Called(ctx, id, req)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*reservation.ReservationDocument), args.Error(1)
}

func (m *MockService) Remove(ctx context.Context, id string) (*reservation.ReservationDocument, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*reservation.ReservationDocument), args.Error(1)
}
