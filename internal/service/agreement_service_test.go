package service

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fleetrent/fleetrent/internal/domain"
)

func newAgreementFixture(t *testing.T) (*AgreementService, *MockCustomerRepository, *MockVehicleRepository, *MockAgreementRepository) {
	t.Helper()

	agreementRepo := NewMockAgreementRepository()
	customerRepo := NewMockCustomerRepository()
	vehicleRepo := NewMockVehicleRepository()
	svc := NewAgreementService(agreementRepo, customerRepo, vehicleRepo, zerolog.Nop())
	return svc, customerRepo, vehicleRepo, agreementRepo
}

func testAgreement(userID, customerID, vehicleID int64) *domain.Agreement {
	a := domain.NewAgreement(userID)
	a.RentType = "daily"
	a.AgreementNo = "AG-2026-001"
	a.DepositType = "cash"
	a.CheckinDate = domain.NewDate(2026, time.August, 1)
	a.CustomerID = customerID
	a.VehicleID = vehicleID
	return a
}

func TestAgreementService_Create(t *testing.T) {
	ctx := context.Background()
	svc, customerRepo, vehicleRepo, _ := newAgreementFixture(t)

	c := testCustomer(1)
	require.NoError(t, customerRepo.Create(ctx, c))
	v := testVehicle(1)
	require.NoError(t, vehicleRepo.Create(ctx, v))

	t.Run("success", func(t *testing.T) {
		a := testAgreement(1, c.ID, v.ID)
		require.NoError(t, svc.Create(ctx, a))
		assert.Equal(t, int64(1), a.ID)
	})

	t.Run("missing customer", func(t *testing.T) {
		a := testAgreement(1, 999, v.ID)
		err := svc.Create(ctx, a)
		assert.ErrorIs(t, err, domain.ErrInvalidCustomerRef)
	})

	t.Run("missing vehicle", func(t *testing.T) {
		a := testAgreement(1, c.ID, 999)
		err := svc.Create(ctx, a)
		assert.ErrorIs(t, err, domain.ErrInvalidVehicleRef)
	})

	t.Run("references may cross owners", func(t *testing.T) {
		otherCustomer := testCustomer(2)
		require.NoError(t, customerRepo.Create(ctx, otherCustomer))

		a := testAgreement(1, otherCustomer.ID, v.ID)
		assert.NoError(t, svc.Create(ctx, a))
	})
}

func TestAgreementService_Update(t *testing.T) {
	ctx := context.Background()
	svc, customerRepo, vehicleRepo, _ := newAgreementFixture(t)

	c := testCustomer(1)
	require.NoError(t, customerRepo.Create(ctx, c))
	v := testVehicle(1)
	require.NoError(t, vehicleRepo.Create(ctx, v))

	a := testAgreement(1, c.ID, v.ID)
	require.NoError(t, svc.Create(ctx, a))

	t.Run("set checkout date", func(t *testing.T) {
		checkout := domain.NewDate(2026, time.August, 15)
		a.CheckoutDate = &checkout
		require.NoError(t, svc.Update(ctx, 1, a))

		got, err := svc.Get(ctx, 1, a.ID)
		require.NoError(t, err)
		require.NotNil(t, got.CheckoutDate)
		assert.Equal(t, "2026-08-15", got.CheckoutDate.String())
	})

	t.Run("invalid reference rejected", func(t *testing.T) {
		broken := testAgreement(1, 999, v.ID)
		broken.ID = a.ID
		err := svc.Update(ctx, 1, broken)
		assert.ErrorIs(t, err, domain.ErrInvalidCustomerRef)
	})

	t.Run("other owner", func(t *testing.T) {
		foreign := testAgreement(2, c.ID, v.ID)
		foreign.ID = a.ID
		err := svc.Update(ctx, 2, foreign)
		assert.ErrorIs(t, err, domain.ErrAgreementNotFound)
	})
}

func TestAgreementService_Delete(t *testing.T) {
	ctx := context.Background()
	svc, customerRepo, vehicleRepo, _ := newAgreementFixture(t)

	c := testCustomer(1)
	require.NoError(t, customerRepo.Create(ctx, c))
	v := testVehicle(1)
	require.NoError(t, vehicleRepo.Create(ctx, v))

	a := testAgreement(1, c.ID, v.ID)
	require.NoError(t, svc.Create(ctx, a))

	_, err := svc.Get(ctx, 2, a.ID)
	assert.ErrorIs(t, err, domain.ErrAgreementNotFound)

	err = svc.Delete(ctx, 2, a.ID)
	assert.ErrorIs(t, err, domain.ErrAgreementNotFound)

	require.NoError(t, svc.Delete(ctx, 1, a.ID))
	_, err = svc.Get(ctx, 1, a.ID)
	assert.ErrorIs(t, err, domain.ErrAgreementNotFound)
}

func TestAgreementService_List(t *testing.T) {
	ctx := context.Background()
	svc, customerRepo, vehicleRepo, _ := newAgreementFixture(t)

	c := testCustomer(1)
	require.NoError(t, customerRepo.Create(ctx, c))
	v := testVehicle(1)
	require.NoError(t, vehicleRepo.Create(ctx, v))

	for i := 0; i < 2; i++ {
		require.NoError(t, svc.Create(ctx, testAgreement(1, c.ID, v.ID)))
	}
	require.NoError(t, svc.Create(ctx, testAgreement(2, c.ID, v.ID)))

	agreements, err := svc.List(ctx, 1)
	require.NoError(t, err)
	require.Len(t, agreements, 2)
	assert.Equal(t, int64(2), agreements[0].ID)
}
