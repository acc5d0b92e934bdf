package services

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"direct-chat-service/internal/mocks"
	"direct-chat-service/internal/models"
)

func TestIsFeatureActive(t *testing.T) {
	flags := new(mocks.FeatureFlagRepositoryMock)
	svc := NewFeatureService(flags)

	flags.On("Get", mock.Anything).Return(models.FeatureFlag{IsEnabled: true}, nil).Once()

	active, err := svc.IsFeatureActive(context.Background())
	require.NoError(t, err)
	assert.True(t, active)

	flags.On("Get", mock.Anything).Return(models.FeatureFlag{IsEnabled: false}, nil).Once()

	active, err = svc.IsFeatureActive(context.Background())
	require.NoError(t, err)
	assert.False(t, active)
	flags.AssertExpectations(t)
}

func TestIsFeatureActiveReadFailure(t *testing.T) {
	flags := new(mocks.FeatureFlagRepositoryMock)
	svc := NewFeatureService(flags)

	flags.On("Get", mock.Anything).Return(models.FeatureFlag{}, assert.AnError).Once()

	active, err := svc.IsFeatureActive(context.Background())
	require.Error(t, err)
	assert.False(t, active)
}

func TestSetFeatureStatusRecordsUpdater(t *testing.T) {
	flags := new(mocks.FeatureFlagRepositoryMock)
	svc := NewFeatureService(flags)
	admin := uuid.New()

	flags.On("Set", mock.Anything, false, &admin).
		Return(models.FeatureFlag{IsEnabled: false, UpdatedAt: time.Now().UTC(), UpdatedBy: &admin}, nil).Once()

	flag, err := svc.SetFeatureStatus(context.Background(), false, admin)
	require.NoError(t, err)
	assert.False(t, flag.IsEnabled)
	require.NotNil(t, flag.UpdatedBy)
	assert.Equal(t, admin, *flag.UpdatedBy)
	flags.AssertExpectations(t)
}
