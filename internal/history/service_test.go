package history

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestService_Record(t *testing.T) {
	repo := NewMemoryRepository()
	service := NewService(ServiceConfig{
		Repo:   repo,
		Now:    func() time.Time { return time.Date(2024, 8, 7, 12, 0, 0, 0, time.UTC) },
		Logger: zerolog.Nop(),
	})

	selection, err := service.Record(context.Background(), RecordInput{
		ItineraryID:    "itin-1",
		Label:          "WALK & TRANSIT",
		ElapsedSeconds: 900,
		TravelSeconds:  840,
		SourceKey:      "routes_csv/journey_plan_2024-08-07_11-43.csv",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, selection.ID)
	assert.Equal(t, "WALK & TRANSIT", selection.Label)

	recent, err := service.Recent(context.Background(), 10)
	require.NoError(t, err)
	require.Len(t, recent, 1)
	assert.Equal(t, selection.ID, recent[0].ID)
}

func TestService_RecentNewestFirst(t *testing.T) {
	repo := NewMemoryRepository()
	now := time.Date(2024, 8, 7, 12, 0, 0, 0, time.UTC)
	service := NewService(ServiceConfig{
		Repo: repo,
		Now: func() time.Time {
			now = now.Add(time.Minute)
			return now
		},
		Logger: zerolog.Nop(),
	})

	for _, label := range []string{"WALK", "TRANSIT", "WALK & TRANSIT"} {
		_, err := service.Record(context.Background(), RecordInput{
			ItineraryID: "itin",
			Label:       label,
		})
		require.NoError(t, err)
	}

	recent, err := service.Recent(context.Background(), 2)
	require.NoError(t, err)
	require.Len(t, recent, 2)
	assert.Equal(t, "WALK & TRANSIT", recent[0].Label)
	assert.Equal(t, "TRANSIT", recent[1].Label)
}
