package flows

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/stockkeeper/internal/client/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHistoryViewer_OpenFetchesEveryTime(t *testing.T) {
	ts := time.Date(2024, 3, 1, 10, 0, 0, 0, time.UTC)
	api := &fakeAPI{HistoryRet: []models.HistoryRecord{
		{ID: "h1", ProductID: "p1", OldQuantity: 5, NewQuantity: 8, ChangeDate: ts},
	}}
	h := NewHistoryViewer(api)

	require.NoError(t, h.Open(context.Background(), widget))
	assert.True(t, h.IsOpen())
	assert.False(t, h.Empty())
	assert.Equal(t, widget, h.Product())
	require.Len(t, h.Records(), 1)
	assert.Equal(t, models.ChangeIncrease, h.Records()[0].Kind())

	h.Close()
	assert.False(t, h.IsOpen())
	assert.Empty(t, h.Records())

	require.NoError(t, h.Open(context.Background(), widget))
	assert.Equal(t, 2, api.HistoryCalls)
}

func TestHistoryViewer_Empty(t *testing.T) {
	h := NewHistoryViewer(&fakeAPI{})
	assert.False(t, h.Empty(), "nothing loaded yet")

	require.NoError(t, h.Open(context.Background(), widget))
	assert.True(t, h.Empty())
	assert.Empty(t, h.Err())
}

func TestHistoryViewer_Failure(t *testing.T) {
	boom := errors.New("boom")
	h := NewHistoryViewer(&fakeAPI{HistoryErr: boom})

	assert.ErrorIs(t, h.Open(context.Background(), widget), boom)
	assert.Equal(t, MsgHistoryFailed, h.Err())
	assert.False(t, h.Empty())
	assert.True(t, h.IsOpen())
}
