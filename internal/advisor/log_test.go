package advisor

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/robalobadob/terraform-os/assets"
	"github.com/robalobadob/terraform-os/internal/db"
)

func newTestLog(t *testing.T) *Log {
	t.Helper()
	sqlDB, err := db.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name()))
	require.NoError(t, err)
	t.Cleanup(func() { _ = sqlDB.Close() })
	require.NoError(t, db.Migrate(sqlDB, assets.Migrations()))
	return NewLog(sqlDB)
}

func TestLog_RecentNewestFirst(t *testing.T) {
	ctx := context.Background()
	l := newTestLog(t)

	t0 := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		require.NoError(t, l.Record(ctx, Entry{
			Kind:      KindTactical,
			Input:     fmt.Sprintf("q%d", i),
			Response:  "r",
			CreatedAt: t0.Add(time.Duration(i) * time.Minute),
		}))
	}
	require.NoError(t, l.Record(ctx, Entry{Kind: KindSetup, Input: "setup", Response: SetupFailureText, Fallback: true, CreatedAt: t0.Add(time.Hour)}))

	got, err := l.Recent(ctx, 2)
	require.NoError(t, err)
	require.Len(t, got, 2)
	assert.Equal(t, "setup", got[0].Input)
	assert.True(t, got[0].Fallback)
	assert.Equal(t, KindSetup, got[0].Kind)
	assert.NotEmpty(t, got[0].ID)
	assert.True(t, got[0].CreatedAt.Equal(t0.Add(time.Hour)))
	assert.Equal(t, "q2", got[1].Input)
}

func TestLog_RecentDefaultLimit(t *testing.T) {
	ctx := context.Background()
	l := newTestLog(t)
	for i := 0; i < DefaultHistoryLimit+5; i++ {
		require.NoError(t, l.Record(ctx, Entry{Kind: KindTactical, Input: "q", Response: "r"}))
	}

	got, err := l.Recent(ctx, 0)
	require.NoError(t, err)
	assert.Len(t, got, DefaultHistoryLimit)
}

func TestLog_ServiceWritesThroughToSQLite(t *testing.T) {
	ctx := context.Background()
	l := newTestLog(t)
	svc := NewService(&stubGenerator{text: "go plants"}, WithRecorder(l))

	_, err := svc.SetupAnalysis(ctx, "Tharsis", "Helion", "")
	require.NoError(t, err)

	got, err := l.Recent(ctx, 10)
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, "go plants", got[0].Response)
	assert.Contains(t, got[0].Input, "Tharsis and Helion")
}

func TestLog_RecentRejectsBadTimestamp(t *testing.T) {
	ctx := context.Background()
	l := newTestLog(t)

	_, err := l.db.ExecContext(ctx, `
        INSERT INTO advice_log (id, kind, input, response, fallback, model, created_at)
        VALUES ('bad-row', 'tactical', 'q', 'r', 0, 'm', 'yesterday')`)
	require.NoError(t, err)

	_, err = l.Recent(ctx, 10)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "bad-row")
}
