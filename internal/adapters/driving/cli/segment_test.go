package cli

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"sync/atomic"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/rsvp-cli/internal/core/domain"
)

func TestSegmentCmd_Stdin(t *testing.T) {
	setupTestServices(t)

	stdout, stderr, err := execute(t, "今日は晴れです。明日は雨。", "segment")

	require.NoError(t, err)
	assert.Equal(t, "今日は晴れです。\n明日は雨。\n", stdout)
	assert.Empty(t, stderr)
}

func TestSegmentCmd_StdinDash(t *testing.T) {
	setupTestServices(t)

	stdout, _, err := execute(t, "吾輩は猫である。", "segment", "-")

	require.NoError(t, err)
	assert.Equal(t, "吾輩は猫である。\n", stdout)
}

func TestSegmentCmd_JSON(t *testing.T) {
	setupTestServices(t)

	t.Run("flat", func(t *testing.T) {
		stdout, _, err := execute(t, "一。二。", "segment", "--json")

		require.NoError(t, err)
		assert.JSONEq(t, `["一。", "二。"]`, stdout)
	})

	t.Run("with ids", func(t *testing.T) {
		stdout, _, err := execute(t, "一。二。", "segment", "--json", "--with-ids")

		require.NoError(t, err)
		assert.JSONEq(t, `[{"id": 0, "text": "一。"}, {"id": 1, "text": "二。"}]`, stdout)
	})
}

func TestSegmentCmd_File(t *testing.T) {
	setupTestServices(t)
	path := filepath.Join(t.TempDir(), "diary.md")
	require.NoError(t, os.WriteFile(path, []byte("# 日記\n\n今日は**晴れ**。"), 0o600))

	stdout, _, err := execute(t, "", "segment", path)

	require.NoError(t, err)
	assert.Contains(t, stdout, "今日は晴れ。")
	assert.NotContains(t, stdout, "**")
}

func TestSegmentCmd_MissingFile(t *testing.T) {
	setupTestServices(t)

	_, _, err := execute(t, "", "segment", filepath.Join(t.TempDir(), "missing.txt"))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read")
}

func TestSegmentCmd_Out(t *testing.T) {
	setupTestServices(t)
	out := filepath.Join(t.TempDir(), "rsvp-segments.json")

	stdout, stderr, err := execute(t, "一。二。", "segment", "--out", out)

	require.NoError(t, err)
	assert.Equal(t, "一。\n二。\n", stdout)
	assert.Contains(t, stderr, "Wrote 2 segments to "+out)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.JSONEq(t, `["一。", "二。"]`, string(data))
}

func TestSegmentCmd_EmptyResult(t *testing.T) {
	setupTestServices(t)

	stdout, stderr, err := execute(t, "。。", "segment")

	require.NoError(t, err)
	assert.Empty(t, stdout)
	assert.Contains(t, stderr, "Warning: could not extract meaningful segments from the text.")
}

func TestSegmentCmd_BlankInput(t *testing.T) {
	setupTestServices(t)

	_, _, err := execute(t, "  \n\t ", "segment")

	require.Error(t, err)
	assert.True(t, errors.Is(err, domain.ErrEmptyText))
	assert.Contains(t, err.Error(), "failed to segment stdin")
}

func TestSegmentCmd_Save(t *testing.T) {
	env := setupTestServices(t)

	_, stderr, err := execute(t, "今日は晴れです。", "segment", "--save", "--max", "12")
	require.NoError(t, err)

	docs, err := env.docStore.ListDocuments(context.Background())
	require.NoError(t, err)
	require.Len(t, docs, 1)
	assert.Contains(t, stderr, "Saved as "+docs[0].ID)
	assert.Equal(t, 12, docs[0].Settings.MaxSegmentChars)
	assert.Equal(t, 4, docs[0].Settings.MinJoinLength)

	stdout, _, err := execute(t, "", "document", "show", docs[0].ID)
	require.NoError(t, err)
	assert.Contains(t, stdout, "Settings: max 12, min join 4")
}

func TestSegmentCmd_WithoutSaveStoresNothing(t *testing.T) {
	env := setupTestServices(t)

	_, _, err := execute(t, "今日は晴れです。", "segment")
	require.NoError(t, err)

	docs, err := env.docStore.ListDocuments(context.Background())
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestSegmentCmd_WatchNeedsFile(t *testing.T) {
	setupTestServices(t)

	_, _, err := execute(t, "一。", "segment", "--watch")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "--watch needs a file path")
}

func TestSegmentCmd_WatchRejectsSave(t *testing.T) {
	env := setupTestServices(t)
	path := filepath.Join(t.TempDir(), "draft.txt")
	require.NoError(t, os.WriteFile(path, []byte("一。"), 0o600))

	_, _, err := execute(t, "", "segment", path, "--watch", "--save")

	require.Error(t, err)
	assert.Contains(t, err.Error(), "--save cannot be combined with --watch")

	docs, err := env.docStore.ListDocuments(context.Background())
	require.NoError(t, err)
	assert.Empty(t, docs)
}

func TestWatchFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "draft.txt")
	require.NoError(t, os.WriteFile(path, []byte("一。"), 0o600))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changed := make(chan struct{}, 1)
	done := make(chan error, 1)
	errOut := new(bytes.Buffer)
	go func() {
		done <- watchFile(ctx, path, func(change domain.ChangeType) error {
			if change == domain.ChangeDeleted {
				return nil
			}
			select {
			case changed <- struct{}{}:
			default:
			}
			return nil
		}, errOut)
	}()

	// Keep writing until the watcher has been registered and reports.
	ticker := time.NewTicker(50 * time.Millisecond)
	defer ticker.Stop()
	timeout := time.After(5 * time.Second)

loop:
	for {
		select {
		case <-changed:
			break loop
		case <-ticker.C:
			require.NoError(t, os.WriteFile(path, []byte("二。"), 0o600))
		case <-timeout:
			t.Fatal("no change reported")
		}
	}

	cancel()
	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(5 * time.Second):
		t.Fatal("watcher did not stop")
	}
}

func TestWatchFile_IgnoresOtherFiles(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "draft.txt")
	require.NoError(t, os.WriteFile(path, []byte("一。"), 0o600))

	ctx, cancel := context.WithTimeout(context.Background(), 600*time.Millisecond)
	defer cancel()

	var calls atomic.Int32
	go func() {
		for i := 0; i < 5; i++ {
			_ = os.WriteFile(filepath.Join(dir, "other.txt"), []byte("x"), 0o600)
			time.Sleep(50 * time.Millisecond)
		}
	}()

	err := watchFile(ctx, path, func(domain.ChangeType) error {
		calls.Add(1)
		return nil
	}, new(bytes.Buffer))

	require.NoError(t, err)
	assert.Zero(t, calls.Load())
}

func TestWatchFile_MissingDirectory(t *testing.T) {
	path := filepath.Join(t.TempDir(), "gone", "draft.txt")

	err := watchFile(context.Background(), path, func(domain.ChangeType) error { return nil }, new(bytes.Buffer))

	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to watch")
}

func TestChangeOf(t *testing.T) {
	tests := []struct {
		op     fsnotify.Op
		want   domain.ChangeType
		wantOK bool
	}{
		{fsnotify.Create, domain.ChangeCreated, true},
		{fsnotify.Write, domain.ChangeUpdated, true},
		{fsnotify.Create | fsnotify.Write, domain.ChangeCreated, true},
		{fsnotify.Remove, domain.ChangeDeleted, true},
		{fsnotify.Rename, domain.ChangeDeleted, true},
		{fsnotify.Chmod, 0, false},
	}

	for _, tt := range tests {
		t.Run(tt.op.String(), func(t *testing.T) {
			got, ok := changeOf(fsnotify.Event{Name: "draft.txt", Op: tt.op})
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestWatchFile_ReportsDeletion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "draft.txt")
	require.NoError(t, os.WriteFile(path, []byte("一。"), 0o600))

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	changes := make(chan domain.ChangeType, 8)
	go func() {
		_ = watchFile(ctx, path, func(change domain.ChangeType) error {
			changes <- change
			return nil
		}, new(bytes.Buffer))
	}()

	// Give the watcher time to register before removing the file.
	time.Sleep(200 * time.Millisecond)
	require.NoError(t, os.Remove(path))

	select {
	case change := <-changes:
		assert.Equal(t, domain.ChangeDeleted, change)
	case <-time.After(5 * time.Second):
		t.Fatal("deletion not reported")
	}
}

func TestOverrideFromFlags(t *testing.T) {
	t.Run("no flags", func(t *testing.T) {
		cmd := newFlagCmd()

		override, err := overrideFromFlags(cmd)

		require.NoError(t, err)
		assert.Nil(t, override.MaxSegmentChars)
		assert.Nil(t, override.MinJoinLength)
	})

	t.Run("only changed flags", func(t *testing.T) {
		cmd := newFlagCmd()
		require.NoError(t, cmd.Flags().Set("max", "20.5"))

		override, err := overrideFromFlags(cmd)

		require.NoError(t, err)
		require.NotNil(t, override.MaxSegmentChars)
		assert.InDelta(t, 20.5, *override.MaxSegmentChars, 1e-9)
		assert.Nil(t, override.MinJoinLength)
	})

	t.Run("explicit zero is kept", func(t *testing.T) {
		cmd := newFlagCmd()
		require.NoError(t, cmd.Flags().Set("min-join", "0"))

		override, err := overrideFromFlags(cmd)

		require.NoError(t, err)
		require.NotNil(t, override.MinJoinLength)
		assert.Zero(t, *override.MinJoinLength)
	})
}
