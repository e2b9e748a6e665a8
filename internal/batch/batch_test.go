package batch

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/svinnstopuf-svg/Svinnstop2-sub000/internal/scan"
	"github.com/svinnstopuf-svg/Svinnstop2-sub000/internal/testutil"
)

var receiptText = "ICA KVANTUM\nMJÖLK ARLA 15.90 kr\nBANANER KLASS 1 12.90 kr"

func writeReceiptImages(t *testing.T, dir string, names ...string) {
	t.Helper()
	frame := testutil.ReceiptFrame([]string{"MJÖLK 15.90"}, 200)
	for _, name := range names {
		testutil.SaveFrame(t, frame, filepath.Join(dir, name))
	}
}

func newBatchScanner(t *testing.T, engine *testutil.FakeEngine) *scan.Scanner {
	t.Helper()
	s, err := scan.NewBuilder().WithEngine(engine).Build()
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestProcessBatch(t *testing.T) {
	dir := t.TempDir()
	writeReceiptImages(t, dir, "a.png", "b.png", "c.png")

	scanner := newBatchScanner(t, &testutil.FakeEngine{Default: receiptText})

	cfg := DefaultConfig()
	cfg.Workers = 2
	got, err := ProcessBatch(context.Background(), scanner, []string{dir}, cfg)
	require.NoError(t, err)

	assert.Equal(t, 2, got.WorkerCount)
	assert.Zero(t, got.Failed)
	require.Len(t, got.Files, 3)

	// Results preserve discovery order regardless of worker scheduling.
	assert.Equal(t, "a.png", filepath.Base(got.Files[0].Path))
	assert.Equal(t, "b.png", filepath.Base(got.Files[1].Path))
	assert.Equal(t, "c.png", filepath.Base(got.Files[2].Path))

	for _, f := range got.Files {
		require.NoError(t, f.Err)
		assert.Len(t, f.Receipt.Products, 2)
		assert.Equal(t, "ICA", f.Receipt.Vendor)
	}
}

func TestProcessBatch_NoFiles(t *testing.T) {
	scanner := newBatchScanner(t, &testutil.FakeEngine{})
	_, err := ProcessBatch(context.Background(), scanner, []string{t.TempDir()}, DefaultConfig())
	assert.Error(t, err)
}

func TestProcessBatch_ContinueOnError(t *testing.T) {
	dir := t.TempDir()
	writeReceiptImages(t, dir, "good.png")
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.png"), []byte("not a png"), 0o600))

	scanner := newBatchScanner(t, &testutil.FakeEngine{Default: receiptText})

	cfg := DefaultConfig()
	got, err := ProcessBatch(context.Background(), scanner, []string{dir}, cfg)
	require.NoError(t, err)

	assert.Equal(t, 1, got.Failed)
	require.Len(t, got.Files, 2)
	for _, f := range got.Files {
		if filepath.Base(f.Path) == "broken.png" {
			assert.Error(t, f.Err)
			assert.NotEmpty(t, f.Error)
		} else {
			assert.NoError(t, f.Err)
		}
	}
}

func TestProcessBatch_StopOnFirstError(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "broken.png"), []byte("not a png"), 0o600))
	writeReceiptImages(t, dir, "good.png")

	scanner := newBatchScanner(t, &testutil.FakeEngine{Default: receiptText})

	cfg := DefaultConfig()
	cfg.ContinueOnError = false
	cfg.Workers = 1
	_, err := ProcessBatch(context.Background(), scanner, []string{dir}, cfg)
	assert.Error(t, err)
}

func TestProcessBatch_EngineFailure(t *testing.T) {
	dir := t.TempDir()
	writeReceiptImages(t, dir, "a.png")

	scanner := newBatchScanner(t, &testutil.FakeEngine{FailAll: errors.New("crashed")})

	got, err := ProcessBatch(context.Background(), scanner, []string{dir}, DefaultConfig())
	require.NoError(t, err)
	assert.Equal(t, 1, got.Failed)
}

func TestProcessBatch_Cancelled(t *testing.T) {
	dir := t.TempDir()
	writeReceiptImages(t, dir, "a.png", "b.png")

	scanner := newBatchScanner(t, &testutil.FakeEngine{Default: receiptText})

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := ProcessBatch(ctx, scanner, []string{dir}, DefaultConfig())
	assert.ErrorIs(t, err, context.Canceled)
}
