package service

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"slices"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/anthanhphan/go-media-transfer/internal/uploader/config"
	"github.com/anthanhphan/go-media-transfer/internal/uploader/domain"
	"github.com/anthanhphan/go-media-transfer/internal/uploader/port"
	"github.com/anthanhphan/go-media-transfer/internal/uploader/service/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

type testDeps struct {
	transcoder *mocks.MockTranscoder
	receiver   *mocks.MockChunkReceiver
	finalizer  *mocks.MockFinalizer
}

func newTestUploadService(t *testing.T, ctrl *gomock.Controller, transcoder port.Transcoder, mutate func(cfg *config.Config)) (*UploadServiceImpl, testDeps) {
	t.Helper()

	cfg := config.DefaultConfig()
	if mutate != nil {
		mutate(cfg)
	}

	deps := testDeps{
		transcoder: mocks.NewMockTranscoder(ctrl),
		receiver:   mocks.NewMockChunkReceiver(ctrl),
		finalizer:  mocks.NewMockFinalizer(ctrl),
	}
	if transcoder == nil {
		transcoder = deps.transcoder
	}

	svc := NewUploadService(cfg, transcoder, deps.receiver, deps.finalizer)

	var seq atomic.Int32
	svc.newUploadID = func() string {
		return fmt.Sprintf("upload-%d", seq.Add(1)-1)
	}
	return svc, deps
}

// chunkLog records received parts and fails the test on overlapping calls.
type chunkLog struct {
	mu       sync.Mutex
	inFlight atomic.Int32
	parts    map[string][][]byte
	order    []string
}

func newChunkLog() *chunkLog {
	return &chunkLog{parts: make(map[string][][]byte)}
}

func (l *chunkLog) receive(t *testing.T) func(context.Context, port.ChunkUpload, port.ProgressFunc) error {
	return func(_ context.Context, chunk port.ChunkUpload, onProgress port.ProgressFunc) error {
		if l.inFlight.Add(1) != 1 {
			t.Errorf("chunk %s dispatched while another chunk was in flight", chunk.Descriptor)
		}
		defer l.inFlight.Add(-1)

		data, err := io.ReadAll(chunk.Payload)
		if err != nil {
			return err
		}
		total := int64(len(data))
		onProgress(total/2, total)
		onProgress(total, total)

		l.mu.Lock()
		defer l.mu.Unlock()
		id := chunk.Descriptor.UploadID
		if got := len(l.parts[id]); got != chunk.Descriptor.PartNumber {
			t.Errorf("upload %s: part %d arrived after %d parts", id, chunk.Descriptor.PartNumber, got)
		}
		l.parts[id] = append(l.parts[id], data)
		l.order = append(l.order, fmt.Sprintf("%s#%d", id, chunk.Descriptor.PartNumber))
		return nil
	}
}

func (l *chunkLog) assembled(uploadID string) []byte {
	l.mu.Lock()
	defer l.mu.Unlock()
	return bytes.Join(l.parts[uploadID], nil)
}

func payload(size int) []byte {
	data := make([]byte, size)
	for i := range data {
		data[i] = byte(i % 251)
	}
	return data
}

// percentRecorder captures per-file percentages from every published state.
func percentRecorder(svc *UploadServiceImpl, file int) (*[]int, *[]domain.Phase) {
	var percents []int
	var phases []domain.Phase
	svc.Subscribe(func(s domain.AggregateState) {
		if file < len(s.Files) {
			percents = append(percents, s.Files[file].Percent)
			if n := len(phases); n == 0 || phases[n-1] != s.Files[file].Status {
				phases = append(phases, s.Files[file].Status)
			}
		}
	})
	return &percents, &phases
}

func assertNonDecreasing(t *testing.T, values []int) {
	t.Helper()
	for i := 1; i < len(values); i++ {
		if values[i] < values[i-1] {
			t.Fatalf("percentage went backward at %d: %v", i, values)
		}
	}
}

func TestUploadService_SingleFileWithoutTranscode(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, deps := newTestUploadService(t, ctrl, nil, nil)
	log := newChunkLog()
	percents, phases := percentRecorder(svc, 0)

	data := payload(10 * mib)
	deps.receiver.EXPECT().SendChunk(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(log.receive(t)).Times(3)
	deps.finalizer.EXPECT().
		Finalize(gomock.Any(), port.FinalizeRequest{
			UploadID:    "upload-0",
			TotalParts:  3,
			GroupID:     "lesson-1",
			FileName:    "talk.mp3",
			ContentType: "audio/mpeg",
			FileSize:    int64(len(data)),
			SortOrder:   0,
		}).
		Return("https://cdn.example.com/groups/lesson-1/talk.mp3", nil)

	urls, err := svc.UploadBatch(context.Background(), "lesson-1", []port.BatchItem{
		{File: domain.NewMemoryFile("talk.mp3", "audio/mpeg", data), TranscodeEnabled: false},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"https://cdn.example.com/groups/lesson-1/talk.mp3"}, urls)

	assert.Equal(t, []string{"upload-0#0", "upload-0#1", "upload-0#2"}, log.order)
	assert.Equal(t, data, log.assembled("upload-0"))

	snap := svc.Snapshot()
	assert.Equal(t, domain.BatchComplete, snap.Status)
	assert.Equal(t, 100, snap.OverallPercent)
	assert.Equal(t, domain.PhaseComplete, snap.Files[0].Status)

	assertNonDecreasing(t, *percents)
	assert.Equal(t, 100, (*percents)[len(*percents)-1])
	idx := slices.Index(*percents, 100)
	require.Positive(t, idx)
	assert.Equal(t, 90, (*percents)[idx-1], "transfer band ends at 90, finalize jumps to 100")
	assert.Equal(t, []domain.Phase{domain.PhaseIdle, domain.PhaseUploading, domain.PhaseComplete}, *phases)
}

func TestUploadService_LosslessFileIsTranscoded(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	loader := mocks.NewMockRuntimeLoader(ctrl)
	runtime := mocks.NewMockCodecRuntime(ctrl)
	engine, _ := newTestEngine(t, loader)

	svc, deps := newTestUploadService(t, ctrl, engine, func(cfg *config.Config) {
		cfg.App.ChunkSize = 4
	})
	log := newChunkLog()
	percents, phases := percentRecorder(svc, 0)

	encoded := []byte("ID3-mp3-frames")
	loader.EXPECT().Load(gomock.Any()).Return(runtime, nil)
	runtime.EXPECT().
		Encode(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, job port.EncodeJob, onProgress func(int)) error {
			assert.Equal(t, 48, job.BitrateKbps)
			assert.Equal(t, 24000, job.SampleRate)
			assert.Equal(t, 1, job.Channels)
			for _, p := range []int{10, 50, 90} {
				onProgress(p)
			}
			return writeOutput(encoded)(context.Background(), job, func(int) {})
		})

	deps.receiver.EXPECT().SendChunk(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(log.receive(t)).Times(4)
	deps.finalizer.EXPECT().
		Finalize(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req port.FinalizeRequest) (string, error) {
			assert.Equal(t, "lecture.mp3", req.FileName)
			assert.Equal(t, "audio/mpeg", req.ContentType)
			assert.Equal(t, int64(len(encoded)), req.FileSize)
			assert.Equal(t, 4, req.TotalParts)
			return "https://cdn/lecture.mp3", nil
		})

	urls, err := svc.UploadBatch(context.Background(), "lesson-2", []port.BatchItem{
		{File: domain.NewMemoryFile("lecture.wav", "audio/wav", payload(80)), TranscodeEnabled: true},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"https://cdn/lecture.mp3"}, urls)
	assert.Equal(t, encoded, log.assembled("upload-0"))

	assertNonDecreasing(t, *percents)
	assert.Contains(t, *percents, 4)
	assert.Contains(t, *percents, 20)
	assert.Contains(t, *percents, 40)
	assert.Contains(t, *percents, 94)
	assert.Equal(t, 100, (*percents)[len(*percents)-1])
	assert.Equal(t, []domain.Phase{domain.PhaseIdle, domain.PhaseTranscoding, domain.PhaseUploading, domain.PhaseComplete}, *phases)
}

func TestUploadService_PartialFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, deps := newTestUploadService(t, ctrl, nil, func(cfg *config.Config) {
		cfg.App.ChunkSize = 10
		cfg.App.ChunkTimeoutMS = 50
	})
	log := newChunkLog()
	receive := log.receive(t)

	deps.receiver.EXPECT().
		SendChunk(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, chunk port.ChunkUpload, onProgress port.ProgressFunc) error {
			if chunk.Descriptor.UploadID == "upload-1" && chunk.Descriptor.PartNumber == 1 {
				// the second file's second part never gets acknowledged
				<-ctx.Done()
				return ctx.Err()
			}
			return receive(ctx, chunk, onProgress)
		}).
		Times(3 + 2 + 3)
	deps.finalizer.EXPECT().
		Finalize(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req port.FinalizeRequest) (string, error) {
			return "https://cdn/" + req.FileName, nil
		}).
		Times(2)

	items := []port.BatchItem{
		{File: domain.NewMemoryFile("one.mp3", "audio/mpeg", payload(25))},
		{File: domain.NewMemoryFile("two.mp3", "audio/mpeg", payload(25))},
		{File: domain.NewMemoryFile("three.mp3", "audio/mpeg", payload(25))},
	}
	urls, err := svc.UploadBatch(context.Background(), "lesson-3", items)
	require.NoError(t, err)
	assert.Equal(t, []string{"https://cdn/one.mp3", "https://cdn/three.mp3"}, urls)

	snap := svc.Snapshot()
	assert.Equal(t, domain.BatchComplete, snap.Status)
	require.Len(t, snap.Files, 3)
	assert.Equal(t, domain.PhaseComplete, snap.Files[0].Status)
	assert.Equal(t, domain.PhaseError, snap.Files[1].Status)
	assert.Equal(t, domain.PhaseComplete, snap.Files[2].Status)
	assert.Contains(t, snap.Files[1].Error, "part 1")
	assert.Contains(t, snap.Files[1].Error, context.DeadlineExceeded.Error())
	assert.Less(t, snap.Files[1].Percent, 90)
	assert.Empty(t, snap.Error)

	// the failed file's parts never leak into its siblings' uploads
	assert.Len(t, log.parts["upload-1"], 1)
	assert.Len(t, log.parts["upload-2"], 3)
}

func TestUploadService_AllFilesFailed(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, deps := newTestUploadService(t, ctrl, nil, nil)

	deps.receiver.EXPECT().SendChunk(gomock.Any(), gomock.Any(), gomock.Any()).Return(errors.New("connection refused")).Times(1)
	deps.receiver.EXPECT().SendChunk(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).Times(1)
	deps.finalizer.EXPECT().Finalize(gomock.Any(), gomock.Any()).Return("", errors.New("missing parts"))

	urls, err := svc.UploadBatch(context.Background(), "lesson-4", []port.BatchItem{
		{File: domain.NewMemoryFile("a.mp3", "audio/mpeg", payload(10))},
		{File: domain.NewMemoryFile("b.mp3", "audio/mpeg", payload(10))},
		{File: domain.NewMemoryFile("empty.mp3", "audio/mpeg", nil)},
	})
	require.Error(t, err)
	assert.Empty(t, urls)
	assert.ErrorIs(t, err, domain.ErrAllFilesFailed)
	assert.ErrorIs(t, err, domain.ErrChunkTransfer)
	assert.ErrorIs(t, err, domain.ErrFinalize)
	assert.ErrorIs(t, err, domain.ErrEmptyFile)

	var allFailed *domain.AllFilesFailedError
	require.ErrorAs(t, err, &allFailed)
	assert.Equal(t, 3, allFailed.Total)

	snap := svc.Snapshot()
	assert.Equal(t, domain.BatchError, snap.Status)
	assert.NotEmpty(t, snap.Error)
	for _, f := range snap.Files {
		assert.Equal(t, domain.PhaseError, f.Status)
		assert.NotEmpty(t, f.Error)
	}
}

func TestUploadService_EngineLoadFailureFallsBackToOriginal(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	loader := mocks.NewMockRuntimeLoader(ctrl)
	engine, _ := newTestEngine(t, loader)
	svc, deps := newTestUploadService(t, ctrl, engine, nil)
	log := newChunkLog()
	percents, _ := percentRecorder(svc, 0)

	original := payload(64)
	loader.EXPECT().Load(gomock.Any()).Return(nil, errors.New("network blocked"))
	deps.receiver.EXPECT().SendChunk(gomock.Any(), gomock.Any(), gomock.Any()).DoAndReturn(log.receive(t))
	deps.finalizer.EXPECT().
		Finalize(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req port.FinalizeRequest) (string, error) {
			assert.Equal(t, "raw.flac", req.FileName)
			assert.Equal(t, "audio/flac", req.ContentType)
			return "https://cdn/raw.flac", nil
		})

	urls, err := svc.UploadBatch(context.Background(), "lesson-5", []port.BatchItem{
		{File: domain.NewMemoryFile("raw.flac", "audio/flac", original), TranscodeEnabled: true},
	})
	require.NoError(t, err)
	assert.Equal(t, []string{"https://cdn/raw.flac"}, urls)
	assert.Equal(t, original, log.assembled("upload-0"))
	assert.Equal(t, domain.PhaseComplete, svc.Snapshot().Files[0].Status)

	assertNonDecreasing(t, *percents)
	assert.Contains(t, *percents, 94, "fallback transfer still uses the post-transcode band")
}

func TestUploadService_TranscodeDisabledSkipsDecision(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, deps := newTestUploadService(t, ctrl, nil, nil)

	deps.transcoder.EXPECT().ShouldTranscode(gomock.Any()).Times(0)
	deps.receiver.EXPECT().SendChunk(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	deps.finalizer.EXPECT().Finalize(gomock.Any(), gomock.Any()).Return("https://cdn/a.wav", nil)

	_, err := svc.UploadBatch(context.Background(), "g", []port.BatchItem{
		{File: domain.NewMemoryFile("a.wav", "audio/wav", payload(8)), TranscodeEnabled: false},
	})
	require.NoError(t, err)
}

func TestUploadService_SortOrderFollowsInput(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, deps := newTestUploadService(t, ctrl, nil, nil)

	var orders []int
	deps.transcoder.EXPECT().ShouldTranscode(gomock.Any()).Return(false).Times(3)
	deps.receiver.EXPECT().SendChunk(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).Times(3)
	deps.finalizer.EXPECT().
		Finalize(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, req port.FinalizeRequest) (string, error) {
			orders = append(orders, req.SortOrder)
			return "https://cdn/" + req.FileName, nil
		}).
		Times(3)

	urls, err := svc.UploadBatch(context.Background(), "g", []port.BatchItem{
		{File: domain.NewMemoryFile("c.mp3", "audio/mpeg", payload(3)), TranscodeEnabled: true},
		{File: domain.NewMemoryFile("a.mp3", "audio/mpeg", payload(3)), TranscodeEnabled: true},
		{File: domain.NewMemoryFile("b.mp3", "audio/mpeg", payload(3)), TranscodeEnabled: true},
	})
	require.NoError(t, err)
	assert.Equal(t, []int{0, 1, 2}, orders)
	assert.Equal(t, []string{"https://cdn/c.mp3", "https://cdn/a.mp3", "https://cdn/b.mp3"}, urls)
}

func TestUploadService_CancellationStopsRemainingJobs(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, deps := newTestUploadService(t, ctrl, nil, nil)
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	deps.receiver.EXPECT().
		SendChunk(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ port.ChunkUpload, _ port.ProgressFunc) error {
			cancel()
			<-ctx.Done()
			return ctx.Err()
		}).
		Times(1)

	urls, err := svc.UploadBatch(ctx, "g", []port.BatchItem{
		{File: domain.NewMemoryFile("a.mp3", "audio/mpeg", payload(3))},
		{File: domain.NewMemoryFile("b.mp3", "audio/mpeg", payload(3))},
	})
	assert.ErrorIs(t, err, domain.ErrAllFilesFailed)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Empty(t, urls)

	snap := svc.Snapshot()
	assert.Equal(t, domain.PhaseError, snap.Files[0].Status)
	assert.Equal(t, domain.PhaseError, snap.Files[1].Status)
	assert.Equal(t, 0, snap.Files[1].Percent)
}

func TestUploadService_EmptyBatch(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, _ := newTestUploadService(t, ctrl, nil, nil)

	urls, err := svc.UploadBatch(context.Background(), "g", nil)
	assert.ErrorIs(t, err, domain.ErrEmptyBatch)
	assert.Nil(t, urls)
	assert.Equal(t, domain.BatchIdle, svc.Snapshot().Status)

	_, err = svc.UploadBatch(context.Background(), "", []port.BatchItem{{File: domain.NewMemoryFile("a.mp3", "", payload(1))}})
	assert.ErrorIs(t, err, domain.ErrMissingGroup)
}

func TestUploadService_EmptyFinalizeURLIsAnError(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, deps := newTestUploadService(t, ctrl, nil, nil)

	deps.receiver.EXPECT().SendChunk(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	deps.finalizer.EXPECT().Finalize(gomock.Any(), gomock.Any()).Return("", nil)

	_, err := svc.UploadBatch(context.Background(), "g", []port.BatchItem{
		{File: domain.NewMemoryFile("a.mp3", "audio/mpeg", payload(3))},
	})
	assert.ErrorIs(t, err, domain.ErrFinalize)
	assert.Equal(t, 90, svc.Snapshot().Files[0].Percent)
}

func TestUploadService_ProcessingIsCallerDriven(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, deps := newTestUploadService(t, ctrl, nil, nil)

	deps.receiver.EXPECT().SendChunk(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	deps.finalizer.EXPECT().Finalize(gomock.Any(), gomock.Any()).Return("https://cdn/a.mp3", nil)

	_, err := svc.UploadBatch(context.Background(), "g", []port.BatchItem{
		{File: domain.NewMemoryFile("a.mp3", "audio/mpeg", payload(3))},
	})
	require.NoError(t, err)
	assert.Equal(t, domain.BatchComplete, svc.Snapshot().Status)

	svc.MarkProcessing()
	assert.Equal(t, domain.BatchProcessing, svc.Snapshot().Status)
	svc.MarkComplete()
	assert.Equal(t, domain.BatchComplete, svc.Snapshot().Status)

	svc.Reset()
	assert.Equal(t, domain.BatchIdle, svc.Snapshot().Status)
}

func TestUploadService_SlowChunkWithinTimeout(t *testing.T) {
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	svc, deps := newTestUploadService(t, ctrl, nil, func(cfg *config.Config) {
		cfg.App.ChunkTimeoutMS = 1000
	})

	deps.receiver.EXPECT().
		SendChunk(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ port.ChunkUpload, _ port.ProgressFunc) error {
			deadline, ok := ctx.Deadline()
			assert.True(t, ok, "each chunk runs under its own deadline")
			assert.WithinDuration(t, time.Now().Add(time.Second), deadline, 200*time.Millisecond)
			time.Sleep(20 * time.Millisecond)
			return nil
		})
	deps.finalizer.EXPECT().
		Finalize(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ port.FinalizeRequest) (string, error) {
			_, ok := ctx.Deadline()
			assert.False(t, ok, "finalize has no explicit timeout")
			return "https://cdn/a.mp3", nil
		})

	_, err := svc.UploadBatch(context.Background(), "g", []port.BatchItem{
		{File: domain.NewMemoryFile("a.mp3", "audio/mpeg", payload(3))},
	})
	require.NoError(t, err)
}
