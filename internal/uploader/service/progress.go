package service

import (
	"github.com/anthanhphan/go-media-transfer/internal/uploader/domain"
)

// Percentage bands of one job. With a transcode phase: transcode [0,40],
// transfer [40,94], finalize jumps to 100. Without: transfer [0,90].
const (
	transcodeBandEnd       = 40
	transferEndAfterEncode = 94
	transferEndPlain       = 90
)

// progressTracker drives one job's phase and percentage.
//
// Every percentage update is max(previous, computed), so the value never
// goes backward; terminal jobs ignore all further updates.
type progressTracker struct {
	state *BatchState
	index int

	// transcodePhase is only touched inside state updates.
	transcodePhase bool
}

func newProgressTracker(state *BatchState, index int) *progressTracker {
	return &progressTracker{state: state, index: index}
}

func (p *progressTracker) beginTranscode() {
	p.state.updateJob(p.index, func(job *domain.UploadJob) bool {
		if job.Phase != domain.PhaseIdle {
			return false
		}
		p.transcodePhase = true
		job.Phase = domain.PhaseTranscoding
		return true
	})
}

// transcodeProgress maps encoder progress (0-100) into the transcode band.
func (p *progressTracker) transcodeProgress(percent int) {
	p.state.updateJob(p.index, func(job *domain.UploadJob) bool {
		if job.Phase != domain.PhaseTranscoding {
			return false
		}
		return raise(job, clampPercent(percent)*transcodeBandEnd/100)
	})
}

func (p *progressTracker) beginUpload(uploadID string) {
	p.state.updateJob(p.index, func(job *domain.UploadJob) bool {
		if job.Phase != domain.PhaseIdle && job.Phase != domain.PhaseTranscoding {
			return false
		}
		job.Phase = domain.PhaseUploading
		job.UploadID = uploadID
		if p.transcodePhase {
			// A fallback after a failed encode still starts the transfer band at 40.
			raise(job, transcodeBandEnd)
		}
		return true
	})
}

// chunkProgress reports fraction [0,1] of part partNumber out of totalParts.
func (p *progressTracker) chunkProgress(partNumber int, fraction float64, totalParts int) {
	if totalParts <= 0 {
		return
	}
	fraction = min(max(fraction, 0), 1)

	p.state.updateJob(p.index, func(job *domain.UploadJob) bool {
		if job.Phase != domain.PhaseUploading {
			return false
		}
		offset, budget := 0, transferEndPlain
		if p.transcodePhase {
			offset, budget = transcodeBandEnd, transferEndAfterEncode-transcodeBandEnd
		}
		done := (float64(partNumber) + fraction) * float64(budget) / float64(totalParts)
		return raise(job, offset+int(done))
	})
}

func (p *progressTracker) complete(publicURL string) {
	p.state.updateJob(p.index, func(job *domain.UploadJob) bool {
		if job.IsTerminal() {
			return false
		}
		job.Phase = domain.PhaseComplete
		job.Percent = 100
		job.PublicURL = publicURL
		return true
	})
}

// fail freezes the job at its current percentage.
func (p *progressTracker) fail(err error) {
	p.state.updateJob(p.index, func(job *domain.UploadJob) bool {
		if job.IsTerminal() {
			return false
		}
		job.Phase = domain.PhaseError
		job.Err = err
		return true
	})
}

func raise(job *domain.UploadJob, percent int) bool {
	if percent <= job.Percent {
		return false
	}
	job.Percent = min(percent, 100)
	return true
}

func clampPercent(p int) int {
	return min(max(p, 0), 100)
}
