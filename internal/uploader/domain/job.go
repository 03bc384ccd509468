package domain

// Phase is the per-file lifecycle state.
type Phase string

const (
	PhaseIdle        Phase = "idle"
	PhaseTranscoding Phase = "transcoding"
	PhaseUploading   Phase = "uploading"
	PhaseComplete    Phase = "complete"
	PhaseError       Phase = "error"
)

// IsTerminal reports whether no further transition is allowed.
func (p Phase) IsTerminal() bool {
	return p == PhaseComplete || p == PhaseError
}

// UploadJob is one file's transcode, transfer and assemble lifecycle.
// It is mutated only by the pipeline that owns it.
type UploadJob struct {
	ID               int
	File             MediaFile
	GroupID          string
	SortOrder        int
	TranscodeEnabled bool

	UploadID  string
	Phase     Phase
	Percent   int
	Err       error
	PublicURL string
}

// NewUploadJob creates an idle job at position index of its batch.
func NewUploadJob(index int, groupID string, file MediaFile, transcodeEnabled bool) *UploadJob {
	return &UploadJob{
		ID:               index,
		File:             file,
		GroupID:          groupID,
		SortOrder:        index,
		TranscodeEnabled: transcodeEnabled,
		Phase:            PhaseIdle,
	}
}

// IsTerminal reports whether the job reached complete or error.
func (j *UploadJob) IsTerminal() bool {
	return j.Phase.IsTerminal()
}

// ErrorMessage returns the captured failure text, if any.
func (j *UploadJob) ErrorMessage() string {
	if j.Err == nil {
		return ""
	}
	return j.Err.Error()
}

// Progress returns the caller-visible snapshot of the job.
func (j *UploadJob) Progress() FileProgress {
	return FileProgress{
		FileName: j.File.Name,
		Percent:  j.Percent,
		Status:   j.Phase,
		Error:    j.ErrorMessage(),
	}
}
