package domain

// BatchStatus is the caller-visible status of a whole batch.
type BatchStatus string

const (
	BatchIdle       BatchStatus = "idle"
	BatchUploading  BatchStatus = "uploading"
	BatchProcessing BatchStatus = "processing"
	BatchComplete   BatchStatus = "complete"
	BatchError      BatchStatus = "error"
)

// FileProgress is one file's entry in the aggregate state.
type FileProgress struct {
	FileName string `json:"fileName"`
	Percent  int    `json:"percent"`
	Status   Phase  `json:"status"`
	Error    string `json:"error,omitempty"`
}

// AggregateState is the entire observable surface of a batch.
type AggregateState struct {
	Status         BatchStatus    `json:"status"`
	OverallPercent int            `json:"overallPercent"`
	Files          []FileProgress `json:"perFile"`
	Error          string         `json:"error,omitempty"`
}

// Clone returns a copy that does not share the Files slice.
func (s AggregateState) Clone() AggregateState {
	out := s
	out.Files = append([]FileProgress(nil), s.Files...)
	return out
}

// OverallPercent returns the mean of per-file percentages, each file
// weighing 1/N regardless of its byte size.
func OverallPercent(files []FileProgress) int {
	if len(files) == 0 {
		return 0
	}
	sum := 0
	for _, f := range files {
		sum += f.Percent
	}
	return (sum + len(files)/2) / len(files)
}
