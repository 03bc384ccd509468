package domain

const (
	DefaultBitrateKbps = 48
	DefaultSampleRate  = 24000
	DefaultChannels    = 1

	// TargetExtension and TargetContentType describe the transcoder output.
	TargetExtension   = ".mp3"
	TargetContentType = "audio/mpeg"
)

// TranscodeRequest describes one re-encode to the target lossy codec.
type TranscodeRequest struct {
	Input       MediaFile
	BitrateKbps int
	SampleRate  int
	Channels    int

	// OnProgress receives 0-100 while the re-encode runs. May be nil.
	OnProgress func(percent int)
}

// WithDefaults fills unset encoding parameters with the defaults.
func (r TranscodeRequest) WithDefaults() TranscodeRequest {
	if r.BitrateKbps <= 0 {
		r.BitrateKbps = DefaultBitrateKbps
	}
	if r.SampleRate <= 0 {
		r.SampleRate = DefaultSampleRate
	}
	if r.Channels <= 0 {
		r.Channels = DefaultChannels
	}
	return r
}

// Report forwards progress when a callback is attached.
func (r TranscodeRequest) Report(percent int) {
	if r.OnProgress != nil {
		r.OnProgress(percent)
	}
}
