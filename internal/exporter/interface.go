package exporter

// SaveReport lists the files written for one job and any per-file
// write errors. One file's failure never blocks the others.
type SaveReport struct {
	Written []string
	Errors  []error
}

// Exporter persists a finished job's transcript and notes to disk in
// all configured formats.
type Exporter interface {
	Save(transcript, notes, audioPath string) SaveReport
}
