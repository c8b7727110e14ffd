package model

import (
	"math"
	"path/filepath"
	"time"
)

// DataFile is a content-addressed file: its id is the hex-encoded hash of its content.
//
// Instances record every place where this content has been observed, oldest first.
type DataFile struct {
	ID        string
	Instances []FileInstance
	Meta
}

// NewDataFile builds a data file without instances
func NewDataFile(hashsum string) *DataFile {
	return &DataFile{
		ID:   hashsum,
		Meta: newMeta(),
	}
}

// EntityID of the data file, i.e. its content hash
func (f *DataFile) EntityID() string { return f.ID }

// Kind is KindFile
func (f *DataFile) Kind() Kind { return KindFile }

// Metadata of the data file
func (f *DataFile) Metadata() *Meta { return &f.Meta }

func (f *DataFile) isEntity() {}

// HasInstance tells if an identical instance has already been recorded
func (f *DataFile) HasInstance(instance FileInstance) bool {
	for _, known := range f.Instances {
		if known == instance {
			return true
		}
	}
	return false
}

// AddInstance appends an instance, unless an identical one is already known.
//
// It returns false when the instance was already known.
func (f *DataFile) AddInstance(instance FileInstance) bool {
	if f.HasInstance(instance) {
		return false
	}
	f.Instances = append(f.Instances, instance)
	return true
}

// Latest instance, if any
func (f *DataFile) Latest() (FileInstance, bool) {
	if len(f.Instances) == 0 {
		return FileInstance{}, false
	}
	return f.Instances[len(f.Instances)-1], true
}

// FileInstance is an observed occurrence of some content at some location
type FileInstance struct {
	Filename  string  `json:"filename,omitempty" yaml:"filename,omitempty"`
	Hashsum   string  `json:"hashsum,omitempty" yaml:"hashsum,omitempty"`
	Size      int64   `json:"size,omitempty" yaml:"size,omitempty"`
	Timestamp float64 `json:"timestamp,omitempty" yaml:"timestamp,omitempty"`
}

// ModTime is the modification time of the instance
func (i FileInstance) ModTime() time.Time {
	sec, frac := math.Modf(i.Timestamp)
	return time.Unix(int64(sec), int64(math.Round(frac*1e9))).UTC()
}

// Ext is the extension of the instance file name
func (i FileInstance) Ext() string {
	return filepath.Ext(i.Filename)
}

// EpochSeconds converts a time into seconds since the epoch, as recorded in instances
func EpochSeconds(t time.Time) float64 {
	return float64(t.UnixNano()) / 1e9
}
