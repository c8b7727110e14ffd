package model

// Dataset is a collection of data files, with tags and properties.
//
// Files are kept in insertion order, without duplicates.
type Dataset struct {
	ID    string
	Files []*DataFile
	Meta
}

// NewDataset builds an empty dataset
func NewDataset(id string) *Dataset {
	return &Dataset{
		ID:   id,
		Meta: newMeta(),
	}
}

// EntityID of the dataset
func (d *Dataset) EntityID() string { return d.ID }

// Kind is KindDataset
func (d *Dataset) Kind() Kind { return KindDataset }

// Metadata of the dataset
func (d *Dataset) Metadata() *Meta { return &d.Meta }

func (d *Dataset) isEntity() {}

// Name of the dataset, or the empty string for an anonymous dataset
func (d *Dataset) Name() string {
	name, _ := d.Attrs.String(NameAttr)
	return name
}

// HasName tells if the dataset is named
func (d *Dataset) HasName() bool {
	_, ok := d.Attrs.String(NameAttr)
	return ok
}

// ShortID is a shortened version of the id, for display
func (d *Dataset) ShortID() string {
	const short = 8
	if len(d.ID) <= short {
		return d.ID
	}
	return d.ID[:short]
}

// Label is the name of the dataset when it has one, its short id otherwise
func (d *Dataset) Label() string {
	if name := d.Name(); name != "" {
		return name
	}
	return d.ShortID()
}

// HasFile tells if a data file is part of this dataset
func (d *Dataset) HasFile(id string) bool {
	for _, f := range d.Files {
		if f.ID == id {
			return true
		}
	}
	return false
}

// AddFiles appends files to the dataset, skipping those already present
func (d *Dataset) AddFiles(files ...*DataFile) {
	for _, f := range files {
		if d.HasFile(f.ID) {
			continue
		}
		d.Files = append(d.Files, f)
	}
}

// RemoveFiles removes the data files with the given ids. Unknown ids are ignored.
func (d *Dataset) RemoveFiles(ids ...string) {
	if len(ids) == 0 {
		return
	}
	drop := make(map[string]struct{}, len(ids))
	for _, id := range ids {
		drop[id] = struct{}{}
	}
	kept := d.Files[:0]
	for _, f := range d.Files {
		if _, ok := drop[f.ID]; ok {
			continue
		}
		kept = append(kept, f)
	}
	for i := len(kept); i < len(d.Files); i++ {
		d.Files[i] = nil
	}
	d.Files = kept
}

// FileIDs lists the ids of the files in this dataset, in order
func (d *Dataset) FileIDs() []string {
	ids := make([]string, 0, len(d.Files))
	for _, f := range d.Files {
		ids = append(ids, f.ID)
	}
	return ids
}
