package directory

import "sort"

// Doctor is a directory entry. Entries are configuration, not data:
// they are defined at start-up and never change while the process runs.
type Doctor struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Specialty string `json:"specialty"`
}

var defaultDoctors = []Doctor{
	{ID: 1, Name: "Dr. John Doe", Specialty: "Cardiology"},
	{ID: 2, Name: "Dr. Jane Smith", Specialty: "Neurology"},
}

type Directory struct {
	byID    map[int]Doctor
	ordered []Doctor
}

// New builds a directory from the given entries. Later duplicates of
// an id replace earlier ones.
func New(doctors []Doctor) *Directory {
	byID := make(map[int]Doctor, len(doctors))
	for _, d := range doctors {
		byID[d.ID] = d
	}

	ordered := make([]Doctor, 0, len(byID))
	for _, d := range byID {
		ordered = append(ordered, d)
	}
	sort.Slice(ordered, func(i, j int) bool { return ordered[i].ID < ordered[j].ID })

	return &Directory{byID: byID, ordered: ordered}
}

func Default() *Directory {
	return New(defaultDoctors)
}

func (d *Directory) Find(id int) (Doctor, bool) {
	doc, ok := d.byID[id]
	return doc, ok
}

// All returns a copy of every entry, ordered by id.
func (d *Directory) All() []Doctor {
	out := make([]Doctor, len(d.ordered))
	copy(out, d.ordered)
	return out
}
