package entities

// FolderType identifies one of the model's top-level folders
type FolderType string

const (
	FolderStrategy                FolderType = "strategy"
	FolderBusiness                FolderType = "business"
	FolderApplication             FolderType = "application"
	FolderTechnology              FolderType = "technology"
	FolderMotivation              FolderType = "motivation"
	FolderImplementationMigration FolderType = "implementation_migration"
	FolderOther                   FolderType = "other"
	FolderRelations               FolderType = "relations"
	FolderDiagrams                FolderType = "diagrams"
)

var folderOrder = []FolderType{
	FolderStrategy,
	FolderBusiness,
	FolderApplication,
	FolderTechnology,
	FolderMotivation,
	FolderImplementationMigration,
	FolderOther,
	FolderRelations,
	FolderDiagrams,
}

var folderNames = map[FolderType]string{
	FolderStrategy:                "Strategy",
	FolderBusiness:                "Business",
	FolderApplication:             "Application",
	FolderTechnology:              "Technology & Physical",
	FolderMotivation:              "Motivation",
	FolderImplementationMigration: "Implementation & Migration",
	FolderOther:                   "Other",
	FolderRelations:               "Relations",
	FolderDiagrams:                "Views",
}

// FolderTypes returns the top-level folder types in display order
func FolderTypes() []FolderType {
	out := make([]FolderType, len(folderOrder))
	copy(out, folderOrder)
	return out
}

// DefaultName returns the folder's display name
func (f FolderType) DefaultName() string {
	return folderNames[f]
}

// IsValid reports whether f is a known folder type
func (f FolderType) IsValid() bool {
	_, ok := folderNames[f]
	return ok
}

// Folder holds the concepts of one top-level folder in insertion order
type Folder struct {
	folderType FolderType
	name       string
	concepts   []Concept
}

// NewFolder creates an empty folder of the given type
func NewFolder(folderType FolderType) *Folder {
	return &Folder{folderType: folderType, name: folderType.DefaultName()}
}

func (f *Folder) Type() FolderType { return f.folderType }
func (f *Folder) Name() string     { return f.name }

// SetName renames the folder
func (f *Folder) SetName(name string) {
	f.name = name
}

// Concepts returns a copy of the folder contents
func (f *Folder) Concepts() []Concept {
	out := make([]Concept, len(f.concepts))
	copy(out, f.concepts)
	return out
}

// Len returns the number of concepts in the folder
func (f *Folder) Len() int {
	return len(f.concepts)
}

// Insert places c at index; out-of-range indexes append
func (f *Folder) Insert(c Concept, index int) {
	if index < 0 || index >= len(f.concepts) {
		f.concepts = append(f.concepts, c)
		return
	}
	f.concepts = append(f.concepts, nil)
	copy(f.concepts[index+1:], f.concepts[index:])
	f.concepts[index] = c
}

// Remove deletes the concept with id and returns its former index, or -1
func (f *Folder) Remove(id string) int {
	for i, c := range f.concepts {
		if c.ID() == id {
			f.concepts = append(f.concepts[:i], f.concepts[i+1:]...)
			return i
		}
	}
	return -1
}
