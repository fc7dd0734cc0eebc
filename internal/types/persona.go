package types

// Persona is a catalog entry: a named role profile the chat UI can adopt.
// The catalog is seeded in memory and read-only from the chat flow.
type Persona struct {
  ID           string `json:"id"`
  Name         string `json:"name"`
  Role         string `json:"role"`
  Department   string `json:"department"`
  Avatar       string `json:"avatar"`
  Description  string `json:"description,omitempty"`
  HasStartChat bool   `json:"hasStartChat"`
}

// TraitSection is a titled block of descriptive text as rendered by the
// persona detail view, regardless of whether it came from the normalized
// document, the legacy flat store, or a mock fallback.
type TraitSection struct {
  ID          string `json:"_id,omitempty"`
  Title       string `json:"title"`
  Category    string `json:"category"`
  Description string `json:"description"`
}

// SeedPersonas returns the built-in persona catalog.
func SeedPersonas() []Persona {
  return []Persona{
    {
      ID:         "1",
      Name:       "Ethan Carter",
      Role:       "Chief Marketing Officer (CMO)",
      Department: "Marketing",
      Avatar:     "https://static.vecteezy.com/system/resources/thumbnails/027/951/137/small_2x/stylish-spectacles-guy-3d-avatar-character-illustrations-png.png",
    },
    {
      ID:         "2",
      Name:       "David Lee",
      Role:       "Chief Business Officer (CBO)",
      Department: "Sales",
      Avatar:     "https://encrypted-tbn0.gstatic.com/images?q=tbn:ANd9GcQidULZph_aP3ma55diUiMYcbfKLd0mL069tw&s",
    },
    {
      ID:          "3",
      Name:        "Emily Carter",
      Role:        "Head of Engineering",
      Department:  "Tech",
      Avatar:      "https://randomuser.me/api/portraits/women/44.jpg",
      Description: "Technical leadership and engineering management",
    },
    {
      ID:          "4",
      Name:        "Jessica Davis",
      Role:        "CTO",
      Department:  "Tech",
      Avatar:      "https://randomuser.me/api/portraits/women/45.jpg",
      Description: "Technology strategy and innovation leader",
    },
  }
}
