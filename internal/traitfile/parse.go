// Package traitfile parses the flat persona trait text files that the
// one-off import tooling loads into the store. Two formats exist in the
// wild: the legacy dash format, where each block carries its own
// "Trait Category:" / "Trait Description:" labels, and the sectioned
// format, a fixed sequence of "About:", "Core Expertise:", ... headings.
package traitfile

import (
  "regexp"
  "strings"

  "gorm.io/datatypes"

  "github.com/excollo/aipersona-backend/internal/types"
)

type Section struct {
  Title       string
  Category    string
  Description string
}

var (
  blockSplitter = regexp.MustCompile(`\n{3,}`)
  legacyBlock   = regexp.MustCompile(`(?s)^\s*-\s*(.+?)\s*\n\s*Trait Category:\s*(.*?)\s*\n\s*Trait Description:\s*(.*)$`)
  roleProfile   = regexp.MustCompile(`(?s)^\s*-\s*Role Profile & Responsibilities:.*?\n(.*)$`)
  listItem      = regexp.MustCompile(`^\s*(?:\d+[.)]\s*|-\s*|\*\s*)`)
)

// ParseLegacy handles the dash format. The role-profile block has no
// category/description labels and is special-cased like the original
// importer did.
func ParseLegacy(content string) []Section {
  var sections []Section
  for _, block := range blockSplitter.Split(content, -1) {
    if strings.TrimSpace(block) == "" {
      continue
    }
    if m := legacyBlock.FindStringSubmatch(block); m != nil {
      sections = append(sections, Section{
        Title:       strings.TrimSpace(m[1]),
        Category:    strings.TrimSpace(m[2]),
        Description: strings.TrimSpace(m[3]),
      })
      continue
    }
    if m := roleProfile.FindStringSubmatch(block); m != nil {
      sections = append(sections, Section{
        Title:       "Role Profile & Responsibilities",
        Category:    "Role Profile",
        Description: strings.TrimSpace(m[1]),
      })
    }
  }
  return sections
}

var sectionHeadings = []string{
  "About",
  "Core Expertise",
  "Communication Style",
  "Traits",
  "Pain Points",
  "Key Responsibilities",
}

// ParseSections handles the sectioned format. Headings are expected in
// order; missing sections are simply skipped.
func ParseSections(content string) []Section {
  type mark struct {
    heading string
    start   int // index just past "Heading:"
  }
  var marks []mark
  searchFrom := 0
  for _, heading := range sectionHeadings {
    idx := indexOfHeading(content, heading, searchFrom)
    if idx < 0 {
      continue
    }
    start := idx + len(heading) + 1
    marks = append(marks, mark{heading: heading, start: start})
    searchFrom = start
  }
  var sections []Section
  for i, m := range marks {
    end := len(content)
    if i+1 < len(marks) {
      end = marks[i+1].start - len(marks[i+1].heading) - 1
    }
    desc := strings.TrimSpace(content[m.start:end])
    if desc == "" {
      continue
    }
    sections = append(sections, Section{Title: m.heading, Category: m.heading, Description: desc})
  }
  return sections
}

// indexOfHeading finds "Heading:" at the start of the file or of a line.
func indexOfHeading(content, heading string, from int) int {
  needle := heading + ":"
  for search := from; search <= len(content); {
    idx := strings.Index(content[search:], needle)
    if idx < 0 {
      return -1
    }
    abs := search + idx
    if abs == 0 || content[abs-1] == '\n' {
      return abs
    }
    search = abs + len(needle)
  }
  return -1
}

// ToTraits converts parsed sections into legacy flat rows.
func ToTraits(sections []Section) []*types.Trait {
  traits := make([]*types.Trait, 0, len(sections))
  for _, s := range sections {
    traits = append(traits, &types.Trait{
      Title:       s.Title,
      Category:    s.Category,
      Description: s.Description,
    })
  }
  return traits
}

// ToPersonaTrait builds the normalized one-row-per-persona document.
// List-like sections are split into items; prose sections stay whole.
func ToPersonaTrait(personaID string, sections []Section) *types.PersonaTrait {
  trait := &types.PersonaTrait{PersonaID: personaID}
  for _, s := range sections {
    switch s.Title {
    case "About":
      trait.About = s.Description
    case "Core Expertise":
      trait.CoreExpertise = datatypes.NewJSONSlice(splitListItems(s.Description))
    case "Communication Style":
      trait.CommunicationStyle = s.Description
    case "Traits":
      trait.Traits = datatypes.NewJSONSlice(splitListItems(s.Description))
    case "Pain Points":
      trait.PainPoints = datatypes.NewJSONSlice(splitListItems(s.Description))
    case "Key Responsibilities":
      trait.KeyResponsibilities = datatypes.NewJSONSlice(splitListItems(s.Description))
    }
  }
  return trait
}

func splitListItems(description string) []string {
  var items []string
  for _, line := range strings.Split(description, "\n") {
    line = strings.TrimSpace(listItem.ReplaceAllString(line, ""))
    if line != "" {
      items = append(items, line)
    }
  }
  return items
}
