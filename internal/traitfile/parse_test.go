package traitfile

import (
  "testing"
)

const legacySample = `- Strategic Thinker
Trait Category: Mindset
Trait Description: Plans campaigns two quarters ahead and works backwards.


- Blunt Communicator
Trait Category: Communication
Trait Description: Prefers short, direct feedback over long documents.


- Role Profile & Responsibilities:
Owns the marketing budget end to end.
Reports directly to the CEO.`

func TestParseLegacy(t *testing.T) {
  sections := ParseLegacy(legacySample)
  if len(sections) != 3 {
    t.Fatalf("expected 3 sections, got %d", len(sections))
  }
  if sections[0].Title != "Strategic Thinker" || sections[0].Category != "Mindset" {
    t.Fatalf("first section = %+v", sections[0])
  }
  if sections[1].Description != "Prefers short, direct feedback over long documents." {
    t.Fatalf("second description = %q", sections[1].Description)
  }
  if sections[2].Category != "Role Profile" {
    t.Fatalf("role profile block not special-cased: %+v", sections[2])
  }
  if sections[2].Description != "Owns the marketing budget end to end.\nReports directly to the CEO." {
    t.Fatalf("role profile description = %q", sections[2].Description)
  }
}

func TestParseLegacySkipsMalformedBlocks(t *testing.T) {
  sections := ParseLegacy("just some prose\n\n\n- Valid\nTrait Category: C\nTrait Description: D")
  if len(sections) != 1 || sections[0].Title != "Valid" {
    t.Fatalf("sections = %+v", sections)
  }
}

const sectionedSample = `About: A hands-on engineering leader who still reviews code weekly.

Core Expertise:
1) Distributed systems
2) Incident response
- Hiring

Communication Style: Calm and precise, favors written RFCs.

Traits:
- Pragmatic
- Skeptical of silver bullets

Pain Points:
1) Flaky test suites

Key Responsibilities:
1) Platform reliability
2) Team growth`

func TestParseSections(t *testing.T) {
  sections := ParseSections(sectionedSample)
  if len(sections) != 6 {
    t.Fatalf("expected 6 sections, got %d", len(sections))
  }
  if sections[0].Title != "About" || sections[0].Description != "A hands-on engineering leader who still reviews code weekly." {
    t.Fatalf("about = %+v", sections[0])
  }
  if sections[2].Title != "Communication Style" || sections[2].Description != "Calm and precise, favors written RFCs." {
    t.Fatalf("communication style = %+v", sections[2])
  }
}

func TestParseSectionsMissingHeadings(t *testing.T) {
  sections := ParseSections("About: Only an about line.")
  if len(sections) != 1 || sections[0].Title != "About" {
    t.Fatalf("sections = %+v", sections)
  }
}

func TestToPersonaTraitSplitsLists(t *testing.T) {
  trait := ToPersonaTrait("3", ParseSections(sectionedSample))
  if trait.PersonaID != "3" {
    t.Fatalf("persona id = %q", trait.PersonaID)
  }
  if trait.About != "A hands-on engineering leader who still reviews code weekly." {
    t.Fatalf("about = %q", trait.About)
  }
  wantExpertise := []string{"Distributed systems", "Incident response", "Hiring"}
  if len(trait.CoreExpertise) != len(wantExpertise) {
    t.Fatalf("core expertise = %v", trait.CoreExpertise)
  }
  for i, want := range wantExpertise {
    if trait.CoreExpertise[i] != want {
      t.Fatalf("core expertise[%d] = %q, want %q", i, trait.CoreExpertise[i], want)
    }
  }
  if len(trait.Traits) != 2 || trait.Traits[1] != "Skeptical of silver bullets" {
    t.Fatalf("traits = %v", trait.Traits)
  }
  if len(trait.KeyResponsibilities) != 2 {
    t.Fatalf("key responsibilities = %v", trait.KeyResponsibilities)
  }
}

func TestToTraits(t *testing.T) {
  traits := ToTraits(ParseLegacy(legacySample))
  if len(traits) != 3 {
    t.Fatalf("expected 3 traits, got %d", len(traits))
  }
  if traits[0].Title != "Strategic Thinker" || traits[0].Category != "Mindset" {
    t.Fatalf("first trait = %+v", traits[0])
  }
}
