package services

import (
  "context"
  "errors"
  "fmt"
  "strings"

  "gorm.io/gorm"

  "github.com/excollo/aipersona-backend/internal/apperr"
  "github.com/excollo/aipersona-backend/internal/logger"
  "github.com/excollo/aipersona-backend/internal/repos"
  "github.com/excollo/aipersona-backend/internal/types"
)

// PersonaDetail is a catalog entry plus its displayed trait sections.
type PersonaDetail struct {
  types.Persona
  Traits []types.TraitSection `json:"traits"`
}

type PersonaService interface {
  List(ctx context.Context) []types.Persona
  GetByID(ctx context.Context, personaID string) (*PersonaDetail, error)
}

type personaService struct {
  db               *gorm.DB
  log              *logger.Logger
  catalog          []types.Persona
  personaTraitRepo repos.PersonaTraitRepo
  traitRepo        repos.TraitRepo
}

func NewPersonaService(db *gorm.DB, log *logger.Logger, catalog []types.Persona, personaTraitRepo repos.PersonaTraitRepo, traitRepo repos.TraitRepo) PersonaService {
  return &personaService{
    db:               db,
    log:              log.With("service", "PersonaService"),
    catalog:          append([]types.Persona(nil), catalog...),
    personaTraitRepo: personaTraitRepo,
    traitRepo:        traitRepo,
  }
}

func (ps *personaService) List(ctx context.Context) []types.Persona {
  return append([]types.Persona(nil), ps.catalog...)
}

// GetByID merges the catalog entry with whatever trait source is available:
// the normalized document first, the legacy flat store for persona "1",
// mock sections otherwise. Unknown ids still resolve to a default persona.
func (ps *personaService) GetByID(ctx context.Context, personaID string) (*PersonaDetail, error) {
  if personaID == "" {
    return nil, apperr.Validation("a persona id is required.")
  }
  detail := &PersonaDetail{Persona: ps.findCatalogEntry(personaID)}

  stored, err := ps.personaTraitRepo.GetByPersonaID(ctx, nil, personaID)
  if err == nil {
    detail.Traits = sectionsFromPersonaTrait(stored)
    return detail, nil
  }
  if !errors.Is(err, gorm.ErrRecordNotFound) {
    return nil, apperr.Store("Error fetching persona", err)
  }

  // Persona 1 predates the normalized document; its sections live in the
  // legacy flat store.
  if personaID == "1" {
    legacy, lErr := ps.traitRepo.GetAll(ctx, nil)
    if lErr != nil {
      return nil, apperr.Store("Error fetching persona", lErr)
    }
    for _, trait := range legacy {
      detail.Traits = append(detail.Traits, types.TraitSection{
        ID:          trait.ID.String(),
        Title:       trait.Title,
        Category:    trait.Category,
        Description: trait.Description,
      })
    }
    return detail, nil
  }

  detail.Traits = mockSections(personaID)
  return detail, nil
}

func (ps *personaService) findCatalogEntry(personaID string) types.Persona {
  for _, p := range ps.catalog {
    if p.ID == personaID {
      return p
    }
  }
  return types.Persona{
    ID:          personaID,
    Name:        "AI Persona",
    Role:        "Default Role",
    Avatar:      "https://randomuser.me/api/portraits/lego/1.jpg",
    Description: "Default persona description",
  }
}

func sectionsFromPersonaTrait(trait *types.PersonaTrait) []types.TraitSection {
  sections := make([]types.TraitSection, 0, 6)
  add := func(title, description string) {
    if description != "" {
      sections = append(sections, types.TraitSection{Title: title, Category: title, Description: description})
    }
  }
  add("About", trait.About)
  add("Core Expertise", strings.Join(trait.CoreExpertise, "\n"))
  add("Communication Style", trait.CommunicationStyle)
  add("Traits", strings.Join(trait.Traits, "\n"))
  add("Pain Points", strings.Join(trait.PainPoints, "\n"))
  add("Key Responsibilities", strings.Join(trait.KeyResponsibilities, "\n"))
  return sections
}

func mockSections(personaID string) []types.TraitSection {
  return []types.TraitSection{
    {
      ID:          fmt.Sprintf("mock-%s-1", personaID),
      Title:       "About",
      Category:    "About",
      Description: fmt.Sprintf("This is the about section for persona %s. This persona has different expertise and background than the main persona.", personaID),
    },
    {
      ID:          fmt.Sprintf("mock-%s-2", personaID),
      Title:       "Core Expertise",
      Category:    "Core Expertise",
      Description: "1) Product strategy\n2) Market analysis\n3) User experience design\n4) Agile methodology\n5) Cross-functional team leadership",
    },
    {
      ID:          fmt.Sprintf("mock-%s-3", personaID),
      Title:       "Communication Style",
      Category:    "Communication Style",
      Description: "Clear and concise communication with a focus on data-driven insights and collaborative problem-solving.",
    },
  }
}
