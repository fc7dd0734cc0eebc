package services

import (
  "context"
  "testing"

  "gorm.io/datatypes"

  "github.com/excollo/aipersona-backend/internal/apperr"
  "github.com/excollo/aipersona-backend/internal/logger"
  "github.com/excollo/aipersona-backend/internal/repos"
  "github.com/excollo/aipersona-backend/internal/types"
)

func newTestTraitStack(t *testing.T) (TraitService, PersonaService) {
  t.Helper()
  db := openTestDB(t, &types.PersonaTrait{}, &types.Trait{})
  log := logger.NewNop()
  personaTraitRepo := repos.NewPersonaTraitRepo(db, log)
  traitRepo := repos.NewTraitRepo(db, log)
  ts := NewTraitService(db, log, personaTraitRepo, traitRepo)
  ps := NewPersonaService(db, log, types.SeedPersonas(), personaTraitRepo, traitRepo)
  return ts, ps
}

func samplePersonaTrait(personaID string) *types.PersonaTrait {
  return &types.PersonaTrait{
    PersonaID:           personaID,
    About:               "Seasoned operator with a growth background.",
    CoreExpertise:       datatypes.NewJSONSlice([]string{"Brand strategy", "Demand generation"}),
    CommunicationStyle:  "Direct and data-first.",
    Traits:              datatypes.NewJSONSlice([]string{"Decisive", "Curious"}),
    PainPoints:          datatypes.NewJSONSlice([]string{"Attribution gaps"}),
    KeyResponsibilities: datatypes.NewJSONSlice([]string{"Own the funnel"}),
  }
}

func TestUpsertAndGetPersonaTraits(t *testing.T) {
  ts, _ := newTestTraitStack(t)
  ctx := context.Background()

  stored, err := ts.UpsertPersonaTraits(ctx, samplePersonaTrait("3"))
  if err != nil {
    t.Fatalf("UpsertPersonaTraits: %v", err)
  }
  if stored.Timestamp.IsZero() {
    t.Fatalf("expected an assigned timestamp")
  }

  got, err := ts.GetPersonaTraits(ctx, "3")
  if err != nil {
    t.Fatalf("GetPersonaTraits: %v", err)
  }
  if got.About != "Seasoned operator with a growth background." {
    t.Fatalf("about = %q", got.About)
  }
  if len(got.CoreExpertise) != 2 || got.CoreExpertise[0] != "Brand strategy" {
    t.Fatalf("core expertise = %v", got.CoreExpertise)
  }
}

func TestUpsertReplacesWholeDocument(t *testing.T) {
  ts, _ := newTestTraitStack(t)
  ctx := context.Background()

  if _, err := ts.UpsertPersonaTraits(ctx, samplePersonaTrait("3")); err != nil {
    t.Fatalf("first upsert: %v", err)
  }
  updated := samplePersonaTrait("3")
  updated.About = "Rewritten about."
  updated.PainPoints = datatypes.NewJSONSlice([]string{"New pain point"})
  if _, err := ts.UpsertPersonaTraits(ctx, updated); err != nil {
    t.Fatalf("second upsert: %v", err)
  }

  all, err := ts.ListPersonaTraits(ctx)
  if err != nil {
    t.Fatalf("ListPersonaTraits: %v", err)
  }
  if len(all) != 1 {
    t.Fatalf("upsert created a second row: %d", len(all))
  }
  if all[0].About != "Rewritten about." || all[0].PainPoints[0] != "New pain point" {
    t.Fatalf("document not replaced: %+v", all[0])
  }
}

func TestGetPersonaTraitsNotFound(t *testing.T) {
  ts, _ := newTestTraitStack(t)
  _, err := ts.GetPersonaTraits(context.Background(), "99")
  if apperr.KindOf(err) != apperr.KindNotFound {
    t.Fatalf("expected not-found, got %v", err)
  }
}

func TestUpsertPersonaTraitsValidation(t *testing.T) {
  ts, _ := newTestTraitStack(t)
  _, err := ts.UpsertPersonaTraits(context.Background(), &types.PersonaTrait{})
  if apperr.KindOf(err) != apperr.KindValidation {
    t.Fatalf("expected validation error, got %v", err)
  }
  if err.Error() != "Missing required fields: personaId or traits" {
    t.Fatalf("message = %q", err.Error())
  }
}

func TestReplaceLegacyTraits(t *testing.T) {
  ts, _ := newTestTraitStack(t)
  ctx := context.Background()

  first := []*types.Trait{
    {Title: "Strategic", Category: "Mindset", Description: "Thinks in quarters."},
    {Title: "Blunt", Category: "Communication", Description: "Says what it is."},
  }
  if _, err := ts.ReplaceLegacyTraits(ctx, first); err != nil {
    t.Fatalf("first replace: %v", err)
  }
  second := []*types.Trait{
    {Title: "Patient", Category: "Mindset", Description: "Plays the long game."},
  }
  if _, err := ts.ReplaceLegacyTraits(ctx, second); err != nil {
    t.Fatalf("second replace: %v", err)
  }

  all, err := ts.ListLegacyTraits(ctx)
  if err != nil {
    t.Fatalf("ListLegacyTraits: %v", err)
  }
  if len(all) != 1 || all[0].Title != "Patient" {
    t.Fatalf("replace is not wholesale: %v", all)
  }
}

func TestPersonaListMatchesCatalog(t *testing.T) {
  _, ps := newTestTraitStack(t)
  personas := ps.List(context.Background())
  if len(personas) != 4 {
    t.Fatalf("expected 4 catalog personas, got %d", len(personas))
  }
  if personas[0].ID != "1" || personas[0].Name != "Ethan Carter" {
    t.Fatalf("catalog head = %+v", personas[0])
  }
}

func TestPersonaDetailFromStoredDocument(t *testing.T) {
  ts, ps := newTestTraitStack(t)
  ctx := context.Background()
  if _, err := ts.UpsertPersonaTraits(ctx, samplePersonaTrait("2")); err != nil {
    t.Fatalf("upsert: %v", err)
  }

  detail, err := ps.GetByID(ctx, "2")
  if err != nil {
    t.Fatalf("GetByID: %v", err)
  }
  if detail.Name != "David Lee" {
    t.Fatalf("catalog entry = %+v", detail.Persona)
  }
  if len(detail.Traits) != 6 {
    t.Fatalf("expected 6 sections, got %d", len(detail.Traits))
  }
  if detail.Traits[1].Title != "Core Expertise" || detail.Traits[1].Description != "Brand strategy\nDemand generation" {
    t.Fatalf("core expertise section = %+v", detail.Traits[1])
  }
}

func TestPersonaDetailLegacyFallbackForPersonaOne(t *testing.T) {
  ts, ps := newTestTraitStack(t)
  ctx := context.Background()
  if _, err := ts.ReplaceLegacyTraits(ctx, []*types.Trait{
    {Title: "Visionary", Category: "Mindset", Description: "Sees around corners."},
  }); err != nil {
    t.Fatalf("seed legacy traits: %v", err)
  }

  detail, err := ps.GetByID(ctx, "1")
  if err != nil {
    t.Fatalf("GetByID: %v", err)
  }
  if len(detail.Traits) != 1 || detail.Traits[0].Title != "Visionary" {
    t.Fatalf("legacy sections = %+v", detail.Traits)
  }
  if detail.Traits[0].ID == "" {
    t.Fatalf("legacy section id missing")
  }
}

func TestPersonaDetailMockSections(t *testing.T) {
  _, ps := newTestTraitStack(t)
  detail, err := ps.GetByID(context.Background(), "3")
  if err != nil {
    t.Fatalf("GetByID: %v", err)
  }
  if len(detail.Traits) != 3 {
    t.Fatalf("expected 3 mock sections, got %d", len(detail.Traits))
  }
  if detail.Traits[0].ID != "mock-3-1" {
    t.Fatalf("mock section id = %q", detail.Traits[0].ID)
  }
}

func TestPersonaDetailUnknownIDGetsDefaultEntry(t *testing.T) {
  _, ps := newTestTraitStack(t)
  detail, err := ps.GetByID(context.Background(), "42")
  if err != nil {
    t.Fatalf("GetByID: %v", err)
  }
  if detail.Name != "AI Persona" || detail.Role != "Default Role" {
    t.Fatalf("default entry = %+v", detail.Persona)
  }
}
