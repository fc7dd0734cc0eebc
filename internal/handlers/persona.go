package handlers

import (
  "net/http"

  "github.com/gin-gonic/gin"
  "gorm.io/datatypes"

  "github.com/excollo/aipersona-backend/internal/apperr"
  "github.com/excollo/aipersona-backend/internal/services"
  "github.com/excollo/aipersona-backend/internal/types"
)

type PersonaHandler struct {
  personaService services.PersonaService
  traitService   services.TraitService
}

func NewPersonaHandler(personaService services.PersonaService, traitService services.TraitService) *PersonaHandler {
  return &PersonaHandler{personaService: personaService, traitService: traitService}
}

func (ph *PersonaHandler) ListPersonas(c *gin.Context) {
  personas := ph.personaService.List(c.Request.Context())
  c.JSON(http.StatusOK, gin.H{"success": true, "personas": personas})
}

func (ph *PersonaHandler) GetPersona(c *gin.Context) {
  detail, err := ph.personaService.GetByID(c.Request.Context(), c.Param("id"))
  if err != nil {
    switch apperr.KindOf(err) {
    case apperr.KindValidation:
      c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
    default:
      c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error fetching persona", "error": err.Error()})
    }
    return
  }
  c.JSON(http.StatusOK, gin.H{"success": true, "data": detail})
}

func (ph *PersonaHandler) GetAllTraits(c *gin.Context) {
  traits, err := ph.traitService.ListPersonaTraits(c.Request.Context())
  if err != nil {
    c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to fetch persona traits"})
    return
  }
  c.JSON(http.StatusOK, gin.H{"success": true, "traits": traits})
}

func (ph *PersonaHandler) GetPersonaTraits(c *gin.Context) {
  traits, err := ph.traitService.GetPersonaTraits(c.Request.Context(), c.Param("personaId"))
  if err != nil {
    switch apperr.KindOf(err) {
    case apperr.KindNotFound:
      c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Persona traits not found"})
    case apperr.KindValidation:
      c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
    default:
      c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": "Failed to fetch persona traits"})
    }
    return
  }
  c.JSON(http.StatusOK, gin.H{"success": true, "traits": traits})
}

func (ph *PersonaHandler) StorePersona(c *gin.Context) {
  var req struct {
    PersonaID string `json:"personaId"`
    Traits    *struct {
      About               string   `json:"about"`
      CoreExpertise       []string `json:"coreExpertise"`
      CommunicationStyle  string   `json:"communicationStyle"`
      Traits              []string `json:"traits"`
      PainPoints          []string `json:"painPoints"`
      KeyResponsibilities []string `json:"keyResponsibilities"`
    } `json:"traits"`
  }
  if err := c.ShouldBindJSON(&req); err != nil || req.PersonaID == "" || req.Traits == nil {
    c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": "Missing required fields: personaId or traits"})
    return
  }
  trait := &types.PersonaTrait{
    PersonaID:           req.PersonaID,
    About:               req.Traits.About,
    CoreExpertise:       datatypes.NewJSONSlice(req.Traits.CoreExpertise),
    CommunicationStyle:  req.Traits.CommunicationStyle,
    Traits:              datatypes.NewJSONSlice(req.Traits.Traits),
    PainPoints:          datatypes.NewJSONSlice(req.Traits.PainPoints),
    KeyResponsibilities: datatypes.NewJSONSlice(req.Traits.KeyResponsibilities),
  }
  stored, err := ph.traitService.UpsertPersonaTraits(c.Request.Context(), trait)
  if err != nil {
    switch apperr.KindOf(err) {
    case apperr.KindValidation:
      c.JSON(http.StatusBadRequest, gin.H{"success": false, "message": err.Error()})
    default:
      c.JSON(http.StatusInternalServerError, gin.H{"success": false, "message": "Error storing persona data", "error": err.Error()})
    }
    return
  }
  c.JSON(http.StatusOK, gin.H{"success": true, "message": "Persona stored successfully", "data": stored})
}
