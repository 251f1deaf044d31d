package handler

import (
	"time"

	"github.com/sserranom/virtualpets-api/internal/core/domain"
)

// --- Request / Response types ---

type createPetRequest struct {
	Name        string  `json:"name"         validate:"required,max=50"`
	Type        string  `json:"type"         validate:"required,oneof=SAN_BERNARDO SIAMES LABRADOR HAMSTER PERICO"`
	Mood        *string `json:"mood"         validate:"omitempty,oneof=HAPPY SAD HUNGRY SLEEPY ANGRY"`
	EnergyLevel *int    `json:"energy_level" validate:"omitempty,gte=0,lte=100"`
	HungerLevel *int    `json:"hunger_level" validate:"omitempty,gte=0,lte=100"`
}

type updatePetRequest struct {
	Name        *string `json:"name"         validate:"omitempty,max=50"`
	Mood        *string `json:"mood"         validate:"omitempty,oneof=HAPPY SAD HUNGRY SLEEPY ANGRY"`
	EnergyLevel *int    `json:"energy_level" validate:"omitempty,gte=0,lte=100"`
	HungerLevel *int    `json:"hunger_level" validate:"omitempty,gte=0,lte=100"`
}

type petResponse struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Type          string    `json:"type"`
	Mood          string    `json:"mood"`
	EnergyLevel   int       `json:"energy_level"`
	HungerLevel   int       `json:"hunger_level"`
	OwnerID       string    `json:"owner_id"`
	OwnerUsername string    `json:"owner_username"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

func toPetResponse(p *domain.Pet) petResponse {
	return petResponse{
		ID:            p.ID,
		Name:          p.Name,
		Type:          string(p.Type),
		Mood:          string(p.Mood),
		EnergyLevel:   p.EnergyLevel,
		HungerLevel:   p.HungerLevel,
		OwnerID:       p.OwnerID,
		OwnerUsername: p.OwnerUsername,
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}

func toPetResponseList(pets []domain.Pet) []petResponse {
	out := make([]petResponse, 0, len(pets))
	for i := range pets {
		out = append(out, toPetResponse(&pets[i]))
	}
	return out
}
