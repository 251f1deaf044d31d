package domain

import (
	"errors"
	"time"
)

// PetType enumerates the available pet species.
type PetType string

const (
	TypeSanBernardo PetType = "SAN_BERNARDO"
	TypeSiames      PetType = "SIAMES"
	TypeLabrador    PetType = "LABRADOR"
	TypeHamster     PetType = "HAMSTER"
	TypePerico      PetType = "PERICO"
)

// Mood enumerates the emotional states of a pet.
type Mood string

const (
	MoodHappy  Mood = "HAPPY"
	MoodSad    Mood = "SAD"
	MoodHungry Mood = "HUNGRY"
	MoodSleepy Mood = "SLEEPY"
	MoodAngry  Mood = "ANGRY"
)

var validPetTypes = map[PetType]struct{}{
	TypeSanBernardo: {},
	TypeSiames:      {},
	TypeLabrador:    {},
	TypeHamster:     {},
	TypePerico:      {},
}

var validMoods = map[Mood]struct{}{
	MoodHappy:  {},
	MoodSad:    {},
	MoodHungry: {},
	MoodSleepy: {},
	MoodAngry:  {},
}

// ValidPetType reports whether t is a known pet type.
func ValidPetType(t PetType) bool {
	_, ok := validPetTypes[t]
	return ok
}

// ValidMood reports whether m is a known mood.
func ValidMood(m Mood) bool {
	_, ok := validMoods[m]
	return ok
}

var ErrPetNotFound = errors.New("pet not found")
var ErrInvalidPet = errors.New("invalid pet data")

// Defaults applied when a pet is created without explicit values.
const (
	DefaultMood   = MoodHappy
	DefaultEnergy = 100
	DefaultHunger = 0
)

// Pet is the core aggregate. Every pet has exactly one owner.
type Pet struct {
	ID            string    `json:"id"`
	Name          string    `json:"name"`
	Type          PetType   `json:"type"`
	Mood          Mood      `json:"mood"`
	EnergyLevel   int       `json:"energy_level"`
	HungerLevel   int       `json:"hunger_level"`
	OwnerID       string    `json:"owner_id"`
	OwnerUsername string    `json:"owner_username"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}
