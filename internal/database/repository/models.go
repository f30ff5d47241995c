package repository

import "time"

// BoneCategory represents a bone_categories row.
type BoneCategory struct {
	ID           string
	Name         string
	DefaultColor string // #rrggbbaa
	SortOrder    int
	LastSeen     *time.Time
}

// GlamourPlate represents a glamour_plates row.
type GlamourPlate struct {
	ID         string
	Slot       int
	Name       string
	Items      []uint32
	CapturedAt time.Time
}
