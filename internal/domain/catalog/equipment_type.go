package catalog

// EquipmentType classifies a catalog product by what kind of rental gear it is
type EquipmentType string

const (
	EquipmentTypeSkiBoard  EquipmentType = "SKI_BOARD"
	EquipmentTypeBoot      EquipmentType = "BOOT"
	EquipmentTypeHelmet    EquipmentType = "HELMET"
	EquipmentTypePole      EquipmentType = "POLE"
	EquipmentTypeGoggles   EquipmentType = "GOGGLES"
	EquipmentTypeGloves    EquipmentType = "GLOVES"
	EquipmentTypeProtector EquipmentType = "PROTECTOR"
	EquipmentTypeWax       EquipmentType = "WAX"
	EquipmentTypeTuning    EquipmentType = "TUNING"
	EquipmentTypeOther     EquipmentType = "OTHER"
)

// IsValid returns true if the equipment type is one of the known values
func (t EquipmentType) IsValid() bool {
	switch t {
	case EquipmentTypeSkiBoard, EquipmentTypeBoot, EquipmentTypeHelmet,
		EquipmentTypePole, EquipmentTypeGoggles, EquipmentTypeGloves,
		EquipmentTypeProtector, EquipmentTypeWax, EquipmentTypeTuning,
		EquipmentTypeOther:
		return true
	}
	return false
}

// String returns the string representation of the equipment type
func (t EquipmentType) String() string {
	return string(t)
}
