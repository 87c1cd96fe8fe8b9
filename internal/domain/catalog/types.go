package catalog

type PriceUnit string

const (
	UnitHour    PriceUnit = "hour"
	UnitDay     PriceUnit = "day"
	UnitPiece   PriceUnit = "piece"
	UnitService PriceUnit = "service"
	UnitKm      PriceUnit = "km"
)

func (u PriceUnit) String() string {
	return string(u)
}

func (u PriceUnit) IsValid() bool {
	switch u {
	case UnitHour, UnitDay, UnitPiece, UnitService, UnitKm:
		return true
	default:
		return false
	}
}
