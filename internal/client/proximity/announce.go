package proximity

import (
	"fmt"
	"strings"

	"github.com/shenikar/road_hazard_system/internal/models"
)

// StreetName - часть адреса до первой запятой
func StreetName(address string) string {
	street, _, _ := strings.Cut(address, ",")
	return strings.TrimSpace(street)
}

// Announcement строит голосовое предупреждение для события на расстоянии distanceMeters
func Announcement(event models.HazardEvent, distanceMeters float64) string {
	km := fmt.Sprintf("%.1f", distanceMeters/1000)

	streetPart := "on the street"
	if street := StreetName(event.Address); street != "" {
		streetPart = "on " + street
	}

	switch event.EventType {
	case models.EventTypePothole:
		return fmt.Sprintf("Caution. Potholes ahead in %s kilometers.", km)
	case models.EventTypeAccident:
		return fmt.Sprintf("Warning. Accident occurred %s %s kilometers ahead.", streetPart, km)
	case models.EventTypePolice:
		return fmt.Sprintf("Police check reported ahead in %s kilometers.", km)
	case models.EventTypeTraffic:
		return fmt.Sprintf("Heavy traffic ahead in %s kilometers.", km)
	case "":
		return fmt.Sprintf("%s reported %s %s kilometers ahead.", models.EventTypeUnknown, streetPart, km)
	default:
		return fmt.Sprintf("%s reported %s %s kilometers ahead.", event.EventType, streetPart, km)
	}
}
