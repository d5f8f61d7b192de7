package proximity

import (
	"strings"

	"github.com/shenikar/road_hazard_system/internal/models"
)

// MuteSettings - пользовательские правила тишины
type MuteSettings struct {
	// RadiusMeters - зона "не беспокоить" вокруг текущей позиции; 0 выключает правило
	RadiusMeters float64
	// Streets - подстроки названий улиц, сравнение без учета регистра
	Streets []string
}

// IsMuted сообщает, что событие на расстоянии distanceMeters не озвучивается и не подтверждается
func (m MuteSettings) IsMuted(event models.HazardEvent, distanceMeters float64) bool {
	if m.RadiusMeters > 0 && distanceMeters <= m.RadiusMeters {
		return true
	}
	if event.Address == "" {
		return false
	}

	address := strings.ToLower(event.Address)
	for _, street := range m.Streets {
		street = strings.ToLower(strings.TrimSpace(street))
		if street != "" && strings.Contains(address, street) {
			return true
		}
	}
	return false
}
