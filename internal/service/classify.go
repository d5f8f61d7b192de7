package service

import (
	"strings"

	"github.com/shenikar/road_hazard_system/internal/models"
)

var classificationRules = []struct {
	keywords  []string
	eventType models.EventType
}{
	{[]string{"pothole", "bump"}, models.EventTypePothole},
	{[]string{"accident", "crash"}, models.EventTypeAccident},
	{[]string{"police", "cop"}, models.EventTypePolice},
	{[]string{"traffic", "stuck"}, models.EventTypeTraffic},
	{[]string{"park", "parking"}, models.EventTypePark},
	{[]string{"lift", "ride"}, models.EventTypeLift},
}

// ClassifyReport определяет тип события по тексту отчета
func ClassifyReport(text string) models.EventType {
	if strings.TrimSpace(text) == "" {
		return models.EventTypeUnknown
	}

	lower := strings.ToLower(text)
	for _, rule := range classificationRules {
		for _, kw := range rule.keywords {
			if strings.Contains(lower, kw) {
				return rule.eventType
			}
		}
	}
	return models.EventTypeGeneral
}
