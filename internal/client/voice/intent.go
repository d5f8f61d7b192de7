package voice

import (
	"regexp"
	"strings"
)

// IntentType - тип голосовой команды
type IntentType string

const (
	IntentAccident    IntentType = "REPORT_ACCIDENT"
	IntentHazard      IntentType = "REPORT_HAZARD"
	IntentEnforcement IntentType = "REPORT_ENFORCEMENT"
	IntentTraffic     IntentType = "REPORT_TRAFFIC"
)

// Category - важность команды
type Category string

const (
	CategoryCritical Category = "Critical"
	CategoryWarning  Category = "Warning"
	CategoryInfo     Category = "Info"
)

// Intent - распознанная команда отчета
type Intent struct {
	Type         IntentType
	Category     Category
	Confidence   float64
	OriginalText string
	// Direction заполняется только для IntentEnforcement
	Direction string
}

// Label - название типа для голосового ответа
func (i *Intent) Label() string {
	switch i.Type {
	case IntentAccident:
		return "Accident"
	case IntentHazard:
		return "Hazard"
	case IntentEnforcement:
		return "Police"
	case IntentTraffic:
		return "Traffic"
	}
	return "Report"
}

type intentRule struct {
	pattern    *regexp.Regexp
	intentType IntentType
	category   Category
	confidence float64
}

// Порядок правил важен: побеждает первое совпадение
var intentRules = []intentRule{
	{regexp.MustCompile(`accident|crash|collision`), IntentAccident, CategoryCritical, 0.9},
	{regexp.MustCompile(`pothole|bad road|bump|hole`), IntentHazard, CategoryWarning, 0.8},
	{regexp.MustCompile(`police|camera|trap|cop`), IntentEnforcement, CategoryInfo, 0.8},
	{regexp.MustCompile(`traffic|stuck|jam|slow`), IntentTraffic, CategoryInfo, 0.8},
}

// ParseIntent разбирает распознанный текст; nil, если ни одно правило не подошло
func ParseIntent(text string) *Intent {
	lower := strings.ToLower(text)

	for _, rule := range intentRules {
		if !rule.pattern.MatchString(lower) {
			continue
		}

		intent := &Intent{
			Type:         rule.intentType,
			Category:     rule.category,
			Confidence:   rule.confidence,
			OriginalText: text,
		}
		if rule.intentType == IntentEnforcement {
			intent.Direction = "Unknown"
			if strings.Contains(lower, "ahead") {
				intent.Direction = "Forward"
			}
		}
		return intent
	}
	return nil
}
