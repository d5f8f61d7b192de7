package v1

import "github.com/shenikar/road_hazard_system/internal/models"

// DTOToReportModel преобразует DTO отчета в доменную модель
func DTOToReportModel(dto SubmitReportRequest) *models.Report {
	report := &models.Report{
		RawText:   dto.RawText,
		Heading:   dto.Heading,
		Speed:     dto.Speed,
		Timestamp: dto.Timestamp,
	}
	if dto.Latitude != nil {
		report.Latitude = *dto.Latitude
	}
	if dto.Longitude != nil {
		report.Longitude = *dto.Longitude
	}
	return report
}

// ModelToEventResponse преобразует доменную модель в DTO для ответа
func ModelToEventResponse(model *models.HazardEvent) *EventResponse {
	return &EventResponse{
		ID:                 model.ID,
		EventType:          string(model.EventType),
		Latitude:           model.Latitude,
		Longitude:          model.Longitude,
		Status:             string(model.Status),
		ConfirmationsCount: model.ConfirmationsCount,
		UpdatedAt:          model.UpdatedAt,
		Address:            model.Address,
		ValidUntil:         model.ValidUntil,
	}
}

// ModelsToEventResponses преобразует слайс моделей в слайс DTO
func ModelsToEventResponses(models []*models.HazardEvent) []*EventResponse {
	responses := make([]*EventResponse, len(models))
	for i, model := range models {
		responses[i] = ModelToEventResponse(model)
	}
	return responses
}
