package converter

import (
	"careconnect-api/internal/delivery/dto"
	"careconnect-api/internal/domain/entity"
)

// AuditLogToResponse converts an AuditLog entity to AuditLogResponse DTO
func AuditLogToResponse(log *entity.AuditLog) *dto.AuditLogResponse {
	if log == nil {
		return nil
	}

	resp := &dto.AuditLogResponse{
		ID:        log.ID,
		UserID:    log.UserID,
		Action:    log.Action,
		Metadata:  log.Metadata,
		CreatedAt: log.CreatedAt,
	}
	if log.User != nil {
		resp.UserEmail = log.User.Email
	}
	return resp
}

// AuditLogsToResponses converts a slice of AuditLog entities to AuditLogResponse DTOs
func AuditLogsToResponses(logs []entity.AuditLog) []dto.AuditLogResponse {
	responses := make([]dto.AuditLogResponse, len(logs))
	for i := range logs {
		responses[i] = *AuditLogToResponse(&logs[i])
	}
	return responses
}
