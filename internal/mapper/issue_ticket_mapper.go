package mapper

import (
	"firecheck-be/internal/entity"
	"firecheck-be/internal/model"
)

type IssueTicketMapper struct{}

func NewIssueTicketMapper() *IssueTicketMapper {
	return &IssueTicketMapper{}
}

func (m *IssueTicketMapper) ToEntity(row *model.IssueTicket) *entity.IssueTicket {
	if row == nil {
		return nil
	}
	return &entity.IssueTicket{
		Id:         row.Id,
		StationId:  row.StationId,
		SessionId:  row.SessionId,
		TargetKey:  row.TargetKey,
		Title:      row.Title,
		Category:   entity.IssueCategory(row.Category),
		Severity:   entity.IssueSeverity(row.Severity),
		Notes:      row.Notes,
		Status:     row.Status,
		CreatedAt:  row.CreatedAt,
		ResolvedAt: row.ResolvedAt,
	}
}

func (m *IssueTicketMapper) ToModel(t *entity.IssueTicket) *model.IssueTicket {
	if t == nil {
		return nil
	}
	return &model.IssueTicket{
		Id:         t.Id,
		StationId:  t.StationId,
		SessionId:  t.SessionId,
		TargetKey:  t.TargetKey,
		Title:      t.Title,
		Category:   string(t.Category),
		Severity:   string(t.Severity),
		Notes:      t.Notes,
		Status:     t.Status,
		CreatedAt:  t.CreatedAt,
		ResolvedAt: t.ResolvedAt,
	}
}
